package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const DefaultBaseURL = "https://identitytoolkit.googleapis.com/v1"

// restCodes maps Identity Toolkit REST error messages to the codes the
// browser SDK reports.
var restCodes = map[string]string{
	"EMAIL_EXISTS":                "auth/email-already-in-use",
	"EMAIL_NOT_FOUND":             "auth/user-not-found",
	"INVALID_PASSWORD":            "auth/wrong-password",
	"INVALID_LOGIN_CREDENTIALS":   "auth/invalid-credential",
	"INVALID_EMAIL":               "auth/invalid-email",
	"WEAK_PASSWORD":               "auth/weak-password",
	"USER_DISABLED":               "auth/user-disabled",
	"OPERATION_NOT_ALLOWED":       "auth/operation-not-allowed",
	"TOO_MANY_ATTEMPTS_TRY_LATER": "auth/too-many-requests",
	"MISSING_PASSWORD":            "auth/missing-password",
	"INVALID_ID_TOKEN":            "auth/invalid-user-token",
	"API_KEY_INVALID":             "auth/api-key-not-valid",
}

type Firebase struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewFirebase(cfg *Config, baseURL string, client *http.Client) *Firebase {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &Firebase{apiKey: cfg.APIKey, baseURL: strings.TrimRight(baseURL, "/"), client: client}
}

type passwordRequest struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	ReturnSecureToken bool   `json:"returnSecureToken"`
}

type accountResponse struct {
	LocalID     string `json:"localId"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	IDToken     string `json:"idToken"`
}

type errorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (f *Firebase) CreateAccount(ctx context.Context, email, password string) (*Account, error) {
	var out accountResponse
	if err := f.call(ctx, "accounts:signUp", passwordRequest{Email: email, Password: password, ReturnSecureToken: true}, &out); err != nil {
		return nil, err
	}
	return out.account(), nil
}

func (f *Firebase) SignIn(ctx context.Context, email, password string) (*Account, error) {
	var out accountResponse
	if err := f.call(ctx, "accounts:signInWithPassword", passwordRequest{Email: email, Password: password, ReturnSecureToken: true}, &out); err != nil {
		return nil, err
	}
	return out.account(), nil
}

func (f *Firebase) SetDisplayName(ctx context.Context, acct *Account, name string) error {
	body := map[string]any{"idToken": acct.IDToken, "displayName": name, "returnSecureToken": false}
	if err := f.call(ctx, "accounts:update", body, nil); err != nil {
		return err
	}
	acct.DisplayName = name
	return nil
}

func (f *Firebase) SendVerificationEmail(ctx context.Context, acct *Account) error {
	body := map[string]any{"requestType": "VERIFY_EMAIL", "idToken": acct.IDToken}
	return f.call(ctx, "accounts:sendOobCode", body, nil)
}

func (r accountResponse) account() *Account {
	return &Account{UserID: r.LocalID, Email: r.Email, DisplayName: r.DisplayName, IDToken: r.IDToken}
}

func (f *Firebase) call(ctx context.Context, method string, in any, out any) error {
	b, err := json.Marshal(in)
	if err != nil {
		return err
	}
	endpoint := f.baseURL + "/" + method + "?key=" + url.QueryEscape(f.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return &Error{Code: "auth/network-request-failed", Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var er errorResponse
		if err := json.NewDecoder(resp.Body).Decode(&er); err != nil || er.Error.Message == "" {
			return &Error{Code: "auth/internal-error", Message: fmt.Sprintf("identity service HTTP %d", resp.StatusCode)}
		}
		return restError(er.Error.Message)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// restError turns "WEAK_PASSWORD : Password should be at least 6
// characters" into a coded Error.
func restError(raw string) *Error {
	key, detail, found := strings.Cut(raw, " : ")
	key = strings.TrimSpace(key)
	code, ok := restCodes[key]
	if !ok {
		code = "auth/" + strings.ToLower(strings.ReplaceAll(key, "_", "-"))
	}
	msg := strings.TrimSpace(detail)
	if !found || msg == "" {
		msg = "Error"
	}
	return &Error{Code: code, Message: fmt.Sprintf("Firebase: %s (%s).", msg, code)}
}
