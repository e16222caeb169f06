package identity

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newFirebaseServer(t *testing.T, handler func(method string, body map[string]any) (int, any)) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("key") != "test-key" {
			t.Errorf("api key missing from %s", r.URL)
		}
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		method := strings.TrimPrefix(r.URL.Path, "/v1/")

		status, out := handler(method, body)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(out)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func restFailure(msg string) map[string]any {
	return map[string]any{"error": map[string]any{"code": 400, "message": msg}}
}

func TestFirebaseSignUpFlow(t *testing.T) {
	var calls []string
	srv := newFirebaseServer(t, func(method string, body map[string]any) (int, any) {
		calls = append(calls, method)
		switch method {
		case "accounts:signUp":
			if body["email"] != "jane@x.com" || body["returnSecureToken"] != true {
				t.Errorf("signUp body = %v", body)
			}
			return 200, map[string]any{"localId": "uid-9", "email": "jane@x.com", "idToken": "id-tok"}
		case "accounts:update":
			if body["idToken"] != "id-tok" || body["displayName"] != "Jane" {
				t.Errorf("update body = %v", body)
			}
			return 200, map[string]any{}
		case "accounts:sendOobCode":
			if body["requestType"] != "VERIFY_EMAIL" {
				t.Errorf("oob body = %v", body)
			}
			return 200, map[string]any{}
		}
		return 404, restFailure("NOT_FOUND")
	})

	fb := NewFirebase(&Config{APIKey: "test-key"}, srv.URL+"/v1/", nil)
	ctx := context.Background()

	acct, err := fb.CreateAccount(ctx, "jane@x.com", "secret1")
	if err != nil {
		t.Fatal(err)
	}
	if acct.UserID != "uid-9" || acct.IDToken != "id-tok" {
		t.Errorf("account = %#v", acct)
	}
	if err := fb.SetDisplayName(ctx, acct, "Jane"); err != nil {
		t.Fatal(err)
	}
	if acct.DisplayName != "Jane" {
		t.Error("display name not applied to account")
	}
	if err := fb.SendVerificationEmail(ctx, acct); err != nil {
		t.Fatal(err)
	}
	if strings.Join(calls, ",") != "accounts:signUp,accounts:update,accounts:sendOobCode" {
		t.Errorf("calls = %v", calls)
	}
}

func TestFirebaseErrorMapping(t *testing.T) {
	tests := []struct {
		rest        string
		wantCode    string
		wantDisplay string
	}{
		{"EMAIL_EXISTS", "auth/email-already-in-use", "auth/email-already-in-use — Error (auth/email-already-in-use)."},
		{"INVALID_LOGIN_CREDENTIALS", "auth/invalid-credential", "auth/invalid-credential — Error (auth/invalid-credential)."},
		{"WEAK_PASSWORD : Password should be at least 6 characters", "auth/weak-password",
			"auth/weak-password — Password should be at least 6 characters (auth/weak-password)."},
		{"SOMETHING_NEW", "auth/something-new", "auth/something-new — Error (auth/something-new)."},
	}
	for _, tt := range tests {
		srv := newFirebaseServer(t, func(string, map[string]any) (int, any) {
			return 400, restFailure(tt.rest)
		})
		fb := NewFirebase(&Config{APIKey: "test-key"}, srv.URL+"/v1", nil)

		_, err := fb.SignIn(context.Background(), "a@b.c", "secret1")
		ie, ok := AsError(err)
		if !ok {
			t.Fatalf("%s: expected *Error, got %v", tt.rest, err)
		}
		if ie.Code != tt.wantCode {
			t.Errorf("%s: code = %q", tt.rest, ie.Code)
		}
		if !strings.HasPrefix(ie.Message, "Firebase: ") {
			t.Errorf("%s: message = %q", tt.rest, ie.Message)
		}
		if got := ie.Display(); got != tt.wantDisplay {
			t.Errorf("%s: display = %q, want %q", tt.rest, got, tt.wantDisplay)
		}
	}
}

func TestFirebaseUndecodableError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gateway exploded", http.StatusBadGateway)
	}))
	defer srv.Close()

	fb := NewFirebase(&Config{APIKey: "k"}, srv.URL, nil)
	_, err := fb.SignIn(context.Background(), "a@b.c", "secret1")
	if ie, ok := AsError(err); !ok || ie.Code != "auth/internal-error" {
		t.Errorf("err = %v", err)
	}
}

func TestFirebaseNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	fb := NewFirebase(&Config{APIKey: "k"}, url, nil)
	_, err := fb.CreateAccount(context.Background(), "a@b.c", "secret1")
	if ie, ok := AsError(err); !ok || ie.Code != "auth/network-request-failed" {
		t.Errorf("err = %v", err)
	}
}

func TestStripVendorPrefix(t *testing.T) {
	if got := StripVendorPrefix("Firebase: Error (auth/x)."); got != "Error (auth/x)." {
		t.Errorf("got %q", got)
	}
	if got := StripVendorPrefix("plain"); got != "plain" {
		t.Errorf("got %q", got)
	}
	e := &Error{Message: "Firebase: only message"}
	if e.Display() != "only message" {
		t.Errorf("display = %q", e.Display())
	}
}
