package identity

import (
	"context"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Local is an in-process provider for demos without a remote account
// service. Accounts live only as long as the process.
type Local struct {
	mu       sync.Mutex
	accounts map[string]*localAccount // by lower-cased email
}

type localAccount struct {
	id          string
	email       string
	displayName string
	hash        []byte
}

func NewLocal() *Local {
	return &Local{accounts: map[string]*localAccount{}}
}

func (l *Local) CreateAccount(_ context.Context, email, password string) (*Account, error) {
	key := strings.ToLower(strings.TrimSpace(email))
	if !strings.Contains(key, "@") {
		return nil, &Error{Code: "auth/invalid-email", Message: "Firebase: Error (auth/invalid-email)."}
	}
	if utf8.RuneCountInString(password) < 6 {
		return nil, &Error{Code: "auth/weak-password", Message: "Firebase: Password should be at least 6 characters (auth/weak-password)."}
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.accounts[key]; ok {
		return nil, &Error{Code: "auth/email-already-in-use", Message: "Firebase: Error (auth/email-already-in-use)."}
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	a := &localAccount{id: uuid.NewString(), email: email, hash: hash}
	l.accounts[key] = a
	return &Account{UserID: a.id, Email: a.email, IDToken: a.id}, nil
}

func (l *Local) SignIn(_ context.Context, email, password string) (*Account, error) {
	key := strings.ToLower(strings.TrimSpace(email))

	l.mu.Lock()
	a, ok := l.accounts[key]
	l.mu.Unlock()
	if !ok || bcrypt.CompareHashAndPassword(a.hash, []byte(password)) != nil {
		return nil, &Error{Code: "auth/invalid-credential", Message: "Firebase: Error (auth/invalid-credential)."}
	}
	return &Account{UserID: a.id, Email: a.email, DisplayName: a.displayName, IDToken: a.id}, nil
}

func (l *Local) SetDisplayName(_ context.Context, acct *Account, name string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, a := range l.accounts {
		if a.id == acct.UserID {
			a.displayName = name
			acct.DisplayName = name
			return nil
		}
	}
	return &Error{Code: "auth/user-not-found", Message: "Firebase: Error (auth/user-not-found)."}
}

// SendVerificationEmail is a no-op; there is no mailer behind Local.
func (l *Local) SendVerificationEmail(context.Context, *Account) error { return nil }
