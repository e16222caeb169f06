// Package identity talks to the external account service used for signup
// and login. Passwords never touch local storage.
package identity

import (
	"context"
	"errors"
	"strings"
)

type Account struct {
	UserID      string
	Email       string
	DisplayName string
	IDToken     string
}

type Provider interface {
	CreateAccount(ctx context.Context, email, password string) (*Account, error)
	SignIn(ctx context.Context, email, password string) (*Account, error)
	SetDisplayName(ctx context.Context, acct *Account, name string) error
	SendVerificationEmail(ctx context.Context, acct *Account) error
}

// Error is a failure reported by the provider, with a machine-readable code
// such as "auth/email-already-in-use".
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	if e.Code == "" {
		return e.Message
	}
	return e.Code + ": " + e.Message
}

// Display formats the error the way it is shown next to auth forms.
func (e *Error) Display() string {
	msg := StripVendorPrefix(e.Message)
	if e.Code == "" {
		return msg
	}
	return e.Code + " — " + msg
}

const vendorPrefix = "Firebase: "

func StripVendorPrefix(msg string) string {
	return strings.Replace(msg, vendorPrefix, "", 1)
}

// AsError extracts a provider error from err.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
