package identity

import (
	"context"
	"testing"
)

func TestLocalProvider(t *testing.T) {
	l := NewLocal()
	ctx := context.Background()

	acct, err := l.CreateAccount(ctx, "Jane@X.com", "secret1")
	if err != nil {
		t.Fatal(err)
	}
	if err := l.SetDisplayName(ctx, acct, "Jane"); err != nil {
		t.Fatal(err)
	}

	if _, err := l.CreateAccount(ctx, "jane@x.com", "other12"); err == nil {
		t.Error("duplicate email accepted")
	} else if ie, _ := AsError(err); ie.Code != "auth/email-already-in-use" {
		t.Errorf("code = %q", ie.Code)
	}

	got, err := l.SignIn(ctx, "jane@x.com", "secret1")
	if err != nil {
		t.Fatal(err)
	}
	if got.UserID != acct.UserID || got.DisplayName != "Jane" {
		t.Errorf("signed in as %#v", got)
	}

	if _, err := l.SignIn(ctx, "jane@x.com", "wrong12"); err == nil {
		t.Error("wrong password accepted")
	}
	if _, err := l.SignIn(ctx, "nobody@x.com", "secret1"); err == nil {
		t.Error("unknown account accepted")
	}
}

func TestLocalProviderValidation(t *testing.T) {
	l := NewLocal()
	ctx := context.Background()

	if _, err := l.CreateAccount(ctx, "not-an-email", "secret1"); err == nil {
		t.Error("invalid email accepted")
	}
	if _, err := l.CreateAccount(ctx, "a@b.c", "123"); err == nil {
		t.Error("weak password accepted")
	}
	// six bytes, three characters
	if _, err := l.CreateAccount(ctx, "a@b.c", "ééé"); err == nil {
		t.Error("weak multibyte password accepted")
	}
}
