package services

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/sirupsen/logrus"
	"github.com/yoockh/jobboard/internal/identity"
	"github.com/yoockh/jobboard/internal/models"
	"github.com/yoockh/jobboard/internal/utils"
)

const (
	MsgCredentialsRequired = "Email and password are required"
	MsgPasswordTooShort    = "Password must be at least 6 characters"
	MsgPasswordMismatch    = "Passwords do not match"
	MsgRegistered          = "Account created. Verification email sent (if enabled). Redirecting..."
	MsgLoggedIn            = "Login successful. Redirecting..."
	MsgAuthUnavailable     = "Sign-in is temporarily unavailable. Please try again."

	MinPasswordLength = 6
)

// ProfileStore holds the account profile document written after signup.
type ProfileStore interface {
	Upsert(ctx context.Context, p *models.Profile) error
	GetByUserID(ctx context.Context, userID string) (*models.Profile, error)
}

type RegisterInput struct {
	Name     string `form:"name" json:"name"`
	Email    string `form:"email" json:"email"`
	Password string `form:"password" json:"password"`
	Confirm  string `form:"confirm" json:"confirm"`
}

type AuthService interface {
	// Enabled reports whether an identity provider is configured.
	Enabled() bool
	Register(ctx context.Context, in RegisterInput) (*models.User, error)
	Login(ctx context.Context, email, password string) (*models.User, error)
}

type authService struct {
	provider identity.Provider // nil when the identity flow is disabled
	profiles ProfileStore      // optional
	log      *logrus.Logger
}

func NewAuthService(provider identity.Provider, profiles ProfileStore, log *logrus.Logger) AuthService {
	return &authService{provider: provider, profiles: profiles, log: log}
}

func (s *authService) Enabled() bool { return s.provider != nil }

func (s *authService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	const op = "AuthService.Register"

	if s.provider == nil {
		return nil, utils.E(utils.CodeUnavailable, op, "", nil)
	}

	name := strings.TrimSpace(in.Name)
	email := strings.TrimSpace(in.Email)
	if email == "" || in.Password == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, MsgCredentialsRequired, nil)
	}
	if utf8.RuneCountInString(in.Password) < MinPasswordLength {
		return nil, utils.E(utils.CodeInvalidArgument, op, MsgPasswordTooShort, nil)
	}
	if in.Password != in.Confirm {
		return nil, utils.E(utils.CodeInvalidArgument, op, MsgPasswordMismatch, nil)
	}

	acct, err := s.provider.CreateAccount(ctx, email, in.Password)
	if err != nil {
		return nil, remoteError(op, err)
	}

	if name != "" {
		if err := s.provider.SetDisplayName(ctx, acct, name); err != nil {
			return nil, remoteError(op, err)
		}
		acct.DisplayName = name
	}

	if err := s.provider.SendVerificationEmail(ctx, acct); err != nil {
		s.log.WithError(err).WithField("user_id", acct.UserID).Debug("verification email not sent")
	}

	s.writeProfile(ctx, acct, name)

	return &models.User{ID: acct.UserID, Email: acct.Email, DisplayName: acct.DisplayName}, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*models.User, error) {
	const op = "AuthService.Login"

	if s.provider == nil {
		return nil, utils.E(utils.CodeUnavailable, op, "", nil)
	}

	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, MsgCredentialsRequired, nil)
	}

	acct, err := s.provider.SignIn(ctx, email, password)
	if err != nil {
		return nil, remoteError(op, err)
	}
	u := &models.User{ID: acct.UserID, Email: acct.Email, DisplayName: acct.DisplayName}
	if u.DisplayName == "" {
		u.DisplayName = s.profileName(ctx, u.ID)
	}
	return u, nil
}

// profileName falls back to the name stored at signup when the provider
// returns none.
func (s *authService) profileName(ctx context.Context, userID string) string {
	if s.profiles == nil {
		return ""
	}
	p, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		if utils.CodeOf(err) != utils.CodeNotFound {
			s.log.WithError(err).WithField("user_id", userID).Warn("profile read failed")
		}
		return ""
	}
	if p.Name == nil {
		return ""
	}
	return *p.Name
}

// writeProfile is best effort; the account already exists at this point.
func (s *authService) writeProfile(ctx context.Context, acct *identity.Account, name string) {
	if s.profiles == nil {
		return
	}
	p := &models.Profile{
		UserID:    acct.UserID,
		Email:     acct.Email,
		Role:      models.RoleJobSeeker,
		CreatedAt: time.Now().UTC(),
	}
	if name != "" {
		p.Name = &name
	}
	if err := s.profiles.Upsert(ctx, p); err != nil {
		s.log.WithError(err).WithField("user_id", acct.UserID).Warn("profile write failed")
	}
}

// remoteError shows provider errors as-is. Anything else keeps its text
// for logs only.
func remoteError(op string, err error) error {
	if ie, ok := identity.AsError(err); ok {
		return utils.E(utils.CodeUnauthorized, op, ie.Display(), err)
	}
	return utils.E(utils.CodeUnavailable, op, MsgAuthUnavailable, err)
}
