package middleware

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/yoockh/jobboard/internal/models"
)

const (
	SessionCookie = "session"
	sessionTTL    = 7 * 24 * time.Hour
	sessionIssuer = "jobboard"

	ctxUserID = "user_id"
	ctxUser   = "user"
)

type sessionClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

// Sessions signs and reads the HS256 session cookie. A zero-length secret
// disables it: Issue is a no-op and every request is anonymous.
type Sessions struct {
	secret []byte
	secure bool
}

func NewSessions(secret string, secureCookie bool) *Sessions {
	return &Sessions{secret: []byte(secret), secure: secureCookie}
}

func (s *Sessions) Enabled() bool { return s != nil && len(s.secret) > 0 }

// Issue sets the session cookie for u.
func (s *Sessions) Issue(c *gin.Context, u *models.User) error {
	if !s.Enabled() || u == nil {
		return nil
	}
	now := time.Now()
	claims := sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID,
			Issuer:    sessionIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(sessionTTL)),
		},
		Email: u.Email,
		Name:  u.DisplayName,
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return err
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, raw, int(sessionTTL.Seconds()), "/", "", s.secure, true)
	return nil
}

func (s *Sessions) Clear(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, "", -1, "/", "", s.secure, true)
}

func (s *Sessions) Parse(raw string) (*models.User, error) {
	if !s.Enabled() {
		return nil, errors.New("sessions disabled")
	}
	claims := &sessionClaims{}
	tok, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(sessionIssuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil || tok == nil || !tok.Valid {
		return nil, errors.New("invalid session")
	}
	if claims.Subject == "" {
		return nil, errors.New("missing subject")
	}
	return &models.User{ID: claims.Subject, Email: claims.Email, DisplayName: claims.Name}, nil
}

// Middleware attaches the signed-in user, if any. It never aborts; an
// invalid cookie is cleared and the request continues anonymously.
func (s *Sessions) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !s.Enabled() {
			c.Next()
			return
		}
		raw, err := c.Cookie(SessionCookie)
		if err == nil && raw != "" {
			if u, perr := s.Parse(raw); perr == nil {
				c.Set(ctxUserID, u.ID)
				c.Set(ctxUser, u)
			} else {
				s.Clear(c)
			}
		}
		c.Next()
	}
}

// CurrentUser returns the user attached by Middleware.
func CurrentUser(c *gin.Context) *models.User {
	if v, ok := c.Get(ctxUser); ok {
		if u, ok := v.(*models.User); ok {
			return u
		}
	}
	return nil
}
