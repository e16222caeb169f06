package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/yoockh/jobboard/internal/models"
)

func issueCookie(t *testing.T, s *Sessions, u *models.User) *http.Cookie {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/login", nil)
	if err := s.Issue(c, u); err != nil {
		t.Fatal(err)
	}
	for _, ck := range w.Result().Cookies() {
		if ck.Name == SessionCookie {
			return ck
		}
	}
	return nil
}

func whoami(s *Sessions) *gin.Engine {
	r := gin.New()
	r.Use(s.Middleware())
	r.GET("/", func(c *gin.Context) {
		if u := CurrentUser(c); u != nil {
			c.String(http.StatusOK, u.ID+"|"+u.Email)
			return
		}
		c.String(http.StatusOK, "anonymous")
	})
	return r
}

func TestSessionRoundTrip(t *testing.T) {
	gin.SetMode(gin.TestMode)
	s := NewSessions("test-secret", false)

	ck := issueCookie(t, s, &models.User{ID: "uid-1", Email: "jane@x.com"})
	if ck == nil || !ck.HttpOnly {
		t.Fatalf("cookie = %#v", ck)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(ck)
	w := httptest.NewRecorder()
	whoami(s).ServeHTTP(w, req)

	if w.Body.String() != "uid-1|jane@x.com" {
		t.Errorf("body = %q", w.Body.String())
	}
}

func TestSessionRejectsForeignSignature(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ck := issueCookie(t, NewSessions("other-secret", false), &models.User{ID: "uid-1"})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(ck)
	w := httptest.NewRecorder()
	whoami(NewSessions("test-secret", false)).ServeHTTP(w, req)

	if w.Body.String() != "anonymous" {
		t.Errorf("forged cookie accepted: %q", w.Body.String())
	}
	if w.Code != http.StatusOK {
		t.Errorf("invalid cookie must not abort, got %d", w.Code)
	}
}

func TestSessionsDisabledWithoutSecret(t *testing.T) {
	gin.SetMode(gin.TestMode)
	s := NewSessions("", false)
	if s.Enabled() {
		t.Fatal("expected disabled")
	}
	if ck := issueCookie(t, s, &models.User{ID: "uid-1"}); ck != nil {
		t.Error("cookie issued without a secret")
	}
}
