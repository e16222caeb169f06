package identity

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	BackendFirebase = "firebase"
	BackendLocal    = "local"
)

type SetupOptions struct {
	Backend   string // firebase (default) or local
	ConfigURL string
	BaseURL   string
	Client    *http.Client
}

// Setup returns the configured provider, or nil when the identity flow is
// disabled. Failures are logged and never surfaced to users.
func Setup(ctx context.Context, opts SetupOptions, log *logrus.Logger) Provider {
	switch strings.ToLower(strings.TrimSpace(opts.Backend)) {
	case BackendLocal:
		log.Info("identity: using in-process local provider")
		return NewLocal()
	case "", BackendFirebase:
	default:
		log.WithField("backend", opts.Backend).Warn("identity: unknown backend; auth is disabled")
		return nil
	}

	if opts.ConfigURL == "" {
		log.Warn("identity: IDENTITY_CONFIG_URL not set; auth is disabled")
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	cfg, err := FetchConfig(ctx, opts.Client, opts.ConfigURL)
	if err != nil {
		log.WithError(err).Warn("identity: config not available; auth is disabled")
		return nil
	}
	return NewFirebase(cfg, opts.BaseURL, opts.Client)
}
