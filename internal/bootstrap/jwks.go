package bootstrap

import (
	"log/slog"
	"time"

	"github.com/MicahParks/keyfunc"
)

// InitJWKS builds the identity-provider key cache. The refresh interval is
// injected from config so key rotation latency is an explicit deployment
// decision rather than a package-level constant.
func InitJWKS(url string, refresh time.Duration, log *slog.Logger) (*keyfunc.JWKS, error) {
	return keyfunc.Get(url, keyfunc.Options{
		RefreshInterval:   refresh,
		RefreshRateLimit:  time.Minute,
		RefreshUnknownKID: true,
		RefreshErrorHandler: func(err error) {
			log.Error("jwks refresh failed", "error", err)
		},
	})
}
