package web

import (
	"context"
	"net/http"

	"github.com/Vadym-Teslytskyy/usermanager/internal/core"
)

// WithRequestMetadata adds the client IP and User-Agent to ctx for service logs.
func WithRequestMetadata(ctx context.Context, r *http.Request) context.Context {
	// RemoteAddr was already rewritten by TrustedRealIP.
	return core.ContextWithClient(ctx, r.RemoteAddr, r.UserAgent())
}
