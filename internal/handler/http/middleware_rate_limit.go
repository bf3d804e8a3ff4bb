package http

import (
	"net"
	"net/http"
	"strconv"

	"github.com/MKhiriev/go-upload-desk/internal/app"
	"github.com/MKhiriev/go-upload-desk/internal/logger"
)

// rateLimit throttles requests per client address within scope. Limiter
// failures let the request through.
func (h *Handler) rateLimit(scope string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if h.limiter == nil {
				next.ServeHTTP(w, r)
				return
			}

			log := logger.FromRequest(r)
			key := scope + ":" + clientIP(r)

			allowed, err := h.limiter.Allow(r.Context(), key)
			if err != nil {
				log.Warn().Err(err).Str("key", key).Msg("rate limiter unavailable")
				next.ServeHTTP(w, r)
				return
			}

			if !allowed {
				log.Info().Str("key", key).Msg("request throttled")
				if window := h.server.RateLimit.Window; window > 0 {
					w.Header().Set("Retry-After", strconv.Itoa(int(window.Seconds())))
				}
				writeDetail(w, http.StatusTooManyRequests, app.MsgThrottled)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// clientIP strips the port from RemoteAddr, which middleware.RealIP has
// already replaced with the forwarded address when present.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
