package middleware

import (
	"net/http"
	"strings"
)

const deviceIDHeader = "X-Device-Id"

// DeviceID copies the device header into the request context. Cart, favorites
// and guest checkout are keyed by it.
func DeviceID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			deviceID := strings.TrimSpace(r.Header.Get(deviceIDHeader))
			if deviceID == "" {
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithDeviceID(r.Context(), deviceID)))
		})
	}
}
