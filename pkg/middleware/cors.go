package middleware

import (
	"net/http"
)

const (
	corsAllowedHeaders = "authorization, x-client-info, apikey, content-type"
	corsAllowedMethods = "GET, POST, PUT, DELETE, OPTIONS"
)

// Cors allows any origin; the portal is served from several preview domains and every
// protected route requires a bearer token anyway.
func Cors() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Headers", corsAllowedHeaders)
			w.Header().Set("Access-Control-Allow-Methods", corsAllowedMethods)
			w.Header().Set("Access-Control-Max-Age", "86400")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				_, _ = w.Write([]byte("ok"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
