package middleware

import (
	"context"
	"crypto/subtle"
	"net/http"

	"github.com/google/uuid"
)

const (
	CSRFCookieName = "csrf_token"
	CSRFFormField  = "csrf_token"
	CSRFHeader     = "X-CSRF-Token"
)

type csrfKey struct{}

// CSRFMiddleware implements double-submit protection. A token cookie is issued
// when missing; POST, PUT, PATCH and DELETE must echo it in the csrf_token form
// field or the X-CSRF-Token header.
func CSRFMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var token string
		if c, err := r.Cookie(CSRFCookieName); err == nil {
			token = c.Value
		}

		if isStateChanging(r.Method) {
			if token == "" {
				http.Error(w, "CSRF token missing in cookies", http.StatusForbidden)
				return
			}
			submitted := r.Header.Get(CSRFHeader)
			if submitted == "" {
				submitted = r.PostFormValue(CSRFFormField)
			}
			if submitted == "" {
				http.Error(w, "CSRF token missing in request", http.StatusForbidden)
				return
			}
			if subtle.ConstantTimeCompare([]byte(token), []byte(submitted)) != 1 {
				http.Error(w, "CSRF token mismatch", http.StatusForbidden)
				return
			}
		}

		if token == "" {
			token = uuid.NewString()
			http.SetCookie(w, &http.Cookie{
				Name:     CSRFCookieName,
				Value:    token,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}

		ctx := context.WithValue(r.Context(), csrfKey{}, token)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// CSRFToken returns the token forms must submit, or "" outside CSRFMiddleware.
func CSRFToken(ctx context.Context) string {
	if token, ok := ctx.Value(csrfKey{}).(string); ok {
		return token
	}
	return ""
}

func isStateChanging(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}
