package middleware

import (
	"mime"
	"net/http"

	dErrors "signalist/pkg/domain-errors"
	"signalist/pkg/platform/httputil"
)

// ContentTypeJSON rejects request bodies declared as anything but JSON.
// Requests without a Content-Type header pass through.
func ContentTypeJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ct := r.Header.Get("Content-Type"); ct != "" {
			mediaType, _, err := mime.ParseMediaType(ct)
			if err != nil || mediaType != "application/json" {
				w.Header().Set("Accept", "application/json")
				httputil.WriteError(w, dErrors.New(dErrors.CodeUnsupportedMediaType, "content type must be application/json"))
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}
