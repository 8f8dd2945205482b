package worker

import (
	"crypto/subtle"
	"net/http"
	"strings"
)

// checkAuth verifies the shared secret carried as a bearer token. The
// comparison is constant-time and the expected secret never appears in
// any response.
func (w *Worker) checkAuth(r *http.Request) bool {
	header := r.Header.Get("Authorization")
	if header == "" {
		return false
	}
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(token), []byte(w.secret)) == 1
}
