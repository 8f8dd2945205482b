package worker

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"regexp"
	"strings"
)

// maxBodySize limits invocation request bodies read by the adapter (1MB).
const maxBodySize = 1 << 20

var placeholderPattern = regexp.MustCompile(`\{([a-zA-Z_][a-zA-Z0-9_]*)\}`)

// HTTPRouter binds worker components onto a net/http ServeMux. It is the
// only place that touches http.Request; components see RequestData.
type HTTPRouter struct {
	worker *Worker
	mux    *http.ServeMux
}

// NewHTTPRouter creates an adapter over the given mux and registers every
// worker component on it.
func NewHTTPRouter(w *Worker, mux *http.ServeMux) *HTTPRouter {
	r := &HTTPRouter{worker: w, mux: mux}
	w.Register(r)
	return r
}

// AddRoute implements Router for net/http using method-qualified patterns.
func (r *HTTPRouter) AddRoute(method, path string, component Component, requireAuth bool) {
	full := r.worker.BasePath() + "/" + strings.TrimPrefix(path, "/")
	pattern := method + " " + full
	params := placeholderNames(path)

	r.mux.HandleFunc(pattern, func(rw http.ResponseWriter, req *http.Request) {
		if requireAuth && !r.worker.disableAuth {
			if !r.worker.checkAuth(req) {
				writeJSON(rw, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
				return
			}
		}

		var body []byte
		if req.Body != nil {
			var err error
			body, err = io.ReadAll(io.LimitReader(req.Body, maxBodySize))
			if err != nil {
				writeJSON(rw, http.StatusBadRequest, map[string]string{"error": "failed to read request body"})
				return
			}
		}

		data := RequestData{
			Path:     req.URL.Path,
			Method:   req.Method,
			BodyJSON: body,
		}
		if len(params) > 0 {
			data.PathParams = make(map[string]string, len(params))
			for _, p := range params {
				data.PathParams[p] = req.PathValue(p)
			}
		}

		result, err := component.Handle(req.Context(), data)
		if err != nil {
			var httpErr *HTTPError
			if errors.As(err, &httpErr) {
				writeJSON(rw, httpErr.Status, map[string]string{"error": httpErr.Message})
				return
			}
			writeJSON(rw, http.StatusInternalServerError, map[string]string{"error": "internal error"})
			return
		}
		writeJSON(rw, http.StatusOK, result)
	})
}

func placeholderNames(path string) []string {
	matches := placeholderPattern.FindAllStringSubmatch(path, -1)
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, m[1])
	}
	return names
}

func writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}
