package ldthttp

import (
	"net/http"
	"time"

	"github.com/cayleygraph/ldt/clog"
)

// statusWriter records the status code and the size of a response.
type statusWriter struct {
	http.ResponseWriter
	code  int
	bytes int
}

func (w *statusWriter) WriteHeader(code int) {
	w.ResponseWriter.WriteHeader(code)
	w.code = code
}

func (w *statusWriter) Write(p []byte) (int, error) {
	n, err := w.ResponseWriter.Write(p)
	w.bytes += n
	return n, err
}

func remoteAddr(req *http.Request) string {
	if addr := req.Header.Get("X-Real-IP"); addr != "" {
		return addr
	}
	if addr := req.Header.Get("X-Forwarded-For"); addr != "" {
		return addr
	}
	return req.RemoteAddr
}

// LogRequest logs the start and the completion of every request.
func LogRequest(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, code: http.StatusOK}
		clog.Infof("started %s %s for %s", req.Method, req.URL.Path, remoteAddr(req))
		h.ServeHTTP(sw, req)
		clog.Infof("completed %v %s %s (%d bytes) in %v",
			sw.code, http.StatusText(sw.code), req.URL.Path, sw.bytes, time.Since(start))
	})
}

// CORS allows cross-origin requests and answers preflight requests with 204.
func CORS(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if origin := req.Header.Get("Origin"); origin != "" {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers",
				"Accept, Accept-Encoding, Content-Type, Content-Length, Content-Encoding, Authorization")
		}
		if req.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		h.ServeHTTP(w, req)
	})
}

// HandleHealth answers health checks with 204.
func HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

// readOnly rejects a handler when the server does not accept data.
func readOnly(ro bool, h http.HandlerFunc) http.HandlerFunc {
	if !ro {
		return h
	}
	return func(w http.ResponseWriter, r *http.Request) {
		jsonResponse(w, http.StatusForbidden, "server is read-only")
	}
}
