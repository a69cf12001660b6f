// Package audit surfaces every administrative API request and error
// response as a log line with a fixed message template. The templates
// are rendered through the ordinary log grammar with no special
// casing; downstream harnesses match on the exact text.
package audit

import (
	"bytes"
	"io"
	"net/http"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/vhostd/hostlog/core"
	"github.com/vhostd/hostlog/logger"
)

// ReceiptMessage is the template emitted when a request is received,
// before it is processed. Mutating methods include the request body,
// except on the mmds resource, whose contents are guest-supplied and
// kept out of the host log.
func ReceiptMessage(method, path string, body []byte) string {
	method = titleMethod(method)
	if includesBody(method, path) {
		return `The API server received a ` + method + ` request on "` + path + `" with body ` + string(body) + `.`
	}
	return `The API server received a ` + method + ` request on "` + path + `".`
}

// ErrorMessage is the template emitted when a request completes with
// an error response.
func ErrorMessage(status int, reason, fault string) string {
	return "Received Error. Status code: " + strconv.Itoa(status) + " " + reason + ". Message: " + fault + "."
}

func includesBody(method, path string) bool {
	if method != "Put" && method != "Patch" {
		return false
	}
	return path != "/mmds" && !strings.HasPrefix(path, "/mmds/")
}

func titleMethod(method string) string {
	if method == "" {
		return method
	}
	return strings.ToUpper(method[:1]) + strings.ToLower(method[1:])
}

// Middleware wraps next so that every request emits a receipt line at
// Info before handling and, when the response status indicates an
// error, the error template afterwards. The fault message is taken
// from the fault_message field of the JSON error body when present.
func Middleware(l *logger.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body []byte
		if r.Body != nil {
			body, _ = io.ReadAll(r.Body)
			r.Body.Close()
			r.Body = io.NopCloser(bytes.NewReader(body))
		}
		l.Emit(core.InfoSeverity, core.CaptureOrigin(1), ReceiptMessage(r.Method, r.URL.Path, body))

		rec := &responseRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		if rec.status >= http.StatusBadRequest {
			fault := faultMessage(rec.body.Bytes())
			l.Emit(core.InfoSeverity, core.CaptureOrigin(1), ErrorMessage(rec.status, http.StatusText(rec.status), fault))
		}
	})
}

// responseRecorder captures the status code and error body while
// passing everything through to the client.
type responseRecorder struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
	body        bytes.Buffer
}

func (r *responseRecorder) WriteHeader(status int) {
	if !r.wroteHeader {
		r.status = status
		r.wroteHeader = true
	}
	r.ResponseWriter.WriteHeader(status)
}

func (r *responseRecorder) Write(p []byte) (int, error) {
	if r.status >= http.StatusBadRequest {
		r.body.Write(p)
	}
	return r.ResponseWriter.Write(p)
}

// faultMessage extracts fault_message from a JSON error body, falling
// back to the raw body text.
func faultMessage(body []byte) string {
	var fault struct {
		FaultMessage string `json:"fault_message"`
	}
	if err := json.Unmarshal(body, &fault); err == nil && fault.FaultMessage != "" {
		return fault.FaultMessage
	}
	return strings.TrimSpace(string(body))
}
