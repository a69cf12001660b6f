package api

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	json "github.com/goccy/go-json"

	"github.com/vhostd/hostlog/logger"
	"github.com/vhostd/hostlog/sink"
)

func newTestLogger() (*logger.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	l := logger.NewBuilder().WithSink(sink.NewWriterSink(&buf)).Build()
	return l, &buf
}

func putLogger(t *testing.T, h http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPut, "/logger", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeFault(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var fault struct {
		FaultMessage string `json:"fault_message"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &fault); err != nil {
		t.Fatalf("error body %q: %v", rec.Body.String(), err)
	}
	if fault.FaultMessage == "" {
		t.Fatalf("error body %q has no fault_message", rec.Body.String())
	}
	return fault.FaultMessage
}

func TestPutLoggerConfiguresSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "host.log")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	l, buf := newTestLogger()
	h := NewHandler(l)
	rec := putLogger(t, h, `{"log_path":`+quote(path)+`,"level":"Info","show_level":true,"show_log_origin":true}`)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	l.Info("post-configuration line")
	if err := l.Close(); err != nil {
		t.Fatal(err)
	}
	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), "post-configuration line") {
		t.Errorf("configured sink missing line: %q", data)
	}
	// The receipt line precedes Configure, so it lands on the sink
	// that was active when the request arrived.
	if !strings.Contains(buf.String(), `The API server received a Put request on "/logger" with body `) {
		t.Errorf("prior sink missing the audit line: %q", buf.String())
	}
}

func TestPutLoggerBadPath(t *testing.T) {
	l, buf := newTestLogger()
	h := NewHandler(l)

	rec := putLogger(t, h, `{"log_path":"invalid log fifo","level":"Info","show_level":true,"show_log_origin":true}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	fault := decodeFault(t, rec)
	if !strings.Contains(fault, "No such file or directory (os error 2)") {
		t.Errorf("fault %q lacks the OS error description", fault)
	}
	// The failed configuration is audited on the still-active sink.
	if !strings.Contains(buf.String(), "Received Error. Status code: 400 Bad Request. Message: ") {
		t.Errorf("missing error audit line: %q", buf.String())
	}
}

func TestPutLoggerDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "host.log")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	l, _ := newTestLogger()
	defer l.Close()

	// Level and toggles are optional; level defaults to Info and both
	// toggles to true.
	rec := putLogger(t, NewHandler(l), `{"log_path":`+quote(path)+`}`)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	l.Debug("must be filtered at the default threshold")
	l.Info("must appear")
	data, _ := os.ReadFile(path)
	if strings.Contains(string(data), "filtered at the default") {
		t.Error("debug line passed the default Info threshold")
	}
	if !strings.Contains(string(data), "must appear") {
		t.Errorf("info line missing: %q", data)
	}
}

func TestPutLoggerRejectsUnknownField(t *testing.T) {
	l, _ := newTestLogger()
	rec := putLogger(t, NewHandler(l), `{"invalid_field":"log","level":"Warning"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	decodeFault(t, rec)
}

func TestPutLoggerRejectsUnknownLevel(t *testing.T) {
	l, _ := newTestLogger()
	rec := putLogger(t, NewHandler(l), `{"log_path":"log","level":"Loud"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if fault := decodeFault(t, rec); !strings.Contains(fault, "Loud") {
		t.Errorf("fault %q does not name the bad level", fault)
	}
}

func TestLoggerResourceRejectsGet(t *testing.T) {
	l, _ := newTestLogger()
	req := httptest.NewRequest(http.MethodGet, "/logger", nil)
	rec := httptest.NewRecorder()
	NewHandler(l).ServeHTTP(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", rec.Code)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	l, _ := newTestLogger()
	l.Info("bump the counters")

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	NewHandler(l).ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "hostlog_lines_emitted_total") {
		t.Error("metrics output missing hostlog counters")
	}
}

// quote JSON-quotes a path for inclusion in a request body.
func quote(path string) string {
	b, _ := json.Marshal(path)
	return string(b)
}
