package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordBuild(t *testing.T) {
	tests := []struct {
		format  string
		success bool
		label   []string
	}{
		{"zip", true, []string{"zip", "success"}},
		{"rar", false, []string{"rar", "error"}},
		{"", false, []string{"unknown", "error"}},
	}
	for _, tt := range tests {
		c := buildsTotal.WithLabelValues(tt.label...)
		before := testutil.ToFloat64(c)
		RecordBuild(tt.format, 10*time.Millisecond, tt.success)
		if got := testutil.ToFloat64(c) - before; got != 1 {
			t.Errorf("RecordBuild(%q, %v) incremented %v by %v, want 1", tt.format, tt.success, tt.label, got)
		}
	}
}

func TestTaskGauges(t *testing.T) {
	queued := testutil.ToFloat64(tasksQueued)
	running := testutil.ToFloat64(tasksRunning)

	TaskQueued()
	TaskQueued()
	TaskStarted()
	if got := testutil.ToFloat64(tasksQueued) - queued; got != 1 {
		t.Errorf("queued delta = %v, want 1", got)
	}
	if got := testutil.ToFloat64(tasksRunning) - running; got != 1 {
		t.Errorf("running delta = %v, want 1", got)
	}

	TaskStarted()
	TaskFinished()
	TaskFinished()
	if got := testutil.ToFloat64(tasksQueued); got != queued {
		t.Errorf("queued = %v, want %v", got, queued)
	}
	if got := testutil.ToFloat64(tasksRunning); got != running {
		t.Errorf("running = %v, want %v", got, running)
	}
}

func TestRecordEntry(t *testing.T) {
	ok := entriesTotal.WithLabelValues("success")
	failed := entriesTotal.WithLabelValues("error")
	okBefore, failedBefore := testutil.ToFloat64(ok), testutil.ToFloat64(failed)
	bytesBefore := testutil.ToFloat64(bytesWritten)

	RecordEntry(1024, true)
	RecordEntry(0, false)

	if got := testutil.ToFloat64(ok) - okBefore; got != 1 {
		t.Errorf("success delta = %v, want 1", got)
	}
	if got := testutil.ToFloat64(failed) - failedBefore; got != 1 {
		t.Errorf("error delta = %v, want 1", got)
	}
	if got := testutil.ToFloat64(bytesWritten) - bytesBefore; got != 1024 {
		t.Errorf("bytes delta = %v, want 1024", got)
	}
}

func TestHandler(t *testing.T) {
	RecordSourceRemoved()
	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "arpv_source_archives_removed_total") {
		t.Error("metrics output missing arpv_source_archives_removed_total")
	}
}
