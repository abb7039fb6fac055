package audit

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLogAndEvents(t *testing.T) {
	logger := NewLogger(t.TempDir())
	study := "s_WP001-CXRP001-CXRS001_plant-stress-response-analysis"

	if err := logger.LogEvent(EventCreate, study, "3 directories"); err != nil {
		t.Fatalf("LogEvent() error = %v", err)
	}
	if err := logger.LogEvent(EventPolicy, study, "created"); err != nil {
		t.Fatalf("LogEvent() error = %v", err)
	}

	events, err := logger.Events(study)
	if err != nil {
		t.Fatalf("Events() error = %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("len(events) = %d, want 2", len(events))
	}
	if events[0].Type != EventCreate || events[1].Type != EventPolicy {
		t.Errorf("event order = %s, %s; want create, policy", events[0].Type, events[1].Type)
	}
	if events[0].Timestamp.IsZero() {
		t.Error("timestamp should be set automatically")
	}
}

func TestEvents_NoLog(t *testing.T) {
	logger := NewLogger(t.TempDir())

	events, err := logger.Events("unknown-study")
	if err != nil {
		t.Fatalf("Events() error = %v", err)
	}
	if events != nil {
		t.Errorf("Events() = %v, want nil for missing log", events)
	}
}

func TestEvents_SkipsMalformedLines(t *testing.T) {
	stateDir := t.TempDir()
	logger := NewLogger(stateDir)
	study := "s_test"

	if err := logger.LogEvent(EventCreate, study, ""); err != nil {
		t.Fatalf("LogEvent() error = %v", err)
	}

	path := filepath.Join(stateDir, "studies", study+".events.jsonl")
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		t.Fatalf("Failed to open log: %v", err)
	}
	if _, err := f.WriteString("{garbage\n"); err != nil {
		t.Fatalf("Failed to append garbage: %v", err)
	}
	f.Close()

	if err := logger.Log(Event{Type: EventError, Study: study, Timestamp: time.Now()}); err != nil {
		t.Fatalf("Log() error = %v", err)
	}

	events, err := logger.Events(study)
	if err != nil {
		t.Fatalf("Events() error = %v", err)
	}
	if len(events) != 2 {
		t.Errorf("len(events) = %d, want 2 (malformed line skipped)", len(events))
	}
}
