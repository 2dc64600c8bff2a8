package engine

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/leengari/groupgrid/internal/domain/pass"
)

// MockObserver is a test observer that records events
type MockObserver struct {
	Events []Event
}

func (m *MockObserver) OnEvent(event Event) {
	m.Events = append(m.Events, event)
}

func TestAddObserver(t *testing.T) {
	eng := New()
	observer := &MockObserver{}

	eng.AddObserver(observer)

	if len(eng.observers) != 1 {
		t.Errorf("Expected 1 observer, got %d", len(eng.observers))
	}
}

func TestRemoveObserver(t *testing.T) {
	eng := New()
	observer := &MockObserver{}

	eng.AddObserver(observer)
	eng.RemoveObserver(observer)

	if len(eng.observers) != 0 {
		t.Errorf("Expected 0 observers, got %d", len(eng.observers))
	}
}

func TestNotifyWithNoObservers(t *testing.T) {
	eng := New()

	// Should not panic
	eng.notify(pass.New(), Event{Type: EventGroupStart})
}

func TestNotifyWithMultipleObservers(t *testing.T) {
	eng := New()
	observer1 := &MockObserver{}
	observer2 := &MockObserver{}

	eng.AddObserver(observer1)
	eng.AddObserver(observer2)

	p := pass.New()
	eng.notify(p, Event{Type: EventGroupStart, Data: 4})

	if len(observer1.Events) != 1 {
		t.Errorf("Observer1: Expected 1 event, got %d", len(observer1.Events))
	}
	if len(observer2.Events) != 1 {
		t.Errorf("Observer2: Expected 1 event, got %d", len(observer2.Events))
	}

	if observer1.Events[0].Type != EventGroupStart {
		t.Errorf("Observer1: Expected EventGroupStart, got %v", observer1.Events[0].Type)
	}
	if observer2.Events[0].Type != EventGroupStart {
		t.Errorf("Observer2: Expected EventGroupStart, got %v", observer2.Events[0].Type)
	}
	if observer1.Events[0].PassID != p.ID || observer1.Events[0].PassSeq != p.Seq {
		t.Errorf("Expected pass %s/%d, got %s/%d", p.ID, p.Seq, observer1.Events[0].PassID, observer1.Events[0].PassSeq)
	}
}

func TestEventTimestamp(t *testing.T) {
	eng := New()
	observer := &MockObserver{}
	eng.AddObserver(observer)

	eng.notify(pass.New(), Event{Type: EventGroupStart})

	if observer.Events[0].Timestamp.IsZero() {
		t.Error("Expected timestamp to be set, got zero value")
	}
}

func TestLoggingObserver(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	obs := NewLoggingObserverWith(logger)

	obs.OnEvent(Event{Type: EventRenderEnd, PassID: "p-1", PassSeq: 7, Data: 3})

	out := buf.String()
	for _, s := range []string{"pass_lifecycle", "event=render_end", "pass_id=p-1", "pass_seq=7", "data=3"} {
		if !strings.Contains(out, s) {
			t.Errorf("Expected log to contain %q, got %q", s, out)
		}
	}
}
