package services

import (
	"context"
	"testing"
	"time"
)

func TestSyncQueue_ProcessesEvents(t *testing.T) {
	queue := NewSyncQueue()

	processed := make(chan *ActivityEvent, 1)
	queue.SetProcessor(func(ctx context.Context, event *ActivityEvent) error {
		processed <- event
		return nil
	})

	event := &ActivityEvent{EventID: "test-event", Action: "create", Entity: "task", EntityID: 1}
	if err := queue.Enqueue(event); err != nil {
		t.Fatalf("Enqueue() error = %v", err)
	}

	select {
	case got := <-processed:
		if got.EventID != "test-event" {
			t.Errorf("EventID = %q, expected %q", got.EventID, "test-event")
		}
	case <-time.After(time.Second):
		t.Fatal("event was not processed")
	}
}

func TestSyncQueue_NoProcessor(t *testing.T) {
	queue := NewSyncQueue()

	// Without a processor the event is dropped, not an error
	if err := queue.Enqueue(&ActivityEvent{EventID: "orphan"}); err != nil {
		t.Errorf("Enqueue() without processor error = %v", err)
	}
}

func TestSyncQueue_IsAsync(t *testing.T) {
	queue := NewSyncQueue()
	if queue.IsAsync() {
		t.Error("sync queue should report IsAsync() == false")
	}
	if err := queue.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}
