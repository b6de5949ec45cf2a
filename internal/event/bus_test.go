package event

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestBus_Subscribe(t *testing.T) {
	bus := NewBus()
	defer bus.Close()

	var received Event
	var wg sync.WaitGroup
	wg.Add(1)

	unsub := bus.Subscribe(CommandExecuted, func(e Event) {
		received = e
		wg.Done()
	})
	defer unsub()

	bus.Publish(Event{Type: CommandExecuted, Data: "file.read"})

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		if received.Type != CommandExecuted {
			t.Errorf("Expected CommandExecuted, got %v", received.Type)
		}
		if received.Data != "file.read" {
			t.Errorf("Expected 'file.read', got %v", received.Data)
		}
	case <-time.After(time.Second):
		t.Fatal("Timed out waiting for event")
	}
}

func TestBus_SubscribeAll(t *testing.T) {
	bus := NewBus()
	defer bus.Close()

	var count int32
	unsub := bus.SubscribeAll(func(e Event) {
		atomic.AddInt32(&count, 1)
	})
	defer unsub()

	bus.PublishSync(Event{Type: CommandExecuted})
	bus.PublishSync(Event{Type: PlanCreated})
	bus.PublishSync(Event{Type: StepCompleted})

	if got := atomic.LoadInt32(&count); got != 3 {
		t.Errorf("Expected 3 events, got %d", got)
	}
}

func TestBus_PublishSyncOrder(t *testing.T) {
	bus := NewBus()
	defer bus.Close()

	var order []int
	for i := 0; i < 5; i++ {
		i := i
		bus.Subscribe(PlanCreated, func(e Event) {
			order = append(order, i)
		})
	}

	bus.PublishSync(Event{Type: PlanCreated})

	for i, got := range order {
		if got != i {
			t.Fatalf("subscriber order = %v, want registration order", order)
		}
	}
	if len(order) != 5 {
		t.Fatalf("expected 5 deliveries, got %d", len(order))
	}
}

func TestBus_PanickingSubscriberDoesNotAbortOthers(t *testing.T) {
	bus := NewBus()
	defer bus.Close()

	var after int32
	bus.Subscribe(CommandExecuted, func(e Event) {
		panic("faulty observer")
	})
	bus.Subscribe(CommandExecuted, func(e Event) {
		atomic.AddInt32(&after, 1)
	})

	bus.PublishSync(Event{Type: CommandExecuted})

	if atomic.LoadInt32(&after) != 1 {
		t.Error("subscriber after panicking one was not called")
	}
}

func TestBus_Unsubscribe(t *testing.T) {
	bus := NewBus()
	defer bus.Close()

	var count int32
	unsub := bus.Subscribe(PlanCompleted, func(e Event) {
		atomic.AddInt32(&count, 1)
	})

	bus.PublishSync(Event{Type: PlanCompleted})
	unsub()
	bus.PublishSync(Event{Type: PlanCompleted})

	if got := atomic.LoadInt32(&count); got != 1 {
		t.Errorf("Expected 1 event after unsubscribe, got %d", got)
	}
}

func TestBus_ClosedBusDropsEvents(t *testing.T) {
	bus := NewBus()

	var count int32
	bus.Subscribe(PlanFailed, func(e Event) {
		atomic.AddInt32(&count, 1)
	})

	if err := bus.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	bus.PublishSync(Event{Type: PlanFailed})

	if atomic.LoadInt32(&count) != 0 {
		t.Error("expected no delivery after Close")
	}
}
