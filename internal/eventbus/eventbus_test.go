package eventbus

import "testing"

type progress struct {
	Stage   int
	Message string
}

func TestTypedBusFanOut(t *testing.T) {
	b := NewTyped[progress]()
	defer b.Close()

	a := b.Subscribe()
	c := b.Subscribe()

	b.Publish(progress{Stage: 1, Message: "matching"})

	for _, sub := range []<-chan progress{a, c} {
		select {
		case ev := <-sub:
			if ev.Stage != 1 {
				t.Fatalf("unexpected event %+v", ev)
			}
		default:
			t.Fatalf("subscriber missed the event")
		}
	}
}

func TestTypedBusNonBlockingPublish(t *testing.T) {
	b := NewTyped[int]()
	defer b.Close()
	_ = b.Subscribe()
	// Publishing past the buffer must not block.
	for i := 0; i < 100; i++ {
		b.Publish(i)
	}
}

func TestTypedBusUnsubscribeCloses(t *testing.T) {
	b := NewTyped[int]()
	defer b.Close()
	sub := b.Subscribe()
	b.Unsubscribe(sub)
	if _, ok := <-sub; ok {
		t.Fatalf("unsubscribed channel must be closed")
	}
}

func TestTypedBusPublishAfterClose(t *testing.T) {
	b := NewTyped[int]()
	sub := b.Subscribe()
	b.Close()
	b.Publish(1) // must not panic
	if _, ok := <-sub; ok {
		t.Fatalf("closed bus must close subscriber channels")
	}
	if ch := b.Subscribe(); ch == nil {
		t.Fatalf("subscribe after close returns a closed channel, not nil")
	}
}
