package realtime

import (
	"testing"
)

func TestBroadcaster_PublishDeliversToSubscriber(t *testing.T) {
	b := NewBroadcaster()
	ch := b.Subscribe()
	defer b.Unsubscribe(ch)

	if n := b.Publish("slide"); n != 1 {
		t.Errorf("delivered %d, want 1", n)
	}
	got := <-ch
	if got != "slide" {
		t.Errorf("got event %q, want %q", got, "slide")
	}
}

func TestBroadcaster_PublishDeliversToMultipleSubscribers(t *testing.T) {
	b := NewBroadcaster()
	ch1 := b.Subscribe()
	ch2 := b.Subscribe()
	defer b.Unsubscribe(ch1)
	defer b.Unsubscribe(ch2)

	b.Publish("chart", "slide")
	for _, ch := range []chan Event{ch1, ch2} {
		if got := <-ch; got != "chart" {
			t.Errorf("first event %q, want chart", got)
		}
		if got := <-ch; got != "slide" {
			t.Errorf("second event %q, want slide", got)
		}
	}
}

func TestBroadcaster_UnsubscribeClosesChannel(t *testing.T) {
	b := NewBroadcaster()
	ch := b.Subscribe()
	b.Unsubscribe(ch)
	if _, open := <-ch; open {
		t.Error("channel should be closed after Unsubscribe")
	}
	// Second unsubscribe must not panic on a closed channel.
	b.Unsubscribe(ch)
}

func TestBroadcaster_UnsubscribeRemovesFromDelivery(t *testing.T) {
	b := NewBroadcaster()
	ch1 := b.Subscribe()
	ch2 := b.Subscribe()
	b.Unsubscribe(ch1)
	b.Publish("countdown")
	if got := <-ch2; got != "countdown" {
		t.Errorf("ch2 got %q, want countdown", got)
	}
	if b.Len() != 1 {
		t.Errorf("Len = %d, want 1", b.Len())
	}
	b.Unsubscribe(ch2)
}

func TestBroadcaster_FullSubscriberDropsEvents(t *testing.T) {
	b := NewBroadcaster()
	ch := b.Subscribe()
	defer b.Unsubscribe(ch)

	total := 0
	for i := 0; i < cap(ch)+5; i++ {
		total += b.Publish("tick")
	}
	if total != cap(ch) {
		t.Errorf("delivered %d, want buffer size %d", total, cap(ch))
	}
}

func TestBroadcaster_CloseRejectsSubscribers(t *testing.T) {
	b := NewBroadcaster()
	ch := b.Subscribe()
	b.Close()
	if _, open := <-ch; open {
		t.Error("existing subscriber should be closed")
	}
	late := b.Subscribe()
	if _, open := <-late; open {
		t.Error("subscriber after Close should get a closed channel")
	}
	if b.Publish("slide") != 0 {
		t.Error("publish after Close should deliver nothing")
	}
	b.Close()
}
