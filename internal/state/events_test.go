package state

import (
	"reflect"
	"testing"
)

func TestEventsDeliverInSubscriptionOrder(t *testing.T) {
	events := NewEvents()
	var got []string
	events.OnDidOpenPath(func(p string) { got = append(got, "first:"+p) })
	events.OnDidOpenPath(func(p string) { got = append(got, "second:"+p) })
	events.OnDidCreatePath(func(p string) { got = append(got, "create:"+p) })

	events.emitCreate("/x")
	events.emitOpen("/x")

	want := []string{"create:/x", "first:/x", "second:/x"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestEventsUnsubscribe(t *testing.T) {
	events := NewEvents()
	calls := 0
	unsubscribe := events.OnDidOpenPath(func(string) { calls++ })
	other := 0
	events.OnDidOpenPath(func(string) { other++ })

	events.emitOpen("/a")
	unsubscribe()
	unsubscribe()
	events.emitOpen("/b")

	if calls != 1 || other != 2 {
		t.Fatalf("calls=%d other=%d, want 1 and 2", calls, other)
	}
}

func TestNilEventsAreSafe(t *testing.T) {
	var events *Events
	events.OnDidCreatePath(func(string) {})()
	events.emitOpen("/a")
}
