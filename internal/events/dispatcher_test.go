package events

import (
	"errors"
	"testing"
)

type recordingObserver struct {
	name    string
	handled []Event
	filter  func(string) bool
	err     error
}

func (o *recordingObserver) OnEvent(event Event) error {
	o.handled = append(o.handled, event)
	return o.err
}

func (o *recordingObserver) Name() string { return o.name }

func (o *recordingObserver) ShouldHandle(eventType string) bool {
	if o.filter == nil {
		return true
	}
	return o.filter(eventType)
}

func TestDispatcherDeliversToAllObservers(t *testing.T) {
	d := NewDispatcher()
	a := &recordingObserver{name: "a"}
	b := &recordingObserver{name: "b"}
	d.Register(a)
	d.Register(b)

	d.Dispatch(Event{Type: TypeMatchCompleted, Payload: MatchCompletedEvent{Winner: "team1"}})

	if len(a.handled) != 1 || len(b.handled) != 1 {
		t.Fatalf("expected both observers to receive the event, got %d and %d", len(a.handled), len(b.handled))
	}
	payload, ok := a.handled[0].Payload.(MatchCompletedEvent)
	if !ok {
		t.Fatalf("expected MatchCompletedEvent payload, got %T", a.handled[0].Payload)
	}
	if payload.Winner != "team1" {
		t.Errorf("expected winner team1, got %q", payload.Winner)
	}
}

func TestDispatcherFiltersByShouldHandle(t *testing.T) {
	d := NewDispatcher()
	obs := &recordingObserver{
		name:   "season-only",
		filter: func(eventType string) bool { return eventType == TypeSeasonRolled },
	}
	d.Register(obs)

	d.Dispatch(Event{Type: TypeRoundResolved})
	d.Dispatch(Event{Type: TypeSeasonRolled, Payload: SeasonRolledEvent{From: 1, To: 2}})

	if len(obs.handled) != 1 {
		t.Fatalf("expected 1 handled event, got %d", len(obs.handled))
	}
	if obs.handled[0].Type != TypeSeasonRolled {
		t.Errorf("expected %s, got %s", TypeSeasonRolled, obs.handled[0].Type)
	}
}

func TestDispatcherContinuesPastObserverError(t *testing.T) {
	d := NewDispatcher()
	failing := &recordingObserver{name: "failing", err: errors.New("boom")}
	ok := &recordingObserver{name: "ok"}
	d.Register(failing)
	d.Register(ok)

	d.Dispatch(Event{Type: TypeRewardGranted})

	if len(ok.handled) != 1 {
		t.Errorf("expected delivery to continue after observer error, got %d events", len(ok.handled))
	}
}

func TestDispatcherUnregister(t *testing.T) {
	d := NewDispatcher()
	obs := &recordingObserver{name: "gone"}
	d.Register(obs)
	if d.ObserverCount() != 1 {
		t.Fatalf("expected 1 observer, got %d", d.ObserverCount())
	}

	d.Unregister(obs)
	d.Dispatch(Event{Type: TypeRoundResolved})

	if d.ObserverCount() != 0 {
		t.Errorf("expected 0 observers after unregister, got %d", d.ObserverCount())
	}
	if len(obs.handled) != 0 {
		t.Errorf("expected no events after unregister, got %d", len(obs.handled))
	}
}
