package system

import (
	"context"
	"fmt"
	"testing"
)

type recordedService struct {
	name    string
	events  *[]string
	failure error
}

func (s *recordedService) Name() string { return s.name }

func (s *recordedService) Start(ctx context.Context) error {
	if s.failure != nil {
		return s.failure
	}
	*s.events = append(*s.events, "start:"+s.name)
	return nil
}

func (s *recordedService) Stop(ctx context.Context) error {
	*s.events = append(*s.events, "stop:"+s.name)
	return nil
}

func TestManagerStartsInOrderStopsInReverse(t *testing.T) {
	var events []string
	m := NewManager()
	for _, name := range []string{"a", "b", "c"} {
		if err := m.Register(&recordedService{name: name, events: &events}); err != nil {
			t.Fatalf("register %s: %v", name, err)
		}
	}

	if err := m.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := m.Stop(context.Background()); err != nil {
		t.Fatalf("stop: %v", err)
	}

	want := []string{"start:a", "start:b", "start:c", "stop:c", "stop:b", "stop:a"}
	if len(events) != len(want) {
		t.Fatalf("expected %v, got %v", want, events)
	}
	for i := range want {
		if events[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, events)
		}
	}
}

func TestManagerRollsBackOnStartFailure(t *testing.T) {
	var events []string
	m := NewManager()
	_ = m.Register(&recordedService{name: "ok", events: &events})
	_ = m.Register(&recordedService{name: "bad", events: &events, failure: fmt.Errorf("boom")})

	if err := m.Start(context.Background()); err == nil {
		t.Fatalf("expected start failure")
	}
	if len(events) != 2 || events[1] != "stop:ok" {
		t.Fatalf("expected started services stopped on failure, got %v", events)
	}
}

func TestManagerRejectsDuplicatesAndLateRegistration(t *testing.T) {
	var events []string
	m := NewManager()
	if err := m.Register(&recordedService{name: "a", events: &events}); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := m.Register(&recordedService{name: "a", events: &events}); err == nil {
		t.Fatalf("expected duplicate registration to fail")
	}

	if err := m.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := m.Register(&recordedService{name: "b", events: &events}); err == nil {
		t.Fatalf("expected registration after start to fail")
	}
}
