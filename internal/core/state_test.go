package core

import (
	"errors"
	"testing"
)

func TestStateBoardTransitions(t *testing.T) {
	b := NewStateBoard()

	if st := b.Get(1, FeatureInsights); st.Status != StatusIdle {
		t.Fatalf("initial status = %s, want idle", st.Status)
	}
	if err := b.Begin(1, FeatureInsights); err != nil {
		t.Fatalf("Begin() error = %v", err)
	}
	if err := b.Begin(1, FeatureInsights); !errors.Is(err, ErrBusy) {
		t.Fatalf("second Begin() error = %v, want ErrBusy", err)
	}
	if err := b.Begin(2, FeatureInsights); err != nil {
		t.Errorf("Begin() for another user error = %v", err)
	}
	if err := b.Begin(1, FeatureQuickQuestion); err != nil {
		t.Errorf("Begin() for another feature error = %v", err)
	}

	b.Fail(1, FeatureInsights, "falhou")
	st := b.Get(1, FeatureInsights)
	if st.Status != StatusError || st.Message != "falhou" {
		t.Errorf("state after Fail = %+v", st)
	}
	if err := b.Begin(1, FeatureInsights); err != nil {
		t.Errorf("Begin() after error = %v", err)
	}
	b.Succeed(1, FeatureInsights)
	if st := b.Get(1, FeatureInsights); st.Status != StatusSuccess || st.Message != "" {
		t.Errorf("state after Succeed = %+v", st)
	}
}

func TestStateBoardSubscribe(t *testing.T) {
	b := NewStateBoard()
	events, cancel := b.Subscribe(7)

	b.Begin(7, FeatureChat)
	b.Begin(8, FeatureChat)
	b.Succeed(7, FeatureChat)

	first, second := <-events, <-events
	if first.State.Status != StatusLoading || second.State.Status != StatusSuccess {
		t.Errorf("events = %+v, %+v", first, second)
	}
	select {
	case ev := <-events:
		t.Errorf("unexpected event %+v", ev)
	default:
	}

	cancel()
	cancel()
	if _, ok := <-events; ok {
		t.Error("channel should be closed after cancel")
	}
	b.Fail(7, FeatureChat, "x")
}

func TestFeatureValid(t *testing.T) {
	if !FeatureMonthSummary.Valid() || Feature("home").Valid() {
		t.Error("Feature.Valid() mismatch")
	}
}
