package core

import (
	"errors"
	"sync"
	"time"
)

// ErrBusy is returned when a feature is already loading for the user.
var ErrBusy = errors.New("a request for this feature is already in progress")

type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

type Feature string

const (
	FeatureQuickQuestion Feature = "quick_question"
	FeatureInsights      Feature = "insights"
	FeatureMonthSummary  Feature = "month_summary"
	FeatureChat          Feature = "chat"
)

func (f Feature) Valid() bool {
	switch f {
	case FeatureQuickQuestion, FeatureInsights, FeatureMonthSummary, FeatureChat:
		return true
	}
	return false
}

// State is what a screen shows for one feature.
type State struct {
	Feature   Feature   `json:"feature"`
	Status    Status    `json:"status"`
	Message   string    `json:"message,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

// StateEvent is published to subscribers on every transition.
type StateEvent struct {
	UserID int64
	State  State
}

type stateKey struct {
	userID  int64
	feature Feature
}

// StateBoard tracks idle -> loading -> success|error per user and feature.
type StateBoard struct {
	mu     sync.Mutex
	states map[stateKey]State
	subs   map[int64]map[chan StateEvent]struct{}
}

func NewStateBoard() *StateBoard {
	return &StateBoard{
		states: make(map[stateKey]State),
		subs:   make(map[int64]map[chan StateEvent]struct{}),
	}
}

// Get returns the current state, idle when nothing ran yet.
func (b *StateBoard) Get(userID int64, feature Feature) State {
	b.mu.Lock()
	defer b.mu.Unlock()
	if st, ok := b.states[stateKey{userID, feature}]; ok {
		return st
	}
	return State{Feature: feature, Status: StatusIdle}
}

// Begin moves the feature to loading, or fails with ErrBusy when it is
// already loading.
func (b *StateBoard) Begin(userID int64, feature Feature) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	key := stateKey{userID, feature}
	if b.states[key].Status == StatusLoading {
		return ErrBusy
	}
	b.setLocked(userID, State{Feature: feature, Status: StatusLoading})
	return nil
}

func (b *StateBoard) Succeed(userID int64, feature Feature) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.setLocked(userID, State{Feature: feature, Status: StatusSuccess})
}

func (b *StateBoard) Fail(userID int64, feature Feature, message string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.setLocked(userID, State{Feature: feature, Status: StatusError, Message: message})
}

// Subscribe streams the user's transitions until cancel is called. Slow
// subscribers miss events rather than block the board.
func (b *StateBoard) Subscribe(userID int64) (<-chan StateEvent, func()) {
	ch := make(chan StateEvent, 16)
	b.mu.Lock()
	if b.subs[userID] == nil {
		b.subs[userID] = make(map[chan StateEvent]struct{})
	}
	b.subs[userID][ch] = struct{}{}
	b.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs[userID], ch)
			if len(b.subs[userID]) == 0 {
				delete(b.subs, userID)
			}
			b.mu.Unlock()
			close(ch)
		})
	}
	return ch, cancel
}

func (b *StateBoard) setLocked(userID int64, st State) {
	st.UpdatedAt = time.Now().UTC()
	b.states[stateKey{userID, st.Feature}] = st
	for ch := range b.subs[userID] {
		select {
		case ch <- StateEvent{UserID: userID, State: st}:
		default:
		}
	}
}
