package core

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"utfpr.edu.br/menfin/internal/store"
)

var ErrQueueFull = errors.New("too many messages waiting for the mentor")

const laneIdleTimeout = time.Minute

// PendingTurn is a message waiting for its turn. It only lives in memory.
type PendingTurn struct {
	ID       uuid.UUID `json:"id"`
	Text     string    `json:"text"`
	QueuedAt time.Time `json:"queued_at"`
}

type turnFunc func(ctx context.Context) (*store.ChatMessage, error)

type chatJob struct {
	ctx  context.Context
	turn PendingTurn
	run  turnFunc
	done chan chatResult
}

type chatResult struct {
	msg *store.ChatMessage
	err error
}

type lane struct {
	jobs     chan *chatJob
	pending  int // queued plus in flight
	waiting  []PendingTurn
	inFlight bool
}

// ChatQueue runs at most one chat turn per user at a time, in arrival order.
type ChatQueue struct {
	mu    sync.Mutex
	lanes map[int64]*lane
	depth int
	idle  time.Duration
}

func NewChatQueue(depth int) *ChatQueue {
	if depth < 1 {
		depth = 1
	}
	return &ChatQueue{
		lanes: make(map[int64]*lane),
		depth: depth,
		idle:  laneIdleTimeout,
	}
}

// Submit enqueues a turn and blocks until it has run or ctx is done.
func (q *ChatQueue) Submit(ctx context.Context, userID int64, text string, run turnFunc) (*store.ChatMessage, error) {
	job := &chatJob{
		ctx:  ctx,
		turn: PendingTurn{ID: uuid.New(), Text: text, QueuedAt: time.Now().UTC()},
		run:  run,
		done: make(chan chatResult, 1),
	}

	q.mu.Lock()
	l, ok := q.lanes[userID]
	if !ok {
		l = &lane{jobs: make(chan *chatJob, q.depth)}
		q.lanes[userID] = l
		go q.work(userID, l)
	}
	if l.pending >= q.depth {
		q.mu.Unlock()
		return nil, ErrQueueFull
	}
	l.pending++
	l.waiting = append(l.waiting, job.turn)
	q.mu.Unlock()

	l.jobs <- job

	select {
	case res := <-job.done:
		return res.msg, res.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Pending lists the user's turns that have not started yet, oldest first.
func (q *ChatQueue) Pending(userID int64) []PendingTurn {
	q.mu.Lock()
	defer q.mu.Unlock()
	l, ok := q.lanes[userID]
	if !ok {
		return nil
	}
	return append([]PendingTurn(nil), l.waiting...)
}

// Busy reports whether a turn is being answered for the user right now.
func (q *ChatQueue) Busy(userID int64) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	l, ok := q.lanes[userID]
	return ok && l.inFlight
}

func (q *ChatQueue) work(userID int64, l *lane) {
	timer := time.NewTimer(q.idle)
	defer timer.Stop()

	for {
		select {
		case job := <-l.jobs:
			q.start(l, job.turn.ID)
			var res chatResult
			if err := job.ctx.Err(); err != nil {
				res.err = err
			} else {
				res.msg, res.err = job.run(job.ctx)
			}
			job.done <- res

			q.mu.Lock()
			l.pending--
			l.inFlight = false
			q.mu.Unlock()

			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(q.idle)

		case <-timer.C:
			q.mu.Lock()
			if l.pending == 0 {
				delete(q.lanes, userID)
				q.mu.Unlock()
				log.Printf("Chat lane for user %d closed after idle timeout", userID)
				return
			}
			q.mu.Unlock()
			timer.Reset(q.idle)
		}
	}
}

func (q *ChatQueue) start(l *lane, id uuid.UUID) {
	q.mu.Lock()
	defer q.mu.Unlock()
	l.inFlight = true
	for i, turn := range l.waiting {
		if turn.ID == id {
			l.waiting = append(l.waiting[:i], l.waiting[i+1:]...)
			break
		}
	}
}
