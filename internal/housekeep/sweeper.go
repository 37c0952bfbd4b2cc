// Package housekeep removes recorded chat messages after a settling delay,
// honoring each user's auto delete preference.
package housekeep

import (
	"context"
	"fmt"
	"sync"
	"time"

	"duitbot/internal/logger"
)

// DefaultDelay is how long a recorded conversation stays visible before
// the sweeper removes it.
const DefaultDelay = 30 * time.Second

// Deleter removes one message from a chat.
type Deleter interface {
	DeleteMessage(chatID int64, messageID int) error
}

// Prefs reports whether a user wants recorded messages swept.
type Prefs interface {
	AutoDelete(userID int64) bool
}

// Request names the messages of one recorded transaction.
type Request struct {
	ChatID     int64
	UserID     int64
	MessageIDs []int
	Delay      time.Duration
}

// Sweeper consumes requests on a single worker goroutine, so deletes stay
// ordered per enqueue. Suitable for a single bot instance.
type Sweeper struct {
	deleter   Deleter
	prefs     Prefs
	reqChan   chan Request
	closeChan chan struct{}
	wg        sync.WaitGroup
	mu        sync.RWMutex
	closed    bool
}

// NewSweeper creates a sweeper. bufferSize determines how many requests
// can be queued before Enqueue blocks.
func NewSweeper(deleter Deleter, prefs Prefs, bufferSize int) *Sweeper {
	return &Sweeper{
		deleter:   deleter,
		prefs:     prefs,
		reqChan:   make(chan Request, bufferSize),
		closeChan: make(chan struct{}),
	}
}

// Start launches the worker. It exits when ctx is canceled or Stop is called.
func (s *Sweeper) Start(ctx context.Context) {
	s.wg.Add(1)
	go s.worker(ctx)
}

// Enqueue schedules the messages in req for deletion after req.Delay.
func (s *Sweeper) Enqueue(ctx context.Context, req Request) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return fmt.Errorf("sweeper is closed")
	}
	if len(req.MessageIDs) == 0 {
		return nil
	}

	select {
	case s.reqChan <- req:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-s.closeChan:
		return fmt.Errorf("sweeper is closed")
	}
}

func (s *Sweeper) worker(ctx context.Context) {
	defer s.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.closeChan:
			return
		case req := <-s.reqChan:
			s.process(ctx, req)
		}
	}
}

func (s *Sweeper) process(ctx context.Context, req Request) {
	if !s.wait(ctx, req.Delay) {
		return
	}

	// The preference is read after the delay; a toggle during the window
	// still applies.
	if !s.prefs.AutoDelete(req.UserID) {
		return
	}

	log := logger.FromContext(ctx)
	for _, id := range req.MessageIDs {
		if err := s.deleter.DeleteMessage(req.ChatID, id); err != nil {
			log.Debug().Err(err).
				Int64("chat_id", req.ChatID).
				Int("message_id", id).
				Msg("delete message failed")
		}
	}
}

// wait sleeps for d, returning false when interrupted by shutdown.
func (s *Sweeper) wait(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return true
	case <-ctx.Done():
		return false
	case <-s.closeChan:
		return false
	}
}

// Stop closes the sweeper and waits for the worker, honoring ctx's deadline.
func (s *Sweeper) Stop(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	close(s.closeChan)
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
