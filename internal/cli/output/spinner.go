package output

import (
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Spinner animates a message and a live attempt count while a search runs.
type Spinner struct {
	w        io.Writer
	message  string
	interval time.Duration
	attempts atomic.Uint64

	mu      sync.Mutex
	done    chan struct{}
	stopped chan struct{}
}

// NewSpinner creates a spinner writing to w.
func NewSpinner(w io.Writer, message string) *Spinner {
	return &Spinner{
		w:        w,
		message:  message,
		interval: 100 * time.Millisecond,
	}
}

// Progress records the number of candidates hashed so far.
// Its signature matches pow.ProgressFunc.
func (s *Spinner) Progress(attempts uint64) {
	s.attempts.Store(attempts)
}

// Start begins the animation. Calling Start twice has no effect.
func (s *Spinner) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.done != nil {
		return
	}
	s.done = make(chan struct{})
	s.stopped = make(chan struct{})

	go s.run(s.done, s.stopped)
}

func (s *Spinner) run(done <-chan struct{}, stopped chan<- struct{}) {
	defer close(stopped)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for i := 0; ; i++ {
		s.draw(spinnerFrames[i%len(spinnerFrames)])
		select {
		case <-done:
			return
		case <-ticker.C:
		}
	}
}

func (s *Spinner) draw(frame string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n := s.attempts.Load(); n > 0 {
		fmt.Fprintf(s.w, "\r%s %s (%d attempts)", frame, s.message, n)
		return
	}
	fmt.Fprintf(s.w, "\r%s %s", frame, s.message)
}

// halt stops the goroutine and waits for it. It reports whether the
// spinner was running.
func (s *Spinner) halt() bool {
	s.mu.Lock()
	done, stopped := s.done, s.stopped
	s.done = nil
	s.mu.Unlock()

	if done == nil {
		return false
	}
	close(done)
	<-stopped
	return true
}

// Stop stops the spinner and clears the line.
func (s *Spinner) Stop() {
	if s.halt() {
		fmt.Fprint(s.w, "\r\033[K")
	}
}

// Success stops the spinner with a success message.
func (s *Spinner) Success(message string) {
	s.halt()
	fmt.Fprintf(s.w, "\r\033[K✓ %s\n", message)
}

// Fail stops the spinner with a failure message.
func (s *Spinner) Fail(message string) {
	s.halt()
	fmt.Fprintf(s.w, "\r\033[K✗ %s\n", message)
}
