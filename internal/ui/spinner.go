package ui

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// Spinner shows progress for slow operations, typically API fetches.
// When stderr is not a terminal it degrades to a single printed line.
type Spinner struct {
	message  string
	frames   []string
	mu       sync.Mutex
	stop     chan struct{}
	done     bool
	writer   io.Writer
	animated bool
}

// NewSpinner creates a new spinner with a message.
func NewSpinner(message string) *Spinner {
	return &Spinner{
		message:  message,
		frames:   []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"},
		stop:     make(chan struct{}),
		writer:   os.Stderr,
		animated: IsTTY(),
	}
}

// Start starts the spinner animation.
func (s *Spinner) Start() {
	if !s.animated {
		fmt.Fprintf(s.writer, "%s...\n", s.message)
		return
	}

	go func() {
		ticker := time.NewTicker(80 * time.Millisecond)
		defer ticker.Stop()

		i := 0
		for {
			select {
			case <-s.stop:
				return
			case <-ticker.C:
				s.mu.Lock()
				frame := s.frames[i%len(s.frames)]
				fmt.Fprintf(s.writer, "\r%s %s", Primary(frame), s.message)
				i++
				s.mu.Unlock()
			}
		}
	}()
}

// Update updates the spinner message.
func (s *Spinner) Update(message string) {
	s.mu.Lock()
	s.message = message
	s.mu.Unlock()
}

// Stop stops the spinner and clears the line.
func (s *Spinner) Stop() {
	if s.done {
		return
	}
	s.done = true
	close(s.stop)

	if s.animated {
		fmt.Fprintf(s.writer, "\r%s\r", strings.Repeat(" ", 80))
	}
}

// Success stops the spinner and shows a success message.
func (s *Spinner) Success(message string) {
	s.Stop()
	fmt.Fprintln(s.writer, Done(message))
}

// Error stops the spinner and shows an error message.
func (s *Spinner) Error(message string) {
	s.Stop()
	fmt.Fprintln(s.writer, Failed(message))
}
