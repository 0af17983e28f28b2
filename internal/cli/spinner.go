package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Spinner animates a status line on stderr while a slow operation runs.
// It stops on Stop or when the context passed to Start is cancelled.
type Spinner struct {
	w        io.Writer
	message  string
	interval time.Duration

	mu      sync.Mutex
	running bool
	quit    chan struct{}
	exited  chan struct{}
	once    sync.Once
}

func newSpinner(message string) *Spinner {
	return &Spinner{w: os.Stderr, message: message, interval: 80 * time.Millisecond}
}

// Start launches the animation. Calling Start twice has no effect.
func (s *Spinner) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}
	s.running = true
	s.quit = make(chan struct{})
	s.exited = make(chan struct{})

	go func() {
		defer close(s.exited)
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		for i := 0; ; i++ {
			select {
			case <-ctx.Done():
				return
			case <-s.quit:
				return
			case <-ticker.C:
				s.mu.Lock()
				fmt.Fprintf(s.w, "\r%s %s", styleIconSpinner.Render(spinnerFrames[i%len(spinnerFrames)]), StyleDim.Render(s.message))
				s.mu.Unlock()
			}
		}
	}()
}

// Stop ends the animation and blanks the line. It is safe to call more
// than once and before Start.
func (s *Spinner) Stop() {
	s.mu.Lock()
	running := s.running
	s.mu.Unlock()
	if !running {
		return
	}

	s.once.Do(func() { close(s.quit) })
	<-s.exited

	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.w, "\r%s\r", strings.Repeat(" ", len(s.message)+4))
}

// StopWithError stops the spinner and prints message as a failure line.
func (s *Spinner) StopWithError(message string) {
	s.Stop()
	printError("%s", message)
}
