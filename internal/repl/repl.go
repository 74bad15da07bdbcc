// Package repl runs the interactive read-eval-print loop over a command interpreter.
package repl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/nibzard/duke-go/internal/command"
	"github.com/nibzard/duke-go/internal/logging"
)

// ErrorPrefix starts every response to a failed command.
const ErrorPrefix = "OOPS!!! "

// Interpreter is the part of *command.Interpreter a session drives.
type Interpreter interface {
	Interpret(line string) (string, error)
	Quit() bool
}

// Session turns interpreter results into response text.
type Session struct {
	interp   Interpreter
	greeting string
	logger   *log.Logger
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the session logger.
func WithLogger(logger *log.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithGreeting sets the text shown when Run starts.
func WithGreeting(greeting string) Option {
	return func(s *Session) {
		s.greeting = greeting
	}
}

// NewSession returns a session over interp.
func NewSession(interp Interpreter, opts ...Option) *Session {
	s := &Session{interp: interp, logger: logging.Discard()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Greeting returns the text shown when a session starts.
func (s *Session) Greeting() string {
	return s.greeting
}

// Handle interprets one line. Failures become a response starting with
// ErrorPrefix; nothing ends the session except bye.
func (s *Session) Handle(line string) (resp string, quit bool) {
	resp, err := s.interp.Interpret(line)
	if err != nil {
		var ce *command.Error
		if !errors.As(err, &ce) {
			s.logger.Error("unexpected interpreter error", "err", err)
		}
		return ErrorPrefix + err.Error(), s.interp.Quit()
	}
	return resp, s.interp.Quit()
}

// Run prints the greeting, then handles lines from r until bye, end of
// input or ctx is done.
func (s *Session) Run(ctx context.Context, r io.Reader, w io.Writer) error {
	if s.greeting != "" {
		if err := writeResponse(w, s.greeting); err != nil {
			return err
		}
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		readErr <- scanner.Err()
	}()

	handled := 0
	for {
		select {
		case <-ctx.Done():
			s.logger.Info("session interrupted", "commands", handled)
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				s.logger.Info("input closed", "commands", handled)
				select {
				case err := <-readErr:
					if err != nil {
						return fmt.Errorf("read input: %w", err)
					}
				default:
				}
				return nil
			}
			resp, quit := s.Handle(line)
			handled++
			if err := writeResponse(w, resp); err != nil {
				return err
			}
			if quit {
				s.logger.Info("session ended", "commands", handled)
				return nil
			}
		}
	}
}

func writeResponse(w io.Writer, resp string) error {
	if !strings.HasSuffix(resp, "\n") {
		resp += "\n"
	}
	_, err := io.WriteString(w, resp)
	return err
}
