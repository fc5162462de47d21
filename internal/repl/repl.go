package repl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/leengari/queryviz/internal/console"
	"github.com/leengari/queryviz/internal/engine"
	"github.com/leengari/queryviz/internal/plan"
	"github.com/leengari/queryviz/internal/planner"
	"github.com/leengari/queryviz/internal/render"
)

const help = `Commands:
  n, next        advance one step
  p, prev        go back one step
  r, reset       back to FROM_JOIN
  j, jump <step> jump to a step (0-7 or a name like group_by)
  play, pause    auto-advance every interval
  show           redraw the current step
  plan           print the plan tree of the current step
  steps          list every step
  exit, \q       quit`

// session serializes writes from the prompt loop and the play loop
type session struct {
	mu   sync.Mutex
	out  io.Writer
	ctrl *engine.Controller
}

// OnEvent redraws frames the play loop advances to
func (s *session) OnEvent(event engine.Event) {
	if event.Type != engine.EventStepChanged || !s.ctrl.Playing() {
		return
	}
	s.draw(s.ctrl.Current())
}

func (s *session) draw(f engine.Frame) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintln(s.out)
	render.Frame(s.out, f)
}

func (s *session) printf(format string, args ...any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.out, format, args...)
}

// Start runs the interactive loop on in until EOF, exit or ctx is done
func Start(ctx context.Context, ctrl *engine.Controller, in io.Reader, out io.Writer) error {
	s := &session{out: out, ctrl: ctrl}
	ctrl.AddObserver(s)
	defer ctrl.RemoveObserver(s)
	defer ctrl.Pause()

	scanner := bufio.NewScanner(in)
	s.printf("Welcome to QueryViz\n")
	s.printf("Type 'help' for commands, 'exit' or '\\q' to quit.\n")
	s.draw(ctrl.Current())

	for {
		if ctx.Err() != nil {
			return nil
		}
		s.printf("> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())

		if line == "" {
			continue
		}

		if line == "exit" || line == "\\q" {
			return nil
		}

		switch line {
		case "help", "?":
			s.printf("%s\n", help)
			continue
		case "plan":
			s.printf("%s", plan.PrintTree(planner.Plan(ctrl.Step())))
			continue
		case "steps":
			s.mu.Lock()
			render.Steps(out, console.Infos(), ctrl.Step())
			s.mu.Unlock()
			continue
		}

		f, err := ctrl.Dispatch(ctx, engine.ParseCommand(line))
		if err != nil {
			if errors.Is(err, engine.ErrUnknownCommand) {
				s.printf("Error: %v (type 'help')\n", err)
			} else {
				s.printf("Error: %v\n", err)
			}
			continue
		}

		s.draw(f)
	}
}
