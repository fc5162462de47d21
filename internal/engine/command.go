package engine

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/leengari/queryviz/internal/domain/stage"
)

// Command is one controller request, shared by the REPL and the network
// protocol
type Command struct {
	Name string `json:"command"`
	Step *int   `json:"step,omitempty"`
	Arg  string `json:"-"` // raw step argument typed at the REPL
}

// ParseCommand splits a REPL line into a Command
func ParseCommand(line string) Command {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Command{}
	}
	cmd := Command{Name: strings.ToLower(fields[0])}
	if len(fields) > 1 {
		cmd.Arg = fields[1]
	}
	return cmd
}

// ParseStep resolves a step argument given as an index ("3") or a name
// ("group_by"). Out-of-range indexes are accepted and clamped later.
func ParseStep(command, input string) (stage.Step, error) {
	if n, err := strconv.Atoi(input); err == nil {
		return stage.Step(n), nil
	}
	if s, ok := stage.Parse(strings.ToUpper(input)); ok {
		return s, nil
	}
	return 0, NewUnparsableStep(command, input)
}

// Dispatch runs cmd against the controller and returns the resulting frame.
// ctx bounds a play command.
func (c *Controller) Dispatch(ctx context.Context, cmd Command) (Frame, error) {
	switch cmd.Name {
	case "n", "next":
		return c.Advance(), nil
	case "p", "prev":
		return c.Retreat(), nil
	case "r", "reset":
		return c.Reset(), nil
	case "j", "jump":
		step, err := cmd.target()
		if err != nil {
			return Frame{}, err
		}
		return c.JumpTo(step), nil
	case "play":
		c.Play(ctx)
		return c.Current(), nil
	case "pause":
		c.Pause()
		return c.Current(), nil
	case "show", "":
		return c.Current(), nil
	default:
		return Frame{}, fmt.Errorf("%w: %q", ErrUnknownCommand, cmd.Name)
	}
}

func (cmd Command) target() (stage.Step, error) {
	if cmd.Step != nil {
		return stage.Step(*cmd.Step), nil
	}
	if cmd.Arg == "" {
		return 0, NewMissingStep(cmd.Name)
	}
	return ParseStep(cmd.Name, cmd.Arg)
}
