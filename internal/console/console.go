// Package console is the interactive front end: it turns typed line commands
// into events and prints state snapshots.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/couchcryptid/flypad/internal/state"
)

// Loop is the part of the reducer loop the console talks to.
type Loop interface {
	Send(ctx context.Context, ev state.Event) error
	Snapshot() state.State
}

const usage = `commands:
  dep <ICAO>              set departure station
  arr <ICAO>              set arrival station
  notes dep|arr <text>    replace slot notes
  user <id>               set flight-planning user id
  save | load             persist or restore the user id
  plan                    fetch the latest flight plan
  weather                 refresh weather for both slots
  show                    print the current state
  quit`

var errUnknownCommand = errors.New("unknown command")

// action is one parsed input line.
type action struct {
	event state.Event
	show  bool
	help  bool
	quit  bool
}

// Run reads commands from in until quit, EOF, or ctx ends.
func Run(ctx context.Context, in io.Reader, out io.Writer, loop Loop) error {
	lines := make(chan string)
	scanErr := make(chan error, 1)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
		scanErr <- sc.Err()
	}()

	fmt.Fprintln(out, `flypad ready, type "help" for commands`)
	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-scanErr:
					if err != nil {
						return fmt.Errorf("read input: %w", err)
					}
				default:
				}
				return nil
			}

			a, err := parseLine(line)
			if err != nil {
				fmt.Fprintf(out, "error: %v\n", err)
				continue
			}
			switch {
			case a.quit:
				return nil
			case a.help:
				fmt.Fprintln(out, usage)
			case a.show:
				fmt.Fprint(out, Render(loop.Snapshot()))
			case a.event != nil:
				if err := loop.Send(ctx, a.event); err != nil {
					return nil
				}
			}
		}
	}
}

func parseLine(line string) (action, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return action{}, nil
	}
	verb, args := strings.ToLower(fields[0]), fields[1:]

	switch verb {
	case "dep", "arr":
		if len(args) != 1 {
			return action{}, fmt.Errorf("usage: %s <ICAO>", verb)
		}
		return action{event: state.EditIdentifier{Slot: slotFor(verb), Identifier: strings.ToUpper(args[0])}}, nil
	case "notes":
		slot, text := "", ""
		if len(args) > 0 {
			slot = strings.ToLower(args[0])
			text = afterFields(line, 2)
		}
		if slot != "dep" && slot != "arr" {
			return action{}, errors.New("usage: notes dep|arr <text>")
		}
		return action{event: state.EditNotes{Slot: slotFor(slot), Text: text}}, nil
	case "user":
		if len(args) != 1 {
			return action{}, errors.New("usage: user <id>")
		}
		return action{event: state.SetUserID{UserID: args[0]}}, nil
	case "save":
		return action{event: state.SaveUserID{}}, nil
	case "load":
		return action{event: state.LoadUserID{}}, nil
	case "plan":
		return action{event: state.FetchFlightPlan{}}, nil
	case "weather":
		return action{event: state.RefreshWeather{}}, nil
	case "show":
		return action{show: true}, nil
	case "help", "?":
		return action{help: true}, nil
	case "quit", "exit":
		return action{quit: true}, nil
	}
	return action{}, fmt.Errorf("%w %q", errUnknownCommand, verb)
}

// afterFields returns line with its first n whitespace-separated fields
// removed. Spacing inside the remainder is kept as typed.
func afterFields(line string, n int) string {
	rest := strings.TrimLeft(line, " \t")
	for range n {
		i := strings.IndexAny(rest, " \t")
		if i < 0 {
			return ""
		}
		rest = strings.TrimLeft(rest[i:], " \t")
	}
	return strings.TrimRight(rest, " \t\r")
}

func slotFor(s string) state.SlotID {
	if s == "arr" {
		return state.Arrival
	}
	return state.Departure
}
