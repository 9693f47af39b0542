package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/KirkDiggler/poke-roster/internal/render"
	"github.com/KirkDiggler/poke-roster/internal/services/session"
)

const prompt = "roster> "

const helpText = `Commands:
  load <name-or-id>     look up a Pokémon and show its moves
  add <m1> <m2> <m3> <m4>
                        add the loaded Pokémon with four moves, by number or name
  remove <position>     remove a team member
  clear                 empty the team
  team                  show the loaded Pokémon and the team
  help                  show this help
  quit                  leave
`

// repl reads one command per line and applies it to the session
type repl struct {
	sess     *session.Session
	renderer *render.Renderer
	in       io.Reader
	out      io.Writer
}

func newREPL(sess *session.Session, renderer *render.Renderer, in io.Reader, out io.Writer) *repl {
	return &repl{
		sess:     sess,
		renderer: renderer,
		in:       in,
		out:      out,
	}
}

// Run processes input until quit, end of input or ctx is done
func (r *repl) Run(ctx context.Context) error {
	if err := r.renderer.Roster(nil); err != nil {
		return err
	}

	lines := make(chan string)
	scanErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(r.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		scanErr <- scanner.Err()
	}()

	for {
		if _, err := fmt.Fprint(r.out, prompt); err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			fmt.Fprintln(r.out)
			return nil
		case line, ok := <-lines:
			if !ok {
				fmt.Fprintln(r.out)
				select {
				case err := <-scanErr:
					return err
				default:
					return nil
				}
			}

			quit, err := r.execute(ctx, line)
			if err != nil {
				return err
			}
			if quit {
				return nil
			}
		}
	}
}

// execute runs one command line. The returned error is only set when
// output could not be written.
func (r *repl) execute(ctx context.Context, line string) (bool, error) {
	name, rest, _ := strings.Cut(strings.TrimSpace(line), " ")
	rest = strings.TrimSpace(rest)

	switch strings.ToLower(name) {
	case "":
		return false, nil

	case "quit", "exit":
		return true, nil

	case "help", "?":
		_, err := io.WriteString(r.out, helpText)
		return false, err

	case "load":
		status, err := r.sess.Load(ctx, rest)
		if err != nil {
			slog.Debug("Load failed", "key", rest, "error", err)
		}
		if status.Message == "" {
			return false, nil
		}
		if !status.IsError {
			if err := r.renderer.Creature(r.sess.View().Current); err != nil {
				return false, err
			}
		}
		return false, r.renderer.Status(status)

	case "add":
		selected, unknown := r.resolveMoves(strings.Fields(rest))
		if unknown != "" {
			return false, r.renderer.Status(session.Status{
				Message: fmt.Sprintf("Unknown move %q. Use a number or a name from the move list.", unknown),
				IsError: true,
			})
		}
		status, _ := r.sess.Add(selected)
		return false, r.showRoster(status)

	case "remove", "rm":
		position, err := strconv.Atoi(rest)
		if err != nil {
			return false, r.renderer.Status(session.Status{Message: "Usage: remove <position>", IsError: true})
		}
		status, _ := r.sess.Remove(position - 1)
		return false, r.showRoster(status)

	case "clear":
		return false, r.showRoster(r.sess.Clear())

	case "team", "show":
		return false, r.renderer.View(r.sess.View())

	default:
		return false, r.renderer.Status(session.Status{
			Message: fmt.Sprintf("Unknown command %q. Type \"help\" for the list of commands.", name),
			IsError: true,
		})
	}
}

// resolveMoves maps 1-based positions in the loaded move list to names and
// checks that named moves belong to the loaded creature. It returns the
// first argument that matches neither. Without a loaded creature the
// arguments pass through unchanged.
func (r *repl) resolveMoves(args []string) ([]string, string) {
	current := r.sess.View().Current
	if current == nil {
		return args, ""
	}

	known := make(map[string]struct{}, len(current.Moves))
	for _, m := range current.Moves {
		known[m] = struct{}{}
	}

	selected := make([]string, len(args))
	for i, arg := range args {
		if n, err := strconv.Atoi(arg); err == nil && n >= 1 && n <= len(current.Moves) {
			selected[i] = current.Moves[n-1]
			continue
		}

		name := strings.ToLower(arg)
		if _, ok := known[name]; !ok {
			return nil, arg
		}
		selected[i] = name
	}
	return selected, ""
}

func (r *repl) showRoster(status session.Status) error {
	if !status.IsError {
		if err := r.renderer.Roster(r.sess.View().Members); err != nil {
			return err
		}
	}
	return r.renderer.Status(status)
}
