package console

import (
	"bufio"
	"context"
	"errors"
	"io"

	"github.com/peterkuimelis/homeworlds/internal/game"
)

// Session drives one game from console input.
type Session struct {
	g       *game.Game
	r       *Renderer
	lastSeq int
}

// NewSession wraps g for console play. Events already logged by g are
// considered seen.
func NewSession(g *game.Game, r *Renderer) *Session {
	s := &Session{g: g, r: r}
	if events := g.Logger.Events(); len(events) > 0 {
		s.lastSeq = events[len(events)-1].Seq
	}
	return s
}

// Exec runs one line. It reports whether the session should stop and the
// error the command failed with, if any. Errors are rendered as well.
func (s *Session) Exec(line string) (bool, error) {
	cmd, err := ParseCommand(line)
	if errors.Is(err, ErrEmptyCommand) {
		return false, nil
	}
	if err != nil {
		s.r.Error(err)
		return false, err
	}

	switch cmd.Kind {
	case KindQuit:
		return true, nil
	case KindHelp:
		s.r.Text(Usage)
		return false, nil
	case KindStatus:
		s.r.Board(s.g)
		return false, nil
	case KindBank:
		s.r.Bank(s.g.Bank())
		return false, nil
	}

	if err := cmd.Apply(s.g); err != nil {
		s.r.Error(err)
		return false, err
	}
	s.flushEvents()
	if _, over := s.g.Winner(); over {
		s.r.Board(s.g)
		return true, nil
	}
	return false, nil
}

// flushEvents renders every event logged since the last call.
func (s *Session) flushEvents() {
	for _, e := range s.g.Logger.Events() {
		if e.Seq <= s.lastSeq {
			continue
		}
		s.r.Event(e)
		s.lastSeq = e.Seq
	}
}

// Run reads commands from in until quit, the end of input, the end of the
// game or cancellation of ctx.
func (s *Session) Run(ctx context.Context, in io.Reader) error {
	s.r.Board(s.g)
	scanner := bufio.NewScanner(in)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		s.r.Prompt(s.g)
		if !scanner.Scan() {
			return scanner.Err()
		}
		if stop, _ := s.Exec(scanner.Text()); stop {
			return nil
		}
	}
}
