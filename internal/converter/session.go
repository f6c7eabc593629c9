package converter

import "github.com/mcncl/formatdrill/internal/models"

// Side identifies one of the two panes of a Session.
type Side int

const (
	Left Side = iota
	Right
)

func (s Side) String() string {
	if s == Right {
		return "right"
	}
	return "left"
}

// Opposite returns the other side.
func (s Side) Opposite() Side {
	if s == Left {
		return Right
	}
	return Left
}

// Pane is one editable document of a Session.
type Pane struct {
	Format models.Format
	Text   string
}

// Session holds two panes in different formats that are kept in sync.
// An edit to one pane regenerates the other; the regenerated pane is
// written directly and never triggers a regeneration of its own.
type Session struct {
	Left       Pane
	Right      Pane
	LastEdited Side
	// Err is the localized message of the last failed regeneration, or
	// empty when the panes are in sync.
	Err string

	opts Options
}

// NewSession creates a session with leftText in the left pane and the
// right pane generated from it.
func NewSession(left, right models.Format, leftText string, opts Options) *Session {
	s := &Session{
		Left:  Pane{Format: left},
		Right: Pane{Format: right},
		opts:  opts,
	}
	_ = s.Edit(Left, leftText)
	return s
}

// Pane returns the pane on side.
func (s *Session) Pane(side Side) Pane {
	if side == Right {
		return s.Right
	}
	return s.Left
}

func (s *Session) pane(side Side) *Pane {
	if side == Right {
		return &s.Right
	}
	return &s.Left
}

// Edit replaces the text of side, marks it as last edited and regenerates
// the opposite pane. When conversion fails the opposite pane keeps its
// previous text, Err is set and the error is returned.
func (s *Session) Edit(side Side, text string) error {
	src := s.pane(side)
	dst := s.pane(side.Opposite())

	src.Text = text
	s.LastEdited = side

	out, err := Convert(text, src.Format, dst.Format, s.opts)
	if err != nil {
		s.Err = Message(err, src.Format, dst.Format, s.opts.translator())
		return err
	}
	dst.Text = out
	s.Err = ""
	return nil
}
