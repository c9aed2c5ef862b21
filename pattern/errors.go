package pattern

import (
	"errors"
	"fmt"
)

// ErrKind classifies parse failures.
type ErrKind int

const (
	// MalformedInput covers statements that do not match `name : expression`,
	// continuation lines with no statement in progress, and input that ends
	// where a literal token was still required.
	MalformedInput ErrKind = iota
	// GrammarError covers leftover tokens after a complete expression and
	// literal tokens that do not match what was found.
	GrammarError
	// UnknownAtom is reported when the injected atom constructor rejects a
	// matched atom substring.
	UnknownAtom
)

func (k ErrKind) String() string {
	switch k {
	case MalformedInput:
		return "malformed input"
	case GrammarError:
		return "grammar error"
	case UnknownAtom:
		return "unknown atom"
	default:
		return "unknown error"
	}
}

// ParseError is the single structured error type surfaced by the statement
// scanner, the combinator parser, and the registry. Text carries the statement
// or expression involved so callers can report the offending input verbatim.
type ParseError struct {
	Kind     ErrKind
	Text     string // the statement or expression being parsed
	Expected string // literal token or shape that was required, if any
	Found    string // what was found instead; empty when input was exhausted
	Msg      string
}

func (e *ParseError) Error() string {
	s := fmt.Sprintf("%s: %s", e.Kind, e.Msg)
	if e.Expected != "" {
		if e.Found == "" {
			s = fmt.Sprintf("%s: expected %q but input is empty", e.Kind, e.Expected)
		} else {
			s = fmt.Sprintf("%s: expected %q, found %q", e.Kind, e.Expected, e.Found)
		}
	}
	if e.Text != "" {
		s += fmt.Sprintf(" in %q", e.Text)
	}
	return s
}

// IsMalformedInput reports whether err is a ParseError of kind MalformedInput.
func IsMalformedInput(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe) && pe.Kind == MalformedInput
}

// IsGrammarError reports whether err is a ParseError of kind GrammarError or
// UnknownAtom (unknown atoms surface as part of the grammar-error family).
func IsGrammarError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe) && (pe.Kind == GrammarError || pe.Kind == UnknownAtom)
}
