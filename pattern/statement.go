package pattern

import "strings"

// StatementScanner splits rule text into logical statements, one
// `name : expression` definition per statement, with multi-line expressions
// already joined. It works like bufio.Scanner: call Scan until it returns
// false, then check Err. A scanner never re-yields a statement; restart by
// constructing a new one.
type StatementScanner struct {
	lines  []string
	idx    int
	cur    string
	curSet bool
	stmt   string
	err    error
}

// NewStatementScanner returns a scanner over the full text of a rule file or
// an in-memory block of the same grammar.
func NewStatementScanner(text string) *StatementScanner {
	return &StatementScanner{lines: strings.Split(text, "\n")}
}

// Scan advances to the next logical statement. Comment lines (`#` in column 1)
// and blank lines terminate an in-progress statement and are themselves
// discarded; a line starting with whitespace continues the current statement;
// a line starting with anything else begins a new one.
func (s *StatementScanner) Scan() bool {
	if s.err != nil {
		return false
	}
	for s.idx < len(s.lines) {
		line := s.lines[s.idx]
		s.idx++
		switch {
		case strings.HasPrefix(line, "#"):
			// Comment only in column 1; indented '#' is continuation content.
			if s.curSet {
				s.emit()
				return true
			}
		case strings.TrimSpace(line) == "":
			if s.curSet {
				s.emit()
				return true
			}
		case line[0] == ' ' || line[0] == '\t':
			if !s.curSet {
				s.err = &ParseError{
					Kind: MalformedInput,
					Text: line,
					Msg:  "continuation line with no statement in progress",
				}
				return false
			}
			s.cur += " " + strings.TrimSpace(line)
		default:
			start := strings.TrimRight(line, " \t\r")
			if s.curSet {
				s.stmt = s.cur
				s.cur = start
				return true
			}
			s.cur = start
			s.curSet = true
		}
	}
	if s.curSet {
		s.emit()
		return true
	}
	return false
}

// Text returns the statement found by the last successful Scan.
func (s *StatementScanner) Text() string {
	return s.stmt
}

// Err returns the first error encountered while scanning, if any.
func (s *StatementScanner) Err() error {
	return s.err
}

func (s *StatementScanner) emit() {
	s.stmt = s.cur
	s.cur = ""
	s.curSet = false
}

// Statements collects every statement of text, stopping at the first error.
func Statements(text string) ([]string, error) {
	sc := NewStatementScanner(text)
	var out []string
	for sc.Scan() {
		out = append(out, sc.Text())
	}
	return out, sc.Err()
}
