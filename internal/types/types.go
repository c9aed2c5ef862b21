package types

// Match represents one rule matching one token position of an input.
type Match struct {
	Rule       string
	Filename   string
	Line       int // 1-based line number within the file
	TokenIndex int
	TokenText  string
	Offset     int // rune offset of the token within its line
	Length     int // rune length of the token
}
