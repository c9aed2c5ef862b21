package internal

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/SRI-AIC/valet-sub001/internal/types"
)

var (
	matchStyle = color.New(color.FgGreen, color.Bold)
	ruleStyle  = color.New(color.FgYellow, color.Bold)
	fileStyle  = color.New(color.FgCyan, color.Bold)
	lineStyle  = color.New(color.FgBlue, color.Bold)
	spanStyle  = color.New(color.FgMagenta, color.Bold)
)

// SourceText stores the lines of an input text file.
type SourceText struct {
	Lines []string
}

// ReadSourceText reads a file and splits it into lines.
func ReadSourceText(filename string) (*SourceText, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return &SourceText{Lines: strings.Split(string(content), "\n")}, nil
}

// FormatMatches renders matches of one file with the source line and a marker
// under the matched token.
func FormatMatches(matches []types.Match, source *SourceText) string {
	var builder strings.Builder
	for _, m := range matches {
		builder.WriteString(formatMatchHeader(m))
		builder.WriteString(formatMatchLine(m, source))
	}
	return builder.String()
}

func formatMatchHeader(m types.Match) string {
	return matchStyle.Sprint("match: ") + ruleStyle.Sprint(m.Rule) + "\n" +
		lineStyle.Sprint(" --> ") + fileStyle.Sprintf("%s:%d", m.Filename, m.Line) + "\n"
}

func formatMatchLine(m types.Match, source *SourceText) string {
	if source == nil || m.Line < 1 || m.Line > len(source.Lines) {
		return spanStyle.Sprintf("  %s\n\n", m.TokenText)
	}
	var result strings.Builder

	lineNumberStr := fmt.Sprintf("%d", m.Line)
	padding := strings.Repeat(" ", len(lineNumberStr))
	line := source.Lines[m.Line-1]

	result.WriteString(lineStyle.Sprintf(" %s |\n", padding))
	result.WriteString(lineStyle.Sprintf(" %s | ", lineNumberStr))
	result.WriteString(line + "\n")
	result.WriteString(lineStyle.Sprintf(" %s | ", padding))
	result.WriteString(strings.Repeat(" ", visualWidth(line, m.Offset)))
	result.WriteString(spanStyle.Sprintf("%s %s\n\n", strings.Repeat("^", max(m.Length, 1)), m.TokenText))

	return result.String()
}

// visualWidth counts display columns up to the given rune offset. Tabs are not
// expanded; input text files here are tab-free sentences.
func visualWidth(line string, runeOffset int) int {
	width := 0
	for i := range []rune(line) {
		if i >= runeOffset {
			break
		}
		width++
	}
	return width
}
