package models

import "strings"

// CanonicalText is the comparison-stable text of a page: trimmed, non-empty
// lines in document order with script and style content excluded.
type CanonicalText struct {
	Lines []string
}

// NewCanonicalText wraps lines without copying them.
func NewCanonicalText(lines ...string) CanonicalText {
	return CanonicalText{Lines: lines}
}

// Equal reports whether both texts hold the same lines in the same order.
func (c CanonicalText) Equal(other CanonicalText) bool {
	if len(c.Lines) != len(other.Lines) {
		return false
	}
	for i := range c.Lines {
		if c.Lines[i] != other.Lines[i] {
			return false
		}
	}
	return true
}

// IsEmpty reports whether the text has no lines.
func (c CanonicalText) IsEmpty() bool {
	return len(c.Lines) == 0
}

// String joins the lines with newlines.
func (c CanonicalText) String() string {
	return strings.Join(c.Lines, "\n")
}
