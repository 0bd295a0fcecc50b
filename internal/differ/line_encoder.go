package differ

// lineEncoder maps each distinct line to a single rune so the character
// diff runs over whole lines.
type lineEncoder struct {
	index map[string]rune
	lines []string
}

func newLineEncoder() *lineEncoder {
	return &lineEncoder{index: make(map[string]rune)}
}

// encode returns one rune per input line.
func (e *lineEncoder) encode(lines []string) []rune {
	runes := make([]rune, len(lines))
	for i, line := range lines {
		r, ok := e.index[line]
		if !ok {
			r = indexToRune(len(e.lines))
			e.index[line] = r
			e.lines = append(e.lines, line)
		}
		runes[i] = r
	}
	return runes
}

// decode maps runes produced by encode back to their lines.
func (e *lineEncoder) decode(text string) []string {
	var lines []string
	for _, r := range text {
		lines = append(lines, e.lines[runeToIndex(r)])
	}
	return lines
}

// Surrogate code points do not survive a string round trip, so they are skipped.
const (
	surrogateMin = 0xD800
	surrogateLen = 0x800
)

func indexToRune(i int) rune {
	r := rune(i + 1)
	if r >= surrogateMin {
		r += surrogateLen
	}
	return r
}

func runeToIndex(r rune) int {
	if r >= surrogateMin+surrogateLen {
		r -= surrogateLen
	}
	return int(r) - 1
}
