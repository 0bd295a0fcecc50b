package models

// DiffOperation defines the type of change applied to a line.
type DiffOperation int

const (
	// DiffEqual indicates a line present on both sides.
	DiffEqual DiffOperation = 0
	// DiffInsert indicates a line present only in the new text.
	DiffInsert DiffOperation = 1
	// DiffDelete indicates a line present only in the old text.
	DiffDelete DiffOperation = -1
)

// String returns the operation name.
func (op DiffOperation) String() string {
	switch op {
	case DiffInsert:
		return "insert"
	case DiffDelete:
		return "delete"
	default:
		return "equal"
	}
}

// Prefix returns the two-character marker used in rendered reports.
func (op DiffOperation) Prefix() string {
	switch op {
	case DiffInsert:
		return "+ "
	case DiffDelete:
		return "- "
	default:
		return "  "
	}
}

// DiffLine is one line of an edit script.
type DiffLine struct {
	Operation DiffOperation `json:"operation"`
	Text      string        `json:"text"`
}

// CountOperations returns the number of inserted and deleted lines.
func CountOperations(lines []DiffLine) (added int, deleted int) {
	for _, l := range lines {
		switch l.Operation {
		case DiffInsert:
			added++
		case DiffDelete:
			deleted++
		}
	}
	return added, deleted
}
