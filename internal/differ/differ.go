package differ

import (
	"strings"
	"time"

	"github.com/aleister1102/pagewatch/internal/models"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// ReportDelimiter frames a rendered report.
const ReportDelimiter = "--------------------------------"

// Differ computes line-level edit scripts between canonical texts
type Differ struct {
	dmp *diffmatchpatch.DiffMatchPatch
}

// New creates a Differ. The underlying diff runs without a deadline so the
// edit script is always minimal.
func New() *Differ {
	dmp := diffmatchpatch.New()
	dmp.DiffTimeout = 0
	return &Differ{dmp: dmp}
}

// NewWithTimeout creates a Differ that falls back to a coarser edit script
// once timeout is exceeded on very large pages.
func NewWithTimeout(timeout time.Duration) *Differ {
	d := New()
	d.dmp.DiffTimeout = timeout
	return d
}

// Diff compares old against new. Identical line sequences are unchanged;
// anything else is changed and carries the edit script and its report.
// PageName is left for the caller to fill in.
func (d *Differ) Diff(oldText, newText models.CanonicalText) models.ChangeEvent {
	if oldText.Equal(newText) {
		return models.ChangeEvent{Kind: models.ChangeUnchanged}
	}

	ops := d.Lines(oldText.Lines, newText.Lines)
	return models.ChangeEvent{
		Kind:   models.ChangeChanged,
		Diff:   ops,
		Report: RenderReport(ops),
	}
}

// Lines returns the edit script turning oldLines into newLines. At a
// replacement, deleted lines come before inserted ones.
func (d *Differ) Lines(oldLines, newLines []string) []models.DiffLine {
	enc := newLineEncoder()
	oldRunes := enc.encode(oldLines)
	newRunes := enc.encode(newLines)

	diffs := d.dmp.DiffMainRunes(oldRunes, newRunes, false)

	ops := make([]models.DiffLine, 0, len(oldLines)+len(newLines))
	for _, diff := range diffs {
		op := toOperation(diff.Type)
		for _, line := range enc.decode(diff.Text) {
			ops = append(ops, models.DiffLine{Operation: op, Text: line})
		}
	}
	return ops
}

func toOperation(t diffmatchpatch.Operation) models.DiffOperation {
	switch t {
	case diffmatchpatch.DiffInsert:
		return models.DiffInsert
	case diffmatchpatch.DiffDelete:
		return models.DiffDelete
	default:
		return models.DiffEqual
	}
}

// RenderReport prints one prefixed line per operation between delimiter rows.
func RenderReport(ops []models.DiffLine) string {
	var sb strings.Builder
	sb.WriteString(ReportDelimiter)
	sb.WriteByte('\n')
	for i, op := range ops {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(op.Operation.Prefix())
		sb.WriteString(op.Text)
	}
	sb.WriteByte('\n')
	sb.WriteString(ReportDelimiter)
	sb.WriteByte('\n')
	return sb.String()
}
