package models

import "time"

// ChangeKind classifies the outcome of one check.
type ChangeKind string

const (
	ChangeCreated      ChangeKind = "created"
	ChangeUnchanged    ChangeKind = "unchanged"
	ChangeChanged      ChangeKind = "changed"
	ChangeInaccessible ChangeKind = "inaccessible"
	// ChangeFailed marks a check aborted by an unexpected error inside the pipeline.
	ChangeFailed ChangeKind = "failed"
)

// Notifies reports whether outcomes of this kind are sent to the notifier.
func (k ChangeKind) Notifies() bool {
	switch k {
	case ChangeCreated, ChangeChanged, ChangeInaccessible:
		return true
	default:
		return false
	}
}

// ChangeEvent is the classified result of comparing a page against its baseline.
type ChangeEvent struct {
	PageName string     `json:"page_name"`
	Kind     ChangeKind `json:"kind"`
	// Diff holds the edit script, set only for ChangeChanged.
	Diff []DiffLine `json:"diff,omitempty"`
	// Report is the rendered Diff, set only for ChangeChanged.
	Report string `json:"report,omitempty"`
}

// CheckOutcome is the structured event emitted once per completed check.
type CheckOutcome struct {
	Event     ChangeEvent `json:"event"`
	URL       string      `json:"url"`
	CheckedAt time.Time   `json:"checked_at"`
	NextDue   time.Time   `json:"next_due"`
	// Reason carries the fetch or pipeline error for inaccessible and failed outcomes.
	Reason string `json:"reason,omitempty"`
	// Notified is true when the notifier accepted the message.
	Notified bool `json:"notified"`
}

// Kind is a shortcut for Event.Kind.
func (o CheckOutcome) Kind() ChangeKind {
	return o.Event.Kind
}
