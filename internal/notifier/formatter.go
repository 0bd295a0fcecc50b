package notifier

import (
	"fmt"

	"github.com/aleister1102/pagewatch/internal/models"
)

// TimestampLayout formats check times in notification bodies.
const TimestampLayout = "01/02/2006 15:04:05"

// StatusLine returns "<timestamp>: <page>: <status>" for an outcome. It is
// also used for unchanged outcomes, which are never sent.
func StatusLine(outcome models.CheckOutcome) string {
	var status string
	switch outcome.Kind() {
	case models.ChangeCreated:
		status = "Created initial page"
	case models.ChangeUnchanged:
		status = "No change"
	case models.ChangeChanged:
		status = "Page changed"
	case models.ChangeInaccessible:
		status = "Page inaccessible"
	default:
		status = "Check failed"
	}
	return fmt.Sprintf("%s: %s: %s", outcome.CheckedAt.Format(TimestampLayout), outcome.Event.PageName, status)
}

// FormatOutcome builds the notification for an outcome. ok is false for kinds
// that are logged only.
func FormatOutcome(outcome models.CheckOutcome, subject string) (msg Message, ok bool) {
	if !outcome.Kind().Notifies() {
		return Message{}, false
	}

	body := StatusLine(outcome)
	switch outcome.Kind() {
	case models.ChangeChanged:
		body += "\n\nDifferences:\n" + outcome.Event.Report
	case models.ChangeInaccessible:
		if outcome.Reason != "" {
			body += "\n\nReason: " + outcome.Reason
		}
	}

	return Message{Subject: subject, Body: body}, true
}
