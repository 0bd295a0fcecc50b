package models

import "time"

// MonitoredPage is a page the scheduler checks on a fixed interval.
type MonitoredPage struct {
	Name          string        `json:"name"`
	URL           string        `json:"url"`
	CheckInterval time.Duration `json:"check_interval"`
	// LastChecked is zero until the first completed check.
	LastChecked time.Time `json:"last_checked,omitempty"`
}

// IsChecked reports whether the page has completed at least one check.
func (p MonitoredPage) IsChecked() bool {
	return !p.LastChecked.IsZero()
}

// DueTime returns the time the next check becomes eligible. A page that was
// never checked is due at the zero time, i.e. immediately.
func (p MonitoredPage) DueTime() time.Time {
	if !p.IsChecked() {
		return time.Time{}
	}
	return p.LastChecked.Add(p.CheckInterval)
}
