package monitor

import (
	"container/heap"
	"fmt"
	"time"

	"github.com/aleister1102/pagewatch/internal/common"
	"github.com/aleister1102/pagewatch/internal/models"
)

type scheduledPage struct {
	page  models.MonitoredPage
	order int
	index int
}

// dueQueue is a min-heap on due time, ties broken by configuration order.
type dueQueue []*scheduledPage

func (q dueQueue) Len() int { return len(q) }

func (q dueQueue) Less(i, j int) bool {
	di, dj := q[i].page.DueTime(), q[j].page.DueTime()
	if !di.Equal(dj) {
		return di.Before(dj)
	}
	return q[i].order < q[j].order
}

func (q dueQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *dueQueue) Push(x any) {
	item := x.(*scheduledPage)
	item.index = len(*q)
	*q = append(*q, item)
}

func (q *dueQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return item
}

// Scheduler owns the static set of monitored pages and always knows which
// one is due next. It is not safe for concurrent use.
type Scheduler struct {
	queue  dueQueue
	byName map[string]*scheduledPage
	order  []*scheduledPage
}

// NewScheduler creates a Scheduler over pages. Pages that were never checked
// are due immediately, in the given order.
func NewScheduler(pages []models.MonitoredPage) (*Scheduler, error) {
	if len(pages) == 0 {
		return nil, common.NewValidationError("pages", len(pages), "at least one page is required")
	}

	s := &Scheduler{
		queue:  make(dueQueue, 0, len(pages)),
		byName: make(map[string]*scheduledPage, len(pages)),
		order:  make([]*scheduledPage, 0, len(pages)),
	}
	for i, p := range pages {
		if p.CheckInterval <= 0 {
			return nil, common.NewValidationError("check_interval", p.CheckInterval, fmt.Sprintf("page '%s' needs a positive interval", p.Name))
		}
		if _, dup := s.byName[p.Name]; dup {
			return nil, common.NewValidationError("name", p.Name, "page names must be unique")
		}
		item := &scheduledPage{page: p, order: i}
		s.byName[p.Name] = item
		s.order = append(s.order, item)
		s.queue = append(s.queue, item)
		item.index = i
	}
	heap.Init(&s.queue)
	return s, nil
}

// NextDue returns the page with the earliest due time.
func (s *Scheduler) NextDue() models.MonitoredPage {
	return s.queue[0].page
}

// Reschedule records a completed check and returns the page's new due time.
func (s *Scheduler) Reschedule(pageName string, checkedAt time.Time) (time.Time, error) {
	item, ok := s.byName[pageName]
	if !ok {
		return time.Time{}, fmt.Errorf("page '%s': %w", pageName, common.ErrNotFound)
	}
	item.page.LastChecked = checkedAt
	heap.Fix(&s.queue, item.index)
	return item.page.DueTime(), nil
}

// WaitTime returns how long until the next page is due, never negative.
func (s *Scheduler) WaitTime(now time.Time) time.Duration {
	wait := s.NextDue().DueTime().Sub(now)
	if wait < 0 {
		return 0
	}
	return wait
}

// Page returns the current state of a page.
func (s *Scheduler) Page(name string) (models.MonitoredPage, bool) {
	item, ok := s.byName[name]
	if !ok {
		return models.MonitoredPage{}, false
	}
	return item.page, true
}

// Pages returns all pages in configuration order.
func (s *Scheduler) Pages() []models.MonitoredPage {
	pages := make([]models.MonitoredPage, len(s.order))
	for i, item := range s.order {
		pages[i] = item.page
	}
	return pages
}
