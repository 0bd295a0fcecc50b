package datastore

import (
	"fmt"

	"github.com/aleister1102/pagewatch/internal/common"
)

// ErrBaselineNotFound is returned by Get when a page has no stored baseline.
var ErrBaselineNotFound = fmt.Errorf("baseline %w", common.ErrNotFound)
