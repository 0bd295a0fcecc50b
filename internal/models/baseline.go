package models

// BaselineStore persists the last successfully fetched raw content per page.
type BaselineStore interface {
	Has(pageName string) (bool, error)
	// Get returns an error matching datastore.ErrBaselineNotFound when absent.
	Get(pageName string) ([]byte, error)
	Put(pageName string, raw []byte) error
}
