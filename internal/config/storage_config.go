package config

// StorageConfig defines where baselines and check history are kept
type StorageConfig struct {
	PagesDir string `json:"pages_dir,omitempty" yaml:"pages_dir,omitempty"`
	// HistoryDBPath is the SQLite file recording check outcomes. Empty disables history.
	HistoryDBPath string `json:"history_db_path,omitempty" yaml:"history_db_path,omitempty"`
}

// NewDefaultStorageConfig creates default storage configuration
func NewDefaultStorageConfig() StorageConfig {
	return StorageConfig{
		PagesDir: DefaultStoragePagesDir,
	}
}
