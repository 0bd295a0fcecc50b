package config

import (
	"github.com/aleister1102/pagewatch/internal/models"
)

// GlobalConfig contains all configuration sections for the application
type GlobalConfig struct {
	Pages         []PageConfig  `json:"pages" yaml:"pages" validate:"required,min=1,uniquepagenames,dive"`
	EmailConfig   EmailConfig   `json:"email,omitempty" yaml:"email,omitempty"`
	DiscordConfig DiscordConfig `json:"discord,omitempty" yaml:"discord,omitempty"`
	FetcherConfig FetcherConfig `json:"fetcher,omitempty" yaml:"fetcher,omitempty"`
	StorageConfig StorageConfig `json:"storage,omitempty" yaml:"storage,omitempty"`
	LogConfig     LogConfig     `json:"log_config,omitempty" yaml:"log_config,omitempty"`
}

// NewDefaultGlobalConfig creates a new GlobalConfig with default values
func NewDefaultGlobalConfig() *GlobalConfig {
	return &GlobalConfig{
		Pages:         []PageConfig{},
		EmailConfig:   NewDefaultEmailConfig(),
		DiscordConfig: NewDefaultDiscordConfig(),
		FetcherConfig: NewDefaultFetcherConfig(),
		StorageConfig: NewDefaultStorageConfig(),
		LogConfig:     NewDefaultLogConfig(),
	}
}

// MonitoredPages converts the page section into scheduler input, preserving
// configuration order. Pages start without a last-checked timestamp.
func (c *GlobalConfig) MonitoredPages() []models.MonitoredPage {
	pages := make([]models.MonitoredPage, 0, len(c.Pages))
	for _, p := range c.Pages {
		pages = append(pages, models.MonitoredPage{
			Name:          p.Name,
			URL:           p.URL,
			CheckInterval: p.CheckEveryXHours.Duration(),
		})
	}
	return pages
}

// FindPage returns the page section with the given name.
func (c *GlobalConfig) FindPage(name string) (PageConfig, bool) {
	for _, p := range c.Pages {
		if p.Name == name {
			return p, true
		}
	}
	return PageConfig{}, false
}
