package config

import "time"

// FetcherConfig defines how monitored pages are retrieved
type FetcherConfig struct {
	TimeoutSeconds     int    `json:"timeout_seconds,omitempty" yaml:"timeout_seconds,omitempty" validate:"omitempty,min=1"`
	UserAgent          string `json:"user_agent,omitempty" yaml:"user_agent,omitempty"`
	MaxContentSize     int    `json:"max_content_size,omitempty" yaml:"max_content_size,omitempty" validate:"omitempty,min=1"` // bytes
	InsecureSkipVerify bool   `json:"insecure_skip_verify" yaml:"insecure_skip_verify"`
	FollowRedirects    bool   `json:"follow_redirects" yaml:"follow_redirects"`
	MaxRedirects       int    `json:"max_redirects,omitempty" yaml:"max_redirects,omitempty" validate:"omitempty,min=0"`
	EnableHTTP2        bool   `json:"enable_http2" yaml:"enable_http2"`
	Proxy              string `json:"proxy,omitempty" yaml:"proxy,omitempty" validate:"omitempty,url"`
	// StatusPolicy decides whether non-2xx responses count as content ("any")
	// or as an inaccessible page ("success_only").
	StatusPolicy string `json:"status_policy,omitempty" yaml:"status_policy,omitempty" validate:"omitempty,statuspolicy"`
}

// NewDefaultFetcherConfig creates default fetcher configuration
func NewDefaultFetcherConfig() FetcherConfig {
	return FetcherConfig{
		TimeoutSeconds:  DefaultFetcherTimeoutSecs,
		UserAgent:       DefaultFetcherUserAgent,
		MaxContentSize:  DefaultFetcherMaxContentSize,
		FollowRedirects: true,
		MaxRedirects:    DefaultFetcherMaxRedirects,
		EnableHTTP2:     true,
		StatusPolicy:    StatusPolicyAny,
	}
}

// Timeout returns the request timeout as a duration
func (c FetcherConfig) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return DefaultFetcherTimeoutSecs * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// AcceptsAnyStatus reports whether every received body is treated as content
func (c FetcherConfig) AcceptsAnyStatus() bool {
	return c.StatusPolicy == "" || c.StatusPolicy == StatusPolicyAny
}
