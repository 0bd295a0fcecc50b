package httpclient

import (
	"time"

	"github.com/aleister1102/pagewatch/internal/config"
)

// HTTPClientConfig holds transport and client settings
type HTTPClientConfig struct {
	Timeout             time.Duration
	InsecureSkipVerify  bool
	FollowRedirects     bool
	MaxRedirects        int
	UserAgent           string
	Proxy               string
	EnableHTTP2         bool
	MaxIdleConns        int
	MaxIdleConnsPerHost int
	IdleConnTimeout     time.Duration
	TLSHandshakeTimeout time.Duration
	DialTimeout         time.Duration
	KeepAlive           time.Duration
}

// DefaultHTTPClientConfig returns a configuration suited to polling a handful of pages
func DefaultHTTPClientConfig() HTTPClientConfig {
	return HTTPClientConfig{
		Timeout:             time.Duration(config.DefaultFetcherTimeoutSecs) * time.Second,
		FollowRedirects:     true,
		MaxRedirects:        config.DefaultFetcherMaxRedirects,
		UserAgent:           config.DefaultFetcherUserAgent,
		EnableHTTP2:         true,
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 2,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
		DialTimeout:         10 * time.Second,
		KeepAlive:           30 * time.Second,
	}
}

// FromFetcherConfig maps the fetcher section onto a client configuration
func FromFetcherConfig(cfg config.FetcherConfig) HTTPClientConfig {
	c := DefaultHTTPClientConfig()
	c.Timeout = cfg.Timeout()
	c.InsecureSkipVerify = cfg.InsecureSkipVerify
	c.FollowRedirects = cfg.FollowRedirects
	c.MaxRedirects = cfg.MaxRedirects
	c.Proxy = cfg.Proxy
	c.EnableHTTP2 = cfg.EnableHTTP2
	if cfg.UserAgent != "" {
		c.UserAgent = cfg.UserAgent
	}
	return c
}
