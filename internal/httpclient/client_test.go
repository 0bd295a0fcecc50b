package httpclient

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aleister1102/pagewatch/internal/config"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPClient_UserAgent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-agent", r.Header.Get("User-Agent"))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client, err := NewHTTPClientBuilder(zerolog.Nop()).WithUserAgent("test-agent").Build()
	require.NoError(t, err)

	resp, err := client.Get(server.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestHTTPClient_Redirects(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/start", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/final", http.StatusFound)
	})
	mux.HandleFunc("/final", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("done"))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	t.Run("follow redirects", func(t *testing.T) {
		client, err := NewHTTPClientBuilder(zerolog.Nop()).WithFollowRedirects(true).Build()
		require.NoError(t, err)

		resp, err := client.Get(server.URL + "/start")
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("do not follow redirects", func(t *testing.T) {
		client, err := NewHTTPClientBuilder(zerolog.Nop()).WithFollowRedirects(false).Build()
		require.NoError(t, err)

		resp, err := client.Get(server.URL + "/start")
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusFound, resp.StatusCode)
	})

	t.Run("redirect limit", func(t *testing.T) {
		loop := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, "/again", http.StatusFound)
		}))
		defer loop.Close()

		client, err := NewHTTPClientBuilder(zerolog.Nop()).WithMaxRedirects(2).Build()
		require.NoError(t, err)

		_, err = client.Get(loop.URL)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "stopped after 2 redirects")
	})
}

func TestHTTPClient_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	client, err := NewHTTPClientBuilder(zerolog.Nop()).WithTimeout(20 * time.Millisecond).Build()
	require.NoError(t, err)

	_, err = client.Get(server.URL)
	assert.Error(t, err)
}

func TestNewHTTPClient_InvalidProxy(t *testing.T) {
	cfg := DefaultHTTPClientConfig()
	cfg.Proxy = "://bad"

	_, err := NewHTTPClient(cfg, zerolog.Nop())
	assert.Error(t, err)
}

func TestFromFetcherConfig(t *testing.T) {
	fc := config.NewDefaultFetcherConfig()
	fc.TimeoutSeconds = 5
	fc.UserAgent = ""
	fc.FollowRedirects = false
	fc.EnableHTTP2 = false

	cfg := FromFetcherConfig(fc)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.Equal(t, config.DefaultFetcherUserAgent, cfg.UserAgent)
	assert.False(t, cfg.FollowRedirects)
	assert.False(t, cfg.EnableHTTP2)

	client, err := NewHTTPClientBuilder(zerolog.Nop()).WithConfig(cfg).Build()
	require.NoError(t, err)
	assert.NotNil(t, client)
}
