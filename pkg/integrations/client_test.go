package integrations

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/matzehuels/netscore/pkg/cache"
	nserrors "github.com/matzehuels/netscore/pkg/errors"
	"github.com/matzehuels/netscore/pkg/httputil"
)

func newFileCache(t *testing.T) *cache.FileCache {
	t.Helper()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

func TestNewClient(t *testing.T) {
	c := newFileCache(t)

	headers := map[string]string{"Authorization": "Bearer token"}
	client := NewClient(c, "test:", time.Hour, headers)

	if client == nil {
		t.Fatal("NewClient() returned nil")
	}
	if client.http == nil {
		t.Error("NewClient() http client is nil")
	}
	if err := client.cache.Set(context.Background(), "k", []byte("v"), time.Hour); err != nil {
		t.Fatalf("cache.Set() error = %v", err)
	}
	if _, hit, _ := c.Get(context.Background(), "test:k"); !hit {
		t.Error("NewClient() should namespace keys with the prefix")
	}
	if client.headers["Authorization"] != "Bearer token" {
		t.Error("NewClient() headers not set correctly")
	}
	if client.limiter != nil {
		t.Error("NewClient() should not pace requests by default")
	}
}

func TestNewClientNilCache(t *testing.T) {
	client := NewClient(nil, "test:", time.Hour, nil)
	if client.cache == nil {
		t.Fatal("NewClient(nil) should fall back to a null cache")
	}
	if client.headers != nil {
		t.Error("NewClient() should allow nil headers")
	}
}

func TestNewClientOptions(t *testing.T) {
	h := &http.Client{Timeout: time.Second}
	client := NewClient(nil, "test:", time.Hour, nil, WithHTTPClient(h), WithRateLimit(10, 2))
	if client.http != h {
		t.Error("WithHTTPClient() not applied")
	}
	if client.limiter == nil || client.limiter.Burst() != 2 {
		t.Error("WithRateLimit() not applied")
	}

	client = NewClient(nil, "test:", time.Hour, nil, WithRateLimit(0, 5))
	if client.limiter != nil {
		t.Error("WithRateLimit(0) should disable pacing")
	}
}

func TestClientGet(t *testing.T) {
	type response struct {
		Message string `json:"message"`
	}

	var ua string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("expected GET, got %s", r.Method)
		}
		ua = r.Header.Get("User-Agent")
		json.NewEncoder(w).Encode(response{Message: "hello"})
	}))
	defer server.Close()

	client := NewClient(newFileCache(t), "test:", time.Hour, nil, WithHTTPClient(server.Client()))

	var resp response
	if err := client.Get(context.Background(), server.URL, &resp); err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if resp.Message != "hello" {
		t.Errorf("Get() message = %q, want %q", resp.Message, "hello")
	}
	if ua == "" || ua[:9] != "netscore/" {
		t.Errorf("User-Agent = %q, want netscore/...", ua)
	}
}

func TestClientGetWithHeadersOverridesDefaults(t *testing.T) {
	var receivedHeader string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		receivedHeader = r.Header.Get("X-Override")
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}))
	defer server.Close()

	client := NewClient(nil, "test:", time.Hour, map[string]string{"X-Override": "default"}, WithHTTPClient(server.Client()))

	var resp map[string]string
	err := client.GetWithHeaders(context.Background(), server.URL, map[string]string{"X-Override": "overridden"}, &resp)
	if err != nil {
		t.Fatalf("GetWithHeaders() error: %v", err)
	}
	if receivedHeader != "overridden" {
		t.Errorf("header = %q, want %q", receivedHeader, "overridden")
	}
}

func TestClientGetTextWithHeaders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Accept") != "application/vnd.github.raw" {
			t.Errorf("Accept = %q", r.Header.Get("Accept"))
		}
		w.Write([]byte("# Title"))
	}))
	defer server.Close()

	client := NewClient(nil, "test:", time.Hour, nil, WithHTTPClient(server.Client()))

	text, err := client.GetTextWithHeaders(context.Background(), server.URL, map[string]string{"Accept": "application/vnd.github.raw"})
	if err != nil {
		t.Fatalf("GetTextWithHeaders() error: %v", err)
	}
	if text != "# Title" {
		t.Errorf("GetTextWithHeaders() = %q, want %q", text, "# Title")
	}
}

func TestClientGetStatusErrors(t *testing.T) {
	tests := []struct {
		name      string
		code      int
		wantErr   error
		retryable bool
	}{
		{"404", http.StatusNotFound, ErrNotFound, false},
		{"401", http.StatusUnauthorized, ErrUnauthorized, false},
		{"500", http.StatusInternalServerError, ErrNetwork, true},
		{"400", http.StatusBadRequest, ErrNetwork, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.code)
			}))
			defer server.Close()

			client := NewClient(nil, "test:", time.Hour, nil, WithHTTPClient(server.Client()), WithRetry(2, time.Millisecond))

			var resp map[string]string
			err := client.Get(context.Background(), server.URL, &resp)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Get() error = %v, want %v", err, tt.wantErr)
			}
			if got := httputil.IsRetryable(err); got != tt.retryable {
				t.Errorf("IsRetryable() = %v, want %v", got, tt.retryable)
			}
		})
	}
}

func TestClientGetRetriesTransient(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"name": "lodash"})
	}))
	defer server.Close()

	client := NewClient(nil, "test:", time.Hour, nil, WithHTTPClient(server.Client()), WithRetry(3, time.Millisecond))

	var resp map[string]string
	if err := client.Get(context.Background(), server.URL, &resp); err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if resp["name"] != "lodash" {
		t.Errorf("resp = %v", resp)
	}
	if calls.Load() != 2 {
		t.Errorf("requests = %d, want 2", calls.Load())
	}
}

func TestClientGetGivesUpAfterAttempts(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(nil, "test:", time.Hour, nil, WithHTTPClient(server.Client()), WithRetry(3, time.Millisecond))

	var resp map[string]string
	if err := client.Get(context.Background(), server.URL, &resp); !errors.Is(err, ErrNetwork) {
		t.Errorf("Get() error = %v, want ErrNetwork", err)
	}
	if calls.Load() != 3 {
		t.Errorf("requests = %d, want 3", calls.Load())
	}
}

func TestCheckStatusRateLimited(t *testing.T) {
	reset := time.Now().Add(90 * time.Second).Unix()

	tests := []struct {
		name    string
		code    int
		header  http.Header
		limited bool
	}{
		{"429 retry-after", http.StatusTooManyRequests, http.Header{"Retry-After": {"7"}}, true},
		{"403 exhausted", http.StatusForbidden, http.Header{
			"X-Ratelimit-Remaining": {"0"},
			"X-Ratelimit-Reset":     {strconv.FormatInt(reset, 10)},
		}, true},
		{"403 forbidden", http.StatusForbidden, http.Header{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkStatus(&http.Response{StatusCode: tt.code, Header: tt.header})
			var rl *nserrors.RateLimitedError
			if got := errors.As(err, &rl); got != tt.limited {
				t.Fatalf("rate limited = %v, want %v (err %v)", got, tt.limited, err)
			}
			if !tt.limited {
				return
			}
			var re *httputil.RetryableError
			if !errors.As(err, &re) || re.After <= 0 {
				t.Errorf("expected RetryableError with positive After, got %v", err)
			}
			if nserrors.GetCode(err) != nserrors.ErrCodeRateLimited {
				t.Errorf("GetCode() = %q", nserrors.GetCode(err))
			}
		})
	}
}

func TestClientCached(t *testing.T) {
	client := NewClient(newFileCache(t), "test:", time.Hour, nil)

	type testData struct {
		Value string `json:"value"`
	}

	fetchCount := 0
	fetch := func(v *testData) func() error {
		return func() error {
			fetchCount++
			*v = testData{Value: "fetched"}
			return nil
		}
	}

	var first testData
	if err := client.Cached(context.Background(), "key", false, &first, fetch(&first)); err != nil {
		t.Fatalf("Cached() error: %v", err)
	}

	var second testData
	if err := client.Cached(context.Background(), "key", false, &second, fetch(&second)); err != nil {
		t.Fatalf("Cached() error: %v", err)
	}
	if fetchCount != 1 {
		t.Errorf("fetch count = %d, want 1", fetchCount)
	}
	if second.Value != "fetched" {
		t.Errorf("cached value = %q, want %q", second.Value, "fetched")
	}
}

func TestClientCachedRefresh(t *testing.T) {
	client := NewClient(newFileCache(t), "test:", time.Hour, nil)

	fetchCount := 0
	var value string
	fetch := func() error {
		fetchCount++
		value = "fetched"
		return nil
	}

	for range 2 {
		if err := client.Cached(context.Background(), "key", true, &value, fetch); err != nil {
			t.Fatalf("Cached() error: %v", err)
		}
	}
	if fetchCount != 2 {
		t.Errorf("fetch count = %d, want 2", fetchCount)
	}
}

func TestClientCachedFetchError(t *testing.T) {
	client := NewClient(newFileCache(t), "test:", time.Hour, nil)

	var value string
	var calls atomic.Int32
	err := client.Cached(context.Background(), "key", false, &value, func() error {
		calls.Add(1)
		return ErrNotFound
	})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Cached() error = %v, want ErrNotFound", err)
	}
	if calls.Load() != 1 {
		t.Errorf("non-retryable error fetched %d times, want 1", calls.Load())
	}

	err = client.Cached(context.Background(), "key", false, &value, func() error {
		calls.Add(1)
		value = "recovered"
		return nil
	})
	if err != nil || value != "recovered" || calls.Load() != 2 {
		t.Errorf("failed fetch should not be cached: value %q, calls %d, err %v", value, calls.Load(), err)
	}
}

func TestNormalizeRepoURL(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"https url", "https://github.com/user/repo", "https://github.com/user/repo"},
		{"with .git suffix", "https://github.com/user/repo.git", "https://github.com/user/repo"},
		{"git@ to https", "git@github.com:user/repo", "https://github.com/user/repo"},
		{"git:// to https", "git://github.com/user/repo", "https://github.com/user/repo"},
		{"git+ssh", "git+ssh://git@github.com/user/repo.git", "https://github.com/user/repo"},
		{"git+ prefix", "git+https://github.com/user/repo", "https://github.com/user/repo"},
		{"with spaces", "  https://github.com/user/repo  ", "https://github.com/user/repo"},
		{"fragment", "https://github.com/user/repo#readme", "https://github.com/user/repo"},
		{"issues page", "https://github.com/user/repo/issues", "https://github.com/user/repo/issues"},
		{"github shorthand", "github:user/repo", "https://github.com/user/repo"},
		{"bare shorthand", "user/repo", "https://github.com/user/repo"},
		{"gitlab stays", "https://gitlab.com/user/repo", "https://gitlab.com/user/repo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeRepoURL(tt.input); got != tt.want {
				t.Errorf("NormalizeRepoURL(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
