package oracle

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"custos/internal/registry/ports"
)

// FactsCacheTTL bounds retention of verifier-reported member data.
const FactsCacheTTL = 5 * time.Minute

// Dialer turns verifier entry keys (base URLs) into oracle clients. One
// shared HTTP client and optional redis cache back every dialed oracle.
type Dialer struct {
	httpClient *http.Client
	cache      *redis.Client
	cacheTTL   time.Duration
}

type DialerOption func(*Dialer)

// WithCache enables redis caching of member facts.
func WithCache(cache *redis.Client) DialerOption {
	return func(d *Dialer) {
		d.cache = cache
	}
}

// WithTimeout overrides the per-call HTTP timeout.
func WithTimeout(timeout time.Duration) DialerOption {
	return func(d *Dialer) {
		d.httpClient.Timeout = timeout
	}
}

func NewDialer(opts ...DialerOption) *Dialer {
	d := &Dialer{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		cacheTTL:   FactsCacheTTL,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Dial validates the verifier key as a base URL and returns a client for it.
func (d *Dialer) Dial(key string) (ports.VerifierOracle, error) {
	parsed, err := url.Parse(key)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("verifier key %q is not a valid base URL", key)
	}
	return &Client{
		baseURL:    strings.TrimRight(key, "/"),
		httpClient: d.httpClient,
		cache:      d.cache,
		cacheTTL:   d.cacheTTL,
	}, nil
}
