// Package urlcheck validates and normalizes target URLs before they are
// shortened. A URL passes when it is an absolute http(s) URL, its host is not
// a private or loopback address, and a HEAD probe answers with 200. The
// returned string is the normalized form: lowercase host, "www." prefix
// stripped, trailing slash removed from the path.
package urlcheck

import (
	"context"
	"fmt"
	"net/http"
	"net/netip"
	"net/url"
	"strings"
	"time"

	"github.com/shortify/shortify/internal/entity"
)

const defaultProbeTimeout = 10 * time.Second

type Option func(*Checker)

// WithHTTPClient replaces the client used for the reachability probe.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Checker) {
		c.client = client
	}
}

// WithPrivateHosts disables the host-safety check. Intended for dev
// environments where targets live on private networks.
func WithPrivateHosts() Option {
	return func(c *Checker) {
		c.allowPrivateHosts = true
	}
}

// WithoutReachability disables the HEAD probe.
func WithoutReachability() Option {
	return func(c *Checker) {
		c.skipReachability = true
	}
}

type Checker struct {
	client            *http.Client
	allowPrivateHosts bool
	skipReachability  bool
}

func New(opts ...Option) *Checker {
	c := &Checker{
		client: &http.Client{Timeout: defaultProbeTimeout},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Check validates rawURL and returns its normalized form.
func (c *Checker) Check(ctx context.Context, rawURL string) (string, error) {
	const op = "urlcheck.Checker.Check"

	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, entity.ErrInvalidURL)
	}

	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", fmt.Errorf("%s: %w", op, entity.ErrInvalidURL)
	}

	if !c.allowPrivateHosts {
		if err := checkHostSafety(u.Hostname()); err != nil {
			return "", fmt.Errorf("%s: %w", op, err)
		}
	}

	if !c.skipReachability {
		if err := c.probe(ctx, rawURL); err != nil {
			return "", fmt.Errorf("%s: %w", op, err)
		}
	}

	return normalize(u), nil
}

// checkHostSafety rejects hosts that resolve into address space a shortener
// must not redirect to: loopback, private ranges, and link-local addresses.
func checkHostSafety(host string) error {
	if addr, err := netip.ParseAddr(host); err == nil {
		if addr.IsLoopback() || addr.IsPrivate() || addr.IsLinkLocalUnicast() || addr.IsLinkLocalMulticast() {
			return entity.ErrURLNotReachable
		}
		return nil
	}

	if strings.EqualFold(host, "localhost") {
		return entity.ErrURLNotReachable
	}

	return nil
}

func (c *Checker) probe(ctx context.Context, rawURL string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, rawURL, nil)
	if err != nil {
		return entity.ErrInvalidURL
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return entity.ErrURLNotReachable
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return entity.ErrURLNotReachable
	}

	return nil
}

func normalize(u *url.URL) string {
	host := strings.ToLower(u.Host)
	host = strings.TrimPrefix(host, "www.")

	normalized := *u
	normalized.Host = host
	normalized.Path = strings.TrimRight(u.Path, "/")

	return normalized.String()
}
