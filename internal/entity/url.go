// Package entity defines the entities and errors used in the application.
// It includes the URL struct, which represents a shortened URL mapping, the
// Click struct for the append-only click log, and the error taxonomy shared
// by every layer.
package entity

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrInvalidURL is returned when the submitted target URL is not an absolute http(s) URL.
	ErrInvalidURL = errors.New("invalid url")
	// ErrURLNotReachable is returned when the target URL fails the reachability or host-safety checks.
	ErrURLNotReachable = errors.New("url not reachable")
	// ErrShortCodeExists is returned when attempting to create a URL with a short code that already exists.
	ErrShortCodeExists = errors.New("short code exists")
	// ErrURLNotFound is returned when a URL with the specified short code cannot be found.
	ErrURLNotFound = errors.New("url not found")
	// ErrCacheUnavailable is returned by the cache tier when an operation against it fails.
	// Callers must treat it as a cache miss; it never reaches the client.
	ErrCacheUnavailable = errors.New("cache unavailable")
)

// InvalidCodeError is returned when a custom short code fails format validation.
type InvalidCodeError struct {
	Code   string
	Reason string
}

func (e *InvalidCodeError) Error() string {
	return fmt.Sprintf("invalid short code %q: %s", e.Code, e.Reason)
}

// CodeGenerationError is returned when random code generation exhausts its
// collision-retry budget without finding a free code.
type CodeGenerationError struct {
	Attempts int
}

func (e *CodeGenerationError) Error() string {
	return fmt.Sprintf("failed to generate unique short code after %d attempts", e.Attempts)
}

// URLExpiredError is returned when a mapping exists but its expiry timestamp
// is in the past. ExpiresAt is always in UTC.
type URLExpiredError struct {
	ExpiresAt time.Time
}

func (e *URLExpiredError) Error() string {
	return fmt.Sprintf("url expired on %s", e.ExpiresAt.Format(time.RFC3339))
}

// URL represents a shortened URL mapping.
type URL struct {
	ID        int64      // ID is the unique identifier of the URL in the database.
	ShortCode string     // ShortCode is the code the target URL resolves from.
	TargetURL string     // TargetURL is the normalized URL that the short code resolves to.
	CreatedAt time.Time  // CreatedAt is the timestamp when the URL was created.
	ExpiresAt *time.Time // ExpiresAt marks logical expiry; nil means the mapping never expires.
}

// Click represents a single entry in the append-only click log.
type Click struct {
	ID        int64
	URLID     int64
	IPAddress string
	CreatedAt time.Time
}

// ClickStats is the aggregate view over the click log for one URL within a
// time window.
type ClickStats struct {
	TotalClicks    int64
	UniqueVisitors int64
	FirstClick     *time.Time // nil when the window contains no clicks
	LastClick      *time.Time
	ByDay          []DayClicks
}

// DayClicks is one calendar-day bucket of the per-day click histogram.
type DayClicks struct {
	Date   time.Time
	Clicks int64
}
