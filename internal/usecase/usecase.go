// Package usecase implements the application core: the creation flow with its
// bounded collision-retry protocol, the redirect resolver with cache-aside
// semantics, and analytics assembly. Storage and cache failures are kept
// strictly apart: the durable store is authoritative, the cache is advisory
// and its failures only degrade latency, never correctness.
package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shortify/shortify/internal/entity"
	"github.com/shortify/shortify/internal/shortcode"
)

const (
	// maxCollisionAttempts bounds how many generated candidates may collide
	// with existing codes before the creation fails.
	maxCollisionAttempts = 3

	// maxGenerations caps total draws so a format-invalid candidate, which
	// does not consume a collision attempt, cannot spin the loop.
	maxGenerations = 10
)

type urlRepository interface {
	Save(ctx context.Context, shortCode, targetURL string, expiresAt *time.Time) (*entity.URL, error)
	RetrieveByShortCode(ctx context.Context, shortCode string) (*entity.URL, error)
	ExistsByShortCode(ctx context.Context, shortCode string) (bool, error)
	SaveClickByCode(ctx context.Context, shortCode, ipAddress string) error
	RetrieveClickStats(ctx context.Context, urlID int64, since *time.Time) (*entity.ClickStats, error)
}

type urlCache interface {
	Get(ctx context.Context, shortCode string) (string, error)
	Set(ctx context.Context, shortCode, targetURL string, ttl time.Duration) error
	Delete(ctx context.Context, shortCode string) error
	IncrementClicks(ctx context.Context, shortCode string) (int64, error)
}

type codeGenerator interface {
	Generate(length int) (string, error)
}

type urlChecker interface {
	Check(ctx context.Context, rawURL string) (string, error)
}

// Period selects the analytics aggregation window.
type Period string

const (
	PeriodDay   Period = "1d"
	PeriodWeek  Period = "7d"
	PeriodMonth Period = "30d"
	PeriodAll   Period = "all"
)

var periodWindows = map[Period]time.Duration{
	PeriodDay:   24 * time.Hour,
	PeriodWeek:  7 * 24 * time.Hour,
	PeriodMonth: 30 * 24 * time.Hour,
}

// ParsePeriod maps a query value to a Period. An empty value selects the
// default week window.
func ParsePeriod(s string) (Period, bool) {
	switch Period(s) {
	case "":
		return PeriodWeek, true
	case PeriodDay, PeriodWeek, PeriodMonth, PeriodAll:
		return Period(s), true
	}
	return "", false
}

// Resolution is the outcome of one redirect resolution, including the
// observability signals that distinguish fast-path from degraded operation.
type Resolution struct {
	TargetURL  string
	CacheHit   bool
	Degraded   bool          // a cache failure was absorbed during this resolution
	DBDuration time.Duration // zero when the durable store was not consulted
	Duration   time.Duration
}

// Analytics bundles a mapping with its aggregated click statistics.
type Analytics struct {
	URL   *entity.URL
	Stats *entity.ClickStats
}

type URLUseCase struct {
	repo       urlRepository
	cache      urlCache
	checker    urlChecker
	generator  codeGenerator
	logger     *slog.Logger
	codeLength int
	cacheTTL   time.Duration
}

func New(repo urlRepository, cache urlCache, checker urlChecker, generator codeGenerator,
	logger *slog.Logger, codeLength int, cacheTTL time.Duration) *URLUseCase {
	return &URLUseCase{
		repo:       repo,
		cache:      cache,
		checker:    checker,
		generator:  generator,
		logger:     logger,
		codeLength: codeLength,
		cacheTTL:   cacheTTL,
	}
}

// ShortenURL validates and normalizes rawURL, resolves a final short code
// (customCode when supplied, generated otherwise), and persists the mapping.
// The cache is populated eagerly, best-effort.
func (uc *URLUseCase) ShortenURL(ctx context.Context, rawURL, customCode string, expiresAt *time.Time) (*entity.URL, error) {
	const op = "usecase.URLUseCase.ShortenURL"

	targetURL, err := uc.checker.Check(ctx, rawURL)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to validate url: %w", op, err)
	}

	shortCode, err := uc.resolveShortCode(ctx, customCode)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	// Save maps the unique violation to entity.ErrShortCodeExists, which
	// covers the race between the existence check and the insert.
	url, err := uc.repo.Save(ctx, shortCode, targetURL, expiresAt)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to save url: %w", op, err)
	}

	uc.trySetCache(ctx, url.ShortCode, url.TargetURL)

	return url, nil
}

// resolveShortCode picks the final code for a new mapping. A custom code must
// pass format validation and not exist yet. Generated codes get up to
// maxCollisionAttempts existence checks; a format-invalid draw is discarded
// without consuming an attempt.
func (uc *URLUseCase) resolveShortCode(ctx context.Context, customCode string) (string, error) {
	if customCode != "" {
		if !shortcode.ValidateFormat(customCode) {
			return "", &entity.InvalidCodeError{
				Code:   customCode,
				Reason: "must be 3-20 characters from [A-Za-z0-9-], without leading or trailing hyphen, and not a reserved word",
			}
		}

		exists, err := uc.repo.ExistsByShortCode(ctx, customCode)
		if err != nil {
			return "", fmt.Errorf("failed to check short code existence: %w", err)
		}
		if exists {
			return "", entity.ErrShortCodeExists
		}

		return customCode, nil
	}

	attempts := 0
	for draws := 0; draws < maxGenerations && attempts < maxCollisionAttempts; draws++ {
		code, err := uc.generator.Generate(uc.codeLength)
		if err != nil {
			return "", fmt.Errorf("failed to generate short code: %w", err)
		}

		if !shortcode.ValidateFormat(code) {
			continue
		}

		attempts++

		exists, err := uc.repo.ExistsByShortCode(ctx, code)
		if err != nil {
			return "", fmt.Errorf("failed to check short code existence: %w", err)
		}
		if !exists {
			return code, nil
		}
	}

	return "", &entity.CodeGenerationError{Attempts: attempts}
}

// ResolveShortCode resolves a short code to its target URL: cache lookup,
// durable lookup on miss, expiry check, cache repopulation, click recording.
// A cache failure is treated exactly as a miss and only flagged on the
// returned Resolution.
func (uc *URLUseCase) ResolveShortCode(ctx context.Context, shortCode, ipAddress string) (*Resolution, error) {
	const op = "usecase.URLUseCase.ResolveShortCode"

	start := time.Now()
	res := &Resolution{}

	targetURL, err := uc.cache.Get(ctx, shortCode)
	switch {
	case err != nil:
		res.Degraded = true
		uc.logger.WarnContext(ctx, "cache lookup failed, falling back to database",
			slog.String("short_code", shortCode), slog.Any("err", err))
	case targetURL != "":
		res.CacheHit = true
		res.TargetURL = targetURL
		uc.recordClick(ctx, shortCode, ipAddress)
		res.Duration = time.Since(start)
		return res, nil
	}

	dbStart := time.Now()
	url, err := uc.repo.RetrieveByShortCode(ctx, shortCode)
	res.DBDuration = time.Since(dbStart)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to resolve short code: %w", op, err)
	}

	// Expiry is only observed on the durable-read path; a cache hit trusts
	// the entry's own TTL. Stored timestamps are compared in UTC.
	if url.ExpiresAt != nil {
		expiresAt := url.ExpiresAt.UTC()
		if !expiresAt.After(time.Now().UTC()) {
			uc.tryDeleteCache(ctx, shortCode)
			return nil, fmt.Errorf("%s: %w", op, &entity.URLExpiredError{ExpiresAt: expiresAt})
		}
	}

	res.TargetURL = url.TargetURL
	uc.trySetCache(ctx, shortCode, url.TargetURL)
	uc.recordClick(ctx, shortCode, ipAddress)
	res.Duration = time.Since(start)

	return res, nil
}

// GetAnalytics aggregates the click log for a code over the given window.
func (uc *URLUseCase) GetAnalytics(ctx context.Context, shortCode string, period Period) (*Analytics, error) {
	const op = "usecase.URLUseCase.GetAnalytics"

	url, err := uc.repo.RetrieveByShortCode(ctx, shortCode)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to retrieve url: %w", op, err)
	}

	var since *time.Time
	if window, ok := periodWindows[period]; ok {
		t := time.Now().UTC().Add(-window)
		since = &t
	}

	stats, err := uc.repo.RetrieveClickStats(ctx, url.ID, since)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to retrieve click stats: %w", op, err)
	}

	return &Analytics{URL: url, Stats: stats}, nil
}

// trySetCache populates the cache best-effort. The write runs on a context
// detached from the request's cancellation; failure is logged and swallowed.
func (uc *URLUseCase) trySetCache(ctx context.Context, shortCode, targetURL string) {
	if err := uc.cache.Set(context.WithoutCancel(ctx), shortCode, targetURL, uc.cacheTTL); err != nil {
		uc.logger.WarnContext(ctx, "failed to populate cache",
			slog.String("short_code", shortCode), slog.Any("err", err))
	}
}

// tryDeleteCache evicts a possibly stale entry after the durable store
// reported the mapping expired. Best-effort like the other cache writes.
func (uc *URLUseCase) tryDeleteCache(ctx context.Context, shortCode string) {
	if err := uc.cache.Delete(context.WithoutCancel(ctx), shortCode); err != nil {
		uc.logger.WarnContext(ctx, "failed to evict expired cache entry",
			slog.String("short_code", shortCode), slog.Any("err", err))
	}
}

// recordClick increments the volatile counter and appends to the durable
// click log, both best-effort. Neither failure alters the redirect outcome.
func (uc *URLUseCase) recordClick(ctx context.Context, shortCode, ipAddress string) {
	detached := context.WithoutCancel(ctx)

	if _, err := uc.cache.IncrementClicks(detached, shortCode); err != nil {
		uc.logger.WarnContext(ctx, "failed to increment click counter",
			slog.String("short_code", shortCode), slog.Any("err", err))
	}

	if err := uc.repo.SaveClickByCode(detached, shortCode, ipAddress); err != nil {
		uc.logger.WarnContext(ctx, "failed to record click event",
			slog.String("short_code", shortCode), slog.Any("err", err))
	}
}
