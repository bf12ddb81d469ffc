//go:build integration

package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/shortify/shortify/internal/entity"

	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
)

func setupDatabase(t testing.TB) *sqlx.DB {
	t.Helper()

	ctx := context.Background()

	cont, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image: "postgres:16-alpine",
			Env: map[string]string{
				"POSTGRES_USER":     "test",
				"POSTGRES_PASSWORD": "test",
				"POSTGRES_DB":       "shortify",
			},
			ExposedPorts: []string{"5432/tcp"},
			WaitingFor:   wait.ForExposedPort(),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("Failed to start postgres container: %v", err)
	}
	t.Cleanup(func() {
		if err := cont.Terminate(ctx); err != nil {
			t.Fatalf("Failed to terminate postgres container: %v", err)
		}
	})

	host, err := cont.Host(ctx)
	if err != nil {
		t.Fatalf("Failed to get container host: %v", err)
	}
	port, err := cont.MappedPort(ctx, "5432")
	if err != nil {
		t.Fatalf("Failed to get container port: %v", err)
	}

	dsn := "postgres://test:test@" + host + ":" + port.Port() + "/shortify?sslmode=disable"

	m, err := migrate.New("file://../../../../migrations", dsn)
	if err != nil {
		t.Fatalf("Failed to initialize migrations: %v", err)
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	db, err := sqlx.Connect("pgx", dsn)
	if err != nil {
		t.Fatalf("Failed to connect to database: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Fatalf("Failed to close database: %v", err)
		}
	})

	return db
}

func TestURLRepository_Integration(t *testing.T) {
	ctx := context.Background()
	db := setupDatabase(t)
	repo := NewURLRepository(db)

	t.Run("save and retrieve", func(t *testing.T) {
		url, err := repo.Save(ctx, "abc123", "https://example.com", nil)

		require.NoError(t, err)
		assert.NotZero(t, url.ID)
		assert.Equal(t, "abc123", url.ShortCode)
		assert.Equal(t, "https://example.com", url.TargetURL)
		assert.NotZero(t, url.CreatedAt)
		assert.Nil(t, url.ExpiresAt)

		got, err := repo.RetrieveByShortCode(ctx, "abc123")

		require.NoError(t, err)
		assert.Equal(t, url.ID, got.ID)
		assert.Equal(t, url.TargetURL, got.TargetURL)
	})

	t.Run("save with expiry round-trips", func(t *testing.T) {
		expiresAt := time.Now().Add(24 * time.Hour).UTC().Truncate(time.Microsecond)

		url, err := repo.Save(ctx, "exp123", "https://example.com/exp", &expiresAt)

		require.NoError(t, err)
		require.NotNil(t, url.ExpiresAt)
		assert.True(t, url.ExpiresAt.Equal(expiresAt))
	})

	t.Run("duplicate short code", func(t *testing.T) {
		_, err := repo.Save(ctx, "abc123", "https://example.com/other", nil)

		assert.ErrorIs(t, err, entity.ErrShortCodeExists)
	})

	t.Run("retrieve unknown short code", func(t *testing.T) {
		url, err := repo.RetrieveByShortCode(ctx, "missing")

		assert.ErrorIs(t, err, entity.ErrURLNotFound)
		assert.Nil(t, url)
	})

	t.Run("existence check", func(t *testing.T) {
		exists, err := repo.ExistsByShortCode(ctx, "abc123")
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = repo.ExistsByShortCode(ctx, "missing")
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("clicks and stats", func(t *testing.T) {
		url, err := repo.Save(ctx, "clk123", "https://example.com/clk", nil)
		require.NoError(t, err)

		require.NoError(t, repo.SaveClickByCode(ctx, "clk123", "203.0.113.10"))
		require.NoError(t, repo.SaveClickByCode(ctx, "clk123", "203.0.113.10"))
		require.NoError(t, repo.SaveClickByCode(ctx, "clk123", "203.0.113.20"))

		stats, err := repo.RetrieveClickStats(ctx, url.ID, nil)

		require.NoError(t, err)
		assert.EqualValues(t, 3, stats.TotalClicks)
		assert.EqualValues(t, 2, stats.UniqueVisitors)
		require.NotNil(t, stats.FirstClick)
		require.NotNil(t, stats.LastClick)
		require.Len(t, stats.ByDay, 1)
		assert.EqualValues(t, 3, stats.ByDay[0].Clicks)
	})

	t.Run("stats window excludes older clicks", func(t *testing.T) {
		url, err := repo.Save(ctx, "win123", "https://example.com/win", nil)
		require.NoError(t, err)

		require.NoError(t, repo.SaveClickByCode(ctx, "win123", "203.0.113.30"))

		future := time.Now().Add(time.Hour)
		stats, err := repo.RetrieveClickStats(ctx, url.ID, &future)

		require.NoError(t, err)
		assert.EqualValues(t, 0, stats.TotalClicks)
		assert.Nil(t, stats.FirstClick)
		assert.Empty(t, stats.ByDay)
	})

	t.Run("click for unknown short code", func(t *testing.T) {
		err := repo.SaveClickByCode(ctx, "missing", "203.0.113.40")

		assert.ErrorIs(t, err, entity.ErrURLNotFound)
	})
}
