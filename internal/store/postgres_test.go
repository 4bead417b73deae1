package store

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func TestPostgresStore(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping postgres container test in short mode")
	}
	requireDocker(t)

	ctx := context.Background()
	url := startPostgres(t, ctx)

	suite.Run(t, &StoreSuite{open: func(t *testing.T) Store {
		s, err := OpenPostgres(ctx, url, "wordmathpass")
		if err != nil {
			t.Fatalf("open postgres: %v", err)
		}
		for _, table := range []string{"problem_submissions", "problem_sessions", "llm_request_events"} {
			if _, err := s.DB().ExecContext(ctx, "DELETE FROM "+table); err != nil {
				t.Fatalf("truncate %s: %v", table, err)
			}
		}
		return s
	}})
}

func TestPostgresMigrateIsIdempotent(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping postgres container test in short mode")
	}
	requireDocker(t)

	ctx := context.Background()
	url := startPostgres(t, ctx)

	db := ConnectPostgres(url, "wordmathpass")
	defer db.Close()

	first, err := Migrate(ctx, db)
	if err != nil {
		t.Fatalf("first migrate: %v", err)
	}
	if len(first) != 2 {
		t.Fatalf("expected 2 migrations applied, got %v", first)
	}

	second, err := Migrate(ctx, db)
	if err != nil {
		t.Fatalf("second migrate: %v", err)
	}
	if len(second) != 0 {
		t.Fatalf("expected no pending migrations, got %v", second)
	}
}

// startPostgres runs a throwaway Postgres container and returns a URL
// without a password; tests pass it as the store key.
func startPostgres(t *testing.T, ctx context.Context) string {
	t.Helper()
	req := tc.ContainerRequest{
		Image:        "postgres:16-alpine",
		Env:          map[string]string{"POSTGRES_USER": "wordmath", "POSTGRES_PASSWORD": "wordmathpass", "POSTGRES_DB": "wordmath"},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor:   wait.ForListeningPort("5432/tcp").WithStartupTimeout(60 * time.Second),
	}
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		if strings.Contains(err.Error(), "Cannot connect to the Docker daemon") {
			t.Skipf("docker not available: %v", err)
		}
		t.Fatalf("start postgres: %v", err)
	}
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("host: %v", err)
	}
	port, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("port: %v", err)
	}

	url := fmt.Sprintf("postgres://wordmath@%s:%s/wordmath?sslmode=disable", host, port.Port())
	waitForPostgres(t, ctx, url)
	return url
}

// waitForPostgres retries until the server accepts queries; the port can
// open before initdb finishes.
func waitForPostgres(t *testing.T, ctx context.Context, url string) {
	t.Helper()
	db := ConnectPostgres(url, "wordmathpass")
	defer db.Close()

	deadline := time.Now().Add(30 * time.Second)
	for {
		err := db.PingContext(ctx)
		if err == nil {
			return
		}
		if time.Now().After(deadline) {
			t.Fatalf("postgres not ready: %v", err)
		}
		time.Sleep(500 * time.Millisecond)
	}
}

func requireDocker(t *testing.T) {
	t.Helper()
	if _, err := tc.NewDockerProvider(); err != nil {
		t.Skipf("docker not available: %v", err)
	}
}
