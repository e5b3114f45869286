//go:build integration

package postgres

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/arthur-debert/nanotable/nanotable/storage"
)

// startPostgres returns a DSN, reusing NANOTABLE_TEST_PG_DSN when set
func startPostgres(ctx context.Context, t *testing.T) string {
	t.Helper()
	if dsn := os.Getenv("NANOTABLE_TEST_PG_DSN"); dsn != "" {
		return dsn
	}

	c, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("nanotable"),
		tcpostgres.WithUsername("nanotable"),
		tcpostgres.WithPassword("nanotable"),
		tcpostgres.BasicWaitStrategies(),
	)
	testcontainers.CleanupContainer(t, c)
	if err != nil {
		t.Fatalf("start postgres: %v", err)
	}

	dsn, err := c.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("connection string: %v", err)
	}
	return dsn
}

func TestStoreIntegration(t *testing.T) {
	ctx := context.Background()
	s, err := New(ctx, startPostgres(ctx, t))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer func() { _ = s.Close() }()

	t.Run("missing key", func(t *testing.T) {
		if _, err := s.Get(ctx, "finance_escrow_transactions"); !errors.Is(err, storage.ErrNotExist) {
			t.Errorf("Get() error = %v, want ErrNotExist", err)
		}
	})

	t.Run("upsert and read back", func(t *testing.T) {
		if err := s.Put(ctx, "finance_escrow_transactions", []byte(`[]`)); err != nil {
			t.Fatalf("Put() error = %v", err)
		}
		if err := s.Put(ctx, "finance_escrow_transactions", []byte(`[{"id":"ESC-001"}]`)); err != nil {
			t.Fatalf("Put() error = %v", err)
		}
		got, err := s.Get(ctx, "finance_escrow_transactions")
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if string(got) != `[{"id":"ESC-001"}]` {
			t.Errorf("Get() = %s", got)
		}
	})

	t.Run("corrupt payload is stored verbatim", func(t *testing.T) {
		if err := s.Put(ctx, "admin_users", []byte(`{not json`)); err != nil {
			t.Fatalf("Put() error = %v", err)
		}
		got, err := s.Get(ctx, "admin_users")
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if string(got) != `{not json` {
			t.Errorf("Get() = %s", got)
		}
	})

	t.Run("keys and delete", func(t *testing.T) {
		if err := s.Delete(ctx, "admin_users"); err != nil {
			t.Fatalf("Delete() error = %v", err)
		}
		keys, err := s.Keys(ctx)
		if err != nil {
			t.Fatalf("Keys() error = %v", err)
		}
		if diff := cmp.Diff([]string{"finance_escrow_transactions"}, keys); diff != "" {
			t.Errorf("Keys() mismatch (-want +got):\n%s", diff)
		}
	})
}
