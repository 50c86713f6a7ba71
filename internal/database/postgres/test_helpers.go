package postgres

import (
	"context"
	"flag"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	pgcontainer "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/kalrend/warchest/internal/database"
	"github.com/kalrend/warchest/internal/domain"
)

var (
	testDBConnString string
	testPool         *pgxpool.Pool
)

func TestMain(m *testing.M) {
	flag.Parse()

	var terminate func()

	if !testing.Short() {
		ctx := context.Background()
		var connStr string
		connStr, terminate = setupContainer(ctx)
		testDBConnString = connStr

		if testDBConnString != "" {
			if err := database.Migrate(ctx, testDBConnString); err != nil {
				fmt.Printf("WARNING: Failed to migrate test database: %v\n", err)
				testDBConnString = ""
			}
		}
		if testDBConnString != "" {
			pool, err := pgxpool.New(ctx, testDBConnString)
			if err != nil {
				fmt.Printf("WARNING: Failed to create test pool: %v\n", err)
				testDBConnString = ""
			} else {
				testPool = pool
			}
		}
	}

	code := m.Run()

	if testPool != nil {
		testPool.Close()
	}
	if terminate != nil {
		terminate()
	}

	os.Exit(code)
}

func setupContainer(ctx context.Context) (string, func()) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Printf("Recovered from panic in setupContainer: %v\n", r)
		}
	}()

	pg, err := pgcontainer.Run(ctx,
		"postgres:15-alpine",
		pgcontainer.WithDatabase("testdb"),
		pgcontainer.WithUsername("testuser"),
		pgcontainer.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Second)),
	)
	if err != nil {
		fmt.Printf("WARNING: Failed to start postgres container: %v\n", err)
		return "", func() {}
	}

	connStr, err := pg.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		fmt.Printf("WARNING: Failed to get connection string: %v\n", err)
		pg.Terminate(ctx)
		return "", func() {}
	}

	return connStr, func() {
		if err := pg.Terminate(ctx); err != nil {
			fmt.Printf("Failed to terminate container: %v\n", err)
		}
	}
}

// requireDB skips the test when no container is available.
func requireDB(t *testing.T) {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	if testDBConnString == "" || testPool == nil {
		t.Skip("Skipping integration test: database not available")
	}
}

// cleanTables truncates all domain tables so each test starts empty.
func cleanTables(t *testing.T) {
	t.Helper()
	_, err := testPool.Exec(context.Background(),
		`TRUNCATE item_allocations, items, loot_records, transactions, characters CASCADE`)
	if err != nil {
		t.Fatalf("failed to clean tables: %v", err)
	}
}

func insertTestCharacter(t *testing.T, name string, role domain.Role) string {
	t.Helper()
	id := uuid.NewString()
	_, err := testPool.Exec(context.Background(), `
		INSERT INTO characters (character_id, name, role, color, notes)
		VALUES ($1, $2, $3, '#ffffff', '')`, id, name, role)
	if err != nil {
		t.Fatalf("failed to insert test character: %v", err)
	}
	return id
}

func insertTestItem(t *testing.T, name string, category domain.Category, quantity float64) string {
	t.Helper()
	id := uuid.NewString()
	_, err := testPool.Exec(context.Background(), `
		INSERT INTO items (item_id, name, category, quantity, unit_value, weight,
			description, display_description)
		VALUES ($1, $2, $3, $4, 0, 0, '', '')`, id, name, category, quantity)
	if err != nil {
		t.Fatalf("failed to insert test item: %v", err)
	}
	return id
}
