package integration

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	_ "github.com/lib/pq"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	handlerhttp "github.com/hoavote/ballotbot/internal/adapters/handler/http"
	pgrepo "github.com/hoavote/ballotbot/internal/adapters/repository/postgres"
	"github.com/hoavote/ballotbot/internal/core/domain"
	"github.com/hoavote/ballotbot/internal/core/services"
)

const testAdminID domain.VoterID = 99

type TestApp struct {
	DB        *sql.DB
	Server    *httptest.Server
	container testcontainers.Container
}

func setupPostgresContainer(ctx context.Context) (testcontainers.Container, string, error) {
	dbName := "testdb"
	user := "user"
	password := "password"

	pgContainer, err := postgres.Run(ctx, "postgres:15-alpine",
		postgres.WithDatabase(dbName),
		postgres.WithUsername(user),
		postgres.WithPassword(password),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Second),
		),
	)
	if err != nil {
		return nil, "", fmt.Errorf("failed to start postgres container: %w", err)
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, "", err
	}

	return pgContainer, connStr, nil
}

func applyMigrations(db *sql.DB) error {
	dirPath := "../../internal/adapters/repository/postgres/migrations"

	entries, err := os.ReadDir(dirPath)
	if err != nil {
		return fmt.Errorf("failed to read migrations directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		if !strings.HasSuffix(entry.Name(), "up.sql") {
			continue
		}

		fullPath := filepath.Join(dirPath, entry.Name())
		content, err := os.ReadFile(fullPath)
		if err != nil {
			return fmt.Errorf("failed to read migration file %s: %w", entry.Name(), err)
		}

		_, err = db.Exec(string(content))
		if err != nil {
			return fmt.Errorf("failed to execute migration %s: %w", entry.Name(), err)
		}
	}

	return nil
}

func setupTestApp(t *testing.T) *TestApp {
	t.Helper()
	ctx := context.Background()

	container, connStr, err := setupPostgresContainer(ctx)
	require.NoError(t, err)

	db, err := sql.Open("postgres", connStr)
	require.NoError(t, err)
	require.NoError(t, db.Ping())
	require.NoError(t, applyMigrations(db))

	ballotRepo := pgrepo.NewBallotRepository(db)
	eligibilityRepo := pgrepo.NewEligibilityRepository(db)
	window := services.NewVotingWindow([]domain.VoterID{testAdminID}, true, nil)

	ballotSvc := services.NewBallotService(ballotRepo, eligibilityRepo, window, services.BallotConfig{})
	eligibilitySvc := services.NewEligibilityService(eligibilityRepo, window, 0)
	tallySvc := services.NewTallyService(ballotRepo)
	dispatcher := services.NewDispatcher(ballotSvc, eligibilitySvc, tallySvc, ballotRepo, window, slog.Default())

	server := httptest.NewServer(handlerhttp.NewHandler(handlerhttp.NewInteractionHandler(dispatcher)))

	return &TestApp{DB: db, Server: server, container: container}
}

func (app *TestApp) Teardown(t *testing.T) {
	t.Helper()
	app.Server.Close()
	app.DB.Close()
	require.NoError(t, app.container.Terminate(context.Background()))
}
