package integration

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	handler "github.com/votehub/api/internal/adapters/handler/http"
	repo "github.com/votehub/api/internal/adapters/repository/postgres"
	"github.com/votehub/api/internal/core/domain"
	"github.com/votehub/api/internal/core/ports"
	"github.com/votehub/api/internal/core/services"
)

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

type TestApp struct {
	DB          *sql.DB
	Server      *httptest.Server
	Client      *http.Client
	DBContainer testcontainers.Container
}

func setupTestApp(t *testing.T) *TestApp {
	os.Setenv("JWT_SECRET", "test-secret")
	ctx := context.Background()
	dbContainer, dbURL, err := setupPostgresContainer(ctx)
	require.NoError(t, err)

	db, err := sql.Open("postgres", dbURL)
	require.NoError(t, err)

	err = applyMigrations(db)
	require.NoError(t, err)

	eventRepo := repo.NewEventRepository(db)
	regRepo := repo.NewRegistrationRepository(db)
	voteRepo := repo.NewVoteRepository(db)
	tallyRepo := repo.NewTallyRepository(db)
	userRepo := repo.NewUserRepository(db)

	eventSvc := services.NewEventService(eventRepo, ports.NoopNotifier{})
	regSvc := services.NewRegistrationService(eventRepo, regRepo)
	voteSvc := services.NewVoteService(eventRepo, regRepo, voteRepo, ports.NoopNotifier{})
	tallySvc := services.NewTallyService(eventRepo, tallyRepo, ports.NoopNotifier{})
	userSvc := services.NewUserService(userRepo)

	router := handler.NewHandler(
		handler.NewEventHandler(eventSvc),
		handler.NewRegistrationHandler(regSvc),
		handler.NewVoteHandler(voteSvc, tallySvc),
		handler.NewUserHandler(userSvc),
		nil,
	)

	server := httptest.NewServer(router)

	return &TestApp{
		DB:          db,
		Server:      server,
		Client:      server.Client(),
		DBContainer: dbContainer,
	}
}

func (app *TestApp) Teardown(t *testing.T) {
	app.Server.Close()
	app.DB.Close()
	if err := app.DBContainer.Terminate(context.Background()); err != nil {
		t.Logf("failed to terminate container: %v", err)
	}
}

// createUserAndToken inserts a user with the given role and returns a
// signed access token for it.
func (app *TestApp) createUserAndToken(t *testing.T, role string) (uuid.UUID, string) {
	t.Helper()

	userID := uuid.New()
	email := fmt.Sprintf("user-%s@example.com", userID)
	name := fmt.Sprintf("User %s", userID)
	_, err := app.DB.Exec("INSERT INTO users (id, email, name, role) VALUES ($1, $2, $3, $4)", userID, email, name, role)
	require.NoError(t, err)

	claims := jwt.MapClaims{
		"sub":   userID.String(),
		"email": email,
		"role":  role,
		"exp":   time.Now().Add(15 * time.Minute).Unix(),
		"iat":   time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return userID, signedToken
}

// do sends an authenticated JSON request and returns the response. The
// caller closes the body.
func (app *TestApp) do(t *testing.T, method, path, token string, payload any) *http.Response {
	t.Helper()

	var body *bytes.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(data)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, app.Server.URL+path, body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.AddCookie(&http.Cookie{Name: "access_token", Value: token})
	}

	resp, err := app.Client.Do(req)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

// createEvent makes an event over the API with two ballots and the
// given schedule.
func (app *TestApp) createEvent(t *testing.T, adminToken, electionType string, regEnd, voteStart, voteEnd time.Time) domain.VoteEvent {
	t.Helper()

	payload := map[string]any{
		"title":           "Integration Event",
		"description":     "created by the test suite",
		"election_type":   electionType,
		"reg_end_time":    regEnd,
		"vote_start_time": voteStart,
		"vote_end_time":   voteEnd,
		"ballots": []map[string]string{
			{"url": "https://cdn.example/b1.png", "public_id": "ballots/b1"},
			{"url": "https://cdn.example/b2.png", "public_id": "ballots/b2"},
		},
	}

	resp := app.do(t, http.MethodPost, "/api/events", adminToken, payload)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var event domain.VoteEvent
	decodeBody(t, resp, &event)
	return event
}

// shiftWindow rewrites the event schedule directly, so tests can move
// an event between phases without waiting on the clock.
func (app *TestApp) shiftWindow(t *testing.T, eventID uuid.UUID, regEnd, voteStart, voteEnd time.Time) {
	t.Helper()
	_, err := app.DB.Exec(
		"UPDATE events SET reg_end_time = $1, vote_start_time = $2, vote_end_time = $3 WHERE id = $4",
		regEnd, voteStart, voteEnd, eventID,
	)
	require.NoError(t, err)
}
