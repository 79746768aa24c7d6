// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/financy/backend/config"
	"github.com/financy/backend/internal/domain/entity"
	"github.com/financy/backend/internal/infra/dependency"
	"github.com/financy/backend/internal/integration/events"
	"github.com/financy/backend/internal/integration/persistence"
	"github.com/financy/backend/internal/integration/persistence/model"
	"github.com/financy/backend/internal/integration/sessionstore"
	"github.com/financy/backend/test/integration/mock"
)

// TestContext holds the test state for each scenario.
type TestContext struct {
	// HTTP
	server   *httptest.Server
	client   *http.Client
	headers  map[string]string
	response *response

	// Backing services
	db       *mock.Db
	redis    *redis.Client
	timeMock *mock.Time

	// Names used by the scenarios, resolved to ids
	sessionID string
	users     map[string]uint32
	accounts  map[string]uint32
	purchases map[string]uint32
}

type response struct {
	status int
	body   any
}

// contextKey is used to store TestContext in context.Context.
type contextKey struct{}

// GetTestContext retrieves the TestContext from context.
func GetTestContext(ctx context.Context) *TestContext {
	if tc, ok := ctx.Value(contextKey{}).(*TestContext); ok {
		return tc
	}
	return nil
}

// SetTestContext stores the TestContext in context.
func SetTestContext(ctx context.Context, tc *TestContext) context.Context {
	return context.WithValue(ctx, contextKey{}, tc)
}

func testModels() map[string]any {
	return map[string]any{
		"users":     &model.UserModel{},
		"accounts":  &model.AccountModel{},
		"purchases": &model.PurchaseModel{},
		"settings":  &model.SettingsModel{},
	}
}

// InitializeTestSuite sets up resources before any scenarios run.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		gin.SetMode(gin.TestMode)
		mock.NewDb(testModels())
		mock.NewRedis()
	})
}

// InitializeScenario registers all step definitions.
func InitializeScenario(ctx *godog.ScenarioContext) {
	test := &TestContext{
		client:   &http.Client{Timeout: 10 * time.Second},
		db:       mock.NewDb(testModels()),
		redis:    mock.NewRedis(),
		timeMock: mock.NewTime(),
	}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		if err := test.before(ctx); err != nil {
			return ctx, err
		}
		return SetTestContext(ctx, test), nil
	})

	ctx.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		if test.server != nil {
			test.server.Close()
			test.server = nil
		}
		return ctx, nil
	})

	registerSetupSteps(ctx, test)
	registerRequestSteps(ctx, test)
	registerResponseSteps(ctx, test)
	registerStorageSteps(ctx, test)
}

// before resets storage and starts a fresh server, so every scenario
// loads an empty ledger.
func (t *TestContext) before(ctx context.Context) error {
	t.headers = make(map[string]string)
	t.response = nil
	t.sessionID = ""
	t.users = make(map[string]uint32)
	t.accounts = make(map[string]uint32)
	t.purchases = make(map[string]uint32)
	t.timeMock.Reset()

	if err := t.db.ClearDB(); err != nil {
		return fmt.Errorf("failed to clear database: %w", err)
	}
	if err := mock.ClearRedis(t.redis); err != nil {
		return fmt.Errorf("failed to clear redis: %w", err)
	}

	cfg := &config.Config{
		Server: config.ServerConfig{Environment: "test"},
		Ledger: config.LedgerConfig{
			RemainingValuePolicy: entity.RemainingValueCanonical,
			DeletePolicy:         entity.DeleteRemove,
		},
	}

	infra := &dependency.Infrastructure{
		Users:     persistence.NewUserRepository(t.db.DbConn),
		Accounts:  persistence.NewAccountRepository(t.db.DbConn),
		Purchases: persistence.NewPurchaseRepository(t.db.DbConn),
		Settings:  persistence.NewSettingsRepository(t.db.DbConn),
		Sessions:  sessionstore.NewRedisStore(t.redis, time.Hour),
		Publisher: events.NewNoopPublisher(),
		Clock:     t.timeMock,
		Driver:    config.StorageSQLite,
		Healthy: func() bool {
			return t.db != nil && t.db.DbConn != nil
		},
	}

	injector, err := dependency.NewInjector(ctx, cfg, infra)
	if err != nil {
		return fmt.Errorf("failed to build server: %w", err)
	}

	t.server = httptest.NewServer(injector.Router.Engine())
	return nil
}
