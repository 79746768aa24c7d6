// Package dependency provides dependency injection for the application.
package dependency

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/financy/backend/config"
	"github.com/financy/backend/internal/application/adapter"
	"github.com/financy/backend/internal/application/ledger"
	"github.com/financy/backend/internal/application/usecase/account"
	"github.com/financy/backend/internal/application/usecase/purchase"
	"github.com/financy/backend/internal/application/usecase/settings"
	"github.com/financy/backend/internal/application/usecase/user"
	"github.com/financy/backend/internal/infra/server/router"
	"github.com/financy/backend/internal/integration/entrypoint/controller"
	"github.com/financy/backend/internal/integration/entrypoint/middleware"
)

// Injector holds all application dependencies.
type Injector struct {
	Config         *config.Config
	Infra          *Infrastructure
	Ledger         *ledger.Ledger
	Router         *router.Router
	SessionLimiter *middleware.RateLimiter
}

// NewInjector loads the ledger from storage and wires every use case,
// controller and route on top of infra.
func NewInjector(ctx context.Context, cfg *config.Config, infra *Infrastructure) (*Injector, error) {
	clock := infra.Clock
	if clock == nil {
		clock = adapter.SystemClock{}
	}

	l := ledger.New(infra.Users, infra.Accounts, infra.Purchases, clock, cfg.Ledger.Policies())
	summary, err := l.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load ledger: %w", err)
	}
	slog.InfoContext(ctx, "Ledger loaded",
		"users", summary.Users,
		"accounts", summary.Accounts,
		"purchases", summary.Purchases,
	)

	// Create user and session use cases
	listUsersUseCase := user.NewListUsersUseCase(l)
	createUserUseCase := user.NewCreateUserUseCase(l, infra.Users, infra.Publisher)
	editUserUseCase := user.NewEditUserUseCase(l, infra.Users, infra.Publisher)
	deleteUserUseCase := user.NewDeleteUserUseCase(l, infra.Users, infra.Accounts, infra.Purchases, infra.Sessions, infra.Publisher)
	overviewUseCase := user.NewGetOverviewUseCase(l)
	createSessionUseCase := user.NewCreateSessionUseCase(infra.Sessions)
	endSessionUseCase := user.NewEndSessionUseCase(l, infra.Sessions)
	loginUseCase := user.NewLoginUserUseCase(l, infra.Sessions)
	logoutUseCase := user.NewLogoutUserUseCase(l, infra.Sessions)

	// Create account use cases
	accountUseCases := controller.AccountUseCases{
		List:     account.NewListAccountsUseCase(l),
		Create:   account.NewCreateAccountUseCase(l, infra.Accounts, infra.Publisher),
		Edit:     account.NewEditAccountUseCase(l, infra.Accounts, infra.Publisher),
		Delete:   account.NewDeleteAccountUseCase(l, infra.Accounts, infra.Purchases, infra.Sessions, infra.Publisher),
		Merge:    account.NewMergeAccountsUseCase(l, infra.Accounts, infra.Purchases, infra.Sessions, infra.Publisher),
		Share:    account.NewShareAccountUseCase(l, infra.Accounts, infra.Publisher),
		Withhold: account.NewWithholdAccountUseCase(l, infra.Accounts, infra.Purchases, infra.Publisher),
		Select:   account.NewSelectAccountUseCase(l, infra.Sessions),
		Deselect: account.NewDeselectAccountUseCase(l, infra.Sessions),
		Summary:  account.NewGetSummaryUseCase(l),
		History:  account.NewGetHistoryUseCase(l),
	}

	// Create purchase use cases
	listPurchasesUseCase := purchase.NewListPurchasesUseCase(l)
	createPurchaseUseCase := purchase.NewCreatePurchaseUseCase(l, infra.Purchases, infra.Publisher)
	editPurchaseUseCase := purchase.NewEditPurchaseUseCase(l, infra.Purchases, infra.Publisher)
	deletePurchaseUseCase := purchase.NewDeletePurchaseUseCase(l, infra.Purchases, infra.Publisher)

	// Create settings use cases
	getSettingsUseCase := settings.NewGetSettingsUseCase(infra.Settings)
	updateThemeUseCase := settings.NewUpdateThemeUseCase(l, infra.Settings, infra.Publisher)

	// Create controllers
	controllers := router.Controllers{
		Health: controller.NewHealthController(infra.Driver, infra.Healthy),
		Session: controller.NewSessionController(
			createSessionUseCase,
			endSessionUseCase,
			loginUseCase,
			logoutUseCase,
		),
		User: controller.NewUserController(
			listUsersUseCase,
			createUserUseCase,
			editUserUseCase,
			deleteUserUseCase,
			overviewUseCase,
		),
		Account: controller.NewAccountController(accountUseCases),
		Purchase: controller.NewPurchaseController(
			listPurchasesUseCase,
			createPurchaseUseCase,
			editPurchaseUseCase,
			deletePurchaseUseCase,
		),
		Settings: controller.NewSettingsController(
			getSettingsUseCase,
			updateThemeUseCase,
		),
	}

	// Create middleware
	sessionMiddleware := middleware.NewSessionMiddleware(infra.Sessions)
	sessionLimiter := middleware.NewRateLimiter(cfg.Server.SessionRateLimit, cfg.Server.SessionRateWindow)

	r := router.NewRouter(controllers, sessionMiddleware, sessionLimiter)
	r.Setup(cfg.Server.Environment)

	return &Injector{
		Config:         cfg,
		Infra:          infra,
		Ledger:         l,
		Router:         r,
		SessionLimiter: sessionLimiter,
	}, nil
}
