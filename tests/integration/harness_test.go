package integration

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	financeapp "github.com/grafica/backend/internal/application/finance"
	identityapp "github.com/grafica/backend/internal/application/identity"
	partnerapp "github.com/grafica/backend/internal/application/partner"
	productionapp "github.com/grafica/backend/internal/application/production"
	reportapp "github.com/grafica/backend/internal/application/report"
	tradeapp "github.com/grafica/backend/internal/application/trade"
	"github.com/grafica/backend/internal/domain/shared"
	"github.com/grafica/backend/internal/infrastructure/auth"
	"github.com/grafica/backend/internal/infrastructure/config"
	"github.com/grafica/backend/internal/infrastructure/event"
	"github.com/grafica/backend/internal/infrastructure/identityprovider"
	"github.com/grafica/backend/internal/infrastructure/persistence"
	"github.com/grafica/backend/tests/testutil"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// stack wires the application services over one test database the way the
// server does, minus HTTP
type stack struct {
	db          *TestDB
	auth        *identityapp.AuthService
	tenants     *identityapp.TenantService
	clients     *partnerapp.PartyService
	quotes      *tradeapp.QuoteService
	orders      *tradeapp.ServiceOrderService
	production  *productionapp.Service
	receivables *financeapp.ReceivableService
	ledger      *reportapp.LedgerService
	events      *testutil.RecordingHandler
}

func newStack(t *testing.T) *stack {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	tdb := NewTestDB(t)
	db := tdb.DB
	log := zap.NewNop()

	txManager := persistence.NewGormTransactionManager(db)
	userRepo := persistence.NewGormUserRepository(db)
	membershipRepo := persistence.NewGormMembershipRepository(db)
	clientRepo := persistence.NewGormClientRepository(db)
	categoryRepo := persistence.NewGormCategoryRepository(db)
	quoteRepo := persistence.NewGormQuoteRepository(db)
	orderRepo := persistence.NewGormServiceOrderRepository(db)
	receivableRepo := persistence.NewGormReceivableRepository(db)
	reportRepo := persistence.NewGormReportRepository(db)

	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                "integration-secret-integration-secret",
		AccessTokenExpiration: time.Hour,
		Issuer:                "grafica-test",
	})

	bus := event.NewInMemoryEventBus(log)
	recorder := testutil.NewRecordingHandler()
	bus.Subscribe(recorder)
	quotes := tradeapp.NewQuoteService(quoteRepo, orderRepo, receivableRepo, clientRepo, txManager, log)
	quotes.SetEventPublisher(bus)
	orders := tradeapp.NewServiceOrderService(orderRepo, clientRepo, txManager, log)
	orders.SetEventPublisher(bus)

	return &stack{
		db: tdb,
		auth: identityapp.NewAuthService(userRepo, identityprovider.NewLocalProvider(), jwtService,
			auth.NewInMemoryTokenBlacklist(), log),
		tenants: identityapp.NewTenantService(persistence.NewGormTenantRepository(db), membershipRepo,
			persistence.NewGormActiveTenantStore(db), txManager, log),
		clients:     partnerapp.NewClientService(clientRepo, log),
		quotes:      quotes,
		orders:      orders,
		production: productionapp.NewService(persistence.NewGormProductionOrderRepository(db), clientRepo, quoteRepo,
			txManager, log),
		receivables: financeapp.NewReceivableService(receivableRepo, clientRepo, categoryRepo, log),
		ledger:      reportapp.NewLedgerService(reportRepo, reportRepo, log),
		events:      recorder,
	}
}

// signUp registers a user and creates their first company
func (s *stack) signUp(t *testing.T, email, code string) (uuid.UUID, shared.TenantScope) {
	t.Helper()
	ctx := context.Background()

	registered, err := s.auth.Register(ctx, identityapp.RegisterInput{Email: email, Password: "secret-password"})
	require.NoError(t, err)
	userID := registered.User.ID

	membership, err := s.tenants.Create(ctx, userID, identityapp.CreateTenantInput{Name: "Gráfica " + code, Code: code})
	require.NoError(t, err)

	scope, err := s.tenants.ResolveScope(ctx, userID, uuid.Nil)
	require.NoError(t, err)
	require.Equal(t, membership.Tenant.ID, scope.TenantID())
	return userID, scope
}
