// Package integration exercises the full HTTP stack against a real
// database. Tests run on in-memory SQLite so they need no external
// services; the GORM layer is identical to the Postgres one in production.
package integration

import (
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	apprating "github.com/shipkaro/backend/internal/application/rating"
	"github.com/shipkaro/backend/internal/domain/rating"
	"github.com/shipkaro/backend/internal/infrastructure/cache"
	"github.com/shipkaro/backend/internal/infrastructure/persistence"
	"github.com/shipkaro/backend/internal/infrastructure/rates"
	"github.com/shipkaro/backend/internal/interfaces/http/handler"
	"github.com/shipkaro/backend/internal/interfaces/http/middleware"
	"github.com/shipkaro/backend/internal/interfaces/http/router"
)

// TestEnv bundles the wired application for one integration test.
type TestEnv struct {
	DB        *gorm.DB
	Engine    *gin.Engine
	Contracts *persistence.GormContractRepository
}

// NewTestEnv builds the full stack: SQLite database, migrated schema,
// embedded rate table, in-memory quote cache, services, and router.
func NewTestEnv(t *testing.T) *TestEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	// One named in-memory database per test keeps state isolated
	dsn := "file:" + strings.ReplaceAll(t.Name(), "/", "_") + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:                 gormlogger.Default.LogMode(gormlogger.Silent),
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err, "Failed to open SQLite database")

	require.NoError(t, db.AutoMigrate(&rating.CourierContract{}), "Failed to migrate schema")
	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
	})

	log := zap.NewNop()

	table, err := rates.Load(log)
	require.NoError(t, err, "Failed to load rate table")

	quotes := cache.NewInMemoryQuoteCache()
	t.Cleanup(func() { _ = quotes.Close() })

	contractRepo := persistence.NewGormContractRepository(db)

	serviceabilityService := apprating.NewServiceabilityService(contractRepo, quotes, time.Minute, log)
	orderPricingService := apprating.NewOrderPricingService(table.NewCalculator(), log)
	contractService := apprating.NewContractService(contractRepo)

	middleware.SetupValidator()

	engine := gin.New()
	engine.Use(middleware.RequestID())
	engine.Use(middleware.BodyLimit(4 << 20))

	router.New(engine).
		Register(
			handler.NewRatingHandler(serviceabilityService, orderPricingService),
			handler.NewContractHandler(contractService),
			handler.NewSystemHandler(nil, "shipkaro-backend", "test"),
		).
		Setup()

	return &TestEnv{
		DB:        db,
		Engine:    engine,
		Contracts: contractRepo,
	}
}
