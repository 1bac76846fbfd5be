package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apprating "github.com/shipkaro/backend/internal/application/rating"
	"github.com/shipkaro/backend/internal/domain/rating"
	"github.com/shipkaro/backend/internal/infrastructure/cache"
	"github.com/shipkaro/backend/internal/interfaces/http/dto"
	"github.com/shipkaro/backend/internal/interfaces/http/middleware"
	"github.com/shipkaro/backend/internal/interfaces/http/router"
)

// MockContractRepository is a testify mock of the contract repository port
type MockContractRepository struct {
	mock.Mock
}

func (m *MockContractRepository) FindByID(ctx context.Context, id uuid.UUID) (*rating.CourierContract, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rating.CourierContract), args.Error(1)
}

func (m *MockContractRepository) FindActiveForTenant(ctx context.Context, tenantID uuid.UUID) ([]*rating.CourierContract, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*rating.CourierContract), args.Error(1)
}

func (m *MockContractRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID) ([]*rating.CourierContract, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*rating.CourierContract), args.Error(1)
}

func (m *MockContractRepository) Save(ctx context.Context, contract *rating.CourierContract) error {
	args := m.Called(ctx, contract)
	return args.Error(0)
}

func (m *MockContractRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func flatRates(v float64) rating.ZoneRates {
	rates := rating.ZoneRates{}
	for _, z := range []rating.Zone{rating.ZoneA, rating.ZoneB, rating.ZoneC, rating.ZoneD, rating.ZoneE} {
		rates[z] = decimal.NewFromFloat(v)
	}
	return rates
}

func testContract(tenantID uuid.UUID, courier string, baseRate float64) *rating.CourierContract {
	contract := rating.NewCourierContract(tenantID, "shiprocket", courier)
	contract.MinChargeableWeight = decimal.NewFromFloat(0.5)
	contract.AdditionalWeightBracket = decimal.NewFromFloat(0.5)
	contract.BaseRates = flatRates(baseRate)
	contract.AdditionalRates = flatRates(baseRate)
	contract.RTOBaseRates = flatRates(baseRate)
	contract.RTOAdditionalRates = flatRates(baseRate)
	contract.CODPercentRate = decimal.NewFromFloat(1.5)
	contract.CODAbsoluteRate = decimal.NewFromInt(25)
	contract.TaxRate = decimal.NewFromInt(18)
	return contract
}

func newTestRouter(t *testing.T, registrars ...router.RouteRegistrar) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()
	engine := gin.New()
	engine.Use(middleware.RequestID())
	return router.New(engine).Register(registrars...).Setup()
}

func newRatingRouter(t *testing.T, repo *MockContractRepository) *gin.Engine {
	t.Helper()
	quotes := cache.NewInMemoryQuoteCache()
	t.Cleanup(func() { _ = quotes.Close() })
	serviceability := apprating.NewServiceabilityService(repo, quotes, 5*time.Minute, zap.NewNop())

	source := &stubRateSource{profiles: map[string]*rating.RateProfile{
		"shiprocket/delhivery": {
			MinChargeableWeight:     decimal.NewFromFloat(0.5),
			AdditionalWeightBracket: decimal.NewFromFloat(0.5),
			BaseRates:               flatRates(26),
			AdditionalRates:         flatRates(24),
			RTOBaseRates:            flatRates(26),
			RTOAdditionalRates:      flatRates(24),
			CODCharges: rating.CODChargeRule{
				PercentRate:  decimal.NewFromFloat(1.5),
				AbsoluteRate: decimal.NewFromInt(25),
			},
			TaxRate: decimal.NewFromInt(18),
		},
	}}
	normalizer := rating.NewNormalizer(map[rating.Aggregator]*rating.CourierMapping{
		"shiprocket": rating.NewCourierMapping([]rating.MappingRule{
			{Pattern: "delhivery", Courier: "delhivery"},
		}),
	})
	pricing := apprating.NewOrderPricingService(rating.NewCalculator(source, normalizer), zap.NewNop())

	return newTestRouter(t, NewRatingHandler(serviceability, pricing))
}

type stubRateSource struct {
	profiles map[string]*rating.RateProfile
}

func (s *stubRateSource) Profile(aggregator rating.Aggregator, courier string) (*rating.RateProfile, bool) {
	p, ok := s.profiles[string(aggregator)+"/"+courier]
	return p, ok
}

func doJSON(t *testing.T, engine *gin.Engine, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func dataMap(t *testing.T, resp dto.Response) map[string]any {
	t.Helper()
	data, ok := resp.Data.(map[string]any)
	require.True(t, ok, "response data is not an object")
	return data
}
