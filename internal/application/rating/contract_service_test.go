package rating

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shipkaro/backend/internal/domain/rating"
	"github.com/shipkaro/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func flatPayload(v float64) ZoneRatesPayload {
	return ZoneRatesPayload{"zone_a": v, "zone_b": v, "zone_c": v, "zone_d": v, "zone_e": v}
}

func validCreateRequest() CreateContractRequest {
	return CreateContractRequest{
		Aggregator:              "Shiprocket",
		Courier:                 "delhivery",
		Priority:                1,
		MinChargeableWeight:     0.5,
		AdditionalWeightBracket: 0.5,
		BaseRates:               flatPayload(26),
		AdditionalRates:         flatPayload(24),
		RTOBaseRates:            flatPayload(26),
		RTOAdditionalRates:      flatPayload(24),
		CODPercentRate:          1.5,
		CODAbsoluteRate:         25,
		TaxRate:                 18,
	}
}

func TestContractService_Create(t *testing.T) {
	t.Run("creates active contract", func(t *testing.T) {
		repo := new(MockContractRepository)
		svc := NewContractService(repo)
		tenantID := uuid.New()

		repo.On("Save", mock.Anything, mock.AnythingOfType("*rating.CourierContract")).Return(nil)

		resp, err := svc.Create(context.Background(), tenantID, validCreateRequest())

		require.NoError(t, err)
		assert.Equal(t, tenantID, resp.TenantID)
		assert.Equal(t, rating.Aggregator("shiprocket"), resp.Aggregator)
		assert.Equal(t, rating.ContractStatusActive, resp.Status)
		assert.Equal(t, float64(26), resp.BaseRates["zone_b"])
		repo.AssertExpectations(t)
	})

	t.Run("rejects unknown zone key", func(t *testing.T) {
		repo := new(MockContractRepository)
		svc := NewContractService(repo)

		req := validCreateRequest()
		req.BaseRates = ZoneRatesPayload{"zone_f": 10}

		_, err := svc.Create(context.Background(), uuid.New(), req)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "VALIDATION_ERROR", domainErr.Code)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("rejects zero weight bracket", func(t *testing.T) {
		repo := new(MockContractRepository)
		svc := NewContractService(repo)

		req := validCreateRequest()
		req.AdditionalWeightBracket = 0

		_, err := svc.Create(context.Background(), uuid.New(), req)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "VALIDATION_ERROR", domainErr.Code)
	})
}

func TestContractService_GetByID(t *testing.T) {
	t.Run("returns tenant's contract", func(t *testing.T) {
		repo := new(MockContractRepository)
		svc := NewContractService(repo)
		tenantID := uuid.New()
		contract := testContract(tenantID, "bluedart", 30)

		repo.On("FindByID", mock.Anything, contract.ID).Return(contract, nil)

		resp, err := svc.GetByID(context.Background(), tenantID, contract.ID)
		require.NoError(t, err)
		assert.Equal(t, "bluedart", resp.Courier)
	})

	t.Run("another tenant's contract reads as not found", func(t *testing.T) {
		repo := new(MockContractRepository)
		svc := NewContractService(repo)
		contract := testContract(uuid.New(), "bluedart", 30)

		repo.On("FindByID", mock.Anything, contract.ID).Return(contract, nil)

		_, err := svc.GetByID(context.Background(), uuid.New(), contract.ID)
		assert.Equal(t, shared.ErrNotFound, err)
	})
}

func TestContractService_List(t *testing.T) {
	repo := new(MockContractRepository)
	svc := NewContractService(repo)
	tenantID := uuid.New()

	active := []*rating.CourierContract{testContract(tenantID, "bluedart", 30)}
	repo.On("FindActiveForTenant", mock.Anything, tenantID).Return(active, nil)

	responses, err := svc.List(context.Background(), tenantID, true)
	require.NoError(t, err)
	require.Len(t, responses, 1)
	assert.Equal(t, "bluedart", responses[0].Courier)
	repo.AssertNotCalled(t, "FindAllForTenant", mock.Anything, mock.Anything)
}

func TestContractService_Update(t *testing.T) {
	t.Run("applies partial update", func(t *testing.T) {
		repo := new(MockContractRepository)
		svc := NewContractService(repo)
		tenantID := uuid.New()
		contract := testContract(tenantID, "bluedart", 30)

		repo.On("FindByID", mock.Anything, contract.ID).Return(contract, nil)
		repo.On("Save", mock.Anything, contract).Return(nil)

		status := "inactive"
		priority := 5
		resp, err := svc.Update(context.Background(), tenantID, contract.ID, UpdateContractRequest{
			Status:   &status,
			Priority: &priority,
		})

		require.NoError(t, err)
		assert.Equal(t, rating.ContractStatusInactive, resp.Status)
		assert.Equal(t, 5, resp.Priority)
		// Untouched fields survive
		assert.Equal(t, float64(30), resp.BaseRates["zone_a"])
		repo.AssertExpectations(t)
	})

	t.Run("rejects update that breaks rate math", func(t *testing.T) {
		repo := new(MockContractRepository)
		svc := NewContractService(repo)
		tenantID := uuid.New()
		contract := testContract(tenantID, "bluedart", 30)

		repo.On("FindByID", mock.Anything, contract.ID).Return(contract, nil)

		bad := -1.0
		_, err := svc.Update(context.Background(), tenantID, contract.ID, UpdateContractRequest{
			MinChargeableWeight: &bad,
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "VALIDATION_ERROR", domainErr.Code)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestContractService_Delete(t *testing.T) {
	t.Run("deletes tenant's contract", func(t *testing.T) {
		repo := new(MockContractRepository)
		svc := NewContractService(repo)
		tenantID := uuid.New()
		contract := testContract(tenantID, "bluedart", 30)

		repo.On("FindByID", mock.Anything, contract.ID).Return(contract, nil)
		repo.On("Delete", mock.Anything, contract.ID).Return(nil)

		assert.NoError(t, svc.Delete(context.Background(), tenantID, contract.ID))
		repo.AssertExpectations(t)
	})

	t.Run("refuses cross-tenant delete", func(t *testing.T) {
		repo := new(MockContractRepository)
		svc := NewContractService(repo)
		contract := testContract(uuid.New(), "bluedart", 30)

		repo.On("FindByID", mock.Anything, contract.ID).Return(contract, nil)

		err := svc.Delete(context.Background(), uuid.New(), contract.ID)
		assert.Equal(t, shared.ErrNotFound, err)
		repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}
