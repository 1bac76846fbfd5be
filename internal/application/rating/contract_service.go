package rating

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shipkaro/backend/internal/domain/rating"
	"github.com/shipkaro/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ContractService manages a tenant's sell-rate courier contracts
type ContractService struct {
	contracts rating.ContractRepository
}

// NewContractService creates a new ContractService
func NewContractService(contracts rating.ContractRepository) *ContractService {
	return &ContractService{contracts: contracts}
}

// Create creates a new active contract for the tenant
func (s *ContractService) Create(ctx context.Context, tenantID uuid.UUID, req CreateContractRequest) (*ContractResponse, error) {
	contract := rating.NewCourierContract(tenantID, rating.NewAggregator(req.Aggregator), req.Courier)
	contract.Priority = req.Priority
	contract.MinChargeableWeight = decimal.NewFromFloat(req.MinChargeableWeight)
	contract.AdditionalWeightBracket = decimal.NewFromFloat(req.AdditionalWeightBracket)
	contract.CODPercentRate = decimal.NewFromFloat(req.CODPercentRate)
	contract.CODAbsoluteRate = decimal.NewFromFloat(req.CODAbsoluteRate)
	contract.TaxRate = decimal.NewFromFloat(req.TaxRate)
	contract.FuelSurcharge = decimal.NewFromFloat(req.FuelSurcharge)
	contract.HandlingCharge = decimal.NewFromFloat(req.HandlingCharge)

	var err error
	if contract.BaseRates, err = req.BaseRates.toDomain(); err != nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", err.Error())
	}
	if contract.AdditionalRates, err = req.AdditionalRates.toDomain(); err != nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", err.Error())
	}
	if contract.RTOBaseRates, err = req.RTOBaseRates.toDomain(); err != nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", err.Error())
	}
	if contract.RTOAdditionalRates, err = req.RTOAdditionalRates.toDomain(); err != nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", err.Error())
	}

	if err := contract.Profile().Validate(); err != nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", err.Error())
	}

	if err := s.contracts.Save(ctx, contract); err != nil {
		return nil, err
	}

	resp := ToContractResponse(contract)
	return &resp, nil
}

// GetByID retrieves a contract, scoped to the tenant
func (s *ContractService) GetByID(ctx context.Context, tenantID, contractID uuid.UUID) (*ContractResponse, error) {
	contract, err := s.findForTenant(ctx, tenantID, contractID)
	if err != nil {
		return nil, err
	}
	resp := ToContractResponse(contract)
	return &resp, nil
}

// List retrieves the tenant's contracts, optionally active only
func (s *ContractService) List(ctx context.Context, tenantID uuid.UUID, activeOnly bool) ([]ContractResponse, error) {
	var contracts []*rating.CourierContract
	var err error

	if activeOnly {
		contracts, err = s.contracts.FindActiveForTenant(ctx, tenantID)
	} else {
		contracts, err = s.contracts.FindAllForTenant(ctx, tenantID)
	}
	if err != nil {
		return nil, err
	}

	responses := make([]ContractResponse, 0, len(contracts))
	for _, c := range contracts {
		responses = append(responses, ToContractResponse(c))
	}
	return responses, nil
}

// Update applies the non-nil fields of the request to the contract
func (s *ContractService) Update(ctx context.Context, tenantID, contractID uuid.UUID, req UpdateContractRequest) (*ContractResponse, error) {
	contract, err := s.findForTenant(ctx, tenantID, contractID)
	if err != nil {
		return nil, err
	}

	if req.Status != nil {
		contract.Status = rating.ContractStatus(*req.Status)
	}
	if req.Priority != nil {
		contract.Priority = *req.Priority
	}
	if req.MinChargeableWeight != nil {
		contract.MinChargeableWeight = decimal.NewFromFloat(*req.MinChargeableWeight)
	}
	if req.AdditionalWeightBracket != nil {
		contract.AdditionalWeightBracket = decimal.NewFromFloat(*req.AdditionalWeightBracket)
	}
	if req.BaseRates != nil {
		if contract.BaseRates, err = req.BaseRates.toDomain(); err != nil {
			return nil, shared.NewDomainError("VALIDATION_ERROR", err.Error())
		}
	}
	if req.AdditionalRates != nil {
		if contract.AdditionalRates, err = req.AdditionalRates.toDomain(); err != nil {
			return nil, shared.NewDomainError("VALIDATION_ERROR", err.Error())
		}
	}
	if req.RTOBaseRates != nil {
		if contract.RTOBaseRates, err = req.RTOBaseRates.toDomain(); err != nil {
			return nil, shared.NewDomainError("VALIDATION_ERROR", err.Error())
		}
	}
	if req.RTOAdditionalRates != nil {
		if contract.RTOAdditionalRates, err = req.RTOAdditionalRates.toDomain(); err != nil {
			return nil, shared.NewDomainError("VALIDATION_ERROR", err.Error())
		}
	}
	if req.CODPercentRate != nil {
		contract.CODPercentRate = decimal.NewFromFloat(*req.CODPercentRate)
	}
	if req.CODAbsoluteRate != nil {
		contract.CODAbsoluteRate = decimal.NewFromFloat(*req.CODAbsoluteRate)
	}
	if req.TaxRate != nil {
		contract.TaxRate = decimal.NewFromFloat(*req.TaxRate)
	}
	if req.FuelSurcharge != nil {
		contract.FuelSurcharge = decimal.NewFromFloat(*req.FuelSurcharge)
	}
	if req.HandlingCharge != nil {
		contract.HandlingCharge = decimal.NewFromFloat(*req.HandlingCharge)
	}

	if err := contract.Profile().Validate(); err != nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", err.Error())
	}

	contract.UpdatedAt = time.Now()
	if err := s.contracts.Save(ctx, contract); err != nil {
		return nil, err
	}

	resp := ToContractResponse(contract)
	return &resp, nil
}

// Delete removes a contract, scoped to the tenant
func (s *ContractService) Delete(ctx context.Context, tenantID, contractID uuid.UUID) error {
	if _, err := s.findForTenant(ctx, tenantID, contractID); err != nil {
		return err
	}
	return s.contracts.Delete(ctx, contractID)
}

// findForTenant loads a contract and enforces tenant ownership. A contract
// belonging to another tenant reads as not found, never as forbidden.
func (s *ContractService) findForTenant(ctx context.Context, tenantID, contractID uuid.UUID) (*rating.CourierContract, error) {
	contract, err := s.contracts.FindByID(ctx, contractID)
	if err != nil {
		return nil, err
	}
	if contract.TenantID != tenantID {
		return nil, shared.ErrNotFound
	}
	return contract, nil
}
