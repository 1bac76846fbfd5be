package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shipkaro/backend/internal/domain/rating"
	"github.com/shipkaro/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormContractRepository implements rating.ContractRepository using GORM
type GormContractRepository struct {
	db *gorm.DB
}

// NewGormContractRepository creates a new GormContractRepository
func NewGormContractRepository(db *gorm.DB) *GormContractRepository {
	return &GormContractRepository{db: db}
}

// FindByID finds a courier contract by its ID
func (r *GormContractRepository) FindByID(ctx context.Context, id uuid.UUID) (*rating.CourierContract, error) {
	var contract rating.CourierContract
	if err := r.db.WithContext(ctx).First(&contract, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &contract, nil
}

// FindActiveForTenant finds the contracts eligible for pricing, ordered by
// the client's courier priority
func (r *GormContractRepository) FindActiveForTenant(ctx context.Context, tenantID uuid.UUID) ([]*rating.CourierContract, error) {
	var contracts []*rating.CourierContract
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND status = ?", tenantID, rating.ContractStatusActive).
		Order("priority ASC, courier ASC").
		Find(&contracts).Error; err != nil {
		return nil, err
	}
	return contracts, nil
}

// FindAllForTenant finds all contracts for a tenant regardless of status
func (r *GormContractRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID) ([]*rating.CourierContract, error) {
	var contracts []*rating.CourierContract
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("priority ASC, courier ASC").
		Find(&contracts).Error; err != nil {
		return nil, err
	}
	return contracts, nil
}

// Save creates or updates a courier contract
func (r *GormContractRepository) Save(ctx context.Context, contract *rating.CourierContract) error {
	return r.db.WithContext(ctx).Save(contract).Error
}

// Delete deletes a courier contract by ID
func (r *GormContractRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&rating.CourierContract{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormContractRepository implements rating.ContractRepository
var _ rating.ContractRepository = (*GormContractRepository)(nil)
