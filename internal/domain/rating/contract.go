package rating

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ContractStatus is the lifecycle state of a courier contract
type ContractStatus string

const (
	ContractStatusActive   ContractStatus = "active"
	ContractStatusInactive ContractStatus = "inactive"
)

// CourierContract is a per-client (tenant) sell-rate agreement for one
// courier under one aggregator. Contract rates live in the database and
// change with commercial negotiation, unlike the static buy-rate table,
// but both feed the same breakdown algorithm.
type CourierContract struct {
	ID         uuid.UUID
	TenantID   uuid.UUID
	Aggregator Aggregator
	Courier    string
	Status     ContractStatus
	// Priority orders a client's configured courier list during AWB
	// assignment; lower sorts first before cost ranking applies.
	Priority int

	MinChargeableWeight     decimal.Decimal
	AdditionalWeightBracket decimal.Decimal
	BaseRates               ZoneRates
	AdditionalRates         ZoneRates
	RTOBaseRates            ZoneRates
	RTOAdditionalRates      ZoneRates
	CODPercentRate          decimal.Decimal
	CODAbsoluteRate         decimal.Decimal
	TaxRate                 decimal.Decimal
	FuelSurcharge           decimal.Decimal
	HandlingCharge          decimal.Decimal

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName returns the database table name for GORM
func (CourierContract) TableName() string {
	return "courier_contracts"
}

// IsActive returns true when the contract may be priced
func (c *CourierContract) IsActive() bool {
	return c.Status == ContractStatusActive
}

// Profile adapts the contract's sell rates into a RateProfile so contract
// pricing shares the buy-rate algorithm verbatim.
func (c *CourierContract) Profile() *RateProfile {
	return &RateProfile{
		MinChargeableWeight:     c.MinChargeableWeight,
		AdditionalWeightBracket: c.AdditionalWeightBracket,
		BaseRates:               c.BaseRates,
		AdditionalRates:         c.AdditionalRates,
		RTOBaseRates:            c.RTOBaseRates,
		RTOAdditionalRates:      c.RTOAdditionalRates,
		CODCharges: CODChargeRule{
			PercentRate:  c.CODPercentRate,
			AbsoluteRate: c.CODAbsoluteRate,
		},
		TaxRate:        c.TaxRate,
		FuelSurcharge:  c.FuelSurcharge,
		HandlingCharge: c.HandlingCharge,
	}
}

// NewCourierContract creates an active contract with a generated ID
func NewCourierContract(tenantID uuid.UUID, aggregator Aggregator, courier string) *CourierContract {
	now := time.Now()
	return &CourierContract{
		ID:         uuid.New(),
		TenantID:   tenantID,
		Aggregator: aggregator,
		Courier:    courier,
		Status:     ContractStatusActive,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// ContractRepository is the persistence port for courier contracts
type ContractRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*CourierContract, error)
	FindActiveForTenant(ctx context.Context, tenantID uuid.UUID) ([]*CourierContract, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID) ([]*CourierContract, error)
	Save(ctx context.Context, contract *CourierContract) error
	Delete(ctx context.Context, id uuid.UUID) error
}
