package rating

import (
	"time"

	"github.com/google/uuid"
	"github.com/shipkaro/backend/internal/domain/rating"
	"github.com/shipkaro/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// =============================================================================
// Serviceability DTOs
// =============================================================================

// ServiceabilityRequest describes the shipment to rank couriers for
type ServiceabilityRequest struct {
	Zone        string  `json:"zone" binding:"required"`
	DeadWeight  float64 `json:"dead_weight" binding:"gte=0"`
	Length      float64 `json:"length" binding:"gte=0"`
	Breadth     float64 `json:"breadth" binding:"gte=0"`
	Height      float64 `json:"height" binding:"gte=0"`
	OrderValue  float64 `json:"order_value" binding:"gte=0"`
	PaymentMode string  `json:"payment_mode"`
	IsRTO       bool    `json:"is_rto"`
}

// Shipment converts the request into the domain shipment
func (r ServiceabilityRequest) Shipment() (rating.Shipment, error) {
	zone, err := rating.ParseZone(r.Zone)
	if err != nil {
		return rating.Shipment{}, err
	}
	mode, err := rating.ParsePaymentMode(r.PaymentMode)
	if err != nil {
		return rating.Shipment{}, err
	}
	return rating.Shipment{
		Zone:        zone,
		DeadWeight:  decimal.NewFromFloat(r.DeadWeight),
		Length:      decimal.NewFromFloat(r.Length),
		Breadth:     decimal.NewFromFloat(r.Breadth),
		Height:      decimal.NewFromFloat(r.Height),
		OrderValue:  decimal.NewFromFloat(r.OrderValue),
		PaymentMode: mode,
		IsRTO:       r.IsRTO,
	}, nil
}

// CheapestCourierRequest narrows serviceability to an optional courier allow-list
type CheapestCourierRequest struct {
	ServiceabilityRequest
	AllowedCouriers []string `json:"allowed_couriers"`
}

// CourierOptionResponse is one ranked courier in a serviceability response
type CourierOptionResponse struct {
	ContractID uuid.UUID         `json:"contract_id"`
	Aggregator rating.Aggregator `json:"aggregator"`
	Courier    string            `json:"courier"`
	LandedCost decimal.Decimal   `json:"landed_cost"`

	// Display form with currency, e.g. "30.68 INR"
	LandedCostDisplay string                  `json:"landed_cost_display"`
	Breakdown         rating.FreightBreakdown `json:"breakdown"`
}

// ServiceabilityResponse is the full ranked quote for a shipment
type ServiceabilityResponse struct {
	ApplicableWeight decimal.Decimal         `json:"applicable_weight"`
	VolumetricWeight decimal.Decimal         `json:"volumetric_weight"`
	Options          []CourierOptionResponse `json:"options"`
	CachedAt         time.Time               `json:"cached_at,omitzero"`
}

// toServiceabilityResponse builds the response from ranked options
func toServiceabilityResponse(shipment rating.Shipment, options []rating.RankedOption) *ServiceabilityResponse {
	resp := &ServiceabilityResponse{
		ApplicableWeight: shipment.ApplicableWeight(),
		VolumetricWeight: shipment.VolumetricWeight().Round(3),
		Options:          make([]CourierOptionResponse, 0, len(options)),
	}
	for _, opt := range options {
		landed := opt.LandedCost.Round(2)
		resp.Options = append(resp.Options, CourierOptionResponse{
			ContractID:        opt.ContractID,
			Aggregator:        opt.Aggregator,
			Courier:           opt.Courier,
			LandedCost:        landed,
			LandedCostDisplay: valueobject.NewMoneyINR(landed).String(),
			Breakdown:         opt.Breakdown,
		})
	}
	return resp
}

// =============================================================================
// Order pricing DTOs
// =============================================================================

// PriceOrderRequest prices one order on a buy-rate lane
type PriceOrderRequest struct {
	Aggregator  string  `json:"aggregator" binding:"required"`
	Courier     string  `json:"courier" binding:"required"`
	Zone        string  `json:"zone" binding:"required"`
	Weight      float64 `json:"weight" binding:"gte=0"`
	OrderValue  float64 `json:"order_value" binding:"gte=0"`
	PaymentMode string  `json:"payment_mode"`
	IsRTO       bool    `json:"is_rto"`
}

// PriceOrderResponse carries the breakdown plus the billing fields an order
// record stores. A rate-not-found lane returns Priced=false with a zero
// breakdown instead of an error, so batch callers keep looping.
type PriceOrderResponse struct {
	Aggregator rating.Aggregator       `json:"aggregator"`
	Courier    string                  `json:"courier"`
	Zone       rating.Zone             `json:"zone"`
	Priced     bool                    `json:"priced"`
	Breakdown  rating.FreightBreakdown `json:"breakdown"`

	// Billing fields, shaped for the order ledger
	ForwardFreight   decimal.Decimal `json:"forward_freight"`
	ForwardCODCharge decimal.Decimal `json:"forward_cod_charge"`
	ForwardTax       decimal.Decimal `json:"forward_tax"`
	// Display form of the billed total with currency, e.g. "30.68 INR"
	TotalDisplay string `json:"total_display"`
}

// =============================================================================
// Contract DTOs
// =============================================================================

// ZoneRatesPayload is the wire form of a zone rate table
type ZoneRatesPayload map[string]float64

func (p ZoneRatesPayload) toDomain() (rating.ZoneRates, error) {
	rates := make(rating.ZoneRates, len(p))
	for key, value := range p {
		zone, err := rating.ParseZone(key)
		if err != nil {
			return nil, err
		}
		rates[zone] = decimal.NewFromFloat(value)
	}
	return rates, nil
}

func zoneRatesPayload(rates rating.ZoneRates) ZoneRatesPayload {
	p := make(ZoneRatesPayload, len(rates))
	for zone, rate := range rates {
		v, _ := rate.Float64()
		p[string(zone)] = v
	}
	return p
}

// CreateContractRequest creates a sell-rate contract for a tenant
type CreateContractRequest struct {
	Aggregator              string           `json:"aggregator" binding:"required,min=1,max=50"`
	Courier                 string           `json:"courier" binding:"required,min=1,max=100"`
	Priority                int              `json:"priority" binding:"gte=0"`
	MinChargeableWeight     float64          `json:"min_chargeable_weight" binding:"gte=0"`
	AdditionalWeightBracket float64          `json:"additional_weight_bracket" binding:"gt=0"`
	BaseRates               ZoneRatesPayload `json:"base_rates" binding:"required"`
	AdditionalRates         ZoneRatesPayload `json:"additional_rates"`
	RTOBaseRates            ZoneRatesPayload `json:"rto_base_rates"`
	RTOAdditionalRates      ZoneRatesPayload `json:"rto_additional_rates"`
	CODPercentRate          float64          `json:"cod_percent_rate" binding:"gte=0"`
	CODAbsoluteRate         float64          `json:"cod_absolute_rate" binding:"gte=0"`
	TaxRate                 float64          `json:"tax_rate" binding:"gte=0"`
	FuelSurcharge           float64          `json:"fuel_surcharge" binding:"gte=0"`
	HandlingCharge          float64          `json:"handling_charge" binding:"gte=0"`
}

// UpdateContractRequest updates mutable contract fields; nil leaves a field
// unchanged
type UpdateContractRequest struct {
	Status                  *string           `json:"status" binding:"omitempty,oneof=active inactive"`
	Priority                *int              `json:"priority" binding:"omitempty,gte=0"`
	MinChargeableWeight     *float64          `json:"min_chargeable_weight" binding:"omitempty,gte=0"`
	AdditionalWeightBracket *float64          `json:"additional_weight_bracket" binding:"omitempty,gt=0"`
	BaseRates               *ZoneRatesPayload `json:"base_rates"`
	AdditionalRates         *ZoneRatesPayload `json:"additional_rates"`
	RTOBaseRates            *ZoneRatesPayload `json:"rto_base_rates"`
	RTOAdditionalRates      *ZoneRatesPayload `json:"rto_additional_rates"`
	CODPercentRate          *float64          `json:"cod_percent_rate" binding:"omitempty,gte=0"`
	CODAbsoluteRate         *float64          `json:"cod_absolute_rate" binding:"omitempty,gte=0"`
	TaxRate                 *float64          `json:"tax_rate" binding:"omitempty,gte=0"`
	FuelSurcharge           *float64          `json:"fuel_surcharge" binding:"omitempty,gte=0"`
	HandlingCharge          *float64          `json:"handling_charge" binding:"omitempty,gte=0"`
}

// ContractResponse represents a courier contract in API responses
type ContractResponse struct {
	ID                      uuid.UUID             `json:"id"`
	TenantID                uuid.UUID             `json:"tenant_id"`
	Aggregator              rating.Aggregator     `json:"aggregator"`
	Courier                 string                `json:"courier"`
	Status                  rating.ContractStatus `json:"status"`
	Priority                int                   `json:"priority"`
	MinChargeableWeight     decimal.Decimal       `json:"min_chargeable_weight"`
	AdditionalWeightBracket decimal.Decimal       `json:"additional_weight_bracket"`
	BaseRates               ZoneRatesPayload      `json:"base_rates"`
	AdditionalRates         ZoneRatesPayload      `json:"additional_rates"`
	RTOBaseRates            ZoneRatesPayload      `json:"rto_base_rates"`
	RTOAdditionalRates      ZoneRatesPayload      `json:"rto_additional_rates"`
	CODPercentRate          decimal.Decimal       `json:"cod_percent_rate"`
	CODAbsoluteRate         decimal.Decimal       `json:"cod_absolute_rate"`
	TaxRate                 decimal.Decimal       `json:"tax_rate"`
	FuelSurcharge           decimal.Decimal       `json:"fuel_surcharge"`
	HandlingCharge          decimal.Decimal       `json:"handling_charge"`
	CreatedAt               time.Time             `json:"created_at"`
	UpdatedAt               time.Time             `json:"updated_at"`
}

// ToContractResponse converts a domain contract to its API representation
func ToContractResponse(c *rating.CourierContract) ContractResponse {
	return ContractResponse{
		ID:                      c.ID,
		TenantID:                c.TenantID,
		Aggregator:              c.Aggregator,
		Courier:                 c.Courier,
		Status:                  c.Status,
		Priority:                c.Priority,
		MinChargeableWeight:     c.MinChargeableWeight,
		AdditionalWeightBracket: c.AdditionalWeightBracket,
		BaseRates:               zoneRatesPayload(c.BaseRates),
		AdditionalRates:         zoneRatesPayload(c.AdditionalRates),
		RTOBaseRates:            zoneRatesPayload(c.RTOBaseRates),
		RTOAdditionalRates:      zoneRatesPayload(c.RTOAdditionalRates),
		CODPercentRate:          c.CODPercentRate,
		CODAbsoluteRate:         c.CODAbsoluteRate,
		TaxRate:                 c.TaxRate,
		FuelSurcharge:           c.FuelSurcharge,
		HandlingCharge:          c.HandlingCharge,
		CreatedAt:               c.CreatedAt,
		UpdatedAt:               c.UpdatedAt,
	}
}
