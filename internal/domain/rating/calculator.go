package rating

import (
	"github.com/shopspring/decimal"

	"github.com/shipkaro/backend/internal/domain/shared"
)

var hundred = decimal.NewFromInt(100)

// FreightBreakdown is the calculator's output. Monetary fields are rounded
// to 2 places at the point of return; intermediate accumulation keeps full
// precision so bracket and surcharge math never compounds rounding error.
type FreightBreakdown struct {
	Freight            decimal.Decimal `json:"freight"`
	CODCharges         decimal.Decimal `json:"cod_charges"`
	FuelSurcharge      decimal.Decimal `json:"fuel_surcharge"`
	HandlingCharge     decimal.Decimal `json:"handling_charge"`
	Subtotal           decimal.Decimal `json:"subtotal"`
	TaxAmount          decimal.Decimal `json:"tax_amount"`
	TotalAmount        decimal.Decimal `json:"total_amount"`
	ChargeableWeight   decimal.Decimal `json:"chargeable_weight"`
	AdditionalBrackets int64           `json:"additional_brackets"`
	IsRTO              bool            `json:"is_rto"`

	// RTO-only audit fields. CODRefund is the negative COD charge that
	// models refunding the forward-leg COD fee (the recipient never paid).
	ForwardFreight decimal.Decimal `json:"forward_freight,omitempty"`
	RTOFreight     decimal.Decimal `json:"rto_freight,omitempty"`
	CODRefund      decimal.Decimal `json:"cod_refund,omitempty"`
}

// LandedCost is the ranking key used to compare courier options:
// freight + COD charges + tax.
func (b FreightBreakdown) LandedCost() decimal.Decimal {
	return b.Freight.Add(b.CODCharges).Add(b.TaxAmount)
}

// Input carries everything needed to price one shipment on one lane
type Input struct {
	Aggregator Aggregator
	Courier    string
	Zone       Zone
	// Weight is the applicable weight in kg, already the max of dead and
	// volumetric weight.
	Weight      decimal.Decimal
	OrderValue  decimal.Decimal
	PaymentMode PaymentMode
	IsRTO       bool
}

// RateSource looks up the rate profile for a normalized courier key
// within an aggregator's namespace.
type RateSource interface {
	Profile(aggregator Aggregator, courier string) (*RateProfile, bool)
}

// Calculator computes freight breakdowns against a static rate source.
// It is stateless and safe for concurrent use.
type Calculator struct {
	source     RateSource
	normalizer *Normalizer
}

// NewCalculator creates a Calculator over a rate source and normalizer
func NewCalculator(source RateSource, normalizer *Normalizer) *Calculator {
	return &Calculator{source: source, normalizer: normalizer}
}

// Normalize exposes courier name resolution for callers that need the
// canonical key without pricing (AWB assignment, discrepancy audits).
func (c *Calculator) Normalize(aggregator Aggregator, raw string) string {
	return c.normalizer.Normalize(aggregator, raw)
}

// Calculate prices one lane. An unknown aggregator/courier pair is a soft
// failure: the returned breakdown carries zero charges alongside
// shared.ErrRateNotFound, so batch pricing loops can record the miss and
// continue past unpriced lanes.
func (c *Calculator) Calculate(in Input) (FreightBreakdown, error) {
	courier := c.normalizer.Normalize(in.Aggregator, in.Courier)
	profile, ok := c.source.Profile(in.Aggregator, courier)
	if !ok {
		return FreightBreakdown{IsRTO: in.IsRTO}, shared.ErrRateNotFound
	}
	return PriceWithProfile(profile, in.Zone, in.Weight, in.OrderValue, in.PaymentMode, in.IsRTO), nil
}

// PriceWithProfile runs the breakdown algorithm against an explicit rate
// profile. Contract-based pricing (per-client sell rates) shares this
// exact path with static buy-rate pricing.
func PriceWithProfile(p *RateProfile, zone Zone, weight, orderValue decimal.Decimal, mode PaymentMode, isRTO bool) FreightBreakdown {
	chargeableWeight, brackets := chargeableWeight(p, weight)
	bracketCount := decimal.NewFromInt(brackets)

	forwardFreight := p.BaseRates.Rate(zone).Add(p.AdditionalRates.Rate(zone).Mul(bracketCount))

	freight := forwardFreight
	var rtoFreight decimal.Decimal
	if isRTO {
		// The shipment went out and came back: both legs are charged.
		rtoFreight = p.RTOBaseRates.Rate(zone).Add(p.RTOAdditionalRates.Rate(zone).Mul(bracketCount))
		freight = forwardFreight.Add(rtoFreight)
	}

	var codCharges decimal.Decimal
	if mode.IsCOD() {
		fee := p.CODCharges.Fee(orderValue)
		if isRTO {
			codCharges = fee.Neg()
		} else {
			codCharges = fee
		}
	}

	// Fuel surcharge applies to freight only, after the RTO leg is folded in.
	fuelSurcharge := freight.Mul(p.FuelSurcharge).Div(hundred)

	subtotal := freight.Add(codCharges).Add(fuelSurcharge).Add(p.HandlingCharge)
	taxAmount := subtotal.Mul(p.TaxRate).Div(hundred)
	totalAmount := subtotal.Add(taxAmount)

	breakdown := FreightBreakdown{
		Freight:            freight.Round(2),
		CODCharges:         codCharges.Round(2),
		FuelSurcharge:      fuelSurcharge.Round(2),
		HandlingCharge:     p.HandlingCharge.Round(2),
		Subtotal:           subtotal.Round(2),
		TaxAmount:          taxAmount.Round(2),
		TotalAmount:        totalAmount.Round(2),
		ChargeableWeight:   chargeableWeight,
		AdditionalBrackets: brackets,
		IsRTO:              isRTO,
	}

	if isRTO {
		breakdown.ForwardFreight = forwardFreight.Round(2)
		breakdown.RTOFreight = rtoFreight.Round(2)
		if codCharges.IsNegative() {
			breakdown.CODRefund = codCharges.Round(2)
		} else {
			breakdown.CODRefund = decimal.Zero
		}
	}

	return breakdown
}

// chargeableWeight applies the bracket rounding convention: weights at or
// below the minimum bill the minimum with zero brackets; anything above
// rounds UP to the next whole bracket. An exact multiple of the bracket
// yields exactly that bracket count, never one more.
func chargeableWeight(p *RateProfile, weight decimal.Decimal) (decimal.Decimal, int64) {
	if weight.LessThanOrEqual(p.MinChargeableWeight) {
		return p.MinChargeableWeight, 0
	}
	if !p.AdditionalWeightBracket.IsPositive() {
		return p.MinChargeableWeight, 0
	}
	additionalWeight := weight.Sub(p.MinChargeableWeight)
	brackets := additionalWeight.Div(p.AdditionalWeightBracket).Ceil().IntPart()
	chargeable := p.MinChargeableWeight.Add(p.AdditionalWeightBracket.Mul(decimal.NewFromInt(brackets)))
	return chargeable, brackets
}
