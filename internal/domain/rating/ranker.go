package rating

import (
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var volumetricDivisor = decimal.NewFromInt(5000)

// Shipment describes the package being priced across contracts
type Shipment struct {
	Zone       Zone
	DeadWeight decimal.Decimal // kg
	// Dimensions in cm; zero dimensions contribute no volumetric weight.
	Length  decimal.Decimal
	Breadth decimal.Decimal
	Height  decimal.Decimal

	OrderValue  decimal.Decimal
	PaymentMode PaymentMode
	IsRTO       bool
}

// VolumetricWeight returns (length * breadth * height) / 5000 in kg
func (s Shipment) VolumetricWeight() decimal.Decimal {
	return s.Length.Mul(s.Breadth).Mul(s.Height).Div(volumetricDivisor)
}

// ApplicableWeight is the billed weight: the greater of dead and
// volumetric weight.
func (s Shipment) ApplicableWeight() decimal.Decimal {
	volumetric := s.VolumetricWeight()
	if volumetric.GreaterThan(s.DeadWeight) {
		return volumetric
	}
	return s.DeadWeight
}

// RankedOption is one priced courier choice in a serviceability response
type RankedOption struct {
	ContractID uuid.UUID        `json:"contract_id"`
	Aggregator Aggregator       `json:"aggregator"`
	Courier    string           `json:"courier"`
	Breakdown  FreightBreakdown `json:"breakdown"`
	LandedCost decimal.Decimal  `json:"landed_cost"`
}

// Rank prices every active contract for the shipment and returns the
// options sorted ascending by landed cost (freight + COD + tax), with an
// alphabetical courier-name tie-break so equal-cost orderings are
// reproducible. Inactive contracts are ignored. Each contract prices
// independently, so callers may parallelize the pricing loop; the sort
// keeps the final ordering deterministic either way.
func Rank(contracts []*CourierContract, shipment Shipment) []RankedOption {
	weight := shipment.ApplicableWeight()

	options := make([]RankedOption, 0, len(contracts))
	for _, contract := range contracts {
		if !contract.IsActive() {
			continue
		}
		profile := contract.Profile()
		if err := profile.Validate(); err != nil {
			// Misconfigured contracts are skipped, not surfaced: a partial
			// configuration degrades to fewer options rather than blocking
			// the whole response.
			continue
		}
		breakdown := PriceWithProfile(
			profile,
			shipment.Zone,
			weight,
			shipment.OrderValue,
			shipment.PaymentMode,
			shipment.IsRTO,
		)
		options = append(options, RankedOption{
			ContractID: contract.ID,
			Aggregator: contract.Aggregator,
			Courier:    contract.Courier,
			Breakdown:  breakdown,
			LandedCost: breakdown.LandedCost(),
		})
	}

	sort.SliceStable(options, func(i, j int) bool {
		if options[i].LandedCost.Equal(options[j].LandedCost) {
			return options[i].Courier < options[j].Courier
		}
		return options[i].LandedCost.LessThan(options[j].LandedCost)
	})

	return options
}
