package rating

import (
	"context"
	"errors"

	"github.com/shipkaro/backend/internal/domain/rating"
	"github.com/shipkaro/backend/internal/domain/shared"
	"github.com/shipkaro/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// OrderPricingService prices orders against the static buy-rate table.
// Billing jobs call it per order to populate the freight, COD and tax
// fields on the order ledger.
type OrderPricingService struct {
	calculator *rating.Calculator
	logger     *zap.Logger
}

// NewOrderPricingService creates a new OrderPricingService
func NewOrderPricingService(calculator *rating.Calculator, logger *zap.Logger) *OrderPricingService {
	return &OrderPricingService{
		calculator: calculator,
		logger:     logger.Named("order_pricing"),
	}
}

// PriceOrder prices one order. An unconfigured lane is a soft failure:
// the response carries Priced=false and a zero breakdown so batch billing
// loops record the miss and continue, mirroring the calculator's contract.
func (s *OrderPricingService) PriceOrder(ctx context.Context, req PriceOrderRequest) (*PriceOrderResponse, error) {
	zone, err := rating.ParseZone(req.Zone)
	if err != nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", err.Error())
	}
	mode, err := rating.ParsePaymentMode(req.PaymentMode)
	if err != nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", err.Error())
	}

	aggregator := rating.NewAggregator(req.Aggregator)
	input := rating.Input{
		Aggregator:  aggregator,
		Courier:     req.Courier,
		Zone:        zone,
		Weight:      decimal.NewFromFloat(req.Weight),
		OrderValue:  decimal.NewFromFloat(req.OrderValue),
		PaymentMode: mode,
		IsRTO:       req.IsRTO,
	}

	resp := &PriceOrderResponse{
		Aggregator: aggregator,
		Courier:    s.calculator.Normalize(aggregator, req.Courier),
		Zone:       zone,
	}

	breakdown, err := s.calculator.Calculate(input)
	if err != nil {
		if errors.Is(err, shared.ErrRateNotFound) {
			s.logger.Warn("no rate configured for lane",
				zap.String("aggregator", string(aggregator)),
				zap.String("courier", resp.Courier),
				zap.String("zone", string(zone)),
			)
			resp.Breakdown = breakdown
			return resp, nil
		}
		return nil, err
	}

	resp.Priced = true
	resp.Breakdown = breakdown
	resp.ForwardFreight = forwardFreight(breakdown)
	resp.ForwardCODCharge = breakdown.CODCharges
	resp.ForwardTax = breakdown.TaxAmount
	resp.TotalDisplay = valueobject.NewMoneyINR(breakdown.TotalAmount).String()
	return resp, nil
}

// forwardFreight is the forward-leg freight: the full freight on a forward
// shipment, the audited forward component on an RTO.
func forwardFreight(b rating.FreightBreakdown) decimal.Decimal {
	if b.IsRTO {
		return b.ForwardFreight
	}
	return b.Freight
}
