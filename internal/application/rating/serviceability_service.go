package rating

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shipkaro/backend/internal/domain/rating"
	"github.com/shipkaro/backend/internal/domain/shared"
	"github.com/shipkaro/backend/internal/infrastructure/cache"
	"github.com/shipkaro/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// ServiceabilityService ranks a tenant's contracted couriers for a shipment
type ServiceabilityService struct {
	contracts rating.ContractRepository
	quotes    cache.QuoteCache
	quoteTTL  time.Duration
	logger    *zap.Logger
}

// NewServiceabilityService creates a new ServiceabilityService
func NewServiceabilityService(
	contracts rating.ContractRepository,
	quotes cache.QuoteCache,
	quoteTTL time.Duration,
	logger *zap.Logger,
) *ServiceabilityService {
	return &ServiceabilityService{
		contracts: contracts,
		quotes:    quotes,
		quoteTTL:  quoteTTL,
		logger:    logger.Named("serviceability"),
	}
}

// AvailableCouriers prices every active contract for the shipment and
// returns the options sorted by landed cost. Results are cached per
// (tenant, shipment) fingerprint; a cache failure degrades to re-pricing.
func (s *ServiceabilityService) AvailableCouriers(ctx context.Context, tenantID uuid.UUID, req ServiceabilityRequest) (*ServiceabilityResponse, error) {
	shipment, err := req.Shipment()
	if err != nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", err.Error())
	}

	log := s.requestLogger(ctx)

	key := quoteKey(tenantID, shipment)
	if payload, ok, cacheErr := s.quotes.Get(ctx, key); cacheErr != nil {
		log.Warn("quote cache read failed", zap.Error(cacheErr))
	} else if ok {
		var cached ServiceabilityResponse
		if err := json.Unmarshal(payload, &cached); err == nil {
			return &cached, nil
		}
		log.Warn("discarding undecodable cached quote", zap.String("key", key))
	}

	contracts, err := s.contracts.FindActiveForTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	options := rating.Rank(contracts, shipment)
	resp := toServiceabilityResponse(shipment, options)
	resp.CachedAt = time.Now().UTC()

	if payload, err := json.Marshal(resp); err == nil {
		if cacheErr := s.quotes.Set(ctx, key, payload, s.quoteTTL); cacheErr != nil {
			log.Warn("quote cache write failed", zap.Error(cacheErr))
		}
	}

	return resp, nil
}

// requestLogger enriches the service logger with the request ID the HTTP
// middleware stored in the context.
func (s *ServiceabilityService) requestLogger(ctx context.Context) *zap.Logger {
	if requestID := logger.GetRequestID(ctx); requestID != "" {
		return s.logger.With(zap.String("request_id", requestID))
	}
	return s.logger
}

// CheapestCourier returns the single cheapest option for the shipment,
// optionally restricted to an allow-list of courier names. This is the
// AWB-assignment path: callers hand over the couriers the client has
// enabled and receive the one to book.
func (s *ServiceabilityService) CheapestCourier(ctx context.Context, tenantID uuid.UUID, req ServiceabilityRequest, allowedCouriers []string) (*CourierOptionResponse, error) {
	resp, err := s.AvailableCouriers(ctx, tenantID, req)
	if err != nil {
		return nil, err
	}

	allowed := make(map[string]bool, len(allowedCouriers))
	for _, c := range allowedCouriers {
		allowed[c] = true
	}

	for i := range resp.Options {
		if len(allowed) > 0 && !allowed[resp.Options[i].Courier] {
			continue
		}
		return &resp.Options[i], nil
	}

	return nil, shared.ErrRateNotFound
}

// quoteKey fingerprints a shipment within a tenant's namespace. The hash
// keeps cache keys bounded regardless of field growth.
func quoteKey(tenantID uuid.UUID, shipment rating.Shipment) string {
	raw := fmt.Sprintf("%s|%s|%s|%s|%s|%s|%s|%s|%t",
		tenantID,
		shipment.Zone,
		shipment.DeadWeight,
		shipment.Length,
		shipment.Breadth,
		shipment.Height,
		shipment.OrderValue,
		shipment.PaymentMode,
		shipment.IsRTO,
	)
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
