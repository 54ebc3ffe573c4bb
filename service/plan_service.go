package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/cespare/xxhash/v2"

	"loan-planner/domain"
	"loan-planner/finance"
	"loan-planner/repository"
)

// PlanService runs payment-plan simulations, caching results by request and
// keeping a history of what was simulated.
type PlanService struct {
	repo   repository.PlanRepository
	cache  repository.CacheRepository
	limits Limits
	ttl    time.Duration
	log    *slog.Logger
}

type Option func(*PlanService)

func WithLimits(l Limits) Option {
	return func(s *PlanService) { s.limits = l }
}

func WithCacheTTL(ttl time.Duration) Option {
	return func(s *PlanService) { s.ttl = ttl }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *PlanService) {
		if l != nil {
			s.log = l
		}
	}
}

// NewPlanService creates a PlanService. cache may be nil to disable caching.
func NewPlanService(
	repo repository.PlanRepository,
	cache repository.CacheRepository,
	opts ...Option,
) *PlanService {
	s := &PlanService{
		repo:   repo,
		cache:  cache,
		limits: DefaultLimits(),
		ttl:    DefaultCacheTTL,
		log:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Simulate validates the request against the service limits and returns the
// full simulation. Cache and history failures are logged, never returned.
func (s *PlanService) Simulate(ctx context.Context, req domain.PlanRequest) (domain.Simulation, error) {
	if err := s.validate(req); err != nil {
		return domain.Simulation{}, err
	}

	key, cacheable := cacheKey(req)
	sim, hit := s.fromCache(ctx, key, cacheable)
	if !hit {
		var err error
		sim, err = finance.Simulate(req)
		if err != nil {
			return domain.Simulation{}, err
		}
		s.toCache(ctx, key, cacheable, sim)
	}

	for _, w := range sim.Summary.Warnings {
		s.log.WarnContext(ctx, "plan de pagos con advertencia",
			"warning", w,
			"degenerate", sim.Summary.Degenerate,
			"bank_id", req.BankID,
			"property_id", req.PropertyID,
		)
	}

	// Guardar el historial (no crítico si falla)
	if s.repo != nil {
		record := domain.PlanRecord{
			BankID:     req.BankID,
			PropertyID: req.PropertyID,
			Request:    req,
			Simulation: sim,
		}
		if _, err := s.repo.Save(ctx, record); err != nil {
			s.log.WarnContext(ctx, "failed to save simulation", "error", err)
		}
	}

	return sim, nil
}

// History lists stored simulations, newest first.
func (s *PlanService) History(ctx context.Context, filter repository.PlanFilter) ([]domain.PlanRecord, error) {
	if s.repo == nil {
		return []domain.PlanRecord{}, nil
	}
	return s.repo.List(ctx, filter)
}

// Record returns one stored simulation.
func (s *PlanService) Record(ctx context.Context, id string) (domain.PlanRecord, error) {
	if s.repo == nil {
		return domain.PlanRecord{}, repository.ErrPlanNotFound
	}
	return s.repo.FindByID(ctx, id)
}

func (s *PlanService) validate(req domain.PlanRequest) error {
	if !(req.DownPayment >= 0) || !(req.PropertyPrice >= 0) {
		return fmt.Errorf("%w: precio o cuota inicial inválidos", finance.ErrInvalidInput)
	}
	if req.PropertyPrice > 0 && req.DownPayment >= req.PropertyPrice {
		return fmt.Errorf("%w: la cuota inicial cubre el precio del inmueble", finance.ErrInvalidInput)
	}
	if amount := req.LoanAmount(); amount > s.limits.MaxLoanAmount || math.IsInf(amount, 0) {
		return fmt.Errorf("%w: monto excede el máximo permitido de %.2f", finance.ErrInvalidInput, s.limits.MaxLoanAmount)
	}
	if req.TermYears > s.limits.MaxTermYears {
		return fmt.Errorf("%w: plazo excede el máximo permitido de %d años", finance.ErrInvalidInput, s.limits.MaxTermYears)
	}
	if req.Rate.AnnualRate > s.limits.MaxAnnualRate {
		return fmt.Errorf("%w: tasa excede el máximo permitido de %.2f%%", finance.ErrInvalidInput, s.limits.MaxAnnualRate*100)
	}
	return nil
}

func (s *PlanService) fromCache(ctx context.Context, key string, cacheable bool) (domain.Simulation, bool) {
	if s.cache == nil || !cacheable {
		return domain.Simulation{}, false
	}
	cached, ok := s.cache.Get(ctx, key)
	if !ok {
		return domain.Simulation{}, false
	}
	var sim domain.Simulation
	if err := json.Unmarshal([]byte(cached), &sim); err != nil {
		s.log.WarnContext(ctx, "discarding unreadable cache entry", "key", key, "error", err)
		return domain.Simulation{}, false
	}
	s.log.DebugContext(ctx, "simulation served from cache", "key", key)
	return sim, true
}

func (s *PlanService) toCache(ctx context.Context, key string, cacheable bool, sim domain.Simulation) {
	if s.cache == nil || !cacheable {
		return
	}
	data, err := json.Marshal(sim)
	if err != nil {
		s.log.WarnContext(ctx, "failed to encode simulation for cache", "error", err)
		return
	}
	if err := s.cache.Set(ctx, key, string(data), s.ttl); err != nil {
		s.log.WarnContext(ctx, "failed to cache simulation", "key", key, "error", err)
	}
}

// cacheKey hashes the inputs that shape a simulation. History tags are left
// out so the same plan is shared across banks and properties.
func cacheKey(req domain.PlanRequest) (string, bool) {
	req.BankID, req.PropertyID = "", ""
	req.Rate = req.Rate.WithDefaults()
	req.Costs = req.Costs.Normalize()
	if req.PropertyPrice > 0 {
		req.Principal = req.LoanAmount()
		req.PropertyPrice, req.DownPayment = 0, 0
	}

	data, err := json.Marshal(req)
	if err != nil {
		return "", false
	}
	return fmt.Sprintf("%s%016x", cacheKeyPrefix, xxhash.Sum64(data)), true
}
