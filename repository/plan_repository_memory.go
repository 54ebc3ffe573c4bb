package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"loan-planner/domain"
)

// PlanRepositoryMemory keeps the simulation history in process memory. Once
// maxRecords is reached the oldest record is dropped on every save.
type PlanRepositoryMemory struct {
	mu         sync.RWMutex
	records    []domain.PlanRecord
	maxRecords int
	now        func() time.Time
}

// NewPlanRepositoryMemory creates the repository. maxRecords <= 0 keeps
// every record.
func NewPlanRepositoryMemory(maxRecords int) *PlanRepositoryMemory {
	return &PlanRepositoryMemory{
		records:    make([]domain.PlanRecord, 0),
		maxRecords: maxRecords,
		now:        time.Now,
	}
}

// Save assigns an ID and a creation time when missing and stores the record.
func (r *PlanRepositoryMemory) Save(ctx context.Context, record domain.PlanRecord) (domain.PlanRecord, error) {
	if err := ctx.Err(); err != nil {
		return domain.PlanRecord{}, err
	}
	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = r.now().UTC()
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, record)
	if r.maxRecords > 0 && len(r.records) > r.maxRecords {
		n := copy(r.records, r.records[len(r.records)-r.maxRecords:])
		clear(r.records[n:])
		r.records = r.records[:n]
	}
	return record, nil
}

func (r *PlanRepositoryMemory) FindByID(ctx context.Context, id string) (domain.PlanRecord, error) {
	if err := ctx.Err(); err != nil {
		return domain.PlanRecord{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, rec := range r.records {
		if rec.ID == id {
			return rec, nil
		}
	}
	return domain.PlanRecord{}, ErrPlanNotFound
}

// List returns matching records, newest first.
func (r *PlanRepositoryMemory) List(ctx context.Context, filter PlanFilter) ([]domain.PlanRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.PlanRecord, 0)
	for i := len(r.records) - 1; i >= 0; i-- {
		rec := r.records[i]
		if filter.BankID != "" && rec.BankID != filter.BankID {
			continue
		}
		if filter.PropertyID != "" && rec.PropertyID != filter.PropertyID {
			continue
		}
		out = append(out, rec)
		if filter.Limit > 0 && len(out) == filter.Limit {
			break
		}
	}
	return out, nil
}
