package repository

import (
	"context"
	"errors"

	"loan-planner/domain"
)

var ErrPlanNotFound = errors.New("simulación no encontrada")

// PlanFilter narrows a history listing. Empty fields match everything.
type PlanFilter struct {
	BankID     string
	PropertyID string
	Limit      int
}

type PlanRepository interface {
	Save(ctx context.Context, record domain.PlanRecord) (domain.PlanRecord, error)
	FindByID(ctx context.Context, id string) (domain.PlanRecord, error)
	List(ctx context.Context, filter PlanFilter) ([]domain.PlanRecord, error)
}
