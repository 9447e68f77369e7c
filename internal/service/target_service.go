package service

import (
	"context"

	"farmatrack/internal/domain"
	"farmatrack/internal/repository"
)

// TargetInput план MR. Достижения и статус учитываются только при обновлении.
type TargetInput struct {
	MRName            string
	Period            string
	SalesTarget       int
	SalesAchievement  int
	VisitsTarget      int
	VisitsAchievement int
	StartDate         string
	EndDate           string
	Status            string
}

func (in TargetInput) validate() error {
	switch {
	case in.SalesTarget < 0:
		return invalid("Sales target must be >= 0")
	case in.SalesAchievement < 0:
		return invalid("Sales achievement must be >= 0")
	case in.VisitsTarget < 0:
		return invalid("Visits target must be >= 0")
	case in.VisitsAchievement < 0:
		return invalid("Visits achievement must be >= 0")
	}
	return nil
}

func (in TargetInput) apply(t *domain.Target) {
	t.MRName = in.MRName
	t.Period = in.Period
	t.SalesTarget = in.SalesTarget
	t.SalesAchievement = in.SalesAchievement
	t.VisitsTarget = in.VisitsTarget
	t.VisitsAchievement = in.VisitsAchievement
	t.StartDate = in.StartDate
	t.EndDate = in.EndDate
	t.Status = in.Status
}

type TargetService struct {
	crud crud[domain.Target]
}

func NewTargetService(repo repository.TargetRepository) *TargetService {
	return &TargetService{crud: crud[domain.Target]{repo: repo, entity: "Target", order: domain.TargetsByID}}
}

func (s *TargetService) List(ctx context.Context) ([]domain.Target, error) {
	return s.crud.list(ctx)
}

func (s *TargetService) Get(ctx context.Context, id int64) (*domain.Target, error) {
	return s.crud.get(ctx, id)
}

// Create новая цель стартует с нулевыми достижениями и статусом active
func (s *TargetService) Create(ctx context.Context, in TargetInput) (*domain.Target, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	var t domain.Target
	in.apply(&t)
	t.SalesAchievement = 0
	t.VisitsAchievement = 0
	t.Status = domain.TargetStatusActive
	return s.crud.create(ctx, &t)
}

func (s *TargetService) Update(ctx context.Context, id int64, in TargetInput) (*domain.Target, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	return s.crud.update(ctx, id, in.apply)
}

func (s *TargetService) Delete(ctx context.Context, id int64) error {
	return s.crud.delete(ctx, id)
}
