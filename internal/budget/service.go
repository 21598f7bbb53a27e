package budget

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"teambudget/internal/auditlog"
)

// Service wraps the budget repository with audit attribution for admin
// actions. Audit writes are best effort: a failed log insert never rolls back
// the underlying action.
type Service struct {
	repo Repository
	logs auditlog.Repository
}

// NewService creates a new budget Service.
func NewService(repo Repository, logs auditlog.Repository) *Service {
	return &Service{repo: repo, logs: logs}
}

// Create adds a budget on behalf of the given admin actor.
func (s *Service) Create(ctx context.Context, actor string, b *Budget) error {
	if err := s.repo.Create(ctx, b); err != nil {
		return err
	}

	s.audit(ctx, actor, fmt.Sprintf("Added budget %q (€%s) for team %s", b.Name, b.Amount, b.TeamID))
	return nil
}

// Remove deletes a budget on behalf of the given admin actor.
func (s *Service) Remove(ctx context.Context, actor string, id uuid.UUID) error {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.audit(ctx, actor, fmt.Sprintf("Removed budget %q", b.Name))
	return nil
}

// ListByTeam returns a team's budgets in priority order.
func (s *Service) ListByTeam(ctx context.Context, teamID uuid.UUID) ([]Budget, error) {
	return s.repo.ListByTeam(ctx, teamID)
}

// ListCurrent returns all currently active budgets, soonest-expiring first.
func (s *Service) ListCurrent(ctx context.Context) ([]Budget, error) {
	return s.repo.ListCurrent(ctx)
}

func (s *Service) audit(ctx context.Context, actor, message string) {
	if err := s.logs.Insert(ctx, actor, message); err != nil {
		log.Warn().Err(err).Str("actor", actor).Msg("audit log write failed")
	}
}
