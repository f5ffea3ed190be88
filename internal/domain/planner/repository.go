package planner

import (
	"context"
)

// Repository defines the storage contract for saved weekly plans.
//
// The plan list is append-only: saving twice for the same week creates
// duplicate entries, and GetByWeekOf returns the first match in saved order.
type Repository interface {
	// List returns all saved plans in saved order.
	List(ctx context.Context) ([]*WeeklyPlan, error)

	// Append stores a plan at the end of the list.
	Append(ctx context.Context, p *WeeklyPlan) error

	// GetByWeekOf returns the first saved plan whose WeekOf matches the
	// given date key. Returns shared.ErrPlanNotFound if none matches.
	GetByWeekOf(ctx context.Context, weekOf string) (*WeeklyPlan, error)
}
