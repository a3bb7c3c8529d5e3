package service

import (
	"context"

	"github.com/parshpawar/ezoCodingTask/internal/models"
)

// RecordRepository defines the persistence operations required by the
// roster service.
type RecordRepository interface {
	// GetAll fetches every roster record ordered by name.
	GetAll(ctx context.Context) ([]models.Record, error)
}

// RosterService serves the roster records shown on the list screen.
type RosterService struct {
	repo RecordRepository
}

// NewRosterService constructs a new RosterService using the provided repository.
func NewRosterService(repo RecordRepository) *RosterService {
	return &RosterService{repo: repo}
}

// Records returns all roster records ordered by name.
func (s *RosterService) Records(ctx context.Context) ([]models.Record, error) {
	return s.repo.GetAll(ctx)
}
