package service

import (
	"context"
	"fmt"

	"github.com/99minutos/admin-console/internal/core/domain"
	"github.com/99minutos/admin-console/internal/core/ports"
)

// ReferenceService serves the state and city lookup tables. Nothing is
// cached: every state selection fetches its cities again.
type ReferenceService struct {
	api ports.RemoteAPI
}

var _ ports.ReferenceService = (*ReferenceService)(nil)

func NewReferenceService(api ports.RemoteAPI) *ReferenceService {
	return &ReferenceService{api: api}
}

func (s *ReferenceService) States(ctx context.Context) ([]domain.State, error) {
	states, err := s.api.States(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch states: %w", err)
	}
	return states, nil
}

// Cities returns the cities of stateID. A zero stateID means no state is
// selected yet and yields no cities without calling the service.
func (s *ReferenceService) Cities(ctx context.Context, stateID domain.ID) ([]domain.City, error) {
	if stateID == 0 {
		return []domain.City{}, nil
	}
	cities, err := s.api.Cities(ctx, stateID)
	if err != nil {
		return nil, fmt.Errorf("fetch cities: %w", err)
	}
	return cities, nil
}
