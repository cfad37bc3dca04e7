package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"carencia/internal/domain"
	"carencia/internal/pkg/cache"
	"carencia/internal/repository"
)

var ErrVehicleNotFound = errors.New("vehicle not found")

const (
	vehicleCacheTTL  = 5 * time.Minute
	featuredCacheTTL = 10 * time.Minute
)

// Service serves the public vehicle catalog. The cache is optional; a
// nil client disables it transparently.
type Service struct {
	vehicles *repository.VehicleRepository
	cache    *cache.Client
}

func NewService(vehicles *repository.VehicleRepository, cacheClient *cache.Client) *Service {
	return &Service{vehicles: vehicles, cache: cacheClient}
}

func (s *Service) List(ctx context.Context, f repository.VehicleFilter) ([]domain.Vehicle, int64, error) {
	return s.vehicles.List(ctx, f)
}

func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*domain.Vehicle, error) {
	key := fmt.Sprintf("vehicle:%s", id)

	var cached domain.Vehicle
	if s.cache.GetJSON(ctx, key, &cached) {
		return &cached, nil
	}

	v, err := s.vehicles.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVehicleNotFound
		}
		return nil, err
	}

	s.cache.SetJSON(ctx, key, v, vehicleCacheTTL)
	return v, nil
}

func (s *Service) Featured(ctx context.Context, limit int) ([]domain.Vehicle, error) {
	key := fmt.Sprintf("vehicles:featured:%d", limit)

	var cached []domain.Vehicle
	if s.cache.GetJSON(ctx, key, &cached) {
		return cached, nil
	}

	vehicles, err := s.vehicles.Featured(ctx, limit)
	if err != nil {
		return nil, err
	}

	s.cache.SetJSON(ctx, key, vehicles, featuredCacheTTL)
	return vehicles, nil
}
