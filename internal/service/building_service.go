package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/iliyamo/office-seating/internal/dto"
	"github.com/iliyamo/office-seating/internal/mapping"
	"github.com/iliyamo/office-seating/internal/repository"
)

type BuildingService struct {
	store repository.Store
	log   *zap.Logger
}

func NewBuildingService(store repository.Store, log *zap.Logger) *BuildingService {
	return &BuildingService{store: store, log: log}
}

func (s *BuildingService) List(ctx context.Context) ([]dto.BuildingDTO, error) {
	return inUnit(ctx, s.store, func(uow repository.UnitOfWork) ([]dto.BuildingDTO, error) {
		list, err := uow.Buildings().List(ctx)
		if err != nil {
			return nil, err
		}
		return mapSlice(list, mapping.BuildingToDTO), nil
	})
}

func (s *BuildingService) Get(ctx context.Context, id uint64) (dto.BuildingDTO, error) {
	return inUnit(ctx, s.store, func(uow repository.UnitOfWork) (dto.BuildingDTO, error) {
		b, err := uow.Buildings().Get(ctx, id)
		if err != nil {
			return dto.BuildingDTO{}, fromRepo(err, "Building")
		}
		return mapping.BuildingToDTO(*b), nil
	})
}

func (s *BuildingService) Create(ctx context.Context, in dto.BuildingDTO) (dto.BuildingDTO, error) {
	return inUnit(ctx, s.store, func(uow repository.UnitOfWork) (dto.BuildingDTO, error) {
		b := mapping.BuildingFromDTO(in)
		if err := uow.Buildings().Add(ctx, &b); err != nil {
			return dto.BuildingDTO{}, fromRepo(err, "Building")
		}
		return mapping.BuildingToDTO(b), nil
	})
}

func (s *BuildingService) Update(ctx context.Context, id uint64, in dto.BuildingDTO) (dto.BuildingDTO, error) {
	return inUnit(ctx, s.store, func(uow repository.UnitOfWork) (dto.BuildingDTO, error) {
		b, err := uow.Buildings().Get(ctx, id)
		if err != nil {
			return dto.BuildingDTO{}, fromRepo(err, "Building")
		}
		mapping.ApplyBuilding(b, in)
		if err := uow.Buildings().Update(ctx, b); err != nil {
			return dto.BuildingDTO{}, fromRepo(err, "Building")
		}
		return mapping.BuildingToDTO(*b), nil
	})
}

// Delete removes the building together with its layouts and everything on them.
func (s *BuildingService) Delete(ctx context.Context, id uint64) bool {
	return deleteIn(ctx, s.store, s.log, "building", id, func(uow repository.UnitOfWork) error {
		return uow.Buildings().Delete(ctx, id)
	})
}

