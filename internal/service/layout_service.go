package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/iliyamo/office-seating/internal/dto"
	"github.com/iliyamo/office-seating/internal/mapping"
	"github.com/iliyamo/office-seating/internal/repository"
)

type LayoutService struct {
	store repository.Store
	log   *zap.Logger
}

func NewLayoutService(store repository.Store, log *zap.Logger) *LayoutService {
	return &LayoutService{store: store, log: log}
}

func (s *LayoutService) List(ctx context.Context) ([]dto.LayoutDTO, error) {
	return inUnit(ctx, s.store, func(uow repository.UnitOfWork) ([]dto.LayoutDTO, error) {
		list, err := uow.Layouts().List(ctx)
		if err != nil {
			return nil, err
		}
		return mapSlice(list, mapping.LayoutToDTO), nil
	})
}

// ListByBuilding returns the layouts of one building; an unknown building
// yields an empty list.
func (s *LayoutService) ListByBuilding(ctx context.Context, buildingID uint64) ([]dto.LayoutDTO, error) {
	return inUnit(ctx, s.store, func(uow repository.UnitOfWork) ([]dto.LayoutDTO, error) {
		list, err := uow.Layouts().ListByBuilding(ctx, buildingID)
		if err != nil {
			return nil, err
		}
		return mapSlice(list, mapping.LayoutToDTO), nil
	})
}

func (s *LayoutService) Get(ctx context.Context, id uint64) (dto.LayoutDTO, error) {
	return inUnit(ctx, s.store, func(uow repository.UnitOfWork) (dto.LayoutDTO, error) {
		l, err := uow.Layouts().Get(ctx, id)
		if err != nil {
			return dto.LayoutDTO{}, fromRepo(err, "Layout")
		}
		return mapping.LayoutToDTO(*l), nil
	})
}

func (s *LayoutService) Create(ctx context.Context, in dto.LayoutDTO) (dto.LayoutDTO, error) {
	return inUnit(ctx, s.store, func(uow repository.UnitOfWork) (dto.LayoutDTO, error) {
		if err := requireBuilding(ctx, uow, in.BuildingID); err != nil {
			return dto.LayoutDTO{}, err
		}
		l := mapping.LayoutFromDTO(in)
		if err := uow.Layouts().Add(ctx, &l); err != nil {
			return dto.LayoutDTO{}, fromRepo(err, "Layout")
		}
		return s.reload(ctx, uow, l.ID)
	})
}

func (s *LayoutService) Update(ctx context.Context, id uint64, in dto.LayoutDTO) (dto.LayoutDTO, error) {
	return inUnit(ctx, s.store, func(uow repository.UnitOfWork) (dto.LayoutDTO, error) {
		l, err := uow.Layouts().Get(ctx, id)
		if err != nil {
			return dto.LayoutDTO{}, fromRepo(err, "Layout")
		}
		if in.BuildingID != l.BuildingID {
			if err := requireBuilding(ctx, uow, in.BuildingID); err != nil {
				return dto.LayoutDTO{}, err
			}
		}
		mapping.ApplyLayout(l, in)
		if err := uow.Layouts().Update(ctx, l); err != nil {
			return dto.LayoutDTO{}, fromRepo(err, "Layout")
		}
		return s.reload(ctx, uow, l.ID)
	})
}

// reload reads the layout back so the building name reflects the new parent.
func (s *LayoutService) reload(ctx context.Context, uow repository.UnitOfWork, id uint64) (dto.LayoutDTO, error) {
	l, err := uow.Layouts().Get(ctx, id)
	if err != nil {
		return dto.LayoutDTO{}, err
	}
	return mapping.LayoutToDTO(*l), nil
}

// Delete removes the layout with its walls, furniture and seats.
func (s *LayoutService) Delete(ctx context.Context, id uint64) bool {
	return deleteIn(ctx, s.store, s.log, "layout", id, func(uow repository.UnitOfWork) error {
		return uow.Layouts().Delete(ctx, id)
	})
}

func requireBuilding(ctx context.Context, uow repository.UnitOfWork, buildingID uint64) error {
	if _, err := uow.Buildings().Get(ctx, buildingID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return newError(ErrValidation, "Building %d does not exist", buildingID)
		}
		return err
	}
	return nil
}
