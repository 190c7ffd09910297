package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/iliyamo/office-seating/internal/dto"
	"github.com/iliyamo/office-seating/internal/mapping"
	"github.com/iliyamo/office-seating/internal/repository"
)

type FurnitureService struct {
	store repository.Store
	log   *zap.Logger
}

func NewFurnitureService(store repository.Store, log *zap.Logger) *FurnitureService {
	return &FurnitureService{store: store, log: log}
}

func (s *FurnitureService) List(ctx context.Context) ([]dto.FurnitureDTO, error) {
	return inUnit(ctx, s.store, func(uow repository.UnitOfWork) ([]dto.FurnitureDTO, error) {
		list, err := uow.Furniture().List(ctx)
		if err != nil {
			return nil, err
		}
		return mapSlice(list, mapping.FurnitureToDTO), nil
	})
}

func (s *FurnitureService) ListByLayout(ctx context.Context, layoutID uint64) ([]dto.FurnitureDTO, error) {
	return inUnit(ctx, s.store, func(uow repository.UnitOfWork) ([]dto.FurnitureDTO, error) {
		list, err := uow.Furniture().ListByLayout(ctx, layoutID)
		if err != nil {
			return nil, err
		}
		return mapSlice(list, mapping.FurnitureToDTO), nil
	})
}

func (s *FurnitureService) Get(ctx context.Context, id uint64) (dto.FurnitureDTO, error) {
	return inUnit(ctx, s.store, func(uow repository.UnitOfWork) (dto.FurnitureDTO, error) {
		f, err := uow.Furniture().Get(ctx, id)
		if err != nil {
			return dto.FurnitureDTO{}, fromRepo(err, "Furniture")
		}
		return mapping.FurnitureToDTO(*f), nil
	})
}

func (s *FurnitureService) Create(ctx context.Context, in dto.FurnitureDTO) (dto.FurnitureDTO, error) {
	return inUnit(ctx, s.store, func(uow repository.UnitOfWork) (dto.FurnitureDTO, error) {
		if err := requireLayout(ctx, uow, in.LayoutID); err != nil {
			return dto.FurnitureDTO{}, err
		}
		f := mapping.FurnitureFromDTO(in)
		if err := uow.Furniture().Add(ctx, &f); err != nil {
			return dto.FurnitureDTO{}, fromRepo(err, "Furniture")
		}
		return mapping.FurnitureToDTO(f), nil
	})
}

func (s *FurnitureService) Update(ctx context.Context, id uint64, in dto.FurnitureDTO) (dto.FurnitureDTO, error) {
	return inUnit(ctx, s.store, func(uow repository.UnitOfWork) (dto.FurnitureDTO, error) {
		f, err := uow.Furniture().Get(ctx, id)
		if err != nil {
			return dto.FurnitureDTO{}, fromRepo(err, "Furniture")
		}
		if in.LayoutID != f.LayoutID {
			if err := requireLayout(ctx, uow, in.LayoutID); err != nil {
				return dto.FurnitureDTO{}, err
			}
		}
		mapping.ApplyFurniture(f, in)
		if err := uow.Furniture().Update(ctx, f); err != nil {
			return dto.FurnitureDTO{}, fromRepo(err, "Furniture")
		}
		return mapping.FurnitureToDTO(*f), nil
	})
}

func (s *FurnitureService) Delete(ctx context.Context, id uint64) bool {
	return deleteIn(ctx, s.store, s.log, "furniture", id, func(uow repository.UnitOfWork) error {
		return uow.Furniture().Delete(ctx, id)
	})
}
