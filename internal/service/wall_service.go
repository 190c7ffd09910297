package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/iliyamo/office-seating/internal/dto"
	"github.com/iliyamo/office-seating/internal/mapping"
	"github.com/iliyamo/office-seating/internal/repository"
)

type WallService struct {
	store repository.Store
	log   *zap.Logger
}

func NewWallService(store repository.Store, log *zap.Logger) *WallService {
	return &WallService{store: store, log: log}
}

func (s *WallService) List(ctx context.Context) ([]dto.WallDTO, error) {
	return inUnit(ctx, s.store, func(uow repository.UnitOfWork) ([]dto.WallDTO, error) {
		list, err := uow.Walls().List(ctx)
		if err != nil {
			return nil, err
		}
		return mapSlice(list, mapping.WallToDTO), nil
	})
}

func (s *WallService) ListByLayout(ctx context.Context, layoutID uint64) ([]dto.WallDTO, error) {
	return inUnit(ctx, s.store, func(uow repository.UnitOfWork) ([]dto.WallDTO, error) {
		list, err := uow.Walls().ListByLayout(ctx, layoutID)
		if err != nil {
			return nil, err
		}
		return mapSlice(list, mapping.WallToDTO), nil
	})
}

func (s *WallService) Get(ctx context.Context, id uint64) (dto.WallDTO, error) {
	return inUnit(ctx, s.store, func(uow repository.UnitOfWork) (dto.WallDTO, error) {
		w, err := uow.Walls().Get(ctx, id)
		if err != nil {
			return dto.WallDTO{}, fromRepo(err, "Wall")
		}
		return mapping.WallToDTO(*w), nil
	})
}

func (s *WallService) Create(ctx context.Context, in dto.WallDTO) (dto.WallDTO, error) {
	return inUnit(ctx, s.store, func(uow repository.UnitOfWork) (dto.WallDTO, error) {
		if err := requireLayout(ctx, uow, in.LayoutID); err != nil {
			return dto.WallDTO{}, err
		}
		w := mapping.WallFromDTO(in)
		if err := uow.Walls().Add(ctx, &w); err != nil {
			return dto.WallDTO{}, fromRepo(err, "Wall")
		}
		return mapping.WallToDTO(w), nil
	})
}

func (s *WallService) Update(ctx context.Context, id uint64, in dto.WallDTO) (dto.WallDTO, error) {
	return inUnit(ctx, s.store, func(uow repository.UnitOfWork) (dto.WallDTO, error) {
		w, err := uow.Walls().Get(ctx, id)
		if err != nil {
			return dto.WallDTO{}, fromRepo(err, "Wall")
		}
		if in.LayoutID != w.LayoutID {
			if err := requireLayout(ctx, uow, in.LayoutID); err != nil {
				return dto.WallDTO{}, err
			}
		}
		mapping.ApplyWall(w, in)
		if err := uow.Walls().Update(ctx, w); err != nil {
			return dto.WallDTO{}, fromRepo(err, "Wall")
		}
		return mapping.WallToDTO(*w), nil
	})
}

func (s *WallService) Delete(ctx context.Context, id uint64) bool {
	return deleteIn(ctx, s.store, s.log, "wall", id, func(uow repository.UnitOfWork) error {
		return uow.Walls().Delete(ctx, id)
	})
}
