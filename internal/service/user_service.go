package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/iliyamo/office-seating/internal/dto"
	"github.com/iliyamo/office-seating/internal/mapping"
	"github.com/iliyamo/office-seating/internal/model"
	"github.com/iliyamo/office-seating/internal/repository"
)

type UserService struct {
	store repository.Store
	log   *zap.Logger
}

func NewUserService(store repository.Store, log *zap.Logger) *UserService {
	return &UserService{store: store, log: log}
}

func (s *UserService) List(ctx context.Context) ([]dto.UserDTO, error) {
	return inUnit(ctx, s.store, func(uow repository.UnitOfWork) ([]dto.UserDTO, error) {
		list, err := uow.Users().List(ctx)
		if err != nil {
			return nil, err
		}
		return usersToDTO(ctx, uow, list)
	})
}

// Search filters users by free text, department and seat occupancy.
func (s *UserService) Search(ctx context.Context, f repository.UserFilter) ([]dto.UserDTO, error) {
	return inUnit(ctx, s.store, func(uow repository.UnitOfWork) ([]dto.UserDTO, error) {
		list, err := uow.Users().Search(ctx, f)
		if err != nil {
			return nil, err
		}
		return usersToDTO(ctx, uow, list)
	})
}

func (s *UserService) Get(ctx context.Context, id string) (dto.UserDTO, error) {
	return inUnit(ctx, s.store, func(uow repository.UnitOfWork) (dto.UserDTO, error) {
		return loadUser(ctx, uow, id)
	})
}

// Update changes profile fields only; email, password and roles have their
// own flows.
func (s *UserService) Update(ctx context.Context, id string, in dto.UserUpdateDTO) (dto.UserDTO, error) {
	return inUnit(ctx, s.store, func(uow repository.UnitOfWork) (dto.UserDTO, error) {
		u, err := uow.Users().Get(ctx, id)
		if err != nil {
			return dto.UserDTO{}, fromRepo(err, "User")
		}
		mapping.ApplyUserUpdate(u, in)
		if err := uow.Users().Update(ctx, u); err != nil {
			return dto.UserDTO{}, fromRepo(err, "User")
		}
		return loadUser(ctx, uow, id)
	})
}

func (s *UserService) Activate(ctx context.Context, id string) (dto.UserDTO, error) {
	return s.setActive(ctx, id, true)
}

// Deactivate blocks logins and revokes the user's refresh tokens. Access
// tokens already issued stay valid until they expire.
func (s *UserService) Deactivate(ctx context.Context, id string) (dto.UserDTO, error) {
	return s.setActive(ctx, id, false)
}

func (s *UserService) setActive(ctx context.Context, id string, active bool) (dto.UserDTO, error) {
	return inUnit(ctx, s.store, func(uow repository.UnitOfWork) (dto.UserDTO, error) {
		u, err := uow.Users().Get(ctx, id)
		if err != nil {
			return dto.UserDTO{}, fromRepo(err, "User")
		}
		u.IsActive = active
		if err := uow.Users().Update(ctx, u); err != nil {
			return dto.UserDTO{}, err
		}
		if !active {
			if err := uow.Tokens().RevokeAllForUser(ctx, id); err != nil {
				return dto.UserDTO{}, err
			}
		}
		return loadUser(ctx, uow, id)
	})
}

// Delete fails for users that appear in any seat's assignment history.
func (s *UserService) Delete(ctx context.Context, id string) bool {
	return deleteIn(ctx, s.store, s.log, "user", id, func(uow repository.UnitOfWork) error {
		return uow.Users().Delete(ctx, id)
	})
}

func loadUser(ctx context.Context, uow repository.UnitOfWork, id string) (dto.UserDTO, error) {
	u, err := uow.Users().Get(ctx, id)
	if err != nil {
		return dto.UserDTO{}, fromRepo(err, "User")
	}
	return userToDTO(ctx, uow, *u)
}

func userToDTO(ctx context.Context, uow repository.UnitOfWork, u model.User) (dto.UserDTO, error) {
	roles, err := uow.Users().Roles(ctx, u.ID)
	if err != nil {
		return dto.UserDTO{}, err
	}
	loc, err := uow.Seats().LocationByUser(ctx, u.ID)
	if errors.Is(err, repository.ErrNotFound) {
		loc, err = nil, nil
	}
	if err != nil {
		return dto.UserDTO{}, err
	}
	return mapping.UserToDTO(u, roles, loc), nil
}

// usersToDTO resolves roles and seats with two queries for the whole list.
func usersToDTO(ctx context.Context, uow repository.UnitOfWork, list []model.User) ([]dto.UserDTO, error) {
	roles, err := uow.Users().RolesByUser(ctx)
	if err != nil {
		return nil, err
	}
	seats, err := uow.Seats().AssignedLocations(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserDTO, 0, len(list))
	for _, u := range list {
		var loc *model.SeatLocation
		if l, ok := seats[u.ID]; ok {
			loc = &l
		}
		out = append(out, mapping.UserToDTO(u, roles[u.ID], loc))
	}
	return out, nil
}
