package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/iliyamo/office-seating/internal/dto"
	"github.com/iliyamo/office-seating/internal/mapping"
	"github.com/iliyamo/office-seating/internal/model"
	"github.com/iliyamo/office-seating/internal/repository"
	"github.com/iliyamo/office-seating/internal/utils"
)

// AuthOptions holds token and hashing settings for AuthService.
type AuthOptions struct {
	Tokens         utils.TokenSettings
	RefreshTTLDays int
	BcryptCost     int
}

type AuthService struct {
	store repository.Store
	opts  AuthOptions
	log   *zap.Logger
	now   func() time.Time
}

func NewAuthService(store repository.Store, opts AuthOptions, log *zap.Logger) *AuthService {
	return &AuthService{store: store, opts: opts, log: log, now: func() time.Time { return time.Now().UTC() }}
}

// WithClock replaces the time source used for token issue and expiry.
func (s *AuthService) WithClock(now func() time.Time) *AuthService {
	s.now = now
	return s
}

var errBadCredentials = &Error{Kind: ErrUnauthorized, Message: "Invalid email or password"}

// Login checks the credentials of an active user and issues a token pair.
func (s *AuthService) Login(ctx context.Context, in dto.LoginDTO) (dto.AuthResponse, error) {
	return inUnit(ctx, s.store, func(uow repository.UnitOfWork) (dto.AuthResponse, error) {
		u, err := uow.Users().GetByEmail(ctx, in.Email)
		if errors.Is(err, repository.ErrNotFound) {
			return dto.AuthResponse{}, errBadCredentials
		}
		if err != nil {
			return dto.AuthResponse{}, err
		}
		if !u.IsActive || !utils.VerifyPassword(u.PasswordHash, in.Password) {
			return dto.AuthResponse{}, errBadCredentials
		}
		return s.issue(ctx, uow, *u)
	})
}

// Register creates an active account with the User role and signs it in.
func (s *AuthService) Register(ctx context.Context, in dto.RegisterDTO) (dto.AuthResponse, error) {
	if err := utils.CheckPasswordPolicy(in.Password); err != nil {
		return dto.AuthResponse{}, newError(ErrValidation, "%s", err.Error())
	}
	hash, err := utils.HashPassword(in.Password, s.opts.BcryptCost)
	if err != nil {
		return dto.AuthResponse{}, err
	}
	return inUnit(ctx, s.store, func(uow repository.UnitOfWork) (dto.AuthResponse, error) {
		email := strings.ToLower(strings.TrimSpace(in.Email))
		if _, err := uow.Users().GetByEmail(ctx, email); err == nil {
			return dto.AuthResponse{}, newError(ErrConflict, "User with this email already exists")
		} else if !errors.Is(err, repository.ErrNotFound) {
			return dto.AuthResponse{}, err
		}
		u := model.User{
			Email:        email,
			UserName:     email,
			PasswordHash: hash,
			FirstName:    strings.TrimSpace(in.FirstName),
			LastName:     strings.TrimSpace(in.LastName),
			JobTitle:     in.JobTitle,
			Department:   in.Department,
			PhoneNumber:  in.PhoneNumber,
			IsActive:     true,
		}
		u.DisplayName = mapping.DisplayName(in.DisplayName, u.FirstName, u.LastName)
		if err := uow.Users().Add(ctx, &u); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				return dto.AuthResponse{}, newError(ErrConflict, "User with this email already exists")
			}
			return dto.AuthResponse{}, err
		}
		role, err := uow.Roles().GetByName(ctx, model.RoleUser)
		if err != nil {
			return dto.AuthResponse{}, err
		}
		if err := uow.Users().AddRole(ctx, u.ID, role.ID); err != nil {
			return dto.AuthResponse{}, err
		}
		return s.issue(ctx, uow, u)
	})
}

// Refresh exchanges a valid refresh token for a new pair. The presented
// token is revoked.
func (s *AuthService) Refresh(ctx context.Context, raw string) (dto.AuthResponse, error) {
	invalid := newError(ErrUnauthorized, "Invalid refresh token")
	return inUnit(ctx, s.store, func(uow repository.UnitOfWork) (dto.AuthResponse, error) {
		hash := utils.HashRefreshRaw(raw)
		userID, err := uow.Tokens().ValidateRefresh(ctx, hash)
		if errors.Is(err, repository.ErrNotFound) {
			return dto.AuthResponse{}, invalid
		}
		if err != nil {
			return dto.AuthResponse{}, err
		}
		u, err := uow.Users().Get(ctx, userID)
		if errors.Is(err, repository.ErrNotFound) {
			return dto.AuthResponse{}, invalid
		}
		if err != nil {
			return dto.AuthResponse{}, err
		}
		if !u.IsActive {
			return dto.AuthResponse{}, invalid
		}
		if err := uow.Tokens().RevokeByHash(ctx, hash); err != nil {
			return dto.AuthResponse{}, err
		}
		return s.issue(ctx, uow, *u)
	})
}

// Logout revokes a refresh token.
func (s *AuthService) Logout(ctx context.Context, raw string) error {
	return repository.Within(ctx, s.store, func(uow repository.UnitOfWork) error {
		err := uow.Tokens().RevokeByHash(ctx, utils.HashRefreshRaw(raw))
		if errors.Is(err, repository.ErrNotFound) {
			return newError(ErrUnauthorized, "Invalid refresh token")
		}
		return err
	})
}

// Me returns the profile of the authenticated user.
func (s *AuthService) Me(ctx context.Context, userID string) (dto.UserDTO, error) {
	return inUnit(ctx, s.store, func(uow repository.UnitOfWork) (dto.UserDTO, error) {
		return loadUser(ctx, uow, userID)
	})
}

func (s *AuthService) AssignRole(ctx context.Context, userID, roleName string) error {
	return s.changeRole(ctx, userID, roleName, "Failed to assign role", func(uow repository.UnitOfWork, roleID uint64) error {
		return uow.Users().AddRole(ctx, userID, roleID)
	})
}

func (s *AuthService) RemoveRole(ctx context.Context, userID, roleName string) error {
	return s.changeRole(ctx, userID, roleName, "Failed to remove role", func(uow repository.UnitOfWork, roleID uint64) error {
		return uow.Users().RemoveRole(ctx, userID, roleID)
	})
}

func (s *AuthService) changeRole(ctx context.Context, userID, roleName, failure string,
	apply func(uow repository.UnitOfWork, roleID uint64) error) error {
	return repository.Within(ctx, s.store, func(uow repository.UnitOfWork) error {
		if _, err := uow.Users().Get(ctx, userID); err != nil {
			return fromRepo(err, "User")
		}
		role, err := uow.Roles().GetByName(ctx, roleName)
		if errors.Is(err, repository.ErrNotFound) {
			return newError(ErrValidation, "%s", failure)
		}
		if err != nil {
			return err
		}
		err = apply(uow, role.ID)
		switch {
		case err == nil:
			return nil
		case errors.Is(err, repository.ErrNotFound), errors.Is(err, repository.ErrDuplicate),
			errors.Is(err, repository.ErrConstraint):
			return newError(ErrValidation, "%s", failure)
		}
		return err
	})
}

// issue signs an access token, stores a fresh refresh token and builds the
// response.
func (s *AuthService) issue(ctx context.Context, uow repository.UnitOfWork, u model.User) (dto.AuthResponse, error) {
	profile, err := userToDTO(ctx, uow, u)
	if err != nil {
		return dto.AuthResponse{}, err
	}
	now := s.now()
	access, err := utils.NewAccessToken(s.opts.Tokens, u.ID, u.Email, u.DisplayName, profile.Roles, now)
	if err != nil {
		return dto.AuthResponse{}, err
	}
	refresh, err := utils.NewRefreshToken(s.opts.RefreshTTLDays, now)
	if err != nil {
		return dto.AuthResponse{}, err
	}
	if err := uow.Tokens().StoreRefresh(ctx, &model.RefreshToken{
		UserID:    u.ID,
		TokenHash: utils.HashRefreshRaw(refresh.Raw),
		ExpiresAt: refresh.Exp,
	}); err != nil {
		return dto.AuthResponse{}, err
	}
	s.log.Debug("tokens issued", zap.String("user_id", u.ID))
	return dto.AuthResponse{
		Token:        access.Token,
		RefreshToken: refresh.Raw,
		Expiration:   access.Exp,
		User:         profile,
	}, nil
}

// LogoutAll revokes every refresh token of the user, ending all sessions.
func (s *AuthService) LogoutAll(ctx context.Context, userID string) error {
	return repository.Within(ctx, s.store, func(uow repository.UnitOfWork) error {
		return uow.Tokens().RevokeAllForUser(ctx, userID)
	})
}
