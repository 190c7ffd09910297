package seed

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/iliyamo/office-seating/internal/repository"
	"github.com/iliyamo/office-seating/internal/repository/memory"
	"github.com/iliyamo/office-seating/internal/utils"
)

func TestRunIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	require.NoError(t, Run(ctx, store, bcrypt.MinCost, zap.NewNop()))
	require.NoError(t, Run(ctx, store, bcrypt.MinCost, zap.NewNop()))

	require.NoError(t, repository.Within(ctx, store, func(uow repository.UnitOfWork) error {
		users, err := uow.Users().List(ctx)
		require.NoError(t, err)
		assert.Len(t, users, 3)

		admin, err := uow.Users().GetByEmail(ctx, "admin@example.com")
		require.NoError(t, err)
		assert.True(t, utils.VerifyPassword(admin.PasswordHash, "Admin@123"))
		roles, err := uow.Users().Roles(ctx, admin.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{"Admin"}, roles)

		buildings, err := uow.Buildings().List(ctx)
		require.NoError(t, err)
		require.Len(t, buildings, 1)
		layouts, err := uow.Layouts().ListByBuilding(ctx, buildings[0].ID)
		require.NoError(t, err)
		require.Len(t, layouts, 1)

		walls, err := uow.Walls().ListByLayout(ctx, layouts[0].ID)
		require.NoError(t, err)
		assert.Len(t, walls, 6)
		furniture, err := uow.Furniture().ListByLayout(ctx, layouts[0].ID)
		require.NoError(t, err)
		assert.Len(t, furniture, 5)
		seats, err := uow.Seats().ListByLayout(ctx, layouts[0].ID)
		require.NoError(t, err)
		assert.Len(t, seats, 4)
		return nil
	}))
}
