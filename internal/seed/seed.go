// Package seed loads the development accounts and a sample floor.
package seed

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/iliyamo/office-seating/internal/model"
	"github.com/iliyamo/office-seating/internal/repository"
	"github.com/iliyamo/office-seating/internal/utils"
)

type account struct {
	user     model.User
	password string
	role     string
}

var accounts = []account{
	{model.User{Email: "admin@example.com", FirstName: "Admin", LastName: "User", DisplayName: "Admin User",
		JobTitle: "System Administrator", Department: "IT", PhoneNumber: "555-1234"}, "Admin@123", model.RoleAdmin},
	{model.User{Email: "manager@example.com", FirstName: "Manager", LastName: "User", DisplayName: "Manager User",
		JobTitle: "Office Manager", Department: "Operations", PhoneNumber: "555-2345"}, "Manager@123", model.RoleManager},
	{model.User{Email: "user@example.com", FirstName: "Regular", LastName: "User", DisplayName: "Regular User",
		JobTitle: "Software Developer", Department: "Engineering", PhoneNumber: "555-3456"}, "User@123", model.RoleUser},
}

// Run creates missing seed accounts and, when no building exists yet, the
// sample headquarters floor. It is safe to call on every start.
func Run(ctx context.Context, store repository.Store, bcryptCost int, log *zap.Logger) error {
	return repository.Within(ctx, store, func(uow repository.UnitOfWork) error {
		for _, a := range accounts {
			created, err := ensureAccount(ctx, uow, a, bcryptCost)
			if err != nil {
				return err
			}
			if created {
				log.Info("seeded user", zap.String("email", a.user.Email), zap.String("role", a.role))
			}
		}
		existing, err := uow.Buildings().List(ctx)
		if err != nil {
			return err
		}
		if len(existing) > 0 {
			return nil
		}
		if err := sampleFloor(ctx, uow); err != nil {
			return err
		}
		log.Info("seeded sample floor plan")
		return nil
	})
}

func ensureAccount(ctx context.Context, uow repository.UnitOfWork, a account, cost int) (bool, error) {
	if _, err := uow.Users().GetByEmail(ctx, a.user.Email); err == nil {
		return false, nil
	} else if !errors.Is(err, repository.ErrNotFound) {
		return false, err
	}
	hash, err := utils.HashPassword(a.password, cost)
	if err != nil {
		return false, err
	}
	u := a.user
	u.UserName = u.Email
	u.PasswordHash = hash
	u.IsActive = true
	if err := uow.Users().Add(ctx, &u); err != nil {
		return false, err
	}
	role, err := uow.Roles().GetByName(ctx, a.role)
	if err != nil {
		return false, err
	}
	return true, uow.Users().AddRole(ctx, u.ID, role.ID)
}

func sampleFloor(ctx context.Context, uow repository.UnitOfWork) error {
	b := model.Building{
		Name: "Headquarters", Address: "123 Main Street", City: "New York",
		State: "NY", ZipCode: "10001", Country: "USA", IsActive: true,
	}
	if err := uow.Buildings().Add(ctx, &b); err != nil {
		return err
	}
	l := model.Layout{
		BuildingID: b.ID, Name: "Main Floor", Description: "First floor open office layout",
		FloorNumber: 1, Width: 2000, Height: 1500, IsActive: true,
	}
	if err := uow.Layouts().Add(ctx, &l); err != nil {
		return err
	}

	// outline, then the meeting room corner
	for _, w := range [][4]float64{
		{0, 0, 2000, 0}, {2000, 0, 2000, 1500}, {2000, 1500, 0, 1500}, {0, 1500, 0, 0},
		{0, 700, 500, 700}, {500, 700, 500, 0},
	} {
		wall := model.Wall{LayoutID: l.ID, StartX: w[0], StartY: w[1], EndX: w[2], EndY: w[3],
			Thickness: model.DefaultWallThickness, Color: "#34495e"}
		if err := uow.Walls().Add(ctx, &wall); err != nil {
			return err
		}
	}

	furniture := []model.Furniture{
		{Type: "table", PositionX: 250, PositionY: 350, Width: 300, Height: 150, Color: "#8B4513"},
		{Type: "desk", PositionX: 700, PositionY: 200, Width: 120, Height: 60, Color: "#B0C4DE"},
		{Type: "desk", PositionX: 900, PositionY: 200, Width: 120, Height: 60, Color: "#B0C4DE"},
		{Type: "desk", PositionX: 700, PositionY: 400, Width: 120, Height: 60, Color: "#B0C4DE"},
		{Type: "desk", PositionX: 900, PositionY: 400, Width: 120, Height: 60, Color: "#B0C4DE"},
	}
	for i := range furniture {
		f := &furniture[i]
		f.LayoutID, f.Rotation, f.Properties = l.ID, new(float64), model.PropertyBag{}
		if err := uow.Furniture().Add(ctx, f); err != nil {
			return err
		}
	}

	for _, s := range []struct {
		id   string
		x, y float64
	}{{"A101", 700, 170}, {"A102", 900, 170}, {"A103", 700, 370}, {"A104", 900, 370}} {
		seat := model.Seat{LayoutID: l.ID, Identifier: s.id, PositionX: s.x, PositionY: s.y,
			Rotation: new(float64), Status: model.SeatAvailable, Properties: model.PropertyBag{}}
		if err := uow.Seats().Add(ctx, &seat); err != nil {
			return err
		}
	}
	return nil
}
