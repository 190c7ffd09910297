package mapping

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/office-seating/internal/dto"
	"github.com/iliyamo/office-seating/internal/model"
)

func TestLayoutToDTOFlattensBuildingName(t *testing.T) {
	l := model.Layout{ID: 3, BuildingID: 1, BuildingName: "Headquarters", Name: "Main Floor", Width: 2000, Height: 1500, IsActive: true}
	d := LayoutToDTO(l)
	assert.Equal(t, "Headquarters", d.BuildingName)
	require.NotNil(t, d.IsActive)
	assert.True(t, *d.IsActive)
}

func TestLayoutFromDTOAppliesDefaults(t *testing.T) {
	l := LayoutFromDTO(dto.LayoutDTO{Name: " Main Floor ", BuildingID: 1, BuildingName: "ignored"})
	assert.Equal(t, "Main Floor", l.Name)
	assert.Equal(t, model.DefaultLayoutWidth, l.Width)
	assert.Equal(t, model.DefaultLayoutHeight, l.Height)
	assert.True(t, l.IsActive)
	assert.Empty(t, l.BuildingName)
}

func TestApplyBuildingKeepsActiveFlagWhenOmitted(t *testing.T) {
	b := model.Building{ID: 1, Name: "Old", IsActive: false}
	ApplyBuilding(&b, dto.BuildingDTO{ID: 99, Name: "New"})
	assert.Equal(t, uint64(1), b.ID)
	assert.Equal(t, "New", b.Name)
	assert.False(t, b.IsActive)
}

func TestSeatStatusRoundTrip(t *testing.T) {
	s, err := SeatFromDTO(dto.SeatDTO{LayoutID: 1, Identifier: "A101", Status: "reserved"})
	require.NoError(t, err)
	assert.Equal(t, model.SeatReserved, s.Status)
	require.NotNil(t, s.Rotation)
	assert.Equal(t, "Reserved", SeatToDTO(s, nil).Status)

	_, err = SeatFromDTO(dto.SeatDTO{LayoutID: 1, Identifier: "A101", Status: "Broken"})
	assert.Error(t, err)
}

func TestApplySeatPreservesAssignedUser(t *testing.T) {
	holder := "u-1"
	other := "u-2"
	s := model.Seat{ID: 5, LayoutID: 1, Identifier: "A101", Status: model.SeatOccupied, AssignedUserID: &holder}

	require.NoError(t, ApplySeat(&s, dto.SeatDTO{LayoutID: 1, Identifier: "A102", AssignedUserID: &other}))
	require.NotNil(t, s.AssignedUserID)
	assert.Equal(t, "u-1", *s.AssignedUserID)
	assert.Equal(t, model.SeatOccupied, s.Status)
	assert.Equal(t, "A102", s.Identifier)
}

func TestSeatToDTOEmbedsAssignee(t *testing.T) {
	uid := "u-1"
	s := model.Seat{ID: 5, Status: model.SeatOccupied, AssignedUserID: &uid, Properties: model.PropertyBag{"dock": true}}
	d := SeatToDTO(s, &model.User{ID: uid, DisplayName: "Admin User", Email: "admin@example.com"})
	require.NotNil(t, d.AssignedUser)
	assert.Equal(t, "Admin User", d.AssignedUser.DisplayName)
	assert.Equal(t, "Occupied", d.Status)
	assert.Equal(t, true, d.Properties["dock"])
}

func TestUserToDTOWithSeat(t *testing.T) {
	u := model.User{ID: "u-1", Email: "a@example.com", UserName: "a@example.com", IsActive: true}
	d := UserToDTO(u, nil, &model.SeatLocation{SeatID: 5, Identifier: "A101", LayoutName: "Main Floor", FloorNumber: 1, BuildingName: "HQ"})
	assert.True(t, d.HasSeatAssigned)
	require.NotNil(t, d.AssignedSeat)
	assert.Equal(t, "HQ", d.AssignedSeat.BuildingName)
	assert.Equal(t, []string{}, d.Roles)

	d = UserToDTO(u, []string{"User"}, nil)
	assert.False(t, d.HasSeatAssigned)
	assert.Nil(t, d.AssignedSeat)
}

func TestApplyUserUpdateDefaultsDisplayName(t *testing.T) {
	photo := "https://cdn.example.com/p.png"
	u := model.User{PhotoURL: "old.png"}
	ApplyUserUpdate(&u, dto.UserUpdateDTO{FirstName: "Ada", LastName: "Lovelace"})
	assert.Equal(t, "Ada Lovelace", u.DisplayName)
	assert.Equal(t, "old.png", u.PhotoURL)

	ApplyUserUpdate(&u, dto.UserUpdateDTO{FirstName: "Ada", LastName: "Lovelace", DisplayName: "Countess", PhotoURL: &photo})
	assert.Equal(t, "Countess", u.DisplayName)
	assert.Equal(t, photo, u.PhotoURL)
}

func TestAssignmentToDTO(t *testing.T) {
	end := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	d := AssignmentToDTO(model.SeatAssignment{ID: 1, SeatID: 5, UserID: "u", EndDate: &end, SeatIdentifier: "A101", UserDisplayName: "U"})
	assert.Equal(t, "A101", d.SeatIdentifier)
	assert.Equal(t, &end, d.EndDate)
}

func TestPropertiesAreCopied(t *testing.T) {
	in := map[string]any{"k": "v"}
	f := FurnitureFromDTO(dto.FurnitureDTO{LayoutID: 1, Type: "desk", Properties: in})
	in["k"] = "changed"
	assert.Equal(t, "v", f.Properties["k"])
	assert.Equal(t, map[string]any{}, FurnitureToDTO(model.Furniture{}).Properties)
}
