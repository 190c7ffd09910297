// Package mapping converts between persisted entities and API DTOs.
// Server-owned fields (ids, timestamps, seat assignment) never flow from a
// DTO into an entity.
package mapping

import (
	"strings"

	"github.com/iliyamo/office-seating/internal/dto"
	"github.com/iliyamo/office-seating/internal/model"
)

func boolPtr(b bool) *bool { return &b }

func BuildingToDTO(b model.Building) dto.BuildingDTO {
	return dto.BuildingDTO{
		ID:        b.ID,
		Name:      b.Name,
		Address:   b.Address,
		City:      b.City,
		State:     b.State,
		ZipCode:   b.ZipCode,
		Country:   b.Country,
		IsActive:  boolPtr(b.IsActive),
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

// BuildingFromDTO builds a new entity; IsActive defaults to true.
func BuildingFromDTO(d dto.BuildingDTO) model.Building {
	b := model.Building{IsActive: true}
	ApplyBuilding(&b, d)
	return b
}

// ApplyBuilding overlays the mutable fields of d onto b. A nil IsActive
// keeps the current value.
func ApplyBuilding(b *model.Building, d dto.BuildingDTO) {
	b.Name = strings.TrimSpace(d.Name)
	b.Address = d.Address
	b.City = d.City
	b.State = d.State
	b.ZipCode = d.ZipCode
	b.Country = d.Country
	if d.IsActive != nil {
		b.IsActive = *d.IsActive
	}
}

func LayoutToDTO(l model.Layout) dto.LayoutDTO {
	return dto.LayoutDTO{
		ID:           l.ID,
		Name:         l.Name,
		Description:  l.Description,
		FloorNumber:  l.FloorNumber,
		BuildingID:   l.BuildingID,
		BuildingName: l.BuildingName,
		Width:        l.Width,
		Height:       l.Height,
		IsActive:     boolPtr(l.IsActive),
		CreatedAt:    l.CreatedAt,
		UpdatedAt:    l.UpdatedAt,
	}
}

func LayoutFromDTO(d dto.LayoutDTO) model.Layout {
	l := model.Layout{IsActive: true, Width: model.DefaultLayoutWidth, Height: model.DefaultLayoutHeight}
	ApplyLayout(&l, d)
	return l
}

// ApplyLayout overlays d onto l. Zero dimensions keep the current size.
func ApplyLayout(l *model.Layout, d dto.LayoutDTO) {
	l.Name = strings.TrimSpace(d.Name)
	l.Description = d.Description
	l.FloorNumber = d.FloorNumber
	l.BuildingID = d.BuildingID
	if d.Width > 0 {
		l.Width = d.Width
	}
	if d.Height > 0 {
		l.Height = d.Height
	}
	if d.IsActive != nil {
		l.IsActive = *d.IsActive
	}
}

func WallToDTO(w model.Wall) dto.WallDTO {
	return dto.WallDTO{
		ID:        w.ID,
		LayoutID:  w.LayoutID,
		StartX:    w.StartX,
		StartY:    w.StartY,
		EndX:      w.EndX,
		EndY:      w.EndY,
		Thickness: w.Thickness,
		Color:     w.Color,
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
	}
}

func WallFromDTO(d dto.WallDTO) model.Wall {
	w := model.Wall{Thickness: model.DefaultWallThickness, Color: model.DefaultWallColor}
	ApplyWall(&w, d)
	return w
}

func ApplyWall(w *model.Wall, d dto.WallDTO) {
	w.LayoutID = d.LayoutID
	w.StartX, w.StartY = d.StartX, d.StartY
	w.EndX, w.EndY = d.EndX, d.EndY
	if d.Thickness > 0 {
		w.Thickness = d.Thickness
	}
	if d.Color != "" {
		w.Color = d.Color
	}
}

func FurnitureToDTO(f model.Furniture) dto.FurnitureDTO {
	return dto.FurnitureDTO{
		ID:         f.ID,
		LayoutID:   f.LayoutID,
		Type:       f.Type,
		PositionX:  f.PositionX,
		PositionY:  f.PositionY,
		Width:      f.Width,
		Height:     f.Height,
		Rotation:   f.Rotation,
		Color:      f.Color,
		Properties: propertiesOut(f.Properties),
		CreatedAt:  f.CreatedAt,
		UpdatedAt:  f.UpdatedAt,
	}
}

func FurnitureFromDTO(d dto.FurnitureDTO) model.Furniture {
	var f model.Furniture
	ApplyFurniture(&f, d)
	return f
}

func ApplyFurniture(f *model.Furniture, d dto.FurnitureDTO) {
	f.LayoutID = d.LayoutID
	f.Type = strings.TrimSpace(d.Type)
	f.PositionX, f.PositionY = d.PositionX, d.PositionY
	f.Width, f.Height = d.Width, d.Height
	f.Rotation = d.Rotation
	f.Color = d.Color
	f.Properties = propertiesIn(d.Properties)
}

// SeatToDTO maps a seat; assignee may be nil for a free seat or when the
// user could not be resolved.
func SeatToDTO(s model.Seat, assignee *model.User) dto.SeatDTO {
	out := dto.SeatDTO{
		ID:             s.ID,
		LayoutID:       s.LayoutID,
		Identifier:     s.Identifier,
		PositionX:      s.PositionX,
		PositionY:      s.PositionY,
		Rotation:       s.Rotation,
		Status:         s.Status.String(),
		AssignedUserID: s.AssignedUserID,
		Properties:     propertiesOut(s.Properties),
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}
	if assignee != nil {
		basic := UserToBasic(*assignee)
		out.AssignedUser = &basic
	}
	return out
}

// SeatFromDTO builds a new unassigned seat. An empty status means Available.
func SeatFromDTO(d dto.SeatDTO) (model.Seat, error) {
	s := model.Seat{Rotation: new(float64)}
	if err := ApplySeat(&s, d); err != nil {
		return model.Seat{}, err
	}
	return s, nil
}

// ApplySeat overlays d onto s but never touches AssignedUserID.
func ApplySeat(s *model.Seat, d dto.SeatDTO) error {
	status := s.Status
	if strings.TrimSpace(d.Status) != "" {
		parsed, err := model.ParseSeatStatus(d.Status)
		if err != nil {
			return err
		}
		status = parsed
	}
	s.LayoutID = d.LayoutID
	s.Identifier = strings.TrimSpace(d.Identifier)
	s.PositionX, s.PositionY = d.PositionX, d.PositionY
	if d.Rotation != nil {
		s.Rotation = d.Rotation
	}
	s.Status = status
	s.Properties = propertiesIn(d.Properties)
	return nil
}

func AssignmentToDTO(a model.SeatAssignment) dto.SeatAssignmentDTO {
	return dto.SeatAssignmentDTO{
		ID:              a.ID,
		SeatID:          a.SeatID,
		SeatIdentifier:  a.SeatIdentifier,
		UserID:          a.UserID,
		UserDisplayName: a.UserDisplayName,
		StartDate:       a.StartDate,
		EndDate:         a.EndDate,
	}
}

func UserToBasic(u model.User) dto.UserBasicDTO {
	return dto.UserBasicDTO{
		ID:          u.ID,
		DisplayName: u.DisplayName,
		Email:       u.Email,
		JobTitle:    u.JobTitle,
		Department:  u.Department,
		PhotoURL:    u.PhotoURL,
	}
}

// UserToDTO flattens the user's seat location and role names.
func UserToDTO(u model.User, roles []string, seat *model.SeatLocation) dto.UserDTO {
	if roles == nil {
		roles = []string{}
	}
	out := dto.UserDTO{
		ID:              u.ID,
		Username:        u.UserName,
		Email:           u.Email,
		FirstName:       u.FirstName,
		LastName:        u.LastName,
		DisplayName:     u.DisplayName,
		JobTitle:        u.JobTitle,
		Department:      u.Department,
		PhoneNumber:     u.PhoneNumber,
		PhotoURL:        u.PhotoURL,
		IsActive:        u.IsActive,
		HasSeatAssigned: seat != nil,
		Roles:           roles,
		CreatedAt:       u.CreatedAt,
		UpdatedAt:       u.UpdatedAt,
	}
	if seat != nil {
		out.AssignedSeat = &dto.SeatBasicDTO{
			ID:           seat.SeatID,
			Identifier:   seat.Identifier,
			LayoutID:     seat.LayoutID,
			LayoutName:   seat.LayoutName,
			FloorNumber:  seat.FloorNumber,
			BuildingName: seat.BuildingName,
		}
	}
	return out
}

// ApplyUserUpdate overlays profile fields. An empty display name becomes
// "First Last"; a nil photo URL keeps the current one.
func ApplyUserUpdate(u *model.User, d dto.UserUpdateDTO) {
	u.FirstName = strings.TrimSpace(d.FirstName)
	u.LastName = strings.TrimSpace(d.LastName)
	u.DisplayName = DisplayName(d.DisplayName, u.FirstName, u.LastName)
	u.JobTitle = d.JobTitle
	u.Department = d.Department
	u.PhoneNumber = d.PhoneNumber
	if d.PhotoURL != nil {
		u.PhotoURL = *d.PhotoURL
	}
}

func DisplayName(display, first, last string) string {
	if s := strings.TrimSpace(display); s != "" {
		return s
	}
	return strings.TrimSpace(first + " " + last)
}

func propertiesIn(m map[string]any) model.PropertyBag {
	if m == nil {
		return model.PropertyBag{}
	}
	return model.PropertyBag(m).Clone()
}

func propertiesOut(p model.PropertyBag) map[string]any {
	if p == nil {
		return map[string]any{}
	}
	return p.Clone()
}
