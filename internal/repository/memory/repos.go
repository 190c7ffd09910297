package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/iliyamo/office-seating/internal/model"
	"github.com/iliyamo/office-seating/internal/repository"
)

func notFound(what string, id any) error {
	return fmt.Errorf("%s %v: %w", what, id, repository.ErrNotFound)
}

func constraint(msg string) error {
	return fmt.Errorf("%s: %w", msg, repository.ErrConstraint)
}

// collect returns the map values that pass keep, sorted by less.
func collect[K comparable, T any](m map[K]T, keep func(T) bool, less func(a, b T) bool) []T {
	out := []T{}
	for _, v := range m {
		if keep == nil || keep(v) {
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

// buildings

type buildings struct{ u *unit }

func buildingLess(a, b model.Building) bool {
	if a.Name != b.Name {
		return a.Name < b.Name
	}
	return a.ID < b.ID
}

func (r buildings) List(context.Context) ([]model.Building, error) {
	return collect(r.u.data.buildings, nil, buildingLess), nil
}

func (r buildings) Get(_ context.Context, id uint64) (*model.Building, error) {
	b, ok := r.u.data.buildings[id]
	if !ok {
		return nil, notFound("building", id)
	}
	return &b, nil
}

func (r buildings) Add(_ context.Context, b *model.Building) error {
	b.ID = r.u.nextID("buildings")
	b.CreatedAt, b.UpdatedAt = r.u.now(), r.u.now()
	r.u.data.buildings[b.ID] = *b
	return nil
}

func (r buildings) Update(_ context.Context, b *model.Building) error {
	old, ok := r.u.data.buildings[b.ID]
	if !ok {
		return notFound("building", b.ID)
	}
	b.CreatedAt, b.UpdatedAt = old.CreatedAt, r.u.now()
	r.u.data.buildings[b.ID] = *b
	return nil
}

func (r buildings) Delete(_ context.Context, id uint64) error {
	if _, ok := r.u.data.buildings[id]; !ok {
		return notFound("building", id)
	}
	for lid, l := range r.u.data.layouts {
		if l.BuildingID == id {
			r.u.deleteLayout(lid)
		}
	}
	delete(r.u.data.buildings, id)
	return nil
}

// layouts

type layouts struct{ u *unit }

func layoutLess(a, b model.Layout) bool {
	if a.BuildingID != b.BuildingID {
		return a.BuildingID < b.BuildingID
	}
	if a.FloorNumber != b.FloorNumber {
		return a.FloorNumber < b.FloorNumber
	}
	return a.ID < b.ID
}

func (r layouts) withBuilding(l model.Layout) model.Layout {
	l.BuildingName = r.u.data.buildings[l.BuildingID].Name
	return l
}

func (r layouts) list(keep func(model.Layout) bool) []model.Layout {
	out := collect(r.u.data.layouts, keep, layoutLess)
	for i := range out {
		out[i] = r.withBuilding(out[i])
	}
	return out
}

func (r layouts) List(context.Context) ([]model.Layout, error) { return r.list(nil), nil }

func (r layouts) ListByBuilding(_ context.Context, buildingID uint64) ([]model.Layout, error) {
	return r.list(func(l model.Layout) bool { return l.BuildingID == buildingID }), nil
}

func (r layouts) Get(_ context.Context, id uint64) (*model.Layout, error) {
	l, ok := r.u.data.layouts[id]
	if !ok {
		return nil, notFound("layout", id)
	}
	l = r.withBuilding(l)
	return &l, nil
}

func (r layouts) check(l *model.Layout) error {
	if _, ok := r.u.data.buildings[l.BuildingID]; !ok {
		return constraint("layout references missing building")
	}
	return nil
}

func (r layouts) Add(_ context.Context, l *model.Layout) error {
	if err := r.check(l); err != nil {
		return err
	}
	l.ID = r.u.nextID("layouts")
	l.CreatedAt, l.UpdatedAt = r.u.now(), r.u.now()
	stored := *l
	stored.BuildingName = ""
	r.u.data.layouts[l.ID] = stored
	return nil
}

func (r layouts) Update(_ context.Context, l *model.Layout) error {
	old, ok := r.u.data.layouts[l.ID]
	if !ok {
		return notFound("layout", l.ID)
	}
	if err := r.check(l); err != nil {
		return err
	}
	l.CreatedAt, l.UpdatedAt = old.CreatedAt, r.u.now()
	stored := *l
	stored.BuildingName = ""
	r.u.data.layouts[l.ID] = stored
	return nil
}

func (r layouts) Delete(_ context.Context, id uint64) error {
	if _, ok := r.u.data.layouts[id]; !ok {
		return notFound("layout", id)
	}
	r.u.deleteLayout(id)
	return nil
}

// deleteLayout cascades to walls, furniture, seats and their history.
func (u *unit) deleteLayout(id uint64) {
	for wid, w := range u.data.walls {
		if w.LayoutID == id {
			delete(u.data.walls, wid)
		}
	}
	for fid, f := range u.data.furniture {
		if f.LayoutID == id {
			delete(u.data.furniture, fid)
		}
	}
	for sid, s := range u.data.seats {
		if s.LayoutID == id {
			u.deleteSeat(sid)
		}
	}
	delete(u.data.layouts, id)
}

func (u *unit) deleteSeat(id uint64) {
	for aid, a := range u.data.assignments {
		if a.SeatID == id {
			delete(u.data.assignments, aid)
		}
	}
	delete(u.data.seats, id)
}

func (u *unit) layoutExists(id uint64) error {
	if _, ok := u.data.layouts[id]; !ok {
		return constraint("row references missing layout")
	}
	return nil
}

// walls

type walls struct{ u *unit }

func wallLess(a, b model.Wall) bool { return a.ID < b.ID }

func (r walls) List(context.Context) ([]model.Wall, error) {
	return collect(r.u.data.walls, nil, wallLess), nil
}

func (r walls) ListByLayout(_ context.Context, layoutID uint64) ([]model.Wall, error) {
	return collect(r.u.data.walls, func(w model.Wall) bool { return w.LayoutID == layoutID }, wallLess), nil
}

func (r walls) Get(_ context.Context, id uint64) (*model.Wall, error) {
	w, ok := r.u.data.walls[id]
	if !ok {
		return nil, notFound("wall", id)
	}
	return &w, nil
}

func (r walls) Add(_ context.Context, w *model.Wall) error {
	if err := r.u.layoutExists(w.LayoutID); err != nil {
		return err
	}
	w.ID = r.u.nextID("walls")
	w.CreatedAt, w.UpdatedAt = r.u.now(), r.u.now()
	r.u.data.walls[w.ID] = *w
	return nil
}

func (r walls) Update(_ context.Context, w *model.Wall) error {
	old, ok := r.u.data.walls[w.ID]
	if !ok {
		return notFound("wall", w.ID)
	}
	if err := r.u.layoutExists(w.LayoutID); err != nil {
		return err
	}
	w.CreatedAt, w.UpdatedAt = old.CreatedAt, r.u.now()
	r.u.data.walls[w.ID] = *w
	return nil
}

func (r walls) Delete(_ context.Context, id uint64) error {
	if _, ok := r.u.data.walls[id]; !ok {
		return notFound("wall", id)
	}
	delete(r.u.data.walls, id)
	return nil
}

// furniture

type furniture struct{ u *unit }

func furnitureLess(a, b model.Furniture) bool { return a.ID < b.ID }

func (r furniture) List(context.Context) ([]model.Furniture, error) {
	return r.list(nil), nil
}

func (r furniture) ListByLayout(_ context.Context, layoutID uint64) ([]model.Furniture, error) {
	return r.list(func(f model.Furniture) bool { return f.LayoutID == layoutID }), nil
}

func (r furniture) list(keep func(model.Furniture) bool) []model.Furniture {
	out := collect(r.u.data.furniture, keep, furnitureLess)
	for i := range out {
		out[i] = copyFurniture(out[i])
	}
	return out
}

func (r furniture) Get(_ context.Context, id uint64) (*model.Furniture, error) {
	f, ok := r.u.data.furniture[id]
	if !ok {
		return nil, notFound("furniture", id)
	}
	f = copyFurniture(f)
	return &f, nil
}

func (r furniture) Add(_ context.Context, f *model.Furniture) error {
	if err := r.u.layoutExists(f.LayoutID); err != nil {
		return err
	}
	f.ID = r.u.nextID("furniture")
	f.CreatedAt, f.UpdatedAt = r.u.now(), r.u.now()
	r.u.data.furniture[f.ID] = copyFurniture(*f)
	return nil
}

func (r furniture) Update(_ context.Context, f *model.Furniture) error {
	old, ok := r.u.data.furniture[f.ID]
	if !ok {
		return notFound("furniture", f.ID)
	}
	if err := r.u.layoutExists(f.LayoutID); err != nil {
		return err
	}
	f.CreatedAt, f.UpdatedAt = old.CreatedAt, r.u.now()
	r.u.data.furniture[f.ID] = copyFurniture(*f)
	return nil
}

func (r furniture) Delete(_ context.Context, id uint64) error {
	if _, ok := r.u.data.furniture[id]; !ok {
		return notFound("furniture", id)
	}
	delete(r.u.data.furniture, id)
	return nil
}

// seats

type seats struct{ u *unit }

func seatLess(a, b model.Seat) bool {
	if a.Identifier != b.Identifier {
		return a.Identifier < b.Identifier
	}
	return a.ID < b.ID
}

func (r seats) list(keep func(model.Seat) bool) []model.Seat {
	out := collect(r.u.data.seats, keep, seatLess)
	for i := range out {
		out[i] = copySeat(out[i])
	}
	return out
}

func (r seats) List(context.Context) ([]model.Seat, error) { return r.list(nil), nil }

func (r seats) ListByLayout(_ context.Context, layoutID uint64) ([]model.Seat, error) {
	return r.list(func(s model.Seat) bool { return s.LayoutID == layoutID }), nil
}

func (r seats) Get(_ context.Context, id uint64) (*model.Seat, error) {
	s, ok := r.u.data.seats[id]
	if !ok {
		return nil, notFound("seat", id)
	}
	s = copySeat(s)
	return &s, nil
}

func (r seats) GetByAssignedUser(_ context.Context, userID string) (*model.Seat, error) {
	for _, s := range r.u.data.seats {
		if s.AssignedUserID != nil && *s.AssignedUserID == userID {
			s = copySeat(s)
			return &s, nil
		}
	}
	return nil, notFound("seat for user", userID)
}

func (r seats) check(s *model.Seat) error {
	if err := r.u.layoutExists(s.LayoutID); err != nil {
		return err
	}
	if s.AssignedUserID == nil {
		return nil
	}
	if _, ok := r.u.data.users[*s.AssignedUserID]; !ok {
		return constraint("seat references missing user")
	}
	for id, other := range r.u.data.seats {
		if id != s.ID && other.AssignedUserID != nil && *other.AssignedUserID == *s.AssignedUserID {
			return fmt.Errorf("user already holds seat %d: %w", id, repository.ErrDuplicate)
		}
	}
	return nil
}

func (r seats) Add(_ context.Context, s *model.Seat) error {
	if err := r.check(s); err != nil {
		return err
	}
	s.ID = r.u.nextID("seats")
	s.CreatedAt, s.UpdatedAt = r.u.now(), r.u.now()
	r.u.data.seats[s.ID] = copySeat(*s)
	return nil
}

func (r seats) Update(_ context.Context, s *model.Seat) error {
	old, ok := r.u.data.seats[s.ID]
	if !ok {
		return notFound("seat", s.ID)
	}
	if err := r.check(s); err != nil {
		return err
	}
	s.CreatedAt, s.UpdatedAt = old.CreatedAt, r.u.now()
	r.u.data.seats[s.ID] = copySeat(*s)
	return nil
}

func (r seats) Delete(_ context.Context, id uint64) error {
	if _, ok := r.u.data.seats[id]; !ok {
		return notFound("seat", id)
	}
	r.u.deleteSeat(id)
	return nil
}

func (r seats) location(s model.Seat) model.SeatLocation {
	l := r.u.data.layouts[s.LayoutID]
	return model.SeatLocation{
		SeatID:       s.ID,
		Identifier:   s.Identifier,
		LayoutID:     l.ID,
		LayoutName:   l.Name,
		FloorNumber:  l.FloorNumber,
		BuildingName: r.u.data.buildings[l.BuildingID].Name,
	}
}

func (r seats) LocationByUser(ctx context.Context, userID string) (*model.SeatLocation, error) {
	s, err := r.GetByAssignedUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	loc := r.location(*s)
	return &loc, nil
}

func (r seats) AssignedLocations(context.Context) (map[string]model.SeatLocation, error) {
	out := map[string]model.SeatLocation{}
	for _, s := range r.u.data.seats {
		if s.AssignedUserID != nil {
			out[*s.AssignedUserID] = r.location(s)
		}
	}
	return out, nil
}

// assignments

type assignments struct{ u *unit }

func assignmentLess(a, b model.SeatAssignment) bool {
	if !a.StartDate.Equal(b.StartDate) {
		return a.StartDate.After(b.StartDate)
	}
	return a.ID > b.ID
}

func (r assignments) List(context.Context) ([]model.SeatAssignment, error) {
	out := collect(r.u.data.assignments, nil, assignmentLess)
	for i := range out {
		out[i] = copyAssignment(out[i])
	}
	return out, nil
}

func (r assignments) Get(_ context.Context, id uint64) (*model.SeatAssignment, error) {
	a, ok := r.u.data.assignments[id]
	if !ok {
		return nil, notFound("seat assignment", id)
	}
	a = copyAssignment(a)
	return &a, nil
}

func (r assignments) check(a *model.SeatAssignment) error {
	if _, ok := r.u.data.seats[a.SeatID]; !ok {
		return constraint("assignment references missing seat")
	}
	if _, ok := r.u.data.users[a.UserID]; !ok {
		return constraint("assignment references missing user")
	}
	return nil
}

func (r assignments) Add(_ context.Context, a *model.SeatAssignment) error {
	if err := r.check(a); err != nil {
		return err
	}
	a.ID = r.u.nextID("seat_assignments")
	a.CreatedAt, a.UpdatedAt = r.u.now(), r.u.now()
	stored := copyAssignment(*a)
	stored.SeatIdentifier, stored.UserDisplayName = "", ""
	r.u.data.assignments[a.ID] = stored
	return nil
}

func (r assignments) Update(_ context.Context, a *model.SeatAssignment) error {
	old, ok := r.u.data.assignments[a.ID]
	if !ok {
		return notFound("seat assignment", a.ID)
	}
	if err := r.check(a); err != nil {
		return err
	}
	a.CreatedAt, a.UpdatedAt = old.CreatedAt, r.u.now()
	stored := copyAssignment(*a)
	stored.SeatIdentifier, stored.UserDisplayName = "", ""
	r.u.data.assignments[a.ID] = stored
	return nil
}

func (r assignments) Delete(_ context.Context, id uint64) error {
	if _, ok := r.u.data.assignments[id]; !ok {
		return notFound("seat assignment", id)
	}
	delete(r.u.data.assignments, id)
	return nil
}

func (r assignments) OpenForSeat(_ context.Context, seatID uint64) (*model.SeatAssignment, error) {
	open := collect(r.u.data.assignments, func(a model.SeatAssignment) bool {
		return a.SeatID == seatID && a.EndDate == nil
	}, assignmentLess)
	if len(open) == 0 {
		return nil, notFound("open assignment for seat", seatID)
	}
	a := copyAssignment(open[0])
	return &a, nil
}

func (r assignments) HistoryForSeat(_ context.Context, seatID uint64) ([]model.SeatAssignment, error) {
	hist := collect(r.u.data.assignments, func(a model.SeatAssignment) bool { return a.SeatID == seatID }, assignmentLess)
	for i := range hist {
		hist[i] = copyAssignment(hist[i])
		hist[i].SeatIdentifier = r.u.data.seats[hist[i].SeatID].Identifier
		hist[i].UserDisplayName = r.u.data.users[hist[i].UserID].DisplayName
	}
	return hist, nil
}

// users

type users struct{ u *unit }

func userLess(a, b model.User) bool {
	if a.DisplayName != b.DisplayName {
		return a.DisplayName < b.DisplayName
	}
	return a.Email < b.Email
}

func normalizeEmail(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

func (r users) List(context.Context) ([]model.User, error) {
	return collect(r.u.data.users, nil, userLess), nil
}

func (r users) Get(_ context.Context, id string) (*model.User, error) {
	usr, ok := r.u.data.users[id]
	if !ok {
		return nil, notFound("user", id)
	}
	return &usr, nil
}

func (r users) GetByEmail(_ context.Context, email string) (*model.User, error) {
	email = normalizeEmail(email)
	for _, usr := range r.u.data.users {
		if usr.Email == email {
			return &usr, nil
		}
	}
	return nil, notFound("user", email)
}

func (r users) emailTaken(email, exceptID string) bool {
	for id, usr := range r.u.data.users {
		if id != exceptID && usr.Email == email {
			return true
		}
	}
	return false
}

func (r users) Add(_ context.Context, usr *model.User) error {
	if usr.ID == "" {
		usr.ID = uuid.NewString()
	}
	usr.Email = normalizeEmail(usr.Email)
	if usr.UserName == "" {
		usr.UserName = usr.Email
	}
	if _, exists := r.u.data.users[usr.ID]; exists || r.emailTaken(usr.Email, "") {
		return fmt.Errorf("user %s: %w", usr.Email, repository.ErrDuplicate)
	}
	usr.CreatedAt, usr.UpdatedAt = r.u.now(), r.u.now()
	r.u.data.users[usr.ID] = *usr
	return nil
}

func (r users) Update(_ context.Context, usr *model.User) error {
	old, ok := r.u.data.users[usr.ID]
	if !ok {
		return notFound("user", usr.ID)
	}
	if r.emailTaken(usr.Email, usr.ID) {
		return fmt.Errorf("user %s: %w", usr.Email, repository.ErrDuplicate)
	}
	usr.CreatedAt, usr.UpdatedAt = old.CreatedAt, r.u.now()
	r.u.data.users[usr.ID] = *usr
	return nil
}

// Delete refuses users referenced by seat history and releases their seat.
func (r users) Delete(_ context.Context, id string) error {
	if _, ok := r.u.data.users[id]; !ok {
		return notFound("user", id)
	}
	for _, a := range r.u.data.assignments {
		if a.UserID == id {
			return constraint("user is referenced by seat history")
		}
	}
	for sid, s := range r.u.data.seats {
		if s.AssignedUserID != nil && *s.AssignedUserID == id {
			s.AssignedUserID = nil
			r.u.data.seats[sid] = s
		}
	}
	for hash, t := range r.u.data.tokens {
		if t.UserID == id {
			delete(r.u.data.tokens, hash)
		}
	}
	delete(r.u.data.userRoles, id)
	delete(r.u.data.users, id)
	return nil
}

func (r users) hasSeat(id string) bool {
	for _, s := range r.u.data.seats {
		if s.AssignedUserID != nil && *s.AssignedUserID == id {
			return true
		}
	}
	return false
}

func (r users) Search(_ context.Context, f repository.UserFilter) ([]model.User, error) {
	term := strings.ToLower(strings.TrimSpace(f.Term))
	dep := strings.TrimSpace(f.Department)
	return collect(r.u.data.users, func(usr model.User) bool {
		if term != "" {
			matched := false
			for _, field := range []string{usr.FirstName, usr.LastName, usr.DisplayName, usr.Email, usr.Department, usr.JobTitle} {
				if strings.Contains(strings.ToLower(field), term) {
					matched = true
					break
				}
			}
			if !matched {
				return false
			}
		}
		if dep != "" && !strings.EqualFold(usr.Department, dep) {
			return false
		}
		if f.HasSeat != nil && r.hasSeat(usr.ID) != *f.HasSeat {
			return false
		}
		return true
	}, userLess), nil
}

func (r users) Roles(_ context.Context, userID string) ([]string, error) {
	names := []string{}
	for roleID := range r.u.data.userRoles[userID] {
		names = append(names, r.u.data.roles[roleID].Name)
	}
	sort.Strings(names)
	return names, nil
}

func (r users) RolesByUser(ctx context.Context) (map[string][]string, error) {
	out := map[string][]string{}
	for userID := range r.u.data.userRoles {
		names, _ := r.Roles(ctx, userID)
		if len(names) > 0 {
			out[userID] = names
		}
	}
	return out, nil
}

func (r users) AddRole(_ context.Context, userID string, roleID uint64) error {
	if _, ok := r.u.data.users[userID]; !ok {
		return constraint("role membership references missing user")
	}
	if _, ok := r.u.data.roles[roleID]; !ok {
		return constraint("role membership references missing role")
	}
	set := r.u.data.userRoles[userID]
	if set == nil {
		set = map[uint64]bool{}
		r.u.data.userRoles[userID] = set
	}
	if set[roleID] {
		return fmt.Errorf("role %d for user %s: %w", roleID, userID, repository.ErrDuplicate)
	}
	set[roleID] = true
	return nil
}

func (r users) RemoveRole(_ context.Context, userID string, roleID uint64) error {
	if !r.u.data.userRoles[userID][roleID] {
		return notFound("role membership", roleID)
	}
	delete(r.u.data.userRoles[userID], roleID)
	return nil
}

// roles

type roles struct{ u *unit }

func roleLess(a, b model.Role) bool { return a.Name < b.Name }

func (r roles) List(context.Context) ([]model.Role, error) {
	return collect(r.u.data.roles, nil, roleLess), nil
}

func (r roles) Get(_ context.Context, id uint64) (*model.Role, error) {
	ro, ok := r.u.data.roles[id]
	if !ok {
		return nil, notFound("role", id)
	}
	return &ro, nil
}

func (r roles) GetByName(_ context.Context, name string) (*model.Role, error) {
	for _, ro := range r.u.data.roles {
		if strings.EqualFold(ro.Name, name) {
			return &ro, nil
		}
	}
	return nil, notFound("role", name)
}

func (r roles) Add(_ context.Context, ro *model.Role) error {
	if _, err := r.GetByName(context.Background(), ro.Name); err == nil {
		return fmt.Errorf("role %s: %w", ro.Name, repository.ErrDuplicate)
	}
	ro.ID = r.u.nextID("roles")
	ro.CreatedAt, ro.UpdatedAt = r.u.now(), r.u.now()
	r.u.data.roles[ro.ID] = *ro
	return nil
}

func (r roles) Update(_ context.Context, ro *model.Role) error {
	old, ok := r.u.data.roles[ro.ID]
	if !ok {
		return notFound("role", ro.ID)
	}
	ro.CreatedAt, ro.UpdatedAt = old.CreatedAt, r.u.now()
	r.u.data.roles[ro.ID] = *ro
	return nil
}

func (r roles) Delete(_ context.Context, id uint64) error {
	if _, ok := r.u.data.roles[id]; !ok {
		return notFound("role", id)
	}
	for _, set := range r.u.data.userRoles {
		delete(set, id)
	}
	delete(r.u.data.roles, id)
	return nil
}

// refresh tokens

type tokens struct{ u *unit }

func (r tokens) StoreRefresh(_ context.Context, t *model.RefreshToken) error {
	if _, ok := r.u.data.users[t.UserID]; !ok {
		return constraint("refresh token references missing user")
	}
	if _, dup := r.u.data.tokens[t.TokenHash]; dup {
		return fmt.Errorf("refresh token: %w", repository.ErrDuplicate)
	}
	t.ID = r.u.nextID("refresh_tokens")
	t.CreatedAt = r.u.now()
	r.u.data.tokens[t.TokenHash] = *t
	return nil
}

func (r tokens) ValidateRefresh(_ context.Context, tokenHash string) (string, error) {
	t, ok := r.u.data.tokens[tokenHash]
	if !ok || t.RevokedAt != nil || !r.u.now().Before(t.ExpiresAt) {
		return "", notFound("refresh token", "")
	}
	return t.UserID, nil
}

func (r tokens) RevokeByHash(_ context.Context, tokenHash string) error {
	t, ok := r.u.data.tokens[tokenHash]
	if !ok || t.RevokedAt != nil {
		return notFound("refresh token", "")
	}
	now := r.u.now()
	t.RevokedAt = &now
	r.u.data.tokens[tokenHash] = t
	return nil
}

func (r tokens) RevokeAllForUser(_ context.Context, userID string) error {
	now := r.u.now()
	for hash, t := range r.u.data.tokens {
		if t.UserID == userID && t.RevokedAt == nil {
			t.RevokedAt = &now
			r.u.data.tokens[hash] = t
		}
	}
	return nil
}
