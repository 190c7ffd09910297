package repository

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/office-seating/internal/model"
)

const userColumns = `id, email, user_name, password_hash, first_name, last_name, display_name, job_title,
       department, phone_number, photo_url, is_active, created_at, updated_at`

type userRepo struct {
	*table[model.User, string]
}

func newUserRepo(q querier, now Clock) *userRepo {
	return &userRepo{&table[model.User, string]{
		q:    q,
		now:  now,
		name: "users",
		columns: []string{"email", "user_name", "password_hash", "first_name", "last_name", "display_name",
			"job_title", "department", "phone_number", "photo_url", "is_active"},
		selectSQL: "SELECT " + userColumns + " FROM users",
		idColumn:  "id",
		orderBy:   "display_name, email",
		scan: func(r rowScanner, u *model.User) error {
			return r.Scan(&u.ID, &u.Email, &u.UserName, &u.PasswordHash, &u.FirstName, &u.LastName, &u.DisplayName,
				&u.JobTitle, &u.Department, &u.PhoneNumber, &u.PhotoURL, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
		},
		values: func(u *model.User) []any {
			return []any{u.Email, u.UserName, u.PasswordHash, u.FirstName, u.LastName, u.DisplayName,
				u.JobTitle, u.Department, u.PhoneNumber, u.PhotoURL, u.IsActive}
		},
		key:    func(u *model.User) string { return u.ID },
		stamps: func(u *model.User) (*time.Time, *time.Time) { return &u.CreatedAt, &u.UpdatedAt },
	}}
}

// Add normalizes the email and assigns a UUID when the caller did not.
func (r *userRepo) Add(ctx context.Context, u *model.User) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	u.Email = normalizeEmail(u.Email)
	if u.UserName == "" {
		u.UserName = u.Email
	}
	return r.table.Add(ctx, u)
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var u model.User
	row := r.q.QueryRowContext(ctx, r.selectSQL+" WHERE email = ? LIMIT 1", normalizeEmail(email))
	if err := r.scan(row, &u); err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (r *userRepo) Search(ctx context.Context, f UserFilter) ([]model.User, error) {
	var (
		conds []string
		args  []any
	)
	if term := strings.TrimSpace(f.Term); term != "" {
		like := "%" + escapeLike(term) + "%"
		conds = append(conds, `(first_name LIKE ? OR last_name LIKE ? OR display_name LIKE ?
      OR email LIKE ? OR department LIKE ? OR job_title LIKE ?)`)
		args = append(args, like, like, like, like, like, like)
	}
	if dep := strings.TrimSpace(f.Department); dep != "" {
		conds = append(conds, "department = ?")
		args = append(args, dep)
	}
	if f.HasSeat != nil {
		exists := "EXISTS (SELECT 1 FROM seats s WHERE s.assigned_user_id = users.id)"
		if !*f.HasSeat {
			exists = "NOT " + exists
		}
		conds = append(conds, exists)
	}
	return r.where(ctx, strings.Join(conds, " AND "), args...)
}

func (r *userRepo) Roles(ctx context.Context, userID string) ([]string, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT r.name FROM roles r JOIN user_roles ur ON ur.role_id = r.id WHERE ur.user_id = ? ORDER BY r.name`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	roles := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		roles = append(roles, name)
	}
	return roles, rows.Err()
}

func (r *userRepo) RolesByUser(ctx context.Context) (map[string][]string, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT ur.user_id, r.name FROM user_roles ur JOIN roles r ON r.id = ur.role_id ORDER BY r.name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := map[string][]string{}
	for rows.Next() {
		var userID, name string
		if err := rows.Scan(&userID, &name); err != nil {
			return nil, err
		}
		out[userID] = append(out[userID], name)
	}
	return out, rows.Err()
}

func (r *userRepo) AddRole(ctx context.Context, userID string, roleID uint64) error {
	_, err := r.q.ExecContext(ctx, "INSERT INTO user_roles (user_id, role_id) VALUES (?, ?)", userID, roleID)
	return translate(err)
}

func (r *userRepo) RemoveRole(ctx context.Context, userID string, roleID uint64) error {
	res, err := r.q.ExecContext(ctx, "DELETE FROM user_roles WHERE user_id = ? AND role_id = ?", userID, roleID)
	if err != nil {
		return translate(err)
	}
	return affected(res)
}

func normalizeEmail(email string) string { return strings.ToLower(strings.TrimSpace(email)) }

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string { return likeEscaper.Replace(s) }
