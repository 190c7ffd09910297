// Package repository is the persistence layer: one repository per entity,
// all bound to a single transaction through a UnitOfWork.
package repository

import (
	"database/sql"
	"errors"

	"github.com/go-sql-driver/mysql"
)

// ErrNotFound is returned when a lookup, update or delete matches no row.
var ErrNotFound = errors.New("not found")

// ErrDuplicate is returned when an insert violates a unique key, for
// example a second account with the same email.
var ErrDuplicate = errors.New("duplicate key")

// ErrConstraint is returned when a write violates a foreign key, such as
// deleting a user still referenced by seat history.
var ErrConstraint = errors.New("constraint violation")

// MySQL server error numbers mapped to the sentinels above.
const (
	mysqlDupEntry        = 1062
	mysqlRowIsReferenced = 1451
	mysqlNoReferencedRow = 1452
)

// translate maps driver errors onto the package sentinels and leaves
// anything else untouched.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		switch me.Number {
		case mysqlDupEntry:
			return errors.Join(ErrDuplicate, err)
		case mysqlRowIsReferenced, mysqlNoReferencedRow:
			return errors.Join(ErrConstraint, err)
		}
	}
	return err
}
