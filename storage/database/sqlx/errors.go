package sqlxrepos

import (
	"database/sql"
	"strings"

	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"

	"github.com/trezcool/shule/core"
)

// integrity violations are pq error class 23
const pqIntegrityClass = "23"

// mapError turns engine integrity errors into a core.ConstraintError
// and wraps anything else with msg.
func mapError(err error, msg string) error {
	if err == nil {
		return nil
	}
	if detail, ok := constraintDetail(err); ok {
		return core.NewConstraintError("constraint violation: "+detail, err)
	}
	return errors.Wrap(err, msg)
}

func constraintDetail(err error) (string, bool) {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code.Class() == pqIntegrityClass {
		return pqErr.Message, true
	}
	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) && liteErr.Code == sqlite3.ErrConstraint {
		return liteErr.Error(), true
	}
	return "", false
}

// isUniqueViolation reports whether err is a unique violation on column of table.
func isUniqueViolation(err error, table, column string) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code.Name() == "unique_violation" && pqErr.Constraint == table+"_"+column+"_key"
	}
	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return liteErr.ExtendedCode == sqlite3.ErrConstraintUnique &&
			strings.Contains(liteErr.Error(), table+"."+column)
	}
	return false
}

// notFound maps sql.ErrNoRows to a core.NotFoundError.
func notFound(err error, entity core.Entity, id int) error {
	if errors.Is(err, sql.ErrNoRows) {
		return core.NewNotFoundError(entity, id)
	}
	return errors.Wrapf(err, "getting %s", entity)
}
