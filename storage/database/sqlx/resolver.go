package sqlxrepos

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/shule/core"
)

// Resolver checks that references point at existing rows.
// A reference is valid iff exactly one row of its entity has the id (and the role, if any).
type Resolver struct {
	db *sqlx.DB
	sb sq.StatementBuilderType
}

func NewResolver(db *sqlx.DB) *Resolver {
	return &Resolver{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(placeholderFormat(db.DriverName())),
	}
}

// Resolve checks refs on a connection of its own.
func (rs *Resolver) Resolve(ctx context.Context, refs ...core.Ref) error {
	if len(refs) == 0 {
		return nil
	}
	return withConn(ctx, rs.db, func(conn *sqlx.Conn) error {
		return rs.resolve(ctx, conn, refs...)
	})
}

// resolve returns a core.ValidationError holding one FieldError per unresolved ref.
func (rs *Resolver) resolve(ctx context.Context, q dbtx, refs ...core.Ref) error {
	var flds []core.FieldError
	for _, ref := range refs {
		ok, err := rs.exists(ctx, q, ref)
		if err != nil {
			return err
		}
		if !ok {
			flds = append(flds, core.FieldError{
				Field: ref.Field,
				Error: fmt.Sprintf("invalid %s: no such %s exists", ref.Field, ref.Noun()),
			})
		}
	}
	if len(flds) > 0 {
		return core.NewValidationError(nil, flds...)
	}
	return nil
}

func (rs *Resolver) exists(ctx context.Context, q dbtx, ref core.Ref) (bool, error) {
	table, ok := tables[ref.Entity]
	if !ok {
		return false, errors.Errorf("resolving %s: unknown entity %q", ref.Field, ref.Entity)
	}
	where := sq.Eq{"id": ref.ID}
	if ref.Role != "" {
		where["role"] = ref.Role
	}

	var n int
	if err := get(ctx, q, &n, rs.sb.Select("COUNT(*)").From(table).Where(where)); err != nil {
		return false, errors.Wrapf(err, "resolving %s", ref.Field)
	}
	return n == 1, nil
}
