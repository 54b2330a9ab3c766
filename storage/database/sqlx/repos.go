package sqlxrepos

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/kat-co/vala"
	"github.com/pkg/errors"

	"github.com/trezcool/shule/core"
)

// tables maps every entity to the table holding it.
var tables = map[core.Entity]string{
	core.EntityUser:       "users",
	core.EntityStudent:    "students",
	core.EntityHomework:   "homework",
	core.EntityTask:       "tasks",
	core.EntityAssignment: "assignments",
}

// Options tune the repositories.
type Options struct {
	DeletePolicy core.DeletePolicy
	Logger       core.Logger
}

// dbtx is satisfied by *sqlx.Conn and *sqlx.Tx.
type dbtx interface {
	sqlx.QueryerContext
	sqlx.ExecerContext
}

type base struct {
	db   *sqlx.DB
	sb   sq.StatementBuilderType
	opts Options
	*Resolver
}

func newBase(db *sqlx.DB, opts Options) base {
	vala.BeginValidation().Validate(
		vala.IsNotNil(db, "db"),
		vala.IsNotNil(opts.Logger, "opts.Logger"),
	).CheckAndPanic()

	if opts.DeletePolicy == "" {
		opts.DeletePolicy = core.DeleteRestrict
	}
	rs := NewResolver(db)
	return base{db: db, sb: rs.sb, opts: opts, Resolver: rs}
}

func placeholderFormat(driverName string) sq.PlaceholderFormat {
	if driverName == "postgres" {
		return sq.Dollar
	}
	return sq.Question
}

// withConn runs fn on a dedicated connection, released on every exit path.
func withConn(ctx context.Context, db *sqlx.DB, fn func(conn *sqlx.Conn) error) error {
	conn, err := db.Connx(ctx)
	if err != nil {
		return errors.Wrap(err, "acquiring connection")
	}
	defer func() { _ = conn.Close() }()
	return fn(conn)
}

func (b base) withConn(ctx context.Context, fn func(conn *sqlx.Conn) error) error {
	return withConn(ctx, b.db, fn)
}

func get(ctx context.Context, q dbtx, dest interface{}, query sq.Sqlizer) error {
	stmt, args, err := query.ToSql()
	if err != nil {
		return errors.Wrap(err, "building query")
	}
	return sqlx.GetContext(ctx, q, dest, stmt, args...)
}

func sel(ctx context.Context, q dbtx, dest interface{}, query sq.Sqlizer) error {
	stmt, args, err := query.ToSql()
	if err != nil {
		return errors.Wrap(err, "building query")
	}
	return sqlx.SelectContext(ctx, q, dest, stmt, args...)
}

func exec(ctx context.Context, q dbtx, query sq.Sqlizer) (sql.Result, error) {
	stmt, args, err := query.ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "building query")
	}
	return q.ExecContext(ctx, stmt, args...)
}

func (b base) count(ctx context.Context, q dbtx, table string, where sq.Sqlizer) (int, error) {
	var n int
	err := get(ctx, q, &n, b.sb.Select("COUNT(*)").From(table).Where(where))
	return n, errors.Wrapf(err, "counting %s", table)
}

// mustExist returns a core.NotFoundError unless the row exists.
func (b base) mustExist(ctx context.Context, q dbtx, entity core.Entity, id int) error {
	n, err := b.count(ctx, q, tables[entity], sq.Eq{"id": id})
	if err != nil {
		return err
	}
	if n == 0 {
		return core.NewNotFoundError(entity, id)
	}
	return nil
}

// insert resolves refs then writes values, returning the new id.
func (b base) insert(ctx context.Context, entity core.Entity, values map[string]interface{}, refs ...core.Ref) (int, error) {
	var id int
	err := b.withConn(ctx, func(conn *sqlx.Conn) error {
		if err := b.resolve(ctx, conn, refs...); err != nil {
			return err
		}
		query := b.sb.Insert(tables[entity]).SetMap(values).Suffix("RETURNING id")
		return mapError(get(ctx, conn, &id, query), "inserting "+string(entity))
	})
	return id, err
}

// getByID loads the row with the given id into dest.
func (b base) getByID(ctx context.Context, entity core.Entity, id int, cols []string, dest interface{}) error {
	return b.withConn(ctx, func(conn *sqlx.Conn) error {
		return b.getOn(ctx, conn, entity, id, cols, dest)
	})
}

func (b base) getOn(ctx context.Context, q dbtx, entity core.Entity, id int, cols []string, dest interface{}) error {
	query := b.sb.Select(cols...).From(tables[entity]).Where(sq.Eq{"id": id})
	if err := get(ctx, q, dest, query); err != nil {
		return notFound(err, entity, id)
	}
	return nil
}

// query loads every row of entity matching where (nil for all) in id order.
func (b base) query(ctx context.Context, entity core.Entity, cols []string, where sq.Sqlizer, dest interface{}) error {
	return b.withConn(ctx, func(conn *sqlx.Conn) error {
		query := b.sb.Select(cols...).From(tables[entity]).OrderBy("id")
		if where != nil {
			query = query.Where(where)
		}
		return errors.Wrapf(sel(ctx, conn, dest, query), "querying %s", tables[entity])
	})
}

// update checks the row exists, resolves refs, writes changes then reloads the row into dest.
func (b base) update(
	ctx context.Context,
	entity core.Entity,
	id int,
	changes core.Changes,
	cols []string,
	dest interface{},
	refs ...core.Ref,
) error {
	return b.withConn(ctx, func(conn *sqlx.Conn) error {
		if err := b.mustExist(ctx, conn, entity, id); err != nil {
			return err
		}
		if err := b.resolve(ctx, conn, refs...); err != nil {
			return err
		}
		query := b.sb.Update(tables[entity]).SetMap(changes).Where(sq.Eq{"id": id})
		if _, err := exec(ctx, conn, query); err != nil {
			return mapError(err, "updating "+string(entity))
		}
		return b.getOn(ctx, conn, entity, id, cols, dest)
	})
}
