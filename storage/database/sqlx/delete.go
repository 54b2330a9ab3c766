package sqlxrepos

import (
	"context"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/shule/core"
)

// dependent is a column of entity referencing another row.
type dependent struct {
	entity core.Entity
	column string
}

// dependents lists the rows referencing each entity.
var dependents = map[core.Entity][]dependent{
	core.EntityUser: {
		{entity: core.EntityStudent, column: "parent_id"},
		{entity: core.EntityStudent, column: "teacher_id"},
	},
	core.EntityStudent:  {{entity: core.EntityAssignment, column: "student_id"}},
	core.EntityHomework: {{entity: core.EntityAssignment, column: "homework_id"}},
	core.EntityTask:     {{entity: core.EntityAssignment, column: "task_id"}},
}

// deleteRow removes the row with the given id, handling its dependents per the configured policy.
func (b base) deleteRow(ctx context.Context, entity core.Entity, id int) error {
	return b.withConn(ctx, func(conn *sqlx.Conn) error {
		if err := b.mustExist(ctx, conn, entity, id); err != nil {
			return err
		}

		switch b.opts.DeletePolicy {
		case core.DeleteCascade:
			return b.deleteCascade(ctx, conn, entity, id)
		case core.DeleteIgnore:
			refs, err := b.countDependents(ctx, conn, entity, id)
			if err != nil {
				return err
			}
			if len(refs) > 0 {
				b.opts.Logger.Warn(
					fmt.Sprintf("deleting referenced %s, leaving dangling references", entity),
					map[string]interface{}{"id": id, "dependents": refs},
				)
			}
			return b.deleteIDs(ctx, conn, entity, id)
		default: // core.DeleteRestrict
			refs, err := b.countDependents(ctx, conn, entity, id)
			if err != nil {
				return err
			}
			if len(refs) > 0 {
				return core.NewConstraintError(fmt.Sprintf("cannot delete %s: still referenced by %s", entity, refs), nil)
			}
			return b.deleteIDs(ctx, conn, entity, id)
		}
	})
}

// dependentCounts maps a dependent entity to how many of its rows reference a row.
type dependentCounts map[core.Entity]int

func (dc dependentCounts) String() string {
	parts := make([]string, 0, len(dc))
	for _, ent := range []core.Entity{core.EntityStudent, core.EntityAssignment} {
		if n := dc[ent]; n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s(s)", n, ent))
		}
	}
	return strings.Join(parts, ", ")
}

func (b base) countDependents(ctx context.Context, q dbtx, entity core.Entity, id int) (dependentCounts, error) {
	counts := make(dependentCounts)
	for _, dep := range dependents[entity] {
		n, err := b.count(ctx, q, tables[dep.entity], sq.Eq{dep.column: id})
		if err != nil {
			return nil, err
		}
		if n > 0 {
			counts[dep.entity] += n
		}
	}
	return counts, nil
}

// deleteCascade deletes the row and everything referencing it, deepest first, in one transaction.
func (b base) deleteCascade(ctx context.Context, conn *sqlx.Conn, entity core.Entity, id int) error {
	tx, err := conn.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "beginning transaction")
	}
	defer func() { _ = tx.Rollback() }()

	if err = b.cascade(ctx, tx, entity, []int{id}); err != nil {
		return err
	}
	if err = b.deleteIDs(ctx, tx, entity, id); err != nil {
		return err
	}
	return errors.Wrap(tx.Commit(), "committing transaction")
}

// cascade deletes the dependents of the given rows.
func (b base) cascade(ctx context.Context, q dbtx, entity core.Entity, ids []int) error {
	for _, dep := range dependents[entity] {
		var depIDs []int
		query := b.sb.Select("id").From(tables[dep.entity]).Where(sq.Eq{dep.column: ids})
		if err := sel(ctx, q, &depIDs, query); err != nil {
			return errors.Wrapf(err, "listing %s dependents", entity)
		}
		if len(depIDs) == 0 {
			continue
		}
		if err := b.cascade(ctx, q, dep.entity, depIDs); err != nil {
			return err
		}
		if err := b.deleteIDs(ctx, q, dep.entity, depIDs...); err != nil {
			return err
		}
	}
	return nil
}

func (b base) deleteIDs(ctx context.Context, q dbtx, entity core.Entity, ids ...int) error {
	res, err := exec(ctx, q, b.sb.Delete(tables[entity]).Where(sq.Eq{"id": ids}))
	if err != nil {
		return mapError(err, "deleting "+string(entity))
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return core.NewNotFoundError(entity, ids[0])
	}
	return nil
}
