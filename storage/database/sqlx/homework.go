package sqlxrepos

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/homework"
)

var homeworkColumns = []string{
	"id", "title", "description", "chapter_start", "chapter_end", "verse_start", "verse_end",
	"due_date", "status", "created_at", "updated_at",
}

type homeworkRepository struct {
	base
}

var _ homework.Repository = (*homeworkRepository)(nil) // interface compliance check

func NewHomeworkRepository(db *sqlx.DB, opts Options) *homeworkRepository {
	return &homeworkRepository{base: newBase(db, opts)}
}

func (repo *homeworkRepository) CreateHomework(ctx context.Context, hw homework.Homework) (homework.Homework, error) {
	id, err := repo.insert(ctx, core.EntityHomework, map[string]interface{}{
		"title":         hw.Title,
		"description":   hw.Description,
		"chapter_start": hw.ChapterStart,
		"chapter_end":   hw.ChapterEnd,
		"verse_start":   hw.VerseStart,
		"verse_end":     hw.VerseEnd,
		"due_date":      hw.DueDate,
		"status":        hw.Status,
		"created_at":    hw.CreatedAt,
		"updated_at":    hw.UpdatedAt,
	})
	if err != nil {
		return homework.Homework{}, err
	}
	hw.ID = id
	return hw, nil
}

func (repo *homeworkRepository) QueryHomework(ctx context.Context) ([]homework.Homework, error) {
	hws := make([]homework.Homework, 0)
	err := repo.query(ctx, core.EntityHomework, homeworkColumns, nil, &hws)
	return hws, err
}

func (repo *homeworkRepository) GetHomeworkByID(ctx context.Context, id int) (homework.Homework, error) {
	var hw homework.Homework
	err := repo.getByID(ctx, core.EntityHomework, id, homeworkColumns, &hw)
	return hw, err
}

func (repo *homeworkRepository) UpdateHomework(ctx context.Context, id int, changes core.Changes) (homework.Homework, error) {
	var hw homework.Homework
	if err := repo.update(ctx, core.EntityHomework, id, changes, homeworkColumns, &hw); err != nil {
		return homework.Homework{}, err
	}
	return hw, nil
}

func (repo *homeworkRepository) DeleteHomework(ctx context.Context, id int) error {
	return repo.deleteRow(ctx, core.EntityHomework, id)
}
