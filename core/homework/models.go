package homework

import (
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/trezcool/shule/core"
)

// Statuses
const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
)

var AllStatuses = []string{StatusPending, StatusCompleted}

// Homework is a reading assignment scoped by chapter & verse ranges.
type Homework struct {
	ID           int       `json:"id" db:"id"`
	Title        string    `json:"title" db:"title"`
	Description  string    `json:"description" db:"description"`
	ChapterStart null.Int  `json:"chapter_start" db:"chapter_start"`
	ChapterEnd   null.Int  `json:"chapter_end" db:"chapter_end"`
	VerseStart   null.Int  `json:"verse_start" db:"verse_start"`
	VerseEnd     null.Int  `json:"verse_end" db:"verse_end"`
	DueDate      core.Date `json:"due_date" db:"due_date"`
	Status       string    `json:"status" db:"status"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"` // UTC
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"` // UTC
}

// check reports a missing due date, non-positive bounds and reading ranges that run backwards.
// Verses are only compared when the range stays within one chapter.
func (hw Homework) check() error {
	var flds []core.FieldError
	if hw.DueDate.IsZero() {
		flds = append(flds, core.FieldError{Field: "due_date", Error: "this field is required"})
	}
	for _, bound := range []struct {
		field string
		val   null.Int
	}{
		{"chapter_start", hw.ChapterStart},
		{"chapter_end", hw.ChapterEnd},
		{"verse_start", hw.VerseStart},
		{"verse_end", hw.VerseEnd},
	} {
		if bound.val.Valid && bound.val.Int < 1 {
			flds = append(flds, core.FieldError{Field: bound.field, Error: bound.field + " must be 1 or greater"})
		}
	}
	if len(flds) > 0 {
		return core.NewValidationError(nil, flds...)
	}

	if hw.ChapterStart.Valid && hw.ChapterEnd.Valid && hw.ChapterStart.Int > hw.ChapterEnd.Int {
		flds = append(flds, core.FieldError{
			Field: "chapter_end",
			Error: "chapter_end must be greater than or equal to chapter_start",
		})
	}
	sameChapter := !(hw.ChapterStart.Valid && hw.ChapterEnd.Valid) || hw.ChapterStart.Int == hw.ChapterEnd.Int
	if sameChapter && hw.VerseStart.Valid && hw.VerseEnd.Valid && hw.VerseStart.Int > hw.VerseEnd.Int {
		flds = append(flds, core.FieldError{
			Field: "verse_end",
			Error: "verse_end must be greater than or equal to verse_start",
		})
	}
	if len(flds) > 0 {
		return core.NewValidationError(nil, flds...)
	}
	return nil
}

// NewHomework contains information needed to create a new Homework.
// DueDate defaults to today and Status to pending.
type NewHomework struct {
	Title        string    `json:"title" yaml:"title" validate:"required,notblank"`
	Description  string    `json:"description" yaml:"description" validate:"required,notblank"`
	ChapterStart null.Int  `json:"chapter_start" yaml:"chapter_start"`
	ChapterEnd   null.Int  `json:"chapter_end" yaml:"chapter_end"`
	VerseStart   null.Int  `json:"verse_start" yaml:"verse_start"`
	VerseEnd     null.Int  `json:"verse_end" yaml:"verse_end"`
	DueDate      core.Date `json:"due_date" yaml:"due_date"`
	Status       string    `json:"status" yaml:"status" validate:"omitempty,oneof=pending completed"`
}

func (nh *NewHomework) Clean() {
	nh.Title = core.CleanString(nh.Title)
	nh.Description = core.CleanString(nh.Description)
	nh.Status = core.CleanString(nh.Status, true /* lower */)
}

// UpdateHomework defines what information may be provided to modify an existing Homework.
// nil fields are left untouched.
type UpdateHomework struct {
	Title        *string    `json:"title" validate:"omitempty,notblank"`
	Description  *string    `json:"description" validate:"omitempty,notblank"`
	ChapterStart *int       `json:"chapter_start" validate:"omitempty,min=1"`
	ChapterEnd   *int       `json:"chapter_end" validate:"omitempty,min=1"`
	VerseStart   *int       `json:"verse_start" validate:"omitempty,min=1"`
	VerseEnd     *int       `json:"verse_end" validate:"omitempty,min=1"`
	DueDate      *core.Date `json:"due_date"`
	Status       *string    `json:"status" validate:"omitempty,oneof=pending completed"`
}

func (uh *UpdateHomework) Clean() {
	core.CleanStringPtr(uh.Title)
	core.CleanStringPtr(uh.Description)
	core.CleanStringPtr(uh.Status, true /* lower */)
}

func (uh UpdateHomework) IsEmpty() bool {
	return uh.Title == nil && uh.Description == nil &&
		uh.ChapterStart == nil && uh.ChapterEnd == nil && uh.VerseStart == nil && uh.VerseEnd == nil &&
		uh.DueDate == nil && uh.Status == nil
}

// apply writes the supplied fields onto hw and returns the matching column changes.
func (uh UpdateHomework) apply(hw *Homework) core.Changes {
	changes := make(core.Changes)
	if uh.Title != nil {
		hw.Title = *uh.Title
		changes["title"] = hw.Title
	}
	if uh.Description != nil {
		hw.Description = *uh.Description
		changes["description"] = hw.Description
	}
	if uh.ChapterStart != nil {
		hw.ChapterStart = null.IntFrom(*uh.ChapterStart)
		changes["chapter_start"] = hw.ChapterStart
	}
	if uh.ChapterEnd != nil {
		hw.ChapterEnd = null.IntFrom(*uh.ChapterEnd)
		changes["chapter_end"] = hw.ChapterEnd
	}
	if uh.VerseStart != nil {
		hw.VerseStart = null.IntFrom(*uh.VerseStart)
		changes["verse_start"] = hw.VerseStart
	}
	if uh.VerseEnd != nil {
		hw.VerseEnd = null.IntFrom(*uh.VerseEnd)
		changes["verse_end"] = hw.VerseEnd
	}
	if uh.DueDate != nil {
		hw.DueDate = *uh.DueDate
		changes["due_date"] = hw.DueDate
	}
	if uh.Status != nil {
		hw.Status = *uh.Status
		changes["status"] = hw.Status
	}
	return changes
}
