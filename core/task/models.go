package task

import (
	"time"

	"github.com/trezcool/shule/core"
)

// Statuses
const (
	StatusIncomplete = "incomplete"
	StatusCompleted  = "completed"
)

var AllStatuses = []string{StatusIncomplete, StatusCompleted}

type Task struct {
	ID          int       `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	StartDate   core.Date `json:"start_date" db:"start_date"`
	EndDate     core.Date `json:"end_date" db:"end_date"`
	Status      string    `json:"status" db:"status"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"` // UTC
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"` // UTC
}

func (t Task) checkDates() error {
	var flds []core.FieldError
	if t.StartDate.IsZero() {
		flds = append(flds, core.FieldError{Field: "start_date", Error: "this field is required"})
	}
	if t.EndDate.IsZero() {
		flds = append(flds, core.FieldError{Field: "end_date", Error: "this field is required"})
	}
	if len(flds) > 0 {
		return core.NewValidationError(nil, flds...)
	}
	if t.StartDate.After(t.EndDate) {
		return core.NewValidationError(nil, core.FieldError{
			Field: "end_date",
			Error: "end_date must be on or after start_date",
		})
	}
	return nil
}

// NewTask contains information needed to create a new Task. Status defaults to incomplete.
type NewTask struct {
	Title       string    `json:"title" yaml:"title" validate:"required,notblank"`
	Description string    `json:"description" yaml:"description" validate:"required,notblank"`
	StartDate   core.Date `json:"start_date" yaml:"start_date" validate:"required"`
	EndDate     core.Date `json:"end_date" yaml:"end_date" validate:"required"`
	Status      string    `json:"status" yaml:"status" validate:"omitempty,oneof=incomplete completed"`
}

func (nt *NewTask) Clean() {
	nt.Title = core.CleanString(nt.Title)
	nt.Description = core.CleanString(nt.Description)
	nt.Status = core.CleanString(nt.Status, true /* lower */)
}

// UpdateTask defines what information may be provided to modify an existing Task.
type UpdateTask struct {
	Title       *string    `json:"title" validate:"omitempty,notblank"`
	Description *string    `json:"description" validate:"omitempty,notblank"`
	StartDate   *core.Date `json:"start_date"`
	EndDate     *core.Date `json:"end_date"`
	Status      *string    `json:"status" validate:"omitempty,oneof=incomplete completed"`
}

func (ut *UpdateTask) Clean() {
	core.CleanStringPtr(ut.Title)
	core.CleanStringPtr(ut.Description)
	core.CleanStringPtr(ut.Status, true /* lower */)
}

func (ut UpdateTask) IsEmpty() bool {
	return ut.Title == nil && ut.Description == nil && ut.StartDate == nil && ut.EndDate == nil && ut.Status == nil
}

func (ut UpdateTask) apply(t *Task) core.Changes {
	changes := make(core.Changes)
	if ut.Title != nil {
		t.Title = *ut.Title
		changes["title"] = t.Title
	}
	if ut.Description != nil {
		t.Description = *ut.Description
		changes["description"] = t.Description
	}
	if ut.StartDate != nil {
		t.StartDate = *ut.StartDate
		changes["start_date"] = t.StartDate
	}
	if ut.EndDate != nil {
		t.EndDate = *ut.EndDate
		changes["end_date"] = t.EndDate
	}
	if ut.Status != nil {
		t.Status = *ut.Status
		changes["status"] = t.Status
	}
	return changes
}
