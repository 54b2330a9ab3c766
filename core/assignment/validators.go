package assignment

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/shule/core"
)

var (
	oneWorkTag  = "onework"
	oneWorkText = "exactly one of homework_id or task_id is required"

	oneWorkMaxTag  = "oneworkmax"
	oneWorkMaxText = "homework_id and task_id cannot both be set"
)

// InitValidators registers the assignment rules on v.
func InitValidators(v *core.Validator) {
	v.Register("assignment", func(validate *validator.Validate, translator ut.Translator) {
		validate.RegisterStructValidation(assignmentStructValidation, NewAssignment{}, UpdateAssignment{})
		core.RegisterCustomTranslation(validate, translator, oneWorkTag, oneWorkText)
		core.RegisterCustomTranslation(validate, translator, oneWorkMaxTag, oneWorkMaxText)
	})
}

// assignmentStructValidation enforces homework_id xor task_id.
func assignmentStructValidation(sl validator.StructLevel) {
	switch a := sl.Current().Interface().(type) {
	case NewAssignment:
		if a.HomeworkID.Valid == a.TaskID.Valid {
			sl.ReportError(a.HomeworkID, "homework_id", "HomeworkID", oneWorkTag, "")
		}
	case UpdateAssignment:
		if a.HomeworkID != nil && a.TaskID != nil {
			sl.ReportError(a.HomeworkID, "homework_id", "HomeworkID", oneWorkMaxTag, "")
		}
	}
}
