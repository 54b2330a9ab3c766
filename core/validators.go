package core

import (
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"
)

var (
	// custom validation tags & texts
	notBlankTag  = "notblank"
	notBlankText = "this field cannot be blank"

	requiredTag     = "required"
	requiredWithTag = "required_with"
	requiredText    = "this field is required"

	oneOfTag  = "oneof"
	oneOfText = "must be one of: {0}"
)

// Validator wraps a validator.Validate and its english translator.
// Entity packages register their own rules once through Register.
type Validator struct {
	validate   *validator.Validate
	translator ut.Translator

	mu         sync.Mutex
	registered map[string]bool
}

func NewValidator() *Validator {
	v := &Validator{
		validate:   validator.New(),
		translator: NewTranslator(),
		registered: make(map[string]bool),
	}
	InitValidators(v.validate, v.translator)
	return v
}

func NewTranslator() ut.Translator {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	return translator
}

// Register runs fn once per Validator for the given name.
func (v *Validator) Register(name string, fn func(validate *validator.Validate, translator ut.Translator)) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.registered[name] {
		return
	}
	fn(v.validate, v.translator)
	v.registered[name] = true
}

func (v *Validator) Translator() ut.Translator { return v.translator }

// Struct validates s and converts any validator.ValidationErrors into a *ValidationError
// holding one translated FieldError per failing field.
func (v *Validator) Struct(s interface{}) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}
	var vErrs validator.ValidationErrors
	if !errors.As(err, &vErrs) {
		return errors.Wrap(err, "validating struct")
	}
	return v.Translate(vErrs)
}

// Translate converts validator.ValidationErrors into a *ValidationError.
func (v *Validator) Translate(vErrs validator.ValidationErrors) error {
	flds := make([]FieldError, 0, len(vErrs))
	for _, vErr := range vErrs {
		flds = append(flds, FieldError{Field: vErr.Field(), Error: vErr.Translate(v.translator)})
	}
	return NewValidationError(nil, flds...)
}

// InitValidators sets up the validator for use.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = en_translations.RegisterDefaultTranslations(validate, translator)

	// Use JSON tag names for errors instead of Go struct names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// validate the underlying values of nullable types
	validate.RegisterCustomTypeFunc(nullValuer, null.Int{}, null.String{})
	validate.RegisterCustomTypeFunc(dateValuer, Date{})

	// register custom validators
	_ = validate.RegisterValidation(notBlankTag, notBlankValidation)
	RegisterCustomTranslation(validate, translator, notBlankTag, notBlankText)

	RegisterCustomTranslation(validate, translator, requiredTag, requiredText, true)
	RegisterCustomTranslation(validate, translator, requiredWithTag, requiredText, true)
	_ = validate.RegisterTranslation(
		oneOfTag, translator,
		func(t ut.Translator) error { return t.Add(oneOfTag, oneOfText, true) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(oneOfTag, fe.Param())
			return s
		},
	)
}

// RegisterCustomTranslation registers a custom translation for the specified validation tag.
func RegisterCustomTranslation(validate *validator.Validate, translator ut.Translator, tag, text string, override ...bool) {
	var ovrd bool
	if len(override) > 0 {
		ovrd = override[0]
	}
	_ = validate.RegisterTranslation(
		tag, translator,
		func(t ut.Translator) error { return t.Add(tag, text, ovrd) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(tag, fe.Field())
			return s
		},
	)
}

// Custom Global Validators

// notBlankValidation rejects strings made of whitespace only.
func notBlankValidation(fl validator.FieldLevel) bool {
	if str, ok := fl.Field().Interface().(string); ok {
		return strings.TrimSpace(str) != ""
	}
	return false
}

func nullValuer(field reflect.Value) interface{} {
	switch v := field.Interface().(type) {
	case null.Int:
		if v.Valid {
			return v.Int
		}
	case null.String:
		if v.Valid {
			return v.String
		}
	}
	return nil
}

func dateValuer(field reflect.Value) interface{} {
	if d, ok := field.Interface().(Date); ok && !d.IsZero() {
		return d.String()
	}
	return nil
}
