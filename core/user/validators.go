package user

import (
	"fmt"
	"strings"
	"unicode"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pmezard/go-difflib/difflib"

	"github.com/trezcool/shule/core"
)

var (
	// password policy
	pwdMinLen     = 8
	pwdMinLenTag  = "pwdminlen"
	pwdMinLenText = fmt.Sprintf("password must contain at least %d characters", pwdMinLen)

	pwdNoSpaceTag  = "pwdnospace"
	pwdNoSpaceText = "password must not contain whitespace"

	pwdMaxSim      = .7
	pwdAttrSimTag  = "pwdtoosim"
	pwdAttrSimText = "password cannot be similar to user attributes"
)

// InitValidators registers the user rules on v.
func InitValidators(v *core.Validator) {
	v.Register("user", func(validate *validator.Validate, translator ut.Translator) {
		validate.RegisterStructValidation(userStructValidation, NewUser{}, UpdateUser{})
		core.RegisterCustomTranslation(validate, translator, pwdMinLenTag, pwdMinLenText)
		core.RegisterCustomTranslation(validate, translator, pwdNoSpaceTag, pwdNoSpaceText)
		core.RegisterCustomTranslation(validate, translator, pwdAttrSimTag, pwdAttrSimText)
	})
}

// userStructValidation does struct level validation on NewUser and UpdateUser structs.
func userStructValidation(sl validator.StructLevel) {
	switch usr := sl.Current().Interface().(type) {
	case NewUser:
		if usr.Password != "" {
			validatePassword(usr.Password, usr.Name, usr.Email, sl)
		}
	case UpdateUser:
		if usr.Password != nil {
			var name, email string
			if usr.Name != nil {
				name = *usr.Name
			}
			if usr.Email != nil {
				email = *usr.Email
			}
			validatePassword(*usr.Password, name, email, sl)
		}
	}
}

// validatePassword applies the password policy to provided password:
// - minLen: 8
// - no whitespace
// - no user attrs similarity
func validatePassword(pwd, name, email string, sl validator.StructLevel) {
	reportErr := func(tag string) {
		sl.ReportError(pwd, "password", "Password", tag, "")
	}

	if len(pwd) < pwdMinLen {
		reportErr(pwdMinLenTag)
		return
	}
	for _, char := range pwd {
		if unicode.IsSpace(char) {
			reportErr(pwdNoSpaceTag)
			return
		}
	}

	getRatio := func(pass, usrAttr string) float64 {
		if usrAttr == "" {
			return 0
		}
		return difflib.NewMatcher(strings.Split(pass, ""), strings.Split(usrAttr, "")).QuickRatio()
	}
	lpwd := strings.ToLower(pwd)
	if getRatio(lpwd, strings.ToLower(name)) >= pwdMaxSim || getRatio(lpwd, email) >= pwdMaxSim {
		reportErr(pwdAttrSimTag)
	}
}
