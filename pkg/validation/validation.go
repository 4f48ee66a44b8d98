package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

const (
	studentEmailTag  = "student_email"
	studentEmailText = "{0} must be a university student email"
)

var (
	mu         sync.RWMutex
	translator ut.Translator
)

// Register installs the custom tags and English messages on gin's
// validator. emailPattern backs the student_email tag.
func Register(emailPattern *regexp.Regexp) error {
	validate, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("validation: gin validator is not go-playground/validator")
	}

	english := en.New()
	uni := ut.New(english, english)
	trans, _ := uni.GetTranslator("en")
	if err := en_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return fmt.Errorf("validation: register translations: %w", err)
	}

	// report JSON / form names instead of Go field names
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, key := range []string{"json", "form"} {
			name := strings.SplitN(fld.Tag.Get(key), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return fld.Name
	})

	err := validate.RegisterValidation(studentEmailTag, func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(strings.ToLower(strings.TrimSpace(fl.Field().String())))
	})
	if err != nil {
		return fmt.Errorf("validation: register %s: %w", studentEmailTag, err)
	}
	_ = validate.RegisterTranslation(studentEmailTag, trans,
		func(t ut.Translator) error { return t.Add(studentEmailTag, studentEmailText, true) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(studentEmailTag, fe.Field())
			return s
		},
	)

	mu.Lock()
	translator = trans
	mu.Unlock()
	return nil
}

// Details renders a binding error as a single readable line. Errors that
// are not validation failures (bad JSON, wrong types) are returned as is.
func Details(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}

	mu.RLock()
	trans := translator
	mu.RUnlock()

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if trans != nil {
			msgs = append(msgs, fe.Translate(trans))
		} else {
			msgs = append(msgs, fe.Error())
		}
	}
	return strings.Join(msgs, "; ")
}

// IsStudentEmailFailure reports whether err is a failed student_email check.
func IsStudentEmailFailure(err error) bool {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return false
	}
	for _, fe := range verrs {
		if fe.Tag() == studentEmailTag {
			return true
		}
	}
	return false
}
