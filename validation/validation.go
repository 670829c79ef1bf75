// Package validation checks translate requests before any lookup happens.
package validation

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"word-translate-backend/languages"
)

const (
	MissingFields = "Please provide both the word and target language."
	WordTooLong   = "Sorry, the word is longer than 100 characters."
)

type Request struct {
	Word     string `json:"word" validate:"required,max=100"`
	Language string `json:"language" validate:"required,supported_language"`
}

// Error carries the message shown to the client.
type Error struct {
	Message string
}

func (e *Error) Error() string { return e.Message }

func unsupported(lang string) *Error {
	return &Error{Message: fmt.Sprintf("Sorry, the language '%s' is not supported.", lang)}
}

type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	validate := validator.New()
	err := validate.RegisterValidation("supported_language", func(fl validator.FieldLevel) bool {
		_, ok := languages.Lookup(fl.Field().String())
		return ok
	})
	if err != nil {
		panic(err)
	}
	return &Validator{validate: validate}
}

// Validate normalizes req in place and returns the two-letter code of the
// requested language, or an *Error.
func (v *Validator) Validate(req *Request) (string, error) {
	req.Word = strings.TrimSpace(req.Word)
	req.Language = languages.Normalize(req.Language)

	if err := v.validate.Struct(req); err != nil {
		var fields validator.ValidationErrors
		if !errors.As(err, &fields) {
			return "", errors.Wrap(err, "validate request")
		}
		for _, fe := range fields {
			if fe.Tag() == "required" {
				return "", &Error{Message: MissingFields}
			}
		}
		if fields[0].Tag() == "max" {
			return "", &Error{Message: WordTooLong}
		}
		return "", unsupported(req.Language)
	}
	code, _ := languages.Lookup(req.Language)
	return code, nil
}
