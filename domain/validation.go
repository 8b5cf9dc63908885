package domain

import (
	"errors"
	"github.com/go-playground/validator/v10"
	"reflect"
	"strings"
)

// field messages keyed by json name
var fieldMessages = map[string]string{
	"name":   "Please enter your name",
	"player": "Please enter your player name",
	"score":  "Please enter a valid score",
}

type ValidationError struct {
	Type     string `json:"type"`
	Value    string `json:"value"`
	Msg      string `json:"msg"`
	Path     string `json:"path"`
	Location string `json:"location"`
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	msgs := make([]string, 0, len(v))
	for _, e := range v {
		msgs = append(msgs, e.Path+": "+e.Msg)
	}
	return "invalid player: " + strings.Join(msgs, "; ")
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks presence only. Whitespace counts as a value and score has
// no format.
func (p NewPlayer) Validate() error {
	err := validate.Struct(p)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	out := make(ValidationErrors, 0, len(verrs))
	for _, fe := range verrs {
		msg, ok := fieldMessages[fe.Field()]
		if !ok {
			msg = "Invalid value"
		}
		value, _ := fe.Value().(string)
		out = append(out, ValidationError{
			Type:     "field",
			Value:    value,
			Msg:      msg,
			Path:     fe.Field(),
			Location: "body",
		})
	}
	return out
}
