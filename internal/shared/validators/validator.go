package validators

import (
	"github.com/go-playground/validator/v10"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

const (
	TagCron     = "cron"
	TagLogLevel = "loglevel"
)

// Validate is a type alias for validator.Validate.
type Validate = validator.Validate

// ValidationErrors is a type alias for validator.ValidationErrors.
type ValidationErrors = validator.ValidationErrors

// FieldError is a type alias for validator.FieldError.
type FieldError = validator.FieldError

var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// New creates a new validator instance with the project tags registered:
// "cron" accepts a standard 5-field cron expression and "loglevel" a level
// name zerolog understands.
func New() *Validate {
	validate := validator.New()
	_ = validate.RegisterValidation(TagCron, func(fl validator.FieldLevel) bool {
		_, err := cronParser.Parse(fl.Field().String())
		return err == nil
	})
	_ = validate.RegisterValidation(TagLogLevel, func(fl validator.FieldLevel) bool {
		_, err := zerolog.ParseLevel(fl.Field().String())
		return err == nil
	})
	return validate
}
