package service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/hrms-lite-console/internal/models"
	appErrors "github.com/noah-isme/hrms-lite-console/pkg/errors"
)

var fieldLabels = map[string]string{
	"employee_id": "Employee ID",
	"full_name":   "Full name",
	"email":       "Email",
	"department":  "Department",
	"date":        "Date",
	"status":      "Status",
}

// NewValidator returns a validator that reports JSON field names and knows
// the notfuture tag. now decides what "today" is.
func NewValidator(now func() time.Time) *validator.Validate {
	if now == nil {
		now = time.Now
	}
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})
	_ = v.RegisterValidation("notfuture", func(fl validator.FieldLevel) bool {
		day, err := time.ParseInLocation(models.DateLayout, fl.Field().String(), time.Local)
		if err != nil {
			// format errors belong to the datetime tag
			return true
		}
		y, m, d := now().Date()
		today := time.Date(y, m, d, 0, 0, 0, 0, time.Local)
		return !day.After(today)
	})
	return v
}

// validationError converts validator output into a VALIDATION_ERROR carrying
// one message per field. The first message doubles as the form banner.
func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, appErrors.ErrValidation.Message)
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		if _, seen := fields[fe.Field()]; seen {
			continue
		}
		fields[fe.Field()] = fieldMessage(fe)
	}
	appErr := appErrors.Clone(appErrors.ErrValidation, fieldMessage(verrs[0]))
	appErr.Fields = fields
	appErr.Err = err
	return appErr
}

func fieldMessage(fe validator.FieldError) string {
	label, ok := fieldLabels[fe.Field()]
	if !ok {
		label = fe.Field()
	}
	switch fe.Tag() {
	case "required":
		return label + " is required"
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", label, fe.Param())
	case "email":
		return "Enter a valid email address"
	case "datetime":
		return label + " must use the YYYY-MM-DD format"
	case "notfuture":
		return "Attendance date cannot be in the future"
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", label, strings.ReplaceAll(fe.Param(), " ", ", "))
	default:
		return label + " is invalid"
	}
}
