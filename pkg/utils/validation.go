package utils

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var phoneRegex = regexp.MustCompile(`^\+?[0-9][0-9 \-]{6,19}$`)

// enumTags maps a custom tag to the values it accepts.
var enumTags = map[string][]string{
	"booking_status":   {"Active", "Cancelled", "Attended"},
	"payment_status":   {"Paid", "Unpaid", "Refunded"},
	"refund_status":    {"Pending", "Approved", "Rejected"},
	"staff_role":       {"Admin", "Staff", "Manager"},
	"staff_status":     {"Active", "Inactive"},
	"volunteer_status": {"Pending", "Approved", "Rejected"},
	"checkin_status":   {"Not Checked", "Checked-In", "Cancelled"},
	"collect_status":   {"Pending", "Collected"},
}

var registerOnce sync.Once

// RegisterValidators installs the custom tags on gin's validator engine.
// Safe to call more than once.
func RegisterValidators() error {
	var err error
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			err = errors.New("gin validator engine is not validator/v10")
			return
		}
		err = registerOn(v)
	})
	return err
}

func registerOn(v *validator.Validate) error {
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		}
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	for tag, values := range enumTags {
		allowed := values
		if err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			s := fl.Field().String()
			if s == "" {
				return true
			}
			for _, a := range allowed {
				if s == a {
					return true
				}
			}
			return false
		}); err != nil {
			return fmt.Errorf("register %s: %w", tag, err)
		}
	}

	return v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return s == "" || phoneRegex.MatchString(s)
	})
}

// ValidationMessages flattens validator errors into field -> message.
// It returns nil when err is not a validator.ValidationErrors.
func ValidationMessages(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		out[fe.Field()] = fieldMessage(fe)
	}
	return out
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "gte":
		return "must be greater than or equal to " + fe.Param()
	case "lte":
		return "must be less than or equal to " + fe.Param()
	case "oneof":
		return "must be one of: " + fe.Param()
	case "phone":
		return "must be a valid phone number"
	}
	if values, ok := enumTags[fe.Tag()]; ok {
		return "must be one of: " + strings.Join(values, ", ")
	}
	return "is invalid"
}
