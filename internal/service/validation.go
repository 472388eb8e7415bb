package service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/cypherlabdev/cashout-simulator-service/internal/models"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// decimal.Decimal is a struct; numeric tags see it as a float
	v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})
	return v
}

func decimalValue(field reflect.Value) interface{} {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		return d.InexactFloat64()
	}
	return nil
}

// ValidateBetslipRequest checks the request's shape. Failures wrap models.ErrInvalidBetslip.
func ValidateBetslipRequest(req *models.BetslipRequest) error {
	if req == nil {
		return fmt.Errorf("%w: empty request", models.ErrInvalidBetslip)
	}
	if err := validate.Struct(req); err != nil {
		return fmt.Errorf("%w: %s", models.ErrInvalidBetslip, formatValidationErrors(err))
	}
	return nil
}

func formatValidationErrors(err error) string {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return err.Error()
	}

	messages := make([]string, 0, len(errs))
	for _, e := range errs {
		field := strings.TrimPrefix(e.Namespace(), "BetslipRequest.")
		if e.Param() != "" {
			messages = append(messages, fmt.Sprintf("%s failed %s=%s", field, e.Tag(), e.Param()))
		} else {
			messages = append(messages, fmt.Sprintf("%s failed %s", field, e.Tag()))
		}
	}
	return strings.Join(messages, "; ")
}
