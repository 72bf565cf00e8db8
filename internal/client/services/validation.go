package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/artstore/internal/client/client"
	"github.com/dmitrijs2005/artstore/internal/common"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// MaxTopup is the largest single top-up the client will send.
var MaxTopup = decimal.NewFromInt(1_000_000)

// QuickAmounts are the preset top-up values offered to the user.
var QuickAmounts = []int64{100, 1000, 5000, 10000, 50000, 100000, 1000000}

// MinPasswordLength applies to registration only; the backend owns the
// rules for existing accounts.
const MinPasswordLength = 6

var validate = validator.New(validator.WithRequiredStructEnabled())

// validateStruct runs the struct's validate tags and reports the first
// violation as a *client.ValidationError.
func validateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return &client.ValidationError{Reason: err.Error()}
	}

	fe := verrs[0]
	field := fieldName(fe)
	switch fe.Tag() {
	case "required":
		return &client.ValidationError{Field: field, Reason: "is required"}
	case "min":
		return &client.ValidationError{Field: field, Reason: fmt.Sprintf("must be at least %s characters", fe.Param())}
	case "eqfield":
		return &client.ValidationError{Field: field, Reason: "does not match the password"}
	default:
		return &client.ValidationError{Field: field, Reason: fmt.Sprintf("failed %q check", fe.Tag())}
	}
}

func fieldName(fe validator.FieldError) string {
	var sb strings.Builder
	for i, r := range fe.Field() {
		if i > 0 && r >= 'A' && r <= 'Z' {
			sb.WriteByte(' ')
		}
		sb.WriteRune(r)
	}
	return strings.ToLower(sb.String())
}

var errAmountOutOfRange = &client.ValidationError{Field: "amount", Reason: "is out of range"}

// ParseAmount reads a user-typed amount. Empty, non-numeric, non-finite
// and out-of-range input (such as "1e999999999") is rejected.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, &client.ValidationError{Field: "amount", Reason: "is required"}
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, &client.ValidationError{Field: "amount", Reason: "must be a number"}
	}
	if !common.AmountWithinBounds(d) {
		return decimal.Zero, errAmountOutOfRange
	}
	return d, nil
}

// ValidateTopup checks 0 < amount <= max.
func ValidateTopup(amount, max decimal.Decimal) error {
	if !common.AmountWithinBounds(amount) {
		return errAmountOutOfRange
	}
	if !amount.IsPositive() {
		return &client.ValidationError{Field: "amount", Reason: "must be greater than zero"}
	}
	if amount.GreaterThan(max) {
		return &client.ValidationError{Field: "amount", Reason: "must not exceed " + max.StringFixed(0)}
	}
	return nil
}
