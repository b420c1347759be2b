package model

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
)

// ErrValidationFailed marks records that must not reach the store.
var ErrValidationFailed = errors.New("validation failed")

var validate = validator.New(validator.WithRequiredStructEnabled())

// IsValidationFailed reports whether err was caused by a validation error.
func IsValidationFailed(err error) bool {
	return errors.Is(err, ErrValidationFailed)
}

// Validate checks the draft before any store interaction.
// The only blocking rule for the form is a non-blank name.
func (d Draft) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return errors.Mark(errors.New("name is required"), ErrValidationFailed)
	}
	if len(d.Images) > MaxImages {
		return errors.Mark(errors.Newf("too many images: %d (max %d)", len(d.Images), MaxImages), ErrValidationFailed)
	}
	return nil
}

// Validate checks the record invariants (non-empty name, quantity >= 0,
// updatedAt >= createdAt, at most MaxImages well-formed images).
// Category is not checked against the known set.
func (p Prize) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return errors.Mark(errors.New("name is required"), ErrValidationFailed)
	}
	if err := validate.Struct(p); err != nil {
		return errors.Mark(errors.New(formatValidationErrors(err)), ErrValidationFailed)
	}
	return nil
}

func formatValidationErrors(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	var sb strings.Builder
	for i, fe := range verrs {
		if i > 0 {
			sb.WriteString("; ")
		}
		switch fe.Tag() {
		case "required":
			sb.WriteString(fmt.Sprintf("field '%s' is required", fe.Field()))
		case "max":
			sb.WriteString(fmt.Sprintf("field '%s' must have at most %s entries", fe.Field(), fe.Param()))
		case "lte":
			sb.WriteString(fmt.Sprintf("field '%s' must be less than or equal to %s", fe.Field(), fe.Param()))
		case "gte":
			sb.WriteString(fmt.Sprintf("field '%s' must be greater than or equal to %s", fe.Field(), fe.Param()))
		case "gtefield":
			sb.WriteString(fmt.Sprintf("field '%s' must not be before '%s'", fe.Field(), fe.Param()))
		case "startswith":
			sb.WriteString(fmt.Sprintf("field '%s' must start with %q", fe.Field(), fe.Param()))
		default:
			sb.WriteString(fmt.Sprintf("field '%s' failed validation '%s'", fe.Field(), fe.Tag()))
		}
	}
	return sb.String()
}

// MaxQuantity is the upper bound for a stored quantity.
const MaxQuantity = math.MaxInt32

// NormalizeQuantity clamps q into [0, MaxQuantity].
func NormalizeQuantity(q int) int {
	if q < 0 {
		return 0
	}
	if q > MaxQuantity {
		return MaxQuantity
	}
	return q
}

// AddQuantity returns cur+delta clamped into [0, MaxQuantity] without overflowing.
func AddQuantity(cur, delta int) int {
	cur = NormalizeQuantity(cur)
	if delta > 0 && delta > MaxQuantity-cur {
		return MaxQuantity
	}
	if delta < 0 && delta < -cur {
		return 0
	}
	return cur + delta
}

// ParseQuantity converts user input into a quantity.
// Non-numeric, non-finite or negative input becomes 0; fractions are truncated;
// anything above MaxQuantity saturates to MaxQuantity.
func ParseQuantity(s string) int {
	s = strings.TrimSpace(s)
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		if n > MaxQuantity {
			return MaxQuantity
		}
		return NormalizeQuantity(int(n))
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0
	}
	if f > MaxQuantity {
		return MaxQuantity
	}
	return NormalizeQuantity(int(f))
}
