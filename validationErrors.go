package symvalidation

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ValidationErrors is a map of field names to their validation errors.
// It is an alias for [validation.Errors] from ozzo-validation and implements
// the error interface with a JSON-friendly string representation.
type ValidationErrors = validation.Errors

var (
	// ErrUnsatisfiable is the message of every schema contradiction.
	ErrUnsatisfiable = errors.New("model constraints are unsatisfiable")
	// ErrUndecided is returned when neither the solver nor direct evaluation
	// could decide a bound check.
	ErrUndecided = errors.New("constraint could not be decided")
)

// ContradictionError reports a schema whose rules no instance can satisfy.
// It is a modeling defect, not a property of the data.
type ContradictionError struct {
	Entity string
	Reason string
}

func (e *ContradictionError) Error() string { return ErrUnsatisfiable.Error() }

func (e *ContradictionError) Unwrap() error { return ErrUnsatisfiable }

// ConstraintViolation reports the first rule a concrete instance breaks.
type ConstraintViolation struct {
	Entity  string
	Rule    string
	Field   string
	Message string
}

// Error returns the rule message unchanged.
func (e *ConstraintViolation) Error() string { return e.Message }

// Errors returns the violation keyed by its field, or by its rule when the
// rule is not attributed to a field.
func (e *ConstraintViolation) Errors() ValidationErrors {
	key := e.Field
	if key == "" {
		key = e.Rule
	}
	return ValidationErrors{key: validation.NewError("validation_constraint", e.Message)}
}

// AsValidationErrors converts the error of a validation call into field
// errors. It returns nil for errors that are not about the instance.
func AsValidationErrors(err error) ValidationErrors {
	var cv *ConstraintViolation
	if errors.As(err, &cv) {
		return cv.Errors()
	}
	var ve ValidationErrors
	if errors.As(err, &ve) {
		return ve
	}
	return nil
}
