// Package errors provides structured error handling for the modelselection
// library. It wraps github.com/cockroachdb/errors so that every constructed
// error carries a stack trace, and defines the error taxonomy used by the
// evaluation harness:
//
//   - ConfigurationError: invalid harness configuration, detected before any
//     model training starts
//   - TrainingError: a model trainer failed for a specific fold and parameter
//     combination
//   - ScoringError: a predictor produced output the scorer cannot consume
//
// All structured types implement zerolog.LogObjectMarshaler so they can be
// attached to log events as structured fields rather than flat strings.
package errors

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

// ConfigurationError reports an invalid evaluation configuration, such as a
// holdout fraction outside (0,1), more folds than training records, an empty
// parameter grid, or an empty dataset. It is always raised before any model
// training occurs.
type ConfigurationError struct {
	Field  string
	Reason string
	Value  interface{}
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("modelselection: invalid configuration for %q: %s (got: %v)", e.Field, e.Reason, e.Value)
}

// MarshalZerologObject adds the structured configuration context to a log event.
func (e *ConfigurationError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("field", e.Field).
		Str("reason", e.Reason).
		Interface("value", e.Value).
		Str("type", "ConfigurationError")
}

// NewConfigurationError creates a new ConfigurationError with a stack trace.
func NewConfigurationError(field, reason string, value interface{}) error {
	err := &ConfigurationError{Field: field, Reason: reason, Value: value}
	return errors.WithStack(err)
}

// TrainingError reports a model trainer failure during cross-validation or
// the final refit. It records which parameter combination and which fold were
// being evaluated so the caller can diagnose or deliberately skip the
// combination; the harness itself never absorbs these.
type TrainingError struct {
	Combination string
	Fold        int
	Err         error
}

func (e *TrainingError) Error() string {
	if e.Fold < 0 {
		return fmt.Sprintf("modelselection: training failed for combination %s during refit: %v", e.Combination, e.Err)
	}
	return fmt.Sprintf("modelselection: training failed for combination %s on fold %d: %v", e.Combination, e.Fold, e.Err)
}

func (e *TrainingError) Unwrap() error {
	return e.Err
}

// MarshalZerologObject adds the structured training context to a log event.
func (e *TrainingError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("combination", e.Combination).
		Int("fold", e.Fold).
		AnErr("cause", e.Err).
		Str("type", "TrainingError")
}

// NewTrainingError creates a new TrainingError with a stack trace. A fold of
// -1 indicates the failure happened during the final refit rather than inside
// a cross-validation pass.
func NewTrainingError(combination string, fold int, err error) error {
	trainErr := &TrainingError{Combination: combination, Fold: fold, Err: err}
	return errors.WithStack(trainErr)
}

// ScoringError reports that a predictor's output is incompatible with the
// scorer, for example a prediction vector whose length differs from the
// number of ground-truth labels. It is surfaced immediately rather than
// averaged away.
type ScoringError struct {
	Scorer string
	Reason string
	Err    error
}

func (e *ScoringError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("modelselection: scoring with %s failed: %s: %v", e.Scorer, e.Reason, e.Err)
	}
	return fmt.Sprintf("modelselection: scoring with %s failed: %s", e.Scorer, e.Reason)
}

func (e *ScoringError) Unwrap() error {
	return e.Err
}

// MarshalZerologObject adds the structured scoring context to a log event.
func (e *ScoringError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("scorer", e.Scorer).
		Str("reason", e.Reason).
		AnErr("cause", e.Err).
		Str("type", "ScoringError")
}

// NewScoringError creates a new ScoringError with a stack trace.
func NewScoringError(scorer, reason string, err error) error {
	scoreErr := &ScoringError{Scorer: scorer, Reason: reason, Err: err}
	return errors.WithStack(scoreErr)
}

// NotFittedError is returned when Predict or Transform is called on a model
// that has not been fitted yet.
type NotFittedError struct {
	ModelName string
	Method    string
}

func (e *NotFittedError) Error() string {
	return fmt.Sprintf("modelselection: %s: this model is not fitted yet. Call Fit() before using %s()", e.ModelName, e.Method)
}

// MarshalZerologObject adds the structured model context to a log event.
func (e *NotFittedError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("model_name", e.ModelName).
		Str("method", e.Method).
		Str("type", "NotFittedError")
}

// NewNotFittedError creates a new NotFittedError with a stack trace.
func NewNotFittedError(modelName, method string) error {
	err := &NotFittedError{ModelName: modelName, Method: method}
	return errors.WithStack(err)
}

// DimensionError is returned when input data has an unexpected shape.
type DimensionError struct {
	Op       string
	Expected int
	Got      int
	Axis     int // 0 for rows, 1 for columns/features
}

func (e *DimensionError) Error() string {
	axisName := "features"
	if e.Axis == 0 {
		axisName = "rows"
	}
	return fmt.Sprintf("modelselection: %s: dimension mismatch on axis %d (%s). Expected %d, got %d", e.Op, e.Axis, axisName, e.Expected, e.Got)
}

// MarshalZerologObject adds the structured shape context to a log event.
func (e *DimensionError) MarshalZerologObject(event *zerolog.Event) {
	axisName := "features"
	if e.Axis == 0 {
		axisName = "rows"
	}
	event.Str("operation", e.Op).
		Int("expected", e.Expected).
		Int("got", e.Got).
		Int("axis", e.Axis).
		Str("axis_name", axisName).
		Str("type", "DimensionError")
}

// NewDimensionError creates a new DimensionError with a stack trace.
func NewDimensionError(op string, expected, got, axis int) error {
	err := &DimensionError{Op: op, Expected: expected, Got: got, Axis: axis}
	return errors.WithStack(err)
}

// ValidationError is returned when a single parameter fails validation.
type ValidationError struct {
	ParamName string
	Reason    string
	Value     interface{}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("modelselection: validation failed for parameter '%s': %s (got: %v)", e.ParamName, e.Reason, e.Value)
}

// MarshalZerologObject adds the structured parameter context to a log event.
func (e *ValidationError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("param_name", e.ParamName).
		Str("reason", e.Reason).
		Interface("value", e.Value).
		Str("type", "ValidationError")
}

// NewValidationError creates a new ValidationError with a stack trace.
func NewValidationError(param, reason string, value interface{}) error {
	err := &ValidationError{ParamName: param, Reason: reason, Value: value}
	return errors.WithStack(err)
}

// ValueError is returned when an argument has an inappropriate value.
type ValueError struct {
	Op      string
	Message string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("modelselection: %s: %s", e.Op, e.Message)
}

// NewValueError creates a new ValueError with a stack trace.
func NewValueError(op, message string) error {
	err := &ValueError{Op: op, Message: message}
	return errors.WithStack(err)
}

// ModelError is a general error concerning a machine learning model.
type ModelError struct {
	Op   string
	Kind string
	Err  error
}

func (e *ModelError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("modelselection: %s: %s: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("modelselection: %s: %s", e.Op, e.Kind)
}

func (e *ModelError) Unwrap() error {
	return e.Err
}

// NewModelError creates a new ModelError with a stack trace.
func NewModelError(op, kind string, err error) error {
	modelErr := &ModelError{Op: op, Kind: kind, Err: err}
	return errors.WithStack(modelErr)
}

// ===========================================================================
//
//	cockroachdb/errors wrappers
//
// ===========================================================================

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Wrap wraps an error with a message.
func Wrap(err error, message string) error {
	return errors.Wrap(err, message)
}

// Wrapf wraps an error with a formatted message.
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}

// New creates a new error with a stack trace.
func New(message string) error {
	return errors.New(message)
}

// Newf creates a new formatted error with a stack trace.
func Newf(format string, args ...interface{}) error {
	return errors.Newf(format, args...)
}

// WithStack annotates err with a stack trace.
func WithStack(err error) error {
	return errors.WithStack(err)
}

// ===========================================================================
//
//	Common sentinel errors
//
// ===========================================================================

var (
	// ErrEmptyData is returned when an empty dataset is supplied.
	ErrEmptyData = New("empty data")

	// ErrEmptyGrid is returned when a parameter grid expands to no combinations.
	ErrEmptyGrid = New("empty parameter grid")

	// ErrSingularMatrix is returned when a matrix cannot be inverted.
	ErrSingularMatrix = New("singular matrix")
)
