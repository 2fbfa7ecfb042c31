package internalerr

import "github.com/cockroachdb/errors"

// Sentinel errors for the failure categories of a pipeline run.
// Wrap the cause with errors.Wrapf and tag it with Mark so callers can test
// the category with errors.Is while the message keeps the context.
var (
	ErrDataLoad      = errors.New("data load error")
	ErrTokenization  = errors.New("tokenization error")
	ErrInvalidConfig = errors.New("invalid configuration")
	ErrWrite         = errors.New("write error")
)

// DataLoad builds a DataLoadError from a formatted message.
func DataLoad(format string, args ...interface{}) error {
	return errors.Mark(errors.Newf(format, args...), ErrDataLoad)
}

// WrapDataLoad wraps cause as a DataLoadError.
func WrapDataLoad(cause error, format string, args ...interface{}) error {
	if cause == nil {
		return nil
	}
	return errors.Mark(errors.Wrapf(cause, format, args...), ErrDataLoad)
}

// WrapTokenization wraps cause as a TokenizationError.
func WrapTokenization(cause error, format string, args ...interface{}) error {
	if cause == nil {
		return nil
	}
	return errors.Mark(errors.Wrapf(cause, format, args...), ErrTokenization)
}

// InvalidConfig builds a configuration error with a hint for the user.
func InvalidConfig(hint string, format string, args ...interface{}) error {
	err := errors.Mark(errors.Newf(format, args...), ErrInvalidConfig)
	if hint != "" {
		err = errors.WithHint(err, hint)
	}
	return err
}

// IsDataLoad reports whether err is or wraps a DataLoadError.
func IsDataLoad(err error) bool {
	return err != nil && errors.Is(err, ErrDataLoad)
}

// IsTokenization reports whether err is or wraps a TokenizationError.
func IsTokenization(err error) bool {
	return err != nil && errors.Is(err, ErrTokenization)
}

// WrapInvalidConfig wraps cause as a configuration error.
func WrapInvalidConfig(cause error, format string, args ...interface{}) error {
	if cause == nil {
		return nil
	}
	return errors.Mark(errors.Wrapf(cause, format, args...), ErrInvalidConfig)
}

// WrapWrite wraps cause as an output write error.
func WrapWrite(cause error, format string, args ...interface{}) error {
	if cause == nil {
		return nil
	}
	return errors.Mark(errors.Wrapf(cause, format, args...), ErrWrite)
}
