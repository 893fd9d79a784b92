package pec

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfig marks fatal configuration errors.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrBridgeRealize marks a bridge that failed to realize. The PEC stays
	// usable.
	ErrBridgeRealize = errors.New("bridge failed to realize")
)

// A ConfigError is a fatal error found while realizing a PEC. Nothing is
// left mapped or realized when it is returned.
type ConfigError struct {
	Component string
	Reason    string
	Err       error
}

func (e *ConfigError) Error() string {
	msg := fmt.Sprintf("%s: %s: %s", e.Component, ErrInvalidConfig, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}

	return msg
}

// Is makes errors.Is(err, ErrInvalidConfig) hold.
func (e *ConfigError) Is(target error) bool {
	return target == ErrInvalidConfig
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// A StackError reports that the bridge of a stack could not be realized.
type StackError struct {
	Stack   string
	StackNo int
	Err     error
}

func (e *StackError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Stack, ErrBridgeRealize, e.Err)
}

// Is makes errors.Is(err, ErrBridgeRealize) hold.
func (e *StackError) Is(target error) bool {
	return target == ErrBridgeRealize
}

func (e *StackError) Unwrap() error {
	return e.Err
}

// IsFatal tells if an error returned by Realize left the PEC unusable.
func IsFatal(err error) bool {
	return errors.Is(err, ErrInvalidConfig)
}
