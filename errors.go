package tap

import (
	"fmt"
	"strings"
)

const ( // user input error message templates
	errUnknownFlag       = `the flag argument "%s%c" is unknown`
	errUnknownName       = `the named argument "%s%s" is unknown`
	errUnknownPositional = "no positional arguments are supported"
	errRequired          = "is required"
	errRequiredAtLeast   = "is required to occur at least %d times"
	errAtMostOnce        = "can only be set once"
	errAtMost            = "can occur at most %d times"
	errInvalidValue      = "does not accept the value %s"
	errMissingValue      = "requires a value"
	errNoValue           = "does not accept a value"
)

const ( // programmer misuse panic messages
	panicZeroMin        = "tap: cannot set zero minimum"
	panicSetValued      = "tap: calling Set() on valued argument, use SetValue"
	panicValueUnvalued  = "tap: attempt to set value on non-valued argument"
	panicNoValueIface   = "tap: requested value interface on non-valued argument"
	panicBoolValue      = "tap: assigning value to unvalued argument"
	panicBaseUsage      = "tap: base Usage() called on positional argument"
	panicNoAlias        = "tap: argument without value needs at least one alias"
	panicNoAutoAlias    = "tap: description contains no flag or name markers"
	panicDoubleRegister = "tap: FromString() called more than once"
)

// UnknownArgumentError is returned when a token on the command line
// matches no declared alias, or a positional token appears while no
// positional arguments are declared.
type UnknownArgumentError struct {
	msg string
}

func unknownFlagErr(prefix string, flag rune) *UnknownArgumentError {
	return &UnknownArgumentError{msg: fmt.Sprintf(errUnknownFlag, prefix, flag)}
}

func unknownNameErr(prefix, name string) *UnknownArgumentError {
	return &UnknownArgumentError{msg: fmt.Sprintf(errUnknownName, prefix, name)}
}

func unknownPositionalErr() *UnknownArgumentError {
	return &UnknownArgumentError{msg: errUnknownPositional}
}

func (e *UnknownArgumentError) Error() string {
	return e.msg
}

// ArgumentError carries the offending argument together with a reason.
// The more specific error types below embed it.
type ArgumentError struct {
	arg    Arg
	reason string
}

// Arg returns the argument that triggered the error.
func (e *ArgumentError) Arg() Arg {
	return e.arg
}

func (e *ArgumentError) Error() string {
	return "argument " + e.arg.Usage() + " " + e.reason
}

// CountMismatchError is returned when an argument occurred fewer times
// than its minimum or more times than its maximum.
type CountMismatchError struct {
	ArgumentError
	Count    int
	Expected int
}

// countMismatchErr builds the error message the way a reader expects:
// if the expected value exceeds the actual count it is a minimum,
// otherwise a maximum.
func countMismatchErr(arg Arg, count, expected int) *CountMismatchError {
	var reason string
	if count < expected {
		if expected > 1 {
			reason = fmt.Sprintf(errRequiredAtLeast, expected)
		} else {
			reason = errRequired
		}
	} else {
		if expected > 1 {
			reason = fmt.Sprintf(errAtMost, expected)
		} else {
			reason = errAtMostOnce
		}
	}
	return &CountMismatchError{
		ArgumentError: ArgumentError{arg: arg, reason: reason},
		Count:         count,
		Expected:      expected,
	}
}

func (e *CountMismatchError) Unwrap() error {
	return &e.ArgumentError
}

// InvalidValueError is returned when a token could not be decoded into
// the value type of an argument. The stored value is left untouched.
type InvalidValueError struct {
	ArgumentError
	Value string
}

func invalidValueErr(arg Arg, value string) *InvalidValueError {
	return &InvalidValueError{
		ArgumentError: ArgumentError{arg: arg, reason: fmt.Sprintf(errInvalidValue, value)},
		Value:         value,
	}
}

func (e *InvalidValueError) Unwrap() error {
	return &e.ArgumentError
}

// MissingValueError is returned when a value-taking argument reached
// the end of the token stream before a value was available.
type MissingValueError struct {
	ArgumentError
}

func missingValueErr(arg Arg) *MissingValueError {
	return &MissingValueError{ArgumentError{arg: arg, reason: errMissingValue}}
}

func (e *MissingValueError) Unwrap() error {
	return &e.ArgumentError
}

// UnexpectedValueError is returned when a non-value argument was given
// an inline delimited value.
type UnexpectedValueError struct {
	ArgumentError
}

func unexpectedValueErr(arg Arg) *UnexpectedValueError {
	return &UnexpectedValueError{ArgumentError{arg: arg, reason: errNoValue}}
}

func (e *UnexpectedValueError) Unwrap() error {
	return &e.ArgumentError
}

// ConstraintError is returned when a constraint node is not satisfied.
// Args holds the constraint members involved in the failure.
type ConstraintError struct {
	Reason string
	Args   []BaseArgument
}

func (e *ConstraintError) Error() string {
	usages := make([]string, len(e.Args))
	for i, arg := range e.Args {
		usages[i] = arg.Usage()
	}
	return e.Reason + strings.Join(usages, " ")
}
