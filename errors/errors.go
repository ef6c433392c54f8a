package errors

import (
	"errors"
)

// Class determines how the batch driver reacts to an error.
type Class int

const (
	// ClassFatal errors mean the schema tables themselves are inconsistent. Processing stops.
	ClassFatal Class = iota
	// ClassMessage errors are confined to a single message. They are counted and collected.
	ClassMessage
	// ClassSkip marks messages that are intentionally not decoded.
	ClassSkip
)

func (c Class) String() string {
	switch c {
	case ClassFatal:
		return "fatal"
	case ClassMessage:
		return "message"
	case ClassSkip:
		return "skip"
	default:
		return "unknown"
	}
}

var (
	SchemaLookup        = ClassifiedError{ClassFatal, errors.New("schema lookup failed")}
	SchemaConfiguration = ClassifiedError{ClassFatal, errors.New("schema configuration error")}

	MalformedMessage       = ClassifiedError{ClassMessage, errors.New("malformed message")}
	MalformedSubject       = ClassifiedError{ClassMessage, errors.New("malformed subject")}
	UnknownSubtype         = ClassifiedError{ClassMessage, errors.New("unknown message subtype")}
	UnknownField           = ClassifiedError{ClassMessage, errors.New("unknown field")}
	MalformedRepeatedGroup = ClassifiedError{ClassMessage, errors.New("malformed repeated group")}
	InvalidValue           = ClassifiedError{ClassMessage, errors.New("invalid field value")}
	MissingField           = ClassifiedError{ClassMessage, errors.New("missing required field")}

	Corrupt     = ClassifiedError{ClassSkip, errors.New("known corrupt message")}
	IgnoredType = ClassifiedError{ClassSkip, errors.New("ignored message type")}

	NotFound = errors.New("not found")
)

type ClassifiedError struct {
	Class Class
	Err   error
}

func (c ClassifiedError) Unwrap() error {
	return c.Err
}

func (c ClassifiedError) Error() string {
	return c.Err.Error()
}

// ClassOf returns the class of the first classified error in err's chain.
// Errors that are not classified are treated as fatal.
func ClassOf(err error) Class {
	e := ClassifiedError{}
	if errors.As(err, &e) {
		return e.Class
	}
	return ClassFatal
}

func IsFatal(err error) bool {
	return err != nil && ClassOf(err) == ClassFatal
}

func IsSkip(err error) bool {
	return err != nil && ClassOf(err) == ClassSkip
}
