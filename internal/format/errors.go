package format

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedInput reports a byte stream that does not fit the layout.
	ErrMalformedInput = errors.New("malformed input")
	// ErrAmbiguousClassification flags a reservoir/tank table that lists the
	// same node more than once. It is advisory and never aborts a decode.
	ErrAmbiguousClassification = errors.New("ambiguous classification")
)

// FieldError ties a failure to the field and byte offset that caused it.
type FieldError struct {
	Field  string
	Offset int
	Err    error
	Detail string
}

func (e *FieldError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s at offset %d: %v", e.Field, e.Offset, e.Err)
	}
	return fmt.Sprintf("%s at offset %d: %v: %s", e.Field, e.Offset, e.Err, e.Detail)
}

func (e *FieldError) Unwrap() error { return e.Err }

// Malformed builds a FieldError wrapping ErrMalformedInput.
func Malformed(field string, offset int, detail string, args ...any) error {
	if len(args) > 0 {
		detail = fmt.Sprintf(detail, args...)
	}
	return &FieldError{Field: field, Offset: offset, Err: ErrMalformedInput, Detail: detail}
}

// Advisory records a table entry the decoder skipped instead of failing.
// Err is ErrMalformedInput for references outside the network and
// ErrAmbiguousClassification for duplicate reservoir/tank rows.
type Advisory struct {
	Field  string `json:"field" yaml:"field"`
	Row    int    `json:"row" yaml:"row"`
	Value  int32  `json:"value" yaml:"value"`
	Offset int    `json:"offset" yaml:"offset"`
	Reason string `json:"reason" yaml:"reason"`
	Err    error  `json:"-" yaml:"-"`
}

func (a Advisory) Error() string {
	return fmt.Sprintf("%s row %d (value %d): %s", a.Field, a.Row, a.Value, a.Reason)
}

func (a Advisory) Unwrap() error { return a.Err }

// FieldError locates the advisory in the buffer. Strict decoding returns it.
func (a Advisory) FieldError() *FieldError {
	return &FieldError{Field: a.Field, Offset: a.Offset, Err: a}
}
