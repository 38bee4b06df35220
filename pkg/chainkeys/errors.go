package chainkeys

import "fmt"

// DecodeError reports malformed hex or byte input.
// Input is truncated when rendered; secret input is shown only by length.
type DecodeError struct {
	Field  string
	Input  string
	Secret bool
	Err    error
}

func (e *DecodeError) Error() string {
	var in string
	switch {
	case e.Secret:
		in = fmt.Sprintf("<%d characters>", len(e.Input))
	case len(e.Input) > 16:
		in = fmt.Sprintf("%q...", e.Input[:16])
	default:
		in = fmt.Sprintf("%q", e.Input)
	}
	if e.Err != nil {
		return fmt.Sprintf("decode %s %s: %v", e.Field, in, e.Err)
	}
	return fmt.Sprintf("decode %s %s", e.Field, in)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// NewSecretDecodeError creates a DecodeError that never renders its input.
func NewSecretDecodeError(field, input string, err error) *DecodeError {
	return &DecodeError{
		Field:  field,
		Input:  input,
		Secret: true,
		Err:    err,
	}
}

// NewDecodeError creates a new DecodeError.
func NewDecodeError(field, input string, err error) *DecodeError {
	return &DecodeError{
		Field: field,
		Input: input,
		Err:   err,
	}
}
