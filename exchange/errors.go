package exchange

import (
	"fmt"

	"github.com/pkg/errors"
)

// EncodingError is returned when a charset name is not known.
type EncodingError struct {
	Encoding string
	Err      error
}

func (e *EncodingError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("unsupported encoding: %q", e.Encoding)
	}
	return fmt.Sprintf("unsupported encoding: %q: %v", e.Encoding, e.Err)
}

func newEncodingError(name string, err error) error {
	return errors.WithStack(&EncodingError{Encoding: name, Err: err})
}

// InvalidRequestTypeError reports a Request implementation this package
// cannot hand over to the transport. It is a bug at the call site.
type InvalidRequestTypeError struct {
	Type string
}

func (e *InvalidRequestTypeError) Error() string {
	return "not known request type: " + e.Type
}

func newInvalidRequestTypeError(req Request) error {
	return errors.WithStack(&InvalidRequestTypeError{Type: fmt.Sprintf("%T", req)})
}

type UnknownMethodError string

func (e *UnknownMethodError) Error() string {
	return fmt.Sprintf("unknown method: %q (must be one of DELETE, GET, HEAD, POST, PUT)", string(*e))
}

func newUnknownMethodError(name string) error {
	u := UnknownMethodError(name)
	return errors.WithStack(&u)
}
