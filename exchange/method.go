package exchange

import (
	"strings"
)

// Placement tells where the parameters of a request go.
type Placement int

const (
	unknownPlacement Placement = iota
	// InURI appends the parameters to the URI as a query string.
	InURI
	// InBody form-encodes the parameters into the request body.
	InBody
)

func (p Placement) String() string {
	switch p {
	case InURI:
		return "uri"
	case InBody:
		return "body"
	default:
		return "unknown"
	}
}

// Method is an HTTP method together with its parameter placement.
// Only the package-level values below are valid; the zero Method is not.
type Method struct {
	name      string
	placement Placement
}

var (
	DELETE = Method{name: "DELETE", placement: InURI}
	GET    = Method{name: "GET", placement: InURI}
	HEAD   = Method{name: "HEAD", placement: InURI}
	POST   = Method{name: "POST", placement: InBody}
	PUT    = Method{name: "PUT", placement: InBody}
)

var methods = []Method{DELETE, GET, HEAD, POST, PUT}

// Methods returns every supported method in alphabetical order.
func Methods() []Method {
	result := make([]Method, len(methods))
	copy(result, methods)
	return result
}

func (m Method) String() string {
	if m.name == "" {
		return "<invalid>"
	}
	return m.name
}

func (m Method) Placement() Placement {
	return m.placement
}

func (m Method) IsValid() bool {
	return m.placement != unknownPlacement
}

// ParseMethod looks up a method by name, ignoring case.
func ParseMethod(s string) (Method, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	for _, m := range methods {
		if m.name == name {
			return m, nil
		}
	}
	return Method{}, newUnknownMethodError(s)
}
