package input

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/nojima/httpform/log"
	"github.com/pkg/errors"
)

var (
	reMethod          = regexp.MustCompile(`^[a-zA-Z]+$`)
	reHeaderFieldName = regexp.MustCompile("^[-!#$%&'*+.^_|~a-zA-Z0-9]+$")
	reScheme          = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+-.]*://`)
	emptyMethod       = Method("")
)

type itemType int

const (
	unknownItem itemType = iota
	httpHeaderItem
	parameterItem
)

type UsageError string

func (e *UsageError) Error() string {
	return string(*e)
}

func newUsageError(message string) error {
	u := UsageError(message)
	return errors.WithStack(&u)
}

// ParseArgs parses "[METHOD] URL [REQUEST_ITEM ...]".
func ParseArgs(args []string, options *Options) (*Input, error) {
	var argMethod string
	var argURL string
	var argItems []string
	switch len(args) {
	case 0:
		return nil, newUsageError("URL is required")
	case 1:
		argURL = args[0]
	default:
		if reMethod.MatchString(args[0]) {
			argMethod = args[0]
			argURL = args[1]
			argItems = args[2:]
		} else {
			argURL = args[0]
			argItems = args[1:]
		}
	}

	in := Input{Encoding: options.Encoding}

	u, err := parseURL(argURL)
	if err != nil {
		return nil, err
	}
	in.URL = u

	for _, arg := range argItems {
		if err := parseItem(arg, &in); err != nil {
			return nil, err
		}
	}
	if in.URL.RawQuery != "" && len(in.Parameters) > 0 {
		log.Log.Warningf("URL already has a query string (%s); parameters are added as given", in.URL.RawQuery)
	}

	if argMethod != "" {
		method, err := parseMethod(argMethod)
		if err != nil {
			return nil, err
		}
		in.Method = method
	} else {
		in.Method = guessMethod(&in)
	}

	return &in, nil
}

func parseMethod(s string) (Method, error) {
	if !reMethod.MatchString(s) {
		return emptyMethod, errors.Errorf("METHOD must consist of alphabets: %s", s)
	}

	method := Method(strings.ToUpper(s))
	return method, nil
}

func guessMethod(in *Input) Method {
	if len(in.Parameters) == 0 {
		return Method("GET")
	}
	return Method("POST")
}

func parseURL(s string) (*url.URL, error) {
	defaultScheme := "http"
	defaultHost := "localhost"

	// ex) :8080/hello or /hello
	if strings.HasPrefix(s, ":") || strings.HasPrefix(s, "/") {
		s = defaultHost + s
	}

	// ex) example.com/hello
	if !reScheme.MatchString(s) {
		s = defaultScheme + "://" + s
	}

	u, err := url.Parse(s)
	if err != nil {
		return nil, newUsageError("Invalid URL: " + s)
	}
	u.Host = strings.TrimSuffix(u.Host, ":")
	if u.Path == "" {
		u.Path = "/"
	}
	return u, nil
}

func parseItem(s string, in *Input) error {
	itemType, name, value := splitItem(s)
	switch itemType {
	case parameterItem:
		in.Parameters = append(in.Parameters, parseField(name, value))
	case httpHeaderItem:
		if !isValidHeaderFieldName(name) {
			return errors.Errorf("invalid header field name: %s", name)
		}
		in.Header.Fields = append(in.Header.Fields, parseField(name, value))
	default:
		return errors.Errorf("unknown request item: %s", s)
	}
	return nil
}

// splitItem accepts "name=value", "name==value" and "Name:value".
func splitItem(s string) (itemType, string, string) {
	for i, c := range s {
		switch c {
		case ':':
			return httpHeaderItem, s[:i], s[i+1:]
		case '=':
			if i+1 < len(s) && s[i+1] == '=' {
				return parameterItem, s[:i], s[i+2:]
			}
			return parameterItem, s[:i], s[i+1:]
		}
	}
	return unknownItem, "", ""
}

func isValidHeaderFieldName(s string) bool {
	return reHeaderFieldName.MatchString(s)
}

func parseField(name, value string) Field {
	// TODO: handle escaped "@"
	if strings.HasPrefix(value, "@") {
		return Field{Name: name, Value: value[1:], IsFile: true}
	}
	return Field{Name: name, Value: value, IsFile: false}
}
