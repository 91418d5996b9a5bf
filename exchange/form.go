package exchange

import (
	"net/url"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
)

// DefaultEncoding is used when the caller does not name one.
const DefaultEncoding = "UTF-8"

// Param is a single name/value pair. Requests keep params in order and
// allow the same name more than once.
type Param struct {
	Name  string
	Value string
}

// Charset is a resolved text encoding.
type Charset struct {
	// Name is the canonical MIME name, e.g. "UTF-8" or "ISO-8859-1".
	Name     string
	encoding encoding.Encoding
}

// LookupCharset resolves an IANA name or alias (or, failing that, a WHATWG
// label). An empty name selects DefaultEncoding.
func LookupCharset(name string) (Charset, error) {
	if strings.TrimSpace(name) == "" {
		return Charset{Name: DefaultEncoding, encoding: unicode.UTF8}, nil
	}

	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil || enc == nil {
		enc, err = htmlindex.Get(name)
		if err != nil {
			return Charset{}, newEncodingError(name, err)
		}
	}
	// htmlindex maps labels it cannot encode to the replacement encoding.
	if enc == encoding.Replacement {
		return Charset{}, newEncodingError(name, nil)
	}

	canonical, err := ianaindex.MIME.Name(enc)
	if err != nil || canonical == "" {
		canonical, err = htmlindex.Name(enc)
		if err != nil || canonical == "" {
			canonical = name
		}
	}
	return Charset{Name: canonical, encoding: enc}, nil
}

func (c Charset) encode(s string) (string, error) {
	out, err := encoding.ReplaceUnsupported(c.encoding.NewEncoder()).String(s)
	if err != nil {
		return "", errors.Wrapf(err, "encoding %q as %s", s, c.Name)
	}
	return out, nil
}

func (c Charset) decode(s string) (string, error) {
	out, err := c.encoding.NewDecoder().String(s)
	if err != nil {
		return "", errors.Wrapf(err, "decoding %q as %s", s, c.Name)
	}
	return out, nil
}

// EncodeForm renders params as application/x-www-form-urlencoded text in the
// given charset. Unlike url.Values.Encode, order and duplicates are kept.
func EncodeForm(params []Param, encodingName string) (string, error) {
	charset, err := LookupCharset(encodingName)
	if err != nil {
		return "", err
	}
	return charset.encodeForm(params)
}

func (c Charset) encodeForm(params []Param) (string, error) {
	var b strings.Builder
	for i, param := range params {
		name, err := c.encode(param.Name)
		if err != nil {
			return "", err
		}
		value, err := c.encode(param.Value)
		if err != nil {
			return "", err
		}
		if i > 0 {
			b.WriteByte('&')
		}
		// QueryEscape works byte-wise, so non-UTF-8 charsets come out right too.
		b.WriteString(url.QueryEscape(name))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(value))
	}
	return b.String(), nil
}

// DecodeForm parses form-encoded text produced in the given charset back
// into an ordered param list.
func DecodeForm(s string, encodingName string) ([]Param, error) {
	charset, err := LookupCharset(encodingName)
	if err != nil {
		return nil, err
	}
	return charset.decodeForm(s)
}

func (c Charset) decodeForm(s string) ([]Param, error) {
	var params []Param
	for _, pair := range strings.Split(s, "&") {
		if pair == "" {
			continue
		}
		rawName, rawValue := pair, ""
		if i := strings.IndexByte(pair, '='); i >= 0 {
			rawName, rawValue = pair[:i], pair[i+1:]
		}
		name, err := c.unescape(rawName)
		if err != nil {
			return nil, err
		}
		value, err := c.unescape(rawValue)
		if err != nil {
			return nil, err
		}
		params = append(params, Param{Name: name, Value: value})
	}
	return params, nil
}

func (c Charset) unescape(s string) (string, error) {
	raw, err := url.QueryUnescape(s)
	if err != nil {
		return "", errors.Wrapf(err, "unescaping form value %q", s)
	}
	return c.decode(raw)
}
