package exchange

import (
	"bytes"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"
	"net/url"

	"github.com/nojima/httpform/input"
	"github.com/nojima/httpform/log"
	"github.com/nojima/httpform/version"
	"github.com/pkg/errors"
)

const formContentType = "application/x-www-form-urlencoded"

// Build creates the request for method and uri. Parameters are placed in the
// query string for DELETE, GET and HEAD, and form-encoded into the body for
// POST and PUT. They never end up in both places.
func Build(method Method, uri string, params []Param, encoding string) (Request, error) {
	if !method.IsValid() {
		return nil, newUnknownMethodError(method.name)
	}

	if method.Placement() == InURI {
		u, err := placeInURI(uri, params, encoding)
		if err != nil {
			return nil, err
		}
		log.Log.Debugf("%s %s: %d params placed in query string", method, uri, len(params))
		return newQueryRequest(method, u), nil
	}

	req := newBodyRequest(method, uri)
	if err := placeInBody(req, params, encoding); err != nil {
		return nil, err
	}
	log.Log.Debugf("%s %s: %d params placed in body (%d bytes)", method, uri, len(params), len(req.body))
	return req, nil
}

func placeInURI(uri string, params []Param, encoding string) (string, error) {
	charset, err := LookupCharset(encoding)
	if err != nil {
		return "", err
	}
	if len(params) == 0 {
		return uri, nil
	}
	query, err := charset.encodeForm(params)
	if err != nil {
		return "", err
	}
	return uri + "?" + query, nil
}

func placeInBody(req *BodyRequest, params []Param, encoding string) error {
	charset, err := LookupCharset(encoding)
	if err != nil {
		return err
	}
	body, err := charset.encodeForm(params)
	if err != nil {
		return err
	}
	req.setBody([]byte(body), fmt.Sprintf("%s; charset=%s", formContentType, charset.Name))
	return nil
}

// ToHTTPRequest converts a built request into a *http.Request ready for a
// client. Only the request types produced by Build are accepted.
func ToHTTPRequest(req Request) (*http.Request, error) {
	switch req := req.(type) {
	case *QueryRequest:
		if req == nil {
			return nil, newInvalidRequestTypeError(req)
		}
		return newHTTPRequest(req)
	case *BodyRequest:
		if req == nil {
			return nil, newInvalidRequestTypeError(req)
		}
		r, err := newHTTPRequest(req)
		if err != nil {
			return nil, err
		}
		body := req.Body()
		r.Body = ioutil.NopCloser(bytes.NewReader(body))
		r.GetBody = func() (io.ReadCloser, error) {
			return ioutil.NopCloser(bytes.NewReader(body)), nil
		}
		r.ContentLength = int64(len(body))
		r.Header.Set("Content-Type", req.ContentType())
		return r, nil
	default:
		return nil, newInvalidRequestTypeError(req)
	}
}

func newHTTPRequest(req Request) (*http.Request, error) {
	uri := req.URI()
	u, err := url.Parse(uri)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing request URI '%s'", uri)
	}
	return &http.Request{
		Method:     req.Method().String(),
		URL:        u,
		Proto:      "HTTP/1.1",
		ProtoMajor: 1,
		ProtoMinor: 1,
		Header:     make(http.Header),
		Host:       u.Host,
	}, nil
}

// BuildHTTPRequest turns parsed command-line input into a *http.Request.
func BuildHTTPRequest(in *input.Input, options *Options) (*http.Request, error) {
	method, err := ParseMethod(string(in.Method))
	if err != nil {
		return nil, err
	}

	params, err := buildParams(in)
	if err != nil {
		return nil, err
	}

	header, err := buildHTTPHeader(in)
	if err != nil {
		return nil, err
	}

	req, err := Build(method, in.URL.String(), params, in.Encoding)
	if err != nil {
		return nil, err
	}

	r, err := ToHTTPRequest(req)
	if err != nil {
		return nil, err
	}

	for name, values := range header {
		if name == "Content-Type" {
			r.Header.Del(name)
		}
		for _, value := range values {
			r.Header.Add(name, value)
		}
	}
	if r.Header.Get("User-Agent") == "" {
		r.Header.Set("User-Agent", fmt.Sprintf("httpform/%s", version.Current()))
	}
	if host := header.Get("Host"); host != "" {
		r.Host = host
	}
	if options.Auth.Enabled {
		r.SetBasicAuth(options.Auth.UserName, options.Auth.Password)
	}
	return r, nil
}

func buildParams(in *input.Input) ([]Param, error) {
	params := make([]Param, 0, len(in.Parameters))
	for _, field := range in.Parameters {
		value, err := resolveFieldValue(field)
		if err != nil {
			return nil, err
		}
		params = append(params, Param{Name: field.Name, Value: value})
	}
	return params, nil
}

func buildHTTPHeader(in *input.Input) (http.Header, error) {
	header := make(http.Header)
	for _, field := range in.Header.Fields {
		value, err := resolveFieldValue(field)
		if err != nil {
			return nil, err
		}
		header.Add(field.Name, value)
	}
	return header, nil
}

func resolveFieldValue(field input.Field) (string, error) {
	if !field.IsFile {
		return field.Value, nil
	}
	data, err := ioutil.ReadFile(field.Value)
	if err != nil {
		return "", errors.Wrapf(err, "reading field value of '%s'", field.Name)
	}
	return string(data), nil
}
