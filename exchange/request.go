package exchange

// Request is a transport-ready request produced by Build. It is either a
// *QueryRequest or a *BodyRequest.
type Request interface {
	Method() Method
	URI() string
}

// QueryRequest carries no body; any parameters are already in its URI.
type QueryRequest struct {
	method Method
	uri    string
}

func newQueryRequest(method Method, uri string) *QueryRequest {
	return &QueryRequest{method: method, uri: uri}
}

func (r *QueryRequest) Method() Method { return r.method }
func (r *QueryRequest) URI() string    { return r.uri }

// BodyRequest carries the form-encoded parameters in its body.
type BodyRequest struct {
	method      Method
	uri         string
	body        []byte
	contentType string
}

func newBodyRequest(method Method, uri string) *BodyRequest {
	return &BodyRequest{method: method, uri: uri}
}

func (r *BodyRequest) Method() Method { return r.method }
func (r *BodyRequest) URI() string    { return r.uri }

// Body returns a copy of the encoded body.
func (r *BodyRequest) Body() []byte {
	b := make([]byte, len(r.body))
	copy(b, r.body)
	return b
}

func (r *BodyRequest) ContentType() string { return r.contentType }

func (r *BodyRequest) setBody(body []byte, contentType string) {
	r.body = body
	r.contentType = contentType
}
