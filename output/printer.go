package output

import (
	"io"
	"net/http"
)

type Printer interface {
	PrintRequestLine(req *http.Request) error
	PrintStatusLine(proto string, status string, statusCode int) error
	PrintHeader(header http.Header) error
	PrintBody(body io.Reader, contentType string) error
}
