package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"mime"
	"net/http"
	"strings"

	"code.cloudfoundry.org/bytefmt"
	"github.com/logrusorgru/aurora"
	"github.com/nojima/httpform/exchange"
	"github.com/pkg/errors"
)

type PrettyPrinter struct {
	writer        io.Writer
	plain         Printer
	aurora        aurora.Aurora
	headerPalette *HeaderPalette
	formPalette   *FormPalette
}

type PrettyPrinterConfig struct {
	Writer      io.Writer
	EnableColor bool
}

type HeaderPalette struct {
	Method         aurora.Color
	URL            aurora.Color
	Proto          aurora.Color
	SuccessStatus  aurora.Color
	RedirectStatus aurora.Color
	ErrorStatus    aurora.Color
	FieldName      aurora.Color
	FieldValue     aurora.Color
	FieldSeparator aurora.Color
}

var defaultHeaderPalette = HeaderPalette{
	Method:         aurora.GreenFg | aurora.BoldFm,
	URL:            aurora.CyanFg | aurora.BoldFm,
	Proto:          aurora.BlueFg,
	SuccessStatus:  aurora.GreenFg | aurora.BoldFm,
	RedirectStatus: aurora.BrownFg | aurora.BoldFm,
	ErrorStatus:    aurora.RedFg | aurora.BoldFm,
	FieldName:      aurora.GrayFg,
	FieldValue:     aurora.CyanFg,
	FieldSeparator: aurora.GrayFg,
}

type FormPalette struct {
	Name      aurora.Color
	Value     aurora.Color
	Separator aurora.Color
}

var defaultFormPalette = FormPalette{
	Name:      aurora.BlueFg,
	Value:     aurora.BrownFg,
	Separator: aurora.GrayFg,
}

func NewPrettyPrinter(config PrettyPrinterConfig) Printer {
	return &PrettyPrinter{
		writer:        config.Writer,
		plain:         NewPlainPrinter(config.Writer),
		aurora:        aurora.NewAurora(config.EnableColor),
		headerPalette: &defaultHeaderPalette,
		formPalette:   &defaultFormPalette,
	}
}

func (p *PrettyPrinter) PrintRequestLine(req *http.Request) error {
	fmt.Fprintf(p.writer, "%s %s %s\n",
		p.aurora.Colorize(req.Method, p.headerPalette.Method),
		p.aurora.Colorize(req.URL, p.headerPalette.URL),
		p.aurora.Colorize(req.Proto, p.headerPalette.Proto))
	return nil
}

func (p *PrettyPrinter) PrintStatusLine(proto string, status string, statusCode int) error {
	fmt.Fprintf(p.writer, "%s %s\n",
		p.aurora.Colorize(proto, p.headerPalette.Proto),
		p.aurora.Colorize(status, p.statusColor(statusCode)))
	return nil
}

func (p *PrettyPrinter) statusColor(statusCode int) aurora.Color {
	switch {
	case statusCode >= 400:
		return p.headerPalette.ErrorStatus
	case statusCode >= 300:
		return p.headerPalette.RedirectStatus
	default:
		return p.headerPalette.SuccessStatus
	}
}

func (p *PrettyPrinter) PrintHeader(header http.Header) error {
	for _, name := range sortedNames(header) {
		for _, value := range header[name] {
			fmt.Fprintf(p.writer, "%s%s %s\n",
				p.aurora.Colorize(name, p.headerPalette.FieldName),
				p.aurora.Colorize(":", p.headerPalette.FieldSeparator),
				p.aurora.Colorize(value, p.headerPalette.FieldValue))
		}
	}
	fmt.Fprintln(p.writer)
	return nil
}

func (p *PrettyPrinter) PrintBody(body io.Reader, contentType string) error {
	b, err := ioutil.ReadAll(body)
	if err != nil {
		return errors.Wrap(err, "reading body")
	}

	// A NUL byte marks the body as binary.
	if bytes.IndexByte(b, 0) >= 0 {
		fmt.Fprintf(p.writer, "+-----------------------------------------+\n")
		fmt.Fprintf(p.writer, "| NOTE: binary data not shown in terminal |\n")
		fmt.Fprintf(p.writer, "| (%s)\n", bytefmt.ByteSize(uint64(len(b))))
		fmt.Fprintf(p.writer, "+-----------------------------------------+\n")
		return nil
	}

	mediaType, params, _ := mime.ParseMediaType(contentType)
	switch {
	case mediaType == "application/x-www-form-urlencoded":
		if ok := p.printForm(string(b), params["charset"]); ok {
			return nil
		}
	case isJSON(mediaType):
		if ok := p.printJSON(b); ok {
			return nil
		}
	}
	return p.plain.PrintBody(bytes.NewReader(b), contentType)
}

// printForm prints one "name=value" per line. It reports false when the body
// is not valid form data so the caller can fall back to raw output.
func (p *PrettyPrinter) printForm(body string, charset string) bool {
	params, err := exchange.DecodeForm(body, charset)
	if err != nil {
		return false
	}
	for _, param := range params {
		fmt.Fprintf(p.writer, "%s%s%s\n",
			p.aurora.Colorize(param.Name, p.formPalette.Name),
			p.aurora.Colorize("=", p.formPalette.Separator),
			p.aurora.Colorize(param.Value, p.formPalette.Value))
	}
	return true
}

func (p *PrettyPrinter) printJSON(body []byte) bool {
	var v interface{}
	if err := json.Unmarshal(body, &v); err != nil {
		return false
	}

	encoder := json.NewEncoder(p.writer)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "    ")
	if err := encoder.Encode(v); err != nil {
		return false
	}
	return true
}

func isJSON(mediaType string) bool {
	mediaType = strings.TrimSpace(mediaType)
	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}
