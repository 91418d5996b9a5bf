package httpform

import (
	"bufio"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/nojima/httpform/exchange"
	"github.com/nojima/httpform/flags"
	"github.com/nojima/httpform/input"
	"github.com/nojima/httpform/log"
	"github.com/nojima/httpform/output"
	"github.com/nojima/httpform/version"
	logging "github.com/op/go-logging"
	"github.com/pkg/errors"
)

func Main(options *Options) error {
	return run(os.Args, os.Stdout, options)
}

func run(osArgs []string, stdout io.Writer, options *Options) error {
	// Parse flags
	args, usage, optionSet, err := flags.Parse(osArgs)
	if err != nil {
		if usage != nil {
			usage.PrintUsage(os.Stderr)
		}
		return err
	}
	if optionSet.Debug {
		log.Setup(os.Stderr, logging.DEBUG)
	}

	if optionSet.PrintVersion {
		fmt.Fprintf(stdout, "httpform %s\n", version.Current())
		return nil
	}
	if optionSet.PrintLicenses {
		version.PrintLicenses(stdout)
		return nil
	}

	// Parse positional arguments
	in, err := input.ParseArgs(args, &optionSet.InputOptions)
	if _, ok := errors.Cause(err).(*input.UsageError); ok {
		usage.PrintUsage(os.Stderr)
		return err
	}
	if err != nil {
		return err
	}

	// Build request
	exchangeOptions := optionSet.ExchangeOptions
	exchangeOptions.Transport = options.Transport
	request, err := exchange.BuildHTTPRequest(in, &exchangeOptions)
	if err != nil {
		return err
	}

	writer := bufio.NewWriter(stdout)
	defer writer.Flush()
	printer := output.NewPrettyPrinter(output.PrettyPrinterConfig{
		Writer:      writer,
		EnableColor: optionSet.OutputOptions.EnableColor,
	})

	// Print request
	if err := printRequest(printer, writer, request, &optionSet.OutputOptions); err != nil {
		return err
	}
	if optionSet.Offline {
		return nil
	}

	// Send request and receive response
	resp, err := exchange.SendRequest(request, &exchangeOptions)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	// Print response
	if !optionSet.OutputOptions.PrintsResponse() {
		return nil
	}
	if optionSet.OutputOptions.PrintResponseHeader {
		if err := printer.PrintStatusLine(resp.Proto, resp.Status, resp.StatusCode); err != nil {
			return err
		}
		if err := printer.PrintHeader(resp.Header); err != nil {
			return err
		}
		writer.Flush()
	}
	if optionSet.OutputOptions.PrintResponseBody {
		if err := printer.PrintBody(resp.Body, resp.Header.Get("Content-Type")); err != nil {
			return err
		}
	}

	return nil
}

func printRequest(printer output.Printer, writer *bufio.Writer, request *http.Request, options *output.Options) error {
	if !options.PrintsRequest() {
		return nil
	}
	if options.PrintRequestHeader {
		if err := printer.PrintRequestLine(request); err != nil {
			return err
		}
		header := request.Header.Clone()
		if header.Get("Host") == "" {
			header.Set("Host", request.Host)
		}
		if err := printer.PrintHeader(header); err != nil {
			return err
		}
	}
	if options.PrintRequestBody && request.GetBody != nil {
		body, err := request.GetBody()
		if err != nil {
			return errors.Wrap(err, "reading request body")
		}
		defer body.Close()
		if err := printer.PrintBody(body, request.Header.Get("Content-Type")); err != nil {
			return err
		}
		fmt.Fprintln(writer)
	}
	writer.Flush()
	return nil
}
