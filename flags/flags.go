package flags

import (
	"io"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/nojima/httpform/exchange"
	"github.com/nojima/httpform/input"
	"github.com/nojima/httpform/output"
	"github.com/pborman/getopt"
	"github.com/pkg/errors"
)

var reNumber = regexp.MustCompile(`^[0-9.]+$`)

type Usage interface {
	PrintUsage(w io.Writer)
}

type OptionSet struct {
	InputOptions    input.Options
	ExchangeOptions exchange.Options
	OutputOptions   output.Options

	// Offline builds and prints the request without sending it.
	Offline       bool
	Debug         bool
	PrintVersion  bool
	PrintLicenses bool
}

type terminalInfo struct {
	stdoutIsTerminal bool
}

// Parse parses os.Args-style args (program name first) and returns the
// remaining positional arguments.
func Parse(args []string) ([]string, Usage, *OptionSet, error) {
	return parse(args, terminalInfo{
		stdoutIsTerminal: isatty.IsTerminal(os.Stdout.Fd()),
	})
}

func parse(args []string, terminal terminalInfo) ([]string, Usage, *OptionSet, error) {
	inputOptions := input.Options{}
	outputOptions := output.Options{}
	exchangeOptions := exchange.Options{}
	optionSet := &OptionSet{}
	printFlag := "\000" // "\000" is a special value that indicates user did not specified --print
	timeout := "30s"
	verifyFlag := "yes"
	authFlag := ""
	var verboseFlag bool

	flagSet := getopt.New()
	flagSet.SetParameters("[METHOD] URL [REQUEST_ITEM [REQUEST_ITEM ...]]")
	flagSet.StringVarLong(&inputOptions.Encoding, "encoding", 'e', "charset used to encode parameters (default: UTF-8)", "NAME")
	flagSet.StringVarLong(&printFlag, "print", 'p', "specifies what the output should contain (HBhb)")
	flagSet.BoolVarLong(&verboseFlag, "verbose", 'v', "print the request as well as the response")
	flagSet.BoolVarLong(&optionSet.Offline, "offline", 0, "build the request and print it without sending")
	flagSet.StringVarLong(&timeout, "timeout", 0, "Timeout seconds that you allow the whole operation to take")
	flagSet.BoolVarLong(&exchangeOptions.FollowRedirects, "follow", 'F', "follow 30x Location redirects")
	flagSet.StringVarLong(&authFlag, "auth", 'a', "basic authentication credentials", "USER[:PASS]")
	flagSet.StringVarLong(&verifyFlag, "verify", 0, "verify the host's TLS certificate (yes/no)")
	flagSet.BoolVarLong(&exchangeOptions.ForceHTTP1, "http1", 0, "force HTTP/1.1 protocol")
	flagSet.BoolVarLong(&optionSet.Debug, "debug", 0, "print debug log to stderr")
	flagSet.BoolVarLong(&optionSet.PrintVersion, "version", 0, "print version and exit")
	flagSet.BoolVarLong(&optionSet.PrintLicenses, "licenses", 0, "print licenses of dependencies and exit")
	if err := flagSet.Getopt(args, nil); err != nil {
		return nil, flagSet, nil, errors.Wrap(err, "parsing options")
	}

	// Parse --print
	if err := parsePrintFlag(printFlag, verboseFlag, optionSet.Offline, terminal, &outputOptions); err != nil {
		return nil, flagSet, nil, err
	}

	// Parse --timeout
	d, err := parseDurationOrSeconds(timeout)
	if err != nil {
		return nil, flagSet, nil, err
	}
	exchangeOptions.Timeout = d

	// Parse --verify
	switch strings.ToLower(verifyFlag) {
	case "yes", "true":
		exchangeOptions.SkipVerify = false
	case "no", "false":
		exchangeOptions.SkipVerify = true
	default:
		return nil, flagSet, nil, errors.Errorf("Value of --verify must be yes or no: %v", verifyFlag)
	}

	// Parse --auth
	if authFlag != "" {
		auth, err := parseAuth(authFlag, askPassword)
		if err != nil {
			return nil, flagSet, nil, err
		}
		exchangeOptions.Auth = auth
	}

	// Color
	outputOptions.EnableColor = terminal.stdoutIsTerminal

	optionSet.InputOptions = inputOptions
	optionSet.ExchangeOptions = exchangeOptions
	optionSet.OutputOptions = outputOptions
	return flagSet.Args(), flagSet, optionSet, nil
}

func parsePrintFlag(printFlag string, verbose bool, offline bool, terminal terminalInfo, outputOptions *output.Options) error {
	if printFlag == "\000" {
		// --print is not specified
		switch {
		case offline:
			outputOptions.PrintRequestHeader = true
			outputOptions.PrintRequestBody = true
		case verbose:
			outputOptions.PrintRequestHeader = true
			outputOptions.PrintRequestBody = true
			outputOptions.PrintResponseHeader = true
			outputOptions.PrintResponseBody = true
		case terminal.stdoutIsTerminal:
			outputOptions.PrintResponseHeader = true
			outputOptions.PrintResponseBody = true
		default:
			outputOptions.PrintResponseBody = true
		}
		return nil
	}

	for _, c := range printFlag {
		switch c {
		case 'H':
			outputOptions.PrintRequestHeader = true
		case 'B':
			outputOptions.PrintRequestBody = true
		case 'h':
			outputOptions.PrintResponseHeader = true
		case 'b':
			outputOptions.PrintResponseBody = true
		default:
			return errors.Errorf("Invalid char in --print value (must be consist of HBhb): %c", c)
		}
	}
	return nil
}

func parseDurationOrSeconds(timeout string) (time.Duration, error) {
	if reNumber.MatchString(timeout) {
		timeout += "s"
	}
	d, err := time.ParseDuration(timeout)
	if err != nil {
		return time.Duration(0), errors.Errorf("Value of --timeout must be a number or duration string: %v", timeout)
	}
	return d, nil
}

func parseAuth(authFlag string, ask func(userName string) (string, error)) (exchange.AuthOptions, error) {
	userName, password := authFlag, ""
	colon := strings.Index(authFlag, ":")
	if colon == -1 {
		var err error
		if password, err = ask(userName); err != nil {
			return exchange.AuthOptions{}, err
		}
	} else {
		userName, password = authFlag[:colon], authFlag[colon+1:]
	}
	return exchange.AuthOptions{
		Enabled:  true,
		UserName: userName,
		Password: password,
	}, nil
}
