// Package log holds the logger shared by the httpform packages.
package log

import (
	"io"
	"os"

	logging "github.com/op/go-logging"
)

const module = "httpform"

var (
	Log = logging.MustGetLogger(module)

	format = logging.MustStringFormatter(`%{time:15:04:05.000} %{level:.4s} %{shortfile} %{message}`)
)

func init() {
	Setup(os.Stderr, logging.WARNING)
}

// Setup sends log records at or above level to w.
func Setup(w io.Writer, level logging.Level) {
	backend := logging.NewBackendFormatter(logging.NewLogBackend(w, "", 0), format)
	leveled := logging.AddModuleLevel(backend)
	leveled.SetLevel(level, module)
	Log.SetBackend(leveled)
}
