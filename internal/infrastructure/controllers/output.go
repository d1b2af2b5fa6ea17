package controllers

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// stdout and exit are indirections so tests can observe output and exit codes.
var (
	stdout io.Writer = os.Stdout
	exit             = os.Exit
)

// errorPayload is the machine-readable shape of a fatal command error.
type errorPayload struct {
	Error string `json:"error"`
}

// wantJSON reports whether the invocation asked for machine-readable output.
func wantJSON(cmd *cobra.Command) bool {
	jsonOut, _ := cmd.Flags().GetBool("json")
	return jsonOut
}

// printJSON writes v to stdout as indented JSON.
func printJSON(v interface{}) {
	encoder := json.NewEncoder(stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		logger.Errorf("Failed to encode output: %v", err)
	}
}

// printLine writes a plain text line to stdout.
func printLine(format string, args ...interface{}) {
	fmt.Fprintf(stdout, format+"\n", args...)
}

// fail reports a fatal command error and exits non-zero. In JSON mode the
// error goes to stdout as a structured object instead of a log line.
func fail(cmd *cobra.Command, format string, args ...interface{}) {
	if wantJSON(cmd) {
		printJSON(errorPayload{Error: fmt.Sprintf(format, args...)})
	} else {
		logger.Errorf(format, args...)
	}
	exit(1)
}
