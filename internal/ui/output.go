// Package ui provides formatted terminal output helpers.
package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

var (
	Dim   = color.New(color.Faint).SprintFunc()
	Green = color.New(color.FgGreen).SprintFunc()
	Red   = color.New(color.FgRed).SprintFunc()

	// Out is the destination for human-facing messages. Machine-read output
	// (evaluate, --show) goes to stdout directly.
	Out io.Writer = os.Stderr
)

// Success prints a success message with a green checkmark.
func Success(format string, args ...interface{}) {
	fmt.Fprintf(Out, "%s %s\n", Green("✔"), fmt.Sprintf(format, args...))
}

// Fail prints an error message with a red cross.
func Fail(format string, args ...interface{}) {
	fmt.Fprintf(Out, "%s %s\n", Red("✘"), fmt.Sprintf(format, args...))
}
