package cli

import (
	stderrors "errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"

	"github.com/toyz/artist/internal/errors"
)

// DiagnosticReporter provides user-friendly error reporting
type DiagnosticReporter struct {
	verbose bool
	out     io.Writer
}

// NewDiagnosticReporter creates a reporter writing to out
func NewDiagnosticReporter(out io.Writer, verbose bool) *DiagnosticReporter {
	return &DiagnosticReporter{verbose: verbose, out: out}
}

// ReportWarning prints a one-line warning
func (r *DiagnosticReporter) ReportWarning(message string) {
	orange := color.New(color.FgYellow, color.Bold)
	orange.Fprint(r.out, "! ")
	fmt.Fprintf(r.out, "%s\n", message)
}

// ReportError provides comprehensive error reporting. ArtistErrors get their
// code, location, context and suggestions printed; other errors only their
// message.
func (r *DiagnosticReporter) ReportError(err error) {
	fmt.Fprintf(r.out, "\nERROR: artist failed\n")
	fmt.Fprintf(r.out, "====================\n\n")

	var ae errors.ArtistError
	if stderrors.As(err, &ae) {
		r.reportArtistError(ae)
	} else {
		fmt.Fprintf(r.out, "Message: %s\n\n", err.Error())
	}

	if r.verbose {
		r.printErrorChain(err)
	} else {
		fmt.Fprintf(r.out, "Run with --verbose for more detailed output\n")
	}
	fmt.Fprintf(r.out, "\n")
}

func (r *DiagnosticReporter) reportArtistError(ae errors.ArtistError) {
	title := errorTitle(ae.ErrorCode())
	fmt.Fprintf(r.out, "Type: %s\n", title)
	fmt.Fprintf(r.out, "%s\n\n", strings.Repeat("-", len(title)+6))

	fmt.Fprintf(r.out, "Message: %s\n\n", ae.Error())

	if loc := ae.Location(); !loc.IsEmpty() {
		fmt.Fprintf(r.out, "Location: %s\n\n", loc)
	}
	if ctx := ae.Context(); len(ctx) > 0 {
		r.printContext(ctx)
	}
	if hints := ae.Suggestions(); len(hints) > 0 {
		r.printSuggestions(hints)
	}
}

func errorTitle(code errors.ErrorCode) string {
	switch code {
	case errors.ConfigurationErrorCode:
		return "Configuration Error"
	case errors.RegistrationErrorCode:
		return "Registration Error"
	case errors.GenerationErrorCode:
		return "Code Generation Error"
	case errors.FormatErrorCode:
		return "Format Error"
	case errors.FileSystemErrorCode:
		return "File System Error"
	default:
		return "Unknown Error"
	}
}

// printContext prints context entries, well-known keys first
func (r *DiagnosticReporter) printContext(context map[string]interface{}) {
	fmt.Fprintf(r.out, "Context:\n")

	importantKeys := []string{"subject", "stencil", "trait", "file", "path", "operation"}
	printed := make(map[string]bool)
	for _, key := range importantKeys {
		if value, exists := context[key]; exists {
			fmt.Fprintf(r.out, "   %s: %v\n", formatContextKey(key), value)
			printed[key] = true
		}
	}

	rest := make([]string, 0, len(context))
	for key := range context {
		if !printed[key] {
			rest = append(rest, key)
		}
	}
	sort.Strings(rest)
	for _, key := range rest {
		fmt.Fprintf(r.out, "   %s: %v\n", formatContextKey(key), context[key])
	}
	fmt.Fprintf(r.out, "\n")
}

// formatContextKey turns snake_case keys into Title Case
func formatContextKey(key string) string {
	parts := strings.Split(key, "_")
	for i, part := range parts {
		if len(part) > 0 {
			parts[i] = strings.ToUpper(part[:1]) + part[1:]
		}
	}
	return strings.Join(parts, " ")
}

// printSuggestions prints actionable suggestions
func (r *DiagnosticReporter) printSuggestions(suggestions []string) {
	fmt.Fprintf(r.out, "Suggestions:\n")
	for i, suggestion := range suggestions {
		lines := strings.Split(suggestion, "\n")
		fmt.Fprintf(r.out, "   %d. %s\n", i+1, lines[0])
		for _, line := range lines[1:] {
			if strings.TrimSpace(line) != "" {
				fmt.Fprintf(r.out, "      %s\n", line)
			}
		}
	}
	fmt.Fprintf(r.out, "\n")
}

func (r *DiagnosticReporter) printErrorChain(err error) {
	fmt.Fprintf(r.out, "Error Chain:\n")
	level := 1
	for err != nil {
		fmt.Fprintf(r.out, "  %d. %T: %s\n", level, err, err.Error())
		err = stderrors.Unwrap(err)
		level++
	}
}
