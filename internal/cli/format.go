package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// OutputFormat represents the supported output formats for CLI commands.
type OutputFormat string

const (
	// OutputFormatTable formats output as a rounded-border table.
	OutputFormatTable OutputFormat = "table"
	// OutputFormatJSON formats output as JSON.
	OutputFormatJSON OutputFormat = "json"
)

// ValidateOutputFormat validates that the given format string is supported.
func ValidateOutputFormat(format string) error {
	switch OutputFormat(format) {
	case OutputFormatTable, OutputFormatJSON:
		return nil
	default:
		return fmt.Errorf("invalid output format '%s'. Valid formats: table, json", format)
	}
}

// NewTable creates a table writer with the standard style, mirrored to the
// given output.
func NewTable(output io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(output)
	t.SetStyle(table.StyleRounded)
	return t
}

// PrintJSON writes v as indented JSON to stdout.
func PrintJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

// Checkmark returns a green check for terminal status lines.
func Checkmark() string {
	return text.FgGreen.Sprint("✓")
}

// Crossmark returns a red cross for terminal status lines.
func Crossmark() string {
	return text.FgRed.Sprint("✗")
}

// EmptyMessage prints a yellow notice for empty listings.
func EmptyMessage(message string) {
	fmt.Fprintf(os.Stdout, "%s\n", text.FgYellow.Sprint(message))
}

// FormatTime renders a timestamp for table cells; the zero time renders as
// a dash.
func FormatTime(ts time.Time) string {
	if ts.IsZero() {
		return "-"
	}
	return ts.Local().Format("2006-01-02 15:04")
}

// Truncate shortens s to at most n runes for table cells.
func Truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n <= 3 {
		return string(runes[:n])
	}
	return string(runes[:n-3]) + "..."
}
