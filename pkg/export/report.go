package export

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"gopkg.in/yaml.v3"
)

// report encodings
const (
	FormatYAML = "yaml"
	FormatJSON = "json"
	FormatText = "text"
)

// WriteReport encodes any result or report value as YAML or indented JSON
func WriteReport(w io.Writer, format string, v any) error {
	switch format {
	case FormatYAML, "":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encoding yaml report: %w", err)
		}
		return enc.Close()
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encoding json report: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unknown report format %q", format)
	}
}

// A labelled value of a text summary
type SummaryLine struct {
	Label string
	Value string
}

// WriteSummary writes aligned label/value lines
func WriteSummary(w io.Writer, lines []SummaryLine) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, l := range lines {
		if _, err := fmt.Fprintf(tw, "%s:\t%s\n", l.Label, l.Value); err != nil {
			return err
		}
	}
	return tw.Flush()
}
