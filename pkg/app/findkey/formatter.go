package findkey

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"gopkg.in/yaml.v3"
)

// FormatOutput writes a recovery result in the requested format
func FormatOutput(w io.Writer, response *Response, format string) error {
	switch format {
	case "json":
		return formatJSON(w, response)
	case "yaml":
		return formatYAML(w, response)
	case "table", "":
		return formatTable(w, response)
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

// formatTable formats the result as a two column table
func formatTable(w io.Writer, response *Response) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	if response.OSDescription != "" {
		fmt.Fprintf(tw, "Operating System\t%s\n", response.OSDescription)
	}
	fmt.Fprintf(tw, "Edition\t%s\n", response.Edition)
	fmt.Fprintf(tw, "Source\t%s\n", response.Source)
	if response.ValueName != "" {
		fmt.Fprintf(tw, "Value\t%s\n", response.ValueName)
	}
	fmt.Fprintf(tw, "Product Key\t%s\n", response.Status())

	return tw.Flush()
}

// formatJSON formats the result as JSON
func formatJSON(w io.Writer, response *Response) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(response)
}

// formatYAML formats the result as YAML
func formatYAML(w io.Writer, response *Response) error {
	encoder := yaml.NewEncoder(w)
	defer encoder.Close()
	encoder.SetIndent(2)
	return encoder.Encode(response)
}
