package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fwojciec/unfurl"
	"github.com/fwojciec/unfurl/fs"
)

// printMetadata writes m to w in the given format.
func printMetadata(w io.Writer, format string, m *unfurl.Metadata, conv unfurl.Converter) error {
	switch format {
	case "text":
		_, err := fmt.Fprintf(w, "%s\n\n", m)
		return err
	case "markdown":
		var body string
		if conv != nil && strings.TrimSpace(m.Content) != "" {
			var err error
			if body, err = conv.Convert(m.Content); err != nil {
				return err
			}
		}
		doc, err := fs.FormatMetadata(m, body)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, doc)
		return err
	default:
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		return enc.Encode(m)
	}
}
