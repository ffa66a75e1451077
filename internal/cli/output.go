package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

// resolveFormat turns "auto" into yaml on a terminal and json otherwise.
func resolveFormat(format string, w io.Writer) (string, error) {
	switch format {
	case "yaml", "json":
		return format, nil
	case "", "auto":
		if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
			return "yaml", nil
		}
		return "json", nil
	}
	return "", fmt.Errorf("unknown format %q (want auto, yaml or json)", format)
}

// printValue writes v in the selected output format.
func printValue(w io.Writer, v any) error {
	format, err := resolveFormat(flagFormat, w)
	if err != nil {
		return err
	}

	if format == "yaml" {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
