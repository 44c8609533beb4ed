// Package commands provides CLI command handlers for idpdocs.
package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/idpdocs/catalog"
	"github.com/erraggy/idpdocs/internal/cliutil"
)

// Output format constants
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Environment variables consulted for flag defaults.
const (
	EnvIssuer = "IDPDOCS_ISSUER"
	EnvAddr   = "IDPDOCS_ADDR"
)

// ErrValidationFailed is returned by the validate command when the document has errors.
var ErrValidationFailed = errors.New("validation failed")

// ValidateOutputFormat validates an output format and returns an error if invalid.
func ValidateOutputFormat(format string) error {
	if format != FormatText && format != FormatJSON && format != FormatYAML {
		return fmt.Errorf("invalid format '%s'. Valid formats: %s, %s, %s", format, FormatText, FormatJSON, FormatYAML)
	}
	return nil
}

// OutputStructured outputs data in the specified format (json or yaml) to stdout.
func OutputStructured(data any, format string) error {
	return writeStructured(os.Stdout, data, format)
}

func writeStructured(w io.Writer, data any, format string) error {
	var out []byte
	var err error
	switch format {
	case FormatJSON:
		out, err = json.MarshalIndent(data, "", "  ")
		if err == nil {
			out = append(out, '\n')
		}
	case FormatYAML:
		out, err = yaml.Marshal(data)
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	_, err = w.Write(out)
	return err
}

// Writef writes formatted output to the writer.
func Writef(w io.Writer, format string, args ...any) {
	cliutil.Writef(w, format, args...)
}

// envDefault returns the environment value for key, or fallback when unset.
func envDefault(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// parseMode validates the --mode flag.
func parseMode(s string) (catalog.UnsupportedMode, error) {
	mode, ok := catalog.ParseUnsupportedMode(s)
	if !ok {
		return 0, fmt.Errorf("invalid mode '%s'. Valid modes: omit, placeholder, strict", s)
	}
	return mode, nil
}

// documentFlags are shared by commands that build a document.
type documentFlags struct {
	Issuer        string
	Mode          string
	StaticExample bool
}

func (f *documentFlags) issuer(args []string) (string, error) {
	issuer := f.Issuer
	if len(args) > 0 {
		issuer = args[0]
	}
	issuer = strings.TrimSpace(issuer)
	if issuer == "" {
		return "", fmt.Errorf("an issuer is required (argument, --issuer or %s)", EnvIssuer)
	}
	return issuer, nil
}

func (f *documentFlags) catalogOptions() ([]catalog.Option, error) {
	mode, err := parseMode(f.Mode)
	if err != nil {
		return nil, err
	}
	opts := []catalog.Option{catalog.WithUnsupportedMode(mode)}
	if f.StaticExample {
		opts = append(opts, catalog.WithStaticDiscoveryExample())
	}
	return opts, nil
}
