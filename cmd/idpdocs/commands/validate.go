package commands

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/erraggy/idpdocs"
	"github.com/erraggy/idpdocs/catalog"
	"github.com/erraggy/idpdocs/validator"
)

// ValidateFlags contains flags for the validate command
type ValidateFlags struct {
	documentFlags
	Strict     bool
	NoWarnings bool
	NoExamples bool
	Quiet      bool
	Format     string
}

// SetupValidateFlags creates and configures a FlagSet for the validate command.
func SetupValidateFlags() (*flag.FlagSet, *ValidateFlags) {
	fs := flag.NewFlagSet("validate", flag.ContinueOnError)
	flags := &ValidateFlags{}

	fs.StringVar(&flags.Issuer, "issuer", envDefault(EnvIssuer, ""), "issuer base URI the document describes")
	fs.StringVar(&flags.Mode, "mode", "omit", "unsupported endpoints: omit, placeholder or strict")
	fs.BoolVar(&flags.StaticExample, "static-example", false, "use the fixed demo discovery example")
	fs.BoolVar(&flags.Strict, "strict", false, "warn about non-standard status codes")
	fs.BoolVar(&flags.NoWarnings, "no-warnings", false, "suppress warning messages (only show errors)")
	fs.BoolVar(&flags.NoExamples, "no-examples", false, "skip checking examples against their schemas")
	fs.BoolVar(&flags.Quiet, "q", false, "quiet mode: only output validation result, no diagnostic messages")
	fs.BoolVar(&flags.Quiet, "quiet", false, "quiet mode: only output validation result, no diagnostic messages")
	fs.StringVar(&flags.Format, "format", FormatText, "output format: text, json, or yaml")

	fs.Usage = func() {
		Writef(fs.Output(), "Usage: idpdocs validate [flags] [issuer]\n\n")
		Writef(fs.Output(), "Generate the document for an issuer and validate it.\n\n")
		Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		Writef(fs.Output(), "\nExamples:\n")
		Writef(fs.Output(), "  idpdocs validate https://idp.example.org\n")
		Writef(fs.Output(), "  idpdocs validate --mode placeholder --strict https://idp.example.org\n")
		Writef(fs.Output(), "  idpdocs validate --format json https://idp.example.org | jq '.Valid'\n")
		Writef(fs.Output(), "\nExit Codes:\n")
		Writef(fs.Output(), "  0    Validation successful\n")
		Writef(fs.Output(), "  1    Validation failed with errors\n")
	}

	return fs, flags
}

// HandleValidate executes the validate command
func HandleValidate(args []string) error {
	fs, flags := SetupValidateFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if fs.NArg() > 1 {
		fs.Usage()
		return fmt.Errorf("validate command accepts at most one issuer")
	}
	if err := ValidateOutputFormat(flags.Format); err != nil {
		return err
	}
	issuer, err := flags.issuer(fs.Args())
	if err != nil {
		return err
	}
	opts, err := flags.catalogOptions()
	if err != nil {
		return err
	}

	startTime := time.Now()
	doc, err := catalog.New(opts...).Build(issuer)
	if err != nil {
		return fmt.Errorf("generating document: %w", err)
	}
	result, err := validator.Validate(doc,
		validator.WithStrictMode(flags.Strict),
		validator.WithIncludeWarnings(!flags.NoWarnings),
		validator.WithExamples(!flags.NoExamples),
	)
	if err != nil {
		return fmt.Errorf("validating document: %w", err)
	}
	totalTime := time.Since(startTime)

	if flags.Format == FormatJSON || flags.Format == FormatYAML {
		if err := OutputStructured(result, flags.Format); err != nil {
			return err
		}
		if !result.Valid {
			return ErrValidationFailed
		}
		return nil
	}

	if !flags.Quiet {
		Writef(os.Stderr, "IdentityServer4 Document Validator\n")
		Writef(os.Stderr, "==================================\n\n")
		Writef(os.Stderr, "idpdocs version: %s\n", idpdocs.Version())
		Writef(os.Stderr, "Issuer: %s\n", issuer)
		Writef(os.Stderr, "OAS Version: %s\n", result.Version)
		Writef(os.Stderr, "Paths: %d\n", len(doc.Paths))
		Writef(os.Stderr, "Total Time: %v\n\n", totalTime)

		if len(result.Errors) > 0 {
			Writef(os.Stderr, "Errors (%d):\n", result.ErrorCount)
			for _, e := range result.Errors {
				Writef(os.Stderr, "  %s\n", e.String())
			}
			Writef(os.Stderr, "\n")
		}
		if len(result.Warnings) > 0 {
			Writef(os.Stderr, "Warnings (%d):\n", result.WarningCount)
			for _, w := range result.Warnings {
				Writef(os.Stderr, "  %s\n", w.String())
			}
			Writef(os.Stderr, "\n")
		}
	}

	if !result.Valid {
		Writef(os.Stdout, "✗ Validation failed: %d error(s), %d warning(s)\n", result.ErrorCount, result.WarningCount)
		return ErrValidationFailed
	}
	if result.WarningCount > 0 {
		Writef(os.Stdout, "✓ Validation passed with %d warning(s)\n", result.WarningCount)
	} else {
		Writef(os.Stdout, "✓ Validation passed\n")
	}
	return nil
}
