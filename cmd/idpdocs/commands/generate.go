package commands

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/tidwall/gjson"

	"github.com/erraggy/idpdocs/catalog"
	"github.com/erraggy/idpdocs/internal/cliutil"
	"github.com/erraggy/idpdocs/serializer"
)

// GenerateFlags contains flags for the generate command
type GenerateFlags struct {
	documentFlags
	Format string
	Output string
	Indent string
	Query  string
}

// SetupGenerateFlags creates and configures a FlagSet for the generate command.
func SetupGenerateFlags() (*flag.FlagSet, *GenerateFlags) {
	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	flags := &GenerateFlags{}

	fs.StringVar(&flags.Issuer, "issuer", envDefault(EnvIssuer, ""), "issuer base URI the document describes")
	fs.StringVar(&flags.Mode, "mode", "omit", "unsupported endpoints: omit, placeholder or strict")
	fs.BoolVar(&flags.StaticExample, "static-example", false, "use the fixed demo discovery example")
	fs.StringVar(&flags.Format, "format", FormatJSON, "document format: json or yaml")
	fs.StringVar(&flags.Output, "o", "", "output file (default: stdout)")
	fs.StringVar(&flags.Output, "output", "", "output file (default: stdout)")
	fs.StringVar(&flags.Indent, "indent", "  ", "JSON indentation (empty for compact output)")
	fs.StringVar(&flags.Query, "query", "", "print only the value at this gjson path (json only)")

	fs.Usage = func() {
		Writef(fs.Output(), "Usage: idpdocs generate [flags] [issuer]\n\n")
		Writef(fs.Output(), "Generate the OpenAPI 3.0 document for an IdentityServer4 deployment.\n\n")
		Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		Writef(fs.Output(), "\nExamples:\n")
		Writef(fs.Output(), "  idpdocs generate https://idp.example.org\n")
		Writef(fs.Output(), "  idpdocs generate --format yaml -o swagger.yaml https://idp.example.org\n")
		Writef(fs.Output(), "  idpdocs generate --mode placeholder https://idp.example.org\n")
		Writef(fs.Output(), "  idpdocs generate --query components.schemas.TokenResponse https://idp.example.org\n")
	}

	return fs, flags
}

// HandleGenerate executes the generate command
func HandleGenerate(args []string) error {
	fs, flags := SetupGenerateFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if fs.NArg() > 1 {
		fs.Usage()
		return fmt.Errorf("generate command accepts at most one issuer")
	}

	issuer, err := flags.issuer(fs.Args())
	if err != nil {
		return err
	}
	format, err := serializer.ParseFormat(flags.Format)
	if err != nil {
		return err
	}
	if flags.Query != "" && format != serializer.FormatJSON {
		return fmt.Errorf("--query requires --format json")
	}
	opts, err := flags.catalogOptions()
	if err != nil {
		return err
	}

	doc, err := catalog.New(opts...).Build(issuer)
	if err != nil {
		return fmt.Errorf("generating document: %w", err)
	}
	if err := serializer.CheckReferences(doc); err != nil {
		return err
	}

	serOpts := []serializer.Option{serializer.WithFormat(format)}
	if flags.Query == "" {
		serOpts = append(serOpts, serializer.WithIndent(flags.Indent))
	}
	data, err := serializer.Serialize(doc, serOpts...)
	if err != nil {
		return err
	}

	if flags.Query != "" {
		res := gjson.GetBytes(data, flags.Query)
		if !res.Exists() {
			return fmt.Errorf("query %q matched nothing", flags.Query)
		}
		data = []byte(res.String() + "\n")
	}

	return cliutil.WriteOutput(os.Stdout, flags.Output, data)
}
