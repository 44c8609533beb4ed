package commands

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/erraggy/idpdocs/catalog"
)

// EndpointsFlags contains flags for the endpoints command
type EndpointsFlags struct {
	Status string
	Issuer string
	Format string
}

// EndpointInfo is the structured form of one catalog entry.
type EndpointInfo struct {
	Name    string `json:"name" yaml:"name"`
	Path    string `json:"path" yaml:"path"`
	Status  string `json:"status" yaml:"status"`
	DocsURL string `json:"docs_url,omitempty" yaml:"docs_url,omitempty"`
	URL     string `json:"url,omitempty" yaml:"url,omitempty"`
}

// SetupEndpointsFlags creates and configures a FlagSet for the endpoints command.
func SetupEndpointsFlags() (*flag.FlagSet, *EndpointsFlags) {
	fs := flag.NewFlagSet("endpoints", flag.ContinueOnError)
	flags := &EndpointsFlags{}

	fs.StringVar(&flags.Status, "status", "", "filter by status: supported or unsupported")
	fs.StringVar(&flags.Issuer, "issuer", envDefault(EnvIssuer, ""), "include absolute URLs for this issuer")
	fs.StringVar(&flags.Format, "format", FormatText, "output format: text, json, or yaml")

	fs.Usage = func() {
		Writef(fs.Output(), "Usage: idpdocs endpoints [flags]\n\n")
		Writef(fs.Output(), "List the IdentityServer4 endpoints and whether the document describes them.\n\n")
		Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		Writef(fs.Output(), "\nExamples:\n")
		Writef(fs.Output(), "  idpdocs endpoints\n")
		Writef(fs.Output(), "  idpdocs endpoints --status unsupported --format json\n")
	}

	return fs, flags
}

// HandleEndpoints executes the endpoints command
func HandleEndpoints(args []string) error {
	fs, flags := SetupEndpointsFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if fs.NArg() != 0 {
		fs.Usage()
		return fmt.Errorf("endpoints command takes no arguments")
	}
	if err := ValidateOutputFormat(flags.Format); err != nil {
		return err
	}
	switch flags.Status {
	case "", catalog.StatusSupported.String(), catalog.StatusUnsupported.String():
	default:
		return fmt.Errorf("invalid status '%s'. Valid statuses: supported, unsupported", flags.Status)
	}

	infos := listEndpoints(flags.Status, flags.Issuer)
	if flags.Format != FormatText {
		return OutputStructured(infos, flags.Format)
	}
	return writeEndpointTable(os.Stdout, infos)
}

func listEndpoints(status, issuer string) []EndpointInfo {
	var infos []EndpointInfo
	for _, e := range catalog.Endpoints() {
		if status != "" && e.Status.String() != status {
			continue
		}
		info := EndpointInfo{
			Name:    e.Name,
			Path:    e.Path,
			Status:  e.Status.String(),
			DocsURL: e.DocsURL,
		}
		if issuer != "" {
			info.URL = e.URL(issuer)
		}
		infos = append(infos, info)
	}
	return infos
}

func writeEndpointTable(w io.Writer, infos []EndpointInfo) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	Writef(tw, "NAME\tPATH\tSTATUS\n")
	for _, info := range infos {
		Writef(tw, "%s\t%s\t%s\n", info.Name, info.Path, info.Status)
	}
	return tw.Flush()
}
