package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/erraggy/idpdocs"
	"github.com/erraggy/idpdocs/cmd/idpdocs/commands"
)

var commandNames = []string{"generate", "serve", "endpoints", "validate", "mcp", "version", "help"}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	var err error

	switch command {
	case "version", "-v", "--version":
		fmt.Printf("idpdocs v%s\n%s\n", idpdocs.Version(), idpdocs.BuildInfo())
	case "help", "-h", "--help":
		printUsage()
	case "generate":
		err = commands.HandleGenerate(os.Args[2:])
	case "serve":
		err = commands.HandleServe(os.Args[2:])
	case "endpoints":
		err = commands.HandleEndpoints(os.Args[2:])
	case "validate":
		err = commands.HandleValidate(os.Args[2:])
	case "mcp":
		err = commands.HandleMCP(os.Args[2:])
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		if suggestion := suggestCommand(command); suggestion != "" {
			fmt.Fprintf(os.Stderr, "Did you mean '%s'?\n", suggestion)
		}
		fmt.Fprintln(os.Stderr)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		if !errors.Is(err, commands.ErrValidationFailed) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

// suggestCommand returns the closest known command within edit distance 2.
func suggestCommand(input string) string {
	best, bestDist := "", 3
	for _, name := range commandNames {
		if d := levenshtein(input, name); d < bestDist {
			best, bestDist = name, d
		}
	}
	return best
}

func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

func printUsage() {
	fmt.Println(`idpdocs - OpenAPI documents for IdentityServer4 endpoints

Usage:
  idpdocs <command> [options]

Commands:
  generate    Generate the OpenAPI document for an issuer
  serve       Serve the document over HTTP at /swagger/v1/swagger.json
  endpoints   List the endpoint catalog
  validate    Generate and validate the document
  mcp         Run the MCP server over stdio
  version     Show version information
  help        Show this help message

Examples:
  idpdocs generate https://idp.example.org
  idpdocs generate --format yaml -o swagger.yaml https://idp.example.org
  idpdocs serve --addr :8080 --metrics
  idpdocs endpoints --status unsupported
  idpdocs validate --mode placeholder https://idp.example.org

Run 'idpdocs <command> --help' for more information on a command.`)
}
