package main

import (
	"fmt"
	"os"

	"github.com/danielrbaughman/myairtable/internal/ui"
)

// CommandCategory groups related commands in the root help output.
type CommandCategory struct {
	Title    string
	Commands []CommandInfo
}

// CommandInfo is one command line in the help output.
type CommandInfo struct {
	Name  string
	Desc  string
}

// FlagInfo is one global flag line in the help output.
type FlagInfo struct {
	Flag string
	Desc string
}

// renderCategoryHelp prints the categorized root help screen.
func renderCategoryHelp(title, tagline string, categories []CommandCategory, flags []FlagInfo) {
	fmt.Println()
	fmt.Println(ui.Header(title))
	fmt.Println(ui.Dim(tagline))
	fmt.Println()
	fmt.Println(ui.Dim("Usage: myairtable <command> [flags]"))

	for _, cat := range categories {
		fmt.Println()
		fmt.Println(ui.Primary(cat.Title))
		for _, c := range cat.Commands {
			fmt.Printf("  %-10s %s\n", c.Name, ui.Dim(c.Desc))
		}
	}

	fmt.Println()
	fmt.Println(ui.Primary("Global Flags"))
	for _, f := range flags {
		fmt.Printf("  %-20s %s\n", f.Flag, ui.Dim(f.Desc))
	}

	fmt.Println()
	fmt.Println(ui.Dim("Run 'myairtable <command> --help' for command details."))
	fmt.Println()
}

// HelpMessage is a structured help message for an error condition.
type HelpMessage struct {
	Title string
	Lines []string
}

// helpMessages contains data-driven help for common error conditions.
var helpMessages = map[string]HelpMessage{
	"missing_api_key": {
		Title: "No Airtable API key found",
		Lines: []string{
			"To fix this, do ONE of the following:",
			"",
			"  1. Set the AIRTABLE_API_KEY environment variable:",
			"     export AIRTABLE_API_KEY=\"patXXXXXXXXXXXXXX\"",
			"",
			"  2. Point the config at a different variable in myairtable.yaml:",
			"     api_key_env: MY_AIRTABLE_TOKEN",
			"",
			"Personal access tokens are created at",
			"https://airtable.com/create/tokens and need the",
			"schema.bases:read scope (plus data.records:read for records).",
		},
	},
	"missing_base_id": {
		Title: "No base ID configured",
		Lines: []string{
			"To fix this, do ONE of the following:",
			"",
			"  1. Use the --base flag:",
			"     myairtable meta --base appXXXXXXXXXXXXXX",
			"",
			"  2. Set the AIRTABLE_BASE_ID environment variable",
			"",
			"  3. Set base_id in myairtable.yaml",
			"",
			"The base ID is the app... segment of the base URL:",
			"  https://airtable.com/appXXXXXXXXXXXXXX/...",
		},
	},
	"no_snapshot": {
		Title: "No cached schema snapshot",
		Lines: []string{
			"This command needs a snapshot of the base schema.",
			"",
			"Fetch one while online:",
			"  myairtable meta",
		},
	},
}

// printHelp prints a help message by key.
func printHelp(key string) {
	msg, ok := helpMessages[key]
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown help message key: %s\n", key)
		return
	}

	fmt.Fprintln(os.Stderr, ui.Error("Error")+": "+msg.Title)
	fmt.Fprintln(os.Stderr)
	for _, line := range msg.Lines {
		fmt.Fprintln(os.Stderr, line)
	}
}
