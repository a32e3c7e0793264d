package main

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/danielrbaughman/myairtable/internal/aterr"
	"github.com/danielrbaughman/myairtable/internal/ui"
)

// printCLIError renders an error for the terminal. Structured errors
// get their code, context, and help lines; anything else prints as-is.
func printCLIError(err error) {
	if errors.Is(err, errDriftDetected) {
		// the drift report is already on stdout
		return
	}
	var ae *aterr.Error
	if !errors.As(err, &ae) {
		fmt.Fprintln(os.Stderr, ui.Error("Error")+": "+err.Error())
		return
	}

	switch ae.GetCode() {
	case aterr.ErrMissingAPIKey:
		printHelp("missing_api_key")
		return
	case aterr.ErrMissingBaseID:
		printHelp("missing_base_id")
		return
	case aterr.ErrCacheEmpty:
		printHelp("no_snapshot")
		return
	}

	fmt.Fprintf(os.Stderr, "%s [%s]: %s\n", ui.Error("Error"), ae.GetCode(), ae.GetMessage())

	if ctx := ae.GetContext(); len(ctx) > 0 {
		keys := make([]string, 0, len(ctx))
		for k := range ctx {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if k == "helps" {
				continue
			}
			fmt.Fprintf(os.Stderr, "  %s: %v\n", ui.Dim(k), ctx[k])
		}
	}

	if cause := ae.GetCause(); cause != nil {
		fmt.Fprintf(os.Stderr, "  %s: %v\n", ui.Dim("cause"), cause)
	}

	for _, help := range ae.Helps() {
		fmt.Fprintln(os.Stderr, ui.Dim("help: ")+help)
	}
}
