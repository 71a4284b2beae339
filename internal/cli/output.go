package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/99minutos/admin-console/internal/core/validation"
)

// printResult writes data as JSON when --json is set, and calls textFn
// otherwise. Only the JSON encoding goes to stdout in JSON mode.
func printResult(cmd *cobra.Command, opts *options, data any, textFn func(w io.Writer)) error {
	if opts.jsonOutput {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(data)
	}
	textFn(cmd.OutOrStdout())
	return nil
}

// table creates an aligned table writer. Remember to call Flush.
func table(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

// describe turns a validation failure into one line per field.
func describe(err error) error {
	var verr *validation.Error
	if !errors.As(err, &verr) {
		return err
	}
	var b strings.Builder
	b.WriteString("invalid input:")
	for _, f := range verr.Fields {
		fmt.Fprintf(&b, "\n  %s", f.Message)
	}
	return errors.New(b.String())
}
