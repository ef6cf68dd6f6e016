package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/jonathan/ats-ui/internal/schemas"
	contracts "github.com/jonathan/ats-ui/schemas"
)

// errValidationFailed is returned after the failure details are printed.
var errValidationFailed = errors.New("validation failed")

func newValidateCmd(_ *app) *cobra.Command {
	var (
		schemaRef string
		jsonPath  string
	)

	cmd := &cobra.Command{
		Use:   "validate --schema <name|path> --json <file|->",
		Short: "Validate a saved JSON response against a response contract",
		Long: fmt.Sprintf(`Validate a JSON document against a JSON schema. --schema is either one of the
built-in contracts (%v) or a path to a schema file. --json - reads the document
from stdin.`, contracts.Names()),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var (
				doc []byte
				err error
			)
			if jsonPath == "-" {
				doc, err = io.ReadAll(cmd.InOrStdin())
			} else {
				doc, err = os.ReadFile(jsonPath)
			}
			if err != nil {
				return fmt.Errorf("failed to read JSON document: %w", err)
			}

			if slices.Contains(contracts.Names(), schemaRef) {
				err = schemas.NewValidator(nil).Validate(schemaRef, doc)
			} else {
				err = schemas.ValidateDocument(schemaRef, doc)
			}

			var verr *schemas.ValidationError
			switch {
			case err == nil:
				fmt.Fprintln(cmd.OutOrStdout(), "Validation passed")
				return nil
			case errors.As(err, &verr):
				fmt.Fprintf(cmd.OutOrStdout(), "Validation failed\n%s", verr.Error())
				return errValidationFailed
			default:
				return err
			}
		},
	}

	cmd.Flags().StringVar(&schemaRef, "schema", "", "Built-in contract name or schema file path (required)")
	cmd.Flags().StringVar(&jsonPath, "json", "", "JSON file to validate, or - for stdin (required)")
	_ = cmd.MarkFlagRequired("schema")
	_ = cmd.MarkFlagRequired("json")
	return cmd
}
