package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/igegov/cv-portfolio/internal/content"
	"github.com/igegov/cv-portfolio/internal/observability"
	"github.com/igegov/cv-portfolio/internal/schemas"
	schemafiles "github.com/igegov/cv-portfolio/schemas"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a JSON Resume document or a content file",
	Long: "With --in, validates a JSON Resume document against the bundled schema. With --content, " +
		"validates a content file against the content schema and field rules.",
	RunE: runValidate,
}

var (
	validateIn      string
	validateContent string
	validateSchema  string
)

func init() {
	validateCmd.Flags().StringVarP(&validateIn, "in", "i", "", "Path to a JSON Resume document")
	validateCmd.Flags().StringVarP(&validateContent, "content", "c", "", "Path to a content file (JSON or YAML)")
	validateCmd.Flags().StringVar(&validateSchema, "schema", "", "Validate --in against a schema file or a bundled schema name")
	validateCmd.MarkFlagsMutuallyExclusive("in", "content")
	validateCmd.MarkFlagsMutuallyExclusive("schema", "content")
	validateCmd.MarkFlagsOneRequired("in", "content")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, _ []string) error {
	if validateContent != "" {
		return validateContentFile(validateContent, cmd.OutOrStdout())
	}
	if validateSchema != "" {
		return validateAgainstSchema(validateSchema, validateIn, cmd.OutOrStdout())
	}
	return validateResumeFile(validateIn, settings.Verbose, cmd.OutOrStdout())
}

// validateResumeFile prints "OK" or one line per schema error, failing on errors.
func validateResumeFile(path string, verbose bool, out io.Writer) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	result := schemas.ValidateResumeJSON(data)
	if verbose {
		observability.NewPrinter(out).PrintValidation(result)
	}
	if result.OK {
		fmt.Fprintf(out, "OK %s\n", path)
		return nil
	}
	for _, e := range result.Errors {
		fmt.Fprintf(out, "  %s\n", e)
	}
	return fmt.Errorf("%s failed schema validation with %d error(s)", path, len(result.Errors))
}

// validateAgainstSchema validates a document with a bundled schema, selected by file
// name, or with a schema file on disk.
func validateAgainstSchema(schemaPath, path string, out io.Writer) error {
	err := validateWithSchema(schemaPath, path)
	var verr *schemas.ValidationError
	if errors.As(err, &verr) {
		for _, fe := range verr.Errors {
			fmt.Fprintf(out, "  %s: %s\n", fe.Field, fe.Message)
		}
		return fmt.Errorf("%s failed schema validation with %d error(s)", path, len(verr.Errors))
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "OK %s\n", path)
	return nil
}

func validateWithSchema(schemaPath, path string) error {
	if isBundledSchema(schemaPath) {
		schema, err := schemafiles.Read(schemaPath)
		if err != nil {
			return err
		}
		doc, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		return schemas.ValidateJSONString(string(schema), string(doc))
	}

	if resolved := schemas.ResolveSchemaPath(schemaPath); resolved != "" {
		schemaPath = resolved
	}
	return schemas.ValidateJSON(schemaPath, path)
}

func isBundledSchema(name string) bool {
	for _, n := range schemafiles.Names() {
		if n == name {
			return true
		}
	}
	return false
}

func validateContentFile(path string, out io.Writer) error {
	if _, err := content.Load(path); err != nil {
		return fmt.Errorf("invalid content: %w", err)
	}
	fmt.Fprintf(out, "OK %s\n", path)
	return nil
}
