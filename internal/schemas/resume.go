package schemas

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"

	schemafiles "github.com/igegov/cv-portfolio/schemas"
	"github.com/xeipuuv/gojsonschema"
)

// rootContext is the name gojsonschema gives the document root
const rootContext = "(root)"

// Result is the outcome of validating a JSON Resume document.
// Errors is empty when OK is true.
type Result struct {
	OK     bool     `json:"ok"`
	Errors []string `json:"errors"`
}

var (
	resumeOnce   sync.Once
	resumeSchema *gojsonschema.Schema
	resumeErr    error
)

func loadResumeSchema() {
	data, err := schemafiles.Read(schemafiles.JSONResumeFile)
	if err != nil {
		resumeErr = &SchemaLoadError{Path: schemafiles.JSONResumeFile, Message: "embedded schema missing", Cause: err}
		return
	}

	resumeSchema, err = gojsonschema.NewSchema(gojsonschema.NewBytesLoader(data))
	if err != nil {
		resumeErr = &SchemaLoadError{Path: schemafiles.JSONResumeFile, Message: "embedded schema does not compile", Cause: err}
	}
}

// MustResumeSchema returns the compiled JSON Resume schema.
// It panics if the bundled schema is missing or malformed.
func MustResumeSchema() *gojsonschema.Schema {
	resumeOnce.Do(loadResumeSchema)
	if resumeErr != nil {
		panic(resumeErr)
	}
	return resumeSchema
}

// ValidateResume checks doc against the bundled JSON Resume schema.
// doc may be any value that encodes to JSON, typically a *types.JSONResume.
// Non-conformance is reported in the Result, never as a panic or error.
func ValidateResume(doc any) Result {
	schema := MustResumeSchema()

	result, err := schema.Validate(gojsonschema.NewGoLoader(doc))
	if err != nil {
		return Result{OK: false, Errors: []string{"/ " + err.Error()}}
	}
	return toResult(result)
}

// ValidateResumeJSON checks raw JSON bytes against the bundled JSON Resume schema
func ValidateResumeJSON(data []byte) Result {
	if !json.Valid(data) {
		return Result{OK: false, Errors: []string{"/ is not valid JSON"}}
	}

	result, err := MustResumeSchema().Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return Result{OK: false, Errors: []string{"/ " + err.Error()}}
	}
	return toResult(result)
}

func toResult(result *gojsonschema.Result) Result {
	if result.Valid() {
		return Result{OK: true}
	}

	errs := make([]string, 0, len(result.Errors()))
	for _, re := range result.Errors() {
		errs = append(errs, FormatError(re))
	}
	sort.Strings(errs)
	return Result{OK: false, Errors: errs}
}

// FormatError renders a schema error as "<json pointer> <message>".
// The document root is rendered as "/".
func FormatError(re gojsonschema.ResultError) string {
	return fmt.Sprintf("%s %s", InstancePointer(re.Context()), re.Description())
}

// InstancePointer converts a gojsonschema context such as "(root).basics.profiles.0"
// into a JSON pointer ("/basics/profiles/0").
func InstancePointer(ctx *gojsonschema.JsonContext) string {
	if ctx == nil {
		return "/"
	}
	pointer := strings.TrimPrefix(ctx.String("/"), rootContext)
	if pointer == "" {
		return "/"
	}
	return pointer
}
