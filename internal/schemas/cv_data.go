package schemas

import (
	schemafiles "github.com/igegov/cv-portfolio/schemas"
	"github.com/xeipuuv/gojsonschema"
)

// ValidateCVData validates raw content JSON against the bundled content schema.
// It returns a *ValidationError listing every violation, or a *SchemaLoadError.
func ValidateCVData(raw []byte) error {
	schema, err := schemafiles.Read(schemafiles.CVDataFile)
	if err != nil {
		return &SchemaLoadError{Path: schemafiles.CVDataFile, Message: "embedded schema missing", Cause: err}
	}

	return validate(
		schemafiles.CVDataFile,
		gojsonschema.NewBytesLoader(schema),
		gojsonschema.NewBytesLoader(raw),
	)
}
