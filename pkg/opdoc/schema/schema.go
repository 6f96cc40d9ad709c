// Package schema embeds one JSON Schema document per supported
// OperationDocument version and validates a serialized document against
// its declared version, backing the schema check in opdoc.Serialize and
// opdoc.Deserialize (spec.md §4.1).
package schema

import (
	"embed"
	"fmt"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed v*.json
var fs embed.FS

// EarliestVersion is the oldest schema version embedded here; Validate
// reports an error for any version without an embedded schema.
const EarliestVersion = 1

var compiled = map[int]*jsonschema.Schema{}

func init() {
	c := jsonschema.NewCompiler()
	for v := EarliestVersion; v <= 3; v++ {
		name := fmt.Sprintf("v%d.json", v)
		data, err := fs.ReadFile(name)
		if err != nil {
			// A missing embedded schema is a build-time defect, not a
			// runtime condition callers can recover from.
			panic(fmt.Sprintf("opdoc/schema: missing embedded schema %s: %v", name, err))
		}
		if err := c.AddResource(name, jsonschemaReader(data)); err != nil {
			panic(fmt.Sprintf("opdoc/schema: invalid embedded schema %s: %v", name, err))
		}
		schema, err := c.Compile(name)
		if err != nil {
			panic(fmt.Sprintf("opdoc/schema: failed to compile %s: %v", name, err))
		}
		compiled[v] = schema
	}
}

// Validate checks raw (a serialized OperationDocument) against the schema
// registered for version. It returns an error describing every
// validation failure the jsonschema compiler reports.
func Validate(version int, raw []byte) error {
	s, ok := compiled[version]
	if !ok {
		return fmt.Errorf("opdoc/schema: no schema registered for version %d", version)
	}
	var v interface{}
	if err := jsonUnmarshal(raw, &v); err != nil {
		return fmt.Errorf("opdoc/schema: invalid JSON: %w", err)
	}
	if err := s.Validate(v); err != nil {
		return fmt.Errorf("opdoc/schema: document does not validate against v%d: %w", version, err)
	}
	return nil
}

// HasVersion reports whether a schema is registered for version.
func HasVersion(version int) bool {
	_, ok := compiled[version]
	return ok
}
