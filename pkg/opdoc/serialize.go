package opdoc

import (
	"encoding/json"

	herrors "github.com/Azure/harmony/pkg/herrors"
	"github.com/Azure/harmony/pkg/opdoc/schema"
)

// Serialize produces a document valid against the named schema version,
// applying the downgrade pipeline from the document's current version
// down to target, per spec.md §4.1.
func (d *OperationDocument) Serialize(version int) ([]byte, error) {
	projected, err := downgradeTo(d, version)
	if err != nil {
		return nil, err
	}

	raw, err := json.Marshal(projected)
	if err != nil {
		return nil, herrors.Internal(err, "failed to marshal operation document").Build()
	}

	if !schema.HasVersion(version) {
		return nil, herrors.New().Kind(herrors.KindUnsupported).
			Messagef("no schema registered for version %d", version).WithLocation().Build()
	}
	if err := schema.Validate(version, raw); err != nil {
		return nil, herrors.New().Kind(herrors.KindExternalValidation).
			Messagef("serialized document failed schema validation: %v", err).WithLocation().Build()
	}

	return raw, nil
}

// Deserialize parses raw against the named schema version and returns the
// resulting OperationDocument, used by WorkflowStep consumers and tests
// asserting the schema round-trip property (spec.md §8, property 1).
func Deserialize(raw []byte, version int) (*OperationDocument, error) {
	if !schema.HasVersion(version) {
		return nil, herrors.New().Kind(herrors.KindUnsupported).
			Messagef("no schema registered for version %d", version).WithLocation().Build()
	}
	if err := schema.Validate(version, raw); err != nil {
		return nil, herrors.New().Kind(herrors.KindExternalValidation).
			Messagef("document failed schema validation: %v", err).WithLocation().Build()
	}

	var doc OperationDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, herrors.Internal(err, "failed to unmarshal operation document").Build()
	}
	return &doc, nil
}
