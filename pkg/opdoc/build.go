package opdoc

import "github.com/google/uuid"

// Request is the frontend-parsed input Build assembles into an
// OperationDocument. It stands in for the parsed output of the OGC
// Coverages/EDR/WMS frontends, which spec.md §1 treats as external
// collaborators specified only at interface level.
type Request struct {
	Username       string
	RawToken       []byte
	Sources        []Source
	Subset         Subset
	Format         OutputFormat
	Flags          Flags
	ExtraArgs      map[string]string
	StagingURL     string
	DestinationURL string
}

// Builder assembles OperationDocuments at CurrentVersion.
type Builder struct {
	cipher TokenCipher
}

// NewBuilder constructs a Builder using cipher to encrypt tokens at rest,
// per spec.md §4.1 ("tokens are stored encrypted at rest").
func NewBuilder(cipher TokenCipher) *Builder {
	return &Builder{cipher: cipher}
}

// Build assembles the document from req, normalizing the spatial
// encoding exactly as spec.md §4.1 specifies (point is [lon, lat], bbox
// is [W, S, E, N], shape is a URL or inline FeatureCollection).
func (b *Builder) Build(req Request) (*OperationDocument, error) {
	var encrypted []byte
	if len(req.RawToken) > 0 {
		ct, err := b.cipher.Encrypt(req.RawToken)
		if err != nil {
			return nil, err
		}
		encrypted = ct
	}

	doc := &OperationDocument{
		Version:        CurrentVersion,
		RequestID:      uuid.NewString(),
		Username:       req.Username,
		EncryptedToken: encrypted,
		Sources:        req.Sources,
		Subset:         req.Subset,
		Format:         req.Format,
		Flags:          req.Flags,
		ExtraArgs:      req.ExtraArgs,
		StagingURL:     req.StagingURL,
		DestinationURL: req.DestinationURL,
	}
	return doc, nil
}

// Clone deep-copies doc so callers can hold a mutable working copy
// without risking aliasing the document JobStore persisted, per
// spec.md §4.1's clone contract.
func (d *OperationDocument) Clone() *OperationDocument {
	clone := *d

	clone.Sources = append([]Source(nil), d.Sources...)
	for i := range clone.Sources {
		clone.Sources[i].Variables = append([]string(nil), d.Sources[i].Variables...)
		clone.Sources[i].CoordinateVars = append([]string(nil), d.Sources[i].CoordinateVars...)
		clone.Sources[i].Granules = append([]string(nil), d.Sources[i].Granules...)
	}

	clone.Subset.Dimensions = append([]DimensionRange(nil), d.Subset.Dimensions...)
	clone.Subset.Variables = append([]string(nil), d.Subset.Variables...)
	if d.Subset.Point != nil {
		p := *d.Subset.Point
		clone.Subset.Point = &p
	}
	if d.Subset.BBox != nil {
		bb := *d.Subset.BBox
		clone.Subset.BBox = &bb
	}
	if d.Subset.Shape != nil {
		sh := *d.Subset.Shape
		clone.Subset.Shape = &sh
	}
	if d.Subset.Temporal != nil {
		t := *d.Subset.Temporal
		clone.Subset.Temporal = &t
	}

	if d.Format.Width != nil {
		v := *d.Format.Width
		clone.Format.Width = &v
	}
	if d.Format.Height != nil {
		v := *d.Format.Height
		clone.Format.Height = &v
	}
	if d.Format.DPI != nil {
		v := *d.Format.DPI
		clone.Format.DPI = &v
	}
	if d.Format.ScaleExtent != nil {
		v := *d.Format.ScaleExtent
		clone.Format.ScaleExtent = &v
	}
	if d.Format.ScaleSize != nil {
		v := *d.Format.ScaleSize
		clone.Format.ScaleSize = &v
	}

	clone.Flags.ExtendDimensions = append([]string(nil), d.Flags.ExtendDimensions...)

	clone.ExtraArgs = make(map[string]string, len(d.ExtraArgs))
	for k, v := range d.ExtraArgs {
		clone.ExtraArgs[k] = v
	}

	clone.EncryptedToken = append([]byte(nil), d.EncryptedToken...)

	return &clone
}
