package registry

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	herrors "github.com/Azure/harmony/pkg/herrors"
)

// yamlConfig is the on-disk shape of services.yaml, parsed before
// environment substitution and manual-collection overrides are applied.
type yamlConfig struct {
	Services []yamlService `yaml:"services"`
}

type yamlService struct {
	Name                  string            `yaml:"name"`
	SupportsBBox          bool              `yaml:"supportsBbox"`
	SupportsShape         bool              `yaml:"supportsShape"`
	SupportsTemporal      bool              `yaml:"supportsTemporal"`
	SupportsVariable      bool              `yaml:"supportsVariable"`
	SupportsMultiVariable bool              `yaml:"supportsMultiVariable"`
	SupportsDimension     bool              `yaml:"supportsDimension"`
	SupportsReproject     bool              `yaml:"supportsReproject"`
	SupportsExtend        bool              `yaml:"supportsExtend"`
	SupportsAreaAveraging bool              `yaml:"supportsAreaAveraging"`
	SupportsTimeAveraging bool              `yaml:"supportsTimeAveraging"`
	SupportsConcatenate   bool              `yaml:"supportsConcatenate"`
	OutputFormats         []string          `yaml:"outputFormats"`
	ConcurrencyCap        int               `yaml:"concurrencyCap"`
	GranuleLimit          int               `yaml:"granuleLimit"`
	SyncByDefault         bool              `yaml:"syncByDefault"`
	UMMSID                string            `yaml:"ummSId"`
	AllCollections        bool              `yaml:"allCollections"`
	Collections           []string          `yaml:"collections"`
	Steps                 []yamlStep        `yaml:"steps"`
}

type yamlStep struct {
	Image          string   `yaml:"image"`
	Operations     []string `yaml:"operations"`
	MaxBatchInputs int      `yaml:"maxBatchInputs"`
	MaxBatchBytes  int64    `yaml:"maxBatchBytes"`
	Sequential     bool     `yaml:"sequential"`
	Batched        bool     `yaml:"batched"`
}

// Sources names where ServiceRegistry config material comes from, per
// spec.md §4.2 ("resolves per-service environment substitutions ...
// attaches any manual collection overrides from environment").
type Sources struct {
	// YAML is the raw contents of services.yaml (batching shape, step
	// chains, predicates) — declarative structure env vars can't express.
	YAML []byte
	// Environ is the process environment, injected for testability; pass
	// os.Environ() in production.
	Environ []string
	// GlobalGranuleCap bounds every service's batching inputs, per
	// spec.md §4.2 ("bounded by the global granule cap").
	GlobalGranuleCap int
}

// Load builds and validates the ServiceConfig list from src, per spec.md
// §4.2's load contract. Validation failures are startup-fatal.
func Load(src Sources) ([]ServiceConfig, error) {
	var doc yamlConfig
	if len(src.YAML) > 0 {
		if err := yaml.Unmarshal(src.YAML, &doc); err != nil {
			return nil, herrors.Internal(err, "failed to parse services.yaml").Build()
		}
	}

	env := parseEnviron(src.Environ)

	configs := make([]ServiceConfig, 0, len(doc.Services))
	for _, ys := range doc.Services {
		cfg := ServiceConfig{
			Name:                  ys.Name,
			SupportsBBox:          ys.SupportsBBox,
			SupportsShape:         ys.SupportsShape,
			SupportsTemporal:      ys.SupportsTemporal,
			SupportsVariable:      ys.SupportsVariable,
			SupportsMultiVariable: ys.SupportsMultiVariable,
			SupportsDimension:     ys.SupportsDimension,
			SupportsReproject:     ys.SupportsReproject,
			SupportsExtend:        ys.SupportsExtend,
			SupportsAreaAveraging: ys.SupportsAreaAveraging,
			SupportsTimeAveraging: ys.SupportsTimeAveraging,
			SupportsConcatenate:   ys.SupportsConcatenate,
			OutputFormats:         ys.OutputFormats,
			ConcurrencyCap:        ys.ConcurrencyCap,
			GranuleLimit:          ys.GranuleLimit,
			SyncByDefault:         ys.SyncByDefault,
			UMMSID:                ys.UMMSID,
			AllCollections:        ys.AllCollections,
		}

		for _, cid := range ys.Collections {
			cfg.Collections = append(cfg.Collections, CollectionEntry{CollectionID: cid})
		}
		if extra, ok := env[serviceEnvName(ys.Name, "COLLECTIONS")]; ok {
			for _, cid := range strings.Split(extra, ",") {
				cid = strings.TrimSpace(cid)
				if cid != "" {
					cfg.Collections = append(cfg.Collections, CollectionEntry{CollectionID: cid})
				}
			}
		}

		for _, st := range ys.Steps {
			cfg.Steps = append(cfg.Steps, Step{
				Image:          st.Image,
				Operations:     st.Operations,
				MaxBatchInputs: st.MaxBatchInputs,
				MaxBatchBytes:  st.MaxBatchBytes,
				Sequential:     st.Sequential,
				Batched:        st.Batched,
			})
		}

		if err := validate(cfg, src.GlobalGranuleCap); err != nil {
			return nil, err
		}
		configs = append(configs, cfg)
	}

	return configs, nil
}

// validate enforces spec.md §4.2's load-time checks: batching inputs
// positive and bounded by the global cap, the CMR-query image declared
// sequential, a collection allow-list or the all-collections flag, and a
// UMM-S id unless all-collections.
func validate(cfg ServiceConfig, globalGranuleCap int) error {
	for _, step := range cfg.Steps {
		if step.MaxBatchInputs < 0 {
			return fail(cfg.Name, "batching max_inputs must be a positive integer")
		}
		if globalGranuleCap > 0 && step.MaxBatchInputs > globalGranuleCap {
			return fail(cfg.Name, fmt.Sprintf("batching max_inputs %d exceeds global granule cap %d", step.MaxBatchInputs, globalGranuleCap))
		}
		if isCMRQueryImage(step.Image) && !step.Sequential {
			return fail(cfg.Name, "the CMR-query image must be declared sequential")
		}
	}

	if !cfg.AllCollections && len(cfg.Collections) == 0 {
		return fail(cfg.Name, "service must declare a collection allow-list or the all-collections flag")
	}
	if !cfg.AllCollections && cfg.UMMSID == "" {
		return fail(cfg.Name, "service not marked all-collections requires a UMM-S id")
	}
	return nil
}

func isCMRQueryImage(image string) bool {
	return strings.Contains(image, "query-cmr")
}

func fail(service, msg string) error {
	return herrors.New().Kind(herrors.KindServer).
		Messagef("service %q registry validation failed: %s", service, msg).WithLocation().Build()
}

func parseEnviron(environ []string) map[string]string {
	out := make(map[string]string, len(environ))
	for _, kv := range environ {
		if idx := strings.IndexByte(kv, '='); idx >= 0 {
			out[kv[:idx]] = kv[idx+1:]
		}
	}
	return out
}

// serviceEnvName mirrors spec.md §6's convention in reverse: given a
// service name with dashes, produce the <SERVICE>_<SUFFIX> env var name
// (dashes -> underscores, uppercased).
func serviceEnvName(serviceName, suffix string) string {
	return strings.ToUpper(strings.ReplaceAll(serviceName, "-", "_")) + "_" + suffix
}

// parseIntEnv parses a per-service integer override (e.g. a concurrency
// cap supplied via environment), keeping "integers parsed as integers,
// strings as-is" explicit per spec.md §4.2. Load does not call it.
func parseIntEnv(env map[string]string, key string) (int, bool) {
	raw, ok := env[key]
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return n, true
}
