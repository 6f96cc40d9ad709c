package registry

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const sampleYAML = `
services:
  - name: query-cmr
    allCollections: true
    steps:
      - image: harmony/query-cmr:latest
        sequential: true
        maxBatchInputs: 2000
  - name: subsetter
    ummSId: "S1234-EEDTEST"
    supportsBbox: true
    collections:
      - C1233800302-EEDTEST
    steps:
      - image: harmony/subsetter:latest
        maxBatchInputs: 1
`

func TestLoadParsesAndValidates(t *testing.T) {
	configs, err := Load(Sources{
		YAML:             []byte(sampleYAML),
		GlobalGranuleCap: 2000,
	})
	require.NoError(t, err)
	require.Len(t, configs, 2)
	require.Equal(t, "query-cmr", configs[0].Name)
	require.True(t, configs[0].AllCollections)
	require.Equal(t, "subsetter", configs[1].Name)
	require.Equal(t, "S1234-EEDTEST", configs[1].UMMSID)
}

func TestLoadRejectsCMRQueryNotSequential(t *testing.T) {
	const badYAML = `
services:
  - name: query-cmr
    allCollections: true
    steps:
      - image: harmony/query-cmr:latest
        sequential: false
`
	_, err := Load(Sources{YAML: []byte(badYAML)})
	require.Error(t, err)
}

func TestLoadRejectsMissingCollectionAllowList(t *testing.T) {
	const badYAML = `
services:
  - name: subsetter
`
	_, err := Load(Sources{YAML: []byte(badYAML)})
	require.Error(t, err)
}

func TestLoadAppliesEnvironmentCollectionOverride(t *testing.T) {
	const yamlDoc = `
services:
  - name: subsetter
    ummSId: "S1234-EEDTEST"
    collections:
      - C1233800302-EEDTEST
`
	configs, err := Load(Sources{
		YAML:    []byte(yamlDoc),
		Environ: []string{"SUBSETTER_COLLECTIONS=C_OTHER,C_THIRD"},
	})
	require.NoError(t, err)
	require.Len(t, configs[0].Collections, 3)
}
