package batch

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBufferFlushesAtMaxInputs(t *testing.T) {
	b := New(2, 0)
	require.False(t, b.Add(Output{Ref: "a", Bytes: 10}))
	require.True(t, b.Add(Output{Ref: "b", Bytes: 10}))

	flushed := b.Flush()
	require.Len(t, flushed, 2)
	require.Equal(t, 0, b.Len())
}

func TestBufferFlushesAtMaxBytes(t *testing.T) {
	b := New(0, 100)
	require.False(t, b.Add(Output{Ref: "a", Bytes: 60}))
	require.True(t, b.Add(Output{Ref: "b", Bytes: 60}))
}

func TestFlushAllRespectsConcatScenario(t *testing.T) {
	outputs := []Output{
		{Ref: "o1", Bytes: 1}, {Ref: "o2", Bytes: 1}, {Ref: "o3", Bytes: 1},
		{Ref: "o4", Bytes: 1}, {Ref: "o5", Bytes: 1},
	}

	batches := FlushAll(outputs, 2, 0)
	require.Len(t, batches, 3)
	require.Len(t, batches[0], 2)
	require.Len(t, batches[1], 2)
	require.Len(t, batches[2], 1)

	var total int
	for _, batch := range batches {
		total += len(batch)
	}
	require.Equal(t, len(outputs), total)
}
