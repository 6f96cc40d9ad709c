// Package batch implements the per-step batching buffer the
// WorkCoordinator consults for steps marked `batched` (spec.md §4.5):
// the Planner does not enumerate batched-step items upfront; instead
// outputs accumulate here until a threshold or step-terminal trigger
// flushes one work item.
package batch

// Output is one unit the buffer can accumulate — typically a STAC
// catalog URL produced by a completed upstream work item, sized in
// bytes for the max_bytes threshold.
type Output struct {
	Ref     string
	Bytes   int64
	Results []string
}

// Buffer accumulates Outputs for one (job, step) pair until MaxInputs or
// MaxBytes is reached, or the caller forces a flush because the source
// step has gone terminal.
type Buffer struct {
	MaxInputs int
	MaxBytes  int64

	pending []Output
	bytes   int64
}

// New constructs a Buffer with the given thresholds. A non-positive
// threshold means that dimension never triggers a flush on its own.
func New(maxInputs int, maxBytes int64) *Buffer {
	return &Buffer{MaxInputs: maxInputs, MaxBytes: maxBytes}
}

// Add appends an output and reports whether the buffer should flush now.
func (b *Buffer) Add(out Output) (shouldFlush bool) {
	b.pending = append(b.pending, out)
	b.bytes += out.Bytes
	return b.thresholdReached()
}

func (b *Buffer) thresholdReached() bool {
	if b.MaxInputs > 0 && len(b.pending) >= b.MaxInputs {
		return true
	}
	if b.MaxBytes > 0 && b.bytes >= b.MaxBytes {
		return true
	}
	return false
}

// Len reports how many outputs are currently buffered.
func (b *Buffer) Len() int { return len(b.pending) }

// Flush drains the buffer, returning every buffered output in arrival
// order and one work item's worth of inputs (spec.md §4.5 "emits one
// work item whose inputs are the buffered set"). Flushing an empty
// buffer returns nil.
func (b *Buffer) Flush() []Output {
	if len(b.pending) == 0 {
		return nil
	}
	out := b.pending
	b.pending = nil
	b.bytes = 0
	return out
}

// FlushAll repeatedly slices off MaxInputs/MaxBytes-bounded batches from
// a full set of outputs — used when many outputs arrive at once (e.g.
// the source step finished while several outputs were already queued) —
// so every emitted batch still respects both thresholds, per spec.md §8
// property 6 ("each item's input set size <= max_batch_inputs and byte
// total <= max_batch_bytes").
func FlushAll(outputs []Output, maxInputs int, maxBytes int64) [][]Output {
	if len(outputs) == 0 {
		return nil
	}
	var batches [][]Output
	var cur []Output
	var curBytes int64
	for _, o := range outputs {
		cur = append(cur, o)
		curBytes += o.Bytes
		atInputCap := maxInputs > 0 && len(cur) >= maxInputs
		atByteCap := maxBytes > 0 && curBytes >= maxBytes
		if atInputCap || atByteCap {
			batches = append(batches, cur)
			cur = nil
			curBytes = 0
		}
	}
	if len(cur) > 0 {
		batches = append(batches, cur)
	}
	return batches
}
