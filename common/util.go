package common

// SplitChunks partitions a slice into at most n contiguous chunks of
// near-equal length, preserving order.  The concatenation of the chunks is
// always the original slice.
func SplitChunks[T any](items []T, n int) [][]T {
	if len(items) == 0 {
		return nil
	}

	if n < 1 {
		n = 1
	}

	chunkLen := (len(items) + n - 1) / n

	var chunks [][]T
	for start := 0; start < len(items); start += chunkLen {
		end := start + chunkLen
		if end > len(items) {
			end = len(items)
		}

		chunks = append(chunks, items[start:end])
	}

	return chunks
}
