package rag

import "strings"

const (
	defaultChunkSize = 1000 // runes per chunk
	defaultOverlap   = 200  // runes shared between neighbouring chunks
)

// splitChunks cuts text into overlapping fixed-size windows for indexing.
// Sizes are in runes so multi-byte characters never get split. The overlap
// keeps sentences that straddle a boundary retrievable from either side.
func splitChunks(text string, size, overlap int) []string {
	runes := []rune(strings.TrimSpace(text))
	if len(runes) == 0 {
		return nil
	}

	if size <= 0 {
		size = defaultChunkSize
	}
	if overlap < 0 || overlap >= size {
		overlap = 0
	}

	step := size - overlap
	var chunks []string
	for start := 0; start < len(runes); start += step {
		end := start + size
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[start:end]))
		if end == len(runes) {
			break
		}
	}

	return chunks
}
