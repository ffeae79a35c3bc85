// Package textsplit splits long text into bounded-size pieces so model input
// limits are respected.
package textsplit

// DefaultChunkSize is the piece size used when no explicit size is configured.
const DefaultChunkSize = 500

// Chunks splits text into contiguous, non-overlapping pieces of at most size
// characters (runes), preserving original order. The final piece may be
// shorter. Empty input yields an empty slice; size <= 0 falls back to
// DefaultChunkSize.
func Chunks(text string, size int) []string {
	if size <= 0 {
		size = DefaultChunkSize
	}
	if text == "" {
		return []string{}
	}

	runes := []rune(text)
	out := make([]string, 0, (len(runes)+size-1)/size)
	for start := 0; start < len(runes); start += size {
		end := start + size
		if end > len(runes) {
			end = len(runes)
		}
		out = append(out, string(runes[start:end]))
	}
	return out
}
