package stats

import "strings"

const sparkChars = " .:-=+*#%@"

// Sparkline renders counts as one character each, scaled from zero to the
// largest count. Empty buckets stay blank.
func Sparkline(counts []int64) string {
	var peak int64
	for _, c := range counts {
		if c > peak {
			peak = c
		}
	}
	var b strings.Builder
	for _, c := range counts {
		idx := 0
		if peak > 0 && c > 0 {
			levels := int64(len(sparkChars) - 1)
			idx = int((c*levels + peak - 1) / peak)
		}
		if idx >= len(sparkChars) {
			idx = len(sparkChars) - 1
		}
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}
