package report

import "fmt"

// FormatSize renders a byte count using binary (1024-based) units with
// two decimals, e.g. 1536 -> "1.50 KB".
func FormatSize(size uint64) string {
	value := float64(size)

	for _, unit := range []string{"B", "KB", "MB", "GB", "TB"} {
		if value < 1024 {
			return fmt.Sprintf("%.2f %s", value, unit)
		}
		value /= 1024
	}

	return fmt.Sprintf("%.2f PB", value)
}
