package batch

import "fmt"

// TruncateURL shortens url to at most maxLen runes for progress output.
// Long URLs keep their tail, where the page-specific path lives.
func TruncateURL(url string, maxLen int) string {
	runes := []rune(url)
	switch {
	case maxLen <= 0:
		return ""
	case len(runes) <= maxLen:
		return url
	case maxLen <= 3:
		return string(runes[:maxLen])
	}
	return "..." + string(runes[len(runes)-(maxLen-3):])
}

var byteUnits = []string{"KB", "MB", "GB"}

// FormatBytes renders a byte count using binary units.
func FormatBytes(n int) string {
	if n < 1024 {
		return fmt.Sprintf("%d B", n)
	}
	size := float64(n) / 1024
	unit := 0
	for size >= 1024 && unit < len(byteUnits)-1 {
		size /= 1024
		unit++
	}
	return fmt.Sprintf("%.1f %s", size, byteUnits[unit])
}
