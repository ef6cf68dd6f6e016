package upload

import (
	"fmt"
	"math"
	"strconv"
)

// FormatSize renders a byte count with two trimmed decimals: "0 Bytes",
// "512 Bytes", "1.5 KB", "2.25 MB".
func FormatSize(bytes int64) string {
	if bytes <= 0 {
		return "0 Bytes"
	}
	units := []string{"Bytes", "KB", "MB", "GB"}
	i := int(math.Floor(math.Log(float64(bytes)) / math.Log(1024)))
	i = min(i, len(units)-1)
	value := float64(bytes) / math.Pow(1024, float64(i))
	rounded := math.Round(value*100) / 100
	return strconv.FormatFloat(rounded, 'f', -1, 64) + " " + units[i]
}

// FormatSizeShort renders a byte count with one decimal and a binary prefix:
// "512 B", "1.5 KB", "3.0 MB".
func FormatSizeShort(bytes int64) string {
	if bytes < 1024 {
		return fmt.Sprintf("%d B", bytes)
	}
	const prefixes = "KMGTPE"
	exp := int(math.Floor(math.Log(float64(bytes)) / math.Log(1024)))
	exp = min(exp, len(prefixes))
	value := float64(bytes) / math.Pow(1024, float64(exp))
	return fmt.Sprintf("%.1f %cB", value, prefixes[exp-1])
}
