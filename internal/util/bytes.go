// Package util holds small formatting helpers shared by the usecases.
package util

import "fmt"

// FormatBytes renders a byte count with a binary unit, e.g. 5242880 as "5.0 MB".
func FormatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}

	const units = "KMGTPE"
	div, exp := int64(unit), 0
	for rest := n / unit; rest >= unit && exp < len(units)-1; rest /= unit {
		div *= unit
		exp++
	}

	return fmt.Sprintf("%.1f %cB", float64(n)/float64(div), units[exp])
}
