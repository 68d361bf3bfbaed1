package export

import "fmt"

// BadgeURL returns a shields.io badge for the quality score.
func BadgeURL(score int) string {
	return fmt.Sprintf("https://img.shields.io/badge/sourcescan-%d%%2F100-%s", score, badgeColor(score))
}

func badgeColor(score int) string {
	switch {
	case score >= 90:
		return "brightgreen"
	case score >= 80:
		return "green"
	case score >= 70:
		return "yellow"
	case score >= 60:
		return "orange"
	case score >= 50:
		return "red"
	default:
		return "critical"
	}
}
