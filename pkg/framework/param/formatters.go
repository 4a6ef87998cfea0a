package param

import (
	"fmt"
	"strconv"
	"strings"
)

// Common parameter formatters and parsers

// OnOffFormatter formats toggle values
func OnOffFormatter(value float64) string {
	if value >= 0.5 {
		return "On"
	}
	return "Off"
}

// OnOffParser accepts on/off, true/false, yes/no and numbers
func OnOffParser(str string) (float64, error) {
	switch strings.ToLower(strings.TrimSpace(str)) {
	case "on", "true", "yes":
		return 1, nil
	case "off", "false", "no":
		return 0, nil
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(str), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid toggle value: %s", str)
	}
	if v >= 0.5 {
		return 1, nil
	}
	return 0, nil
}

// DecibelFormatter formats dB values
func DecibelFormatter(db float64) string {
	if db <= -60 {
		return "-∞ dB"
	}
	return fmt.Sprintf("%.1f dB", db)
}

// DecibelParser parses dB strings
func DecibelParser(str string) (float64, error) {
	if strings.Contains(str, "∞") || strings.Contains(str, "inf") {
		return -96.0, nil
	}
	str = strings.TrimSuffix(strings.TrimSpace(str), "dB")
	str = strings.TrimSuffix(strings.TrimSpace(str), "db")
	return strconv.ParseFloat(strings.TrimSpace(str), 64)
}
