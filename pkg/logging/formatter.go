/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: formatter.go
Description: Custom log formatters for subcrack. Provides compact, coloured console
output with sorted structured fields and search-specific prefixes and values.
*/

package logging

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// CustomFormatter provides compact, structured logging output
type CustomFormatter struct {
	Timestamp bool
	Caller    bool
	Colors    bool
}

// Format formats a log entry
func (f *CustomFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	return f.format(entry, "", f.formatValue), nil
}

// format assembles timestamp, level, optional prefix, caller, message and fields
func (f *CustomFormatter) format(entry *logrus.Entry, prefix string, value func(key string, v interface{}) string) []byte {
	var output strings.Builder

	if f.Timestamp {
		timestamp := entry.Time.Format("2006-01-02 15:04:05.000")
		if f.Colors {
			output.WriteString(fmt.Sprintf("\033[36m%s\033[0m ", timestamp)) // Cyan
		} else {
			output.WriteString(fmt.Sprintf("%s ", timestamp))
		}
	}

	level := strings.ToUpper(entry.Level.String())
	if f.Colors {
		output.WriteString(fmt.Sprintf("\033[%dm%s\033[0m ", f.getLevelColor(entry.Level), level))
	} else {
		output.WriteString(fmt.Sprintf("%s ", level))
	}

	if prefix != "" {
		if f.Colors {
			output.WriteString(fmt.Sprintf("\033[35m[%s]\033[0m ", prefix)) // Magenta
		} else {
			output.WriteString(fmt.Sprintf("[%s] ", prefix))
		}
	}

	if f.Caller && entry.HasCaller() {
		caller := fmt.Sprintf("%s:%d", entry.Caller.File, entry.Caller.Line)
		if f.Colors {
			output.WriteString(fmt.Sprintf("\033[33m[%s]\033[0m ", caller)) // Yellow
		} else {
			output.WriteString(fmt.Sprintf("[%s] ", caller))
		}
	}

	output.WriteString(entry.Message)

	if len(entry.Data) > 0 {
		output.WriteString(" ")
		output.WriteString(f.formatFields(entry.Data, value))
	}

	output.WriteString("\n")
	return []byte(output.String())
}

// getLevelColor returns the ANSI color code for a log level
func (f *CustomFormatter) getLevelColor(level logrus.Level) int {
	switch level {
	case logrus.DebugLevel:
		return 37 // White
	case logrus.InfoLevel:
		return 32 // Green
	case logrus.WarnLevel:
		return 33 // Yellow
	case logrus.ErrorLevel:
		return 31 // Red
	case logrus.FatalLevel, logrus.PanicLevel:
		return 35 // Magenta
	default:
		return 37 // White
	}
}

// formatFields formats structured fields sorted by key
func (f *CustomFormatter) formatFields(fields logrus.Fields, value func(key string, v interface{}) string) string {
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		formattedValue := value(key, fields[key])
		if f.Colors {
			parts = append(parts, fmt.Sprintf("\033[34m%s\033[0m=\033[32m%s\033[0m", key, formattedValue)) // Blue key, Green value
		} else {
			parts = append(parts, fmt.Sprintf("%s=%s", key, formattedValue))
		}
	}

	return strings.Join(parts, " ")
}

// formatValue formats a field value appropriately
func (f *CustomFormatter) formatValue(_ string, value interface{}) string {
	switch v := value.(type) {
	case time.Duration:
		return v.String()
	case time.Time:
		return v.Format("15:04:05.000")
	case string:
		if len(v) > 80 {
			return fmt.Sprintf("%s...", v[:80])
		}
		return v
	case error:
		return v.Error()
	default:
		return fmt.Sprintf("%v", v)
	}
}

// SearchFormatter adds search-specific prefixes and value formatting
type SearchFormatter struct {
	CustomFormatter
}

// Format formats search log entries with a prefix derived from the message
func (f *SearchFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	return f.format(entry, f.getSearchPrefix(entry.Message), f.formatSearchValue), nil
}

// getSearchPrefix returns a prefix based on the log message
func (f *SearchFormatter) getSearchPrefix(message string) string {
	switch {
	case strings.HasPrefix(message, "Search"):
		return "SEARCH"
	case strings.HasPrefix(message, "Block"):
		return "BLOCK"
	case strings.HasPrefix(message, "Chunk"):
		return "WORKER"
	case strings.Contains(message, "Statistics"):
		return "STATS"
	case strings.Contains(message, "workers"):
		return "ENGINE"
	default:
		return ""
	}
}

// formatSearchValue formats search-specific field values
func (f *SearchFormatter) formatSearchValue(key string, value interface{}) string {
	switch key {
	case "search":
		if s, ok := value.(string); ok && len(s) > 8 {
			return s[:8]
		}
	case "score":
		if v, ok := value.(float64); ok {
			return fmt.Sprintf("%.6g", v)
		}
	case "candidates_per_sec":
		if v, ok := value.(float64); ok {
			return fmt.Sprintf("%.0f/sec", v)
		}
	}

	return f.formatValue(key, value)
}
