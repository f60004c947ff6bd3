package envfile

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Entry represents a single key-value pair from a .env file.
type Entry struct {
	Key   string
	Value string
}

// ParseFile reads a .env file and returns key-value entries in file order.
// It skips blank lines and lines starting with #. An optional "export "
// prefix and surrounding quotes are stripped.
func ParseFile(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening env file %s: %w", path, err)
	}
	defer f.Close()

	var entries []Entry
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimPrefix(line, "export ")
		key, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}
		entries = append(entries, Entry{
			Key:   strings.TrimSpace(key),
			Value: unquote(strings.TrimSpace(value)),
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading env file %s: %w", path, err)
	}
	return entries, nil
}

func unquote(v string) string {
	if len(v) >= 2 {
		switch {
		case v[0] == '"' && v[len(v)-1] == '"':
			if s, err := strconv.Unquote(v); err == nil {
				return s
			}
		case v[0] == '\'' && v[len(v)-1] == '\'':
			return v[1 : len(v)-1]
		}
	}
	return v
}

// quote wraps v in double quotes when it would not survive an unquoted round trip.
func quote(v string) string {
	if v == "" || !strings.ContainsAny(v, " \t#\"'\\\n") {
		return v
	}
	return strconv.Quote(v)
}

// sensitivePatterns are substrings that indicate a value should be redacted.
var sensitivePatterns = []string{"TOKEN", "SECRET", "PASSWORD", "KEY", "CREDENTIAL"}

// RedactValue returns a redacted version of value if the key name contains
// a sensitive pattern (case-insensitive substring match).
// Values with 4+ chars show the first 4 chars + "***".
// Values with fewer than 4 chars are fully redacted as "***".
func RedactValue(key, value string) string {
	upper := strings.ToUpper(key)
	for _, pattern := range sensitivePatterns {
		if strings.Contains(upper, pattern) {
			if len(value) >= 4 {
				return value[:4] + "***"
			}
			return "***"
		}
	}
	return value
}
