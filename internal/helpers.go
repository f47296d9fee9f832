package internal

import (
	"time"
)

// IsStringInSlice iterates over a slice of strings, looking for the given
// string. If found, true is returned. Otherwise, false is returned.
func IsStringInSlice(needle string, haystack []string) bool {
	for _, hs := range haystack {
		if needle == hs {
			return true
		}
	}

	return false
}

// CurrentTimestamp returns the current datetime in format YYYYMMDDTHHMMSS
func CurrentTimestamp(layout string) string {
	return time.Now().UTC().Format(layout)
}
