package sqlite

import (
	"fmt"
	"strings"
	"time"

	"github.com/philschmid/gemdocs"
)

// timeLayout stores timestamps with sub-second precision so consecutive
// writes to the same document get distinct last_updated values.
const timeLayout = time.RFC3339Nano

// formatTime formats t in UTC for storage.
func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

// parseTime parses a stored timestamp.
// Returns an error if parsing fails with a descriptive message including the field name.
func parseTime(value, fieldName string) (time.Time, error) {
	t, err := time.Parse(timeLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse %s: %w", fieldName, err)
	}
	return t, nil
}

// translateMatchError reports full-text query syntax errors as EINVALID.
func translateMatchError(err error, query string) error {
	if err != nil && strings.Contains(err.Error(), "fts5:") {
		return gemdocs.Errorf(gemdocs.EINVALID, "invalid search query %q: %v", query, err)
	}
	return err
}
