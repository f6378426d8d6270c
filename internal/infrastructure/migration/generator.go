package migration

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

var nameSanitizer = regexp.MustCompile(`[^a-z0-9_]+`)

// Generate creates an empty up/down migration file pair named with the
// current timestamp, matching golang-migrate's expected layout.
func Generate(name string) (string, string, error) {
	clean := nameSanitizer.ReplaceAllString(strings.ToLower(strings.TrimSpace(name)), "_")
	if clean == "" {
		return "", "", fmt.Errorf("migration name must contain letters or digits")
	}

	ts := time.Now().UTC().Format("20060102150405")
	upPath := filepath.Join(migrationsPath, fmt.Sprintf("%s_%s.up.sql", ts, clean))
	downPath := filepath.Join(migrationsPath, fmt.Sprintf("%s_%s.down.sql", ts, clean))

	if err := os.MkdirAll(migrationsPath, 0o755); err != nil {
		return "", "", fmt.Errorf("create migrations dir: %w", err)
	}
	for _, p := range []string{upPath, downPath} {
		if err := os.WriteFile(p, []byte("-- "+clean+"\n"), 0o644); err != nil {
			return "", "", fmt.Errorf("write %s: %w", p, err)
		}
	}
	return upPath, downPath, nil
}
