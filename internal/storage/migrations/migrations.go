// Package migrations bundles the SQL schema files and applies them at
// startup. Every file must be safe to re-run; the agent migrates on
// each boot without tracking versions.
package migrations

import (
	"fmt"
	"io/fs"
	"sort"
	"strings"
)

// sqlFiles lists the .sql entries of dir in lexical order, which is
// the order they are applied in.
func sqlFiles(fsys fs.FS, dir string) ([]string, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("read %s migrations: %w", dir, err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".sql") {
			continue
		}
		files = append(files, e.Name())
	}
	sort.Strings(files)
	return files, nil
}
