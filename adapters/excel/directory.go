package excel

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"dfsummary/internal"
	"dfsummary/ports"
)

// DirectorySources returns one source per CSV or XLSX file directly inside
// dir, sorted by file name. A missing dir yields no sources.
func DirectorySources(dir string, config ReaderConfig, logger *internal.Logger) ([]ports.DatasetSource, error) {
	if dir == "" {
		return nil, nil
	}
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		logger.Warn("[DataReader] data directory %s does not exist", dir)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("list data directory %s: %w", dir, err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".csv", ".xlsx":
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	sources := make([]ports.DatasetSource, 0, len(names))
	for _, name := range names {
		sources = append(sources, NewDataReader(filepath.Join(dir, name), config, logger))
	}
	return sources, nil
}
