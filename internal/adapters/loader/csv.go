package loader

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"os"
)

// readCSV reads every record of a comma-separated file. Blank lines are skipped
// and every row must have as many fields as the header.
func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrNotFound, path, err)
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(bufio.NewReader(f))
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrLoad, path, err)
	}
	return records, nil
}
