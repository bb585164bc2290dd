package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
)

// ErrManifestNotFound reports a manifest path that does not exist.
var ErrManifestNotFound = errors.New("dataset: manifest not found")

// Entry is one manifest row: the path of a source recording and the path of
// its aligned target recording.
type Entry struct {
	Source string
	Target string
}

// LoadManifest reads the tab-separated pairing table at path. The table
// needs a header row naming at least the columns "source" and "target";
// column order is free and extra columns are ignored. Row order is
// preserved — an entry's slice position is its file index.
//
// A missing file fails with [ErrManifestNotFound]. A header-only table
// yields zero entries, which is valid.
func LoadManifest(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrManifestNotFound, path)
		}
		return nil, fmt.Errorf("dataset: open manifest %s: %w", path, err)
	}
	defer f.Close()

	entries, err := ReadManifest(f)
	if err != nil {
		return nil, fmt.Errorf("dataset: manifest %s: %w", path, err)
	}
	return entries, nil
}

// ReadManifest parses manifest rows from r. Useful in tests where tables are
// constructed from string literals; most callers want [LoadManifest].
func ReadManifest(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.Comma = '\t'

	header, err := cr.Read()
	if err == io.EOF {
		return nil, errors.New("missing header row")
	}
	if err != nil {
		return nil, err
	}

	sourceCol, targetCol := -1, -1
	for i, name := range header {
		switch name {
		case "source":
			sourceCol = i
		case "target":
			targetCol = i
		}
	}
	if sourceCol < 0 {
		return nil, errors.New(`missing required column "source"`)
	}
	if targetCol < 0 {
		return nil, errors.New(`missing required column "target"`)
	}

	var entries []Entry
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		entries = append(entries, Entry{Source: record[sourceCol], Target: record[targetCol]})
	}
	return entries, nil
}
