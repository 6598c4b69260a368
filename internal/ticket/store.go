package ticket

import (
	"archive/zip"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"heli-ticketing/internal/flight"
)

// Store writes ticket PDFs into one directory per flight. Documents are
// immutable once written; nothing here ever deletes or rewrites one.
type Store struct {
	baseDir string
}

func NewStore(baseDir string) (*Store, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create tickets dir: %w", err)
	}
	return &Store{baseDir: baseDir}, nil
}

// Filename builds the canonical ticket filename for a passenger.
func Filename(t time.Time, passengerName string) string {
	return fmt.Sprintf("ticket_%s_%s.pdf", t.Format("20060102_150405"), flight.Slugify(passengerName))
}

// Save writes the PDF under the flight's directory, creating it on first use.
func (s *Store) Save(flightID, filename string, pdf []byte) (string, error) {
	dir := filepath.Join(s.baseDir, flightID)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create flight dir: %w", err)
	}
	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, pdf, 0644); err != nil {
		return "", fmt.Errorf("failed to write ticket: %w", err)
	}
	return path, nil
}

// List returns the flight's ticket filenames, sorted. A flight with no
// directory has no tickets.
func (s *Store) List(flightID string) ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(s.baseDir, flightID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read flight dir: %w", err)
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".pdf") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// HasTickets reports whether the flight has a ticket directory at all.
func (s *Store) HasTickets(flightID string) bool {
	info, err := os.Stat(filepath.Join(s.baseDir, flightID))
	return err == nil && info.IsDir()
}

// ZipAll bundles every ticket PDF for the flight into a deflate ZIP.
func (s *Store) ZipAll(flightID string) ([]byte, error) {
	names, err := s.List(flightID)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, name := range names {
		data, err := os.ReadFile(filepath.Join(s.baseDir, flightID, name))
		if err != nil {
			return nil, fmt.Errorf("failed to read ticket %s: %w", name, err)
		}
		w, err := zw.Create(name)
		if err != nil {
			return nil, fmt.Errorf("failed to add %s to zip: %w", name, err)
		}
		if _, err := w.Write(data); err != nil {
			return nil, fmt.Errorf("failed to write %s to zip: %w", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize zip: %w", err)
	}
	return buf.Bytes(), nil
}
