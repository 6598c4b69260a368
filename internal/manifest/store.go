package manifest

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"

	"heli-ticketing/internal/flight"
	"heli-ticketing/internal/models"
)

// Column order is the manifest schema; existing files depend on it, so new
// columns go at the end only.
var manifestColumns = []string{
	"ticket_no", "timestamp", "name", "body_weight", "num_bags", "bag_weight",
	"email", "flight_date", "flight_time", "route", "registration",
	"pilot", "dg_ack",
}

// Store keeps one append-only CSV per flight under manifestDir. Appends to
// the same flight are serialized with a per-flight mutex; the files stay
// plain CSV so they can be downloaded and mailed as-is.
type Store struct {
	manifestDir string
	ticketsDir  string

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewStore(manifestDir, ticketsDir string) (*Store, error) {
	if err := os.MkdirAll(manifestDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create manifest dir: %w", err)
	}
	return &Store{
		manifestDir: manifestDir,
		ticketsDir:  ticketsDir,
		locks:       make(map[string]*sync.Mutex),
	}, nil
}

func (s *Store) flightLock(flightID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[flightID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[flightID] = lock
	}
	return lock
}

func (s *Store) path(flightID string) string {
	return filepath.Join(s.manifestDir, flightID+".csv")
}

// FilePath exposes the manifest's on-disk location for download handlers and
// email attachments.
func (s *Store) FilePath(flightID string) string {
	return s.path(flightID)
}

// Append writes one row to the flight's manifest, creating the file with a
// header row first when it does not exist yet.
func (s *Store) Append(flightID string, sub models.Submission) error {
	lock := s.flightLock(flightID)
	lock.Lock()
	defer lock.Unlock()

	path := s.path(flightID)
	_, statErr := os.Stat(path)
	isNew := os.IsNotExist(statErr)

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open manifest %s: %w", flightID, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if isNew {
		if err := w.Write(manifestColumns); err != nil {
			return fmt.Errorf("failed to write manifest header: %w", err)
		}
	}
	if err := w.Write(toRecord(sub)); err != nil {
		return fmt.Errorf("failed to write manifest row: %w", err)
	}
	w.Flush()
	return w.Error()
}

// ReadAll returns the flight's rows in submission order. A missing manifest
// is an empty flight, not an error.
func (s *Store) ReadAll(flightID string) ([]models.Submission, error) {
	f, err := os.Open(s.path(flightID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open manifest %s: %w", flightID, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest %s: %w", flightID, err)
	}
	if len(records) <= 1 {
		return nil, nil
	}

	rows := make([]models.Submission, 0, len(records)-1)
	for _, rec := range records[1:] {
		rows = append(rows, fromRecord(rec))
	}
	return rows, nil
}

// ListFlights unions flight ids found as manifest files and as ticket
// directories, sorted descending so ISO-dated ids list newest first.
func (s *Store) ListFlights() ([]string, error) {
	seen := make(map[string]struct{})

	entries, err := os.ReadDir(s.manifestDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest dir: %w", err)
	}
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".csv") {
			seen[strings.TrimSuffix(e.Name(), ".csv")] = struct{}{}
		}
	}

	if ticketDirs, err := os.ReadDir(s.ticketsDir); err == nil {
		for _, e := range ticketDirs {
			if e.IsDir() {
				seen[e.Name()] = struct{}{}
			}
		}
	}

	flights := make([]string, 0, len(seen))
	for id := range seen {
		flights = append(flights, id)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(flights)))
	return flights, nil
}

// Summarize totals the flight's weights and counts. Non-numeric values count
// as zero. Flight attributes come from the first row; an empty manifest falls
// back to parsing them out of the flight id.
func (s *Store) Summarize(flightID string) (models.FlightSummary, error) {
	rows, err := s.ReadAll(flightID)
	if err != nil {
		return models.FlightSummary{}, err
	}

	summary := models.FlightSummary{
		FlightID:       flightID,
		PassengerCount: len(rows),
		TicketCount:    s.countTickets(flightID),
	}

	for _, row := range rows {
		summary.TotalBodyWeight += parseFloat(row.BodyWeight)
		summary.TotalBagWeight += parseFloat(row.BagWeight)
		summary.TotalBags += parseInt(row.NumBags)
	}

	if len(rows) > 0 {
		first := rows[0]
		summary.Date = first.FlightDate
		summary.Time = first.FlightTime
		summary.Route = first.Route
		summary.Registration = first.Registration
		summary.Pilot = first.Pilot
	} else if date, route, reg, ok := flight.ParseID(flightID); ok {
		summary.Date = date
		summary.Route = route
		summary.Registration = reg
	}

	return summary, nil
}

func (s *Store) countTickets(flightID string) int {
	entries, err := os.ReadDir(filepath.Join(s.ticketsDir, flightID))
	if err != nil {
		return 0
	}
	count := 0
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".pdf") {
			count++
		}
	}
	return count
}

func toRecord(sub models.Submission) []string {
	return []string{
		strconv.FormatInt(sub.TicketNo, 10),
		sub.Timestamp,
		sub.Name,
		sub.BodyWeight,
		sub.NumBags,
		sub.BagWeight,
		sub.Email,
		sub.FlightDate,
		sub.FlightTime,
		sub.Route,
		sub.Registration,
		sub.Pilot,
		strconv.FormatBool(sub.DGAck),
	}
}

func fromRecord(rec []string) models.Submission {
	get := func(i int) string {
		if i < len(rec) {
			return rec[i]
		}
		return ""
	}
	ticketNo, _ := strconv.ParseInt(get(0), 10, 64)
	dgAck, _ := strconv.ParseBool(get(12))
	return models.Submission{
		TicketNo:     ticketNo,
		Timestamp:    get(1),
		Name:         get(2),
		BodyWeight:   get(3),
		NumBags:      get(4),
		BagWeight:    get(5),
		Email:        get(6),
		FlightDate:   get(7),
		FlightTime:   get(8),
		Route:        get(9),
		Registration: get(10),
		Pilot:        get(11),
		DGAck:        dgAck,
	}
}

func parseFloat(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}

func parseInt(s string) int {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return v
}
