package mockapi

import (
	"strings"
	"sync"
	"time"

	"github.com/five82/rastreo/internal/backend"
)

// Shipment status values served by the mock backend.
const (
	StatusCreated     = "Registrado"
	StatusPickedUp    = "Recolectado"
	StatusInWarehouse = "En almacén"
	StatusInTransit   = "En tránsito"
	StatusDelivered   = "Entregado"
)

// Checkpoint is one status change of a shipment.
type Checkpoint struct {
	Status   string
	Location string
	At       time.Time
}

// Shipment is a seeded package with its checkpoints, oldest first.
type Shipment struct {
	TrackingNumber string
	Checkpoints    []Checkpoint
}

// Store holds the shipments and the query history in memory.
type Store struct {
	mu        sync.Mutex
	shipments map[string]Shipment
	history   []backend.HistoryRecord
}

// NewStore builds a Store holding the given shipments.
func NewStore(shipments ...Shipment) *Store {
	s := &Store{shipments: make(map[string]Shipment, len(shipments))}
	for _, sh := range shipments {
		s.shipments[normalize(sh.TrackingNumber)] = sh
	}
	return s
}

// Track returns the shipment's updates, most recent first. Unknown numbers
// yield an empty slice.
func (s *Store) Track(number string) []backend.StatusUpdate {
	s.mu.Lock()
	defer s.mu.Unlock()

	sh, ok := s.shipments[normalize(number)]
	if !ok {
		return []backend.StatusUpdate{}
	}
	out := make([]backend.StatusUpdate, 0, len(sh.Checkpoints))
	for i := len(sh.Checkpoints) - 1; i >= 0; i-- {
		cp := sh.Checkpoints[i]
		out = append(out, backend.StatusUpdate{
			Status:     cp.Status,
			Location:   cp.Location,
			LastUpdate: cp.At.Format(backend.TimestampLayout),
		})
	}
	return out
}

// Record appends a query to the history.
func (s *Store) Record(number string, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = append(s.history, backend.HistoryRecord{
		Timestamp:      at.Format(backend.TimestampLayout),
		TrackingNumber: number,
	})
}

// History returns a copy of the query history, oldest first.
func (s *Store) History() []backend.HistoryRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]backend.HistoryRecord, len(s.history))
	copy(out, s.history)
	return out
}

func normalize(number string) string {
	return strings.ToUpper(strings.TrimSpace(number))
}

// SeedShipments returns a small fixed data set relative to now.
func SeedShipments(now time.Time) []Shipment {
	day := 24 * time.Hour
	return []Shipment{
		{
			TrackingNumber: "MX123456789",
			Checkpoints: []Checkpoint{
				{StatusCreated, "Guadalajara, JAL", now.Add(-3 * day)},
				{StatusPickedUp, "Guadalajara, JAL", now.Add(-3*day + 4*time.Hour)},
				{StatusInWarehouse, "Querétaro, QRO", now.Add(-2 * day)},
				{StatusInTransit, "Ciudad de México, CDMX", now.Add(-6 * time.Hour)},
			},
		},
		{
			TrackingNumber: "MX987654321",
			Checkpoints: []Checkpoint{
				{StatusCreated, "Monterrey, NL", now.Add(-5 * day)},
				{StatusInTransit, "Saltillo, COAH", now.Add(-4 * day)},
				{StatusDelivered, "Torreón, COAH", now.Add(-2 * day)},
			},
		},
		{
			TrackingNumber: "PE555000111",
			Checkpoints: []Checkpoint{
				{StatusCreated, "Lima, LIM", now.Add(-2 * time.Hour)},
			},
		},
	}
}
