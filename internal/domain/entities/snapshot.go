package entities

import (
	"sort"
	"time"
)

// Snapshot is an immutable, timestamped set of quotes for the fixed asset set.
// Quotes follow the asset enumeration order and hold at most one entry per id.
type Snapshot struct {
	Quotes     []Quote   `json:"quotes"`
	CapturedAt time.Time `json:"captured_at"`
}

// NewSnapshot normaliza las cotizaciones: descarta ids desconocidos, elimina
// duplicados (gana la primera aparición) y ordena según la enumeración fija.
func NewSnapshot(quotes []Quote, capturedAt time.Time) *Snapshot {
	seen := make(map[AssetID]bool, len(quotes))
	normalized := make([]Quote, 0, len(quotes))

	for _, q := range quotes {
		if !q.ID.IsKnown() || seen[q.ID] {
			continue
		}
		seen[q.ID] = true
		normalized = append(normalized, q)
	}

	sort.SliceStable(normalized, func(i, j int) bool {
		return normalized[i].ID.order() < normalized[j].ID.order()
	})

	return &Snapshot{
		Quotes:     normalized,
		CapturedAt: capturedAt,
	}
}

// Len returns the number of quotes.
func (s *Snapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Quotes)
}

// Quote returns the quote for id, if present.
func (s *Snapshot) Quote(id AssetID) (Quote, bool) {
	if s == nil {
		return Quote{}, false
	}
	for _, q := range s.Quotes {
		if q.ID == id {
			return q, true
		}
	}
	return Quote{}, false
}

// Equal compares quotes content (order and values), ignoring CapturedAt.
func (s *Snapshot) Equal(other *Snapshot) bool {
	if s.Len() != other.Len() {
		return false
	}
	for i := 0; i < s.Len(); i++ {
		if s.Quotes[i] != other.Quotes[i] {
			return false
		}
	}
	return true
}

// Clone returns a deep copy so callers cannot mutate controller-owned data.
func (s *Snapshot) Clone() *Snapshot {
	if s == nil {
		return nil
	}
	quotes := make([]Quote, len(s.Quotes))
	copy(quotes, s.Quotes)
	return &Snapshot{
		Quotes:     quotes,
		CapturedAt: s.CapturedAt,
	}
}
