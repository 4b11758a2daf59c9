package service

import (
	"fmt"

	"github.com/rbnabilahpulunganadm/jumatberkah/internal/model"
	"github.com/rbnabilahpulunganadm/jumatberkah/internal/repository"
)

// recentLimit caps the registrant listing for the public page.
const recentLimit = 20

// QueryService serves the read-only views. It never takes the submit lock;
// a read racing an in-flight write may miss that one row, which is fine here.
type QueryService struct {
	store repository.RowStore
}

// NewQueryService creates the read-side service.
func NewQueryService(store repository.RowStore) *QueryService {
	return &QueryService{store: store}
}

// QuotaSummary tallies registrations per treatment type and arrival slot.
// Rows with an empty value are excluded from that field's tally.
func (s *QueryService) QuotaSummary() (*model.QuotaSummary, error) {
	rows, err := s.store.ScanRows()
	if err != nil {
		return nil, fmt.Errorf("quota summary: %w", err)
	}
	summary := &model.QuotaSummary{
		TreatmentCounts: map[string]int{},
		SlotCounts:      map[string]int{},
	}
	for i := range rows {
		if t := rows[i].TreatmentType; t != "" {
			summary.TreatmentCounts[t]++
		}
		if slot := rows[i].ArrivalSlot; slot != "" {
			summary.SlotCounts[slot]++
		}
	}
	return summary, nil
}

// RecentRegistrants returns the newest registrants first, capped at 20.
func (s *QueryService) RecentRegistrants() ([]model.Reservation, error) {
	rows, err := s.store.ScanRows()
	if err != nil {
		return nil, fmt.Errorf("recent registrants: %w", err)
	}
	out := make([]model.Reservation, 0, recentLimit)
	for i := len(rows) - 1; i >= 0 && len(out) < recentLimit; i-- {
		out = append(out, rows[i])
	}
	return out, nil
}

// CheckDuplicate reports whether any present probe field matches an existing
// registrant. Same OR semantics as the submit path, restricted to the fields
// the caller filled in.
func (s *QueryService) CheckDuplicate(probe model.DuplicateProbe) (bool, error) {
	rows, err := s.store.ScanRows()
	if err != nil {
		return false, fmt.Errorf("duplicate probe: %w", err)
	}
	for i := range rows {
		row := &rows[i]
		if (probe.BookerName != "" && row.BookerName == probe.BookerName) ||
			(probe.NationalID != "" && row.NationalID == probe.NationalID) ||
			(probe.Phone != "" && row.Phone == probe.Phone) {
			return true, nil
		}
	}
	return false, nil
}
