package repository

import "github.com/rbnabilahpulunganadm/jumatberkah/internal/model"

// RowStore is the append-only tabular store behind the intake endpoint.
// Any backend that can append a row, scan all rows back in append order and
// provision its schema satisfies it.
type RowStore interface {
	// EnsureSchema creates the backing table if it does not exist yet.
	EnsureSchema() error
	// AppendRow appends one reservation. Rows are never updated or deleted.
	AppendRow(res *model.Reservation) error
	// ScanRows returns every stored reservation in append order.
	ScanRows() ([]model.Reservation, error)
}
