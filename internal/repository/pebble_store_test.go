package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/cockroachdb/pebble"
	"github.com/cockroachdb/pebble/vfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rbnabilahpulunganadm/jumatberkah/internal/model"
)

func testReservation(i int) *model.Reservation {
	return &model.Reservation{
		Timestamp:      time.Date(2025, 10, 3, 9, 0, 0, 0, time.UTC).Add(time.Duration(i) * time.Minute),
		ReservationID:  fmt.Sprintf("JBKNP-%06d", i),
		BookerName:     fmt.Sprintf("Pemesan %d", i),
		NationalID:     fmt.Sprintf("32010101010100%02d", i),
		Phone:          fmt.Sprintf("0812345678%02d", i),
		Address:        "Jl. Melati 5",
		ChildName:      fmt.Sprintf("Anak %d", i),
		ChildBirthDate: "2020-05-17",
		TreatmentType:  "Baby Massage",
		ArrivalSlot:    "09:00",
		AssignedStaff:  model.UnassignedStaff,
	}
}

func TestPebbleStore_AppendAndScanOrder(t *testing.T) {
	store, err := OpenPebbleStore("intake", &pebble.Options{FS: vfs.NewMem()})
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.EnsureSchema())

	for i := 1; i <= 3; i++ {
		require.NoError(t, store.AppendRow(testReservation(i)))
	}

	rows, err := store.ScanRows()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	for i, row := range rows {
		assert.Equal(t, fmt.Sprintf("JBKNP-%06d", i+1), row.ReservationID)
	}
}

func TestPebbleStore_ScanEmpty(t *testing.T) {
	store, err := OpenPebbleStore("intake", &pebble.Options{FS: vfs.NewMem()})
	require.NoError(t, err)
	defer store.Close()

	rows, err := store.ScanRows()
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestPebbleStore_SequenceSurvivesReopen(t *testing.T) {
	fs := vfs.NewMem()

	store, err := OpenPebbleStore("intake", &pebble.Options{FS: fs})
	require.NoError(t, err)
	require.NoError(t, store.AppendRow(testReservation(1)))
	require.NoError(t, store.AppendRow(testReservation(2)))
	require.NoError(t, store.Close())

	reopened, err := OpenPebbleStore("intake", &pebble.Options{FS: fs})
	require.NoError(t, err)
	defer reopened.Close()

	require.NoError(t, reopened.AppendRow(testReservation(3)))

	rows, err := reopened.ScanRows()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "JBKNP-000003", rows[2].ReservationID)
}
