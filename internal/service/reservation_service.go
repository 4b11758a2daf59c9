package service

import (
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/rbnabilahpulunganadm/jumatberkah/internal/lock"
	"github.com/rbnabilahpulunganadm/jumatberkah/internal/model"
	"github.com/rbnabilahpulunganadm/jumatberkah/internal/repository"
)

// requiredFields lists the mandatory submission fields in validation order.
// The first empty one is reported; later ones are not checked.
var requiredFields = []struct {
	name  string
	value func(*model.SubmissionPayload) string
}{
	{"bookerName", func(p *model.SubmissionPayload) string { return p.BookerName }},
	{"nationalId", func(p *model.SubmissionPayload) string { return p.NationalID }},
	{"phone", func(p *model.SubmissionPayload) string { return p.Phone }},
	{"address", func(p *model.SubmissionPayload) string { return p.Address }},
	{"childName", func(p *model.SubmissionPayload) string { return p.ChildName }},
	{"childBirthDate", func(p *model.SubmissionPayload) string { return p.ChildBirthDate }},
	{"treatmentType", func(p *model.SubmissionPayload) string { return p.TreatmentType }},
	{"arrivalSlot", func(p *model.SubmissionPayload) string { return p.ArrivalSlot }},
}

// ReservationService validates submissions, detects duplicate registrants and
// appends accepted reservations to the store.
type ReservationService struct {
	store    repository.RowStore
	locker   lock.Locker
	idPrefix string
	logger   *zap.Logger
}

// NewReservationService creates the submission service.
func NewReservationService(store repository.RowStore, locker lock.Locker, idPrefix string, logger *zap.Logger) *ReservationService {
	return &ReservationService{
		store:    store,
		locker:   locker,
		idPrefix: idPrefix,
		logger:   logger,
	}
}

// Submit runs the whole intake protocol under the global lock: validate,
// scan for duplicates, assign an ID and append exactly one row. On any
// failure no row is written. Returns the new reservation ID.
//
// The lock spans the entire check-then-append sequence; without it two
// concurrent submissions for the same person could both pass the duplicate
// check before either appends.
func (s *ReservationService) Submit(payload *model.SubmissionPayload) (string, error) {
	if err := s.locker.Acquire(); err != nil {
		s.logger.Warn("submit lock not acquired", zap.Error(err))
		return "", err
	}
	defer s.locker.Release()

	if err := validate(payload); err != nil {
		return "", err
	}

	rows, err := s.store.ScanRows()
	if err != nil {
		return "", fmt.Errorf("duplicate check: %w", err)
	}
	for i := range rows {
		row := &rows[i]
		if row.BookerName == payload.BookerName ||
			row.NationalID == payload.NationalID ||
			row.Phone == payload.Phone {
			return "", &DuplicateError{Message: DuplicateMessage}
		}
	}

	now := time.Now()
	res := &model.Reservation{
		Timestamp:      now,
		ReservationID:  s.newReservationID(now),
		BookerName:     payload.BookerName,
		NationalID:     payload.NationalID,
		Phone:          payload.Phone,
		Address:        payload.Address,
		ChildName:      payload.ChildName,
		ChildBirthDate: payload.ChildBirthDate,
		TreatmentType:  payload.TreatmentType,
		ArrivalSlot:    payload.ArrivalSlot,
		Complaint:      payload.Complaint,
		AssignedStaff:  model.UnassignedStaff,
	}
	if err := s.store.AppendRow(res); err != nil {
		return "", fmt.Errorf("store reservation: %w", err)
	}

	s.logger.Info("reservation stored",
		zap.String("reservation_id", res.ReservationID),
		zap.String("treatment_type", res.TreatmentType),
		zap.String("arrival_slot", res.ArrivalSlot),
	)
	return res.ReservationID, nil
}

func validate(payload *model.SubmissionPayload) error {
	for _, f := range requiredFields {
		if f.value(payload) == "" {
			return &ValidationError{Field: f.name}
		}
	}
	return nil
}

// newReservationID derives the ID from the low six digits of the creation
// instant's millisecond epoch. Two submissions landing in the same low-digit
// window collide; a known weak guarantee, accepted for this domain.
func (s *ReservationService) newReservationID(t time.Time) string {
	ms := strconv.FormatInt(t.UnixMilli(), 10)
	return s.idPrefix + "-" + ms[len(ms)-6:]
}
