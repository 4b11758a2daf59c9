package model

import "time"

// UnassignedStaff is the sentinel written into AssignedStaff at creation.
// Staff are assigned later by hand, outside this system.
const UnassignedStaff = "Akan Ditentukan"

// Reservation represents one stored row of the intake table. Rows are
// append-only; the store order is the chronological submission order.
type Reservation struct {
	Timestamp      time.Time `db:"created_at" json:"timestamp"`
	ReservationID  string    `db:"reservation_id" json:"reservationId"`
	BookerName     string    `db:"booker_name" json:"bookerName"`
	NationalID     string    `db:"national_id" json:"nationalId"`
	Phone          string    `db:"phone" json:"phone"`
	Address        string    `db:"address" json:"address"`
	ChildName      string    `db:"child_name" json:"childName"`
	ChildBirthDate string    `db:"child_birth_date" json:"childBirthDate"`
	TreatmentType  string    `db:"treatment_type" json:"treatmentType"`
	ArrivalSlot    string    `db:"arrival_slot" json:"arrivalSlot"`
	Complaint      string    `db:"complaint" json:"complaint"`
	AssignedStaff  string    `db:"assigned_staff" json:"assignedStaff"`
}

// SubmissionPayload is the inbound reservation form body.
type SubmissionPayload struct {
	BookerName     string `json:"bookerName"`
	NationalID     string `json:"nationalId"`
	Phone          string `json:"phone"`
	Address        string `json:"address"`
	ChildName      string `json:"childName"`
	ChildBirthDate string `json:"childBirthDate"`
	TreatmentType  string `json:"treatmentType"`
	ArrivalSlot    string `json:"arrivalSlot"`
	Complaint      string `json:"complaint"`
}

// DuplicateProbe carries the optional fields of a real-time duplicate check.
// Empty fields never contribute a match.
type DuplicateProbe struct {
	BookerName string
	NationalID string
	Phone      string
}

// QuotaSummary tallies occupancy per treatment type and per arrival slot.
type QuotaSummary struct {
	TreatmentCounts map[string]int `json:"treatmentCounts"`
	SlotCounts      map[string]int `json:"slotCounts"`
}
