package model

import "time"

// Mapping is an assignment of a doctor to a patient. Deleting a mapping only
// clears IsActive; an inactive mapping never becomes active again.
type Mapping struct {
	ID           int64     `db:"id" json:"id"`
	PatientID    int64     `db:"patient_id" json:"patient_id"`
	DoctorID     int64     `db:"doctor_id" json:"doctor_id"`
	AssignedDate time.Time `db:"assigned_date" json:"assigned_date"`
	Notes        *string   `db:"notes" json:"notes"`
	IsActive     bool      `db:"is_active" json:"is_active"`
}

// MappingDetail is a mapping joined with patient and doctor display fields
type MappingDetail struct {
	Mapping
	PatientName     string   `db:"patient_name" json:"patient_name"`
	PatientEmail    *string  `db:"patient_email" json:"patient_email,omitempty"`
	DoctorName      string   `db:"doctor_name" json:"doctor_name"`
	Specialization  string   `db:"specialization" json:"specialization"`
	ConsultationFee *float64 `db:"consultation_fee" json:"consultation_fee,omitempty"`
}

// AssignedDoctor is a doctor as seen through one of a patient's mappings
type AssignedDoctor struct {
	MappingID       int64     `db:"mapping_id" json:"mapping_id"`
	AssignedDate    time.Time `db:"assigned_date" json:"assigned_date"`
	Notes           *string   `db:"notes" json:"notes"`
	ID              int64     `db:"id" json:"id"`
	Name            string    `db:"name" json:"name"`
	Email           string    `db:"email" json:"email"`
	Phone           string    `db:"phone" json:"phone"`
	Specialization  string    `db:"specialization" json:"specialization"`
	ConsultationFee float64   `db:"consultation_fee" json:"consultation_fee"`
}

// PatientSummary identifies the patient in a per-patient mapping listing
type PatientSummary struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

// PatientDoctors is the result of listing one patient's active mappings
type PatientDoctors struct {
	Patient PatientSummary    `json:"patient"`
	Doctors []*AssignedDoctor `json:"doctors"`
}

type MappingRequest struct {
	PatientID *int64  `json:"patient_id" binding:"required,gt=0"`
	DoctorID  *int64  `json:"doctor_id" binding:"required,gt=0"`
	Notes     *string `json:"notes"`
}
