package model

const (
	GenderMale   = "Male"
	GenderFemale = "Female"
	GenderOther  = "Other"
)

// Patient is owned by the user recorded in CreatedBy
type Patient struct {
	Base
	Timestamps
	Name           string  `db:"name" json:"name"`
	Email          *string `db:"email" json:"email"`
	Phone          *string `db:"phone" json:"phone"`
	DateOfBirth    *string `db:"date_of_birth" json:"date_of_birth"`
	Gender         *string `db:"gender" json:"gender"`
	Address        *string `db:"address" json:"address"`
	MedicalHistory *string `db:"medical_history" json:"medical_history"`
	CreatedBy      int64   `db:"created_by" json:"-"`
}

// PatientRequest is the body of both create and update; updates replace
// every field.
type PatientRequest struct {
	Name           string  `json:"name" binding:"required"`
	Email          *string `json:"email" binding:"omitempty,email"`
	Phone          *string `json:"phone"`
	DateOfBirth    *string `json:"date_of_birth" binding:"omitempty,datetime=2006-01-02"`
	Gender         *string `json:"gender" binding:"omitempty,oneof=Male Female Other"`
	Address        *string `json:"address"`
	MedicalHistory *string `json:"medical_history"`
}

func (r *PatientRequest) ToPatient(owner int64) *Patient {
	return &Patient{
		Name:           r.Name,
		Email:          r.Email,
		Phone:          r.Phone,
		DateOfBirth:    r.DateOfBirth,
		Gender:         r.Gender,
		Address:        r.Address,
		MedicalHistory: r.MedicalHistory,
		CreatedBy:      owner,
	}
}
