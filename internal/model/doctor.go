package model

// Doctor is visible to every authenticated user but only its creator may
// change it.
type Doctor struct {
	Base
	Timestamps
	Name              string  `db:"name" json:"name"`
	Email             string  `db:"email" json:"email"`
	Phone             string  `db:"phone" json:"phone"`
	Specialization    string  `db:"specialization" json:"specialization"`
	LicenseNumber     string  `db:"license_number" json:"license_number"`
	YearsOfExperience int     `db:"years_of_experience" json:"years_of_experience"`
	ConsultationFee   float64 `db:"consultation_fee" json:"consultation_fee"`
	CreatedBy         int64   `db:"created_by" json:"-"`
}

type DoctorRequest struct {
	Name              string   `json:"name" binding:"required"`
	Email             string   `json:"email" binding:"required,email"`
	Phone             string   `json:"phone" binding:"required"`
	Specialization    string   `json:"specialization" binding:"required"`
	LicenseNumber     string   `json:"license_number" binding:"required"`
	YearsOfExperience *int     `json:"years_of_experience" binding:"required,min=0"`
	ConsultationFee   *float64 `json:"consultation_fee" binding:"required,min=0"`
}

func (r *DoctorRequest) ToDoctor(creator int64) *Doctor {
	d := &Doctor{
		Name:           r.Name,
		Email:          r.Email,
		Phone:          r.Phone,
		Specialization: r.Specialization,
		LicenseNumber:  r.LicenseNumber,
		CreatedBy:      creator,
	}
	if r.YearsOfExperience != nil {
		d.YearsOfExperience = *r.YearsOfExperience
	}
	if r.ConsultationFee != nil {
		d.ConsultationFee = *r.ConsultationFee
	}
	return d
}

// DoctorFilter narrows the doctor listing
type DoctorFilter struct {
	Specialization string
}
