package postgres

import (
	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/clinic-api/internal/repository"
)

// NewStore wires every repository onto one pool.
func NewStore(db *sqlx.DB) *repository.Store {
	return &repository.Store{
		Users:    NewUserRepository(db),
		Patients: NewPatientRepository(db),
		Doctors:  NewDoctorRepository(db),
		Mappings: NewMappingRepository(db),
	}
}
