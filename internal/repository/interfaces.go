package repository

import (
	"context"
	"errors"

	"github.com/jwalitptl/clinic-api/internal/model"
)

var (
	ErrNotFound   = errors.New("record not found")
	ErrDuplicate  = errors.New("duplicate record")
	ErrForeignKey = errors.New("referenced record does not exist")
)

// All repository interfaces in one file
type (
	// UserRepository is the credential store
	UserRepository interface {
		Create(ctx context.Context, user *model.User) error
		GetByEmail(ctx context.Context, email string) (*model.User, error)
	}

	// PatientRepository scopes every read and write to the owning user
	PatientRepository interface {
		Create(ctx context.Context, patient *model.Patient) error
		Get(ctx context.Context, owner, id int64) (*model.Patient, error)
		List(ctx context.Context, owner int64, page model.Page) ([]*model.Patient, int, error)
		Update(ctx context.Context, patient *model.Patient) error
		Delete(ctx context.Context, owner, id int64) error
	}

	DoctorRepository interface {
		Create(ctx context.Context, doctor *model.Doctor) error
		Get(ctx context.Context, id int64) (*model.Doctor, error)
		List(ctx context.Context, filter model.DoctorFilter, page model.Page) ([]*model.Doctor, int, error)
		// Update and Delete match on both ID and CreatedBy
		Update(ctx context.Context, doctor *model.Doctor) error
		Delete(ctx context.Context, creator, id int64) error
	}

	MappingRepository interface {
		Create(ctx context.Context, mapping *model.Mapping) error
		ExistsActive(ctx context.Context, patientID, doctorID int64) (bool, error)
		GetDetail(ctx context.Context, id int64) (*model.MappingDetail, error)
		List(ctx context.Context, owner int64, page model.Page) ([]*model.MappingDetail, int, error)
		ListForPatient(ctx context.Context, patientID int64) ([]*model.AssignedDoctor, error)
		// Deactivate clears is_active on an active mapping whose patient
		// belongs to owner.
		Deactivate(ctx context.Context, owner, id int64) error
	}
)

// Store bundles the repositories a server needs
type Store struct {
	Users    UserRepository
	Patients PatientRepository
	Doctors  DoctorRepository
	Mappings MappingRepository
}
