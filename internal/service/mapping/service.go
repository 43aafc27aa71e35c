package mapping

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/clinic-api/internal/model"
	"github.com/jwalitptl/clinic-api/internal/repository"
	apperrors "github.com/jwalitptl/clinic-api/pkg/errors"
)

const (
	msgPatientNotFound  = "Patient not found or you do not have access to this patient"
	msgDoctorNotFound   = "Doctor not found"
	msgAlreadyAssigned  = "This doctor is already assigned to this patient"
	msgInvalidReference = "Invalid patient or doctor ID"
	msgMappingNotFound  = "Mapping not found or you do not have access to this mapping"
)

type MappingService interface {
	Create(ctx context.Context, owner int64, req *model.MappingRequest) (*model.MappingDetail, error)
	List(ctx context.Context, owner int64, page model.Page) ([]*model.MappingDetail, int, error)
	ListForPatient(ctx context.Context, owner, patientID int64) (*model.PatientDoctors, error)
	Delete(ctx context.Context, owner, id int64) error
}

type Service struct {
	patients repository.PatientRepository
	doctors  repository.DoctorRepository
	mappings repository.MappingRepository
}

func NewService(patients repository.PatientRepository, doctors repository.DoctorRepository, mappings repository.MappingRepository) *Service {
	return &Service{
		patients: patients,
		doctors:  doctors,
		mappings: mappings,
	}
}

// Create assigns a doctor to one of owner's patients. Checks run in order:
// patient ownership, doctor existence, then the active pair.
func (s *Service) Create(ctx context.Context, owner int64, req *model.MappingRequest) (*model.MappingDetail, error) {
	if req.PatientID == nil || req.DoctorID == nil {
		return nil, apperrors.Validation(msgInvalidReference)
	}
	patientID, doctorID := *req.PatientID, *req.DoctorID

	if _, err := s.patients.Get(ctx, owner, patientID); err != nil {
		return nil, notFoundOr(err, msgPatientNotFound)
	}
	if _, err := s.doctors.Get(ctx, doctorID); err != nil {
		return nil, notFoundOr(err, msgDoctorNotFound)
	}

	exists, err := s.mappings.ExistsActive(ctx, patientID, doctorID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if exists {
		return nil, apperrors.Conflict(msgAlreadyAssigned, nil)
	}

	mapping := &model.Mapping{
		PatientID: patientID,
		DoctorID:  doctorID,
		Notes:     req.Notes,
	}
	if err := s.mappings.Create(ctx, mapping); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicate):
			return nil, apperrors.Conflict(msgAlreadyAssigned, err)
		case errors.Is(err, repository.ErrForeignKey):
			return nil, apperrors.Validation(msgInvalidReference)
		default:
			return nil, apperrors.Internal(err)
		}
	}

	detail, err := s.mappings.GetDetail(ctx, mapping.ID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	log.Ctx(ctx).Info().
		Int64("mapping_id", mapping.ID).
		Int64("patient_id", patientID).
		Int64("doctor_id", doctorID).
		Msg("doctor assigned to patient")
	return detail, nil
}

func (s *Service) List(ctx context.Context, owner int64, page model.Page) ([]*model.MappingDetail, int, error) {
	mappings, total, err := s.mappings.List(ctx, owner, page)
	if err != nil {
		return nil, 0, apperrors.Internal(err)
	}
	return mappings, total, nil
}

func (s *Service) ListForPatient(ctx context.Context, owner, patientID int64) (*model.PatientDoctors, error) {
	patient, err := s.patients.Get(ctx, owner, patientID)
	if err != nil {
		return nil, notFoundOr(err, msgPatientNotFound)
	}

	doctors, err := s.mappings.ListForPatient(ctx, patientID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	return &model.PatientDoctors{
		Patient: model.PatientSummary{ID: patient.ID, Name: patient.Name},
		Doctors: doctors,
	}, nil
}

// Delete deactivates the mapping. The row is kept.
func (s *Service) Delete(ctx context.Context, owner, id int64) error {
	if err := s.mappings.Deactivate(ctx, owner, id); err != nil {
		return notFoundOr(err, msgMappingNotFound)
	}
	log.Ctx(ctx).Info().Int64("mapping_id", id).Msg("doctor removed from patient")
	return nil
}

func notFoundOr(err error, message string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.NotFound(message)
	}
	return apperrors.Internal(err)
}
