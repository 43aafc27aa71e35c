package patient

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/clinic-api/internal/model"
	"github.com/jwalitptl/clinic-api/internal/repository"
	apperrors "github.com/jwalitptl/clinic-api/pkg/errors"
)

const (
	msgNotFound       = "Patient not found"
	msgDuplicateEmail = "Patient with this email already exists"
)

type PatientService interface {
	Create(ctx context.Context, owner int64, req *model.PatientRequest) (*model.Patient, error)
	List(ctx context.Context, owner int64, page model.Page) ([]*model.Patient, int, error)
	Get(ctx context.Context, owner, id int64) (*model.Patient, error)
	Update(ctx context.Context, owner, id int64, req *model.PatientRequest) (*model.Patient, error)
	Delete(ctx context.Context, owner, id int64) error
}

type Service struct {
	repo repository.PatientRepository
}

func NewService(repo repository.PatientRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, owner int64, req *model.PatientRequest) (*model.Patient, error) {
	patient := req.ToPatient(owner)
	if err := s.repo.Create(ctx, patient); err != nil {
		return nil, translate(err)
	}
	log.Ctx(ctx).Info().Int64("patient_id", patient.ID).Int64("user_id", owner).Msg("patient created")
	return patient, nil
}

func (s *Service) List(ctx context.Context, owner int64, page model.Page) ([]*model.Patient, int, error) {
	patients, total, err := s.repo.List(ctx, owner, page)
	if err != nil {
		return nil, 0, apperrors.Internal(err)
	}
	return patients, total, nil
}

func (s *Service) Get(ctx context.Context, owner, id int64) (*model.Patient, error) {
	patient, err := s.repo.Get(ctx, owner, id)
	if err != nil {
		return nil, translate(err)
	}
	return patient, nil
}

// Update replaces every field; omitted optional fields become null.
func (s *Service) Update(ctx context.Context, owner, id int64, req *model.PatientRequest) (*model.Patient, error) {
	patient := req.ToPatient(owner)
	patient.ID = id
	if err := s.repo.Update(ctx, patient); err != nil {
		return nil, translate(err)
	}
	return patient, nil
}

func (s *Service) Delete(ctx context.Context, owner, id int64) error {
	if err := s.repo.Delete(ctx, owner, id); err != nil {
		return translate(err)
	}
	log.Ctx(ctx).Info().Int64("patient_id", id).Int64("user_id", owner).Msg("patient deleted")
	return nil
}

func translate(err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return apperrors.NotFound(msgNotFound)
	case errors.Is(err, repository.ErrDuplicate):
		return apperrors.Conflict(msgDuplicateEmail, err)
	default:
		return apperrors.Internal(err)
	}
}
