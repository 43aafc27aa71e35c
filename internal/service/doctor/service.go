package doctor

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/clinic-api/internal/model"
	"github.com/jwalitptl/clinic-api/internal/repository"
	apperrors "github.com/jwalitptl/clinic-api/pkg/errors"
)

const (
	msgNotFound        = "Doctor not found"
	msgNoUpdatePermit  = "Doctor not found or you do not have permission to update this doctor"
	msgNoDeletePermit  = "Doctor not found or you do not have permission to delete this doctor"
	msgDuplicateDoctor = "Doctor with this email or license number already exists"
)

type DoctorService interface {
	Create(ctx context.Context, creator int64, req *model.DoctorRequest) (*model.Doctor, error)
	List(ctx context.Context, filter model.DoctorFilter, page model.Page) ([]*model.Doctor, int, error)
	Get(ctx context.Context, id int64) (*model.Doctor, error)
	Update(ctx context.Context, creator, id int64, req *model.DoctorRequest) (*model.Doctor, error)
	Delete(ctx context.Context, creator, id int64) error
}

type Service struct {
	repo repository.DoctorRepository
}

func NewService(repo repository.DoctorRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, creator int64, req *model.DoctorRequest) (*model.Doctor, error) {
	doctor := req.ToDoctor(creator)
	if err := s.repo.Create(ctx, doctor); err != nil {
		return nil, translate(err, msgNotFound)
	}
	log.Ctx(ctx).Info().Int64("doctor_id", doctor.ID).Int64("user_id", creator).Msg("doctor created")
	return doctor, nil
}

// List returns every doctor regardless of creator.
func (s *Service) List(ctx context.Context, filter model.DoctorFilter, page model.Page) ([]*model.Doctor, int, error) {
	doctors, total, err := s.repo.List(ctx, filter, page)
	if err != nil {
		return nil, 0, apperrors.Internal(err)
	}
	return doctors, total, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*model.Doctor, error) {
	doctor, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, translate(err, msgNotFound)
	}
	return doctor, nil
}

func (s *Service) Update(ctx context.Context, creator, id int64, req *model.DoctorRequest) (*model.Doctor, error) {
	doctor := req.ToDoctor(creator)
	doctor.ID = id
	if err := s.repo.Update(ctx, doctor); err != nil {
		return nil, translate(err, msgNoUpdatePermit)
	}
	return doctor, nil
}

func (s *Service) Delete(ctx context.Context, creator, id int64) error {
	if err := s.repo.Delete(ctx, creator, id); err != nil {
		return translate(err, msgNoDeletePermit)
	}
	log.Ctx(ctx).Info().Int64("doctor_id", id).Int64("user_id", creator).Msg("doctor deleted")
	return nil
}

func translate(err error, notFound string) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return apperrors.NotFound(notFound)
	case errors.Is(err, repository.ErrDuplicate):
		return apperrors.Conflict(msgDuplicateDoctor, err)
	default:
		return apperrors.Internal(err)
	}
}
