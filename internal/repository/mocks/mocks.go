// Package mocks provides testify mocks of the repository interfaces.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/jwalitptl/clinic-api/internal/model"
)

type UserRepository struct {
	mock.Mock
}

func (m *UserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

type PatientRepository struct {
	mock.Mock
}

func (m *PatientRepository) Create(ctx context.Context, patient *model.Patient) error {
	args := m.Called(ctx, patient)
	return args.Error(0)
}

func (m *PatientRepository) Get(ctx context.Context, owner, id int64) (*model.Patient, error) {
	args := m.Called(ctx, owner, id)
	if p, ok := args.Get(0).(*model.Patient); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *PatientRepository) List(ctx context.Context, owner int64, page model.Page) ([]*model.Patient, int, error) {
	args := m.Called(ctx, owner, page)
	patients, _ := args.Get(0).([]*model.Patient)
	return patients, args.Int(1), args.Error(2)
}

func (m *PatientRepository) Update(ctx context.Context, patient *model.Patient) error {
	args := m.Called(ctx, patient)
	return args.Error(0)
}

func (m *PatientRepository) Delete(ctx context.Context, owner, id int64) error {
	args := m.Called(ctx, owner, id)
	return args.Error(0)
}

type DoctorRepository struct {
	mock.Mock
}

func (m *DoctorRepository) Create(ctx context.Context, doctor *model.Doctor) error {
	args := m.Called(ctx, doctor)
	return args.Error(0)
}

func (m *DoctorRepository) Get(ctx context.Context, id int64) (*model.Doctor, error) {
	args := m.Called(ctx, id)
	if d, ok := args.Get(0).(*model.Doctor); ok {
		return d, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *DoctorRepository) List(ctx context.Context, filter model.DoctorFilter, page model.Page) ([]*model.Doctor, int, error) {
	args := m.Called(ctx, filter, page)
	doctors, _ := args.Get(0).([]*model.Doctor)
	return doctors, args.Int(1), args.Error(2)
}

func (m *DoctorRepository) Update(ctx context.Context, doctor *model.Doctor) error {
	args := m.Called(ctx, doctor)
	return args.Error(0)
}

func (m *DoctorRepository) Delete(ctx context.Context, creator, id int64) error {
	args := m.Called(ctx, creator, id)
	return args.Error(0)
}

type MappingRepository struct {
	mock.Mock
}

func (m *MappingRepository) Create(ctx context.Context, mapping *model.Mapping) error {
	args := m.Called(ctx, mapping)
	return args.Error(0)
}

func (m *MappingRepository) ExistsActive(ctx context.Context, patientID, doctorID int64) (bool, error) {
	args := m.Called(ctx, patientID, doctorID)
	return args.Bool(0), args.Error(1)
}

func (m *MappingRepository) GetDetail(ctx context.Context, id int64) (*model.MappingDetail, error) {
	args := m.Called(ctx, id)
	if d, ok := args.Get(0).(*model.MappingDetail); ok {
		return d, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MappingRepository) List(ctx context.Context, owner int64, page model.Page) ([]*model.MappingDetail, int, error) {
	args := m.Called(ctx, owner, page)
	mappings, _ := args.Get(0).([]*model.MappingDetail)
	return mappings, args.Int(1), args.Error(2)
}

func (m *MappingRepository) ListForPatient(ctx context.Context, patientID int64) ([]*model.AssignedDoctor, error) {
	args := m.Called(ctx, patientID)
	doctors, _ := args.Get(0).([]*model.AssignedDoctor)
	return doctors, args.Error(1)
}

func (m *MappingRepository) Deactivate(ctx context.Context, owner, id int64) error {
	args := m.Called(ctx, owner, id)
	return args.Error(0)
}
