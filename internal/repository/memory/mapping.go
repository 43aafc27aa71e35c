package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/jwalitptl/clinic-api/internal/model"
	"github.com/jwalitptl/clinic-api/internal/repository"
)

type mappingRepository struct{ *db }

func (r *mappingRepository) activeExists(patientID, doctorID int64) bool {
	for _, m := range r.mappings {
		if m.IsActive && m.PatientID == patientID && m.DoctorID == doctorID {
			return true
		}
	}
	return false
}

func (r *mappingRepository) Create(_ context.Context, mapping *model.Mapping) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, hasPatient := r.patients[mapping.PatientID]
	_, hasDoctor := r.doctors[mapping.DoctorID]
	if !hasPatient || !hasDoctor {
		return fmt.Errorf("failed to create mapping: %w", repository.ErrForeignKey)
	}
	if r.activeExists(mapping.PatientID, mapping.DoctorID) {
		return duplicate("create mapping", "idx_mappings_active_pair")
	}

	mapping.ID = r.next("mappings")
	mapping.AssignedDate = r.timestamp()
	mapping.IsActive = true
	r.mappings[mapping.ID] = *mapping
	return nil
}

func (r *mappingRepository) ExistsActive(_ context.Context, patientID, doctorID int64) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.activeExists(patientID, doctorID), nil
}

func (r *mappingRepository) detail(m model.Mapping) *model.MappingDetail {
	p := r.patients[m.PatientID]
	d := r.doctors[m.DoctorID]
	return &model.MappingDetail{
		Mapping:        m,
		PatientName:    p.Name,
		DoctorName:     d.Name,
		Specialization: d.Specialization,
	}
}

func (r *mappingRepository) GetDetail(_ context.Context, id int64) (*model.MappingDetail, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.mappings[id]
	if !ok {
		return nil, notFound("get mapping")
	}
	return r.detail(m), nil
}

func (r *mappingRepository) List(_ context.Context, owner int64, page model.Page) ([]*model.MappingDetail, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := []*model.MappingDetail{}
	for _, m := range r.mappings {
		if !m.IsActive || r.patients[m.PatientID].CreatedBy != owner {
			continue
		}
		d := r.detail(m)
		d.PatientEmail = r.patients[m.PatientID].Email
		fee := r.doctors[m.DoctorID].ConsultationFee
		d.ConsultationFee = &fee
		matched = append(matched, d)
	}
	sort.Slice(matched, func(i, j int) bool {
		return newer(matched[i].AssignedDate, matched[j].AssignedDate, matched[i].ID, matched[j].ID)
	})
	return window(matched, page), len(matched), nil
}

func (r *mappingRepository) ListForPatient(_ context.Context, patientID int64) ([]*model.AssignedDoctor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	doctors := []*model.AssignedDoctor{}
	for _, m := range r.mappings {
		if !m.IsActive || m.PatientID != patientID {
			continue
		}
		d := r.doctors[m.DoctorID]
		doctors = append(doctors, &model.AssignedDoctor{
			MappingID:       m.ID,
			AssignedDate:    m.AssignedDate,
			Notes:           m.Notes,
			ID:              d.ID,
			Name:            d.Name,
			Email:           d.Email,
			Phone:           d.Phone,
			Specialization:  d.Specialization,
			ConsultationFee: d.ConsultationFee,
		})
	}
	sort.Slice(doctors, func(i, j int) bool {
		return newer(doctors[i].AssignedDate, doctors[j].AssignedDate, doctors[i].MappingID, doctors[j].MappingID)
	})
	return doctors, nil
}

func (r *mappingRepository) Deactivate(_ context.Context, owner, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.mappings[id]
	if !ok || !m.IsActive {
		return notFound("deactivate mapping")
	}
	if p, ok := r.patients[m.PatientID]; !ok || p.CreatedBy != owner {
		return notFound("deactivate mapping")
	}
	m.IsActive = false
	r.mappings[id] = m
	return nil
}
