package memory

import (
	"context"
	"sort"

	"github.com/jwalitptl/clinic-api/internal/model"
)

type patientRepository struct{ *db }

func (r *patientRepository) emailTaken(email *string, except int64) bool {
	for id, p := range r.patients {
		if id != except && sameString(p.Email, email) {
			return true
		}
	}
	return false
}

func (r *patientRepository) Create(_ context.Context, patient *model.Patient) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.emailTaken(patient.Email, 0) {
		return duplicate("create patient", "patients_email_key")
	}

	now := r.timestamp()
	patient.ID = r.next("patients")
	patient.CreatedAt = now
	patient.UpdatedAt = now
	r.patients[patient.ID] = *patient
	return nil
}

func (r *patientRepository) Get(_ context.Context, owner, id int64) (*model.Patient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.patients[id]
	if !ok || p.CreatedBy != owner {
		return nil, notFound("get patient")
	}
	return &p, nil
}

func (r *patientRepository) List(_ context.Context, owner int64, page model.Page) ([]*model.Patient, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	owned := []*model.Patient{}
	for _, p := range r.patients {
		if p.CreatedBy == owner {
			p := p
			owned = append(owned, &p)
		}
	}
	sort.Slice(owned, func(i, j int) bool {
		return newer(owned[i].CreatedAt, owned[j].CreatedAt, owned[i].ID, owned[j].ID)
	})
	return window(owned, page), len(owned), nil
}

func (r *patientRepository) Update(_ context.Context, patient *model.Patient) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.patients[patient.ID]
	if !ok || current.CreatedBy != patient.CreatedBy {
		return notFound("update patient")
	}
	if r.emailTaken(patient.Email, patient.ID) {
		return duplicate("update patient", "patients_email_key")
	}

	patient.CreatedAt = current.CreatedAt
	patient.UpdatedAt = r.timestamp()
	r.patients[patient.ID] = *patient
	return nil
}

func (r *patientRepository) Delete(_ context.Context, owner, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.patients[id]
	if !ok || p.CreatedBy != owner {
		return notFound("delete patient")
	}
	delete(r.patients, id)
	for mid, m := range r.mappings {
		if m.PatientID == id {
			delete(r.mappings, mid)
		}
	}
	return nil
}
