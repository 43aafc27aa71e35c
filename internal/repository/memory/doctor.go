package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/jwalitptl/clinic-api/internal/model"
)

type doctorRepository struct{ *db }

func (r *doctorRepository) conflict(d *model.Doctor) string {
	for id, other := range r.doctors {
		if id == d.ID {
			continue
		}
		if other.Email == d.Email {
			return "doctors_email_key"
		}
		if other.LicenseNumber == d.LicenseNumber {
			return "doctors_license_number_key"
		}
	}
	return ""
}

func (r *doctorRepository) Create(_ context.Context, doctor *model.Doctor) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if c := r.conflict(doctor); c != "" {
		return duplicate("create doctor", c)
	}

	now := r.timestamp()
	doctor.ID = r.next("doctors")
	doctor.CreatedAt = now
	doctor.UpdatedAt = now
	r.doctors[doctor.ID] = *doctor
	return nil
}

func (r *doctorRepository) Get(_ context.Context, id int64) (*model.Doctor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.doctors[id]
	if !ok {
		return nil, notFound("get doctor")
	}
	return &d, nil
}

func (r *doctorRepository) List(_ context.Context, filter model.DoctorFilter, page model.Page) ([]*model.Doctor, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	needle := strings.ToLower(filter.Specialization)
	matched := []*model.Doctor{}
	for _, d := range r.doctors {
		if needle != "" && !strings.Contains(strings.ToLower(d.Specialization), needle) {
			continue
		}
		d := d
		matched = append(matched, &d)
	}
	sort.Slice(matched, func(i, j int) bool {
		return newer(matched[i].CreatedAt, matched[j].CreatedAt, matched[i].ID, matched[j].ID)
	})
	return window(matched, page), len(matched), nil
}

func (r *doctorRepository) Update(_ context.Context, doctor *model.Doctor) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.doctors[doctor.ID]
	if !ok || current.CreatedBy != doctor.CreatedBy {
		return notFound("update doctor")
	}
	if c := r.conflict(doctor); c != "" {
		return duplicate("update doctor", c)
	}

	doctor.CreatedAt = current.CreatedAt
	doctor.UpdatedAt = r.timestamp()
	r.doctors[doctor.ID] = *doctor
	return nil
}

func (r *doctorRepository) Delete(_ context.Context, creator, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	d, ok := r.doctors[id]
	if !ok || d.CreatedBy != creator {
		return notFound("delete doctor")
	}
	delete(r.doctors, id)
	for mid, m := range r.mappings {
		if m.DoctorID == id {
			delete(r.mappings, mid)
		}
	}
	return nil
}
