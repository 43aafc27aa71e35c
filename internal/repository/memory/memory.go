// Package memory is a process-local store with the same constraints as the
// PostgreSQL schema: unique emails and license numbers, cascading deletes
// and at most one active mapping per patient and doctor.
package memory

import (
	"fmt"
	"sync"
	"time"

	"github.com/jwalitptl/clinic-api/internal/model"
	"github.com/jwalitptl/clinic-api/internal/repository"
)

type db struct {
	mu  sync.RWMutex
	now func() time.Time

	seq      map[string]int64
	users    map[int64]model.User
	patients map[int64]model.Patient
	doctors  map[int64]model.Doctor
	mappings map[int64]model.Mapping
}

// NewStore returns an empty store.
func NewStore() *repository.Store {
	return newDB().store()
}

func newDB() *db {
	return &db{
		now:      time.Now,
		seq:      map[string]int64{},
		users:    map[int64]model.User{},
		patients: map[int64]model.Patient{},
		doctors:  map[int64]model.Doctor{},
		mappings: map[int64]model.Mapping{},
	}
}

func (d *db) store() *repository.Store {
	return &repository.Store{
		Users:    &userRepository{d},
		Patients: &patientRepository{d},
		Doctors:  &doctorRepository{d},
		Mappings: &mappingRepository{d},
	}
}

func (d *db) next(table string) int64 {
	d.seq[table]++
	return d.seq[table]
}

func (d *db) timestamp() time.Time {
	return d.now().UTC().Truncate(time.Microsecond)
}

func notFound(op string) error {
	return fmt.Errorf("failed to %s: %w", op, repository.ErrNotFound)
}

func duplicate(op, constraint string) error {
	return fmt.Errorf("failed to %s: %w: %s", op, repository.ErrDuplicate, constraint)
}

func sameString(a, b *string) bool {
	return a != nil && b != nil && *a == *b
}

func window[T any](items []T, page model.Page) []T {
	start := page.Offset()
	if start >= len(items) {
		return []T{}
	}
	end := start + page.Limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// newer orders by time then id, both descending.
func newer(a, b time.Time, idA, idB int64) bool {
	if !a.Equal(b) {
		return a.After(b)
	}
	return idA > idB
}
