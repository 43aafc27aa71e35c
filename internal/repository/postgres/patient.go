package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/clinic-api/internal/model"
	"github.com/jwalitptl/clinic-api/internal/repository"
)

const patientColumns = `id, name, email, phone, to_char(date_of_birth, 'YYYY-MM-DD') AS date_of_birth,
	gender, address, medical_history, created_by, created_at, updated_at`

type patientRepository struct {
	db *sqlx.DB
}

func NewPatientRepository(db *sqlx.DB) repository.PatientRepository {
	return &patientRepository{db: db}
}

func (r *patientRepository) Create(ctx context.Context, patient *model.Patient) error {
	query := `
		INSERT INTO patients (name, email, phone, date_of_birth, gender, address, medical_history, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + patientColumns

	err := r.db.GetContext(ctx, patient, query,
		patient.Name,
		patient.Email,
		patient.Phone,
		patient.DateOfBirth,
		patient.Gender,
		patient.Address,
		patient.MedicalHistory,
		patient.CreatedBy,
	)
	return wrapErr("create patient", err)
}

func (r *patientRepository) Get(ctx context.Context, owner, id int64) (*model.Patient, error) {
	query := `SELECT ` + patientColumns + ` FROM patients WHERE id = $1 AND created_by = $2`
	var patient model.Patient
	if err := r.db.GetContext(ctx, &patient, query, id, owner); err != nil {
		return nil, wrapErr("get patient", err)
	}
	return &patient, nil
}

func (r *patientRepository) List(ctx context.Context, owner int64, page model.Page) ([]*model.Patient, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM patients WHERE created_by = $1`, owner); err != nil {
		return nil, 0, wrapErr("count patients", err)
	}

	query := `
		SELECT ` + patientColumns + `
		FROM patients
		WHERE created_by = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`
	patients := []*model.Patient{}
	if err := r.db.SelectContext(ctx, &patients, query, owner, page.Limit, page.Offset()); err != nil {
		return nil, 0, wrapErr("list patients", err)
	}
	return patients, total, nil
}

// Update replaces every mutable field of the patient matching ID and
// CreatedBy.
func (r *patientRepository) Update(ctx context.Context, patient *model.Patient) error {
	query := `
		UPDATE patients
		SET name = $1, email = $2, phone = $3, date_of_birth = $4, gender = $5,
			address = $6, medical_history = $7, updated_at = NOW()
		WHERE id = $8 AND created_by = $9
		RETURNING ` + patientColumns

	err := r.db.GetContext(ctx, patient, query,
		patient.Name,
		patient.Email,
		patient.Phone,
		patient.DateOfBirth,
		patient.Gender,
		patient.Address,
		patient.MedicalHistory,
		patient.ID,
		patient.CreatedBy,
	)
	return wrapErr("update patient", err)
}

func (r *patientRepository) Delete(ctx context.Context, owner, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM patients WHERE id = $1 AND created_by = $2`, id, owner)
	if err != nil {
		return wrapErr("delete patient", err)
	}
	return affected("delete patient", res)
}
