package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/clinic-api/internal/model"
	"github.com/jwalitptl/clinic-api/internal/repository"
)

const doctorColumns = `id, name, email, phone, specialization, license_number, years_of_experience,
	consultation_fee, created_by, created_at, updated_at`

type doctorRepository struct {
	db *sqlx.DB
}

func NewDoctorRepository(db *sqlx.DB) repository.DoctorRepository {
	return &doctorRepository{db: db}
}

func (r *doctorRepository) Create(ctx context.Context, doctor *model.Doctor) error {
	query := `
		INSERT INTO doctors (name, email, phone, specialization, license_number,
			years_of_experience, consultation_fee, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + doctorColumns

	err := r.db.GetContext(ctx, doctor, query,
		doctor.Name,
		doctor.Email,
		doctor.Phone,
		doctor.Specialization,
		doctor.LicenseNumber,
		doctor.YearsOfExperience,
		doctor.ConsultationFee,
		doctor.CreatedBy,
	)
	return wrapErr("create doctor", err)
}

func (r *doctorRepository) Get(ctx context.Context, id int64) (*model.Doctor, error) {
	query := `SELECT ` + doctorColumns + ` FROM doctors WHERE id = $1`
	var doctor model.Doctor
	if err := r.db.GetContext(ctx, &doctor, query, id); err != nil {
		return nil, wrapErr("get doctor", err)
	}
	return &doctor, nil
}

func (r *doctorRepository) List(ctx context.Context, filter model.DoctorFilter, page model.Page) ([]*model.Doctor, int, error) {
	where := ""
	args := []interface{}{}
	if filter.Specialization != "" {
		args = append(args, filter.Specialization)
		where = fmt.Sprintf(" WHERE specialization ILIKE '%%' || $%d || '%%'", len(args))
	}

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM doctors`+where, args...); err != nil {
		return nil, 0, wrapErr("count doctors", err)
	}

	query := `SELECT ` + doctorColumns + ` FROM doctors` + where +
		fmt.Sprintf(" ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, page.Limit, page.Offset())

	doctors := []*model.Doctor{}
	if err := r.db.SelectContext(ctx, &doctors, query, args...); err != nil {
		return nil, 0, wrapErr("list doctors", err)
	}
	return doctors, total, nil
}

func (r *doctorRepository) Update(ctx context.Context, doctor *model.Doctor) error {
	query := `
		UPDATE doctors
		SET name = $1, email = $2, phone = $3, specialization = $4, license_number = $5,
			years_of_experience = $6, consultation_fee = $7, updated_at = NOW()
		WHERE id = $8 AND created_by = $9
		RETURNING ` + doctorColumns

	err := r.db.GetContext(ctx, doctor, query,
		doctor.Name,
		doctor.Email,
		doctor.Phone,
		doctor.Specialization,
		doctor.LicenseNumber,
		doctor.YearsOfExperience,
		doctor.ConsultationFee,
		doctor.ID,
		doctor.CreatedBy,
	)
	return wrapErr("update doctor", err)
}

func (r *doctorRepository) Delete(ctx context.Context, creator, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM doctors WHERE id = $1 AND created_by = $2`, id, creator)
	if err != nil {
		return wrapErr("delete doctor", err)
	}
	return affected("delete doctor", res)
}
