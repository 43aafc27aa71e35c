package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/clinic-api/internal/model"
	"github.com/jwalitptl/clinic-api/internal/repository"
)

type mappingRepository struct {
	db *sqlx.DB
}

func NewMappingRepository(db *sqlx.DB) repository.MappingRepository {
	return &mappingRepository{db: db}
}

func (r *mappingRepository) Create(ctx context.Context, mapping *model.Mapping) error {
	query := `
		INSERT INTO patient_doctor_mappings (patient_id, doctor_id, notes)
		VALUES ($1, $2, $3)
		RETURNING id, patient_id, doctor_id, assigned_date, notes, is_active
	`
	err := r.db.GetContext(ctx, mapping, query, mapping.PatientID, mapping.DoctorID, mapping.Notes)
	return wrapErr("create mapping", err)
}

func (r *mappingRepository) ExistsActive(ctx context.Context, patientID, doctorID int64) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM patient_doctor_mappings
			WHERE patient_id = $1 AND doctor_id = $2 AND is_active
		)
	`
	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, patientID, doctorID); err != nil {
		return false, wrapErr("check mapping", err)
	}
	return exists, nil
}

func (r *mappingRepository) GetDetail(ctx context.Context, id int64) (*model.MappingDetail, error) {
	query := `
		SELECT m.id, m.patient_id, m.doctor_id, m.assigned_date, m.notes, m.is_active,
			p.name AS patient_name, d.name AS doctor_name, d.specialization
		FROM patient_doctor_mappings m
		JOIN patients p ON p.id = m.patient_id
		JOIN doctors d ON d.id = m.doctor_id
		WHERE m.id = $1
	`
	var detail model.MappingDetail
	if err := r.db.GetContext(ctx, &detail, query, id); err != nil {
		return nil, wrapErr("get mapping", err)
	}
	return &detail, nil
}

func (r *mappingRepository) List(ctx context.Context, owner int64, page model.Page) ([]*model.MappingDetail, int, error) {
	countQuery := `
		SELECT COUNT(*)
		FROM patient_doctor_mappings m
		JOIN patients p ON p.id = m.patient_id
		WHERE p.created_by = $1 AND m.is_active
	`
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, owner); err != nil {
		return nil, 0, wrapErr("count mappings", err)
	}

	query := `
		SELECT m.id, m.patient_id, m.doctor_id, m.assigned_date, m.notes, m.is_active,
			p.name AS patient_name, p.email AS patient_email,
			d.name AS doctor_name, d.specialization, d.consultation_fee
		FROM patient_doctor_mappings m
		JOIN patients p ON p.id = m.patient_id
		JOIN doctors d ON d.id = m.doctor_id
		WHERE p.created_by = $1 AND m.is_active
		ORDER BY m.assigned_date DESC, m.id DESC
		LIMIT $2 OFFSET $3
	`
	mappings := []*model.MappingDetail{}
	if err := r.db.SelectContext(ctx, &mappings, query, owner, page.Limit, page.Offset()); err != nil {
		return nil, 0, wrapErr("list mappings", err)
	}
	return mappings, total, nil
}

func (r *mappingRepository) ListForPatient(ctx context.Context, patientID int64) ([]*model.AssignedDoctor, error) {
	query := `
		SELECT m.id AS mapping_id, m.assigned_date, m.notes,
			d.id, d.name, d.email, d.phone, d.specialization, d.consultation_fee
		FROM patient_doctor_mappings m
		JOIN doctors d ON d.id = m.doctor_id
		WHERE m.patient_id = $1 AND m.is_active
		ORDER BY m.assigned_date DESC, m.id DESC
	`
	doctors := []*model.AssignedDoctor{}
	if err := r.db.SelectContext(ctx, &doctors, query, patientID); err != nil {
		return nil, wrapErr("list patient doctors", err)
	}
	return doctors, nil
}

func (r *mappingRepository) Deactivate(ctx context.Context, owner, id int64) error {
	query := `
		UPDATE patient_doctor_mappings m
		SET is_active = false
		FROM patients p
		WHERE m.patient_id = p.id AND m.id = $1 AND p.created_by = $2 AND m.is_active
	`
	res, err := r.db.ExecContext(ctx, query, id, owner)
	if err != nil {
		return wrapErr("deactivate mapping", err)
	}
	return affected("deactivate mapping", res)
}
