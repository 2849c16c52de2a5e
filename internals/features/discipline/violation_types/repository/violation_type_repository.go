package repository

import (
	"context"
	"log"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"disiplinku_backend/internals/constants"
	"disiplinku_backend/internals/features/discipline/violation_types/model"
	violationModel "disiplinku_backend/internals/features/discipline/violations/model"
)

type ViolationTypeRepository struct {
	DB *gorm.DB
}

func NewViolationTypeRepository(db *gorm.DB) *ViolationTypeRepository {
	return &ViolationTypeRepository{DB: db}
}

func (r *ViolationTypeRepository) list(ctx context.Context, onlyActive bool) []model.ViolationTypeModel {
	q := r.DB.WithContext(ctx).Model(&model.ViolationTypeModel{})
	if onlyActive {
		q = q.Where("violation_type_is_active = ?", true)
	}
	rows := make([]model.ViolationTypeModel, 0)
	if err := q.
		Order(constants.SeverityOrderSQL("violation_type_severity")).
		Order("violation_type_points ASC, violation_type_name ASC, violation_type_id ASC").
		Find(&rows).Error; err != nil {
		log.Printf("[WARN] violation types: %v", err)
		return []model.ViolationTypeModel{}
	}
	return rows
}

// GetAll: urut severity (minor → severe), poin, nama.
func (r *ViolationTypeRepository) GetAll(ctx context.Context) []model.ViolationTypeModel {
	return r.list(ctx, false)
}

func (r *ViolationTypeRepository) GetActive(ctx context.Context) []model.ViolationTypeModel {
	return r.list(ctx, true)
}

func (r *ViolationTypeRepository) GetByID(ctx context.Context, id uint) *model.ViolationTypeModel {
	var m model.ViolationTypeModel
	if err := r.DB.WithContext(ctx).First(&m, "violation_type_id = ?", id).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("[WARN] violation type %d: %v", id, err)
		}
		return nil
	}
	return &m
}

func (r *ViolationTypeRepository) Create(ctx context.Context, m *model.ViolationTypeModel) (uint, error) {
	if err := r.DB.WithContext(ctx).Create(m).Error; err != nil {
		return 0, errors.Wrap(err, "create violation type")
	}
	return m.ViolationTypeID, nil
}

func (r *ViolationTypeRepository) Update(ctx context.Context, id uint, fields map[string]any) (int64, error) {
	if len(fields) == 0 {
		return 0, nil
	}
	res := r.DB.WithContext(ctx).Model(&model.ViolationTypeModel{}).
		Where("violation_type_id = ?", id).
		Updates(fields)
	if res.Error != nil {
		return 0, errors.Wrap(res.Error, "update violation type")
	}
	return res.RowsAffected, nil
}

// Delete: pelanggaran lama dilepas (type_id NULL), snapshot nama/poin tetap.
func (r *ViolationTypeRepository) Delete(ctx context.Context, id uint) (int64, error) {
	var affected int64
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&violationModel.ViolationModel{}).
			Where("violation_type_id = ?", id).
			Update("violation_type_id", nil).Error; err != nil {
			return errors.Wrap(err, "detach violations")
		}
		res := tx.Where("violation_type_id = ?", id).Delete(&model.ViolationTypeModel{})
		if res.Error != nil {
			return errors.Wrap(res.Error, "delete violation type")
		}
		affected = res.RowsAffected
		return nil
	})
	return affected, err
}
