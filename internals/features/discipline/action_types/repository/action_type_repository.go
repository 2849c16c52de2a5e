package repository

import (
	"context"
	"log"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"disiplinku_backend/internals/constants"
	"disiplinku_backend/internals/features/discipline/action_types/model"
	actionModel "disiplinku_backend/internals/features/discipline/disciplinary_actions/model"
)

type ActionTypeRepository struct {
	DB *gorm.DB
}

func NewActionTypeRepository(db *gorm.DB) *ActionTypeRepository {
	return &ActionTypeRepository{DB: db}
}

func (r *ActionTypeRepository) list(ctx context.Context, onlyActive bool) []model.ActionTypeModel {
	q := r.DB.WithContext(ctx).Model(&model.ActionTypeModel{})
	if onlyActive {
		q = q.Where("action_type_is_active = ?", true)
	}
	rows := make([]model.ActionTypeModel, 0)
	if err := q.
		Order(constants.SeverityOrderSQL("action_type_severity")).
		Order("action_type_name ASC, action_type_id ASC").
		Find(&rows).Error; err != nil {
		log.Printf("[WARN] action types: %v", err)
		return []model.ActionTypeModel{}
	}
	return rows
}

func (r *ActionTypeRepository) GetAll(ctx context.Context) []model.ActionTypeModel {
	return r.list(ctx, false)
}

func (r *ActionTypeRepository) GetActive(ctx context.Context) []model.ActionTypeModel {
	return r.list(ctx, true)
}

func (r *ActionTypeRepository) GetByID(ctx context.Context, id uint) *model.ActionTypeModel {
	var m model.ActionTypeModel
	if err := r.DB.WithContext(ctx).First(&m, "action_type_id = ?", id).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("[WARN] action type %d: %v", id, err)
		}
		return nil
	}
	return &m
}

func (r *ActionTypeRepository) Create(ctx context.Context, m *model.ActionTypeModel) (uint, error) {
	if err := r.DB.WithContext(ctx).Create(m).Error; err != nil {
		return 0, errors.Wrap(err, "create action type")
	}
	return m.ActionTypeID, nil
}

func (r *ActionTypeRepository) Update(ctx context.Context, id uint, fields map[string]any) (int64, error) {
	if len(fields) == 0 {
		return 0, nil
	}
	res := r.DB.WithContext(ctx).Model(&model.ActionTypeModel{}).Where("action_type_id = ?", id).Updates(fields)
	if res.Error != nil {
		return 0, errors.Wrap(res.Error, "update action type")
	}
	return res.RowsAffected, nil
}

// Delete: tindakan lama dilepas (type_id NULL), nama tetap di snapshot.
func (r *ActionTypeRepository) Delete(ctx context.Context, id uint) (int64, error) {
	var affected int64
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&actionModel.DisciplinaryActionModel{}).
			Where("disciplinary_action_type_id = ?", id).
			Update("disciplinary_action_type_id", nil).Error; err != nil {
			return errors.Wrap(err, "detach disciplinary actions")
		}
		res := tx.Where("action_type_id = ?", id).Delete(&model.ActionTypeModel{})
		if res.Error != nil {
			return errors.Wrap(res.Error, "delete action type")
		}
		affected = res.RowsAffected
		return nil
	})
	return affected, err
}
