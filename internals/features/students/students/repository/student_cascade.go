package repository

import (
	"context"
	"log"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	actionModel "disiplinku_backend/internals/features/discipline/disciplinary_actions/model"
	planModel "disiplinku_backend/internals/features/discipline/improvement_plans/model"
	violationModel "disiplinku_backend/internals/features/discipline/violations/model"
	notifModel "disiplinku_backend/internals/features/home/notifications/model"
	commModel "disiplinku_backend/internals/features/students/guardian_communications/model"
	"disiplinku_backend/internals/features/students/students/model"
	helperOSS "disiplinku_backend/internals/helpers/oss"
)

// DeleteStudentsTx menghapus siswa beserta riwayatnya di dalam tx milik pemanggil
// (dipakai juga oleh delete grade & tahun ajaran). Activity log tidak disentuh.
// Mengembalikan URL dokumen tindakan yang ikut terhapus; file-nya baru boleh
// dibuang lewat RemoveDocuments setelah tx commit.
func DeleteStudentsTx(tx *gorm.DB, ids []uint) ([]string, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var docs []string
	if err := tx.Model(&actionModel.DisciplinaryActionModel{}).
		Where("disciplinary_action_student_id IN ?", ids).
		Where("disciplinary_action_document_url IS NOT NULL AND disciplinary_action_document_url <> ''").
		Pluck("disciplinary_action_document_url", &docs).Error; err != nil {
		return nil, errors.Wrap(err, "list action documents")
	}

	plans := tx.Model(&planModel.ImprovementPlanModel{}).
		Select("improvement_plan_id").
		Where("improvement_plan_student_id IN ?", ids)
	if err := tx.Where("plan_follow_up_plan_id IN (?)", plans).
		Delete(&planModel.PlanFollowUpModel{}).Error; err != nil {
		return nil, errors.Wrap(err, "delete plan follow-ups")
	}
	if err := tx.Where("improvement_plan_student_id IN ?", ids).
		Delete(&planModel.ImprovementPlanModel{}).Error; err != nil {
		return nil, errors.Wrap(err, "delete improvement plans")
	}

	// tindakan dulu (FK ke violation), baru pelanggaran
	if err := tx.Where("disciplinary_action_student_id IN ?", ids).
		Delete(&actionModel.DisciplinaryActionModel{}).Error; err != nil {
		return nil, errors.Wrap(err, "delete disciplinary actions")
	}
	if err := tx.Where("violation_student_id IN ?", ids).
		Delete(&violationModel.ViolationModel{}).Error; err != nil {
		return nil, errors.Wrap(err, "delete violations")
	}
	if err := tx.Where("guardian_communication_student_id IN ?", ids).
		Delete(&commModel.GuardianCommunicationModel{}).Error; err != nil {
		return nil, errors.Wrap(err, "delete guardian communications")
	}

	if err := tx.Model(&notifModel.NotificationModel{}).
		Where("notification_related_student_id IN ?", ids).
		Update("notification_related_student_id", nil).Error; err != nil {
		return nil, errors.Wrap(err, "detach notifications")
	}

	if err := tx.Where("student_id IN ?", ids).Delete(&model.StudentModel{}).Error; err != nil {
		return nil, errors.Wrap(err, "delete students")
	}
	return docs, nil
}

// RemoveDocuments membuang file dokumen dari storage. Gagal hanya dicatat:
// baris database sudah terhapus.
func RemoveDocuments(ctx context.Context, store helperOSS.BlobService, urls []string) {
	if store == nil {
		return
	}
	for _, u := range urls {
		if err := store.DeleteByPublicURL(ctx, u); err != nil {
			log.Printf("[WARN] hapus dokumen %s: %v", u, err)
		}
	}
}
