package repository

import (
	"context"

	"gorm.io/gorm"

	"classroom-hub/internal/model"
	pkgerrors "classroom-hub/pkg/errors"
)

// ClassRepository data access for classes. A class owns its recurring
// schedule rows; creation and deletion keep both in step.
type ClassRepository interface {
	// CreateWithSchedules inserts the class and its recurring pattern in
	// one transaction.
	CreateWithSchedules(ctx context.Context, class *model.Class, schedules []model.ClassSchedule) error
	GetByID(ctx context.Context, id string) (*model.Class, error)
	List(ctx context.Context, departmentID, search string, offset, limit int) ([]model.Class, int64, error)
	Update(ctx context.Context, class *model.Class) error
	// DeleteCascade removes the class and all its schedule rows.
	DeleteCascade(ctx context.Context, id string, deletedBy string) error
}

// classRepo GORM implementation of ClassRepository.
type classRepo struct {
	db *gorm.DB
}

// NewClassRepo creates a ClassRepository.
func NewClassRepo(db *gorm.DB) ClassRepository {
	return &classRepo{db: db}
}

func (r *classRepo) CreateWithSchedules(ctx context.Context, class *model.Class, schedules []model.ClassSchedule) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(class).Error; err != nil {
			return err
		}
		for i := range schedules {
			schedules[i].ClassID = class.ClassID
		}
		if len(schedules) > 0 {
			if err := tx.Create(&schedules).Error; err != nil {
				return err
			}
		}
		class.Schedules = schedules
		return nil
	})
}

func (r *classRepo) GetByID(ctx context.Context, id string) (*model.Class, error) {
	var class model.Class
	err := r.db.WithContext(ctx).
		Preload("Department").
		Preload("RoomType").
		Preload("Teacher").
		Preload("Schedules").
		Preload("Schedules.TimeSlot").
		Preload("Schedules.Room").
		Where("class_id = ?", id).
		First(&class).Error
	if err != nil {
		return nil, err
	}
	return &class, nil
}

func (r *classRepo) List(ctx context.Context, departmentID, search string, offset, limit int) ([]model.Class, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Class{})
	if departmentID != "" {
		q = q.Where("department_id = ?", departmentID)
	}
	if search != "" {
		pattern := "%" + search + "%"
		q = q.Where("code ILIKE ? OR name ILIKE ? OR subject_name ILIKE ?", pattern, pattern, pattern)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var classes []model.Class
	err := q.Preload("Department").
		Preload("Teacher").
		Preload("Schedules").
		Order("code ASC").
		Offset(offset).
		Limit(limit).
		Find(&classes).Error
	return classes, total, err
}

func (r *classRepo) Update(ctx context.Context, class *model.Class) error {
	oldVersion := class.Version
	result := r.db.WithContext(ctx).
		Model(class).
		Where("class_id = ? AND version = ?", class.ClassID, oldVersion).
		Updates(map[string]interface{}{
			"name":         class.Name,
			"subject_code": class.SubjectCode,
			"subject_name": class.SubjectName,
			"major":        class.Major,
			"max_students": class.MaxStudents,
			"teacher_id":   class.TeacherID,
			"start_date":   class.StartDate,
			"end_date":     class.EndDate,
			"updated_by":   class.UpdatedBy,
			"version":      oldVersion + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrOptimisticLock
	}
	class.Version = oldVersion + 1
	return nil
}

func (r *classRepo) DeleteCascade(ctx context.Context, id string, deletedBy string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("class_id = ?", id).Delete(&model.ClassSchedule{}).Error; err != nil {
			return err
		}
		return tx.Model(&model.Class{}).
			Where("class_id = ?", id).
			Updates(map[string]interface{}{
				"deleted_by": deletedBy,
				"deleted_at": gorm.Expr("NOW()"),
			}).Error
	})
}
