package repository

import (
	"context"

	"gorm.io/gorm"

	"classroom-hub/internal/model"
)

// TeacherRepository data access for teachers.
type TeacherRepository interface {
	Create(ctx context.Context, teacher *model.Teacher) error
	GetByID(ctx context.Context, id string) (*model.Teacher, error)
	List(ctx context.Context, departmentID string) ([]model.Teacher, error)
	Update(ctx context.Context, teacher *model.Teacher) error
	Delete(ctx context.Context, id string, deletedBy string) error
}

// teacherRepo GORM implementation of TeacherRepository.
type teacherRepo struct {
	db *gorm.DB
}

// NewTeacherRepo creates a TeacherRepository.
func NewTeacherRepo(db *gorm.DB) TeacherRepository {
	return &teacherRepo{db: db}
}

func (r *teacherRepo) Create(ctx context.Context, teacher *model.Teacher) error {
	return r.db.WithContext(ctx).Create(teacher).Error
}

func (r *teacherRepo) GetByID(ctx context.Context, id string) (*model.Teacher, error) {
	var teacher model.Teacher
	err := r.db.WithContext(ctx).
		Preload("Department").
		Where("teacher_id = ?", id).
		First(&teacher).Error
	if err != nil {
		return nil, err
	}
	return &teacher, nil
}

func (r *teacherRepo) List(ctx context.Context, departmentID string) ([]model.Teacher, error) {
	q := r.db.WithContext(ctx).
		Preload("Department").
		Where("is_active = ?", true)
	if departmentID != "" {
		q = q.Where("department_id = ?", departmentID)
	}
	var teachers []model.Teacher
	err := q.Order("code ASC").Find(&teachers).Error
	return teachers, err
}

func (r *teacherRepo) Update(ctx context.Context, teacher *model.Teacher) error {
	return r.db.WithContext(ctx).Save(teacher).Error
}

func (r *teacherRepo) Delete(ctx context.Context, id string, deletedBy string) error {
	return r.db.WithContext(ctx).
		Model(&model.Teacher{}).
		Where("teacher_id = ?", id).
		Updates(map[string]interface{}{
			"deleted_by": deletedBy,
			"deleted_at": gorm.Expr("NOW()"),
		}).Error
}
