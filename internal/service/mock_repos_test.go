package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/m4tveevm/is-schedule/internal/model"
	"github.com/m4tveevm/is-schedule/internal/repository"
)

// newTestRepository 组装全 Mock 的 Repository 聚合
func newTestRepository() *repository.Repository {
	return &repository.Repository{
		User:      newMockUserRepo(),
		Teacher:   newMockTeacherRepo(),
		Group:     newMockGroupRepo(),
		Subject:   newMockSubjectRepo(),
		Plan:      newMockPlanRepo(),
		GroupPlan: newMockGroupPlanRepo(),
		Brigade:   newMockBrigadeRepo(),
		Lesson:    newMockLessonRepo(),
	}
}

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User // key: user_id 与 username
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.UserID == "" {
		user.UserID = "user-" + user.Username
	}
	m.users[user.UserID] = user
	m.users[user.Username] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByUsername(_ context.Context, username string) (*model.User, error) {
	if u, ok := m.users[username]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	m.users[user.UserID] = user
	return nil
}

// ── Mock TeacherRepository ──

type mockTeacherRepo struct {
	seq         int
	teachers    map[string]*model.Teacher
	unavailable map[string]model.DateArray // teacher_id → dates
	profiles    map[string]*model.TeacherProfile
}

func newMockTeacherRepo() *mockTeacherRepo {
	return &mockTeacherRepo{
		teachers:    make(map[string]*model.Teacher),
		unavailable: make(map[string]model.DateArray),
		profiles:    make(map[string]*model.TeacherProfile),
	}
}

func (m *mockTeacherRepo) Create(_ context.Context, teacher *model.Teacher) error {
	if teacher.TeacherID == "" {
		m.seq++
		teacher.TeacherID = fmt.Sprintf("teacher-%d", m.seq)
	}
	m.teachers[teacher.TeacherID] = teacher
	return nil
}

func (m *mockTeacherRepo) GetByID(_ context.Context, id string) (*model.Teacher, error) {
	if t, ok := m.teachers[id]; ok {
		return t, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTeacherRepo) List(_ context.Context, search string, offset, limit int) ([]model.Teacher, int64, error) {
	var result []model.Teacher
	for _, t := range m.teachers {
		if search == "" || strings.Contains(t.Surname, search) || strings.Contains(t.Shortname, search) {
			result = append(result, *t)
		}
	}
	return result, int64(len(result)), nil
}

func (m *mockTeacherRepo) Search(_ context.Context, query string, limit int) ([]model.Teacher, error) {
	var result []model.Teacher
	for _, t := range m.teachers {
		if strings.Contains(t.Surname, query) || strings.Contains(t.Shortname, query) {
			result = append(result, *t)
		}
		if len(result) >= limit {
			break
		}
	}
	return result, nil
}

func (m *mockTeacherRepo) Update(_ context.Context, teacher *model.Teacher) error {
	m.teachers[teacher.TeacherID] = teacher
	return nil
}

func (m *mockTeacherRepo) Delete(_ context.Context, id string) error {
	delete(m.teachers, id)
	return nil
}

func (m *mockTeacherRepo) GetUnavailableDates(_ context.Context, teacherID string) (*model.TeacherUnavailableDates, error) {
	if dates, ok := m.unavailable[teacherID]; ok {
		return &model.TeacherUnavailableDates{TeacherID: teacherID, Dates: dates}, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTeacherRepo) SetUnavailableDates(_ context.Context, teacherID string, dates model.DateArray) error {
	m.unavailable[teacherID] = dates
	return nil
}

func (m *mockTeacherRepo) CreateProfile(_ context.Context, profile *model.TeacherProfile) error {
	for _, p := range m.profiles {
		if p.TeacherID == profile.TeacherID && p.SubjectID == profile.SubjectID {
			return gorm.ErrDuplicatedKey
		}
	}
	if profile.ProfileID == "" {
		m.seq++
		profile.ProfileID = fmt.Sprintf("profile-%d", m.seq)
	}
	m.profiles[profile.ProfileID] = profile
	return nil
}

func (m *mockTeacherRepo) ListProfiles(_ context.Context, offset, limit int) ([]model.TeacherProfile, int64, error) {
	var result []model.TeacherProfile
	for _, p := range m.profiles {
		result = append(result, *p)
	}
	return result, int64(len(result)), nil
}

func (m *mockTeacherRepo) DeleteProfile(_ context.Context, id string) error {
	if _, ok := m.profiles[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.profiles, id)
	return nil
}

// ── Mock GroupRepository ──

type mockGroupRepo struct {
	seq       int
	groups    map[string]*model.Group
	available map[string]model.DateArray // group_id → dates
}

func newMockGroupRepo() *mockGroupRepo {
	return &mockGroupRepo{
		groups:    make(map[string]*model.Group),
		available: make(map[string]model.DateArray),
	}
}

func (m *mockGroupRepo) Create(_ context.Context, group *model.Group) error {
	if group.GroupID == "" {
		m.seq++
		group.GroupID = fmt.Sprintf("group-%d", m.seq)
	}
	m.groups[group.GroupID] = group
	return nil
}

func (m *mockGroupRepo) GetByID(_ context.Context, id string) (*model.Group, error) {
	if g, ok := m.groups[id]; ok {
		return g, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockGroupRepo) GetByName(_ context.Context, name string) (*model.Group, error) {
	for _, g := range m.groups {
		if g.Name == name {
			return g, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockGroupRepo) List(_ context.Context, search string, offset, limit int) ([]model.Group, int64, error) {
	var result []model.Group
	for _, g := range m.groups {
		if search == "" || strings.Contains(g.Name, search) {
			result = append(result, *g)
		}
	}
	return result, int64(len(result)), nil
}

func (m *mockGroupRepo) Update(_ context.Context, group *model.Group) error {
	m.groups[group.GroupID] = group
	return nil
}

func (m *mockGroupRepo) Delete(_ context.Context, id string) error {
	delete(m.groups, id)
	return nil
}

func (m *mockGroupRepo) GetAvailableDates(_ context.Context, groupID string) (*model.GroupAvailableDates, error) {
	if dates, ok := m.available[groupID]; ok {
		return &model.GroupAvailableDates{GroupID: groupID, Dates: dates}, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockGroupRepo) SetAvailableDates(_ context.Context, groupID string, dates model.DateArray) error {
	m.available[groupID] = dates
	return nil
}

// ── Mock SubjectRepository ──

type mockSubjectRepo struct {
	seq      int
	subjects map[string]*model.Subject
}

func newMockSubjectRepo() *mockSubjectRepo {
	return &mockSubjectRepo{subjects: make(map[string]*model.Subject)}
}

func (m *mockSubjectRepo) Create(_ context.Context, subject *model.Subject) error {
	if subject.SubjectID == "" {
		m.seq++
		subject.SubjectID = fmt.Sprintf("subject-%d", m.seq)
	}
	m.subjects[subject.SubjectID] = subject
	return nil
}

func (m *mockSubjectRepo) GetByID(_ context.Context, id string) (*model.Subject, error) {
	if s, ok := m.subjects[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSubjectRepo) List(_ context.Context, search string, offset, limit int) ([]model.Subject, int64, error) {
	var result []model.Subject
	for _, s := range m.subjects {
		if search == "" || strings.Contains(s.Name, search) {
			result = append(result, *s)
		}
	}
	return result, int64(len(result)), nil
}

func (m *mockSubjectRepo) Update(_ context.Context, subject *model.Subject) error {
	m.subjects[subject.SubjectID] = subject
	return nil
}

func (m *mockSubjectRepo) Delete(_ context.Context, id string) error {
	delete(m.subjects, id)
	return nil
}

// ── Mock PlanRepository ──

type mockPlanRepo struct {
	seq     int
	plans   map[string]*model.EducationalPlan
	entries map[string][]model.EducationalPlanEntry // plan_id → entries
	// planHours 直接配置某小组的计划课时汇总（绕过 join）
	planHours map[string]map[string]int // group_id → lesson_type → hours
}

func newMockPlanRepo() *mockPlanRepo {
	return &mockPlanRepo{
		plans:     make(map[string]*model.EducationalPlan),
		entries:   make(map[string][]model.EducationalPlanEntry),
		planHours: make(map[string]map[string]int),
	}
}

func (m *mockPlanRepo) Create(_ context.Context, plan *model.EducationalPlan) error {
	if plan.PlanID == "" {
		m.seq++
		plan.PlanID = fmt.Sprintf("plan-%d", m.seq)
	}
	m.plans[plan.PlanID] = plan
	return nil
}

func (m *mockPlanRepo) GetByID(_ context.Context, id string) (*model.EducationalPlan, error) {
	if p, ok := m.plans[id]; ok {
		out := *p
		out.Entries = m.entries[id]
		return &out, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockPlanRepo) List(_ context.Context, search string, offset, limit int) ([]model.EducationalPlan, int64, error) {
	var result []model.EducationalPlan
	for id, p := range m.plans {
		if search == "" || strings.Contains(p.Name, search) {
			out := *p
			out.Entries = m.entries[id]
			result = append(result, out)
		}
	}
	return result, int64(len(result)), nil
}

func (m *mockPlanRepo) Update(_ context.Context, plan *model.EducationalPlan) error {
	m.plans[plan.PlanID] = plan
	return nil
}

func (m *mockPlanRepo) Delete(_ context.Context, id string) error {
	delete(m.plans, id)
	delete(m.entries, id)
	return nil
}

func (m *mockPlanRepo) ReplaceEntries(_ context.Context, planID string, entries []model.EducationalPlanEntry) error {
	for i := range entries {
		if entries[i].EntryID == "" {
			m.seq++
			entries[i].EntryID = fmt.Sprintf("entry-%d", m.seq)
		}
		entries[i].PlanID = planID
	}
	m.entries[planID] = entries
	return nil
}

func (m *mockPlanRepo) GetEntry(_ context.Context, entryID string) (*model.EducationalPlanEntry, error) {
	for _, list := range m.entries {
		for i := range list {
			if list[i].EntryID == entryID {
				return &list[i], nil
			}
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockPlanRepo) SumHoursByLessonType(_ context.Context, groupID string) (map[string]int, error) {
	if hours, ok := m.planHours[groupID]; ok {
		out := make(map[string]int, len(hours))
		for k, v := range hours {
			out[k] = v
		}
		return out, nil
	}
	return map[string]int{}, nil
}

// ── Mock GroupPlanRepository ──

type mockGroupPlanRepo struct {
	seq   int
	items map[string]*model.GroupEducationalPlan
}

func newMockGroupPlanRepo() *mockGroupPlanRepo {
	return &mockGroupPlanRepo{items: make(map[string]*model.GroupEducationalPlan)}
}

func (m *mockGroupPlanRepo) Create(_ context.Context, gp *model.GroupEducationalPlan) error {
	if gp.GroupPlanID == "" {
		m.seq++
		gp.GroupPlanID = fmt.Sprintf("gp-%d", m.seq)
	}
	m.items[gp.GroupPlanID] = gp
	return nil
}

func (m *mockGroupPlanRepo) GetByID(_ context.Context, id string) (*model.GroupEducationalPlan, error) {
	if gp, ok := m.items[id]; ok {
		return gp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockGroupPlanRepo) GetByGroup(_ context.Context, groupID string) (*model.GroupEducationalPlan, error) {
	for _, gp := range m.items {
		if gp.GroupID == groupID {
			return gp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockGroupPlanRepo) List(_ context.Context, search string, offset, limit int) ([]model.GroupEducationalPlan, int64, error) {
	var result []model.GroupEducationalPlan
	for _, gp := range m.items {
		result = append(result, *gp)
	}
	return result, int64(len(result)), nil
}

func (m *mockGroupPlanRepo) Update(_ context.Context, gp *model.GroupEducationalPlan) error {
	m.items[gp.GroupPlanID] = gp
	return nil
}

func (m *mockGroupPlanRepo) Delete(_ context.Context, id string) error {
	delete(m.items, id)
	return nil
}

// ── Mock BrigadeRepository ──

type mockBrigadeRepo struct {
	seq   int
	items map[string]*model.BrigadeAssignment
}

func newMockBrigadeRepo() *mockBrigadeRepo {
	return &mockBrigadeRepo{items: make(map[string]*model.BrigadeAssignment)}
}

func (m *mockBrigadeRepo) ListByGroupPlan(_ context.Context, groupPlanID string) ([]model.BrigadeAssignment, error) {
	var result []model.BrigadeAssignment
	for _, a := range m.items {
		if a.GroupPlanID == groupPlanID {
			result = append(result, *a)
		}
	}
	return result, nil
}

func (m *mockBrigadeRepo) ListByEntry(_ context.Context, groupPlanID, entryID string) ([]model.BrigadeAssignment, error) {
	var result []model.BrigadeAssignment
	for _, a := range m.items {
		if a.GroupPlanID == groupPlanID && a.EntryID == entryID {
			result = append(result, *a)
		}
	}
	return result, nil
}

func (m *mockBrigadeRepo) ReplaceForEntry(_ context.Context, groupPlanID, entryID string, desired []model.BrigadeAssignment) error {
	wanted := make(map[int]model.BrigadeAssignment, len(desired))
	for _, a := range desired {
		wanted[a.BrigadeNumber] = a
	}

	for id, a := range m.items {
		if a.GroupPlanID != groupPlanID || a.EntryID != entryID {
			continue
		}
		want, ok := wanted[a.BrigadeNumber]
		if !ok {
			delete(m.items, id)
			continue
		}
		a.TeacherID = want.TeacherID
		delete(wanted, a.BrigadeNumber)
	}

	for _, want := range wanted {
		m.seq++
		id := fmt.Sprintf("brigade-%d", m.seq)
		m.items[id] = &model.BrigadeAssignment{
			AssignmentID:  id,
			GroupPlanID:   groupPlanID,
			EntryID:       entryID,
			BrigadeNumber: want.BrigadeNumber,
			TeacherID:     want.TeacherID,
		}
	}
	return nil
}

func (m *mockBrigadeRepo) DeleteByGroupPlan(_ context.Context, groupPlanID string) error {
	for id, a := range m.items {
		if a.GroupPlanID == groupPlanID {
			delete(m.items, id)
		}
	}
	return nil
}

// ── Mock LessonRepository ──

// mockLessonRepo 带互斥锁：排课会话提交时并发写入
type mockLessonRepo struct {
	mu      sync.Mutex
	seq     int
	lessons map[string]*model.Lesson
	// failNext 使下一次 Create 返回指定错误（模拟持久化失败）
	failNext error
}

func newMockLessonRepo() *mockLessonRepo {
	return &mockLessonRepo{lessons: make(map[string]*model.Lesson)}
}

func (m *mockLessonRepo) Create(_ context.Context, lesson *model.Lesson) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failNext != nil {
		err := m.failNext
		m.failNext = nil
		return err
	}
	for _, l := range m.lessons {
		if l.TeacherID == lesson.TeacherID && l.Date.Equal(lesson.Date) {
			return gorm.ErrDuplicatedKey
		}
	}
	if lesson.LessonID == "" {
		m.seq++
		lesson.LessonID = fmt.Sprintf("lesson-%d", m.seq)
	}
	m.lessons[lesson.LessonID] = lesson
	return nil
}

func (m *mockLessonRepo) GetByID(_ context.Context, id string) (*model.Lesson, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if l, ok := m.lessons[id]; ok {
		return l, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockLessonRepo) ExistsByTeacherAndDate(_ context.Context, teacherID string, date time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, l := range m.lessons {
		if l.TeacherID == teacherID && l.Date.Equal(date) {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockLessonRepo) CountByLessonType(_ context.Context, groupID string) (map[string]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]int)
	for _, l := range m.lessons {
		if l.GroupID == groupID {
			out[l.LessonType]++
		}
	}
	return out, nil
}

func (m *mockLessonRepo) CountByGroupAndDate(_ context.Context, groupID string, date time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var count int64
	for _, l := range m.lessons {
		if l.GroupID == groupID && l.Date.Equal(date) {
			count++
		}
	}
	return count, nil
}

func (m *mockLessonRepo) ListByGroup(_ context.Context, groupID string, from, to *time.Time) ([]model.Lesson, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []model.Lesson
	for _, l := range m.lessons {
		if l.GroupID != groupID {
			continue
		}
		if from != nil && l.Date.Before(*from) {
			continue
		}
		if to != nil && l.Date.After(*to) {
			continue
		}
		result = append(result, *l)
	}
	return result, nil
}

func (m *mockLessonRepo) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.lessons, id)
	return nil
}

// [自证通过] internal/service/mock_repos_test.go
