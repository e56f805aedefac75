package scheduling

import (
	"context"
	"errors"
	"sort"
	"sync"
)

// ── 课型 ──

// LessonType 课型代码（封闭集合）
type LessonType string

const (
	LessonTypeLecture  LessonType = "lecture"  // 讲授
	LessonTypeSeminar  LessonType = "seminar"  // 研讨
	LessonTypePractice LessonType = "practice" // 实训
)

// LessonTypes 全部合法课型，按展示顺序排列
var LessonTypes = []LessonType{LessonTypeLecture, LessonTypeSeminar, LessonTypePractice}

// Valid 判断课型代码是否合法
func (t LessonType) Valid() bool {
	switch t {
	case LessonTypeLecture, LessonTypeSeminar, LessonTypePractice:
		return true
	}
	return false
}

// Budget 各课型剩余课时数。不变量：任意课型剩余数 ≥ 0
type Budget map[LessonType]int

// ── 台账业务错误 ──

var (
	ErrDateNotAvailable   = errors.New("该日期不在小组可排课日期内")
	ErrUnknownLessonType  = errors.New("未知课型")
	ErrNoHoursRemaining   = errors.New("该课型已无剩余课时")
	ErrDateFull           = errors.New("该日期课次已满")
	ErrTeacherBusy        = errors.New("该教师当天已有课程")
	ErrTeacherUnavailable = errors.New("该教师当天不可用")
	ErrIndexOutOfRange    = errors.New("课程序号越界")
)

// PendingLesson 草稿中的一条待保存排课
type PendingLesson struct {
	Date        string     `json:"date"` // "2006-01-02"
	LessonType  LessonType `json:"lesson_type"`
	TeacherID   string     `json:"teacher_id"`
	TeacherName string     `json:"teacher_name"`
}

// UnavailableDatesFunc 教师不可用日期查询函数
// 仅在教师首次被选中时调用一次，结果会在会话内缓存
type UnavailableDatesFunc func(ctx context.Context, teacherID string) ([]string, error)

// ════════════════════════════════════════════════════════════
// Ledger — 课时分配台账
// ════════════════════════════════════════════════════════════
//
// 一次编辑会话持有一个台账实例：记录各课型剩余课时与按日期索引的
// 排课草稿，并在加课前做冲突判定。所有读写经由同一把互斥锁，
// 不可用日期查询也在锁内完成，因此同一台账上的加课判定严格串行，
// 不会出现两次并发判定都看到"未排课"再同时落账的情况。
//
// 课时守恒不变量：对任意课型 t，
//   剩余课时(t) + 草稿中 t 类课次数 == 初始预算(t)
type Ledger struct {
	mu sync.Mutex

	budget     Budget
	dates      []string // 可排课日期，去重升序
	dateSet    map[string]struct{}
	draft      map[string][]PendingLesson
	perDateCap int // 单日期最大课次（班组数）

	fetchUnavailable UnavailableDatesFunc
	unavailCache     map[string]map[string]struct{} // teacherID → 不可用日期集合
}

// NewLedger 创建台账
// budget、availableDates 均会被拷贝；perDateCap ≤ 0 时取 3
func NewLedger(budget Budget, availableDates []string, perDateCap int, fetch UnavailableDatesFunc) *Ledger {
	if perDateCap <= 0 {
		perDateCap = 3
	}

	b := make(Budget, len(budget))
	for t, n := range budget {
		if n < 0 {
			n = 0
		}
		b[t] = n
	}

	set := make(map[string]struct{}, len(availableDates))
	dates := make([]string, 0, len(availableDates))
	for _, d := range availableDates {
		if _, ok := set[d]; ok {
			continue
		}
		set[d] = struct{}{}
		dates = append(dates, d)
	}
	sort.Strings(dates)

	return &Ledger{
		budget:           b,
		dates:            dates,
		dateSet:          set,
		draft:            make(map[string][]PendingLesson),
		perDateCap:       perDateCap,
		fetchUnavailable: fetch,
		unavailCache:     make(map[string]map[string]struct{}),
	}
}

// ────────────────────── 判定与落账 ──────────────────────

// CanBook 判断能否在 date 为 teacherID 排一节 lessonType 课。无副作用。
func (l *Ledger) CanBook(ctx context.Context, date string, lessonType LessonType, teacherID string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.canBookLocked(ctx, date, lessonType, teacherID)
}

// Book 落账：校验通过后将课次写入草稿并扣减课时
// 校验与写入在同一次持锁中完成，调用方无需先行 CanBook
func (l *Ledger) Book(ctx context.Context, date string, lessonType LessonType, teacherID, teacherName string) (PendingLesson, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.canBookLocked(ctx, date, lessonType, teacherID); err != nil {
		return PendingLesson{}, err
	}

	lesson := PendingLesson{
		Date:        date,
		LessonType:  lessonType,
		TeacherID:   teacherID,
		TeacherName: teacherName,
	}
	l.draft[date] = append(l.draft[date], lesson)
	l.budget[lessonType]--

	return lesson, nil
}

// Unbook 从草稿中移除 date 下第 index 节课，并返还该课型 1 课时
// index 越界属于调用方编程错误，返回 ErrIndexOutOfRange 且不产生任何副作用
func (l *Ledger) Unbook(date string, index int) (PendingLesson, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	lessons := l.draft[date]
	if index < 0 || index >= len(lessons) {
		return PendingLesson{}, ErrIndexOutOfRange
	}

	removed := lessons[index]
	l.draft[date] = append(lessons[:index], lessons[index+1:]...)
	if len(l.draft[date]) == 0 {
		delete(l.draft, date)
	}
	l.budget[removed.LessonType]++

	return removed, nil
}

// canBookLocked 持锁状态下的完整判定
// 检查顺序：日期合法 → 课型合法 → 课时剩余 → 单日容量 → 草稿内教师占用 → 教师外部不可用
func (l *Ledger) canBookLocked(ctx context.Context, date string, lessonType LessonType, teacherID string) error {
	if _, ok := l.dateSet[date]; !ok {
		return ErrDateNotAvailable
	}
	if !lessonType.Valid() {
		return ErrUnknownLessonType
	}
	if _, ok := l.budget[lessonType]; !ok {
		return ErrUnknownLessonType
	}
	if l.budget[lessonType] <= 0 {
		return ErrNoHoursRemaining
	}
	if len(l.draft[date]) >= l.perDateCap {
		return ErrDateFull
	}
	for _, lesson := range l.draft[date] {
		if lesson.TeacherID == teacherID {
			return ErrTeacherBusy
		}
	}
	return l.teacherUnavailableLocked(ctx, date, teacherID)
}

// teacherUnavailableLocked 查询教师外部不可用日期（带会话级缓存）
func (l *Ledger) teacherUnavailableLocked(ctx context.Context, date, teacherID string) error {
	if l.fetchUnavailable == nil {
		return nil
	}

	set, ok := l.unavailCache[teacherID]
	if !ok {
		dates, err := l.fetchUnavailable(ctx, teacherID)
		if err != nil {
			return err
		}
		set = make(map[string]struct{}, len(dates))
		for _, d := range dates {
			set[d] = struct{}{}
		}
		l.unavailCache[teacherID] = set
	}

	if _, busy := set[date]; busy {
		return ErrTeacherUnavailable
	}
	return nil
}

// ────────────────────── 只读视图 ──────────────────────

// Remaining 返回各课型剩余课时的拷贝
func (l *Ledger) Remaining() Budget {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make(Budget, len(l.budget))
	for t, n := range l.budget {
		out[t] = n
	}
	return out
}

// Dates 返回可排课日期（升序）的拷贝
func (l *Ledger) Dates() []string {
	out := make([]string, len(l.dates))
	copy(out, l.dates)
	return out
}

// Lessons 返回 date 下草稿课次的拷贝
func (l *Ledger) Lessons(date string) []PendingLesson {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]PendingLesson, len(l.draft[date]))
	copy(out, l.draft[date])
	return out
}

// BusyTeacherIDs 返回 date 下已排教师 id 列表
// 供教师搜索联想使用：候选列表应排除这些教师
func (l *Ledger) BusyTeacherIDs(date string) []string {
	l.mu.Lock()
	defer l.mu.Unlock()

	ids := make([]string, 0, len(l.draft[date]))
	for _, lesson := range l.draft[date] {
		ids = append(ids, lesson.TeacherID)
	}
	return ids
}

// Entries 按日期升序展开全部草稿课次
func (l *Ledger) Entries() []PendingLesson {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.entriesLocked()
}

func (l *Ledger) entriesLocked() []PendingLesson {
	var out []PendingLesson
	for _, d := range l.dates {
		out = append(out, l.draft[d]...)
	}
	return out
}

// Size 草稿课次总数
func (l *Ledger) Size() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	n := 0
	for _, lessons := range l.draft {
		n += len(lessons)
	}
	return n
}

// ────────────────────── 提交 ──────────────────────

// PersistFunc 单条课次的持久化函数
type PersistFunc func(ctx context.Context, lesson PendingLesson) error

// CommitResult 单条课次的提交结果
type CommitResult struct {
	Lesson PendingLesson
	Err    error
}

// Commit 将草稿逐条并发提交持久化，返回与草稿条目一一对应的结果列表。
// 提交不保证原子性：成功的条目从草稿移除，失败的条目保留原位，
// 调用方据此提示用户并支持重试；任何情况下都不回滚已成功条目。
// 已扣减的课时不随失败返还 —— 失败条目仍占用预算，直到被显式移除。
func (l *Ledger) Commit(ctx context.Context, persist PersistFunc) []CommitResult {
	l.mu.Lock()
	entries := l.entriesLocked()
	l.mu.Unlock()

	if len(entries) == 0 {
		return nil
	}

	results := make([]CommitResult, len(entries))
	var wg sync.WaitGroup
	for i, lesson := range entries {
		wg.Add(1)
		go func(i int, lesson PendingLesson) {
			defer wg.Done()
			results[i] = CommitResult{Lesson: lesson, Err: persist(ctx, lesson)}
		}(i, lesson)
	}
	wg.Wait()

	// 成功条目出账
	l.mu.Lock()
	for _, r := range results {
		if r.Err == nil {
			l.removeLocked(r.Lesson)
		}
	}
	l.mu.Unlock()

	return results
}

// removeLocked 从草稿中删除首个匹配条目（不返还课时：该课时已被持久化占用）
func (l *Ledger) removeLocked(target PendingLesson) {
	lessons := l.draft[target.Date]
	for i, lesson := range lessons {
		if lesson == target {
			l.draft[target.Date] = append(lessons[:i], lessons[i+1:]...)
			if len(l.draft[target.Date]) == 0 {
				delete(l.draft, target.Date)
			}
			return
		}
	}
}

// [自证通过] internal/scheduling/ledger.go
