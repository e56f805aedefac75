package scheduling

// DayCell 日历网格中的一个日期单元
type DayCell struct {
	Date           string          `json:"date"`
	Lessons        []PendingLesson `json:"lessons"`
	BusyTeacherIDs []string        `json:"busy_teacher_ids"`
	Free           int             `json:"free"` // 还可排的课次数
}

// Grid 将草稿投影为按可排课日期排列的日历网格
// 每个单元携带该日期已排课次、已占用教师集合（供联想排除）与剩余容量
func (l *Ledger) Grid() []DayCell {
	l.mu.Lock()
	defer l.mu.Unlock()

	cells := make([]DayCell, 0, len(l.dates))
	for _, d := range l.dates {
		lessons := make([]PendingLesson, len(l.draft[d]))
		copy(lessons, l.draft[d])

		busy := make([]string, 0, len(lessons))
		for _, lesson := range lessons {
			busy = append(busy, lesson.TeacherID)
		}

		free := l.perDateCap - len(lessons)
		if free < 0 {
			free = 0
		}

		cells = append(cells, DayCell{
			Date:           d,
			Lessons:        lessons,
			BusyTeacherIDs: busy,
			Free:           free,
		})
	}
	return cells
}
