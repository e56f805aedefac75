package scheduling

import (
	"context"
	"testing"
)

func TestGrid_EmptyDraft(t *testing.T) {
	l := NewLedger(Budget{LessonTypeLecture: 2}, []string{"2024-09-03", "2024-09-02"}, 3, nil)

	cells := l.Grid()
	if len(cells) != 2 {
		t.Fatalf("期望2个日期单元，实际=%d", len(cells))
	}
	if cells[0].Date != "2024-09-02" || cells[1].Date != "2024-09-03" {
		t.Errorf("单元应按日期升序，实际=%v", []string{cells[0].Date, cells[1].Date})
	}
	for _, c := range cells {
		if len(c.Lessons) != 0 || len(c.BusyTeacherIDs) != 0 {
			t.Errorf("空草稿单元不应有课次: %+v", c)
		}
		if c.Free != 3 {
			t.Errorf("空单元剩余容量应为3，实际=%d", c.Free)
		}
	}
}

func TestGrid_ProjectsDraft(t *testing.T) {
	l := NewLedger(Budget{LessonTypeLecture: 3, LessonTypeSeminar: 2},
		[]string{"2024-09-02", "2024-09-03"}, 2, nil)
	ctx := context.Background()

	if _, err := l.Book(ctx, "2024-09-02", LessonTypeLecture, "t-1", "Иванов И. И."); err != nil {
		t.Fatalf("Book 应成功: %v", err)
	}
	if _, err := l.Book(ctx, "2024-09-02", LessonTypeSeminar, "t-2", "Петров П. П."); err != nil {
		t.Fatalf("Book 应成功: %v", err)
	}

	cells := l.Grid()
	first := cells[0]
	if len(first.Lessons) != 2 {
		t.Fatalf("09-02 期望2节课，实际=%d", len(first.Lessons))
	}
	if first.Lessons[0].TeacherID != "t-1" || first.Lessons[1].TeacherID != "t-2" {
		t.Errorf("课次应保持落账顺序，实际=%+v", first.Lessons)
	}
	if len(first.BusyTeacherIDs) != 2 {
		t.Errorf("占用教师集合应含2人，实际=%v", first.BusyTeacherIDs)
	}
	if first.Free != 0 {
		t.Errorf("已满单元剩余容量应为0，实际=%d", first.Free)
	}

	second := cells[1]
	if len(second.Lessons) != 0 || second.Free != 2 {
		t.Errorf("09-03 应为空且剩余2，实际=%+v", second)
	}
}

func TestGrid_SnapshotIsolation(t *testing.T) {
	l := NewLedger(Budget{LessonTypeLecture: 2}, []string{"2024-09-02"}, 3, nil)
	ctx := context.Background()

	if _, err := l.Book(ctx, "2024-09-02", LessonTypeLecture, "t-1", "Иванов И. И."); err != nil {
		t.Fatalf("Book 应成功: %v", err)
	}

	cells := l.Grid()
	cells[0].Lessons[0].TeacherID = "改写"

	if got := l.Lessons("2024-09-02")[0].TeacherID; got != "t-1" {
		t.Errorf("Grid 应返回快照副本，台账被外部改写: %s", got)
	}
}
