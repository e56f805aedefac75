package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/m4tveevm/is-schedule/internal/model"
	"github.com/m4tveevm/is-schedule/internal/repository"
)

func newExportFixture(t *testing.T) (ExportService, *repository.Repository) {
	t.Helper()
	repo := newTestRepository()
	ctx := context.Background()

	if err := repo.Group.Create(ctx, &model.Group{GroupID: "group-1", Name: "ИС-21"}); err != nil {
		t.Fatal(err)
	}

	date, _ := time.Parse("2006-01-02", "2024-09-02")
	teacher := &model.Teacher{TeacherID: "t-1", Surname: "Иванов", Shortname: "Иванов И. И."}
	if err := repo.Lesson.Create(ctx, &model.Lesson{
		LessonID: "lesson-1", GroupID: "group-1", Date: date,
		LessonType: "lecture", TeacherID: "t-1", Teacher: teacher,
	}); err != nil {
		t.Fatal(err)
	}

	return NewExportService(repo, zap.NewNop()), repo
}

func TestExportXLSX(t *testing.T) {
	svc, _ := newExportFixture(t)

	buf, filename, err := svc.ExportScheduleXLSX(context.Background(), "group-1")
	if err != nil {
		t.Fatalf("ExportScheduleXLSX 应成功: %v", err)
	}
	if !strings.HasSuffix(filename, ".xlsx") {
		t.Errorf("文件名应以 .xlsx 结尾，实际=%s", filename)
	}

	// 生成的文件应可回读
	f, err := excelize.OpenReader(buf)
	if err != nil {
		t.Fatalf("导出文件应可解析: %v", err)
	}
	defer f.Close()

	head, err := f.GetCellValue("ИС-21", "B1")
	if err != nil {
		t.Fatal(err)
	}
	if head != "2024-09-02" {
		t.Errorf("列头应为日期，实际=%q", head)
	}
	cell, err := f.GetCellValue("ИС-21", "B2")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(cell, "Иванов И. И.") {
		t.Errorf("单元格应含教师简称，实际=%q", cell)
	}
}

func TestExportICS(t *testing.T) {
	svc, _ := newExportFixture(t)

	buf, filename, err := svc.ExportScheduleICS(context.Background(), "group-1")
	if err != nil {
		t.Fatalf("ExportScheduleICS 应成功: %v", err)
	}
	if !strings.HasSuffix(filename, ".ics") {
		t.Errorf("文件名应以 .ics 结尾，实际=%s", filename)
	}

	content := buf.String()
	if !strings.Contains(content, "BEGIN:VCALENDAR") || !strings.Contains(content, "BEGIN:VEVENT") {
		t.Error("输出应为 iCalendar 格式")
	}
	if !strings.Contains(content, "UID:lesson-1") {
		t.Error("VEVENT 的 UID 应复用排课记录主键")
	}
}

func TestExport_NoLessons(t *testing.T) {
	repo := newTestRepository()
	if err := repo.Group.Create(context.Background(), &model.Group{GroupID: "group-1", Name: "ИС-21"}); err != nil {
		t.Fatal(err)
	}
	svc := NewExportService(repo, zap.NewNop())

	if _, _, err := svc.ExportScheduleXLSX(context.Background(), "group-1"); !errors.Is(err, ErrExportNoLessons) {
		t.Errorf("期望 ErrExportNoLessons，实际: %v", err)
	}
	if _, _, err := svc.ExportScheduleICS(context.Background(), "group-1"); !errors.Is(err, ErrExportNoLessons) {
		t.Errorf("期望 ErrExportNoLessons，实际: %v", err)
	}
}
