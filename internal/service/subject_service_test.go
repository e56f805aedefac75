package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/m4tveevm/is-schedule/internal/dto"
)

func TestSubjectCreateAndUpdate(t *testing.T) {
	svc := NewSubjectService(newTestRepository(), zap.NewNop())
	ctx := context.Background()

	subject, err := svc.Create(ctx, &dto.CreateSubjectRequest{
		Name:      "Информационные системы",
		ShortName: "ИС",
	})
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if subject.ShortName != "ИС" {
		t.Errorf("期望简称 ИС，实际=%q", subject.ShortName)
	}

	updated, err := svc.Update(ctx, subject.ID, &dto.UpdateSubjectRequest{
		Name:      "Информационные системы и технологии",
		ShortName: "ИСиТ",
	})
	if err != nil {
		t.Fatalf("Update 应成功: %v", err)
	}
	if updated.Name != "Информационные системы и технологии" {
		t.Errorf("名称未更新: %q", updated.Name)
	}
}

func TestSubjectGet_NotFound(t *testing.T) {
	svc := NewSubjectService(newTestRepository(), zap.NewNop())

	_, err := svc.Get(context.Background(), "missing")
	if !errors.Is(err, ErrSubjectNotFound) {
		t.Errorf("期望 ErrSubjectNotFound，实际: %v", err)
	}
}

func TestSubjectDelete_ThenGetNotFound(t *testing.T) {
	svc := NewSubjectService(newTestRepository(), zap.NewNop())
	ctx := context.Background()

	subject, err := svc.Create(ctx, &dto.CreateSubjectRequest{Name: "Физика"})
	if err != nil {
		t.Fatal(err)
	}

	if err := svc.Delete(ctx, subject.ID); err != nil {
		t.Fatalf("Delete 应成功: %v", err)
	}
	if _, err := svc.Get(ctx, subject.ID); !errors.Is(err, ErrSubjectNotFound) {
		t.Errorf("期望 ErrSubjectNotFound，实际: %v", err)
	}
}
