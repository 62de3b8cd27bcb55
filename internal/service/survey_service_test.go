package service

import (
	"errors"
	"testing"

	"github.com/x2002uwh/SurveyBundle/internal/access"
	"github.com/x2002uwh/SurveyBundle/internal/domain/entity"
	apperrors "github.com/x2002uwh/SurveyBundle/internal/pkg/errors"
)

func newSurveyService(t *testing.T) (*SurveyService, *memSurveyRepo, *memQuestionRepo) {
	t.Helper()
	surveyRepo := newMemSurveyRepo()
	questionRepo := newMemQuestionRepo()
	return NewSurveyService(surveyRepo, questionRepo, access.NewRoleChecker()), surveyRepo, questionRepo
}

func TestSurveyCreateDefaults(t *testing.T) {
	svc, _, _ := newSurveyService(t)
	owner := &entity.User{ID: 1, Role: entity.RoleUser, WorkspaceID: 10}

	survey, err := svc.Create(owner, CreateSurveyInput{Title: "Опрос"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if survey.WorkspaceID != 10 || survey.OwnerID != 1 {
		t.Errorf("survey = %+v, want workspace 10 owner 1", survey)
	}
	if survey.Status() != entity.StatusUnpublished {
		t.Errorf("Status() = %q, want unpublished", survey.Status())
	}
}

func TestUpdateParametersIssuesShareToken(t *testing.T) {
	svc, _, _ := newSurveyService(t)
	owner := &entity.User{ID: 1, Role: entity.RoleUser, WorkspaceID: 10}
	survey, err := svc.Create(owner, CreateSurveyInput{Title: "Опрос"})
	if err != nil {
		t.Fatal(err)
	}

	enable := true
	updated, err := svc.UpdateParameters(owner, survey.ID, UpdateParametersInput{HasPublicResult: &enable})
	if err != nil {
		t.Fatalf("UpdateParameters() error = %v", err)
	}
	if updated.ResultShareToken == "" {
		t.Fatal("токен публичной ссылки не выдан")
	}
	token := updated.ResultShareToken

	// Выключение и повторное включение сохраняют прежний токен
	disable := false
	if _, err := svc.UpdateParameters(owner, survey.ID, UpdateParametersInput{HasPublicResult: &disable}); err != nil {
		t.Fatal(err)
	}
	updated, err = svc.UpdateParameters(owner, survey.ID, UpdateParametersInput{HasPublicResult: &enable})
	if err != nil {
		t.Fatal(err)
	}
	if updated.ResultShareToken != token {
		t.Errorf("токен изменился: %q -> %q", token, updated.ResultShareToken)
	}
}

func TestAttachQuestion(t *testing.T) {
	svc, surveyRepo, questionRepo := newSurveyService(t)
	owner := &entity.User{ID: 1, Role: entity.RoleUser, WorkspaceID: 10}
	survey, err := svc.Create(owner, CreateSurveyInput{Title: "Опрос"})
	if err != nil {
		t.Fatal(err)
	}

	question := &entity.Question{WorkspaceID: 10, Title: "Вопрос", Type: entity.TypeOpenEnded}
	if err := questionRepo.Create(question); err != nil {
		t.Fatal(err)
	}

	t.Run("positions grow monotonically", func(t *testing.T) {
		first, err := svc.AttachQuestion(owner, survey.ID, question.ID, false)
		if err != nil {
			t.Fatalf("AttachQuestion() error = %v", err)
		}

		other := &entity.Question{WorkspaceID: 10, Title: "Еще", Type: entity.TypeOpenEnded}
		if err := questionRepo.Create(other); err != nil {
			t.Fatal(err)
		}
		second, err := svc.AttachQuestion(owner, survey.ID, other.ID, true)
		if err != nil {
			t.Fatalf("AttachQuestion() error = %v", err)
		}

		if second.Position <= first.Position {
			t.Errorf("positions = %d, %d, want возрастание", first.Position, second.Position)
		}
	})

	t.Run("cross-workspace question rejected", func(t *testing.T) {
		foreign := &entity.Question{WorkspaceID: 99, Title: "Чужой", Type: entity.TypeOpenEnded}
		if err := questionRepo.Create(foreign); err != nil {
			t.Fatal(err)
		}
		_, err := svc.AttachQuestion(owner, survey.ID, foreign.ID, false)
		if !errors.Is(err, apperrors.ErrAccessDenied) {
			t.Errorf("AttachQuestion() error = %v, want ErrAccessDenied", err)
		}
	})

	t.Run("detach removes relation", func(t *testing.T) {
		if err := svc.DetachQuestion(owner, survey.ID, question.ID); err != nil {
			t.Fatalf("DetachQuestion() error = %v", err)
		}
		relations, err := surveyRepo.GetRelations(survey.ID)
		if err != nil {
			t.Fatal(err)
		}
		for _, rel := range relations {
			if rel.QuestionID == question.ID {
				t.Error("связь не удалена")
			}
		}
	})
}

func TestSwitchMandatory(t *testing.T) {
	svc, _, questionRepo := newSurveyService(t)
	owner := &entity.User{ID: 1, Role: entity.RoleUser, WorkspaceID: 10}
	survey, err := svc.Create(owner, CreateSurveyInput{Title: "Опрос"})
	if err != nil {
		t.Fatal(err)
	}
	question := &entity.Question{WorkspaceID: 10, Title: "Вопрос", Type: entity.TypeOpenEnded}
	if err := questionRepo.Create(question); err != nil {
		t.Fatal(err)
	}
	relation, err := svc.AttachQuestion(owner, survey.ID, question.ID, false)
	if err != nil {
		t.Fatal(err)
	}

	toggled, err := svc.SwitchMandatory(owner, relation.ID)
	if err != nil {
		t.Fatalf("SwitchMandatory() error = %v", err)
	}
	if !toggled.Mandatory {
		t.Error("Mandatory = false после переключения")
	}

	toggled, err = svc.SwitchMandatory(owner, relation.ID)
	if err != nil {
		t.Fatal(err)
	}
	if toggled.Mandatory {
		t.Error("Mandatory = true после повторного переключения")
	}
}
