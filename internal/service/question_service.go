package service

import (
	"errors"
	"fmt"

	"github.com/x2002uwh/SurveyBundle/internal/access"
	"github.com/x2002uwh/SurveyBundle/internal/domain/entity"
	"github.com/x2002uwh/SurveyBundle/internal/domain/repository"
	apperrors "github.com/x2002uwh/SurveyBundle/internal/pkg/errors"
	"github.com/x2002uwh/SurveyBundle/internal/qtype"
)

// QuestionService управляет вопросами workspace и их вариантами ответов
type QuestionService struct {
	questionRepo repository.QuestionRepository
	registry     *qtype.Registry
	checker      access.Checker
}

// NewQuestionService создает новый сервис вопросов
func NewQuestionService(
	questionRepo repository.QuestionRepository,
	registry *qtype.Registry,
	checker access.Checker,
) *QuestionService {
	return &QuestionService{
		questionRepo: questionRepo,
		registry:     registry,
		checker:      checker,
	}
}

// QuestionInput - данные для создания или изменения вопроса
type QuestionInput struct {
	Title      string              `json:"title" binding:"required,max=255"`
	Type       entity.QuestionType `json:"type" binding:"required"`
	Horizontal bool                `json:"horizontal"`
	// Тексты вариантов ответа для choice-типов, в порядке отображения
	Choices []string `json:"choices"`
}

// Create создает вопрос в workspace пользователя. Для choice-типов
// вместе с вопросом создается определение с вариантами ответов.
func (s *QuestionService) Create(user *entity.User, input QuestionInput) (*entity.Question, error) {
	if _, ok := s.registry.Get(input.Type); !ok {
		return nil, fmt.Errorf("неподдерживаемый тип вопроса %q: %w", input.Type, apperrors.ErrNotFound)
	}

	question := &entity.Question{
		WorkspaceID: user.WorkspaceID,
		Title:       input.Title,
		Type:        input.Type,
	}
	if err := s.questionRepo.Create(question); err != nil {
		return nil, fmt.Errorf("ошибка создания вопроса: %w", err)
	}

	if input.Type.IsChoiceType() {
		mcq := &entity.MultipleChoiceQuestion{
			QuestionID: question.ID,
			Horizontal: input.Horizontal,
		}
		if err := s.questionRepo.CreateChoiceQuestion(mcq); err != nil {
			return nil, fmt.Errorf("ошибка создания определения вопроса: %w", err)
		}
		if err := s.replaceChoices(question.ID, input.Choices); err != nil {
			return nil, err
		}
	}
	return question, nil
}

// Update изменяет вопрос. Смена типа вопроса не поддерживается.
// Для choice-типов набор вариантов заменяется целиком; выбранные ранее
// варианты, которых больше нет, удаляются каскадно вместе с вариантами.
func (s *QuestionService) Update(user *entity.User, questionID uint, input QuestionInput) (*entity.Question, error) {
	question, err := s.questionRepo.GetByID(questionID)
	if err != nil {
		return nil, err
	}
	if err := access.Assert(s.checker, user, access.ActionEdit, access.QuestionResource(question)); err != nil {
		return nil, err
	}

	question.Title = input.Title
	if err := s.questionRepo.Update(question); err != nil {
		return nil, fmt.Errorf("ошибка обновления вопроса: %w", err)
	}

	if question.Type.IsChoiceType() {
		mcq, err := s.questionRepo.GetChoiceQuestion(questionID)
		if err != nil {
			if !errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("ошибка получения определения вопроса: %w", err)
			}
			mcq = &entity.MultipleChoiceQuestion{QuestionID: questionID, Horizontal: input.Horizontal}
			if err := s.questionRepo.CreateChoiceQuestion(mcq); err != nil {
				return nil, fmt.Errorf("ошибка создания определения вопроса: %w", err)
			}
		} else if mcq.Horizontal != input.Horizontal {
			mcq.Horizontal = input.Horizontal
			if err := s.questionRepo.SaveChoiceQuestion(mcq); err != nil {
				return nil, fmt.Errorf("ошибка сохранения определения вопроса: %w", err)
			}
		}

		if input.Choices != nil {
			if err := s.replaceChoices(questionID, input.Choices); err != nil {
				return nil, err
			}
		}
	}
	return question, nil
}

func (s *QuestionService) replaceChoices(questionID uint, contents []string) error {
	choices := make([]entity.Choice, 0, len(contents))
	for i, content := range contents {
		choices = append(choices, entity.Choice{
			QuestionID: questionID,
			Content:    content,
			Position:   i,
		})
	}
	if err := s.questionRepo.ReplaceChoices(questionID, choices); err != nil {
		return fmt.Errorf("ошибка замены вариантов ответа: %w", err)
	}
	return nil
}

// Get возвращает вопрос с проверкой доступа
func (s *QuestionService) Get(user *entity.User, questionID uint) (*entity.Question, error) {
	question, err := s.questionRepo.GetByID(questionID)
	if err != nil {
		return nil, err
	}
	if err := access.Assert(s.checker, user, access.ActionOpen, access.QuestionResource(question)); err != nil {
		return nil, err
	}
	return question, nil
}

// ListByWorkspace возвращает все вопросы workspace пользователя
func (s *QuestionService) ListByWorkspace(user *entity.User) ([]entity.Question, error) {
	return s.questionRepo.GetByWorkspace(user.WorkspaceID)
}

// Delete удаляет вопрос workspace
func (s *QuestionService) Delete(user *entity.User, questionID uint) error {
	question, err := s.questionRepo.GetByID(questionID)
	if err != nil {
		return err
	}
	if err := access.Assert(s.checker, user, access.ActionEdit, access.QuestionResource(question)); err != nil {
		return err
	}
	return s.questionRepo.Delete(questionID)
}

// CreationForm возвращает описание формы создания вопроса указанного типа
func (s *QuestionService) CreationForm(questionType entity.QuestionType) (*qtype.FormView, error) {
	handler, ok := s.registry.Get(questionType)
	if !ok {
		return nil, fmt.Errorf("неподдерживаемый тип вопроса %q: %w", questionType, apperrors.ErrNotFound)
	}
	return handler.CreationForm(), nil
}

// EditForm возвращает форму редактирования вопроса с его текущими данными
func (s *QuestionService) EditForm(user *entity.User, questionID uint) (*qtype.FormView, error) {
	question, err := s.Get(user, questionID)
	if err != nil {
		return nil, err
	}
	handler, ok := s.registry.Get(question.Type)
	if !ok {
		return nil, fmt.Errorf("неподдерживаемый тип вопроса %q: %w", question.Type, apperrors.ErrNotFound)
	}
	return handler.EditForm(question)
}
