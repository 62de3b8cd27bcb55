package service

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/x2002uwh/SurveyBundle/internal/access"
	"github.com/x2002uwh/SurveyBundle/internal/domain/entity"
	"github.com/x2002uwh/SurveyBundle/internal/domain/repository"
	apperrors "github.com/x2002uwh/SurveyBundle/internal/pkg/errors"
)

// SurveyService управляет опросами и их связями с вопросами
type SurveyService struct {
	surveyRepo   repository.SurveyRepository
	questionRepo repository.QuestionRepository
	checker      access.Checker
}

// NewSurveyService создает новый сервис опросов
func NewSurveyService(
	surveyRepo repository.SurveyRepository,
	questionRepo repository.QuestionRepository,
	checker access.Checker,
) *SurveyService {
	return &SurveyService{
		surveyRepo:   surveyRepo,
		questionRepo: questionRepo,
		checker:      checker,
	}
}

// CreateSurveyInput - данные для создания опроса
type CreateSurveyInput struct {
	Title              string `json:"title" binding:"required,max=255"`
	Description        string `json:"description"`
	AllowAnswerEdition bool   `json:"allow_answer_edition"`
}

// Create создает опрос в workspace пользователя.
// Новый опрос не опубликован и не принимает ответы.
func (s *SurveyService) Create(user *entity.User, input CreateSurveyInput) (*entity.Survey, error) {
	survey := &entity.Survey{
		WorkspaceID:        user.WorkspaceID,
		OwnerID:            user.ID,
		Title:              input.Title,
		Description:        input.Description,
		AllowAnswerEdition: input.AllowAnswerEdition,
	}
	if err := s.surveyRepo.Create(survey); err != nil {
		return nil, fmt.Errorf("ошибка создания опроса: %w", err)
	}
	return survey, nil
}

// Get возвращает опрос с проверкой права открытия
func (s *SurveyService) Get(user *entity.User, surveyID uint) (*entity.Survey, error) {
	survey, err := s.surveyRepo.GetByID(surveyID)
	if err != nil {
		return nil, err
	}
	if err := access.Assert(s.checker, user, access.ActionOpen, access.SurveyResource(survey)); err != nil {
		return nil, err
	}
	return survey, nil
}

// ListByOwner возвращает опросы, созданные пользователем
func (s *SurveyService) ListByOwner(user *entity.User) ([]entity.Survey, error) {
	return s.surveyRepo.GetByOwner(user.ID)
}

// UpdateParametersInput - изменяемые параметры опроса
type UpdateParametersInput struct {
	Title              *string `json:"title" binding:"omitempty,max=255"`
	Description        *string `json:"description"`
	AllowAnswerEdition *bool   `json:"allow_answer_edition"`
	HasPublicResult    *bool   `json:"has_public_result"`
}

// UpdateParameters изменяет параметры опроса. При первом включении
// публичности результатов опросу выдается токен публичной ссылки;
// выключение публичности токен не отзывает, а лишь приостанавливает.
func (s *SurveyService) UpdateParameters(user *entity.User, surveyID uint, input UpdateParametersInput) (*entity.Survey, error) {
	survey, err := s.surveyRepo.GetByID(surveyID)
	if err != nil {
		return nil, err
	}
	if err := access.Assert(s.checker, user, access.ActionEdit, access.SurveyResource(survey)); err != nil {
		return nil, err
	}

	if input.Title != nil {
		survey.Title = *input.Title
	}
	if input.Description != nil {
		survey.Description = *input.Description
	}
	if input.AllowAnswerEdition != nil {
		survey.AllowAnswerEdition = *input.AllowAnswerEdition
	}
	if input.HasPublicResult != nil {
		survey.HasPublicResult = *input.HasPublicResult
		if survey.HasPublicResult && survey.ResultShareToken == "" {
			survey.ResultShareToken = uuid.NewString()
		}
	}

	if err := s.surveyRepo.Save(survey); err != nil {
		return nil, fmt.Errorf("ошибка сохранения опроса: %w", err)
	}
	return survey, nil
}

// Delete удаляет опрос вместе со связями и ответами
func (s *SurveyService) Delete(user *entity.User, surveyID uint) error {
	survey, err := s.surveyRepo.GetByID(surveyID)
	if err != nil {
		return err
	}
	if err := access.Assert(s.checker, user, access.ActionEdit, access.SurveyResource(survey)); err != nil {
		return err
	}
	return s.surveyRepo.Delete(surveyID)
}

// AttachQuestion прикрепляет вопрос к опросу в конец списка.
// Вопрос и опрос должны принадлежать одному workspace.
func (s *SurveyService) AttachQuestion(user *entity.User, surveyID, questionID uint, mandatory bool) (*entity.SurveyQuestionRelation, error) {
	survey, err := s.surveyRepo.GetByID(surveyID)
	if err != nil {
		return nil, err
	}
	if err := access.Assert(s.checker, user, access.ActionEdit, access.SurveyResource(survey)); err != nil {
		return nil, err
	}

	question, err := s.questionRepo.GetByID(questionID)
	if err != nil {
		return nil, err
	}
	if question.WorkspaceID != survey.WorkspaceID {
		return nil, fmt.Errorf("вопрос из другого workspace: %w", apperrors.ErrAccessDenied)
	}

	relations, err := s.surveyRepo.GetRelations(surveyID)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения связей опроса: %w", err)
	}

	position := 0
	for _, r := range relations {
		if r.Position >= position {
			position = r.Position + 1
		}
	}

	relation := &entity.SurveyQuestionRelation{
		SurveyID:   surveyID,
		QuestionID: questionID,
		Position:   position,
		Mandatory:  mandatory,
	}
	if err := s.surveyRepo.CreateRelation(relation); err != nil {
		return nil, fmt.Errorf("ошибка прикрепления вопроса: %w", err)
	}
	return relation, nil
}

// DetachQuestion открепляет вопрос от опроса. Сам вопрос остается
// в workspace и может использоваться другими опросами.
func (s *SurveyService) DetachQuestion(user *entity.User, surveyID, questionID uint) error {
	survey, err := s.surveyRepo.GetByID(surveyID)
	if err != nil {
		return err
	}
	if err := access.Assert(s.checker, user, access.ActionEdit, access.SurveyResource(survey)); err != nil {
		return err
	}
	return s.surveyRepo.DeleteRelation(surveyID, questionID)
}

// SwitchMandatory переключает обязательность вопроса в опросе
func (s *SurveyService) SwitchMandatory(user *entity.User, relationID uint) (*entity.SurveyQuestionRelation, error) {
	relation, err := s.surveyRepo.GetRelation(relationID)
	if err != nil {
		return nil, err
	}

	survey, err := s.surveyRepo.GetByID(relation.SurveyID)
	if err != nil {
		return nil, err
	}
	if err := access.Assert(s.checker, user, access.ActionEdit, access.SurveyResource(survey)); err != nil {
		return nil, err
	}

	relation.SwitchMandatory()
	if err := s.surveyRepo.SaveRelation(relation); err != nil {
		return nil, fmt.Errorf("ошибка сохранения связи: %w", err)
	}
	return relation, nil
}

// ReorderQuestion задает новую позицию вопроса в опросе
func (s *SurveyService) ReorderQuestion(user *entity.User, relationID uint, position int) (*entity.SurveyQuestionRelation, error) {
	relation, err := s.surveyRepo.GetRelation(relationID)
	if err != nil {
		return nil, err
	}

	survey, err := s.surveyRepo.GetByID(relation.SurveyID)
	if err != nil {
		return nil, err
	}
	if err := access.Assert(s.checker, user, access.ActionEdit, access.SurveyResource(survey)); err != nil {
		return nil, err
	}

	relation.Position = position
	if err := s.surveyRepo.SaveRelation(relation); err != nil {
		return nil, fmt.Errorf("ошибка сохранения связи: %w", err)
	}
	return relation, nil
}

// Questions возвращает связи опроса с вопросами в порядке позиций
func (s *SurveyService) Questions(user *entity.User, surveyID uint) ([]entity.SurveyQuestionRelation, error) {
	survey, err := s.surveyRepo.GetByID(surveyID)
	if err != nil {
		return nil, err
	}
	if err := access.Assert(s.checker, user, access.ActionOpen, access.SurveyResource(survey)); err != nil {
		return nil, err
	}
	return s.surveyRepo.GetRelations(surveyID)
}
