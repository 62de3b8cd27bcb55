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

// ResultsService строит агрегированные результаты опросов
type ResultsService struct {
	surveyRepo   repository.SurveyRepository
	questionRepo repository.QuestionRepository
	answerRepo   repository.AnswerRepository
	registry     *qtype.Registry
	checker      access.Checker
}

// NewResultsService создает новый сервис результатов
func NewResultsService(
	surveyRepo repository.SurveyRepository,
	questionRepo repository.QuestionRepository,
	answerRepo repository.AnswerRepository,
	registry *qtype.Registry,
	checker access.Checker,
) *ResultsService {
	return &ResultsService{
		surveyRepo:   surveyRepo,
		questionRepo: questionRepo,
		answerRepo:   answerRepo,
		registry:     registry,
		checker:      checker,
	}
}

// QuestionResults возвращает результаты одного вопроса опроса.
// Пагинация применяется только к open_ended вопросам; для choice-типов
// параметры страницы игнорируются.
func (s *ResultsService) QuestionResults(user *entity.User, surveyID, questionID uint, page, pageSize int) (*qtype.ResultsView, error) {
	survey, err := s.surveyRepo.GetByID(surveyID)
	if err != nil {
		return nil, err
	}

	if err := s.assertResultsAccess(user, survey); err != nil {
		return nil, err
	}

	return s.questionResults(survey, questionID, page, pageSize)
}

// SurveyResults возвращает результаты всех вопросов опроса в порядке
// их позиций. Вопросы без зарегистрированного обработчика пропускаются.
func (s *ResultsService) SurveyResults(user *entity.User, surveyID uint) ([]qtype.ResultsView, error) {
	survey, err := s.surveyRepo.GetByID(surveyID)
	if err != nil {
		return nil, err
	}

	if err := s.assertResultsAccess(user, survey); err != nil {
		return nil, err
	}

	return s.surveyResults(survey)
}

// assertResultsAccess проверяет доступ к результатам: право EDIT либо,
// при включенной публичности результатов, право OPEN (любой пользователь
// workspace опроса)
func (s *ResultsService) assertResultsAccess(user *entity.User, survey *entity.Survey) error {
	err := access.Assert(s.checker, user, access.ActionEdit, access.SurveyResource(survey))
	if err == nil {
		return nil
	}
	if !errors.Is(err, apperrors.ErrAccessDenied) || !survey.HasPublicResult {
		return err
	}
	return access.Assert(s.checker, user, access.ActionOpen, access.SurveyResource(survey))
}

// PublicResults возвращает результаты опроса по токену публичной ссылки,
// без аутентификации. Токен действует, только пока у опроса включена
// публичность результатов.
func (s *ResultsService) PublicResults(token string) ([]qtype.ResultsView, error) {
	survey, err := s.surveyRepo.GetByShareToken(token)
	if err != nil {
		return nil, err
	}

	if !survey.HasPublicResult {
		return nil, apperrors.ErrAccessDenied
	}

	return s.surveyResults(survey)
}

func (s *ResultsService) surveyResults(survey *entity.Survey) ([]qtype.ResultsView, error) {
	relations, err := s.surveyRepo.GetRelations(survey.ID)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения вопросов опроса: %w", err)
	}

	views := make([]qtype.ResultsView, 0, len(relations))
	for _, relation := range relations {
		view, err := s.questionResults(survey, relation.QuestionID, qtype.DefaultResultsPage, qtype.DefaultResultsPageSize)
		if err != nil {
			return nil, err
		}
		if view == nil {
			continue
		}
		views = append(views, *view)
	}
	return views, nil
}

// questionResults строит результаты вопроса через обработчик его типа.
// Для нераспознанного типа возвращается nil без ошибки.
func (s *ResultsService) questionResults(survey *entity.Survey, questionID uint, page, pageSize int) (*qtype.ResultsView, error) {
	question, err := s.questionRepo.GetByID(questionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("ошибка получения вопроса %d: %w", questionID, err)
	}

	handler, ok := s.registry.Get(question.Type)
	if !ok {
		return nil, nil
	}

	return handler.Results(s.answerRepo, survey, question, page, pageSize)
}
