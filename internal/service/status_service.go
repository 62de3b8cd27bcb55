package service

import (
	"fmt"

	"github.com/x2002uwh/SurveyBundle/internal/access"
	"github.com/x2002uwh/SurveyBundle/internal/domain/entity"
	"github.com/x2002uwh/SurveyBundle/internal/domain/repository"
)

// StatusService управляет жизненным циклом публикации опроса
type StatusService struct {
	surveyRepo repository.SurveyRepository
	checker    access.Checker
}

// NewStatusService создает новый сервис статусов
func NewStatusService(surveyRepo repository.SurveyRepository, checker access.Checker) *StatusService {
	return &StatusService{
		surveyRepo: surveyRepo,
		checker:    checker,
	}
}

// Publish публикует опрос. Переоткрывает закрытый опрос: флаг Closed
// сбрасывается. Повторная публикация уже опубликованного открытого
// опроса ничего не меняет.
func (s *StatusService) Publish(user *entity.User, surveyID uint) (*entity.Survey, error) {
	survey, err := s.surveyRepo.GetByID(surveyID)
	if err != nil {
		return nil, err
	}

	if err := access.Assert(s.checker, user, access.ActionEdit, access.SurveyResource(survey)); err != nil {
		return nil, err
	}

	if !survey.Published || survey.Closed {
		survey.Closed = false
		survey.Published = true
		if err := s.surveyRepo.Save(survey); err != nil {
			return nil, fmt.Errorf("ошибка публикации опроса: %w", err)
		}
	}
	return survey, nil
}

// Close закрывает опрос для приема ответов. Закрытие уже закрытого
// опроса ничего не меняет; флаг Published не трогается, чтобы повторная
// публикация восстановила прежнее состояние.
func (s *StatusService) Close(user *entity.User, surveyID uint) (*entity.Survey, error) {
	survey, err := s.surveyRepo.GetByID(surveyID)
	if err != nil {
		return nil, err
	}

	if err := access.Assert(s.checker, user, access.ActionEdit, access.SurveyResource(survey)); err != nil {
		return nil, err
	}

	if !survey.Closed {
		survey.Closed = true
		if err := s.surveyRepo.Save(survey); err != nil {
			return nil, fmt.Errorf("ошибка закрытия опроса: %w", err)
		}
	}
	return survey, nil
}
