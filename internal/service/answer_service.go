package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/x2002uwh/SurveyBundle/internal/access"
	"github.com/x2002uwh/SurveyBundle/internal/domain/entity"
	"github.com/x2002uwh/SurveyBundle/internal/domain/repository"
	apperrors "github.com/x2002uwh/SurveyBundle/internal/pkg/errors"
	"github.com/x2002uwh/SurveyBundle/internal/qtype"
)

// Submission - ответы пользователя на вопросы опроса: ключ - ID вопроса
type Submission map[uint]qtype.Response

// AnswerService записывает ответы пользователей на опросы
type AnswerService struct {
	surveyRepo   repository.SurveyRepository
	questionRepo repository.QuestionRepository
	answerRepo   repository.AnswerRepository
	registry     *qtype.Registry
	checker      access.Checker
}

// NewAnswerService создает новый сервис записи ответов
func NewAnswerService(
	surveyRepo repository.SurveyRepository,
	questionRepo repository.QuestionRepository,
	answerRepo repository.AnswerRepository,
	registry *qtype.Registry,
	checker access.Checker,
) *AnswerService {
	return &AnswerService{
		surveyRepo:   surveyRepo,
		questionRepo: questionRepo,
		answerRepo:   answerRepo,
		registry:     registry,
		checker:      checker,
	}
}

// RecordAnswers записывает отправку ответов пользователя на опрос.
// Вся отправка выполняется в одной транзакции: либо применяется целиком,
// либо не применяется вовсе.
//
// Статус опроса проверяется один раз на всю отправку: отправка в
// неопубликованный или закрытый опрос завершается успешно, но не
// создает никаких записей; возвращается nil-конверт. Повторная
// отправка увеличивает счетчик NbAnswers, даже если редактирование
// ответов запрещено; в этом случае сами ответы не изменяются.
func (s *AnswerService) RecordAnswers(user *entity.User, surveyID uint, submission Submission) (*entity.SurveyAnswer, error) {
	survey, err := s.surveyRepo.GetByID(surveyID)
	if err != nil {
		return nil, err
	}

	if survey.Status() != entity.StatusPublished {
		return nil, nil
	}

	if err := access.Assert(s.checker, user, access.ActionOpen, access.SurveyResource(survey)); err != nil {
		return nil, err
	}

	relations, err := s.surveyRepo.GetRelations(surveyID)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения вопросов опроса: %w", err)
	}

	var result *entity.SurveyAnswer
	err = s.answerRepo.InTransaction(func(tx repository.AnswerRepository) error {
		surveyAnswer, isNewAnswer, err := s.resolveSurveyAnswer(tx, surveyID, user.ID)
		if err != nil {
			return err
		}
		result = surveyAnswer

		// Счетчик отправок уже увеличен; без права редактирования
		// содержимое прежних ответов остается нетронутым
		if !isNewAnswer && !survey.AllowAnswerEdition {
			return nil
		}

		for _, relation := range relations {
			response, ok := submission[relation.QuestionID]
			if !ok {
				continue
			}
			if err := s.recordQuestionAnswer(tx, surveyAnswer, relation.QuestionID, response); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// resolveSurveyAnswer находит или создает конверт ответов пользователя.
// Существующий конверт получает инкремент счетчика отправок, дата
// первой отправки при этом не меняется.
func (s *AnswerService) resolveSurveyAnswer(tx repository.AnswerRepository, surveyID, userID uint) (*entity.SurveyAnswer, bool, error) {
	surveyAnswer, err := tx.GetSurveyAnswer(surveyID, userID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, false, fmt.Errorf("ошибка получения конверта ответов: %w", err)
		}
		surveyAnswer = &entity.SurveyAnswer{
			SurveyID:   surveyID,
			UserID:     userID,
			NbAnswers:  1,
			AnswerDate: time.Now(),
		}
		if err := tx.CreateSurveyAnswer(surveyAnswer); err != nil {
			return nil, false, fmt.Errorf("ошибка создания конверта ответов: %w", err)
		}
		return surveyAnswer, true, nil
	}

	surveyAnswer.IncrementNbAnswers()
	if err := tx.SaveSurveyAnswer(surveyAnswer); err != nil {
		return nil, false, fmt.Errorf("ошибка обновления счетчика отправок: %w", err)
	}
	return surveyAnswer, false, nil
}

// recordQuestionAnswer записывает ответ на один вопрос. Неизвестный ID
// вопроса и вопрос без зарегистрированного обработчика типа молча
// пропускаются, не прерывая отправку.
func (s *AnswerService) recordQuestionAnswer(tx repository.AnswerRepository, surveyAnswer *entity.SurveyAnswer, questionID uint, response qtype.Response) error {
	question, err := s.questionRepo.GetByID(questionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("ошибка получения вопроса %d: %w", questionID, err)
	}

	handler, ok := s.registry.Get(question.Type)
	if !ok {
		return nil
	}

	questionAnswer, isNew, err := s.resolveQuestionAnswer(tx, surveyAnswer.ID, questionID)
	if err != nil {
		return err
	}

	// Комментарий записывается только непустой: пустое поле формы
	// не затирает ранее сохраненный комментарий
	if comment := response.Comment(); comment != "" && comment != questionAnswer.Comment {
		questionAnswer.Comment = comment
		if err := tx.SaveQuestionAnswer(questionAnswer); err != nil {
			return fmt.Errorf("ошибка сохранения комментария: %w", err)
		}
	}

	return handler.RegisterAnswer(tx, questionAnswer, response, isNew)
}

// resolveQuestionAnswer находит или создает ответ на вопрос внутри конверта
func (s *AnswerService) resolveQuestionAnswer(tx repository.AnswerRepository, surveyAnswerID, questionID uint) (*entity.QuestionAnswer, bool, error) {
	questionAnswer, err := tx.GetQuestionAnswer(surveyAnswerID, questionID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, false, fmt.Errorf("ошибка получения ответа на вопрос: %w", err)
		}
		questionAnswer = &entity.QuestionAnswer{
			SurveyAnswerID: surveyAnswerID,
			QuestionID:     questionID,
		}
		if err := tx.CreateQuestionAnswer(questionAnswer); err != nil {
			return nil, false, fmt.Errorf("ошибка создания ответа на вопрос: %w", err)
		}
		return questionAnswer, true, nil
	}
	return questionAnswer, false, nil
}

// AnswerForms строит формы ответа на все вопросы опроса с ранее
// сохраненными данными пользователя
func (s *AnswerService) AnswerForms(user *entity.User, surveyID uint) ([]qtype.FormView, error) {
	survey, err := s.surveyRepo.GetByID(surveyID)
	if err != nil {
		return nil, err
	}

	if err := access.Assert(s.checker, user, access.ActionOpen, access.SurveyResource(survey)); err != nil {
		return nil, err
	}

	relations, err := s.surveyRepo.GetRelations(surveyID)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения вопросов опроса: %w", err)
	}

	canEdit := survey.AllowAnswerEdition
	forms := make([]qtype.FormView, 0, len(relations))
	for _, relation := range relations {
		question, err := s.questionRepo.GetByID(relation.QuestionID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				continue
			}
			return nil, fmt.Errorf("ошибка получения вопроса %d: %w", relation.QuestionID, err)
		}

		handler, ok := s.registry.Get(question.Type)
		if !ok {
			continue
		}

		prev, err := s.previousResponse(surveyID, user.ID, question)
		if err != nil {
			return nil, err
		}

		form, err := handler.AnswerForm(question, prev, canEdit)
		if err != nil {
			return nil, err
		}
		forms = append(forms, *form)
	}
	return forms, nil
}

// previousResponse восстанавливает ранее сохраненный ответ пользователя
// на вопрос в формате данных формы
func (s *AnswerService) previousResponse(surveyID, userID uint, question *entity.Question) (qtype.Response, error) {
	surveyAnswer, err := s.answerRepo.GetSurveyAnswer(surveyID, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("ошибка получения конверта ответов: %w", err)
	}

	questionAnswer, err := s.answerRepo.GetQuestionAnswer(surveyAnswer.ID, question.ID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("ошибка получения ответа на вопрос: %w", err)
	}

	response := qtype.Response{}
	if questionAnswer.Comment != "" {
		response["comment"] = questionAnswer.Comment
	}

	switch {
	case question.Type == entity.TypeOpenEnded:
		openEnded, err := s.answerRepo.GetOpenEndedAnswer(questionAnswer.ID)
		if err != nil {
			if !errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("ошибка получения свободного ответа: %w", err)
			}
		} else {
			response["answer"] = openEnded.Content
		}
	case question.Type.IsChoiceType():
		selected, err := s.answerRepo.GetSelectedChoices(questionAnswer.ID)
		if err != nil {
			return nil, fmt.Errorf("ошибка получения выбранных вариантов: %w", err)
		}
		if question.Type == entity.TypeSingleChoice && len(selected) > 0 {
			response["choice"] = fmt.Sprintf("%d", selected[0].ChoiceID)
		} else {
			for _, sel := range selected {
				response[fmt.Sprintf("%d", sel.ChoiceID)] = "1"
			}
		}
	}
	return response, nil
}
