package qtype

import (
	"errors"
	"fmt"

	"github.com/x2002uwh/SurveyBundle/internal/domain/entity"
	apperrors "github.com/x2002uwh/SurveyBundle/internal/pkg/errors"
)

// Параметры пагинации результатов open_ended вопросов по умолчанию
const (
	DefaultResultsPage     = 1
	DefaultResultsPageSize = 20
)

// OpenEndedHandler обрабатывает вопросы со свободным ответом
type OpenEndedHandler struct{}

// NewOpenEndedHandler создает обработчик open_ended вопросов
func NewOpenEndedHandler() *OpenEndedHandler {
	return &OpenEndedHandler{}
}

// Type возвращает тег типа вопроса
func (h *OpenEndedHandler) Type() entity.QuestionType {
	return entity.TypeOpenEnded
}

// CreationForm возвращает описание формы создания open_ended вопроса
func (h *OpenEndedHandler) CreationForm() *FormView {
	return &FormView{Type: entity.TypeOpenEnded}
}

// EditForm возвращает форму редактирования вопроса
func (h *OpenEndedHandler) EditForm(question *entity.Question) (*FormView, error) {
	return &FormView{
		QuestionID: question.ID,
		Title:      question.Title,
		Type:       entity.TypeOpenEnded,
	}, nil
}

// AnswerForm возвращает форму ответа с ранее сохраненным текстом
func (h *OpenEndedHandler) AnswerForm(question *entity.Question, prev Response, canEdit bool) (*FormView, error) {
	return &FormView{
		QuestionID: question.ID,
		Title:      question.Title,
		Type:       entity.TypeOpenEnded,
		Answer:     prev,
		CanEdit:    canEdit,
	}, nil
}

// RegisterAnswer записывает текст свободного ответа. Пустой текст при
// первой отправке не создает записи, при редактировании - не затирает
// сохраненный ответ.
func (h *OpenEndedHandler) RegisterAnswer(store AnswerStore, qa *entity.QuestionAnswer, resp Response, isNew bool) error {
	content := resp.Text()
	if content == "" {
		return nil
	}

	if isNew {
		answer := &entity.OpenEndedQuestionAnswer{
			QuestionAnswerID: qa.ID,
			Content:          content,
		}
		if err := store.CreateOpenEndedAnswer(answer); err != nil {
			return fmt.Errorf("ошибка создания свободного ответа: %w", err)
		}
		return nil
	}

	answer, err := store.GetOpenEndedAnswer(qa.ID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			answer = &entity.OpenEndedQuestionAnswer{QuestionAnswerID: qa.ID, Content: content}
			if createErr := store.CreateOpenEndedAnswer(answer); createErr != nil {
				return fmt.Errorf("ошибка создания свободного ответа: %w", createErr)
			}
			return nil
		}
		return fmt.Errorf("ошибка получения свободного ответа: %w", err)
	}

	answer.Content = content
	if err := store.SaveOpenEndedAnswer(answer); err != nil {
		return fmt.Errorf("ошибка обновления свободного ответа: %w", err)
	}
	return nil
}

// Results возвращает страницу свободных ответов в порядке вставки
func (h *OpenEndedHandler) Results(src ResultsSource, survey *entity.Survey, question *entity.Question, page, pageSize int) (*ResultsView, error) {
	if page < 1 {
		page = DefaultResultsPage
	}
	if pageSize <= 0 {
		pageSize = DefaultResultsPageSize
	}

	answers, err := src.ListOpenEndedAnswers(survey.ID, question.ID, page, pageSize)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения свободных ответов: %w", err)
	}

	respondents, err := src.CountQuestionAnswers(survey.ID, question.ID)
	if err != nil {
		return nil, fmt.Errorf("ошибка подсчета респондентов: %w", err)
	}

	contents := make([]string, 0, len(answers))
	for _, a := range answers {
		contents = append(contents, a.Content)
	}

	return &ResultsView{
		QuestionID:  question.ID,
		Type:        entity.TypeOpenEnded,
		Respondents: respondents,
		OpenAnswers: contents,
		Page:        page,
		PageSize:    pageSize,
	}, nil
}
