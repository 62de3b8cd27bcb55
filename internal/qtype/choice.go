package qtype

import (
	"errors"
	"fmt"

	"github.com/x2002uwh/SurveyBundle/internal/domain/entity"
	apperrors "github.com/x2002uwh/SurveyBundle/internal/pkg/errors"
)

// choiceHandler - общая часть обработчиков single_choice и multi_choice:
// формы и результаты у них устроены одинаково, различается только
// извлечение выбранных вариантов из ответа.
type choiceHandler struct {
	choices ChoiceSource
}

// editForm строит форму с вариантами ответа вопроса
func (h *choiceHandler) editForm(question *entity.Question, tag entity.QuestionType) (*FormView, error) {
	mcq, err := h.choices.GetChoiceQuestion(question.ID)
	if err != nil {
		return nil, fmt.Errorf("определение вопроса с вариантами не найдено: %w", err)
	}

	choices, err := h.choices.GetChoices(question.ID)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения вариантов ответа: %w", err)
	}

	return &FormView{
		QuestionID: question.ID,
		Title:      question.Title,
		Type:       tag,
		Choices:    choices,
		Horizontal: mcq.Horizontal,
	}, nil
}

// results строит счетчики выбравших по каждому варианту.
// Counts остается пустым, если на вопрос никто не ответил.
func (h *choiceHandler) results(src ResultsSource, survey *entity.Survey, question *entity.Question, tag entity.QuestionType) (*ResultsView, error) {
	choices, err := h.choices.GetChoices(question.ID)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения вариантов ответа: %w", err)
	}

	respondents, err := src.CountQuestionAnswers(survey.ID, question.ID)
	if err != nil {
		return nil, fmt.Errorf("ошибка подсчета респондентов: %w", err)
	}

	counts := make(map[uint]int64)
	if respondents > 0 {
		for _, choice := range choices {
			count, err := src.CountChoiceAnswers(survey.ID, choice.ID)
			if err != nil {
				return nil, fmt.Errorf("ошибка подсчета выбравших вариант %d: %w", choice.ID, err)
			}
			counts[choice.ID] = count
		}
	}

	return &ResultsView{
		QuestionID:  question.ID,
		Type:        tag,
		Respondents: respondents,
		Choices:     choices,
		Counts:      counts,
	}, nil
}

// hasDefinition проверяет наличие определения вопроса с вариантами.
// Его отсутствие не ошибка: запись выбора молча пропускается.
func (h *choiceHandler) hasDefinition(questionID uint) (bool, error) {
	if _, err := h.choices.GetChoiceQuestion(questionID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("ошибка получения определения вопроса: %w", err)
	}
	return true, nil
}

// SingleChoiceHandler обрабатывает вопросы с единственным выбором
type SingleChoiceHandler struct {
	choiceHandler
}

// NewSingleChoiceHandler создает обработчик single_choice вопросов
func NewSingleChoiceHandler(choices ChoiceSource) *SingleChoiceHandler {
	return &SingleChoiceHandler{choiceHandler{choices: choices}}
}

// Type возвращает тег типа вопроса
func (h *SingleChoiceHandler) Type() entity.QuestionType {
	return entity.TypeSingleChoice
}

// CreationForm возвращает описание формы создания вопроса
func (h *SingleChoiceHandler) CreationForm() *FormView {
	return &FormView{Type: entity.TypeSingleChoice}
}

// EditForm возвращает форму редактирования вопроса с его вариантами
func (h *SingleChoiceHandler) EditForm(question *entity.Question) (*FormView, error) {
	return h.editForm(question, entity.TypeSingleChoice)
}

// AnswerForm возвращает форму ответа с вариантами и ранее выбранным
func (h *SingleChoiceHandler) AnswerForm(question *entity.Question, prev Response, canEdit bool) (*FormView, error) {
	view, err := h.editForm(question, entity.TypeSingleChoice)
	if err != nil {
		return nil, err
	}
	view.Answer = prev
	view.CanEdit = canEdit
	return view, nil
}

// RegisterAnswer записывает единственный выбранный вариант. Ответ без
// ключа "choice" не изменяет сохраненный выбор.
func (h *SingleChoiceHandler) RegisterAnswer(store AnswerStore, qa *entity.QuestionAnswer, resp Response, isNew bool) error {
	ok, err := h.hasDefinition(qa.QuestionID)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	choiceID, ok := resp.SingleChoiceID()
	if !ok {
		return nil
	}

	if err := store.ReplaceSelectedChoices(qa.ID, []uint{choiceID}); err != nil {
		return fmt.Errorf("ошибка записи выбранного варианта: %w", err)
	}
	return nil
}

// Results строит счетчики выбравших по вариантам
func (h *SingleChoiceHandler) Results(src ResultsSource, survey *entity.Survey, question *entity.Question, page, pageSize int) (*ResultsView, error) {
	return h.results(src, survey, question, entity.TypeSingleChoice)
}

// MultiChoiceHandler обрабатывает вопросы с множественным выбором
type MultiChoiceHandler struct {
	choiceHandler
}

// NewMultiChoiceHandler создает обработчик multi_choice вопросов
func NewMultiChoiceHandler(choices ChoiceSource) *MultiChoiceHandler {
	return &MultiChoiceHandler{choiceHandler{choices: choices}}
}

// Type возвращает тег типа вопроса
func (h *MultiChoiceHandler) Type() entity.QuestionType {
	return entity.TypeMultiChoice
}

// CreationForm возвращает описание формы создания вопроса
func (h *MultiChoiceHandler) CreationForm() *FormView {
	return &FormView{Type: entity.TypeMultiChoice}
}

// EditForm возвращает форму редактирования вопроса с его вариантами
func (h *MultiChoiceHandler) EditForm(question *entity.Question) (*FormView, error) {
	return h.editForm(question, entity.TypeMultiChoice)
}

// AnswerForm возвращает форму ответа с вариантами и ранее выбранными
func (h *MultiChoiceHandler) AnswerForm(question *entity.Question, prev Response, canEdit bool) (*FormView, error) {
	view, err := h.editForm(question, entity.TypeMultiChoice)
	if err != nil {
		return nil, err
	}
	view.Answer = prev
	view.CanEdit = canEdit
	return view, nil
}

// RegisterAnswer заменяет набор выбранных вариантов целиком набором
// из ответа. Ответ только с комментарием, без ключей выбора, оставляет
// сохраненные варианты без изменений.
func (h *MultiChoiceHandler) RegisterAnswer(store AnswerStore, qa *entity.QuestionAnswer, resp Response, isNew bool) error {
	ok, err := h.hasDefinition(qa.QuestionID)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	if !resp.HasChoiceKeys() {
		return nil
	}

	ids := resp.ChoiceIDs()
	if isNew && len(ids) == 0 {
		return nil
	}

	if err := store.ReplaceSelectedChoices(qa.ID, ids); err != nil {
		return fmt.Errorf("ошибка записи выбранных вариантов: %w", err)
	}
	return nil
}

// Results строит счетчики выбравших по вариантам
func (h *MultiChoiceHandler) Results(src ResultsSource, survey *entity.Survey, question *entity.Question, page, pageSize int) (*ResultsView, error) {
	return h.results(src, survey, question, entity.TypeMultiChoice)
}
