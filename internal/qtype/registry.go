package qtype

import (
	"sort"
	"strconv"

	"github.com/x2002uwh/SurveyBundle/internal/domain/entity"
)

// Ключи формы ответа, не являющиеся идентификаторами вариантов
const (
	commentKey = "comment"
	answerKey  = "answer"
	choiceKey  = "choice"
)

// Response - данные ответа пользователя на один вопрос, как они приходят
// из формы: ключ "comment" - комментарий, "answer" - свободный текст,
// "choice" - вариант для single_choice; для multi_choice каждый ключ,
// кроме "comment", считается идентификатором выбранного варианта.
type Response map[string]string

// Comment возвращает комментарий к ответу
func (r Response) Comment() string {
	return r[commentKey]
}

// Text возвращает текст свободного ответа
func (r Response) Text() string {
	return r[answerKey]
}

// SingleChoiceID возвращает выбранный вариант для single_choice вопроса
func (r Response) SingleChoiceID() (uint, bool) {
	raw, ok := r[choiceKey]
	if !ok || raw == "" {
		return 0, false
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

// HasChoiceKeys проверяет, содержит ли ответ хотя бы один ключ выбора
// вариантов (любой ключ, кроме "comment")
func (r Response) HasChoiceKeys() bool {
	for key := range r {
		if key != commentKey {
			return true
		}
	}
	return false
}

// ChoiceIDs возвращает идентификаторы выбранных вариантов multi_choice
// вопроса: все ключи, кроме "comment", распознанные как числа
func (r Response) ChoiceIDs() []uint {
	ids := make([]uint, 0, len(r))
	for key := range r {
		if key == commentKey {
			continue
		}
		id, err := strconv.ParseUint(key, 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, uint(id))
	}
	// Порядок обхода map недетерминирован
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// AnswerStore - операции хранения, которые нужны обработчику типа
// при записи ответа. Реализуется репозиторием ответов.
type AnswerStore interface {
	GetOpenEndedAnswer(questionAnswerID uint) (*entity.OpenEndedQuestionAnswer, error)
	CreateOpenEndedAnswer(answer *entity.OpenEndedQuestionAnswer) error
	SaveOpenEndedAnswer(answer *entity.OpenEndedQuestionAnswer) error
	ReplaceSelectedChoices(questionAnswerID uint, choiceIDs []uint) error
}

// ChoiceSource - доступ к определению вопроса с вариантами ответа
type ChoiceSource interface {
	GetChoiceQuestion(questionID uint) (*entity.MultipleChoiceQuestion, error)
	GetChoices(questionID uint) ([]entity.Choice, error)
}

// ResultsSource - счетчики и списки, из которых строится представление
// результатов вопроса
type ResultsSource interface {
	CountQuestionAnswers(surveyID, questionID uint) (int64, error)
	CountChoiceAnswers(surveyID, choiceID uint) (int64, error)
	ListOpenEndedAnswers(surveyID, questionID uint, page, pageSize int) ([]entity.OpenEndedQuestionAnswer, error)
}

// Handler - обработчик одного типа вопроса с фиксированным набором
// возможностей: формы создания/редактирования/ответа, запись ответа
// и представление результатов
type Handler interface {
	// Type возвращает тег типа вопроса
	Type() entity.QuestionType

	// CreationForm возвращает описание формы создания вопроса этого типа
	CreationForm() *FormView

	// EditForm возвращает форму редактирования существующего вопроса
	EditForm(question *entity.Question) (*FormView, error)

	// AnswerForm возвращает форму ответа с ранее сохраненными данными
	AnswerForm(question *entity.Question, prev Response, canEdit bool) (*FormView, error)

	// RegisterAnswer записывает ответ пользователя на вопрос.
	// isNew=true для первой отправки, false для редактирования.
	RegisterAnswer(store AnswerStore, qa *entity.QuestionAnswer, resp Response, isNew bool) error

	// Results строит представление результатов вопроса в рамках опроса
	Results(src ResultsSource, survey *entity.Survey, question *entity.Question, page, pageSize int) (*ResultsView, error)
}

// Registry - реестр обработчиков типов вопросов. Диспетчеризация по
// точному совпадению тега; нераспознанный тег не является ошибкой:
// вызывающий код трактует его как пустой результат.
type Registry struct {
	handlers map[entity.QuestionType]Handler
}

// NewRegistry создает пустой реестр
func NewRegistry() *Registry {
	return &Registry{handlers: make(map[entity.QuestionType]Handler)}
}

// Register регистрирует обработчик по его тегу. Повторная регистрация
// тега заменяет обработчик.
func (r *Registry) Register(h Handler) {
	r.handlers[h.Type()] = h
}

// Get возвращает обработчик для тега. Второе значение false означает,
// что тип не поддерживается.
func (r *Registry) Get(tag entity.QuestionType) (Handler, bool) {
	h, ok := r.handlers[tag]
	return h, ok
}

// Default создает реестр со встроенными обработчиками:
// single_choice, multi_choice и open_ended
func Default(choices ChoiceSource) *Registry {
	r := NewRegistry()
	r.Register(NewSingleChoiceHandler(choices))
	r.Register(NewMultiChoiceHandler(choices))
	r.Register(NewOpenEndedHandler())
	return r
}
