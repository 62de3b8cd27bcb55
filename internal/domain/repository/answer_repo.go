package repository

import (
	"github.com/x2002uwh/SurveyBundle/internal/domain/entity"
)

// AnswerRepository интерфейс для записи и агрегации ответов на опросы
type AnswerRepository interface {
	// GetSurveyAnswer возвращает конверт ответов пользователя на опрос
	GetSurveyAnswer(surveyID, userID uint) (*entity.SurveyAnswer, error)

	// CreateSurveyAnswer создает конверт ответов
	CreateSurveyAnswer(answer *entity.SurveyAnswer) error

	// SaveSurveyAnswer сохраняет изменения конверта (счетчик отправок)
	SaveSurveyAnswer(answer *entity.SurveyAnswer) error

	// GetQuestionAnswer возвращает ответ на вопрос внутри конверта
	GetQuestionAnswer(surveyAnswerID, questionID uint) (*entity.QuestionAnswer, error)

	// CreateQuestionAnswer создает ответ на вопрос
	CreateQuestionAnswer(answer *entity.QuestionAnswer) error

	// SaveQuestionAnswer сохраняет изменения ответа на вопрос
	SaveQuestionAnswer(answer *entity.QuestionAnswer) error

	// GetOpenEndedAnswer возвращает свободный ответ для QuestionAnswer
	GetOpenEndedAnswer(questionAnswerID uint) (*entity.OpenEndedQuestionAnswer, error)

	// CreateOpenEndedAnswer создает свободный ответ
	CreateOpenEndedAnswer(answer *entity.OpenEndedQuestionAnswer) error

	// SaveOpenEndedAnswer сохраняет изменения свободного ответа
	SaveOpenEndedAnswer(answer *entity.OpenEndedQuestionAnswer) error

	// GetSelectedChoices возвращает выбранные варианты для QuestionAnswer
	GetSelectedChoices(questionAnswerID uint) ([]entity.MultipleChoiceQuestionAnswer, error)

	// ReplaceSelectedChoices заменяет набор выбранных вариантов целиком:
	// удаление старых строк и вставка новых выполняются одной операцией
	ReplaceSelectedChoices(questionAnswerID uint, choiceIDs []uint) error

	// CountQuestionAnswers возвращает число респондентов вопроса в опросе -
	// количество строк QuestionAnswer для пары (опрос, вопрос)
	CountQuestionAnswers(surveyID, questionID uint) (int64, error)

	// CountChoiceAnswers возвращает число выбравших вариант в рамках опроса
	CountChoiceAnswers(surveyID, choiceID uint) (int64, error)

	// ListOpenEndedAnswers возвращает страницу свободных ответов для пары
	// (опрос, вопрос) в порядке вставки; page нумеруется с единицы
	ListOpenEndedAnswers(surveyID, questionID uint, page, pageSize int) ([]entity.OpenEndedQuestionAnswer, error)

	// InTransaction выполняет fn в одной транзакции; все операции
	// переданного fn репозитория попадают в нее
	InTransaction(fn func(tx AnswerRepository) error) error
}
