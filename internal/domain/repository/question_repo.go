package repository

import (
	"github.com/x2002uwh/SurveyBundle/internal/domain/entity"
)

// QuestionRepository интерфейс для работы с вопросами и вариантами ответов
type QuestionRepository interface {
	// GetByID возвращает вопрос по ID
	GetByID(id uint) (*entity.Question, error)

	// GetByWorkspace возвращает все вопросы workspace
	GetByWorkspace(workspaceID uint) ([]entity.Question, error)

	// Create создает новый вопрос
	Create(question *entity.Question) error

	// Update обновляет вопрос
	Update(question *entity.Question) error

	// Delete удаляет вопрос
	Delete(id uint) error

	// GetChoiceQuestion возвращает определение вопроса с вариантами ответа
	// для указанного вопроса
	GetChoiceQuestion(questionID uint) (*entity.MultipleChoiceQuestion, error)

	// CreateChoiceQuestion создает определение вопроса с вариантами ответа
	CreateChoiceQuestion(mcq *entity.MultipleChoiceQuestion) error

	// SaveChoiceQuestion сохраняет изменения определения
	SaveChoiceQuestion(mcq *entity.MultipleChoiceQuestion) error

	// GetChoices возвращает варианты ответа вопроса, упорядоченные по позиции
	GetChoices(questionID uint) ([]entity.Choice, error)

	// ReplaceChoices заменяет набор вариантов ответа вопроса целиком
	ReplaceChoices(questionID uint, choices []entity.Choice) error
}
