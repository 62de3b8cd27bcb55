package repository

import (
	"github.com/x2002uwh/SurveyBundle/internal/domain/entity"
)

// SurveyRepository интерфейс для работы с опросами и их связями с вопросами
type SurveyRepository interface {
	// GetByID возвращает опрос по ID
	GetByID(id uint) (*entity.Survey, error)

	// GetByShareToken находит опрос по токену публичной ссылки на результаты
	GetByShareToken(token string) (*entity.Survey, error)

	// GetByOwner возвращает опросы, созданные пользователем
	GetByOwner(ownerID uint) ([]entity.Survey, error)

	// Create создает новый опрос
	Create(survey *entity.Survey) error

	// Save сохраняет изменения опроса (в том числе флаги публикации)
	Save(survey *entity.Survey) error

	// Delete удаляет опрос
	Delete(id uint) error

	// GetRelations возвращает связи опроса с вопросами, упорядоченные по позиции
	GetRelations(surveyID uint) ([]entity.SurveyQuestionRelation, error)

	// GetRelation возвращает связь опрос-вопрос по ее ID
	GetRelation(id uint) (*entity.SurveyQuestionRelation, error)

	// CreateRelation прикрепляет вопрос к опросу
	CreateRelation(relation *entity.SurveyQuestionRelation) error

	// SaveRelation сохраняет изменения связи (порядок, обязательность)
	SaveRelation(relation *entity.SurveyQuestionRelation) error

	// DeleteRelation открепляет вопрос от опроса
	DeleteRelation(surveyID, questionID uint) error
}
