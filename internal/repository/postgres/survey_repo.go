package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/x2002uwh/SurveyBundle/internal/domain/entity"
	apperrors "github.com/x2002uwh/SurveyBundle/internal/pkg/errors"
)

// SurveyRepo реализует repository.SurveyRepository
type SurveyRepo struct {
	db *gorm.DB
}

// NewSurveyRepo создает новый репозиторий опросов
func NewSurveyRepo(db *gorm.DB) *SurveyRepo {
	return &SurveyRepo{db: db}
}

// GetByID возвращает опрос по ID
func (r *SurveyRepo) GetByID(id uint) (*entity.Survey, error) {
	var survey entity.Survey
	err := r.db.First(&survey, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &survey, nil
}

// GetByShareToken находит опрос по токену публичной ссылки на результаты
func (r *SurveyRepo) GetByShareToken(token string) (*entity.Survey, error) {
	if token == "" {
		return nil, apperrors.ErrNotFound
	}
	var survey entity.Survey
	err := r.db.Where("result_share_token = ?", token).First(&survey).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &survey, nil
}

// GetByOwner возвращает опросы, созданные пользователем
func (r *SurveyRepo) GetByOwner(ownerID uint) ([]entity.Survey, error) {
	var surveys []entity.Survey
	err := r.db.Where("owner_id = ?", ownerID).Order("id").Find(&surveys).Error
	if err != nil {
		return nil, err
	}
	return surveys, nil
}

// Create создает новый опрос
func (r *SurveyRepo) Create(survey *entity.Survey) error {
	return r.db.Create(survey).Error
}

// Save сохраняет изменения опроса
func (r *SurveyRepo) Save(survey *entity.Survey) error {
	return r.db.Save(survey).Error
}

// Delete удаляет опрос вместе со связями с вопросами
func (r *SurveyRepo) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("survey_id = ?", id).Delete(&entity.SurveyQuestionRelation{}).Error; err != nil {
			return err
		}
		return tx.Delete(&entity.Survey{}, id).Error
	})
}

// GetRelations возвращает связи опроса с вопросами, упорядоченные по позиции
func (r *SurveyRepo) GetRelations(surveyID uint) ([]entity.SurveyQuestionRelation, error) {
	var relations []entity.SurveyQuestionRelation
	err := r.db.Where("survey_id = ?", surveyID).
		Preload("Question").
		Order("position, id").
		Find(&relations).Error
	if err != nil {
		return nil, err
	}
	return relations, nil
}

// GetRelation возвращает связь опрос-вопрос по ее ID
func (r *SurveyRepo) GetRelation(id uint) (*entity.SurveyQuestionRelation, error) {
	var relation entity.SurveyQuestionRelation
	err := r.db.First(&relation, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &relation, nil
}

// CreateRelation прикрепляет вопрос к опросу
func (r *SurveyRepo) CreateRelation(relation *entity.SurveyQuestionRelation) error {
	return r.db.Create(relation).Error
}

// SaveRelation сохраняет изменения связи
func (r *SurveyRepo) SaveRelation(relation *entity.SurveyQuestionRelation) error {
	return r.db.Save(relation).Error
}

// DeleteRelation открепляет вопрос от опроса
func (r *SurveyRepo) DeleteRelation(surveyID, questionID uint) error {
	return r.db.Where("survey_id = ? AND question_id = ?", surveyID, questionID).
		Delete(&entity.SurveyQuestionRelation{}).Error
}
