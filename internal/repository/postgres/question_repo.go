package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/x2002uwh/SurveyBundle/internal/domain/entity"
	apperrors "github.com/x2002uwh/SurveyBundle/internal/pkg/errors"
)

// QuestionRepo реализует repository.QuestionRepository
type QuestionRepo struct {
	db *gorm.DB
}

// NewQuestionRepo создает новый репозиторий вопросов
func NewQuestionRepo(db *gorm.DB) *QuestionRepo {
	return &QuestionRepo{db: db}
}

// GetByID возвращает вопрос по ID
func (r *QuestionRepo) GetByID(id uint) (*entity.Question, error) {
	var question entity.Question
	err := r.db.First(&question, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &question, nil
}

// GetByWorkspace возвращает все вопросы workspace
func (r *QuestionRepo) GetByWorkspace(workspaceID uint) ([]entity.Question, error) {
	var questions []entity.Question
	err := r.db.Where("workspace_id = ?", workspaceID).Order("id").Find(&questions).Error
	if err != nil {
		return nil, err
	}
	return questions, nil
}

// Create создает новый вопрос
func (r *QuestionRepo) Create(question *entity.Question) error {
	return r.db.Create(question).Error
}

// Update обновляет вопрос
func (r *QuestionRepo) Update(question *entity.Question) error {
	return r.db.Save(question).Error
}

// Delete удаляет вопрос вместе с определением и вариантами ответов
func (r *QuestionRepo) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("question_id = ?", id).Delete(&entity.Choice{}).Error; err != nil {
			return err
		}
		if err := tx.Where("question_id = ?", id).Delete(&entity.MultipleChoiceQuestion{}).Error; err != nil {
			return err
		}
		if err := tx.Where("question_id = ?", id).Delete(&entity.SurveyQuestionRelation{}).Error; err != nil {
			return err
		}
		return tx.Delete(&entity.Question{}, id).Error
	})
}

// GetChoiceQuestion возвращает определение вопроса с вариантами ответа
func (r *QuestionRepo) GetChoiceQuestion(questionID uint) (*entity.MultipleChoiceQuestion, error) {
	var mcq entity.MultipleChoiceQuestion
	err := r.db.Where("question_id = ?", questionID).First(&mcq).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &mcq, nil
}

// CreateChoiceQuestion создает определение вопроса с вариантами ответа
func (r *QuestionRepo) CreateChoiceQuestion(mcq *entity.MultipleChoiceQuestion) error {
	return r.db.Create(mcq).Error
}

// SaveChoiceQuestion сохраняет изменения определения
func (r *QuestionRepo) SaveChoiceQuestion(mcq *entity.MultipleChoiceQuestion) error {
	return r.db.Save(mcq).Error
}

// GetChoices возвращает варианты ответа вопроса, упорядоченные по позиции
func (r *QuestionRepo) GetChoices(questionID uint) ([]entity.Choice, error) {
	var choices []entity.Choice
	err := r.db.Where("question_id = ?", questionID).Order("position, id").Find(&choices).Error
	if err != nil {
		return nil, err
	}
	return choices, nil
}

// ReplaceChoices заменяет набор вариантов ответа вопроса целиком
func (r *QuestionRepo) ReplaceChoices(questionID uint, choices []entity.Choice) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("question_id = ?", questionID).Delete(&entity.Choice{}).Error; err != nil {
			return err
		}
		if len(choices) == 0 {
			return nil
		}
		return tx.Create(&choices).Error
	})
}
