package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/x2002uwh/SurveyBundle/internal/domain/entity"
	"github.com/x2002uwh/SurveyBundle/internal/domain/repository"
	apperrors "github.com/x2002uwh/SurveyBundle/internal/pkg/errors"
)

// AnswerRepo реализует repository.AnswerRepository
type AnswerRepo struct {
	db *gorm.DB
}

// NewAnswerRepo создает новый репозиторий ответов
func NewAnswerRepo(db *gorm.DB) *AnswerRepo {
	return &AnswerRepo{db: db}
}

// GetSurveyAnswer возвращает конверт ответов пользователя на опрос
func (r *AnswerRepo) GetSurveyAnswer(surveyID, userID uint) (*entity.SurveyAnswer, error) {
	var answer entity.SurveyAnswer
	err := r.db.Where("survey_id = ? AND user_id = ?", surveyID, userID).First(&answer).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &answer, nil
}

// CreateSurveyAnswer создает конверт ответов. Нарушение уникальности
// пары (опрос, пользователь) возвращается как ErrDuplicateAnswer.
func (r *AnswerRepo) CreateSurveyAnswer(answer *entity.SurveyAnswer) error {
	return translateDuplicate(r.db.Create(answer).Error, apperrors.ErrDuplicateAnswer)
}

// translateDuplicate подменяет ошибку нарушения уникальности доменной
// ошибкой, остальные ошибки проходят без изменений
func translateDuplicate(err, sentinel error) error {
	if err != nil && errors.Is(err, gorm.ErrDuplicatedKey) {
		return sentinel
	}
	return err
}

// SaveSurveyAnswer сохраняет изменения конверта
func (r *AnswerRepo) SaveSurveyAnswer(answer *entity.SurveyAnswer) error {
	return r.db.Save(answer).Error
}

// GetQuestionAnswer возвращает ответ на вопрос внутри конверта
func (r *AnswerRepo) GetQuestionAnswer(surveyAnswerID, questionID uint) (*entity.QuestionAnswer, error) {
	var answer entity.QuestionAnswer
	err := r.db.Where("survey_answer_id = ? AND question_id = ?", surveyAnswerID, questionID).
		First(&answer).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &answer, nil
}

// CreateQuestionAnswer создает ответ на вопрос
func (r *AnswerRepo) CreateQuestionAnswer(answer *entity.QuestionAnswer) error {
	return r.db.Create(answer).Error
}

// SaveQuestionAnswer сохраняет изменения ответа на вопрос
func (r *AnswerRepo) SaveQuestionAnswer(answer *entity.QuestionAnswer) error {
	return r.db.Save(answer).Error
}

// GetOpenEndedAnswer возвращает свободный ответ для QuestionAnswer
func (r *AnswerRepo) GetOpenEndedAnswer(questionAnswerID uint) (*entity.OpenEndedQuestionAnswer, error) {
	var answer entity.OpenEndedQuestionAnswer
	err := r.db.Where("question_answer_id = ?", questionAnswerID).First(&answer).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &answer, nil
}

// CreateOpenEndedAnswer создает свободный ответ
func (r *AnswerRepo) CreateOpenEndedAnswer(answer *entity.OpenEndedQuestionAnswer) error {
	return r.db.Create(answer).Error
}

// SaveOpenEndedAnswer сохраняет изменения свободного ответа
func (r *AnswerRepo) SaveOpenEndedAnswer(answer *entity.OpenEndedQuestionAnswer) error {
	return r.db.Save(answer).Error
}

// GetSelectedChoices возвращает выбранные варианты для QuestionAnswer
func (r *AnswerRepo) GetSelectedChoices(questionAnswerID uint) ([]entity.MultipleChoiceQuestionAnswer, error) {
	var selected []entity.MultipleChoiceQuestionAnswer
	err := r.db.Where("question_answer_id = ?", questionAnswerID).Order("id").Find(&selected).Error
	if err != nil {
		return nil, err
	}
	return selected, nil
}

// ReplaceSelectedChoices заменяет набор выбранных вариантов целиком
func (r *AnswerRepo) ReplaceSelectedChoices(questionAnswerID uint, choiceIDs []uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("question_answer_id = ?", questionAnswerID).
			Delete(&entity.MultipleChoiceQuestionAnswer{}).Error
		if err != nil {
			return err
		}
		if len(choiceIDs) == 0 {
			return nil
		}
		selected := make([]entity.MultipleChoiceQuestionAnswer, 0, len(choiceIDs))
		for _, choiceID := range choiceIDs {
			selected = append(selected, entity.MultipleChoiceQuestionAnswer{
				QuestionAnswerID: questionAnswerID,
				ChoiceID:         choiceID,
			})
		}
		return tx.Create(&selected).Error
	})
}

// CountQuestionAnswers возвращает число респондентов вопроса в опросе
func (r *AnswerRepo) CountQuestionAnswers(surveyID, questionID uint) (int64, error) {
	var count int64
	err := r.db.Model(&entity.QuestionAnswer{}).
		Joins("JOIN survey_answers ON survey_answers.id = question_answers.survey_answer_id").
		Where("survey_answers.survey_id = ? AND question_answers.question_id = ?", surveyID, questionID).
		Count(&count).Error
	return count, err
}

// CountChoiceAnswers возвращает число выбравших вариант в рамках опроса
func (r *AnswerRepo) CountChoiceAnswers(surveyID, choiceID uint) (int64, error) {
	var count int64
	err := r.db.Model(&entity.MultipleChoiceQuestionAnswer{}).
		Joins("JOIN question_answers ON question_answers.id = multiple_choice_question_answers.question_answer_id").
		Joins("JOIN survey_answers ON survey_answers.id = question_answers.survey_answer_id").
		Where("survey_answers.survey_id = ? AND multiple_choice_question_answers.choice_id = ?", surveyID, choiceID).
		Count(&count).Error
	return count, err
}

// ListOpenEndedAnswers возвращает страницу свободных ответов в порядке вставки
func (r *AnswerRepo) ListOpenEndedAnswers(surveyID, questionID uint, page, pageSize int) ([]entity.OpenEndedQuestionAnswer, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	var answers []entity.OpenEndedQuestionAnswer
	err := r.db.Model(&entity.OpenEndedQuestionAnswer{}).
		Joins("JOIN question_answers ON question_answers.id = open_ended_question_answers.question_answer_id").
		Joins("JOIN survey_answers ON survey_answers.id = question_answers.survey_answer_id").
		Where("survey_answers.survey_id = ? AND question_answers.question_id = ?", surveyID, questionID).
		Order("open_ended_question_answers.id").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&answers).Error
	if err != nil {
		return nil, err
	}
	return answers, nil
}

// InTransaction выполняет fn в одной транзакции базы данных
func (r *AnswerRepo) InTransaction(fn func(tx repository.AnswerRepository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(&AnswerRepo{db: tx})
	})
}
