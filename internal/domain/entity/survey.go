package entity

import (
	"time"
)

// SurveyStatus - производный статус публикации опроса.
// Статус не хранится в базе, а вычисляется из флагов Published и Closed.
type SurveyStatus string

const (
	StatusUnpublished SurveyStatus = "unpublished"
	StatusPublished   SurveyStatus = "published"
	StatusClosed      SurveyStatus = "closed"
)

// Survey представляет опрос
type Survey struct {
	ID                 uint   `gorm:"primaryKey" json:"id"`
	WorkspaceID        uint   `gorm:"not null;index" json:"workspace_id"`
	OwnerID            uint   `gorm:"not null" json:"owner_id"`
	Title              string `gorm:"size:255;not null" json:"title"`
	Description        string `gorm:"type:text" json:"description"`
	Published          bool   `gorm:"not null;default:false" json:"published"`
	Closed             bool   `gorm:"not null;default:false" json:"closed"`
	AllowAnswerEdition bool   `gorm:"not null;default:false" json:"allow_answer_edition"`
	HasPublicResult    bool   `gorm:"not null;default:false" json:"has_public_result"`
	// Токен публичной ссылки на результаты, выдается при включении HasPublicResult
	ResultShareToken string    `gorm:"size:64;index" json:"-"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`

	QuestionRelations []SurveyQuestionRelation `gorm:"foreignKey:SurveyID" json:"question_relations,omitempty"`
}

// Status вычисляет производный статус опроса.
// Closed имеет приоритет над Published: закрытый опрос не принимает
// ответы, даже если флаг публикации все еще установлен.
func (s *Survey) Status() SurveyStatus {
	if s.Closed {
		return StatusClosed
	}
	if s.Published {
		return StatusPublished
	}
	return StatusUnpublished
}

// SurveyQuestionRelation связывает опрос и вопрос,
// задает порядок и обязательность вопроса в опросе
type SurveyQuestionRelation struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	SurveyID   uint `gorm:"not null;index:idx_survey_question,unique" json:"survey_id"`
	QuestionID uint `gorm:"not null;index:idx_survey_question,unique" json:"question_id"`
	Position   int  `gorm:"not null;default:0" json:"position"`
	Mandatory  bool `gorm:"not null;default:false" json:"mandatory"`

	Question *Question `gorm:"foreignKey:QuestionID" json:"question,omitempty"`
}

// SwitchMandatory переключает флаг обязательности вопроса
func (r *SurveyQuestionRelation) SwitchMandatory() {
	r.Mandatory = !r.Mandatory
}
