package entity

import (
	"time"
)

// QuestionType - тег типа вопроса, по которому выбирается обработчик
type QuestionType string

const (
	TypeSingleChoice QuestionType = "single_choice"
	TypeMultiChoice  QuestionType = "multi_choice"
	TypeOpenEnded    QuestionType = "open_ended"
)

// IsChoiceType проверяет, хранит ли тип вопроса ответы в виде выбранных вариантов
func (t QuestionType) IsChoiceType() bool {
	return t == TypeSingleChoice || t == TypeMultiChoice
}

// Question представляет вопрос. Вопрос принадлежит workspace
// и может быть прикреплен к нескольким опросам того же workspace.
type Question struct {
	ID          uint         `gorm:"primaryKey" json:"id"`
	WorkspaceID uint         `gorm:"not null;index" json:"workspace_id"`
	Title       string       `gorm:"size:255;not null" json:"title"`
	Type        QuestionType `gorm:"size:50;not null" json:"type"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// MultipleChoiceQuestion - определение вопроса с вариантами ответа.
// Его отсутствие для single/multi-choice вопроса означает, что
// выбор вариантов при записи ответов молча пропускается.
type MultipleChoiceQuestion struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	QuestionID uint `gorm:"not null;uniqueIndex" json:"question_id"`
	// Горизонтальное расположение вариантов при отображении формы
	Horizontal bool `gorm:"not null;default:false" json:"horizontal"`

	Choices []Choice `gorm:"foreignKey:QuestionID;references:QuestionID" json:"choices,omitempty"`
}

// Choice представляет вариант ответа, принадлежит ровно одному вопросу
type Choice struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	QuestionID uint   `gorm:"not null;index" json:"question_id"`
	Content    string `gorm:"type:text;not null" json:"content"`
	Position   int    `gorm:"not null;default:0" json:"position"`
}
