package entity

import (
	"time"
)

// SurveyAnswer - конверт всех ответов одного пользователя на один опрос.
// Уникальность пары (опрос, пользователь) обеспечивается индексом.
type SurveyAnswer struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	SurveyID uint `gorm:"not null;index:idx_survey_user,unique" json:"survey_id"`
	UserID   uint `gorm:"not null;index:idx_survey_user,unique" json:"user_id"`
	// Счетчик отправок: 1 при создании, увеличивается при каждой повторной
	// отправке, даже если редактирование ответов запрещено
	NbAnswers int `gorm:"not null;default:1" json:"nb_answers"`
	// Дата первой отправки, не изменяется при повторных
	AnswerDate time.Time `gorm:"not null" json:"answer_date"`

	QuestionAnswers []QuestionAnswer `gorm:"foreignKey:SurveyAnswerID" json:"question_answers,omitempty"`
}

// IncrementNbAnswers увеличивает счетчик отправок
func (a *SurveyAnswer) IncrementNbAnswers() {
	a.NbAnswers++
}

// QuestionAnswer - ответ пользователя на один вопрос внутри SurveyAnswer.
// В зависимости от типа вопроса владеет либо одним OpenEndedQuestionAnswer,
// либо набором MultipleChoiceQuestionAnswer.
type QuestionAnswer struct {
	ID             uint   `gorm:"primaryKey" json:"id"`
	SurveyAnswerID uint   `gorm:"not null;index:idx_answer_question,unique" json:"survey_answer_id"`
	QuestionID     uint   `gorm:"not null;index:idx_answer_question,unique" json:"question_id"`
	Comment        string `gorm:"type:text" json:"comment,omitempty"`
}

// OpenEndedQuestionAnswer - текст свободного ответа, не более одного
// на QuestionAnswer
type OpenEndedQuestionAnswer struct {
	ID               uint   `gorm:"primaryKey" json:"id"`
	QuestionAnswerID uint   `gorm:"not null;uniqueIndex" json:"question_answer_id"`
	Content          string `gorm:"type:text;not null" json:"content"`
}

// MultipleChoiceQuestionAnswer - один выбранный вариант ответа.
// Несколько строк на QuestionAnswer допустимы только для multi_choice.
type MultipleChoiceQuestionAnswer struct {
	ID               uint `gorm:"primaryKey" json:"id"`
	QuestionAnswerID uint `gorm:"not null;index" json:"question_answer_id"`
	ChoiceID         uint `gorm:"not null;index" json:"choice_id"`
}
