package qtype

import (
	"github.com/x2002uwh/SurveyBundle/internal/domain/entity"
)

// FormView - представление формы вопроса для клиента
type FormView struct {
	QuestionID uint                `json:"question_id,omitempty"`
	Title      string              `json:"title,omitempty"`
	Type       entity.QuestionType `json:"type"`
	// Варианты ответа для choice-типов
	Choices    []entity.Choice `json:"choices,omitempty"`
	Horizontal bool            `json:"horizontal,omitempty"`
	// Ранее сохраненные данные ответа пользователя
	Answer  Response `json:"answer,omitempty"`
	CanEdit bool     `json:"can_edit"`
}

// ResultsView - агрегированные результаты одного вопроса в рамках опроса
type ResultsView struct {
	QuestionID uint                `json:"question_id"`
	Type       entity.QuestionType `json:"type"`
	// Число респондентов: количество QuestionAnswer для пары (опрос, вопрос),
	// независимо от числа выбранных каждым вариантов
	Respondents int64 `json:"respondents"`
	// Варианты вопроса и счетчики выбравших по ID варианта.
	// Counts пустой, если на вопрос никто не ответил.
	Choices []entity.Choice `json:"choices,omitempty"`
	Counts  map[uint]int64  `json:"counts,omitempty"`
	// Страница свободных ответов для open_ended в порядке вставки
	OpenAnswers []string `json:"open_answers,omitempty"`
	Page        int      `json:"page,omitempty"`
	PageSize    int      `json:"page_size,omitempty"`
}
