package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/x2002uwh/SurveyBundle/internal/handler/helper"
	"github.com/x2002uwh/SurveyBundle/internal/qtype"
	"github.com/x2002uwh/SurveyBundle/internal/service"
)

// AnswerHandler обрабатывает отправку ответов на опросы
type AnswerHandler struct {
	answerService *service.AnswerService
	log           *logrus.Logger
}

// NewAnswerHandler создает новый обработчик ответов
func NewAnswerHandler(answerService *service.AnswerService, log *logrus.Logger) *AnswerHandler {
	return &AnswerHandler{
		answerService: answerService,
		log:           log,
	}
}

// Forms возвращает формы ответа на вопросы опроса с ранее сохраненными
// данными текущего пользователя
func (h *AnswerHandler) Forms(c *gin.Context) {
	surveyID, ok := paramID(c, "id")
	if !ok {
		return
	}

	forms, err := h.answerService.AnswerForms(CurrentUser(c), surveyID)
	if err != nil {
		helper.RespondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, forms)
}

// Submit записывает отправку ответов текущего пользователя на опрос.
// Тело запроса: объект, где ключ - ID вопроса, значение - данные формы
// ответа на этот вопрос.
func (h *AnswerHandler) Submit(c *gin.Context) {
	surveyID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var submission map[uint]qtype.Response
	if err := c.ShouldBindJSON(&submission); err != nil {
		helper.RespondValidationError(c, err)
		return
	}

	user := CurrentUser(c)
	surveyAnswer, err := h.answerService.RecordAnswers(user, surveyID, submission)
	if err != nil {
		helper.RespondError(c, h.log, err)
		return
	}

	// Опрос не принимает ответы: отправка прошла вхолостую
	if surveyAnswer == nil {
		c.JSON(http.StatusOK, gin.H{"recorded": false})
		return
	}

	h.log.WithFields(logrus.Fields{
		"survey_id":  surveyID,
		"user_id":    user.ID,
		"nb_answers": surveyAnswer.NbAnswers,
	}).Info("survey answers recorded")
	c.JSON(http.StatusOK, surveyAnswer)
}
