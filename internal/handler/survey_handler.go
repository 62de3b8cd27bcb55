package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/x2002uwh/SurveyBundle/internal/handler/helper"
	"github.com/x2002uwh/SurveyBundle/internal/service"
)

// SurveyHandler обрабатывает запросы управления опросами
type SurveyHandler struct {
	surveyService *service.SurveyService
	statusService *service.StatusService
	log           *logrus.Logger
}

// NewSurveyHandler создает новый обработчик опросов
func NewSurveyHandler(surveyService *service.SurveyService, statusService *service.StatusService, log *logrus.Logger) *SurveyHandler {
	return &SurveyHandler{
		surveyService: surveyService,
		statusService: statusService,
		log:           log,
	}
}

// Create обрабатывает создание опроса
func (h *SurveyHandler) Create(c *gin.Context) {
	var input service.CreateSurveyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		helper.RespondValidationError(c, err)
		return
	}

	survey, err := h.surveyService.Create(CurrentUser(c), input)
	if err != nil {
		helper.RespondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, survey)
}

// List возвращает опросы текущего пользователя
func (h *SurveyHandler) List(c *gin.Context) {
	surveys, err := h.surveyService.ListByOwner(CurrentUser(c))
	if err != nil {
		helper.RespondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, surveys)
}

// Get возвращает опрос вместе с его вычисленным статусом
func (h *SurveyHandler) Get(c *gin.Context) {
	surveyID, ok := paramID(c, "id")
	if !ok {
		return
	}

	survey, err := h.surveyService.Get(CurrentUser(c), surveyID)
	if err != nil {
		helper.RespondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"survey": survey,
		"status": survey.Status(),
	})
}

// Update обрабатывает изменение параметров опроса
func (h *SurveyHandler) Update(c *gin.Context) {
	surveyID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var input service.UpdateParametersInput
	if err := c.ShouldBindJSON(&input); err != nil {
		helper.RespondValidationError(c, err)
		return
	}

	survey, err := h.surveyService.UpdateParameters(CurrentUser(c), surveyID, input)
	if err != nil {
		helper.RespondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, survey)
}

// Delete обрабатывает удаление опроса
func (h *SurveyHandler) Delete(c *gin.Context) {
	surveyID, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.surveyService.Delete(CurrentUser(c), surveyID); err != nil {
		helper.RespondError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Publish публикует опрос; закрытый опрос переоткрывается
func (h *SurveyHandler) Publish(c *gin.Context) {
	surveyID, ok := paramID(c, "id")
	if !ok {
		return
	}

	survey, err := h.statusService.Publish(CurrentUser(c), surveyID)
	if err != nil {
		helper.RespondError(c, h.log, err)
		return
	}

	h.log.WithField("survey_id", survey.ID).Info("survey published")
	c.JSON(http.StatusOK, gin.H{
		"survey": survey,
		"status": survey.Status(),
	})
}

// Close закрывает опрос для приема ответов
func (h *SurveyHandler) Close(c *gin.Context) {
	surveyID, ok := paramID(c, "id")
	if !ok {
		return
	}

	survey, err := h.statusService.Close(CurrentUser(c), surveyID)
	if err != nil {
		helper.RespondError(c, h.log, err)
		return
	}

	h.log.WithField("survey_id", survey.ID).Info("survey closed")
	c.JSON(http.StatusOK, gin.H{
		"survey": survey,
		"status": survey.Status(),
	})
}

// Questions возвращает вопросы опроса в порядке позиций
func (h *SurveyHandler) Questions(c *gin.Context) {
	surveyID, ok := paramID(c, "id")
	if !ok {
		return
	}

	relations, err := h.surveyService.Questions(CurrentUser(c), surveyID)
	if err != nil {
		helper.RespondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, relations)
}

type attachQuestionRequest struct {
	QuestionID uint `json:"question_id" binding:"required"`
	Mandatory  bool `json:"mandatory"`
}

// AttachQuestion прикрепляет вопрос к опросу
func (h *SurveyHandler) AttachQuestion(c *gin.Context) {
	surveyID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req attachQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helper.RespondValidationError(c, err)
		return
	}

	relation, err := h.surveyService.AttachQuestion(CurrentUser(c), surveyID, req.QuestionID, req.Mandatory)
	if err != nil {
		helper.RespondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, relation)
}

// DetachQuestion открепляет вопрос от опроса
func (h *SurveyHandler) DetachQuestion(c *gin.Context) {
	surveyID, ok := paramID(c, "id")
	if !ok {
		return
	}
	questionID, ok := paramID(c, "questionId")
	if !ok {
		return
	}

	if err := h.surveyService.DetachQuestion(CurrentUser(c), surveyID, questionID); err != nil {
		helper.RespondError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// SwitchMandatory переключает обязательность вопроса в опросе
func (h *SurveyHandler) SwitchMandatory(c *gin.Context) {
	relationID, ok := paramID(c, "relationId")
	if !ok {
		return
	}

	relation, err := h.surveyService.SwitchMandatory(CurrentUser(c), relationID)
	if err != nil {
		helper.RespondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, relation)
}

type reorderRequest struct {
	Position int `json:"position"`
}

// Reorder задает новую позицию вопроса в опросе
func (h *SurveyHandler) Reorder(c *gin.Context) {
	relationID, ok := paramID(c, "relationId")
	if !ok {
		return
	}

	var req reorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helper.RespondValidationError(c, err)
		return
	}

	relation, err := h.surveyService.ReorderQuestion(CurrentUser(c), relationID, req.Position)
	if err != nil {
		helper.RespondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, relation)
}

// paramID извлекает числовой параметр пути; при ошибке отвечает 400
func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return uint(id), true
}
