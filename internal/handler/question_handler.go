package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/x2002uwh/SurveyBundle/internal/domain/entity"
	"github.com/x2002uwh/SurveyBundle/internal/handler/helper"
	"github.com/x2002uwh/SurveyBundle/internal/service"
)

// QuestionHandler обрабатывает запросы управления вопросами
type QuestionHandler struct {
	questionService *service.QuestionService
	log             *logrus.Logger
}

// NewQuestionHandler создает новый обработчик вопросов
func NewQuestionHandler(questionService *service.QuestionService, log *logrus.Logger) *QuestionHandler {
	return &QuestionHandler{
		questionService: questionService,
		log:             log,
	}
}

// Create обрабатывает создание вопроса
func (h *QuestionHandler) Create(c *gin.Context) {
	var input service.QuestionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		helper.RespondValidationError(c, err)
		return
	}

	question, err := h.questionService.Create(CurrentUser(c), input)
	if err != nil {
		helper.RespondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, question)
}

// List возвращает вопросы workspace текущего пользователя
func (h *QuestionHandler) List(c *gin.Context) {
	questions, err := h.questionService.ListByWorkspace(CurrentUser(c))
	if err != nil {
		helper.RespondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, questions)
}

// Get возвращает вопрос по ID
func (h *QuestionHandler) Get(c *gin.Context) {
	questionID, ok := paramID(c, "id")
	if !ok {
		return
	}

	question, err := h.questionService.Get(CurrentUser(c), questionID)
	if err != nil {
		helper.RespondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, question)
}

// Update обрабатывает изменение вопроса
func (h *QuestionHandler) Update(c *gin.Context) {
	questionID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var input service.QuestionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		helper.RespondValidationError(c, err)
		return
	}

	question, err := h.questionService.Update(CurrentUser(c), questionID, input)
	if err != nil {
		helper.RespondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, question)
}

// Delete обрабатывает удаление вопроса
func (h *QuestionHandler) Delete(c *gin.Context) {
	questionID, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.questionService.Delete(CurrentUser(c), questionID); err != nil {
		helper.RespondError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// CreationForm возвращает описание формы создания вопроса типа из query
func (h *QuestionHandler) CreationForm(c *gin.Context) {
	questionType := entity.QuestionType(c.Query("type"))

	form, err := h.questionService.CreationForm(questionType)
	if err != nil {
		helper.RespondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, form)
}

// EditForm возвращает форму редактирования вопроса
func (h *QuestionHandler) EditForm(c *gin.Context) {
	questionID, ok := paramID(c, "id")
	if !ok {
		return
	}

	form, err := h.questionService.EditForm(CurrentUser(c), questionID)
	if err != nil {
		helper.RespondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, form)
}
