package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/x2002uwh/SurveyBundle/internal/handler/helper"
	"github.com/x2002uwh/SurveyBundle/internal/qtype"
	"github.com/x2002uwh/SurveyBundle/internal/service"
)

// ResultsHandler обрабатывает запросы агрегированных результатов
type ResultsHandler struct {
	resultsService *service.ResultsService
	exportService  *service.ExportService
	log            *logrus.Logger
}

// NewResultsHandler создает новый обработчик результатов
func NewResultsHandler(resultsService *service.ResultsService, exportService *service.ExportService, log *logrus.Logger) *ResultsHandler {
	return &ResultsHandler{
		resultsService: resultsService,
		exportService:  exportService,
		log:            log,
	}
}

// Survey возвращает результаты всех вопросов опроса
func (h *ResultsHandler) Survey(c *gin.Context) {
	surveyID, ok := paramID(c, "id")
	if !ok {
		return
	}

	views, err := h.resultsService.SurveyResults(CurrentUser(c), surveyID)
	if err != nil {
		helper.RespondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

// Question возвращает результаты одного вопроса опроса с пагинацией
// свободных ответов
func (h *ResultsHandler) Question(c *gin.Context) {
	surveyID, ok := paramID(c, "id")
	if !ok {
		return
	}
	questionID, ok := paramID(c, "questionId")
	if !ok {
		return
	}

	page, pageSize := pagination(c)
	view, err := h.resultsService.QuestionResults(CurrentUser(c), surveyID, questionID, page, pageSize)
	if err != nil {
		helper.RespondError(c, h.log, err)
		return
	}
	if view == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusOK, view)
}

// Public возвращает результаты опроса по токену публичной ссылки
func (h *ResultsHandler) Public(c *gin.Context) {
	views, err := h.resultsService.PublicResults(c.Param("token"))
	if err != nil {
		helper.RespondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

// Export выгружает результаты опроса файлом XLSX
func (h *ResultsHandler) Export(c *gin.Context) {
	surveyID, ok := paramID(c, "id")
	if !ok {
		return
	}

	data, filename, err := h.exportService.ExportResults(CurrentUser(c), surveyID)
	if err != nil {
		helper.RespondError(c, h.log, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

// pagination извлекает параметры страницы из query
func pagination(c *gin.Context) (int, int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = qtype.DefaultResultsPage
	}

	pageSize, err := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if err != nil || pageSize < 1 {
		pageSize = qtype.DefaultResultsPageSize
	} else if pageSize > 100 {
		pageSize = 100
	}
	return page, pageSize
}
