package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/x2002uwh/SurveyBundle/internal/handler/helper"
	"github.com/x2002uwh/SurveyBundle/internal/service"
)

// AuthHandler обрабатывает запросы регистрации и входа
type AuthHandler struct {
	authService *service.AuthService
	log         *logrus.Logger
}

// NewAuthHandler создает новый обработчик аутентификации
func NewAuthHandler(authService *service.AuthService, log *logrus.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		log:         log,
	}
}

// Register обрабатывает регистрацию нового пользователя
func (h *AuthHandler) Register(c *gin.Context) {
	var input service.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		helper.RespondValidationError(c, err)
		return
	}

	user, err := h.authService.Register(input)
	if err != nil {
		helper.RespondError(c, h.log, err)
		return
	}

	h.log.WithFields(logrus.Fields{
		"user_id":      user.ID,
		"workspace_id": user.WorkspaceID,
	}).Info("user registered")
	c.JSON(http.StatusCreated, user)
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login обрабатывает вход пользователя и выдает токен доступа
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helper.RespondValidationError(c, err)
		return
	}

	user, token, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		helper.RespondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":  user,
		"token": token,
	})
}

// Me возвращает текущего пользователя
func (h *AuthHandler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, CurrentUser(c))
}
