package helper

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	apperrors "github.com/x2002uwh/SurveyBundle/internal/pkg/errors"
)

// RespondError отправляет клиенту JSON с ошибкой, подбирая HTTP-статус
// по доменной ошибке. Неопознанные ошибки логируются и возвращаются
// как 500 без деталей.
func RespondError(c *gin.Context, log *logrus.Logger, err error) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, apperrors.ErrAccessDenied):
		c.JSON(http.StatusForbidden, gin.H{"error": "access denied"})
	case errors.Is(err, apperrors.ErrDuplicateAnswer):
		c.JSON(http.StatusConflict, gin.H{"error": "duplicate answer"})
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
	case errors.Is(err, apperrors.ErrEmailTaken):
		c.JSON(http.StatusConflict, gin.H{"error": "email already taken"})
	default:
		log.WithError(err).Error("internal server error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// RespondValidationError отправляет 400 с текстом ошибки привязки запроса
func RespondValidationError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}
