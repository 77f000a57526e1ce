package handlers

import (
	"errors"
	"net/http"

	"inventory-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// Ответы держим в формате старого API: {success, data|error, ...}.

func respondData(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}

func respondList(c *gin.Context, data interface{}, count int) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": data, "count": count})
}

func respondMessage(c *gin.Context, extra gin.H) {
	payload := gin.H{"success": true}
	for k, v := range extra {
		payload[k] = v
	}
	c.JSON(http.StatusOK, payload)
}

func respondError(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"success": false, "error": msg})
}

// respondServiceError переводит ошибки ядра в HTTP-статусы.
func respondServiceError(c *gin.Context, err error) {
	var incomplete *service.IncompleteAuditError
	switch {
	case errors.As(err, &incomplete):
		c.JSON(http.StatusConflict, gin.H{
			"success":   false,
			"error":     incomplete.Error(),
			"unchecked": incomplete.Remaining,
		})
	case errors.Is(err, service.ErrDuplicateNumber):
		respondError(c, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrNotFound):
		respondError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrValidation):
		respondError(c, http.StatusBadRequest, err.Error())
	default:
		respondError(c, http.StatusInternalServerError, "Ошибка обращения к БД")
	}
}
