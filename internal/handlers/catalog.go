package handlers

import (
	"net/http"

	"inventory-backend/internal/database"
	"inventory-backend/internal/models"

	"github.com/gin-gonic/gin"
)

func ListCategories(c *gin.Context) {
	var categories []models.Category
	if err := database.DB.Order("name asc").Find(&categories).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Ошибка запроса")
		return
	}
	respondList(c, categories, len(categories))
}

func ListConditions(c *gin.Context) {
	var conditions []models.ConditionStatus
	if err := database.DB.Order("id asc").Find(&conditions).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Ошибка запроса")
		return
	}
	respondList(c, conditions, len(conditions))
}
