package handlers

import (
	"net/http"
	"strings"

	"inventory-backend/internal/database"
	"inventory-backend/internal/models"

	"github.com/gin-gonic/gin"
)

func ListPremises(c *gin.Context) {
	var premises []models.Premise
	if err := database.DB.Order("building asc, room_number asc").Find(&premises).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Ошибка запроса")
		return
	}
	respondList(c, premises, len(premises))
}

func GetPremise(c *gin.Context) {
	var premise models.Premise
	if err := database.DB.First(&premise, c.Param("id")).Error; err != nil {
		respondError(c, http.StatusNotFound, "Помещение не найдено")
		return
	}
	respondData(c, premise)
}

type premiseRequest struct {
	RoomNumber string   `json:"room_number"`
	Building   string   `json:"building"`
	Floor      *int     `json:"floor"`
	RoomType   string   `json:"room_type"`
	Area       *float64 `json:"area"`
	Capacity   *int     `json:"capacity"`
	Status     string   `json:"status"`
}

func CreatePremise(c *gin.Context) {
	var req premiseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Некорректные данные")
		return
	}

	req.RoomNumber = strings.TrimSpace(req.RoomNumber)
	req.Building = strings.TrimSpace(req.Building)
	if req.RoomNumber == "" || req.Building == "" {
		respondError(c, http.StatusBadRequest, "Заполните обязательные поля: корпус и номер комнаты")
		return
	}

	premise := models.Premise{
		RoomNumber: req.RoomNumber,
		Building:   req.Building,
		Floor:      req.Floor,
		RoomType:   strings.TrimSpace(req.RoomType),
		Area:       req.Area,
		Capacity:   req.Capacity,
		Status:     strings.TrimSpace(req.Status),
	}

	if err := database.DB.Create(&premise).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Ошибка добавления помещения")
		return
	}

	respondMessage(c, gin.H{"message": "Помещение добавлено", "id": premise.ID})
}

func UpdatePremise(c *gin.Context) {
	var premise models.Premise
	if err := database.DB.First(&premise, c.Param("id")).Error; err != nil {
		respondError(c, http.StatusNotFound, "Помещение не найдено")
		return
	}

	var req premiseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Некорректные данные")
		return
	}

	if rn := strings.TrimSpace(req.RoomNumber); rn != "" {
		premise.RoomNumber = rn
	}
	if b := strings.TrimSpace(req.Building); b != "" {
		premise.Building = b
	}
	premise.Floor = req.Floor
	premise.RoomType = strings.TrimSpace(req.RoomType)
	premise.Area = req.Area
	premise.Capacity = req.Capacity
	premise.Status = strings.TrimSpace(req.Status)

	if err := database.DB.Save(&premise).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Ошибка обновления")
		return
	}

	respondMessage(c, gin.H{"message": "Помещение обновлено"})
}

func DeletePremise(c *gin.Context) {
	var premise models.Premise
	if err := database.DB.First(&premise, c.Param("id")).Error; err != nil {
		respondError(c, http.StatusNotFound, "Помещение не найдено")
		return
	}

	// в помещении не должно оставаться оборудования
	var count int64
	database.DB.Model(&models.Equipment{}).
		Where("premise_id = ?", premise.ID).
		Count(&count)
	if count > 0 {
		respondError(c, http.StatusConflict, "В помещении числится оборудование, удаление невозможно")
		return
	}

	if err := database.DB.Delete(&premise).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Ошибка удаления")
		return
	}

	respondMessage(c, gin.H{"message": "Помещение удалено"})
}

// PremiseDetails — паспортные данные помещения и размещённое оборудование.
func PremiseDetails(c *gin.Context) {
	var premise models.Premise
	if err := database.DB.First(&premise, c.Param("id")).Error; err != nil {
		respondError(c, http.StatusNotFound, "Помещение не найдено")
		return
	}

	var equipment []models.Equipment
	database.DB.
		Preload("Category").Preload("Condition").Preload("Responsible").
		Where("premise_id = ? AND is_active = ?", premise.ID, true).
		Order("inventory_number asc").
		Find(&equipment)

	var totalValue float64
	views := make([]gin.H, 0, len(equipment))
	for i := range equipment {
		views = append(views, equipmentView(&equipment[i]))
		if equipment[i].CurrentValue != nil {
			totalValue += *equipment[i].CurrentValue
		}
	}

	respondData(c, gin.H{
		"premise":         premise,
		"location":        premise.Location(),
		"equipment":       views,
		"equipment_count": len(views),
		"total_value":     totalValue,
	})
}
