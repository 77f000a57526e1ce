package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"inventory-backend/internal/database"
	"inventory-backend/internal/middleware"
	"inventory-backend/internal/models"
	"inventory-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// СПИСОК / КАРТОЧКА ОБОРУДОВАНИЯ

func equipmentView(e *models.Equipment) gin.H {
	view := gin.H{
		"id":                 e.ID,
		"inventory_number":   e.InventoryNumber,
		"name":               e.Name,
		"category_id":        e.CategoryID,
		"premise_id":         e.PremiseID,
		"responsible_id":     e.ResponsibleID,
		"condition_id":       e.ConditionID,
		"manufacturer":       e.Manufacturer,
		"model":              e.EquipmentModel,
		"serial_number":      e.SerialNumber,
		"description":        e.Description,
		"purchase_date":      e.PurchaseDate,
		"purchase_price":     e.PurchasePrice,
		"current_value":      e.CurrentValue,
		"warranty_until":     e.WarrantyUntil,
		"commissioning_date": e.CommissioningDate,
		"is_active":          e.IsActive,
		"created_at":         e.CreatedAt,
		"updated_at":         e.UpdatedAt,
	}
	if e.CategoryID != nil {
		view["category"] = e.Category.Name
	}
	if e.PremiseID != nil {
		view["location"] = e.Premise.Location()
	}
	if e.ConditionID != nil {
		view["condition"] = e.Condition.Name
	}
	if e.ResponsibleID != nil {
		view["responsible"] = e.Responsible.FullName
	}
	return view
}

func ListEquipment(c *gin.Context) {
	var equipment []models.Equipment
	err := database.DB.
		Preload("Category").Preload("Premise").
		Preload("Condition").Preload("Responsible").
		Where("is_active = ?", true).
		Order("created_at desc").
		Find(&equipment).Error
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Ошибка запроса")
		return
	}

	views := make([]gin.H, 0, len(equipment))
	for i := range equipment {
		views = append(views, equipmentView(&equipment[i]))
	}
	respondList(c, views, len(views))
}

func GetEquipment(c *gin.Context) {
	id := c.Param("id")

	var eq models.Equipment
	err := database.DB.
		Preload("Category").Preload("Premise").
		Preload("Condition").Preload("Responsible").
		First(&eq, id).Error
	if err != nil {
		respondError(c, http.StatusNotFound, "Оборудование не найдено")
		return
	}

	view := equipmentView(&eq)
	view["decommissioning_date"] = eq.DecommissioningDate
	view["decommissioning_reason"] = eq.DecommissioningReason
	respondData(c, view)
}

// СОЗДАНИЕ

type equipmentRequest struct {
	InventoryNumber   string     `json:"inventory_number"`
	Name              string     `json:"name"`
	CategoryID        *uint      `json:"category_id"`
	PremiseID         *uint      `json:"premise_id"`
	ResponsibleID     *uint      `json:"responsible_id"`
	ConditionID       *uint      `json:"condition_id"`
	PurchaseDate      *time.Time `json:"purchase_date"`
	PurchasePrice     *float64   `json:"purchase_price"`
	CurrentValue      *float64   `json:"current_value"`
	Manufacturer      *string    `json:"manufacturer"`
	Model             *string    `json:"model"`
	SerialNumber      *string    `json:"serial_number"`
	Description       *string    `json:"description"`
	WarrantyUntil     *time.Time `json:"warranty_until"`
	CommissioningDate *time.Time `json:"commissioning_date"`
}

func CreateEquipment(c *gin.Context) {
	var req equipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Некорректные данные")
		return
	}

	req.InventoryNumber = strings.TrimSpace(req.InventoryNumber)
	req.Name = strings.TrimSpace(req.Name)
	if req.InventoryNumber == "" || req.Name == "" {
		respondError(c, http.StatusBadRequest, "Заполните обязательные поля: инвентарный номер и название")
		return
	}

	var count int64
	database.DB.Model(&models.Equipment{}).
		Where("inventory_number = ?", req.InventoryNumber).
		Count(&count)
	if count > 0 {
		respondError(c, http.StatusConflict, "Оборудование с таким инвентарным номером уже существует")
		return
	}

	// остаточная стоимость по умолчанию равна закупочной
	currentValue := req.CurrentValue
	if currentValue == nil {
		currentValue = req.PurchasePrice
	}

	eq := models.Equipment{
		InventoryNumber:   req.InventoryNumber,
		Name:              req.Name,
		CategoryID:        req.CategoryID,
		PremiseID:         req.PremiseID,
		ResponsibleID:     req.ResponsibleID,
		ConditionID:       req.ConditionID,
		PurchaseDate:      req.PurchaseDate,
		PurchasePrice:     req.PurchasePrice,
		CurrentValue:      currentValue,
		WarrantyUntil:     req.WarrantyUntil,
		CommissioningDate: req.CommissioningDate,
		IsActive:          true,
	}
	if req.Manufacturer != nil {
		eq.Manufacturer = *req.Manufacturer
	}
	if req.Model != nil {
		eq.EquipmentModel = *req.Model
	}
	if req.SerialNumber != nil {
		eq.SerialNumber = *req.SerialNumber
	}
	if req.Description != nil {
		eq.Description = *req.Description
	}

	if err := database.DB.Create(&eq).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Ошибка добавления оборудования")
		return
	}

	snap := service.SnapshotOf(&eq)
	if err := recorder.Record(eq.ID, models.ChangeCreation, service.IdentitySnapshot{}, snap,
		"Добавление нового оборудования",
		"Инв. номер: "+eq.InventoryNumber,
		middleware.CurrentUserID(c),
	); err != nil {
		logHistoryFailure(eq.ID, err)
	}

	respondMessage(c, gin.H{"message": "Оборудование успешно добавлено", "id": eq.ID})
}

// РЕДАКТИРОВАНИЕ

func UpdateEquipment(c *gin.Context) {
	id := c.Param("id")

	var eq models.Equipment
	if err := database.DB.First(&eq, id).Error; err != nil {
		respondError(c, http.StatusNotFound, "Оборудование не найдено")
		return
	}

	var req equipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Некорректные данные")
		return
	}

	oldSnap := service.SnapshotOf(&eq)

	if name := strings.TrimSpace(req.Name); name != "" {
		eq.Name = name
	}
	if req.CategoryID != nil {
		eq.CategoryID = req.CategoryID
	}
	eq.PremiseID = req.PremiseID
	eq.ResponsibleID = req.ResponsibleID
	if req.ConditionID != nil {
		eq.ConditionID = req.ConditionID
	}
	if req.PurchaseDate != nil {
		eq.PurchaseDate = req.PurchaseDate
	}
	if req.PurchasePrice != nil {
		eq.PurchasePrice = req.PurchasePrice
	}
	if req.CurrentValue != nil {
		eq.CurrentValue = req.CurrentValue
	}
	if req.Manufacturer != nil {
		eq.Manufacturer = *req.Manufacturer
	}
	if req.Model != nil {
		eq.EquipmentModel = *req.Model
	}
	if req.SerialNumber != nil {
		eq.SerialNumber = *req.SerialNumber
	}
	if req.Description != nil {
		eq.Description = *req.Description
	}
	if req.WarrantyUntil != nil {
		eq.WarrantyUntil = req.WarrantyUntil
	}
	if req.CommissioningDate != nil {
		eq.CommissioningDate = req.CommissioningDate
	}

	newSnap := service.SnapshotOf(&eq)
	changeType, changed := service.Classify(oldSnap, newSnap)

	if err := database.DB.Save(&eq).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Ошибка обновления")
		return
	}

	// история пишется только если поменялось что-то из значимой тройки
	if len(changed) > 0 {
		if err := recorder.Record(eq.ID, changeType, oldSnap, newSnap,
			service.ChangedFieldsLabel(changed), "",
			middleware.CurrentUserID(c),
		); err != nil {
			logHistoryFailure(eq.ID, err)
		}
	}

	respondMessage(c, gin.H{"message": "Оборудование успешно обновлено", "changes": changed})
}

// УДАЛЕНИЕ

func DeleteEquipment(c *gin.Context) {
	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil || id == 0 {
		respondError(c, http.StatusBadRequest, "ID не указан")
		return
	}

	var eq models.Equipment
	if err := database.DB.First(&eq, id).Error; err != nil {
		respondError(c, http.StatusNotFound, "Оборудование не найдено")
		return
	}

	if err := database.DB.Delete(&eq).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Ошибка удаления")
		return
	}

	respondMessage(c, gin.H{
		"message": "Оборудование успешно удалено",
		"deleted": gin.H{
			"id":               eq.ID,
			"inventory_number": eq.InventoryNumber,
			"name":             eq.Name,
		},
	})
}
