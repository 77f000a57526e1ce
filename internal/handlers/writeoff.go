package handlers

import (
	"net/http"
	"time"

	"inventory-backend/internal/database"
	"inventory-backend/internal/middleware"
	"inventory-backend/internal/models"
	"inventory-backend/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// СПИСАННОЕ ОБОРУДОВАНИЕ

func ListWriteOffs(c *gin.Context) {
	var equipment []models.Equipment
	err := database.DB.
		Preload("Category").
		Where("is_active = ?", false).
		Order("decommissioning_date desc").
		Find(&equipment).Error
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Ошибка запроса")
		return
	}

	views := make([]gin.H, 0, len(equipment))
	for i := range equipment {
		e := &equipment[i]
		view := gin.H{
			"id":                     e.ID,
			"inventory_number":       e.InventoryNumber,
			"name":                   e.Name,
			"manufacturer":           e.Manufacturer,
			"model":                  e.EquipmentModel,
			"purchase_date":          e.PurchaseDate,
			"purchase_price":         e.PurchasePrice,
			"decommissioning_date":   e.DecommissioningDate,
			"decommissioning_reason": e.DecommissioningReason,
		}
		if e.CategoryID != nil {
			view["category"] = e.Category.Name
		}

		var wo models.WriteOff
		if err := database.DB.
			Preload("Approver").
			Where("equipment_id = ?", e.ID).
			First(&wo).Error; err == nil {
			view["write_off_date"] = wo.WriteOffDate
			view["reason"] = wo.Reason
			view["document_number"] = wo.DocumentNumber
			view["document_date"] = wo.DocumentDate
			view["residual_value"] = wo.ResidualValue
			view["notes"] = wo.Notes
			if wo.ApprovedBy != nil {
				view["approved_by_name"] = wo.Approver.FullName
			}
		}
		views = append(views, view)
	}
	respondList(c, views, len(views))
}

// СПИСАНИЕ

type writeOffRequest struct {
	EquipmentID    uint     `json:"equipment_id"`
	WriteOffDate   *string  `json:"write_off_date"`
	Reason         string   `json:"reason"`
	DocumentNumber string   `json:"document_number"`
	DocumentDate   *string  `json:"document_date"`
	ResidualValue  *float64 `json:"residual_value"`
	ApprovedBy     *uint    `json:"approved_by"`
	Notes          string   `json:"notes"`
}

func WriteOffEquipment(c *gin.Context) {
	var req writeOffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Некорректные данные")
		return
	}
	if req.EquipmentID == 0 || req.Reason == "" {
		respondError(c, http.StatusBadRequest, "Не указаны обязательные поля: оборудование и причина")
		return
	}

	var eq models.Equipment
	if err := database.DB.First(&eq, req.EquipmentID).Error; err != nil {
		respondError(c, http.StatusNotFound, "Оборудование не найдено")
		return
	}
	if !eq.IsActive {
		respondError(c, http.StatusConflict, "Оборудование уже списано")
		return
	}

	writeOffDate := time.Now()
	if req.WriteOffDate != nil && *req.WriteOffDate != "" {
		d, err := time.Parse("2006-01-02", *req.WriteOffDate)
		if err != nil {
			respondError(c, http.StatusBadRequest, "Некорректная дата списания")
			return
		}
		writeOffDate = d
	}

	var documentDate *time.Time
	if req.DocumentDate != nil && *req.DocumentDate != "" {
		d, err := time.Parse("2006-01-02", *req.DocumentDate)
		if err != nil {
			respondError(c, http.StatusBadRequest, "Некорректная дата документа")
			return
		}
		documentDate = &d
	}

	residual := req.ResidualValue
	if residual == nil {
		residual = eq.CurrentValue
	}

	oldSnap := service.SnapshotOf(&eq)

	// списание: статус оборудования, акт и запись истории — одной транзакцией
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var writtenOff models.ConditionStatus
		if err := tx.Where("name = ?", models.ConditionWrittenOff).First(&writtenOff).Error; err != nil {
			return err
		}

		updates := map[string]interface{}{
			"is_active":              false,
			"condition_id":           writtenOff.ID,
			"decommissioning_date":   writeOffDate,
			"decommissioning_reason": req.Reason,
		}
		if err := tx.Model(&eq).Updates(updates).Error; err != nil {
			return err
		}

		wo := models.WriteOff{
			EquipmentID:    eq.ID,
			WriteOffDate:   writeOffDate,
			Reason:         req.Reason,
			DocumentNumber: req.DocumentNumber,
			DocumentDate:   documentDate,
			ResidualValue:  residual,
			ApprovedBy:     req.ApprovedBy,
			Notes:          req.Notes,
		}
		if err := tx.Create(&wo).Error; err != nil {
			return err
		}

		newSnap := oldSnap
		woID := writtenOff.ID
		newSnap.ConditionID = &woID

		txRecorder := service.NewRecorder(database.NewStore(tx))
		return txRecorder.Record(eq.ID, models.ChangeWriteOff, oldSnap, newSnap,
			req.Reason, req.Notes, middleware.CurrentUserID(c))
	})
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Ошибка списания оборудования")
		return
	}

	respondMessage(c, gin.H{
		"message":          "Оборудование успешно списано",
		"inventory_number": eq.InventoryNumber,
		"name":             eq.Name,
	})
}

// ВОССТАНОВЛЕНИЕ

type restoreRequest struct {
	EquipmentID    uint   `json:"equipment_id"`
	NewConditionID *uint  `json:"new_condition_id"`
	Reason         string `json:"reason"`
	Notes          string `json:"notes"`
}

func RestoreEquipment(c *gin.Context) {
	var req restoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Некорректные данные")
		return
	}
	if req.EquipmentID == 0 {
		respondError(c, http.StatusBadRequest, "ID оборудования не указан")
		return
	}

	var eq models.Equipment
	if err := database.DB.First(&eq, req.EquipmentID).Error; err != nil {
		respondError(c, http.StatusNotFound, "Оборудование не найдено")
		return
	}
	if eq.IsActive {
		respondError(c, http.StatusConflict, "Оборудование не было списано")
		return
	}

	reason := req.Reason
	if reason == "" {
		reason = "Восстановление из списания"
	}

	oldSnap := service.SnapshotOf(&eq)

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		conditionID := req.NewConditionID
		if conditionID == nil {
			var satisfactory models.ConditionStatus
			if err := tx.Where("name = ?", models.ConditionSatisfactory).First(&satisfactory).Error; err != nil {
				return err
			}
			conditionID = &satisfactory.ID
		}

		updates := map[string]interface{}{
			"is_active":              true,
			"condition_id":           conditionID,
			"decommissioning_date":   nil,
			"decommissioning_reason": "",
		}
		if err := tx.Model(&eq).Updates(updates).Error; err != nil {
			return err
		}

		if err := tx.Where("equipment_id = ?", eq.ID).Delete(&models.WriteOff{}).Error; err != nil {
			return err
		}

		newSnap := oldSnap
		newSnap.ConditionID = conditionID

		txRecorder := service.NewRecorder(database.NewStore(tx))
		return txRecorder.Record(eq.ID, models.ChangeRestore, oldSnap, newSnap,
			reason, req.Notes, middleware.CurrentUserID(c))
	})
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Ошибка восстановления")
		return
	}

	respondMessage(c, gin.H{
		"message":          "Оборудование успешно восстановлено",
		"inventory_number": eq.InventoryNumber,
		"name":             eq.Name,
	})
}
