package handlers

import (
	"net/http"
	"strconv"

	"inventory-backend/internal/database"
	"inventory-backend/internal/models"

	"github.com/gin-gonic/gin"
)

func historyView(h *models.EquipmentHistory) gin.H {
	view := gin.H{
		"id":           h.ID,
		"equipment_id": h.EquipmentID,
		"change_type":  h.ChangeType,
		"change_date":  h.ChangeDate,
		"old_value":    h.OldValue,
		"new_value":    h.NewValue,
		"reason":       h.Reason,
		"notes":        h.Notes,
		"performed_by": h.PerformedBy,
	}
	if h.EquipmentID != 0 {
		view["inventory_number"] = h.Equipment.InventoryNumber
		view["equipment_name"] = h.Equipment.Name
	}

	// имена по ссылкам старое/новое подтягиваются отдельными выборками:
	// шесть разных внешних ключей на две таблицы
	names := func(premiseID, responsibleID, conditionID *uint, prefix string) {
		if premiseID != nil {
			var p models.Premise
			if err := database.DB.First(&p, *premiseID).Error; err == nil {
				view[prefix+"_premise"] = p.Location()
			}
		}
		if responsibleID != nil {
			var e models.Employee
			if err := database.DB.First(&e, *responsibleID).Error; err == nil {
				view[prefix+"_responsible"] = e.FullName
			}
		}
		if conditionID != nil {
			var cs models.ConditionStatus
			if err := database.DB.First(&cs, *conditionID).Error; err == nil {
				view[prefix+"_condition"] = cs.Name
			}
		}
	}
	names(h.OldPremiseID, h.OldResponsibleID, h.OldConditionID, "old")
	names(h.NewPremiseID, h.NewResponsibleID, h.NewConditionID, "new")

	return view
}

// EquipmentHistory — журнал изменений одной единицы оборудования.
func EquipmentHistoryList(c *gin.Context) {
	equipmentID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || equipmentID == 0 {
		respondError(c, http.StatusBadRequest, "ID оборудования не указан")
		return
	}

	var recs []models.EquipmentHistory
	qerr := database.DB.
		Preload("Equipment").
		Where("equipment_id = ?", equipmentID).
		Order("change_date desc").
		Find(&recs).Error
	if qerr != nil {
		respondError(c, http.StatusInternalServerError, "Ошибка запроса")
		return
	}

	views := make([]gin.H, 0, len(recs))
	for i := range recs {
		views = append(views, historyView(&recs[i]))
	}
	respondList(c, views, len(views))
}

// RecentHistory — последние изменения для дашборда.
func RecentHistory(c *gin.Context) {
	limit := 20
	if l, err := strconv.Atoi(c.Query("limit")); err == nil && l > 0 && l <= 100 {
		limit = l
	}

	var recs []models.EquipmentHistory
	err := database.DB.
		Preload("Equipment").
		Order("change_date desc").
		Limit(limit).
		Find(&recs).Error
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Ошибка запроса")
		return
	}

	views := make([]gin.H, 0, len(recs))
	for i := range recs {
		views = append(views, historyView(&recs[i]))
	}
	respondList(c, views, len(views))
}

func AllHistory(c *gin.Context) {
	var recs []models.EquipmentHistory
	err := database.DB.
		Preload("Equipment").
		Order("change_date desc").
		Limit(200).
		Find(&recs).Error
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Ошибка запроса")
		return
	}

	views := make([]gin.H, 0, len(recs))
	for i := range recs {
		views = append(views, historyView(&recs[i]))
	}
	respondList(c, views, len(views))
}
