package handlers

import (
	"net/http"
	"strconv"

	"inventory-backend/internal/database"
	"inventory-backend/internal/models"

	"github.com/gin-gonic/gin"
)

// Формирование документов: акты и отчёты собираются в JSON,
// вёрстка остаётся на клиенте.

// InventoryAct — акт по итогам инвентаризации: шапка, позиции, сводка.
func InventoryAct(c *gin.Context) {
	invID, err := strconv.ParseUint(c.Query("inventory_id"), 10, 64)
	if err != nil || invID == 0 {
		respondError(c, http.StatusBadRequest, "ID инвентаризации не указан")
		return
	}

	var inv models.Inventory
	if err := database.DB.Preload("Responsible").First(&inv, invID).Error; err != nil {
		respondError(c, http.StatusNotFound, "Инвентаризация не найдена")
		return
	}

	var items []models.InventoryItem
	database.DB.
		Preload("Equipment").
		Preload("ExpectedLocation").Preload("ActualLocation").
		Preload("ExpectedCondition").Preload("ActualCondition").
		Where("inventory_id = ?", inv.ID).
		Find(&items)

	var matched, discrepancy, notFound int
	itemViews := make([]gin.H, 0, len(items))
	for i := range items {
		switch items[i].Status {
		case models.ItemMatches:
			matched++
		case models.ItemDiscrepancy:
			discrepancy++
		case models.ItemNotFound:
			notFound++
		}
		view := itemView(&items[i])
		view["current_value"] = items[i].Equipment.CurrentValue
		itemViews = append(itemViews, view)
	}

	respondData(c, gin.H{
		"inventory": inventoryView(&inv),
		"items":     itemViews,
		"summary": gin.H{
			"total":       len(items),
			"matched":     matched,
			"discrepancy": discrepancy,
			"not_found":   notFound,
		},
	})
}

// EquipmentListReport — перечень оборудования с фильтрами.
func EquipmentListReport(c *gin.Context) {
	dbq := database.DB.
		Preload("Category").Preload("Premise").
		Preload("Condition").Preload("Responsible").
		Where("is_active = ?", true)

	if v, err := strconv.Atoi(c.Query("category_id")); err == nil && v > 0 {
		dbq = dbq.Where("category_id = ?", v)
	}
	if v, err := strconv.Atoi(c.Query("premise_id")); err == nil && v > 0 {
		dbq = dbq.Where("premise_id = ?", v)
	}
	if v, err := strconv.Atoi(c.Query("responsible_id")); err == nil && v > 0 {
		dbq = dbq.Where("responsible_id = ?", v)
	}

	var equipment []models.Equipment
	if err := dbq.Order("inventory_number asc").Find(&equipment).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Ошибка запроса")
		return
	}

	var totalValue float64
	views := make([]gin.H, 0, len(equipment))
	for i := range equipment {
		views = append(views, equipmentView(&equipment[i]))
		if equipment[i].CurrentValue != nil {
			totalValue += *equipment[i].CurrentValue
		}
	}

	respondData(c, gin.H{
		"equipment":   views,
		"total":       len(views),
		"total_value": totalValue,
	})
}

// PremisePassport — паспорт помещения.
func PremisePassport(c *gin.Context) {
	premiseID := c.Query("premise_id")
	if premiseID == "" {
		respondError(c, http.StatusBadRequest, "ID помещения не указан")
		return
	}
	c.Params = append(c.Params, gin.Param{Key: "id", Value: premiseID})
	PremiseDetails(c)
}

// ResponsibleReport — отчёт по материально ответственному лицу.
func ResponsibleReport(c *gin.Context) {
	responsibleID := c.Query("responsible_id")
	if responsibleID == "" {
		respondError(c, http.StatusBadRequest, "ID сотрудника не указан")
		return
	}
	c.Params = append(c.Params, gin.Param{Key: "id", Value: responsibleID})
	EmployeeDetails(c)
}

// WriteOffAct — акт списания одной единицы оборудования.
func WriteOffAct(c *gin.Context) {
	equipmentID, err := strconv.ParseUint(c.Query("equipment_id"), 10, 64)
	if err != nil || equipmentID == 0 {
		respondError(c, http.StatusBadRequest, "ID оборудования не указан")
		return
	}

	var eq models.Equipment
	if err := database.DB.Preload("Category").First(&eq, equipmentID).Error; err != nil {
		respondError(c, http.StatusNotFound, "Оборудование не найдено")
		return
	}
	if eq.IsActive {
		respondError(c, http.StatusConflict, "Оборудование не списано")
		return
	}

	view := equipmentView(&eq)
	view["decommissioning_date"] = eq.DecommissioningDate
	view["decommissioning_reason"] = eq.DecommissioningReason

	payload := gin.H{"equipment": view}

	var wo models.WriteOff
	if err := database.DB.
		Preload("Approver").
		Where("equipment_id = ?", eq.ID).
		First(&wo).Error; err == nil {
		woView := gin.H{
			"write_off_date":  wo.WriteOffDate,
			"reason":          wo.Reason,
			"document_number": wo.DocumentNumber,
			"document_date":   wo.DocumentDate,
			"residual_value":  wo.ResidualValue,
			"notes":           wo.Notes,
		}
		if wo.ApprovedBy != nil {
			woView["approved_by_name"] = wo.Approver.FullName
		}
		payload["write_off"] = woView
	}

	respondData(c, payload)
}

// TransferAct — акт приёма-передачи оборудования между сотрудниками.
func TransferAct(c *gin.Context) {
	equipmentID, err := strconv.ParseUint(c.Query("equipment_id"), 10, 64)
	if err != nil || equipmentID == 0 {
		respondError(c, http.StatusBadRequest, "ID оборудования не указан")
		return
	}

	var eq models.Equipment
	qerr := database.DB.
		Preload("Category").Preload("Premise").
		Preload("Condition").Preload("Responsible").
		First(&eq, equipmentID).Error
	if qerr != nil {
		respondError(c, http.StatusNotFound, "Оборудование не найдено")
		return
	}

	payload := gin.H{"equipment": equipmentView(&eq)}

	// последняя смена ответственного — стороны передачи
	var rec models.EquipmentHistory
	if err := database.DB.
		Where("equipment_id = ? AND change_type IN ?", eq.ID,
			[]models.ChangeType{models.ChangeResponsibleChange, models.ChangeRelocation}).
		Order("change_date desc").
		First(&rec).Error; err == nil {
		transfer := gin.H{"date": rec.ChangeDate, "reason": rec.Reason}
		if rec.OldResponsibleID != nil {
			var from models.Employee
			if err := database.DB.First(&from, *rec.OldResponsibleID).Error; err == nil {
				transfer["from"] = gin.H{"id": from.ID, "full_name": from.FullName, "position": from.Position}
			}
		}
		if rec.NewResponsibleID != nil {
			var to models.Employee
			if err := database.DB.First(&to, *rec.NewResponsibleID).Error; err == nil {
				transfer["to"] = gin.H{"id": to.ID, "full_name": to.FullName, "position": to.Position}
			}
		}
		payload["transfer"] = transfer
	}

	respondData(c, payload)
}
