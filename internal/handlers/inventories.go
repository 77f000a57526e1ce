package handlers

import (
	"net/http"
	"strconv"
	"time"

	"inventory-backend/internal/database"
	"inventory-backend/internal/middleware"
	"inventory-backend/internal/models"
	"inventory-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// СПИСОК ИНВЕНТАРИЗАЦИЙ

func inventoryCounters(invID uint) gin.H {
	var total, checked int64
	database.DB.Model(&models.InventoryItem{}).
		Where("inventory_id = ?", invID).
		Count(&total)
	database.DB.Model(&models.InventoryItem{}).
		Where("inventory_id = ? AND checked_at IS NOT NULL", invID).
		Count(&checked)

	matched, _ := store.CountByStatus(invID, models.ItemMatches)
	discrepancies, _ := store.CountByStatus(invID, models.ItemDiscrepancy)
	notFound, _ := store.CountByStatus(invID, models.ItemNotFound)

	return gin.H{
		"total_items":   total,
		"checked":       checked,
		"matched":       matched,
		"discrepancies": discrepancies,
		"not_found":     notFound,
	}
}

func inventoryView(inv *models.Inventory) gin.H {
	view := gin.H{
		"id":               inv.ID,
		"inventory_number": inv.InventoryNumber,
		"start_date":       inv.StartDate,
		"end_date":         inv.EndDate,
		"status":           inv.Status,
		"responsible_id":   inv.ResponsibleID,
		"notes":            inv.Notes,
		"created_at":       inv.CreatedAt,
	}
	if inv.ResponsibleID != nil {
		view["responsible"] = inv.Responsible.FullName
	}
	return view
}

func ListInventories(c *gin.Context) {
	var inventories []models.Inventory
	err := database.DB.
		Preload("Responsible").
		Order("start_date desc").
		Find(&inventories).Error
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Ошибка запроса")
		return
	}

	views := make([]gin.H, 0, len(inventories))
	for i := range inventories {
		view := inventoryView(&inventories[i])
		for k, v := range inventoryCounters(inventories[i].ID) {
			view[k] = v
		}
		views = append(views, view)
	}
	respondList(c, views, len(views))
}

func itemView(item *models.InventoryItem) gin.H {
	view := gin.H{
		"id":                    item.ID,
		"equipment_id":          item.EquipmentID,
		"inventory_number":      item.Equipment.InventoryNumber,
		"name":                  item.Equipment.Name,
		"status":                item.Status,
		"notes":                 item.Notes,
		"checked_at":            item.CheckedAt,
		"expected_location_id":  item.ExpectedLocationID,
		"expected_condition_id": item.ExpectedConditionID,
		"actual_location_id":    item.ActualLocationID,
		"actual_condition_id":   item.ActualConditionID,
	}
	if item.ExpectedLocationID != nil {
		view["expected_location"] = item.ExpectedLocation.Location()
	}
	if item.ActualLocationID != nil {
		view["actual_location"] = item.ActualLocation.Location()
	}
	if item.ExpectedConditionID != nil {
		view["expected_condition"] = item.ExpectedCondition.Name
	}
	if item.ActualConditionID != nil {
		view["actual_condition"] = item.ActualCondition.Name
	}
	return view
}

func GetInventory(c *gin.Context) {
	var inv models.Inventory
	err := database.DB.
		Preload("Responsible").
		First(&inv, c.Param("id")).Error
	if err != nil {
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

	itemViews := make([]gin.H, 0, len(items))
	for i := range items {
		itemViews = append(itemViews, itemView(&items[i]))
	}

	respondData(c, gin.H{
		"inventory": inventoryView(&inv),
		"items":     itemViews,
	})
}

// СОЗДАНИЕ И ЖИЗНЕННЫЙ ЦИКЛ

type createInventoryRequest struct {
	InventoryNumber string  `json:"inventory_number"`
	StartDate       string  `json:"start_date"`
	EndDate         *string `json:"end_date"`
	ResponsibleID   *uint   `json:"responsible_id"`
	Notes           string  `json:"notes"`
}

func CreateInventory(c *gin.Context) {
	var req createInventoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Некорректные данные")
		return
	}

	if req.InventoryNumber == "" || req.StartDate == "" {
		respondError(c, http.StatusBadRequest, "Заполните обязательные поля: номер и дата начала")
		return
	}

	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Некорректная дата начала")
		return
	}

	var endDate *time.Time
	if req.EndDate != nil && *req.EndDate != "" {
		d, err := time.Parse("2006-01-02", *req.EndDate)
		if err != nil {
			respondError(c, http.StatusBadRequest, "Некорректная дата окончания")
			return
		}
		endDate = &d
	}

	id, count, err := coordinator.Create(service.CreateInventoryInput{
		Number:        req.InventoryNumber,
		StartDate:     startDate,
		EndDate:       endDate,
		ResponsibleID: req.ResponsibleID,
		Notes:         req.Notes,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondMessage(c, gin.H{
		"id":      id,
		"message": "Инвентаризация создана",
		"items":   count,
	})
}

func inventoryID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, http.StatusBadRequest, "ID инвентаризации не указан")
		return 0, false
	}
	return uint(id), true
}

func StartInventory(c *gin.Context) {
	id, ok := inventoryID(c)
	if !ok {
		return
	}

	if err := coordinator.Start(id); err != nil {
		respondServiceError(c, err)
		return
	}
	respondMessage(c, gin.H{"message": "Инвентаризация начата"})
}

func CompleteInventory(c *gin.Context) {
	id, ok := inventoryID(c)
	if !ok {
		return
	}

	if err := coordinator.Complete(id, middleware.CurrentUserID(c)); err != nil {
		respondServiceError(c, err)
		return
	}
	respondMessage(c, gin.H{"message": "Инвентаризация завершена"})
}

func CancelInventory(c *gin.Context) {
	id, ok := inventoryID(c)
	if !ok {
		return
	}

	if err := coordinator.Cancel(id); err != nil {
		respondServiceError(c, err)
		return
	}
	respondMessage(c, gin.H{"message": "Инвентаризация отменена"})
}

// ПРОВЕРКА ПОЗИЦИИ

type checkItemRequest struct {
	Status            string `json:"status"`
	ActualLocationID  *uint  `json:"actual_location_id"`
	ActualConditionID *uint  `json:"actual_condition_id"`
	Notes             string `json:"notes"`
}

func CheckInventoryItem(c *gin.Context) {
	itemID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || itemID == 0 {
		respondError(c, http.StatusBadRequest, "ID позиции не указан")
		return
	}

	var req checkItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Некорректные данные")
		return
	}
	if req.Status == "" {
		respondError(c, http.StatusBadRequest, "Статус не указан")
		return
	}

	err = coordinator.CheckItem(uint(itemID), service.CheckItemInput{
		Status:            models.ItemStatus(req.Status),
		ActualLocationID:  req.ActualLocationID,
		ActualConditionID: req.ActualConditionID,
		Notes:             req.Notes,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondMessage(c, gin.H{"message": "Позиция обновлена", "status": req.Status})
}
