package handlers

import (
	"net/http"
	"strings"

	"inventory-backend/internal/database"
	"inventory-backend/internal/models"

	"github.com/gin-gonic/gin"
)

func ListEmployees(c *gin.Context) {
	var employees []models.Employee
	if err := database.DB.Order("full_name asc").Find(&employees).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Ошибка запроса")
		return
	}
	respondList(c, employees, len(employees))
}

func GetEmployee(c *gin.Context) {
	var emp models.Employee
	if err := database.DB.First(&emp, c.Param("id")).Error; err != nil {
		respondError(c, http.StatusNotFound, "Сотрудник не найден")
		return
	}
	respondData(c, emp)
}

type employeeRequest struct {
	FullName   string `json:"full_name"`
	Position   string `json:"position"`
	Department string `json:"department"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
}

func CreateEmployee(c *gin.Context) {
	var req employeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Некорректные данные")
		return
	}

	req.FullName = strings.TrimSpace(req.FullName)
	if req.FullName == "" {
		respondError(c, http.StatusBadRequest, "Укажите ФИО сотрудника")
		return
	}

	emp := models.Employee{
		FullName:   req.FullName,
		Position:   strings.TrimSpace(req.Position),
		Department: strings.TrimSpace(req.Department),
		Phone:      strings.TrimSpace(req.Phone),
		Email:      strings.TrimSpace(req.Email),
	}

	if err := database.DB.Create(&emp).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Ошибка добавления сотрудника")
		return
	}

	respondMessage(c, gin.H{"message": "Сотрудник добавлен", "id": emp.ID})
}

func UpdateEmployee(c *gin.Context) {
	var emp models.Employee
	if err := database.DB.First(&emp, c.Param("id")).Error; err != nil {
		respondError(c, http.StatusNotFound, "Сотрудник не найден")
		return
	}

	var req employeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Некорректные данные")
		return
	}

	if name := strings.TrimSpace(req.FullName); name != "" {
		emp.FullName = name
	}
	emp.Position = strings.TrimSpace(req.Position)
	emp.Department = strings.TrimSpace(req.Department)
	emp.Phone = strings.TrimSpace(req.Phone)
	emp.Email = strings.TrimSpace(req.Email)

	if err := database.DB.Save(&emp).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Ошибка обновления")
		return
	}

	respondMessage(c, gin.H{"message": "Данные сотрудника обновлены"})
}

func DeleteEmployee(c *gin.Context) {
	var emp models.Employee
	if err := database.DB.First(&emp, c.Param("id")).Error; err != nil {
		respondError(c, http.StatusNotFound, "Сотрудник не найден")
		return
	}

	// нельзя удалить материально ответственное лицо
	var count int64
	database.DB.Model(&models.Equipment{}).
		Where("responsible_id = ?", emp.ID).
		Count(&count)
	if count > 0 {
		respondError(c, http.StatusConflict, "За сотрудником закреплено оборудование, удаление невозможно")
		return
	}

	if err := database.DB.Delete(&emp).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Ошибка удаления")
		return
	}

	respondMessage(c, gin.H{"message": "Сотрудник удалён"})
}

// EmployeeDetails — карточка сотрудника с закреплённым оборудованием.
func EmployeeDetails(c *gin.Context) {
	var emp models.Employee
	if err := database.DB.First(&emp, c.Param("id")).Error; err != nil {
		respondError(c, http.StatusNotFound, "Сотрудник не найден")
		return
	}

	var equipment []models.Equipment
	database.DB.
		Preload("Category").Preload("Premise").Preload("Condition").
		Where("responsible_id = ? AND is_active = ?", emp.ID, true).
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
		"employee":        emp,
		"equipment":       views,
		"equipment_count": len(views),
		"total_value":     totalValue,
	})
}
