package server

import (
	"net/http"

	"inventory-backend/internal/config"
	"inventory-backend/internal/handlers"
	"inventory-backend/internal/middleware"
	"inventory-backend/internal/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

func NewRouter(cfg *config.Config) *gin.Engine {
	r := gin.Default()

	store := cookie.NewStore([]byte(cfg.SessionSecret))
	r.Use(sessions.Sessions("inventory_session", store))

	r.Use(middleware.CORS())
	r.Use(middleware.InjectUser())

	// AUTH
	r.POST("/api/auth/login", handlers.Login)
	r.POST("/api/auth/register", handlers.Register)
	r.POST("/api/auth/logout", handlers.Logout)
	r.GET("/api/auth/status", handlers.AuthStatus)

	api := r.Group("/api")
	api.Use(middleware.RequireAuth())

	api.GET("/auth/me", handlers.Me)

	// СПРАВОЧНИКИ
	api.GET("/categories", handlers.ListCategories)
	api.GET("/conditions", handlers.ListConditions)

	// ОБОРУДОВАНИЕ
	api.GET("/equipment", handlers.ListEquipment)
	api.GET("/equipment/:id", handlers.GetEquipment)
	api.GET("/equipment/:id/history", handlers.EquipmentHistoryList)
	api.POST("/equipment", handlers.CreateEquipment)
	api.PUT("/equipment/:id", handlers.UpdateEquipment)
	api.DELETE("/equipment/:id",
		middleware.RequireRole(models.RoleAdmin),
		handlers.DeleteEquipment,
	)

	// СОТРУДНИКИ
	api.GET("/employees", handlers.ListEmployees)
	api.GET("/employees/:id", handlers.GetEmployee)
	api.GET("/employees/:id/details", handlers.EmployeeDetails)
	api.POST("/employees", handlers.CreateEmployee)
	api.PUT("/employees/:id", handlers.UpdateEmployee)
	api.DELETE("/employees/:id",
		middleware.RequireRole(models.RoleAdmin),
		handlers.DeleteEmployee,
	)

	// ПОМЕЩЕНИЯ
	api.GET("/premises", handlers.ListPremises)
	api.GET("/premises/:id", handlers.GetPremise)
	api.GET("/premises/:id/details", handlers.PremiseDetails)
	api.POST("/premises", handlers.CreatePremise)
	api.PUT("/premises/:id", handlers.UpdatePremise)
	api.DELETE("/premises/:id",
		middleware.RequireRole(models.RoleAdmin),
		handlers.DeletePremise,
	)

	// ИНВЕНТАРИЗАЦИИ
	api.GET("/inventories", handlers.ListInventories)
	api.GET("/inventories/:id", handlers.GetInventory)
	api.POST("/inventories", handlers.CreateInventory)
	api.POST("/inventories/:id/start", handlers.StartInventory)
	api.POST("/inventories/:id/complete", handlers.CompleteInventory)
	api.POST("/inventories/:id/cancel", handlers.CancelInventory)
	api.POST("/inventory-items/:id/check", handlers.CheckInventoryItem)

	// ИСТОРИЯ
	api.GET("/history", handlers.AllHistory)
	api.GET("/history/recent", handlers.RecentHistory)

	// СПИСАНИЕ
	api.GET("/writeoffs", handlers.ListWriteOffs)
	api.POST("/writeoffs", handlers.WriteOffEquipment)
	api.POST("/writeoffs/restore", handlers.RestoreEquipment)

	// ДОКУМЕНТЫ
	api.GET("/documents/inventory-act", handlers.InventoryAct)
	api.GET("/documents/equipment-list", handlers.EquipmentListReport)
	api.GET("/documents/premise-passport", handlers.PremisePassport)
	api.GET("/documents/responsible-report", handlers.ResponsibleReport)
	api.GET("/documents/writeoff-act", handlers.WriteOffAct)
	api.GET("/documents/transfer-act", handlers.TransferAct)

	// HEALTHCHECK
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	return r
}
