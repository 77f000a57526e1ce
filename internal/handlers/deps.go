package handlers

import (
	"log"

	"inventory-backend/internal/database"
	"inventory-backend/internal/service"
)

var (
	store       *database.Store
	recorder    *service.Recorder
	coordinator *service.Coordinator
)

// InitServices собирает ядро поверх подключённой БД.
// Вызывается из main после database.Init.
func InitServices() {
	store = database.NewStore(database.DB)
	recorder = service.NewRecorder(store)
	coordinator = service.NewCoordinator(store, store, recorder)
}

// запись истории по оборудованию не должна ронять основную операцию
func logHistoryFailure(equipmentID uint, err error) {
	log.Printf("history record for equipment %d failed: %v", equipmentID, err)
}
