package main

import (
	"fmt"
	"log"

	"inventory-backend/internal/config"
	"inventory-backend/internal/database"
	"inventory-backend/internal/handlers"
	"inventory-backend/internal/server"
)

func main() {
	cfg := config.Load()
	database.Init(cfg.DBDSN)
	handlers.InitServices()

	r := server.NewRouter(cfg)

	addr := fmt.Sprintf(":%s", cfg.ServerPort)
	log.Printf("starting server on %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
