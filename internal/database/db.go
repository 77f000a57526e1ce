package database

import (
	"log"
	"os"
	"time"

	"inventory-backend/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(dsn string) {
	var err error

	const maxAttempts = 10
	for i := 1; i <= maxAttempts; i++ {
		log.Printf("trying to connect to DB (attempt %d/%d)...", i, maxAttempts)

		DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if err == nil {
			log.Println("connected to DB successfully")
			break
		}

		log.Printf("failed to connect to DB: %v", err)
		time.Sleep(2 * time.Second)
	}

	if err != nil {
		log.Fatalf("failed to connect to db after %d attempts: %v", maxAttempts, err)
	}

	// миграции
	err = DB.AutoMigrate(
		&models.User{},
		&models.Employee{},
		&models.Premise{},
		&models.Category{},
		&models.ConditionStatus{},
		&models.Equipment{},
		&models.Inventory{},
		&models.InventoryItem{},
		&models.EquipmentHistory{},
		&models.WriteOff{},
	)
	if err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	// справочники и дефолтный админ
	seedConditions()
	seedCategories()
	createDefaultAdmin()
}

// админ только из кода/конфига
func createDefaultAdmin() {
	username := os.Getenv("ADMIN_USERNAME")
	if username == "" {
		username = "admin"
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "Admin123!"
	}

	var count int64
	if err := DB.Model(&models.User{}).
		Where("role = ?", models.RoleAdmin).
		Count(&count).Error; err != nil {
		log.Printf("failed to check admin user: %v", err)
		return
	}
	if count > 0 {
		// админ уже есть — ничего не делаем
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("failed to hash default admin password: %v", err)
		return
	}

	admin := models.User{
		Username:     username,
		PasswordHash: string(hash),
		FullName:     "Администратор",
		Role:         models.RoleAdmin,
		IsActive:     true,
	}

	if err := DB.Create(&admin).Error; err != nil {
		log.Printf("failed to create default admin: %v", err)
		return
	}

	log.Printf("created default admin user: %s (password: %s)", username, password)
}

// справочник состояний; "Списано" используется при списании оборудования
func seedConditions() {
	names := []string{
		"Новое",
		"Хорошее",
		models.ConditionSatisfactory,
		"Требует ремонта",
		models.ConditionWrittenOff,
	}

	for _, name := range names {
		var count int64
		if err := DB.Model(&models.ConditionStatus{}).
			Where("name = ?", name).
			Count(&count).Error; err != nil {
			log.Printf("failed to check condition %q: %v", name, err)
			continue
		}
		if count > 0 {
			continue
		}
		if err := DB.Create(&models.ConditionStatus{Name: name}).Error; err != nil {
			log.Printf("failed to create condition %q: %v", name, err)
		}
	}
}

func seedCategories() {
	names := []string{
		"Компьютерная техника",
		"Оргтехника",
		"Мебель",
		"Сетевое оборудование",
		"Прочее",
	}

	for _, name := range names {
		var count int64
		if err := DB.Model(&models.Category{}).
			Where("name = ?", name).
			Count(&count).Error; err != nil {
			log.Printf("failed to check category %q: %v", name, err)
			continue
		}
		if count > 0 {
			continue
		}
		if err := DB.Create(&models.Category{Name: name}).Error; err != nil {
			log.Printf("failed to create category %q: %v", name, err)
		}
	}
}
