// scripts/create_admin.go
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/maxtech-bd/attendance-engine/config"
	"github.com/maxtech-bd/attendance-engine/database"
	"github.com/maxtech-bd/attendance-engine/models"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	database.Connect(cfg)

	username := "Admin"
	password := "1234"

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	// ตรวจว่ามี user ชื่อเดียวกันอยู่หรือไม่
	var existing models.User
	if err := database.DB.Where("username = ?", username).First(&existing).Error; err != nil {
		if err != gorm.ErrRecordNotFound {
			log.Fatalf("failed to query users: %v", err)
		}
	} else {
		fmt.Println("admin user already exists with username:", username)
		os.Exit(0)
	}

	u := models.User{
		Username: username,
		Password: string(hashed),
		Role:     "admin",
		Name:     "Administrator",
	}
	if err := database.DB.Create(&u).Error; err != nil {
		log.Fatalf("failed to insert admin: %v", err)
	}

	fmt.Println("admin user created")
	fmt.Println("  username:", username)
	fmt.Println("  password:", password, "(plain, remember to change later!)")
}
