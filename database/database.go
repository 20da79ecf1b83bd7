package database

import (
	"errors"
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/maxtech-bd/attendance-engine/config"
	"github.com/maxtech-bd/attendance-engine/models"
)

var DB *gorm.DB

func Connect(cfg *config.Config) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	DB = db

	if err := Migrate(DB); err != nil {
		log.Fatalf("auto migrate failed: %v", err)
	}
}

// Migrate แยกออกมาเพื่อให้ test ใช้ซ้ำกับ sqlite ได้
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Student{},
		&models.Teacher{},
		&models.Homeroom{},
		&models.Parent{},
		&models.ParentStudent{},
		&models.User{},
		&models.CalendarItem{},
		&models.AttendanceRecord{},
		&models.LeaveApplication{},
	)
}

// Retry รันงานกับ storage ซ้ำ 1 ครั้งเมื่อเจอ fault ชั่วคราว
// (ไม่ retry error ฝั่ง domain เช่น record not found / duplicated key)
func Retry(op func() error) error {
	err := op()
	if err == nil || !retryable(err) {
		return err
	}
	return op()
}

func retryable(err error) bool {
	if errors.Is(err, gorm.ErrRecordNotFound) ||
		errors.Is(err, gorm.ErrDuplicatedKey) ||
		errors.Is(err, gorm.ErrInvalidData) {
		return false
	}
	return true
}
