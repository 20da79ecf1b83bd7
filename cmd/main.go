package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/maxtech-bd/attendance-engine/config"
	"github.com/maxtech-bd/attendance-engine/database"
	"github.com/maxtech-bd/attendance-engine/routes"
)

func main() {
	// .env เป็น optional — production ตั้ง env ตรง ๆ
	_ = godotenv.Load()

	cfg := config.Load()

	// เชื่อมต่อฐานข้อมูล (ถ้า DB ยังไม่ขึ้น โปรแกรม error ทันที — early fail)
	database.Connect(cfg)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())
	e.Use(middleware.CORS())

	routes.Register(e, cfg)

	addr := ":" + cfg.AppPort
	log.Printf("server listening at %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
