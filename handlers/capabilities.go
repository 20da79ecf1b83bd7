package handlers

import (
	"github.com/labstack/echo/v4"

	"github.com/maxtech-bd/attendance-engine/database"
	"github.com/maxtech-bd/attendance-engine/engine"
	"github.com/maxtech-bd/attendance-engine/models"
)

// resolveCapabilities แปลง claims + ความสัมพันธ์ใน DB เป็นชุดสิทธิ์ก้อนเดียว
// ทำครั้งเดียวต่อ request แล้วส่งเข้า facade ตรง ๆ
// query สิทธิ์พังเพราะ storage ต้องตอบ UNAVAILABLE — ห้ามกลายเป็น caps ว่างแล้วโดน 403
func resolveCapabilities(c echo.Context) (engine.Capabilities, error) {
	caps := engine.Capabilities{}

	switch getRole(c) {
	case "admin":
		caps.Kind = models.PersonStaff
		caps.SelfID = getPersonID(c)
		caps.Admin = true

	case "teacher":
		caps.Kind = models.PersonStaff
		caps.SelfID = getPersonID(c)
		// ห้องที่ครูคนนี้ประจำชั้น = ห้องที่เปิด class view ได้
		var rooms []models.Homeroom
		err := database.Retry(func() error {
			return database.DB.Where("teacher_id = ?", caps.SelfID).Find(&rooms).Error
		})
		if err != nil {
			return caps, engine.Unavailable(err)
		}
		for _, r := range rooms {
			caps.ClassAccess = append(caps.ClassAccess, engine.ClassKey{Grade: r.Grade, Room: r.Room})
		}

	case "parent":
		// ผู้ปกครองไม่มี ledger ของตัวเอง — สิทธิ์คือลูกที่ผูกไว้เท่านั้น
		var links []models.ParentStudent
		err := database.Retry(func() error {
			return database.DB.Where("parent_id = ?", getUserID(c)).Find(&links).Error
		})
		if err != nil {
			return caps, engine.Unavailable(err)
		}
		for _, l := range links {
			caps.GuardianOf = append(caps.GuardianOf, l.StudentID)
		}

	case "student":
		caps.Kind = models.PersonStudent
		caps.SelfID = getPersonID(c)
		if caps.SelfID == 0 {
			caps.SelfID = getUserID(c)
		}
	}

	return caps, nil
}
