package models

import "time"

// ครูประจำชั้น — ใช้เป็นแหล่งสิทธิ์ "เข้าถึงห้องไหนได้บ้าง" ของ class view
type Homeroom struct {
	ID           uint   `gorm:"primaryKey"       json:"id"`
	AcademicYear string `gorm:"size:10;not null" json:"academic_year"`
	Grade        string `gorm:"size:20;not null" json:"grade"`
	Room         string `gorm:"size:10;not null" json:"room"`
	TeacherID    uint   `gorm:"not null;index"   json:"teacher_id"` // FK -> teachers.id (เชื่อมแบบ logic)
	Position     string `gorm:"size:30"          json:"position"`   // หลัก/รอง

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
