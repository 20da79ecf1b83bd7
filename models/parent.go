package models

import "time"

type Parent struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	Email    string `json:"email" gorm:"uniqueIndex;size:120"`
	Phone    string `json:"phone" gorm:"size:20"`
	Password string `json:"-" gorm:"not null"` // bcrypt hash
	Name     string `json:"name" gorm:"size:120"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ความสัมพันธ์ผู้ปกครอง→นักเรียน (many-to-many) — ใช้ scope ข้อมูลฝั่ง parent
type ParentStudent struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	ParentID  uint   `json:"parent_id" gorm:"not null;uniqueIndex:idx_parent_student"`
	StudentID uint   `json:"student_id" gorm:"not null;uniqueIndex:idx_parent_student"`
	Relation  string `json:"relation" gorm:"size:30"` // บิดา/มารดา/ผู้ปกครอง

	CreatedAt time.Time `json:"created_at"`
}
