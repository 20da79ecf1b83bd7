package models

import "time"

type Student struct {
	ID        uint   `gorm:"primaryKey"                   json:"id"`
	StudentID string `gorm:"size:20;uniqueIndex;not null" json:"student_id"` // รหัสนักเรียน
	Prefix    string `gorm:"size:20"                      json:"prefix"`
	FirstName string `gorm:"size:50;not null"             json:"first_name"`
	LastName  string `gorm:"size:50;not null"             json:"last_name"`
	Grade     string `gorm:"size:20;not null;index:idx_students_class" json:"grade"`
	Room      string `gorm:"size:10;not null;index:idx_students_class" json:"room"`
	Status    string `gorm:"size:20;not null;default:'active'" json:"status"` // active|left|suspended

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
