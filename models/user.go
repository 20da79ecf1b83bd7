package models

import "time"

// บัญชีเจ้าหน้าที่ (admin/teacher) สำหรับ login ฝั่ง staff
type User struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	Username  string `json:"username" gorm:"uniqueIndex;size:60;not null"`
	Password  string `json:"-" gorm:"not null"`            // bcrypt hash
	Role      string `json:"role" gorm:"size:20;not null"` // "admin" | "teacher"
	Name      string `json:"name" gorm:"size:120"`
	TeacherID uint   `json:"teacher_id"` // FK -> teachers.id (0 สำหรับ admin)

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
