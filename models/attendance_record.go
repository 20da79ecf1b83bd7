package models

import "time"

// สถานะที่ ledger รองรับ (FE ใช้ค่าเดียวกันตรง ๆ)
const (
	StatusPresent = "present"
	StatusAbsent  = "absent"
	StatusLate    = "late"
	StatusLeave   = "leave"
)

// ประเภทบุคคลใน ledger — นักเรียนและบุคลากรใช้ตารางเดียวกัน
const (
	PersonStudent = "student"
	PersonStaff   = "staff"
)

// บันทึกสถานะรายวัน 1 แถวต่อ (คน, วัน)
// ไม่มีแถว = ยังไม่เช็คชื่อ (unmarked) — ห้ามตีความเป็น "ขาด"
type AttendanceRecord struct {
	ID         uint   `json:"id" gorm:"primaryKey"`
	PersonKind string `json:"person_kind" gorm:"size:10;not null;default:'student';uniqueIndex:idx_ledger_person_date"`
	PersonID   uint   `json:"person_id" gorm:"not null;uniqueIndex:idx_ledger_person_date"`
	Date       string `json:"date" gorm:"size:10;not null;uniqueIndex:idx_ledger_person_date"` // YYYY-MM-DD
	Status     string `json:"status" gorm:"size:10;not null"`
	Reason     string `json:"reason" gorm:"type:text"`
	MarkedBy   uint   `json:"marked_by"` // user.id ของผู้บันทึก (0 = ไม่ทราบ)

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ValidStatus ตรวจว่าค่าสถานะอยู่ในชุดที่รองรับ
func ValidStatus(s string) bool {
	switch s {
	case StatusPresent, StatusAbsent, StatusLate, StatusLeave:
		return true
	}
	return false
}
