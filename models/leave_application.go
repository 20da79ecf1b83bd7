package models

import "time"

// สถานะใบลา — pending เปลี่ยนได้ครั้งเดียว (approved/rejected เป็นสถานะปลายทาง)
const (
	LeavePending  = "pending"
	LeaveApproved = "approved"
	LeaveRejected = "rejected"
)

// ประเภทการลา
const (
	LeaveSick     = "sick"
	LeavePersonal = "personal"
	LeaveFamily   = "family"
	LeaveOther    = "other"
)

type LeaveApplication struct {
	ID         uint   `json:"id" gorm:"primaryKey"`
	PersonKind string `json:"person_kind" gorm:"size:10;not null;default:'student';index:idx_leave_person"`
	PersonID   uint   `json:"person_id" gorm:"not null;index:idx_leave_person"`
	LeaveType  string `json:"leave_type" gorm:"size:20;not null"`
	StartDate  string `json:"start_date" gorm:"size:10;not null;index"` // YYYY-MM-DD
	EndDate    string `json:"end_date" gorm:"size:10;not null"`         // YYYY-MM-DD, >= StartDate
	TotalDays  int    `json:"total_days" gorm:"not null"`               // นับรวมปลายทั้งสองข้าง
	Reason     string `json:"reason" gorm:"type:text;not null"`
	Status     string `json:"status" gorm:"size:10;not null;default:'pending';index"`

	AppliedBy     uint       `json:"applied_by"` // parent.id เมื่อผู้ปกครองยื่นแทน (0 = ยื่นเอง)
	ReviewRemarks string     `json:"review_remarks" gorm:"type:text"`
	DecidedBy     *uint      `json:"decided_by"`
	DecidedAt     *time.Time `json:"decided_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ValidLeaveType ตรวจประเภทการลา
func ValidLeaveType(t string) bool {
	switch t {
	case LeaveSick, LeavePersonal, LeaveFamily, LeaveOther:
		return true
	}
	return false
}
