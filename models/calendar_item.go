package models

import "time"

// CalendarItem ตัวเดียวครอบคลุม 2 ประเภท: normal (ภาคเรียน) / holiday (วันหยุด)
type CalendarItem struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Type string `json:"type" gorm:"type:varchar(20);index"` // normal | holiday
	Note string `json:"note" gorm:"type:varchar(200)"`

	// ----- NORMAL (ช่วงปีการศึกษา) -----
	Semester     string `json:"semester" gorm:"type:varchar(40)"`
	AcademicYear string `json:"academic_year" gorm:"type:varchar(10)"`
	OpenDate     string `json:"open_date" gorm:"type:varchar(10)"`  // YYYY-MM-DD
	CloseDate    string `json:"close_date" gorm:"type:varchar(10)"` // YYYY-MM-DD

	// ----- HOLIDAY -----
	Name      string `json:"name" gorm:"type:varchar(80)"`
	StartDate string `json:"start_date" gorm:"type:varchar(10)"`
	EndDate   string `json:"end_date" gorm:"type:varchar(10)"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
