package engine

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/maxtech-bd/attendance-engine/database"
	"github.com/maxtech-bd/attendance-engine/models"
)

const dateLayout = "2006-01-02"

// Calendar บอก "วันนี้" และกรอบปีการศึกษาให้ engine
// แยกเป็น interface เพื่อ fix เวลาใน test ได้
type Calendar interface {
	Today() string                            // YYYY-MM-DD
	YearWindow() (from, to string, err error) // ช่วงปีการศึกษาที่ครอบวันนี้
	Holiday(date string) (name string, ok bool, err error)
}

// DBCalendar อ่านจากตาราง calendar_items (แถว type=normal/holiday)
type DBCalendar struct {
	db *gorm.DB
}

func NewDBCalendar(db *gorm.DB) *DBCalendar { return &DBCalendar{db: db} }

func (c *DBCalendar) Today() string {
	return time.Now().Format(dateLayout)
}

// YearWindow: "ไม่มีแถว" เป็นเรื่องปกติ (fallback ได้) แต่ storage fault ต้องโผล่ออกไป
func (c *DBCalendar) YearWindow() (string, string, error) {
	today := c.Today()

	var it models.CalendarItem
	err := database.Retry(func() error {
		return c.db.
			Where("type = ? AND open_date <= ? AND close_date >= ?", "normal", today, today).
			Order("open_date DESC").
			First(&it).Error
	})
	if err == nil {
		return it.OpenDate, it.CloseDate, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", "", Unavailable(err)
	}

	// ไม่มีภาคเรียนครอบวันนี้ → ใช้ภาคเรียนล่าสุดที่เปิดมาแล้ว
	err = database.Retry(func() error {
		return c.db.
			Where("type = ? AND open_date <= ?", "normal", today).
			Order("open_date DESC").
			First(&it).Error
	})
	if err == nil {
		return it.OpenDate, it.CloseDate, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", "", Unavailable(err)
	}

	// ไม่มีข้อมูลปฏิทินเลย → fallback ปีปฏิทินปัจจุบัน
	y := time.Now().Format("2006")
	return y + "-01-01", y + "-12-31", nil
}

func (c *DBCalendar) Holiday(date string) (string, bool, error) {
	var it models.CalendarItem
	err := database.Retry(func() error {
		return c.db.
			Where("type = ? AND start_date <= ? AND end_date >= ?", "holiday", date, date).
			First(&it).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, Unavailable(err)
	}
	return it.Name, true, nil
}

// FixedCalendar สำหรับ test — ค่าคงที่ล้วน
type FixedCalendar struct {
	Now      string
	From, To string
	Holidays map[string]string
}

func (f *FixedCalendar) Today() string { return f.Now }

func (f *FixedCalendar) YearWindow() (string, string, error) { return f.From, f.To, nil }

func (f *FixedCalendar) Holiday(date string) (string, bool, error) {
	name, ok := f.Holidays[date]
	return name, ok, nil
}
