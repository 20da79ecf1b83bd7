package engine

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/maxtech-bd/attendance-engine/database"
	"github.com/maxtech-bd/attendance-engine/models"
)

// Ledger เป็น source of truth ของสถานะรายวัน 1 แถวต่อ (คน, วัน)
// เขียนซ้ำ = ทับของเดิม (last-writer-wins) ไม่มี versioning
type Ledger struct {
	db  *gorm.DB
	cal Calendar
}

func NewLedger(db *gorm.DB, cal Calendar) *Ledger {
	return &Ledger{db: db, cal: cal}
}

// Mark บันทึก/ทับสถานะของวันนั้น — กันวันอนาคต (เทียบ "วันนี้" จากปฏิทิน)
func (l *Ledger) Mark(kind string, personID uint, date, status, reason string, markedBy uint) (*models.AttendanceRecord, error) {
	fields := map[string]string{}

	status = strings.TrimSpace(status)
	if !models.ValidStatus(status) {
		fields["status"] = "สถานะต้องเป็น present/absent/late/leave"
	}
	if kind != models.PersonStudent && kind != models.PersonStaff {
		fields["person_kind"] = "ต้องเป็น student หรือ staff"
	}
	if personID == 0 {
		fields["person_id"] = "กรุณาระบุบุคคล"
	}
	date = strings.TrimSpace(date)
	if _, err := time.Parse(dateLayout, date); err != nil {
		fields["date"] = "ต้องเป็น YYYY-MM-DD"
	}
	if len(fields) > 0 {
		return nil, newValidation(fields)
	}

	// ห้ามเช็คชื่อล่วงหน้า (แบบเดียวกับ guard วันเกิดในฟอร์มนักเรียน)
	if date > l.cal.Today() {
		return nil, ErrFutureDate
	}

	return l.upsert(l.db, kind, personID, date, status, reason, markedBy)
}

// upsert แถวเดียวด้วย ON CONFLICT บน (person_kind, person_id, date)
// ให้ storage ตัดสิน last-writer-wins ตอนเขียนชนกัน
func (l *Ledger) upsert(db *gorm.DB, kind string, personID uint, date, status, reason string, markedBy uint) (*models.AttendanceRecord, error) {
	rec := models.AttendanceRecord{
		PersonKind: kind,
		PersonID:   personID,
		Date:       date,
		Status:     status,
		Reason:     strings.TrimSpace(reason),
		MarkedBy:   markedBy,
	}
	err := database.Retry(func() error {
		return db.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "person_kind"}, {Name: "person_id"}, {Name: "date"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"status", "reason", "marked_by", "updated_at",
			}),
		}).Create(&rec).Error
	})
	if err != nil {
		return nil, Unavailable(err)
	}
	return &rec, nil
}

// Get อ่านสถานะของวันเดียว — ไม่มีแถวคืน ErrNotFound (= ยังไม่เช็คชื่อ)
func (l *Ledger) Get(kind string, personID uint, date string) (*models.AttendanceRecord, error) {
	var rec models.AttendanceRecord
	err := database.Retry(func() error {
		return l.db.
			Where("person_kind = ? AND person_id = ? AND date = ?", kind, personID, date).
			First(&rec).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, Unavailable(err)
	}
	return &rec, nil
}

// ListRange อ่านช่วง [from, to] เรียงวันที่จากเก่าไปใหม่
// วันที่ไม่มีแถวไม่ถูกเติมให้ — "ยังไม่เช็คชื่อ" เป็นสถานะจริงของระบบ
func (l *Ledger) ListRange(kind string, personID uint, from, to string) ([]models.AttendanceRecord, error) {
	var rows []models.AttendanceRecord
	err := database.Retry(func() error {
		return l.db.
			Where("person_kind = ? AND person_id = ? AND date >= ? AND date <= ?", kind, personID, from, to).
			Order("date ASC").
			Find(&rows).Error
	})
	if err != nil {
		return nil, Unavailable(err)
	}
	return rows, nil
}

// listDay อ่านทุกแถวของวันเดียวสำหรับกลุ่มนักเรียน (ใช้โดย class view)
func (l *Ledger) listDay(kind string, personIDs []uint, date string) (map[uint]models.AttendanceRecord, error) {
	out := map[uint]models.AttendanceRecord{}
	if len(personIDs) == 0 {
		return out, nil
	}
	var rows []models.AttendanceRecord
	err := database.Retry(func() error {
		return l.db.
			Where("person_kind = ? AND person_id IN ? AND date = ?", kind, personIDs, date).
			Find(&rows).Error
	})
	if err != nil {
		return nil, Unavailable(err)
	}
	for _, r := range rows {
		out[r.PersonID] = r
	}
	return out, nil
}
