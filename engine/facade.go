package engine

import (
	"errors"

	"gorm.io/gorm"

	"github.com/maxtech-bd/attendance-engine/database"
	"github.com/maxtech-bd/attendance-engine/models"
)

// ClassKey ระบุห้องเรียนหนึ่งห้อง
type ClassKey struct {
	Grade string
	Room  string
}

// Capabilities สิทธิ์ของ caller resolve ครั้งเดียวต่อ request แล้วส่งเข้ามาตรง ๆ
// (ไม่ branch ตาม role string กระจายทั่ว handler)
type Capabilities struct {
	Kind        string // student | staff
	SelfID      uint   // student.id หรือ teacher.id ของ caller (0 = ไม่มี)
	GuardianOf  []uint // student.id ของลูกที่ผูกกับผู้ปกครองคนนี้
	ClassAccess []ClassKey
	Admin       bool // ข้ามการเช็ค ClassAccess
}

func (c Capabilities) canViewStudent(studentID uint) bool {
	for _, id := range c.GuardianOf {
		if id == studentID {
			return true
		}
	}
	return false
}

func (c Capabilities) canViewClass(grade, room string) bool {
	if c.Admin {
		return true
	}
	for _, k := range c.ClassAccess {
		if k.Grade == grade && k.Room == room {
			return true
		}
	}
	return false
}

// Facade ตอบ 3 มุมมองอ่านของ FE: ตัวเอง / ผู้ปกครอง / รายห้อง
// ทุก path เป็น read-only ไม่แตะ ledger
type Facade struct {
	db     *gorm.DB
	ledger *Ledger
	rollup *Rollup
	cal    Calendar
}

func NewFacade(db *gorm.DB, ledger *Ledger, rollup *Rollup, cal Calendar) *Facade {
	return &Facade{db: db, ledger: ledger, rollup: rollup, cal: cal}
}

// PersonAttendance = summary + ช่วงเวลาที่ใช้คิด
type PersonAttendance struct {
	PersonKind string `json:"person_kind"`
	PersonID   uint   `json:"person_id"`
	From       string `json:"from"`
	To         string `json:"to"`
	Summary
}

// MyAttendance มุมมองตัวเอง — หน้าต่าง default คือปีการศึกษาปัจจุบัน
func (f *Facade) MyAttendance(caps Capabilities) (*PersonAttendance, error) {
	if caps.SelfID == 0 {
		return nil, ErrForbidden
	}
	from, to, err := f.cal.YearWindow()
	if err != nil {
		return nil, err
	}
	sum, err := f.rollup.SummarizeRange(caps.Kind, caps.SelfID, from, to)
	if err != nil {
		return nil, err
	}
	return &PersonAttendance{
		PersonKind: caps.Kind,
		PersonID:   caps.SelfID,
		From:       from,
		To:         to,
		Summary:    sum,
	}, nil
}

// ChildSummary รายการลูกหนึ่งคนในมุมมองผู้ปกครอง
type ChildSummary struct {
	Student models.Student `json:"student"`
	Summary Summary        `json:"summary"`
}

// GuardianChildren คืนลูกทุกคนที่ผูกไว้ พร้อม summary รายคน
func (f *Facade) GuardianChildren(caps Capabilities) ([]ChildSummary, error) {
	out := []ChildSummary{}
	if len(caps.GuardianOf) == 0 {
		return out, nil
	}

	var students []models.Student
	err := database.Retry(func() error {
		return f.db.Where("id IN ?", caps.GuardianOf).Order("id ASC").Find(&students).Error
	})
	if err != nil {
		return nil, Unavailable(err)
	}

	from, to, err := f.cal.YearWindow()
	if err != nil {
		return nil, err
	}
	for _, st := range students {
		sum, err := f.rollup.SummarizeRange(models.PersonStudent, st.ID, from, to)
		if err != nil {
			return nil, err
		}
		out = append(out, ChildSummary{Student: st, Summary: sum})
	}
	return out, nil
}

// GuardianChild มุมมองลูกคนเดียว — ต้องมี link จริง ไม่งั้น ErrForbidden
func (f *Facade) GuardianChild(caps Capabilities, childID uint) (*PersonAttendance, error) {
	if !caps.canViewStudent(childID) {
		return nil, ErrForbidden
	}
	from, to, err := f.cal.YearWindow()
	if err != nil {
		return nil, err
	}
	sum, err := f.rollup.SummarizeRange(models.PersonStudent, childID, from, to)
	if err != nil {
		return nil, err
	}
	return &PersonAttendance{
		PersonKind: models.PersonStudent,
		PersonID:   childID,
		From:       from,
		To:         to,
		Summary:    sum,
	}, nil
}

// ClassRosterRow สถานะของนักเรียนหนึ่งคนในวันเดียว
type ClassRosterRow struct {
	StudentID uint   `json:"student_id"`
	Code      string `json:"code"`
	FullName  string `json:"full_name"`
	Status    string `json:"status"` // present/absent/late/leave/unmarked
	Reason    string `json:"reason"`
	MarkedBy  uint   `json:"marked_by"`
}

// ClassDay roster รายห้องของวันเดียว สำหรับหน้าเช็คชื่อ
type ClassDay struct {
	Grade   string           `json:"grade"`
	Room    string           `json:"room"`
	Date    string           `json:"date"`
	Holiday map[string]any   `json:"holiday"`
	Rows    []ClassRosterRow `json:"rows"`
}

// ClassView ต้องมีสิทธิ์ประจำชั้นห้องนั้น (admin ข้ามได้)
// นักเรียนที่ยังไม่มีแถวของวันนั้นแสดงเป็น "unmarked" — ไม่ใช่ขาด
func (f *Facade) ClassView(caps Capabilities, grade, room, date string) (*ClassDay, error) {
	if !caps.canViewClass(grade, room) {
		return nil, ErrForbidden
	}
	if date == "" {
		date = f.cal.Today()
	}

	var students []models.Student
	err := database.Retry(func() error {
		return f.db.
			Where("grade = ? AND room = ? AND status = ?", grade, room, "active").
			Order("student_id ASC").
			Find(&students).Error
	})
	if err != nil {
		return nil, Unavailable(err)
	}

	ids := make([]uint, 0, len(students))
	for _, st := range students {
		ids = append(ids, st.ID)
	}
	marked, err := f.ledger.listDay(models.PersonStudent, ids, date)
	if err != nil {
		return nil, err
	}

	day := &ClassDay{
		Grade:   grade,
		Room:    room,
		Date:    date,
		Holiday: map[string]any{"isHoliday": false, "name": ""},
		Rows:    make([]ClassRosterRow, 0, len(students)),
	}
	name, isHoliday, err := f.cal.Holiday(date)
	if err != nil {
		return nil, err
	}
	if isHoliday {
		day.Holiday["isHoliday"] = true
		day.Holiday["name"] = name
	}

	for _, st := range students {
		row := ClassRosterRow{
			StudentID: st.ID,
			Code:      st.StudentID,
			FullName:  fullName(st),
			Status:    "unmarked",
		}
		if rec, ok := marked[st.ID]; ok {
			row.Status = rec.Status
			row.Reason = rec.Reason
			row.MarkedBy = rec.MarkedBy
		}
		day.Rows = append(day.Rows, row)
	}
	return day, nil
}

// StudentAttendance มุมมอง admin/ครูประจำชั้น ดู summary รายนักเรียน
// ครูทั่วไปดูได้เฉพาะนักเรียนในห้องที่ตัวเองมีสิทธิ์
func (f *Facade) StudentAttendance(caps Capabilities, studentID uint, from, to string) (*PersonAttendance, error) {
	var st models.Student
	err := database.Retry(func() error {
		return f.db.First(&st, "id = ?", studentID).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, Unavailable(err)
	}
	if !caps.canViewClass(st.Grade, st.Room) {
		return nil, ErrForbidden
	}

	if from == "" || to == "" {
		from, to, err = f.cal.YearWindow()
		if err != nil {
			return nil, err
		}
	}
	sum, err := f.rollup.SummarizeRange(models.PersonStudent, studentID, from, to)
	if err != nil {
		return nil, err
	}
	return &PersonAttendance{
		PersonKind: models.PersonStudent,
		PersonID:   studentID,
		From:       from,
		To:         to,
		Summary:    sum,
	}, nil
}

func fullName(st models.Student) string {
	if st.Prefix != "" {
		return st.Prefix + " " + st.FirstName + " " + st.LastName
	}
	return st.FirstName + " " + st.LastName
}
