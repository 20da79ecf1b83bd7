package engine

import (
	"errors"
	"testing"

	"github.com/maxtech-bd/attendance-engine/models"
)

func seedStudents(t *testing.T, te *testEngine) (s1, s2 models.Student) {
	t.Helper()
	s1 = models.Student{StudentID: "S001", FirstName: "สมชาย", LastName: "ใจดี", Grade: "1", Room: "1", Status: "active"}
	s2 = models.Student{StudentID: "S002", FirstName: "สมหญิง", LastName: "ขยัน", Grade: "1", Room: "2", Status: "active"}
	if err := te.db.Create(&s1).Error; err != nil {
		t.Fatalf("seed s1: %v", err)
	}
	if err := te.db.Create(&s2).Error; err != nil {
		t.Fatalf("seed s2: %v", err)
	}
	return s1, s2
}

func TestMyAttendance(t *testing.T) {
	te := newTestEngine(t)
	s1, _ := seedStudents(t, te)

	for _, d := range []string{"2024-03-01", "2024-03-04"} {
		if _, err := te.ledger.Mark(models.PersonStudent, s1.ID, d, models.StatusPresent, "", 0); err != nil {
			t.Fatalf("Mark: %v", err)
		}
	}

	out, err := te.facade.MyAttendance(Capabilities{Kind: models.PersonStudent, SelfID: s1.ID})
	if err != nil {
		t.Fatalf("MyAttendance: %v", err)
	}
	if out.From != "2024-01-01" || out.To != "2024-12-31" {
		t.Errorf("window = %s..%s", out.From, out.To)
	}
	if out.TotalDays != 2 || out.AttendancePercentage != 100.0 {
		t.Errorf("summary = %+v", out.Summary)
	}
}

func TestMyAttendanceNoIdentity(t *testing.T) {
	te := newTestEngine(t)

	if _, err := te.facade.MyAttendance(Capabilities{Kind: models.PersonStudent}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("err = %v, want ErrForbidden", err)
	}
}

// ผู้ปกครองขอดูเด็กที่ไม่ได้ผูก → Forbidden เสมอ
func TestGuardianChildUnlinked(t *testing.T) {
	te := newTestEngine(t)
	s1, s2 := seedStudents(t, te)

	caps := Capabilities{GuardianOf: []uint{s1.ID}}
	if _, err := te.facade.GuardianChild(caps, s2.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("err = %v, want ErrForbidden", err)
	}
}

func TestGuardianChildLinked(t *testing.T) {
	te := newTestEngine(t)
	s1, _ := seedStudents(t, te)

	if _, err := te.ledger.Mark(models.PersonStudent, s1.ID, "2024-03-01", models.StatusAbsent, "", 0); err != nil {
		t.Fatalf("Mark: %v", err)
	}

	out, err := te.facade.GuardianChild(Capabilities{GuardianOf: []uint{s1.ID}}, s1.ID)
	if err != nil {
		t.Fatalf("GuardianChild: %v", err)
	}
	if out.TotalAbsent != 1 || out.ConsecutiveAbsences != 1 {
		t.Errorf("summary = %+v", out.Summary)
	}
}

func TestGuardianChildren(t *testing.T) {
	te := newTestEngine(t)
	s1, s2 := seedStudents(t, te)

	if _, err := te.ledger.Mark(models.PersonStudent, s1.ID, "2024-03-01", models.StatusPresent, "", 0); err != nil {
		t.Fatalf("Mark: %v", err)
	}

	out, err := te.facade.GuardianChildren(Capabilities{GuardianOf: []uint{s1.ID, s2.ID}})
	if err != nil {
		t.Fatalf("GuardianChildren: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("len = %d, want 2", len(out))
	}
	if out[0].Student.ID != s1.ID || out[0].Summary.TotalDays != 1 {
		t.Errorf("child 1 = %+v", out[0])
	}
	// ลูกที่ยังไม่มีประวัติ → summary ศูนย์ล้วน ไม่ error
	if out[1].Summary.TotalDays != 0 || out[1].Summary.AttendancePercentage != 0 {
		t.Errorf("child 2 = %+v", out[1].Summary)
	}
}

func TestGuardianChildrenEmpty(t *testing.T) {
	te := newTestEngine(t)

	out, err := te.facade.GuardianChildren(Capabilities{})
	if err != nil {
		t.Fatalf("GuardianChildren: %v", err)
	}
	if len(out) != 0 {
		t.Errorf("len = %d, want 0", len(out))
	}
}

func TestClassViewForbiddenWithoutAccess(t *testing.T) {
	te := newTestEngine(t)
	seedStudents(t, te)

	caps := Capabilities{Kind: models.PersonStaff, SelfID: 1, ClassAccess: []ClassKey{{Grade: "1", Room: "2"}}}
	if _, err := te.facade.ClassView(caps, "1", "1", "2024-03-10"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("err = %v, want ErrForbidden", err)
	}
}

// ห้องเดียว วันเดียว: คนที่เช็คแล้วได้สถานะจริง คนที่ยังไม่เช็คเป็น unmarked
func TestClassViewRoster(t *testing.T) {
	te := newTestEngine(t)
	s1, _ := seedStudents(t, te)
	s3 := models.Student{StudentID: "S003", FirstName: "เด็กชาย", LastName: "สาม", Grade: "1", Room: "1", Status: "active"}
	if err := te.db.Create(&s3).Error; err != nil {
		t.Fatalf("seed s3: %v", err)
	}

	if _, err := te.ledger.Mark(models.PersonStudent, s1.ID, "2024-03-10", models.StatusLate, "รถติด", 9); err != nil {
		t.Fatalf("Mark: %v", err)
	}

	caps := Capabilities{Kind: models.PersonStaff, SelfID: 1, ClassAccess: []ClassKey{{Grade: "1", Room: "1"}}}
	day, err := te.facade.ClassView(caps, "1", "1", "2024-03-10")
	if err != nil {
		t.Fatalf("ClassView: %v", err)
	}

	// ห้อง 1/1 มี 2 คน (s2 อยู่ห้อง 1/2)
	if len(day.Rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(day.Rows))
	}
	byCode := map[string]ClassRosterRow{}
	for _, r := range day.Rows {
		byCode[r.Code] = r
	}
	if byCode["S001"].Status != models.StatusLate || byCode["S001"].Reason != "รถติด" {
		t.Errorf("S001 = %+v", byCode["S001"])
	}
	if byCode["S003"].Status != "unmarked" {
		t.Errorf("S003 status = %s, want unmarked", byCode["S003"].Status)
	}
	if day.Holiday["isHoliday"] != false {
		t.Errorf("holiday = %v", day.Holiday)
	}
}

func TestClassViewHolidayAndAdminBypass(t *testing.T) {
	te := newTestEngine(t)
	seedStudents(t, te)

	day, err := te.facade.ClassView(Capabilities{Admin: true}, "1", "1", "2024-04-15")
	if err != nil {
		t.Fatalf("ClassView: %v", err)
	}
	if day.Holiday["isHoliday"] != true || day.Holiday["name"] != "สงกรานต์" {
		t.Errorf("holiday = %v", day.Holiday)
	}
}

func TestClassViewDefaultsToToday(t *testing.T) {
	te := newTestEngine(t)
	seedStudents(t, te)

	day, err := te.facade.ClassView(Capabilities{Admin: true}, "1", "1", "")
	if err != nil {
		t.Fatalf("ClassView: %v", err)
	}
	if day.Date != te.cal.Now {
		t.Errorf("Date = %s, want %s", day.Date, te.cal.Now)
	}
}

func TestStudentAttendanceScoping(t *testing.T) {
	te := newTestEngine(t)
	s1, s2 := seedStudents(t, te)

	if _, err := te.ledger.Mark(models.PersonStudent, s1.ID, "2024-03-01", models.StatusPresent, "", 0); err != nil {
		t.Fatalf("Mark: %v", err)
	}

	caps := Capabilities{Kind: models.PersonStaff, SelfID: 1, ClassAccess: []ClassKey{{Grade: "1", Room: "1"}}}

	out, err := te.facade.StudentAttendance(caps, s1.ID, "", "")
	if err != nil {
		t.Fatalf("StudentAttendance: %v", err)
	}
	if out.TotalDays != 1 {
		t.Errorf("TotalDays = %d, want 1", out.TotalDays)
	}

	// นักเรียนห้องอื่น → Forbidden
	if _, err := te.facade.StudentAttendance(caps, s2.ID, "", ""); !errors.Is(err, ErrForbidden) {
		t.Fatalf("err = %v, want ErrForbidden", err)
	}

	// ไม่มีนักเรียน id นี้ → NotFound
	if _, err := te.facade.StudentAttendance(caps, 999, "", ""); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
