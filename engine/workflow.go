package engine

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/maxtech-bd/attendance-engine/database"
	"github.com/maxtech-bd/attendance-engine/models"
)

// การตัดสินใบลา
const (
	DecisionApprove = "approve"
	DecisionReject  = "reject"
)

// Workflow คุม lifecycle ของใบลา: pending → approved/rejected (ปลายทาง ห้ามย้อน)
// อนุมัติแล้วจึงเขียนสถานะ "leave" ลง ledger — ledger ไม่เรียกกลับมาทางนี้
type Workflow struct {
	db     *gorm.DB
	ledger *Ledger
}

func NewWorkflow(db *gorm.DB, ledger *Ledger) *Workflow {
	return &Workflow{db: db, ledger: ledger}
}

// Apply ยื่นใบลาใหม่ (สถานะ pending เสมอ)
// appliedBy = parent.id เมื่อผู้ปกครองยื่นแทนเด็ก, 0 เมื่อยื่นเอง
func (w *Workflow) Apply(kind string, personID uint, leaveType, startDate, endDate, reason string, appliedBy uint) (*models.LeaveApplication, error) {
	fields := map[string]string{}

	if kind != models.PersonStudent && kind != models.PersonStaff {
		fields["person_kind"] = "ต้องเป็น student หรือ staff"
	}
	if personID == 0 {
		fields["person_id"] = "กรุณาระบุบุคคล"
	}
	leaveType = strings.TrimSpace(leaveType)
	if !models.ValidLeaveType(leaveType) {
		fields["leave_type"] = "ประเภทการลาต้องเป็น sick/personal/family/other"
	}
	startDate = strings.TrimSpace(startDate)
	endDate = strings.TrimSpace(endDate)
	start, errS := time.Parse(dateLayout, startDate)
	end, errE := time.Parse(dateLayout, endDate)
	if errS != nil {
		fields["start_date"] = "ต้องเป็น YYYY-MM-DD"
	}
	if errE != nil {
		fields["end_date"] = "ต้องเป็น YYYY-MM-DD"
	}
	if errS == nil && errE == nil && end.Before(start) {
		fields["end_date"] = "ต้องไม่ก่อนวันที่เริ่มลา"
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		fields["reason"] = "กรุณากรอกเหตุผลการลา"
	}
	if len(fields) > 0 {
		return nil, newValidation(fields)
	}

	app := models.LeaveApplication{
		PersonKind: kind,
		PersonID:   personID,
		LeaveType:  leaveType,
		StartDate:  startDate,
		EndDate:    endDate,
		TotalDays:  inclusiveDays(start, end),
		Reason:     reason,
		Status:     models.LeavePending,
		AppliedBy:  appliedBy,
	}
	err := database.Retry(func() error {
		return w.db.Create(&app).Error
	})
	if err != nil {
		return nil, Unavailable(err)
	}
	return &app, nil
}

// Review ตัดสินใบลา — อนุมัติได้ครั้งเดียวด้วย CAS บน status=pending
// สอง reviewer กดพร้อมกัน: คนแรกชนะ คนหลังได้ ErrAlreadyReviewed
func (w *Workflow) Review(id uint, decision, remarks string, reviewerID uint) (*models.LeaveApplication, error) {
	if decision != DecisionApprove && decision != DecisionReject {
		return nil, newValidation(map[string]string{"decision": "ต้องเป็น approve หรือ reject"})
	}

	var out models.LeaveApplication
	run := func() error {
		return w.db.Transaction(func(tx *gorm.DB) error {
			var app models.LeaveApplication
			if err := tx.First(&app, "id = ?", id).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrNotFound
				}
				return err
			}

			newStatus := models.LeaveApproved
			if decision == DecisionReject {
				newStatus = models.LeaveRejected
			}
			now := time.Now()
			res := tx.Model(&models.LeaveApplication{}).
				Where("id = ? AND status = ?", id, models.LeavePending).
				Updates(map[string]any{
					"status":         newStatus,
					"review_remarks": strings.TrimSpace(remarks),
					"decided_by":     reviewerID,
					"decided_at":     now,
				})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				// แถวมีอยู่จริงแต่พ้น pending ไปแล้ว
				return ErrAlreadyReviewed
			}

			// อนุมัติ = เขียนทับทุกวันในช่วงเป็น leave (การอนุมัติถือเป็นที่สุด
			// ชนะสถานะที่เช็คไว้ก่อนหน้า รวมถึง present)
			if newStatus == models.LeaveApproved {
				for _, d := range datesBetween(app.StartDate, app.EndDate) {
					if _, err := w.ledger.upsert(tx, app.PersonKind, app.PersonID, d, models.StatusLeave, app.LeaveType, reviewerID); err != nil {
						return err
					}
				}
			}

			out = app
			out.Status = newStatus
			out.ReviewRemarks = strings.TrimSpace(remarks)
			out.DecidedBy = &reviewerID
			out.DecidedAt = &now
			return nil
		})
	}

	err := run()
	if err != nil && !domainErr(err) {
		err = run() // storage fault → ลองซ้ำรอบเดียว
	}
	if err != nil {
		if domainErr(err) {
			return nil, err
		}
		return nil, Unavailable(err)
	}
	return &out, nil
}

// ListFilter เงื่อนไขการค้นใบลา (ค่าเว้นว่าง = ไม่กรอง)
type ListFilter struct {
	PersonKind string
	PersonID   uint
	Status     string
	Limit      int
	Offset     int
}

// List คืนใบลาเรียง start_date ล่าสุดก่อน — เรียกซ้ำด้วย filter เดิมได้ผลเดิม
func (w *Workflow) List(f ListFilter) ([]models.LeaveApplication, error) {
	var rows []models.LeaveApplication
	// ประกอบ query ใหม่ทุกรอบ — chain ที่ run ไปแล้วห้ามนำมา retry ซ้ำ
	err := database.Retry(func() error {
		tx := w.db.Model(&models.LeaveApplication{})
		if f.PersonKind != "" {
			tx = tx.Where("person_kind = ?", f.PersonKind)
		}
		if f.PersonID != 0 {
			tx = tx.Where("person_id = ?", f.PersonID)
		}
		if f.Status != "" {
			tx = tx.Where("status = ?", f.Status)
		}
		if f.Limit > 0 {
			tx = tx.Limit(f.Limit).Offset(f.Offset)
		}
		return tx.Order("start_date DESC, id DESC").Find(&rows).Error
	})
	if err != nil {
		return nil, Unavailable(err)
	}
	return rows, nil
}

// PendingCount จำนวนใบลาที่รอตรวจ (badge บน dashboard ครู)
func (w *Workflow) PendingCount() (int64, error) {
	var n int64
	err := database.Retry(func() error {
		return w.db.Model(&models.LeaveApplication{}).
			Where("status = ?", models.LeavePending).Count(&n).Error
	})
	if err != nil {
		return 0, Unavailable(err)
	}
	return n, nil
}

// Get อ่านใบลาตาม id
func (w *Workflow) Get(id uint) (*models.LeaveApplication, error) {
	var app models.LeaveApplication
	err := database.Retry(func() error {
		return w.db.First(&app, "id = ?", id).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, Unavailable(err)
	}
	return &app, nil
}

// inclusiveDays นับจำนวนวันรวมปลายทั้งสองข้าง
func inclusiveDays(start, end time.Time) int {
	return int(end.Sub(start).Hours()/24) + 1
}

// datesBetween คืนทุกวันใน [start, end] (input ผ่าน validation มาแล้ว)
func datesBetween(start, end string) []string {
	s, _ := time.Parse(dateLayout, start)
	e, _ := time.Parse(dateLayout, end)
	var out []string
	for d := s; !d.After(e); d = d.AddDate(0, 0, 1) {
		out = append(out, d.Format(dateLayout))
	}
	return out
}
