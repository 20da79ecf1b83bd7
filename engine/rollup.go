package engine

import (
	"math"

	"github.com/maxtech-bd/attendance-engine/models"
)

// Summary สถิติรวมต่อคนในหน้าต่างที่ขอ — คำนวณจาก ledger ทุกครั้ง ไม่ persist
type Summary struct {
	TotalDays            int                       `json:"total_days"` // เฉพาะวันที่เช็คชื่อแล้ว
	TotalPresent         int                       `json:"total_present"`
	TotalAbsent          int                       `json:"total_absent"`
	TotalLate            int                       `json:"total_late"`
	TotalLeave           int                       `json:"total_leave"`
	AttendancePercentage float64                   `json:"attendance_percentage"`
	ConsecutiveAbsences  int                       `json:"consecutive_absences"`
	AtRisk               bool                      `json:"at_risk"`
	RecentRecords        []models.AttendanceRecord `json:"recent_records"`
}

// Rollup แปลงช่วงข้อมูลจาก ledger เป็น Summary
type Rollup struct {
	ledger      *Ledger
	threshold   float64 // ร้อยละขั้นต่ำก่อนติดธง at risk
	recentLimit int
}

func NewRollup(ledger *Ledger, threshold float64, recentLimit int) *Rollup {
	if recentLimit <= 0 {
		recentLimit = 7
	}
	return &Rollup{ledger: ledger, threshold: threshold, recentLimit: recentLimit}
}

// Summarize เป็น pure function: records ต้องเรียงวันที่จากเก่าไปใหม่
// (ตามที่ ListRange คืน) — วันที่ไม่มีแถวไม่ถูกนับเป็นขาด
func (r *Rollup) Summarize(records []models.AttendanceRecord) Summary {
	s := Summary{RecentRecords: []models.AttendanceRecord{}}

	for _, rec := range records {
		switch rec.Status {
		case models.StatusPresent:
			s.TotalPresent++
		case models.StatusAbsent:
			s.TotalAbsent++
		case models.StatusLate:
			s.TotalLate++
		case models.StatusLeave:
			s.TotalLeave++
		default:
			continue // ค่าสถานะแปลกปลอม ไม่นับรวม
		}
		s.TotalDays++
	}

	// เปอร์เซ็นต์คิดจาก present เท่านั้น (late ไม่นับเป็นมา) ปัด 1 ตำแหน่ง
	if s.TotalDays > 0 {
		p := float64(s.TotalPresent) / float64(s.TotalDays) * 100
		s.AttendancePercentage = math.Round(p*10) / 10
		s.AtRisk = s.AttendancePercentage < r.threshold
	}

	// นับขาดติดต่อกันย้อนจากวันล่าสุดที่เช็คชื่อ — เจอสถานะอื่นใดก็หยุด
	for i := len(records) - 1; i >= 0; i-- {
		if records[i].Status != models.StatusAbsent {
			break
		}
		s.ConsecutiveAbsences++
	}

	// หางรายการล่าสุด เรียงใหม่→เก่า
	n := len(records)
	limit := r.recentLimit
	if limit > n {
		limit = n
	}
	for i := n - 1; i >= n-limit; i-- {
		s.RecentRecords = append(s.RecentRecords, records[i])
	}

	return s
}

// SummarizeRange ดึงช่วงจาก ledger แล้วสรุป
func (r *Rollup) SummarizeRange(kind string, personID uint, from, to string) (Summary, error) {
	records, err := r.ledger.ListRange(kind, personID, from, to)
	if err != nil {
		return Summary{}, err
	}
	return r.Summarize(records), nil
}
