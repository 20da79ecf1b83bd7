package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/maxtech-bd/attendance-engine/engine"
	"github.com/maxtech-bd/attendance-engine/models"
)

type AttendanceHandler struct {
	Ledger *engine.Ledger
}

func NewAttendanceHandler(ledger *engine.Ledger) *AttendanceHandler {
	return &AttendanceHandler{Ledger: ledger}
}

// POST /teacher/attendance/mark
// เขียนทับแถวเดิมของ (คน, วัน) ได้เสมอ — เช็คชื่อซ้ำ = แก้สถานะ
func (h *AttendanceHandler) Mark(c echo.Context) error {
	var req struct {
		PersonKind string `json:"person_kind"`
		PersonID   uint   `json:"person_id"`
		Date       string `json:"date"`
		Status     string `json:"status"`
		Reason     string `json:"reason"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	if req.PersonKind == "" {
		req.PersonKind = models.PersonStudent
	}

	rec, err := h.Ledger.Mark(req.PersonKind, req.PersonID, req.Date, req.Status, req.Reason, getUserID(c))
	if err != nil {
		return engineError(c, err)
	}
	return c.JSON(http.StatusOK, rec)
}

// GET /teacher/attendance?person_kind=&person_id=&from=&to=
// คืนรายการของคนเดียวในช่วง เรียงวันเก่า→ใหม่ (วันที่ไม่เช็คชื่อไม่มีแถว)
func (h *AttendanceHandler) List(c echo.Context) error {
	kind := strings.TrimSpace(c.QueryParam("person_kind"))
	if kind == "" {
		kind = models.PersonStudent
	}
	personID := uint(atoiOr(c.QueryParam("person_id"), 0))
	from := strings.TrimSpace(c.QueryParam("from"))
	to := strings.TrimSpace(c.QueryParam("to"))

	fields := map[string]string{}
	if personID == 0 {
		fields["person_id"] = "กรุณาระบุบุคคล"
	}
	if from == "" || to == "" {
		fields["range"] = "กรุณาระบุ from และ to (YYYY-MM-DD)"
	}
	if len(fields) > 0 {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "fields": fields})
	}

	rows, err := h.Ledger.ListRange(kind, personID, from, to)
	if err != nil {
		return engineError(c, err)
	}
	return c.JSON(http.StatusOK, rows)
}

// GET /teacher/attendance/day?person_kind=&person_id=&date=
func (h *AttendanceHandler) GetDay(c echo.Context) error {
	kind := strings.TrimSpace(c.QueryParam("person_kind"))
	if kind == "" {
		kind = models.PersonStudent
	}
	personID := uint(atoiOr(c.QueryParam("person_id"), 0))
	date := strings.TrimSpace(c.QueryParam("date"))

	rec, err := h.Ledger.Get(kind, personID, date)
	if err != nil {
		return engineError(c, err)
	}
	return c.JSON(http.StatusOK, rec)
}
