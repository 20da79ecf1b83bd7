package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/maxtech-bd/attendance-engine/engine"
)

type ViewHandler struct {
	Facade *engine.Facade
}

func NewViewHandler(facade *engine.Facade) *ViewHandler {
	return &ViewHandler{Facade: facade}
}

// GET /student/attendance/summary และ GET /teacher/attendance/summary
// มุมมองตัวเอง — summary ปีการศึกษาปัจจุบัน + รายการล่าสุด
func (h *ViewHandler) MyAttendance(c echo.Context) error {
	caps, err := resolveCapabilities(c)
	if err != nil {
		return engineError(c, err)
	}
	out, err := h.Facade.MyAttendance(caps)
	if err != nil {
		return engineError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// GET /parent/children — ลูกทุกคนที่ผูกไว้ พร้อม summary รายคน
func (h *ViewHandler) ParentChildren(c echo.Context) error {
	caps, err := resolveCapabilities(c)
	if err != nil {
		return engineError(c, err)
	}
	out, err := h.Facade.GuardianChildren(caps)
	if err != nil {
		return engineError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// GET /parent/children/:id/attendance — ลูกที่ไม่ได้ผูกไว้ = FORBIDDEN
func (h *ViewHandler) ParentChildAttendance(c echo.Context) error {
	childID := uint(atoiOr(c.Param("id"), 0))
	caps, err := resolveCapabilities(c)
	if err != nil {
		return engineError(c, err)
	}
	out, err := h.Facade.GuardianChild(caps, childID)
	if err != nil {
		return engineError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// GET /teacher/class-view?grade=&room=&date=YYYY-MM-DD
// roster รายห้องของวันเดียวสำหรับหน้าเช็คชื่อ (นักเรียนยังไม่เช็ค = unmarked)
func (h *ViewHandler) ClassView(c echo.Context) error {
	grade := strings.TrimSpace(c.QueryParam("grade"))
	room := strings.TrimSpace(c.QueryParam("room"))
	date := strings.TrimSpace(c.QueryParam("date"))

	if grade == "" || room == "" {
		return c.JSON(http.StatusBadRequest, map[string]any{
			"error":  "VALIDATION_ERROR",
			"fields": map[string]string{"classroom": "กรุณาระบุ grade และ room"},
		})
	}

	caps, err := resolveCapabilities(c)
	if err != nil {
		return engineError(c, err)
	}
	out, err := h.Facade.ClassView(caps, grade, room, date)
	if err != nil {
		return engineError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// GET /teacher/students/:id/attendance?from=&to=
// summary รายนักเรียน — ครูทั่วไปดูได้เฉพาะห้องที่ตัวเองประจำชั้น
func (h *ViewHandler) StudentAttendance(c echo.Context) error {
	studentID := uint(atoiOr(c.Param("id"), 0))
	from := strings.TrimSpace(c.QueryParam("from"))
	to := strings.TrimSpace(c.QueryParam("to"))

	caps, err := resolveCapabilities(c)
	if err != nil {
		return engineError(c, err)
	}
	out, err := h.Facade.StudentAttendance(caps, studentID, from, to)
	if err != nil {
		return engineError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
