package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/maxtech-bd/attendance-engine/engine"
	"github.com/maxtech-bd/attendance-engine/models"
)

type LeaveHandler struct {
	Workflow *engine.Workflow
	validate *validator.Validate
}

func NewLeaveHandler(workflow *engine.Workflow) *LeaveHandler {
	return &LeaveHandler{Workflow: workflow, validate: validator.New()}
}

type applyLeaveReq struct {
	PersonKind string `json:"person_kind" validate:"omitempty,oneof=student staff"`
	PersonID   uint   `json:"person_id" validate:"required"`
	LeaveType  string `json:"leave_type" validate:"required,oneof=sick personal family other"`
	StartDate  string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate    string `json:"end_date" validate:"required,datetime=2006-01-02"`
	Reason     string `json:"reason" validate:"required"`
}

// POST /parent/leave-applications (ผู้ปกครองยื่นแทนลูก)
// POST /teacher/leave-applications (ครู/แอดมินยื่น หรือบันทึกแทน)
func (h *LeaveHandler) Apply(c echo.Context) error {
	var req applyLeaveReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	if err := h.validate.Struct(&req); err != nil {
		fields := map[string]string{}
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				fields[strings.ToLower(fe.Field())] = "ข้อมูลไม่ถูกต้อง (" + fe.Tag() + ")"
			}
		}
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "fields": fields})
	}
	if req.PersonKind == "" {
		req.PersonKind = models.PersonStudent
	}

	// scope ตาม role: parent ยื่นได้เฉพาะลูกที่ผูกไว้, teacher ยื่นลาของตัวเอง
	appliedBy := uint(0)
	caps, err := resolveCapabilities(c)
	if err != nil {
		return engineError(c, err)
	}
	switch getRole(c) {
	case "parent":
		req.PersonKind = models.PersonStudent
		linked := false
		for _, id := range caps.GuardianOf {
			if id == req.PersonID {
				linked = true
				break
			}
		}
		if !linked {
			return c.JSON(http.StatusForbidden, map[string]any{"error": "FORBIDDEN"})
		}
		appliedBy = getUserID(c)
	case "teacher":
		if req.PersonKind == models.PersonStaff && req.PersonID != caps.SelfID {
			return c.JSON(http.StatusForbidden, map[string]any{"error": "FORBIDDEN"})
		}
	case "student":
		req.PersonKind = models.PersonStudent
		if req.PersonID != caps.SelfID {
			return c.JSON(http.StatusForbidden, map[string]any{"error": "FORBIDDEN"})
		}
	}

	app, err := h.Workflow.Apply(req.PersonKind, req.PersonID, req.LeaveType, req.StartDate, req.EndDate, req.Reason, appliedBy)
	if err != nil {
		return engineError(c, err)
	}
	return c.JSON(http.StatusCreated, app)
}

type reviewReq struct {
	Remarks string `json:"remarks"`
}

// POST /teacher/leave-applications/:id/approve
// อนุมัติสำเร็จ = ทุกวันในช่วงกลายเป็น leave ใน ledger (ทับสถานะเดิม)
func (h *LeaveHandler) Approve(c echo.Context) error {
	return h.review(c, engine.DecisionApprove)
}

// POST /teacher/leave-applications/:id/reject — ไม่แตะ ledger
func (h *LeaveHandler) Reject(c echo.Context) error {
	return h.review(c, engine.DecisionReject)
}

func (h *LeaveHandler) review(c echo.Context, decision string) error {
	id := uint(atoiOr(c.Param("id"), 0))
	if id == 0 {
		return c.JSON(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
	}
	var body reviewReq
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}

	app, err := h.Workflow.Review(id, decision, body.Remarks, getUserID(c))
	if err != nil {
		return engineError(c, err)
	}
	return c.JSON(http.StatusOK, app)
}

// GET /teacher/leave-applications?status=&person_kind=&person_id=&page=&size=
func (h *LeaveHandler) List(c echo.Context) error {
	page := atoiOr(c.QueryParam("page"), 1)
	size := atoiOr(c.QueryParam("size"), 20)
	if page < 1 {
		page = 1
	}
	if size < 1 || size > 100 {
		size = 20
	}

	rows, err := h.Workflow.List(engine.ListFilter{
		PersonKind: strings.TrimSpace(c.QueryParam("person_kind")),
		PersonID:   uint(atoiOr(c.QueryParam("person_id"), 0)),
		Status:     strings.TrimSpace(c.QueryParam("status")),
		Limit:      size,
		Offset:     (page - 1) * size,
	})
	if err != nil {
		return engineError(c, err)
	}
	return c.JSON(http.StatusOK, rows)
}

// GET /parent/leave-applications?child_id= — ใบลาของลูกที่ผูกไว้เท่านั้น
func (h *LeaveHandler) ListForParent(c echo.Context) error {
	childID := uint(atoiOr(c.QueryParam("child_id"), 0))
	caps, err := resolveCapabilities(c)
	if err != nil {
		return engineError(c, err)
	}

	linked := false
	for _, id := range caps.GuardianOf {
		if id == childID {
			linked = true
			break
		}
	}
	if !linked {
		return c.JSON(http.StatusForbidden, map[string]any{"error": "FORBIDDEN"})
	}

	rows, err := h.Workflow.List(engine.ListFilter{
		PersonKind: models.PersonStudent,
		PersonID:   childID,
	})
	if err != nil {
		return engineError(c, err)
	}
	return c.JSON(http.StatusOK, rows)
}

// GET /teacher/leave-applications/pending-count
func (h *LeaveHandler) PendingCount(c echo.Context) error {
	n, err := h.Workflow.PendingCount()
	if err != nil {
		return engineError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"count": n})
}
