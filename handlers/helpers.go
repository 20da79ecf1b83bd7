package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/maxtech-bd/attendance-engine/engine"
)

// แปลง string -> int; ถ้าแปลงไม่ได้ให้คืนค่าเริ่มต้น
func atoiOr(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

func getUserID(c echo.Context) uint {
	if v, ok := c.Get("user_id").(uint); ok {
		return v
	}
	return 0
}

func getPersonID(c echo.Context) uint {
	if v, ok := c.Get("person_id").(uint); ok {
		return v
	}
	return 0
}

func getRole(c echo.Context) string {
	role, _ := c.Get("role").(string)
	return role
}

// แปลง error ของ engine เป็น HTTP response — โค้ดแยกชัดว่า "ขอผิด" หรือ "ระบบล่ม"
func engineError(c echo.Context, err error) error {
	var v *engine.ValidationError
	switch {
	case errors.As(err, &v):
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "fields": v.Fields})
	case errors.Is(err, engine.ErrFutureDate):
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "FUTURE_DATE_NOT_ALLOWED"})
	case errors.Is(err, engine.ErrNotFound):
		return c.JSON(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
	case errors.Is(err, engine.ErrAlreadyReviewed):
		return c.JSON(http.StatusConflict, map[string]any{"error": "ALREADY_REVIEWED"})
	case errors.Is(err, engine.ErrForbidden):
		return c.JSON(http.StatusForbidden, map[string]any{"error": "FORBIDDEN"})
	case errors.Is(err, engine.ErrUnavailable):
		return c.JSON(http.StatusServiceUnavailable, map[string]any{"error": "UNAVAILABLE"})
	default:
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "INTERNAL"})
	}
}
