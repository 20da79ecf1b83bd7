package engine

import (
	"errors"
	"fmt"
)

// กลุ่ม error ฝั่ง domain — handler แปลงเป็น HTTP code + error string ให้ FE
var (
	ErrNotFound        = errors.New("not found")
	ErrAlreadyReviewed = errors.New("already reviewed")
	ErrForbidden       = errors.New("forbidden")
	ErrFutureDate      = errors.New("future date not allowed")

	// Unavailable = storage ล่มหลัง retry แล้ว — แยกจาก error ฝั่งผู้ใช้
	ErrUnavailable = errors.New("storage unavailable")
)

// ValidationError เก็บรายละเอียดราย field แบบเดียวกับฟอร์มอื่น ๆ ในระบบ
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %d field(s)", len(e.Fields))
}

func newValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Fields: fields}
}

// Unavailable ห่อ storage error ให้เหลือชนิดเดียวที่ caller ต้องสนใจ
// (export ให้ชั้น handler ใช้กับ query สิทธิ์ที่อยู่นอก engine ด้วย)
func Unavailable(err error) error {
	if errors.Is(err, ErrUnavailable) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}

// domainErr = error ฝั่งผู้ใช้/กติกา ไม่ใช่ fault ของ storage (ห้ามนำไป retry)
func domainErr(err error) bool {
	var v *ValidationError
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrAlreadyReviewed) ||
		errors.Is(err, ErrForbidden) ||
		errors.Is(err, ErrFutureDate) ||
		errors.As(err, &v)
}
