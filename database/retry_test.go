package database

import (
	"errors"
	"testing"

	"gorm.io/gorm"
)

// fault ชั่วคราวรอบแรก → ต้องรันซ้ำอีกรอบเดียวแล้วสำเร็จ
func TestRetryTransientFault(t *testing.T) {
	calls := 0
	err := Retry(func() error {
		calls++
		if calls == 1 {
			return errors.New("connection reset by peer")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Retry: %v", err)
	}
	if calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}
}

func TestRetryGivesUpAfterSecondFault(t *testing.T) {
	calls := 0
	fault := errors.New("connection refused")
	err := Retry(func() error {
		calls++
		return fault
	})
	if !errors.Is(err, fault) {
		t.Fatalf("err = %v, want %v", err, fault)
	}
	if calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}
}

// error ฝั่ง domain ของ gorm ห้ามนำไป retry — ผลลัพธ์เดิมแน่นอนอยู่แล้ว
func TestRetrySkipsDomainErrors(t *testing.T) {
	for _, sentinel := range []error{gorm.ErrRecordNotFound, gorm.ErrDuplicatedKey, gorm.ErrInvalidData} {
		calls := 0
		err := Retry(func() error {
			calls++
			return sentinel
		})
		if !errors.Is(err, sentinel) {
			t.Errorf("err = %v, want %v", err, sentinel)
		}
		if calls != 1 {
			t.Errorf("%v: calls = %d, want 1", sentinel, calls)
		}
	}
}
