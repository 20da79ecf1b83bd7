package engine

import (
	"fmt"
	"strings"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/maxtech-bd/attendance-engine/database"
)

// sqlite in-memory ต่อ test — ตั้งชื่อ DSN ตามชื่อ test กัน connection pool แชร์ผิดตัว
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func newTestCalendar() *FixedCalendar {
	return &FixedCalendar{
		Now:      "2024-03-15",
		From:     "2024-01-01",
		To:       "2024-12-31",
		Holidays: map[string]string{"2024-04-15": "สงกรานต์"},
	}
}

type testEngine struct {
	db       *gorm.DB
	cal      *FixedCalendar
	ledger   *Ledger
	workflow *Workflow
	rollup   *Rollup
	facade   *Facade
}

func newTestEngine(t *testing.T) *testEngine {
	t.Helper()
	db := newTestDB(t)
	cal := newTestCalendar()
	ledger := NewLedger(db, cal)
	rollup := NewRollup(ledger, 75, 7)
	return &testEngine{
		db:       db,
		cal:      cal,
		ledger:   ledger,
		workflow: NewWorkflow(db, ledger),
		rollup:   rollup,
		facade:   NewFacade(db, ledger, rollup, cal),
	}
}
