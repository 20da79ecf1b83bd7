package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/maxtech-bd/attendance-engine/config"
	"github.com/maxtech-bd/attendance-engine/database"
	"github.com/maxtech-bd/attendance-engine/engine"
	"github.com/maxtech-bd/attendance-engine/handlers"
	"github.com/maxtech-bd/attendance-engine/middlewares"
)

// Register ประกอบ engine + handler แล้วผูกทุกเส้นทาง
func Register(e *echo.Echo, cfg *config.Config) {
	// ===== Engine (shared singletons) =====
	cal := engine.NewDBCalendar(database.DB)
	ledger := engine.NewLedger(database.DB, cal)
	rollup := engine.NewRollup(ledger, cfg.AttendanceThreshold, cfg.RecentRecordsLimit)
	workflow := engine.NewWorkflow(database.DB, ledger)
	facade := engine.NewFacade(database.DB, ledger, rollup, cal)

	// ===== Handlers =====
	auth := handlers.NewAuthHandler(cfg.JWTSecret)
	att := handlers.NewAttendanceHandler(ledger)
	lv := handlers.NewLeaveHandler(workflow)
	view := handlers.NewViewHandler(facade)

	// ===== Public =====
	e.GET("/healthz", handlers.Health)
	e.POST("/auth/staff/login", auth.StaffLogin)
	e.POST("/auth/parent/login", auth.ParentLogin)

	authMW := middlewares.RequireAuth(cfg.JWTSecret)

	// ===== Student routes =====
	student := e.Group("/student", authMW, middlewares.RequireRole("student"))
	student.GET("/attendance/summary", view.MyAttendance)
	student.POST("/leave-applications", lv.Apply)

	// ===== Parent routes =====
	parent := e.Group("/parent", authMW, middlewares.RequireRole("parent"))
	parent.GET("/children", view.ParentChildren)
	parent.GET("/children/:id/attendance", view.ParentChildAttendance)
	parent.GET("/leave-applications", lv.ListForParent)
	parent.POST("/leave-applications", lv.Apply)

	// ===== Teacher/Admin routes =====
	teacher := e.Group("/teacher", authMW, middlewares.RequireRole("teacher", "admin"))
	teacher.GET("/attendance/summary", view.MyAttendance) // การมาปฏิบัติงานของครูเอง
	teacher.POST("/attendance/mark", att.Mark)
	teacher.GET("/attendance", att.List)
	teacher.GET("/attendance/day", att.GetDay)
	teacher.GET("/class-view", view.ClassView)
	teacher.GET("/students/:id/attendance", view.StudentAttendance)

	// Leave (ครูตรวจ/อนุมัติ + ยื่นลาของตัวเอง)
	teacher.POST("/leave-applications", lv.Apply)
	teacher.GET("/leave-applications", lv.List)
	teacher.GET("/leave-applications/pending-count", lv.PendingCount)
	teacher.POST("/leave-applications/:id/approve", lv.Approve)
	teacher.POST("/leave-applications/:id/reject", lv.Reject)
}
