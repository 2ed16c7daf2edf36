package main

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"student-dashboard-backend/internal/cache"
	"student-dashboard-backend/internal/logger"
	"student-dashboard-backend/internal/store"
	"student-dashboard-backend/internal/wellness"
)

// Server holds the collaborators the HTTP handlers share.
type Server struct {
	store    store.Store
	cache    *cache.Cache
	assessor wellness.Assessor
	now      func() time.Time
}

func NewServer(s store.Store, c *cache.Cache, a wellness.Assessor) *Server {
	return &Server{store: s, cache: c, assessor: a, now: time.Now}
}

// setupRouter builds the gin engine with logging, recovery and CORS.
func setupRouter(srv *Server, log zerolog.Logger, origins []string) *gin.Engine {
	r := gin.New()
	r.Use(logger.Middleware(log), gin.Recovery())

	corsCfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = origins
		corsCfg.AllowCredentials = true
	}
	r.Use(cors.New(corsCfg))

	r.GET("/health", srv.healthCheck)

	api := r.Group("/api")

	api.GET("/transactions", srv.getTransactions)
	api.POST("/transactions", srv.addTransaction)
	api.PUT("/transactions/:id", srv.updateTransaction)
	api.DELETE("/transactions/:id", srv.deleteTransaction)

	api.GET("/categories", srv.getCategories)
	api.POST("/categories/suggest", srv.suggestCategory)

	api.GET("/analytics", srv.getAnalytics)
	api.GET("/analytics/monthly", srv.getMonthly)
	api.GET("/analytics/trends", srv.getTrends)
	api.GET("/analytics/budget", srv.getBudget)

	api.GET("/tasks", srv.getTasks)
	api.GET("/tasks/stats", srv.getTaskStats)
	api.POST("/tasks", srv.addTask)
	api.PUT("/tasks/:id", srv.updateTask)
	api.PATCH("/tasks/:id/toggle", srv.toggleTask)
	api.DELETE("/tasks/:id", srv.deleteTask)

	api.GET("/reminders", srv.getReminders)
	api.GET("/reminders/stats", srv.getReminderStats)
	api.POST("/reminders", srv.addReminder)
	api.PUT("/reminders/:id", srv.updateReminder)
	api.PATCH("/reminders/:id/toggle", srv.toggleReminder)
	api.DELETE("/reminders/:id", srv.deleteReminder)

	api.GET("/attendance", srv.getAttendance)
	api.GET("/attendance/stats", srv.getAttendanceStats)
	api.POST("/attendance", srv.addAttendance)
	api.PUT("/attendance/:id", srv.updateAttendance)
	api.DELETE("/attendance/:id", srv.deleteAttendance)

	api.GET("/profile", srv.getProfile)
	api.PUT("/profile", srv.saveProfile)

	api.GET("/wellness/assessments", srv.getAssessments)
	api.POST("/wellness/assessments", srv.assess)
	api.POST("/wellness/insights", srv.insights)
	api.POST("/wellness/motivation", srv.motivation)

	api.GET("/tips", srv.getTips)
	api.POST("/tips", srv.addTip)
	api.POST("/tips/:id/like", srv.likeTip)

	return r
}
