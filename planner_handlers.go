package main

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"student-dashboard-backend/internal/attendance"
	"student-dashboard-backend/internal/models"
	"student-dashboard-backend/internal/reminders"
	"student-dashboard-backend/internal/tasks"
)

// tasks

func (s *Server) getTasks(c *gin.Context) {
	var f tasks.Filter
	if err := c.ShouldBindQuery(&f); err != nil {
		badRequest(c, err)
		return
	}
	list, err := s.store.ListTasks(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, taskListResponse{
		Tasks: tasks.Apply(list, f),
		Stats: tasks.Summarize(list, s.now()),
	})
}

func (s *Server) getTaskStats(c *gin.Context) {
	list, err := s.store.ListTasks(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tasks.Summarize(list, s.now()))
}

func (s *Server) addTask(c *gin.Context) {
	var t models.Task
	if err := c.ShouldBindJSON(&t); err != nil {
		badRequest(c, err)
		return
	}
	if err := t.Validate(); err != nil {
		badRequest(c, err)
		return
	}
	t.Completed = false
	t.CreatedAt = s.now().Format(models.DateLayout)

	created, err := s.store.AddTask(c.Request.Context(), t)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (s *Server) updateTask(c *gin.Context) {
	var t models.Task
	if err := c.ShouldBindJSON(&t); err != nil {
		badRequest(c, err)
		return
	}
	t.ID = c.Param("id")
	if err := t.Validate(); err != nil {
		badRequest(c, err)
		return
	}
	updated, err := s.store.UpdateTask(c.Request.Context(), t)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (s *Server) toggleTask(c *gin.Context) {
	ctx := c.Request.Context()
	t, err := s.store.GetTask(ctx, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	t.Completed = !t.Completed
	updated, err := s.store.UpdateTask(ctx, t)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (s *Server) deleteTask(c *gin.Context) {
	if err := s.store.RemoveTask(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Task deleted"})
}

// reminders

func (s *Server) viewReminder(r models.Reminder, now time.Time) reminderView {
	v := reminderView{Reminder: r}
	if days, err := reminders.DaysUntilDue(r, now); err == nil {
		v.DaysUntilDue = days
		v.Overdue = days < 0 && !r.Completed
	}
	return v
}

func (s *Server) viewReminders(rs []models.Reminder) []reminderView {
	now := s.now()
	out := make([]reminderView, len(rs))
	for i, r := range rs {
		out[i] = s.viewReminder(r, now)
	}
	return out
}

// getReminders lists reminders. status=active keeps open ones, optionally
// narrowed by type.
func (s *Server) getReminders(c *gin.Context) {
	list, err := s.store.ListReminders(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	if c.Query("status") == "active" {
		list = reminders.Active(list, c.Query("type"))
	}
	c.JSON(http.StatusOK, s.viewReminders(list))
}

func (s *Server) getReminderStats(c *gin.Context) {
	list, err := s.store.ListReminders(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, reminderStatsResponse{
		Stats:    reminders.Summarize(list),
		Upcoming: s.viewReminders(reminders.Upcoming(list, s.now(), reminders.UpcomingLimit)),
	})
}

func (s *Server) addReminder(c *gin.Context) {
	var r models.Reminder
	if err := c.ShouldBindJSON(&r); err != nil {
		badRequest(c, err)
		return
	}
	r.Normalize()
	if err := r.Validate(); err != nil {
		badRequest(c, err)
		return
	}
	r.Completed = false
	r.NotificationSent = false
	r.CreatedAt = s.now().UTC().Format(time.RFC3339)

	created, err := s.store.AddReminder(c.Request.Context(), r)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, s.viewReminder(created, s.now()))
}

// updateReminder replaces an existing reminder. The notification flag is
// kept unless the due date or time moved.
func (s *Server) updateReminder(c *gin.Context) {
	ctx := c.Request.Context()
	var r models.Reminder
	if err := c.ShouldBindJSON(&r); err != nil {
		badRequest(c, err)
		return
	}
	r.ID = c.Param("id")
	r.Normalize()
	if err := r.Validate(); err != nil {
		badRequest(c, err)
		return
	}

	existing, err := s.store.GetReminder(ctx, r.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	r.NotificationSent = existing.NotificationSent && existing.DueDate == r.DueDate && existing.DueTime == r.DueTime

	updated, err := s.store.UpdateReminder(ctx, r)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, s.viewReminder(updated, s.now()))
}

// toggleReminder flips completion. Completing a recurring reminder also
// schedules its next occurrence.
func (s *Server) toggleReminder(c *gin.Context) {
	ctx := c.Request.Context()
	r, err := s.store.GetReminder(ctx, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	r.Completed = !r.Completed
	updated, err := s.store.UpdateReminder(ctx, r)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := gin.H{"reminder": s.viewReminder(updated, s.now())}
	if updated.Completed {
		next, ok, err := reminders.NextOccurrence(updated)
		if err != nil {
			respondError(c, err)
			return
		}
		if ok {
			next.CreatedAt = s.now().UTC().Format(time.RFC3339)
			created, err := s.store.AddReminder(ctx, next)
			if err != nil {
				respondError(c, err)
				return
			}
			resp["next"] = s.viewReminder(created, s.now())
		}
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) deleteReminder(c *gin.Context) {
	if err := s.store.RemoveReminder(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Reminder deleted"})
}

// attendance

func viewAttendance(records []models.AttendanceRecord) []attendanceView {
	out := make([]attendanceView, len(records))
	for i, a := range records {
		out[i] = attendanceView{AttendanceRecord: a}
		if mins, ok := attendance.Lateness(a.ScheduledTime, a.ActualTime); ok {
			out[i].LatenessMinutes = &mins
		}
	}
	return out
}

func (s *Server) getAttendance(c *gin.Context) {
	list, err := s.store.ListAttendance(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, viewAttendance(list))
}

func (s *Server) getAttendanceStats(c *gin.Context) {
	list, err := s.store.ListAttendance(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, attendanceStatsResponse{
		Summary:   attendance.Summarize(list),
		Weekly:    attendance.Weekly(list),
		BySubject: attendance.BySubject(list),
	})
}

func (s *Server) addAttendance(c *gin.Context) {
	var a models.AttendanceRecord
	if err := c.ShouldBindJSON(&a); err != nil {
		badRequest(c, err)
		return
	}
	a.Normalize()
	if err := a.Validate(); err != nil {
		badRequest(c, err)
		return
	}
	created, err := s.store.AddAttendance(c.Request.Context(), a)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, viewAttendance([]models.AttendanceRecord{created})[0])
}

func (s *Server) updateAttendance(c *gin.Context) {
	var a models.AttendanceRecord
	if err := c.ShouldBindJSON(&a); err != nil {
		badRequest(c, err)
		return
	}
	a.ID = c.Param("id")
	a.Normalize()
	if err := a.Validate(); err != nil {
		badRequest(c, err)
		return
	}
	updated, err := s.store.UpdateAttendance(c.Request.Context(), a)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, viewAttendance([]models.AttendanceRecord{updated})[0])
}

func (s *Server) deleteAttendance(c *gin.Context) {
	if err := s.store.RemoveAttendance(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Attendance record deleted"})
}
