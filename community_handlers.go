package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"student-dashboard-backend/internal/models"
)

// getTips lists shared tips, newest first
func (s *Server) getTips(c *gin.Context) {
	tips, err := s.store.ListTips(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tips)
}

func (s *Server) addTip(c *gin.Context) {
	var t models.Tip
	if err := c.ShouldBindJSON(&t); err != nil {
		badRequest(c, err)
		return
	}
	t.Normalize()
	if err := t.Validate(); err != nil {
		badRequest(c, err)
		return
	}
	t.Likes, t.Comments = 0, 0
	t.CreatedAt = s.now().UTC()

	created, err := s.store.AddTip(c.Request.Context(), t)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (s *Server) likeTip(c *gin.Context) {
	t, err := s.store.LikeTip(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}
