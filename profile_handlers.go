package main

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"student-dashboard-backend/internal/models"
	"student-dashboard-backend/internal/wellness"
)

func (s *Server) getProfile(c *gin.Context) {
	p, err := s.store.GetProfile(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (s *Server) saveProfile(c *gin.Context) {
	var p models.UserProfile
	if err := c.ShouldBindJSON(&p); err != nil {
		badRequest(c, err)
		return
	}
	p.Email = strings.TrimSpace(p.Email)
	if err := p.Validate(); err != nil {
		badRequest(c, err)
		return
	}
	saved, err := s.store.SaveProfile(c.Request.Context(), p)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, saved)
}

func withBand(rec wellness.AssessmentRecord) assessmentResponse {
	return assessmentResponse{AssessmentRecord: rec, Band: wellness.Band(rec.Report.OverallScore)}
}

func (s *Server) getAssessments(c *gin.Context) {
	recs, err := s.store.ListAssessments(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	out := make([]assessmentResponse, len(recs))
	for i, rec := range recs {
		out[i] = withBand(rec)
	}
	c.JSON(http.StatusOK, out)
}

// assess runs the questionnaire answers through the assessor and saves the report.
func (s *Server) assess(c *gin.Context) {
	ctx := c.Request.Context()
	var responses wellness.Responses
	if err := c.ShouldBindJSON(&responses); err != nil {
		badRequest(c, err)
		return
	}

	report, err := s.assessor.Assess(ctx, responses)
	if err != nil {
		respondError(c, err)
		return
	}
	rec, err := s.store.AddAssessment(ctx, wellness.AssessmentRecord{CreatedAt: s.now().UTC(), Report: report})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, withBand(rec))
}

func (s *Server) insights(c *gin.Context) {
	var report wellness.Report
	if err := c.ShouldBindJSON(&report); err != nil {
		badRequest(c, err)
		return
	}
	if err := report.Validate(); err != nil {
		badRequest(c, err)
		return
	}
	text, err := s.assessor.Insights(c.Request.Context(), report)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, textResponse{Text: text})
}

func (s *Server) motivation(c *gin.Context) {
	var req motivationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if strings.TrimSpace(req.Area) == "" {
		badRequest(c, errors.New("area is required"))
		return
	}
	text, err := s.assessor.Motivation(c.Request.Context(), req.Area)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, textResponse{Text: text})
}
