package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"farmatrack/internal/service"
)

type createTargetReq struct {
	MRName       string `json:"mrName" binding:"required,notblank"`
	Period       string `json:"period" binding:"required,notblank"`
	SalesTarget  *int   `json:"salesTarget" binding:"required,min=0"`
	VisitsTarget *int   `json:"visitsTarget" binding:"required,min=0"`
	StartDate    string `json:"startDate" binding:"omitempty,datetime=2006-01-02"`
	EndDate      string `json:"endDate" binding:"omitempty,datetime=2006-01-02"`
}

var targetMessages = map[string]string{
	"MRName.required":            "MR name is required",
	"MRName.notblank":            "MR name is required",
	"Period.required":            "Period is required",
	"Period.notblank":            "Period is required",
	"SalesTarget.required":       "Sales target is required",
	"SalesTarget.min":            "Sales target must be >= 0",
	"SalesAchievement.required":  "Sales achievement is required",
	"SalesAchievement.min":       "Sales achievement must be >= 0",
	"VisitsTarget.required":      "Visits target is required",
	"VisitsTarget.min":           "Visits target must be >= 0",
	"VisitsAchievement.required": "Visits achievement is required",
	"VisitsAchievement.min":      "Visits achievement must be >= 0",
	"StartDate.datetime":         "Start date must be in YYYY-MM-DD format",
	"EndDate.datetime":           "End date must be in YYYY-MM-DD format",
	"Status.required":            "Status is required",
	"Status.notblank":            "Status is required",
}

func (createTargetReq) messages() map[string]string { return targetMessages }

func (r createTargetReq) input() service.TargetInput {
	return service.TargetInput{
		MRName:       r.MRName,
		Period:       r.Period,
		SalesTarget:  *r.SalesTarget,
		VisitsTarget: *r.VisitsTarget,
		StartDate:    r.StartDate,
		EndDate:      r.EndDate,
	}
}

type updateTargetReq struct {
	MRName            string `json:"mrName" binding:"required,notblank"`
	Period            string `json:"period" binding:"required,notblank"`
	SalesTarget       *int   `json:"salesTarget" binding:"required,min=0"`
	SalesAchievement  *int   `json:"salesAchievement" binding:"required,min=0"`
	VisitsTarget      *int   `json:"visitsTarget" binding:"required,min=0"`
	VisitsAchievement *int   `json:"visitsAchievement" binding:"required,min=0"`
	StartDate         string `json:"startDate" binding:"omitempty,datetime=2006-01-02"`
	EndDate           string `json:"endDate" binding:"omitempty,datetime=2006-01-02"`
	Status            string `json:"status" binding:"required,notblank"`
}

func (updateTargetReq) messages() map[string]string { return targetMessages }

func (r updateTargetReq) input() service.TargetInput {
	return service.TargetInput{
		MRName:            r.MRName,
		Period:            r.Period,
		SalesTarget:       *r.SalesTarget,
		SalesAchievement:  *r.SalesAchievement,
		VisitsTarget:      *r.VisitsTarget,
		VisitsAchievement: *r.VisitsAchievement,
		StartDate:         r.StartDate,
		EndDate:           r.EndDate,
		Status:            r.Status,
	}
}

// @Summary List targets
// @Tags targets
// @Produce json
// @Success 200 {array} domain.Target
// @Router /targets [get]
func (s *Server) listTargets(c *gin.Context) {
	list, err := s.svc.Targets.List(c)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// @Summary Get target by id
// @Tags targets
// @Produce json
// @Param id path int true "Target ID"
// @Success 200 {object} domain.Target
// @Failure 400 {object} apiError
// @Router /targets/{id} [get]
func (s *Server) getTarget(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	t, err := s.svc.Targets.Get(c, id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

// @Summary Create target
// @Tags targets
// @Accept json
// @Produce json
// @Param input body createTargetReq true "Target"
// @Success 201 {object} domain.Target
// @Failure 400 {object} apiError
// @Router /targets [post]
func (s *Server) createTarget(c *gin.Context) {
	var req createTargetReq
	if !bind(c, &req) {
		return
	}
	t, err := s.svc.Targets.Create(c, req.input())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, t)
}

// @Summary Update target
// @Tags targets
// @Accept json
// @Produce json
// @Param id path int true "Target ID"
// @Param input body updateTargetReq true "Target"
// @Success 200 {object} domain.Target
// @Failure 400 {object} apiError
// @Router /targets/{id} [put]
func (s *Server) updateTarget(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req updateTargetReq
	if !bind(c, &req) {
		return
	}
	t, err := s.svc.Targets.Update(c, id, req.input())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

// @Summary Delete target
// @Tags targets
// @Param id path int true "Target ID"
// @Success 204
// @Router /targets/{id} [delete]
func (s *Server) deleteTarget(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := s.svc.Targets.Delete(c, id); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
