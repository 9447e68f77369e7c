package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"farmatrack/internal/service"
)

type doctorReq struct {
	Name       string `json:"name" binding:"required,notblank"`
	Type       string `json:"type"`
	Specialty  string `json:"specialty"`
	Phone      string `json:"phone"`
	Email      string `json:"email" binding:"omitempty,email"`
	ClinicName string `json:"clinicName"`
	Address    string `json:"address"`
	City       string `json:"city"`
	AssignedMR string `json:"assignedMR"`
	Notes      string `json:"notes"`
	Status     string `json:"status"`
}

func (doctorReq) messages() map[string]string {
	return map[string]string{
		"Name.required": "Name is required",
		"Name.notblank": "Name is required",
		"Email.email":   "Email must be a valid email address",
	}
}

func (r doctorReq) input() service.DoctorInput {
	return service.DoctorInput{
		Name:       r.Name,
		Type:       r.Type,
		Specialty:  r.Specialty,
		Phone:      r.Phone,
		Email:      r.Email,
		ClinicName: r.ClinicName,
		Address:    r.Address,
		City:       r.City,
		AssignedMR: r.AssignedMR,
		Notes:      r.Notes,
		Status:     r.Status,
	}
}

// @Summary List doctors
// @Tags doctors
// @Produce json
// @Success 200 {array} domain.Doctor
// @Router /doctors [get]
func (s *Server) listDoctors(c *gin.Context) {
	list, err := s.svc.Doctors.List(c)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// @Summary Get doctor by id
// @Tags doctors
// @Produce json
// @Param id path int true "Doctor ID"
// @Success 200 {object} domain.Doctor
// @Failure 400 {object} apiError
// @Router /doctors/{id} [get]
func (s *Server) getDoctor(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	d, err := s.svc.Doctors.Get(c, id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

// @Summary Create doctor
// @Tags doctors
// @Accept json
// @Produce json
// @Param input body doctorReq true "Doctor"
// @Success 201 {object} domain.Doctor
// @Failure 400 {object} apiError
// @Router /doctors [post]
func (s *Server) createDoctor(c *gin.Context) {
	var req doctorReq
	if !bind(c, &req) {
		return
	}
	d, err := s.svc.Doctors.Create(c, req.input())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, d)
}

// @Summary Update doctor
// @Tags doctors
// @Accept json
// @Produce json
// @Param id path int true "Doctor ID"
// @Param input body doctorReq true "Doctor"
// @Success 200 {object} domain.Doctor
// @Failure 400 {object} apiError
// @Router /doctors/{id} [put]
func (s *Server) updateDoctor(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req doctorReq
	if !bind(c, &req) {
		return
	}
	d, err := s.svc.Doctors.Update(c, id, req.input())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

// @Summary Delete doctor
// @Tags doctors
// @Param id path int true "Doctor ID"
// @Success 204
// @Router /doctors/{id} [delete]
func (s *Server) deleteDoctor(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := s.svc.Doctors.Delete(c, id); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
