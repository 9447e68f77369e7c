package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"farmatrack/internal/service"
)

// taskReq тело create/update. На create поле status игнорируется.
type taskReq struct {
	Title       string `json:"title" binding:"required,notblank"`
	Type        string `json:"type"`
	AssignedTo  string `json:"assignedTo"`
	Priority    string `json:"priority"`
	Status      string `json:"status"`
	DueDate     string `json:"dueDate" binding:"omitempty,datetime=2006-01-02"`
	Location    string `json:"location"`
	Description string `json:"description"`
}

func (taskReq) messages() map[string]string {
	return map[string]string{
		"Title.required":   "Title is required",
		"Title.notblank":   "Title is required",
		"DueDate.datetime": "Due date must be in YYYY-MM-DD format",
	}
}

func (r taskReq) input() service.TaskInput {
	return service.TaskInput{
		Title:       r.Title,
		Type:        r.Type,
		AssignedTo:  r.AssignedTo,
		Priority:    r.Priority,
		Status:      r.Status,
		DueDate:     r.DueDate,
		Location:    r.Location,
		Description: r.Description,
	}
}

// @Summary List tasks, most recent first
// @Tags tasks
// @Produce json
// @Success 200 {array} domain.Task
// @Router /tasks [get]
func (s *Server) listTasks(c *gin.Context) {
	list, err := s.svc.Tasks.List(c)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// @Summary Get task by id
// @Tags tasks
// @Produce json
// @Param id path int true "Task ID"
// @Success 200 {object} domain.Task
// @Failure 400 {object} apiError
// @Router /tasks/{id} [get]
func (s *Server) getTask(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	t, err := s.svc.Tasks.Get(c, id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

// @Summary Create task (status is always pending)
// @Tags tasks
// @Accept json
// @Produce json
// @Param input body taskReq true "Task"
// @Success 201 {object} domain.Task
// @Failure 400 {object} apiError
// @Router /tasks [post]
func (s *Server) createTask(c *gin.Context) {
	var req taskReq
	if !bind(c, &req) {
		return
	}
	t, err := s.svc.Tasks.Create(c, req.input())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, t)
}

// @Summary Update task
// @Tags tasks
// @Accept json
// @Produce json
// @Param id path int true "Task ID"
// @Param input body taskReq true "Task"
// @Success 200 {object} domain.Task
// @Failure 400 {object} apiError
// @Router /tasks/{id} [put]
func (s *Server) updateTask(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req taskReq
	if !bind(c, &req) {
		return
	}
	t, err := s.svc.Tasks.Update(c, id, req.input())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

// @Summary Delete task
// @Tags tasks
// @Param id path int true "Task ID"
// @Success 204
// @Router /tasks/{id} [delete]
func (s *Server) deleteTask(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := s.svc.Tasks.Delete(c, id); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
