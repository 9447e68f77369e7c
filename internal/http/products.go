package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"farmatrack/internal/service"
)

// Product handlers
type productReq struct {
	Name     string   `json:"name" binding:"required,notblank"`
	Category string   `json:"category"`
	Price    *float64 `json:"price" binding:"required,min=0"`
	Stock    *int64   `json:"stock" binding:"required,min=0"`
}

func (productReq) messages() map[string]string {
	return map[string]string{
		"Name.required":  "Name is required",
		"Name.notblank":  "Name is required",
		"Price.required": "Price is required",
		"Price.min":      "Price must be >= 0",
		"Stock.required": "Stock is required",
		"Stock.min":      "Stock must be >= 0",
	}
}

func (r productReq) input() service.ProductInput {
	return service.ProductInput{Name: r.Name, Category: r.Category, Price: *r.Price, Stock: *r.Stock}
}

// @Summary List products
// @Tags products
// @Produce json
// @Success 200 {array} domain.Product
// @Router /products [get]
func (s *Server) listProducts(c *gin.Context) {
	list, err := s.svc.Products.List(c)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// @Summary Get product by id
// @Tags products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} domain.Product
// @Failure 400 {object} apiError
// @Router /products/{id} [get]
func (s *Server) getProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	p, err := s.svc.Products.Get(c, id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// @Summary Create product
// @Tags products
// @Accept json
// @Produce json
// @Param input body productReq true "Product"
// @Success 201 {object} domain.Product
// @Failure 400 {object} apiError
// @Router /products [post]
func (s *Server) createProduct(c *gin.Context) {
	var req productReq
	if !bind(c, &req) {
		return
	}
	p, err := s.svc.Products.Create(c, req.input())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

// @Summary Update product
// @Tags products
// @Accept json
// @Produce json
// @Param id path int true "Product ID"
// @Param input body productReq true "Update"
// @Success 200 {object} domain.Product
// @Failure 400 {object} apiError
// @Router /products/{id} [put]
func (s *Server) updateProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req productReq
	if !bind(c, &req) {
		return
	}
	p, err := s.svc.Products.Update(c, id, req.input())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// @Summary Delete product
// @Tags products
// @Param id path int true "Product ID"
// @Success 204
// @Router /products/{id} [delete]
func (s *Server) deleteProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := s.svc.Products.Delete(c, id); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
