package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"farmatrack/internal/service"
)

// updateStockReq stock не проверяется на >= 0: update доверяет клиенту
type updateStockReq struct {
	Name  string `json:"name" binding:"required,notblank"`
	Stock *int   `json:"stock" binding:"required"`
}

func (updateStockReq) messages() map[string]string {
	return map[string]string{
		"Name.required":  "Name is required",
		"Name.notblank":  "Name is required",
		"Stock.required": "Stock is required",
	}
}

type adjustStockReq struct {
	Delta *int `json:"delta" binding:"required"`
}

func (adjustStockReq) messages() map[string]string {
	return map[string]string{"Delta.required": "Delta is required"}
}

// @Summary List MR stock ledger
// @Tags mr-stock
// @Produce json
// @Success 200 {array} domain.MrStockItem
// @Router /mr-stock [get]
func (s *Server) listStock(c *gin.Context) {
	list, err := s.svc.Stock.List(c)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// @Summary Get stock item by product code
// @Tags mr-stock
// @Produce json
// @Param id path string true "Product code"
// @Success 200 {object} domain.MrStockItem
// @Failure 400 {object} apiError
// @Router /mr-stock/{id} [get]
func (s *Server) getStock(c *gin.Context) {
	item, err := s.svc.Stock.Get(c, c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// @Summary Overwrite stock item name and quantity
// @Tags mr-stock
// @Accept json
// @Produce json
// @Param id path string true "Product code"
// @Param input body updateStockReq true "Stock item"
// @Success 200 {object} domain.MrStockItem
// @Failure 400 {object} apiError
// @Router /mr-stock/{id} [put]
func (s *Server) updateStock(c *gin.Context) {
	var req updateStockReq
	if !bind(c, &req) {
		return
	}
	item, err := s.svc.Stock.Update(c, c.Param("id"), service.StockInput{Name: req.Name, Stock: *req.Stock})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// @Summary Adjust stock by delta; rejects a negative result
// @Tags mr-stock
// @Accept json
// @Produce json
// @Param id path string true "Product code"
// @Param input body adjustStockReq true "Delta"
// @Success 200 {object} domain.MrStockItem
// @Failure 400 {object} apiError
// @Router /mr-stock/{id}/adjust [post]
func (s *Server) adjustStock(c *gin.Context) {
	var req adjustStockReq
	if !bind(c, &req) {
		return
	}
	item, err := s.svc.Stock.AdjustStock(c, c.Param("id"), *req.Delta)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// @Summary Seed the ledger with the starter items if it is empty
// @Tags mr-stock
// @Produce json
// @Success 200 {array} domain.MrStockItem
// @Router /mr-stock/seed [post]
func (s *Server) seedStock(c *gin.Context) {
	if _, err := s.svc.Stock.Seed(c); err != nil {
		fail(c, err)
		return
	}
	s.listStock(c)
}
