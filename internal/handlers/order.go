package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/printforge/printforge-backend/internal/logger"
	"github.com/printforge/printforge-backend/internal/repos"
	"github.com/printforge/printforge-backend/internal/services"
)

type OrderHandler struct {
	log          *logger.Logger
	orderService services.OrderService
}

func NewOrderHandler(log *logger.Logger, orderService services.OrderService) *OrderHandler {
	return &OrderHandler{
		log:          log.With("handler", "OrderHandler"),
		orderService: orderService,
	}
}

// createOrderRequest accepts three link formats for backwards compatibility:
// a single modelLink, a plain modelLinks list, or modelLinksWithCopies. The
// richest format present wins; the rest are ignored.
type createOrderRequest struct {
	ID                   string               `json:"id"`
	UserID               string               `json:"userId"`
	UserName             string               `json:"userName"`
	ModelLink            string               `json:"modelLink"`
	ModelLinks           []string             `json:"modelLinks"`
	ModelLinksWithCopies []services.LinkInput `json:"modelLinksWithCopies"`
	Colors               []string             `json:"colors"`
	Comment              *string              `json:"comment"`
	Status               string               `json:"status"`
}

func (req *createOrderRequest) links() []services.LinkInput {
	switch {
	case len(req.ModelLinksWithCopies) > 0:
		return req.ModelLinksWithCopies
	case len(req.ModelLinks) > 0:
		links := make([]services.LinkInput, 0, len(req.ModelLinks))
		for _, url := range req.ModelLinks {
			links = append(links, services.LinkInput{URL: url, Copies: 1})
		}
		return links
	case req.ModelLink != "":
		return []services.LinkInput{{URL: req.ModelLink, Copies: 1}}
	}
	return nil
}

type updateOrderRequest struct {
	ModelLink *string  `json:"modelLink"`
	Comment   *string  `json:"comment"`
	Status    *string  `json:"status"`
	Colors    []string `json:"colors"`
}

type markPrintedRequest struct {
	Printed *bool `json:"printed"`
}

// POST /api/orders
func (oh *OrderHandler) Create(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	err := oh.orderService.Create(c.Request.Context(), services.CreateOrderInput{
		ID:       req.ID,
		UserID:   req.UserID,
		UserName: req.UserName,
		Links:    req.links(),
		Colors:   req.Colors,
		Comment:  req.Comment,
		Status:   req.Status,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, req.ID)
}

// GET /api/orders?user_id=...&status=...
func (oh *OrderHandler) List(c *gin.Context) {
	filter := repos.OrderFilter{
		UserID: c.Query("user_id"),
		Status: c.Query("status"),
	}
	orders, err := oh.orderService.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

// GET /api/orders/:id
func (oh *OrderHandler) Get(c *gin.Context) {
	order, err := oh.orderService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// PUT /api/orders/:id
func (oh *OrderHandler) Update(c *gin.Context) {
	var req updateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	err := oh.orderService.Update(c.Request.Context(), c.Param("id"), services.UpdateOrderInput{
		ModelLink: req.ModelLink,
		Comment:   req.Comment,
		Status:    req.Status,
		Colors:    req.Colors,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// DELETE /api/orders/:id
func (oh *OrderHandler) Delete(c *gin.Context) {
	if err := oh.orderService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// PATCH /api/orders/:id/links/:linkId/printed
func (oh *OrderHandler) MarkLinkPrinted(c *gin.Context) {
	linkID, err := strconv.ParseUint(c.Param("linkId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid link id"})
		return
	}
	var req markPrintedRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Printed == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "printed is required"})
		return
	}
	if err := oh.orderService.MarkLinkPrinted(c.Request.Context(), c.Param("id"), uint(linkID), *req.Printed); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
