package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/altenburg/minierp/internal/domain/models"
)

// Handler exposes the product store over HTTP.
type Handler struct {
	store  *Store
	logger *zap.Logger
}

// NewHandler constructs the HTTP handler adapter.
func NewHandler(store *Store, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{store: store, logger: logger}
}

// List returns the full inventory.
func (h *Handler) List(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.List())
}

// Search returns the inventory scoped by the name query parameter.
func (h *Handler) Search(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.Search(c.Query("name")))
}

// Create validates and stores a new product.
func (h *Handler) Create(c *gin.Context) {
	var input models.ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("invalid create payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	if fields := validateInput(input); len(fields) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"errors": fields})
		return
	}

	created := h.store.Create(input)
	h.logger.Info("product created", zap.Int64("id", created.ID), zap.String("name", created.Name))
	c.JSON(http.StatusCreated, created)
}

// Update replaces an existing product wholesale.
func (h *Handler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}

	var input models.ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	if fields := validateInput(input); len(fields) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"errors": fields})
		return
	}

	updated, ok := h.store.Update(id, input)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}
	c.JSON(http.StatusOK, updated)
}

// Delete removes a product.
func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}

	if !h.store.Delete(id) {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}
	c.Status(http.StatusNoContent)
}

// Invoice renders the delivery-note PDF for the current inventory.
func (h *Handler) Invoice(c *gin.Context) {
	data, err := renderDeliveryNote(h.store.List())
	if err != nil {
		h.logger.Error("failed rendering delivery note", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate invoice"})
		return
	}

	c.Header("Content-Disposition", `attachment; filename=Lieferschein.pdf`)
	c.Data(http.StatusOK, "application/pdf", data)
}

func validateInput(input models.ProductInput) map[string]string {
	fields := make(map[string]string)
	if input.Name == "" {
		fields["name"] = "name must not be blank"
	}
	if input.Quantity < 0 {
		fields["quantity"] = "quantity must not be negative"
	}
	if input.Price <= 0 {
		fields["price"] = "price must be greater than zero"
	}
	return fields
}
