package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/phone"
)

type CustomerHandler struct {
	db *gorm.DB
}

func NewCustomerHandler(db *gorm.DB) *CustomerHandler {
	return &CustomerHandler{db: db}
}

// ======================================================
// LIST CUSTOMERS (PAINEL)
// ======================================================
func (h *CustomerHandler) List(c *gin.Context) {
	tenant := tenantFromCtx(c)

	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	q := h.db.Where("tenant_id = ?", tenant.ID)

	if query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(name) LIKE ? OR phone LIKE ?", like, like)
	}

	var customers []models.Customer
	if err := q.
		Order("created_at DESC").
		Find(&customers).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "failed_to_list_customers",
		})
		return
	}

	c.JSON(http.StatusOK, customers)
}

// ======================================================
// GET CUSTOMER BY PHONE (PAINEL)
// ======================================================
func (h *CustomerHandler) GetByPhone(c *gin.Context) {
	tenant := tenantFromCtx(c)

	normalized, err := phone.Normalize(c.Query("phone"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_phone"})
		return
	}

	var customer models.Customer
	if err := h.db.
		Where("tenant_id = ? AND phone = ?", tenant.ID, normalized).
		First(&customer).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "customer_not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_customer"})
		return
	}

	c.JSON(http.StatusOK, customer)
}
