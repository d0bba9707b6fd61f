package middleware

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

const (
	ContextTenantID = "tenantID"
	ContextTenant   = "tenant"
)

// TenantContext resolve exatamente um tenant para a request, nesta ordem:
// (a) tenantId do token verificado; (b) subdomínio; (c) header X-Tenant-ID
// (server-to-server/webhook). Tenant não resolvido ou não ativo é barreira
// dura: nada abaixo roda sem contexto de tenant.
func TenantContext(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {

		var tenant *models.Tenant

		// (a) claim do token
		if v, ok := c.Get(ContextClaimTenantID); ok {
			if id, ok := v.(uint); ok && id != 0 {
				tenant = loadTenantByID(db, id)
			}
		}

		// (b) subdomínio
		if tenant == nil {
			if slug := subdomain(c.Request.Host); slug != "" {
				var t models.Tenant
				err := db.Where("slug = ?", slug).First(&t).Error
				if err == nil {
					tenant = &t
				} else if !errors.Is(err, gorm.ErrRecordNotFound) {
					httperr.Internal(c, "tenant_lookup_failed", "Erro interno.")
					c.Abort()
					return
				}
			}
		}

		// (c) header explícito
		if tenant == nil {
			if raw := c.GetHeader("X-Tenant-ID"); raw != "" {
				if id, err := strconv.ParseUint(raw, 10, 32); err == nil {
					tenant = loadTenantByID(db, uint(id))
				}
			}
		}

		if tenant == nil {
			httperr.Unauthorized(c, httperr.CodeTenantNotIdentified, "Tenant não identificado.")
			c.Abort()
			return
		}

		if tenant.Status != models.TenantStatusActive {
			httperr.Forbidden(
				c,
				httperr.CodeTenantSuspended,
				"Conta suspensa: "+tenant.Status,
			)
			c.Abort()
			return
		}

		c.Set(ContextTenantID, tenant.ID)
		c.Set(ContextTenant, tenant)

		c.Next()
	}
}

func loadTenantByID(db *gorm.DB, id uint) *models.Tenant {
	var t models.Tenant
	if err := db.First(&t, id).Error; err != nil {
		return nil
	}
	return &t
}

// subdomain extrai o primeiro rótulo do host ("bella.agenda.app" → "bella").
// Hosts sem subdomínio (localhost, IP, domínio raiz) não resolvem tenant.
func subdomain(host string) string {
	if i := strings.IndexByte(host, ':'); i >= 0 {
		host = host[:i]
	}

	parts := strings.Split(host, ".")
	if len(parts) < 3 {
		return ""
	}

	first := parts[0]
	if first == "www" || first == "api" || first == "app" {
		return ""
	}
	return first
}
