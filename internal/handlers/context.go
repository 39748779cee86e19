package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/serviplan/agenda-api/internal/middleware"
)

func currentUserID(c *gin.Context) uint {
	if v, ok := c.Get(middleware.ContextUserID); ok {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}

func currentUserRole(c *gin.Context) string {
	if v, ok := c.Get(middleware.ContextUserRole); ok {
		if role, ok := v.(string); ok {
			return role
		}
	}
	return ""
}

// parseIDParam lee un parámetro numérico de ruta; 0 indica valor inválido.
func parseIDParam(c *gin.Context, name string) uint {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0
	}
	return uint(id)
}
