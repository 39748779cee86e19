package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/serviplan/agenda-api/internal/httperr"
	"github.com/serviplan/agenda-api/internal/models"
)

// Los operadores se administran en otro módulo; este solo los lista para el
// selector de agendas.
type OperadorHandler struct {
	db *gorm.DB
}

func NewOperadorHandler(db *gorm.DB) *OperadorHandler {
	return &OperadorHandler{db: db}
}

func (h *OperadorHandler) List(c *gin.Context) {
	var operadores []models.Operador
	if err := h.db.Order("nombre ASC, apellido ASC").Find(&operadores).Error; err != nil {
		httperr.Internal(c, "operador_list_failed", "Error al listar operadores.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"operadores": operadores})
}
