package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/serviplan/agenda-api/internal/audit"
	"github.com/serviplan/agenda-api/internal/cache"
	"github.com/serviplan/agenda-api/internal/httperr"
	"github.com/serviplan/agenda-api/internal/models"
)

// ======================================================
// HANDLER — agendas
// ======================================================

type AgendaHandler struct {
	db    *gorm.DB
	cache *cache.CalendarCache
	audit *audit.Dispatcher
}

func NewAgendaHandler(db *gorm.DB, cache *cache.CalendarCache, audit *audit.Dispatcher) *AgendaHandler {
	return &AgendaHandler{db: db, cache: cache, audit: audit}
}

// --------- Requests ---------

type CreateAgendaRequest struct {
	OperadorID  uint   `json:"operador_id" binding:"required"`
	Nombre      string `json:"nombre" binding:"required"`
	Descripcion string `json:"descripcion"`
}

type UpdateAgendaRequest struct {
	OperadorID  *uint   `json:"operador_id"`
	Nombre      *string `json:"nombre"`
	Descripcion *string `json:"descripcion"`
	Activa      *bool   `json:"activa"`
}

// --------- Handlers ---------

func (h *AgendaHandler) List(c *gin.Context) {
	var agendas []models.Agenda
	if err := h.db.
		Preload("Operador").
		Order("nombre ASC").
		Find(&agendas).Error; err != nil {

		httperr.Internal(c, "agenda_list_failed", "Error al listar agendas.")
		return
	}

	type agendaConConteo struct {
		models.Agenda
		HorariosCount int64 `json:"horarios_count"`
	}

	out := make([]agendaConConteo, 0, len(agendas))
	for _, a := range agendas {
		var count int64
		h.db.Model(&models.Horario{}).
			Where("agenda_id = ? AND activo = ?", a.ID, true).
			Count(&count)

		out = append(out, agendaConConteo{Agenda: a, HorariosCount: count})
	}

	c.JSON(http.StatusOK, gin.H{"agendas": out})
}

func (h *AgendaHandler) Get(c *gin.Context) {
	id := parseIDParam(c, "agendaId")
	if id == 0 {
		httperr.BadRequest(c, "validation_error", "Id de agenda inválido.")
		return
	}

	var agenda models.Agenda
	if err := h.db.Preload("Operador").Preload("Horarios").First(&agenda, id).Error; err != nil {
		httperr.NotFound(c, "agenda_not_found", "Agenda no encontrada.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"agenda": agenda})
}

func (h *AgendaHandler) Create(c *gin.Context) {
	var req CreateAgendaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "validation_error", "Datos inválidos.")
		return
	}

	var operador models.Operador
	if err := h.db.First(&operador, req.OperadorID).Error; err != nil {
		httperr.NotFound(c, "operador_not_found", "Operador no encontrado.")
		return
	}

	agenda := models.Agenda{
		OperadorID:  req.OperadorID,
		Nombre:      req.Nombre,
		Descripcion: req.Descripcion,
		Activa:      true,
	}

	if err := h.db.Create(&agenda).Error; err != nil {
		httperr.Internal(c, "agenda_create_failed", "Error al crear la agenda.")
		return
	}

	userID := currentUserID(c)
	h.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "agenda_creada",
		Entity:   "agenda",
		EntityID: &agenda.ID,
	})

	agenda.Operador = operador
	c.JSON(http.StatusCreated, gin.H{"agenda": agenda})
}

func (h *AgendaHandler) Update(c *gin.Context) {
	id := parseIDParam(c, "agendaId")
	if id == 0 {
		httperr.BadRequest(c, "validation_error", "Id de agenda inválido.")
		return
	}

	var req UpdateAgendaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "validation_error", "Datos inválidos.")
		return
	}

	var agenda models.Agenda
	if err := h.db.First(&agenda, id).Error; err != nil {
		httperr.NotFound(c, "agenda_not_found", "Agenda no encontrada.")
		return
	}

	if req.OperadorID != nil {
		var operador models.Operador
		if err := h.db.First(&operador, *req.OperadorID).Error; err != nil {
			httperr.NotFound(c, "operador_not_found", "Operador no encontrado.")
			return
		}
		agenda.OperadorID = *req.OperadorID
	}
	if req.Nombre != nil {
		agenda.Nombre = *req.Nombre
	}
	if req.Descripcion != nil {
		agenda.Descripcion = *req.Descripcion
	}
	if req.Activa != nil {
		agenda.Activa = *req.Activa
	}

	if err := h.db.Save(&agenda).Error; err != nil {
		httperr.Internal(c, "agenda_update_failed", "Error al actualizar la agenda.")
		return
	}

	userID := currentUserID(c)
	h.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "agenda_actualizada",
		Entity:   "agenda",
		EntityID: &agenda.ID,
	})

	h.cache.InvalidateAgenda(c.Request.Context(), agenda.ID)

	c.JSON(http.StatusOK, gin.H{"agenda": agenda})
}

func (h *AgendaHandler) Delete(c *gin.Context) {
	id := parseIDParam(c, "agendaId")
	if id == 0 {
		httperr.BadRequest(c, "validation_error", "Id de agenda inválido.")
		return
	}

	res := h.db.Delete(&models.Agenda{}, id)
	if res.Error != nil {
		httperr.Internal(c, "agenda_delete_failed", "Error al eliminar la agenda.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "agenda_not_found", "Agenda no encontrada.")
		return
	}

	userID := currentUserID(c)
	h.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "agenda_eliminada",
		Entity:   "agenda",
		EntityID: &id,
	})

	h.cache.InvalidateAgenda(c.Request.Context(), id)

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
