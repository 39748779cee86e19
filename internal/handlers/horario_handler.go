package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/serviplan/agenda-api/internal/audit"
	"github.com/serviplan/agenda-api/internal/cache"
	domain "github.com/serviplan/agenda-api/internal/domain/schedule"
	"github.com/serviplan/agenda-api/internal/httperr"
	"github.com/serviplan/agenda-api/internal/models"
)

// ======================================================
// HANDLER — horarios base (plantilla semanal recurrente)
// ======================================================

type HorarioHandler struct {
	db    *gorm.DB
	cache *cache.CalendarCache
	audit *audit.Dispatcher
}

func NewHorarioHandler(db *gorm.DB, cache *cache.CalendarCache, audit *audit.Dispatcher) *HorarioHandler {
	return &HorarioHandler{db: db, cache: cache, audit: audit}
}

// --------- Requests ---------

// CreateHorarioRequest crea un bloque recurrente (dia_semana) o un horario
// personalizado de un solo día (fecha); exactamente uno de los dos.
type CreateHorarioRequest struct {
	AgendaID   uint   `json:"agenda_id" binding:"required"`
	Titulo     string `json:"titulo" binding:"required"`
	HoraInicio string `json:"hora_inicio" binding:"required"`
	HoraFin    string `json:"hora_fin" binding:"required"`
	DiaSemana  string `json:"dia_semana"`
	Fecha      string `json:"fecha"`
	Color      string `json:"color"`
	Notas      string `json:"notas"`
}

type UpdateHorarioRequest struct {
	Titulo     *string `json:"titulo"`
	HoraInicio *string `json:"hora_inicio"`
	HoraFin    *string `json:"hora_fin"`
	DiaSemana  *string `json:"dia_semana"`
	Color      *string `json:"color"`
	Notas      *string `json:"notas"`
	Activo     *bool   `json:"activo"`
}

// --------- Handlers ---------

func (h *HorarioHandler) ListByAgenda(c *gin.Context) {
	agendaID := parseIDParam(c, "agendaId")
	if agendaID == 0 {
		httperr.BadRequest(c, "validation_error", "Id de agenda inválido.")
		return
	}

	var horarios []models.Horario
	if err := h.db.
		Where("agenda_id = ?", agendaID).
		Order("dia_semana ASC, hora_inicio ASC").
		Find(&horarios).Error; err != nil {

		httperr.Internal(c, "horario_list_failed", "Error al listar horarios.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"horarios": horarios})
}

func (h *HorarioHandler) Create(c *gin.Context) {
	var req CreateHorarioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "validation_error", "Datos inválidos.")
		return
	}

	if (req.DiaSemana == "") == (req.Fecha == "") {
		httperr.BadRequest(c, "validation_error", "Se requiere dia_semana o fecha, no ambos.")
		return
	}
	if req.DiaSemana != "" && !domain.DiaSemana(req.DiaSemana).Valido() {
		httperr.BadRequest(c, "validation_error", "Día de la semana inválido.")
		return
	}
	if req.Fecha != "" && !domain.FechaValida(req.Fecha) {
		httperr.BadRequest(c, "validation_error", "Fecha inválida.")
		return
	}

	ini, fin, err := domain.ValidarRangoHoras(req.HoraInicio, req.HoraFin)
	if err != nil {
		httperr.WriteBusiness(c, err)
		return
	}

	var agenda models.Agenda
	if err := h.db.First(&agenda, req.AgendaID).Error; err != nil {
		httperr.NotFound(c, "agenda_not_found", "Agenda no encontrada.")
		return
	}

	horario := models.Horario{
		AgendaID:   req.AgendaID,
		Titulo:     req.Titulo,
		HoraInicio: ini,
		HoraFin:    fin,
		DiaSemana:  req.DiaSemana,
		Fecha:      req.Fecha,
		Color:      req.Color,
		Notas:      req.Notas,
		Activo:     true,
	}

	if err := h.db.Create(&horario).Error; err != nil {
		httperr.Internal(c, "horario_create_failed", "Error al crear el horario.")
		return
	}

	userID := currentUserID(c)
	h.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "horario_creado",
		Entity:   "horario",
		EntityID: &horario.ID,
	})

	h.cache.InvalidateAgenda(c.Request.Context(), horario.AgendaID)

	c.JSON(http.StatusCreated, gin.H{"horario": horario})
}

// Update modifica la plantilla recurrente. Afecta todas las fechas futuras
// salvo las que tienen horario específico: la excepción conserva su snapshot.
func (h *HorarioHandler) Update(c *gin.Context) {
	id := parseIDParam(c, "horarioId")
	if id == 0 {
		httperr.BadRequest(c, "validation_error", "Id de horario inválido.")
		return
	}

	var req UpdateHorarioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "validation_error", "Datos inválidos.")
		return
	}

	var horario models.Horario
	if err := h.db.First(&horario, id).Error; err != nil {
		httperr.NotFound(c, "horario_not_found", "Horario no encontrado.")
		return
	}

	if req.Titulo != nil {
		horario.Titulo = *req.Titulo
	}
	if req.HoraInicio != nil {
		horario.HoraInicio = *req.HoraInicio
	}
	if req.HoraFin != nil {
		horario.HoraFin = *req.HoraFin
	}
	if req.DiaSemana != nil {
		if !domain.DiaSemana(*req.DiaSemana).Valido() {
			httperr.BadRequest(c, "validation_error", "Día de la semana inválido.")
			return
		}
		horario.DiaSemana = *req.DiaSemana
	}
	if req.Color != nil {
		horario.Color = *req.Color
	}
	if req.Notas != nil {
		horario.Notas = *req.Notas
	}
	if req.Activo != nil {
		horario.Activo = *req.Activo
	}

	ini, fin, err := domain.ValidarRangoHoras(horario.HoraInicio, horario.HoraFin)
	if err != nil {
		httperr.WriteBusiness(c, err)
		return
	}
	horario.HoraInicio = ini
	horario.HoraFin = fin

	if err := h.db.Save(&horario).Error; err != nil {
		httperr.Internal(c, "horario_update_failed", "Error al actualizar el horario.")
		return
	}

	userID := currentUserID(c)
	h.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "horario_actualizado",
		Entity:   "horario",
		EntityID: &horario.ID,
	})

	h.cache.InvalidateAgenda(c.Request.Context(), horario.AgendaID)

	c.JSON(http.StatusOK, gin.H{"horario": horario})
}

// Delete borra la plantilla. Las excepciones ancladas a ella sobreviven y
// siguen rigiendo sus fechas.
func (h *HorarioHandler) Delete(c *gin.Context) {
	id := parseIDParam(c, "horarioId")
	if id == 0 {
		httperr.BadRequest(c, "validation_error", "Id de horario inválido.")
		return
	}

	var horario models.Horario
	if err := h.db.First(&horario, id).Error; err != nil {
		httperr.NotFound(c, "horario_not_found", "Horario no encontrado.")
		return
	}

	if err := h.db.Delete(&horario).Error; err != nil {
		httperr.Internal(c, "horario_delete_failed", "Error al eliminar el horario.")
		return
	}

	userID := currentUserID(c)
	h.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "horario_eliminado",
		Entity:   "horario",
		EntityID: &id,
	})

	h.cache.InvalidateAgenda(c.Request.Context(), horario.AgendaID)

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
