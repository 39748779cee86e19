package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/serviplan/agenda-api/internal/httperr"
	"github.com/serviplan/agenda-api/internal/models"
	ucagenda "github.com/serviplan/agenda-api/internal/usecase/agenda"
)

// ======================================================
// HANDLER — horarios específicos (excepciones por fecha)
// ======================================================

type HorarioEspecificoHandler struct {
	db        *gorm.DB
	crear     *ucagenda.CrearHorarioEspecifico
	modificar *ucagenda.ModificarHorarioEspecifico
	eliminar  *ucagenda.EliminarHorarioEspecifico
}

func NewHorarioEspecificoHandler(
	db *gorm.DB,
	crear *ucagenda.CrearHorarioEspecifico,
	modificar *ucagenda.ModificarHorarioEspecifico,
	eliminar *ucagenda.EliminarHorarioEspecifico,
) *HorarioEspecificoHandler {
	return &HorarioEspecificoHandler{
		db:        db,
		crear:     crear,
		modificar: modificar,
		eliminar:  eliminar,
	}
}

// --------- Requests ---------

type CreateHorarioEspecificoRequest struct {
	HorarioBaseID uint   `json:"horario_base_id" binding:"required"`
	Fecha         string `json:"fecha" binding:"required"`

	// opcionales: lo no enviado se hereda del horario base
	Titulo     string `json:"titulo"`
	HoraInicio string `json:"hora_inicio"`
	HoraFin    string `json:"hora_fin"`
	Color      string `json:"color"`
	Notas      string `json:"notas"`
	Activo     *bool  `json:"activo"`
}

type UpdateHorarioEspecificoRequest struct {
	Titulo     string `json:"titulo"`
	HoraInicio string `json:"hora_inicio"`
	HoraFin    string `json:"hora_fin"`
	Color      string `json:"color"`
	Notas      string `json:"notas"`
	Activo     *bool  `json:"activo"`
}

// --------- Handlers ---------

func (h *HorarioEspecificoHandler) ListByAgenda(c *gin.Context) {
	agendaID := parseIDParam(c, "agendaId")
	if agendaID == 0 {
		httperr.BadRequest(c, "validation_error", "Id de agenda inválido.")
		return
	}

	q := h.db.Where("agenda_id = ?", agendaID)

	if desde := c.Query("desde"); desde != "" {
		q = q.Where("fecha >= ?", desde)
	}
	if hasta := c.Query("hasta"); hasta != "" {
		q = q.Where("fecha <= ?", hasta)
	}

	var especificos []models.HorarioEspecifico
	if err := q.Order("fecha ASC, hora_inicio ASC").Find(&especificos).Error; err != nil {
		httperr.Internal(c, "override_list_failed", "Error al listar horarios específicos.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"horarios_especificos": especificos})
}

func (h *HorarioEspecificoHandler) Create(c *gin.Context) {
	var req CreateHorarioEspecificoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "validation_error", "Datos inválidos.")
		return
	}

	esp, err := h.crear.Execute(
		c.Request.Context(),
		currentUserID(c),
		req.HorarioBaseID,
		req.Fecha,
		ucagenda.CamposOcurrencia{
			Titulo:     req.Titulo,
			HoraInicio: req.HoraInicio,
			HoraFin:    req.HoraFin,
			Color:      req.Color,
			Notas:      req.Notas,
			Activo:     req.Activo,
		},
	)
	if err != nil {
		if !httperr.WriteBusiness(c, err) {
			httperr.Internal(c, "override_create_failed", "Error al crear el horario específico.")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"horario_especifico": esp})
}

func (h *HorarioEspecificoHandler) Update(c *gin.Context) {
	id := parseIDParam(c, "horarioEspecificoId")
	if id == 0 {
		httperr.BadRequest(c, "validation_error", "Id inválido.")
		return
	}

	var req UpdateHorarioEspecificoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "validation_error", "Datos inválidos.")
		return
	}

	esp, err := h.modificar.Execute(
		c.Request.Context(),
		currentUserID(c),
		id,
		ucagenda.CamposOcurrencia{
			Titulo:     req.Titulo,
			HoraInicio: req.HoraInicio,
			HoraFin:    req.HoraFin,
			Color:      req.Color,
			Notas:      req.Notas,
			Activo:     req.Activo,
		},
	)
	if err != nil {
		if !httperr.WriteBusiness(c, err) {
			httperr.Internal(c, "override_update_failed", "Error al actualizar el horario específico.")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"horario_especifico": esp})
}

func (h *HorarioEspecificoHandler) Delete(c *gin.Context) {
	id := parseIDParam(c, "horarioEspecificoId")
	if id == 0 {
		httperr.BadRequest(c, "validation_error", "Id inválido.")
		return
	}

	if err := h.eliminar.Execute(c.Request.Context(), currentUserID(c), id); err != nil {
		if !httperr.WriteBusiness(c, err) {
			httperr.Internal(c, "override_delete_failed", "Error al eliminar el horario específico.")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
