package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/serviplan/agenda-api/internal/httperr"
	"github.com/serviplan/agenda-api/internal/models"
	uccita "github.com/serviplan/agenda-api/internal/usecase/cita"
)

// ======================================================
// HANDLER — citas
// ======================================================

type CitaHandler struct {
	db     *gorm.DB
	crear  *uccita.CreateCita
	editar *uccita.UpdateCita
	borrar *uccita.DeleteCita
}

func NewCitaHandler(
	db *gorm.DB,
	crear *uccita.CreateCita,
	editar *uccita.UpdateCita,
	borrar *uccita.DeleteCita,
) *CitaHandler {
	return &CitaHandler{db: db, crear: crear, editar: editar, borrar: borrar}
}

// --------- Requests ---------

type CreateCitaRequest struct {
	HorarioID uint `json:"horario_id" binding:"required"`

	// tal como lo entregó la vista resuelta: distingue si horario_id es de un
	// horario base o de un horario específico
	EsEspecifico bool `json:"es_especifico"`

	Fecha           string `json:"fecha" binding:"required"`
	ClienteNombre   string `json:"cliente_nombre" binding:"required"`
	ClienteTelefono string `json:"cliente_telefono"`
	ClienteEmail    string `json:"cliente_email"`
	Servicio        string `json:"servicio" binding:"required"`
	Notas           string `json:"notas"`
}

type UpdateCitaRequest struct {
	ClienteNombre   string `json:"cliente_nombre"`
	ClienteTelefono string `json:"cliente_telefono"`
	ClienteEmail    string `json:"cliente_email"`
	Servicio        string `json:"servicio"`
	Estado          string `json:"estado"`
	Notas           string `json:"notas"`
}

// --------- Handlers ---------

func (h *CitaHandler) List(c *gin.Context) {
	q := h.db.Model(&models.Cita{})

	if agendaID := c.Query("agenda_id"); agendaID != "" {
		q = q.Where("agenda_id = ?", agendaID)
	}
	if desde := c.Query("desde"); desde != "" {
		q = q.Where("fecha >= ?", desde)
	}
	if hasta := c.Query("hasta"); hasta != "" {
		q = q.Where("fecha <= ?", hasta)
	}
	if estado := c.Query("estado"); estado != "" {
		q = q.Where("estado = ?", estado)
	}

	var citas []models.Cita
	if err := q.Order("fecha ASC, hora_inicio ASC").Find(&citas).Error; err != nil {
		httperr.Internal(c, "cita_list_failed", "Error al listar citas.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"citas": citas})
}

func (h *CitaHandler) Create(c *gin.Context) {
	var req CreateCitaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "validation_error", "Datos inválidos.")
		return
	}

	nueva, err := h.crear.Execute(c.Request.Context(), currentUserID(c), uccita.CreateInput{
		HorarioID:       req.HorarioID,
		EsEspecifico:    req.EsEspecifico,
		Fecha:           req.Fecha,
		ClienteNombre:   req.ClienteNombre,
		ClienteTelefono: req.ClienteTelefono,
		ClienteEmail:    req.ClienteEmail,
		Servicio:        req.Servicio,
		Notas:           req.Notas,
	})
	if err != nil {
		if !httperr.WriteBusiness(c, err) {
			httperr.Internal(c, "cita_create_failed", "Error al crear la cita.")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"cita": nueva})
}

func (h *CitaHandler) Update(c *gin.Context) {
	id := parseIDParam(c, "citaId")
	if id == 0 {
		httperr.BadRequest(c, "validation_error", "Id de cita inválido.")
		return
	}

	var req UpdateCitaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "validation_error", "Datos inválidos.")
		return
	}

	actualizada, err := h.editar.Execute(
		c.Request.Context(),
		currentUserID(c),
		currentUserRole(c),
		id,
		uccita.UpdateInput{
			ClienteNombre:   req.ClienteNombre,
			ClienteTelefono: req.ClienteTelefono,
			ClienteEmail:    req.ClienteEmail,
			Servicio:        req.Servicio,
			Estado:          req.Estado,
			Notas:           req.Notas,
		},
	)
	if err != nil {
		if !httperr.WriteBusiness(c, err) {
			httperr.Internal(c, "cita_update_failed", "Error al actualizar la cita.")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"cita": actualizada})
}

func (h *CitaHandler) Delete(c *gin.Context) {
	id := parseIDParam(c, "citaId")
	if id == 0 {
		httperr.BadRequest(c, "validation_error", "Id de cita inválido.")
		return
	}

	if err := h.borrar.Execute(c.Request.Context(), currentUserID(c), currentUserRole(c), id); err != nil {
		if !httperr.WriteBusiness(c, err) {
			httperr.Internal(c, "cita_delete_failed", "Error al eliminar la cita.")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
