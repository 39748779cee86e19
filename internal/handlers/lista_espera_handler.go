package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/serviplan/agenda-api/internal/audit"
	domain "github.com/serviplan/agenda-api/internal/domain/schedule"
	"github.com/serviplan/agenda-api/internal/httperr"
	"github.com/serviplan/agenda-api/internal/models"
	uclista "github.com/serviplan/agenda-api/internal/usecase/listaespera"
)

// ======================================================
// HANDLER — lista de espera
// ======================================================

type ListaEsperaHandler struct {
	db      *gorm.DB
	audit   *audit.Dispatcher
	asignar *uclista.AsignarCita
}

func NewListaEsperaHandler(
	db *gorm.DB,
	audit *audit.Dispatcher,
	asignar *uclista.AsignarCita,
) *ListaEsperaHandler {
	return &ListaEsperaHandler{db: db, audit: audit, asignar: asignar}
}

// --------- Requests ---------

type CreatePersonaRequest struct {
	Nombre   string `json:"nombre" binding:"required"`
	Servicio string `json:"servicio" binding:"required"`
	Telefono string `json:"telefono"`
	Notas    string `json:"notas"`
	Fecha    string `json:"fecha" binding:"required"`
}

type UpdatePersonaRequest struct {
	Nombre   string `json:"nombre"`
	Servicio string `json:"servicio"`
	Telefono string `json:"telefono"`
	Notas    string `json:"notas"`
	Fecha    string `json:"fecha"`
}

type AsignarCitaRequest struct {
	PersonaID uint `json:"persona_id" binding:"required"`

	// opcional: sin horario se toma el primer espacio libre de la fecha; la
	// bandera acompaña al id tal como lo entregó la vista resuelta
	HorarioID    uint `json:"horario_id"`
	EsEspecifico bool `json:"es_especifico"`
}

// --------- Handlers ---------

func (h *ListaEsperaHandler) List(c *gin.Context) {
	q := h.db.Model(&models.PersonaListaEspera{})

	if fecha := c.Query("fecha"); fecha != "" {
		q = q.Where("fecha = ?", fecha)
	}

	var personas []models.PersonaListaEspera
	if err := q.Order("fecha ASC, created_at ASC").Find(&personas).Error; err != nil {
		httperr.Internal(c, "lista_espera_list_failed", "Error al listar la lista de espera.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"lista_espera": personas})
}

func (h *ListaEsperaHandler) Create(c *gin.Context) {
	var req CreatePersonaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "validation_error", "Datos inválidos.")
		return
	}

	if !domain.FechaValida(req.Fecha) {
		httperr.BadRequest(c, "validation_error", "Fecha inválida.")
		return
	}

	persona := models.PersonaListaEspera{
		Nombre:   req.Nombre,
		Servicio: req.Servicio,
		Telefono: req.Telefono,
		Notas:    req.Notas,
		Fecha:    req.Fecha,
	}

	if err := h.db.Create(&persona).Error; err != nil {
		httperr.Internal(c, "lista_espera_create_failed", "Error al registrar en la lista de espera.")
		return
	}

	userID := currentUserID(c)
	h.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "lista_espera_registrada",
		Entity:   "lista_espera",
		EntityID: &persona.ID,
	})

	c.JSON(http.StatusCreated, gin.H{"persona": persona})
}

func (h *ListaEsperaHandler) Update(c *gin.Context) {
	id := parseIDParam(c, "personaId")
	if id == 0 {
		httperr.BadRequest(c, "validation_error", "Id inválido.")
		return
	}

	var req UpdatePersonaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "validation_error", "Datos inválidos.")
		return
	}

	var persona models.PersonaListaEspera
	if err := h.db.First(&persona, id).Error; err != nil {
		httperr.NotFound(c, "persona_not_found", "Persona no encontrada en la lista de espera.")
		return
	}

	if req.Nombre != "" {
		persona.Nombre = req.Nombre
	}
	if req.Servicio != "" {
		persona.Servicio = req.Servicio
	}
	if req.Telefono != "" {
		persona.Telefono = req.Telefono
	}
	if req.Notas != "" {
		persona.Notas = req.Notas
	}
	if req.Fecha != "" {
		if !domain.FechaValida(req.Fecha) {
			httperr.BadRequest(c, "validation_error", "Fecha inválida.")
			return
		}
		persona.Fecha = req.Fecha
	}

	if err := h.db.Save(&persona).Error; err != nil {
		httperr.Internal(c, "lista_espera_update_failed", "Error al actualizar la lista de espera.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"persona": persona})
}

func (h *ListaEsperaHandler) Delete(c *gin.Context) {
	id := parseIDParam(c, "personaId")
	if id == 0 {
		httperr.BadRequest(c, "validation_error", "Id inválido.")
		return
	}

	res := h.db.Delete(&models.PersonaListaEspera{}, id)
	if res.Error != nil {
		httperr.Internal(c, "lista_espera_delete_failed", "Error al eliminar de la lista de espera.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "persona_not_found", "Persona no encontrada en la lista de espera.")
		return
	}

	userID := currentUserID(c)
	h.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "lista_espera_eliminada",
		Entity:   "lista_espera",
		EntityID: &id,
	})

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// POST /agenda/lista-espera/asignar-cita
func (h *ListaEsperaHandler) AsignarCita(c *gin.Context) {
	var req AsignarCitaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "validation_error", "Datos inválidos.")
		return
	}

	nueva, err := h.asignar.Execute(c.Request.Context(), currentUserID(c), uclista.AsignarInput{
		PersonaID:    req.PersonaID,
		HorarioID:    req.HorarioID,
		EsEspecifico: req.EsEspecifico,
	})
	if err != nil {
		if !httperr.WriteBusiness(c, err) {
			httperr.Internal(c, "asignar_cita_failed", "Error al asignar la cita.")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"cita": nueva})
}
