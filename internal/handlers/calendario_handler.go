package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/serviplan/agenda-api/internal/httperr"
	"github.com/serviplan/agenda-api/internal/timezone"
	ucagenda "github.com/serviplan/agenda-api/internal/usecase/agenda"
)

// ======================================================
// HANDLER — vistas resueltas y mutaciones de ocurrencia
// ======================================================

type CalendarioHandler struct {
	calendario *ucagenda.ObtenerCalendario
	espacios   *ucagenda.ConsultarEspacios
	tiempoReal *ucagenda.DisponibilidadTiempoReal
	editar     *ucagenda.EditarOcurrencia
	desactivar *ucagenda.DesactivarOcurrencia
	restaurar  *ucagenda.RestaurarOcurrencia
}

func NewCalendarioHandler(
	calendario *ucagenda.ObtenerCalendario,
	espacios *ucagenda.ConsultarEspacios,
	tiempoReal *ucagenda.DisponibilidadTiempoReal,
	editar *ucagenda.EditarOcurrencia,
	desactivar *ucagenda.DesactivarOcurrencia,
	restaurar *ucagenda.RestaurarOcurrencia,
) *CalendarioHandler {
	return &CalendarioHandler{
		calendario: calendario,
		espacios:   espacios,
		tiempoReal: tiempoReal,
		editar:     editar,
		desactivar: desactivar,
		restaurar:  restaurar,
	}
}

// --------- Requests ---------

// OcurrenciaRequest referencia una ocurrencia tal como la entregó la vista
// resuelta: id + bandera de origen + fecha.
type OcurrenciaRequest struct {
	HorarioID    uint   `json:"horario_id" binding:"required"`
	EsEspecifico bool   `json:"es_especifico"`
	Fecha        string `json:"fecha" binding:"required"`
}

type ModificarOcurrenciaRequest struct {
	OcurrenciaRequest

	Titulo     string `json:"titulo"`
	HoraInicio string `json:"hora_inicio"`
	HoraFin    string `json:"hora_fin"`
	Color      string `json:"color"`
	Notas      string `json:"notas"`
	Activo     *bool  `json:"activo"`
}

// --------- Vistas ---------

// GET /agenda/calendario/:agendaId?mes=&anio=
func (h *CalendarioHandler) GetCalendario(c *gin.Context) {
	agendaID := parseIDParam(c, "agendaId")
	if agendaID == 0 {
		httperr.BadRequest(c, "validation_error", "Id de agenda inválido.")
		return
	}

	ahora := timezone.Now()

	mes := int(ahora.Month())
	if raw := c.Query("mes"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			mes = v
		}
	}

	anio := ahora.Year()
	if raw := c.Query("anio"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			anio = v
		}
	}

	view, err := h.calendario.Execute(c.Request.Context(), agendaID, time.Month(mes), anio, timezone.Hoy())
	if err != nil {
		if !httperr.WriteBusiness(c, err) {
			httperr.Internal(c, "calendario_failed", "Error al resolver el calendario.")
		}
		return
	}

	c.JSON(http.StatusOK, view)
}

// GET /agenda/consultar-espacios/:agendaId?fecha=
func (h *CalendarioHandler) ConsultarEspacios(c *gin.Context) {
	agendaID := parseIDParam(c, "agendaId")
	if agendaID == 0 {
		httperr.BadRequest(c, "validation_error", "Id de agenda inválido.")
		return
	}

	fecha := c.Query("fecha")
	if fecha == "" {
		fecha = timezone.Hoy()
	}

	view, err := h.espacios.Execute(c.Request.Context(), agendaID, fecha)
	if err != nil {
		if !httperr.WriteBusiness(c, err) {
			httperr.Internal(c, "espacios_failed", "Error al consultar espacios.")
		}
		return
	}

	c.JSON(http.StatusOK, view)
}

// GET /agenda/disponibilidad-tiempo-real?fecha=
func (h *CalendarioHandler) DisponibilidadTiempoReal(c *gin.Context) {
	fecha := c.Query("fecha")
	if fecha == "" {
		fecha = timezone.Hoy()
	}

	view, err := h.tiempoReal.Execute(c.Request.Context(), fecha)
	if err != nil {
		if !httperr.WriteBusiness(c, err) {
			httperr.Internal(c, "disponibilidad_failed", "Error al consultar disponibilidad.")
		}
		return
	}

	c.JSON(http.StatusOK, view)
}

// --------- Mutaciones de ocurrencia ---------

// PUT /agenda/modificar-ocurrencia
func (h *CalendarioHandler) ModificarOcurrencia(c *gin.Context) {
	var req ModificarOcurrenciaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "validation_error", "Datos inválidos.")
		return
	}

	esp, err := h.editar.Execute(
		c.Request.Context(),
		currentUserID(c),
		ucagenda.OcurrenciaRef{
			HorarioID:    req.HorarioID,
			EsEspecifico: req.EsEspecifico,
			Fecha:        req.Fecha,
		},
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
			httperr.Internal(c, "ocurrencia_update_failed", "Error al modificar la ocurrencia.")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"horario_especifico": esp})
}

// POST /agenda/desactivar-ocurrencia
func (h *CalendarioHandler) DesactivarOcurrencia(c *gin.Context) {
	var req OcurrenciaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "validation_error", "Datos inválidos.")
		return
	}

	esp, err := h.desactivar.Execute(
		c.Request.Context(),
		currentUserID(c),
		ucagenda.OcurrenciaRef{
			HorarioID:    req.HorarioID,
			EsEspecifico: req.EsEspecifico,
			Fecha:        req.Fecha,
		},
	)
	if err != nil {
		if !httperr.WriteBusiness(c, err) {
			httperr.Internal(c, "ocurrencia_disable_failed", "Error al desactivar la ocurrencia.")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"horario_especifico": esp})
}

// POST /agenda/restaurar-ocurrencia
func (h *CalendarioHandler) RestaurarOcurrencia(c *gin.Context) {
	var req OcurrenciaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "validation_error", "Datos inválidos.")
		return
	}

	err := h.restaurar.Execute(
		c.Request.Context(),
		currentUserID(c),
		ucagenda.OcurrenciaRef{
			HorarioID:    req.HorarioID,
			EsEspecifico: req.EsEspecifico,
			Fecha:        req.Fecha,
		},
	)
	if err != nil {
		if !httperr.WriteBusiness(c, err) {
			httperr.Internal(c, "ocurrencia_restore_failed", "Error al restaurar la ocurrencia.")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"restored": true})
}
