package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Conflict(c *gin.Context, code, message string) {
	Write(c, http.StatusConflict, code, message)
}

func Forbidden(c *gin.Context, code, message string) {
	Write(c, http.StatusForbidden, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

// Mapa código → status para errores de negocio. Conflictos y permisos son
// resultados esperados del flujo, no fallas del servidor.
var statusByCode = map[string]int{
	"validation_error":     http.StatusBadRequest,
	"invalid_state":        http.StatusBadRequest,
	"occurrence_taken":     http.StatusConflict,
	"override_exists":      http.StatusConflict,
	"forbidden":            http.StatusForbidden,
	"agenda_not_found":     http.StatusNotFound,
	"horario_not_found":    http.StatusNotFound,
	"override_not_found":   http.StatusNotFound,
	"cita_not_found":       http.StatusNotFound,
	"persona_not_found":    http.StatusNotFound,
	"occurrence_not_found": http.StatusNotFound,
	"no_availability":      http.StatusConflict,
}

var mensajes = map[string]string{
	"validation_error":     "Datos inválidos.",
	"invalid_state":        "Transición de estado no permitida.",
	"occurrence_taken":     "El espacio ya tiene una cita activa.",
	"override_exists":      "Ya existe un horario específico para esa fecha.",
	"forbidden":            "No tienes permisos para esta operación.",
	"agenda_not_found":     "Agenda no encontrada.",
	"horario_not_found":    "Horario no encontrado.",
	"override_not_found":   "Horario específico no encontrado.",
	"cita_not_found":       "Cita no encontrada.",
	"persona_not_found":    "Persona no encontrada en la lista de espera.",
	"occurrence_not_found": "La ocurrencia no existe para esa fecha.",
	"no_availability":      "No hay espacios disponibles para esa fecha.",
}

// WriteBusiness escribe la respuesta HTTP de un BusinessError conocido y
// reporta si lo manejó. El caller decide qué hacer con el resto.
func WriteBusiness(c *gin.Context, err error) bool {
	var be BusinessError
	if !errors.As(err, &be) {
		return false
	}
	status, ok := statusByCode[be.Code]
	if !ok {
		return false
	}
	msg := mensajes[be.Code]
	if msg == "" {
		msg = be.Code
	}
	Write(c, status, be.Code, msg)
	return true
}
