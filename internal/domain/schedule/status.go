package schedule

import "github.com/serviplan/agenda-api/internal/httperr"

// ===============================
// Estado de la cita
// ===============================

type Estado string

const (
	EstadoPendiente  Estado = "pendiente"
	EstadoConfirmada Estado = "confirmada"
	EstadoCancelada  Estado = "cancelada"
	EstadoCompletada Estado = "completada"
)

func (e Estado) Valido() bool {
	switch e {
	case EstadoPendiente, EstadoConfirmada, EstadoCancelada, EstadoCompletada:
		return true
	}
	return false
}

// Activa reporta si la cita ocupa su ocurrencia. Solo las canceladas liberan.
func (e Estado) Activa() bool {
	return e != EstadoCancelada
}

func EstadoInicial() Estado {
	return EstadoPendiente
}

// PuedeTransicionar valida el cambio de estado:
// pendiente ⇄ confirmada ⇄ completada, cancelada desde cualquier no terminal.
// Cancelada es terminal.
func PuedeTransicionar(desde, hacia Estado) error {
	if !hacia.Valido() {
		return httperr.ErrBusiness("validation_error")
	}
	if desde == hacia {
		return nil
	}
	switch desde {
	case EstadoPendiente:
		if hacia == EstadoConfirmada || hacia == EstadoCancelada {
			return nil
		}
	case EstadoConfirmada:
		if hacia == EstadoPendiente || hacia == EstadoCompletada || hacia == EstadoCancelada {
			return nil
		}
	case EstadoCompletada:
		if hacia == EstadoConfirmada || hacia == EstadoCancelada {
			return nil
		}
	}
	return httperr.ErrBusiness("invalid_state")
}
