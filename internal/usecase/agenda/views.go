package agenda

import (
	domain "github.com/serviplan/agenda-api/internal/domain/schedule"
	"github.com/serviplan/agenda-api/internal/models"
)

// ======================================================
// VIEWS
// ======================================================

type OperadorResumen struct {
	ID       uint   `json:"id"`
	Nombre   string `json:"nombre"`
	Apellido string `json:"apellido"`
}

type AgendaResumen struct {
	ID          uint             `json:"id"`
	Nombre      string           `json:"nombre"`
	Descripcion string           `json:"descripcion,omitempty"`
	Operador    *OperadorResumen `json:"operador,omitempty"`
}

type CalendarioAgendaView struct {
	Agenda AgendaResumen `json:"agenda"`
	domain.CalendarioMes
}

type EspaciosDiaView struct {
	AgendaID         uint                    `json:"agenda_id"`
	Fecha            string                  `json:"fecha"`
	DiaSemana        string                  `json:"dia_semana"`
	EspaciosLibres   int                     `json:"espacios_libres"`
	EspaciosOcupados int                     `json:"espacios_ocupados"`
	Horarios         []domain.OcurrenciaView `json:"horarios"`
}

type DisponibilidadAgenda struct {
	AgendaID         uint                    `json:"agenda_id"`
	AgendaNombre     string                  `json:"agenda_nombre"`
	Operador         *OperadorResumen        `json:"operador,omitempty"`
	EspaciosLibres   int                     `json:"espacios_libres"`
	EspaciosOcupados int                     `json:"espacios_ocupados"`
	Horarios         []domain.OcurrenciaView `json:"horarios"`
}

type DisponibilidadTiempoRealView struct {
	FechaConsultada       string                 `json:"fecha_consultada"`
	TotalAgendas          int                    `json:"total_agendas"`
	TotalEspaciosLibres   int                    `json:"total_espacios_libres"`
	TotalEspaciosOcupados int                    `json:"total_espacios_ocupados"`
	Disponibilidad        []DisponibilidadAgenda `json:"disponibilidad"`
}

func resumenDeAgenda(a *models.Agenda) AgendaResumen {
	res := AgendaResumen{
		ID:          a.ID,
		Nombre:      a.Nombre,
		Descripcion: a.Descripcion,
	}
	if a.Operador.ID != 0 {
		res.Operador = &OperadorResumen{
			ID:       a.Operador.ID,
			Nombre:   a.Operador.Nombre,
			Apellido: a.Operador.Apellido,
		}
	}
	return res
}

func contarEspacios(views []domain.OcurrenciaView) (libres int, ocupados int) {
	for _, v := range views {
		if v.Disponible {
			libres++
		} else {
			ocupados++
		}
	}
	return libres, ocupados
}
