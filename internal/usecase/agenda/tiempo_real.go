package agenda

import (
	"context"

	domain "github.com/serviplan/agenda-api/internal/domain/schedule"
	"github.com/serviplan/agenda-api/internal/httperr"
)

// ======================================================
// USE CASE — disponibilidad de todas las agendas en una fecha
// ======================================================

// DisponibilidadTiempoReal alimenta el tablero por operador y la búsqueda de
// espacios libres de la lista de espera. Siempre devuelve un snapshot
// completo, así que repetir la consulta es seguro e idempotente.
type DisponibilidadTiempoReal struct {
	repo domain.Repository
}

func NewDisponibilidadTiempoReal(repo domain.Repository) *DisponibilidadTiempoReal {
	return &DisponibilidadTiempoReal{repo: repo}
}

func (uc *DisponibilidadTiempoReal) Execute(
	ctx context.Context,
	fecha string,
) (*DisponibilidadTiempoRealView, error) {

	if !domain.FechaValida(fecha) {
		return nil, httperr.ErrBusiness("validation_error")
	}

	agendas, err := uc.repo.ListActiveAgendas(ctx)
	if err != nil {
		return nil, err
	}

	view := &DisponibilidadTiempoRealView{
		FechaConsultada: fecha,
		TotalAgendas:    len(agendas),
		Disponibilidad:  make([]DisponibilidadAgenda, 0, len(agendas)),
	}

	for i := range agendas {
		a := &agendas[i]

		views, err := resolverDiaDeAgenda(ctx, uc.repo, a.ID, fecha)
		if err != nil {
			return nil, err
		}

		libres, ocupados := contarEspacios(views)
		view.TotalEspaciosLibres += libres
		view.TotalEspaciosOcupados += ocupados

		resumen := resumenDeAgenda(a)
		view.Disponibilidad = append(view.Disponibilidad, DisponibilidadAgenda{
			AgendaID:         a.ID,
			AgendaNombre:     a.Nombre,
			Operador:         resumen.Operador,
			EspaciosLibres:   libres,
			EspaciosOcupados: ocupados,
			Horarios:         views,
		})
	}

	return view, nil
}
