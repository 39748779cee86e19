package agenda

import (
	"context"
	"time"

	domain "github.com/serviplan/agenda-api/internal/domain/schedule"
	"github.com/serviplan/agenda-api/internal/httperr"
)

// ======================================================
// USE CASE — espacios de una agenda en una fecha
// ======================================================

type ConsultarEspacios struct {
	repo domain.Repository
}

func NewConsultarEspacios(repo domain.Repository) *ConsultarEspacios {
	return &ConsultarEspacios{repo: repo}
}

func (uc *ConsultarEspacios) Execute(
	ctx context.Context,
	agendaID uint,
	fecha string,
) (*EspaciosDiaView, error) {

	if !domain.FechaValida(fecha) {
		return nil, httperr.ErrBusiness("validation_error")
	}

	if _, err := uc.repo.GetAgenda(ctx, agendaID); err != nil {
		return nil, httperr.ErrBusiness("agenda_not_found")
	}

	views, err := resolverDiaDeAgenda(ctx, uc.repo, agendaID, fecha)
	if err != nil {
		return nil, err
	}

	libres, ocupados := contarEspacios(views)

	dia, _ := time.Parse(domain.FechaLayout, fecha)

	return &EspaciosDiaView{
		AgendaID:         agendaID,
		Fecha:            fecha,
		DiaSemana:        string(domain.DiaSemanaDe(dia.Weekday())),
		EspaciosLibres:   libres,
		EspaciosOcupados: ocupados,
		Horarios:         views,
	}, nil
}

// resolverDiaDeAgenda carga las tres fuentes y las funde en la vista del día.
func resolverDiaDeAgenda(
	ctx context.Context,
	repo domain.Repository,
	agendaID uint,
	fecha string,
) ([]domain.OcurrenciaView, error) {

	horarios, err := repo.ListHorariosByAgenda(ctx, agendaID)
	if err != nil {
		return nil, err
	}

	especificos, err := repo.ListHorariosEspecificos(ctx, agendaID, fecha, fecha)
	if err != nil {
		return nil, err
	}

	citas, err := repo.ListCitas(ctx, agendaID, fecha, fecha)
	if err != nil {
		return nil, err
	}

	return domain.ResolverDia(fecha, horarios, especificos, citas), nil
}
