package agenda

import (
	"context"
	"time"

	"github.com/serviplan/agenda-api/internal/cache"
	domain "github.com/serviplan/agenda-api/internal/domain/schedule"
	"github.com/serviplan/agenda-api/internal/httperr"
)

// ======================================================
// USE CASE — calendario mensual de una agenda
// ======================================================

type ObtenerCalendario struct {
	repo  domain.Repository
	cache *cache.CalendarCache
}

func NewObtenerCalendario(
	repo domain.Repository,
	cache *cache.CalendarCache,
) *ObtenerCalendario {
	return &ObtenerCalendario{
		repo:  repo,
		cache: cache,
	}
}

// Execute resuelve el mes completo. hoy viene inyectado (YYYY-MM-DD) para que
// la clasificación es_hoy / es_pasado sea determinista; una vista cacheada se
// reclasifica contra el hoy actual antes de devolverla.
func (uc *ObtenerCalendario) Execute(
	ctx context.Context,
	agendaID uint,
	mes time.Month,
	anio int,
	hoy string,
) (*CalendarioAgendaView, error) {

	if mes < time.January || mes > time.December || anio < 2000 || anio > 2100 {
		return nil, httperr.ErrBusiness("validation_error")
	}

	agendaRow, err := uc.repo.GetAgenda(ctx, agendaID)
	if err != nil {
		return nil, httperr.ErrBusiness("agenda_not_found")
	}

	var view CalendarioAgendaView
	if uc.cache.Get(ctx, agendaID, anio, int(mes), &view) {
		for i := range view.Calendario {
			d := &view.Calendario[i]
			d.EsHoy = d.Fecha == hoy
			d.EsPasado = d.Fecha < hoy
		}
		return &view, nil
	}

	desde, hasta := domain.MesRango(anio, mes)

	horarios, err := uc.repo.ListHorariosByAgenda(ctx, agendaID)
	if err != nil {
		return nil, err
	}

	especificos, err := uc.repo.ListHorariosEspecificos(ctx, agendaID, desde, hasta)
	if err != nil {
		return nil, err
	}

	citas, err := uc.repo.ListCitas(ctx, agendaID, desde, hasta)
	if err != nil {
		return nil, err
	}

	view = CalendarioAgendaView{
		Agenda:        resumenDeAgenda(agendaRow),
		CalendarioMes: domain.ConstruirCalendarioMes(anio, mes, hoy, horarios, especificos, citas),
	}

	uc.cache.Set(ctx, agendaID, anio, int(mes), &view)

	return &view, nil
}
