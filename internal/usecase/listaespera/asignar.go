package listaespera

import (
	"context"

	"github.com/serviplan/agenda-api/internal/audit"
	"github.com/serviplan/agenda-api/internal/cache"
	domain "github.com/serviplan/agenda-api/internal/domain/schedule"
	"github.com/serviplan/agenda-api/internal/httperr"
	"github.com/serviplan/agenda-api/internal/models"
)

// ======================================================
// USE CASE — promover persona de la lista de espera a cita
// ======================================================

// AsignarInput: con HorarioID (y su bandera es_especifico, tal como la
// entregó la vista resuelta) se reserva esa ocurrencia puntual; sin él se
// toma el primer espacio libre de la fecha de la persona, recorriendo todas
// las agendas activas.
type AsignarInput struct {
	PersonaID    uint
	HorarioID    uint
	EsEspecifico bool
}

type AsignarCita struct {
	repo  domain.Repository
	cache *cache.CalendarCache
	audit *audit.Dispatcher
}

func NewAsignarCita(
	repo domain.Repository,
	cache *cache.CalendarCache,
	audit *audit.Dispatcher,
) *AsignarCita {
	return &AsignarCita{repo: repo, cache: cache, audit: audit}
}

func (uc *AsignarCita) Execute(
	ctx context.Context,
	userID uint,
	in AsignarInput,
) (*models.Cita, error) {

	persona, err := uc.repo.GetPersonaListaEspera(ctx, in.PersonaID)
	if err != nil {
		return nil, httperr.ErrBusiness("persona_not_found")
	}

	var objetivo *domain.OcurrenciaObjetivo

	if in.HorarioID != 0 {
		objetivo, err = domain.ResolverObjetivo(ctx, uc.repo, in.HorarioID, in.EsEspecifico, persona.Fecha)
		if err != nil {
			return nil, err
		}
	} else {
		objetivo, err = uc.primerEspacioLibre(ctx, persona.Fecha)
		if err != nil {
			return nil, err
		}
	}

	ancla := objetivo.Principal()

	nueva := models.Cita{
		AgendaID:        objetivo.AgendaID,
		HorarioID:       ancla.HorarioID,
		EsEspecifico:    ancla.EsEspecifico,
		ClienteNombre:   persona.Nombre,
		ClienteTelefono: persona.Telefono,
		Servicio:        persona.Servicio,
		Fecha:           persona.Fecha,
		HoraInicio:      objetivo.HoraInicio,
		HoraFin:         objetivo.HoraFin,
		Estado:          string(domain.EstadoConfirmada),
		Notas:           persona.Notas,
		CreatedBy:       userID,
	}

	if err := uc.repo.PromoteListaEspera(ctx, &nueva, persona.ID, objetivo.Anclas); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "lista_espera_asignada",
		Entity:   "cita",
		EntityID: &nueva.ID,
		Metadata: map[string]any{"persona_id": persona.ID, "fecha": nueva.Fecha},
	})

	uc.cache.Invalidate(ctx, nueva.AgendaID, nueva.Fecha)

	return &nueva, nil
}

// primerEspacioLibre recorre las agendas activas en orden y devuelve la
// primera ocurrencia disponible de la fecha.
func (uc *AsignarCita) primerEspacioLibre(
	ctx context.Context,
	fecha string,
) (*domain.OcurrenciaObjetivo, error) {

	agendas, err := uc.repo.ListActiveAgendas(ctx)
	if err != nil {
		return nil, err
	}

	for i := range agendas {
		agendaID := agendas[i].ID

		horarios, err := uc.repo.ListHorariosByAgenda(ctx, agendaID)
		if err != nil {
			return nil, err
		}
		especificos, err := uc.repo.ListHorariosEspecificos(ctx, agendaID, fecha, fecha)
		if err != nil {
			return nil, err
		}
		citas, err := uc.repo.ListCitas(ctx, agendaID, fecha, fecha)
		if err != nil {
			return nil, err
		}

		for _, v := range domain.ResolverDia(fecha, horarios, especificos, citas) {
			if !v.Disponible {
				continue
			}
			objetivo, err := domain.ResolverObjetivo(ctx, uc.repo, v.ID, v.EsEspecifico, fecha)
			if err != nil {
				continue
			}
			return objetivo, nil
		}
	}

	return nil, httperr.ErrBusiness("no_availability")
}
