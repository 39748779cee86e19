package agenda

import (
	"context"

	"github.com/serviplan/agenda-api/internal/audit"
	"github.com/serviplan/agenda-api/internal/cache"
	domain "github.com/serviplan/agenda-api/internal/domain/schedule"
	"github.com/serviplan/agenda-api/internal/httperr"
	"github.com/serviplan/agenda-api/internal/models"
)

// ======================================================
// USE CASES — horarios específicos (excepciones por fecha)
// ======================================================

// CrearHorarioEspecifico materializa una excepción directamente sobre un
// horario base y una fecha. Los campos no enviados se heredan del base en el
// momento de la creación.
type CrearHorarioEspecifico struct {
	repo  domain.Repository
	cache *cache.CalendarCache
	audit *audit.Dispatcher
}

func NewCrearHorarioEspecifico(
	repo domain.Repository,
	cache *cache.CalendarCache,
	audit *audit.Dispatcher,
) *CrearHorarioEspecifico {
	return &CrearHorarioEspecifico{repo: repo, cache: cache, audit: audit}
}

func (uc *CrearHorarioEspecifico) Execute(
	ctx context.Context,
	userID uint,
	horarioBaseID uint,
	fecha string,
	campos CamposOcurrencia,
) (*models.HorarioEspecifico, error) {

	if !domain.FechaValida(fecha) {
		return nil, httperr.ErrBusiness("validation_error")
	}

	base, err := uc.repo.GetHorario(ctx, horarioBaseID)
	if err != nil {
		return nil, httperr.ErrBusiness("horario_not_found")
	}

	nuevo := snapshotDeBase(base, fecha)
	if err := campos.aplicar(&nuevo); err != nil {
		return nil, err
	}

	if err := uc.repo.CreateHorarioEspecifico(ctx, &nuevo); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "horario_especifico_creado",
		Entity:   "horario_especifico",
		EntityID: &nuevo.ID,
		Metadata: map[string]any{"fecha": nuevo.Fecha, "horario_base_id": horarioBaseID},
	})

	uc.cache.Invalidate(ctx, nuevo.AgendaID, nuevo.Fecha)

	return &nuevo, nil
}

// ModificarHorarioEspecifico actualiza los campos de una excepción ya
// existente. El ancla (horario base + fecha) no se puede mover; para cambiar
// de fecha se restaura una y se crea otra.
type ModificarHorarioEspecifico struct {
	repo  domain.Repository
	cache *cache.CalendarCache
	audit *audit.Dispatcher
}

func NewModificarHorarioEspecifico(
	repo domain.Repository,
	cache *cache.CalendarCache,
	audit *audit.Dispatcher,
) *ModificarHorarioEspecifico {
	return &ModificarHorarioEspecifico{repo: repo, cache: cache, audit: audit}
}

func (uc *ModificarHorarioEspecifico) Execute(
	ctx context.Context,
	userID uint,
	id uint,
	campos CamposOcurrencia,
) (*models.HorarioEspecifico, error) {

	esp, err := uc.repo.GetHorarioEspecifico(ctx, id)
	if err != nil {
		return nil, httperr.ErrBusiness("override_not_found")
	}

	if err := campos.aplicar(esp); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateHorarioEspecifico(ctx, esp); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "horario_especifico_modificado",
		Entity:   "horario_especifico",
		EntityID: &esp.ID,
		Metadata: map[string]any{"fecha": esp.Fecha},
	})

	uc.cache.Invalidate(ctx, esp.AgendaID, esp.Fecha)

	return esp, nil
}

// EliminarHorarioEspecifico borra la excepción; la fecha vuelve a regirse por
// el horario base (o desaparece si el base ya no cubre ese día).
type EliminarHorarioEspecifico struct {
	repo  domain.Repository
	cache *cache.CalendarCache
	audit *audit.Dispatcher
}

func NewEliminarHorarioEspecifico(
	repo domain.Repository,
	cache *cache.CalendarCache,
	audit *audit.Dispatcher,
) *EliminarHorarioEspecifico {
	return &EliminarHorarioEspecifico{repo: repo, cache: cache, audit: audit}
}

func (uc *EliminarHorarioEspecifico) Execute(ctx context.Context, userID uint, id uint) error {
	esp, err := uc.repo.GetHorarioEspecifico(ctx, id)
	if err != nil {
		return httperr.ErrBusiness("override_not_found")
	}

	if err := uc.repo.DeleteHorarioEspecifico(ctx, esp.ID); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "horario_especifico_eliminado",
		Entity:   "horario_especifico",
		EntityID: &esp.ID,
		Metadata: map[string]any{"fecha": esp.Fecha},
	})

	uc.cache.Invalidate(ctx, esp.AgendaID, esp.Fecha)

	return nil
}
