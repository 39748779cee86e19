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
// ORQUESTADOR DE OCURRENCIAS
//
// Edita o quita una ocurrencia resuelta (no una fila cruda). El estado
// BASE / OVERRIDDEN se infiere de la presencia de la fila de excepción en el
// momento de la mutación, nunca se persiste: editar una ocurrencia BASE crea
// la excepción en lugar de tocar el horario recurrente; editar una ya
// OVERRIDDEN actualiza la excepción existente.
// ======================================================

// OcurrenciaRef identifica la ocurrencia tal como la entregó la vista
// resuelta: el id puede ser de la tabla base o de la de excepciones, según
// la bandera es_especifico.
type OcurrenciaRef struct {
	HorarioID    uint
	EsEspecifico bool
	Fecha        string
}

// CamposOcurrencia son los campos editables. Cadena vacía = conservar el
// valor vigente; Activo nil = conservar la bandera.
type CamposOcurrencia struct {
	Titulo     string
	HoraInicio string
	HoraFin    string
	Color      string
	Notas      string
	Activo     *bool
}

func (c CamposOcurrencia) aplicar(esp *models.HorarioEspecifico) error {
	if c.Titulo != "" {
		esp.Titulo = c.Titulo
	}
	if c.HoraInicio != "" {
		esp.HoraInicio = c.HoraInicio
	}
	if c.HoraFin != "" {
		esp.HoraFin = c.HoraFin
	}
	if c.Color != "" {
		esp.Color = c.Color
	}
	if c.Notas != "" {
		esp.Notas = c.Notas
	}
	if c.Activo != nil {
		esp.Activo = *c.Activo
	}

	ini, fin, err := domain.ValidarRangoHoras(esp.HoraInicio, esp.HoraFin)
	if err != nil {
		return err
	}
	esp.HoraInicio = ini
	esp.HoraFin = fin
	return nil
}

// snapshotDeBase hereda todos los campos del horario base al crear la
// excepción. Es una copia, no una referencia: ediciones posteriores del base
// no se propagan.
func snapshotDeBase(base *models.Horario, fecha string) models.HorarioEspecifico {
	return models.HorarioEspecifico{
		AgendaID:      base.AgendaID,
		HorarioBaseID: base.ID,
		Fecha:         fecha,
		Titulo:        base.Titulo,
		HoraInicio:    base.HoraInicio,
		HoraFin:       base.HoraFin,
		Color:         base.Color,
		Notas:         base.Notas,
		Activo:        true,
	}
}

// ------------------------------------------------------
// Editar
// ------------------------------------------------------

type EditarOcurrencia struct {
	repo  domain.Repository
	cache *cache.CalendarCache
	audit *audit.Dispatcher
}

func NewEditarOcurrencia(
	repo domain.Repository,
	cache *cache.CalendarCache,
	audit *audit.Dispatcher,
) *EditarOcurrencia {
	return &EditarOcurrencia{repo: repo, cache: cache, audit: audit}
}

func (uc *EditarOcurrencia) Execute(
	ctx context.Context,
	userID uint,
	ref OcurrenciaRef,
	campos CamposOcurrencia,
) (*models.HorarioEspecifico, error) {

	if !domain.FechaValida(ref.Fecha) {
		return nil, httperr.ErrBusiness("validation_error")
	}

	esp, err := buscarExcepcion(ctx, uc.repo, ref)
	if err != nil {
		return nil, err
	}

	if esp != nil {
		// estado OVERRIDDEN: se actualiza la excepción, el ancla no se mueve
		if err := campos.aplicar(esp); err != nil {
			return nil, err
		}
		if err := uc.repo.UpdateHorarioEspecifico(ctx, esp); err != nil {
			return nil, err
		}
	} else {
		// estado BASE: la edición de un solo día materializa la excepción
		base, err := uc.repo.GetHorario(ctx, ref.HorarioID)
		if err != nil {
			return nil, httperr.ErrBusiness("horario_not_found")
		}

		nuevo := snapshotDeBase(base, ref.Fecha)
		if err := campos.aplicar(&nuevo); err != nil {
			return nil, err
		}
		if err := uc.repo.CreateHorarioEspecifico(ctx, &nuevo); err != nil {
			return nil, err
		}
		esp = &nuevo
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "ocurrencia_editada",
		Entity:   "horario_especifico",
		EntityID: &esp.ID,
		Metadata: map[string]any{"fecha": esp.Fecha},
	})

	uc.cache.Invalidate(ctx, esp.AgendaID, esp.Fecha)

	return esp, nil
}

// ------------------------------------------------------
// Desactivar (quitar solo esta fecha)
// ------------------------------------------------------

type DesactivarOcurrencia struct {
	repo  domain.Repository
	cache *cache.CalendarCache
	audit *audit.Dispatcher
}

func NewDesactivarOcurrencia(
	repo domain.Repository,
	cache *cache.CalendarCache,
	audit *audit.Dispatcher,
) *DesactivarOcurrencia {
	return &DesactivarOcurrencia{repo: repo, cache: cache, audit: audit}
}

func (uc *DesactivarOcurrencia) Execute(
	ctx context.Context,
	userID uint,
	ref OcurrenciaRef,
) (*models.HorarioEspecifico, error) {

	return aplicarBandera(ctx, uc.repo, uc.cache, uc.audit, userID, ref, false, "ocurrencia_desactivada")
}

// ------------------------------------------------------
// Restaurar (volver al comportamiento del horario base)
// ------------------------------------------------------

type RestaurarOcurrencia struct {
	repo  domain.Repository
	cache *cache.CalendarCache
	audit *audit.Dispatcher
}

func NewRestaurarOcurrencia(
	repo domain.Repository,
	cache *cache.CalendarCache,
	audit *audit.Dispatcher,
) *RestaurarOcurrencia {
	return &RestaurarOcurrencia{repo: repo, cache: cache, audit: audit}
}

func (uc *RestaurarOcurrencia) Execute(
	ctx context.Context,
	userID uint,
	ref OcurrenciaRef,
) error {

	if !domain.FechaValida(ref.Fecha) {
		return httperr.ErrBusiness("validation_error")
	}

	esp, err := buscarExcepcion(ctx, uc.repo, ref)
	if err != nil {
		return err
	}
	if esp == nil {
		return httperr.ErrBusiness("override_not_found")
	}

	if err := uc.repo.DeleteHorarioEspecifico(ctx, esp.ID); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "ocurrencia_restaurada",
		Entity:   "horario_especifico",
		EntityID: &esp.ID,
		Metadata: map[string]any{"fecha": esp.Fecha},
	})

	uc.cache.Invalidate(ctx, esp.AgendaID, esp.Fecha)

	return nil
}

// ------------------------------------------------------
// helpers
// ------------------------------------------------------

// buscarExcepcion localiza la fila de excepción de la ocurrencia referida,
// o nil si la fecha sigue en estado BASE.
func buscarExcepcion(
	ctx context.Context,
	repo domain.Repository,
	ref OcurrenciaRef,
) (*models.HorarioEspecifico, error) {

	if ref.EsEspecifico {
		esp, err := repo.GetHorarioEspecifico(ctx, ref.HorarioID)
		if err != nil {
			return nil, httperr.ErrBusiness("override_not_found")
		}
		return esp, nil
	}

	// la bandera del cliente puede venir desactualizada: verificar el ancla
	return repo.FindHorarioEspecifico(ctx, ref.HorarioID, ref.Fecha)
}

func aplicarBandera(
	ctx context.Context,
	repo domain.Repository,
	calCache *cache.CalendarCache,
	dispatcher *audit.Dispatcher,
	userID uint,
	ref OcurrenciaRef,
	activo bool,
	action string,
) (*models.HorarioEspecifico, error) {

	if !domain.FechaValida(ref.Fecha) {
		return nil, httperr.ErrBusiness("validation_error")
	}

	esp, err := buscarExcepcion(ctx, repo, ref)
	if err != nil {
		return nil, err
	}

	if esp != nil {
		esp.Activo = activo
		if err := repo.UpdateHorarioEspecifico(ctx, esp); err != nil {
			return nil, err
		}
	} else {
		base, err := repo.GetHorario(ctx, ref.HorarioID)
		if err != nil {
			return nil, httperr.ErrBusiness("horario_not_found")
		}

		nuevo := snapshotDeBase(base, ref.Fecha)
		nuevo.Activo = activo
		if err := repo.CreateHorarioEspecifico(ctx, &nuevo); err != nil {
			return nil, err
		}
		esp = &nuevo
	}

	dispatcher.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   action,
		Entity:   "horario_especifico",
		EntityID: &esp.ID,
		Metadata: map[string]any{"fecha": esp.Fecha},
	})

	calCache.Invalidate(ctx, esp.AgendaID, esp.Fecha)

	return esp, nil
}
