package cita

import (
	"context"

	"github.com/serviplan/agenda-api/internal/audit"
	"github.com/serviplan/agenda-api/internal/cache"
	domain "github.com/serviplan/agenda-api/internal/domain/schedule"
	"github.com/serviplan/agenda-api/internal/httperr"
)

// ======================================================
// USE CASE — eliminar cita
// ======================================================

// DeleteCita borra la fila. La ocurrencia queda libre de inmediato; una cita
// cancelada que solo se quiere conservar como historial se deja con
// estado=cancelada en lugar de borrarla.
type DeleteCita struct {
	repo  domain.Repository
	cache *cache.CalendarCache
	audit *audit.Dispatcher
}

func NewDeleteCita(
	repo domain.Repository,
	cache *cache.CalendarCache,
	audit *audit.Dispatcher,
) *DeleteCita {
	return &DeleteCita{repo: repo, cache: cache, audit: audit}
}

func (uc *DeleteCita) Execute(ctx context.Context, userID uint, role string, id uint) error {
	actual, err := uc.repo.GetCita(ctx, id)
	if err != nil {
		return httperr.ErrBusiness("cita_not_found")
	}

	if actual.CreatedBy != userID && role != "admin" {
		return httperr.ErrBusiness("forbidden")
	}

	if err := uc.repo.DeleteCita(ctx, actual.ID); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "cita_eliminada",
		Entity:   "cita",
		EntityID: &actual.ID,
		Metadata: map[string]any{"fecha": actual.Fecha},
	})

	uc.cache.Invalidate(ctx, actual.AgendaID, actual.Fecha)

	return nil
}
