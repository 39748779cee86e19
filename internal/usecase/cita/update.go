package cita

import (
	"context"

	"github.com/serviplan/agenda-api/internal/audit"
	"github.com/serviplan/agenda-api/internal/cache"
	domain "github.com/serviplan/agenda-api/internal/domain/schedule"
	"github.com/serviplan/agenda-api/internal/httperr"
	"github.com/serviplan/agenda-api/internal/models"
)

// ======================================================
// USE CASE — actualizar cita
// ======================================================

// UpdateInput: campos vacíos se conservan. Cambiar fecha u horario no pasa
// por aquí; eso es eliminar y volver a crear.
type UpdateInput struct {
	ClienteNombre   string
	ClienteTelefono string
	ClienteEmail    string
	Servicio        string
	Estado          string
	Notas           string
}

type UpdateCita struct {
	repo  domain.Repository
	cache *cache.CalendarCache
	audit *audit.Dispatcher
}

func NewUpdateCita(
	repo domain.Repository,
	cache *cache.CalendarCache,
	audit *audit.Dispatcher,
) *UpdateCita {
	return &UpdateCita{repo: repo, cache: cache, audit: audit}
}

func (uc *UpdateCita) Execute(
	ctx context.Context,
	userID uint,
	role string,
	id uint,
	in UpdateInput,
) (*models.Cita, error) {

	actual, err := uc.repo.GetCita(ctx, id)
	if err != nil {
		return nil, httperr.ErrBusiness("cita_not_found")
	}

	if actual.CreatedBy != userID && role != "admin" {
		return nil, httperr.ErrBusiness("forbidden")
	}

	if in.Estado != "" {
		desde := domain.Estado(actual.Estado)
		hacia := domain.Estado(in.Estado)
		if err := domain.PuedeTransicionar(desde, hacia); err != nil {
			return nil, err
		}
		actual.Estado = in.Estado
	}

	if in.ClienteNombre != "" {
		actual.ClienteNombre = in.ClienteNombre
	}
	if in.ClienteTelefono != "" {
		actual.ClienteTelefono = in.ClienteTelefono
	}
	if in.ClienteEmail != "" {
		actual.ClienteEmail = in.ClienteEmail
	}
	if in.Servicio != "" {
		actual.Servicio = in.Servicio
	}
	if in.Notas != "" {
		actual.Notas = in.Notas
	}

	if err := uc.repo.UpdateCita(ctx, actual); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "cita_actualizada",
		Entity:   "cita",
		EntityID: &actual.ID,
		Metadata: map[string]any{"estado": actual.Estado},
	})

	// cancelar libera la ocurrencia y cambia la vista del día
	uc.cache.Invalidate(ctx, actual.AgendaID, actual.Fecha)

	return actual, nil
}
