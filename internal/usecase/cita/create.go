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
// USE CASE — crear cita
// ======================================================

type CreateInput struct {
	HorarioID       uint
	EsEspecifico    bool
	Fecha           string
	ClienteNombre   string
	ClienteTelefono string
	ClienteEmail    string
	Servicio        string
	Notas           string
}

type CreateCita struct {
	repo  domain.Repository
	cache *cache.CalendarCache
	audit *audit.Dispatcher
}

func NewCreateCita(
	repo domain.Repository,
	cache *cache.CalendarCache,
	audit *audit.Dispatcher,
) *CreateCita {
	return &CreateCita{repo: repo, cache: cache, audit: audit}
}

// Execute valida la entrada, resuelve la ocurrencia objetivo y reserva. El
// chequeo de conflicto vive en el repositorio, dentro de la transacción; aquí
// solo se rechaza temprano lo que ya se ve ocupado o inexistente.
func (uc *CreateCita) Execute(
	ctx context.Context,
	userID uint,
	in CreateInput,
) (*models.Cita, error) {

	if in.ClienteNombre == "" || in.Servicio == "" {
		return nil, httperr.ErrBusiness("validation_error")
	}
	if !domain.FechaValida(in.Fecha) {
		return nil, httperr.ErrBusiness("validation_error")
	}

	objetivo, err := domain.ResolverObjetivo(ctx, uc.repo, in.HorarioID, in.EsEspecifico, in.Fecha)
	if err != nil {
		return nil, err
	}

	// la cita persiste el ancla más específica, no la que vino en la petición
	ancla := objetivo.Principal()

	nueva := models.Cita{
		AgendaID:        objetivo.AgendaID,
		HorarioID:       ancla.HorarioID,
		EsEspecifico:    ancla.EsEspecifico,
		ClienteNombre:   in.ClienteNombre,
		ClienteTelefono: in.ClienteTelefono,
		ClienteEmail:    in.ClienteEmail,
		Servicio:        in.Servicio,
		Fecha:           in.Fecha,
		HoraInicio:      objetivo.HoraInicio,
		HoraFin:         objetivo.HoraFin,
		Estado:          string(domain.EstadoInicial()),
		Notas:           in.Notas,
		CreatedBy:       userID,
	}

	if err := uc.repo.CreateCita(ctx, &nueva, objetivo.Anclas); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "cita_creada",
		Entity:   "cita",
		EntityID: &nueva.ID,
		Metadata: map[string]any{"fecha": nueva.Fecha, "horario_id": nueva.HorarioID},
	})

	uc.cache.Invalidate(ctx, nueva.AgendaID, nueva.Fecha)

	return &nueva, nil
}
