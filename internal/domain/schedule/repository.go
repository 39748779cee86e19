package schedule

import (
	"context"

	"github.com/serviplan/agenda-api/internal/models"
)

type Repository interface {
	// -------- Agenda --------
	GetAgenda(
		ctx context.Context,
		id uint,
	) (*models.Agenda, error)

	ListActiveAgendas(
		ctx context.Context,
	) ([]models.Agenda, error)

	// -------- Horario (base) --------
	GetHorario(
		ctx context.Context,
		id uint,
	) (*models.Horario, error)

	ListHorariosByAgenda(
		ctx context.Context,
		agendaID uint,
	) ([]models.Horario, error)

	// -------- HorarioEspecifico (excepción por fecha) --------
	GetHorarioEspecifico(
		ctx context.Context,
		id uint,
	) (*models.HorarioEspecifico, error)

	// FindHorarioEspecifico devuelve (nil, nil) cuando el ancla no existe.
	FindHorarioEspecifico(
		ctx context.Context,
		horarioBaseID uint,
		fecha string,
	) (*models.HorarioEspecifico, error)

	ListHorariosEspecificos(
		ctx context.Context,
		agendaID uint,
		desde string,
		hasta string,
	) ([]models.HorarioEspecifico, error)

	CreateHorarioEspecifico(
		ctx context.Context,
		esp *models.HorarioEspecifico,
	) error

	UpdateHorarioEspecifico(
		ctx context.Context,
		esp *models.HorarioEspecifico,
	) error

	DeleteHorarioEspecifico(
		ctx context.Context,
		id uint,
	) error

	// -------- Cita --------
	GetCita(
		ctx context.Context,
		id uint,
	) (*models.Cita, error)

	ListCitas(
		ctx context.Context,
		agendaID uint,
		desde string,
		hasta string,
	) ([]models.Cita, error)

	// CreateCita inserta dentro de una transacción que bloquea y recuenta las
	// citas activas de la ocurrencia; devuelve occurrence_taken si ya hay una.
	CreateCita(
		ctx context.Context,
		cita *models.Cita,
		anclas []CitaAncla,
	) error

	UpdateCita(
		ctx context.Context,
		cita *models.Cita,
	) error

	DeleteCita(
		ctx context.Context,
		id uint,
	) error

	// -------- Lista de espera --------
	GetPersonaListaEspera(
		ctx context.Context,
		id uint,
	) (*models.PersonaListaEspera, error)

	// PromoteListaEspera crea la cita (con el mismo chequeo de conflicto que
	// CreateCita) y elimina la persona de la lista en una sola transacción.
	PromoteListaEspera(
		ctx context.Context,
		cita *models.Cita,
		personaID uint,
		anclas []CitaAncla,
	) error
}
