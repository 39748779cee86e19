package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/serviplan/agenda-api/internal/domain/schedule"
	"github.com/serviplan/agenda-api/internal/httperr"
	"github.com/serviplan/agenda-api/internal/models"
)

type ScheduleGormRepository struct {
	db *gorm.DB
}

func NewScheduleGormRepository(db *gorm.DB) *ScheduleGormRepository {
	return &ScheduleGormRepository{db: db}
}

// --------------------------------------------------
// Agenda
// --------------------------------------------------

func (r *ScheduleGormRepository) GetAgenda(
	ctx context.Context,
	id uint,
) (*models.Agenda, error) {

	var agenda models.Agenda
	if err := r.db.WithContext(ctx).
		Preload("Operador").
		First(&agenda, id).Error; err != nil {
		return nil, err
	}
	return &agenda, nil
}

func (r *ScheduleGormRepository) ListActiveAgendas(
	ctx context.Context,
) ([]models.Agenda, error) {

	var agendas []models.Agenda
	if err := r.db.WithContext(ctx).
		Preload("Operador").
		Where("activa = ?", true).
		Order("id ASC").
		Find(&agendas).Error; err != nil {
		return nil, err
	}
	return agendas, nil
}

// --------------------------------------------------
// Horario (base)
// --------------------------------------------------

func (r *ScheduleGormRepository) GetHorario(
	ctx context.Context,
	id uint,
) (*models.Horario, error) {

	var h models.Horario
	if err := r.db.WithContext(ctx).First(&h, id).Error; err != nil {
		return nil, err
	}
	return &h, nil
}

func (r *ScheduleGormRepository) ListHorariosByAgenda(
	ctx context.Context,
	agendaID uint,
) ([]models.Horario, error) {

	var horarios []models.Horario
	if err := r.db.WithContext(ctx).
		Where("agenda_id = ?", agendaID).
		Order("hora_inicio ASC, id ASC").
		Find(&horarios).Error; err != nil {
		return nil, err
	}
	return horarios, nil
}

// --------------------------------------------------
// HorarioEspecifico
// --------------------------------------------------

func (r *ScheduleGormRepository) GetHorarioEspecifico(
	ctx context.Context,
	id uint,
) (*models.HorarioEspecifico, error) {

	var esp models.HorarioEspecifico
	if err := r.db.WithContext(ctx).First(&esp, id).Error; err != nil {
		return nil, err
	}
	return &esp, nil
}

func (r *ScheduleGormRepository) FindHorarioEspecifico(
	ctx context.Context,
	horarioBaseID uint,
	fecha string,
) (*models.HorarioEspecifico, error) {

	var esp models.HorarioEspecifico
	err := r.db.WithContext(ctx).
		Where("horario_base_id = ? AND fecha = ?", horarioBaseID, fecha).
		First(&esp).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &esp, nil
}

func (r *ScheduleGormRepository) ListHorariosEspecificos(
	ctx context.Context,
	agendaID uint,
	desde string,
	hasta string,
) ([]models.HorarioEspecifico, error) {

	var esps []models.HorarioEspecifico
	if err := r.db.WithContext(ctx).
		Where("agenda_id = ? AND fecha >= ? AND fecha <= ?", agendaID, desde, hasta).
		Order("fecha ASC, hora_inicio ASC").
		Find(&esps).Error; err != nil {
		return nil, err
	}
	return esps, nil
}

func (r *ScheduleGormRepository) CreateHorarioEspecifico(
	ctx context.Context,
	esp *models.HorarioEspecifico,
) error {

	err := r.db.WithContext(ctx).Create(esp).Error
	if httperr.IsUniqueViolation(err) {
		return httperr.ErrBusiness("override_exists")
	}
	return err
}

func (r *ScheduleGormRepository) UpdateHorarioEspecifico(
	ctx context.Context,
	esp *models.HorarioEspecifico,
) error {
	return r.db.WithContext(ctx).Save(esp).Error
}

func (r *ScheduleGormRepository) DeleteHorarioEspecifico(
	ctx context.Context,
	id uint,
) error {

	res := r.db.WithContext(ctx).Delete(&models.HorarioEspecifico{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return httperr.ErrBusiness("override_not_found")
	}
	return nil
}

// --------------------------------------------------
// Cita
// --------------------------------------------------

func (r *ScheduleGormRepository) GetCita(
	ctx context.Context,
	id uint,
) (*models.Cita, error) {

	var cita models.Cita
	if err := r.db.WithContext(ctx).First(&cita, id).Error; err != nil {
		return nil, err
	}
	return &cita, nil
}

func (r *ScheduleGormRepository) ListCitas(
	ctx context.Context,
	agendaID uint,
	desde string,
	hasta string,
) ([]models.Cita, error) {

	var citas []models.Cita
	if err := r.db.WithContext(ctx).
		Where("agenda_id = ? AND fecha >= ? AND fecha <= ?", agendaID, desde, hasta).
		Order("fecha ASC, hora_inicio ASC").
		Find(&citas).Error; err != nil {
		return nil, err
	}
	return citas, nil
}

func (r *ScheduleGormRepository) CreateCita(
	ctx context.Context,
	cita *models.Cita,
	anclas []domain.CitaAncla,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := assertOcurrenciaLibre(tx, anclas, cita.Fecha); err != nil {
			return err
		}
		return tx.Create(cita).Error
	})

	if httperr.IsUniqueViolation(err) {
		return httperr.ErrBusiness("occurrence_taken")
	}
	return err
}

func (r *ScheduleGormRepository) UpdateCita(
	ctx context.Context,
	cita *models.Cita,
) error {
	return r.db.WithContext(ctx).Save(cita).Error
}

func (r *ScheduleGormRepository) DeleteCita(
	ctx context.Context,
	id uint,
) error {

	res := r.db.WithContext(ctx).Delete(&models.Cita{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return httperr.ErrBusiness("cita_not_found")
	}
	return nil
}

// --------------------------------------------------
// Lista de espera
// --------------------------------------------------

func (r *ScheduleGormRepository) GetPersonaListaEspera(
	ctx context.Context,
	id uint,
) (*models.PersonaListaEspera, error) {

	var persona models.PersonaListaEspera
	if err := r.db.WithContext(ctx).First(&persona, id).Error; err != nil {
		return nil, err
	}
	return &persona, nil
}

func (r *ScheduleGormRepository) PromoteListaEspera(
	ctx context.Context,
	cita *models.Cita,
	personaID uint,
	anclas []domain.CitaAncla,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := assertOcurrenciaLibre(tx, anclas, cita.Fecha); err != nil {
			return err
		}

		if err := tx.Create(cita).Error; err != nil {
			return err
		}

		res := tx.Delete(&models.PersonaListaEspera{}, personaID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return httperr.ErrBusiness("persona_not_found")
		}
		return nil
	})

	if httperr.IsUniqueViolation(err) {
		return httperr.ErrBusiness("occurrence_taken")
	}
	return err
}

// assertOcurrenciaLibre bloquea y recuenta las citas activas de la ocurrencia
// dentro de la transacción. El ancla es el par (horario_id, es_especifico):
// el id solo es ambiguo porque base y excepciones llevan secuencias
// independientes. El índice único parcial respalda este chequeo.
func assertOcurrenciaLibre(tx *gorm.DB, anclas []domain.CitaAncla, fecha string) error {
	pares := make([][]interface{}, len(anclas))
	for i, a := range anclas {
		pares[i] = []interface{}{a.HorarioID, a.EsEspecifico}
	}

	var conflictos []models.Cita
	if err := tx.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where(
			"(horario_id, es_especifico) IN ? AND fecha = ? AND estado <> ?",
			pares, fecha, "cancelada",
		).
		Find(&conflictos).Error; err != nil {
		return err
	}

	if len(conflictos) > 0 {
		return httperr.ErrBusiness("occurrence_taken")
	}
	return nil
}

// Compile-time check
var _ domain.Repository = (*ScheduleGormRepository)(nil)
