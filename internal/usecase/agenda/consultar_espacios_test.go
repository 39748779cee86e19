package agenda

import (
	"context"
	"testing"
	"time"

	"github.com/serviplan/agenda-api/internal/httperr"
	"github.com/serviplan/agenda-api/internal/models"
)

type fakeRepoVistas struct {
	fakeRepo

	agendas []models.Agenda
	citas   []models.Cita
}

func (f *fakeRepoVistas) GetAgenda(_ context.Context, id uint) (*models.Agenda, error) {
	for i := range f.agendas {
		if f.agendas[i].ID == id {
			return &f.agendas[i], nil
		}
	}
	return nil, httperr.ErrBusiness("agenda_not_found")
}

func (f *fakeRepoVistas) ListActiveAgendas(context.Context) ([]models.Agenda, error) {
	var out []models.Agenda
	for _, a := range f.agendas {
		if a.Activa {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeRepoVistas) ListHorariosByAgenda(_ context.Context, agendaID uint) ([]models.Horario, error) {
	var out []models.Horario
	for _, h := range f.horarios {
		if h.AgendaID == agendaID {
			out = append(out, h)
		}
	}
	return out, nil
}

func (f *fakeRepoVistas) ListHorariosEspecificos(_ context.Context, agendaID uint, desde, hasta string) ([]models.HorarioEspecifico, error) {
	var out []models.HorarioEspecifico
	for _, e := range f.especificos {
		if e.AgendaID == agendaID && e.Fecha >= desde && e.Fecha <= hasta {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeRepoVistas) ListCitas(_ context.Context, agendaID uint, desde, hasta string) ([]models.Cita, error) {
	var out []models.Cita
	for _, ci := range f.citas {
		if ci.AgendaID == agendaID && ci.Fecha >= desde && ci.Fecha <= hasta {
			out = append(out, ci)
		}
	}
	return out, nil
}

func repoConAgenda() *fakeRepoVistas {
	repo := &fakeRepoVistas{fakeRepo: *repoConBase()}
	repo.agendas = []models.Agenda{{
		ID:       3,
		Nombre:   "Agenda Norte",
		Activa:   true,
		Operador: models.Operador{ID: 4, Nombre: "Laura", Apellido: "Pérez"},
	}}
	return repo
}

// ===============================

func TestConsultarEspacios(t *testing.T) {
	repo := repoConAgenda()
	repo.citas = []models.Cita{{
		ID: 7, AgendaID: 3, HorarioID: 1, Fecha: lunes,
		ClienteNombre: "Ana", Servicio: "Corte", Estado: "pendiente",
	}}

	uc := NewConsultarEspacios(repo)

	view, err := uc.Execute(context.Background(), 3, lunes)
	if err != nil {
		t.Fatalf("consulta falló: %v", err)
	}

	if view.DiaSemana != "lunes" {
		t.Fatalf("día de la semana incorrecto: %s", view.DiaSemana)
	}
	if view.EspaciosLibres != 0 || view.EspaciosOcupados != 1 {
		t.Fatalf("conteo incorrecto: libres=%d ocupados=%d", view.EspaciosLibres, view.EspaciosOcupados)
	}

	if _, err := uc.Execute(context.Background(), 99, lunes); !httperr.IsBusiness(err, "agenda_not_found") {
		t.Fatalf("agenda inexistente debía fallar, err=%v", err)
	}
	if _, err := uc.Execute(context.Background(), 3, "hoy"); !httperr.IsBusiness(err, "validation_error") {
		t.Fatalf("fecha inválida debía fallar, err=%v", err)
	}
}

func TestObtenerCalendarioSinCache(t *testing.T) {
	repo := repoConAgenda()
	uc := NewObtenerCalendario(repo, nil)

	view, err := uc.Execute(context.Background(), 3, time.March, 2025, lunes)
	if err != nil {
		t.Fatalf("calendario falló: %v", err)
	}

	if view.Agenda.ID != 3 || view.Agenda.Operador == nil || view.Agenda.Operador.Nombre != "Laura" {
		t.Fatalf("resumen de agenda incorrecto: %+v", view.Agenda)
	}
	if len(view.Calendario) != 31 {
		t.Fatalf("marzo tiene 31 días, hay %d", len(view.Calendario))
	}

	if _, err := uc.Execute(context.Background(), 3, time.Month(13), 2025, lunes); !httperr.IsBusiness(err, "validation_error") {
		t.Fatalf("mes fuera de rango debía fallar, err=%v", err)
	}
}

func TestDisponibilidadTiempoReal(t *testing.T) {
	repo := repoConAgenda()
	uc := NewDisponibilidadTiempoReal(repo)

	view, err := uc.Execute(context.Background(), lunes)
	if err != nil {
		t.Fatalf("disponibilidad falló: %v", err)
	}

	if view.TotalAgendas != 1 || view.TotalEspaciosLibres != 1 || view.TotalEspaciosOcupados != 0 {
		t.Fatalf("totales incorrectos: %+v", view)
	}
	if len(view.Disponibilidad) != 1 || view.Disponibilidad[0].AgendaNombre != "Agenda Norte" {
		t.Fatalf("detalle por agenda incorrecto: %+v", view.Disponibilidad)
	}
}
