package cita

import (
	"context"
	"testing"

	domain "github.com/serviplan/agenda-api/internal/domain/schedule"
	"github.com/serviplan/agenda-api/internal/httperr"
	"github.com/serviplan/agenda-api/internal/models"
)

// 2025-03-10 es lunes
const lunes = "2025-03-10"

type fakeRepo struct {
	domain.Repository

	horarios    []models.Horario
	especificos []models.HorarioEspecifico
	citas       []models.Cita
}

func (f *fakeRepo) GetHorario(_ context.Context, id uint) (*models.Horario, error) {
	for i := range f.horarios {
		if f.horarios[i].ID == id {
			return &f.horarios[i], nil
		}
	}
	return nil, httperr.ErrBusiness("horario_not_found")
}

func (f *fakeRepo) GetHorarioEspecifico(_ context.Context, id uint) (*models.HorarioEspecifico, error) {
	for i := range f.especificos {
		if f.especificos[i].ID == id {
			return &f.especificos[i], nil
		}
	}
	return nil, httperr.ErrBusiness("override_not_found")
}

func (f *fakeRepo) FindHorarioEspecifico(_ context.Context, horarioBaseID uint, fecha string) (*models.HorarioEspecifico, error) {
	for i := range f.especificos {
		if f.especificos[i].HorarioBaseID == horarioBaseID && f.especificos[i].Fecha == fecha {
			return &f.especificos[i], nil
		}
	}
	return nil, nil
}

func (f *fakeRepo) GetCita(_ context.Context, id uint) (*models.Cita, error) {
	for i := range f.citas {
		if f.citas[i].ID == id {
			return &f.citas[i], nil
		}
	}
	return nil, httperr.ErrBusiness("cita_not_found")
}

func (f *fakeRepo) CreateCita(_ context.Context, cita *models.Cita, anclas []domain.CitaAncla) error {
	for _, existente := range f.citas {
		if existente.Fecha != cita.Fecha || !domain.Estado(existente.Estado).Activa() {
			continue
		}
		for _, a := range anclas {
			if existente.HorarioID == a.HorarioID && existente.EsEspecifico == a.EsEspecifico {
				return httperr.ErrBusiness("occurrence_taken")
			}
		}
	}
	cita.ID = uint(200 + len(f.citas))
	f.citas = append(f.citas, *cita)
	return nil
}

func (f *fakeRepo) UpdateCita(_ context.Context, cita *models.Cita) error {
	for i := range f.citas {
		if f.citas[i].ID == cita.ID {
			f.citas[i] = *cita
			return nil
		}
	}
	return httperr.ErrBusiness("cita_not_found")
}

func (f *fakeRepo) DeleteCita(_ context.Context, id uint) error {
	for i := range f.citas {
		if f.citas[i].ID == id {
			f.citas = append(f.citas[:i], f.citas[i+1:]...)
			return nil
		}
	}
	return httperr.ErrBusiness("cita_not_found")
}

func repoConHorario() *fakeRepo {
	return &fakeRepo{horarios: []models.Horario{{
		ID:         1,
		AgendaID:   3,
		Titulo:     "Corte",
		HoraInicio: "09:00:00",
		HoraFin:    "10:00:00",
		DiaSemana:  "lunes",
		Activo:     true,
	}}}
}

// ===============================

func TestCreateCita(t *testing.T) {
	repo := repoConHorario()
	uc := NewCreateCita(repo, nil, nil)

	nueva, err := uc.Execute(context.Background(), 9, CreateInput{
		HorarioID:     1,
		Fecha:         lunes,
		ClienteNombre: "Ana",
		Servicio:      "Corte",
	})
	if err != nil {
		t.Fatalf("creación falló: %v", err)
	}

	if nueva.AgendaID != 3 || nueva.CreatedBy != 9 {
		t.Fatalf("atribución incorrecta: %+v", nueva)
	}
	if nueva.HoraInicio != "09:00:00" || nueva.HoraFin != "10:00:00" {
		t.Fatalf("los límites deben copiarse de la ocurrencia: %+v", nueva)
	}
	if nueva.Estado != "pendiente" {
		t.Fatalf("estado inicial incorrecto: %s", nueva.Estado)
	}
}

func TestCreateCitaOcurrenciaOcupada(t *testing.T) {
	repo := repoConHorario()
	uc := NewCreateCita(repo, nil, nil)

	in := CreateInput{HorarioID: 1, Fecha: lunes, ClienteNombre: "Ana", Servicio: "Corte"}

	if _, err := uc.Execute(context.Background(), 9, in); err != nil {
		t.Fatalf("primera reserva falló: %v", err)
	}

	in.ClienteNombre = "Berta"
	if _, err := uc.Execute(context.Background(), 9, in); !httperr.IsBusiness(err, "occurrence_taken") {
		t.Fatalf("segunda reserva debía chocar, err=%v", err)
	}

	// otra semana, misma plantilla: libre
	in.Fecha = "2025-03-17"
	if _, err := uc.Execute(context.Background(), 9, in); err != nil {
		t.Fatalf("otra fecha debía estar libre: %v", err)
	}
}

func TestCreateCitaConExcepcionCopiaSusLimites(t *testing.T) {
	repo := repoConHorario()
	repo.especificos = []models.HorarioEspecifico{{
		ID: 50, AgendaID: 3, HorarioBaseID: 1, Fecha: lunes,
		HoraInicio: "09:30:00", HoraFin: "11:00:00", Activo: true,
	}}

	uc := NewCreateCita(repo, nil, nil)

	nueva, err := uc.Execute(context.Background(), 9, CreateInput{
		HorarioID: 1, Fecha: lunes, ClienteNombre: "Ana", Servicio: "Corte",
	})
	if err != nil {
		t.Fatalf("creación falló: %v", err)
	}
	if nueva.HoraInicio != "09:30:00" || nueva.HoraFin != "11:00:00" {
		t.Fatalf("debía copiar los límites de la excepción: %+v", nueva)
	}
	// la cita persiste el ancla más específica aunque la petición vino con el
	// id del base
	if nueva.HorarioID != 50 || !nueva.EsEspecifico {
		t.Fatalf("ancla persistida incorrecta: horario_id=%d es_especifico=%v", nueva.HorarioID, nueva.EsEspecifico)
	}

	// y reservar de nuevo por el id de la excepción choca con esa misma cita
	_, err = uc.Execute(context.Background(), 9, CreateInput{
		HorarioID: 50, EsEspecifico: true, Fecha: lunes, ClienteNombre: "Berta", Servicio: "Corte",
	})
	if !httperr.IsBusiness(err, "occurrence_taken") {
		t.Fatalf("ambas anclas apuntan a la misma ocurrencia, err=%v", err)
	}
}

func TestCreateCitaIdRepetidoEntreTablas(t *testing.T) {
	// la excepción ID 1 (anclada al base 2) colisiona con el id del base 1:
	// reservar ambos el mismo día debe funcionar por separado
	repo := repoConHorario()
	repo.horarios = append(repo.horarios, models.Horario{
		ID: 2, AgendaID: 3, Titulo: "Tarde", HoraInicio: "14:00:00",
		HoraFin: "15:00:00", DiaSemana: "lunes", Activo: true,
	})
	repo.especificos = []models.HorarioEspecifico{{
		ID: 1, AgendaID: 3, HorarioBaseID: 2, Fecha: lunes,
		HoraInicio: "16:00:00", HoraFin: "17:00:00", Activo: true,
	}}

	uc := NewCreateCita(repo, nil, nil)

	primera, err := uc.Execute(context.Background(), 9, CreateInput{
		HorarioID: 1, Fecha: lunes, ClienteNombre: "Ana", Servicio: "Corte",
	})
	if err != nil {
		t.Fatalf("reserva del base 1 falló: %v", err)
	}
	if primera.HoraInicio != "09:00:00" || primera.EsEspecifico {
		t.Fatalf("el id base no debe resolver a la excepción: %+v", primera)
	}

	segunda, err := uc.Execute(context.Background(), 9, CreateInput{
		HorarioID: 1, EsEspecifico: true, Fecha: lunes, ClienteNombre: "Berta", Servicio: "Corte",
	})
	if err != nil {
		t.Fatalf("reserva de la excepción 1 falló: %v", err)
	}
	if segunda.HoraInicio != "16:00:00" || !segunda.EsEspecifico {
		t.Fatalf("el id de excepción no debe resolver al base: %+v", segunda)
	}
}

func TestCreateCitaValidaciones(t *testing.T) {
	repo := repoConHorario()
	uc := NewCreateCita(repo, nil, nil)

	casos := []CreateInput{
		{HorarioID: 1, Fecha: lunes, Servicio: "Corte"},                          // sin nombre
		{HorarioID: 1, Fecha: lunes, ClienteNombre: "Ana"},                       // sin servicio
		{HorarioID: 1, Fecha: "10-03-2025", ClienteNombre: "Ana", Servicio: "C"}, // fecha inválida
	}
	for i, in := range casos {
		if _, err := uc.Execute(context.Background(), 9, in); !httperr.IsBusiness(err, "validation_error") {
			t.Fatalf("caso %d debía rechazarse, err=%v", i, err)
		}
	}

	// martes: la plantilla de lunes no aplica
	_, err := uc.Execute(context.Background(), 9, CreateInput{
		HorarioID: 1, Fecha: "2025-03-11", ClienteNombre: "Ana", Servicio: "Corte",
	})
	if !httperr.IsBusiness(err, "occurrence_not_found") {
		t.Fatalf("reservar fuera de la plantilla debía fallar, err=%v", err)
	}
}

func TestUpdateCitaEstados(t *testing.T) {
	repo := repoConHorario()
	repo.citas = []models.Cita{{
		ID: 200, AgendaID: 3, HorarioID: 1, Fecha: lunes,
		ClienteNombre: "Ana", Servicio: "Corte", Estado: "pendiente", CreatedBy: 9,
	}}

	uc := NewUpdateCita(repo, nil, nil)

	cita, err := uc.Execute(context.Background(), 9, "operador", 200, UpdateInput{Estado: "confirmada"})
	if err != nil {
		t.Fatalf("confirmación falló: %v", err)
	}
	if cita.Estado != "confirmada" {
		t.Fatalf("estado no aplicado: %s", cita.Estado)
	}

	// pendiente → completada no es válido (ya está confirmada, completar sí)
	if _, err := uc.Execute(context.Background(), 9, "operador", 200, UpdateInput{Estado: "completada"}); err != nil {
		t.Fatalf("completar una confirmada falló: %v", err)
	}

	if _, err := uc.Execute(context.Background(), 9, "operador", 200, UpdateInput{Estado: "cancelada"}); err != nil {
		t.Fatalf("cancelación falló: %v", err)
	}

	// cancelada es terminal
	_, err = uc.Execute(context.Background(), 9, "operador", 200, UpdateInput{Estado: "pendiente"})
	if !httperr.IsBusiness(err, "invalid_state") {
		t.Fatalf("revivir una cancelada debía fallar, err=%v", err)
	}
}

func TestUpdateCitaPermisos(t *testing.T) {
	repo := repoConHorario()
	repo.citas = []models.Cita{{
		ID: 200, AgendaID: 3, HorarioID: 1, Fecha: lunes,
		Estado: "pendiente", CreatedBy: 9,
	}}

	uc := NewUpdateCita(repo, nil, nil)

	// otro operador no puede tocarla
	_, err := uc.Execute(context.Background(), 10, "operador", 200, UpdateInput{Notas: "x"})
	if !httperr.IsBusiness(err, "forbidden") {
		t.Fatalf("otro operador debía ser rechazado, err=%v", err)
	}

	// el admin sí
	if _, err := uc.Execute(context.Background(), 10, "admin", 200, UpdateInput{Notas: "x"}); err != nil {
		t.Fatalf("el admin debía poder editarla: %v", err)
	}
}

func TestDeleteCita(t *testing.T) {
	repo := repoConHorario()
	repo.citas = []models.Cita{{
		ID: 200, AgendaID: 3, HorarioID: 1, Fecha: lunes,
		Estado: "pendiente", CreatedBy: 9,
	}}

	uc := NewDeleteCita(repo, nil, nil)

	if err := uc.Execute(context.Background(), 10, "operador", 200); !httperr.IsBusiness(err, "forbidden") {
		t.Fatalf("otro operador debía ser rechazado, err=%v", err)
	}

	if err := uc.Execute(context.Background(), 9, "operador", 200); err != nil {
		t.Fatalf("eliminación falló: %v", err)
	}
	if len(repo.citas) != 0 {
		t.Fatal("la cita debía desaparecer")
	}

	if err := uc.Execute(context.Background(), 9, "operador", 200); !httperr.IsBusiness(err, "cita_not_found") {
		t.Fatalf("eliminar dos veces debía fallar, err=%v", err)
	}
}
