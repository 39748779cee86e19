package schedule

import (
	"testing"
	"time"

	"github.com/serviplan/agenda-api/internal/models"
)

// 2025-03-10 es lunes
const lunes = "2025-03-10"

func horarioLunes(id uint, inicio, fin string) models.Horario {
	return models.Horario{
		ID:         id,
		AgendaID:   1,
		Titulo:     "Corte",
		HoraInicio: inicio,
		HoraFin:    fin,
		DiaSemana:  "lunes",
		Color:      "#3B82F6",
		Activo:     true,
	}
}

func TestResolverDiaPlantillaSemanal(t *testing.T) {
	horarios := []models.Horario{horarioLunes(1, "09:00:00", "10:00:00")}

	views := ResolverDia(lunes, horarios, nil, nil)
	if len(views) != 1 {
		t.Fatalf("esperaba 1 ocurrencia, hay %d", len(views))
	}
	if !views[0].Disponible {
		t.Fatal("sin citas la ocurrencia debe estar disponible")
	}
	if views[0].EsEspecifico {
		t.Fatal("sin excepción el origen debe ser el horario base")
	}

	// martes: la plantilla de lunes no aplica
	views = ResolverDia("2025-03-11", horarios, nil, nil)
	if len(views) != 0 {
		t.Fatalf("esperaba 0 ocurrencias en martes, hay %d", len(views))
	}
}

func TestResolverDiaHorarioInactivoSeOmite(t *testing.T) {
	h := horarioLunes(1, "09:00:00", "10:00:00")
	h.Activo = false

	views := ResolverDia(lunes, []models.Horario{h}, nil, nil)
	if len(views) != 0 {
		t.Fatalf("horario inactivo no debe renderizarse, hay %d", len(views))
	}
}

func TestResolverDiaExcepcionReemplazaCampos(t *testing.T) {
	horarios := []models.Horario{horarioLunes(1, "09:00:00", "10:00:00")}
	especificos := []models.HorarioEspecifico{{
		ID:            50,
		AgendaID:      1,
		HorarioBaseID: 1,
		Fecha:         lunes,
		Titulo:        "Corte extendido",
		HoraInicio:    "09:30:00",
		HoraFin:       "11:00:00",
		Activo:        true,
	}}

	views := ResolverDia(lunes, horarios, especificos, nil)
	if len(views) != 1 {
		t.Fatalf("esperaba 1 ocurrencia, hay %d", len(views))
	}
	v := views[0]
	if v.ID != 50 || !v.EsEspecifico {
		t.Fatalf("la excepción debe reemplazar al base: id=%d es_especifico=%v", v.ID, v.EsEspecifico)
	}
	if v.Titulo != "Corte extendido" || v.HoraInicio != "09:30:00" || v.HoraFin != "11:00:00" {
		t.Fatalf("campos del snapshot no aplicados: %+v", v)
	}
}

func TestResolverDiaExcepcionInactivaOmiteOcurrencia(t *testing.T) {
	horarios := []models.Horario{horarioLunes(1, "09:00:00", "10:00:00")}
	especificos := []models.HorarioEspecifico{{
		ID:            50,
		HorarioBaseID: 1,
		Fecha:         lunes,
		HoraInicio:    "09:00:00",
		HoraFin:       "10:00:00",
		Activo:        false,
	}}

	views := ResolverDia(lunes, horarios, especificos, nil)
	if len(views) != 0 {
		t.Fatalf("excepción inactiva debe omitir la ocurrencia, hay %d", len(views))
	}

	// en otra fecha la plantilla sigue intacta
	views = ResolverDia("2025-03-17", horarios, especificos, nil)
	if len(views) != 1 {
		t.Fatalf("la excepción no debe afectar otras fechas, hay %d", len(views))
	}
}

func TestResolverDiaExcepcionSobreviveAlBase(t *testing.T) {
	esp := models.HorarioEspecifico{
		ID:            50,
		HorarioBaseID: 1,
		Fecha:         lunes,
		Titulo:        "Turno especial",
		HoraInicio:    "14:00:00",
		HoraFin:       "15:00:00",
		Activo:        true,
	}

	// base desactivado
	h := horarioLunes(1, "09:00:00", "10:00:00")
	h.Activo = false
	views := ResolverDia(lunes, []models.Horario{h}, []models.HorarioEspecifico{esp}, nil)
	if len(views) != 1 || views[0].ID != 50 {
		t.Fatalf("la excepción activa manda sobre el base inactivo: %+v", views)
	}

	// base movido de día de la semana
	h = horarioLunes(1, "09:00:00", "10:00:00")
	h.DiaSemana = "viernes"
	views = ResolverDia(lunes, []models.Horario{h}, []models.HorarioEspecifico{esp}, nil)
	if len(views) != 1 || views[0].ID != 50 {
		t.Fatalf("la excepción activa manda sobre el cambio de día: %+v", views)
	}

	// base eliminado (huérfana)
	views = ResolverDia(lunes, nil, []models.HorarioEspecifico{esp}, nil)
	if len(views) != 1 || views[0].ID != 50 {
		t.Fatalf("la excepción huérfana debe renderizarse con su snapshot: %+v", views)
	}
	if views[0].Titulo != "Turno especial" {
		t.Fatalf("snapshot no conservado: %+v", views[0])
	}
}

func TestResolverDiaCitaOcupaOcurrencia(t *testing.T) {
	horarios := []models.Horario{horarioLunes(1, "09:00:00", "10:00:00")}
	citas := []models.Cita{{
		ID:            7,
		HorarioID:     1,
		ClienteNombre: "Ana",
		Servicio:      "Corte",
		Fecha:         lunes,
		Estado:        "pendiente",
	}}

	views := ResolverDia(lunes, horarios, nil, citas)
	if len(views) != 1 {
		t.Fatalf("esperaba 1 ocurrencia, hay %d", len(views))
	}
	if views[0].Disponible {
		t.Fatal("ocurrencia con cita activa debe estar ocupada")
	}
	if views[0].Cita == nil || views[0].Cita.ClienteNombre != "Ana" {
		t.Fatalf("resumen de cita ausente o incorrecto: %+v", views[0].Cita)
	}
}

func TestResolverDiaCitaCanceladaLibera(t *testing.T) {
	horarios := []models.Horario{horarioLunes(1, "09:00:00", "10:00:00")}
	citas := []models.Cita{{
		ID:        7,
		HorarioID: 1,
		Fecha:     lunes,
		Estado:    "cancelada",
	}}

	views := ResolverDia(lunes, horarios, nil, citas)
	if !views[0].Disponible {
		t.Fatal("cita cancelada no ocupa la ocurrencia")
	}
	if views[0].Cita != nil {
		t.Fatal("cita cancelada no debe adjuntarse a la vista")
	}
}

func TestResolverDiaCitaContraBaseBloqueaExcepcion(t *testing.T) {
	horarios := []models.Horario{horarioLunes(1, "09:00:00", "10:00:00")}
	especificos := []models.HorarioEspecifico{{
		ID:            50,
		HorarioBaseID: 1,
		Fecha:         lunes,
		HoraInicio:    "09:30:00",
		HoraFin:       "11:00:00",
		Activo:        true,
	}}

	// la cita fue hecha contra el id del base, antes de existir la excepción
	citas := []models.Cita{{ID: 7, HorarioID: 1, Fecha: lunes, Estado: "confirmada"}}

	views := ResolverDia(lunes, horarios, especificos, citas)
	if len(views) != 1 {
		t.Fatalf("esperaba 1 ocurrencia, hay %d", len(views))
	}
	if views[0].Disponible {
		t.Fatal("la cita contra el base debe seguir bloqueando la ocurrencia con excepción")
	}
}

func TestResolverDiaCitaSeConsumeUnaSolaVez(t *testing.T) {
	// dos plantillas distintas; la cita apunta solo a la primera
	horarios := []models.Horario{
		horarioLunes(1, "09:00:00", "10:00:00"),
		horarioLunes(2, "09:00:00", "10:00:00"),
	}
	citas := []models.Cita{{ID: 7, HorarioID: 1, Fecha: lunes, Estado: "pendiente"}}

	views := ResolverDia(lunes, horarios, nil, citas)
	if len(views) != 2 {
		t.Fatalf("esperaba 2 ocurrencias, hay %d", len(views))
	}

	ocupadas := 0
	for _, v := range views {
		if !v.Disponible {
			ocupadas++
		}
	}
	if ocupadas != 1 {
		t.Fatalf("una cita debe ocupar exactamente una ocurrencia, ocupó %d", ocupadas)
	}
}

func TestResolverDiaCitaConIdRepetidoEntreTablas(t *testing.T) {
	// base y excepciones llevan secuencias de id independientes: aquí la
	// excepción ID 1 (anclada al base 2) colisiona con el id del base 1
	horarios := []models.Horario{
		horarioLunes(1, "09:00:00", "10:00:00"),
		horarioLunes(2, "14:00:00", "15:00:00"),
	}
	especificos := []models.HorarioEspecifico{{
		ID:            1,
		AgendaID:      1,
		HorarioBaseID: 2,
		Titulo:        "Base dos movido",
		Fecha:         lunes,
		HoraInicio:    "16:00:00",
		HoraFin:       "17:00:00",
		Activo:        true,
	}}

	// la cita fue hecha contra el horario base 1, no contra la excepción
	citas := []models.Cita{{
		ID:            7,
		HorarioID:     1,
		ClienteNombre: "Ana",
		Fecha:         lunes,
		Estado:        "pendiente",
	}}

	views := ResolverDia(lunes, horarios, especificos, citas)
	if len(views) != 2 {
		t.Fatalf("esperaba 2 ocurrencias, hay %d", len(views))
	}

	for _, v := range views {
		switch {
		case !v.EsEspecifico && v.ID == 1:
			if v.Disponible || v.Cita == nil || v.Cita.ClienteNombre != "Ana" {
				t.Fatalf("la cita debe quedar en el horario base 1: %+v", v)
			}
		case v.EsEspecifico && v.ID == 1:
			if !v.Disponible || v.Cita != nil {
				t.Fatalf("la excepción con id repetido no debe capturar la cita: %+v", v)
			}
		default:
			t.Fatalf("ocurrencia inesperada: %+v", v)
		}
	}

	// y al revés: una cita hecha contra la excepción no toca el base 1
	citas[0].EsEspecifico = true
	views = ResolverDia(lunes, horarios, especificos, citas)
	for _, v := range views {
		if !v.EsEspecifico && v.ID == 1 && !v.Disponible {
			t.Fatalf("el horario base 1 debe seguir libre: %+v", v)
		}
		if v.EsEspecifico && v.ID == 1 && v.Disponible {
			t.Fatalf("la excepción debe quedar ocupada: %+v", v)
		}
	}
}

func TestResolverDiaCitaHuerfanaNoAparece(t *testing.T) {
	// cita cuyo horario ya no existe
	citas := []models.Cita{{ID: 7, HorarioID: 99, Fecha: lunes, Estado: "pendiente"}}

	views := ResolverDia(lunes, nil, nil, citas)
	if len(views) != 0 {
		t.Fatalf("cita huérfana no debe producir ocurrencias, hay %d", len(views))
	}
}

func TestResolverDiaOrdenPorHoraInicio(t *testing.T) {
	horarios := []models.Horario{
		horarioLunes(3, "15:00:00", "16:00:00"),
		horarioLunes(1, "09:00:00", "10:00:00"),
		horarioLunes(2, "11:00:00", "12:00:00"),
	}

	views := ResolverDia(lunes, horarios, nil, nil)
	if len(views) != 3 {
		t.Fatalf("esperaba 3 ocurrencias, hay %d", len(views))
	}
	for i := 1; i < len(views); i++ {
		if views[i-1].HoraInicio > views[i].HoraInicio {
			t.Fatalf("vistas fuera de orden: %s > %s", views[i-1].HoraInicio, views[i].HoraInicio)
		}
	}
}

func TestResolverDiaHorarioPersonalizadoDeUnDia(t *testing.T) {
	h := models.Horario{
		ID:         4,
		AgendaID:   1,
		Titulo:     "Jornada puntual",
		HoraInicio: "08:00:00",
		HoraFin:    "09:00:00",
		Fecha:      lunes,
		Activo:     true,
	}

	views := ResolverDia(lunes, []models.Horario{h}, nil, nil)
	if len(views) != 1 {
		t.Fatalf("el horario de un día debe renderizarse en su fecha, hay %d", len(views))
	}

	views = ResolverDia("2025-03-17", []models.Horario{h}, nil, nil)
	if len(views) != 0 {
		t.Fatalf("el horario de un día no debe repetirse otras semanas, hay %d", len(views))
	}
}

func TestResolverDiaEsIdempotente(t *testing.T) {
	horarios := []models.Horario{
		horarioLunes(1, "09:00:00", "10:00:00"),
		horarioLunes(2, "11:00:00", "12:00:00"),
	}
	especificos := []models.HorarioEspecifico{{
		ID: 50, HorarioBaseID: 1, Fecha: lunes,
		HoraInicio: "09:30:00", HoraFin: "10:30:00", Activo: true,
	}}
	citas := []models.Cita{{ID: 7, HorarioID: 2, Fecha: lunes, Estado: "pendiente"}}

	primera := ResolverDia(lunes, horarios, especificos, citas)
	segunda := ResolverDia(lunes, horarios, especificos, citas)

	if len(primera) != len(segunda) {
		t.Fatalf("longitudes distintas: %d vs %d", len(primera), len(segunda))
	}
	for i := range primera {
		if primera[i].ID != segunda[i].ID ||
			primera[i].Disponible != segunda[i].Disponible ||
			primera[i].HoraInicio != segunda[i].HoraInicio {
			t.Fatalf("resolución no determinista en %d: %+v vs %+v", i, primera[i], segunda[i])
		}
	}
}

func TestConstruirCalendarioMes(t *testing.T) {
	horarios := []models.Horario{horarioLunes(1, "09:00:00", "10:00:00")}

	cal := ConstruirCalendarioMes(2025, time.March, lunes, horarios, nil, nil)

	if cal.Mes != 3 || cal.Anio != 2025 || cal.NombreMes != "Marzo" {
		t.Fatalf("encabezado incorrecto: %+v", cal)
	}
	if len(cal.Calendario) != 31 {
		t.Fatalf("marzo tiene 31 días, hay %d", len(cal.Calendario))
	}

	var hoyMarcados, pasados, conHorarios int
	for _, d := range cal.Calendario {
		if d.EsHoy {
			hoyMarcados++
			if d.Fecha != lunes {
				t.Fatalf("es_hoy en fecha equivocada: %s", d.Fecha)
			}
		}
		if d.EsPasado {
			pasados++
		}
		if len(d.Horarios) > 0 {
			conHorarios++
		}
	}

	if hoyMarcados != 1 {
		t.Fatalf("exactamente un día debe ser hoy, hay %d", hoyMarcados)
	}
	// del 1 al 9 de marzo
	if pasados != 9 {
		t.Fatalf("esperaba 9 días pasados, hay %d", pasados)
	}
	// lunes de marzo 2025: 3, 10, 17, 24, 31
	if conHorarios != 5 {
		t.Fatalf("esperaba 5 lunes con horarios, hay %d", conHorarios)
	}
}

func TestMesRango(t *testing.T) {
	desde, hasta := MesRango(2025, time.February)
	if desde != "2025-02-01" || hasta != "2025-02-28" {
		t.Fatalf("rango de febrero incorrecto: %s .. %s", desde, hasta)
	}

	desde, hasta = MesRango(2024, time.February)
	if desde != "2024-02-01" || hasta != "2024-02-29" {
		t.Fatalf("rango de febrero bisiesto incorrecto: %s .. %s", desde, hasta)
	}
}
