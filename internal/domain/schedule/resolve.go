package schedule

import (
	"sort"
	"time"

	"github.com/serviplan/agenda-api/internal/models"
)

const FechaLayout = "2006-01-02"

var nombresMeses = [12]string{
	"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
	"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
}

func NombreMes(mes time.Month) string {
	return nombresMeses[int(mes)-1]
}

func FechaValida(fecha string) bool {
	_, err := time.Parse(FechaLayout, fecha)
	return err == nil
}

func FormatFecha(t time.Time) string {
	return t.Format(FechaLayout)
}

// MesRango devuelve la primera y la última fecha (inclusive) del mes.
func MesRango(anio int, mes time.Month) (string, string) {
	primero := time.Date(anio, mes, 1, 0, 0, 0, 0, time.UTC)
	ultimo := time.Date(anio, mes+1, 0, 0, 0, 0, 0, time.UTC)
	return FormatFecha(primero), FormatFecha(ultimo)
}

// ResolverDia materializa la vista de disponibilidad de una fecha:
// los horarios base activos del día de la semana, cada uno reemplazado por su
// excepción (mismo base, misma fecha) cuando existe; los inactivos se omiten
// por completo. Cada ocurrencia restante queda no disponible si tiene una
// cita activa, con el resumen de la cita adjunto. La presencia de una cita
// manda sobre cualquier bandera de disponibilidad.
//
// Filas huérfanas (excepciones o citas cuyo horario base fue eliminado) no
// rompen la resolución: la excepción activa se sigue renderizando con su
// snapshot y la cita sin ocurrencia simplemente no aparece.
func ResolverDia(
	fecha string,
	horarios []models.Horario,
	especificos []models.HorarioEspecifico,
	citas []models.Cita,
) []OcurrenciaView {

	dia, err := time.Parse(FechaLayout, fecha)
	if err != nil {
		return []OcurrenciaView{}
	}
	diaSemana := DiaSemanaDe(dia.Weekday())

	porBase := make(map[uint]*models.HorarioEspecifico)
	for i := range especificos {
		if especificos[i].Fecha == fecha {
			porBase[especificos[i].HorarioBaseID] = &especificos[i]
		}
	}

	var ocurrencias []Ocurrencia
	ligados := make(map[uint]bool)

	for i := range horarios {
		h := &horarios[i]

		// horario personalizado de un solo día
		if h.Fecha != "" && h.Fecha != fecha {
			continue
		}
		if h.Fecha == "" && DiaSemana(h.DiaSemana) != diaSemana {
			continue
		}

		if esp, ok := porBase[h.ID]; ok {
			ligados[esp.ID] = true
			if esp.Activo {
				ocurrencias = append(ocurrencias, Ocurrencia{Base: h, Especifico: esp})
			}
			continue
		}

		if h.Activo {
			ocurrencias = append(ocurrencias, Ocurrencia{Base: h})
		}
	}

	// Excepciones activas cuyo base no materializó el día (base eliminado,
	// desactivado o movido de día de la semana): la excepción manda sobre la
	// existencia, así que se renderizan igual.
	for i := range especificos {
		esp := &especificos[i]
		if esp.Fecha != fecha || ligados[esp.ID] || !esp.Activo {
			continue
		}
		var base *models.Horario
		for j := range horarios {
			if horarios[j].ID == esp.HorarioBaseID {
				base = &horarios[j]
				break
			}
		}
		ocurrencias = append(ocurrencias, Ocurrencia{Base: base, Especifico: esp})
	}

	sort.SliceStable(ocurrencias, func(i, j int) bool {
		if ocurrencias[i].HoraInicio() != ocurrencias[j].HoraInicio() {
			return ocurrencias[i].HoraInicio() < ocurrencias[j].HoraInicio()
		}
		return ocurrencias[i].ID() < ocurrencias[j].ID()
	})

	porAncla := make(map[CitaAncla][]*models.Cita)
	for i := range citas {
		ci := &citas[i]
		if ci.Fecha != fecha || !Estado(ci.Estado).Activa() {
			continue
		}
		ancla := CitaAncla{HorarioID: ci.HorarioID, EsEspecifico: ci.EsEspecifico}
		porAncla[ancla] = append(porAncla[ancla], ci)
	}

	// cada cita se liga a lo sumo a una ocurrencia
	consumidas := make(map[uint]bool)

	views := make([]OcurrenciaView, 0, len(ocurrencias))
	for _, o := range ocurrencias {
		view := OcurrenciaView{
			ID:           o.ID(),
			Titulo:       o.Titulo(),
			HoraInicio:   o.HoraInicio(),
			HoraFin:      o.HoraFin(),
			Color:        o.Color(),
			Notas:        o.Notas(),
			Disponible:   true,
			EsEspecifico: o.EsEspecifica(),
		}

		for _, a := range o.Anclas() {
			for _, ci := range porAncla[a] {
				if consumidas[ci.ID] {
					continue
				}
				consumidas[ci.ID] = true
				view.Disponible = false
				view.Cita = &CitaResumen{
					ID:              ci.ID,
					ClienteNombre:   ci.ClienteNombre,
					ClienteTelefono: ci.ClienteTelefono,
					Servicio:        ci.Servicio,
					Estado:          ci.Estado,
					Notas:           ci.Notas,
				}
				break
			}
			if !view.Disponible {
				break
			}
		}

		views = append(views, view)
	}

	return views
}

// ===============================
// Calendario mensual
// ===============================

type DiaCalendario struct {
	Dia       int              `json:"dia"`
	Fecha     string           `json:"fecha"`
	DiaSemana string           `json:"dia_semana"`
	EsHoy     bool             `json:"es_hoy"`
	EsPasado  bool             `json:"es_pasado"`
	Horarios  []OcurrenciaView `json:"horarios"`
}

type CalendarioMes struct {
	Mes        int             `json:"mes"`
	Anio       int             `json:"anio"`
	NombreMes  string          `json:"nombre_mes"`
	Calendario []DiaCalendario `json:"calendario"`
}

// ConstruirCalendarioMes resuelve todos los días del mes. hoy viene inyectado
// (formato YYYY-MM-DD) para que la resolución sea determinista.
func ConstruirCalendarioMes(
	anio int,
	mes time.Month,
	hoy string,
	horarios []models.Horario,
	especificos []models.HorarioEspecifico,
	citas []models.Cita,
) CalendarioMes {

	ultimo := time.Date(anio, mes+1, 0, 0, 0, 0, 0, time.UTC)
	dias := make([]DiaCalendario, 0, ultimo.Day())

	for d := 1; d <= ultimo.Day(); d++ {
		t := time.Date(anio, mes, d, 0, 0, 0, 0, time.UTC)
		fecha := FormatFecha(t)

		dias = append(dias, DiaCalendario{
			Dia:       d,
			Fecha:     fecha,
			DiaSemana: string(DiaSemanaDe(t.Weekday())),
			EsHoy:     fecha == hoy,
			EsPasado:  fecha < hoy,
			Horarios:  ResolverDia(fecha, horarios, especificos, citas),
		})
	}

	return CalendarioMes{
		Mes:        int(mes),
		Anio:       anio,
		NombreMes:  NombreMes(mes),
		Calendario: dias,
	}
}
