package schedule

import (
	"context"
	"time"

	"github.com/serviplan/agenda-api/internal/httperr"
	"github.com/serviplan/agenda-api/internal/models"
)

// OcurrenciaObjetivo es la ocurrencia contra la que se va a reservar:
// los límites horarios se copian a la cita al crearla y las anclas alimentan
// el chequeo de conflicto (una cita hecha contra el base sigue bloqueando
// después de que aparece la excepción, y al revés).
type OcurrenciaObjetivo struct {
	AgendaID   uint
	Anclas     []CitaAncla
	HoraInicio string
	HoraFin    string
}

// Principal es el ancla que la cita persiste: la más específica, para que el
// índice único parcial detecte dobles reservas aun cuando una llegó por el id
// del base y la otra por el de la excepción.
func (o *OcurrenciaObjetivo) Principal() CitaAncla {
	return o.Anclas[0]
}

// ResolverObjetivo localiza la ocurrencia que (horarioID, esEspecifico)
// identifica en la fecha dada, tal como la entregó la vista resuelta. La
// bandera distingue la tabla: base y excepciones llevan ids independientes.
func ResolverObjetivo(
	ctx context.Context,
	repo Repository,
	horarioID uint,
	esEspecifico bool,
	fecha string,
) (*OcurrenciaObjetivo, error) {

	if !FechaValida(fecha) {
		return nil, httperr.ErrBusiness("validation_error")
	}

	if esEspecifico {
		esp, err := repo.GetHorarioEspecifico(ctx, horarioID)
		if err != nil {
			return nil, httperr.ErrBusiness("occurrence_not_found")
		}
		if esp.Fecha != fecha || !esp.Activo {
			return nil, httperr.ErrBusiness("occurrence_not_found")
		}
		return objetivoDeEspecifico(esp), nil
	}

	// La vista del cliente pudo quedar vieja: si el base ya materializó una
	// excepción para la fecha, la excepción manda. Inactiva = la ocurrencia
	// no existe ese día.
	esp, err := repo.FindHorarioEspecifico(ctx, horarioID, fecha)
	if err != nil {
		return nil, err
	}
	if esp != nil {
		if !esp.Activo {
			return nil, httperr.ErrBusiness("occurrence_not_found")
		}
		return objetivoDeEspecifico(esp), nil
	}

	h, err := repo.GetHorario(ctx, horarioID)
	if err != nil {
		return nil, httperr.ErrBusiness("occurrence_not_found")
	}
	if !h.Activo {
		return nil, httperr.ErrBusiness("occurrence_not_found")
	}
	if h.Fecha != "" && h.Fecha != fecha {
		return nil, httperr.ErrBusiness("occurrence_not_found")
	}
	if h.Fecha == "" {
		dia, _ := time.Parse(FechaLayout, fecha)
		if DiaSemana(h.DiaSemana) != DiaSemanaDe(dia.Weekday()) {
			return nil, httperr.ErrBusiness("occurrence_not_found")
		}
	}
	return &OcurrenciaObjetivo{
		AgendaID:   h.AgendaID,
		Anclas:     []CitaAncla{{HorarioID: h.ID}},
		HoraInicio: h.HoraInicio,
		HoraFin:    h.HoraFin,
	}, nil
}

func objetivoDeEspecifico(esp *models.HorarioEspecifico) *OcurrenciaObjetivo {
	anclas := []CitaAncla{{HorarioID: esp.ID, EsEspecifico: true}}
	if esp.HorarioBaseID != 0 {
		anclas = append(anclas, CitaAncla{HorarioID: esp.HorarioBaseID})
	}
	return &OcurrenciaObjetivo{
		AgendaID:   esp.AgendaID,
		Anclas:     anclas,
		HoraInicio: esp.HoraInicio,
		HoraFin:    esp.HoraFin,
	}
}
