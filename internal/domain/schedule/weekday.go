package schedule

import "time"

// ===============================
// Día de la semana
// ===============================

type DiaSemana string

const (
	Domingo   DiaSemana = "domingo"
	Lunes     DiaSemana = "lunes"
	Martes    DiaSemana = "martes"
	Miercoles DiaSemana = "miercoles"
	Jueves    DiaSemana = "jueves"
	Viernes   DiaSemana = "viernes"
	Sabado    DiaSemana = "sabado"
)

// índice = time.Weekday (0 = domingo)
var diasOrden = [7]DiaSemana{
	Domingo, Lunes, Martes, Miercoles, Jueves, Viernes, Sabado,
}

func DiaSemanaDe(w time.Weekday) DiaSemana {
	return diasOrden[int(w)]
}

func (d DiaSemana) Valido() bool {
	for _, v := range diasOrden {
		if v == d {
			return true
		}
	}
	return false
}
