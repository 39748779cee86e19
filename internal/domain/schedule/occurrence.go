package schedule

import "github.com/serviplan/agenda-api/internal/models"

// Ocurrencia es la unión etiquetada que resuelve la precedencia
// específico > base antes de cualquier chequeo de disponibilidad:
// Base(horario) cuando la fecha no tiene excepción, Especifica(base?, esp)
// cuando sí. Base puede ser nil en excepciones huérfanas (horario eliminado).
type Ocurrencia struct {
	Base       *models.Horario
	Especifico *models.HorarioEspecifico
}

func (o Ocurrencia) EsEspecifica() bool {
	return o.Especifico != nil
}

// ID es el identificador con el que la ocurrencia se presenta y reserva.
func (o Ocurrencia) ID() uint {
	if o.Especifico != nil {
		return o.Especifico.ID
	}
	return o.Base.ID
}

// CitaAncla es la referencia completa de una reserva: el id solo no alcanza
// porque horarios y excepciones llevan secuencias de id independientes, así
// que el mismo número puede existir en las dos tablas a la vez.
type CitaAncla struct {
	HorarioID    uint
	EsEspecifico bool
}

// Anclas devuelve todas las referencias contra las que puede existir una
// cita de la ocurrencia, la más específica primero: una reserva hecha contra
// el horario base sigue valiendo después de que la fecha materializa una
// excepción.
func (o Ocurrencia) Anclas() []CitaAncla {
	if o.Especifico == nil {
		return []CitaAncla{{HorarioID: o.Base.ID}}
	}
	anclas := []CitaAncla{{HorarioID: o.Especifico.ID, EsEspecifico: true}}
	if o.Especifico.HorarioBaseID != 0 {
		anclas = append(anclas, CitaAncla{HorarioID: o.Especifico.HorarioBaseID})
	}
	return anclas
}

func (o Ocurrencia) Titulo() string {
	if o.Especifico != nil {
		return o.Especifico.Titulo
	}
	return o.Base.Titulo
}

func (o Ocurrencia) HoraInicio() string {
	if o.Especifico != nil {
		return o.Especifico.HoraInicio
	}
	return o.Base.HoraInicio
}

func (o Ocurrencia) HoraFin() string {
	if o.Especifico != nil {
		return o.Especifico.HoraFin
	}
	return o.Base.HoraFin
}

func (o Ocurrencia) Color() string {
	if o.Especifico != nil {
		return o.Especifico.Color
	}
	return o.Base.Color
}

func (o Ocurrencia) Notas() string {
	if o.Especifico != nil {
		return o.Especifico.Notas
	}
	return o.Base.Notas
}

// Activa decide la existencia de la ocurrencia: la excepción manda sobre el
// base, incluso si el base está inactivo o eliminado.
func (o Ocurrencia) Activa() bool {
	if o.Especifico != nil {
		return o.Especifico.Activo
	}
	return o.Base.Activo
}

// ===============================
// Vistas resueltas (solo lectura)
// ===============================

type CitaResumen struct {
	ID              uint   `json:"id"`
	ClienteNombre   string `json:"cliente_nombre"`
	ClienteTelefono string `json:"cliente_telefono,omitempty"`
	Servicio        string `json:"servicio"`
	Estado          string `json:"estado"`
	Notas           string `json:"notas,omitempty"`
}

type OcurrenciaView struct {
	ID           uint         `json:"id"`
	Titulo       string       `json:"titulo"`
	HoraInicio   string       `json:"hora_inicio"`
	HoraFin      string       `json:"hora_fin"`
	Color        string       `json:"color"`
	Notas        string       `json:"notas,omitempty"`
	Disponible   bool         `json:"disponible"`
	EsEspecifico bool         `json:"es_especifico"`
	Cita         *CitaResumen `json:"cita,omitempty"`
}
