package models

import "time"

// HorarioEspecifico es la excepción de un horario base para una sola fecha.
// Los campos son un snapshot del horario base al momento de crearla:
// ediciones posteriores del base no se propagan.
type HorarioEspecifico struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// AgendaID se copia del horario base para que la excepción siga siendo
	// atribuible aunque el base se elimine después.
	AgendaID uint `gorm:"index" json:"agenda_id"`

	HorarioBaseID uint   `gorm:"not null;uniqueIndex:idx_horario_especifico_ancla" json:"horario_base_id"`
	Fecha         string `gorm:"size:10;not null;uniqueIndex:idx_horario_especifico_ancla" json:"fecha"`

	Titulo     string `gorm:"size:100;not null" json:"titulo"`
	HoraInicio string `gorm:"size:8;not null" json:"hora_inicio"`
	HoraFin    string `gorm:"size:8;not null" json:"hora_fin"`

	Color  string `gorm:"size:20" json:"color"`
	Notas  string `gorm:"size:255" json:"notas,omitempty"`
	Activo bool   `gorm:"default:true" json:"activo"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (HorarioEspecifico) TableName() string {
	return "horarios_especificos"
}
