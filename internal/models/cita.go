package models

import "time"

type Cita struct {
	ID uint `gorm:"primaryKey" json:"id"`

	AgendaID uint   `gorm:"index" json:"agenda_id"`
	Agenda   Agenda `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"agenda"`

	// HorarioID apunta al horario base o al horario específico contra el que
	// se reservó; sin FK porque puede referenciar cualquiera de las dos tablas.
	// EsEspecifico distingue la tabla: las dos llevan secuencias de id
	// independientes y el mismo número puede existir en ambas.
	HorarioID    uint `gorm:"index" json:"horario_id"`
	EsEspecifico bool `gorm:"default:false" json:"es_especifico"`

	ClienteNombre   string `gorm:"size:100;not null" json:"cliente_nombre"`
	ClienteTelefono string `gorm:"size:20" json:"cliente_telefono,omitempty"`
	ClienteEmail    string `gorm:"size:100" json:"cliente_email,omitempty"`

	Servicio string `gorm:"size:150;not null" json:"servicio"`

	Fecha string `gorm:"size:10;not null;index" json:"fecha"`

	// Copiadas de la ocurrencia al reservar; sobreviven a ediciones del horario.
	HoraInicio string `gorm:"size:8;not null" json:"hora_inicio"`
	HoraFin    string `gorm:"size:8;not null" json:"hora_fin"`

	Estado string `gorm:"size:20;default:'pendiente'" json:"estado"`
	Notas  string `gorm:"size:255" json:"notas,omitempty"`

	CreatedBy uint `json:"created_by"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
