package db

import (
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/serviplan/agenda-api/internal/config"
	"github.com/serviplan/agenda-api/internal/models"
)

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.Operador{},
		&models.Agenda{},
		&models.Horario{},
		&models.HorarioEspecifico{},
		&models.Cita{},
		&models.PersonaListaEspera{},
		&models.User{},
		&models.AuditLog{},
	); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	// A lo sumo una cita activa por (ancla, fecha). El ancla incluye
	// es_especifico porque base y excepciones llevan ids independientes. El
	// recuento dentro de la transacción cierra la ventana de carrera; este
	// índice parcial es la garantía atómica del lado de la base.
	db.Exec(`
        CREATE UNIQUE INDEX IF NOT EXISTS idx_citas_ocurrencia_activa
        ON citas (horario_id, es_especifico, fecha)
        WHERE estado <> 'cancelada'
    `)

	return db
}
