package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/serviplan/agenda-api/internal/audit"
	"github.com/serviplan/agenda-api/internal/cache"
	"github.com/serviplan/agenda-api/internal/config"
	"github.com/serviplan/agenda-api/internal/handlers"
	infraRepo "github.com/serviplan/agenda-api/internal/infra/repository"
	"github.com/serviplan/agenda-api/internal/middleware"
	ucAgenda "github.com/serviplan/agenda-api/internal/usecase/agenda"
	ucCita "github.com/serviplan/agenda-api/internal/usecase/cita"
	ucLista "github.com/serviplan/agenda-api/internal/usecase/listaespera"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, rdb *redis.Client, cfg *config.Config) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	scheduleRepo := infraRepo.NewScheduleGormRepository(db)

	calCache := cache.NewCalendarCache(rdb, time.Duration(cfg.CacheTTLSeconds)*time.Second)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	// ======================================================
	// USE CASES — VISTAS RESUELTAS
	// ======================================================
	obtenerCalendarioUC := ucAgenda.NewObtenerCalendario(scheduleRepo, calCache)
	consultarEspaciosUC := ucAgenda.NewConsultarEspacios(scheduleRepo)
	tiempoRealUC := ucAgenda.NewDisponibilidadTiempoReal(scheduleRepo)

	// ======================================================
	// USE CASES — MUTACIONES DE OCURRENCIA
	// ======================================================
	editarOcurrenciaUC := ucAgenda.NewEditarOcurrencia(scheduleRepo, calCache, auditDispatcher)
	desactivarOcurrenciaUC := ucAgenda.NewDesactivarOcurrencia(scheduleRepo, calCache, auditDispatcher)
	restaurarOcurrenciaUC := ucAgenda.NewRestaurarOcurrencia(scheduleRepo, calCache, auditDispatcher)

	crearEspecificoUC := ucAgenda.NewCrearHorarioEspecifico(scheduleRepo, calCache, auditDispatcher)
	modificarEspecificoUC := ucAgenda.NewModificarHorarioEspecifico(scheduleRepo, calCache, auditDispatcher)
	eliminarEspecificoUC := ucAgenda.NewEliminarHorarioEspecifico(scheduleRepo, calCache, auditDispatcher)

	// ======================================================
	// USE CASES — CITAS Y LISTA DE ESPERA
	// ======================================================
	crearCitaUC := ucCita.NewCreateCita(scheduleRepo, calCache, auditDispatcher)
	actualizarCitaUC := ucCita.NewUpdateCita(scheduleRepo, calCache, auditDispatcher)
	eliminarCitaUC := ucCita.NewDeleteCita(scheduleRepo, calCache, auditDispatcher)

	asignarCitaUC := ucLista.NewAsignarCita(scheduleRepo, calCache, auditDispatcher)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)

	operadorHandler := handlers.NewOperadorHandler(db)
	agendaHandler := handlers.NewAgendaHandler(db, calCache, auditDispatcher)
	horarioHandler := handlers.NewHorarioHandler(db, calCache, auditDispatcher)

	horarioEspecificoHandler := handlers.NewHorarioEspecificoHandler(
		db,
		crearEspecificoUC,
		modificarEspecificoUC,
		eliminarEspecificoUC,
	)

	calendarioHandler := handlers.NewCalendarioHandler(
		obtenerCalendarioUC,
		consultarEspaciosUC,
		tiempoRealUC,
		editarOcurrenciaUC,
		desactivarOcurrenciaUC,
		restaurarOcurrenciaUC,
	)

	citaHandler := handlers.NewCitaHandler(db, crearCitaUC, actualizarCitaUC, eliminarCitaUC)
	listaEsperaHandler := handlers.NewListaEsperaHandler(db, auditDispatcher, asignarCitaUC)

	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// RUTAS
	// ======================================================

	// ------------------------------
	// AUTH
	// ------------------------------
	r.POST("/auth/register", authHandler.Register)
	r.POST("/auth/login", authHandler.Login)

	// ------------------------------
	// API PRIVADA
	// ------------------------------
	secured := r.Group("/")
	secured.Use(middleware.AuthMiddleware(cfg))
	{
		secured.GET("/me", meHandler.GetMe)

		secured.GET("/operadores", operadorHandler.List)

		agenda := secured.Group("/agenda")
		{
			// agendas
			agenda.GET("/listar-agendas", agendaHandler.List)
			agenda.GET("/agendas/:agendaId", agendaHandler.Get)
			agenda.POST("/crear-agenda", agendaHandler.Create)
			agenda.PUT("/modificar-agenda/:agendaId", agendaHandler.Update)
			agenda.DELETE("/eliminar-agenda/:agendaId", agendaHandler.Delete)

			// horarios base
			agenda.GET("/horarios-agenda/:agendaId", horarioHandler.ListByAgenda)
			agenda.POST("/crear-horario", horarioHandler.Create)
			agenda.PUT("/modificar-horario/:horarioId", horarioHandler.Update)
			agenda.DELETE("/eliminar-horario/:horarioId", horarioHandler.Delete)

			// horarios específicos
			agenda.GET("/horarios-especificos/:agendaId", horarioEspecificoHandler.ListByAgenda)
			agenda.POST("/crear-horario-especifico", horarioEspecificoHandler.Create)
			agenda.PUT("/modificar-horario-especifico/:horarioEspecificoId", horarioEspecificoHandler.Update)
			agenda.DELETE("/eliminar-horario-especifico/:horarioEspecificoId", horarioEspecificoHandler.Delete)

			// vistas resueltas
			agenda.GET("/calendario/:agendaId", calendarioHandler.GetCalendario)
			agenda.GET("/consultar-espacios/:agendaId", calendarioHandler.ConsultarEspacios)
			agenda.GET("/disponibilidad-tiempo-real", calendarioHandler.DisponibilidadTiempoReal)

			// mutaciones de ocurrencia
			agenda.PUT("/modificar-ocurrencia", calendarioHandler.ModificarOcurrencia)
			agenda.POST("/desactivar-ocurrencia", calendarioHandler.DesactivarOcurrencia)
			agenda.POST("/restaurar-ocurrencia", calendarioHandler.RestaurarOcurrencia)

			// citas
			agenda.GET("/listar-citas", citaHandler.List)
			agenda.POST("/crear-cita", citaHandler.Create)
			agenda.PUT("/actualizar-cita/:citaId", citaHandler.Update)
			agenda.DELETE("/eliminar-cita/:citaId", citaHandler.Delete)

			// lista de espera
			listaEspera := agenda.Group("/lista-espera")
			{
				listaEspera.GET("", listaEsperaHandler.List)
				listaEspera.POST("", listaEsperaHandler.Create)
				listaEspera.PUT("/:personaId", listaEsperaHandler.Update)
				listaEspera.DELETE("/:personaId", listaEsperaHandler.Delete)
				listaEspera.POST("/asignar-cita", listaEsperaHandler.AsignarCita)
			}
		}

		secured.GET("/audit-logs", auditLogsHandler.List)
	}
}
