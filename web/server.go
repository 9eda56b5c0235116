package web

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"

	"github.com/Psy1ALise/travel-planner-public/db/db"
	"github.com/Psy1ALise/travel-planner-public/db/mem"
	"github.com/Psy1ALise/travel-planner-public/db/pg"
	"github.com/Psy1ALise/travel-planner-public/mq/gcppubsub"
	"github.com/Psy1ALise/travel-planner-public/mq/goch"
	"github.com/Psy1ALise/travel-planner-public/mq/mq"
	"github.com/Psy1ALise/travel-planner-public/mq/rabbit"
)

// ServiceConfig selects the storage and messaging backends at startup. Dev
// mode runs everything in process: in-memory store, channel queues.
type ServiceConfig struct {
	IsDev  bool
	Port   string
	MqMode mq.Mode
}

func newStore(cfg ServiceConfig) db.PlannerDBWrapper {
	if cfg.IsDev {
		log.Println("Running in dev mode with the in-memory store.")
		return mem.NewInMemoryPlannerDBWrapper()
	}

	gormDB, err := pg.InitPostgresGORM(pg.CreateDSN())
	if err != nil {
		log.Fatalf("Failed to initialize PostgreSQL: %v", err)
	}
	return pg.NewGORMPlannerDBWrapper(gormDB)
}

func newQueues(cfg ServiceConfig) mq.ItineraryMessageQueueWrapper {
	switch cfg.MqMode {
	case mq.ModeRabbitMQ:
		conn := rabbit.NewRabbitConnection(rabbit.CreateAmqpURL())
		wrapper, err := rabbit.NewRabbitItineraryMessageQueueWrapper(conn)
		if err != nil {
			log.Fatalf("Failed to initialize RabbitMQ queues: %v", err)
		}
		return wrapper
	case mq.ModeGCPPubSub:
		wrapper, err := gcppubsub.NewGCPItineraryMessageQueueWrapper(context.Background(), gcppubsub.GetGCPProjectID())
		if err != nil {
			log.Fatalf("Failed to initialize GCP Pub/Sub queues: %v", err)
		}
		return wrapper
	default:
		return goch.NewGoChanItineraryMessageQueueWrapper()
	}
}

func setupRoutes(r *gin.Engine, handler *Handler) {
	r.GET("/health", healthHandler)

	api := r.Group("/api")

	api.POST("/trips", handler.CreateTrip)
	api.GET("/trips", handler.ListUserTrips)
	api.GET("/trips/:id", handler.GetTrip)
	api.DELETE("/trips/:id", handler.DeleteTrip)
	api.GET("/trips/:id/days", handler.GetTripDayCount)
	api.GET("/trips/:id/feed", handler.ItineraryFeed)

	api.POST("/trip-points", handler.CreateTripPoint)
	api.GET("/trip-points", handler.ListTripPoints)
	api.GET("/trip-points/by-day", handler.ListPointsByDay)
	api.GET("/trip-points/:id", handler.GetTripPoint)
	api.PUT("/trip-points/:id", handler.UpdateTripPoint)
	api.DELETE("/trip-points/:id", handler.DeleteTripPoint)

	api.POST("/pois", handler.CreatePOI)
	api.GET("/pois", handler.ListPOIs)
	api.GET("/pois/nearby", handler.NearbyPOIs)
	api.GET("/pois/:id", handler.GetPOI)
	api.DELETE("/pois/:id", handler.DeletePOI)

	api.POST("/accommodations", handler.CreateAccommodation)
	api.GET("/accommodations", handler.ListAccommodations)
	api.GET("/accommodations/resolve", handler.ResolveAccommodation)
}

// Serve wires the stores, queues and routes, then blocks on the listener.
func Serve(cfg ServiceConfig) {
	if !cfg.IsDev {
		gin.SetMode(gin.ReleaseMode)
	}

	store := newStore(cfg)
	queues := newQueues(cfg)
	handler := NewHandler(store, queues)

	r := gin.New()
	setupMiddlewares(r, store)
	setupRoutes(r, handler)

	addr := ":" + cfg.Port
	log.Printf("Listening on %s (mq mode: %s)", addr, cfg.MqMode)
	if err := r.Run(addr); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}
