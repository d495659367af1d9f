package main

import (
	"hotelbook/internal/bookings/events"
	bookingrepo "hotelbook/internal/bookings/repository"
	bookingservice "hotelbook/internal/bookings/service"
	bookingvalidator "hotelbook/internal/bookings/validator"
	hotelrepo "hotelbook/internal/hotels/repository"
	hotelservice "hotelbook/internal/hotels/service"
	hotelvalidator "hotelbook/internal/hotels/validator"
	"hotelbook/internal/router"
	"hotelbook/internal/store"
	userrepo "hotelbook/internal/users/repository"
	userservice "hotelbook/internal/users/service"
	uservalidator "hotelbook/internal/users/validator"
	"hotelbook/pkg/app"
	"hotelbook/pkg/config"
	"hotelbook/pkg/kafka"
	kafka_config "hotelbook/pkg/kafka/config"
	kafkamiddleware "hotelbook/pkg/kafka/middleware"
)

const ServiceName = "hotel-server"

func main() {
	cfg := config.Load(ServiceName)

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		cfg.Log.Fatal("Invalid configuration", "error", err)
	}

	// Log all configuration values
	cfg.LogConfiguration()

	cfg.Log.Info("Starting hotel booking server")

	locks := bookingrepo.NewRoomLockTable()
	st := store.New(store.WithRoomObserver(locks))
	if cfg.SeedData {
		if err := st.Seed(); err != nil {
			cfg.Log.Fatal("Failed to seed store", "error", err)
		}
		stats := st.Stats()
		cfg.Log.Info("Store seeded", "users", stats.Users, "hotels", stats.Hotels, "rooms", stats.Rooms)
	}

	publisher, metrics, closeEvents := initEvents(cfg)
	svc := initServices(cfg, st, locks, publisher)

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(router.New(svc, cfg.Log), app.Diagnostics{
		Store:   st,
		Locks:   locks,
		Metrics: metrics,
	})
	if closeEvents != nil {
		serverApp.OnShutdown(closeEvents)
	}
	serverApp.Run()
}

func initServices(cfg *config.Config, st *store.Store, locks bookingrepo.RoomLockTable, publisher events.Publisher) router.Services {
	hotels := hotelrepo.NewHotelRepository(st)
	rooms := hotelrepo.NewRoomRepository(st)
	hotelValidator := hotelvalidator.NewHotelValidator(cfg.Log)

	svc := router.Services{
		Users: userservice.NewUserService(
			userrepo.NewUserRepository(st),
			uservalidator.NewUserValidator(cfg.Log),
			cfg,
		),
		Hotels: hotelservice.NewHotelService(hotels, rooms, hotelValidator, cfg),
		Rooms:  hotelservice.NewRoomService(rooms, hotels, hotelValidator, cfg),
		Bookings: bookingservice.NewBookingService(
			bookingrepo.NewBookingRepository(st),
			locks,
			bookingvalidator.NewBookingValidator(cfg.Log),
			publisher,
			cfg,
		),
	}

	cfg.Log.Info("Services initialized", "lock_timeout", cfg.LockTimeout)
	return svc
}

// initEvents returns a no-op publisher unless KAFKA_ENABLED is set.
func initEvents(cfg *config.Config) (events.Publisher, *kafkamiddleware.Metrics, func() error) {
	if !cfg.KafkaEnabled {
		cfg.Log.Info("Booking events disabled")
		return events.NewNoopPublisher(), nil, nil
	}

	kafkaCfg, err := kafka_config.Load()
	if err != nil {
		cfg.Log.Fatal("Invalid Kafka configuration", "error", err)
	}
	kafkaCfg.LogConfiguration(cfg.Log)

	producer, err := kafka.NewProducer(kafkaCfg, cfg.KafkaTopic, cfg.KafkaDLQTopic, cfg.Log)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
	}

	metrics := &kafkamiddleware.Metrics{}
	producer.Use(kafkamiddleware.MetricsProducerMiddleware(metrics))
	if kafkaCfg.EnableMiddleware {
		producer.Use(kafkamiddleware.LoggingProducerMiddleware(cfg.Log))
	}

	cfg.Log.Info("Booking events enabled", "topic", cfg.KafkaTopic, "brokers", kafkaCfg.Brokers)
	publisher := events.NewKafkaPublisher(producer, ServiceName, kafkaCfg.ProducerPublishTimeout, cfg.Log)
	return publisher, metrics, producer.Close
}
