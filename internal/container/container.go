package container

import (
	"context"
	"time"

	"ott-admin/internal/config"
	"ott-admin/internal/repository"
	"ott-admin/internal/service"
	"ott-admin/pkg/database"
	"ott-admin/pkg/logger"
	"ott-admin/pkg/redis"
	"ott-admin/pkg/supabase"
)

// Container holds all application dependencies
type Container struct {
	Config       *config.Config
	Logger       *logger.Logger
	DB           *database.PostgresDB
	RedisClient  *redis.Client
	Supabase     *supabase.Client
	Repositories *repository.Repositories

	PaymentMonitor *service.PaymentMonitor
	Subscriptions  service.SubscriptionService
	Subscribers    service.SubscriberService
	Series         service.SeriesService
	Dashboard      service.DashboardService
}

// New assembles the dependency graph. Redis and Supabase are optional;
// the services degrade to direct reads when either is absent.
func New(ctx context.Context, cfg *config.Config, log *logger.Logger) (*Container, error) {
	db, err := database.NewPostgresDB(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		client, err := redis.NewClient(cfg.RedisURL, cfg.Environment, log.Logger)
		if err != nil {
			log.WithError(err).Warn("Failed to initialize Redis client, proceeding without caching")
		} else {
			redisClient = client
			log.Info("Redis client initialized successfully")
		}
	} else {
		log.Info("Redis URL not configured, proceeding without caching")
	}

	var supabaseClient *supabase.Client
	if cfg.HasRealtime() {
		supabaseClient = supabase.NewClient(cfg.SupabaseURL, cfg.SupabaseServiceKey, log)
		log.Info("Supabase realtime client initialized")
	} else {
		log.Info("Supabase credentials not configured, subscriber store will not receive live changes")
	}

	repos := &repository.Repositories{
		Subscriber:   repository.NewPostgresSubscriberRepository(db),
		Subscription: repository.NewPostgresSubscriptionRepository(db),
		Payment:      repository.NewPostgresPaymentRepository(db),
		Series:       repository.NewPostgresSeriesRepository(db, log.Logger),
		AuthLog:      repository.NewPostgresAuthLogRepository(db, log.Logger),
	}

	monitor := service.NewPaymentMonitor(
		repos.Payment,
		cfg.PaymentFetchLimit,
		time.Duration(cfg.PaymentPollSeconds)*time.Second,
		log.Named("payments"),
	)

	subscribers := service.NewSubscriberService(repos.Subscriber, monitor, supabaseClient, log.Named("subscribers"))
	subscriptions := service.NewSubscriptionService(repos, monitor, cfg.PaymentFetchLimit, log.Named("subscriptions"))
	series := service.NewSeriesService(repos.Series, log.Named("series"))
	dashboard := service.NewDashboardService(monitor, subscribers, repos.Series, redisClient, log.Named("dashboard"))

	return &Container{
		Config:         cfg,
		Logger:         log,
		DB:             db,
		RedisClient:    redisClient,
		Supabase:       supabaseClient,
		Repositories:   repos,
		PaymentMonitor: monitor,
		Subscriptions:  subscriptions,
		Subscribers:    subscribers,
		Series:         series,
		Dashboard:      dashboard,
	}, nil
}

// Start brings up the background services in dependency order
func (c *Container) Start(ctx context.Context) error {
	if err := c.PaymentMonitor.Start(ctx); err != nil {
		return err
	}
	return c.Subscribers.Start(ctx)
}

// Stop halts the background services
func (c *Container) Stop() {
	c.Subscribers.Stop()
	c.PaymentMonitor.Stop()
}
