package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"resume-match/internal/config"
	"resume-match/internal/database"
	"resume-match/internal/database/migration"
	dbpostgres "resume-match/internal/database/postgres"
	"resume-match/internal/infrastructure/cache"
	"resume-match/internal/infrastructure/extractor"
	"resume-match/internal/infrastructure/mailer"
	"resume-match/internal/infrastructure/messaging"
	"resume-match/internal/infrastructure/storage"
	"resume-match/internal/logger"
	"resume-match/internal/notify"
	"resume-match/internal/outbox"
	"resume-match/internal/pipeline"
	"resume-match/internal/pkg/jwt"
	"resume-match/internal/repository"
	"resume-match/internal/usecase"
	"resume-match/internal/ws"

	"github.com/rs/zerolog"
)

type Repositories struct {
	Resumes       repository.ResumeRepository
	Jobs          repository.JobRepository
	Matches       repository.MatchRepository
	Notifications repository.NotificationRepository
}

type Usecases struct {
	Matching      usecase.MatchingUsecase
	Resumes       usecase.ResumeUsecase
	Jobs          usecase.JobUsecase
	Notifications usecase.NotificationUsecase
}

// Container owns every long-lived dependency. Optional backends (RabbitMQ,
// MinIO, SMTP) are nil or replaced by local fallbacks when not configured.
type Container struct {
	Config config.Config
	Log    zerolog.Logger

	DB      database.DB
	Redis   *cache.Redis
	MQ      *messaging.RabbitMQ
	Objects *storage.Minio

	JWT   *jwt.HMACService
	Repos Repositories
	UC    Usecases

	Hub        *ws.Hub
	Dispatcher *notify.Dispatcher
	Relay      *outbox.Relay
	Consumer   *notify.Consumer
	Rescore    *pipeline.RescorePipeline
	Scheduler  *pipeline.Scheduler

	wg sync.WaitGroup
}

func NewContainer(ctx context.Context, cfg config.Config, log zerolog.Logger) (*Container, error) {
	c := &Container{Config: cfg, Log: log}

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(connectCtx, cfg.Database)
	if err != nil {
		return nil, err
	}
	c.DB = db
	c.Redis = cache.NewRedis(connectCtx, cfg.Redis, logger.Component(log, "redis"))

	if cfg.RabbitMQ.URL != "" {
		mq, err := messaging.NewRabbitMQ(cfg.RabbitMQ.URL, logger.Component(log, "rabbitmq"))
		if err != nil {
			_ = c.Close()
			return nil, err
		}
		c.MQ = mq
	}

	var objects usecase.ObjectStore
	if cfg.Minio.Endpoint != "" {
		m, err := storage.NewMinio(connectCtx, cfg.Minio, logger.Component(log, "minio"))
		if err != nil {
			_ = c.Close()
			return nil, err
		}
		c.Objects = m
		objects = m
	}

	c.JWT = jwt.NewHMACService(cfg.JWT.Secret, cfg.JWT.ExpiresIn)

	c.Repos = Repositories{
		Resumes:       repository.NewPostgresResumeRepository(db),
		Jobs:          repository.NewPostgresJobRepository(db),
		Matches:       repository.NewPostgresMatchRepository(db),
		Notifications: repository.NewPostgresNotificationRepository(db),
	}

	recorder := usecase.NewMatchRecorder(c.Repos.Matches, repository.NewPostgresTransactor(db), cfg.Matching.CallTimeout, logger.Component(log, "recorder"))

	c.UC = Usecases{
		Matching:      usecase.NewMatchingUsecase(c.Repos.Resumes, c.Repos.Jobs, c.Repos.Matches, recorder, cfg.Matching.CallTimeout, logger.Component(log, "matching")),
		Resumes:       usecase.NewResumeUsecase(c.Repos.Resumes, extractor.NewPDF(), objects, logger.Component(log, "resumes")),
		Jobs:          usecase.NewJobUsecase(c.Repos.Jobs),
		Notifications: usecase.NewNotificationUsecase(c.Repos.Notifications),
	}

	c.Hub = ws.NewHub(logger.Component(log, "ws"))

	var sender notify.Sender = mailer.NewLog(logger.Component(log, "mailer"))
	if cfg.SMTP.Host != "" {
		smtpSender, err := mailer.NewSMTP(cfg.SMTP, logger.Component(log, "mailer"))
		if err != nil {
			_ = c.Close()
			return nil, err
		}
		sender = smtpSender
	}
	c.Dispatcher = notify.NewDispatcher(c.Repos.Notifications, sender, c.Hub, cfg.Outbox.MaxAttempts, cfg.Outbox.SendTimeout, logger.Component(log, "notify"))

	var publisher outbox.Publisher = c.Dispatcher
	if c.MQ != nil {
		publisher = notify.NewQueuePublisher(c.MQ)
		c.Consumer = notify.NewConsumer(c.MQ, c.Repos.Notifications, c.Dispatcher, logger.Component(log, "consumer"))
	}
	c.Relay = outbox.NewRelay(c.Repos.Notifications, publisher, cfg.Outbox.PollInterval, cfg.Outbox.BatchSize, logger.Component(log, "outbox"))

	c.Rescore = pipeline.NewRescorePipeline(c.Repos.Resumes, c.Repos.Jobs, recorder, pipeline.RescoreParams{
		Workers:     cfg.Matching.Workers,
		PairTimeout: cfg.Matching.PairTimeout,
		LoadTimeout: cfg.Matching.LoadTimeout,
	}, log)
	c.Scheduler = pipeline.NewScheduler(c.Rescore, c.Redis, cfg.Matching.RescoreInterval, cfg.Matching.RescoreOnStart, log)

	return c, nil
}

// Migrate applies the embedded schema migrations.
func (c *Container) Migrate(ctx context.Context) error {
	if err := (migration.Runner{}).Run(ctx, c.DB.SQLDB()); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	c.Log.Info().Msg("migrations applied")
	return nil
}

// StartBackground launches the websocket hub, rescore scheduler, outbox relay
// and, with a broker configured, the delivery consumer. They stop when ctx is
// cancelled; Wait blocks until they have.
func (c *Container) StartBackground(ctx context.Context) {
	c.wg.Add(3)
	go func() {
		defer c.wg.Done()
		c.Hub.Run(ctx.Done())
	}()
	go func() {
		defer c.wg.Done()
		c.Scheduler.Start(ctx)
	}()
	go func() {
		defer c.wg.Done()
		c.Relay.Start(ctx)
	}()

	if c.Consumer != nil {
		c.wg.Add(1)
		go func() {
			defer c.wg.Done()
			if err := c.Consumer.Run(ctx); err != nil && ctx.Err() == nil {
				c.Log.Error().Err(err).Msg("notification consumer stopped")
			}
		}()
	}
}

func (c *Container) Wait() {
	c.wg.Wait()
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}

	var errs []error
	if c.MQ != nil {
		errs = append(errs, c.MQ.Close())
	}
	if c.Redis != nil {
		errs = append(errs, c.Redis.Close())
	}
	if c.DB != nil {
		errs = append(errs, c.DB.Close())
	}
	return errors.Join(errs...)
}
