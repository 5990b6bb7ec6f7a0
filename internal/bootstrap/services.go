package bootstrap

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/betabounty/betabounty-api/config"
	"github.com/betabounty/betabounty-api/internal/adapters/collab"
	"github.com/betabounty/betabounty-api/internal/core"
	"github.com/betabounty/betabounty-api/internal/data"
	"github.com/betabounty/betabounty-api/internal/domain/fraud"
	"github.com/betabounty/betabounty-api/internal/domain/model"
	"github.com/betabounty/betabounty-api/internal/observability/statsd"
	"github.com/betabounty/betabounty-api/internal/pipeline"
	"github.com/betabounty/betabounty-api/internal/service"
)

// ServiceDeps contains the shared dependencies services are built from.
type ServiceDeps struct {
	Config      *config.AppConfig
	DB          *sql.DB
	RedisClient *redis.Client // nil when velocity counters are disabled
	Logger      *slog.Logger
}

// ServiceContainer holds the constructed application services.
type ServiceContainer struct {
	Dispatcher     *service.DispatcherService
	Participations *service.ParticipationService
	Wallets        *service.WalletService
	Rewards        *service.RewardService

	Statsd *statsd.Client
}

// NewServices constructs repositories, collaborator adapters, pipeline
// handlers and services from the shared dependencies.
func NewServices(deps *ServiceDeps) (*ServiceContainer, error) {
	cfg := deps.Config
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	tp := &data.RealTimeProvider{}

	// Repositories
	jobRepo := data.NewJobRepo(deps.DB, data.JobRepoConfig{
		RetryBaseDelay:     cfg.Dispatcher.RetryBaseDelay,
		RetryMaxDelay:      cfg.Dispatcher.RetryMaxDelay,
		DefaultMaxAttempts: cfg.Dispatcher.MaxAttempts,
		Logger:             logger,
		TimeProvider:       tp,
	})
	participationRepo := data.NewParticipationRepo(deps.DB, jobRepo, tp)
	assetRepo := data.NewAssetRepo(deps.DB, tp)
	campaignRepo := data.NewCampaignRepo(deps.DB, tp)
	userRepo := data.NewUserRepo(deps.DB)
	signalRepo := data.NewFraudSignalRepo(deps.DB)
	walletRepo := data.NewWalletRepo(deps.DB, tp)
	rewardRepo := data.NewRewardRepo(deps.DB, tp)

	var velocity core.VelocityCounter
	if deps.RedisClient != nil {
		velocity = data.NewRedisVelocityRepo(deps.RedisClient, tp)
	}

	// Collaborator adapters
	cc := cfg.Collaborators
	storage := collab.NewStorageClient(cc.StorageBaseURL, cc.Token, cc.Timeout)
	payments := collab.NewPaymentClient(cc.PaymentBaseURL, cc.Token, cc.Timeout)
	notifier := collab.NewNotifyClient(cc.NotifyBaseURL, cc.Token, cc.Timeout)
	reporter := collab.NewReportClient(cc.ReportBaseURL, cc.Token, cc.Timeout)

	// Metrics
	sink, err := statsd.NewClient(statsd.Config{
		Enabled: cfg.Observability.StatsdEnabled,
		Address: cfg.Observability.StatsdAddr,
		Prefix:  cfg.Observability.StatsdPrefix,
		Logger:  logger,
	})
	if err != nil {
		return nil, fmt.Errorf("statsd client: %w", err)
	}

	handlers, err := buildHandlers(&handlerDeps{
		Participations: participationRepo,
		Assets:         assetRepo,
		Campaigns:      campaignRepo,
		Users:          userRepo,
		Velocity:       velocity,
		Storage:        storage,
		Notifier:       notifier,
		Reporter:       reporter,
		FraudConfig:    scorerConfig(cfg.Fraud),
		Logger:         logger,
	})
	if err != nil {
		return nil, err
	}

	dispatcher, err := service.NewDispatcherService(service.DispatcherServiceOptions{
		Store:    jobRepo,
		Handlers: handlers,
		Config: service.DispatcherConfig{
			BatchLimit:   cfg.Dispatcher.BatchLimit,
			Concurrency:  cfg.Dispatcher.Concurrency,
			LeaseSeconds: cfg.Dispatcher.LeaseSeconds,
		},
		Logger:  logger,
		Metrics: sink,
	})
	if err != nil {
		return nil, fmt.Errorf("dispatcher service: %w", err)
	}

	participations, err := service.NewParticipationService(service.ParticipationServiceOptions{
		Repos: service.ParticipationServiceRepos{
			Participations: participationRepo,
			Campaigns:      campaignRepo,
			Users:          userRepo,
			Signals:        signalRepo,
			Jobs:           jobRepo,
			Velocity:       velocity,
		},
		Config: service.ParticipationConfig{
			FraudCheckDelay: cfg.Fraud.CheckDelay,
		},
		Logger:       logger,
		TimeProvider: tp,
	})
	if err != nil {
		return nil, fmt.Errorf("participation service: %w", err)
	}

	wallets, err := service.NewWalletService(service.WalletServiceOptions{
		Repo:     walletRepo,
		Payments: payments,
		Logger:   logger,
	})
	if err != nil {
		return nil, fmt.Errorf("wallet service: %w", err)
	}

	rewards, err := service.NewRewardService(service.RewardServiceOptions{
		Repo:   rewardRepo,
		Users:  userRepo,
		Jobs:   jobRepo,
		Logger: logger,
	})
	if err != nil {
		return nil, fmt.Errorf("reward service: %w", err)
	}

	return &ServiceContainer{
		Dispatcher:     dispatcher,
		Participations: participations,
		Wallets:        wallets,
		Rewards:        rewards,
		Statsd:         sink,
	}, nil
}

type handlerDeps struct {
	Participations core.ParticipationRepository
	Assets         core.AssetRepository
	Campaigns      core.CampaignRepository
	Users          core.UserRepository
	Velocity       core.VelocityCounter
	Storage        core.ObjectStorage
	Notifier       core.Notifier
	Reporter       core.Reporter
	FraudConfig    fraud.Config
	Logger         *slog.Logger
}

// buildHandlers registers one pipeline handler per job type.
func buildHandlers(deps *handlerDeps) (service.HandlerRegistry, error) {
	imageHash, err := pipeline.NewImageHashHandler(pipeline.ImageHashHandlerOptions{
		Assets:  deps.Assets,
		Storage: deps.Storage,
		Logger:  deps.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("image hash handler: %w", err)
	}

	textSim, err := pipeline.NewTextSimilarityHandler(pipeline.TextSimilarityHandlerOptions{
		Participations: deps.Participations,
		Logger:         deps.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("text similarity handler: %w", err)
	}

	fraudCheck, err := pipeline.NewFraudCheckHandler(pipeline.FraudCheckHandlerOptions{
		Repos: pipeline.FraudCheckRepos{
			Participations: deps.Participations,
			Assets:         deps.Assets,
			Campaigns:      deps.Campaigns,
			Users:          deps.Users,
			Velocity:       deps.Velocity,
		},
		Config: deps.FraudConfig,
		Logger: deps.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("fraud check handler: %w", err)
	}

	notify, err := pipeline.NewNotifyHandler(pipeline.NotifyHandlerOptions{
		Notifier: deps.Notifier,
		Logger:   deps.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("notify handler: %w", err)
	}

	aiReport, err := pipeline.NewAIReportHandler(pipeline.AIReportHandlerOptions{
		Campaigns:      deps.Campaigns,
		Participations: deps.Participations,
		Reporter:       deps.Reporter,
		Logger:         deps.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("ai report handler: %w", err)
	}

	return service.HandlerRegistry{
		model.JobTypeImageHash:        imageHash.Handle,
		model.JobTypeTextSimilarity:   textSim.Handle,
		model.JobTypeFraudCheck:       fraudCheck.Handle,
		model.JobTypeSendNotification: notify.Handle,
		model.JobTypeAIReport:         aiReport.Handle,
	}, nil
}

// scorerConfig maps env configuration onto the fraud scorer tunables. Weights
// keep their scorer defaults.
func scorerConfig(cfg config.FraudConfig) fraud.Config {
	c := fraud.DefaultConfig()
	if cfg.RejectThreshold > 0 {
		c.RejectThreshold = cfg.RejectThreshold
	}
	if cfg.HammingThreshold > 0 {
		c.HammingThreshold = cfg.HammingThreshold
	}
	if cfg.TextSimilarityThreshold > 0 {
		c.TextSimilarityThreshold = cfg.TextSimilarityThreshold
	}
	if cfg.VelocityRatio > 0 {
		c.VelocityRatio = cfg.VelocityRatio
	}
	return c
}
