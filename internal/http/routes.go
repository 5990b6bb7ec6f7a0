package httpx

import (
	"log/slog"
	"net/http"

	"github.com/betabounty/betabounty-api/internal/service"
)

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Dispatcher     *service.DispatcherService
	Participations *service.ParticipationService
	Wallets        *service.WalletService
	Rewards        *service.RewardService
	// RunToken is the shared bearer secret guarding the batch trigger.
	RunToken string
	// ResetAttemptsOnRetry is the operator-retry attempt policy.
	ResetAttemptsOnRetry bool
	Logger               *slog.Logger
}

// NewRouter creates and configures the HTTP router.
func NewRouter(services RouterServices) http.Handler {
	mux := http.NewServeMux()

	registerJobRoutes(mux, &JobHandlers{
		Svc:                  services.Dispatcher,
		ResetAttemptsOnRetry: services.ResetAttemptsOnRetry,
	}, services.RunToken)
	registerParticipationRoutes(mux, &ParticipationHandlers{Svc: services.Participations})
	registerWalletRoutes(mux, &WalletHandlers{Svc: services.Wallets})
	registerRewardRoutes(mux, &RewardHandlers{Svc: services.Rewards})

	mux.HandleFunc("GET /healthz", healthHandler)
	mux.HandleFunc("HEAD /healthz", healthHandler)

	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return Logging(logger)(Recover(logger)(mux))
}
