// Package mocks provides mock implementations for testing the betabounty reward system.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for our repository
// and collaborator interfaces. The mocks are generated using go:generate directives and
// provide a fluent API for setting up test expectations.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	defer ctrl.Finish()
//	mockStore := mocks.NewMockJobStore(ctrl)
//	mockStore.EXPECT().Enqueue(gomock.Any(), gomock.Any()).Return(job, nil)
package mocks

// Generate mock for JobStore interface from internal/core package.
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=job_store_mock.go github.com/betabounty/betabounty-api/internal/core JobStore

// Generate mock for ParticipationRepository interface from internal/core package.
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=participation_repository_mock.go github.com/betabounty/betabounty-api/internal/core ParticipationRepository

// Generate mock for AssetRepository interface from internal/core package.
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=asset_repository_mock.go github.com/betabounty/betabounty-api/internal/core AssetRepository

// Generate mock for FraudSignalRepository interface from internal/core package.
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=fraud_signal_repository_mock.go github.com/betabounty/betabounty-api/internal/core FraudSignalRepository

// Generate mock for WalletRepository interface from internal/core package.
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=wallet_repository_mock.go github.com/betabounty/betabounty-api/internal/core WalletRepository

// Generate mock for RewardRepository interface from internal/core package.
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=reward_repository_mock.go github.com/betabounty/betabounty-api/internal/core RewardRepository

// Generate mock for CampaignRepository interface from internal/core package.
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=campaign_repository_mock.go github.com/betabounty/betabounty-api/internal/core CampaignRepository

// Generate mock for UserRepository interface from internal/core package.
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=user_repository_mock.go github.com/betabounty/betabounty-api/internal/core UserRepository

// Generate mock for VelocityCounter interface from internal/core package.
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=velocity_counter_mock.go github.com/betabounty/betabounty-api/internal/core VelocityCounter

// Generate mocks for the collaborator ports from internal/core package.
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=ports_mock.go github.com/betabounty/betabounty-api/internal/core ObjectStorage,PaymentVerifier,Notifier,Reporter
