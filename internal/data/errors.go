package data

import "errors"

// Shared sentinel errors for data-layer repositories.
var (
	// ErrJobNotFound is returned when a job is not found.
	ErrJobNotFound = errors.New("job not found")
	// ErrJobNotRetryable is returned when a retry is requested for a job that
	// is not failed or dead.
	ErrJobNotRetryable = errors.New("job is not in a retryable status")

	// ErrParticipationNotFound is returned when a participation is not found.
	ErrParticipationNotFound = errors.New("participation not found")
	// ErrAssetNotFound is returned when an asset is not found.
	ErrAssetNotFound = errors.New("asset not found")
	// ErrWalletNotFound is returned when a wallet is not found.
	ErrWalletNotFound = errors.New("wallet not found")
	// ErrRewardNotFound is returned when a reward is not found.
	ErrRewardNotFound = errors.New("reward not found")
	// ErrCampaignNotFound is returned when a campaign is not found.
	ErrCampaignNotFound = errors.New("campaign not found")
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")
)
