package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"gamevault_server/apperrors"
	"gamevault_server/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWishlist struct {
	games []models.Game
	err   error
}

func (f *fakeWishlist) ListAllItemsOfCollectionType(_ context.Context, collectionType string) ([]models.Game, error) {
	if collectionType != models.CollectionTypeWishlist {
		return nil, fmt.Errorf("unexpected collection type %q", collectionType)
	}
	return f.games, f.err
}

type fakeMonitors struct {
	byGame map[string][]models.PriceMonitor
	errFor map[string]error
}

func (f *fakeMonitors) ListForGame(_ context.Context, gameID string) ([]models.PriceMonitor, error) {
	if err := f.errFor[gameID]; err != nil {
		return nil, err
	}
	return f.byGame[gameID], nil
}

type fakeFetcher struct {
	statsFor map[string]*models.PriceStats
	errFor   map[string]error
	calls    int
}

func (f *fakeFetcher) FetchPriceStats(_ context.Context, gameName string, _ *string, _ string, _ float64) (*models.PriceStats, error) {
	f.calls++
	if err := f.errFor[gameName]; err != nil {
		return nil, err
	}
	if stats, ok := f.statsFor[gameName]; ok {
		return stats, nil
	}
	return &models.PriceStats{}, nil
}

type fakeSender struct {
	sent []string
	err  error
}

func (f *fakeSender) Send(_ context.Context, toAddress, subject, _ string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, toAddress+": "+subject)
	return nil
}

func hitStats() *models.PriceStats {
	return &models.PriceStats{
		DesiredPriceExists:  true,
		LowestPrice:         35,
		AveragePrice:        42.5,
		LowestPriceDisplay:  "$ 35.00",
		AveragePriceDisplay: "$ 42.50",
		ListedItemURL:       "https://marketplace.example/game/sm64",
	}
}

func sweepFixture() (*NotificationService, *fakeFetcher, *fakeSender) {
	games := &fakeWishlist{games: []models.Game{
		{GameID: "g1", GameName: "Super Mario 64", Email: "mario@example.com", Console: "Nintendo 64"},
		{GameID: "g2", GameName: "Chrono Trigger", Email: "crono@example.com"},
	}}
	monitors := &fakeMonitors{byGame: map[string][]models.PriceMonitor{
		"g1": {
			{PriceMonitorID: "m1", GameID: "g1", Email: "mario@example.com", DesiredCondition: models.ConditionLoose, DesiredPrice: 40},
		},
		"g2": {
			{PriceMonitorID: "m2", GameID: "g2", Email: "crono@example.com", DesiredCondition: models.ConditionCIB, DesiredPrice: 50},
		},
	}}
	fetcher := &fakeFetcher{statsFor: map[string]*models.PriceStats{
		"Super Mario 64": hitStats(),
		"Chrono Trigger": {DesiredPriceExists: false},
	}}
	sender := &fakeSender{}

	return &NotificationService{
		Games:       games,
		Monitors:    monitors,
		Marketplace: fetcher,
		Email:       sender,
	}, fetcher, sender
}

func TestSweepNotifiesOnlyWhenThresholdMet(t *testing.T) {
	ns, fetcher, sender := sweepFixture()

	summary, err := ns.RunNotificationSweep(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Processed)
	assert.Equal(t, 1, summary.Notified)
	assert.Equal(t, 0, summary.Failed)
	assert.Equal(t, 2, fetcher.calls)
	require.Len(t, sender.sent, 1)
	assert.Contains(t, sender.sent[0], "mario@example.com")
	assert.Contains(t, sender.sent[0], "Super Mario 64")
}

// Re-running against an unchanged marketplace produces the same counts;
// the sweep has no cross-run state
func TestSweepIsIdempotent(t *testing.T) {
	ns, _, sender := sweepFixture()

	first, err := ns.RunNotificationSweep(context.Background())
	require.NoError(t, err)
	second, err := ns.RunNotificationSweep(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first.Notified, second.Notified)
	assert.Equal(t, first.Processed, second.Processed)
	assert.Len(t, sender.sent, 2) // same email twice, no suppression
}

// One bad item must never abort the sweep
func TestSweepIsolatesPerItemFailures(t *testing.T) {
	ns, fetcher, sender := sweepFixture()
	fetcher.errFor = map[string]error{
		"Chrono Trigger": apperrors.NewMarketplaceUnavailable("https://marketplace.example", errors.New("timeout")),
	}

	summary, err := ns.RunNotificationSweep(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Processed)
	assert.Equal(t, 1, summary.Notified)
	assert.Equal(t, 1, summary.Failed)
	require.Len(t, summary.Errors, 1)
	assert.Contains(t, summary.Errors[0], "m2")
	assert.Len(t, sender.sent, 1)
}

func TestSweepIsolatesMonitorListingFailures(t *testing.T) {
	ns, _, _ := sweepFixture()
	ns.Monitors.(*fakeMonitors).errFor = map[string]error{
		"g1": fmt.Errorf("list monitors: %w", apperrors.ErrStoreUnavailable),
	}

	summary, err := ns.RunNotificationSweep(context.Background())
	require.NoError(t, err)

	// g1's monitors never ran, g2's did
	assert.Equal(t, 1, summary.Processed)
	assert.Equal(t, 1, summary.Failed)
	require.Len(t, summary.Errors, 1)
	assert.Contains(t, summary.Errors[0], "g1")
}

func TestSweepFailedSendIsRecorded(t *testing.T) {
	ns, _, sender := sweepFixture()
	sender.err = errors.New("ses throttled")

	summary, err := ns.RunNotificationSweep(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, summary.Notified)
	assert.Equal(t, 1, summary.Failed)
}

func TestSweepFatalWhenWishlistUnavailable(t *testing.T) {
	ns, _, _ := sweepFixture()
	ns.Games.(*fakeWishlist).err = fmt.Errorf("query: %w", apperrors.ErrStoreUnavailable)

	_, err := ns.RunNotificationSweep(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrStoreUnavailable)
}

// Orphaned monitors (game deleted) simply never enter the fan-out,
// since the sweep walks games first
func TestSweepSkipsOrphanedMonitors(t *testing.T) {
	ns, fetcher, _ := sweepFixture()
	ns.Games.(*fakeWishlist).games = ns.Games.(*fakeWishlist).games[:1] // g2 deleted

	summary, err := ns.RunNotificationSweep(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Processed)
	assert.Equal(t, 1, fetcher.calls)
}
