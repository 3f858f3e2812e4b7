package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"gamevault_server/models"
)

// WishlistLister is the slice of GameService the sweep fans out over
type WishlistLister interface {
	ListAllItemsOfCollectionType(ctx context.Context, collectionType string) ([]models.Game, error)
}

// MonitorLister is the slice of PriceMonitorService the sweep uses
type MonitorLister interface {
	ListForGame(ctx context.Context, gameID string) ([]models.PriceMonitor, error)
}

// PriceFetcher is the slice of MarketplaceService the sweep uses
type PriceFetcher interface {
	FetchPriceStats(ctx context.Context, gameName string, consoleFilter *string, desiredCondition string, desiredPrice float64) (*models.PriceStats, error)
}

// SweepSummary reports what one notification sweep did
type SweepSummary struct {
	Processed int      `json:"processed"`
	Notified  int      `json:"notified"`
	Failed    int      `json:"failed"`
	Errors    []string `json:"errors,omitempty"`
}

// NotificationService runs the scheduled price sweep: every wishlist
// item across every user, every monitor per item, a fresh marketplace
// scrape per monitor, and an email whenever a listing beats the
// desired price. The sweep recomputes from scratch each run, so it is
// idempotent and safe to re-run after a crash.
type NotificationService struct {
	Games       WishlistLister
	Monitors    MonitorLister
	Marketplace PriceFetcher
	Email       EmailSender
	// ItemTimeout bounds each marketplace scrape so one slow item
	// cannot stall the rest of the sweep
	ItemTimeout time.Duration
}

// RunNotificationSweep performs one full sweep. A failure on one
// game or monitor is recorded in the summary and never aborts the
// remaining items; only a failure to list the wishlist itself is fatal.
func (ns *NotificationService) RunNotificationSweep(ctx context.Context) (*SweepSummary, error) {
	games, err := ns.Games.ListAllItemsOfCollectionType(ctx, models.CollectionTypeWishlist)
	if err != nil {
		return nil, fmt.Errorf("failed to list wishlist items: %w", err)
	}
	log.Printf("Notification sweep started: %d wishlist items", len(games))

	summary := &SweepSummary{}
	for _, game := range games {
		monitors, err := ns.Monitors.ListForGame(ctx, game.GameID)
		if err != nil {
			summary.Failed++
			summary.Errors = append(summary.Errors, fmt.Sprintf("game %s: list monitors: %v", game.GameID, err))
			continue
		}

		for _, monitor := range monitors {
			summary.Processed++
			if err := ns.processMonitor(ctx, game, monitor, summary); err != nil {
				summary.Failed++
				summary.Errors = append(summary.Errors, fmt.Sprintf("monitor %s: %v", monitor.PriceMonitorID, err))
			}
		}
	}

	log.Printf("Notification sweep finished: processed=%d notified=%d failed=%d", summary.Processed, summary.Notified, summary.Failed)
	return summary, nil
}

func (ns *NotificationService) processMonitor(ctx context.Context, game models.Game, monitor models.PriceMonitor, summary *SweepSummary) error {
	itemCtx := ctx
	if ns.ItemTimeout > 0 {
		var cancel context.CancelFunc
		itemCtx, cancel = context.WithTimeout(ctx, ns.ItemTimeout)
		defer cancel()
	}

	var consoleFilter *string
	if game.Console != "" {
		consoleFilter = &game.Console
	}

	// A timeout surfaces from the fetch as MarketplaceUnavailable and
	// is handled like any other per-item failure
	stats, err := ns.Marketplace.FetchPriceStats(itemCtx, game.GameName, consoleFilter, monitor.DesiredCondition, monitor.DesiredPrice)
	if err != nil {
		return err
	}

	if !stats.DesiredPriceExists {
		return nil
	}

	toAddress := monitor.Email
	if toAddress == "" {
		toAddress = game.Email
	}

	subject := fmt.Sprintf("Price alert: %s under %s", game.GameName, stats.LowestPriceDisplay)
	body := fmt.Sprintf(
		"Good news! %s (%s condition) is listed at %s, below your target.\n\nLowest price: %s\nAverage price: %s\nListing: %s\n",
		game.GameName, monitor.DesiredCondition, stats.LowestPriceDisplay,
		stats.LowestPriceDisplay, stats.AveragePriceDisplay, stats.ListedItemURL,
	)

	if err := ns.Email.Send(ctx, toAddress, subject, body); err != nil {
		return fmt.Errorf("send notification: %w", err)
	}
	summary.Notified++
	return nil
}
