package services

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"gamevault_server/apperrors"
	"gamevault_server/models"
	"gamevault_server/utils"

	"github.com/PuerkitoBio/goquery"
)

// reportingLocation is the fixed timezone every LastChecked stamp uses,
// so snapshot identifiers sort consistently regardless of where the
// process runs
var reportingLocation = loadReportingLocation()

func loadReportingLocation() *time.Location {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		return time.UTC
	}
	return loc
}

// MarketplaceService scrapes a listings search page and reduces it to
// condition-aware price statistics. It never mutates anything; stores
// and the notification sweep call it to refresh price data.
type MarketplaceService struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewMarketplaceService builds a MarketplaceService with a bounded
// request timeout
func NewMarketplaceService(baseURL string, timeout time.Duration) *MarketplaceService {
	return &MarketplaceService{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: timeout},
	}
}

// conditionColumn maps a condition grade onto the listings table column
// that carries its price
func conditionColumn(condition string) (string, error) {
	switch condition {
	case models.ConditionLoose:
		return "used_price", nil
	case models.ConditionCIB:
		return "cib_price", nil
	case models.ConditionNew:
		return "new_price", nil
	}
	return "", fmt.Errorf("unknown condition grade %q", condition)
}

// FetchPriceStats queries the marketplace for gameName and computes
// price statistics for the desired condition grade.
//
// A row is skipped when a console filter is supplied and the row's
// console does not contain it, or when the condition's price column is
// zero (that condition is not listed for the item). The average is a
// running mean over valid rows. The best price is seeded at
// desiredPrice and only a listing strictly below it counts as a hit,
// so DesiredPriceExists stays false unless some listing beats what the
// user asked for.
func (ms *MarketplaceService) FetchPriceStats(ctx context.Context, gameName string, consoleFilter *string, desiredCondition string, desiredPrice float64) (*models.PriceStats, error) {
	column, err := conditionColumn(desiredCondition)
	if err != nil {
		return nil, err
	}

	searchURL := fmt.Sprintf("%s/search-products?type=prices&q=%s", ms.BaseURL, url.QueryEscape(gameName))

	doc, err := ms.fetchDocument(ctx, searchURL)
	if err != nil {
		return nil, err
	}

	table := doc.Find("table#games_table")
	if table.Length() == 0 {
		// A missing listings table means the page shape changed or the
		// site served an interstitial; treated like any other outage
		return nil, apperrors.NewMarketplaceUnavailable(searchURL, fmt.Errorf("listings table not found"))
	}

	stats := &models.PriceStats{
		DesiredCondition: desiredCondition,
	}

	var (
		validRows int
		priceSum  float64
		bestPrice = desiredPrice
	)

	table.Find("tbody tr").Each(func(_ int, row *goquery.Selection) {
		title := strings.TrimSpace(row.Find("td.title a").Text())
		detailHref, _ := row.Find("td.title a").Attr("href")
		console := strings.TrimSpace(row.Find("td.console").Text())
		price := parsePrice(row.Find("td." + column).Text())

		if consoleFilter != nil && !strings.Contains(console, *consoleFilter) {
			return
		}
		if price == 0 {
			// Zero means the desired condition is not listed for this copy
			return
		}

		validRows++
		priceSum += price
		stats.AveragePrice = priceSum / float64(validRows)

		if price < bestPrice {
			bestPrice = price
			stats.DesiredPriceExists = true
			stats.LowestPrice = price
			stats.ListedItemTitle = title
			stats.ListedItemURL = ms.absoluteURL(detailHref)
			stats.ListedItemConsole = console
		}
	})

	now := time.Now().In(reportingLocation)
	stats.LastChecked = now.Format(time.RFC3339)

	if validRows > 0 {
		stats.AveragePriceDisplay = utils.FormatUSD(stats.AveragePrice)
	}
	if stats.DesiredPriceExists {
		stats.LowestPriceDisplay = utils.FormatUSD(stats.LowestPrice)
	}

	log.Printf("Marketplace scrape for %q: %d valid rows, desiredPriceExists=%v", gameName, validRows, stats.DesiredPriceExists)
	return stats, nil
}

func (ms *MarketplaceService) fetchDocument(ctx context.Context, searchURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, apperrors.NewMarketplaceUnavailable(searchURL, err)
	}

	resp, err := ms.HTTPClient.Do(req)
	if err != nil {
		return nil, apperrors.NewMarketplaceUnavailable(searchURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, apperrors.NewMarketplaceUnavailable(searchURL, fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, apperrors.NewMarketplaceUnavailable(searchURL, err)
	}
	return doc, nil
}

func (ms *MarketplaceService) absoluteURL(href string) string {
	if href == "" || strings.HasPrefix(href, "http") {
		return href
	}
	return ms.BaseURL + href
}

// parsePrice turns a listing price cell ("$34.50", "1,024.99") into a
// raw decimal. Missing or unparseable cells come back as zero, which
// row validity treats as "not listed".
func parsePrice(text string) float64 {
	cleaned := strings.TrimSpace(text)
	cleaned = strings.ReplaceAll(cleaned, "$", "")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	if cleaned == "" || strings.EqualFold(cleaned, "N/A") {
		return 0
	}
	price, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return price
}
