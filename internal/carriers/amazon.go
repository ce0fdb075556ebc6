package carriers

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const (
	amazonShortName = "AMZL"
	amazonLongName  = "Amazon Logistics"

	// Marker that only appears on pages for shipments Amazon knows about.
	// A 200 response without it means "no shipment found".
	amazonTrackingIDMarker = "carrierRelatedInfo-trackingId-text"
)

// Amazon order numbers look like 111-2222222-3333333, optionally followed by
// a colon-separated token.
var amazonNumberPattern = regexp.MustCompile(`^\d{3}-\d{7}-\d{7}(?::\w+)?`)

// Decorative rows the Amazon progress tracker always appends to the event
// list. Anything carrying one of these classes is not a tracking event.
var amazonIgnoredClasses = []string{
	"tracking-event-carrier-header",
	"tracking-event-trackingId-text",
	"tracking-event-timezoneLabel",
}

// Event timestamps on the page omit the year, so the year is appended before
// parsing. Rows late in the history may carry only a date, no time of day.
var amazonTimestampLayouts = []string{
	"3:04 PM Monday, January 2 2006",
	"Monday, January 2 2006",
}

// AmazonConfig configures the Amazon Logistics backend.
type AmazonConfig struct {
	// Timezone the page's timestamps are rendered in. IANA name.
	Timezone string
	// UserAgent sent with page fetches.
	UserAgent string
	// Timeout for the single page fetch per lookup.
	Timeout time.Duration
	// BaseURL of the progress tracker, without trailing slash. Overridden
	// in tests.
	BaseURL string
}

func (c *AmazonConfig) applyDefaults() {
	if c.Timezone == "" {
		c.Timezone = "America/Detroit"
	}
	if c.UserAgent == "" {
		c.UserAgent = "Mozilla/5.0 (compatible; packagetrack/1.0)"
	}
	if c.Timeout <= 0 {
		c.Timeout = 10 * time.Second
	}
	if c.BaseURL == "" {
		c.BaseURL = "https://www.amazon.com"
	}
}

// Amazon tracks shipments handled by Amazon Logistics by scraping the
// amazon.com progress-tracker page. There is no public API.
type Amazon struct {
	cfg    AmazonConfig
	client *http.Client
	loc    *time.Location
	logger *slog.Logger
}

// NewAmazon creates the Amazon Logistics backend.
func NewAmazon(cfg AmazonConfig, logger *slog.Logger) *Amazon {
	cfg.applyDefaults()
	if logger == nil {
		logger = slog.Default()
	}
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Warn("unknown timezone, falling back to UTC",
			"carrier", amazonShortName, "timezone", cfg.Timezone)
		loc = time.UTC
	}
	return &Amazon{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		loc:    loc,
		logger: logger,
	}
}

// ShortName returns the carrier code.
func (a *Amazon) ShortName() string { return amazonShortName }

// LongName returns the human-readable carrier name.
func (a *Amazon) LongName() string { return amazonLongName }

// Identify reports whether the number looks like an Amazon order number.
func (a *Amazon) Identify(trackingNumber string) bool {
	return amazonNumberPattern.MatchString(trackingNumber)
}

// amazonQuery is the decomposed form of an Amazon tracking number, used to
// build the fetch URL. Built per call, discarded after.
type amazonQuery struct {
	OrderID    string
	ItemID     string
	PackageIdx string
}

// parseAmazonNumber splits a tracking number on ":" into order id, item id
// and package index. Missing trailing segments default to "0". It does not
// validate; Identify already ran by the time this is called.
func parseAmazonNumber(trackingNumber string) amazonQuery {
	q := amazonQuery{ItemID: "0", PackageIdx: "0"}
	parts := strings.Split(trackingNumber, ":")
	q.OrderID = parts[0]
	if len(parts) > 1 {
		q.ItemID = parts[1]
	}
	if len(parts) > 2 {
		q.PackageIdx = parts[2]
	}
	return q
}

func (a *Amazon) queryURL(q amazonQuery) string {
	return fmt.Sprintf("%s/progress-tracker/package/?itemId=%s&orderId=%s&packageIndex=%s",
		a.cfg.BaseURL,
		url.QueryEscape(q.ItemID),
		url.QueryEscape(q.OrderID),
		url.QueryEscape(q.PackageIdx))
}

// TrackingURL returns the progress-tracker page URL. No network call.
func (a *Amazon) TrackingURL(trackingNumber string) string {
	return a.queryURL(parseAmazonNumber(trackingNumber))
}

// Track fetches the progress-tracker page and normalizes it into a
// TrackingInfo. Exactly one blocking fetch per call, no retries.
func (a *Amazon) Track(ctx context.Context, trackingNumber string) (*TrackingInfo, error) {
	if !a.Identify(trackingNumber) {
		return nil, &NumberError{
			Carrier:        amazonShortName,
			TrackingNumber: trackingNumber,
			Message:        "not an Amazon tracking number",
		}
	}

	page, err := a.fetchPage(ctx, parseAmazonNumber(trackingNumber), trackingNumber)
	if err != nil {
		return nil, err
	}

	info := NewTrackingInfo(amazonShortName, trackingNumber)
	year := time.Now().In(a.loc).Year()
	for _, ev := range page.Events {
		ts, err := parseAmazonTimestamp(ev.Timestamp, year, a.loc)
		if err != nil {
			// Keep the event rather than dropping history; the zero
			// timestamp marks it as unresolved.
			a.logger.Warn("unparseable event timestamp",
				"carrier", amazonShortName,
				"tracking_number", trackingNumber,
				"text", ev.Timestamp)
		}
		info.AddEvent(ev.Location, ts, ev.Message)
	}

	if strings.EqualFold(info.Status(), "delivered") {
		info.IsDelivered = true
		delivered := info.LastUpdate()
		info.DeliveryDate = &delivered
	}

	return info, nil
}

// IsDelivered reports whether the shipment was delivered. This performs a
// full Track call.
func (a *Amazon) IsDelivered(ctx context.Context, trackingNumber string) (bool, error) {
	info, err := a.Track(ctx, trackingNumber)
	if err != nil {
		return false, err
	}
	return info.IsDelivered, nil
}

// amazonRawEvent is one scraped event row, timestamp still unparsed.
type amazonRawEvent struct {
	Timestamp string
	Message   string
	Location  string
}

// amazonRawPage is the scrape result for one fetched page. Fields the page
// did not contain are empty strings.
type amazonRawPage struct {
	ID               string
	PrimaryStatus    string
	SecondaryStatus  string
	MilestoneMessage string
	ExceptionSource  string
	ExceptionMessage string
	Events           []amazonRawEvent
}

func (a *Amazon) fetchPage(ctx context.Context, q amazonQuery, trackingNumber string) (*amazonRawPage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.queryURL(q), nil)
	if err != nil {
		return nil, &APIError{Carrier: amazonShortName, Message: "building request", Err: err}
	}
	req.Header.Set("User-Agent", a.cfg.UserAgent)

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, &APIError{Carrier: amazonShortName, Message: "fetching tracking page", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{
			Carrier:    amazonShortName,
			StatusCode: resp.StatusCode,
			Message:    "Amazon returned non-success status",
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &APIError{Carrier: amazonShortName, Message: "reading response body", Err: err}
	}

	if !strings.Contains(string(body), amazonTrackingIDMarker) {
		return nil, &NumberError{
			Carrier:        amazonShortName,
			TrackingNumber: trackingNumber,
			Message:        "no shipment found",
		}
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(body)))
	if err != nil {
		return nil, &APIError{Carrier: amazonShortName, Message: "parsing tracking page", Err: err}
	}

	return extractAmazonPage(doc), nil
}

// extractAmazonPage pulls the scalar status fields and the event rows out of
// a progress-tracker document. Every lookup tolerates missing markup; the
// page does not carry every field in every shipment state.
func extractAmazonPage(doc *goquery.Document) *amazonRawPage {
	page := &amazonRawPage{}

	if text, ok := selectText(doc.Selection, ".carrierRelatedInfo-trackingId-text"); ok {
		// The node reads "Tracking ID: XXXX"; the id is the last token.
		if fields := strings.Fields(text); len(fields) > 0 {
			page.ID = fields[len(fields)-1]
		}
	}
	page.PrimaryStatus, _ = selectText(doc.Selection, "#primaryStatus")
	page.SecondaryStatus, _ = selectText(doc.Selection, "#secondaryStatus")
	page.MilestoneMessage, _ = selectText(doc.Selection, ".milestone-primaryMessage")
	page.ExceptionSource, _ = selectText(doc.Selection, ".lastExceptionSource")
	page.ExceptionMessage, _ = selectText(doc.Selection, ".lastExceptionExplanation")

	// Events live in a two-level structure: date containers, then one row
	// per event. The date is shared by all rows of a container; only the
	// time varies per row. Document order is the carrier's own
	// most-recent-first ordering and must be preserved.
	doc.Find("#tracking-events-container > * > .a-row").Each(func(_ int, container *goquery.Selection) {
		if hasAnyClass(container, amazonIgnoredClasses) {
			return
		}
		date, _ := selectText(container, ".tracking-event-date")
		container.Find(".a-spacing-large").Each(func(_ int, row *goquery.Selection) {
			if hasAnyClass(row, amazonIgnoredClasses) {
				return
			}
			rowTime, _ := selectText(row, ".tracking-event-time")
			message, _ := selectText(row, ".tracking-event-message")
			location, _ := selectText(row, ".tracking-event-location")
			page.Events = append(page.Events, amazonRawEvent{
				Timestamp: strings.TrimSpace(rowTime + " " + date),
				Message:   message,
				Location:  location,
			})
		})
	})

	return page
}

// selectText returns the trimmed text of the first node matching the
// selector. ok distinguishes "no such node" from "node present but blank".
func selectText(s *goquery.Selection, selector string) (string, bool) {
	found := s.Find(selector)
	if found.Length() == 0 {
		return "", false
	}
	return strings.TrimSpace(found.First().Text()), true
}

func hasAnyClass(s *goquery.Selection, classes []string) bool {
	for _, class := range classes {
		if s.HasClass(class) {
			return true
		}
	}
	return false
}

// parseAmazonTimestamp resolves page timestamp text into a point in time.
// The page omits the year, so the given year is appended first. Text that
// matches neither layout yields an error, never a placeholder time.
func parseAmazonTimestamp(text string, year int, loc *time.Location) (time.Time, error) {
	stamped := fmt.Sprintf("%s %d", text, year)
	for _, layout := range amazonTimestampLayouts {
		if ts, err := time.ParseInLocation(layout, stamped, loc); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp format: %q", text)
}
