package flux

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/goccy/go-json"
)

const (
	// DefaultURL is the GOES primary differential proton flux feed (last day).
	DefaultURL = "https://services.swpc.noaa.gov/json/goes/primary/differential-proton-flux-1-day.json"

	// FallbackFlux is reported whenever the live feed cannot be read.
	FallbackFlux = 100.0

	DefaultTimeout = 5 * time.Second

	maxBodyBytes = 32 << 20
)

// Reading is an ambient proton flux in protons·cm⁻²·s⁻¹·sr⁻¹.
type Reading struct {
	Value     float64     `json:"value"`
	Live      bool        `json:"live"`
	Source    string      `json:"source"`
	FetchedAt time.Time   `json:"fetched_at"`
	Fallback  FailureKind `json:"fallback_reason,omitempty"`
	Cause     error       `json:"-"`
}

// Fetcher resolves the current flux. Implementations never fail: a reading
// that could not be fetched comes back with Live=false and the fallback value.
type Fetcher interface {
	Fetch(ctx context.Context) Reading
}

type HTTPFetcher struct {
	url        string
	timeout    time.Duration
	fallback   float64
	httpClient *http.Client
	logger     *slog.Logger
}

// NewHTTPFetcher makes one request per Fetch, bounded by timeout. A zero
// timeout uses DefaultTimeout.
func NewHTTPFetcher(url string, timeout time.Duration, fallback float64, logger *slog.Logger) *HTTPFetcher {
	if url == "" {
		url = DefaultURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &HTTPFetcher{
		url:        url,
		timeout:    timeout,
		fallback:   fallback,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

func (f *HTTPFetcher) Fetch(ctx context.Context) Reading {
	start := time.Now()
	value, err := f.FetchLatest(ctx)
	fetchDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		kind := KindOf(err)
		fetchTotal.WithLabelValues("fallback", string(kind)).Inc()
		f.logger.Warn("flux fetch failed, using fallback",
			"kind", kind,
			"error", err,
			"fallback", f.fallback,
		)
		return Reading{
			Value:     f.fallback,
			Live:      false,
			Source:    SourceFallback,
			FetchedAt: time.Now().UTC(),
			Fallback:  kind,
			Cause:     err,
		}
	}
	fetchTotal.WithLabelValues("live", "").Inc()
	return Reading{
		Value:     value,
		Live:      true,
		Source:    SourceGOES,
		FetchedAt: time.Now().UTC(),
	}
}

const (
	SourceGOES     = "NOAA SWPC GOES-Primary"
	SourceFallback = "fallback"
)

// FetchLatest performs the single request and returns the most recent flux
// value, or a *FetchError describing why it could not.
func (f *HTTPFetcher) FetchLatest(ctx context.Context) (float64, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, "GET", f.url, nil)
	if err != nil {
		return 0, fetchErr(KindNetwork, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			return 0, fetchErr(KindTimeout, err)
		}
		return 0, fetchErr(KindNetwork, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		if isTimeout(err) {
			return 0, fetchErr(KindTimeout, err)
		}
		return 0, fetchErr(KindNetwork, err)
	}
	if resp.StatusCode != http.StatusOK {
		return 0, fetchErr(KindStatus, fmt.Errorf("swpc: %d", resp.StatusCode))
	}
	return ParseLatest(body)
}

// ParseLatest reads the flux field of the last element of a SWPC JSON array.
// The field may be a number or a numeric string.
func ParseLatest(body []byte) (float64, error) {
	if len(body) == 0 {
		return 0, fetchErr(KindEmpty, errors.New("empty body"))
	}
	var entries []map[string]json.RawMessage
	if err := json.Unmarshal(body, &entries); err != nil {
		return 0, fetchErr(KindDecode, err)
	}
	if len(entries) == 0 {
		return 0, fetchErr(KindEmpty, errors.New("no entries"))
	}
	raw, ok := entries[len(entries)-1]["flux"]
	if !ok || len(raw) == 0 || string(raw) == "null" {
		return 0, fetchErr(KindMissingField, errors.New("latest entry has no flux"))
	}
	v, err := parseNumber(raw)
	if err != nil {
		return 0, fetchErr(KindDecode, err)
	}
	return v, nil
}

func parseNumber(raw json.RawMessage) (float64, error) {
	var v float64
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, err
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, fmt.Errorf("flux %q: %w", s, err)
		}
		v = parsed
	} else if err := json.Unmarshal(raw, &v); err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("flux %v is not finite", v)
	}
	return v, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

// Static always reports the same value. It stands in for the live feed when
// fetching is disabled.
type Static struct {
	Value float64
}

func (s Static) Fetch(context.Context) Reading {
	return Reading{
		Value:     s.Value,
		Live:      false,
		Source:    SourceFallback,
		FetchedAt: time.Now().UTC(),
	}
}
