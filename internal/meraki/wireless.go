package meraki

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"
)

// historyPoint is one entry of the channelUtilizationHistory or
// clientCountHistory responses. Only the fields we read are modeled.
type historyPoint struct {
	StartTS          time.Time `json:"startTs"`
	EndTS            time.Time `json:"endTs"`
	Utilization      *float64  `json:"utilization"`
	UtilizationTotal *float64  `json:"utilizationTotal"`
	ClientCount      *int      `json:"clientCount"`
}

// FetchSamples retrieves the most recent utilization and client-count data
// point for every band of every given serial. The lookback window bounds the
// history query; only its latest point is kept, matching the dashboard's
// 5-minute snapshot semantics.
//
// A 400 on a band means the radio does not support it (6 GHz on older
// hardware); that band reports zeros. Any other API failure aborts the whole
// fetch: there is no partial-result suppression.
func (c *Client) FetchSamples(ctx context.Context, networkID string, serials []string, lookback time.Duration) ([]UtilizationSample, error) {
	t1 := time.Now().UTC()
	t0 := t1.Add(-lookback)

	samples := make([]UtilizationSample, 0, len(serials)*len(Bands))
	for _, serial := range serials {
		for _, band := range Bands {
			sample := UtilizationSample{Serial: serial, Band: band}

			util, ts, err := c.channelUtilization(ctx, networkID, serial, band, t0, t1)
			if err != nil {
				if !isBandUnsupported(err) {
					return nil, err
				}
			} else {
				sample.UtilizationPercent = util
				sample.Timestamp = ts
			}

			clients, ts, err := c.clientCount(ctx, networkID, serial, band, t0, t1)
			if err != nil {
				if !isBandUnsupported(err) {
					return nil, err
				}
			} else {
				sample.ClientCount = clients
				if sample.Timestamp.IsZero() {
					sample.Timestamp = ts
				}
			}

			samples = append(samples, sample)
		}
	}
	return samples, nil
}

// channelUtilization returns the latest utilization percentage for one
// device radio, zero if the window holds no data.
func (c *Client) channelUtilization(ctx context.Context, networkID, serial string, band Band, t0, t1 time.Time) (float64, time.Time, error) {
	path := fmt.Sprintf("/networks/%s/wireless/channelUtilizationHistory", url.PathEscape(networkID))
	query := url.Values{
		"t0":             []string{t0.Format(time.RFC3339)},
		"t1":             []string{t1.Format(time.RFC3339)},
		"autoResolution": []string{"true"},
		"deviceSerial":   []string{serial},
		"band":           []string{string(band)},
	}

	var points []historyPoint
	if err := c.get(ctx, path, query, &points); err != nil {
		return 0, time.Time{}, err
	}
	if len(points) == 0 {
		return 0, time.Time{}, nil
	}

	latest := points[len(points)-1]
	switch {
	case latest.Utilization != nil:
		return *latest.Utilization, latest.EndTS, nil
	case latest.UtilizationTotal != nil:
		return *latest.UtilizationTotal, latest.EndTS, nil
	default:
		return 0, latest.EndTS, nil
	}
}

// clientCount returns the latest client count for one device radio, zero if
// the window holds no data.
func (c *Client) clientCount(ctx context.Context, networkID, serial string, band Band, t0, t1 time.Time) (int, time.Time, error) {
	path := fmt.Sprintf("/networks/%s/wireless/clientCountHistory", url.PathEscape(networkID))
	query := url.Values{
		"t0":           []string{t0.Format(time.RFC3339)},
		"t1":           []string{t1.Format(time.RFC3339)},
		"resolution":   []string{"300"},
		"deviceSerial": []string{serial},
		"band":         []string{string(band)},
	}

	var points []historyPoint
	if err := c.get(ctx, path, query, &points); err != nil {
		return 0, time.Time{}, err
	}
	if len(points) == 0 {
		return 0, time.Time{}, nil
	}

	latest := points[len(points)-1]
	if latest.ClientCount == nil {
		return 0, latest.EndTS, nil
	}
	return *latest.ClientCount, latest.EndTS, nil
}

// isBandUnsupported reports whether the error is the dashboard rejecting a
// band the radio does not have.
func isBandUnsupported(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == 400
}
