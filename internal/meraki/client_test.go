package meraki

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, "test-key", 5*time.Second)
}

func TestListNetworks_SendsAuthHeader(t *testing.T) {
	var gotKey, gotAccept string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("X-Cisco-Meraki-API-Key")
		gotAccept = r.Header.Get("Accept")
		fmt.Fprint(w, `[{"id":"N1","name":"HQ"}]`)
	}))

	networks, err := client.ListNetworks(context.Background(), "org1")
	require.NoError(t, err)
	require.Len(t, networks, 1)
	assert.Equal(t, "test-key", gotKey)
	assert.Equal(t, "application/json", gotAccept)
	assert.Equal(t, Network{ID: "N1", Name: "HQ"}, networks[0])
}

func TestListNetworks_Pagination(t *testing.T) {
	// First page is exactly perPage long, second page is short.
	var startingAfters []string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		startingAfters = append(startingAfters, r.URL.Query().Get("startingAfter"))
		assert.Equal(t, strconv.Itoa(perPage), r.URL.Query().Get("perPage"))

		var page []Network
		if r.URL.Query().Get("startingAfter") == "" {
			for i := 0; i < perPage; i++ {
				page = append(page, Network{ID: fmt.Sprintf("N%d", i), Name: fmt.Sprintf("Net %d", i)})
			}
		} else {
			page = []Network{{ID: "N-last", Name: "Last"}}
		}
		require.NoError(t, json.NewEncoder(w).Encode(page))
	}))

	networks, err := client.ListNetworks(context.Background(), "org1")
	require.NoError(t, err)
	assert.Len(t, networks, perPage+1)
	require.Len(t, startingAfters, 2)
	assert.Equal(t, "", startingAfters[0])
	assert.Equal(t, fmt.Sprintf("N%d", perPage-1), startingAfters[1])
}

func TestListNetworks_MissingID(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[{"name":"HQ"}]`)
	}))

	_, err := client.ListNetworks(context.Background(), "org1")
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Contains(t, apiErr.Message, "missing required field id")
}

func TestGet_NonSuccessStatus(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"errors":["Invalid API key"]}`)
	}))

	_, err := client.ListNetworks(context.Background(), "org1")
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Contains(t, apiErr.Body, "Invalid API key")
}

func TestGet_MalformedJSON(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{not json`)
	}))

	_, err := client.ListNetworks(context.Background(), "org1")
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Contains(t, apiErr.Message, "malformed response")
}

func TestGet_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client := NewClient(url, "test-key", time.Second)
	_, err := client.ListNetworks(context.Background(), "org1")
	var netErr *NetworkError
	require.True(t, errors.As(err, &netErr))
}

func TestListDevices_Defaults(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[
			{"serial":"Q1","name":"AP-Lobby","model":"MR46"},
			{"serial":"Q2","name":"","model":""},
			{"serial":"","name":"ghost","model":"MR33"}
		]`)
	}))

	devices, err := client.ListDevices(context.Background(), "N1")
	require.NoError(t, err)
	require.Len(t, devices, 2)
	assert.Equal(t, Device{Serial: "Q1", Name: "AP-Lobby", Model: "MR46"}, devices[0])
	assert.Equal(t, Device{Serial: "Q2", Name: DefaultDeviceName, Model: UnknownModel}, devices[1])
}

func TestListDeviceStatuses_FiltersByNetwork(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "N1", r.URL.Query().Get("networkIds[]"))
		fmt.Fprint(w, `[
			{"serial":"Q1","status":"online","productType":"wireless"},
			{"serial":"Q2","status":"offline","productType":"wireless"},
			{"serial":"Q3","status":"online","productType":"switch"}
		]`)
	}))

	statuses, err := client.ListDeviceStatuses(context.Background(), "org1", "N1")
	require.NoError(t, err)
	require.Len(t, statuses, 3)
	assert.True(t, statuses[0].IsWireless())
	assert.True(t, statuses[0].IsOnline())
	assert.False(t, statuses[1].IsOnline())
	assert.False(t, statuses[2].IsWireless())
}

// historyHandler serves both wireless history endpoints from a per-band
// fixture and remembers the queries it saw.
type historyHandler struct {
	utilization map[Band]string
	clients     map[Band]string
	bandStatus  map[Band]int
}

func (h *historyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	band := Band(r.URL.Query().Get("band"))
	if code, ok := h.bandStatus[band]; ok {
		w.WriteHeader(code)
		fmt.Fprint(w, `{"errors":["bad band"]}`)
		return
	}
	switch r.URL.Path {
	case "/networks/N1/wireless/channelUtilizationHistory":
		fmt.Fprint(w, h.utilization[band])
	case "/networks/N1/wireless/clientCountHistory":
		fmt.Fprint(w, h.clients[band])
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func TestFetchSamples_LatestPointPerBand(t *testing.T) {
	h := &historyHandler{
		utilization: map[Band]string{
			// Two points; only the most recent one counts.
			Band24: `[{"endTs":"2026-08-25T09:55:00Z","utilization":12.5},{"endTs":"2026-08-25T10:00:00Z","utilization":37.5}]`,
			Band5:  `[{"endTs":"2026-08-25T10:00:00Z","utilizationTotal":61.2}]`,
			Band6:  `[]`,
		},
		clients: map[Band]string{
			Band24: `[{"endTs":"2026-08-25T10:00:00Z","clientCount":4}]`,
			Band5:  `[{"endTs":"2026-08-25T10:00:00Z","clientCount":17}]`,
			Band6:  `[]`,
		},
	}
	client := newTestClient(t, h)

	samples, err := client.FetchSamples(context.Background(), "N1", []string{"Q1"}, 10*time.Minute)
	require.NoError(t, err)
	require.Len(t, samples, 3)

	assert.Equal(t, Band24, samples[0].Band)
	assert.Equal(t, 37.5, samples[0].UtilizationPercent)
	assert.Equal(t, 4, samples[0].ClientCount)
	assert.Equal(t, time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC), samples[0].Timestamp)

	// utilizationTotal fallback
	assert.Equal(t, 61.2, samples[1].UtilizationPercent)
	assert.Equal(t, 17, samples[1].ClientCount)

	// empty window reports zeros
	assert.Equal(t, 0.0, samples[2].UtilizationPercent)
	assert.Equal(t, 0, samples[2].ClientCount)
	assert.True(t, samples[2].Timestamp.IsZero())
}

func TestFetchSamples_UnsupportedBandReportsZeros(t *testing.T) {
	h := &historyHandler{
		utilization: map[Band]string{
			Band24: `[{"endTs":"2026-08-25T10:00:00Z","utilization":5}]`,
			Band5:  `[{"endTs":"2026-08-25T10:00:00Z","utilization":9}]`,
		},
		clients: map[Band]string{
			Band24: `[{"endTs":"2026-08-25T10:00:00Z","clientCount":1}]`,
			Band5:  `[{"endTs":"2026-08-25T10:00:00Z","clientCount":2}]`,
		},
		bandStatus: map[Band]int{Band6: http.StatusBadRequest},
	}
	client := newTestClient(t, h)

	samples, err := client.FetchSamples(context.Background(), "N1", []string{"Q1"}, 10*time.Minute)
	require.NoError(t, err)
	require.Len(t, samples, 3)
	assert.Equal(t, Band6, samples[2].Band)
	assert.Equal(t, 0.0, samples[2].UtilizationPercent)
	assert.Equal(t, 0, samples[2].ClientCount)
}

func TestFetchSamples_ServerErrorAborts(t *testing.T) {
	h := &historyHandler{
		bandStatus: map[Band]int{Band24: http.StatusInternalServerError},
	}
	client := newTestClient(t, h)

	_, err := client.FetchSamples(context.Background(), "N1", []string{"Q1"}, 10*time.Minute)
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
}
