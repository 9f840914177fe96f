package mock

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
)

// Dashboard is an in-process fake of the Meraki dashboard API. It backs
// -mock runs and the client tests; only the endpoints the reporter calls are
// implemented.
type Dashboard struct {
	generator *DataGenerator
	server    *http.Server
	listener  net.Listener
}

// NewDashboard creates a mock dashboard with a deterministic fleet.
func NewDashboard(seed int64) *Dashboard {
	d := &Dashboard{generator: NewDataGenerator(seed)}

	r := mux.NewRouter()
	r.HandleFunc("/organizations/{orgId}/networks", d.handleNetworks).Methods(http.MethodGet)
	r.HandleFunc("/organizations/{orgId}/devices/statuses", d.handleStatuses).Methods(http.MethodGet)
	r.HandleFunc("/networks/{networkId}/devices", d.handleDevices).Methods(http.MethodGet)
	r.HandleFunc("/networks/{networkId}/wireless/channelUtilizationHistory", d.handleUtilization).Methods(http.MethodGet)
	r.HandleFunc("/networks/{networkId}/wireless/clientCountHistory", d.handleClientCount).Methods(http.MethodGet)

	d.server = &http.Server{Handler: r}
	return d
}

// Start binds the dashboard to an ephemeral localhost port.
func (d *Dashboard) Start() error {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return err
	}
	d.listener = ln
	go func() {
		if err := d.server.Serve(ln); err != nil && err != http.ErrServerClosed {
			slog.Error("Mock dashboard server error", "error", err)
		}
	}()
	slog.Info("Mock dashboard started", "url", d.URL())
	return nil
}

// URL returns the base URL of the running dashboard.
func (d *Dashboard) URL() string {
	return fmt.Sprintf("http://%s", d.listener.Addr().String())
}

// OrgID returns the organization ID the mock dataset lives under.
func (d *Dashboard) OrgID() string {
	return d.generator.OrgID
}

// Generator exposes the backing dataset, mostly for test assertions.
func (d *Dashboard) Generator() *DataGenerator {
	return d.generator
}

// Close shuts the dashboard down.
func (d *Dashboard) Close() error {
	return d.server.Close()
}

func (d *Dashboard) handleNetworks(w http.ResponseWriter, r *http.Request) {
	if mux.Vars(r)["orgId"] != d.generator.OrgID {
		writeError(w, http.StatusNotFound, "organization not found")
		return
	}
	type network struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	out := make([]network, 0, len(d.generator.Networks))
	for _, n := range d.generator.Networks {
		out = append(out, network{ID: n.ID, Name: n.Name})
	}
	writeJSON(w, out)
}

func (d *Dashboard) handleDevices(w http.ResponseWriter, r *http.Request) {
	n := d.generator.Network(mux.Vars(r)["networkId"])
	if n == nil {
		writeError(w, http.StatusNotFound, "network not found")
		return
	}
	type device struct {
		Serial string `json:"serial"`
		Name   string `json:"name"`
		Model  string `json:"model"`
	}
	out := make([]device, 0, len(n.APs))
	for _, ap := range n.APs {
		out = append(out, device{Serial: ap.Serial, Name: ap.Name, Model: ap.Model})
	}
	writeJSON(w, out)
}

func (d *Dashboard) handleStatuses(w http.ResponseWriter, r *http.Request) {
	if mux.Vars(r)["orgId"] != d.generator.OrgID {
		writeError(w, http.StatusNotFound, "organization not found")
		return
	}
	networkID := r.URL.Query().Get("networkIds[]")
	n := d.generator.Network(networkID)
	if n == nil {
		writeError(w, http.StatusBadRequest, "unknown networkIds[] filter")
		return
	}
	type status struct {
		Serial      string `json:"serial"`
		Name        string `json:"name"`
		Status      string `json:"status"`
		ProductType string `json:"productType"`
	}
	out := make([]status, 0, len(n.APs))
	for _, ap := range n.APs {
		out = append(out, status{
			Serial:      ap.Serial,
			Name:        ap.Name,
			Status:      ap.Status,
			ProductType: "wireless",
		})
	}
	writeJSON(w, out)
}

// historyPoint matches the shape of the dashboard history endpoints.
type historyPoint struct {
	StartTS     string   `json:"startTs"`
	EndTS       string   `json:"endTs"`
	Utilization *float64 `json:"utilization,omitempty"`
	ClientCount *int     `json:"clientCount,omitempty"`
}

func (d *Dashboard) lookupRadio(w http.ResponseWriter, r *http.Request) (*MockAP, string, bool) {
	n := d.generator.Network(mux.Vars(r)["networkId"])
	if n == nil {
		writeError(w, http.StatusNotFound, "network not found")
		return nil, "", false
	}
	ap := n.FindAP(r.URL.Query().Get("deviceSerial"))
	if ap == nil {
		writeError(w, http.StatusNotFound, "device not found")
		return nil, "", false
	}
	band := r.URL.Query().Get("band")
	if band == "6" && !ap.Band6 {
		// The real dashboard rejects bands the radio does not have.
		writeError(w, http.StatusBadRequest, "band not supported by this device")
		return nil, "", false
	}
	return ap, band, true
}

func (d *Dashboard) handleUtilization(w http.ResponseWriter, r *http.Request) {
	ap, band, ok := d.lookupRadio(w, r)
	if !ok {
		return
	}
	util := ap.Util[band]
	end := WindowEnd()
	writeJSON(w, []historyPoint{{
		StartTS:     end.Add(-5 * time.Minute).Format(time.RFC3339),
		EndTS:       end.Format(time.RFC3339),
		Utilization: &util,
	}})
}

func (d *Dashboard) handleClientCount(w http.ResponseWriter, r *http.Request) {
	ap, band, ok := d.lookupRadio(w, r)
	if !ok {
		return
	}
	clients := ap.Clients[band]
	end := WindowEnd()
	writeJSON(w, []historyPoint{{
		StartTS:     end.Add(-5 * time.Minute).Format(time.RFC3339),
		EndTS:       end.Format(time.RFC3339),
		ClientCount: &clients,
	}})
}

func writeJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("Failed to encode mock response", "error", err)
	}
}

func writeError(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string][]string{"errors": {message}})
}
