package report

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/wifiops/aputil/internal/meraki"
)

// Severity classifies a row for color coding in the rendered outputs.
type Severity string

const (
	SeverityNone   Severity = ""
	SeverityOrange Severity = "orange"
	SeverityRed    Severity = "red"
)

// Utilization and client-count thresholds for row coloring.
const (
	redUtilization    = 70.0
	redClients        = 100
	orangeUtilization = 50.0
	orangeClients     = 50
)

// Row is one report line: one radio band of one access point, or a single
// placeholder line for an offline access point. Rows only live long enough
// to be rendered.
type Row struct {
	Name               string
	Serial             string
	Model              string
	BandLabel          string
	UtilizationPercent float64
	ClientCount        int
	Status             string
	Offline            bool
	Severity           Severity
}

// Report is the joined, ordered snapshot handed to the renderers.
type Report struct {
	ID           string
	NetworkName  string
	GeneratedAt  time.Time
	Rows         []Row
	OnlineCount  int
	OfflineCount int
}

// Build joins device metadata, statuses and samples by serial into report
// rows. Only wireless devices appear. Online access points get one row per
// band; offline ones get exactly one explicit "no data" row rather than
// being silently dropped, so the report always accounts for every AP. A
// sample whose serial matches no device from the same fetch is discarded.
func Build(networkName string, devices []meraki.Device, statuses []meraki.DeviceStatus, samples []meraki.UtilizationSample) *Report {
	deviceBySerial := make(map[string]meraki.Device, len(devices))
	for _, d := range devices {
		deviceBySerial[d.Serial] = d
	}

	samplesBySerial := make(map[string][]meraki.UtilizationSample)
	for _, s := range samples {
		if _, ok := deviceBySerial[s.Serial]; !ok {
			continue
		}
		samplesBySerial[s.Serial] = append(samplesBySerial[s.Serial], s)
	}

	rep := &Report{
		ID:          uuid.New().String(),
		NetworkName: networkName,
		GeneratedAt: time.Now(),
	}

	var online, offline []Row
	for _, st := range statuses {
		if !st.IsWireless() {
			continue
		}
		device, ok := deviceBySerial[st.Serial]
		if !ok {
			continue
		}

		if !st.IsOnline() {
			status := st.Status
			if status == "" {
				status = "offline"
			}
			offline = append(offline, Row{
				Name:    device.Name,
				Serial:  device.Serial,
				Model:   device.Model,
				Status:  status,
				Offline: true,
			})
			rep.OfflineCount++
			continue
		}

		rep.OnlineCount++
		for _, s := range orderedByBand(samplesBySerial[st.Serial]) {
			online = append(online, Row{
				Name:               device.Name,
				Serial:             device.Serial,
				Model:              device.Model,
				BandLabel:          s.Band.Label(),
				UtilizationPercent: s.UtilizationPercent,
				ClientCount:        s.ClientCount,
				Status:             "online",
				Severity:           classify(s),
			})
		}
	}

	// Online rows grouped by device name then band order; offline rows
	// trail, by name. Deterministic for identical input.
	sort.SliceStable(online, func(i, j int) bool {
		if online[i].Name != online[j].Name {
			return online[i].Name < online[j].Name
		}
		if online[i].Serial != online[j].Serial {
			return online[i].Serial < online[j].Serial
		}
		return bandRank(online[i].BandLabel) < bandRank(online[j].BandLabel)
	})
	sort.SliceStable(offline, func(i, j int) bool {
		if offline[i].Name != offline[j].Name {
			return offline[i].Name < offline[j].Name
		}
		return offline[i].Serial < offline[j].Serial
	})

	rep.Rows = append(online, offline...)
	return rep
}

func classify(s meraki.UtilizationSample) Severity {
	switch {
	case s.ClientCount > redClients || s.UtilizationPercent > redUtilization:
		return SeverityRed
	case s.ClientCount > orangeClients || s.UtilizationPercent > orangeUtilization:
		return SeverityOrange
	default:
		return SeverityNone
	}
}

func orderedByBand(samples []meraki.UtilizationSample) []meraki.UtilizationSample {
	ordered := make([]meraki.UtilizationSample, 0, len(samples))
	for _, band := range meraki.Bands {
		for _, s := range samples {
			if s.Band == band {
				ordered = append(ordered, s)
			}
		}
	}
	return ordered
}

func bandRank(label string) int {
	for i, band := range meraki.Bands {
		if band.Label() == label {
			return i
		}
	}
	return len(meraki.Bands)
}
