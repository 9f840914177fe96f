package meraki

import (
	"strings"
	"time"
)

// Band identifies a radio frequency band as the dashboard API spells it.
type Band string

const (
	Band24 Band = "2.4"
	Band5  Band = "5"
	Band6  Band = "6"
)

// Bands lists every band queried for each access point, in display order.
var Bands = []Band{Band24, Band5, Band6}

// Label returns the human-readable band name used in reports.
func (b Band) Label() string {
	return string(b) + " GHz"
}

// Network is one dashboard network inside an organization.
type Network struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Device is one device inside a network. Name and Model carry the
// dashboard's placeholder values when the fields come back blank.
type Device struct {
	Serial string `json:"serial"`
	Name   string `json:"name"`
	Model  string `json:"model"`
}

// DeviceStatus is one entry from the organization device status endpoint.
type DeviceStatus struct {
	Serial      string `json:"serial"`
	Name        string `json:"name"`
	Status      string `json:"status"`
	ProductType string `json:"productType"`
}

// IsWireless reports whether the status entry belongs to an access point.
func (s DeviceStatus) IsWireless() bool {
	return strings.HasPrefix(s.ProductType, "wireless")
}

// IsOnline reports whether the device was online at fetch time.
func (s DeviceStatus) IsOnline() bool {
	return s.Status == "online"
}

// UtilizationSample is the most recent channel-utilization and client-count
// data point for one device radio. One sample per band per online device;
// radios that do not support a band report zeros.
type UtilizationSample struct {
	Serial             string
	Band               Band
	UtilizationPercent float64
	ClientCount        int
	Timestamp          time.Time
}
