package meraki

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// Placeholder values the dashboard UI shows for unnamed hardware.
const (
	DefaultDeviceName = "Default Device Name"
	UnknownModel      = "Unknown Model"
)

// ListDevices returns every device in the network, paginated like
// ListNetworks. Entries without a serial are dropped; blank names and models
// get the dashboard's placeholder values.
func (c *Client) ListDevices(ctx context.Context, networkID string) ([]Device, error) {
	path := fmt.Sprintf("/networks/%s/devices", url.PathEscape(networkID))

	var all []Device
	startingAfter := ""
	for {
		query := url.Values{"perPage": []string{strconv.Itoa(perPage)}}
		if startingAfter != "" {
			query.Set("startingAfter", startingAfter)
		}

		var page []Device
		if err := c.get(ctx, path, query, &page); err != nil {
			return nil, err
		}

		for _, d := range page {
			if d.Serial == "" {
				continue
			}
			if d.Name == "" {
				d.Name = DefaultDeviceName
			}
			if d.Model == "" {
				d.Model = UnknownModel
			}
			all = append(all, d)
		}
		if len(page) < perPage {
			return all, nil
		}
		startingAfter = page[len(page)-1].Serial
	}
}

// ListDeviceStatuses returns the status of every device in the network,
// queried at organization scope the way the dashboard exposes it.
func (c *Client) ListDeviceStatuses(ctx context.Context, orgID, networkID string) ([]DeviceStatus, error) {
	path := fmt.Sprintf("/organizations/%s/devices/statuses", url.PathEscape(orgID))
	query := url.Values{"networkIds[]": []string{networkID}}

	var statuses []DeviceStatus
	if err := c.get(ctx, path, query, &statuses); err != nil {
		return nil, err
	}
	return statuses, nil
}
