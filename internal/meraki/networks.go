package meraki

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// ListNetworks returns every network in the organization. The endpoint
// paginates with perPage/startingAfter; pages are fetched strictly in order
// until a short page comes back.
func (c *Client) ListNetworks(ctx context.Context, orgID string) ([]Network, error) {
	path := fmt.Sprintf("/organizations/%s/networks", url.PathEscape(orgID))

	var all []Network
	startingAfter := ""
	for {
		query := url.Values{"perPage": []string{strconv.Itoa(perPage)}}
		if startingAfter != "" {
			query.Set("startingAfter", startingAfter)
		}

		var page []Network
		if err := c.get(ctx, path, query, &page); err != nil {
			return nil, err
		}
		for _, n := range page {
			if n.ID == "" {
				return nil, &APIError{Message: "network entry missing required field id"}
			}
		}

		all = append(all, page...)
		if len(page) < perPage {
			return all, nil
		}
		startingAfter = page[len(page)-1].ID
	}
}
