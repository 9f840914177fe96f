package app

import (
	"fmt"
	"strings"

	"github.com/wifiops/aputil/internal/meraki"
)

// SelectionError reports that the requested network could not be resolved to
// exactly one candidate.
type SelectionError struct {
	Requested  string
	Candidates []string
}

func (e *SelectionError) Error() string {
	if e.Requested == "" {
		return fmt.Sprintf("network selection: no name given and %d networks exist: %s",
			len(e.Candidates), strings.Join(e.Candidates, ", "))
	}
	return fmt.Sprintf("network selection: %q not found among: %s",
		e.Requested, strings.Join(e.Candidates, ", "))
}

// SelectNetwork resolves the target network. An exact name match wins; a
// case-insensitive match is accepted when it is unambiguous. With no name
// given the single network of the organization is used; anything else is a
// SelectionError listing the candidates.
func SelectNetwork(networks []meraki.Network, name string) (meraki.Network, error) {
	names := make([]string, 0, len(networks))
	for _, n := range networks {
		names = append(names, n.Name)
	}

	if name == "" {
		if len(networks) == 1 {
			return networks[0], nil
		}
		return meraki.Network{}, &SelectionError{Candidates: names}
	}

	for _, n := range networks {
		if n.Name == name {
			return n, nil
		}
	}

	var folded []meraki.Network
	for _, n := range networks {
		if strings.EqualFold(n.Name, name) {
			folded = append(folded, n)
		}
	}
	if len(folded) == 1 {
		return folded[0], nil
	}

	return meraki.Network{}, &SelectionError{Requested: name, Candidates: names}
}
