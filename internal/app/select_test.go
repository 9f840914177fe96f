package app

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wifiops/aputil/internal/meraki"
)

var testNetworks = []meraki.Network{
	{ID: "N1", Name: "HQ"},
	{ID: "N2", Name: "Branch"},
}

func TestSelectNetwork_ByName(t *testing.T) {
	network, err := SelectNetwork(testNetworks, "Branch")
	require.NoError(t, err)
	assert.Equal(t, "N2", network.ID)
}

func TestSelectNetwork_CaseInsensitiveFallback(t *testing.T) {
	network, err := SelectNetwork(testNetworks, "branch")
	require.NoError(t, err)
	assert.Equal(t, "N2", network.ID)
}

func TestSelectNetwork_UnknownName(t *testing.T) {
	_, err := SelectNetwork(testNetworks, "Unknown")
	var selErr *SelectionError
	require.True(t, errors.As(err, &selErr))
	assert.Equal(t, "Unknown", selErr.Requested)
	assert.Equal(t, []string{"HQ", "Branch"}, selErr.Candidates)
}

func TestSelectNetwork_DefaultsToOnlyNetwork(t *testing.T) {
	network, err := SelectNetwork(testNetworks[:1], "")
	require.NoError(t, err)
	assert.Equal(t, "N1", network.ID)
}

func TestSelectNetwork_AmbiguousWithoutName(t *testing.T) {
	_, err := SelectNetwork(testNetworks, "")
	var selErr *SelectionError
	require.True(t, errors.As(err, &selErr))
	assert.Empty(t, selErr.Requested)
	assert.Len(t, selErr.Candidates, 2)
}

func TestSelectNetwork_AmbiguousCaseInsensitiveMatch(t *testing.T) {
	networks := []meraki.Network{
		{ID: "N1", Name: "Lab"},
		{ID: "N2", Name: "LAB"},
	}

	// Exact match still wins.
	network, err := SelectNetwork(networks, "LAB")
	require.NoError(t, err)
	assert.Equal(t, "N2", network.ID)

	// A folded match hitting both candidates is ambiguous.
	_, err = SelectNetwork(networks, "lab")
	var selErr *SelectionError
	require.True(t, errors.As(err, &selErr))
}
