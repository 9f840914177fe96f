package mock

import (
	"fmt"
	"math/rand"
	"time"
)

// AP model numbers used for realistic mock fleets.
var apModels = []string{"MR33", "MR36", "MR44", "MR46", "MR56", "MR57"}

// AP name sites/floors for realistic mock fleets.
var apSites = []string{
	"Lobby", "Reception", "Cafeteria", "Warehouse", "Lab",
	"Floor1-East", "Floor1-West", "Floor2-East", "Floor2-West",
	"Conference-A", "Conference-B", "Training", "Atrium",
}

// MockAP is one simulated access point.
type MockAP struct {
	Serial  string
	Name    string
	Model   string
	Status  string // "online", "offline", "alerting", "dormant"
	Band6   bool   // whether the hardware has a 6 GHz radio
	Util    map[string]float64
	Clients map[string]int
}

// DataGenerator produces a deterministic mock dashboard dataset from a seed.
type DataGenerator struct {
	rand     *rand.Rand
	OrgID    string
	Networks []MockNetwork
}

// MockNetwork groups a set of mock APs under a network ID and name.
type MockNetwork struct {
	ID   string
	Name string
	APs  []*MockAP
}

// NewDataGenerator creates a generator with a fixed seed so mock runs and
// tests see the same fleet every time.
func NewDataGenerator(seed int64) *DataGenerator {
	g := &DataGenerator{
		rand:  rand.New(rand.NewSource(seed)),
		OrgID: "mock-org",
	}
	g.Networks = []MockNetwork{
		{ID: "N_1001", Name: "Headquarters", APs: g.generateAPs(12)},
		{ID: "N_1002", Name: "Branch Office", APs: g.generateAPs(4)},
	}
	return g
}

func (g *DataGenerator) generateAPs(count int) []*MockAP {
	aps := make([]*MockAP, 0, count)
	for i := 0; i < count; i++ {
		site := apSites[g.rand.Intn(len(apSites))]
		model := apModels[g.rand.Intn(len(apModels))]
		ap := &MockAP{
			Serial: fmt.Sprintf("Q2XX-%04d-%04d", g.rand.Intn(10000), g.rand.Intn(10000)),
			Name:   fmt.Sprintf("AP-%s-%02d", site, i+1),
			Model:  model,
			Status: "online",
			// Wi-Fi 6E hardware and newer carries a 6 GHz radio.
			Band6:   model == "MR57",
			Util:    make(map[string]float64),
			Clients: make(map[string]int),
		}
		// Roughly one AP in six is down.
		if g.rand.Intn(6) == 0 {
			ap.Status = "offline"
		}
		for _, band := range []string{"2.4", "5", "6"} {
			if band == "6" && !ap.Band6 {
				continue
			}
			ap.Util[band] = float64(g.rand.Intn(900)) / 10.0
			ap.Clients[band] = g.rand.Intn(120)
		}
		aps = append(aps, ap)
	}
	return aps
}

// Network returns the mock network with the given ID, nil if unknown.
func (g *DataGenerator) Network(id string) *MockNetwork {
	for i := range g.Networks {
		if g.Networks[i].ID == id {
			return &g.Networks[i]
		}
	}
	return nil
}

// FindAP returns the AP with the given serial inside a network, nil if
// unknown.
func (n *MockNetwork) FindAP(serial string) *MockAP {
	for _, ap := range n.APs {
		if ap.Serial == serial {
			return ap
		}
	}
	return nil
}

// WindowEnd returns the end timestamp reported for generated history points.
func WindowEnd() time.Time {
	return time.Now().UTC().Truncate(5 * time.Minute)
}
