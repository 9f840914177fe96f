package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/wifiops/aputil/internal/archive"
	"github.com/wifiops/aputil/internal/config"
	"github.com/wifiops/aputil/internal/meraki"
	"github.com/wifiops/aputil/internal/mock"
	"github.com/wifiops/aputil/internal/report"
)

// mockSeed keeps -mock runs reproducible.
const mockSeed = 1

// Application wires credentials, the API client and the output writers for
// one report run.
type Application struct {
	Config *config.Config

	credentials config.Credentials
	client      *meraki.Client
	dashboard   *mock.Dashboard
}

// New creates an Application: loads credentials, and in mock mode boots the
// built-in dashboard instead of requiring credential files.
func New(cfg *config.Config) (*Application, error) {
	app := &Application{Config: cfg}

	baseURL := cfg.BaseURL
	if cfg.MockMode {
		app.dashboard = mock.NewDashboard(mockSeed)
		if err := app.dashboard.Start(); err != nil {
			return nil, fmt.Errorf("start mock dashboard: %w", err)
		}
		baseURL = app.dashboard.URL()
		app.credentials = config.Credentials{
			APIKey:         "mock-key",
			OrganizationID: app.dashboard.OrgID(),
		}
	} else {
		creds, err := config.LoadCredentials(cfg.TokenPath, cfg.OrgPath)
		if err != nil {
			return nil, err
		}
		app.credentials = creds
	}

	app.client = meraki.NewClient(baseURL, app.credentials.APIKey, cfg.Timeout)
	return app, nil
}

// Run executes the fetch-transform-render sequence once. Every stage failure
// aborts immediately; nothing is retried and no partial report is written.
func (a *Application) Run(ctx context.Context) error {
	networks, err := a.client.ListNetworks(ctx, a.credentials.OrganizationID)
	if err != nil {
		return fmt.Errorf("list networks: %w", err)
	}
	slog.Info("Fetched networks", "count", len(networks))

	network, err := SelectNetwork(networks, a.Config.NetworkName)
	if err != nil {
		return err
	}
	slog.Info("Selected network", "id", network.ID, "name", network.Name)

	devices, err := a.client.ListDevices(ctx, network.ID)
	if err != nil {
		return fmt.Errorf("list devices: %w", err)
	}

	statuses, err := a.client.ListDeviceStatuses(ctx, a.credentials.OrganizationID, network.ID)
	if err != nil {
		return fmt.Errorf("list device statuses: %w", err)
	}

	var onlineSerials []string
	for _, st := range statuses {
		if st.IsWireless() && st.IsOnline() {
			onlineSerials = append(onlineSerials, st.Serial)
		}
	}
	slog.Info("Fetched devices", "total", len(devices), "online_wireless", len(onlineSerials))

	samples, err := a.client.FetchSamples(ctx, network.ID, onlineSerials, a.Config.Lookback)
	if err != nil {
		return fmt.Errorf("fetch utilization samples: %w", err)
	}

	rep := report.Build(network.Name, devices, statuses, samples)
	slog.Info("Built report", "id", rep.ID, "rows", len(rep.Rows))

	return a.writeOutputs(rep)
}

// writeOutputs renders the report to every configured destination. The HTML
// file is written atomically so a failed run never leaves a partial report.
func (a *Application) writeOutputs(rep *report.Report) error {
	if err := writeFileAtomic(a.Config.OutputPath, func(w io.Writer) error {
		return report.WriteHTML(w, rep)
	}); err != nil {
		return fmt.Errorf("write HTML report: %w", err)
	}
	slog.Info("Wrote HTML report", "path", a.Config.OutputPath)

	if a.Config.CSVPath != "" {
		if err := writeFileAtomic(a.Config.CSVPath, func(w io.Writer) error {
			return report.ExportCSV(w, rep)
		}); err != nil {
			return fmt.Errorf("write CSV export: %w", err)
		}
		slog.Info("Wrote CSV export", "path", a.Config.CSVPath)
	}

	if a.Config.PDFPath != "" {
		data, err := report.NewPDFExporter().Export(rep)
		if err != nil {
			return fmt.Errorf("write PDF summary: %w", err)
		}
		if err := writeFileAtomic(a.Config.PDFPath, func(w io.Writer) error {
			_, err := w.Write(data)
			return err
		}); err != nil {
			return fmt.Errorf("write PDF summary: %w", err)
		}
		slog.Info("Wrote PDF summary", "path", a.Config.PDFPath)
	}

	if a.Config.ArchivePath != "" {
		store, err := archive.Open(a.Config.ArchivePath)
		if err != nil {
			return fmt.Errorf("open snapshot archive: %w", err)
		}
		defer store.Close()
		if err := store.SaveReport(rep); err != nil {
			return fmt.Errorf("archive snapshot: %w", err)
		}
		slog.Info("Archived snapshot", "path", a.Config.ArchivePath)
	}

	return nil
}

// Close releases run resources; currently just the mock dashboard.
func (a *Application) Close() error {
	if a.dashboard != nil {
		return a.dashboard.Close()
	}
	return nil
}

// writeFileAtomic writes through a temp file in the target directory and
// renames it into place, so readers never observe a half-written file.
func writeFileAtomic(path string, write func(io.Writer) error) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		tmp.Close()
		os.Remove(tmp.Name())
	}()

	if err := write(tmp); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
