package archive

import (
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/wifiops/aputil/internal/report"
)

// Store appends report snapshots to a local SQLite database. It only
// retains raw rows; any analysis of past runs is up to the reader.
type Store struct {
	db *gorm.DB
}

// SnapshotModel is the GORM model for one report run.
type SnapshotModel struct {
	ID           string `gorm:"primaryKey"`
	NetworkName  string
	GeneratedAt  time.Time
	OnlineCount  int
	OfflineCount int
	Rows         []RowModel `gorm:"foreignKey:SnapshotID"`
}

// RowModel is the GORM model for one report row.
type RowModel struct {
	ID                 uint   `gorm:"primaryKey"`
	SnapshotID         string `gorm:"index"`
	Serial             string `gorm:"index"`
	Name               string
	Model              string
	Band               string
	UtilizationPercent float64
	ClientCount        int
	Status             string
	Offline            bool
}

// Open initializes the database and migrates the schema.
func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&SnapshotModel{}, &RowModel{}); err != nil {
		return nil, err
	}

	db.Exec("CREATE INDEX IF NOT EXISTS idx_snapshots_generated_at ON snapshot_models(generated_at)")

	return &Store{db: db}, nil
}

// SaveReport persists one report run with all of its rows.
func (s *Store) SaveReport(r *report.Report) error {
	model := SnapshotModel{
		ID:           r.ID,
		NetworkName:  r.NetworkName,
		GeneratedAt:  r.GeneratedAt,
		OnlineCount:  r.OnlineCount,
		OfflineCount: r.OfflineCount,
	}
	for _, row := range r.Rows {
		model.Rows = append(model.Rows, RowModel{
			SnapshotID:         r.ID,
			Serial:             row.Serial,
			Name:               row.Name,
			Model:              row.Model,
			Band:               row.BandLabel,
			UtilizationPercent: row.UtilizationPercent,
			ClientCount:        row.ClientCount,
			Status:             row.Status,
			Offline:            row.Offline,
		})
	}
	return s.db.Create(&model).Error
}

// Snapshots returns all stored runs, newest first, rows included.
func (s *Store) Snapshots() ([]SnapshotModel, error) {
	var snapshots []SnapshotModel
	err := s.db.Preload("Rows").Order("generated_at DESC").Find(&snapshots).Error
	return snapshots, err
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
