package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"langusta/core/payload"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// recordModel is one stored record per namespace.
type recordModel struct {
	Namespace     string    `gorm:"column:namespace;primaryKey;size:191"`
	Version       string    `gorm:"column:version;size:191;not null"`
	Localizations string    `gorm:"column:localizations;type:longtext;not null"`
	UpdatedAt     time.Time `gorm:"column:updated_at"`
}

// TableName implements gorm's tabler interface.
func (recordModel) TableName() string {
	return "langusta_records"
}

// SQL stores records in a relational database through gorm.
type SQL struct {
	db        *gorm.DB
	namespace string
}

// NewSQL creates a SQL store scoped to namespace.
func NewSQL(db *gorm.DB, namespace string) *SQL {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	return &SQL{db: db, namespace: namespace}
}

// Migrate creates or updates the langusta_records table.
func (s *SQL) Migrate(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(&recordModel{}); err != nil {
		return fmt.Errorf("failed to migrate langusta_records: %w", err)
	}
	return nil
}

// LoadRecord implements RecordLoader.
func (s *SQL) LoadRecord(ctx context.Context) (*Record, error) {
	var rows []recordModel
	err := s.db.WithContext(ctx).
		Where("namespace = ?", s.namespace).
		Limit(1).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load record %s: %w", s.namespace, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	var locs payload.Localizations
	if err := json.Unmarshal([]byte(rows[0].Localizations), &locs); err != nil {
		return nil, fmt.Errorf("failed to decode stored localizations for %s: %w", s.namespace, err)
	}

	return &Record{
		Version:       rows[0].Version,
		Localizations: locs,
		UpdatedAt:     rows[0].UpdatedAt,
	}, nil
}

// LoadVersion implements Store.
func (s *SQL) LoadVersion(ctx context.Context) (string, bool, error) {
	rec, err := s.LoadRecord(ctx)
	if err != nil || rec == nil {
		return "", false, err
	}
	return rec.Version, true, nil
}

// LoadLocalizations implements Store.
func (s *SQL) LoadLocalizations(ctx context.Context) (payload.Localizations, bool, error) {
	rec, err := s.LoadRecord(ctx)
	if err != nil || rec == nil {
		return nil, false, err
	}
	return rec.Localizations, true, nil
}

// Save implements Store with a single upsert.
func (s *SQL) Save(ctx context.Context, version string, localizations payload.Localizations) error {
	encoded, err := json.Marshal(localizations)
	if err != nil {
		return fmt.Errorf("failed to encode localizations: %w", err)
	}

	row := recordModel{
		Namespace:     s.namespace,
		Version:       version,
		Localizations: string(encoded),
		UpdatedAt:     time.Now(),
	}

	err = s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "namespace"}},
			UpdateAll: true,
		}).
		Create(&row).Error
	if err != nil {
		return fmt.Errorf("failed to save record %s: %w", s.namespace, err)
	}
	return nil
}
