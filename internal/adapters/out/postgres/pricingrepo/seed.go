package pricingrepo

import (
	"context"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Catalog is the YAML layout of a pricing configuration file.
type Catalog struct {
	AcademicLevels []AcademicLevelDTO `yaml:"academic_levels"`
	ServiceTypes   []ServiceTypeDTO   `yaml:"service_types"`
	DeadlineTypes  []DeadlineTypeDTO  `yaml:"deadline_types"`
	Languages      []LanguageDTO      `yaml:"languages"`
	Rates          []RateDTO          `yaml:"rates"`
	Presets        []PresetDTO        `yaml:"presets"`
}

// LoadCatalog reads and validates a catalog file.
func LoadCatalog(path string) (Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("read pricing catalog: %w", err)
	}
	return ParseCatalog(raw)
}

func ParseCatalog(raw []byte) (Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return Catalog{}, fmt.Errorf("parse pricing catalog: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Catalog{}, err
	}
	return c, nil
}

// Validate converts every row to its domain value and checks it.
func (c Catalog) Validate() error {
	for _, d := range c.AcademicLevels {
		if err := d.validate(); err != nil {
			return fmt.Errorf("academic level %q: %w", d.Name, err)
		}
	}
	for _, d := range c.ServiceTypes {
		if err := d.validate(); err != nil {
			return fmt.Errorf("service type %q: %w", d.Name, err)
		}
	}
	for _, d := range c.DeadlineTypes {
		if err := d.validate(); err != nil {
			return fmt.Errorf("deadline type %q: %w", d.Name, err)
		}
	}
	for _, d := range c.Languages {
		if err := d.validate(); err != nil {
			return fmt.Errorf("language %q: %w", d.Name, err)
		}
	}
	for _, d := range c.Rates {
		if err := d.validate(); err != nil {
			return fmt.Errorf("rate %dh: %w", d.Hours, err)
		}
	}
	for _, d := range c.Presets {
		if err := d.validate(); err != nil {
			return fmt.Errorf("preset %s: %w", d.ID, err)
		}
	}
	return nil
}

// Seed upserts the catalog by primary key in one transaction. Rows missing
// from the catalog are left alone.
func Seed(ctx context.Context, db *gorm.DB, c Catalog) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tx = tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		})
		return errors.Join(
			upsert(tx, c.AcademicLevels),
			upsert(tx, c.ServiceTypes),
			upsert(tx, c.DeadlineTypes),
			upsert(tx, c.Languages),
			upsert(tx, c.Rates),
			upsert(tx, c.Presets),
		)
	})
}

func upsert[T any](tx *gorm.DB, rows []T) error {
	if len(rows) == 0 {
		return nil
	}
	return tx.Create(&rows).Error
}
