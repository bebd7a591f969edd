package testutil

import (
	"testing"
	"time"

	"gorm.io/gorm"

	"citronix/entities"
	"citronix/pkg/season"
)

func SeedFarm(tb testing.TB, db *gorm.DB, name string, area float64) *entities.Farm {
	tb.Helper()
	f := &entities.Farm{Name: name, Location: "Meknes", Area: area, CreationDate: Date(2020, time.January, 1)}
	if err := db.Create(f).Error; err != nil {
		tb.Fatalf("seed farm: %v", err)
	}
	return f
}

func SeedField(tb testing.TB, db *gorm.DB, farmID uint, area float64) *entities.Field {
	tb.Helper()
	f := &entities.Field{FarmID: farmID, Area: area}
	if err := db.Omit("Farm", "Trees").Create(f).Error; err != nil {
		tb.Fatalf("seed field: %v", err)
	}
	return f
}

func SeedTree(tb testing.TB, db *gorm.DB, fieldID uint, plant time.Time) *entities.Tree {
	tb.Helper()
	t := &entities.Tree{FieldID: fieldID, PlantDate: plant}
	if err := db.Omit("Field").Create(t).Error; err != nil {
		tb.Fatalf("seed tree: %v", err)
	}
	return t
}

func SeedTrees(tb testing.TB, db *gorm.DB, fieldID uint, plant time.Time, n int) []entities.Tree {
	tb.Helper()
	out := make([]entities.Tree, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, *SeedTree(tb, db, fieldID, plant))
	}
	return out
}

func SeedHarvest(tb testing.TB, db *gorm.DB, date time.Time) *entities.Harvest {
	tb.Helper()
	h := &entities.Harvest{Date: date, Season: season.Of(date), Year: date.Year()}
	if err := db.Omit("Details", "Sales").Create(h).Error; err != nil {
		tb.Fatalf("seed harvest: %v", err)
	}
	return h
}

// SeedDetail attaches a detail and keeps the harvest total and lock in step.
func SeedDetail(tb testing.TB, db *gorm.DB, harvestID, treeID uint, qty float64) *entities.HarvestDetail {
	tb.Helper()
	d := &entities.HarvestDetail{HarvestID: harvestID, TreeID: treeID, Quantity: qty}
	if err := db.Omit("Harvest", "Tree").Create(d).Error; err != nil {
		tb.Fatalf("seed detail: %v", err)
	}
	err := db.Model(&entities.Harvest{}).Where("id = ?", harvestID).Updates(map[string]any{
		"total_quantity": gorm.Expr("total_quantity + ?", qty),
		"locked":         true,
	}).Error
	if err != nil {
		tb.Fatalf("seed detail total: %v", err)
	}
	return d
}

func SeedSale(tb testing.TB, db *gorm.DB, harvestID uint, date time.Time, price float64, customer string) *entities.Sale {
	tb.Helper()
	s := &entities.Sale{HarvestID: harvestID, Date: date, UnitPrice: price, Customer: customer}
	if err := db.Omit("Harvest").Create(s).Error; err != nil {
		tb.Fatalf("seed sale: %v", err)
	}
	return s
}
