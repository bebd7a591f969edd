package database

import (
	"errors"

	"gorm.io/gorm"

	"citronix/entities"
	"citronix/pkg/rules"
)

var errNilDB = errors.New("transaction runner has nil db")

// RecomputeHarvestTotals rewrites total_quantity for each harvest from its
// current details.
func RecomputeHarvestTotals(tx *gorm.DB, harvestIDs []uint) error {
	for _, id := range harvestIDs {
		var qs []float64
		if err := tx.Model(&entities.HarvestDetail{}).
			Where("harvest_id = ?", id).
			Pluck("quantity", &qs).Error; err != nil {
			return err
		}
		if err := tx.Model(&entities.Harvest{}).
			Where("id = ?", id).
			UpdateColumn("total_quantity", rules.RecomputeHarvestTotal(qs)).Error; err != nil {
			return err
		}
	}
	return nil
}

// PurgeTrees deletes trees together with their harvest details and brings the
// affected harvest totals back in line. Harvests stay locked.
func PurgeTrees(tx *gorm.DB, treeIDs []uint) error {
	if len(treeIDs) == 0 {
		return nil
	}
	var harvestIDs []uint
	if err := tx.Model(&entities.HarvestDetail{}).
		Where("tree_id IN ?", treeIDs).
		Distinct("harvest_id").
		Pluck("harvest_id", &harvestIDs).Error; err != nil {
		return err
	}
	if err := tx.Where("tree_id IN ?", treeIDs).Delete(&entities.HarvestDetail{}).Error; err != nil {
		return err
	}
	if err := tx.Where("id IN ?", treeIDs).Delete(&entities.Tree{}).Error; err != nil {
		return err
	}
	return RecomputeHarvestTotals(tx, harvestIDs)
}

// PurgeFields deletes fields and everything planted on them.
func PurgeFields(tx *gorm.DB, fieldIDs []uint) error {
	if len(fieldIDs) == 0 {
		return nil
	}
	var treeIDs []uint
	if err := tx.Model(&entities.Tree{}).Where("field_id IN ?", fieldIDs).Pluck("id", &treeIDs).Error; err != nil {
		return err
	}
	if err := PurgeTrees(tx, treeIDs); err != nil {
		return err
	}
	return tx.Where("id IN ?", fieldIDs).Delete(&entities.Field{}).Error
}

// PurgeHarvest deletes a harvest with its details and the sales linked to it.
func PurgeHarvest(tx *gorm.DB, harvestID uint) error {
	if err := tx.Where("harvest_id = ?", harvestID).Delete(&entities.HarvestDetail{}).Error; err != nil {
		return err
	}
	if err := tx.Where("harvest_id = ?", harvestID).Delete(&entities.Sale{}).Error; err != nil {
		return err
	}
	return tx.Delete(&entities.Harvest{}, harvestID).Error
}
