package repositoryImp

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"citronix/entities"
	"citronix/pkg/apperr"
	"citronix/pkg/dbctx"
	"citronix/pkg/harvest/repository"
	"citronix/pkg/season"
)

type detailRepo struct{ db *gorm.DB }

func NewDetailRepository(db *gorm.DB) repository.HarvestDetailRepository { return &detailRepo{db} }

func (r *detailRepo) Create(dbc dbctx.Context, d *entities.HarvestDetail) error {
	return apperr.FromStorage("harvest_detail.create", dbc.DB(r.db).Omit(clause.Associations).Create(d).Error)
}

func (r *detailRepo) CreateBatch(dbc dbctx.Context, ds []*entities.HarvestDetail) error {
	if len(ds) == 0 {
		return nil
	}
	return apperr.FromStorage("harvest_detail.create_batch", dbc.DB(r.db).Omit(clause.Associations).Create(&ds).Error)
}

func (r *detailRepo) Update(dbc dbctx.Context, d *entities.HarvestDetail) error {
	return apperr.FromStorage("harvest_detail.update", dbc.DB(r.db).Omit(clause.Associations).Save(d).Error)
}

func (r *detailRepo) FindByID(dbc dbctx.Context, id uint) (*entities.HarvestDetail, error) {
	var d entities.HarvestDetail
	if err := dbc.DB(r.db).First(&d, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("harvest_detail.get", "Harvest detail not found with id: %d", id)
		}
		return nil, apperr.FromStorage("harvest_detail.get", err)
	}
	return &d, nil
}

func (r *detailRepo) List(dbc dbctx.Context) ([]entities.HarvestDetail, error) {
	var out []entities.HarvestDetail
	err := dbc.DB(r.db).Order("id asc").Find(&out).Error
	return out, apperr.FromStorage("harvest_detail.list", err)
}

func (r *detailRepo) FindByHarvest(dbc dbctx.Context, harvestID uint) ([]entities.HarvestDetail, error) {
	var out []entities.HarvestDetail
	err := dbc.DB(r.db).Where("harvest_id = ?", harvestID).Order("id asc").Find(&out).Error
	return out, apperr.FromStorage("harvest_detail.by_harvest", err)
}

func (r *detailRepo) FindByTree(dbc dbctx.Context, treeID uint) ([]entities.HarvestDetail, error) {
	var out []entities.HarvestDetail
	err := dbc.DB(r.db).Where("tree_id = ?", treeID).Order("id asc").Find(&out).Error
	return out, apperr.FromStorage("harvest_detail.by_tree", err)
}

func (r *detailRepo) SumQuantityByHarvest(dbc dbctx.Context, harvestID uint) (float64, error) {
	var sum float64
	err := dbc.DB(r.db).Model(&entities.HarvestDetail{}).
		Where("harvest_id = ?", harvestID).
		Select("COALESCE(SUM(quantity), 0)").
		Scan(&sum).Error
	return sum, apperr.FromStorage("harvest_detail.sum", err)
}

func (r *detailRepo) seasonScope(dbc dbctx.Context, s season.Season, year int) *gorm.DB {
	return dbc.DB(r.db).Model(&entities.HarvestDetail{}).
		Joins("JOIN harvests ON harvests.id = harvest_details.harvest_id").
		Where("harvests.season = ? AND harvests.year = ?", s, year)
}

func (r *detailRepo) ExistsForTreeSeasonYear(dbc dbctx.Context, treeID uint, s season.Season, year int) (bool, error) {
	var n int64
	if err := r.seasonScope(dbc, s, year).Where("harvest_details.tree_id = ?", treeID).Count(&n).Error; err != nil {
		return false, apperr.FromStorage("harvest_detail.exists", err)
	}
	return n > 0, nil
}

func (r *detailRepo) HarvestedTrees(dbc dbctx.Context, treeIDs []uint, s season.Season, year int) (map[uint]bool, error) {
	out := make(map[uint]bool, len(treeIDs))
	if len(treeIDs) == 0 {
		return out, nil
	}
	var ids []uint
	err := r.seasonScope(dbc, s, year).
		Where("harvest_details.tree_id IN ?", treeIDs).
		Distinct("harvest_details.tree_id").
		Pluck("harvest_details.tree_id", &ids).Error
	if err != nil {
		return nil, apperr.FromStorage("harvest_detail.harvested", err)
	}
	for _, id := range ids {
		out[id] = true
	}
	return out, nil
}

func (r *detailRepo) Delete(dbc dbctx.Context, id uint) error {
	return apperr.FromStorage("harvest_detail.delete", dbc.DB(r.db).Delete(&entities.HarvestDetail{}, id).Error)
}
