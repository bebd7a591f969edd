package repositoryImp

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"citronix/database"
	"citronix/entities"
	"citronix/pkg/apperr"
	"citronix/pkg/dbctx"
	"citronix/pkg/harvest/repository"
	"citronix/pkg/season"
)

type harvestRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.HarvestRepository { return &harvestRepo{db} }

func byID(db *gorm.DB) *gorm.DB { return db.Order("id asc") }

func (r *harvestRepo) Create(dbc dbctx.Context, h *entities.Harvest) error {
	return apperr.FromStorage("harvest.create", dbc.DB(r.db).Omit(clause.Associations).Create(h).Error)
}

func (r *harvestRepo) Update(dbc dbctx.Context, h *entities.Harvest) error {
	return apperr.FromStorage("harvest.update", dbc.DB(r.db).Omit(clause.Associations).Save(h).Error)
}

func (r *harvestRepo) FindByID(dbc dbctx.Context, id uint) (*entities.Harvest, error) {
	return r.find(dbc.DB(r.db), id)
}

func (r *harvestRepo) FindByIDWithDetails(dbc dbctx.Context, id uint) (*entities.Harvest, error) {
	return r.find(dbc.DB(r.db).Preload("Details", byID).Preload("Sales", byID), id)
}

func (r *harvestRepo) find(q *gorm.DB, id uint) (*entities.Harvest, error) {
	var h entities.Harvest
	if err := q.First(&h, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("harvest.get", "Harvest not found with id: %d", id)
		}
		return nil, apperr.FromStorage("harvest.get", err)
	}
	return &h, nil
}

func (r *harvestRepo) List(dbc dbctx.Context) ([]entities.Harvest, error) {
	var out []entities.Harvest
	err := dbc.DB(r.db).Preload("Details", byID).Preload("Sales", byID).Order("date asc, id asc").Find(&out).Error
	return out, apperr.FromStorage("harvest.list", err)
}

func (r *harvestRepo) FindBySeason(dbc dbctx.Context, s season.Season) ([]entities.Harvest, error) {
	var out []entities.Harvest
	err := dbc.DB(r.db).Where("season = ?", s).Order("year asc, id asc").Find(&out).Error
	return out, apperr.FromStorage("harvest.by_season", err)
}

func (r *harvestRepo) FindByDateBetween(dbc dbctx.Context, start, end time.Time) ([]entities.Harvest, error) {
	var out []entities.Harvest
	err := dbc.DB(r.db).
		Preload("Sales", byID).
		Where("date >= ? AND date <= ?", start, end).
		Order("date asc, id asc").
		Find(&out).Error
	return out, apperr.FromStorage("harvest.by_date", err)
}

func (r *harvestRepo) SumTotalQuantityBetween(dbc dbctx.Context, start, end time.Time) (float64, error) {
	var sum float64
	err := dbc.DB(r.db).Model(&entities.Harvest{}).
		Where("date >= ? AND date <= ?", start, end).
		Select("COALESCE(SUM(total_quantity), 0)").
		Scan(&sum).Error
	return sum, apperr.FromStorage("harvest.sum_quantity", err)
}

func (r *harvestRepo) ExistsForSeasonYear(dbc dbctx.Context, s season.Season, year int, excludeID uint) (bool, error) {
	q := dbc.DB(r.db).Model(&entities.Harvest{}).Where("season = ? AND year = ?", s, year)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return false, apperr.FromStorage("harvest.exists", err)
	}
	return n > 0, nil
}

func (r *harvestRepo) Lock(dbc dbctx.Context, id uint) error {
	err := dbc.DB(r.db).Model(&entities.Harvest{}).Where("id = ?", id).UpdateColumn("locked", true).Error
	return apperr.FromStorage("harvest.lock", err)
}

func (r *harvestRepo) RecomputeTotal(dbc dbctx.Context, id uint) (float64, error) {
	tx := dbc.DB(r.db)
	if err := database.RecomputeHarvestTotals(tx, []uint{id}); err != nil {
		return 0, apperr.FromStorage("harvest.recompute", err)
	}
	h, err := r.find(tx, id)
	if err != nil {
		return 0, err
	}
	return h.TotalQuantity, nil
}

func (r *harvestRepo) Delete(dbc dbctx.Context, id uint) error {
	tx := dbc.DB(r.db)
	if _, err := r.find(tx, id); err != nil {
		return err
	}
	return apperr.FromStorage("harvest.delete", database.PurgeHarvest(tx, id))
}
