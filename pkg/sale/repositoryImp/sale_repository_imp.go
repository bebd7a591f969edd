package repositoryImp

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"citronix/entities"
	"citronix/pkg/apperr"
	"citronix/pkg/dbctx"
	"citronix/pkg/sale/repository"
	"citronix/pkg/season"
)

type saleRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.SaleRepository { return &saleRepo{db} }

func (r *saleRepo) withHarvest(dbc dbctx.Context) *gorm.DB {
	return dbc.DB(r.db).Preload("Harvest")
}

func (r *saleRepo) Create(dbc dbctx.Context, s *entities.Sale) error {
	return apperr.FromStorage("sale.create", dbc.DB(r.db).Omit(clause.Associations).Create(s).Error)
}

func (r *saleRepo) Update(dbc dbctx.Context, s *entities.Sale) error {
	return apperr.FromStorage("sale.update", dbc.DB(r.db).Omit(clause.Associations).Save(s).Error)
}

func (r *saleRepo) FindByID(dbc dbctx.Context, id uint) (*entities.Sale, error) {
	var s entities.Sale
	if err := r.withHarvest(dbc).First(&s, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("sale.get", "Sale not found with id: %d", id)
		}
		return nil, apperr.FromStorage("sale.get", err)
	}
	return &s, nil
}

func (r *saleRepo) List(dbc dbctx.Context) ([]entities.Sale, error) {
	var out []entities.Sale
	err := r.withHarvest(dbc).Order("id asc").Find(&out).Error
	return out, apperr.FromStorage("sale.list", err)
}

func (r *saleRepo) FindByHarvest(dbc dbctx.Context, harvestID uint) ([]entities.Sale, error) {
	var out []entities.Sale
	err := r.withHarvest(dbc).Where("harvest_id = ?", harvestID).Order("id asc").Find(&out).Error
	return out, apperr.FromStorage("sale.by_harvest", err)
}

func (r *saleRepo) FindByDateBetween(dbc dbctx.Context, start, end time.Time) ([]entities.Sale, error) {
	var out []entities.Sale
	err := r.withHarvest(dbc).
		Where("date >= ? AND date <= ?", start, end).
		Order("date asc, id asc").
		Find(&out).Error
	return out, apperr.FromStorage("sale.by_date", err)
}

func (r *saleRepo) FindByCustomer(dbc dbctx.Context, customer string) ([]entities.Sale, error) {
	var out []entities.Sale
	err := r.withHarvest(dbc).Where("customer = ?", customer).Order("date asc, id asc").Find(&out).Error
	return out, apperr.FromStorage("sale.by_customer", err)
}

func (r *saleRepo) CountByHarvest(dbc dbctx.Context, harvestID uint) (int, error) {
	var n int64
	err := dbc.DB(r.db).Model(&entities.Sale{}).Where("harvest_id = ?", harvestID).Count(&n).Error
	return int(n), apperr.FromStorage("sale.count", err)
}

func (r *saleRepo) TotalRevenueBetween(dbc dbctx.Context, start, end time.Time) (float64, error) {
	var sum float64
	err := dbc.DB(r.db).Model(&entities.Sale{}).
		Joins("JOIN harvests ON harvests.id = sales.harvest_id").
		Where("sales.date >= ? AND sales.date <= ?", start, end).
		Select("COALESCE(SUM(sales.unit_price * harvests.total_quantity), 0)").
		Scan(&sum).Error
	return sum, apperr.FromStorage("sale.revenue", err)
}

func (r *saleRepo) AverageUnitPriceBySeason(dbc dbctx.Context, s season.Season) (float64, error) {
	var avg float64
	err := dbc.DB(r.db).Model(&entities.Sale{}).
		Joins("JOIN harvests ON harvests.id = sales.harvest_id").
		Where("harvests.season = ?", s).
		Select("COALESCE(AVG(sales.unit_price), 0)").
		Scan(&avg).Error
	return avg, apperr.FromStorage("sale.avg_price", err)
}

func (r *saleRepo) Delete(dbc dbctx.Context, id uint) error {
	res := dbc.DB(r.db).Delete(&entities.Sale{}, id)
	if res.Error != nil {
		return apperr.FromStorage("sale.delete", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("sale.delete", "Sale not found with id: %d", id)
	}
	return nil
}
