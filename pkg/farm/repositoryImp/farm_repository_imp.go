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
	"citronix/pkg/farm/repository"
)

type farmRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.FarmRepository { return &farmRepo{db} }

func (r *farmRepo) Create(dbc dbctx.Context, f *entities.Farm) error {
	return apperr.FromStorage("farm.create", dbc.DB(r.db).Omit(clause.Associations).Create(f).Error)
}

func (r *farmRepo) Update(dbc dbctx.Context, f *entities.Farm) error {
	return apperr.FromStorage("farm.update", dbc.DB(r.db).Omit(clause.Associations).Save(f).Error)
}

func (r *farmRepo) FindByID(dbc dbctx.Context, id uint) (*entities.Farm, error) {
	return r.find(dbc.DB(r.db), id)
}

func (r *farmRepo) FindByIDWithFields(dbc dbctx.Context, id uint) (*entities.Farm, error) {
	q := dbc.DB(r.db).
		Preload("Fields", func(db *gorm.DB) *gorm.DB { return db.Order("id asc") }).
		Preload("Fields.Trees", func(db *gorm.DB) *gorm.DB { return db.Order("id asc") })
	return r.find(q, id)
}

func (r *farmRepo) find(q *gorm.DB, id uint) (*entities.Farm, error) {
	var f entities.Farm
	if err := q.First(&f, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("farm.get", "Farm not found with id: %d", id)
		}
		return nil, apperr.FromStorage("farm.get", err)
	}
	return &f, nil
}

func (r *farmRepo) List(dbc dbctx.Context) ([]entities.Farm, error) {
	var out []entities.Farm
	err := dbc.DB(r.db).Order("id asc").Find(&out).Error
	return out, apperr.FromStorage("farm.list", err)
}

func (r *farmRepo) ExistsByName(dbc dbctx.Context, name string, excludeID uint) (bool, error) {
	q := dbc.DB(r.db).Model(&entities.Farm{}).Where("name = ?", name)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return false, apperr.FromStorage("farm.exists", err)
	}
	return n > 0, nil
}

func (r *farmRepo) FindByMinArea(dbc dbctx.Context, minArea float64) ([]entities.Farm, error) {
	var out []entities.Farm
	err := dbc.DB(r.db).Where("area >= ?", minArea).Order("area asc, id asc").Find(&out).Error
	return out, apperr.FromStorage("farm.by_min_area", err)
}

func (r *farmRepo) FindByCreationDateBetween(dbc dbctx.Context, start, end time.Time) ([]entities.Farm, error) {
	var out []entities.Farm
	err := dbc.DB(r.db).
		Where("creation_date >= ? AND creation_date <= ?", start, end).
		Order("creation_date asc, id asc").
		Find(&out).Error
	return out, apperr.FromStorage("farm.by_creation_date", err)
}

func (r *farmRepo) Delete(dbc dbctx.Context, id uint) error {
	tx := dbc.DB(r.db)
	if _, err := r.find(tx, id); err != nil {
		return err
	}
	var fieldIDs []uint
	if err := tx.Model(&entities.Field{}).Where("farm_id = ?", id).Pluck("id", &fieldIDs).Error; err != nil {
		return apperr.FromStorage("farm.delete", err)
	}
	if err := database.PurgeFields(tx, fieldIDs); err != nil {
		return apperr.FromStorage("farm.delete", err)
	}
	return apperr.FromStorage("farm.delete", tx.Delete(&entities.Farm{}, id).Error)
}
