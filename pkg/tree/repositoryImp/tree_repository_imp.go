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
	"citronix/pkg/tree/repository"
)

type treeRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.TreeRepository { return &treeRepo{db} }

func (r *treeRepo) Create(dbc dbctx.Context, t *entities.Tree) error {
	return apperr.FromStorage("tree.create", dbc.DB(r.db).Omit(clause.Associations).Create(t).Error)
}

func (r *treeRepo) CreateBatch(dbc dbctx.Context, ts []*entities.Tree) error {
	if len(ts) == 0 {
		return nil
	}
	return apperr.FromStorage("tree.create_batch", dbc.DB(r.db).Omit(clause.Associations).Create(&ts).Error)
}

func (r *treeRepo) Update(dbc dbctx.Context, t *entities.Tree) error {
	return apperr.FromStorage("tree.update", dbc.DB(r.db).Omit(clause.Associations).Save(t).Error)
}

func (r *treeRepo) FindByID(dbc dbctx.Context, id uint) (*entities.Tree, error) {
	var t entities.Tree
	if err := dbc.DB(r.db).First(&t, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("tree.get", "Tree not found with id: %d", id)
		}
		return nil, apperr.FromStorage("tree.get", err)
	}
	return &t, nil
}

func (r *treeRepo) List(dbc dbctx.Context) ([]entities.Tree, error) {
	var out []entities.Tree
	err := dbc.DB(r.db).Order("id asc").Find(&out).Error
	return out, apperr.FromStorage("tree.list", err)
}

func (r *treeRepo) FindByField(dbc dbctx.Context, fieldID uint) ([]entities.Tree, error) {
	var out []entities.Tree
	err := dbc.DB(r.db).Where("field_id = ?", fieldID).Order("id asc").Find(&out).Error
	return out, apperr.FromStorage("tree.by_field", err)
}

func (r *treeRepo) FindByFarm(dbc dbctx.Context, farmID uint) ([]entities.Tree, error) {
	var out []entities.Tree
	err := dbc.DB(r.db).
		Joins("JOIN fields ON fields.id = trees.field_id").
		Where("fields.farm_id = ?", farmID).
		Order("trees.id asc").
		Find(&out).Error
	return out, apperr.FromStorage("tree.by_farm", err)
}

func (r *treeRepo) FindByPlantDateBetween(dbc dbctx.Context, start, end time.Time) ([]entities.Tree, error) {
	var out []entities.Tree
	err := dbc.DB(r.db).
		Where("plant_date >= ? AND plant_date <= ?", start, end).
		Order("plant_date asc, id asc").
		Find(&out).Error
	return out, apperr.FromStorage("tree.by_plant_date", err)
}

func (r *treeRepo) FindPlantedOnOrBefore(dbc dbctx.Context, cutoff time.Time) ([]entities.Tree, error) {
	var out []entities.Tree
	err := dbc.DB(r.db).Where("plant_date <= ?", cutoff).Order("plant_date asc, id asc").Find(&out).Error
	return out, apperr.FromStorage("tree.planted_before", err)
}

func (r *treeRepo) CountByField(dbc dbctx.Context, fieldID uint) (int, error) {
	var n int64
	err := dbc.DB(r.db).Model(&entities.Tree{}).Where("field_id = ?", fieldID).Count(&n).Error
	return int(n), apperr.FromStorage("tree.count_by_field", err)
}

func (r *treeRepo) CountByFieldPlantedBetween(dbc dbctx.Context, fieldID uint, start, end time.Time) (int, error) {
	var n int64
	err := dbc.DB(r.db).Model(&entities.Tree{}).
		Where("field_id = ? AND plant_date >= ? AND plant_date <= ?", fieldID, start, end).
		Count(&n).Error
	return int(n), apperr.FromStorage("tree.count_planted", err)
}

func (r *treeRepo) Delete(dbc dbctx.Context, id uint) error {
	if _, err := r.FindByID(dbc, id); err != nil {
		return err
	}
	return apperr.FromStorage("tree.delete", database.PurgeTrees(dbc.DB(r.db), []uint{id}))
}
