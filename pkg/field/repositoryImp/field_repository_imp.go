package repositoryImp

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"citronix/database"
	"citronix/entities"
	"citronix/pkg/apperr"
	"citronix/pkg/dbctx"
	"citronix/pkg/field/repository"
)

type fieldRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.FieldRepository { return &fieldRepo{db} }

func (r *fieldRepo) Create(dbc dbctx.Context, f *entities.Field) error {
	return apperr.FromStorage("field.create", dbc.DB(r.db).Omit(clause.Associations).Create(f).Error)
}

func (r *fieldRepo) Update(dbc dbctx.Context, f *entities.Field) error {
	return apperr.FromStorage("field.update", dbc.DB(r.db).Omit(clause.Associations).Save(f).Error)
}

func (r *fieldRepo) FindByID(dbc dbctx.Context, id uint) (*entities.Field, error) {
	return r.find(dbc.DB(r.db), id)
}

func (r *fieldRepo) FindByIDWithTrees(dbc dbctx.Context, id uint) (*entities.Field, error) {
	return r.find(dbc.DB(r.db).Preload("Trees", func(db *gorm.DB) *gorm.DB { return db.Order("id asc") }), id)
}

func (r *fieldRepo) find(q *gorm.DB, id uint) (*entities.Field, error) {
	var f entities.Field
	if err := q.First(&f, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("field.get", "Field not found with id: %d", id)
		}
		return nil, apperr.FromStorage("field.get", err)
	}
	return &f, nil
}

func (r *fieldRepo) List(dbc dbctx.Context) ([]entities.Field, error) {
	var out []entities.Field
	err := dbc.DB(r.db).Order("id asc").Find(&out).Error
	return out, apperr.FromStorage("field.list", err)
}

func (r *fieldRepo) FindByFarm(dbc dbctx.Context, farmID uint) ([]entities.Field, error) {
	var out []entities.Field
	err := dbc.DB(r.db).Where("farm_id = ?", farmID).Order("id asc").Find(&out).Error
	return out, apperr.FromStorage("field.by_farm", err)
}

func (r *fieldRepo) FindByMaxArea(dbc dbctx.Context, maxArea float64) ([]entities.Field, error) {
	var out []entities.Field
	err := dbc.DB(r.db).Where("area <= ?", maxArea).Order("area asc, id asc").Find(&out).Error
	return out, apperr.FromStorage("field.by_max_area", err)
}

func (r *fieldRepo) CountByFarm(dbc dbctx.Context, farmID uint) (int, error) {
	var n int64
	err := dbc.DB(r.db).Model(&entities.Field{}).Where("farm_id = ?", farmID).Count(&n).Error
	return int(n), apperr.FromStorage("field.count_by_farm", err)
}

func (r *fieldRepo) SumAreaByFarm(dbc dbctx.Context, farmID uint) (float64, error) {
	var sum float64
	err := dbc.DB(r.db).Model(&entities.Field{}).
		Where("farm_id = ?", farmID).
		Select("COALESCE(SUM(area), 0)").
		Scan(&sum).Error
	return sum, apperr.FromStorage("field.sum_area", err)
}

func (r *fieldRepo) TreeCounts(dbc dbctx.Context, fieldIDs []uint) (map[uint]int, error) {
	out := make(map[uint]int, len(fieldIDs))
	if len(fieldIDs) == 0 {
		return out, nil
	}
	type row struct {
		FieldID uint
		N       int
	}
	var rows []row
	err := dbc.DB(r.db).Model(&entities.Tree{}).
		Select("field_id, COUNT(*) AS n").
		Where("field_id IN ?", fieldIDs).
		Group("field_id").
		Scan(&rows).Error
	if err != nil {
		return nil, apperr.FromStorage("field.tree_counts", err)
	}
	for _, id := range fieldIDs {
		out[id] = 0
	}
	for _, rw := range rows {
		out[rw.FieldID] = rw.N
	}
	return out, nil
}

func (r *fieldRepo) Delete(dbc dbctx.Context, id uint) error {
	tx := dbc.DB(r.db)
	if _, err := r.find(tx, id); err != nil {
		return err
	}
	return apperr.FromStorage("field.delete", database.PurgeFields(tx, []uint{id}))
}
