package serviceImp

import (
	"context"
	"time"

	"citronix/database"
	"citronix/entities"
	"citronix/pkg/apperr"
	"citronix/pkg/dbctx"
	fieldRepo "citronix/pkg/field/repository"
	"citronix/pkg/logger"
	"citronix/pkg/rules"
	repo "citronix/pkg/tree/repository"
	"citronix/pkg/tree/service"
)

type treeSvc struct {
	tx     database.TxRunner
	r      repo.TreeRepository
	fields fieldRepo.FieldRepository
	log    *logger.Logger
	now    func() time.Time
}

func NewTreeService(tx database.TxRunner, r repo.TreeRepository, fields fieldRepo.FieldRepository, log *logger.Logger, now func() time.Time) service.TreeService {
	if now == nil {
		now = time.Now
	}
	return &treeSvc{tx: tx, r: r, fields: fields, log: log.With("service", "tree"), now: now}
}

func (s *treeSvc) Now() time.Time { return rules.DateOf(s.now()) }

// checkDensity loads the field and verifies it can take n more trees.
func (s *treeSvc) checkDensity(dbc dbctx.Context, fieldID uint, n int) error {
	field, err := s.fields.FindByID(dbc, fieldID)
	if err != nil {
		return err
	}
	current, err := s.r.CountByField(dbc, fieldID)
	if err != nil {
		return err
	}
	return rules.ValidateTreeDensity(field.Area, current, n)
}

func (s *treeSvc) PlantTree(ctx context.Context, in service.TreeInput) (*entities.Tree, error) {
	t := &entities.Tree{FieldID: in.FieldID, PlantDate: rules.DateOf(in.PlantDate)}
	err := s.tx.InTx(ctx, func(dbc dbctx.Context) error {
		if _, err := s.fields.FindByID(dbc, in.FieldID); err != nil {
			return err
		}
		if err := rules.ValidatePlantingDate(t.PlantDate); err != nil {
			return err
		}
		if err := s.checkDensity(dbc, in.FieldID, 1); err != nil {
			return err
		}
		return s.r.Create(dbc, t)
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("tree planted", "tree_id", t.ID, "field_id", t.FieldID)
	return t, nil
}

func (s *treeSvc) PlantTrees(ctx context.Context, fieldID uint, plantDates []time.Time) ([]entities.Tree, error) {
	if len(plantDates) == 0 {
		return nil, apperr.Malformed("at least one plant date is required", map[string]string{"plant_dates": "required"})
	}
	batch := make([]*entities.Tree, 0, len(plantDates))
	for _, d := range plantDates {
		if err := rules.ValidatePlantingDate(d); err != nil {
			return nil, err
		}
		batch = append(batch, &entities.Tree{FieldID: fieldID, PlantDate: rules.DateOf(d)})
	}
	err := s.tx.InTx(ctx, func(dbc dbctx.Context) error {
		if err := s.checkDensity(dbc, fieldID, len(batch)); err != nil {
			return err
		}
		return s.r.CreateBatch(dbc, batch)
	})
	if err != nil {
		return nil, err
	}
	out := make([]entities.Tree, 0, len(batch))
	for _, t := range batch {
		out = append(out, *t)
	}
	s.log.Info("trees planted", "field_id", fieldID, "count", len(out))
	return out, nil
}

func (s *treeSvc) UpdateTree(ctx context.Context, id uint, in service.TreeInput) (*entities.Tree, error) {
	var out *entities.Tree
	err := s.tx.InTx(ctx, func(dbc dbctx.Context) error {
		cur, err := s.r.FindByID(dbc, id)
		if err != nil {
			return err
		}
		if err := rules.ValidatePlantingDate(in.PlantDate); err != nil {
			return err
		}
		if in.FieldID != cur.FieldID {
			if err := s.checkDensity(dbc, in.FieldID, 1); err != nil {
				return err
			}
		}
		cur.FieldID, cur.PlantDate = in.FieldID, rules.DateOf(in.PlantDate)
		if err := s.r.Update(dbc, cur); err != nil {
			return err
		}
		out = cur
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("tree updated", "tree_id", id, "field_id", out.FieldID)
	return out, nil
}

func (s *treeSvc) GetTree(ctx context.Context, id uint) (*entities.Tree, error) {
	return s.r.FindByID(dbctx.Of(ctx), id)
}

func (s *treeSvc) ListTrees(ctx context.Context) ([]entities.Tree, error) {
	return s.r.List(dbctx.Of(ctx))
}

func (s *treeSvc) TreesByField(ctx context.Context, fieldID uint) ([]entities.Tree, error) {
	dbc := dbctx.Of(ctx)
	if _, err := s.fields.FindByID(dbc, fieldID); err != nil {
		return nil, err
	}
	return s.r.FindByField(dbc, fieldID)
}

func (s *treeSvc) TreesByPlantingPeriod(ctx context.Context, start, end time.Time) ([]entities.Tree, error) {
	if err := rules.ValidateDateRange(start, end); err != nil {
		return nil, err
	}
	return s.r.FindByPlantDateBetween(dbctx.Of(ctx), rules.DateOf(start), rules.DateOf(end))
}

// TreesOlderThan returns trees whose age today is strictly greater than years.
func (s *treeSvc) TreesOlderThan(ctx context.Context, years int) ([]entities.Tree, error) {
	if years < 0 {
		return nil, apperr.BusinessRule("Age must not be negative")
	}
	cutoff := s.Now().AddDate(-(years + 1), 0, 0)
	return s.r.FindPlantedOnOrBefore(dbctx.Of(ctx), cutoff)
}

func (s *treeSvc) CountByField(ctx context.Context, fieldID uint) (int, error) {
	dbc := dbctx.Of(ctx)
	if _, err := s.fields.FindByID(dbc, fieldID); err != nil {
		return 0, err
	}
	return s.r.CountByField(dbc, fieldID)
}

func (s *treeSvc) CountPlantedInPeriod(ctx context.Context, fieldID uint, start, end time.Time) (int, error) {
	if err := rules.ValidateDateRange(start, end); err != nil {
		return 0, err
	}
	dbc := dbctx.Of(ctx)
	if _, err := s.fields.FindByID(dbc, fieldID); err != nil {
		return 0, err
	}
	return s.r.CountByFieldPlantedBetween(dbc, fieldID, rules.DateOf(start), rules.DateOf(end))
}

func (s *treeSvc) Productivity(ctx context.Context, id uint) (service.Productivity, error) {
	t, err := s.r.FindByID(dbctx.Of(ctx), id)
	if err != nil {
		return service.Productivity{}, err
	}
	now := s.Now()
	return service.Productivity{TreeID: t.ID, Age: t.Age(now), Productivity: t.Productivity(now), ReferenceDate: now}, nil
}

func (s *treeSvc) DeleteTree(ctx context.Context, id uint) error {
	err := s.tx.InTx(ctx, func(dbc dbctx.Context) error {
		return s.r.Delete(dbc, id)
	})
	if err != nil {
		return err
	}
	s.log.Info("tree deleted", "tree_id", id)
	return nil
}
