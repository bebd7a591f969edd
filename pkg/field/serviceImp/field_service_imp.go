package serviceImp

import (
	"context"

	"citronix/database"
	"citronix/entities"
	"citronix/pkg/dbctx"
	farmRepo "citronix/pkg/farm/repository"
	repo "citronix/pkg/field/repository"
	"citronix/pkg/field/service"
	"citronix/pkg/logger"
	"citronix/pkg/rules"
)

type fieldSvc struct {
	tx    database.TxRunner
	r     repo.FieldRepository
	farms farmRepo.FarmRepository
	log   *logger.Logger
}

func NewFieldService(tx database.TxRunner, r repo.FieldRepository, farms farmRepo.FarmRepository, log *logger.Logger) service.FieldService {
	return &fieldSvc{tx: tx, r: r, farms: farms, log: log.With("service", "field")}
}

func (s *fieldSvc) CreateField(ctx context.Context, in service.FieldInput) (*entities.Field, error) {
	f := &entities.Field{FarmID: in.FarmID, Area: in.Area}
	err := s.tx.InTx(ctx, func(dbc dbctx.Context) error {
		farm, err := s.farms.FindByIDWithFields(dbc, in.FarmID)
		if err != nil {
			return err
		}
		if err := rules.ValidateFieldArea(in.Area); err != nil {
			return err
		}
		if err := rules.ValidateFieldToFarmRatio(in.Area, farm.Area); err != nil {
			return err
		}
		if err := rules.ValidateFarmFieldAddition(farm.Area, farm.FieldAreas(), in.Area); err != nil {
			return err
		}
		return s.r.Create(dbc, f)
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("field created", "field_id", f.ID, "farm_id", f.FarmID, "area", f.Area)
	return f, nil
}

func (s *fieldSvc) UpdateField(ctx context.Context, id uint, in service.FieldInput) (*entities.Field, error) {
	var out *entities.Field
	err := s.tx.InTx(ctx, func(dbc dbctx.Context) error {
		cur, err := s.r.FindByID(dbc, id)
		if err != nil {
			return err
		}
		target, err := s.farms.FindByIDWithFields(dbc, in.FarmID)
		if err != nil {
			return err
		}
		if err := rules.ValidateFieldArea(in.Area); err != nil {
			return err
		}
		if err := rules.ValidateFieldToFarmRatio(in.Area, target.Area); err != nil {
			return err
		}
		if in.FarmID != cur.FarmID {
			if err := rules.ValidateFieldCount(len(target.Fields)); err != nil {
				return err
			}
		}
		areas := make(map[uint]float64, len(target.Fields))
		for _, fd := range target.Fields {
			areas[fd.ID] = fd.Area
		}
		if err := rules.ValidateFieldUpdate(target.Area, areas, id, in.Area); err != nil {
			return err
		}
		counts, err := s.r.TreeCounts(dbc, []uint{id})
		if err != nil {
			return err
		}
		if err := rules.ValidateTreeDensity(in.Area, counts[id], 0); err != nil {
			return err
		}
		cur.FarmID, cur.Area = in.FarmID, in.Area
		if err := s.r.Update(dbc, cur); err != nil {
			return err
		}
		out = cur
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("field updated", "field_id", id, "farm_id", out.FarmID, "area", out.Area)
	return out, nil
}

func (s *fieldSvc) GetField(ctx context.Context, id uint) (*entities.Field, error) {
	return s.r.FindByID(dbctx.Of(ctx), id)
}

func (s *fieldSvc) GetFieldWithTrees(ctx context.Context, id uint) (*entities.Field, error) {
	return s.r.FindByIDWithTrees(dbctx.Of(ctx), id)
}

func (s *fieldSvc) ListFields(ctx context.Context) ([]entities.Field, error) {
	return s.r.List(dbctx.Of(ctx))
}

func (s *fieldSvc) FieldsByFarm(ctx context.Context, farmID uint) ([]entities.Field, error) {
	dbc := dbctx.Of(ctx)
	if _, err := s.farms.FindByID(dbc, farmID); err != nil {
		return nil, err
	}
	return s.r.FindByFarm(dbc, farmID)
}

func (s *fieldSvc) FieldsByMaxArea(ctx context.Context, maxArea float64) ([]entities.Field, error) {
	return s.r.FindByMaxArea(dbctx.Of(ctx), maxArea)
}

func (s *fieldSvc) CountByFarm(ctx context.Context, farmID uint) (int, error) {
	dbc := dbctx.Of(ctx)
	if _, err := s.farms.FindByID(dbc, farmID); err != nil {
		return 0, err
	}
	return s.r.CountByFarm(dbc, farmID)
}

func (s *fieldSvc) TotalAreaByFarm(ctx context.Context, farmID uint) (float64, error) {
	dbc := dbctx.Of(ctx)
	if _, err := s.farms.FindByID(dbc, farmID); err != nil {
		return 0, err
	}
	return s.r.SumAreaByFarm(dbc, farmID)
}

func (s *fieldSvc) TreeCounts(ctx context.Context, fieldIDs ...uint) (map[uint]int, error) {
	return s.r.TreeCounts(dbctx.Of(ctx), fieldIDs)
}

func (s *fieldSvc) DeleteField(ctx context.Context, id uint) error {
	err := s.tx.InTx(ctx, func(dbc dbctx.Context) error {
		return s.r.Delete(dbc, id)
	})
	if err != nil {
		return err
	}
	s.log.Info("field deleted", "field_id", id)
	return nil
}
