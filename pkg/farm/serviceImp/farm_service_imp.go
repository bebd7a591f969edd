package serviceImp

import (
	"context"
	"strings"
	"time"

	"citronix/database"
	"citronix/entities"
	"citronix/pkg/apperr"
	"citronix/pkg/dbctx"
	repo "citronix/pkg/farm/repository"
	"citronix/pkg/farm/service"
	"citronix/pkg/logger"
	"citronix/pkg/rules"
)

type farmSvc struct {
	tx  database.TxRunner
	r   repo.FarmRepository
	log *logger.Logger
}

func NewFarmService(tx database.TxRunner, r repo.FarmRepository, log *logger.Logger) service.FarmService {
	return &farmSvc{tx: tx, r: r, log: log.With("service", "farm")}
}

func normalize(in service.FarmInput) (service.FarmInput, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Location = strings.TrimSpace(in.Location)
	if in.Name == "" {
		return in, apperr.BusinessRule("Farm name is required")
	}
	in.CreationDate = rules.DateOf(in.CreationDate)
	return in, rules.ValidateFarmArea(in.Area)
}

func (s *farmSvc) CreateFarm(ctx context.Context, in service.FarmInput) (*entities.Farm, error) {
	in, err := normalize(in)
	if err != nil {
		return nil, err
	}
	f := &entities.Farm{Name: in.Name, Location: in.Location, Area: in.Area, CreationDate: in.CreationDate}
	err = s.tx.InTx(ctx, func(dbc dbctx.Context) error {
		exists, err := s.r.ExistsByName(dbc, in.Name, 0)
		if err != nil {
			return err
		}
		if exists {
			return apperr.BusinessRule("Farm with name '%s' already exists", in.Name)
		}
		return s.r.Create(dbc, f)
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("farm created", "farm_id", f.ID, "area", f.Area)
	return f, nil
}

func (s *farmSvc) UpdateFarm(ctx context.Context, id uint, in service.FarmInput) (*entities.Farm, error) {
	in, err := normalize(in)
	if err != nil {
		return nil, err
	}
	var out *entities.Farm
	err = s.tx.InTx(ctx, func(dbc dbctx.Context) error {
		cur, err := s.r.FindByIDWithFields(dbc, id)
		if err != nil {
			return err
		}
		exists, err := s.r.ExistsByName(dbc, in.Name, id)
		if err != nil {
			return err
		}
		if exists {
			return apperr.BusinessRule("Farm with name '%s' already exists", in.Name)
		}
		if err := rules.ValidateFarmResize(in.Area, cur.FieldAreas()); err != nil {
			return err
		}
		cur.Name, cur.Location, cur.Area, cur.CreationDate = in.Name, in.Location, in.Area, in.CreationDate
		if err := s.r.Update(dbc, cur); err != nil {
			return err
		}
		out = cur
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("farm updated", "farm_id", id)
	return out, nil
}

func (s *farmSvc) GetFarm(ctx context.Context, id uint) (*entities.Farm, error) {
	return s.r.FindByID(dbctx.Of(ctx), id)
}

func (s *farmSvc) GetFarmWithFields(ctx context.Context, id uint) (*entities.Farm, error) {
	return s.r.FindByIDWithFields(dbctx.Of(ctx), id)
}

func (s *farmSvc) ListFarms(ctx context.Context) ([]entities.Farm, error) {
	return s.r.List(dbctx.Of(ctx))
}

func (s *farmSvc) LeftArea(ctx context.Context, id uint) (float64, error) {
	f, err := s.r.FindByIDWithFields(dbctx.Of(ctx), id)
	if err != nil {
		return 0, err
	}
	return f.LeftArea(), nil
}

func (s *farmSvc) DeleteFarm(ctx context.Context, id uint) error {
	err := s.tx.InTx(ctx, func(dbc dbctx.Context) error {
		return s.r.Delete(dbc, id)
	})
	if err != nil {
		return err
	}
	s.log.Info("farm deleted", "farm_id", id)
	return nil
}

func (s *farmSvc) FarmsByMinArea(ctx context.Context, minArea float64) ([]entities.Farm, error) {
	return s.r.FindByMinArea(dbctx.Of(ctx), minArea)
}

func (s *farmSvc) FarmsByCreationDate(ctx context.Context, start, end time.Time) ([]entities.Farm, error) {
	if err := rules.ValidateDateRange(start, end); err != nil {
		return nil, err
	}
	return s.r.FindByCreationDateBetween(dbctx.Of(ctx), rules.DateOf(start), rules.DateOf(end))
}

func (s *farmSvc) NameExists(ctx context.Context, name string) (bool, error) {
	return s.r.ExistsByName(dbctx.Of(ctx), strings.TrimSpace(name), 0)
}
