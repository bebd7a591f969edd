package serviceImp

import (
	"context"
	"time"

	"citronix/database"
	"citronix/entities"
	"citronix/pkg/dbctx"
	repo "citronix/pkg/harvest/repository"
	"citronix/pkg/harvest/service"
	"citronix/pkg/logger"
	"citronix/pkg/rules"
	"citronix/pkg/season"
)

type harvestSvc struct {
	tx  database.TxRunner
	r   repo.HarvestRepository
	log *logger.Logger
}

func NewHarvestService(tx database.TxRunner, r repo.HarvestRepository, log *logger.Logger) service.HarvestService {
	return &harvestSvc{tx: tx, r: r, log: log.With("service", "harvest")}
}

func (s *harvestSvc) CreateHarvest(ctx context.Context, in service.HarvestInput) (*entities.Harvest, error) {
	date := rules.DateOf(in.Date)
	h := &entities.Harvest{Date: date, Season: in.Season, Year: date.Year()}
	err := s.tx.InTx(ctx, func(dbc dbctx.Context) error {
		exists, err := s.r.ExistsForSeasonYear(dbc, in.Season, h.Year, 0)
		if err != nil {
			return err
		}
		if err := rules.ValidateSeasonUniqueness(exists, in.Season, h.Year); err != nil {
			return err
		}
		if err := rules.ValidateSeasonMatchesDate(in.Season, date); err != nil {
			return err
		}
		return s.r.Create(dbc, h)
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("harvest created", "harvest_id", h.ID, "season", h.Season, "year", h.Year)
	return h, nil
}

func (s *harvestSvc) UpdateHarvest(ctx context.Context, id uint, in service.HarvestInput) (*entities.Harvest, error) {
	date := rules.DateOf(in.Date)
	var out *entities.Harvest
	err := s.tx.InTx(ctx, func(dbc dbctx.Context) error {
		cur, err := s.r.FindByID(dbc, id)
		if err != nil {
			return err
		}
		if in.Season != cur.Season || date.Year() != cur.Year {
			exists, err := s.r.ExistsForSeasonYear(dbc, in.Season, date.Year(), id)
			if err != nil {
				return err
			}
			if err := rules.ValidateSeasonUniqueness(exists, in.Season, date.Year()); err != nil {
				return err
			}
		}
		if err := rules.ValidateSeasonMatchesDate(in.Season, date); err != nil {
			return err
		}
		if err := rules.ValidateLockedFieldsUnchanged(cur.Locked, cur.Date, cur.Season, date, in.Season); err != nil {
			return err
		}
		cur.Date, cur.Season, cur.Year = date, in.Season, date.Year()
		if err := s.r.Update(dbc, cur); err != nil {
			return err
		}
		out = cur
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("harvest updated", "harvest_id", id)
	return out, nil
}

func (s *harvestSvc) GetHarvest(ctx context.Context, id uint) (*entities.Harvest, error) {
	return s.r.FindByID(dbctx.Of(ctx), id)
}

func (s *harvestSvc) GetHarvestWithDetails(ctx context.Context, id uint) (*entities.Harvest, error) {
	return s.r.FindByIDWithDetails(dbctx.Of(ctx), id)
}

func (s *harvestSvc) ListHarvests(ctx context.Context) ([]entities.Harvest, error) {
	return s.r.List(dbctx.Of(ctx))
}

func (s *harvestSvc) HarvestsBySeason(ctx context.Context, se season.Season) ([]entities.Harvest, error) {
	return s.r.FindBySeason(dbctx.Of(ctx), se)
}

func (s *harvestSvc) HarvestsByDateRange(ctx context.Context, start, end time.Time) ([]entities.Harvest, error) {
	if err := rules.ValidateDateRange(start, end); err != nil {
		return nil, err
	}
	return s.r.FindByDateBetween(dbctx.Of(ctx), rules.DateOf(start), rules.DateOf(end))
}

func (s *harvestSvc) TotalQuantityBetween(ctx context.Context, start, end time.Time) (float64, error) {
	if err := rules.ValidateDateRange(start, end); err != nil {
		return 0, err
	}
	return s.r.SumTotalQuantityBetween(dbctx.Of(ctx), rules.DateOf(start), rules.DateOf(end))
}

func (s *harvestSvc) RecomputeTotal(ctx context.Context, id uint) (float64, error) {
	var total float64
	err := s.tx.InTx(ctx, func(dbc dbctx.Context) error {
		var err error
		total, err = s.r.RecomputeTotal(dbc, id)
		return err
	})
	return total, err
}

func (s *harvestSvc) DeleteHarvest(ctx context.Context, id uint) error {
	err := s.tx.InTx(ctx, func(dbc dbctx.Context) error {
		return s.r.Delete(dbc, id)
	})
	if err != nil {
		return err
	}
	s.log.Info("harvest deleted", "harvest_id", id)
	return nil
}
