package serviceImp

import (
	"context"
	"time"

	"citronix/database"
	"citronix/entities"
	"citronix/pkg/dbctx"
	farmRepo "citronix/pkg/farm/repository"
	fieldRepo "citronix/pkg/field/repository"
	repo "citronix/pkg/harvest/repository"
	"citronix/pkg/harvest/service"
	"citronix/pkg/logger"
	"citronix/pkg/rules"
	"citronix/pkg/season"
	treeRepo "citronix/pkg/tree/repository"
)

type Deps struct {
	Harvests repo.HarvestRepository
	Details  repo.HarvestDetailRepository
	Trees    treeRepo.TreeRepository
	Fields   fieldRepo.FieldRepository
	Farms    farmRepo.FarmRepository
}

type detailSvc struct {
	tx  database.TxRunner
	d   Deps
	log *logger.Logger
	now func() time.Time
}

// NewHarvestDetailService wires the detail workflow. now drives the
// field-scoped minimum age filter of bulk creation.
func NewHarvestDetailService(tx database.TxRunner, d Deps, log *logger.Logger, now func() time.Time) service.HarvestDetailService {
	if now == nil {
		now = time.Now
	}
	return &detailSvc{tx: tx, d: d, log: log.With("service", "harvest_detail"), now: now}
}

// commit locks the harvest and brings its total in line inside the caller's transaction.
func (s *detailSvc) commit(dbc dbctx.Context, harvestID uint) error {
	if err := s.d.Harvests.Lock(dbc, harvestID); err != nil {
		return err
	}
	_, err := s.d.Harvests.RecomputeTotal(dbc, harvestID)
	return err
}

func (s *detailSvc) AddDetail(ctx context.Context, harvestID, treeID uint) (*entities.HarvestDetail, error) {
	var out *entities.HarvestDetail
	err := s.tx.InTx(ctx, func(dbc dbctx.Context) error {
		tree, err := s.d.Trees.FindByID(dbc, treeID)
		if err != nil {
			return err
		}
		h, err := s.d.Harvests.FindByID(dbc, harvestID)
		if err != nil {
			return err
		}
		exists, err := s.d.Details.ExistsForTreeSeasonYear(dbc, treeID, h.Season, h.Year)
		if err != nil {
			return err
		}
		if err := rules.ValidateTreeNotAlreadyHarvested(treeID, h.Season, h.Year, exists); err != nil {
			return err
		}
		if err := rules.ValidateProductiveAge(treeID, tree.Age(h.Date)); err != nil {
			return err
		}
		d := &entities.HarvestDetail{HarvestID: h.ID, TreeID: tree.ID, Quantity: tree.Productivity(h.Date)}
		if err := s.d.Details.Create(dbc, d); err != nil {
			return err
		}
		out = d
		return s.commit(dbc, h.ID)
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("harvest detail added", "harvest_id", harvestID, "tree_id", treeID, "quantity", out.Quantity)
	return out, nil
}

func (s *detailSvc) UpdateDetail(ctx context.Context, id, treeID uint) (*entities.HarvestDetail, error) {
	var out *entities.HarvestDetail
	err := s.tx.InTx(ctx, func(dbc dbctx.Context) error {
		d, err := s.d.Details.FindByID(dbc, id)
		if err != nil {
			return err
		}
		tree, err := s.d.Trees.FindByID(dbc, treeID)
		if err != nil {
			return err
		}
		h, err := s.d.Harvests.FindByID(dbc, d.HarvestID)
		if err != nil {
			return err
		}
		exists, err := s.d.Details.ExistsForTreeSeasonYear(dbc, treeID, h.Season, h.Year)
		if err != nil {
			return err
		}
		if err := rules.ValidateTreeHarvestUpdate(d.TreeID, treeID, exists); err != nil {
			return err
		}
		if err := rules.ValidateProductiveAge(treeID, tree.Age(h.Date)); err != nil {
			return err
		}
		d.TreeID, d.Quantity = tree.ID, tree.Productivity(h.Date)
		if err := s.d.Details.Update(dbc, d); err != nil {
			return err
		}
		out = d
		return s.commit(dbc, h.ID)
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("harvest detail updated", "detail_id", id, "tree_id", treeID)
	return out, nil
}

func (s *detailSvc) GetDetail(ctx context.Context, id uint) (*entities.HarvestDetail, error) {
	return s.d.Details.FindByID(dbctx.Of(ctx), id)
}

func (s *detailSvc) ListDetails(ctx context.Context) ([]entities.HarvestDetail, error) {
	return s.d.Details.List(dbctx.Of(ctx))
}

func (s *detailSvc) DetailsByHarvest(ctx context.Context, harvestID uint) ([]entities.HarvestDetail, error) {
	dbc := dbctx.Of(ctx)
	if _, err := s.d.Harvests.FindByID(dbc, harvestID); err != nil {
		return nil, err
	}
	return s.d.Details.FindByHarvest(dbc, harvestID)
}

func (s *detailSvc) DetailsByTree(ctx context.Context, treeID uint) ([]entities.HarvestDetail, error) {
	dbc := dbctx.Of(ctx)
	if _, err := s.d.Trees.FindByID(dbc, treeID); err != nil {
		return nil, err
	}
	return s.d.Details.FindByTree(dbc, treeID)
}

// DeleteDetail keeps the harvest locked.
func (s *detailSvc) DeleteDetail(ctx context.Context, id uint) error {
	err := s.tx.InTx(ctx, func(dbc dbctx.Context) error {
		d, err := s.d.Details.FindByID(dbc, id)
		if err != nil {
			return err
		}
		if err := s.d.Details.Delete(dbc, id); err != nil {
			return err
		}
		_, err = s.d.Harvests.RecomputeTotal(dbc, d.HarvestID)
		return err
	})
	if err != nil {
		return err
	}
	s.log.Info("harvest detail deleted", "detail_id", id)
	return nil
}

func (s *detailSvc) TotalQuantity(ctx context.Context, harvestID uint) (float64, error) {
	dbc := dbctx.Of(ctx)
	if _, err := s.d.Harvests.FindByID(dbc, harvestID); err != nil {
		return 0, err
	}
	return s.d.Details.SumQuantityByHarvest(dbc, harvestID)
}

func (s *detailSvc) IsTreeHarvestedInSeason(ctx context.Context, treeID uint, se season.Season, year int) (bool, error) {
	dbc := dbctx.Of(ctx)
	if _, err := s.d.Trees.FindByID(dbc, treeID); err != nil {
		return false, err
	}
	return s.d.Details.ExistsForTreeSeasonYear(dbc, treeID, se, year)
}

func (s *detailSvc) BulkForField(ctx context.Context, harvestID, fieldID uint) ([]entities.HarvestDetail, error) {
	return s.bulk(ctx, harvestID, rules.ScopeField, fieldID, func(dbc dbctx.Context) ([]entities.Tree, error) {
		if _, err := s.d.Fields.FindByID(dbc, fieldID); err != nil {
			return nil, err
		}
		return s.d.Trees.FindByField(dbc, fieldID)
	})
}

func (s *detailSvc) BulkForFarm(ctx context.Context, harvestID, farmID uint) ([]entities.HarvestDetail, error) {
	return s.bulk(ctx, harvestID, rules.ScopeFarm, farmID, func(dbc dbctx.Context) ([]entities.Tree, error) {
		if _, err := s.d.Farms.FindByID(dbc, farmID); err != nil {
			return nil, err
		}
		n, err := s.d.Fields.CountByFarm(dbc, farmID)
		if err != nil {
			return nil, err
		}
		if err := rules.ValidateFarmHasFields(farmID, n); err != nil {
			return nil, err
		}
		return s.d.Trees.FindByFarm(dbc, farmID)
	})
}

func (s *detailSvc) bulk(ctx context.Context, harvestID uint, scope rules.BulkScope, scopeID uint,
	load func(dbc dbctx.Context) ([]entities.Tree, error)) ([]entities.HarvestDetail, error) {

	var out []entities.HarvestDetail
	err := s.tx.InTx(ctx, func(dbc dbctx.Context) error {
		h, err := s.d.Harvests.FindByID(dbc, harvestID)
		if err != nil {
			return err
		}
		trees, err := load(dbc)
		if err != nil {
			return err
		}
		ids := make([]uint, 0, len(trees))
		for _, t := range trees {
			ids = append(ids, t.ID)
		}
		harvested, err := s.d.Details.HarvestedTrees(dbc, ids, h.Season, h.Year)
		if err != nil {
			return err
		}
		cands := make([]rules.Candidate, 0, len(trees))
		for _, t := range trees {
			cands = append(cands, rules.Candidate{TreeID: t.ID, PlantDate: t.PlantDate, Harvested: harvested[t.ID]})
		}
		eligible, err := rules.SelectEligible(rules.BulkTarget{
			Scope:       scope,
			ScopeID:     scopeID,
			Season:      h.Season,
			Year:        h.Year,
			HarvestDate: h.Date,
			Now:         s.now(),
		}, cands)
		if err != nil {
			return err
		}
		batch := make([]*entities.HarvestDetail, 0, len(eligible))
		for _, c := range eligible {
			batch = append(batch, &entities.HarvestDetail{
				HarvestID: h.ID,
				TreeID:    c.TreeID,
				Quantity:  rules.ProductivityOf(c.PlantDate, h.Date),
			})
		}
		if err := s.d.Details.CreateBatch(dbc, batch); err != nil {
			return err
		}
		for _, d := range batch {
			out = append(out, *d)
		}
		return s.commit(dbc, h.ID)
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("harvest details bulk created", "harvest_id", harvestID, "scope", scope, "scope_id", scopeID, "count", len(out))
	return out, nil
}
