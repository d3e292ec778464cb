package endpoints

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/study-planner/internal/model"
	"github.com/Nixie-Tech-LLC/study-planner/internal/notify"
	"github.com/Nixie-Tech-LLC/study-planner/internal/planner"
	"github.com/Nixie-Tech-LLC/study-planner/internal/store"
)

type PlannerController struct {
	store     store.Store
	fetcher   planner.Fetcher
	publisher notify.Publisher
}

func NewPlannerController(st store.Store, fetcher planner.Fetcher, publisher notify.Publisher) *PlannerController {
	if publisher == nil {
		publisher = notify.Nop{}
	}
	return &PlannerController{store: st, fetcher: fetcher, publisher: publisher}
}

func (p *PlannerController) load(ctx context.Context, sessionID string) (*planner.Workspace, error) {
	snap, err := p.store.Load(ctx, sessionID)
	if err != nil {
		log.Error().Err(err).Str("session", sessionID).Msg("failed to load workspace")
		return nil, err
	}
	return planner.Restore(snap), nil
}

func (p *PlannerController) save(ctx context.Context, sessionID string, ws *planner.Workspace) error {
	if err := p.store.Save(ctx, sessionID, ws.Snapshot()); err != nil {
		log.Error().Err(err).Str("session", sessionID).Msg("failed to save workspace")
		return err
	}
	return nil
}

// generate runs a timetable request and persists/publishes a new timetable.
func (p *PlannerController) generate(ctx context.Context, sessionID string, ws *planner.Workspace) (planner.Result, error) {
	res := ws.GenerateTimetable(ctx, p.fetcher)
	if !res.Changed {
		return res, nil
	}
	if err := p.save(ctx, sessionID, ws); err != nil {
		return res, err
	}
	if err := p.publisher.PublishTimetable(sessionID, ws.Timetable()); err != nil {
		log.Warn().Err(err).Str("session", sessionID).Msg("failed to publish timetable")
	}
	return res, nil
}

func pageData(ws *planner.Workspace, notice string, form model.SubjectForm) model.PlannerPageData {
	return model.PlannerPageData{
		Subjects:  ws.Subjects(),
		Timetable: ws.Timetable(),
		Notice:    notice,
		Form:      form,
	}
}
