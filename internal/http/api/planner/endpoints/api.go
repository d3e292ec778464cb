package endpoints

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Nixie-Tech-LLC/study-planner/internal/http/api"
	"github.com/Nixie-Tech-LLC/study-planner/internal/http/api/planner/packets"
)

// APIModule exposes the same workspace as JSON.
func APIModule(ctl *PlannerController) api.Module {
	return api.ModuleFunc(func(c *api.Controller) {
		c.Group.GET("/subjects", api.ResolveEndpointWithSession(ctl.listSubjects))
		c.Group.POST("/subjects", api.ResolveEndpointWithSession(ctl.createSubject))
		c.Group.DELETE("/subjects/:index", api.ResolveEndpointWithSession(ctl.deleteSubject))
		c.Group.GET("/timetable", api.ResolveEndpointWithSession(ctl.getTimetable))
		c.Group.POST("/timetable/generate", api.ResolveEndpointWithSession(ctl.requestTimetable))
	})
}

var errLoad = &api.Error{Code: http.StatusInternalServerError, Message: "failed to load workspace"}
var errSave = &api.Error{Code: http.StatusInternalServerError, Message: "failed to save workspace"}

// GET /api/subjects
func (p *PlannerController) listSubjects(ctx *gin.Context, sessionID string) (any, *api.Error) {
	ws, err := p.load(ctx.Request.Context(), sessionID)
	if err != nil {
		return nil, errLoad
	}
	return packets.NewSubjectsResponse(ws.Subjects(), false), nil
}

// POST /api/subjects
func (p *PlannerController) createSubject(ctx *gin.Context, sessionID string) (any, *api.Error) {
	var req packets.AddSubjectRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: err.Error()}
	}

	ws, err := p.load(ctx.Request.Context(), sessionID)
	if err != nil {
		return nil, errLoad
	}

	res := ws.AddSubject(req.Name, req.Average)
	if res.Changed {
		if err := p.save(ctx.Request.Context(), sessionID, ws); err != nil {
			return nil, errSave
		}
	}
	return packets.NewSubjectsResponse(ws.Subjects(), res.Changed), nil
}

// DELETE /api/subjects/:index
func (p *PlannerController) deleteSubject(ctx *gin.Context, sessionID string) (any, *api.Error) {
	var uri packets.IndexURI
	if err := ctx.ShouldBindUri(&uri); err != nil {
		return nil, &api.Error{Code: http.StatusBadRequest, Message: "invalid index"}
	}

	ws, err := p.load(ctx.Request.Context(), sessionID)
	if err != nil {
		return nil, errLoad
	}

	res := ws.RemoveSubject(uri.Index)
	if res.Changed {
		if err := p.save(ctx.Request.Context(), sessionID, ws); err != nil {
			return nil, errSave
		}
	}
	return packets.NewSubjectsResponse(ws.Subjects(), res.Changed), nil
}

// GET /api/timetable
func (p *PlannerController) getTimetable(ctx *gin.Context, sessionID string) (any, *api.Error) {
	ws, err := p.load(ctx.Request.Context(), sessionID)
	if err != nil {
		return nil, errLoad
	}
	return packets.TimetableResponse{Timetable: ws.Timetable()}, nil
}

// POST /api/timetable/generate
func (p *PlannerController) requestTimetable(ctx *gin.Context, sessionID string) (any, *api.Error) {
	ws, err := p.load(ctx.Request.Context(), sessionID)
	if err != nil {
		return nil, errLoad
	}

	res, err := p.generate(ctx.Request.Context(), sessionID, ws)
	if err != nil {
		return nil, errSave
	}
	return packets.TimetableResponse{Timetable: ws.Timetable(), Notice: res.Notice}, nil
}
