package endpoints

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/study-planner/internal/export"
	"github.com/Nixie-Tech-LLC/study-planner/internal/http/api"
	"github.com/Nixie-Tech-LLC/study-planner/internal/http/api/planner/packets"
	"github.com/Nixie-Tech-LLC/study-planner/internal/http/middleware"
	"github.com/Nixie-Tech-LLC/study-planner/internal/model"
	"github.com/Nixie-Tech-LLC/study-planner/internal/render"
)

// PagesModule serves the server-rendered planner.
func PagesModule(ctl *PlannerController) api.Module {
	return api.ModuleFunc(func(c *api.Controller) {
		c.Group.GET("/", ctl.showPlanner)
		c.Group.POST("/subjects", ctl.addSubject)
		c.Group.POST("/subjects/:index/delete", ctl.removeSubject)
		c.Group.POST("/timetable/generate", ctl.generateTimetable)
		c.Group.GET("/timetable/export", ctl.exportTimetable)
		c.Group.GET("/fragments/subjects", ctl.subjectsFragment)
		c.Group.GET("/fragments/timetable", ctl.timetableFragment)
		c.Group.POST("/session/reset", ctl.resetSession)
	})
}

func sessionID(ctx *gin.Context) (string, bool) {
	id, ok := middleware.GetSessionID(ctx)
	if !ok {
		ctx.String(http.StatusInternalServerError, "no session")
	}
	return id, ok
}

// GET /
func (p *PlannerController) showPlanner(ctx *gin.Context) {
	id, ok := sessionID(ctx)
	if !ok {
		return
	}
	ws, err := p.load(ctx.Request.Context(), id)
	if err != nil {
		ctx.String(http.StatusInternalServerError, "failed to load workspace")
		return
	}
	ctx.HTML(http.StatusOK, render.Page, pageData(ws, "", model.SubjectForm{}))
}

// POST /subjects
func (p *PlannerController) addSubject(ctx *gin.Context) {
	id, ok := sessionID(ctx)
	if !ok {
		return
	}
	var req packets.AddSubjectRequest
	if err := ctx.ShouldBind(&req); err != nil {
		ctx.String(http.StatusBadRequest, err.Error())
		return
	}

	ws, err := p.load(ctx.Request.Context(), id)
	if err != nil {
		ctx.String(http.StatusInternalServerError, "failed to load workspace")
		return
	}

	res := ws.AddSubject(req.Name, req.Average)
	if !res.ResetForm {
		// keep what the user typed
		ctx.HTML(http.StatusOK, render.Page, pageData(ws, "", model.SubjectForm{Name: req.Name, Average: req.Average}))
		return
	}
	if err := p.save(ctx.Request.Context(), id, ws); err != nil {
		ctx.String(http.StatusInternalServerError, "failed to save workspace")
		return
	}
	ctx.Redirect(http.StatusSeeOther, "/")
}

// POST /subjects/:index/delete
func (p *PlannerController) removeSubject(ctx *gin.Context) {
	id, ok := sessionID(ctx)
	if !ok {
		return
	}
	var uri packets.IndexURI
	if err := ctx.ShouldBindUri(&uri); err != nil {
		ctx.String(http.StatusBadRequest, "invalid index")
		return
	}

	ws, err := p.load(ctx.Request.Context(), id)
	if err != nil {
		ctx.String(http.StatusInternalServerError, "failed to load workspace")
		return
	}

	if res := ws.RemoveSubject(uri.Index); res.Changed {
		if err := p.save(ctx.Request.Context(), id, ws); err != nil {
			ctx.String(http.StatusInternalServerError, "failed to save workspace")
			return
		}
	}
	ctx.Redirect(http.StatusSeeOther, "/")
}

// POST /timetable/generate
func (p *PlannerController) generateTimetable(ctx *gin.Context) {
	id, ok := sessionID(ctx)
	if !ok {
		return
	}
	ws, err := p.load(ctx.Request.Context(), id)
	if err != nil {
		ctx.String(http.StatusInternalServerError, "failed to load workspace")
		return
	}

	res, err := p.generate(ctx.Request.Context(), id, ws)
	if err != nil {
		ctx.String(http.StatusInternalServerError, "failed to save workspace")
		return
	}
	if res.Notice == "" {
		ctx.Redirect(http.StatusSeeOther, "/")
		return
	}
	ctx.HTML(http.StatusOK, render.Page, pageData(ws, res.Notice, model.SubjectForm{}))
}

// GET /timetable/export?format=xlsx|json
func (p *PlannerController) exportTimetable(ctx *gin.Context) {
	id, ok := sessionID(ctx)
	if !ok {
		return
	}
	var q packets.ExportQuery
	if err := ctx.ShouldBindQuery(&q); err != nil {
		ctx.String(http.StatusBadRequest, "invalid export query: %v", err)
		return
	}
	if q.Format == "" {
		q.Format = "xlsx"
	}
	conv := export.ByName(q.Format)
	if conv == nil {
		ctx.String(http.StatusBadRequest, "unknown export format %q", q.Format)
		return
	}

	ws, err := p.load(ctx.Request.Context(), id)
	if err != nil {
		ctx.String(http.StatusInternalServerError, "failed to load workspace")
		return
	}
	tt := ws.Timetable()
	if tt == nil {
		ctx.String(http.StatusNotFound, "no timetable to export")
		return
	}

	var buf bytes.Buffer
	if err := conv.Write(&buf, tt); err != nil {
		log.Error().Err(err).Str("format", q.Format).Msg("failed to export timetable")
		ctx.String(http.StatusInternalServerError, "failed to export timetable")
		return
	}
	ctx.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="timetable.%s"`, conv.Extension()))
	ctx.Data(http.StatusOK, conv.ContentType(), buf.Bytes())
}

// GET /fragments/subjects
func (p *PlannerController) subjectsFragment(ctx *gin.Context) {
	id, ok := sessionID(ctx)
	if !ok {
		return
	}
	ws, err := p.load(ctx.Request.Context(), id)
	if err != nil {
		ctx.String(http.StatusInternalServerError, "failed to load workspace")
		return
	}
	writeFragment(ctx, func(buf *bytes.Buffer) error {
		return render.Subjects(buf, ws.Subjects())
	})
}

// GET /fragments/timetable
func (p *PlannerController) timetableFragment(ctx *gin.Context) {
	id, ok := sessionID(ctx)
	if !ok {
		return
	}
	ws, err := p.load(ctx.Request.Context(), id)
	if err != nil {
		ctx.String(http.StatusInternalServerError, "failed to load workspace")
		return
	}
	writeFragment(ctx, func(buf *bytes.Buffer) error {
		return render.Timetable(buf, ws.Timetable())
	})
}

// writeFragment renders into a buffer and writes the response only once
// rendering succeeded.
func writeFragment(ctx *gin.Context, fn func(buf *bytes.Buffer) error) {
	var buf bytes.Buffer
	if err := fn(&buf); err != nil {
		log.Error().Err(err).Str("path", ctx.FullPath()).Msg("failed to render fragment")
		ctx.String(http.StatusInternalServerError, "failed to render fragment")
		return
	}
	ctx.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

// POST /session/reset
func (p *PlannerController) resetSession(ctx *gin.Context) {
	id, ok := sessionID(ctx)
	if !ok {
		return
	}
	if err := p.store.Delete(ctx.Request.Context(), id); err != nil {
		log.Error().Err(err).Str("session", id).Msg("failed to delete workspace")
		ctx.String(http.StatusInternalServerError, "failed to reset workspace")
		return
	}
	ctx.Redirect(http.StatusSeeOther, "/")
}
