package handlers

import (
	"bytes"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yoockh/jobboard/internal/listing"
	"github.com/yoockh/jobboard/internal/models"
	"github.com/yoockh/jobboard/internal/services"
	"github.com/yoockh/jobboard/internal/utils"
	"github.com/yoockh/jobboard/internal/views"
)

type ApplyHandler struct {
	svc       services.ApplicationService
	logoToken string
	confetti  bool
}

func NewApplyHandler(svc services.ApplicationService, logoToken string, confetti bool) *ApplyHandler {
	return &ApplyHandler{svc: svc, logoToken: logoToken, confetti: confetti}
}

func (h *ApplyHandler) render(c *gin.Context, status int, page views.ApplyPage) {
	page.Base = base(c, page.Job.DisplayTitle())
	page.LogoURL = listing.LogoURL(page.Job.Company, h.logoToken)
	page.OpenSince = time.Now()
	c.HTML(status, "apply.html", page)
}

// Form is GET /apply?title=&company=&location=&role=.
func (h *ApplyHandler) Form(c *gin.Context) {
	var job models.JobSnapshot
	_ = c.ShouldBindQuery(&job)
	h.render(c, http.StatusOK, views.ApplyPage{Job: job})
}

type applyForm struct {
	models.JobSnapshot
	Name  string `form:"name"`
	Email string `form:"email"`
	Cover string `form:"cover"`
}

// Submit is POST /apply (multipart). On any failure the form is shown again
// with the entered values.
func (h *ApplyHandler) Submit(c *gin.Context) {
	var f applyForm
	_ = c.ShouldBind(&f)

	page := views.ApplyPage{Job: f.JobSnapshot, Name: f.Name, Email: f.Email, Cover: f.Cover}

	in := services.ApplicationInput{Job: f.JobSnapshot, Name: f.Name, Email: f.Email, Cover: f.Cover}
	fh, err := c.FormFile("resume")
	switch {
	case err == nil:
		file, oerr := fh.Open()
		if oerr != nil {
			page.Error = services.MsgResumeUnreadable
			h.render(c, http.StatusInternalServerError, page)
			return
		}
		defer file.Close()
		in.Resume = &services.Resume{
			Name: fh.Filename,
			Type: fh.Header.Get("Content-Type"),
			Size: fh.Size,
			Body: file,
		}
	case errors.Is(err, http.ErrMissingFile):
	default:
		page.Error = services.MsgResumeUnreadable
		h.render(c, http.StatusBadRequest, page)
		return
	}

	app, err := h.svc.Submit(c.Request.Context(), in)
	if err != nil {
		page.Error = utils.Message(err, services.MsgResumeUnreadable)
		h.render(c, utils.HTTPStatus(err), page)
		return
	}

	c.HTML(http.StatusOK, "apply_done.html", views.ApplyDonePage{
		Base:        base(c, "Application submitted"),
		Application: app,
		Confetti:    h.confetti,
	})
}

type applicationRequest struct {
	Job    models.JobSnapshot `json:"job"`
	Name   string             `json:"name"`
	Email  string             `json:"email"`
	Cover  string             `json:"cover"`
	Resume *struct {
		Name    string `json:"name"`
		DataURL string `json:"dataUrl"`
	} `json:"resume"`
}

// APICreate accepts the resume as a data URL.
func (h *ApplyHandler) APICreate(c *gin.Context) {
	const op = "ApplyHandler.APICreate"

	var req applicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "invalid request body", err))
		return
	}

	in := services.ApplicationInput{Job: req.Job, Name: req.Name, Email: req.Email, Cover: req.Cover}
	if req.Resume != nil && req.Resume.DataURL != "" {
		mimeType, data, err := utils.DecodeDataURL(req.Resume.DataURL)
		if err != nil {
			writeError(c, utils.E(utils.CodeInvalidArgument, op, services.MsgResumeUnreadable, err))
			return
		}
		in.Resume = &services.Resume{
			Name: req.Resume.Name,
			Type: mimeType,
			Size: int64(len(data)),
			Body: bytes.NewReader(data),
		}
	}

	app, err := h.svc.Submit(c.Request.Context(), in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, app)
}

// APIList is GET /api/applications for a signed-in user. Resume contents
// are left out; resumeName and resumeType still describe the file.
func (h *ApplyHandler) APIList(c *gin.Context) {
	apps, err := h.svc.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]models.Application, len(apps))
	for i, a := range apps {
		a.ResumeDataURL = ""
		out[i] = a
	}
	c.JSON(http.StatusOK, out)
}
