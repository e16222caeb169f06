package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yoockh/jobboard/internal/listing"
	"github.com/yoockh/jobboard/internal/models"
	"github.com/yoockh/jobboard/internal/services"
	"github.com/yoockh/jobboard/internal/utils"
	"github.com/yoockh/jobboard/internal/views"
)

const (
	labelAdd    = "Add Job"
	labelUpdate = "Update Job"
)

type JobHandler struct {
	svc       services.JobService
	logoToken string
}

func NewJobHandler(svc services.JobService, logoToken string) *JobHandler {
	return &JobHandler{svc: svc, logoToken: logoToken}
}

func (h *JobHandler) cards(c *gin.Context, filter models.JobFilter) []listing.Card {
	return listing.Build(h.svc.List(c.Request.Context()), filter, h.logoToken)
}

func (h *JobHandler) renderJobs(c *gin.Context, status int, page views.JobsPage) {
	page.Base = base(c, "Jobs")
	if page.SubmitLabel == "" {
		page.SubmitLabel = labelAdd
		if page.EditID != "" {
			page.SubmitLabel = labelUpdate
		}
	}
	page.Cards = h.cards(c, models.KeywordFilter(page.Q))
	c.HTML(status, "jobs.html", page)
}

// Page is GET /jobs?q=&edit=.
func (h *JobHandler) Page(c *gin.Context) {
	q := c.Query("q")
	page := views.JobsPage{Q: q}

	if id := c.Query("edit"); id != "" {
		j, err := h.svc.Get(c.Request.Context(), id)
		if err != nil {
			page.Error = utils.Message(err, "Job not found.")
			h.renderJobs(c, utils.HTTPStatus(err), page)
			return
		}
		page.EditID = j.ID
		page.Form = j.Input()
	}
	h.renderJobs(c, http.StatusOK, page)
}

type jobForm struct {
	models.JobInput
	ID string `form:"id"`
	Q  string `form:"q"`
}

// Save is POST /jobs. A form carrying an id updates that posting; any other
// submission appends.
func (h *JobHandler) Save(c *gin.Context) {
	var f jobForm
	if err := c.ShouldBind(&f); err != nil {
		h.renderJobs(c, http.StatusBadRequest, views.JobsPage{Q: f.Q, Form: f.JobInput, Error: "invalid request body"})
		return
	}

	var err error
	if f.ID != "" {
		_, err = h.svc.Update(c.Request.Context(), f.ID, f.JobInput)
	} else {
		_, err = h.svc.Add(c.Request.Context(), f.JobInput)
	}
	if err != nil {
		h.renderJobs(c, utils.HTTPStatus(err), views.JobsPage{
			Q: f.Q, EditID: f.ID, Form: f.JobInput,
			Error: utils.Message(err, "Could not save job."),
		})
		return
	}
	c.Redirect(http.StatusSeeOther, jobsURL(f.Q))
}

// ConfirmDelete is GET /jobs/:id/delete.
func (h *JobHandler) ConfirmDelete(c *gin.Context) {
	q := c.Query("q")
	j, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Redirect(http.StatusSeeOther, jobsURL(q))
		return
	}
	c.HTML(http.StatusOK, "delete_confirm.html", views.DeletePage{
		Base: base(c, "Delete job"),
		Job:  *j,
		Q:    q,
	})
}

// Delete is POST /jobs/:id/delete. Only confirm=yes removes the posting.
func (h *JobHandler) Delete(c *gin.Context) {
	q := c.PostForm("q")
	confirmed := c.PostForm("confirm") == "yes"

	err := h.svc.Delete(c.Request.Context(), c.Param("id"), confirmed)
	if err != nil && !utils.IsCode(err, utils.CodePrecondition) {
		h.renderJobs(c, utils.HTTPStatus(err), views.JobsPage{
			Q:     q,
			Error: utils.Message(err, "Could not delete job."),
		})
		return
	}
	c.Redirect(http.StatusSeeOther, jobsURL(q))
}

// Cards is GET /jobs/cards?q=, the list fragment alone.
func (h *JobHandler) Cards(c *gin.Context) {
	c.HTML(http.StatusOK, "cards.html", gin.H{"Cards": h.cards(c, models.KeywordFilter(c.Query("q")))})
}

// SearchPage is GET /jobs/search?kw=&loc=. exp is carried through but does
// not filter.
func (h *JobHandler) SearchPage(c *gin.Context) {
	kw, loc := c.Query("kw"), c.Query("loc")
	c.HTML(http.StatusOK, "search.html", views.SearchPage{
		Base:     base(c, "Search"),
		Keyword:  kw,
		Location: loc,
		Exp:      c.Query("exp"),
		Cards:    listing.ReadOnly(h.cards(c, models.JobFilter{Keyword: kw, Location: loc})),
	})
}

// JSON API

func (h *JobHandler) APIList(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Search(c.Request.Context(), c.Query("q")))
}

func (h *JobHandler) APISearch(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.SearchKeywordLocation(c.Request.Context(), c.Query("kw"), c.Query("loc")))
}

func (h *JobHandler) APIGet(c *gin.Context) {
	j, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, j)
}

func (h *JobHandler) APICreate(c *gin.Context) {
	var in models.JobInput
	if err := c.ShouldBindJSON(&in); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "JobHandler.APICreate", "invalid request body", err))
		return
	}
	j, err := h.svc.Add(c.Request.Context(), in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, j)
}

func (h *JobHandler) APIUpdate(c *gin.Context) {
	var in models.JobInput
	if err := c.ShouldBindJSON(&in); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "JobHandler.APIUpdate", "invalid request body", err))
		return
	}
	j, err := h.svc.Update(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, j)
}

// APIDelete requires ?confirm=true.
func (h *JobHandler) APIDelete(c *gin.Context) {
	confirmed := c.Query("confirm") == "true"
	if err := h.svc.Delete(c.Request.Context(), c.Param("id"), confirmed); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
