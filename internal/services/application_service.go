package services

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/yoockh/jobboard/internal/models"
	"github.com/yoockh/jobboard/internal/repositories/kvstore"
	"github.com/yoockh/jobboard/internal/storage"
	"github.com/yoockh/jobboard/internal/utils"
)

const (
	MaxResumeBytes = 10 << 20

	MsgApplicationIncomplete = "Please fill name, email and attach a resume."
	MsgResumeUnreadable      = "Could not read resume file."
	MsgResumeTooLarge        = "Resume is too large (max 10 MB)."
)

// Resume is the uploaded file as received from the form.
type Resume struct {
	Name string
	Type string // may be empty; sniffed from content then
	Size int64
	Body io.Reader
}

type ApplicationInput struct {
	Job    models.JobSnapshot
	Name   string
	Email  string
	Cover  string
	Resume *Resume
}

type ApplicationService interface {
	Submit(ctx context.Context, in ApplicationInput) (*models.Application, error)
	List(ctx context.Context) ([]models.Application, error)
}

// Progress presents submission progress. It has no effect on what is
// recorded.
type Progress interface {
	Loading(ctx context.Context)
	Success(ctx context.Context)
}

type NoProgress struct{}

func (NoProgress) Loading(context.Context) {}
func (NoProgress) Success(context.Context) {}

// DelayProgress holds each state for a fixed time, returning early if ctx
// ends.
type DelayProgress struct {
	LoadingDelay time.Duration
	SuccessDelay time.Duration
}

func NewDelayProgress() DelayProgress {
	return DelayProgress{LoadingDelay: 500 * time.Millisecond, SuccessDelay: 700 * time.Millisecond}
}

func (p DelayProgress) Loading(ctx context.Context) { sleep(ctx, p.LoadingDelay) }
func (p DelayProgress) Success(ctx context.Context) { sleep(ctx, p.SuccessDelay) }

func sleep(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}

type applicationService struct {
	apps     kvstore.ApplicationRepository
	uploader storage.Uploader // optional
	progress Progress
	log      *logrus.Logger

	mu sync.Mutex
}

func NewApplicationService(apps kvstore.ApplicationRepository, uploader storage.Uploader, progress Progress, log *logrus.Logger) ApplicationService {
	if progress == nil {
		progress = NoProgress{}
	}
	return &applicationService{apps: apps, uploader: uploader, progress: progress, log: log}
}

func (s *applicationService) Submit(ctx context.Context, in ApplicationInput) (*models.Application, error) {
	const op = "ApplicationService.Submit"

	name := strings.TrimSpace(in.Name)
	email := strings.TrimSpace(in.Email)
	if name == "" || email == "" || in.Resume == nil || in.Resume.Name == "" || in.Resume.Body == nil {
		return nil, utils.E(utils.CodeInvalidArgument, op, MsgApplicationIncomplete, nil)
	}
	if in.Resume.Size > MaxResumeBytes {
		return nil, utils.E(utils.CodeInvalidArgument, op, MsgResumeTooLarge, nil)
	}

	s.progress.Loading(ctx)

	data, err := io.ReadAll(io.LimitReader(in.Resume.Body, MaxResumeBytes+1))
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, MsgResumeUnreadable, err)
	}
	if len(data) > MaxResumeBytes {
		return nil, utils.E(utils.CodeInvalidArgument, op, MsgResumeTooLarge, nil)
	}

	mimeType := resumeType(in.Resume.Type, data)
	app := &models.Application{
		Job:           in.Job,
		Name:          name,
		Email:         email,
		Cover:         in.Cover,
		ResumeName:    in.Resume.Name,
		ResumeType:    mimeType,
		ResumeDataURL: utils.EncodeDataURL(mimeType, data),
		SubmittedAt:   time.Now().UTC(),
	}
	app.ResumePath = s.archive(ctx, app.ResumeName, mimeType, data)

	s.mu.Lock()
	err = s.apps.Append(ctx, app)
	s.mu.Unlock()
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to record application", err)
	}

	s.progress.Success(ctx)
	return app, nil
}

func (s *applicationService) List(ctx context.Context) ([]models.Application, error) {
	const op = "ApplicationService.List"

	apps, err := s.apps.List(ctx)
	if err != nil {
		return nil, utils.E(utils.CodeUnavailable, op, "failed to load applications", err)
	}
	return apps, nil
}

// archive copies the resume to object storage when configured. Failures
// are logged; the application is recorded either way.
func (s *applicationService) archive(ctx context.Context, fileName, mimeType string, data []byte) string {
	if s.uploader == nil {
		return ""
	}
	object := "resumes/" + uuid.NewString() + strings.ToLower(filepath.Ext(fileName))
	path, err := s.uploader.Upload(ctx, object, mimeType, bytes.NewReader(data))
	if err != nil {
		s.log.WithError(err).WithField("object", object).Warn("resume archive failed")
		return ""
	}
	return path
}

func resumeType(declared string, data []byte) string {
	if declared = strings.TrimSpace(declared); declared != "" {
		return declared
	}
	if len(data) == 0 {
		return "application/octet-stream"
	}
	m := mimetype.Detect(data).String()
	// mimetype appends parameters such as "; charset=utf-8"
	if i := strings.IndexByte(m, ';'); i >= 0 {
		m = strings.TrimSpace(m[:i])
	}
	return m
}
