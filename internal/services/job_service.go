package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/yoockh/jobboard/internal/models"
	"github.com/yoockh/jobboard/internal/repositories/kvstore"
	"github.com/yoockh/jobboard/internal/utils"
)

type JobService interface {
	List(ctx context.Context) []models.JobPosting
	Get(ctx context.Context, id string) (*models.JobPosting, error)
	Add(ctx context.Context, in models.JobInput) (*models.JobPosting, error)
	Update(ctx context.Context, id string, in models.JobInput) (*models.JobPosting, error)
	Delete(ctx context.Context, id string, confirmed bool) error
	Search(ctx context.Context, q string) []models.JobPosting
	SearchKeywordLocation(ctx context.Context, kw, loc string) []models.JobPosting
}

type jobService struct {
	jobs kvstore.JobRepository
	log  *logrus.Logger

	// mu serializes load-modify-save so each mutation sees the previous one.
	mu sync.Mutex
}

func NewJobService(jobs kvstore.JobRepository, log *logrus.Logger) JobService {
	return &jobService{jobs: jobs, log: log}
}

// List never fails: an unreadable store is logged and shown as empty.
func (s *jobService) List(ctx context.Context) []models.JobPosting {
	jobs, err := s.jobs.Load(ctx)
	if err != nil {
		s.log.WithError(err).Warn("job store read failed; showing empty list")
		return []models.JobPosting{}
	}
	return jobs
}

func (s *jobService) Get(ctx context.Context, id string) (*models.JobPosting, error) {
	const op = "JobService.Get"

	if id == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "id is required", nil)
	}
	for _, j := range s.List(ctx) {
		if j.ID == id {
			return &j, nil
		}
	}
	return nil, utils.E(utils.CodeNotFound, op, "job not found", utils.ErrNotFound)
}

func (s *jobService) Add(ctx context.Context, in models.JobInput) (*models.JobPosting, error) {
	const op = "JobService.Add"

	s.mu.Lock()
	defer s.mu.Unlock()

	jobs, err := s.jobs.Load(ctx)
	if err != nil {
		return nil, utils.E(utils.CodeUnavailable, op, "failed to load jobs", err)
	}

	job := models.JobPosting{
		ID:        uuid.NewString(),
		Title:     in.Title,
		Company:   in.Company,
		Location:  in.Location,
		Role:      in.Role,
		CreatedAt: time.Now().UTC(),
	}
	jobs = append(jobs, job)

	if err := s.jobs.Save(ctx, jobs); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to save jobs", err)
	}
	return &job, nil
}

// Update replaces the posting's fields in place; order and length are
// unchanged.
func (s *jobService) Update(ctx context.Context, id string, in models.JobInput) (*models.JobPosting, error) {
	const op = "JobService.Update"

	if id == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "id is required", nil)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	jobs, err := s.jobs.Load(ctx)
	if err != nil {
		return nil, utils.E(utils.CodeUnavailable, op, "failed to load jobs", err)
	}
	i := indexOf(jobs, id)
	if i < 0 {
		return nil, utils.E(utils.CodeNotFound, op, "job not found", utils.ErrNotFound)
	}

	jobs[i].Title = in.Title
	jobs[i].Company = in.Company
	jobs[i].Location = in.Location
	jobs[i].Role = in.Role

	if err := s.jobs.Save(ctx, jobs); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to save jobs", err)
	}
	out := jobs[i]
	return &out, nil
}

// Delete removes one posting. Without confirmation nothing changes.
func (s *jobService) Delete(ctx context.Context, id string, confirmed bool) error {
	const op = "JobService.Delete"

	if id == "" {
		return utils.E(utils.CodeInvalidArgument, op, "id is required", nil)
	}
	if !confirmed {
		return utils.E(utils.CodePrecondition, op, "deletion must be confirmed", nil)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	jobs, err := s.jobs.Load(ctx)
	if err != nil {
		return utils.E(utils.CodeUnavailable, op, "failed to load jobs", err)
	}
	i := indexOf(jobs, id)
	if i < 0 {
		return utils.E(utils.CodeNotFound, op, "job not found", utils.ErrNotFound)
	}
	jobs = append(jobs[:i], jobs[i+1:]...)

	if err := s.jobs.Save(ctx, jobs); err != nil {
		return utils.E(utils.CodeInternal, op, "failed to save jobs", err)
	}
	return nil
}

func (s *jobService) Search(ctx context.Context, q string) []models.JobPosting {
	return models.KeywordFilter(q).Apply(s.List(ctx))
}

func (s *jobService) SearchKeywordLocation(ctx context.Context, kw, loc string) []models.JobPosting {
	return models.JobFilter{Keyword: kw, Location: loc}.Apply(s.List(ctx))
}

func indexOf(jobs []models.JobPosting, id string) int {
	for i := range jobs {
		if jobs[i].ID == id {
			return i
		}
	}
	return -1
}
