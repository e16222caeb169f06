package kvstore

import (
	"context"
	"strconv"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/yoockh/jobboard/internal/kv"
	"github.com/yoockh/jobboard/internal/models"
)

type JobRepository interface {
	Load(ctx context.Context) ([]models.JobPosting, error)
	Save(ctx context.Context, jobs []models.JobPosting) error
}

type jobRepo struct {
	store kv.Store
	log   *logrus.Logger
}

func NewJobRepo(store kv.Store, log *logrus.Logger) JobRepository {
	return &jobRepo{store: store, log: log}
}

// Load returns the stored postings in order. Entries written before ids
// existed get one derived from their position and fields, so every Load
// agrees on it until the next Save persists it.
func (r *jobRepo) Load(ctx context.Context) ([]models.JobPosting, error) {
	jobs, err := loadList[models.JobPosting](ctx, r.store, JobsKey, r.log)
	if err != nil {
		return nil, err
	}
	for i := range jobs {
		if jobs[i].ID == "" {
			jobs[i].ID = legacyID(i, jobs[i])
		}
	}
	return jobs, nil
}

func (r *jobRepo) Save(ctx context.Context, jobs []models.JobPosting) error {
	return saveList(ctx, r.store, JobsKey, jobs)
}

func legacyID(pos int, j models.JobPosting) string {
	name := strconv.Itoa(pos) + "\x00" + j.Title + "\x00" + j.Company + "\x00" + j.Location + "\x00" + j.Role
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(name)).String()
}
