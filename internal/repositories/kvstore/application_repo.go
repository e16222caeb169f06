package kvstore

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/yoockh/jobboard/internal/kv"
	"github.com/yoockh/jobboard/internal/models"
)

type ApplicationRepository interface {
	List(ctx context.Context) ([]models.Application, error)
	Append(ctx context.Context, app *models.Application) error
}

type applicationRepo struct {
	store kv.Store
	log   *logrus.Logger
}

func NewApplicationRepo(store kv.Store, log *logrus.Logger) ApplicationRepository {
	return &applicationRepo{store: store, log: log}
}

func (r *applicationRepo) List(ctx context.Context) ([]models.Application, error) {
	return loadList[models.Application](ctx, r.store, ApplicationsKey, r.log)
}

// Append rewrites the collection with app at the end. Callers serialize
// concurrent appends.
func (r *applicationRepo) Append(ctx context.Context, app *models.Application) error {
	apps, err := r.List(ctx)
	if err != nil {
		return err
	}
	apps = append(apps, *app)
	return saveList(ctx, r.store, ApplicationsKey, apps)
}
