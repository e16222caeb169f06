// Package kvstore keeps whole JSON collections under fixed keys of a kv.Store.
package kvstore

import (
	"context"
	"encoding/json"

	"github.com/sirupsen/logrus"
	"github.com/yoockh/jobboard/internal/kv"
)

const (
	JobsKey         = "jobs"
	ApplicationsKey = "applications"
)

// loadList reads the JSON array stored at key. A missing key is an empty
// collection; so is a document that does not parse, which is logged.
func loadList[T any](ctx context.Context, store kv.Store, key string, log *logrus.Logger) ([]T, error) {
	b, ok, err := store.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	out := []T{}
	if !ok || len(b) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(b, &out); err != nil {
		log.WithError(err).WithField("key", key).Warn("stored collection is not valid JSON; using empty collection")
		return []T{}, nil
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

func saveList[T any](ctx context.Context, store kv.Store, key string, items []T) error {
	if items == nil {
		items = []T{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return store.Set(ctx, key, b)
}
