package metadata

import (
	"context"

	"restmapper/internal/schema"
)

// Cached reads through to a live Source, recording every answer in a
// snapshot Store. When the live source fails the snapshot answers
// instead; the live error is returned only when there is no snapshot.
type Cached struct {
	src   Source
	store *Store
}

var _ Source = (*Cached)(nil)

// NewCached combines src with store.
func NewCached(src Source, store *Store) *Cached {
	return &Cached{src: src, store: store}
}

func (c *Cached) CustomFields(ctx context.Context, tenant, object string) ([]schema.CustomField, error) {
	fields, err := c.src.CustomFields(ctx, tenant, object)
	if err == nil {
		if perr := c.store.Put(tenant, object, fields); perr != nil {
			log.Warnf("metadata: saving snapshot %s/%s: %v", tenant, object, perr)
		}

		return fields, nil
	}

	snap, serr := c.store.CustomFields(ctx, tenant, object)
	if serr != nil {
		log.Debugf("metadata: no snapshot for %s/%s: %v", tenant, object, serr)
		return nil, err
	}

	log.Warnf("metadata: %s/%s: live source failed, using snapshot: %v", tenant, object, err)

	return snap, nil
}
