package metadata

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"

	"restmapper/internal/descriptor"
	"restmapper/internal/schema"
)

var bucketCustomFields = []byte("custom_fields")

var boltOpts = &bolt.Options{
	// open timeout when file is locked
	Timeout:      time.Second,
	NoGrowSync:   true,
	FreelistType: bolt.FreelistMapType,
}

type storedField struct {
	Name  string `json:"name"`
	Type  string `json:"type"`
	Label string `json:"label,omitempty"`
}

// Store is a bbolt snapshot of custom field answers keyed by tenant and
// object.
type Store struct {
	db *bolt.DB
}

var _ Source = (*Store)(nil)

// OpenStore opens or creates the snapshot file at path.
func OpenStore(path string) (*Store, error) {
	db, err := bolt.Open(path, 0o600, boltOpts)
	if err != nil {
		return nil, fmt.Errorf("metadata: opening %s: %w", path, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketCustomFields)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("metadata: initializing %s: %w", path, err)
	}

	return &Store{db: db}, nil
}

func storeKey(tenant, object string) []byte {
	return []byte(tenant + "/" + object)
}

// Put replaces the stored fields of tenant and object.
func (s *Store) Put(tenant, object string, fields []schema.CustomField) error {
	stored := make([]storedField, len(fields))
	for i, f := range fields {
		stored[i] = storedField{Name: f.Name, Type: f.Type.String(), Label: f.Label}
	}

	buf, err := json.Marshal(stored)
	if err != nil {
		return err
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketCustomFields).Put(storeKey(tenant, object), buf)
	})
}

// CustomFields returns the stored fields, or ErrNotFound.
func (s *Store) CustomFields(_ context.Context, tenant, object string) ([]schema.CustomField, error) {
	var stored []storedField

	err := s.db.View(func(tx *bolt.Tx) error {
		buf := tx.Bucket(bucketCustomFields).Get(storeKey(tenant, object))
		if buf == nil {
			return ErrNotFound
		}

		return json.Unmarshal(buf, &stored)
	})
	if err != nil {
		return nil, fmt.Errorf("metadata: snapshot %s/%s: %w", tenant, object, err)
	}

	fields := make([]schema.CustomField, len(stored))

	for i, f := range stored {
		t, err := descriptor.ParseSemanticType(f.Type)
		if err != nil {
			return nil, fmt.Errorf("metadata: snapshot %s/%s field %s: %w", tenant, object, f.Name, err)
		}

		fields[i] = schema.CustomField{Name: f.Name, Type: t, Label: f.Label}
	}

	return fields, nil
}

// Keys lists the stored "tenant/object" keys in byte order.
func (s *Store) Keys() ([]string, error) {
	var keys []string

	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketCustomFields).ForEach(func(k, _ []byte) error {
			keys = append(keys, string(k))
			return nil
		})
	})

	return keys, err
}

// Close releases the database file.
func (s *Store) Close() error {
	return s.db.Close()
}
