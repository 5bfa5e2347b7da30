// Package store persists the client list and the reminder settings in a
// local bbolt database. Both live as JSON values under fixed keys and are
// replaced wholesale on every save; there is no partial update. The store
// assumes one logical writer at a time (a single interactive session) and
// does no locking of its own beyond bbolt's transactions.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.etcd.io/bbolt"

	"warsztat/internal/model"
)

const (
	bucketRecords = "records" // key: "clients" -> []model.Client, "settings" -> model.Settings

	keyClients  = "clients"
	keySettings = "settings"
)

// Store owns the durable client list and settings object.
type Store struct {
	db *bbolt.DB
}

// Open creates or opens the database at path and ensures the buckets exist.
func Open(path string) (*Store, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	if err := db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketRecords))
		return err
	}); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init buckets: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB exposes the underlying database for collaborators that keep their own
// bucket in the same file (the notification journal does).
func (s *Store) DB() *bbolt.DB { return s.db }

// LoadClients returns the persisted client list, or an empty list when none
// has been saved yet. A payload that exists but does not decode is a
// *ReadError wrapping ErrCorrupt, never an empty list.
func (s *Store) LoadClients(ctx context.Context) ([]model.Client, error) {
	if err := ctx.Err(); err != nil {
		return nil, &ReadError{Key: keyClients, Err: err}
	}
	var raw []byte
	if err := s.db.View(func(tx *bbolt.Tx) error {
		if v := tx.Bucket([]byte(bucketRecords)).Get([]byte(keyClients)); v != nil {
			raw = append([]byte(nil), v...)
		}
		return nil
	}); err != nil {
		return nil, &ReadError{Key: keyClients, Err: err}
	}
	if raw == nil {
		return []model.Client{}, nil
	}
	var clients []model.Client
	if err := json.Unmarshal(raw, &clients); err != nil {
		return nil, &ReadError{Key: keyClients, Err: fmt.Errorf("%w: %v", ErrCorrupt, err)}
	}
	return clients, nil
}

// SaveClients atomically replaces the entire persisted client list. On a
// *WriteError the previously stored list is untouched.
func (s *Store) SaveClients(ctx context.Context, clients []model.Client) error {
	if err := ctx.Err(); err != nil {
		return &WriteError{Key: keyClients, Err: err}
	}
	data, err := json.Marshal(clients)
	if err != nil {
		return &WriteError{Key: keyClients, Err: err}
	}
	if err := s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(bucketRecords)).Put([]byte(keyClients), data)
	}); err != nil {
		return &WriteError{Key: keyClients, Err: err}
	}
	return nil
}

// LoadSettings returns the persisted settings, or nil when never saved.
func (s *Store) LoadSettings(ctx context.Context) (*model.Settings, error) {
	if err := ctx.Err(); err != nil {
		return nil, &ReadError{Key: keySettings, Err: err}
	}
	var raw []byte
	if err := s.db.View(func(tx *bbolt.Tx) error {
		if v := tx.Bucket([]byte(bucketRecords)).Get([]byte(keySettings)); v != nil {
			raw = append([]byte(nil), v...)
		}
		return nil
	}); err != nil {
		return nil, &ReadError{Key: keySettings, Err: err}
	}
	if raw == nil {
		return nil, nil
	}
	var settings model.Settings
	if err := json.Unmarshal(raw, &settings); err != nil {
		return nil, &ReadError{Key: keySettings, Err: fmt.Errorf("%w: %v", ErrCorrupt, err)}
	}
	return &settings, nil
}

// SaveSettings atomically replaces the settings object.
func (s *Store) SaveSettings(ctx context.Context, settings model.Settings) error {
	if err := ctx.Err(); err != nil {
		return &WriteError{Key: keySettings, Err: err}
	}
	data, err := json.Marshal(settings)
	if err != nil {
		return &WriteError{Key: keySettings, Err: err}
	}
	if err := s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(bucketRecords)).Put([]byte(keySettings), data)
	}); err != nil {
		return &WriteError{Key: keySettings, Err: err}
	}
	return nil
}

// AddClient appends a new record, assigning it a UID, and persists the whole
// list. It returns the updated list and the stored record. The caller's view
// should only be refreshed from the returned list; on error nothing was
// persisted.
func (s *Store) AddClient(ctx context.Context, c model.Client) ([]model.Client, model.Client, error) {
	clients, err := s.LoadClients(ctx)
	if err != nil {
		return nil, model.Client{}, err
	}
	if c.UID == "" {
		c.UID = uuid.NewString()
	}
	updated := append(clients, c)
	if err := s.SaveClients(ctx, updated); err != nil {
		return nil, model.Client{}, err
	}
	return updated, c, nil
}

// UpdateClient replaces the record at index with c, keeping the old record's
// UID so its reminder stays attached. All other positions are untouched.
func (s *Store) UpdateClient(ctx context.Context, index int, c model.Client) ([]model.Client, model.Client, error) {
	clients, err := s.LoadClients(ctx)
	if err != nil {
		return nil, model.Client{}, err
	}
	if index < 0 || index >= len(clients) {
		return nil, model.Client{}, fmt.Errorf("client index out of range: have %d, got %d", len(clients), index)
	}
	c.UID = clients[index].UID
	if c.UID == "" {
		c.UID = uuid.NewString()
	}
	updated := make([]model.Client, len(clients))
	copy(updated, clients)
	updated[index] = c
	if err := s.SaveClients(ctx, updated); err != nil {
		return nil, model.Client{}, err
	}
	return updated, c, nil
}

// DeleteClient removes the record at index, preserving the order of the
// rest. It returns the updated list and the removed record.
func (s *Store) DeleteClient(ctx context.Context, index int) ([]model.Client, model.Client, error) {
	clients, err := s.LoadClients(ctx)
	if err != nil {
		return nil, model.Client{}, err
	}
	if index < 0 || index >= len(clients) {
		return nil, model.Client{}, fmt.Errorf("client index out of range: have %d, got %d", len(clients), index)
	}
	removed := clients[index]
	updated := make([]model.Client, 0, len(clients)-1)
	updated = append(updated, clients[:index]...)
	updated = append(updated, clients[index+1:]...)
	if err := s.SaveClients(ctx, updated); err != nil {
		return nil, model.Client{}, err
	}
	return updated, removed, nil
}
