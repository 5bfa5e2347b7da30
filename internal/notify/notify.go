// Package notify is the local notification collaborator: a one-shot journal
// of pending reminders kept in the same bbolt file as the records, gated by
// a once-granted permission the way the original platform gates OS
// notifications.
package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.etcd.io/bbolt"
)

// ErrPermissionDenied means notifications were declined (or never granted).
// Callers degrade gracefully: the triggering save still succeeds, the
// reminder is just not scheduled.
var ErrPermissionDenied = errors.New("notification permission denied")

// Notification is the collaborator contract: a one-shot local notification.
// Key identifies the subject (the client UID); scheduling a second
// notification with the same key replaces the first.
type Notification struct {
	ID    string    `json:"id"`
	Key   string    `json:"key"`
	Title string    `json:"title"`
	Body  string    `json:"body"`
	At    time.Time `json:"at"`
}

// Notifier schedules and cancels one-shot notifications.
type Notifier interface {
	// Schedule registers n and returns its id. A past n.At is accepted
	// as-is; it simply shows up as already due.
	Schedule(ctx context.Context, n Notification) (string, error)
	// Cancel drops the pending notification for key. Cancelling a key with
	// nothing pending is a no-op.
	Cancel(ctx context.Context, key string) error
}

const (
	bucketReminders = "reminders"
	keyPermission   = "perm" // "granted" | "denied"
)

// Journal is the bbolt-backed Notifier. One pending entry per key.
type Journal struct {
	db *bbolt.DB
}

// NewJournal attaches the journal to db, creating its bucket if needed.
func NewJournal(db *bbolt.DB) (*Journal, error) {
	if err := db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketReminders))
		return err
	}); err != nil {
		return nil, fmt.Errorf("init reminders bucket: %w", err)
	}
	return &Journal{db: db}, nil
}

// PermissionGranted reports whether notifications were ever granted.
func (j *Journal) PermissionGranted(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	var state string
	if err := j.db.View(func(tx *bbolt.Tx) error {
		if v := tx.Bucket([]byte(bucketReminders)).Get([]byte(keyPermission)); v != nil {
			state = string(v)
		}
		return nil
	}); err != nil {
		return false, err
	}
	return state == "granted", nil
}

// PermissionAsked reports whether the user has answered the permission
// question at all, so the caller can ask exactly once.
func (j *Journal) PermissionAsked(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	var asked bool
	if err := j.db.View(func(tx *bbolt.Tx) error {
		asked = tx.Bucket([]byte(bucketReminders)).Get([]byte(keyPermission)) != nil
		return nil
	}); err != nil {
		return false, err
	}
	return asked, nil
}

// RecordPermission persists the user's answer to the permission request.
func (j *Journal) RecordPermission(ctx context.Context, granted bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	state := "denied"
	if granted {
		state = "granted"
	}
	return j.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(bucketReminders)).Put([]byte(keyPermission), []byte(state))
	})
}

// Schedule implements Notifier. Requires a granted permission.
func (j *Journal) Schedule(ctx context.Context, n Notification) (string, error) {
	granted, err := j.PermissionGranted(ctx)
	if err != nil {
		return "", err
	}
	if !granted {
		return "", ErrPermissionDenied
	}
	if n.Key == "" {
		return "", errors.New("notification key is required")
	}
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	data, err := json.Marshal(n)
	if err != nil {
		return "", err
	}
	if err := j.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(bucketReminders)).Put([]byte(n.Key), data)
	}); err != nil {
		return "", err
	}
	return n.ID, nil
}

// Cancel implements Notifier.
func (j *Journal) Cancel(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if key == "" {
		return nil
	}
	return j.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(bucketReminders)).Delete([]byte(key))
	})
}

// Pending returns all journal entries sorted by fire time, earliest first.
func (j *Journal) Pending(ctx context.Context) ([]Notification, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var out []Notification
	if err := j.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(bucketReminders)).ForEach(func(k, v []byte) error {
			if string(k) == keyPermission {
				return nil
			}
			var n Notification
			if err := json.Unmarshal(v, &n); err != nil {
				return fmt.Errorf("decode reminder %s: %w", k, err)
			}
			out = append(out, n)
			return nil
		})
	}); err != nil {
		return nil, err
	}
	sort.Slice(out, func(a, b int) bool { return out[a].At.Before(out[b].At) })
	return out, nil
}

// Due returns the pending entries whose fire time is at or before now.
func (j *Journal) Due(ctx context.Context, now time.Time) ([]Notification, error) {
	pending, err := j.Pending(ctx)
	if err != nil {
		return nil, err
	}
	due := pending[:0:0]
	for _, n := range pending {
		if !n.At.After(now) {
			due = append(due, n)
		}
	}
	return due, nil
}

// Ack clears every entry due at or before now. One-shot semantics: once
// surfaced and acknowledged, a reminder is gone.
func (j *Journal) Ack(ctx context.Context, now time.Time) (int, error) {
	due, err := j.Due(ctx, now)
	if err != nil {
		return 0, err
	}
	if len(due) == 0 {
		return 0, nil
	}
	err = j.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(bucketReminders))
		for _, n := range due {
			if err := b.Delete([]byte(n.Key)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(due), nil
}
