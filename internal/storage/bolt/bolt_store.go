package bolt

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"go.etcd.io/bbolt"

	"github.com/streakd/streakd/internal/clock"
	"github.com/streakd/streakd/internal/storage"
	"github.com/streakd/streakd/pkg/habit"
)

const rootBucket = "users"
const apiKeysBucket = "api_keys"
const defaultUserID = "default"

// Layout:
//
//	users/<userID>/habits            habitID -> habit JSON
//	users/<userID>/logs/<habitID>    day key (YYYY-MM-DD) -> log JSON
//
// The day key is the uniqueness constraint on (habit, calendar day): two
// upserts for the same day land on the same key inside serialized write
// transactions, so a race leaves one record with the last writer's fields.
type Store struct {
	db *bbolt.DB
}

func Open(path string) (*Store, error) {
	db, err := bbolt.Open(path, 0600, nil)
	if err != nil {
		return nil, err
	}

	s := &Store{db: db}

	if err := db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists([]byte(rootBucket)); err != nil {
			return err
		}
		_, err := tx.CreateBucketIfNotExists([]byte(apiKeysBucket))
		return err
	}); err != nil {
		_ = db.Close()
		return nil, err
	}

	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func userBucket(tx *bbolt.Tx, userID string) (*bbolt.Bucket, error) {
	if userID == "" {
		userID = defaultUserID
	}
	return tx.Bucket([]byte(rootBucket)).CreateBucketIfNotExists([]byte(userID))
}

func habitsBucket(tx *bbolt.Tx, userID string) (*bbolt.Bucket, error) {
	ub, err := userBucket(tx, userID)
	if err != nil {
		return nil, err
	}
	return ub.CreateBucketIfNotExists([]byte("habits"))
}

func logsBucket(tx *bbolt.Tx, userID, habitID string) (*bbolt.Bucket, error) {
	ub, err := userBucket(tx, userID)
	if err != nil {
		return nil, err
	}
	lb, err := ub.CreateBucketIfNotExists([]byte("logs"))
	if err != nil {
		return nil, err
	}
	return lb.CreateBucketIfNotExists([]byte(habitID))
}

func (s *Store) PutHabit(userID string, h habit.Habit) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket, err := habitsBucket(tx, userID)
		if err != nil {
			return err
		}
		val, err := json.Marshal(h)
		if err != nil {
			return err
		}
		return bucket.Put([]byte(h.ID), val)
	})
}

func (s *Store) GetHabit(userID, habitID string) (habit.Habit, error) {
	var h habit.Habit
	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := readBucket(tx, userID, "habits")
		if bucket == nil {
			return storage.ErrNotFound
		}
		val := bucket.Get([]byte(habitID))
		if val == nil {
			return storage.ErrNotFound
		}
		return json.Unmarshal(val, &h)
	})
	return h, err
}

func (s *Store) ListHabits(userID string) ([]habit.Habit, error) {
	out := []habit.Habit{}
	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := readBucket(tx, userID, "habits")
		if bucket == nil {
			return nil
		}
		return bucket.ForEach(func(_, v []byte) error {
			var h habit.Habit
			if err := json.Unmarshal(v, &h); err != nil {
				return err
			}
			out = append(out, h)
			return nil
		})
	})
	return out, err
}

func (s *Store) DeleteHabit(userID, habitID string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket, err := habitsBucket(tx, userID)
		if err != nil {
			return err
		}
		if bucket.Get([]byte(habitID)) == nil {
			return storage.ErrNotFound
		}
		if err := bucket.Delete([]byte(habitID)); err != nil {
			return err
		}

		// Cascade: drop the habit's whole log bucket.
		ub, err := userBucket(tx, userID)
		if err != nil {
			return err
		}
		if lb := ub.Bucket([]byte("logs")); lb != nil && lb.Bucket([]byte(habitID)) != nil {
			if err := lb.DeleteBucket([]byte(habitID)); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *Store) FindLog(userID, habitID string, w clock.Window) (*habit.Log, error) {
	var out *habit.Log
	err := s.db.View(func(tx *bbolt.Tx) error {
		lb := readBucket(tx, userID, "logs")
		if lb == nil {
			return nil
		}
		bucket := lb.Bucket([]byte(habitID))
		if bucket == nil {
			return nil
		}
		val := bucket.Get([]byte(w.Key()))
		if val == nil {
			return nil
		}
		var l habit.Log
		if err := json.Unmarshal(val, &l); err != nil {
			return err
		}
		out = &l
		return nil
	})
	return out, err
}

func (s *Store) UpsertLog(userID, habitID string, w clock.Window, completed bool, notes string) (habit.Log, error) {
	var out habit.Log
	err := s.db.Update(func(tx *bbolt.Tx) error {
		bucket, err := logsBucket(tx, userID, habitID)
		if err != nil {
			return err
		}

		key := []byte(w.Key())
		if val := bucket.Get(key); val != nil {
			if err := json.Unmarshal(val, &out); err != nil {
				return err
			}
			out.Completed = completed
			out.Notes = notes
		} else {
			out = habit.Log{
				ID:        uuid.NewString(),
				HabitID:   habitID,
				Date:      w.Start,
				Completed: completed,
				Notes:     notes,
			}
		}

		val, err := json.Marshal(out)
		if err != nil {
			return err
		}
		return bucket.Put(key, val)
	})
	if err != nil {
		return habit.Log{}, fmt.Errorf("upserting log for %s/%s: %w", habitID, w.Key(), err)
	}
	return out, nil
}

func (s *Store) ListLogs(userID, habitID string) ([]habit.Log, error) {
	out := []habit.Log{}
	err := s.db.View(func(tx *bbolt.Tx) error {
		lb := readBucket(tx, userID, "logs")
		if lb == nil {
			return nil
		}
		bucket := lb.Bucket([]byte(habitID))
		if bucket == nil {
			return nil
		}
		return bucket.ForEach(func(_, v []byte) error {
			var l habit.Log
			if err := json.Unmarshal(v, &l); err != nil {
				return err
			}
			out = append(out, l)
			return nil
		})
	})
	return out, err
}

func (s *Store) PutAPIKey(keyHash, userID string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(apiKeysBucket)).Put([]byte(keyHash), []byte(userID))
	})
}

func (s *Store) GetAPIKey(keyHash string) (string, bool, error) {
	var userID string
	var found bool
	err := s.db.View(func(tx *bbolt.Tx) error {
		val := tx.Bucket([]byte(apiKeysBucket)).Get([]byte(keyHash))
		if val != nil {
			userID = string(val)
			found = true
		}
		return nil
	})
	return userID, found, err
}

func (s *Store) ListAPIKeyHashes(userID string) ([]string, error) {
	out := []string{}
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(apiKeysBucket)).ForEach(func(k, v []byte) error {
			if string(v) == userID {
				out = append(out, string(k))
			}
			return nil
		})
	})
	return out, err
}

func (s *Store) DeleteAPIKey(keyHash string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(apiKeysBucket)).Delete([]byte(keyHash))
	})
}

// readBucket resolves users/<userID>/<name> without creating anything, for
// use inside View transactions.
func readBucket(tx *bbolt.Tx, userID, name string) *bbolt.Bucket {
	if userID == "" {
		userID = defaultUserID
	}
	ub := tx.Bucket([]byte(rootBucket)).Bucket([]byte(userID))
	if ub == nil {
		return nil
	}
	return ub.Bucket([]byte(name))
}

var _ storage.Store = (*Store)(nil)
