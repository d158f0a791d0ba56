// Package hold snapshots the live cart so a terminal can suspend an order
// and resume it later unchanged.
package hold

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/princekenny23/primepos-sub004/cart"
	apperrors "github.com/princekenny23/primepos-sub004/errors"
	"github.com/princekenny23/primepos-sub004/models"
)

// KV is the injected key-value backend; implementations are swappable
// without touching cart logic. Get must return apperrors.ErrHoldNotFound for
// a missing key.
type KV interface {
	Put(ctx context.Context, key string, value []byte) error
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
}

// Store coordinates hold/recall between one cart engine and the snapshot
// backend.
type Store struct {
	kv     KV
	engine *cart.Engine
	seq    atomic.Uint64
	log    *zap.Logger
}

func NewStore(kv KV, engine *cart.Engine, log *zap.Logger) *Store {
	return &Store{kv: kv, engine: engine, log: log}
}

// nextID generates a monotonically ordered snapshot id. The millisecond
// prefix keeps ids sortable by hold time; the sequence breaks same-clock
// ties.
func (s *Store) nextID() string {
	return fmt.Sprintf("%d-%06d", time.Now().UnixMilli(), s.seq.Add(1))
}

// Hold writes an immutable snapshot of the live cart, then clears it. A
// failed write leaves the live cart untouched; the hold is durable only once
// the store write succeeds.
func (s *Store) Hold(ctx context.Context) (string, error) {
	lines, table := s.engine.Snapshot()
	if len(lines) == 0 {
		return "", apperrors.Guard("nothing to hold")
	}

	snap := models.HoldSnapshot{
		ID:          s.nextID(),
		Lines:       lines,
		TableNumber: table,
		CreatedAt:   time.Now().UTC(),
	}

	data, err := json.Marshal(snap)
	if err != nil {
		return "", err
	}
	if err := s.kv.Put(ctx, snap.ID, data); err != nil {
		return "", err
	}

	s.engine.Clear()
	if s.log != nil {
		s.log.Info("cart held", zap.String("hold_id", snap.ID), zap.Int("lines", len(snap.Lines)))
	}
	return snap.ID, nil
}

// Recall restores a held snapshot into the live cart, then deletes it: a
// snapshot cannot be recalled twice. Recall into a non-empty cart is
// rejected rather than silently overwriting the operator's work.
func (s *Store) Recall(ctx context.Context, id string) error {
	if !s.engine.IsEmpty() {
		return apperrors.ErrCartNotEmpty
	}

	data, err := s.kv.Get(ctx, id)
	if err != nil {
		return err
	}
	var snap models.HoldSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return err
	}

	s.engine.Restore(snap.Lines, snap.TableNumber)

	if err := s.kv.Delete(ctx, id); err != nil && s.log != nil {
		// The order is already back on the terminal; losing the delete only
		// risks a stale entry in the hold list.
		s.log.Warn("failed to delete recalled hold", zap.String("hold_id", id), zap.Error(err))
	}
	return nil
}
