// Package session owns all cross-component mutable client state: the
// process-scoped session id, the persisted bearer token and wallet address,
// the pending referral code and the per-wallet one-time flags. Every write
// goes through the Store accessors so a single point controls the
// invariants (one active SID per process, referral attach-once).
package session

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/kudilabs/kudi-client/internal/client/repositories/state"
	"github.com/kudilabs/kudi-client/internal/common"
	"github.com/kudilabs/kudi-client/internal/logging"
)

// Durable state keys.
const (
	keyBearer         = "bearer_token"
	keyWallet         = "wallet"
	keyPendingRefCode = "referral_code"

	refAttachedPrefix = "ref_attached_"
	followPrefix      = "follow_done_"
)

// FollowKinds are the one-time social follow tasks tracked per wallet.
var FollowKinds = []string{"x", "telegram", "instagram"}

// Store provides the stable session id for the process lifetime and holds
// bearer token, wallet address and one-time flags across restarts.
//
// Durable operations degrade to an in-memory shadow when the underlying
// repository fails (read-only disk, locked DB): reads and writes then serve
// the process lifetime only, and never surface storage errors to callers.
type Store struct {
	mu     sync.Mutex
	sid    string
	repo   state.Repository
	shadow *state.MemoryRepository
	log    logging.Logger
}

// NewStore wires a Store over the given repository. A nil repository means
// fully in-memory operation.
func NewStore(repo state.Repository, log logging.Logger) *Store {
	shadow := state.NewMemoryRepository()
	if repo == nil {
		repo = shadow
	}
	return &Store{repo: repo, shadow: shadow, log: log}
}

// SessionID returns the current session id, generating and caching a new
// one on first use. Safe to call before any network activity.
func (s *Store) SessionID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sid == "" {
		s.sid = newSessionID()
	}
	return s.sid
}

// SetSessionID adopts a server-directed session id. Side effect only; it
// does not trigger any request.
func (s *Store) SetSessionID(next string) {
	if next == "" {
		return
	}
	s.mu.Lock()
	s.sid = next
	s.mu.Unlock()
}

func newSessionID() string {
	if id, err := uuid.NewRandom(); err == nil {
		return id.String()
	}
	// best-effort fallback; MakeRandHexString only fails when the system
	// entropy source is broken, in which case there is nothing better
	s, _ := common.MakeRandHexString(16)
	return "s_" + s
}

// Bearer returns the persisted bearer token, or "" when unauthenticated.
func (s *Store) Bearer(ctx context.Context) string {
	return string(s.get(ctx, keyBearer))
}

// Wallet returns the persisted wallet address, or "".
func (s *Store) Wallet(ctx context.Context) string {
	return string(s.get(ctx, keyWallet))
}

// SetCredentials persists the wallet address and bearer token together, as
// they are only meaningful as a pair.
func (s *Store) SetCredentials(ctx context.Context, wallet, bearer string) {
	s.set(ctx, keyWallet, []byte(wallet))
	s.set(ctx, keyBearer, []byte(bearer))
}

// ClearCredentials drops the bearer token and wallet address (logout).
// Per-wallet one-time flags survive so a reconnect does not repeat
// attach-once operations.
func (s *Store) ClearCredentials(ctx context.Context) {
	s.delete(ctx, keyBearer)
	s.delete(ctx, keyWallet)
}

// Wipe erases ALL durable state, including the per-wallet one-time flags
// that a plain logout keeps, and discards the current session id so the
// next request starts a fresh session. This is the forget-this-device
// operation.
func (s *Store) Wipe(ctx context.Context) {
	_ = s.shadow.Clear(ctx)
	if err := s.repo.Clear(ctx); err != nil && s.log != nil {
		s.log.Warn(ctx, "state wipe failed", "error", err)
	}
	s.mu.Lock()
	s.sid = ""
	s.mu.Unlock()
}

// PendingRefCode returns the locally remembered referral code candidate.
func (s *Store) PendingRefCode(ctx context.Context) string {
	return string(s.get(ctx, keyPendingRefCode))
}

func (s *Store) SetPendingRefCode(ctx context.Context, code string) {
	if code == "" {
		s.delete(ctx, keyPendingRefCode)
		return
	}
	s.set(ctx, keyPendingRefCode, []byte(code))
}

// RefAttachDone reports whether referral attachment has already completed
// for the wallet. Once true, the client must never call the attach endpoint
// for that wallet again.
func (s *Store) RefAttachDone(ctx context.Context, wallet string) bool {
	return string(s.get(ctx, refAttachedPrefix+wallet)) == "1"
}

func (s *Store) MarkRefAttachDone(ctx context.Context, wallet string) {
	s.set(ctx, refAttachedPrefix+wallet, []byte("1"))
}

// FollowDone reports completion of a one-time social follow task.
func (s *Store) FollowDone(ctx context.Context, wallet, kind string) bool {
	return string(s.get(ctx, followPrefix+kind+"_"+wallet)) == "1"
}

func (s *Store) MarkFollowDone(ctx context.Context, wallet, kind string) {
	s.set(ctx, followPrefix+kind+"_"+wallet, []byte("1"))
}

// AllFollowDone reports whether every follow task is complete for the
// wallet; this gates sharing features.
func (s *Store) AllFollowDone(ctx context.Context, wallet string) bool {
	for _, kind := range FollowKinds {
		if !s.FollowDone(ctx, wallet, kind) {
			return false
		}
	}
	return true
}

func (s *Store) get(ctx context.Context, key string) []byte {
	v, err := s.repo.Get(ctx, key)
	if err != nil {
		if s.log != nil {
			s.log.Warn(ctx, "state read failed, using in-memory fallback", "key", key, "error", err)
		}
		v, _ = s.shadow.Get(ctx, key)
	}
	return v
}

func (s *Store) set(ctx context.Context, key string, value []byte) {
	_ = s.shadow.Set(ctx, key, value)
	if err := s.repo.Set(ctx, key, value); err != nil && s.log != nil {
		s.log.Warn(ctx, "state write failed, value held in memory only", "key", key, "error", err)
	}
}

func (s *Store) delete(ctx context.Context, key string) {
	_ = s.shadow.Delete(ctx, key)
	if err := s.repo.Delete(ctx, key); err != nil && s.log != nil {
		s.log.Warn(ctx, "state delete failed", "key", key, "error", err)
	}
}
