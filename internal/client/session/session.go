package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/donatello/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/donatello/internal/logging"
	"golang.org/x/oauth2"
)

// Storage keys.
const (
	KeyAccessToken  = "access_token"
	KeyRefreshToken = "refresh_token"
	KeyUserID       = "user_id"
)

var ErrInvalidTransition = errors.New("invalid session transition")

type State int

const (
	Anonymous State = iota
	Authenticated
	Refreshing
)

func (s State) String() string {
	switch s {
	case Anonymous:
		return "ANONYMOUS"
	case Authenticated:
		return "AUTHENTICATED"
	case Refreshing:
		return "REFRESHING"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Session is safe for concurrent use. Reads take a shared lock; every write
// is serialized and persisted before it becomes visible.
type Session struct {
	mu     sync.RWMutex
	repo   metadata.Repository
	log    logging.Logger
	state  State
	token  *oauth2.Token
	userID string
	gen    uint64
}

func New(repo metadata.Repository, logger logging.Logger) *Session {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Session{repo: repo, log: logger}
}

// Load restores the session from storage. A stored access token makes the
// session AUTHENTICATED; otherwise it stays ANONYMOUS.
func (s *Session) Load(ctx context.Context) error {
	values, err := s.repo.List(ctx)
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	access := string(values[KeyAccessToken])
	if access == "" {
		s.state, s.token, s.userID = Anonymous, nil, ""
		return nil
	}

	s.token = withExpiry(&oauth2.Token{
		AccessToken:  access,
		RefreshToken: string(values[KeyRefreshToken]),
	})
	s.userID = string(values[KeyUserID])
	s.state = Authenticated
	s.gen++

	s.log.Debug(ctx, "session restored", "user_id", s.userID)
	return nil
}

func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Token returns a copy of the current credential, or nil when anonymous.
func (s *Session) Token() *oauth2.Token {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.token == nil {
		return nil
	}
	t := *s.token
	return &t
}

func (s *Session) UserID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.userID
}

// Current returns the credential together with its generation, read
// atomically.
func (s *Session) Current() (*oauth2.Token, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.token == nil {
		return nil, s.gen
	}
	t := *s.token
	return &t, s.gen
}

// Generation increases on every credential write.
func (s *Session) Generation() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.gen
}

// Establish stores a freshly issued credential after login. Logging in again
// over an existing session replaces it. When userID is empty it is read from
// the access token's user_data.id claim.
func (s *Session) Establish(ctx context.Context, tok *oauth2.Token, userID string) error {
	if tok == nil || tok.AccessToken == "" {
		return errors.New("establish session: empty access token")
	}
	if userID == "" {
		userID = UserIDFromToken(tok.AccessToken)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == Refreshing {
		return fmt.Errorf("establish from %s: %w", s.state, ErrInvalidTransition)
	}

	if err := s.persist(ctx, tok, userID); err != nil {
		return err
	}

	s.token = withExpiry(cloneToken(tok))
	s.userID = userID
	s.state = Authenticated
	s.gen++
	return nil
}

// SetUserID records the user id for a session whose access token does not
// carry one. The credential and Generation stay as they are.
func (s *Session) SetUserID(ctx context.Context, userID string) error {
	if userID == "" {
		return errors.New("set user id: empty id")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == Anonymous {
		return fmt.Errorf("set user id from %s: %w", s.state, ErrInvalidTransition)
	}
	if err := s.repo.Set(ctx, KeyUserID, []byte(userID)); err != nil {
		return fmt.Errorf("persist user id: %w", err)
	}
	s.userID = userID
	return nil
}

// BeginRefresh marks the session as REFRESHING.
func (s *Session) BeginRefresh() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != Authenticated {
		return fmt.Errorf("begin refresh from %s: %w", s.state, ErrInvalidTransition)
	}
	s.state = Refreshing
	return nil
}

// CompleteRefresh installs the renewed credential. A response without a new
// refresh token keeps the old one.
func (s *Session) CompleteRefresh(ctx context.Context, tok *oauth2.Token) error {
	if tok == nil || tok.AccessToken == "" {
		return errors.New("complete refresh: empty access token")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != Refreshing {
		return fmt.Errorf("complete refresh from %s: %w", s.state, ErrInvalidTransition)
	}

	next := cloneToken(tok)
	if next.RefreshToken == "" && s.token != nil {
		next.RefreshToken = s.token.RefreshToken
	}
	userID := s.userID
	if id := UserIDFromToken(next.AccessToken); id != "" {
		userID = id
	}

	if err := s.persist(ctx, next, userID); err != nil {
		return err
	}

	s.token = withExpiry(next)
	s.userID = userID
	s.state = Authenticated
	s.gen++
	return nil
}

// FailRefresh drops the session after an unrecoverable refresh.
func (s *Session) FailRefresh(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != Refreshing {
		return fmt.Errorf("fail refresh from %s: %w", s.state, ErrInvalidTransition)
	}
	return s.reset(ctx)
}

// Clear drops the session from any state. The in-memory session is gone
// even when the storage delete fails; the storage error is returned.
func (s *Session) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reset(ctx)
}

func (s *Session) reset(ctx context.Context) error {
	s.token = nil
	s.userID = ""
	s.state = Anonymous
	s.gen++

	if err := s.repo.Delete(ctx, KeyAccessToken, KeyRefreshToken, KeyUserID); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

func (s *Session) persist(ctx context.Context, tok *oauth2.Token, userID string) error {
	values := map[string][]byte{KeyAccessToken: []byte(tok.AccessToken)}
	var stale []string

	if tok.RefreshToken != "" {
		values[KeyRefreshToken] = []byte(tok.RefreshToken)
	} else {
		stale = append(stale, KeyRefreshToken)
	}
	if userID != "" {
		values[KeyUserID] = []byte(userID)
	} else {
		stale = append(stale, KeyUserID)
	}

	if err := s.repo.SetMany(ctx, values); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	if len(stale) > 0 {
		if err := s.repo.Delete(ctx, stale...); err != nil {
			return fmt.Errorf("persist session: %w", err)
		}
	}
	return nil
}

func cloneToken(t *oauth2.Token) *oauth2.Token {
	c := *t
	return &c
}

func withExpiry(t *oauth2.Token) *oauth2.Token {
	if t.Expiry.IsZero() {
		if exp, ok := ExpiryFromToken(t.AccessToken); ok {
			t.Expiry = exp
		}
	}
	return t
}
