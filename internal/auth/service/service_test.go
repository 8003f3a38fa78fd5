package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"later_backend/internal/auth/repository"
	"later_backend/internal/auth/transport"
	domainevents "later_backend/internal/events"
	"later_backend/platform/apperr"
	"later_backend/platform/events"
	"later_backend/platform/logger"
)

const testSecret = "test-secret"

type stubJWTConfig struct{}

func (stubJWTConfig) GetJWTSecret() string              { return testSecret }
func (stubJWTConfig) GetAccessTokenTTL() time.Duration  { return 15 * time.Minute }
func (stubJWTConfig) GetRefreshTokenTTL() time.Duration { return 720 * time.Hour }

type storedToken struct {
	userID    uuid.UUID
	expiresAt time.Time
}

type fakeRepo struct {
	usersByEmail map[string]repository.User
	usersByID    map[uuid.UUID]repository.User
	tokens       map[string]storedToken
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		usersByEmail: make(map[string]repository.User),
		usersByID:    make(map[uuid.UUID]repository.User),
		tokens:       make(map[string]storedToken),
	}
}

func (f *fakeRepo) CreateUser(ctx context.Context, email, passwordHash string) (repository.User, error) {
	if _, ok := f.usersByEmail[email]; ok {
		return repository.User{}, apperr.Conflict("email already registered")
	}
	user := repository.User{ID: uuid.New(), Email: email, PasswordHash: passwordHash}
	f.usersByEmail[email] = user
	f.usersByID[user.ID] = user
	return user, nil
}

func (f *fakeRepo) GetUserByEmail(ctx context.Context, email string) (repository.User, error) {
	user, ok := f.usersByEmail[email]
	if !ok {
		return repository.User{}, apperr.NotFound("user not found")
	}
	return user, nil
}

func (f *fakeRepo) GetUserByID(ctx context.Context, id uuid.UUID) (repository.User, error) {
	user, ok := f.usersByID[id]
	if !ok {
		return repository.User{}, apperr.NotFound("user not found")
	}
	return user, nil
}

func (f *fakeRepo) CreateRefreshToken(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) error {
	f.tokens[tokenHash] = storedToken{userID: userID, expiresAt: expiresAt}
	return nil
}

func (f *fakeRepo) GetRefreshToken(ctx context.Context, tokenHash string) (uuid.UUID, time.Time, error) {
	st, ok := f.tokens[tokenHash]
	if !ok {
		return uuid.Nil, time.Time{}, apperr.NotFound("refresh token not found")
	}
	return st.userID, st.expiresAt, nil
}

func (f *fakeRepo) RevokeRefreshToken(ctx context.Context, tokenHash string) error {
	delete(f.tokens, tokenHash)
	return nil
}

func (f *fakeRepo) RevokeAllRefreshTokens(ctx context.Context, userID uuid.UUID) error {
	for hash, st := range f.tokens {
		if st.userID == userID {
			delete(f.tokens, hash)
		}
	}
	return nil
}

type recordingBus struct {
	events []events.Event
}

func (b *recordingBus) Publish(ctx context.Context, event events.Event) {
	b.events = append(b.events, event)
}

func (b *recordingBus) PublishSync(ctx context.Context, event events.Event) error {
	b.Publish(ctx, event)
	return nil
}

func (b *recordingBus) Subscribe(eventName string, handler events.Handler) {}

func newTestService() (*Service, *fakeRepo, *recordingBus) {
	repo := newFakeRepo()
	bus := &recordingBus{}
	return New(repo, stubJWTConfig{}, bus, logger.New("test")), repo, bus
}

func TestSignUp_IssuesTokensAndPublishesEvent(t *testing.T) {
	svc, _, bus := newTestService()

	resp, err := svc.SignUp(context.Background(), transport.SignUpRequest{
		Email:    "  Reader@Example.COM ",
		Password: "correct horse battery",
	})
	if err != nil {
		t.Fatalf("expected signup to succeed, got %v", err)
	}
	if resp.AccessToken == "" || resp.RefreshToken == "" {
		t.Fatalf("expected both tokens, got %+v", resp)
	}

	if len(bus.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(bus.events))
	}
	ev, ok := bus.events[0].(domainevents.UserSignedUp)
	if !ok {
		t.Fatalf("expected a signup event, got %T", bus.events[0])
	}
	if ev.Email != "reader@example.com" {
		t.Fatalf("expected the email normalized, got %q", ev.Email)
	}

	claims := jwt.MapClaims{}
	_, err = jwt.ParseWithClaims(resp.AccessToken, claims, func(tok *jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	if err != nil {
		t.Fatalf("expected a verifiable access token, got %v", err)
	}
	if claims["sub"] != ev.UserID.String() {
		t.Fatalf("expected sub claim %q, got %v", ev.UserID, claims["sub"])
	}
}

func TestSignUp_DuplicateEmailConflicts(t *testing.T) {
	svc, _, _ := newTestService()

	req := transport.SignUpRequest{Email: "reader@example.com", Password: "correct horse battery"}
	if _, err := svc.SignUp(context.Background(), req); err != nil {
		t.Fatalf("expected first signup to succeed, got %v", err)
	}
	if _, err := svc.SignUp(context.Background(), req); !apperr.Is(err, apperr.KindConflict) {
		t.Fatalf("expected conflict on duplicate email, got %v", err)
	}
}

func TestSignIn_UnknownUserAndWrongPasswordLookAlike(t *testing.T) {
	svc, _, _ := newTestService()

	if _, err := svc.SignUp(context.Background(), transport.SignUpRequest{
		Email:    "reader@example.com",
		Password: "correct horse battery",
	}); err != nil {
		t.Fatalf("expected signup to succeed, got %v", err)
	}

	_, unknownErr := svc.SignIn(context.Background(), transport.SignInRequest{
		Email:    "stranger@example.com",
		Password: "whatever",
	})
	_, wrongErr := svc.SignIn(context.Background(), transport.SignInRequest{
		Email:    "reader@example.com",
		Password: "wrong password",
	})

	if !apperr.Is(unknownErr, apperr.KindUnauthorized) || !apperr.Is(wrongErr, apperr.KindUnauthorized) {
		t.Fatalf("expected unauthorized in both cases, got %v and %v", unknownErr, wrongErr)
	}
	if unknownErr.Error() != wrongErr.Error() {
		t.Fatalf("expected indistinguishable failures, got %q vs %q", unknownErr, wrongErr)
	}
}

func TestSignIn_ValidCredentials(t *testing.T) {
	svc, _, _ := newTestService()

	if _, err := svc.SignUp(context.Background(), transport.SignUpRequest{
		Email:    "reader@example.com",
		Password: "correct horse battery",
	}); err != nil {
		t.Fatalf("expected signup to succeed, got %v", err)
	}

	resp, err := svc.SignIn(context.Background(), transport.SignInRequest{
		Email:    "Reader@example.com",
		Password: "correct horse battery",
	})
	if err != nil {
		t.Fatalf("expected signin to succeed, got %v", err)
	}
	if resp.AccessToken == "" || resp.RefreshToken == "" {
		t.Fatalf("expected both tokens, got %+v", resp)
	}
}

func TestRefresh_RotatesSingleUseToken(t *testing.T) {
	svc, _, _ := newTestService()

	signup, err := svc.SignUp(context.Background(), transport.SignUpRequest{
		Email:    "reader@example.com",
		Password: "correct horse battery",
	})
	if err != nil {
		t.Fatalf("expected signup to succeed, got %v", err)
	}

	refreshed, err := svc.Refresh(context.Background(), transport.RefreshRequest{RefreshToken: signup.RefreshToken})
	if err != nil {
		t.Fatalf("expected refresh to succeed, got %v", err)
	}
	if refreshed.RefreshToken == signup.RefreshToken {
		t.Fatalf("expected a rotated refresh token")
	}

	// The presented token was consumed; replaying it must fail.
	if _, err := svc.Refresh(context.Background(), transport.RefreshRequest{RefreshToken: signup.RefreshToken}); !apperr.Is(err, apperr.KindUnauthorized) {
		t.Fatalf("expected replay to be rejected, got %v", err)
	}

	// The rotated token is live.
	if _, err := svc.Refresh(context.Background(), transport.RefreshRequest{RefreshToken: refreshed.RefreshToken}); err != nil {
		t.Fatalf("expected rotated token to refresh, got %v", err)
	}
}

func TestRefresh_ExpiredTokenIsConsumedAndRejected(t *testing.T) {
	svc, repo, _ := newTestService()

	signup, err := svc.SignUp(context.Background(), transport.SignUpRequest{
		Email:    "reader@example.com",
		Password: "correct horse battery",
	})
	if err != nil {
		t.Fatalf("expected signup to succeed, got %v", err)
	}

	for hash, st := range repo.tokens {
		st.expiresAt = time.Now().Add(-time.Minute)
		repo.tokens[hash] = st
	}

	if _, err := svc.Refresh(context.Background(), transport.RefreshRequest{RefreshToken: signup.RefreshToken}); !apperr.Is(err, apperr.KindUnauthorized) {
		t.Fatalf("expected expired token rejected, got %v", err)
	}
	if len(repo.tokens) != 0 {
		t.Fatalf("expected the expired token revoked, got %d stored tokens", len(repo.tokens))
	}
}

func TestSignOut_RevokesToken(t *testing.T) {
	svc, repo, _ := newTestService()

	signup, err := svc.SignUp(context.Background(), transport.SignUpRequest{
		Email:    "reader@example.com",
		Password: "correct horse battery",
	})
	if err != nil {
		t.Fatalf("expected signup to succeed, got %v", err)
	}

	if err := svc.SignOut(context.Background(), transport.SignOutRequest{RefreshToken: signup.RefreshToken}); err != nil {
		t.Fatalf("expected signout to succeed, got %v", err)
	}
	if len(repo.tokens) != 0 {
		t.Fatalf("expected tokens revoked, got %d", len(repo.tokens))
	}
}

func TestMe_ReturnsAccount(t *testing.T) {
	svc, _, bus := newTestService()

	if _, err := svc.SignUp(context.Background(), transport.SignUpRequest{
		Email:    "reader@example.com",
		Password: "correct horse battery",
	}); err != nil {
		t.Fatalf("expected signup to succeed, got %v", err)
	}
	userID := bus.events[0].(domainevents.UserSignedUp).UserID

	me, err := svc.Me(context.Background(), userID)
	if err != nil {
		t.Fatalf("expected me to succeed, got %v", err)
	}
	if me.Email != "reader@example.com" {
		t.Fatalf("expected the account email, got %q", me.Email)
	}

	if _, err := svc.Me(context.Background(), uuid.New()); !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected not found for an unknown id, got %v", err)
	}
}
