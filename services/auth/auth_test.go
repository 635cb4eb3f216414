package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"portfolio/models"
	"portfolio/services/codestore"
	"portfolio/services/credentials"
	"portfolio/testutil"
	"portfolio/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type harness struct {
	svc    *DefaultAuthService
	repo   *testutil.AccountRepo
	codes  *codestore.MemoryStore
	mail   *testutil.Sender
	clock  *testutil.Clock
	tokens *credentials.JWTIssuer

	mu     sync.Mutex
	nextID int
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		repo:  testutil.NewAccountRepo(),
		mail:  &testutil.Sender{},
		clock: testutil.NewClock(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)),
	}
	h.codes = codestore.NewMemoryStore(h.clock.Now)
	tokens, err := credentials.NewJWTIssuer("test-secret", credentials.DefaultTokenTTL, h.clock.Now)
	require.NoError(t, err)
	h.tokens = tokens
	h.svc = &DefaultAuthService{
		Repo:           h.repo,
		Codes:          h.codes,
		Hasher:         credentials.BcryptHasher{Cost: bcrypt.MinCost},
		Tokens:         tokens,
		Notifier:       h.mail,
		VerifyLinkBase: "http://localhost:3000/verify-email",
		Now:            h.clock.Now,
		GenerateCode:   h.generate,
	}
	return h
}

// generate hands out 100001, 100002, ...
func (h *harness) generate() (string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.nextID++
	return fmt.Sprintf("%06d", 100000+h.nextID), nil
}

func (h *harness) pendingCode(t *testing.T, email string) string {
	t.Helper()
	rec, err := h.codes.Get(context.Background(), normalizeEmail(email))
	require.NoError(t, err)
	return rec.Code
}

func (h *harness) register(t *testing.T, name, email, password, device string) string {
	t.Helper()
	err := h.svc.Register(context.Background(), models.RegisterRequest{
		FullName: name, Email: email, Password: password, DeviceID: device,
	})
	require.NoError(t, err)
	return h.pendingCode(t, email)
}

func (h *harness) signUp(t *testing.T, email, device string) *AuthResponse {
	t.Helper()
	code := h.register(t, "Ana", email, "pw123", device)
	resp, err := h.svc.VerifyEmail(context.Background(), email, code)
	require.NoError(t, err)
	return resp
}

func assertKind(t *testing.T, err error, kind utils.ErrorKind) {
	t.Helper()
	require.Error(t, err)
	assert.True(t, utils.IsKind(err, kind), "want %s, got %v", kind, err)
}

func TestGenerateCode(t *testing.T) {
	for i := 0; i < 200; i++ {
		code, err := GenerateCode()
		require.NoError(t, err)
		require.Len(t, code, 6)
		assert.GreaterOrEqual(t, code, "100000")
		assert.LessOrEqual(t, code, "999999")
	}
}

func TestRegister_Validation(t *testing.T) {
	h := newHarness(t)
	cases := []models.RegisterRequest{
		{Email: "a@x.com", Password: "pw", DeviceID: "d"},
		{FullName: "Ana", Password: "pw", DeviceID: "d"},
		{FullName: "Ana", Email: "a@x.com", DeviceID: "d"},
		{FullName: "Ana", Email: "a@x.com", Password: "pw"},
		{FullName: "  ", Email: "a@x.com", Password: "pw", DeviceID: "d"},
	}
	for i, req := range cases {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			assertKind(t, h.svc.Register(context.Background(), req), utils.KindValidation)
		})
	}
	assert.Empty(t, h.mail.Sent())
}

func TestRegister_SendsLinkAndStoresPayload(t *testing.T) {
	h := newHarness(t)
	code := h.register(t, "Ana", " A@X.com ", "pw123", "dev1")
	assert.Equal(t, "100001", code)

	rec, err := h.codes.Get(context.Background(), "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, h.clock.Now().Add(3*time.Minute), rec.ExpiresAt)
	assert.Equal(t, models.RegistrationPayload{FullName: "Ana", Password: "pw123", DeviceID: "dev1"}, rec.Payload)

	sent := h.mail.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "a@x.com", sent[0].To)
	assert.Contains(t, sent[0].Body, "verify-email?code=100001&amp;email=a%40x.com")
	assert.Zero(t, h.repo.Count(), "no account before verification")
}

func TestRegister_Conflicts(t *testing.T) {
	h := newHarness(t)
	h.signUp(t, "a@x.com", "dev1")

	err := h.svc.Register(context.Background(), models.RegisterRequest{FullName: "B", Email: "a@x.com", Password: "pw", DeviceID: "dev2"})
	assertKind(t, err, utils.KindConflict)

	err = h.svc.Register(context.Background(), models.RegisterRequest{FullName: "B", Email: "b@x.com", Password: "pw", DeviceID: "dev1"})
	assertKind(t, err, utils.KindConflict)
	assert.Equal(t, msgDeviceTaken, utils.AsAppError(err).Message)
}

func TestRegister_NotificationFailureKeepsRecord(t *testing.T) {
	h := newHarness(t)
	h.mail.Err = errors.New("smtp down")

	err := h.svc.Register(context.Background(), models.RegisterRequest{FullName: "Ana", Email: "a@x.com", Password: "pw", DeviceID: "d"})
	assertKind(t, err, utils.KindInternal)
	assert.Equal(t, msgSendFailed, utils.AsAppError(err).Message)

	_, err = h.codes.Get(context.Background(), "a@x.com")
	assert.NoError(t, err)
}

func TestVerifyEmail_Scenario(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	code := h.register(t, "Ana", "a@x.com", "pw123", "dev1")

	_, err := h.svc.VerifyEmail(ctx, "a@x.com", "999999")
	assertKind(t, err, utils.KindInvalidCode)
	assert.Equal(t, 1, h.codes.Len(), "record kept after a wrong code")

	resp, err := h.svc.VerifyEmail(ctx, "a@x.com", code)
	require.NoError(t, err)
	assert.Equal(t, "Ana", resp.FullName)
	assert.Equal(t, "dev1", resp.DeviceID)
	assert.Equal(t, 1, h.repo.Count())
	assert.Zero(t, h.codes.Len())

	claims, err := h.tokens.Parse(resp.Token)
	require.NoError(t, err)
	account, err := h.repo.GetByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, account.ID, claims.AccountID)
	assert.NotEqual(t, "pw123", account.PasswordHash)

	_, err = h.svc.VerifyEmail(ctx, "a@x.com", code)
	assertKind(t, err, utils.KindNotFound)
}

func TestVerifyEmail_Expired(t *testing.T) {
	h := newHarness(t)
	code := h.register(t, "Ana", "a@x.com", "pw123", "dev1")

	h.clock.Advance(3*time.Minute + time.Second)
	_, err := h.svc.VerifyEmail(context.Background(), "a@x.com", code)
	assertKind(t, err, utils.KindExpired)
	assert.Zero(t, h.codes.Len())

	_, err = h.svc.VerifyEmail(context.Background(), "a@x.com", code)
	assertKind(t, err, utils.KindNotFound)
	assert.Zero(t, h.repo.Count())
}

func TestVerifyEmail_AtExpiryStillValid(t *testing.T) {
	h := newHarness(t)
	code := h.register(t, "Ana", "a@x.com", "pw123", "dev1")

	h.clock.Advance(3 * time.Minute)
	_, err := h.svc.VerifyEmail(context.Background(), "a@x.com", code)
	assert.NoError(t, err)
}

func TestVerifyEmail_RejectsDeviceChallengeCode(t *testing.T) {
	h := newHarness(t)
	h.signUp(t, "a@x.com", "dev1")

	res, err := h.svc.Login(context.Background(), models.LoginRequest{Email: "a@x.com", Password: "pw123", DeviceID: "dev2"})
	require.NoError(t, err)
	require.True(t, res.Challenge)

	_, err = h.svc.VerifyEmail(context.Background(), "a@x.com", h.pendingCode(t, "a@x.com"))
	assertKind(t, err, utils.KindNotFound)
	assert.Equal(t, 1, h.codes.Len())
}

func TestVerifyEmail_DeviceTakenAfterCodeSent(t *testing.T) {
	h := newHarness(t)
	first := h.register(t, "Ana", "a@x.com", "pw", "shared")
	second := h.register(t, "Bob", "b@x.com", "pw", "shared")

	_, err := h.svc.VerifyEmail(context.Background(), "a@x.com", first)
	require.NoError(t, err)

	_, err = h.svc.VerifyEmail(context.Background(), "b@x.com", second)
	assertKind(t, err, utils.KindConflict)
	assert.Equal(t, 1, h.repo.Count())
}

func TestVerifyEmail_ConcurrentRegistrationsCreateOneAccount(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for _, device := range []string{"devA", "devB"} {
		wg.Add(1)
		go func(device string) {
			defer wg.Done()
			assert.NoError(t, h.svc.Register(ctx, models.RegisterRequest{FullName: "Dup", Email: "dup@x.com", Password: "pw", DeviceID: device}))
		}(device)
	}
	wg.Wait()
	code := h.pendingCode(t, "dup@x.com")

	const callers = 8
	errs := make(chan error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := h.svc.VerifyEmail(ctx, "dup@x.com", code)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	succeeded := 0
	for err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.True(t, utils.IsKind(err, utils.KindConflict) || utils.IsKind(err, utils.KindNotFound), "unexpected error %v", err)
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, h.repo.Count())
}

func TestVerifyEmail_RepositoryConflictIsAuthoritative(t *testing.T) {
	h := newHarness(t)
	code := h.register(t, "Ana", "a@x.com", "pw", "dev1")

	// Simulate a racing writer that slipped past the pre-check.
	h.svc.Repo = &raceRepo{AccountRepo: h.repo}
	_, err := h.svc.VerifyEmail(context.Background(), "a@x.com", code)
	assertKind(t, err, utils.KindConflict)
	assert.Equal(t, msgEmailTaken, utils.AsAppError(err).Message)
}

// raceRepo hides existing accounts from lookups, leaving Create to catch duplicates.
type raceRepo struct {
	*testutil.AccountRepo
}

func (r *raceRepo) GetByEmail(context.Context, string) (*models.Account, error)    { return nil, nil }
func (r *raceRepo) GetByDeviceID(context.Context, string) (*models.Account, error) { return nil, nil }

func (r *raceRepo) Create(ctx context.Context, a *models.Account) error {
	other := *a
	other.ID = "racer"
	other.DeviceID = "racer-device"
	_ = r.AccountRepo.Create(ctx, &other)
	return r.AccountRepo.Create(ctx, a)
}

func TestResendCode(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	old := h.register(t, "Ana", "a@x.com", "pw123", "dev1")

	h.clock.Advance(2 * time.Minute)
	require.NoError(t, h.svc.ResendCode(ctx, "a@x.com"))
	fresh := h.pendingCode(t, "a@x.com")
	assert.NotEqual(t, old, fresh)
	assert.Len(t, h.mail.Sent(), 2)

	_, err := h.svc.VerifyEmail(ctx, "a@x.com", old)
	assertKind(t, err, utils.KindInvalidCode)

	// The fresh code gets its own full window.
	h.clock.Advance(2 * time.Minute)
	resp, err := h.svc.VerifyEmail(ctx, "a@x.com", fresh)
	require.NoError(t, err)
	assert.Equal(t, "Ana", resp.FullName)
	assert.Equal(t, "dev1", resp.DeviceID)
}

func TestResendCode_Errors(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	assertKind(t, h.svc.ResendCode(ctx, ""), utils.KindValidation)
	assertKind(t, h.svc.ResendCode(ctx, "nobody@x.com"), utils.KindNotFound)

	h.signUp(t, "a@x.com", "dev1")
	assertKind(t, h.svc.ResendCode(ctx, "a@x.com"), utils.KindConflict)
}

func TestLogin_SameDevice(t *testing.T) {
	h := newHarness(t)
	h.signUp(t, "a@x.com", "dev1")

	res, err := h.svc.Login(context.Background(), models.LoginRequest{Email: "a@x.com", Password: "pw123", DeviceID: "dev1"})
	require.NoError(t, err)
	assert.False(t, res.Challenge)
	require.NotNil(t, res.Auth)
	assert.NotEmpty(t, res.Auth.Token)
	assert.Zero(t, h.codes.Len())
}

func TestLogin_Errors(t *testing.T) {
	h := newHarness(t)
	h.signUp(t, "a@x.com", "dev1")
	ctx := context.Background()

	_, err := h.svc.Login(ctx, models.LoginRequest{Email: "a@x.com", Password: "pw123"})
	assertKind(t, err, utils.KindValidation)

	_, err = h.svc.Login(ctx, models.LoginRequest{Email: "b@x.com", Password: "pw123", DeviceID: "dev1"})
	assertKind(t, err, utils.KindNotFound)

	_, err = h.svc.Login(ctx, models.LoginRequest{Email: "a@x.com", Password: "wrong", DeviceID: "dev1"})
	assertKind(t, err, utils.KindForbidden)

	_, err = h.svc.Login(ctx, models.LoginRequest{Email: "a@x.com", Password: "wrong", DeviceID: "dev2"})
	assertKind(t, err, utils.KindForbidden)
	assert.Zero(t, h.codes.Len(), "no challenge for a wrong password")
}

func TestLogin_NewDeviceChallenge(t *testing.T) {
	h := newHarness(t)
	h.signUp(t, "a@x.com", "dev1")
	ctx := context.Background()

	res, err := h.svc.Login(ctx, models.LoginRequest{Email: "a@x.com", Password: "pw123", DeviceID: "dev2"})
	require.NoError(t, err)
	assert.True(t, res.Challenge)
	assert.Nil(t, res.Auth)

	sent := h.mail.Sent()
	require.Len(t, sent, 2)
	assert.Equal(t, "Confirm your new device", sent[1].Subject)

	code := h.pendingCode(t, "a@x.com")
	_, err = h.svc.VerifyLoginEmail(ctx, "a@x.com", "000000")
	assertKind(t, err, utils.KindInvalidCode)

	resp, err := h.svc.VerifyLoginEmail(ctx, "a@x.com", code)
	require.NoError(t, err)
	assert.Equal(t, "dev2", resp.DeviceID)
	assert.NotEmpty(t, resp.Token)
	assert.Zero(t, h.codes.Len())

	// The confirmed device is not bound, so the next login is challenged again.
	account, err := h.repo.GetByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, "dev1", account.DeviceID)
	res, err = h.svc.Login(ctx, models.LoginRequest{Email: "a@x.com", Password: "pw123", DeviceID: "dev2"})
	require.NoError(t, err)
	assert.True(t, res.Challenge)

	_, err = h.svc.VerifyLoginEmail(ctx, "a@x.com", code)
	assertKind(t, err, utils.KindInvalidCode)
}

func TestVerifyLoginEmail_Errors(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	_, err := h.svc.VerifyLoginEmail(ctx, "a@x.com", "")
	assertKind(t, err, utils.KindValidation)

	_, err = h.svc.VerifyLoginEmail(ctx, "a@x.com", "123456")
	assertKind(t, err, utils.KindNotFound)

	code := h.register(t, "Ana", "a@x.com", "pw123", "dev1")
	_, err = h.svc.VerifyLoginEmail(ctx, "a@x.com", code)
	assertKind(t, err, utils.KindNotFound)

	_, err = h.svc.VerifyEmail(ctx, "a@x.com", code)
	require.NoError(t, err)
	_, err = h.svc.Login(ctx, models.LoginRequest{Email: "a@x.com", Password: "pw123", DeviceID: "dev2"})
	require.NoError(t, err)
	h.clock.Advance(4 * time.Minute)
	_, err = h.svc.VerifyLoginEmail(ctx, "a@x.com", h.nextCode())
	assertKind(t, err, utils.KindExpired)
}

func (h *harness) nextCode() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return fmt.Sprintf("%06d", 100000+h.nextID)
}

func TestForgotPassword(t *testing.T) {
	h := newHarness(t)
	h.signUp(t, "a@x.com", "dev1")
	ctx := context.Background()

	resp, err := h.svc.ForgotPassword(ctx, models.ForgotPasswordRequest{Email: "a@x.com", NewPassword: "newpw", DeviceID: "dev1"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)

	_, err = h.svc.Login(ctx, models.LoginRequest{Email: "a@x.com", Password: "pw123", DeviceID: "dev1"})
	assertKind(t, err, utils.KindForbidden)
	res, err := h.svc.Login(ctx, models.LoginRequest{Email: "a@x.com", Password: "newpw", DeviceID: "dev1"})
	require.NoError(t, err)
	assert.False(t, res.Challenge)

	_, err = h.svc.ForgotPassword(ctx, models.ForgotPasswordRequest{Email: "b@x.com", NewPassword: "x", DeviceID: "d"})
	assertKind(t, err, utils.KindNotFound)

	_, err = h.svc.ForgotPassword(ctx, models.ForgotPasswordRequest{Email: "a@x.com", NewPassword: "x"})
	assertKind(t, err, utils.KindValidation)
}

func TestRepositoryFailureIsInternal(t *testing.T) {
	h := newHarness(t)
	h.repo.Err = errors.New("mongo unreachable")

	err := h.svc.Register(context.Background(), models.RegisterRequest{FullName: "Ana", Email: "a@x.com", Password: "pw", DeviceID: "d"})
	assertKind(t, err, utils.KindInternal)
	assert.Equal(t, msgInternal, utils.AsAppError(err).Message)
}
