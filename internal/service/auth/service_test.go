package auth

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/QS-AppointmentService/internal/domain"
	"github.com/m04kA/QS-AppointmentService/internal/infra/session"
	userRepo "github.com/m04kA/QS-AppointmentService/internal/infra/storage/user"
	verificationRepo "github.com/m04kA/QS-AppointmentService/internal/infra/storage/verification"
	"github.com/m04kA/QS-AppointmentService/internal/service/auth/models"
)

// ---- фейки ----

type fakeUsers struct {
	byPhone map[string]*domain.User
	devices map[string]*domain.TrustedDevice
	nextID  int64
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{
		byPhone: map[string]*domain.User{},
		devices: map[string]*domain.TrustedDevice{},
		nextID:  1,
	}
}

func (f *fakeUsers) GetByPhone(_ context.Context, phone string) (*domain.User, error) {
	if u, ok := f.byPhone[phone]; ok {
		return u, nil
	}
	return nil, userRepo.ErrUserNotFound
}

func (f *fakeUsers) GetByID(_ context.Context, id int64) (*domain.User, error) {
	for _, u := range f.byPhone {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, userRepo.ErrUserNotFound
}

func (f *fakeUsers) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	u.ID = f.nextID
	f.nextID++
	f.byPhone[u.Phone] = u
	return u, nil
}

func (f *fakeUsers) UpdateName(_ context.Context, id int64, name string) error {
	for _, u := range f.byPhone {
		if u.ID == id {
			u.Name = &name
			return nil
		}
	}
	return userRepo.ErrUserNotFound
}

func (f *fakeUsers) UpdateLastLogin(_ context.Context, id int64, at time.Time) error {
	for _, u := range f.byPhone {
		if u.ID == id {
			u.LastLogin = &at
			return nil
		}
	}
	return userRepo.ErrUserNotFound
}

func (f *fakeUsers) CreateTrustedDevice(_ context.Context, d *domain.TrustedDevice) (*domain.TrustedDevice, error) {
	d.ID = f.nextID
	f.nextID++
	f.devices[d.TokenHash] = d
	return d, nil
}

func (f *fakeUsers) GetTrustedDeviceByHash(_ context.Context, hash string) (*domain.TrustedDevice, error) {
	if d, ok := f.devices[hash]; ok {
		return d, nil
	}
	return nil, userRepo.ErrDeviceNotFound
}

func (f *fakeUsers) DeleteTrustedDevice(_ context.Context, hash string) error {
	if _, ok := f.devices[hash]; !ok {
		return userRepo.ErrDeviceNotFound
	}
	delete(f.devices, hash)
	return nil
}

type fakeCodes struct {
	byPhone map[string]*domain.PhoneVerification
	nextID  int64
}

func newFakeCodes() *fakeCodes {
	return &fakeCodes{byPhone: map[string]*domain.PhoneVerification{}, nextID: 1}
}

func (f *fakeCodes) Create(_ context.Context, v *domain.PhoneVerification) (*domain.PhoneVerification, error) {
	v.ID = f.nextID
	f.nextID++
	if v.CreatedAt.IsZero() {
		v.CreatedAt = time.Now()
	}
	f.byPhone[v.Phone] = v
	return v, nil
}

func (f *fakeCodes) GetLatestByPhone(_ context.Context, phone string) (*domain.PhoneVerification, error) {
	if v, ok := f.byPhone[phone]; ok {
		return v, nil
	}
	return nil, verificationRepo.ErrVerificationNotFound
}

func (f *fakeCodes) DecrementAttempts(_ context.Context, id int64) (int, error) {
	for _, v := range f.byPhone {
		if v.ID == id {
			v.Attempts--
			return v.Attempts, nil
		}
	}
	return 0, verificationRepo.ErrVerificationNotFound
}

func (f *fakeCodes) Delete(_ context.Context, id int64) error {
	for phone, v := range f.byPhone {
		if v.ID == id {
			delete(f.byPhone, phone)
			return nil
		}
	}
	return verificationRepo.ErrVerificationNotFound
}

func (f *fakeCodes) DeleteByPhone(_ context.Context, phone string) error {
	delete(f.byPhone, phone)
	return nil
}

type fakeSessions struct {
	data map[string]*session.Session
	next int
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{data: map[string]*session.Session{}}
}

func (f *fakeSessions) Create(_ context.Context, s *session.Session) (string, error) {
	f.next++
	token := "tok-" + string(rune('a'+f.next))
	f.data[token] = s
	return token, nil
}

func (f *fakeSessions) Get(_ context.Context, token string) (*session.Session, error) {
	if s, ok := f.data[token]; ok {
		return s, nil
	}
	return nil, session.ErrSessionNotFound
}

func (f *fakeSessions) Delete(_ context.Context, token string) error {
	delete(f.data, token)
	return nil
}

type fakeLimiter struct{ allow bool }

func (f fakeLimiter) Allow(context.Context, string) (bool, error) { return f.allow, nil }

type fakeSMS struct {
	sentTo   []string
	lastCode string
}

func (f *fakeSMS) SendCode(_ context.Context, phone, code string) error {
	f.sentTo = append(f.sentTo, phone)
	f.lastCode = code
	return nil
}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// ---- сборка ----

type env struct {
	svc      *Service
	users    *fakeUsers
	codes    *fakeCodes
	sessions *fakeSessions
	sms      *fakeSMS
	now      time.Time
}

func newEnv(t *testing.T, whitelist string) *env {
	t.Helper()

	path := filepath.Join(t.TempDir(), "admin_whitelist.json")
	if whitelist == "" {
		whitelist = `{}`
	}
	require.NoError(t, os.WriteFile(path, []byte(whitelist), 0o600))

	e := &env{
		users:    newFakeUsers(),
		codes:    newFakeCodes(),
		sessions: newFakeSessions(),
		sms:      &fakeSMS{},
		now:      time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC),
	}
	e.svc = NewService(e.users, e.codes, e.sessions, fakeLimiter{allow: true}, e.sms, path, fixedClock{e.now}, nopLogger{})
	return e
}

const testPhone = "0541234567"

// ---- тесты ----

func TestStartLoginInvalidPhone(t *testing.T) {
	e := newEnv(t, "")

	for _, phone := range []string{"", "12345", "1234567890123", "abc"} {
		err := e.svc.StartLogin(context.Background(), &models.StartLoginRequest{Phone: phone})
		assert.ErrorIs(t, err, ErrInvalidPhone, "phone=%q", phone)
	}
}

func TestStartLoginNormalizesPhone(t *testing.T) {
	e := newEnv(t, "")

	err := e.svc.StartLogin(context.Background(), &models.StartLoginRequest{Phone: "+972 54-123-4567"})
	require.NoError(t, err)

	assert.Equal(t, []string{"972541234567"}, e.sms.sentTo)
}

func TestStartLoginStoresHashedCode(t *testing.T) {
	e := newEnv(t, "")

	require.NoError(t, e.svc.StartLogin(context.Background(), &models.StartLoginRequest{Phone: testPhone}))

	v := e.codes.byPhone[testPhone]
	require.NotNil(t, v)
	assert.Len(t, e.sms.lastCode, domain.OTPLength)
	assert.Equal(t, hashToken(e.sms.lastCode), v.CodeHash)
	assert.Equal(t, domain.OTPAttempts, v.Attempts)
	assert.Equal(t, e.now.Add(domain.OTPExpiry), v.ExpiresAt)
}

func TestStartLoginRateLimited(t *testing.T) {
	e := newEnv(t, "")
	e.svc.limiter = fakeLimiter{allow: false}

	err := e.svc.StartLogin(context.Background(), &models.StartLoginRequest{Phone: testPhone})
	assert.ErrorIs(t, err, ErrRateLimited)
	assert.Empty(t, e.sms.sentTo)
}

func TestStartLoginResendCooldown(t *testing.T) {
	e := newEnv(t, "")
	e.codes.byPhone[testPhone] = &domain.PhoneVerification{
		ID:        99,
		Phone:     testPhone,
		CreatedAt: e.now.Add(-time.Minute),
	}

	err := e.svc.StartLogin(context.Background(), &models.StartLoginRequest{Phone: testPhone})
	assert.ErrorIs(t, err, ErrResendCooldown)

	// кулдаун истёк - код выдаётся, старый удаляется
	e.codes.byPhone[testPhone].CreatedAt = e.now.Add(-3 * time.Minute)
	require.NoError(t, e.svc.StartLogin(context.Background(), &models.StartLoginRequest{Phone: testPhone}))
	assert.NotEqual(t, int64(99), e.codes.byPhone[testPhone].ID)
}

func issueCode(t *testing.T, e *env) string {
	t.Helper()
	require.NoError(t, e.svc.StartLogin(context.Background(), &models.StartLoginRequest{Phone: testPhone}))
	return e.sms.lastCode
}

func TestVerifyLoginNoRequest(t *testing.T) {
	e := newEnv(t, "")

	_, err := e.svc.VerifyLogin(context.Background(), &models.VerifyLoginRequest{Phone: testPhone, Code: "123456"})
	assert.ErrorIs(t, err, ErrVerificationNotFound)
}

func TestVerifyLoginWrongCode(t *testing.T) {
	e := newEnv(t, "")
	issueCode(t, e)

	_, err := e.svc.VerifyLogin(context.Background(), &models.VerifyLoginRequest{Phone: testPhone, Code: "000000"})
	require.ErrorIs(t, err, ErrWrongCode)

	var wrong *WrongCodeError
	require.ErrorAs(t, err, &wrong)
	assert.Equal(t, domain.OTPAttempts-1, wrong.AttemptsLeft)
}

func TestVerifyLoginExpiredCode(t *testing.T) {
	e := newEnv(t, "")
	code := issueCode(t, e)
	e.codes.byPhone[testPhone].ExpiresAt = e.now.Add(-time.Minute)

	_, err := e.svc.VerifyLogin(context.Background(), &models.VerifyLoginRequest{Phone: testPhone, Code: code})
	assert.ErrorIs(t, err, ErrCodeExpired)
	assert.NotContains(t, e.codes.byPhone, testPhone)
}

func TestVerifyLoginAttemptsExhausted(t *testing.T) {
	e := newEnv(t, "")
	code := issueCode(t, e)
	e.codes.byPhone[testPhone].Attempts = 0

	_, err := e.svc.VerifyLogin(context.Background(), &models.VerifyLoginRequest{Phone: testPhone, Code: code})
	assert.ErrorIs(t, err, ErrTooManyAttempts)
	assert.NotContains(t, e.codes.byPhone, testPhone)
}

func TestVerifyLoginCreatesUserAndSessions(t *testing.T) {
	e := newEnv(t, "")
	code := issueCode(t, e)

	res, err := e.svc.VerifyLogin(context.Background(), &models.VerifyLoginRequest{
		Phone: testPhone, Code: code, Name: "Дана",
	})
	require.NoError(t, err)

	assert.Equal(t, testPhone, res.User.Phone)
	assert.False(t, res.NeedsName) // имя передано сразу, профиль заполнен
	assert.NotEmpty(t, res.SessionToken)
	assert.NotEmpty(t, res.DeviceToken)

	// код одноразовый
	assert.NotContains(t, e.codes.byPhone, testPhone)

	// в хранилище лежит хэш токена устройства, не сам токен
	device := e.users.devices[hashToken(res.DeviceToken)]
	require.NotNil(t, device)
	assert.Equal(t, e.now.Add(domain.TrustedDeviceAge), device.ExpiresAt)

	sess := e.sessions.data[res.SessionToken]
	require.NotNil(t, sess)
	assert.Equal(t, session.KindCustomer, sess.Kind)
	assert.Equal(t, res.User.ID, sess.UserID)
}

func TestVerifyLoginNewUserWithoutName(t *testing.T) {
	e := newEnv(t, "")
	code := issueCode(t, e)

	res, err := e.svc.VerifyLogin(context.Background(), &models.VerifyLoginRequest{Phone: testPhone, Code: code})
	require.NoError(t, err)

	// новый пользователь без имени - фронт должен спросить имя
	assert.True(t, res.NeedsName)
}

func TestVerifyLoginKeepsExistingName(t *testing.T) {
	e := newEnv(t, "")
	name := "Старое имя"
	e.users.byPhone[testPhone] = &domain.User{ID: 7, Phone: testPhone, Name: &name, IsActive: true}
	code := issueCode(t, e)

	res, err := e.svc.VerifyLogin(context.Background(), &models.VerifyLoginRequest{
		Phone: testPhone, Code: code, Name: "Другое имя",
	})
	require.NoError(t, err)

	// имя при повторном входе не перезаписывается
	assert.Equal(t, name, *res.User.Name)
	assert.False(t, res.NeedsName)
}

func TestSessionUserByDeviceToken(t *testing.T) {
	e := newEnv(t, "")
	code := issueCode(t, e)
	res, err := e.svc.VerifyLogin(context.Background(), &models.VerifyLoginRequest{Phone: testPhone, Code: code, Name: "X"})
	require.NoError(t, err)

	// сессия умерла, устройство живо
	user, err := e.svc.SessionUser(context.Background(), "", res.DeviceToken)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, user.ID)

	// просроченное устройство не логинит
	e.users.devices[hashToken(res.DeviceToken)].ExpiresAt = e.now.Add(-time.Hour)
	_, err = e.svc.SessionUser(context.Background(), "", res.DeviceToken)
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestLogoutDropsSessionAndDevice(t *testing.T) {
	e := newEnv(t, "")
	code := issueCode(t, e)
	res, err := e.svc.VerifyLogin(context.Background(), &models.VerifyLoginRequest{Phone: testPhone, Code: code, Name: "X"})
	require.NoError(t, err)

	require.NoError(t, e.svc.Logout(context.Background(), res.SessionToken, res.DeviceToken))

	assert.NotContains(t, e.sessions.data, res.SessionToken)
	assert.NotContains(t, e.users.devices, hashToken(res.DeviceToken))
}

const testWhitelist = `{
  "0541234567": {"name": "Дана", "slugs": ["barber", "spa"]}
}`

func TestStartAdminLoginNotWhitelisted(t *testing.T) {
	e := newEnv(t, testWhitelist)

	err := e.svc.StartAdminLogin(context.Background(), &models.StartLoginRequest{Phone: "0549999999"})
	assert.ErrorIs(t, err, ErrPhoneNotAllowed)
	assert.Empty(t, e.sms.sentTo)
}

func TestVerifyAdminLogin(t *testing.T) {
	e := newEnv(t, testWhitelist)

	require.NoError(t, e.svc.StartAdminLogin(context.Background(), &models.StartLoginRequest{Phone: testPhone}))

	res, err := e.svc.VerifyAdminLogin(context.Background(), &models.VerifyLoginRequest{
		Phone: testPhone, Code: e.sms.lastCode,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"barber", "spa"}, res.Slugs)

	sess, err := e.svc.AdminSession(context.Background(), res.SessionToken)
	require.NoError(t, err)
	assert.True(t, sess.IsAdmin())
	assert.True(t, sess.CanManage("barber"))
	assert.False(t, sess.CanManage("other"))
}

func TestAdminSessionRejectsCustomerSession(t *testing.T) {
	e := newEnv(t, testWhitelist)
	code := issueCode(t, e)
	res, err := e.svc.VerifyLogin(context.Background(), &models.VerifyLoginRequest{Phone: testPhone, Code: code, Name: "X"})
	require.NoError(t, err)

	_, err = e.svc.AdminSession(context.Background(), res.SessionToken)
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestUpdateProfileSetsName(t *testing.T) {
	e := newEnv(t, "")
	user, err := e.users.Create(context.Background(), &domain.User{Phone: testPhone, Plan: "free", IsActive: true})
	require.NoError(t, err)

	updated, err := e.svc.UpdateProfile(context.Background(), user.ID, "Дана")
	require.NoError(t, err)
	require.NotNil(t, updated.Name)
	assert.Equal(t, "Дана", *updated.Name)
}

func TestUpdateProfileEmptyName(t *testing.T) {
	e := newEnv(t, "")

	_, err := e.svc.UpdateProfile(context.Background(), 1, "")
	assert.ErrorIs(t, err, ErrInvalidName)
}

func TestUpdateProfileUnknownUser(t *testing.T) {
	e := newEnv(t, "")

	_, err := e.svc.UpdateProfile(context.Background(), 99, "Дана")
	assert.ErrorIs(t, err, ErrUnauthenticated)
}
