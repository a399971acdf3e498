package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"os"
	"regexp"

	"github.com/google/uuid"

	"github.com/m04kA/QS-AppointmentService/internal/domain"
	"github.com/m04kA/QS-AppointmentService/internal/infra/session"
	userRepo "github.com/m04kA/QS-AppointmentService/internal/infra/storage/user"
	verificationRepo "github.com/m04kA/QS-AppointmentService/internal/infra/storage/verification"
	"github.com/m04kA/QS-AppointmentService/internal/service/auth/models"
)

var nonDigits = regexp.MustCompile(`\D+`)

// Service сервис аутентификации по одноразовым кодам
// Клиенты и администраторы проходят один и тот же OTP-поток,
// админский дополнительно сверяется с whitelist-файлом
type Service struct {
	users         UserRepository
	codes         VerificationRepository
	sessions      SessionStore
	limiter       RateLimiter
	sms           SMSClient
	whitelistFile string
	clock         TimeProvider
	logger        Logger
}

// NewService создает новый экземпляр сервиса аутентификации
func NewService(
	users UserRepository,
	codes VerificationRepository,
	sessions SessionStore,
	limiter RateLimiter,
	sms SMSClient,
	whitelistFile string,
	clock TimeProvider,
	logger Logger,
) *Service {
	return &Service{
		users:         users,
		codes:         codes,
		sessions:      sessions,
		limiter:       limiter,
		sms:           sms,
		whitelistFile: whitelistFile,
		clock:         clock,
		logger:        logger,
	}
}

// StartLogin отправляет код подтверждения на телефон клиента
func (s *Service) StartLogin(ctx context.Context, req *models.StartLoginRequest) error {
	phone := normalizePhone(req.Phone)
	if phone == "" {
		return ErrInvalidPhone
	}

	return s.issueCode(ctx, phone)
}

// VerifyLogin проверяет код и логинит клиента
// При первом входе создаёт пользователя, всегда выдает новую сессию
// и долгоживущий токен доверенного устройства
func (s *Service) VerifyLogin(ctx context.Context, req *models.VerifyLoginRequest) (*models.VerifyResult, error) {
	phone := normalizePhone(req.Phone)
	if phone == "" || req.Code == "" {
		return nil, ErrInvalidPhone
	}

	if err := s.checkCode(ctx, phone, req.Code); err != nil {
		return nil, err
	}

	now := s.clock.Now()

	user, err := s.users.GetByPhone(ctx, phone)
	isNew := false
	switch {
	case err == nil:
		if req.Name != "" && !user.HasName() {
			if err := s.users.UpdateName(ctx, user.ID, req.Name); err != nil {
				s.logger.Error("VerifyLogin: failed to update name for user=%d: %v", user.ID, err)
				return nil, fmt.Errorf("%w: VerifyLogin - update name: %v", ErrInternal, err)
			}
			user.Name = &req.Name
		}
	case errors.Is(err, userRepo.ErrUserNotFound):
		isNew = true
		newUser := &domain.User{Phone: phone, Plan: "free", IsActive: true}
		if req.Name != "" {
			newUser.Name = &req.Name
		}
		user, err = s.users.Create(ctx, newUser)
		if err != nil {
			s.logger.Error("VerifyLogin: failed to create user for phone=%s: %v", phone, err)
			return nil, fmt.Errorf("%w: VerifyLogin - create user: %v", ErrInternal, err)
		}
	default:
		s.logger.Error("VerifyLogin: failed to get user for phone=%s: %v", phone, err)
		return nil, fmt.Errorf("%w: VerifyLogin - get user: %v", ErrInternal, err)
	}

	if err := s.users.UpdateLastLogin(ctx, user.ID, now); err != nil {
		s.logger.Warn("VerifyLogin: failed to update last login for user=%d: %v", user.ID, err)
	}

	deviceToken := uuid.NewString()
	_, err = s.users.CreateTrustedDevice(ctx, &domain.TrustedDevice{
		UserID:    user.ID,
		TokenHash: hashToken(deviceToken),
		ExpiresAt: now.Add(domain.TrustedDeviceAge),
	})
	if err != nil {
		s.logger.Error("VerifyLogin: failed to create trusted device for user=%d: %v", user.ID, err)
		return nil, fmt.Errorf("%w: VerifyLogin - create trusted device: %v", ErrInternal, err)
	}

	sessionToken, err := s.sessions.Create(ctx, &session.Session{
		Kind:   session.KindCustomer,
		UserID: user.ID,
		Phone:  user.Phone,
	})
	if err != nil {
		s.logger.Error("VerifyLogin: failed to create session for user=%d: %v", user.ID, err)
		return nil, fmt.Errorf("%w: VerifyLogin - create session: %v", ErrInternal, err)
	}

	s.logger.Info("VerifyLogin: user=%d logged in (new=%t)", user.ID, isNew)

	return &models.VerifyResult{
		User:         user,
		SessionToken: sessionToken,
		DeviceToken:  deviceToken,
		NeedsName:    isNew && !user.HasName(),
	}, nil
}

// SessionUser возвращает пользователя по токену сессии,
// с fallback на токен доверенного устройства
func (s *Service) SessionUser(ctx context.Context, sessionToken, deviceToken string) (*domain.User, error) {
	if sessionToken != "" {
		sess, err := s.sessions.Get(ctx, sessionToken)
		if err == nil && sess.Kind == session.KindCustomer {
			user, err := s.users.GetByID(ctx, sess.UserID)
			if err == nil {
				return user, nil
			}
			if !errors.Is(err, userRepo.ErrUserNotFound) {
				return nil, fmt.Errorf("%w: SessionUser - get user: %v", ErrInternal, err)
			}
		}
		if err != nil && !errors.Is(err, session.ErrSessionNotFound) {
			return nil, fmt.Errorf("%w: SessionUser - get session: %v", ErrInternal, err)
		}
	}

	if deviceToken == "" {
		return nil, ErrUnauthenticated
	}

	device, err := s.users.GetTrustedDeviceByHash(ctx, hashToken(deviceToken))
	if err != nil {
		if errors.Is(err, userRepo.ErrDeviceNotFound) {
			return nil, ErrUnauthenticated
		}
		return nil, fmt.Errorf("%w: SessionUser - get trusted device: %v", ErrInternal, err)
	}
	if device.IsExpired(s.clock.Now()) {
		return nil, ErrUnauthenticated
	}

	user, err := s.users.GetByID(ctx, device.UserID)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			return nil, ErrUnauthenticated
		}
		return nil, fmt.Errorf("%w: SessionUser - get user by device: %v", ErrInternal, err)
	}

	return user, nil
}

// AdminSession возвращает админскую сессию по токену
func (s *Service) AdminSession(ctx context.Context, sessionToken string) (*session.Session, error) {
	if sessionToken == "" {
		return nil, ErrUnauthenticated
	}

	sess, err := s.sessions.Get(ctx, sessionToken)
	if err != nil {
		if errors.Is(err, session.ErrSessionNotFound) {
			return nil, ErrUnauthenticated
		}
		return nil, fmt.Errorf("%w: AdminSession - get session: %v", ErrInternal, err)
	}
	if !sess.IsAdmin() || len(sess.Slugs) == 0 {
		return nil, ErrUnauthenticated
	}

	return sess, nil
}

// UpdateProfile сохраняет имя пользователя в профиле
func (s *Service) UpdateProfile(ctx context.Context, userID int64, name string) (*domain.User, error) {
	if name == "" {
		return nil, ErrInvalidName
	}

	if err := s.users.UpdateName(ctx, userID, name); err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			return nil, ErrUnauthenticated
		}
		s.logger.Error("UpdateProfile: failed to update name for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: UpdateProfile - update name: %v", ErrInternal, err)
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		s.logger.Error("UpdateProfile: failed to reload user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: UpdateProfile - reload user: %v", ErrInternal, err)
	}

	return user, nil
}

// Logout завершает сессию и отвязывает доверенное устройство
func (s *Service) Logout(ctx context.Context, sessionToken, deviceToken string) error {
	if sessionToken != "" {
		if err := s.sessions.Delete(ctx, sessionToken); err != nil {
			return fmt.Errorf("%w: Logout - delete session: %v", ErrInternal, err)
		}
	}

	if deviceToken != "" {
		err := s.users.DeleteTrustedDevice(ctx, hashToken(deviceToken))
		if err != nil && !errors.Is(err, userRepo.ErrDeviceNotFound) {
			return fmt.Errorf("%w: Logout - delete trusted device: %v", ErrInternal, err)
		}
	}

	return nil
}

// StartAdminLogin отправляет код подтверждения администратору
// Телефон обязан присутствовать в whitelist-файле
func (s *Service) StartAdminLogin(ctx context.Context, req *models.StartLoginRequest) error {
	phone := normalizePhone(req.Phone)
	if phone == "" {
		return ErrInvalidPhone
	}

	allowed, _, err := s.adminSlugs(phone)
	if err != nil {
		return err
	}
	if !allowed {
		s.logger.Warn("StartAdminLogin: phone=%s is not whitelisted", phone)
		return ErrPhoneNotAllowed
	}

	return s.issueCode(ctx, phone)
}

// VerifyAdminLogin проверяет код и открывает админскую сессию
// Whitelist сверяется повторно - права могли отозвать между start и verify
func (s *Service) VerifyAdminLogin(ctx context.Context, req *models.VerifyLoginRequest) (*models.AdminVerifyResult, error) {
	phone := normalizePhone(req.Phone)
	if phone == "" || req.Code == "" {
		return nil, ErrInvalidPhone
	}

	allowed, slugs, err := s.adminSlugs(phone)
	if err != nil {
		return nil, err
	}
	if !allowed || len(slugs) == 0 {
		return nil, ErrPhoneNotAllowed
	}

	if err := s.checkCode(ctx, phone, req.Code); err != nil {
		return nil, err
	}

	token, err := s.sessions.Create(ctx, &session.Session{
		Kind:  session.KindAdmin,
		Phone: phone,
		Slugs: slugs,
	})
	if err != nil {
		s.logger.Error("VerifyAdminLogin: failed to create session for phone=%s: %v", phone, err)
		return nil, fmt.Errorf("%w: VerifyAdminLogin - create session: %v", ErrInternal, err)
	}

	s.logger.Info("VerifyAdminLogin: admin phone=%s logged in, slugs=%v", phone, slugs)

	return &models.AdminVerifyResult{
		Phone:        phone,
		Slugs:        slugs,
		SessionToken: token,
	}, nil
}

// issueCode генерирует, сохраняет и отправляет код подтверждения
func (s *Service) issueCode(ctx context.Context, phone string) error {
	allowed, err := s.limiter.Allow(ctx, phone)
	if err != nil {
		// При недоступном Redis код всё равно выдаём: кулдаун ниже
		// ограничивает частоту и без лимитера
		s.logger.Warn("issueCode: rate limiter unavailable for phone=%s: %v", phone, err)
	} else if !allowed {
		s.logger.Warn("issueCode: rate limit exceeded for phone=%s", phone)
		return ErrRateLimited
	}

	now := s.clock.Now()

	last, err := s.codes.GetLatestByPhone(ctx, phone)
	if err != nil && !errors.Is(err, verificationRepo.ErrVerificationNotFound) {
		s.logger.Error("issueCode: failed to get latest code for phone=%s: %v", phone, err)
		return fmt.Errorf("%w: issueCode - get latest code: %v", ErrInternal, err)
	}
	if last != nil && now.Sub(last.CreatedAt) < domain.OTPResendCooldown {
		return ErrResendCooldown
	}

	code, err := generateOTP()
	if err != nil {
		return fmt.Errorf("%w: issueCode - generate code: %v", ErrInternal, err)
	}

	if err := s.codes.DeleteByPhone(ctx, phone); err != nil {
		s.logger.Error("issueCode: failed to drop old codes for phone=%s: %v", phone, err)
		return fmt.Errorf("%w: issueCode - drop old codes: %v", ErrInternal, err)
	}

	_, err = s.codes.Create(ctx, &domain.PhoneVerification{
		Phone:     phone,
		CodeHash:  hashToken(code),
		Attempts:  domain.OTPAttempts,
		ExpiresAt: now.Add(domain.OTPExpiry),
	})
	if err != nil {
		s.logger.Error("issueCode: failed to store code for phone=%s: %v", phone, err)
		return fmt.Errorf("%w: issueCode - store code: %v", ErrInternal, err)
	}

	if err := s.sms.SendCode(ctx, phone, code); err != nil {
		s.logger.Error("issueCode: failed to deliver code to phone=%s: %v", phone, err)
		return fmt.Errorf("%w: issueCode - deliver code: %v", ErrInternal, err)
	}

	s.logger.Info("issueCode: code issued for phone=%s", phone)
	return nil
}

// checkCode сверяет код, списывая попытку на каждую проверку
func (s *Service) checkCode(ctx context.Context, phone, code string) error {
	v, err := s.codes.GetLatestByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, verificationRepo.ErrVerificationNotFound) {
			return ErrVerificationNotFound
		}
		return fmt.Errorf("%w: checkCode - get latest code: %v", ErrInternal, err)
	}

	now := s.clock.Now()

	if v.IsExpired(now) {
		s.deleteCode(ctx, v.ID)
		return ErrCodeExpired
	}

	if !v.HasAttemptsLeft() {
		s.deleteCode(ctx, v.ID)
		return ErrTooManyAttempts
	}

	attemptsLeft, err := s.codes.DecrementAttempts(ctx, v.ID)
	if err != nil {
		return fmt.Errorf("%w: checkCode - decrement attempts: %v", ErrInternal, err)
	}

	if hashToken(code) != v.CodeHash {
		return &WrongCodeError{AttemptsLeft: attemptsLeft}
	}

	s.deleteCode(ctx, v.ID)
	return nil
}

func (s *Service) deleteCode(ctx context.Context, id int64) {
	if err := s.codes.Delete(ctx, id); err != nil && !errors.Is(err, verificationRepo.ErrVerificationNotFound) {
		s.logger.Warn("deleteCode: failed to delete code id=%d: %v", id, err)
	}
}

// whitelistEntry запись в админском whitelist-файле
type whitelistEntry struct {
	Name  string   `json:"name,omitempty"`
	Slugs []string `json:"slugs"`
}

// adminSlugs сверяет телефон с whitelist-файлом и возвращает доступные бизнесы
func (s *Service) adminSlugs(phone string) (bool, []string, error) {
	raw, err := os.ReadFile(s.whitelistFile)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil, nil
		}
		return false, nil, fmt.Errorf("%w: adminSlugs - read whitelist: %v", ErrInternal, err)
	}

	var wl map[string]whitelistEntry
	if err := json.Unmarshal(raw, &wl); err != nil {
		return false, nil, fmt.Errorf("%w: adminSlugs - parse whitelist: %v", ErrInternal, err)
	}

	rec, ok := wl[phone]
	if !ok {
		return false, nil, nil
	}

	slugs := make([]string, 0, len(rec.Slugs))
	for _, slug := range rec.Slugs {
		if slug != "" {
			slugs = append(slugs, slug)
		}
	}

	return true, slugs, nil
}

// normalizePhone оставляет только цифры и проверяет длину номера
// Возвращает пустую строку для невалидного номера
func normalizePhone(phone string) string {
	digits := nonDigits.ReplaceAllString(phone, "")
	if len(digits) < domain.MinPhoneDigits || len(digits) > domain.MaxPhoneDigits {
		return ""
	}
	return digits
}

// generateOTP возвращает шестизначный код на криптографическом рандоме
func generateOTP() (string, error) {
	max := big.NewInt(1)
	for i := 0; i < domain.OTPLength; i++ {
		max.Mul(max, big.NewInt(10))
	}
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", domain.OTPLength, n), nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
