package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ananth-NQI/bteam-backend/internal/apperrors"
	"github.com/Ananth-NQI/bteam-backend/internal/auth"
	"github.com/Ananth-NQI/bteam-backend/internal/config"
	"github.com/Ananth-NQI/bteam-backend/internal/mailer"
	"github.com/Ananth-NQI/bteam-backend/internal/models"
	"github.com/Ananth-NQI/bteam-backend/internal/storage"
)

type recordingMailer struct {
	mu   sync.Mutex
	sent []mailer.Message
	err  error
}

func (r *recordingMailer) Send(_ context.Context, msg mailer.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.sent = append(r.sent, msg)
	return nil
}

func (r *recordingMailer) last() mailer.Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sent[len(r.sent)-1]
}

type recordingWhatsApp struct {
	to   []string
	body []string
}

func (r *recordingWhatsApp) SendWhatsAppMessage(to, message string) error {
	r.to = append(r.to, to)
	r.body = append(r.body, message)
	return nil
}

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newRegistration(t *testing.T) (*RegistrationService, *storage.MemoryStore, *recordingMailer, *fakeClock) {
	t.Helper()
	store := storage.NewMemoryStore()
	m := &recordingMailer{}
	clock := &fakeClock{t: time.Date(2025, 1, 6, 9, 0, 0, 0, time.UTC)}

	svc := NewRegistrationService(store, m, 10*time.Minute, config.MinBcryptCost)
	svc.now = clock.Now
	codes := []string{"111111", "222222", "333333"}
	svc.newCode = func() (string, error) {
		code := codes[0]
		codes = codes[1:]
		return code, nil
	}
	return svc, store, m, clock
}

func registrationFor(email, code string) RegistrationRequest {
	return RegistrationRequest{
		Email:        email,
		OTP:          code,
		Name:         "New Person",
		Password:     "s3cret-pass",
		Designation:  "Engineer",
		Mobile:       "9999999999",
		EmployeeCode: "BT-100",
		DOJ:          "2025-01-01",
	}
}

func TestRegistration_Scenario(t *testing.T) {
	ctx := context.Background()
	svc, store, m, clock := newRegistration(t)

	require.NoError(t, svc.GenerateOTP(ctx, "new@co.com"))
	assert.Equal(t, []string{"new@co.com"}, m.last().To)
	assert.Contains(t, m.last().Subject, "111111")

	_, err := svc.VerifyOTP(ctx, registrationFor("new@co.com", "000000"))
	assert.ErrorIs(t, err, apperrors.ErrInvalidOTP)
	assert.EqualError(t, err, "Invalid OTP")
	_, err = store.GetUserByEmail(ctx, "new@co.com")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	clock.Advance(10*time.Minute + time.Second)
	_, err = svc.VerifyOTP(ctx, registrationFor("new@co.com", "111111"))
	assert.ErrorIs(t, err, apperrors.ErrOTPExpired)
	assert.EqualError(t, err, "OTP Expired")

	require.NoError(t, svc.GenerateOTP(ctx, "new@co.com"))
	user, err := svc.VerifyOTP(ctx, registrationFor("new@co.com", "222222"))
	require.NoError(t, err)
	assert.Equal(t, models.RoleEmployee, user.Role)

	stored, err := store.GetUserByEmail(ctx, "new@co.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, stored.ID)
	assert.True(t, auth.CheckPassword(stored.PasswordHash, "s3cret-pass"))
	require.NotNil(t, stored.DOJ)
	assert.Equal(t, "2025-01-01", stored.DOJ.Format(models.DateLayout))
	assert.False(t, store.HasVerificationToken("new@co.com"))

	_, err = svc.VerifyOTP(ctx, registrationFor("new@co.com", "222222"))
	assert.ErrorIs(t, err, apperrors.ErrInvalidOTP)
}

func TestRegistration_ExpiryBoundaryIsInclusive(t *testing.T) {
	ctx := context.Background()
	svc, _, _, clock := newRegistration(t)

	require.NoError(t, svc.GenerateOTP(ctx, "edge@co.com"))
	clock.Advance(10 * time.Minute)

	_, err := svc.VerifyOTP(ctx, registrationFor("edge@co.com", "111111"))
	assert.NoError(t, err)
}

func TestRegistration_RegenerateSupersedesOldCode(t *testing.T) {
	ctx := context.Background()
	svc, _, _, _ := newRegistration(t)

	require.NoError(t, svc.GenerateOTP(ctx, "again@co.com"))
	require.NoError(t, svc.GenerateOTP(ctx, "again@co.com"))

	_, err := svc.VerifyOTP(ctx, registrationFor("again@co.com", "111111"))
	assert.ErrorIs(t, err, apperrors.ErrInvalidOTP)

	_, err = svc.VerifyOTP(ctx, registrationFor("again@co.com", "222222"))
	assert.NoError(t, err)
}

func TestRegistration_GenerateForExistingUser(t *testing.T) {
	ctx := context.Background()
	svc, store, m, _ := newRegistration(t)
	require.NoError(t, store.CreateUser(ctx, &models.User{Name: "Old", Email: "old@co.com"}))

	err := svc.GenerateOTP(ctx, " OLD@co.com ")
	assert.ErrorIs(t, err, apperrors.ErrAlreadyRegistered)
	assert.EqualError(t, err, "User already registered")
	assert.False(t, store.HasVerificationToken("old@co.com"))
	assert.Empty(t, m.sent)
}

func TestRegistration_Validation(t *testing.T) {
	ctx := context.Background()
	svc, _, _, _ := newRegistration(t)

	assert.ErrorIs(t, svc.GenerateOTP(ctx, "  "), apperrors.ErrValidation)

	_, err := svc.VerifyOTP(ctx, RegistrationRequest{Email: "x@co.com"})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.EqualError(t, err, "Missing data")

	require.NoError(t, svc.GenerateOTP(ctx, "x@co.com"))
	req := registrationFor("x@co.com", "111111")
	req.Password = ""
	_, err = svc.VerifyOTP(ctx, req)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestRegistration_PasswordTooLongKeepsToken(t *testing.T) {
	ctx := context.Background()
	svc, store, _, _ := newRegistration(t)

	require.NoError(t, svc.GenerateOTP(ctx, "long@co.com"))
	req := registrationFor("long@co.com", "111111")
	req.Password = strings.Repeat("x", 80)

	_, err := svc.VerifyOTP(ctx, req)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.EqualError(t, err, "Password must be at most 72 bytes")

	_, err = store.GetUserByEmail(ctx, "long@co.com")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.True(t, store.HasVerificationToken("long@co.com"))

	req.Password = strings.Repeat("x", auth.MaxPasswordBytes)
	user, err := svc.VerifyOTP(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, "long@co.com", user.Email)
}

func TestRegistration_EmailFailure(t *testing.T) {
	ctx := context.Background()
	svc, _, m, _ := newRegistration(t)
	m.err = errors.New("smtp down")

	err := svc.GenerateOTP(ctx, "x@co.com")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, apperrors.ErrValidation)
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	hash, err := auth.HashPassword("pw-123456", config.MinBcryptCost)
	require.NoError(t, err)
	require.NoError(t, store.CreateUser(ctx, &models.User{Name: "Ana", Email: "ana@co.com", PasswordHash: hash, Role: models.RoleAdmin}))

	issuer := auth.NewTokenIssuer("test-secret", time.Hour)
	svc := NewAuthService(store, issuer)

	token, user, err := svc.Login(ctx, "ANA@co.com", "pw-123456")
	require.NoError(t, err)
	assert.Equal(t, "ana@co.com", user.Email)

	id, err := issuer.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, id.UserID)
	assert.True(t, id.IsAdmin())

	_, _, err = svc.Login(ctx, "ana@co.com", "wrong")
	assert.EqualError(t, err, "Invalid email or password")
	_, _, err = svc.Login(ctx, "nobody@co.com", "pw-123456")
	assert.EqualError(t, err, "Invalid email or password")
}

func newTicketService(t *testing.T) (*TicketService, *storage.MemoryStore, *recordingMailer, *recordingWhatsApp, *models.User) {
	t.Helper()
	store := storage.NewMemoryStore()
	m := &recordingMailer{}
	wa := &recordingWhatsApp{}
	owner := &models.User{Name: "Sam", Email: "sam@co.com", Whatsapp: "+919999999999"}
	require.NoError(t, store.CreateUser(context.Background(), owner))

	notifier := NewNotifier(m, wa, config.DefaultRecipients(), "https://app.example.com")
	return NewTicketService(store, notifier), store, m, wa, owner
}

func TestTicketService_SubmitRoutesITCategory(t *testing.T) {
	ctx := context.Background()
	svc, _, m, _, owner := newTicketService(t)

	ticket, err := svc.Submit(ctx, IdentityOf(owner), TicketInput{Subject: "Laptop", Category: "IT", Description: "Broken screen"})
	require.NoError(t, err)
	assert.Equal(t, owner.ID, ticket.UserID)
	assert.Equal(t, models.TicketStatusOpen, ticket.Status)

	require.Len(t, m.sent, 1)
	assert.Equal(t, []string{"erp@bullows.com", "prwaghulade@bullows.com"}, m.last().To)
	assert.NotEqual(t, config.DefaultRecipients()["Other"], m.last().To)
}

func TestTicketService_NotificationFailureDoesNotFailSubmit(t *testing.T) {
	ctx := context.Background()
	svc, store, m, _, owner := newTicketService(t)
	m.err = errors.New("provider down")

	ticket, err := svc.Submit(ctx, IdentityOf(owner), TicketInput{Subject: "Leave", Category: "HR", Description: "Balance wrong"})
	require.NoError(t, err)

	mine, err := store.GetTicketsByUser(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, ticket.ID, mine[0].ID)
}

func TestTicketService_SubmitValidation(t *testing.T) {
	ctx := context.Background()
	svc, _, _, _, owner := newTicketService(t)

	_, err := svc.Submit(ctx, IdentityOf(owner), TicketInput{Subject: "x", Category: "Travel", Description: "y"})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = svc.Submit(ctx, IdentityOf(owner), TicketInput{Category: "IT"})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestTicketService_SetStatus(t *testing.T) {
	ctx := context.Background()
	svc, _, _, wa, owner := newTicketService(t)
	ticket, err := svc.Submit(ctx, IdentityOf(owner), TicketInput{Subject: "Payslip", Category: "Payroll", Description: "Missing"})
	require.NoError(t, err)

	_, err = svc.SetStatus(ctx, ticket.ID, "Done")
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	for _, status := range []string{models.TicketStatusClosed, models.TicketStatusClosed, models.TicketStatusOpen} {
		detail, err := svc.SetStatus(ctx, ticket.ID, status)
		require.NoError(t, err)
		assert.Equal(t, status, detail.Status)
		assert.Equal(t, "Sam", detail.UserName)
	}
	assert.Len(t, wa.to, 3)
	assert.Equal(t, "+919999999999", wa.to[0])

	_, err = svc.SetStatus(ctx, "missing", models.TicketStatusOpen)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestNotifier_RecipientsFor(t *testing.T) {
	n := NewNotifier(&recordingMailer{}, nil, config.DefaultRecipients(), "")
	other := config.DefaultRecipients()["Other"]

	assert.Equal(t, other, n.RecipientsFor("HR"))
	assert.Equal(t, other, n.RecipientsFor("Admin"))
	assert.Equal(t, other, n.RecipientsFor("Unknown"))
	assert.Equal(t, []string{"rnnile@bullows.com", "prwaghulade@bullows.com"}, n.RecipientsFor("Payroll"))

	assert.NoError(t, n.TicketStatusChanged(context.Background(), &models.TicketDetail{}, "+91"))
}

func TestDirectoryService(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	svc := NewDirectoryService(store, config.MinBcryptCost)

	name, email := "Zed", "Zed@Co.com"
	created, err := svc.Create(ctx, EmployeeInput{Name: &name, Email: &email})
	require.NoError(t, err)
	assert.Equal(t, "zed@co.com", created.Email)
	assert.Equal(t, models.RoleEmployee, created.Role)
	assert.NotEmpty(t, created.PasswordHash)

	_, err = svc.Create(ctx, EmployeeInput{Name: &name, Email: &email})
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	badRole := "owner"
	_, err = svc.Update(ctx, created.ID, EmployeeInput{Role: &badRole})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	dept, dob := "Finance", "1990-05-17"
	updated, err := svc.Update(ctx, created.ID, EmployeeInput{Department: &dept, DOB: &dob})
	require.NoError(t, err)
	assert.Equal(t, "Finance", updated.Department)
	assert.Equal(t, "Zed", updated.Name)
	require.NotNil(t, updated.DOB)

	_, err = svc.Update(ctx, "missing", EmployeeInput{Department: &dept})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	admin := models.RoleAdmin
	mobile := "12345"
	profile, err := svc.UpdateProfile(ctx, created.ID, EmployeeInput{Mobile: &mobile, Role: &admin})
	require.NoError(t, err)
	assert.Equal(t, "12345", profile.Mobile)
	assert.Equal(t, models.RoleEmployee, profile.Role)

	longName, longEmail, longPassword := "Long", "long@co.com", strings.Repeat("x", 80)
	_, err = svc.Create(ctx, EmployeeInput{Name: &longName, Email: &longEmail, Password: &longPassword})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	_, err = store.GetUserByEmail(ctx, longEmail)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	require.NoError(t, svc.Delete(ctx, created.ID))
	require.NoError(t, svc.Delete(ctx, created.ID))
	_, err = svc.Get(ctx, created.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
