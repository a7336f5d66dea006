package booking

import (
	"testing"
	"time"

	"pawhub/config"
	"pawhub/models"
	"pawhub/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

// memBookingRepo keeps bookings in memory and emulates the conditional status
// update the confirmation paths rely on.
type memBookingRepo struct {
	bookings map[string]*models.Booking
}

func newMemBookingRepo(bookings ...*models.Booking) *memBookingRepo {
	repo := &memBookingRepo{bookings: map[string]*models.Booking{}}
	for _, b := range bookings {
		repo.bookings[b.ID] = b
	}
	return repo
}

func (r *memBookingRepo) GetByID(id string) (*models.Booking, error) {
	if b, ok := r.bookings[id]; ok {
		copied := *b
		return &copied, nil
	}
	return nil, nil
}

func (r *memBookingRepo) GetByReferenceCode(code string) (*models.Booking, error) {
	for _, b := range r.bookings {
		if b.ReferenceCode == code {
			copied := *b
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *memBookingRepo) Create(b *models.Booking) error {
	copied := *b
	r.bookings[b.ID] = &copied
	return nil
}

func (r *memBookingRepo) Update(b *models.Booking) error {
	copied := *b
	r.bookings[b.ID] = &copied
	return nil
}

func (r *memBookingRepo) UpdateStatusIf(id string, fromStatuses []string, set bson.M) (bool, error) {
	b, ok := r.bookings[id]
	if !ok {
		return false, nil
	}
	matched := false
	for _, s := range fromStatuses {
		if b.Status == s {
			matched = true
			break
		}
	}
	if !matched {
		return false, nil
	}
	if v, ok := set["status"].(string); ok {
		b.Status = v
	}
	if v, ok := set["confirmation_method"].(string); ok {
		b.ConfirmationMethod = v
	}
	if v, ok := set["cancellation_reason"].(string); ok {
		b.CancellationReason = v
	}
	if v, ok := set["pro_confirmed_at"].(time.Time); ok {
		b.ProConfirmedAt = &v
	}
	if v, ok := set["client_confirmed_at"].(time.Time); ok {
		b.ClientConfirmedAt = &v
	}
	if v, ok := set["grace_period_ends_at"].(time.Time); ok {
		b.GracePeriodEndsAt = &v
	}
	return true, nil
}

func (r *memBookingRepo) ListByClient(userID, status string, limit int64) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range r.bookings {
		if b.UserID == userID && (status == "" || b.Status == status) {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *memBookingRepo) ListByProvider(providerID, status string, limit int64) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range r.bookings {
		if b.ProviderID == providerID && (status == "" || b.Status == status) {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *memBookingRepo) ListByProviderBetween(providerID, from, to string) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range r.bookings {
		if b.ProviderID == providerID && b.ScheduledAt >= from && b.ScheduledAt < to {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *memBookingRepo) ListByClientBetween(userID, from, to string) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range r.bookings {
		if b.UserID == userID && b.ScheduledAt >= from && b.ScheduledAt < to {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *memBookingRepo) FindActiveForPet(providerID, petID string) (*models.Booking, error) {
	for _, b := range r.bookings {
		if b.ProviderID != providerID || !b.Confirmable() {
			continue
		}
		for _, id := range b.PetIDs {
			if id == petID {
				copied := *b
				return &copied, nil
			}
		}
	}
	return nil, nil
}

func (r *memBookingRepo) ListByStatusScheduledBefore(status, cutoff string) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range r.bookings {
		if b.Status == status && b.ScheduledAt < cutoff {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *memBookingRepo) ListGraceExpired(now time.Time) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range r.bookings {
		if b.Status == models.BookingAwaitingConfirm && b.GracePeriodEndsAt != nil && b.GracePeriodEndsAt.Before(now) {
			out = append(out, *b)
		}
	}
	return out, nil
}

// memProviderRepo holds providers and their catalogs.
type memProviderRepo struct {
	providers map[string]*models.ProviderProfile
	services  map[string]*models.Service
}

func newMemProviderRepo(providers []*models.ProviderProfile, services []*models.Service) *memProviderRepo {
	r := &memProviderRepo{providers: map[string]*models.ProviderProfile{}, services: map[string]*models.Service{}}
	for _, p := range providers {
		r.providers[p.ID] = p
	}
	for _, s := range services {
		r.services[s.ID] = s
	}
	return r
}

func (r *memProviderRepo) GetByID(id string) (*models.ProviderProfile, error) {
	return r.providers[id], nil
}

func (r *memProviderRepo) GetByUserID(userID string) (*models.ProviderProfile, error) {
	for _, p := range r.providers {
		if p.UserID == userID {
			return p, nil
		}
	}
	return nil, nil
}

func (r *memProviderRepo) Create(p *models.ProviderProfile) error        { return nil }
func (r *memProviderRepo) Update(p *models.ProviderProfile) error        { return nil }
func (r *memProviderRepo) UpdateSetDocument(id string, doc bson.M) error { return nil }

func (r *memProviderRepo) List(filter models.ProviderListFilter) ([]models.ProviderProfile, int64, error) {
	return nil, 0, nil
}

func (r *memProviderRepo) ListByKind(k models.ProviderKind) ([]models.ProviderProfile, error) {
	return nil, nil
}

func (r *memProviderRepo) GetService(id string) (*models.Service, error) {
	return r.services[id], nil
}

func (r *memProviderRepo) ListServices(pid string) ([]models.Service, error) { return nil, nil }
func (r *memProviderRepo) CreateService(s *models.Service) error             { return nil }
func (r *memProviderRepo) UpdateService(s *models.Service) error             { return nil }
func (r *memProviderRepo) DeleteService(id string) error                     { return nil }

// memUserRepo keeps users in memory and applies $set patches for the trust
// graduation path.
type memUserRepo struct {
	users map[string]*models.User
}

func newMemUserRepo(users ...*models.User) *memUserRepo {
	r := &memUserRepo{users: map[string]*models.User{}}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *memUserRepo) GetByID(id string) (*models.User, error)       { return r.users[id], nil }
func (r *memUserRepo) GetByEmail(email string) (*models.User, error) { return nil, nil }
func (r *memUserRepo) Create(u *models.User) error                   { return nil }
func (r *memUserRepo) Update(u *models.User) error                   { return nil }
func (r *memUserRepo) Delete(id string) error                        { return nil }

func (r *memUserRepo) List(filter models.UserListFilter) ([]models.User, int64, error) {
	return nil, 0, nil
}

func (r *memUserRepo) UpdateSetDocument(id string, doc bson.M) error {
	u, ok := r.users[id]
	if !ok {
		return nil
	}
	if v, ok := doc["trust_status"].(string); ok {
		u.TrustStatus = v
	}
	if _, ok := doc["suspended_until"]; ok {
		u.SuspendedUntil = nil
	}
	return nil
}

func (r *memUserRepo) CountByRole(role string) (int64, error) { return 0, nil }

type memPetRepo struct {
	pets map[string]*models.Pet
}

func newMemPetRepo(pets ...*models.Pet) *memPetRepo {
	r := &memPetRepo{pets: map[string]*models.Pet{}}
	for _, p := range pets {
		r.pets[p.ID] = p
	}
	return r
}

func (r *memPetRepo) GetByID(id string) (*models.Pet, error)           { return r.pets[id], nil }
func (r *memPetRepo) ListByOwner(ownerID string) ([]models.Pet, error) { return nil, nil }
func (r *memPetRepo) Create(p *models.Pet) error                       { return nil }
func (r *memPetRepo) Update(p *models.Pet) error                       { return nil }
func (r *memPetRepo) Delete(id string) error                           { return nil }

func testFixture() (*DefaultBookingService, *memBookingRepo) {
	config.AppConfig.GraceAfterEndHours = 4
	config.AppConfig.GracePeriodDays = 7

	provider := &models.ProviderProfile{
		ID:       "prov-1",
		UserID:   "pro-user",
		Kind:     models.KindVet,
		Approval: models.ApprovalApproved,
		Commission: models.CommissionConfig{
			VetPerBookingDa: 100,
		},
	}
	service := &models.Service{
		ID:          "svc-1",
		ProviderID:  "prov-1",
		Title:       "Consultation",
		DurationMin: 30,
		PriceDa:     2000,
		Active:      true,
	}
	owner := &models.User{ID: "owner-1", Role: models.RoleUser, TrustStatus: models.TrustNew}
	pet := &models.Pet{ID: "pet-1", OwnerID: "owner-1", Name: "Rex"}

	bookings := newMemBookingRepo()
	svc := &DefaultBookingService{
		Repo:         bookings,
		ProviderRepo: newMemProviderRepo([]*models.ProviderProfile{provider}, []*models.Service{service}),
		UserRepo:     newMemUserRepo(owner),
		PetRepo:      newMemPetRepo(pet),
	}
	return svc, bookings
}

func futureNaive(d time.Duration) string {
	return models.FormatNaive(time.Now().Add(d))
}

func TestCreateBooking_FreezesPriceAndCommission(t *testing.T) {
	svc, _ := testFixture()

	b, err := svc.CreateBooking("owner-1", models.BookingInput{
		ProviderID:  "prov-1",
		ServiceID:   "svc-1",
		PetIDs:      []string{"pet-1"},
		ScheduledAt: futureNaive(48 * time.Hour),
	})
	require.NoError(t, err)

	assert.Equal(t, models.BookingPending, b.Status)
	assert.Equal(t, 2000, b.PriceDa)
	assert.Equal(t, 100, b.CommissionDa)
	assert.Len(t, b.OTPCode, 6)
	assert.Regexp(t, `^BK-[A-Z2-9]{8}$`, b.ReferenceCode)
}

func TestCreateBooking_RejectsPastTime(t *testing.T) {
	svc, _ := testFixture()

	_, err := svc.CreateBooking("owner-1", models.BookingInput{
		ProviderID:  "prov-1",
		ServiceID:   "svc-1",
		ScheduledAt: futureNaive(-time.Hour),
	})
	var svcErr *utils.ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, utils.ErrValidation, svcErr.Kind)
}

func TestCreateBooking_RejectsForeignPet(t *testing.T) {
	svc, _ := testFixture()

	_, err := svc.CreateBooking("owner-1", models.BookingInput{
		ProviderID:  "prov-1",
		ServiceID:   "svc-1",
		PetIDs:      []string{"someone-elses-pet"},
		ScheduledAt: futureNaive(48 * time.Hour),
	})
	var svcErr *utils.ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, utils.ErrValidation, svcErr.Kind)
}

func TestCreateBooking_RestrictedUserBlocked(t *testing.T) {
	svc, _ := testFixture()
	until := time.Now().Add(72 * time.Hour)
	userRepo := svc.UserRepo.(*memUserRepo)
	userRepo.users["owner-1"].TrustStatus = models.TrustRestricted
	userRepo.users["owner-1"].RestrictedUntil = &until

	_, err := svc.CreateBooking("owner-1", models.BookingInput{
		ProviderID:  "prov-1",
		ServiceID:   "svc-1",
		ScheduledAt: futureNaive(48 * time.Hour),
	})
	var svcErr *utils.ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, utils.ErrForbidden, svcErr.Kind)
}

func TestCreateBooking_InactiveService(t *testing.T) {
	svc, _ := testFixture()
	svc.ProviderRepo.(*memProviderRepo).services["svc-1"].Active = false

	_, err := svc.CreateBooking("owner-1", models.BookingInput{
		ProviderID:  "prov-1",
		ServiceID:   "svc-1",
		ScheduledAt: futureNaive(48 * time.Hour),
	})
	var svcErr *utils.ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, utils.ErrInvalidState, svcErr.Kind)
}

func TestConfirmSimple_OnceOnly(t *testing.T) {
	svc, repo := testFixture()
	require.NoError(t, repo.Create(&models.Booking{
		ID:          "bk-1",
		UserID:      "owner-1",
		ProviderID:  "prov-1",
		Status:      models.BookingPending,
		ScheduledAt: futureNaive(time.Hour),
		DurationMin: 30,
	}))

	b, err := svc.ConfirmSimple("pro-user", "bk-1")
	require.NoError(t, err)
	assert.Equal(t, models.BookingConfirmed, b.Status)
	assert.Equal(t, models.ConfirmSimple, b.ConfirmationMethod)
	require.NotNil(t, b.ProConfirmedAt)

	// The second confirmation finds the booking already out of the
	// confirmable statuses.
	_, err = svc.ConfirmSimple("pro-user", "bk-1")
	var svcErr *utils.ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, utils.ErrInvalidState, svcErr.Kind)
}

func TestConfirmSimple_WrongProvider(t *testing.T) {
	svc, repo := testFixture()
	require.NoError(t, repo.Create(&models.Booking{
		ID:         "bk-1",
		UserID:     "owner-1",
		ProviderID: "other-provider",
		Status:     models.BookingPending,
	}))

	_, err := svc.ConfirmSimple("pro-user", "bk-1")
	var svcErr *utils.ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, utils.ErrForbidden, svcErr.Kind)
}

func TestVerifyOTP(t *testing.T) {
	svc, repo := testFixture()
	require.NoError(t, repo.Create(&models.Booking{
		ID:          "bk-1",
		UserID:      "owner-1",
		ProviderID:  "prov-1",
		Status:      models.BookingPending,
		ScheduledAt: futureNaive(time.Hour),
		DurationMin: 30,
		OTPCode:     "123456",
	}))

	// A wrong code leaves the booking untouched.
	_, err := svc.VerifyOTP("pro-user", "bk-1", "654321")
	var svcErr *utils.ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, utils.ErrValidation, svcErr.Kind)
	stored, _ := repo.GetByID("bk-1")
	assert.Equal(t, models.BookingPending, stored.Status)

	// An empty code never matches.
	_, err = svc.VerifyOTP("pro-user", "bk-1", "")
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, utils.ErrValidation, svcErr.Kind)

	b, err := svc.VerifyOTP("pro-user", "bk-1", "123456")
	require.NoError(t, err)
	assert.Equal(t, models.BookingConfirmed, b.Status)
	assert.Equal(t, models.ConfirmOTP, b.ConfirmationMethod)

	// The code only works once.
	_, err = svc.VerifyOTP("pro-user", "bk-1", "123456")
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, utils.ErrInvalidState, svcErr.Kind)
}

func TestConfirmByReferenceCode(t *testing.T) {
	svc, repo := testFixture()
	require.NoError(t, repo.Create(&models.Booking{
		ID:            "bk-1",
		ReferenceCode: "BK-7KQ2M9XC",
		UserID:        "owner-1",
		ProviderID:    "prov-1",
		Status:        models.BookingPending,
	}))

	b, err := svc.ConfirmByReferenceCode("pro-user", "BK-7KQ2M9XC")
	require.NoError(t, err)
	assert.Equal(t, models.BookingConfirmed, b.Status)

	_, err = svc.ConfirmByReferenceCode("pro-user", "BK-NOPENOPE")
	var svcErr *utils.ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, utils.ErrNotFound, svcErr.Kind)
}

func TestConfirmByPetToken_InsideWindow(t *testing.T) {
	svc, repo := testFixture()
	require.NoError(t, repo.Create(&models.Booking{
		ID:          "bk-1",
		UserID:      "owner-1",
		ProviderID:  "prov-1",
		PetIDs:      []string{"pet-1"},
		Status:      models.BookingPending,
		ScheduledAt: futureNaive(30 * time.Minute),
		DurationMin: 30,
	}))

	token, err := utils.GeneratePetToken("pet-1", "owner-1")
	require.NoError(t, err)

	b, err := svc.ConfirmByPetToken("pro-user", token)
	require.NoError(t, err)
	assert.Equal(t, models.BookingConfirmed, b.Status)
	assert.Equal(t, models.ConfirmQRScan, b.ConfirmationMethod)
}

func TestConfirmByPetToken_OutsideWindow(t *testing.T) {
	svc, repo := testFixture()
	// Scheduled days away: the collar tag resolves the booking but the scan
	// does not count yet.
	require.NoError(t, repo.Create(&models.Booking{
		ID:          "bk-1",
		UserID:      "owner-1",
		ProviderID:  "prov-1",
		PetIDs:      []string{"pet-1"},
		Status:      models.BookingPending,
		ScheduledAt: futureNaive(72 * time.Hour),
		DurationMin: 30,
	}))

	token, err := utils.GeneratePetToken("pet-1", "owner-1")
	require.NoError(t, err)

	_, err = svc.ConfirmByPetToken("pro-user", token)
	var svcErr *utils.ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, utils.ErrInvalidState, svcErr.Kind)
}

func TestConfirmByPetToken_BadToken(t *testing.T) {
	svc, _ := testFixture()
	_, err := svc.ConfirmByPetToken("pro-user", "not-a-token")
	var svcErr *utils.ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, utils.ErrValidation, svcErr.Kind)
}

func TestCancelBooking(t *testing.T) {
	svc, repo := testFixture()
	require.NoError(t, repo.Create(&models.Booking{
		ID:         "bk-1",
		UserID:     "owner-1",
		ProviderID: "prov-1",
		Status:     models.BookingConfirmed,
	}))

	require.NoError(t, svc.CancelBooking("owner-1", "bk-1", "can't make it"))
	b, _ := repo.GetByID("bk-1")
	assert.Equal(t, models.BookingCancelled, b.Status)
	assert.Equal(t, "can't make it", b.CancellationReason)

	// Terminal statuses never move again.
	err := svc.CancelBooking("owner-1", "bk-1", "twice")
	var svcErr *utils.ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, utils.ErrInvalidState, svcErr.Kind)
}

func TestCancelBooking_CompletedIsTerminal(t *testing.T) {
	svc, repo := testFixture()
	require.NoError(t, repo.Create(&models.Booking{
		ID:         "bk-1",
		UserID:     "owner-1",
		ProviderID: "prov-1",
		Status:     models.BookingCompleted,
	}))

	err := svc.CancelBooking("owner-1", "bk-1", "")
	var svcErr *utils.ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, utils.ErrInvalidState, svcErr.Kind)
}

func TestCompleteByPro(t *testing.T) {
	svc, repo := testFixture()
	require.NoError(t, repo.Create(&models.Booking{
		ID:         "bk-1",
		UserID:     "owner-1",
		ProviderID: "prov-1",
		Status:     models.BookingConfirmed,
	}))

	b, err := svc.CompleteByPro("pro-user", "bk-1")
	require.NoError(t, err)
	assert.Equal(t, models.BookingCompleted, b.Status)
	require.NotNil(t, b.ProConfirmedAt)
	assert.Nil(t, b.ClientConfirmedAt)

	// A PENDING booking cannot jump straight to COMPLETED.
	require.NoError(t, repo.Create(&models.Booking{
		ID:         "bk-2",
		UserID:     "owner-1",
		ProviderID: "prov-1",
		Status:     models.BookingPending,
	}))
	_, err = svc.CompleteByPro("pro-user", "bk-2")
	var svcErr *utils.ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, utils.ErrInvalidState, svcErr.Kind)
}

func TestConfirmCompletionByClient_GraduatesTrust(t *testing.T) {
	svc, repo := testFixture()
	require.NoError(t, repo.Create(&models.Booking{
		ID:         "bk-1",
		UserID:     "owner-1",
		ProviderID: "prov-1",
		Status:     models.BookingConfirmed,
	}))

	b, err := svc.ConfirmCompletionByClient("owner-1", "bk-1")
	require.NoError(t, err)
	assert.Equal(t, models.BookingCompleted, b.Status)
	require.NotNil(t, b.ClientConfirmedAt)

	usr, _ := svc.UserRepo.GetByID("owner-1")
	assert.Equal(t, models.TrustVerified, usr.TrustStatus)
}

func TestConfirmCompletionByClient_WrongUser(t *testing.T) {
	svc, repo := testFixture()
	require.NoError(t, repo.Create(&models.Booking{
		ID:         "bk-1",
		UserID:     "owner-1",
		ProviderID: "prov-1",
		Status:     models.BookingConfirmed,
	}))

	_, err := svc.ConfirmCompletionByClient("intruder", "bk-1")
	var svcErr *utils.ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, utils.ErrForbidden, svcErr.Kind)
}

func TestSweep(t *testing.T) {
	svc, repo := testFixture()
	now := time.Now()

	// Confirmed and long past its end: moves to AWAITING_CONFIRMATION.
	require.NoError(t, repo.Create(&models.Booking{
		ID:          "bk-overdue",
		ProviderID:  "prov-1",
		Status:      models.BookingConfirmed,
		ScheduledAt: models.FormatNaive(now.Add(-24 * time.Hour)),
		DurationMin: 30,
	}))
	// Confirmed but ended only an hour ago: still inside the grace-after-end
	// threshold, untouched.
	require.NoError(t, repo.Create(&models.Booking{
		ID:          "bk-recent",
		ProviderID:  "prov-1",
		Status:      models.BookingConfirmed,
		ScheduledAt: models.FormatNaive(now.Add(-90 * time.Minute)),
		DurationMin: 30,
	}))
	// Awaiting with an expired grace deadline: expires.
	graceOver := now.Add(-time.Hour)
	require.NoError(t, repo.Create(&models.Booking{
		ID:                "bk-stale",
		ProviderID:        "prov-1",
		Status:            models.BookingAwaitingConfirm,
		ScheduledAt:       models.FormatNaive(now.Add(-10 * 24 * time.Hour)),
		DurationMin:       30,
		GracePeriodEndsAt: &graceOver,
	}))

	moved, expired, err := svc.Sweep(now)
	require.NoError(t, err)
	assert.Equal(t, 1, moved)
	assert.Equal(t, 1, expired)

	overdue, _ := repo.GetByID("bk-overdue")
	assert.Equal(t, models.BookingAwaitingConfirm, overdue.Status)
	require.NotNil(t, overdue.GracePeriodEndsAt)

	recent, _ := repo.GetByID("bk-recent")
	assert.Equal(t, models.BookingConfirmed, recent.Status)

	stale, _ := repo.GetByID("bk-stale")
	assert.Equal(t, models.BookingExpired, stale.Status)
}
