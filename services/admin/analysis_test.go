package admin

import (
	"testing"
	"time"

	"pawhub/config"
	"pawhub/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

type fakeAnalysisProviderRepo struct {
	providers []models.ProviderProfile
}

func (f *fakeAnalysisProviderRepo) GetByID(id string) (*models.ProviderProfile, error) {
	return nil, nil
}

func (f *fakeAnalysisProviderRepo) GetByUserID(userID string) (*models.ProviderProfile, error) {
	return nil, nil
}

func (f *fakeAnalysisProviderRepo) Create(p *models.ProviderProfile) error        { return nil }
func (f *fakeAnalysisProviderRepo) Update(p *models.ProviderProfile) error        { return nil }
func (f *fakeAnalysisProviderRepo) UpdateSetDocument(id string, doc bson.M) error { return nil }

func (f *fakeAnalysisProviderRepo) List(filter models.ProviderListFilter) ([]models.ProviderProfile, int64, error) {
	return nil, 0, nil
}

func (f *fakeAnalysisProviderRepo) ListByKind(kind models.ProviderKind) ([]models.ProviderProfile, error) {
	var out []models.ProviderProfile
	for _, p := range f.providers {
		if p.Kind == kind {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeAnalysisProviderRepo) GetService(id string) (*models.Service, error) { return nil, nil }

func (f *fakeAnalysisProviderRepo) ListServices(pid string) ([]models.Service, error) {
	return nil, nil
}

func (f *fakeAnalysisProviderRepo) CreateService(s *models.Service) error { return nil }
func (f *fakeAnalysisProviderRepo) UpdateService(s *models.Service) error { return nil }
func (f *fakeAnalysisProviderRepo) DeleteService(id string) error         { return nil }

type fakeAnalysisBookingRepo struct {
	bookings []models.Booking
}

func (f *fakeAnalysisBookingRepo) GetByID(id string) (*models.Booking, error) { return nil, nil }

func (f *fakeAnalysisBookingRepo) GetByReferenceCode(code string) (*models.Booking, error) {
	return nil, nil
}

func (f *fakeAnalysisBookingRepo) Create(b *models.Booking) error { return nil }
func (f *fakeAnalysisBookingRepo) Update(b *models.Booking) error { return nil }

func (f *fakeAnalysisBookingRepo) UpdateStatusIf(id string, fromStatuses []string, set bson.M) (bool, error) {
	return false, nil
}

func (f *fakeAnalysisBookingRepo) ListByClient(userID, status string, limit int64) ([]models.Booking, error) {
	return nil, nil
}

func (f *fakeAnalysisBookingRepo) ListByProvider(providerID, status string, limit int64) ([]models.Booking, error) {
	return nil, nil
}

func (f *fakeAnalysisBookingRepo) ListByProviderBetween(providerID, from, to string) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range f.bookings {
		if b.ProviderID == providerID && b.ScheduledAt >= from && b.ScheduledAt < to {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeAnalysisBookingRepo) ListByClientBetween(userID, from, to string) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range f.bookings {
		if b.UserID == userID && b.ScheduledAt >= from && b.ScheduledAt < to {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeAnalysisBookingRepo) FindActiveForPet(providerID, petID string) (*models.Booking, error) {
	return nil, nil
}

func (f *fakeAnalysisBookingRepo) ListByStatusScheduledBefore(status, cutoff string) ([]models.Booking, error) {
	return nil, nil
}

func (f *fakeAnalysisBookingRepo) ListGraceExpired(now time.Time) ([]models.Booking, error) {
	return nil, nil
}

type fakeFlagRepo struct {
	flags []models.AdminFlag
}

func (f *fakeFlagRepo) GetByID(id string) (*models.AdminFlag, error) {
	for i := range f.flags {
		if f.flags[i].ID == id {
			return &f.flags[i], nil
		}
	}
	return nil, nil
}

func (f *fakeFlagRepo) Create(flag *models.AdminFlag) error {
	f.flags = append(f.flags, *flag)
	return nil
}

func (f *fakeFlagRepo) List(filter models.FlagListFilter) ([]models.AdminFlag, error) {
	return f.flags, nil
}

func (f *fakeFlagRepo) ListByUser(userID string) ([]models.AdminFlag, error) { return nil, nil }

func (f *fakeFlagRepo) ExistsUnresolved(userID, flagType string) (bool, error) {
	for _, flag := range f.flags {
		if flag.UserID == userID && flag.Type == flagType && !flag.Resolved {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeFlagRepo) Resolve(id, note string) error {
	for i := range f.flags {
		if f.flags[i].ID == id {
			f.flags[i].Resolved = true
			if note != "" {
				f.flags[i].Note = note
			}
		}
	}
	return nil
}

func (f *fakeFlagRepo) Unresolve(id string) error {
	for i := range f.flags {
		if f.flags[i].ID == id {
			f.flags[i].Resolved = false
		}
	}
	return nil
}

func (f *fakeFlagRepo) Delete(id string) error {
	for i := range f.flags {
		if f.flags[i].ID == id {
			f.flags = append(f.flags[:i], f.flags[i+1:]...)
			break
		}
	}
	return nil
}

func (f *fakeFlagRepo) Stats() (*models.FlagStats, error) { return &models.FlagStats{}, nil }

func setAnalysisThresholds() {
	config.AppConfig.AnalysisProCancelRatePct = 15
	config.AppConfig.AnalysisMinBookingsForRate = 5
	config.AppConfig.AnalysisMinCompletionPct = 50
	config.AppConfig.AnalysisGhostCompletions = 3
	config.AppConfig.AnalysisUserNoShowCount = 3
	config.AppConfig.AnalysisUserCancelRatePct = 50
}

// recentNaive spreads bookings inside the scan window, which covers the
// current month and the two before it.
func recentNaive(daysAgo int) string {
	return models.FormatNaive(time.Now().AddDate(0, 0, -daysAgo))
}

func analysisFixture(providers []models.ProviderProfile, users []*models.User, bookings []models.Booking) (*DefaultAdminService, *fakeFlagRepo) {
	setAnalysisThresholds()
	flags := &fakeFlagRepo{}
	svc := &DefaultAdminService{
		UserRepo:     &storeUserRepo{store: newUserStore(users...)},
		ProviderRepo: &fakeAnalysisProviderRepo{providers: providers},
		BookingRepo:  &fakeAnalysisBookingRepo{bookings: bookings},
		FlagRepo:     flags,
	}
	return svc, flags
}

func approvedVet(id, userID string) models.ProviderProfile {
	return models.ProviderProfile{ID: id, UserID: userID, Kind: models.KindVet, Approval: models.ApprovalApproved}
}

func TestRunAnalysis_ProHighCancelRate(t *testing.T) {
	bookings := make([]models.Booking, 0, 10)
	for i := 0; i < 8; i++ {
		bookings = append(bookings, models.Booking{
			ProviderID: "prov-1", Status: models.BookingCompleted, ScheduledAt: recentNaive(i + 1),
		})
	}
	// 2 of 10 cancelled = 20%, above the 15% threshold.
	bookings = append(bookings,
		models.Booking{ProviderID: "prov-1", Status: models.BookingCancelled, ScheduledAt: recentNaive(12)},
		models.Booking{ProviderID: "prov-1", Status: models.BookingCancelled, ScheduledAt: recentNaive(14)},
	)

	svc, flags := analysisFixture([]models.ProviderProfile{approvedVet("prov-1", "pro-user-1")}, nil, bookings)

	report, err := svc.RunAnalysis()
	require.NoError(t, err)
	assert.Equal(t, 1, report.Providers.Analyzed)
	assert.Equal(t, 1, report.Providers.Flagged)
	require.Len(t, flags.flags, 1)
	assert.Equal(t, models.FlagProHighCancelRate, flags.flags[0].Type)
	assert.Equal(t, "pro-user-1", flags.flags[0].UserID)
	assert.Equal(t, models.FlagCategoryPro, flags.flags[0].Category)
}

func TestRunAnalysis_BelowMinimumVolumeStaysQuiet(t *testing.T) {
	// 2 of 4 cancelled is 50%, but four bookings are not enough signal.
	bookings := []models.Booking{
		{ProviderID: "prov-1", Status: models.BookingCompleted, ScheduledAt: recentNaive(1)},
		{ProviderID: "prov-1", Status: models.BookingCompleted, ScheduledAt: recentNaive(2)},
		{ProviderID: "prov-1", Status: models.BookingCancelled, ScheduledAt: recentNaive(3)},
		{ProviderID: "prov-1", Status: models.BookingCancelled, ScheduledAt: recentNaive(4)},
	}
	svc, flags := analysisFixture([]models.ProviderProfile{approvedVet("prov-1", "pro-user-1")}, nil, bookings)

	report, err := svc.RunAnalysis()
	require.NoError(t, err)
	assert.Equal(t, 0, report.Providers.Flagged)
	assert.Empty(t, flags.flags)
}

func TestRunAnalysis_ProLowCompletionRate(t *testing.T) {
	// 1 of 5 completed is 20%, under the 50% floor; five bookings is exactly
	// the minimum volume, which arms the rate rules.
	bookings := []models.Booking{
		{ProviderID: "prov-1", Status: models.BookingCompleted, ScheduledAt: recentNaive(1)},
		{ProviderID: "prov-1", Status: models.BookingExpired, ScheduledAt: recentNaive(2)},
		{ProviderID: "prov-1", Status: models.BookingExpired, ScheduledAt: recentNaive(3)},
		{ProviderID: "prov-1", Status: models.BookingExpired, ScheduledAt: recentNaive(4)},
		{ProviderID: "prov-1", Status: models.BookingExpired, ScheduledAt: recentNaive(5)},
	}
	svc, flags := analysisFixture([]models.ProviderProfile{approvedVet("prov-1", "pro-user-1")}, nil, bookings)

	report, err := svc.RunAnalysis()
	require.NoError(t, err)
	assert.Equal(t, 1, report.Providers.Flagged)
	require.Len(t, flags.flags, 1)
	assert.Equal(t, models.FlagProLowCompletionRate, flags.flags[0].Type)
}

func TestRunAnalysis_GhostCompletions(t *testing.T) {
	now := time.Now()
	bookings := make([]models.Booking, 0, 4)
	for i := 0; i < 4; i++ {
		proAt := now
		bookings = append(bookings, models.Booking{
			ProviderID:     "prov-1",
			Status:         models.BookingCompleted,
			ScheduledAt:    recentNaive(i + 1),
			ProConfirmedAt: &proAt,
			// ClientConfirmedAt stays nil: the client never acknowledged.
		})
	}
	svc, flags := analysisFixture([]models.ProviderProfile{approvedVet("prov-1", "pro-user-1")}, nil, bookings)

	_, err := svc.RunAnalysis()
	require.NoError(t, err)
	require.Len(t, flags.flags, 1)
	assert.Equal(t, models.FlagProGhostCompletions, flags.flags[0].Type)
}

func TestRunAnalysis_UnapprovedProvidersSkipped(t *testing.T) {
	pending := models.ProviderProfile{ID: "prov-1", UserID: "pro-user-1", Kind: models.KindVet, Approval: models.ApprovalPending}
	svc, flags := analysisFixture([]models.ProviderProfile{pending}, nil, nil)

	report, err := svc.RunAnalysis()
	require.NoError(t, err)
	assert.Equal(t, 0, report.Providers.Analyzed)
	assert.Empty(t, flags.flags)
}

func TestRunAnalysis_UserNoShows(t *testing.T) {
	users := []*models.User{
		{ID: "u1", Role: models.RoleUser, NoShowCount: 3},
		{ID: "u2", Role: models.RoleUser, NoShowCount: 1},
	}
	svc, flags := analysisFixture(nil, users, nil)

	report, err := svc.RunAnalysis()
	require.NoError(t, err)
	assert.Equal(t, 2, report.Users.Analyzed)
	assert.Equal(t, 1, report.Users.Flagged)
	require.Len(t, flags.flags, 1)
	assert.Equal(t, models.FlagUserNoShowRepeat, flags.flags[0].Type)
	assert.Equal(t, "u1", flags.flags[0].UserID)
	assert.Equal(t, models.FlagCategoryUser, flags.flags[0].Category)
}

func TestRunAnalysis_UserHighCancelRate(t *testing.T) {
	users := []*models.User{{ID: "u1", Role: models.RoleUser}}
	bookings := make([]models.Booking, 0, 6)
	for i := 0; i < 2; i++ {
		bookings = append(bookings, models.Booking{
			UserID: "u1", Status: models.BookingCompleted, ScheduledAt: recentNaive(i + 1),
		})
	}
	// 4 of 6 cancelled = 66%, above the 50% threshold.
	for i := 0; i < 4; i++ {
		bookings = append(bookings, models.Booking{
			UserID: "u1", Status: models.BookingCancelled, ScheduledAt: recentNaive(i + 10),
		})
	}
	svc, flags := analysisFixture(nil, users, bookings)

	_, err := svc.RunAnalysis()
	require.NoError(t, err)
	require.Len(t, flags.flags, 1)
	assert.Equal(t, models.FlagUserHighCancelRate, flags.flags[0].Type)
}

func TestRunAnalysis_NoDuplicateFlagsAcrossRuns(t *testing.T) {
	users := []*models.User{{ID: "u1", Role: models.RoleUser, NoShowCount: 5}}
	svc, flags := analysisFixture(nil, users, nil)

	_, err := svc.RunAnalysis()
	require.NoError(t, err)
	_, err = svc.RunAnalysis()
	require.NoError(t, err)
	assert.Len(t, flags.flags, 1)

	// Once the flag is resolved, the next run may file a fresh one.
	require.NoError(t, flags.Resolve(flags.flags[0].ID, ""))
	_, err = svc.RunAnalysis()
	require.NoError(t, err)
	assert.Len(t, flags.flags, 2)
}
