package admin

import (
	"context"
	"testing"
	"time"

	"pawhub/models"
	"pawhub/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

// userStore backs both the user and sanction fakes, so the transactional
// "sanction row plus user patch" contract can be exercised in memory.
type userStore struct {
	users map[string]*models.User
}

func newUserStore(users ...*models.User) *userStore {
	s := &userStore{users: map[string]*models.User{}}
	for _, u := range users {
		s.users[u.ID] = u
	}
	return s
}

// applyPatch mirrors the $set document the sanction repository writes.
func (s *userStore) applyPatch(userID string, doc bson.M) {
	u, ok := s.users[userID]
	if !ok {
		return
	}
	for key, val := range doc {
		switch key {
		case "is_banned":
			u.IsBanned = val.(bool)
		case "banned_at":
			if val == nil {
				u.BannedAt = nil
			} else {
				ts := val.(time.Time)
				u.BannedAt = &ts
			}
		case "banned_reason":
			u.BannedReason = val.(string)
		case "banned_by":
			u.BannedBy = val.(string)
		case "suspended_until":
			if val == nil {
				u.SuspendedUntil = nil
			} else {
				ts := val.(time.Time)
				u.SuspendedUntil = &ts
			}
		}
	}
}

type storeUserRepo struct {
	store *userStore
}

func (r *storeUserRepo) GetByID(id string) (*models.User, error)       { return r.store.users[id], nil }
func (r *storeUserRepo) GetByEmail(email string) (*models.User, error) { return nil, nil }
func (r *storeUserRepo) Create(u *models.User) error                   { return nil }
func (r *storeUserRepo) Update(u *models.User) error                   { return nil }
func (r *storeUserRepo) Delete(id string) error                        { return nil }

func (r *storeUserRepo) List(filter models.UserListFilter) ([]models.User, int64, error) {
	var out []models.User
	for _, u := range r.store.users {
		if filter.Role != "" && u.Role != filter.Role {
			continue
		}
		out = append(out, *u)
	}
	return out, int64(len(out)), nil
}

func (r *storeUserRepo) UpdateSetDocument(id string, doc bson.M) error {
	r.store.applyPatch(id, doc)
	return nil
}

func (r *storeUserRepo) CountByRole(role string) (int64, error) { return 0, nil }

type fakeSanctionRepo struct {
	store     *userStore
	sanctions []models.UserSanction
}

func (r *fakeSanctionRepo) Create(s *models.UserSanction) error {
	r.sanctions = append(r.sanctions, *s)
	return nil
}

func (r *fakeSanctionRepo) ApplyWithUserUpdate(ctx context.Context, s *models.UserSanction, userUpdate bson.M) error {
	r.sanctions = append(r.sanctions, *s)
	r.store.applyPatch(s.UserID, userUpdate)
	return nil
}

func (r *fakeSanctionRepo) ListByUser(userID string) ([]models.UserSanction, error) {
	var out []models.UserSanction
	for _, s := range r.sanctions {
		if s.UserID == userID {
			out = append(out, s)
		}
	}
	return out, nil
}

func sanctionFixture(users ...*models.User) (*DefaultAdminService, *userStore, *fakeSanctionRepo) {
	store := newUserStore(users...)
	sanctions := &fakeSanctionRepo{store: store}
	svc := &DefaultAdminService{
		UserRepo:     &storeUserRepo{store: store},
		SanctionRepo: sanctions,
	}
	return svc, store, sanctions
}

func TestWarn(t *testing.T) {
	svc, _, sanctions := sanctionFixture(&models.User{ID: "u1", Role: models.RoleUser})

	s, err := svc.Warn("admin-1", "u1", "left the daycare a fake review")
	require.NoError(t, err)
	assert.Equal(t, models.SanctionWarning, s.Type)
	assert.Equal(t, "admin-1", s.IssuedBy)
	assert.Len(t, sanctions.sanctions, 1)

	// A warning never touches account state.
	usr, _ := svc.UserRepo.GetByID("u1")
	assert.False(t, usr.IsBanned)
	assert.Nil(t, usr.SuspendedUntil)
}

func TestWarn_RequiresReason(t *testing.T) {
	svc, _, _ := sanctionFixture(&models.User{ID: "u1", Role: models.RoleUser})
	_, err := svc.Warn("admin-1", "u1", "")
	var svcErr *utils.ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, utils.ErrValidation, svcErr.Kind)
}

func TestSuspend(t *testing.T) {
	svc, store, _ := sanctionFixture(&models.User{ID: "u1", Role: models.RoleUser})

	s, err := svc.Suspend("admin-1", "u1", "repeated no-shows", 7)
	require.NoError(t, err)
	assert.Equal(t, models.SanctionSuspension, s.Type)
	assert.Equal(t, 7, s.DurationDays)
	require.NotNil(t, s.ExpiresAt)

	usr := store.users["u1"]
	require.NotNil(t, usr.SuspendedUntil)
	assert.WithinDuration(t, time.Now().AddDate(0, 0, 7), *usr.SuspendedUntil, time.Minute)
}

func TestSuspend_RejectsNonPositiveDays(t *testing.T) {
	svc, _, _ := sanctionFixture(&models.User{ID: "u1", Role: models.RoleUser})
	for _, days := range []int{0, -3} {
		_, err := svc.Suspend("admin-1", "u1", "reason", days)
		var svcErr *utils.ServiceError
		require.ErrorAs(t, err, &svcErr)
		assert.Equal(t, utils.ErrValidation, svcErr.Kind)
	}
}

func TestBan_ClearsSuspension(t *testing.T) {
	suspendedUntil := time.Now().Add(72 * time.Hour)
	svc, store, _ := sanctionFixture(&models.User{
		ID:             "u1",
		Role:           models.RoleUser,
		SuspendedUntil: &suspendedUntil,
	})

	s, err := svc.Ban("admin-1", "u1", "payment fraud")
	require.NoError(t, err)
	assert.Equal(t, models.SanctionBan, s.Type)

	usr := store.users["u1"]
	assert.True(t, usr.IsBanned)
	assert.Equal(t, "payment fraud", usr.BannedReason)
	assert.Equal(t, "admin-1", usr.BannedBy)
	// A banned record never also carries a suspension.
	assert.Nil(t, usr.SuspendedUntil)
}

func TestBan_AdminAccountsUntouchable(t *testing.T) {
	svc, store, sanctions := sanctionFixture(&models.User{ID: "a1", Role: models.RoleAdmin})

	_, err := svc.Ban("admin-1", "a1", "reason")
	var svcErr *utils.ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, utils.ErrForbidden, svcErr.Kind)
	assert.False(t, store.users["a1"].IsBanned)
	assert.Empty(t, sanctions.sanctions)
}

func TestBan_Twice(t *testing.T) {
	svc, _, sanctions := sanctionFixture(&models.User{ID: "u1", Role: models.RoleUser})

	_, err := svc.Ban("admin-1", "u1", "fraud")
	require.NoError(t, err)

	_, err = svc.Ban("admin-1", "u1", "fraud again")
	var svcErr *utils.ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, utils.ErrInvalidState, svcErr.Kind)
	assert.Len(t, sanctions.sanctions, 1)
}

func TestUnban(t *testing.T) {
	svc, store, _ := sanctionFixture(&models.User{ID: "u1", Role: models.RoleUser, IsBanned: true})

	s, err := svc.Unban("admin-1", "u1", "appeal accepted")
	require.NoError(t, err)
	assert.Equal(t, models.SanctionUnban, s.Type)
	assert.False(t, store.users["u1"].IsBanned)
	assert.Empty(t, store.users["u1"].BannedReason)
}

func TestUnban_NotBanned(t *testing.T) {
	svc, _, _ := sanctionFixture(&models.User{ID: "u1", Role: models.RoleUser})
	_, err := svc.Unban("admin-1", "u1", "")
	var svcErr *utils.ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, utils.ErrInvalidState, svcErr.Kind)
}

func TestLiftSuspension(t *testing.T) {
	until := time.Now().Add(72 * time.Hour)
	svc, store, _ := sanctionFixture(&models.User{ID: "u1", Role: models.RoleUser, SuspendedUntil: &until})

	s, err := svc.LiftSuspension("admin-1", "u1", "served enough")
	require.NoError(t, err)
	assert.Equal(t, models.SanctionLift, s.Type)
	assert.Nil(t, store.users["u1"].SuspendedUntil)

	// Lifting again finds nothing active.
	_, err = svc.LiftSuspension("admin-1", "u1", "")
	var svcErr *utils.ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, utils.ErrInvalidState, svcErr.Kind)
}

func TestLiftSuspension_AlreadyExpired(t *testing.T) {
	past := time.Now().Add(-time.Hour)
	svc, _, _ := sanctionFixture(&models.User{ID: "u1", Role: models.RoleUser, SuspendedUntil: &past})

	_, err := svc.LiftSuspension("admin-1", "u1", "")
	var svcErr *utils.ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, utils.ErrInvalidState, svcErr.Kind)
}

func TestCheckAccess(t *testing.T) {
	until := time.Now().Add(72 * time.Hour)
	svc, _, _ := sanctionFixture(
		&models.User{ID: "clean", Role: models.RoleUser},
		&models.User{ID: "banned", Role: models.RoleUser, IsBanned: true, BannedReason: "fraud"},
		&models.User{ID: "suspended", Role: models.RoleUser, SuspendedUntil: &until},
	)

	check, err := svc.CheckAccess("clean")
	require.NoError(t, err)
	assert.True(t, check.Allowed)

	check, err = svc.CheckAccess("banned")
	require.NoError(t, err)
	assert.False(t, check.Allowed)
	assert.Equal(t, "fraud", check.Reason)

	check, err = svc.CheckAccess("suspended")
	require.NoError(t, err)
	assert.False(t, check.Allowed)
	require.NotNil(t, check.Until)
	assert.WithinDuration(t, until, *check.Until, time.Second)
}

func TestCheckAccess_LazilyClearsExpiredSuspension(t *testing.T) {
	past := time.Now().Add(-time.Hour)
	svc, store, _ := sanctionFixture(&models.User{ID: "u1", Role: models.RoleUser, SuspendedUntil: &past})

	check, err := svc.CheckAccess("u1")
	require.NoError(t, err)
	assert.True(t, check.Allowed)
	// The stale deadline is wiped on first sight, not by a background job.
	assert.Nil(t, store.users["u1"].SuspendedUntil)
}

func TestSanctionHistory_ResolvesIssuingAdmin(t *testing.T) {
	svc, _, _ := sanctionFixture(
		&models.User{ID: "u1", Role: models.RoleUser},
		&models.User{ID: "admin-1", Role: models.RoleAdmin, FirstName: "Nadia"},
	)

	_, err := svc.Warn("admin-1", "u1", "first strike")
	require.NoError(t, err)
	_, err = svc.Suspend("admin-1", "u1", "second strike", 3)
	require.NoError(t, err)

	history, err := svc.SanctionHistory("u1")
	require.NoError(t, err)
	require.Len(t, history, 2)
	for _, entry := range history {
		require.NotNil(t, entry.IssuedByAdmin)
		assert.Equal(t, "Nadia", entry.IssuedByAdmin.FirstName)
	}
}
