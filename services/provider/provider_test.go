package provider

import (
	"testing"

	"pawhub/config"
	"pawhub/models"
	"pawhub/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

type memProviderRepo struct {
	providers map[string]*models.ProviderProfile
	services  map[string]*models.Service
}

func newMemProviderRepo() *memProviderRepo {
	return &memProviderRepo{
		providers: map[string]*models.ProviderProfile{},
		services:  map[string]*models.Service{},
	}
}

func (r *memProviderRepo) GetByID(id string) (*models.ProviderProfile, error) {
	if p, ok := r.providers[id]; ok {
		copied := *p
		return &copied, nil
	}
	return nil, nil
}

func (r *memProviderRepo) GetByUserID(userID string) (*models.ProviderProfile, error) {
	for _, p := range r.providers {
		if p.UserID == userID {
			copied := *p
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *memProviderRepo) Create(p *models.ProviderProfile) error {
	copied := *p
	r.providers[p.ID] = &copied
	return nil
}

func (r *memProviderRepo) Update(p *models.ProviderProfile) error {
	copied := *p
	r.providers[p.ID] = &copied
	return nil
}

func (r *memProviderRepo) UpdateSetDocument(id string, doc bson.M) error { return nil }

func (r *memProviderRepo) List(filter models.ProviderListFilter) ([]models.ProviderProfile, int64, error) {
	return nil, 0, nil
}

func (r *memProviderRepo) ListByKind(kind models.ProviderKind) ([]models.ProviderProfile, error) {
	return nil, nil
}

func (r *memProviderRepo) GetService(id string) (*models.Service, error) {
	if s, ok := r.services[id]; ok {
		copied := *s
		return &copied, nil
	}
	return nil, nil
}

func (r *memProviderRepo) ListServices(pid string) ([]models.Service, error) { return nil, nil }

func (r *memProviderRepo) CreateService(s *models.Service) error {
	copied := *s
	r.services[s.ID] = &copied
	return nil
}

func (r *memProviderRepo) UpdateService(s *models.Service) error {
	copied := *s
	r.services[s.ID] = &copied
	return nil
}

func (r *memProviderRepo) DeleteService(id string) error {
	delete(r.services, id)
	return nil
}

type memUserRepo struct {
	users   map[string]*models.User
	patches []bson.M
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
	r.patches = append(r.patches, doc)
	if u, ok := r.users[id]; ok {
		if role, ok := doc["role"].(string); ok {
			u.Role = role
		}
	}
	return nil
}

func (r *memUserRepo) CountByRole(role string) (int64, error) { return 0, nil }

func providerFixture() (*DefaultProviderService, *memUserRepo) {
	config.AppConfig.DefaultVetCommissionDa = 100
	config.AppConfig.DefaultDaycareHourlyDa = 10
	config.AppConfig.DefaultDaycareDailyDa = 100
	config.AppConfig.DefaultPetshopCommissionPc = 5

	users := newMemUserRepo(&models.User{ID: "u1", Role: models.RoleUser})
	svc := &DefaultProviderService{
		Repo:     newMemProviderRepo(),
		UserRepo: users,
	}
	return svc, users
}

func TestApply_DefaultsAndPendingState(t *testing.T) {
	svc, _ := providerFixture()

	p, err := svc.Apply("u1", models.ProviderProfile{
		DisplayName: "Clinique Vétérinaire El Bahia",
		Kind:        models.KindVet,
	})
	require.NoError(t, err)
	assert.Equal(t, models.ApprovalPending, p.Approval)
	assert.Equal(t, 100, p.Commission.VetPerBookingDa)
	assert.Equal(t, "u1", p.UserID)

	// A second application for the same account is rejected.
	_, err = svc.Apply("u1", models.ProviderProfile{DisplayName: "Again", Kind: models.KindVet})
	var svcErr *utils.ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, utils.ErrConflict, svcErr.Kind)
}

func TestApply_RejectsUnknownKind(t *testing.T) {
	svc, _ := providerFixture()
	_, err := svc.Apply("u1", models.ProviderProfile{DisplayName: "X", Kind: "GROOMER"})
	var svcErr *utils.ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, utils.ErrValidation, svcErr.Kind)
}

func TestSetApproval_PromotesUserToPro(t *testing.T) {
	svc, users := providerFixture()
	p, err := svc.Apply("u1", models.ProviderProfile{DisplayName: "X", Kind: models.KindVet})
	require.NoError(t, err)

	approved, err := svc.SetApproval(p.ID, models.ApprovalApproved)
	require.NoError(t, err)
	assert.Equal(t, models.ApprovalApproved, approved.Approval)
	assert.Equal(t, models.RolePro, users.users["u1"].Role)

	// The decision is final.
	_, err = svc.SetApproval(p.ID, models.ApprovalRejected)
	var svcErr *utils.ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, utils.ErrInvalidState, svcErr.Kind)
}

func TestSetApproval_RejectionDoesNotPromote(t *testing.T) {
	svc, users := providerFixture()
	p, err := svc.Apply("u1", models.ProviderProfile{DisplayName: "X", Kind: models.KindVet})
	require.NoError(t, err)

	_, err = svc.SetApproval(p.ID, models.ApprovalRejected)
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, users.users["u1"].Role)
}

func TestUpdateCommission(t *testing.T) {
	svc, _ := providerFixture()
	p, err := svc.Apply("u1", models.ProviderProfile{DisplayName: "X", Kind: models.KindVet})
	require.NoError(t, err)

	newRate := 150
	updated, err := svc.UpdateCommission(p.ID, models.CommissionUpdate{VetPerBookingDa: &newRate})
	require.NoError(t, err)
	assert.Equal(t, 150, updated.Commission.VetPerBookingDa)
	// Untouched fields keep their value.
	assert.Equal(t, 10, updated.Commission.DaycareHourlyDa)

	negative := -1
	_, err = svc.UpdateCommission(p.ID, models.CommissionUpdate{VetPerBookingDa: &negative})
	var svcErr *utils.ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, utils.ErrValidation, svcErr.Kind)
}

func TestResetCommission(t *testing.T) {
	svc, _ := providerFixture()
	p, err := svc.Apply("u1", models.ProviderProfile{DisplayName: "X", Kind: models.KindVet})
	require.NoError(t, err)

	newRate := 999
	_, err = svc.UpdateCommission(p.ID, models.CommissionUpdate{VetPerBookingDa: &newRate})
	require.NoError(t, err)

	reset, err := svc.ResetCommission(p.ID)
	require.NoError(t, err)
	assert.Equal(t, 100, reset.Commission.VetPerBookingDa)
}

func TestCreateService_Validation(t *testing.T) {
	svc, _ := providerFixture()
	_, err := svc.Apply("u1", models.ProviderProfile{DisplayName: "X", Kind: models.KindVet})
	require.NoError(t, err)

	created, err := svc.CreateService("u1", models.Service{Title: "Consultation", PriceDa: 2000, DurationMin: 30})
	require.NoError(t, err)
	assert.True(t, created.Active)

	for _, bad := range []models.Service{
		{Title: "", PriceDa: 2000, DurationMin: 30},
		{Title: "X", PriceDa: 0, DurationMin: 30},
		{Title: "X", PriceDa: 2000, DurationMin: 0},
	} {
		_, err := svc.CreateService("u1", bad)
		var svcErr *utils.ServiceError
		require.ErrorAs(t, err, &svcErr)
		assert.Equal(t, utils.ErrValidation, svcErr.Kind)
	}
}

func TestUpdateService_OwnershipEnforced(t *testing.T) {
	svc, _ := providerFixture()
	repo := svc.Repo.(*memProviderRepo)
	_, err := svc.Apply("u1", models.ProviderProfile{DisplayName: "X", Kind: models.KindVet})
	require.NoError(t, err)
	repo.services["foreign"] = &models.Service{ID: "foreign", ProviderID: "other-provider", Title: "Y", PriceDa: 1, DurationMin: 1}

	_, err = svc.UpdateService("u1", models.Service{ID: "foreign", Title: "Hijacked"})
	var svcErr *utils.ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, utils.ErrForbidden, svcErr.Kind)

	err = svc.DeleteService("u1", "foreign")
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, utils.ErrForbidden, svcErr.Kind)
}
