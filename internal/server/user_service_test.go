package server

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jonathan/job-board/internal/config"
	"github.com/jonathan/job-board/internal/db"
	"github.com/jonathan/job-board/internal/types"
)

// fakeUserStore is an in-memory UserStore.
type fakeUserStore struct {
	users       map[uuid.UUID]*db.User
	activity    []string
	activityErr error
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[uuid.UUID]*db.User)}
}

func (f *fakeUserStore) CheckEmailExists(_ context.Context, email string) (bool, error) {
	for _, u := range f.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserStore) CreateUser(_ context.Context, fullName, email, passwordHash string, role db.Role) (uuid.UUID, error) {
	for _, u := range f.users {
		if u.Email == email {
			return uuid.Nil, db.ErrDuplicate
		}
	}
	id := uuid.New()
	f.users[id] = &db.User{ID: id, FullName: fullName, Email: email, PasswordHash: passwordHash, Role: role}
	return id, nil
}

func (f *fakeUserStore) GetUser(_ context.Context, id uuid.UUID) (*db.User, error) {
	return f.users[id], nil
}

func (f *fakeUserStore) GetUserByEmail(_ context.Context, email string) (*db.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserStore) UpdateProfile(_ context.Context, userID uuid.UUID, upd db.ProfileUpdate) error {
	u := f.users[userID]
	u.Phone = upd.Phone
	u.Location = upd.Location
	u.Skills = upd.Skills
	u.ExperienceYears = upd.ExperienceYears
	if upd.ResumePath != nil {
		u.ResumePath = *upd.ResumePath
	}
	u.ProfileCompleted = true
	return nil
}

func (f *fakeUserStore) LogActivity(_ context.Context, _ uuid.UUID, action, _ string) error {
	if f.activityErr != nil {
		return f.activityErr
	}
	f.activity = append(f.activity, action)
	return nil
}

func newTestUserService(t *testing.T, store UserStore) *UserService {
	t.Setenv("BCRYPT_COST", "10")
	passwordConfig, err := config.NewPasswordConfig()
	require.NoError(t, err)
	return NewUserService(store, passwordConfig, zap.NewNop())
}

func registerRequest() *types.RegisterRequest {
	return &types.RegisterRequest{
		FullName: "Priya Sharma",
		Email:    "priya@example.com",
		Password: "super-secret-1",
		Role:     "CANDIDATE",
	}
}

func TestRegisterAndLogin(t *testing.T) {
	store := newFakeUserStore()
	svc := newTestUserService(t, store)

	user, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)
	assert.Equal(t, "priya@example.com", user.Email)
	assert.Equal(t, "CANDIDATE", user.Role)
	assert.Contains(t, store.activity, db.ActionRegistration)

	loggedIn, err := svc.Login(context.Background(), &types.LoginRequest{
		Email:    "priya@example.com",
		Password: "super-secret-1",
	})
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)
	assert.Contains(t, store.activity, db.ActionLogin)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	store := newFakeUserStore()
	svc := newTestUserService(t, store)

	_, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), registerRequest())
	assert.IsType(t, &ErrEmailAlreadyExists{}, err)
}

func TestRegisterRejectsUnknownRole(t *testing.T) {
	svc := newTestUserService(t, newFakeUserStore())

	req := registerRequest()
	req.Role = "ADMIN"
	_, err := svc.Register(context.Background(), req)
	assert.IsType(t, &ErrValidation{}, err)
}

func TestLoginWrongPassword(t *testing.T) {
	store := newFakeUserStore()
	svc := newTestUserService(t, store)

	_, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), &types.LoginRequest{
		Email:    "priya@example.com",
		Password: "wrong-password",
	})
	assert.IsType(t, &ErrInvalidCredentials{}, err)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc := newTestUserService(t, newFakeUserStore())

	_, err := svc.Login(context.Background(), &types.LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever",
	})
	assert.IsType(t, &ErrInvalidCredentials{}, err)
}

func TestUpdateProfileMarksCompleted(t *testing.T) {
	store := newFakeUserStore()
	svc := newTestUserService(t, store)

	user, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)
	assert.False(t, user.ProfileCompleted)

	resumePath := "abc123.pdf"
	updated, err := svc.UpdateProfile(context.Background(), user.ID, &types.UpdateProfileRequest{
		Phone:           "+91 98765 43210",
		Location:        "Bangalore",
		Skills:          "python, sql",
		ExperienceYears: 3,
	}, &resumePath)
	require.NoError(t, err)
	assert.True(t, updated.ProfileCompleted)
	assert.Equal(t, "python, sql", updated.Skills)
	assert.Contains(t, store.activity, db.ActionProfileUpdate)
}

func TestRegisterAndLoginSurviveLogFailure(t *testing.T) {
	store := newFakeUserStore()
	store.activityErr = fmt.Errorf("activity insert failed")
	svc := newTestUserService(t, store)

	user, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err, "the account is committed, logging is advisory")
	require.NotNil(t, user)

	loggedIn, err := svc.Login(context.Background(), &types.LoginRequest{
		Email:    "priya@example.com",
		Password: "super-secret-1",
	})
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)
}

func TestGetProfileNotFound(t *testing.T) {
	svc := newTestUserService(t, newFakeUserStore())

	_, err := svc.GetProfile(context.Background(), uuid.New())
	assert.IsType(t, &ErrUserNotFound{}, err)
}
