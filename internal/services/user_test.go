package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"eventum/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeHasher struct{}

func (fakeHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }
func (fakeHasher) Compare(hash, password string) error {
	if hash != "hashed:"+password {
		return errors.New("mismatch")
	}
	return nil
}

type fakeTokenIssuer struct{}

func (fakeTokenIssuer) Issue(userID string, role domain.Role, expiry time.Duration) (string, error) {
	return "token-for-" + userID, nil
}

func newUserServiceForTest(now time.Time, users *fakeUserRepo, groups *fakeGroupRepo, emails *fakeEmailService) domain.UserService {
	return NewUserService(users, groups, fakeHasher{}, fakeTokenIssuer{}, emails, fixedClock{now: now}, testLogger(), 2*time.Second)
}

func TestUserService_SignUp(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)

	users := newFakeUserRepo()
	emails := newFakeEmailService()
	svc := newUserServiceForTest(now, users, newFakeGroupRepo(), emails)

	user, err := svc.SignUp(ctx, "Ana", "Ana@Example.com ", "secret", domain.RoleParticipant, nil)
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", user.Email)
	assert.Equal(t, "hashed:secret", user.PasswordHash)
	require.Len(t, emails.welcome, 1)

	// Same email again collides.
	_, err = svc.SignUp(ctx, "Ana Again", "ana@example.com", "secret", domain.RoleParticipant, nil)
	require.ErrorIs(t, err, domain.ErrDuplicateEmail)
}

func TestUserService_SignUp_unknown_group(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)
	svc := newUserServiceForTest(now, newFakeUserRepo(), newFakeGroupRepo(), newFakeEmailService())

	groupID := "grp-missing"
	_, err := svc.SignUp(ctx, "Ana", "ana@example.com", "secret", domain.RoleParticipant, &groupID)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUserService_Login(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)

	users := newFakeUserRepo()
	svc := newUserServiceForTest(now, users, newFakeGroupRepo(), newFakeEmailService())
	created, err := svc.SignUp(ctx, "Ana", "ana@example.com", "secret", domain.RoleParticipant, nil)
	require.NoError(t, err)

	token, user, err := svc.Login(ctx, "ana@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "token-for-"+created.ID, token)
	assert.Equal(t, created.ID, user.ID)

	_, _, err = svc.Login(ctx, "ana@example.com", "wrong")
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, _, err = svc.Login(ctx, "nobody@example.com", "secret")
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestUserService_AssignGroup_professor_only(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)

	professor := &domain.User{ID: "prof-1", Role: domain.RoleProfessor}
	student := &domain.User{ID: "user-1", Role: domain.RoleParticipant}
	users := newFakeUserRepo(professor, student)
	groups := newFakeGroupRepo(&domain.StudyGroup{ID: "grp-1", Name: "CS 2026"})
	svc := newUserServiceForTest(now, users, groups, newFakeEmailService())

	require.NoError(t, svc.AssignGroup(ctx, "prof-1", "user-1", "grp-1"))
	require.NotNil(t, users.byID["user-1"].GroupID)
	assert.Equal(t, "grp-1", *users.byID["user-1"].GroupID)

	require.ErrorIs(t, svc.AssignGroup(ctx, "user-1", "prof-1", "grp-1"), domain.ErrForbidden)

	require.NoError(t, svc.RemoveFromGroup(ctx, "prof-1", "user-1"))
	assert.Nil(t, users.byID["user-1"].GroupID)
}
