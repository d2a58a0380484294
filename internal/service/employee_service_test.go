package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/Ranjel272/my-backend-services/internal/apierror"
	"github.com/Ranjel272/my-backend-services/internal/dto"
	"github.com/Ranjel272/my-backend-services/internal/infra"
	"github.com/Ranjel272/my-backend-services/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEmployeeService(t *testing.T, repo *stubUserRepo) EmployeeService {
	t.Helper()
	uploads, err := infra.NewUploadStore(t.TempDir())
	require.NoError(t, err)
	return NewEmployeeService(repo, uploads)
}

func adminInput() dto.CreateEmployeeInput {
	return dto.CreateEmployeeInput{
		FullName:     "Alice Admin",
		Username:     "alice",
		Password:     "s3cret!",
		UserRole:     model.RoleAdmin,
		EmailAddress: "alice@example.com",
	}
}

func cashierInput(passcode string) dto.CreateEmployeeInput {
	return dto.CreateEmployeeInput{
		FullName:     "Cashier " + passcode,
		Password:     passcode,
		UserRole:     model.RoleCashier,
		EmailAddress: passcode + "@example.com",
	}
}

func requireStatus(t *testing.T, err error, status int) *apierror.Error {
	t.Helper()
	var apiErr *apierror.Error
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, status, apiErr.Status)
	return apiErr
}

func TestCreateEmployee_Admin(t *testing.T) {
	repo := newStubUserRepo()
	svc := newEmployeeService(t, repo)

	resp, err := svc.Create(context.Background(), adminInput())
	require.NoError(t, err)
	assert.Equal(t, "Admin created successfully!", resp.Message)

	users, err := repo.FindAllByUsername(context.Background(), "alice")
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, model.RoleAdmin, users[0].Role)
}

func TestCreateEmployee_InvalidRole(t *testing.T) {
	svc := newEmployeeService(t, newStubUserRepo())
	in := adminInput()
	in.UserRole = "superuser"

	_, err := svc.Create(context.Background(), in)
	apiErr := requireStatus(t, err, http.StatusBadRequest)
	assert.Equal(t, "Invalid role", apiErr.Detail)
}

func TestCreateEmployee_PasscodeFormat(t *testing.T) {
	for _, passcode := range []string{"12345", "1234567", "12a456", "abcdef"} {
		svc := newEmployeeService(t, newStubUserRepo())
		_, err := svc.Create(context.Background(), cashierInput(passcode))
		apiErr := requireStatus(t, err, http.StatusBadRequest)
		assert.Contains(t, apiErr.Detail, "6 digits", "passcode %q", passcode)
	}
}

func TestCreateEmployee_CashierGetsSentinelUsername(t *testing.T) {
	repo := newStubUserRepo()
	svc := newEmployeeService(t, repo)

	resp, err := svc.Create(context.Background(), cashierInput("123456"))
	require.NoError(t, err)
	assert.Equal(t, "Cashier created successfully!", resp.Message)

	users, err := repo.FindAllByUsername(context.Background(), model.CashierUsername)
	require.NoError(t, err)
	require.Len(t, users, 1)
}

func TestCreateEmployee_PasscodeCollision(t *testing.T) {
	repo := newStubUserRepo()
	svc := newEmployeeService(t, repo)

	_, err := svc.Create(context.Background(), cashierInput("123456"))
	require.NoError(t, err)

	in := cashierInput("123456")
	in.FullName = "Other Cashier"
	in.EmailAddress = "other@example.com"
	_, err = svc.Create(context.Background(), in)
	apiErr := requireStatus(t, err, http.StatusConflict)
	assert.Contains(t, apiErr.Detail, "passcode is already used")
}

func TestCreateEmployee_ReservedUsername(t *testing.T) {
	svc := newEmployeeService(t, newStubUserRepo())
	in := adminInput()
	in.Username = "Cashier"

	_, err := svc.Create(context.Background(), in)
	requireStatus(t, err, http.StatusBadRequest)
}

func TestCreateEmployee_DuplicateUsername(t *testing.T) {
	repo := newStubUserRepo()
	svc := newEmployeeService(t, repo)

	_, err := svc.Create(context.Background(), adminInput())
	require.NoError(t, err)

	in := adminInput()
	in.FullName = "Second Alice"
	in.EmailAddress = "alice2@example.com"
	_, err = svc.Create(context.Background(), in)
	requireStatus(t, err, http.StatusConflict)
}

func TestCreateEmployee_DuplicateFullNameAndEmail(t *testing.T) {
	repo := newStubUserRepo()
	svc := newEmployeeService(t, repo)

	_, err := svc.Create(context.Background(), adminInput())
	require.NoError(t, err)

	in := adminInput()
	in.Username = "alice2"
	in.EmailAddress = "alice2@example.com"
	_, err = svc.Create(context.Background(), in)
	apiErr := requireStatus(t, err, http.StatusConflict)
	assert.Equal(t, "Full name is already used", apiErr.Detail)

	in = adminInput()
	in.Username = "alice2"
	in.FullName = "Another Alice"
	_, err = svc.Create(context.Background(), in)
	apiErr = requireStatus(t, err, http.StatusConflict)
	assert.Equal(t, "Email address is already used", apiErr.Detail)
}

func TestUpdateEmployee_RoleToCashierNeedsPasscode(t *testing.T) {
	repo := newStubUserRepo()
	svc := newEmployeeService(t, repo)

	_, err := svc.Create(context.Background(), adminInput())
	require.NoError(t, err)

	role := model.RoleCashier
	_, err = svc.Update(context.Background(), 1, dto.UpdateEmployeeInput{UserRole: &role})
	apiErr := requireStatus(t, err, http.StatusBadRequest)
	assert.Contains(t, apiErr.Detail, "passcode is required")
}

func TestUpdateEmployee_CashierToManagerNeedsUsernameAndPassword(t *testing.T) {
	repo := newStubUserRepo()
	svc := newEmployeeService(t, repo)

	_, err := svc.Create(context.Background(), cashierInput("123456"))
	require.NoError(t, err)

	role := model.RoleManager
	_, err = svc.Update(context.Background(), 1, dto.UpdateEmployeeInput{UserRole: &role})
	requireStatus(t, err, http.StatusBadRequest)

	username := "bob"
	_, err = svc.Update(context.Background(), 1, dto.UpdateEmployeeInput{UserRole: &role, Username: &username})
	apiErr := requireStatus(t, err, http.StatusBadRequest)
	assert.Contains(t, apiErr.Detail, "new password is required")

	password := "managerpass"
	resp, err := svc.Update(context.Background(), 1, dto.UpdateEmployeeInput{
		UserRole: &role, Username: &username, Password: &password,
	})
	require.NoError(t, err)
	assert.Equal(t, "User updated successfully", resp.Message)

	u, err := repo.FindActiveByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, model.RoleManager, u.Role)
	require.NotNil(t, u.Username)
	assert.Equal(t, "bob", *u.Username)
}

func TestUpdateEmployee_EmptyPhoneClearsValue(t *testing.T) {
	repo := newStubUserRepo()
	svc := newEmployeeService(t, repo)

	in := adminInput()
	in.PhoneNumber = strPtr("555-0100")
	_, err := svc.Create(context.Background(), in)
	require.NoError(t, err)

	empty := ""
	_, err = svc.Update(context.Background(), 1, dto.UpdateEmployeeInput{PhoneNumber: &empty})
	require.NoError(t, err)

	u, err := repo.FindActiveByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Nil(t, u.Phone)
}

func TestUpdateEmployee_NoFields(t *testing.T) {
	repo := newStubUserRepo()
	svc := newEmployeeService(t, repo)

	_, err := svc.Create(context.Background(), adminInput())
	require.NoError(t, err)

	resp, err := svc.Update(context.Background(), 1, dto.UpdateEmployeeInput{})
	require.NoError(t, err)
	assert.Equal(t, "No fields to update", resp.Message)
}

func TestDeleteEmployee_SoftDelete(t *testing.T) {
	repo := newStubUserRepo()
	svc := newEmployeeService(t, repo)

	_, err := svc.Create(context.Background(), adminInput())
	require.NoError(t, err)

	resp, err := svc.Delete(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "User soft deleted successfully", resp.Message)

	// Row retained; only the flag flips.
	users, err := repo.FindAllByUsername(context.Background(), "alice")
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.True(t, users[0].Disabled)

	// A second delete reports the account as gone.
	_, err = svc.Delete(context.Background(), 1)
	requireStatus(t, err, http.StatusNotFound)
}
