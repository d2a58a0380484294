package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Ranjel272/my-backend-services/internal/apierror"
	"github.com/Ranjel272/my-backend-services/internal/dto"
	"github.com/Ranjel272/my-backend-services/internal/infra"
	"github.com/Ranjel272/my-backend-services/internal/model"
	"github.com/Ranjel272/my-backend-services/internal/repository"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const passcodeMsg = "Cashier passcode must be exactly 6 digits."

type EmployeeService interface {
	Create(ctx context.Context, in dto.CreateEmployeeInput) (*dto.MessageResponse, error)
	List(ctx context.Context) ([]dto.EmployeeResponse, error)
	Update(ctx context.Context, userID uint, in dto.UpdateEmployeeInput) (*dto.MessageResponse, error)
	Delete(ctx context.Context, userID uint) (*dto.MessageResponse, error)
}

type employeeService struct {
	users   repository.UserRepository
	uploads *infra.UploadStore
}

func NewEmployeeService(users repository.UserRepository, uploads *infra.UploadStore) EmployeeService {
	return &employeeService{users: users, uploads: uploads}
}

func validRole(role string) bool {
	switch role {
	case model.RoleAdmin, model.RoleManager, model.RoleCashier:
		return true
	}
	return false
}

func isPasscode(s string) bool {
	if len(s) != 6 {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// checkPasscodeFree compares the candidate passcode against every other
// active cashier's hash. Passcodes are short numeric codes stored only as
// bcrypt hashes, so no index can enforce this; the pairwise check is the
// only option and stays check-then-act.
func (s *employeeService) checkPasscodeFree(ctx context.Context, passcode string, excludeID uint) error {
	hashes, err := s.users.ListActiveCashierHashes(ctx, excludeID)
	if err != nil {
		return err
	}
	for _, h := range hashes {
		if bcrypt.CompareHashAndPassword([]byte(h), []byte(passcode)) == nil {
			return apierror.Conflict("This passcode is already used by another cashier.")
		}
	}
	return nil
}

func (s *employeeService) Create(ctx context.Context, in dto.CreateEmployeeInput) (*dto.MessageResponse, error) {
	if !validRole(in.UserRole) {
		return nil, apierror.Validation("Invalid role")
	}
	if strings.TrimSpace(in.Password) == "" {
		return nil, apierror.Validation("Password/Passcode is required")
	}

	if taken, err := s.users.ExistsActiveFullName(ctx, in.FullName, 0); err != nil {
		return nil, err
	} else if taken {
		return nil, apierror.Conflict("Full name is already used")
	}
	if taken, err := s.users.ExistsActiveEmail(ctx, in.EmailAddress, 0); err != nil {
		return nil, err
	} else if taken {
		return nil, apierror.Conflict("Email address is already used")
	}

	var username *string
	switch in.UserRole {
	case model.RoleCashier:
		if !isPasscode(in.Password) {
			return nil, apierror.Validation(passcodeMsg)
		}
		if err := s.checkPasscodeFree(ctx, in.Password, 0); err != nil {
			return nil, err
		}
		sentinel := model.CashierUsername
		username = &sentinel
	default:
		if strings.TrimSpace(in.Username) == "" {
			return nil, apierror.Validation("Username is required for admin/manager roles")
		}
		if strings.EqualFold(in.Username, model.CashierUsername) {
			return nil, apierror.Validation("'cashier' is a reserved username and cannot be used for admin/manager roles.")
		}
		if taken, err := s.users.ExistsActiveAdminManagerUsername(ctx, in.Username, 0); err != nil {
			return nil, err
		} else if taken {
			return nil, apierror.Conflict(fmt.Sprintf("Username '%s' is already taken by an admin or manager.", in.Username))
		}
		u := in.Username
		username = &u
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), 12)
	if err != nil {
		return nil, err
	}

	var imageFile *string
	if in.Image != nil {
		name, err := s.uploads.Save(in.Image)
		if err != nil {
			return nil, err
		}
		imageFile = &name
	}

	user := &model.User{
		FullName:     in.FullName,
		Username:     username,
		PasswordHash: string(hash),
		Role:         in.UserRole,
		Email:        in.EmailAddress,
		Phone:        in.PhoneNumber,
		HireDate:     in.HireDate,
		ImageFile:    imageFile,
	}
	if err := s.users.Create(ctx, user); err != nil {
		// An insert past the pre-checks can still hit the partial unique
		// indexes when two requests race; clean up the stored photo.
		if imageFile != nil {
			s.uploads.Remove(*imageFile)
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apierror.Conflict("Account details are already used")
		}
		return nil, err
	}

	title := strings.ToUpper(in.UserRole[:1]) + in.UserRole[1:]
	return &dto.MessageResponse{Message: fmt.Sprintf("%s created successfully!", title)}, nil
}

func (s *employeeService) List(ctx context.Context) ([]dto.EmployeeResponse, error) {
	users, err := s.users.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.EmployeeResponse, 0, len(users))
	for i := range users {
		out = append(out, toEmployeeResponse(&users[i]))
	}
	return out, nil
}

func toEmployeeResponse(u *model.User) dto.EmployeeResponse {
	resp := dto.EmployeeResponse{
		UserID:       u.ID,
		FullName:     u.FullName,
		Username:     u.Username,
		UserRole:     u.Role,
		EmailAddress: u.Email,
		UploadImage:  u.ImageFile,
		PhoneNumber:  u.Phone,
	}
	if !u.CreatedAt.IsZero() {
		created := u.CreatedAt.Format("2006-01-02T15:04:05")
		resp.CreatedAt = &created
	}
	if u.HireDate != nil {
		hired := u.HireDate.Format("2006-01-02")
		resp.HireDate = &hired
	}
	return resp
}

func (s *employeeService) Update(ctx context.Context, userID uint, in dto.UpdateEmployeeInput) (*dto.MessageResponse, error) {
	user, err := s.users.FindActiveByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("User not found")
		}
		return nil, err
	}

	changed := false
	previousImage := ""
	if user.ImageFile != nil {
		previousImage = *user.ImageFile
	}

	if in.FullName != nil && *in.FullName != "" {
		user.FullName = *in.FullName
		changed = true
	}

	if in.EmailAddress != nil && *in.EmailAddress != "" {
		if taken, err := s.users.ExistsActiveEmail(ctx, *in.EmailAddress, userID); err != nil {
			return nil, err
		} else if taken {
			return nil, apierror.Conflict("Email address is already used by another user")
		}
		user.Email = *in.EmailAddress
		changed = true
	}

	// Role transitions drive the username and password rules below.
	effectiveRole := user.Role
	roleChanging := in.UserRole != nil && *in.UserRole != user.Role
	if roleChanging {
		newRole := *in.UserRole
		if !validRole(newRole) {
			return nil, apierror.Validation("Invalid new role specified.")
		}
		switch newRole {
		case model.RoleCashier:
			if in.Password == nil || *in.Password == "" {
				return nil, apierror.Validation("A 6-digit passcode is required when changing role to Cashier.")
			}
			sentinel := model.CashierUsername
			user.Username = &sentinel
		default:
			if in.Username == nil || strings.TrimSpace(*in.Username) == "" {
				return nil, apierror.Validation(fmt.Sprintf("Username is required when changing role to %s.", newRole))
			}
			if strings.EqualFold(*in.Username, model.CashierUsername) {
				return nil, apierror.Validation("'cashier' is a reserved username.")
			}
			if taken, err := s.users.ExistsActiveAdminManagerUsername(ctx, *in.Username, userID); err != nil {
				return nil, err
			} else if taken {
				return nil, apierror.Conflict(fmt.Sprintf("Username '%s' is already taken by another admin or manager.", *in.Username))
			}
			if user.Role == model.RoleCashier && (in.Password == nil || *in.Password == "") {
				return nil, apierror.Validation("A new password is required when changing role from Cashier to Admin/Manager.")
			}
			name := *in.Username
			user.Username = &name
		}
		user.Role = newRole
		effectiveRole = newRole
		changed = true
	} else if in.Username != nil && (user.Role == model.RoleAdmin || user.Role == model.RoleManager) {
		if strings.TrimSpace(*in.Username) == "" {
			return nil, apierror.Validation("Username cannot be empty for admin/manager.")
		}
		if strings.EqualFold(*in.Username, model.CashierUsername) {
			return nil, apierror.Validation("'cashier' username is reserved.")
		}
		if user.Username == nil || *in.Username != *user.Username {
			if taken, err := s.users.ExistsActiveAdminManagerUsername(ctx, *in.Username, userID); err != nil {
				return nil, err
			} else if taken {
				return nil, apierror.Conflict(fmt.Sprintf("Username '%s' is already taken by another admin or manager.", *in.Username))
			}
			name := *in.Username
			user.Username = &name
			changed = true
		}
	}

	if in.Password != nil && strings.TrimSpace(*in.Password) != "" {
		if effectiveRole == model.RoleCashier {
			if !isPasscode(*in.Password) {
				return nil, apierror.Validation("Passcode for Cashier must be exactly 6 digits.")
			}
			if err := s.checkPasscodeFree(ctx, *in.Password, userID); err != nil {
				return nil, err
			}
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), 12)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
		changed = true
	}

	if in.PhoneNumber != nil {
		// Empty string clears the stored number.
		if strings.TrimSpace(*in.PhoneNumber) == "" {
			user.Phone = nil
		} else {
			phone := *in.PhoneNumber
			user.Phone = &phone
		}
		changed = true
	}
	if in.HireDate != nil {
		user.HireDate = in.HireDate
		changed = true
	}

	newImage := ""
	if in.Image != nil {
		name, err := s.uploads.Save(in.Image)
		if err != nil {
			return nil, err
		}
		newImage = name
		user.ImageFile = &newImage
		changed = true
	}

	if !changed {
		return &dto.MessageResponse{Message: "No fields to update"}, nil
	}

	if err := s.users.Update(ctx, user); err != nil {
		if newImage != "" {
			s.uploads.Remove(newImage)
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apierror.Conflict("Account details are already used")
		}
		return nil, err
	}

	if newImage != "" && previousImage != "" {
		s.uploads.Remove(previousImage)
	}
	return &dto.MessageResponse{Message: "User updated successfully"}, nil
}

func (s *employeeService) Delete(ctx context.Context, userID uint) (*dto.MessageResponse, error) {
	if _, err := s.users.FindActiveByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("User not found or already disabled.")
		}
		return nil, err
	}
	if err := s.users.SoftDelete(ctx, userID); err != nil {
		return nil, err
	}
	return &dto.MessageResponse{Message: "User soft deleted successfully"}, nil
}
