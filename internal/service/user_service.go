package service

import (
	"errors"
	"fmt"

	"go-freight-ws/internal/model"
	"go-freight-ws/internal/repository"
	"go-freight-ws/pkg/validator"

	"github.com/google/uuid"
)

var ErrEmailTaken = errors.New("email already registered")

type UserService interface {
	GetUsers() ([]model.UserResponse, error)
	GetUser(id uuid.UUID) (*model.UserResponse, error)
	CreateUser(req *CreateUserRequest, createdBy string) (*model.UserResponse, error)
	UpdateUser(id uuid.UUID, req *UpdateUserRequest, updatedBy string) (*model.UserResponse, error)
	DeleteUser(id uuid.UUID) error
	UpdateUserPrivileges(id uuid.UUID, privilegeCodes []string) (*model.UserResponse, error)
}

type CreateUserRequest struct {
	Email       string   `json:"email" validate:"required,email"`
	Password    string   `json:"password" validate:"required,min=8"`
	FullName    string   `json:"full_name" validate:"required"`
	PhoneNumber string   `json:"phone_number" validate:"omitempty,phone10"`
	RoleCode    string   `json:"role_code" validate:"required"`
	Privileges  []string `json:"privileges"`
}

type UpdateUserRequest struct {
	FullName    string `json:"full_name" validate:"required"`
	PhoneNumber string `json:"phone_number" validate:"omitempty,phone10"`
	IsActive    *bool  `json:"is_active"`
}

type userService struct {
	userRepo      repository.UserRepository
	privilegeRepo repository.PrivilegeRepository
	roleRepo      repository.RoleRepository
}

func NewUserService(userRepo repository.UserRepository, privilegeRepo repository.PrivilegeRepository, roleRepo repository.RoleRepository) UserService {
	return &userService{
		userRepo:      userRepo,
		privilegeRepo: privilegeRepo,
		roleRepo:      roleRepo,
	}
}

func (s *userService) GetUsers() ([]model.UserResponse, error) {
	users, err := s.userRepo.FindAll()
	if err != nil {
		return nil, err
	}
	responses := make([]model.UserResponse, len(users))
	for i, u := range users {
		responses[i] = u.ToResponse()
	}
	return responses, nil
}

func (s *userService) GetUser(id uuid.UUID) (*model.UserResponse, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		return nil, ErrUserNotFound
	}
	resp := user.ToResponse()
	return &resp, nil
}

func (s *userService) CreateUser(req *CreateUserRequest, createdBy string) (*model.UserResponse, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, fmt.Errorf("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}

	if existing, _ := s.userRepo.FindByEmail(req.Email); existing != nil {
		return nil, ErrEmailTaken
	}

	role, err := s.roleRepo.FindByCode(req.RoleCode)
	if err != nil {
		return nil, errors.New("unknown role code")
	}

	// Explicit privileges win over the role's defaults
	privileges := role.Privileges
	if len(req.Privileges) > 0 {
		privileges, err = s.privilegeRepo.FindByCodes(req.Privileges)
		if err != nil {
			return nil, err
		}
	}

	user := &model.User{
		Email:       req.Email,
		FullName:    req.FullName,
		PhoneNumber: req.PhoneNumber,
		RoleID:      &role.ID,
		IsActive:    true,
		Privileges:  privileges,
	}
	user.CreatedBy = createdBy
	user.UpdatedBy = createdBy

	if err := user.SetPassword(req.Password); err != nil {
		return nil, errors.New("failed to hash password")
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	resp := user.ToResponse()
	return &resp, nil
}

func (s *userService) UpdateUser(id uuid.UUID, req *UpdateUserRequest, updatedBy string) (*model.UserResponse, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, fmt.Errorf("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}

	user, err := s.userRepo.FindByID(id)
	if err != nil {
		return nil, ErrUserNotFound
	}

	user.FullName = req.FullName
	user.PhoneNumber = req.PhoneNumber
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}
	user.UpdatedBy = updatedBy

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}

	resp := user.ToResponse()
	return &resp, nil
}

func (s *userService) DeleteUser(id uuid.UUID) error {
	if _, err := s.userRepo.FindByID(id); err != nil {
		return ErrUserNotFound
	}
	return s.userRepo.Delete(id)
}

func (s *userService) UpdateUserPrivileges(id uuid.UUID, privilegeCodes []string) (*model.UserResponse, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		return nil, ErrUserNotFound
	}

	privileges, err := s.privilegeRepo.FindByCodes(privilegeCodes)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.UpdatePrivileges(user.ID, privileges); err != nil {
		return nil, err
	}

	return s.GetUser(id)
}
