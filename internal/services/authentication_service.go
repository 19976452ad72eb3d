package services

import (
	"time"

	"photochat/configs"
	"photochat/internal/errs"
	"photochat/internal/models"
	"photochat/internal/repositories"
	"photochat/internal/utils"
	"photochat/internal/validators"

	"github.com/google/uuid"
)

type AuthenticationService struct {
	profileRepo *repositories.ProfileRepository
	config      *configs.Config
}

func NewAuthenticationService(
	profileRepo *repositories.ProfileRepository,
	config *configs.Config,
) *AuthenticationService {
	return &AuthenticationService{
		profileRepo: profileRepo,
		config:      config,
	}
}

// Register creates an account profile: backend-issued uuid identifier, bcrypt
// password hash, display name.
func (as *AuthenticationService) Register(req *models.RegisterRequestBody) (*models.UserProfile, []error) {
	var errors []error

	validationErrs := validators.ValidateRegistration(req)
	if len(validationErrs) > 0 {
		return nil, validationErrs
	}

	if as.profileRepo.FindByEmail(req.Email) != nil {
		errors = append(errors, errs.ErrUserAlreadyExists)
		return nil, errors
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		errors = append(errors, err)
		return nil, errors
	}

	email := req.Email
	user := &models.UserProfile{
		ID:           uuid.NewString(),
		Username:     req.Username,
		Email:        &email,
		PasswordHash: passwordHash,
	}
	return as.profileRepo.CreateUser(user)
}

func (as *AuthenticationService) Login(loginData *models.LoginRequestBody) (*models.LoginResponse, []error) {
	var errors []error

	user := as.profileRepo.FindByEmail(loginData.Email)
	if user == nil {
		errors = append(errors, errs.ErrUserNotFound)
		return nil, errors
	}
	if err := utils.CompareHashAndPassword(user.PasswordHash, loginData.Password); err != nil {
		errors = append(errors, errs.ErrWrongPassword)
		return nil, errors
	}

	email := ""
	if user.Email != nil {
		email = *user.Email
	}
	expiration := time.Now().Add(time.Duration(as.config.Viper.GetInt("jwt.expiration_time")) * time.Second)
	token, jwtErr := utils.CreateJwtToken(
		user.ID,
		email,
		user.Username,
		as.JwtKey(),
		expiration,
	)
	if jwtErr != nil {
		errors = append(errors, jwtErr)
		return nil, errors
	}

	return &models.LoginResponse{
		User:  *user.ToProfileResponse(),
		Token: token,
	}, nil
}

func (as *AuthenticationService) JwtKey() []byte {
	return []byte(as.config.Viper.GetString("jwt.secret"))
}

func (as *AuthenticationService) GetSingleUser(id string) (*models.ProfileResponse, []error) {
	user, findErrs := as.profileRepo.FindByID(id)
	if len(findErrs) > 0 {
		return nil, findErrs
	}
	return user.ToProfileResponse(), nil
}

// UpdateUser changes the mutable part of a profile: the display name.
func (as *AuthenticationService) UpdateUser(req *models.UpdateUserRequest) (*models.ProfileResponse, []error) {
	if len(req.Username) < 2 {
		return nil, []error{errs.ErrInvalidUsername}
	}
	if updateErrs := as.profileRepo.UpdateUsername(req.ID, req.Username); len(updateErrs) > 0 {
		return nil, updateErrs
	}
	return as.GetSingleUser(req.ID)
}

func (as *AuthenticationService) GetAllUsersWithPagination(page, size int) (*models.GetUsersResponse, []error) {
	if page < 1 || size < 1 {
		return nil, []error{errs.ErrInvalidPageOrSize}
	}
	return as.profileRepo.GetAllUsersWithPagination(page, size)
}
