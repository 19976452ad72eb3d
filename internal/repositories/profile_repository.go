package repositories

import (
	"errors"

	"photochat/internal/errs"
	"photochat/internal/models"
	"photochat/internal/utils"

	"gorm.io/gorm"
)

type ProfileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{
		db: db,
	}
}

func (pr *ProfileRepository) CreateUser(user *models.UserProfile) (*models.UserProfile, []error) {
	var errorList []error
	result := pr.db.Create(user)
	if result.Error != nil {
		errorList = append(errorList, result.Error)
		return nil, errorList
	}
	return user, nil
}

func (pr *ProfileRepository) FindByEmail(email string) *models.UserProfile {
	var user models.UserProfile
	result := pr.db.Where("email = ?", email).First(&user)
	if result.Error == nil {
		return &user
	}
	return nil
}

func (pr *ProfileRepository) FindByID(id string) (*models.UserProfile, []error) {
	var errorList []error
	var user models.UserProfile
	err := pr.db.Where("id = ?", id).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		errorList = append(errorList, errs.ErrUserNotFound)
		return nil, errorList
	}
	if err != nil {
		errorList = append(errorList, err)
		return nil, errorList
	}
	return &user, nil
}

func (pr *ProfileRepository) UpdateUsername(id, username string) []error {
	var errorList []error
	result := pr.db.Model(&models.UserProfile{}).Where("id = ?", id).Update("username", username)
	if result.Error != nil {
		errorList = append(errorList, result.Error)
		return errorList
	}
	if result.RowsAffected == 0 {
		errorList = append(errorList, errs.ErrUserNotFound)
		return errorList
	}
	return nil
}

func (pr *ProfileRepository) GetAllUsersWithPagination(page, size int) (*models.GetUsersResponse, []error) {
	var errorList []error
	var users []models.UserProfile
	var total int64

	transactionErr := pr.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Scopes(utils.Paginate(page, size)).
			Order("created_at ASC").
			Find(&users).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.UserProfile{}).Count(&total).Error; err != nil {
			return err
		}
		return nil
	})
	if transactionErr != nil {
		errorList = append(errorList, transactionErr)
		return nil, errorList
	}

	userResponses := make([]*models.UserResponse, 0, len(users))
	for _, user := range users {
		userResponses = append(userResponses, user.ToUserResponse())
	}

	return &models.GetUsersResponse{
		Users: userResponses,
		Page:  page,
		Size:  size,
		Total: total,
	}, nil
}
