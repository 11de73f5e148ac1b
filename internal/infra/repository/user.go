package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/openmuseum/collections/internal/domain"
	"github.com/openmuseum/collections/internal/infra/database/models"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user domain.User) (domain.User, error) {
	row := models.User{
		FirstName:     user.FirstName,
		LastName:      user.LastName,
		Email:         user.Email,
		Password:      user.PasswordHash,
		Administrator: user.Administrator,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.User{}, domain.ConflictError{Resource: "account"}
		}
		return domain.User{}, err
	}

	return toUser(row), nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	var row models.User
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.User{}, domain.NotFoundError{Resource: "account"}
		}
		return domain.User{}, err
	}

	return toUser(row), nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (domain.User, error) {
	var row models.User
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.User{}, domain.NotFoundError{Resource: "account"}
		}
		return domain.User{}, err
	}

	return toUser(row), nil
}

func toUser(row models.User) domain.User {
	return domain.User{
		ID:            row.ID,
		FirstName:     row.FirstName,
		LastName:      row.LastName,
		Email:         row.Email,
		Administrator: row.Administrator,
		PasswordHash:  row.Password,
	}
}
