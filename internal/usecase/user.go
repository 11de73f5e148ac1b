package usecase

import (
	"context"

	"github.com/openmuseum/collections/internal/domain"
)

type UserUsecase struct {
	users UserRepository
}

func NewUserUsecase(users UserRepository) *UserUsecase {
	return &UserUsecase{users: users}
}

// Register creates an account. The password hash must already be set by
// the caller; a duplicate email surfaces as ConflictError.
func (uc *UserUsecase) Register(ctx context.Context, user domain.User) (domain.User, error) {
	return uc.users.Create(ctx, user)
}

func (uc *UserUsecase) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	return uc.users.GetByEmail(ctx, email)
}

func (uc *UserUsecase) GetByID(ctx context.Context, id int64) (domain.User, error) {
	return uc.users.GetByID(ctx, id)
}
