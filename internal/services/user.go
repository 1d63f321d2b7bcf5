package services

import (
	"context"

	"gearguard/internal/dto"
	"gearguard/internal/entities"
	"gearguard/internal/repositories"
)

type UserServiceInterface interface {
	GetUsers(ctx context.Context) ([]dto.UserDTO, error)
}

type UserService struct {
	userRepository repositories.UserRepositoryInterface
}

func NewUserService(userRepository repositories.UserRepositoryInterface) UserServiceInterface {
	return &UserService{
		userRepository: userRepository,
	}
}

// UserEntityToDTO отдаёт пользователя без хэша пароля.
func UserEntityToDTO(entity *entities.User) dto.UserDTO {
	return dto.UserDTO{
		ID:    entity.ID,
		Name:  entity.Name,
		Email: entity.Email,
		Phone: entity.Phone,
		Role:  entity.Role,
	}
}

func (s *UserService) GetUsers(ctx context.Context) ([]dto.UserDTO, error) {
	users, err := s.userRepository.GetUsers(ctx)
	if err != nil {
		return nil, err
	}
	dtos := make([]dto.UserDTO, 0, len(users))
	for i := range users {
		dtos = append(dtos, UserEntityToDTO(&users[i]))
	}
	return dtos, nil
}
