package dto

type RegisterDTO struct {
	Name     string  `json:"name" validate:"omitempty,max=255"`
	Email    string  `json:"email" validate:"omitempty,email"`
	Password string  `json:"password"`
	Phone    *string `json:"phone" validate:"omitempty,max=50"`
	Role     *string `json:"role" validate:"omitempty,oneof=employee technician supervisor manager admin"`
}

type LoginDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthUserDTO struct {
	ID    uint64 `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// AuthResponseDTO - ответ register/login: токен и пользователь лежат на верхнем уровне.
type AuthResponseDTO struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Token   string      `json:"token"`
	User    AuthUserDTO `json:"user"`
}

type MeResponseDTO struct {
	Success bool    `json:"success"`
	User    UserDTO `json:"user"`
}
