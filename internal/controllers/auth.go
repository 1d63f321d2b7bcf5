package controllers

import (
	"net/http"

	"gearguard/internal/dto"
	"gearguard/internal/entities"
	"gearguard/internal/services"
	apperrors "gearguard/pkg/errors"
	"gearguard/pkg/service"
	"gearguard/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type AuthController struct {
	authService services.AuthServiceInterface
	jwtSvc      service.JWTService
	logger      *zap.Logger
}

func NewAuthController(
	authService services.AuthServiceInterface,
	jwtSvc service.JWTService,
	logger *zap.Logger,
) *AuthController {
	return &AuthController{
		authService: authService,
		jwtSvc:      jwtSvc,
		logger:      logger,
	}
}

func (ctrl *AuthController) errorResponse(c echo.Context, err error) error {
	return utils.ErrorResponse(c, err, ctrl.logger)
}

func (ctrl *AuthController) Register(c echo.Context) error {
	var payload dto.RegisterDTO
	if err := c.Bind(&payload); err != nil {
		ctrl.logger.Debug("Register: ошибка привязки данных", zap.Error(err))
		return ctrl.errorResponse(c, apperrors.NewValidationError("Invalid request body"))
	}
	if err := c.Validate(&payload); err != nil {
		return ctrl.errorResponse(c, err)
	}

	user, err := ctrl.authService.Register(c.Request().Context(), payload)
	if err != nil {
		ctrl.logger.Warn("Register: регистрация не удалась", zap.Error(err))
		return ctrl.errorResponse(c, err)
	}
	return ctrl.respondWithToken(c, user, "User registered successfully", http.StatusCreated)
}

func (ctrl *AuthController) Login(c echo.Context) error {
	var payload dto.LoginDTO
	if err := c.Bind(&payload); err != nil {
		ctrl.logger.Debug("Login: ошибка привязки данных", zap.Error(err))
		return ctrl.errorResponse(c, apperrors.NewValidationError("Invalid request body"))
	}

	user, err := ctrl.authService.Login(c.Request().Context(), payload)
	if err != nil {
		ctrl.logger.Info("Login: вход отклонён", zap.Error(err))
		return ctrl.errorResponse(c, err)
	}
	return ctrl.respondWithToken(c, user, "Login successful", http.StatusOK)
}

// Logout ничего не отзывает: токен живёт до истечения срока, клиент просто его забывает.
func (ctrl *AuthController) Logout(c echo.Context) error {
	return utils.SuccessResponse(c, nil, "Logged out successfully", http.StatusOK)
}

func (ctrl *AuthController) Me(c echo.Context) error {
	userID, err := utils.GetUserIDFromCtx(c.Request().Context())
	if err != nil {
		return ctrl.errorResponse(c, err)
	}

	user, err := ctrl.authService.GetUserByID(c.Request().Context(), userID)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, dto.MeResponseDTO{Success: true, User: services.UserEntityToDTO(user)})
}

func (ctrl *AuthController) respondWithToken(c echo.Context, user *entities.User, message string, code int) error {
	token, err := ctrl.jwtSvc.GenerateToken(user.ID, user.Email)
	if err != nil {
		ctrl.logger.Error("не удалось выпустить токен", zap.Uint64("userID", user.ID), zap.Error(err))
		return ctrl.errorResponse(c, err)
	}

	return c.JSON(code, dto.AuthResponseDTO{
		Success: true,
		Message: message,
		Token:   token,
		User: dto.AuthUserDTO{
			ID:    user.ID,
			Name:  user.Name,
			Email: user.Email,
			Role:  user.Role,
		},
	})
}
