package user

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"skinMatch/domain"
	"skinMatch/pkg/logger"
	"skinMatch/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/pobyzaarif/goshortcute"
)

// UserRepository contract interface
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id uint) (domain.User, error)
	FindByEmail(ctx context.Context, email string) (domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id uint) error
	UpdateEmailVerification(ctx context.Context, id uint, isVerified bool) error
}

// NotificationRepository contract interface
type NotificationRepository interface {
	SendEmail(toName, toEmail, subject, message string) (err error)
}

// TokenRepository stores issued session tokens so logout can revoke them.
type TokenRepository interface {
	StoreToken(ctx context.Context, userID string, token string, ttl time.Duration) error
	GetUserIDByToken(ctx context.Context, token string) (string, error)
	DeleteToken(ctx context.Context, userID string, token string) error
}

type UserService struct {
	userRepo                UserRepository
	validate                *validator.Validate
	notifRepo               NotificationRepository
	tokenRepo               TokenRepository
	appEmailVerificationKey string
	appDeploymentUrl        string
}

const (
	verificationCodeTTL      = 5 // minutes
	sessionTokenTTL          = 24 * time.Hour
	SubjectRegisterAccount   = "Activate Your SkinMatch Account!"
	EmailBodyRegisterAccount = `Hi %v, activate your account by opening the link below</br></br>%v</br>note: the link is only valid for %v minutes`
)

const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

var validRoles = map[string]bool{
	RoleCustomer: true,
	RoleAdmin:    true,
}

func NewUserService(
	userRepo UserRepository,
	validate *validator.Validate,
	notifRepo NotificationRepository,
	tokenRepo TokenRepository,
	appEmailVerificationKey string,
	appDeploymentUrl string,
) *UserService {
	return &UserService{
		userRepo:                userRepo,
		validate:                validate,
		notifRepo:               notifRepo,
		tokenRepo:               tokenRepo,
		appEmailVerificationKey: appEmailVerificationKey,
		appDeploymentUrl:        appDeploymentUrl,
	}
}

func (s *UserService) Register(ctx context.Context, user *domain.User) (domain.User, error) {
	if err := s.validate.Var(user.Email, "required,email"); err != nil {
		logger.Error("Invalid email format", err)
		return domain.User{}, errors.New("invalid email format")
	}

	if err := s.validate.Var(user.Password, "required,min=6"); err != nil {
		logger.Error("Invalid user password", err)
		return domain.User{}, errors.New("password must be at least 6 characters")
	}

	existingUser, err := s.userRepo.FindByEmail(ctx, user.Email)
	if err == nil && existingUser.ID > 0 {
		return domain.User{}, errors.New("email already exists")
	}

	passwordHash, err := utils.HashPassword(user.Password)
	if err != nil {
		logger.Error("Failed to hash password", err)
		return domain.User{}, errors.New("failed to hash password")
	}

	newUser := domain.User{
		FullName:   user.FullName,
		Email:      user.Email,
		Password:   string(passwordHash),
		IsVerified: false,
		Role:       RoleCustomer,
	}

	if err := s.userRepo.Create(ctx, &newUser); err != nil {
		logger.Error("Failed to create new user", err)
		return domain.User{}, err
	}

	expAt := time.Now().Add(time.Minute * verificationCodeTTL).Unix()

	verificationCode := fmt.Sprintf("%v|%v", newUser.Email, expAt)
	verificationCodeEncrypt, err := goshortcute.AESCBCEncrypt([]byte(verificationCode), []byte(s.appEmailVerificationKey))
	if err != nil {
		logger.Error("Failed to encrypt verification code", err)
		return domain.User{}, errors.New("failed to build verification link")
	}
	strEncode := goshortcute.StringtoBase64Encode(verificationCodeEncrypt)
	activationLink := s.appDeploymentUrl + "/api/v1/users/email-verification/" + strEncode

	if s.notifRepo != nil {
		err = s.notifRepo.SendEmail(newUser.FullName, newUser.Email, SubjectRegisterAccount,
			fmt.Sprintf(EmailBodyRegisterAccount, newUser.FullName, activationLink, verificationCodeTTL))
		if err != nil {
			logger.Warn("Failed to send verification email", err)
		}
	}

	newUser.Password = ""
	return newUser, nil
}

func (s *UserService) Login(ctx context.Context, email, password string) (string, domain.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		logger.Error("Invalid user credentials", err)
		return "", domain.User{}, errors.New("invalid credentials")
	}

	if err := utils.ComparePassword(user.Password, password); err != nil {
		return "", domain.User{}, errors.New("incorrect password")
	}

	if !user.IsVerified {
		return "", domain.User{}, errors.New("email address has not been verified")
	}

	token, err := utils.GenerateJWT(user.ID, user.Role, sessionTokenTTL)
	if err != nil {
		logger.Error("Failed to generate token", err)
		return "", domain.User{}, errors.New("failed to generate token")
	}

	if s.tokenRepo != nil {
		userIDStr := strconv.FormatUint(uint64(user.ID), 10)
		if err := s.tokenRepo.StoreToken(ctx, userIDStr, token, sessionTokenTTL); err != nil {
			logger.Error("Failed to store session token", err)
			return "", domain.User{}, errors.New("failed to create session")
		}
	}

	user.Password = ""
	return token, user, nil
}

func (s *UserService) Logout(ctx context.Context, userID uint, token string) error {
	if s.tokenRepo == nil {
		return nil
	}

	userIDStr := strconv.FormatUint(uint64(userID), 10)
	return s.tokenRepo.DeleteToken(ctx, userIDStr, token)
}

// ValidateTokenFromRedis resolves a session token to the user id it was
// issued for. Used by the auth middleware.
func (s *UserService) ValidateTokenFromRedis(ctx context.Context, token string) (string, error) {
	if s.tokenRepo == nil {
		return "", errors.New("token store is not configured")
	}

	return s.tokenRepo.GetUserIDByToken(ctx, token)
}

func (s *UserService) VerifyEmail(ctx context.Context, verificationCodeEncrypt string) error {
	strDecode := goshortcute.StringtoBase64Decode(verificationCodeEncrypt)
	verificationCodeDecrypt, err := goshortcute.AESCBCDecrypt([]byte(strDecode), []byte(s.appEmailVerificationKey))
	if err != nil {
		logger.Error("Verifying email error", err)
		return errors.New("invalid or expired url")
	}

	verificationCode := strings.Split(verificationCodeDecrypt, "|")
	if len(verificationCode) != 2 {
		return errors.New("invalid or expired url")
	}

	email := verificationCode[0]

	ts, err := strconv.ParseInt(verificationCode[1], 10, 64)
	if err != nil {
		return errors.New("invalid or expired url")
	}
	if time.Now().After(time.Unix(ts, 0)) {
		return errors.New("invalid or expired url")
	}

	getUser, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		logger.Error("Verifying email error", err)
		return errors.New("failed to get user by email")
	}

	if getUser.IsVerified {
		return errors.New("invalid or expired url")
	}

	if err := s.userRepo.UpdateEmailVerification(ctx, getUser.ID, true); err != nil {
		logger.Error("Verify email err", err)
		return err
	}

	return nil
}

func (s *UserService) GetUserByID(ctx context.Context, id uint) (domain.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return domain.User{}, err
	}

	user.Password = ""
	return user, nil
}

// UpdateUser updates the mutable account fields.
func (s *UserService) UpdateUser(ctx context.Context, id uint, updateData *domain.User) (domain.User, error) {
	existingUser, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return domain.User{}, err
	}

	if updateData.FullName != "" {
		existingUser.FullName = updateData.FullName
	}

	if updateData.Email != "" {
		if err := s.validate.Var(updateData.Email, "required,email"); err != nil {
			return domain.User{}, errors.New("invalid email format")
		}

		userWithEmail, err := s.userRepo.FindByEmail(ctx, updateData.Email)
		if err == nil && userWithEmail.ID != id {
			return domain.User{}, errors.New("email already exists")
		}
		existingUser.Email = updateData.Email
	}

	if updateData.Password != "" {
		if err := s.validate.Var(updateData.Password, "required,min=6"); err != nil {
			return domain.User{}, errors.New("password must be at least 6 characters")
		}

		passwordHash, err := utils.HashPassword(updateData.Password)
		if err != nil {
			return domain.User{}, errors.New("failed to hash password")
		}
		existingUser.Password = string(passwordHash)
	}

	if updateData.Role != "" {
		if !validRoles[updateData.Role] {
			return domain.User{}, errors.New("invalid role")
		}
		existingUser.Role = updateData.Role
	}

	if err := s.userRepo.Update(ctx, &existingUser); err != nil {
		logger.Error("Failed to update user", err)
		return domain.User{}, err
	}

	existingUser.Password = ""
	return existingUser, nil
}

func (s *UserService) DeleteUser(ctx context.Context, id uint) error {
	if _, err := s.userRepo.FindByID(ctx, id); err != nil {
		return err
	}

	return s.userRepo.Delete(ctx, id)
}
