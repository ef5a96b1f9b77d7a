package service

import (
	"Tripmate/internal/api/dto"
	"Tripmate/internal/model"
	"Tripmate/internal/pkg/consts"
	"Tripmate/internal/pkg/security"
	"Tripmate/internal/repository"
	"context"
	"errors"
	"time"
)

type UserService interface {
	Register(ctx context.Context, req *dto.RegisterDTO) (*dto.UserDTO, error)
	Login(ctx context.Context, req *dto.CredentialDTO) (*dto.TokenDTO, error)
	Logout(ctx context.Context, token string) error
	IsTokenRevoked(ctx context.Context, signature string) (bool, error)
	GetUserInfo(ctx context.Context, id uint64) (*dto.UserDTO, error)
}

type UserServiceImpl struct {
	userRepo repository.UserRepo
	cache    Cache
}

func NewUserService(userRepo repository.UserRepo, cache Cache) UserService {
	return &UserServiceImpl{
		userRepo: userRepo,
		cache:    cache,
	}
}

func toUserDTO(user *model.User) *dto.UserDTO {
	return &dto.UserDTO{
		UserID:   user.ID,
		Username: user.Username,
		Nickname: user.Nickname,
		Role:     user.Role,
	}
}

func (s *UserServiceImpl) Register(ctx context.Context, req *dto.RegisterDTO) (*dto.UserDTO, error) {
	exist, err := s.userRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if exist != nil {
		return nil, ErrUserUsernameExist
	}

	passwordHash, err := security.HashPassword(req.Password)
	if errors.Is(err, security.ErrPasswordTooLong) || errors.Is(err, security.ErrEmptyPassword) {
		return nil, ErrParamInvalid
	}
	if err != nil {
		return nil, err
	}
	user := &model.User{
		Username: req.Username,
		Password: passwordHash,
		Nickname: req.Nickname,
		Role:     model.RoleUser,
	}
	if err = s.userRepo.Create(ctx, user); err != nil {
		if isDuplicateKey(err) {
			return nil, ErrUserUsernameExist
		}
		return nil, err
	}
	return toUserDTO(user), nil
}

func (s *UserServiceImpl) Login(ctx context.Context, req *dto.CredentialDTO) (*dto.TokenDTO, error) {
	user, err := s.userRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrPasswordIncorrect
	}
	if err = security.CheckPasswordHash(req.Password, user.Password); err != nil {
		if errors.Is(err, security.ErrInvalidCredentials) {
			return nil, ErrPasswordIncorrect
		}
		return nil, err
	}

	token, expiresAt, err := security.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, err
	}
	return &dto.TokenDTO{Token: token, ExpiresAt: expiresAt.Unix()}, nil
}

// Logout 将 Token 签名加入黑名单，有效期与 Token 剩余时间一致
func (s *UserServiceImpl) Logout(ctx context.Context, token string) error {
	claims, err := security.ValidateToken(token)
	if err != nil {
		return UnauthorizedError
	}
	signature, err := security.ExtractSignature(token)
	if err != nil {
		return UnauthorizedError
	}
	ttl := security.Expiration()
	if claims.ExpiresAt != nil {
		ttl = time.Until(claims.ExpiresAt.Time)
	}
	if ttl <= 0 || s.cache == nil {
		return nil
	}
	return s.cache.SetWithExpiration(ctx, consts.TokenBlacklistKey+signature, "1", ttl)
}

func (s *UserServiceImpl) IsTokenRevoked(ctx context.Context, signature string) (bool, error) {
	if s.cache == nil {
		return false, nil
	}
	val, err := s.cache.GetValue(ctx, consts.TokenBlacklistKey+signature)
	if err != nil {
		return false, err
	}
	return val != "", nil
}

func (s *UserServiceImpl) GetUserInfo(ctx context.Context, id uint64) (*dto.UserDTO, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return toUserDTO(user), nil
}
