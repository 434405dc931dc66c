package handlers

import (
	"context"
	"errors"
	"time"

	"github.com/m1z23r/drift/pkg/drift"

	"github.com/jshn22/jira-clone/internal/models"
	"github.com/jshn22/jira-clone/internal/services"
	"github.com/jshn22/jira-clone/pkg/dto"
)

type AuthHandler struct {
	userService  UserServiceInterface
	tokenService TokenServiceInterface
	jwtService   *services.JWTService
}

func NewAuthHandler(userService UserServiceInterface, tokenService TokenServiceInterface, jwtService *services.JWTService) *AuthHandler {
	return &AuthHandler{
		userService:  userService,
		tokenService: tokenService,
		jwtService:   jwtService,
	}
}

func (h *AuthHandler) Register(c *drift.Context) {
	var req dto.RegisterRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	ctx := context.Background()

	user, err := h.userService.Register(ctx, req.Name, req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	tokens, err := h.issueTokens(ctx, user)
	if err != nil {
		c.InternalServerError("failed to generate tokens")
		return
	}

	_ = c.JSON(201, dto.AuthResponse{
		User:  userResponse(user),
		Token: *tokens,
	})
}

func (h *AuthHandler) Login(c *drift.Context) {
	var req dto.LoginRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if req.Email == "" || req.Password == "" {
		c.BadRequest("email and password are required")
		return
	}

	ctx := context.Background()

	user, err := h.userService.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		c.Unauthorized("invalid credentials")
		return
	}

	tokens, err := h.issueTokens(ctx, user)
	if err != nil {
		c.InternalServerError("failed to generate tokens")
		return
	}

	_ = c.JSON(200, dto.AuthResponse{
		User:  userResponse(user),
		Token: *tokens,
	})
}

func (h *AuthHandler) Refresh(c *drift.Context) {
	var req dto.RefreshTokenRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if req.RefreshToken == "" {
		c.BadRequest("refresh_token is required")
		return
	}

	userID, err := h.jwtService.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		c.Unauthorized("invalid refresh token")
		return
	}

	ctx := context.Background()

	user, err := h.userService.GetByID(ctx, userID)
	if err != nil {
		c.Unauthorized("user not found")
		return
	}

	pair, err := h.jwtService.GenerateTokenPair(user.ID, user.Email)
	if err != nil {
		c.InternalServerError("failed to generate tokens")
		return
	}

	oldHash := services.HashToken(req.RefreshToken)
	newHash := services.HashToken(pair.RefreshToken)
	expiresAt := time.Now().Add(h.jwtService.RefreshExpiry())

	err = h.tokenService.Rotate(ctx, user.ID, oldHash, newHash, expiresAt)
	if errors.Is(err, models.ErrNotFound) {
		// A signed token we no longer hold was replayed, so it leaked.
		// Kill every session for this user.
		_ = h.tokenService.RevokeAllUserTokens(ctx, user.ID)
		c.Unauthorized("refresh token not found or expired")
		return
	}
	if err != nil {
		c.InternalServerError("failed to rotate refresh token")
		return
	}

	_ = c.JSON(200, map[string]any{"token": dto.TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresIn:    pair.ExpiresIn,
	}})
}

func (h *AuthHandler) issueTokens(ctx context.Context, user *models.User) (*dto.TokenResponse, error) {
	pair, err := h.jwtService.GenerateTokenPair(user.ID, user.Email)
	if err != nil {
		return nil, err
	}

	tokenHash := services.HashToken(pair.RefreshToken)
	expiresAt := time.Now().Add(h.jwtService.RefreshExpiry())
	if err := h.tokenService.StoreRefreshToken(ctx, user.ID, tokenHash, expiresAt); err != nil {
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresIn:    pair.ExpiresIn,
	}, nil
}

func userResponse(user *models.User) dto.UserResponse {
	return dto.UserResponse{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
	}
}
