package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/medialog/medialog-server/internal/domain"
	"github.com/medialog/medialog-server/internal/service"
)

func (s *Server) registerUserRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "createUser",
		Method:      http.MethodPost,
		Path:        "/api/v1/users",
		Summary:     "Create user",
		Description: "Registers a new user account",
		Tags:        []string{"Users"},
	}, s.handleCreateUser)

	huma.Register(s.api, huma.Operation{
		OperationID: "getUser",
		Method:      http.MethodGet,
		Path:        "/api/v1/users/{userID}",
		Summary:     "Get user",
		Description: "Returns a user by ID",
		Tags:        []string{"Users"},
	}, s.handleGetUser)

	huma.Register(s.api, huma.Operation{
		OperationID: "listUsers",
		Method:      http.MethodGet,
		Path:        "/api/v1/users",
		Summary:     "List users",
		Description: "Returns all registered users",
		Tags:        []string{"Users"},
	}, s.handleListUsers)
}

// === DTOs ===

// UserResponse contains user data in API responses.
type UserResponse struct {
	ID          string    `json:"id" doc:"User ID"`
	Email       string    `json:"email" doc:"Email address"`
	DisplayName string    `json:"display_name" doc:"Display name"`
	CreatedAt   time.Time `json:"created_at" doc:"Creation time"`
	UpdatedAt   time.Time `json:"updated_at" doc:"Last update time"`
}

// CreateUserRequest is the request body for creating a user.
type CreateUserRequest struct {
	Email       string `json:"email" doc:"Email address, unique case-insensitively"`
	DisplayName string `json:"display_name" doc:"Display name"`
}

// CreateUserInput wraps the create user request for Huma.
type CreateUserInput struct {
	Body CreateUserRequest
}

// UserOutput wraps the user response for Huma.
type UserOutput struct {
	Body UserResponse
}

// GetUserInput contains parameters for getting a user.
type GetUserInput struct {
	UserID string `path:"userID" doc:"User ID"`
}

// ListUsersResponse contains a list of users.
type ListUsersResponse struct {
	Users []UserResponse `json:"users" doc:"List of users"`
}

// ListUsersOutput wraps the list users response for Huma.
type ListUsersOutput struct {
	Body ListUsersResponse
}

func toUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

// === Handlers ===

func (s *Server) handleCreateUser(ctx context.Context, input *CreateUserInput) (*UserOutput, error) {
	user, err := s.services.User.CreateUser(ctx, service.CreateUserInput{
		Email:       input.Body.Email,
		DisplayName: input.Body.DisplayName,
	})
	if err != nil {
		return nil, err
	}

	return &UserOutput{Body: toUserResponse(user)}, nil
}

func (s *Server) handleGetUser(ctx context.Context, input *GetUserInput) (*UserOutput, error) {
	user, err := s.services.User.GetUser(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	return &UserOutput{Body: toUserResponse(user)}, nil
}

func (s *Server) handleListUsers(ctx context.Context, _ *struct{}) (*ListUsersOutput, error) {
	users, err := s.services.User.ListUsers(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]UserResponse, len(users))
	for i, u := range users {
		resp[i] = toUserResponse(u)
	}

	return &ListUsersOutput{Body: ListUsersResponse{Users: resp}}, nil
}
