package utils

import "github.com/roksva123/go-projecthub-backend/internal/model"

func ConvertUserToResponse(u model.User) model.UserResponse {
	return model.UserResponse{
		ID:     u.ID,
		Name:   u.Name,
		Email:  u.Email,
		Role:   u.Role,
		Avatar: u.Avatar,
	}
}

func ConvertUsersToResponse(users []model.User) []model.UserResponse {
	resp := make([]model.UserResponse, 0, len(users))
	for _, u := range users {
		resp = append(resp, ConvertUserToResponse(u))
	}
	return resp
}
