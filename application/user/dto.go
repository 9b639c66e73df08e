package user

import (
	appaccess "tgorders/application/accesslevel"
	"tgorders/domain/shared"
	"tgorders/domain/user"
)

type CreateUserRequest struct {
	ID             int64  `json:"id" validate:"required"`
	Name           string `json:"name" validate:"required,max=100"`
	AccessLevelIDs []int  `json:"access_levels"`
}

// PatchUserRequest edits the user stored under ID. NewID moves it to another
// Telegram id.
type PatchUserRequest struct {
	ID             int64                `json:"-" validate:"required"`
	NewID          shared.Patch[int64]  `json:"id"`
	Name           shared.Patch[string] `json:"name"`
	AccessLevelIDs shared.Patch[[]int]  `json:"access_levels"`
}

type UserResponse struct {
	ID              int64                           `json:"id"`
	Name            string                          `json:"name"`
	AccessLevels    []appaccess.AccessLevelResponse `json:"access_levels"`
	IsBlocked       bool                            `json:"is_blocked"`
	IsAdmin         bool                            `json:"is_admin"`
	CanConfirmOrder bool                            `json:"can_confirm_order"`
}

func toUserResponse(u *user.TelegramUser) *UserResponse {
	return &UserResponse{
		ID:              u.ID(),
		Name:            u.Name(),
		AccessLevels:    appaccess.ToResponses(u.AccessLevels()),
		IsBlocked:       u.IsBlocked(),
		IsAdmin:         u.IsAdmin(),
		CanConfirmOrder: u.CanConfirmOrder(),
	}
}

func toUserResponses(users []*user.TelegramUser) []*UserResponse {
	responses := make([]*UserResponse, len(users))
	for i, u := range users {
		responses[i] = toUserResponse(u)
	}
	return responses
}
