/*
Package user is the application service of Telegram users.

Reads are filtered by the acting user's policy. Writes are administrator only
and persist through the user unit of work.
*/
package user

import (
	"context"

	"tgorders/domain/shared"
	"tgorders/domain/user"
)

type ApplicationService struct {
	uow        user.UnitOfWork
	policy     user.AccessPolicy
	dispatcher *shared.EventDispatcher
}

func NewApplicationService(uow user.UnitOfWork, policy user.AccessPolicy, dispatcher *shared.EventDispatcher) *ApplicationService {
	return &ApplicationService{uow: uow, policy: policy, dispatcher: dispatcher}
}

func (s *ApplicationService) GetUsers(ctx context.Context) ([]*UserResponse, error) {
	if !s.policy.ReadUsers() {
		return nil, shared.NewAccessDeniedError("user", "read users")
	}
	return GetUsers{uow: s.uow}.Execute(ctx)
}

// GetUsersForConfirmation lists the users holding CONFIRMATION.
func (s *ApplicationService) GetUsersForConfirmation(ctx context.Context) ([]*UserResponse, error) {
	if !s.policy.ReadUsers() {
		return nil, shared.NewAccessDeniedError("user", "read users")
	}
	return GetUsers{uow: s.uow, confirmersOnly: true}.Execute(ctx)
}

func (s *ApplicationService) GetUser(ctx context.Context, id int64) (*UserResponse, error) {
	if !s.policy.ReadUser(id) {
		return nil, shared.NewAccessDeniedError("user", "read user")
	}
	u, err := s.Actor(ctx, id)
	if err != nil {
		return nil, err
	}
	return toUserResponse(u), nil
}

// Actor loads the user as a policy actor. Callers resolving the acting user
// use it with an AllowPolicy.
func (s *ApplicationService) Actor(ctx context.Context, id int64) (*user.TelegramUser, error) {
	if !s.policy.ReadUser(id) {
		return nil, shared.NewAccessDeniedError("user", "read user")
	}
	return s.uow.UserReader().UserByID(ctx, id)
}

func (s *ApplicationService) AddUser(ctx context.Context, req CreateUserRequest) (*UserResponse, error) {
	if !s.policy.ModifyUsers() {
		return nil, shared.NewAccessDeniedError("user", "add user")
	}
	return AddUser{uow: s.uow, dispatcher: s.dispatcher}.Execute(ctx, req)
}

func (s *ApplicationService) PatchUser(ctx context.Context, req PatchUserRequest) (*UserResponse, error) {
	if !s.policy.ModifyUsers() {
		return nil, shared.NewAccessDeniedError("user", "edit user")
	}
	return PatchUser{uow: s.uow, dispatcher: s.dispatcher}.Execute(ctx, req)
}

// BlockUser replaces every level of the user with BLOCKED.
func (s *ApplicationService) BlockUser(ctx context.Context, id int64) (*UserResponse, error) {
	if !s.policy.ModifyUsers() {
		return nil, shared.NewAccessDeniedError("user", "block user")
	}
	return BlockUser{uow: s.uow, dispatcher: s.dispatcher}.Execute(ctx, id)
}

// EnsureAdministrator creates the user as ADMINISTRATOR or grants the level to
// an existing one. Used for the admins listed in the configuration.
func (s *ApplicationService) EnsureAdministrator(ctx context.Context, id int64, name string) (*UserResponse, error) {
	if !s.policy.ModifyUsers() {
		return nil, shared.NewAccessDeniedError("user", "add administrator")
	}
	return EnsureAdministrator{uow: s.uow, dispatcher: s.dispatcher}.Execute(ctx, id, name)
}

func (s *ApplicationService) DeleteUser(ctx context.Context, id int64) error {
	if !s.policy.ModifyUsers() {
		return shared.NewAccessDeniedError("user", "delete user")
	}
	return DeleteUser{uow: s.uow, dispatcher: s.dispatcher}.Execute(ctx, id)
}
