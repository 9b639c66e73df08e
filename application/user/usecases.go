package user

import (
	"context"
	"errors"

	"tgorders/application/usecase"
	"tgorders/domain/accesslevel"
	"tgorders/domain/shared"
	"tgorders/domain/user"
	"tgorders/pkg/logger"
	"tgorders/pkg/validator"

	"go.uber.org/zap"
)

// GetUsers lists every user, or only those holding CONFIRMATION.
type GetUsers struct {
	uow            user.UnitOfWork
	confirmersOnly bool
}

func (uc GetUsers) Execute(ctx context.Context) ([]*UserResponse, error) {
	read := uc.uow.UserReader().AllUsers
	if uc.confirmersOnly {
		read = uc.uow.UserReader().UsersForConfirmation
	}
	users, err := read(ctx)
	if err != nil {
		return nil, err
	}
	return toUserResponses(users), nil
}

type AddUser struct {
	uow        user.UnitOfWork
	dispatcher *shared.EventDispatcher
}

func (uc AddUser) Execute(ctx context.Context, req CreateUserRequest) (*UserResponse, error) {
	if err := validator.Validate("user", req); err != nil {
		return nil, err
	}

	levels, err := accesslevel.FromIDs(req.AccessLevelIDs)
	if err != nil {
		return nil, err
	}
	u, err := user.New(req.ID, req.Name, levels)
	if err != nil {
		return nil, err
	}

	if err := uc.uow.Users().AddUser(ctx, u); err != nil {
		return nil, usecase.Abort(ctx, uc.uow, err)
	}
	if err := usecase.Commit(ctx, uc.uow, uc.dispatcher, u); err != nil {
		return nil, err
	}

	logger.Info("user persisted", zap.Int64("user_id", u.ID()), zap.String("name", u.Name()))
	return toUserResponse(u), nil
}

// PatchUser edits the user stored under req.ID. A new id moves the user.
type PatchUser struct {
	uow        user.UnitOfWork
	dispatcher *shared.EventDispatcher
}

func (uc PatchUser) Execute(ctx context.Context, req PatchUserRequest) (*UserResponse, error) {
	if err := validator.Validate("user", req); err != nil {
		return nil, err
	}
	if req.NewID.IsNull() || req.Name.IsNull() || req.AccessLevelIDs.IsNull() {
		return nil, shared.NewValidationError("user", "", "id, name and access_levels can't be null")
	}

	u, err := uc.uow.Users().UserByID(ctx, req.ID)
	if err != nil {
		return nil, usecase.Abort(ctx, uc.uow, err)
	}
	if err := applyPatch(u, req); err != nil {
		return nil, usecase.Abort(ctx, uc.uow, err)
	}
	return save(ctx, uc.uow, uc.dispatcher, u, "user edited")
}

func applyPatch(u *user.TelegramUser, req PatchUserRequest) error {
	if newID, ok := req.NewID.Value(); ok {
		if err := u.ChangeID(newID); err != nil {
			return err
		}
	}
	if name, ok := req.Name.Value(); ok {
		if err := u.ChangeName(name); err != nil {
			return err
		}
	}
	if ids, ok := req.AccessLevelIDs.Value(); ok {
		levels, err := accesslevel.FromIDs(ids)
		if err != nil {
			return err
		}
		if err := u.SetAccessLevels(levels); err != nil {
			return err
		}
	}
	return nil
}

type BlockUser struct {
	uow        user.UnitOfWork
	dispatcher *shared.EventDispatcher
}

func (uc BlockUser) Execute(ctx context.Context, id int64) (*UserResponse, error) {
	u, err := uc.uow.Users().UserByID(ctx, id)
	if err != nil {
		return nil, usecase.Abort(ctx, uc.uow, err)
	}
	u.Block()
	return save(ctx, uc.uow, uc.dispatcher, u, "user blocked")
}

// EnsureAdministrator adds ADMINISTRATOR to an existing user, replacing
// BLOCKED, or creates the user with it.
type EnsureAdministrator struct {
	uow        user.UnitOfWork
	dispatcher *shared.EventDispatcher
}

func (uc EnsureAdministrator) Execute(ctx context.Context, id int64, name string) (*UserResponse, error) {
	u, err := uc.uow.Users().UserByID(ctx, id)
	switch {
	case err == nil:
		levels := append(u.AccessLevels(), accesslevel.Administrator)
		if u.IsBlocked() {
			levels = []accesslevel.AccessLevel{accesslevel.Administrator}
		}
		if err := u.SetAccessLevels(levels); err != nil {
			return nil, usecase.Abort(ctx, uc.uow, err)
		}
		return save(ctx, uc.uow, uc.dispatcher, u, "administrator granted")
	case errors.Is(err, shared.ErrNotFound):
		return AddUser{uow: uc.uow, dispatcher: uc.dispatcher}.Execute(ctx, CreateUserRequest{
			ID:             id,
			Name:           name,
			AccessLevelIDs: []int{accesslevel.Administrator.ID()},
		})
	default:
		return nil, usecase.Abort(ctx, uc.uow, err)
	}
}

type DeleteUser struct {
	uow        user.UnitOfWork
	dispatcher *shared.EventDispatcher
}

func (uc DeleteUser) Execute(ctx context.Context, id int64) error {
	if err := uc.uow.Users().DeleteUser(ctx, id); err != nil {
		return usecase.Abort(ctx, uc.uow, err)
	}
	if err := usecase.Commit(ctx, uc.uow, uc.dispatcher); err != nil {
		return err
	}

	logger.Info("user deleted", zap.Int64("user_id", id))
	return nil
}

func save(ctx context.Context, uow user.UnitOfWork, dispatcher *shared.EventDispatcher, u *user.TelegramUser, msg string) (*UserResponse, error) {
	if err := uow.Users().EditUser(ctx, u); err != nil {
		return nil, usecase.Abort(ctx, uow, err)
	}
	if err := usecase.Commit(ctx, uow, dispatcher, u); err != nil {
		return nil, err
	}

	logger.Info(msg, zap.Int64("user_id", u.ID()))
	return toUserResponse(u), nil
}
