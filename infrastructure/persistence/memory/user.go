package memory

import (
	"context"
	"sort"

	"tgorders/domain/accesslevel"
	"tgorders/domain/shared"
	"tgorders/domain/user"
)

func userFromRow(row userRow) *user.TelegramUser {
	return user.RebuildFromDTO(user.ReconstructionDTO{ID: row.ID, Name: row.Name, AccessLevels: row.AccessLevels})
}

func userToRow(u *user.TelegramUser) userRow {
	return userRow{ID: u.ID(), Name: u.Name(), AccessLevels: u.AccessLevels()}
}

type userRepository struct{ uow *UnitOfWork }

func (r userRepository) UserByID(ctx context.Context, id int64) (*user.TelegramUser, error) {
	row, ok := r.uow.read().users[id]
	if !ok {
		return nil, user.NewUserNotExistsError(id)
	}
	return userFromRow(row), nil
}

func (r userRepository) AddUser(ctx context.Context, u *user.TelegramUser) error {
	st := r.uow.write()
	if _, exists := st.users[u.ID()]; exists {
		return user.NewUserAlreadyExistsError(u.ID())
	}
	st.users[u.ID()] = userToRow(u)
	u.MarkSaved()
	return nil
}

// EditUser moves the user when its id changed; orders follow like ON UPDATE CASCADE.
func (r userRepository) EditUser(ctx context.Context, u *user.TelegramUser) error {
	st := r.uow.write()
	originalID := u.OriginalID()
	if _, exists := st.users[originalID]; !exists {
		return user.NewUserNotExistsError(originalID)
	}

	if u.ID() != originalID {
		if _, taken := st.users[u.ID()]; taken {
			return user.NewUserAlreadyExistsError(u.ID())
		}
		delete(st.users, originalID)
		for id, o := range st.orders {
			if o.CreatorID == originalID {
				o.CreatorID = u.ID()
				st.orders[id] = o
			}
		}
	}

	st.users[u.ID()] = userToRow(u)
	u.MarkSaved()
	return nil
}

func (r userRepository) DeleteUser(ctx context.Context, id int64) error {
	st := r.uow.write()
	if _, exists := st.users[id]; !exists {
		return user.NewUserNotExistsError(id)
	}
	for _, o := range st.orders {
		if o.CreatorID == id {
			return user.NewCantDeleteWithOrdersError(id)
		}
	}
	delete(st.users, id)
	return nil
}

type userReader struct{ uow *UnitOfWork }

func (r userReader) find(spec shared.Specification[*user.TelegramUser]) []*user.TelegramUser {
	result := make([]*user.TelegramUser, 0)
	for _, row := range r.uow.read().users {
		u := userFromRow(row)
		if spec == nil || spec.IsSatisfiedBy(u) {
			result = append(result, u)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Name() != result[j].Name() {
			return result[i].Name() < result[j].Name()
		}
		return result[i].ID() < result[j].ID()
	})
	return result
}

func (r userReader) AllUsers(ctx context.Context) ([]*user.TelegramUser, error) {
	return r.find(nil), nil
}

func (r userReader) UsersForConfirmation(ctx context.Context) ([]*user.TelegramUser, error) {
	return r.find(user.ForConfirmation()), nil
}

func (r userReader) UserByID(ctx context.Context, id int64) (*user.TelegramUser, error) {
	return userRepository(r).UserByID(ctx, id)
}

type accessLevelReader struct{ uow *UnitOfWork }

func (r accessLevelReader) AllAccessLevels(ctx context.Context) ([]accesslevel.AccessLevel, error) {
	return accesslevel.All(), nil
}

func (r accessLevelReader) UserAccessLevels(ctx context.Context, userID int64) ([]accesslevel.AccessLevel, error) {
	row, ok := r.uow.read().users[userID]
	if !ok {
		return nil, user.NewUserNotExistsError(userID)
	}
	return accesslevel.Normalize(row.AccessLevels), nil
}
