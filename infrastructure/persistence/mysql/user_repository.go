package mysql

import (
	"context"
	"errors"
	"fmt"

	"tgorders/domain/accesslevel"
	"tgorders/domain/shared"
	"tgorders/domain/user"
	"tgorders/infrastructure/persistence/mysql/po"
	"tgorders/infrastructure/persistence/specification"

	"gorm.io/gorm"
)

func mapUserError(err error, id int64) error {
	v, ok := constraintViolation(err)
	switch {
	case !ok:
	case v.is(errDuplicateEntry, constraintPrimary):
		return user.NewUserAlreadyExistsError(id)
	case v.is(errRowIsReferenced, constraintOrderCreator):
		return user.NewCantDeleteWithOrdersError(id)
	case v.is(errNoReferencedRow, constraintUserLevelCatalog):
		return fmt.Errorf("user %d: access level missing from catalog table: %w", id, err)
	}
	return fmt.Errorf("user %d: %w", id, err)
}

func findUser(db *gorm.DB, id int64) (*user.TelegramUser, error) {
	var row po.UserPO
	if err := db.First(&row, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, user.NewUserNotExistsError(id)
		}
		return nil, fmt.Errorf("user %d: %w", id, err)
	}
	var links []po.UserAccessLevelPO
	if err := db.Where("user_id = ?", id).Find(&links).Error; err != nil {
		return nil, fmt.Errorf("user %d levels: %w", id, err)
	}
	return row.ToDomain(links), nil
}

// findUsers loads the matching users with their levels, ordered by name.
func findUsers(db *gorm.DB, spec shared.Specification[*user.TelegramUser]) ([]*user.TelegramUser, error) {
	query := db.Order("name").Order("id")
	if spec != nil {
		cond, err := specification.Users(spec)
		if err != nil {
			return nil, err
		}
		query = query.Scopes(cond.Scope())
	}

	var rows []po.UserPO
	if err := query.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("users: %w", err)
	}
	if len(rows) == 0 {
		return []*user.TelegramUser{}, nil
	}

	ids := make([]int64, len(rows))
	for i, row := range rows {
		ids[i] = row.ID
	}
	var links []po.UserAccessLevelPO
	if err := db.Where("user_id IN ?", ids).Find(&links).Error; err != nil {
		return nil, fmt.Errorf("users levels: %w", err)
	}
	byUser := make(map[int64][]po.UserAccessLevelPO, len(rows))
	for _, link := range links {
		byUser[link.UserID] = append(byUser[link.UserID], link)
	}

	result := make([]*user.TelegramUser, len(rows))
	for i := range rows {
		result[i] = rows[i].ToDomain(byUser[rows[i].ID])
	}
	return result, nil
}

type userRepository struct{ uow *UnitOfWork }

func (r userRepository) UserByID(ctx context.Context, id int64) (*user.TelegramUser, error) {
	db, err := r.uow.begin(ctx)
	if err != nil {
		return nil, err
	}
	return findUser(db, id)
}

func (r userRepository) AddUser(ctx context.Context, u *user.TelegramUser) error {
	db, err := r.uow.begin(ctx)
	if err != nil {
		return err
	}
	row, links := po.FromUserDomain(u)
	if err := db.Create(row).Error; err != nil {
		return mapUserError(err, u.ID())
	}
	if len(links) > 0 {
		if err := db.Create(&links).Error; err != nil {
			return mapUserError(err, u.ID())
		}
	}
	u.MarkSaved()
	return nil
}

// EditUser moves the row first when the id changed; orders and level links
// follow through ON UPDATE CASCADE.
func (r userRepository) EditUser(ctx context.Context, u *user.TelegramUser) error {
	db, err := r.uow.begin(ctx)
	if err != nil {
		return err
	}
	originalID := u.OriginalID()

	result := db.Model(&po.UserPO{}).
		Where("id = ?", originalID).
		Updates(map[string]any{"id": u.ID(), "name": u.Name()})
	if result.Error != nil {
		return mapUserError(result.Error, u.ID())
	}
	if result.RowsAffected == 0 {
		return user.NewUserNotExistsError(originalID)
	}

	row, links := po.FromUserDomain(u)
	if err := db.Where("user_id = ?", row.ID).Delete(&po.UserAccessLevelPO{}).Error; err != nil {
		return mapUserError(err, u.ID())
	}
	if len(links) > 0 {
		if err := db.Create(&links).Error; err != nil {
			return mapUserError(err, u.ID())
		}
	}
	u.MarkSaved()
	return nil
}

func (r userRepository) DeleteUser(ctx context.Context, id int64) error {
	db, err := r.uow.begin(ctx)
	if err != nil {
		return err
	}
	result := db.Where("id = ?", id).Delete(&po.UserPO{})
	if result.Error != nil {
		return mapUserError(result.Error, id)
	}
	if result.RowsAffected == 0 {
		return user.NewUserNotExistsError(id)
	}
	return nil
}

type userReader struct{ uow *UnitOfWork }

func (r userReader) AllUsers(ctx context.Context) ([]*user.TelegramUser, error) {
	return findUsers(r.uow.read(ctx), nil)
}

func (r userReader) UsersForConfirmation(ctx context.Context) ([]*user.TelegramUser, error) {
	return findUsers(r.uow.read(ctx), user.ForConfirmation())
}

func (r userReader) UserByID(ctx context.Context, id int64) (*user.TelegramUser, error) {
	return findUser(r.uow.read(ctx), id)
}

type accessLevelReader struct{ uow *UnitOfWork }

// AllAccessLevels returns the seeded rows in catalog order.
func (r accessLevelReader) AllAccessLevels(ctx context.Context) ([]accesslevel.AccessLevel, error) {
	var rows []po.AccessLevelPO
	if err := r.uow.read(ctx).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("access levels: %w", err)
	}
	links := make([]po.UserAccessLevelPO, len(rows))
	for i, row := range rows {
		links[i] = po.UserAccessLevelPO{AccessLevelID: row.ID}
	}
	return po.LevelsToDomain(links), nil
}

func (r accessLevelReader) UserAccessLevels(ctx context.Context, userID int64) ([]accesslevel.AccessLevel, error) {
	u, err := findUser(r.uow.read(ctx), userID)
	if err != nil {
		return nil, err
	}
	return u.AccessLevels(), nil
}
