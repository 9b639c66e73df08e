package po

import (
	"tgorders/domain/accesslevel"
	"tgorders/domain/user"
)

// UserPO Telegram user persistence object; the id is the Telegram id.
type UserPO struct {
	ID   int64  `gorm:"primaryKey;autoIncrement:false"`
	Name string `gorm:"size:255;not null"`
}

func (UserPO) TableName() string {
	return "telegram_user"
}

// AccessLevelPO mirrors the static catalog.
type AccessLevelPO struct {
	ID   int    `gorm:"primaryKey;autoIncrement:false"`
	Name string `gorm:"size:32;not null"`
}

func (AccessLevelPO) TableName() string {
	return "access_level"
}

// UserAccessLevelPO links a user with one level.
type UserAccessLevelPO struct {
	UserID        int64 `gorm:"primaryKey;autoIncrement:false"`
	AccessLevelID int   `gorm:"primaryKey;autoIncrement:false"`
}

func (UserAccessLevelPO) TableName() string {
	return "user_access_level"
}

func FromUserDomain(u *user.TelegramUser) (*UserPO, []UserAccessLevelPO) {
	levels := u.AccessLevels()
	links := make([]UserAccessLevelPO, len(levels))
	for i, l := range levels {
		links[i] = UserAccessLevelPO{UserID: u.ID(), AccessLevelID: l.ID()}
	}
	return &UserPO{ID: u.ID(), Name: u.Name()}, links
}

func (po *UserPO) ToDomain(links []UserAccessLevelPO) *user.TelegramUser {
	return user.RebuildFromDTO(user.ReconstructionDTO{ID: po.ID, Name: po.Name, AccessLevels: LevelsToDomain(links)})
}

// LevelsToDomain resolves the level ids through the catalog. Ids unknown to
// the catalog are dropped.
func LevelsToDomain(links []UserAccessLevelPO) []accesslevel.AccessLevel {
	levels := make([]accesslevel.AccessLevel, 0, len(links))
	for _, link := range links {
		if level, err := accesslevel.ByID(link.AccessLevelID); err == nil {
			levels = append(levels, level)
		}
	}
	return accesslevel.Normalize(levels)
}

// CatalogRows is the seed content of the access_level table.
func CatalogRows() []AccessLevelPO {
	all := accesslevel.All()
	rows := make([]AccessLevelPO, len(all))
	for i, l := range all {
		rows[i] = AccessLevelPO{ID: l.ID(), Name: string(l.Name())}
	}
	return rows
}
