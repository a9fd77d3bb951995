package model

const (
	WeekStartMonday = "monday"
	WeekStartSunday = "sunday"
)

// Settings is the per-user preference record.
type Settings struct {
	UserID        uint   `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	AutoBackup    bool   `gorm:"not null;default:true" json:"auto_backup"`
	Notifications bool   `gorm:"not null;default:true" json:"notifications"`
	WeekStart     string `gorm:"not null;default:'monday'" json:"week_start"`
	Theme         string `gorm:"not null;default:'light'" json:"theme"`
	Language      string `gorm:"not null;default:'en'" json:"language"`
}

// TableName keeps the historical table name.
func (Settings) TableName() string {
	return "user_settings"
}

// DefaultSettings returns the preferences a new account starts with.
func DefaultSettings(userID uint) Settings {
	return Settings{
		UserID:        userID,
		AutoBackup:    true,
		Notifications: true,
		WeekStart:     WeekStartMonday,
		Theme:         "light",
		Language:      "en",
	}
}

// SettingsPatch is a partial settings update: only non-nil fields are written.
type SettingsPatch struct {
	AutoBackup    *bool
	Notifications *bool
	WeekStart     *string `validate:"omitempty,oneof=monday sunday"`
	Theme         *string `validate:"omitempty,min=1"`
	Language      *string `validate:"omitempty,min=1"`
}

// Empty reports whether the patch would change nothing.
func (p SettingsPatch) Empty() bool {
	return p.AutoBackup == nil && p.Notifications == nil && p.WeekStart == nil &&
		p.Theme == nil && p.Language == nil
}
