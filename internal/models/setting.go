package models

// SettingType tells clients how to interpret a setting's stored value.
type SettingType string

const (
	SettingTypeString  SettingType = "string"
	SettingTypeNumber  SettingType = "number"
	SettingTypeBoolean SettingType = "boolean"
	SettingTypeJSON    SettingType = "json"
)

// SystemSetting is a per-user key/value pair. Values are stored as text;
// DataType records how to decode them.
type SystemSetting struct {
	Base
	UserID       string      `gorm:"type:uuid;not null;uniqueIndex:idx_user_setting_key" json:"user_id"`
	SettingKey   string      `gorm:"not null;uniqueIndex:idx_user_setting_key" json:"setting_key"`
	SettingValue string      `gorm:"type:text" json:"setting_value"`
	DataType     SettingType `gorm:"not null;default:string" json:"data_type"`
}
