package models

import (
	"time"
)

// 注意：
// - 不使用 gorm.Model，显式声明每个字段，避免隐式 DeletedAt
// - 凭据表只保存一行，主键固定为 WiFiCredentialRowID

// WiFiCredentialRowID 唯一一行的主键
const WiFiCredentialRowID int64 = 1

// WiFiCredential 映射 wifi_credentials 表
type WiFiCredential struct {
	ID       int64  `gorm:"column:id;primaryKey"`
	SSID     string `gorm:"column:ssid;type:varchar(32);not null"`
	Password string `gorm:"column:password;type:varchar(32);not null"`
	// 审计字段
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (WiFiCredential) TableName() string { return "wifi_credentials" }
