package utils

import (
	"github.com/google/uuid"
)

// GenerateUUID 生成一个新的 UUID v7，失败时退回 v4
func GenerateUUID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// IsValidUUID 检查字符串是否是有效的 UUID
func IsValidUUID(uuidStr string) bool {
	_, err := uuid.Parse(uuidStr)
	return err == nil
}
