package app

import (
	"fmt"
	"os"

	"github.com/google/uuid"
)

// GenerateInstanceID 生成实例ID
// 优先使用环境变量IRREMOTE_INSTANCE_ID，否则生成UUID
func GenerateInstanceID() string {
	if id := os.Getenv("IRREMOTE_INSTANCE_ID"); id != "" {
		return id
	}

	// 格式：ir-remote-{hostname}-{uuid}
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}

	shortUUID := uuid.New().String()[:8]
	return fmt.Sprintf("ir-remote-%s-%s", hostname, shortUUID)
}
