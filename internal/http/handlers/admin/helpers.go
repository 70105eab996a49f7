package admin

import (
	"time"

	handlershared "github.com/milktea-next/internal/http/handlers/shared"
)

// 前台全局配置缓存键，后台改动设置后需要主动失效。
const publicConfigCacheKey = "public:config"

func normalizePagination(page, pageSize int) (int, int) {
	return handlershared.NormalizePagination(page, pageSize)
}

func parseTimeNullable(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
