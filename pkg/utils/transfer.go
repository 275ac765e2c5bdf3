package utils

import (
	"strconv"
)

// Transfer 将 JWT 载荷中的用户标识转换为 int64，无法识别时返回 -1
func Transfer(value interface{}) int64 {
	switch v := value.(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case float64:
		// JSON 数字默认解码为 float64
		return int64(v)
	case string:
		if intValue, err := strconv.ParseInt(v, 10, 64); err == nil {
			return intValue
		}
	}
	return -1
}
