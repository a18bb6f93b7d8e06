package logger

import (
	"strings"
)

// MaskToken 脱敏token字符串
// 规则:
//   - 空字符串返回空
//   - 长度<8: 返回 "***"
//   - 长度>=8: 保留前4后4,中间用星号替换
func MaskToken(token string) string {
	if token == "" {
		return ""
	}

	length := len(token)
	if length < 8 {
		return "***"
	}

	// 保留前4位和后4位
	maskedLength := length - 8
	return token[:4] + strings.Repeat("*", maskedLength) + token[length-4:]
}

// SanitizeValue 智能脱敏:根据键名判断是否需要脱敏
// 会自动识别包含敏感关键字的键名并脱敏其值
func SanitizeValue(key string, value interface{}) interface{} {
	keyLower := strings.ToLower(key)

	// 需要脱敏的字段关键字
	sensitiveKeys := []string{
		"token",
		"password",
		"passwd",
		"pwd",
		"secret",
		"api_key",
		"apikey",
		"api-key",
		"authorization",
		"auth",
	}

	// 检查键名是否包含敏感关键字
	for _, sk := range sensitiveKeys {
		if strings.Contains(keyLower, sk) {
			// 如果是字符串类型,使用MaskToken脱敏
			if strVal, ok := value.(string); ok {
				return MaskToken(strVal)
			}
			// 其他类型统一返回掩码
			return "***MASKED***"
		}
	}

	return value
}
