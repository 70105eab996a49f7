package service

import (
	"strings"

	"github.com/milktea-next/internal/constants"
	"github.com/milktea-next/internal/models"
)

// normalizeSettingValueByKey 按设置键执行归一化，避免非法值入库。
func normalizeSettingValueByKey(key string, value map[string]interface{}) models.JSON {
	switch key {
	case constants.SettingKeyOrderConfig:
		return normalizeOrderSetting(value)
	case constants.SettingKeySiteConfig:
		return normalizeSiteSetting(value)
	default:
		return models.JSON(value)
	}
}

// normalizeOrderSetting 归一化订单设置：支付方式只保留受支持的项。
func normalizeOrderSetting(value map[string]interface{}) models.JSON {
	normalized := make(models.JSON, len(value)+2)
	for key, raw := range value {
		normalized[key] = raw
	}

	methods := parseSettingStringList(value[constants.SettingFieldPaymentMethods])
	supported := make([]interface{}, 0, len(methods))
	for _, method := range methods {
		switch method {
		case constants.PaymentMethodCOD, constants.PaymentMethodBankTransfer:
			supported = append(supported, method)
		}
	}
	if len(supported) == 0 {
		supported = []interface{}{constants.PaymentMethodCOD}
	}
	normalized[constants.SettingFieldPaymentMethods] = supported
	normalized[constants.SettingFieldHotline] = normalizeSettingText(value[constants.SettingFieldHotline])
	return normalized
}

// normalizeSiteSetting 归一化站点配置结构。
func normalizeSiteSetting(value map[string]interface{}) models.JSON {
	normalized := make(models.JSON, len(value)+3)
	for key, raw := range value {
		normalized[key] = raw
	}

	normalized["brand"] = normalizeSiteBrand(value["brand"])
	normalized["contact"] = normalizeSiteContact(value["contact"])

	if raw, ok := value["languages"]; ok {
		normalized["languages"] = normalizeSiteLanguages(raw)
	}

	return normalized
}

func normalizeSiteBrand(raw interface{}) map[string]interface{} {
	result := map[string]interface{}{
		"site_name": "",
		"slogan":    "",
	}
	brandMap, ok := raw.(map[string]interface{})
	if !ok {
		return result
	}
	result["site_name"] = normalizeSettingText(brandMap["site_name"])
	result["slogan"] = normalizeSettingText(brandMap["slogan"])
	return result
}

func normalizeSiteContact(raw interface{}) map[string]interface{} {
	result := map[string]interface{}{
		"phone":    "",
		"zalo":     "",
		"facebook": "",
		"address":  "",
	}
	contactMap, ok := raw.(map[string]interface{})
	if !ok {
		return result
	}
	result["phone"] = normalizeSettingText(contactMap["phone"])
	result["zalo"] = normalizeSettingText(contactMap["zalo"])
	result["facebook"] = normalizeSettingText(contactMap["facebook"])
	result["address"] = normalizeSettingText(contactMap["address"])
	return result
}

func normalizeSiteLanguages(raw interface{}) []string {
	list := parseSettingStringList(raw)
	result := make([]string, 0, len(list))
	for _, lang := range list {
		for _, supported := range constants.SupportedLocales {
			if lang == supported {
				result = append(result, lang)
				break
			}
		}
	}
	if len(result) == 0 {
		return append([]string(nil), constants.SupportedLocales...)
	}
	return result
}

func normalizeSettingText(raw interface{}) string {
	text, ok := raw.(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(text)
}

func parseSettingBool(raw interface{}) bool {
	switch value := raw.(type) {
	case bool:
		return value
	case int:
		return value != 0
	case int64:
		return value != 0
	case float64:
		return value != 0
	case string:
		normalized := strings.ToLower(strings.TrimSpace(value))
		return normalized == "1" || normalized == "true" || normalized == "yes" || normalized == "on"
	default:
		return false
	}
}
