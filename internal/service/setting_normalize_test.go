package service

import (
	"testing"

	"github.com/milktea-next/internal/constants"
	"github.com/milktea-next/internal/models"
)

type mockSettingRepo struct {
	store map[string]models.JSON
}

func newMockSettingRepo() *mockSettingRepo {
	return &mockSettingRepo{store: make(map[string]models.JSON)}
}

func (m *mockSettingRepo) GetByKey(key string) (*models.Setting, error) {
	value, ok := m.store[key]
	if !ok {
		return nil, nil
	}
	return &models.Setting{Key: key, ValueJSON: value}, nil
}

func (m *mockSettingRepo) Upsert(key string, value models.JSON) (*models.Setting, error) {
	m.store[key] = value
	return &models.Setting{Key: key, ValueJSON: value}, nil
}

func TestUpdateOrderSettingNormalized(t *testing.T) {
	repo := newMockSettingRepo()
	svc := NewSettingService(repo)

	result, err := svc.Update(constants.SettingKeyOrderConfig, map[string]interface{}{
		constants.SettingFieldPaymentMethods: []interface{}{"cod", "paypal", "bank_transfer", "cod"},
		constants.SettingFieldHotline:        "  1900 6066  ",
		"extra":                              "keep",
	})
	if err != nil {
		t.Fatalf("update order config failed: %v", err)
	}

	// 不支持的方式被剔除，重复项去重，顺序保持首次出现顺序
	methods, ok := result[constants.SettingFieldPaymentMethods].([]interface{})
	if !ok {
		t.Fatalf("invalid payment_methods payload type: %T", result[constants.SettingFieldPaymentMethods])
	}
	if len(methods) != 2 {
		t.Fatalf("unexpected payment_methods size: %d", len(methods))
	}
	if methods[0] != constants.PaymentMethodCOD || methods[1] != constants.PaymentMethodBankTransfer {
		t.Fatalf("unexpected payment_methods: %+v", methods)
	}
	if result[constants.SettingFieldHotline] != "1900 6066" {
		t.Fatalf("unexpected hotline: %v", result[constants.SettingFieldHotline])
	}
	if result["extra"] != "keep" {
		t.Fatalf("unexpected extra field: %v", result["extra"])
	}
}

func TestUpdateOrderSettingUnsupportedMethodsFallBackToCOD(t *testing.T) {
	repo := newMockSettingRepo()
	svc := NewSettingService(repo)

	result, err := svc.Update(constants.SettingKeyOrderConfig, map[string]interface{}{
		constants.SettingFieldPaymentMethods: []interface{}{"paypal", "stripe"},
	})
	if err != nil {
		t.Fatalf("update order config failed: %v", err)
	}

	methods, ok := result[constants.SettingFieldPaymentMethods].([]interface{})
	if !ok {
		t.Fatalf("invalid payment_methods payload type: %T", result[constants.SettingFieldPaymentMethods])
	}
	if len(methods) != 1 || methods[0] != constants.PaymentMethodCOD {
		t.Fatalf("unexpected payment_methods fallback: %+v", methods)
	}
}

func TestUpdateSiteSettingNormalized(t *testing.T) {
	repo := newMockSettingRepo()
	svc := NewSettingService(repo)

	result, err := svc.Update(constants.SettingKeySiteConfig, map[string]interface{}{
		"brand": map[string]interface{}{
			"site_name": "  Trà Sữa Nhà Làm  ",
			"slogan":    123,
		},
		"contact": map[string]interface{}{
			"phone":    "  0909 123 456  ",
			"zalo":     "  https://zalo.me/demo  ",
			"facebook": 42,
		},
		"languages": []interface{}{" vi-VN ", "en-US", "", "en-US", "zh-CN"},
	})
	if err != nil {
		t.Fatalf("update site config failed: %v", err)
	}

	brand, ok := result["brand"].(map[string]interface{})
	if !ok {
		t.Fatalf("invalid brand payload type: %T", result["brand"])
	}
	if brand["site_name"] != "Trà Sữa Nhà Làm" {
		t.Fatalf("unexpected brand.site_name: %v", brand["site_name"])
	}
	if brand["slogan"] != "" {
		t.Fatalf("unexpected brand.slogan: %v", brand["slogan"])
	}

	contact, ok := result["contact"].(map[string]interface{})
	if !ok {
		t.Fatalf("invalid contact payload type: %T", result["contact"])
	}
	if contact["phone"] != "0909 123 456" {
		t.Fatalf("unexpected contact.phone: %v", contact["phone"])
	}
	if contact["zalo"] != "https://zalo.me/demo" {
		t.Fatalf("unexpected contact.zalo: %v", contact["zalo"])
	}
	if contact["facebook"] != "" {
		t.Fatalf("unexpected contact.facebook: %v", contact["facebook"])
	}
	if contact["address"] != "" {
		t.Fatalf("unexpected contact.address: %v", contact["address"])
	}

	languages, ok := result["languages"].([]string)
	if !ok {
		t.Fatalf("invalid languages payload type: %T", result["languages"])
	}
	if len(languages) != 2 || languages[0] != constants.LocaleViVN || languages[1] != constants.LocaleEnUS {
		t.Fatalf("unexpected languages: %+v", languages)
	}
}

func TestUpdateSiteSettingLanguagesDefault(t *testing.T) {
	repo := newMockSettingRepo()
	svc := NewSettingService(repo)

	result, err := svc.Update(constants.SettingKeySiteConfig, map[string]interface{}{
		"languages": []interface{}{"zh-CN", "ja-JP"},
	})
	if err != nil {
		t.Fatalf("update site config failed: %v", err)
	}

	languages, ok := result["languages"].([]string)
	if !ok {
		t.Fatalf("invalid languages payload type: %T", result["languages"])
	}
	if len(languages) != len(constants.SupportedLocales) {
		t.Fatalf("unexpected languages fallback: %+v", languages)
	}
}
