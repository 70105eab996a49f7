package constants

// 订单状态常量
const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"
)

// 订单操作角色常量
const (
	ActorCustomer = "customer"
	ActorAdmin    = "admin"
)

// 支付方式常量（仅记录，后端不做支付处理）
const (
	PaymentMethodCOD          = "cod"
	PaymentMethodBankTransfer = "bank_transfer"
)

// 优惠券类型常量
const (
	VoucherTypeFixed   = "fixed"
	VoucherTypePercent = "percent"
)

// 杯型加价常量（每档加价，单位：越南盾）
const (
	SizeStepAmount = 5000
)

// 甜度常量
const (
	SugarLevelNone    = "0%"
	SugarLevelQuarter = "25%"
	SugarLevelHalf    = "50%"
	SugarLevelMost    = "75%"
	SugarLevelFull    = "100%"
)

// 冰量常量
const (
	IceLevelNone    = "0%"
	IceLevelQuarter = "25%"
	IceLevelHalf    = "50%"
	IceLevelMost    = "75%"
	IceLevelFull    = "100%"
)

// 支持的甜度/冰量档位
var SupportedLevels = []string{SugarLevelNone, SugarLevelQuarter, SugarLevelHalf, SugarLevelMost, SugarLevelFull}

// 文章类型常量
const (
	PostTypeNews   = "news"
	PostTypeNotice = "notice"
)

// 用户状态常量
const (
	UserStatusActive   = "active"
	UserStatusDisabled = "disabled"
)

// 验证码提供方常量
const (
	CaptchaProviderNone  = "none"
	CaptchaProviderImage = "image"
)

// 验证码校验场景常量
const (
	CaptchaSceneAdminLogin = "admin_login"
)

// 通知业务类型常量
const (
	NotificationBizTypeOrder = "order"
)

// 队列常量
const (
	QueueDefault          = "default"
	TaskOrderStatusNotify = "order:status_notify"
)

// 事件频道常量
const (
	EventChannelOrderChanged = "orders:changed"
)

// 缓存默认配置常量
const (
	RedisPrefixDefault = "mt"
)

// 设置键常量
const (
	SettingKeySiteConfig       = "site_config"
	SettingKeyOrderConfig      = "order_config"
	SettingKeyCaptchaConfig    = "captcha_config"
	SettingFieldPaymentMethods = "payment_methods"
	SettingFieldHotline        = "hotline"
)

// 站点语言常量
const (
	LocaleViVN = "vi-VN"
	LocaleEnUS = "en-US"
)

// 支持的站点语言顺序（含回退顺序）
var SupportedLocales = []string{LocaleViVN, LocaleEnUS}

// Banner 位置常量
const (
	BannerPositionHomeHero = "home_hero"
)

// Banner 跳转类型常量
const (
	BannerLinkTypeNone     = "none"
	BannerLinkTypeInternal = "internal"
	BannerLinkTypeExternal = "external"
)
