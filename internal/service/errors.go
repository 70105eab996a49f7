package service

import "errors"

// 订单相关错误
var (
	ErrOrderNotFound        = errors.New("order not found")
	ErrOrderFetchFailed     = errors.New("order fetch failed")
	ErrOrderCreateFailed    = errors.New("order create failed")
	ErrOrderUpdateFailed    = errors.New("order update failed")
	ErrOrderStatusInvalid   = errors.New("order status transition not allowed")
	ErrCancelReasonRequired = errors.New("cancel reason required")
	ErrPaymentMethodInvalid = errors.New("payment method invalid")
	ErrReceiverRequired     = errors.New("receiver info required")
)

// 购物车与定价相关错误
var (
	ErrCartEmpty           = errors.New("cart is empty")
	ErrCartItemNotFound    = errors.New("cart item not found")
	ErrInvalidCartItem     = errors.New("invalid cart item")
	ErrQuantityInvalid     = errors.New("quantity must be at least 1")
	ErrSizeIndexInvalid    = errors.New("size index out of range")
	ErrLevelInvalid        = errors.New("sugar or ice level invalid")
	ErrProductNotFound     = errors.New("product not found")
	ErrProductNotAvailable = errors.New("product not available")
	ErrProductPriceInvalid = errors.New("product price invalid")
	ErrToppingNotAvailable = errors.New("topping not available")
)

// 优惠券相关错误
var (
	ErrVoucherNotFound       = errors.New("voucher not found")
	ErrVoucherInactive       = errors.New("voucher inactive")
	ErrVoucherMinOrderNotMet = errors.New("voucher min order value not met")
	ErrVoucherNewUserOnly    = errors.New("voucher for new users only")
	ErrVoucherOutsideHours   = errors.New("voucher outside usable hours")
	ErrVoucherTypeInvalid    = errors.New("voucher type invalid")
	ErrVoucherCodeTaken      = errors.New("voucher code already exists")
	ErrVoucherCodeRequired   = errors.New("voucher code required")
	ErrVoucherValueInvalid   = errors.New("voucher value invalid")
	ErrVoucherHoursInvalid   = errors.New("voucher hour window invalid")
)

// 目录与内容相关错误
var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrCategoryNotEmpty = errors.New("category still has products")
	ErrToppingNotFound  = errors.New("topping not found")
	ErrToppingInvalid   = errors.New("topping name or price invalid")
	ErrPostNotFound     = errors.New("post not found")
	ErrPostTypeInvalid  = errors.New("post type invalid")
	ErrBannerInvalid    = errors.New("banner fields invalid")
	ErrBannerNotFound   = errors.New("banner not found")
	ErrSlugTaken        = errors.New("slug already exists")
	ErrSlugRequired     = errors.New("slug required")
)

// 用户与认证相关错误
var (
	ErrUserNotFound         = errors.New("user not found")
	ErrInvalidEmail         = errors.New("invalid email")
	ErrEmailTaken           = errors.New("email already registered")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrUserDisabled         = errors.New("user disabled")
	ErrAdminNotFound        = errors.New("admin not found")
	ErrCaptchaRequired      = errors.New("captcha required")
	ErrCaptchaInvalid       = errors.New("captcha invalid")
	ErrCaptchaConfigInvalid = errors.New("captcha config invalid")
	ErrPasswordTooWeak      = errors.New("password too weak")
)

// 通知相关错误
var (
	ErrNotificationNotFound = errors.New("notification not found")
)
