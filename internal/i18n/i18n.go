package i18n

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
)

// 支持的语言
const (
	LocaleVI = "vi-VN"
	LocaleEN = "en-US"
)

// DefaultLocale 默认语言
const DefaultLocale = LocaleVI

// ResolveLocale 解析请求语言。
// 优先级：query 参数 lang > Accept-Language 头 > 默认语言。
func ResolveLocale(c *gin.Context) string {
	if c == nil {
		return DefaultLocale
	}
	if lang := strings.TrimSpace(c.Query("lang")); lang != "" {
		if locale, ok := normalizeLocale(lang); ok {
			return locale
		}
	}
	header := c.GetHeader("Accept-Language")
	for _, part := range strings.Split(header, ",") {
		tag := strings.TrimSpace(strings.SplitN(part, ";", 2)[0])
		if tag == "" {
			continue
		}
		if locale, ok := normalizeLocale(tag); ok {
			return locale
		}
	}
	return DefaultLocale
}

func normalizeLocale(tag string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(tag)) {
	case "vi", "vi-vn":
		return LocaleVI, true
	case "en", "en-us", "en-gb":
		return LocaleEN, true
	}
	return "", false
}

// T 返回指定语言的文案。
// 找不到时回退默认语言，仍找不到时返回 key 本身。
func T(locale, key string) string {
	if table, ok := messages[locale]; ok {
		if msg, ok := table[key]; ok {
			return msg
		}
	}
	if locale != DefaultLocale {
		if msg, ok := messages[DefaultLocale][key]; ok {
			return msg
		}
	}
	return key
}

// Sprintf 返回带参数格式化的文案。
func Sprintf(locale, key string, args ...interface{}) string {
	return fmt.Sprintf(T(locale, key), args...)
}

var messages = map[string]map[string]string{
	LocaleVI: {
		// 通用
		"error.bad_request":           "Yêu cầu không hợp lệ",
		"error.unauthorized":          "Vui lòng đăng nhập",
		"error.forbidden":             "Không có quyền truy cập",
		"error.not_found":             "Không tìm thấy dữ liệu",
		"error.save_failed":           "Lưu dữ liệu thất bại",
		"error.config_fetch_failed":   "Không tải được cấu hình",
		"error.rate_limited":          "Thao tác quá thường xuyên, vui lòng thử lại sau",
		"error.rate_limit_unavailable": "Hệ thống đang bận, vui lòng thử lại sau",
		"error.login_too_many":        "Đăng nhập sai quá nhiều lần, vui lòng thử lại sau",

		// 认证
		"error.auth_header_missing":  "Thiếu thông tin xác thực",
		"error.auth_header_invalid":  "Thông tin xác thực không hợp lệ",
		"error.token_invalid":        "Phiên đăng nhập không hợp lệ",
		"error.token_revoked":        "Phiên đăng nhập đã hết hạn, vui lòng đăng nhập lại",
		"error.login_invalid":        "Email hoặc mật khẩu không đúng",
		"error.login_failed":         "Đăng nhập thất bại",
		"error.admin_login_invalid":  "Tên đăng nhập hoặc mật khẩu không đúng",
		"error.user_disabled":        "Tài khoản đã bị khóa",
		"error.user_id_type_invalid": "Thông tin phiên không hợp lệ",

		// 验证码
		"error.captcha_required":        "Vui lòng nhập mã xác nhận",
		"error.captcha_invalid":         "Mã xác nhận không đúng",
		"error.captcha_config_invalid":  "Cấu hình mã xác nhận không hợp lệ",
		"error.captcha_generate_failed": "Không tạo được mã xác nhận",
		"error.captcha_verify_failed":   "Xác minh mã xác nhận thất bại",
		"error.captcha_unavailable":     "Dịch vụ mã xác nhận tạm thời không khả dụng",

		// 密码策略
		"error.password_weak":            "Mật khẩu chưa đủ mạnh",
		"error.password_old_invalid":     "Mật khẩu hiện tại không đúng",
		"error.password_min_length":      "Mật khẩu phải có ít nhất %d ký tự",
		"error.password_require_upper":   "Mật khẩu phải chứa chữ in hoa",
		"error.password_require_lower":   "Mật khẩu phải chứa chữ thường",
		"error.password_require_number":  "Mật khẩu phải chứa chữ số",
		"error.password_require_special": "Mật khẩu phải chứa ký tự đặc biệt",

		// 用户
		"error.email_invalid":   "Email không hợp lệ",
		"error.email_exists":    "Email đã được đăng ký",
		"error.register_failed": "Đăng ký thất bại",
		"error.user_not_found":  "Không tìm thấy người dùng",
		"error.user_fetch_failed":  "Không tải được danh sách người dùng",
		"error.user_update_failed": "Cập nhật người dùng thất bại",
		"error.user_id_invalid":    "Mã người dùng không hợp lệ",
		"error.profile_empty":      "Không có thông tin cần cập nhật",

		// 商品
		"error.product_not_found":      "Không tìm thấy món",
		"error.product_fetch_failed":   "Không tải được danh sách món",
		"error.product_create_failed":  "Thêm món thất bại",
		"error.product_update_failed":  "Cập nhật món thất bại",
		"error.product_delete_failed":  "Xóa món thất bại",
		"error.product_not_available":  "Món hiện không phục vụ",
		"error.product_price_invalid":  "Giá món không hợp lệ",
		"error.slug_exists":            "Slug đã tồn tại",

		// 分类
		"error.category_not_found":     "Không tìm thấy danh mục",
		"error.category_fetch_failed":  "Không tải được danh mục",
		"error.category_create_failed": "Thêm danh mục thất bại",
		"error.category_update_failed": "Cập nhật danh mục thất bại",
		"error.category_delete_failed": "Xóa danh mục thất bại",
		"error.category_in_use":        "Danh mục vẫn còn món, không thể xóa",

		// Topping
		"error.topping_not_found":      "Không tìm thấy topping",
		"error.topping_fetch_failed":   "Không tải được danh sách topping",
		"error.topping_create_failed":  "Thêm topping thất bại",
		"error.topping_update_failed":  "Cập nhật topping thất bại",
		"error.topping_delete_failed":  "Xóa topping thất bại",
		"error.topping_invalid":        "Topping không hợp lệ",
		"error.topping_not_available":  "Topping hiện không phục vụ",

		// 文章
		"error.post_not_found":     "Không tìm thấy bài viết",
		"error.post_fetch_failed":  "Không tải được bài viết",
		"error.post_create_failed": "Thêm bài viết thất bại",
		"error.post_update_failed": "Cập nhật bài viết thất bại",
		"error.post_delete_failed": "Xóa bài viết thất bại",
		"error.post_type_invalid":  "Loại bài viết không hợp lệ",

		// Banner
		"error.banner_not_found":     "Không tìm thấy banner",
		"error.banner_fetch_failed":  "Không tải được banner",
		"error.banner_create_failed": "Thêm banner thất bại",
		"error.banner_update_failed": "Cập nhật banner thất bại",
		"error.banner_delete_failed": "Xóa banner thất bại",
		"error.banner_invalid":       "Thông tin banner không hợp lệ",

		// 购物车
		"error.cart_fetch_failed":    "Không tải được giỏ hàng",
		"error.cart_update_failed":   "Cập nhật giỏ hàng thất bại",
		"error.cart_item_not_found":  "Không tìm thấy món trong giỏ",
		"error.cart_empty":           "Giỏ hàng đang trống",
		"error.cart_item_invalid":    "Món trong giỏ không hợp lệ",
		"error.quantity_invalid":     "Số lượng không hợp lệ",
		"error.size_invalid":         "Cỡ ly không hợp lệ",
		"error.level_invalid":        "Mức đá hoặc đường không hợp lệ",

		// 订单
		"error.order_not_found":          "Không tìm thấy đơn hàng",
		"error.order_fetch_failed":       "Không tải được đơn hàng",
		"error.order_create_failed":      "Đặt hàng thất bại",
		"error.order_update_failed":      "Cập nhật đơn hàng thất bại",
		"error.order_status_invalid":     "Không thể chuyển trạng thái đơn hàng",
		"error.order_cancel_not_allowed": "Đơn hàng không thể hủy ở trạng thái hiện tại",
		"error.cancel_reason_required":   "Vui lòng nhập lý do hủy đơn",
		"error.payment_method_invalid":   "Phương thức thanh toán không hợp lệ",
		"error.receiver_required":        "Vui lòng nhập thông tin người nhận",

		// Voucher
		"error.voucher_not_found":     "Mã giảm giá không tồn tại",
		"error.voucher_inactive":      "Mã giảm giá đã ngừng áp dụng",
		"error.voucher_min_order":     "Đơn hàng chưa đạt giá trị tối thiểu của mã giảm giá",
		"error.voucher_new_user_only": "Mã giảm giá chỉ dành cho khách hàng mới",
		"error.voucher_outside_hours": "Mã giảm giá không áp dụng vào khung giờ này",
		"error.voucher_type_invalid":  "Loại mã giảm giá không hợp lệ",
		"error.voucher_code_exists":   "Mã giảm giá đã tồn tại",
		"error.voucher_code_required": "Vui lòng nhập mã giảm giá",
		"error.voucher_value_invalid": "Giá trị giảm giá không hợp lệ",
		"error.voucher_hours_invalid": "Khung giờ áp dụng không hợp lệ",
		"error.voucher_fetch_failed":  "Không tải được mã giảm giá",
		"error.voucher_create_failed": "Thêm mã giảm giá thất bại",
		"error.voucher_update_failed": "Cập nhật mã giảm giá thất bại",
		"error.voucher_delete_failed": "Xóa mã giảm giá thất bại",

		// 通知
		"error.notification_not_found":     "Không tìm thấy thông báo",
		"error.notification_fetch_failed":  "Không tải được thông báo",
		"error.notification_update_failed": "Cập nhật thông báo thất bại",

		// 设置
		"error.jwt_secret_missing":    "Cấu hình xác thực chưa sẵn sàng",
		"error.settings_fetch_failed": "Không tải được cấu hình hệ thống",
		"error.settings_save_failed":  "Lưu cấu hình hệ thống thất bại",

		// 后台管理员
		"error.admin_id_invalid":            "Mã quản trị viên không hợp lệ",
		"error.admin_id_type_invalid":       "Định dạng mã quản trị viên không hợp lệ",
		"error.admin_username_invalid":      "Tên đăng nhập quản trị không hợp lệ",
		"error.admin_username_exists":       "Tên đăng nhập quản trị đã tồn tại",
		"error.admin_create_failed":         "Thêm quản trị viên thất bại",
		"error.admin_update_failed":         "Cập nhật quản trị viên thất bại",
		"error.admin_delete_failed":         "Xóa quản trị viên thất bại",
		"error.admin_delete_self_forbidden": "Không thể tự xóa tài khoản của mình",
		"error.admin_delete_protected":      "Không thể xóa tài khoản quản trị gốc",
		"error.admin_delete_last_forbidden": "Không thể xóa quản trị viên cuối cùng",
	},
	LocaleEN: {
		// 通用
		"error.bad_request":           "Invalid request",
		"error.unauthorized":          "Please sign in",
		"error.forbidden":             "Permission denied",
		"error.not_found":             "Not found",
		"error.save_failed":           "Failed to save data",
		"error.config_fetch_failed":   "Failed to load configuration",
		"error.rate_limited":          "Too many requests, please try again later",
		"error.rate_limit_unavailable": "Service busy, please try again later",
		"error.login_too_many":        "Too many login attempts, please try again later",

		// 认证
		"error.auth_header_missing":  "Missing credentials",
		"error.auth_header_invalid":  "Invalid credentials",
		"error.token_invalid":        "Invalid session",
		"error.token_revoked":        "Session expired, please sign in again",
		"error.login_invalid":        "Incorrect email or password",
		"error.login_failed":         "Login failed",
		"error.admin_login_invalid":  "Incorrect username or password",
		"error.user_disabled":        "Account has been disabled",
		"error.user_id_type_invalid": "Invalid session data",

		// 验证码
		"error.captcha_required":        "Please enter the captcha",
		"error.captcha_invalid":         "Incorrect captcha",
		"error.captcha_config_invalid":  "Invalid captcha configuration",
		"error.captcha_generate_failed": "Failed to generate captcha",
		"error.captcha_verify_failed":   "Captcha verification failed",
		"error.captcha_unavailable":     "Captcha service temporarily unavailable",

		// 密码策略
		"error.password_weak":            "Password is too weak",
		"error.password_old_invalid":     "Current password is incorrect",
		"error.password_min_length":      "Password must be at least %d characters",
		"error.password_require_upper":   "Password must contain an uppercase letter",
		"error.password_require_lower":   "Password must contain a lowercase letter",
		"error.password_require_number":  "Password must contain a digit",
		"error.password_require_special": "Password must contain a special character",

		// 用户
		"error.email_invalid":   "Invalid email address",
		"error.email_exists":    "Email is already registered",
		"error.register_failed": "Registration failed",
		"error.user_not_found":  "User not found",
		"error.user_fetch_failed":  "Failed to load users",
		"error.user_update_failed": "Failed to update user",
		"error.user_id_invalid":    "Invalid user ID",
		"error.profile_empty":      "Nothing to update",

		// 商品
		"error.product_not_found":      "Drink not found",
		"error.product_fetch_failed":   "Failed to load menu",
		"error.product_create_failed":  "Failed to create drink",
		"error.product_update_failed":  "Failed to update drink",
		"error.product_delete_failed":  "Failed to delete drink",
		"error.product_not_available":  "Drink is currently unavailable",
		"error.product_price_invalid":  "Invalid drink price",
		"error.slug_exists":            "Slug already exists",

		// 分类
		"error.category_not_found":     "Category not found",
		"error.category_fetch_failed":  "Failed to load categories",
		"error.category_create_failed": "Failed to create category",
		"error.category_update_failed": "Failed to update category",
		"error.category_delete_failed": "Failed to delete category",
		"error.category_in_use":        "Category still has drinks and cannot be deleted",

		// Topping
		"error.topping_not_found":      "Topping not found",
		"error.topping_fetch_failed":   "Failed to load toppings",
		"error.topping_create_failed":  "Failed to create topping",
		"error.topping_update_failed":  "Failed to update topping",
		"error.topping_delete_failed":  "Failed to delete topping",
		"error.topping_invalid":        "Invalid topping",
		"error.topping_not_available":  "Topping is currently unavailable",

		// 文章
		"error.post_not_found":     "Post not found",
		"error.post_fetch_failed":  "Failed to load posts",
		"error.post_create_failed": "Failed to create post",
		"error.post_update_failed": "Failed to update post",
		"error.post_delete_failed": "Failed to delete post",
		"error.post_type_invalid":  "Invalid post type",

		// Banner
		"error.banner_not_found":     "Banner not found",
		"error.banner_fetch_failed":  "Failed to load banners",
		"error.banner_create_failed": "Failed to create banner",
		"error.banner_update_failed": "Failed to update banner",
		"error.banner_delete_failed": "Failed to delete banner",
		"error.banner_invalid":       "Invalid banner data",

		// 购物车
		"error.cart_fetch_failed":   "Failed to load cart",
		"error.cart_update_failed":  "Failed to update cart",
		"error.cart_item_not_found": "Cart item not found",
		"error.cart_empty":          "Cart is empty",
		"error.cart_item_invalid":   "Invalid cart item",
		"error.quantity_invalid":    "Invalid quantity",
		"error.size_invalid":        "Invalid cup size",
		"error.level_invalid":       "Invalid ice or sugar level",

		// 订单
		"error.order_not_found":          "Order not found",
		"error.order_fetch_failed":       "Failed to load orders",
		"error.order_create_failed":      "Failed to place order",
		"error.order_update_failed":      "Failed to update order",
		"error.order_status_invalid":     "Order status transition not allowed",
		"error.order_cancel_not_allowed": "Order cannot be cancelled in its current status",
		"error.cancel_reason_required":   "Please provide a cancellation reason",
		"error.payment_method_invalid":   "Invalid payment method",
		"error.receiver_required":        "Please provide receiver information",

		// Voucher
		"error.voucher_not_found":     "Voucher not found",
		"error.voucher_inactive":      "Voucher is no longer active",
		"error.voucher_min_order":     "Order does not meet the voucher minimum value",
		"error.voucher_new_user_only": "Voucher is for new customers only",
		"error.voucher_outside_hours": "Voucher is not valid at this hour",
		"error.voucher_type_invalid":  "Invalid voucher type",
		"error.voucher_code_exists":   "Voucher code already exists",
		"error.voucher_code_required": "Please enter a voucher code",
		"error.voucher_value_invalid": "Invalid voucher value",
		"error.voucher_hours_invalid": "Invalid voucher hour window",
		"error.voucher_fetch_failed":  "Failed to load vouchers",
		"error.voucher_create_failed": "Failed to create voucher",
		"error.voucher_update_failed": "Failed to update voucher",
		"error.voucher_delete_failed": "Failed to delete voucher",

		// 通知
		"error.notification_not_found":     "Notification not found",
		"error.notification_fetch_failed":  "Failed to load notifications",
		"error.notification_update_failed": "Failed to update notification",

		// 设置
		"error.jwt_secret_missing":    "Authentication is not configured",
		"error.settings_fetch_failed": "Failed to load settings",
		"error.settings_save_failed":  "Failed to save settings",

		// 后台管理员
		"error.admin_id_invalid":            "Invalid admin ID",
		"error.admin_id_type_invalid":       "Invalid admin ID format",
		"error.admin_username_invalid":      "Invalid admin username",
		"error.admin_username_exists":       "Admin username already exists",
		"error.admin_create_failed":         "Failed to create admin",
		"error.admin_update_failed":         "Failed to update admin",
		"error.admin_delete_failed":         "Failed to delete admin",
		"error.admin_delete_self_forbidden": "You cannot delete your own account",
		"error.admin_delete_protected":      "The root admin account cannot be deleted",
		"error.admin_delete_last_forbidden": "The last admin cannot be deleted",
	},
}
