package main

import (
	"time"

	"github.com/milktea-next/internal/config"
	"github.com/milktea-next/internal/constants"
	"github.com/milktea-next/internal/logger"
	"github.com/milktea-next/internal/models"
)

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	// 添加分类
	categories := []models.Category{
		{Slug: "tra-sua", Name: "Trà sữa", SortOrder: 1},
		{Slug: "ca-phe", Name: "Cà phê", SortOrder: 2},
		{Slug: "tra-trai-cay", Name: "Trà trái cây", SortOrder: 3},
	}

	for _, cat := range categories {
		var existing models.Category
		if err := models.DB.Where("slug = ?", cat.Slug).First(&existing).Error; err != nil {
			if err := models.DB.Create(&cat).Error; err != nil {
				stdLog.Printf("Failed to create category %s: %v", cat.Slug, err)
			} else {
				stdLog.Printf("Created category: %s", cat.Slug)
			}
		} else {
			stdLog.Printf("Category already exists: %s", cat.Slug)
		}
	}

	// 获取分类ID
	categoryIDs := map[string]uint{}
	var categoryList []models.Category
	if err := models.DB.Where("slug IN ?", []string{"tra-sua", "ca-phe", "tra-trai-cay"}).Find(&categoryList).Error; err != nil {
		stdLog.Printf("Failed to load categories: %v", err)
	}
	for _, cat := range categoryList {
		categoryIDs[cat.Slug] = cat.ID
	}

	// 添加配料
	toppings := []models.Topping{
		{Name: "Trân châu đen", Price: models.NewMoneyFromInt(7000), SortOrder: 1},
		{Name: "Thạch dừa", Price: models.NewMoneyFromInt(5000), SortOrder: 2},
		{Name: "Pudding trứng", Price: models.NewMoneyFromInt(8000), SortOrder: 3},
		{Name: "Kem cheese", Price: models.NewMoneyFromInt(10000), SortOrder: 4},
	}
	for _, topping := range toppings {
		var existing models.Topping
		if err := models.DB.Where("name = ?", topping.Name).First(&existing).Error; err != nil {
			if err := models.DB.Create(&topping).Error; err != nil {
				stdLog.Printf("Failed to create topping %s: %v", topping.Name, err)
			} else {
				stdLog.Printf("Created topping: %s", topping.Name)
			}
		}
	}
	var toppingList []models.Topping
	if err := models.DB.Find(&toppingList).Error; err != nil {
		stdLog.Printf("Failed to load toppings: %v", err)
	}

	// 添加商品
	salePrice := models.NewMoneyFromInt(25000)
	products := []models.Product{
		{
			CategoryID:  categoryIDs["tra-sua"],
			Slug:        "tra-sua-truyen-thong",
			Name:        "Trà sữa truyền thống",
			Description: "Trà đen đậm vị kết hợp sữa tươi, ngọt dịu dễ uống",
			BasePrice:   models.NewMoneyFromInt(30000),
			Sizes:       models.StringArray{"S", "M", "L"},
			Image:       "https://images.unsplash.com/photo-1558857563-b371033873b8?w=800",
			IsActive:    true,
			SortOrder:   1,
		},
		{
			CategoryID:  categoryIDs["tra-sua"],
			Slug:        "tra-sua-matcha",
			Name:        "Trà sữa matcha",
			Description: "Matcha Nhật Bản nguyên chất, thơm béo vị sữa",
			BasePrice:   models.NewMoneyFromInt(35000),
			Sizes:       models.StringArray{"S", "M", "L"},
			Image:       "https://images.unsplash.com/photo-1515823064-d6e0c04616a7?w=800",
			IsActive:    true,
			SortOrder:   2,
		},
		{
			CategoryID:  categoryIDs["ca-phe"],
			Slug:        "ca-phe-sua-da",
			Name:        "Cà phê sữa đá",
			Description: "Cà phê phin truyền thống pha cùng sữa đặc",
			BasePrice:   models.NewMoneyFromInt(28000),
			SalePrice:   &salePrice,
			Sizes:       models.StringArray{"S", "M"},
			Image:       "https://images.unsplash.com/photo-1559925393-8be0ec4767c8?w=800",
			IsActive:    true,
			SortOrder:   3,
		},
		{
			CategoryID:  categoryIDs["tra-trai-cay"],
			Slug:        "tra-dao-cam-sa",
			Name:        "Trà đào cam sả",
			Description: "Trà đào thanh mát với cam tươi và sả",
			BasePrice:   models.NewMoneyFromInt(32000),
			Sizes:       models.StringArray{"S", "M", "L"},
			Image:       "https://images.unsplash.com/photo-1499638673689-79a0b5115d87?w=800",
			IsActive:    true,
			SortOrder:   4,
		},
	}
	for _, product := range products {
		var existing models.Product
		if err := models.DB.Where("slug = ?", product.Slug).First(&existing).Error; err != nil {
			if err := models.DB.Create(&product).Error; err != nil {
				stdLog.Printf("Failed to create product %s: %v", product.Slug, err)
				continue
			}
			// 为饮品挂上全部配料
			if len(toppingList) > 0 {
				if err := models.DB.Model(&product).Association("Toppings").Append(&toppingList); err != nil {
					stdLog.Printf("Failed to attach toppings for %s: %v", product.Slug, err)
				}
			}
			stdLog.Printf("Created product: %s", product.Slug)
		} else {
			stdLog.Printf("Product already exists: %s", product.Slug)
		}
	}

	// 添加优惠券
	nightStart, nightEnd := 22, 2
	vouchers := []models.Voucher{
		{
			Code:          "GIAM10",
			Title:         "Giảm 10% cho đơn từ 50.000đ",
			Type:          constants.VoucherTypePercent,
			Value:         models.NewMoneyFromInt(10),
			MinOrderValue: models.NewMoneyFromInt(50000),
			IsActive:      true,
		},
		{
			Code:          "FREESHIP15",
			Title:         "Giảm ngay 15.000đ",
			Type:          constants.VoucherTypeFixed,
			Value:         models.NewMoneyFromInt(15000),
			MinOrderValue: models.NewMoneyFromInt(0),
			IsActive:      true,
		},
		{
			Code:          "DEMKHUYA",
			Title:         "Ưu đãi đêm khuya 20%",
			Type:          constants.VoucherTypePercent,
			Value:         models.NewMoneyFromInt(20),
			MinOrderValue: models.NewMoneyFromInt(0),
			StartHour:     &nightStart,
			EndHour:       &nightEnd,
			IsActive:      true,
		},
		{
			Code:          "CHAOMUNG",
			Title:         "Khách mới giảm 20.000đ",
			Type:          constants.VoucherTypeFixed,
			Value:         models.NewMoneyFromInt(20000),
			MinOrderValue: models.NewMoneyFromInt(40000),
			ForNewUser:    true,
			IsActive:      true,
		},
	}
	for _, voucher := range vouchers {
		var existing models.Voucher
		if err := models.DB.Where("code = ?", voucher.Code).First(&existing).Error; err != nil {
			if err := models.DB.Create(&voucher).Error; err != nil {
				stdLog.Printf("Failed to create voucher %s: %v", voucher.Code, err)
			} else {
				stdLog.Printf("Created voucher: %s", voucher.Code)
			}
		} else {
			stdLog.Printf("Voucher already exists: %s", voucher.Code)
		}
	}

	// 添加 Banner
	banners := []models.Banner{
		{
			Name:      "seed-home-hero-1",
			Position:  constants.BannerPositionHomeHero,
			Title:     "Trà sữa tươi mỗi ngày",
			Subtitle:  "Đặt hàng qua app, nhận ưu đãi riêng",
			Image:     "https://images.unsplash.com/photo-1525385133512-2f3bdd039054?w=1200",
			LinkType:  constants.BannerLinkTypeNone,
			IsActive:  true,
			SortOrder: 1,
		},
	}
	for _, banner := range banners {
		var existing models.Banner
		if err := models.DB.Where("name = ?", banner.Name).First(&existing).Error; err != nil {
			if err := models.DB.Create(&banner).Error; err != nil {
				stdLog.Printf("Failed to create banner %s: %v", banner.Name, err)
			} else {
				stdLog.Printf("Created banner: %s", banner.Name)
			}
		} else {
			stdLog.Printf("Banner already exists: %s", banner.Name)
		}
	}

	// 添加公告
	now := time.Now()
	posts := []models.Post{
		{
			Slug:        "khai-truong-chi-nhanh-moi",
			Type:        constants.PostTypeNews,
			Title:       "Khai trương chi nhánh mới",
			Summary:     "Chi nhánh quận 7 chính thức phục vụ từ tuần này",
			Content:     "Ghé chi nhánh mới tại quận 7 để nhận voucher khai trương.",
			IsPublished: true,
			PublishedAt: &now,
		},
		{
			Slug:        "thong-bao-gio-hoat-dong",
			Type:        constants.PostTypeNotice,
			Title:       "Thông báo giờ hoạt động",
			Summary:     "Cửa hàng phục vụ từ 7h đến 23h hằng ngày",
			Content:     "Đơn đặt sau 23h sẽ được xử lý vào sáng hôm sau.",
			IsPublished: true,
			PublishedAt: &now,
		},
	}
	for _, post := range posts {
		var existing models.Post
		if err := models.DB.Where("slug = ?", post.Slug).First(&existing).Error; err != nil {
			if err := models.DB.Create(&post).Error; err != nil {
				stdLog.Printf("Failed to create post %s: %v", post.Slug, err)
			} else {
				stdLog.Printf("Created post: %s", post.Slug)
			}
		} else {
			stdLog.Printf("Post already exists: %s", post.Slug)
		}
	}

	// 初始化订单设置
	var existingSetting models.Setting
	if err := models.DB.Where("key = ?", constants.SettingKeyOrderConfig).First(&existingSetting).Error; err != nil {
		setting := models.Setting{
			Key: constants.SettingKeyOrderConfig,
			ValueJSON: models.JSON{
				constants.SettingFieldPaymentMethods: []interface{}{
					constants.PaymentMethodCOD,
					constants.PaymentMethodBankTransfer,
				},
				constants.SettingFieldHotline: "1900 6066",
			},
		}
		if err := models.DB.Create(&setting).Error; err != nil {
			stdLog.Printf("Failed to create order config: %v", err)
		} else {
			stdLog.Printf("Created setting: %s", constants.SettingKeyOrderConfig)
		}
	} else {
		stdLog.Printf("Setting already exists: %s", constants.SettingKeyOrderConfig)
	}

	stdLog.Println("Seed completed")
}
