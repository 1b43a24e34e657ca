package main

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"

	authmodels "github.com/hanguan2025/my-order-admin/internal/api/auth/models"
	authsvc "github.com/hanguan2025/my-order-admin/internal/api/auth/service"
	basesvc "github.com/hanguan2025/my-order-admin/internal/api/base/service"
	ordersvc "github.com/hanguan2025/my-order-admin/internal/api/order/service"
	"github.com/hanguan2025/my-order-admin/internal/common"
	"github.com/hanguan2025/my-order-admin/internal/global"
	"github.com/hanguan2025/my-order-admin/internal/logger"
)

func InitDefaultData() {
	log := logger.GetAppLogger()
	log.Info("🔄 [INIT] Starting InitDefaultData...")

	// 1. Đăng ký hàm kiểm tra admin cho base service (bảo vệ dữ liệu hệ thống)
	if err := authsvc.InitAdminCheck(); err != nil {
		log.Fatalf("Failed to initialize admin check: %v", err)
	}
	log.Info("✅ [INIT] Step 1: Admin check registered")

	// 2. Seed tài khoản quản trị khi chạy INITMODE (mật khẩu luôn hash bcrypt)
	if global.MongoDB_ServerConfig.InitMode {
		log.Info("🔄 [INIT] Step 2: Seeding admin account (INITMODE)...")
		if err := initAdminStaff(); err != nil {
			log.Fatalf("Failed to seed admin account: %v", err)
		}
		log.Info("✅ [INIT] Step 2: Admin account ready")
	} else {
		log.Info("ℹ️  [INIT] Step 2: INITMODE disabled, skipping admin seed")
	}

	// 3. Migrate ghi chú món từ khóa cũ 客製備註 sang trường note chuẩn
	log.Info("🔄 [INIT] Step 3: Migrating legacy item notes...")
	orderService, err := ordersvc.NewOrderService()
	if err != nil {
		log.Fatalf("Failed to create order service: %v", err)
	}
	migrated, err := orderService.MigrateLegacyNotes(context.TODO())
	if err != nil {
		log.Fatalf("Failed to migrate legacy item notes: %v", err)
	}
	if migrated > 0 {
		log.Infof("✅ [INIT] Step 3: Migrated legacy notes on %d orders", migrated)
	} else {
		log.Info("✅ [INIT] Step 3: No legacy item notes found")
	}

	log.Info("✅ [INIT] InitDefaultData completed successfully")
}

// initAdminStaff tạo tài khoản quản trị mặc định nếu username chưa tồn tại.
// Chỉ tạo mới, không ghi đè mật khẩu của tài khoản đang có.
func initAdminStaff() error {
	log := logger.GetAppLogger()
	cfg := global.MongoDB_ServerConfig

	if cfg.AdminPassword == "" {
		log.Warn("ADMIN_PASSWORD not set, skipping admin seed")
		return nil
	}

	staffService, err := authsvc.NewStaffService()
	if err != nil {
		return err
	}

	// Context cho phép insert system data trong quá trình init
	ctx := basesvc.WithSystemDataInsertAllowed(context.TODO())

	filter := bson.M{"username": cfg.AdminUsername}
	_, err = staffService.BaseServiceMongoImpl.FindOne(ctx, filter, nil)
	if err == nil {
		log.Infof("Admin account %s already exists, skipping creation", cfg.AdminUsername)
		return nil
	}
	if err != common.ErrNotFound {
		return err
	}

	hashed, err := authsvc.HashPassword(cfg.AdminPassword)
	if err != nil {
		return err
	}

	admin := authmodels.Staff{
		Username: cfg.AdminUsername,
		Name:     "Quản trị viên",
		Password: hashed,
		Role:     authmodels.RoleAdmin,
		IsSystem: true,
	}

	created, err := staffService.BaseServiceMongoImpl.InsertOne(ctx, admin)
	if err != nil {
		return err
	}

	log.Infof("Admin account %s created (ID: %s)", created.Username, created.ID.Hex())
	return nil
}
