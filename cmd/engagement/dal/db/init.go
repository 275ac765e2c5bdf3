package db

import (
	"time"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/opentracing/opentracing-go"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormopentracing "gorm.io/plugin/opentracing"
	"videotube.com/cmd/model"
	"videotube.com/config"
	"videotube.com/pkg/utils"
)

var DB *gorm.DB

// Init init DB
func Init() {
	var err error
	dsn := utils.GetMysqlDsn()
	DB, err = gorm.Open(mysql.Open(dsn),
		&gorm.Config{
			PrepareStmt:            true,
			SkipDefaultTransaction: true,
			TranslateError:         true,
		},
	)
	if err != nil {
		panic(err)
	}
	if err = DB.Use(gormopentracing.New(gormopentracing.WithTracer(opentracing.GlobalTracer()))); err != nil {
		panic(err)
	}

	sqlDB, err := DB.DB()
	if err != nil {
		panic(err)
	}
	sqlDB.SetMaxOpenConns(config.ConfigInfo.Mysql.MaxOpenConns)
	sqlDB.SetMaxIdleConns(config.ConfigInfo.Mysql.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err = migrate(DB); err != nil {
		panic(err)
	}
}

// migrate 自动迁移，唯一索引随表结构一起创建
func migrate(db *gorm.DB) error {
	hlog.Info("Starting engagement tables migration...")
	if err := db.AutoMigrate(
		&model.User{},
		&model.WatchHistory{},
		&model.Video{},
		&model.Comment{},
		&model.Tweet{},
		&model.Playlist{},
		&model.PlaylistVideo{},
		&model.Like{},
		&model.Subscription{},
	); err != nil {
		hlog.Errorf("Failed to migrate engagement tables: %v", err)
		return err
	}
	hlog.Info("Engagement tables migration completed successfully")
	return nil
}
