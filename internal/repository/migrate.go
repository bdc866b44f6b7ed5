package repository

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/pressly/goose/v3"
)

// Migrate 把 MigrationsDir 下尚未执行的迁移全部应用到数据库
func (r *Repository) Migrate(parent context.Context) error {
	ctx, cancel := context.WithTimeout(parent, time.Duration(r.cfg.Database.MigrateTimeout)*time.Second)
	defer cancel()

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("无法设置迁移方言: %w", err)
	}
	if err := goose.UpContext(ctx, r.dbpool, r.cfg.Database.MigrationsDir); err != nil {
		return fmt.Errorf("无法执行数据库迁移: %w", err)
	}

	version, err := goose.GetDBVersionContext(ctx, r.dbpool)
	if err != nil {
		return fmt.Errorf("无法获取数据库版本: %w", err)
	}

	slog.Info("数据库迁移完成", "version", version)
	return nil
}
