package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/MikolajSapek/staffer/backend/internal/config"
	"github.com/MikolajSapek/staffer/backend/internal/repository"
	"github.com/MikolajSapek/staffer/backend/internal/seed"
	"github.com/MikolajSapek/staffer/backend/internal/utils"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	var op int
	var n int
	var companyID int64

	flag.IntVar(&op, "op", 0, "要执行的操作 (1: 插入随机员工, 2: 插入随机班次, 3: 插入随机申请, 4: 插入工时单, 5: 插入演示数据)")
	flag.IntVar(&n, "n", 5, "要插入的记录数量")
	flag.Int64Var(&companyID, "company-id", 0, "班次所属的企业 ID，默认使用 SEED_COMPANY_ID")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// 读取配置文件
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("无法读取配置文件", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if companyID == 0 {
		companyID = cfg.Seed.CompanyID
	}

	// 创建数据库连接池
	dbpool, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		logger.Error("无法创建数据库连接池", "error", err)
		return
	}
	defer dbpool.Close()

	dbpool.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	dbpool.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	dbpool.SetConnMaxIdleTime(time.Duration(cfg.Database.MaxIdleTime) * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()

	// sql.Open 只是创建数据库连接池对象，并不会立即连接到数据库，因此需要显式地 ping 一下
	if err := dbpool.PingContext(ctx); err != nil {
		logger.Error("无法连接到数据库", "error", err)
		return
	}

	// 创建 repository
	repo := repository.NewRepository(cfg, dbpool)
	now := time.Now()

	// 执行操作
	switch op {
	case 0:
		slog.Error("未指定操作")
	case 1:
		if n <= 0 {
			slog.Error("请输入合法的员工数量")
		} else {
			cnt := n
			for i := 0; i < n; i++ {
				worker := utils.GenerateRandomWorker(cfg.Seed.EmailDomain)
				if err := repo.InsertWorker(worker); err != nil {
					slog.Error("无法插入员工", slog.String("error", err.Error()))
					continue
				}

				cnt--
			}

			slog.Info("插入员工成功", slog.Int("count", n-cnt))
		}
	case 2:
		if n <= 0 {
			slog.Error("请输入合法的班次数量")
			return
		}

		company, err := repo.GetCompanyByID(companyID)
		if err != nil {
			switch {
			case errors.Is(err, sql.ErrNoRows):
				slog.Error("指定的企业不存在", slog.Int64("company_id", companyID))
			default:
				slog.Error("无法获取企业", slog.String("error", err.Error()))
			}
			return
		}

		cnt := n
		for i := 0; i < n; i++ {
			shift := utils.GenerateRandomShift(company.ID, now)
			if err := repo.InsertShift(shift); err != nil {
				slog.Error("无法插入班次", slog.String("error", err.Error()))
				continue
			}

			cnt--
		}

		slog.Info("插入班次成功", slog.Int("count", n-cnt))
	case 3:
		shifts, err := repo.GetShiftsByCompanyID(companyID)
		if err != nil {
			slog.Error("无法获取企业的班次", slog.String("error", err.Error()))
			return
		}

		workers, err := repo.GetAllWorkers()
		if err != nil {
			slog.Error("无法获取所有员工", slog.String("error", err.Error()))
			return
		}
		if len(workers) == 0 {
			slog.Error("数据库中没有员工，请先执行操作 1")
			return
		}

		cnt := seed.SeedApplications(repo, shifts, workers, now)
		slog.Info("插入申请成功", slog.Int("count", cnt))
	case 4:
		shifts, err := repo.GetShiftsByCompanyID(companyID)
		if err != nil {
			slog.Error("无法获取企业的班次", slog.String("error", err.Error()))
			return
		}

		cnt := seed.SeedTimesheets(repo, shifts, now)
		slog.Info("插入工时单成功", slog.Int("count", cnt))
	case 5:
		scenario, err := seed.SeedDemoScenario(repo, cfg.Seed.EmailDomain, now)
		if err != nil {
			slog.Error("无法插入演示数据", slog.String("error", err.Error()))
			return
		}

		slog.Info("插入演示数据成功",
			slog.Int64("company_id", scenario.CompanyID),
			slog.Int64("upcoming_shift_id", scenario.UpcomingShift),
			slog.Int64("past_shift_id", scenario.PastShift),
			slog.Int64("timesheet_id", scenario.TimesheetID),
		)
	default:
		slog.Error("指定的操作非法")
	}
}
