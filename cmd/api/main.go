package main

import (
	"context"
	"log"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	httpadp "custodian-bank/internal/adapter/http"
	idemp "custodian-bank/internal/adapter/middleware"
	adapterOracle "custodian-bank/internal/adapter/oracle"
	"custodian-bank/internal/adapter/repository/mysql"
	"custodian-bank/internal/config"
	bankDomain "custodian-bank/internal/domain/bank"
	borrowerDomain "custodian-bank/internal/domain/borrower"
	creditDomain "custodian-bank/internal/domain/credit"
	investorDomain "custodian-bank/internal/domain/investor"
	walletDomain "custodian-bank/internal/domain/wallet"
	"custodian-bank/internal/infrastructure/cache"
	"custodian-bank/internal/infrastructure/db"
	bankUC "custodian-bank/internal/usecase/bank"
	creditUC "custodian-bank/internal/usecase/credit"
	"custodian-bank/pkg/blockclock"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		log.Fatalf("mysql: %v", err)
	}
	if err := gdb.AutoMigrate(
		&bankDomain.State{},
		&investorDomain.Investor{},
		&borrowerDomain.Borrower{},
		&creditDomain.Balance{},
		&creditDomain.Allowance{},
		&walletDomain.Wallet{},
	); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}

	uow := mysql.NewGormUoW(gdb)
	priceOracle := adapterOracle.NewRedisOracle(rdb, time.Duration(cfg.OracleMaxAgeSecs)*time.Second)
	clock := blockclock.NewWall(cfg.ClockGenesisUnix, cfg.BlockSeconds)

	engine := bankUC.NewUsecase(uow, priceOracle, clock, bankUC.Params{
		MinDeposit:         cfg.MinDeposit,
		CollateralRatioPct: cfg.CollateralRatioPct,
		LoanFeePct:         cfg.LoanFeePct,
		BlockSeconds:       cfg.BlockSeconds,
		SecondsPerYear:     cfg.SecondsPerYear,
	})
	if err := engine.Bootstrap(context.Background(), cfg.YearlyReturnRate); err != nil {
		log.Fatalf("bootstrap: %v", err)
	}
	credits := creditUC.NewUsecase(uow)

	h := httpadp.NewHandler()
	bh := httpadp.NewBankHandler(engine)
	ch := httpadp.NewCreditHandler(credits)
	ah := httpadp.NewAdminHandler(engine, priceOracle)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(middleware.Logger(), middleware.Recover())

	e.GET("/health", h.Health)

	b := e.Group("/bank", idemp.IdempotencyMiddleware(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second))
	b.POST("/deposits", bh.Deposit)
	b.POST("/withdrawals", bh.Withdraw)
	b.POST("/loans", bh.Borrow)
	b.POST("/repayments", bh.Repay)
	b.GET("/positions", bh.Positions)
	b.GET("/state", bh.State)

	cr := e.Group("/credits", idemp.IdempotencyMiddleware(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second))
	cr.POST("/approvals", ch.Approve)
	cr.GET("/balance", ch.Balance)

	admin := e.Group("/admin", httpadp.RequireOperator(cfg.OperatorToken))
	admin.PUT("/return-rate", ah.SetReturnRate)
	admin.PUT("/oracle-rate", ah.SetOracleRate)
	admin.POST("/wallets/topup", ah.TopUpWallet)
	admin.POST("/accounts", ah.CreateAccount)

	addr := ":" + cfg.AppPort
	log.Printf("listening on %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
