package repo

import (
	"context"
	"fmt"
	"time"

	"shiftSync/internal/global"
	"shiftSync/internal/models"

	"github.com/zeromicro/go-zero/core/logc"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type (
	entryRepo struct {
		g  InterGormDBCli
		db *gorm.DB
	}

	// RepoEntry 数据层统一入口
	// 服务层通过 ctx.DB.Xxx() 访问各聚合的仓储接口。
	RepoEntry struct {
		entryRepo
		member        InterMember
		location      InterLocation
		certification InterCertification
		availability  InterAvailability
		shift         InterShift
		assignment    InterAssignment
		swap          InterSwap
		override      InterOverride
	}
)

// NewRepoEntry 按配置连接 MySQL 并装配仓储入口
func NewRepoEntry() *RepoEntry {
	db, err := newMySQLClient()
	if err != nil {
		panic(fmt.Sprintf("初始化数据库失败: %s", err))
	}
	return NewRepoEntryWithDB(db)
}

// NewRepoEntryWithDB 用外部给定的连接装配仓储入口（测试场景用内存库）
func NewRepoEntryWithDB(db *gorm.DB) *RepoEntry {
	if err := dbAutoMigrate(db); err != nil {
		panic(fmt.Sprintf("表结构迁移失败: %s", err))
	}

	g := NewInterGormDBCli(db)
	return &RepoEntry{
		entryRepo:     entryRepo{g: g, db: db},
		member:        newMemberInterface(db, g),
		location:      newLocationInterface(db, g),
		certification: newCertificationInterface(db, g),
		availability:  newAvailabilityInterface(db, g),
		shift:         newShiftInterface(db, g),
		assignment:    newAssignmentInterface(db, g),
		swap:          newSwapInterface(db, g),
		override:      newOverrideInterface(db, g),
	}
}

func newMySQLClient() (*gorm.DB, error) {
	c := global.Config.MySQL
	dsn := fmt.Sprintf(
		"%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC&timeout=%s",
		c.User, c.Pass, c.Host, c.Port, c.DBName, c.Timeout,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger:  logger.Default.LogMode(logger.Silent),
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, err
	}

	logc.Infof(context.Background(), "数据库连接成功: %s/%s", c.Host, c.DBName)
	return db, nil
}

func dbAutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Member{},
		&models.Skill{},
		&models.Location{},
		&models.LocationCertification{},
		&models.StaffAvailability{},
		&models.Shift{},
		&models.ShiftAssignment{},
		&models.SwapRequest{},
		&models.ManagerOverride{},
	)
}

func (e *RepoEntry) Member() InterMember               { return e.member }
func (e *RepoEntry) Location() InterLocation           { return e.location }
func (e *RepoEntry) Certification() InterCertification { return e.certification }
func (e *RepoEntry) Availability() InterAvailability   { return e.availability }
func (e *RepoEntry) Shift() InterShift                 { return e.shift }
func (e *RepoEntry) Assignment() InterAssignment       { return e.assignment }
func (e *RepoEntry) Swap() InterSwap                   { return e.swap }
func (e *RepoEntry) Override() InterOverride           { return e.override }

// DB 暴露底层连接，供需要自定义事务的服务使用
func (e *RepoEntry) DB() *gorm.DB { return e.db }

// Cli 暴露通用写入客户端
func (e *RepoEntry) Cli() InterGormDBCli { return e.g }
