// Package dao 实现数据访问层
package dao

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/haierkeys/flipbook-share-service/pkg/fileurl"
	"github.com/haierkeys/flipbook-share-service/pkg/util"
	"github.com/haierkeys/flipbook-share-service/pkg/writequeue"

	"github.com/glebarez/sqlite"
	"github.com/haierkeys/gormTracing"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Type            string
	Path            string
	UserName        string
	Password        string
	Host            string
	Name            string
	TablePrefix     string
	AutoMigrate     bool
	Charset         string
	ParseTime       bool
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime string
	ConnMaxIdleTime string
	RunMode         string
}

// Dao 数据访问容器，持有数据库连接与写队列
type Dao struct {
	db            *gorm.DB
	ctx           context.Context
	config        *DatabaseConfig
	logger        *zap.Logger
	writeQueueMgr *writequeue.Manager

	// onceKeys 保证每张表的迁移只执行一次
	onceKeys sync.Map
}

// Option Dao 可选依赖注入
type Option func(*Dao)

// WithConfig 注入数据库配置
func WithConfig(cfg *DatabaseConfig) Option {
	return func(d *Dao) {
		d.config = cfg
	}
}

// WithLogger 注入日志器
func WithLogger(logger *zap.Logger) Option {
	return func(d *Dao) {
		d.logger = logger
	}
}

// WithWriteQueueManager 注入写队列管理器
func WithWriteQueueManager(m *writequeue.Manager) Option {
	return func(d *Dao) {
		d.writeQueueMgr = m
	}
}

// New 创建 Dao 实例
func New(db *gorm.DB, ctx context.Context, opts ...Option) *Dao {
	d := &Dao{
		db:  db,
		ctx: ctx,
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.logger == nil {
		d.logger = zap.NewNop()
	}
	return d
}

// DB 返回底层 gorm 连接
func (d *Dao) DB() *gorm.DB {
	return d.db
}

// ExecuteWrite 执行写操作
// sqlite 下同一 key 的写操作通过写队列按 FIFO 串行化，规避 database is locked
// 其他数据库直接执行
func (d *Dao) ExecuteWrite(ctx context.Context, key string, fn func(db *gorm.DB) error) error {
	if d.writeQueueMgr == nil || d.config == nil || d.config.Type != "sqlite" {
		return fn(d.db)
	}
	return d.writeQueueMgr.Execute(ctx, key, func() error {
		return fn(d.db)
	})
}

// NewDBEngineWithConfig 初始化 gorm 引擎（使用注入的配置）
func NewDBEngineWithConfig(c DatabaseConfig, lg *zap.Logger) (*gorm.DB, error) {
	dialector := dialectorWithConfig(c)
	if dialector == nil {
		return nil, fmt.Errorf("unsupported database type: %s", c.Type)
	}

	logMode := gormlogger.Default.LogMode(gormlogger.Silent)
	if c.RunMode == "debug" {
		logMode = gormlogger.Default.LogMode(gormlogger.Info)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logMode,
		NamingStrategy: schema.NamingStrategy{
			TablePrefix:   c.TablePrefix,
			SingularTable: true,
		},
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	// 连接池参数，时长配置非法时退回内置默认
	sqlDB.SetMaxIdleConns(c.MaxIdleConns)
	sqlDB.SetMaxOpenConns(c.MaxOpenConns)
	if lifetime, err := util.ParseDuration(c.ConnMaxLifetime); err == nil && lifetime > 0 {
		sqlDB.SetConnMaxLifetime(lifetime)
	} else {
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
	}
	if idle, err := util.ParseDuration(c.ConnMaxIdleTime); err == nil && idle > 0 {
		sqlDB.SetConnMaxIdleTime(idle)
	}

	_ = db.Use(&gormTracing.OpentracingPlugin{})

	if lg != nil {
		lg.Info("database engine initialized", zap.String("type", c.Type))
	}

	return db, nil
}

func dialectorWithConfig(c DatabaseConfig) gorm.Dialector {
	switch c.Type {
	case "mysql":
		dsn := fmt.Sprintf("%s:%s@tcp(%s)/%s?charset=%s&parseTime=%t&loc=Local",
			c.UserName, c.Password, c.Host, c.Name, c.Charset, c.ParseTime)
		return mysql.Open(dsn)
	case "postgres":
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s sslmode=disable",
			c.Host, c.UserName, c.Password, c.Name)
		return postgres.Open(dsn)
	case "sqlite":
		if !fileurl.IsExist(c.Path) {
			_ = fileurl.CreatePath(c.Path, os.ModePerm)
		}
		return sqlite.Open(c.Path)
	}
	return nil
}
