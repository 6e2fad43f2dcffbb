// Package app 提供应用容器，封装所有依赖和服务
package app

import (
	"os"
	"path/filepath"
	"time"

	"github.com/haierkeys/flipbook-share-service/internal/dao"
	"github.com/haierkeys/flipbook-share-service/pkg/storage"
	"github.com/haierkeys/flipbook-share-service/pkg/util"
	"github.com/haierkeys/flipbook-share-service/pkg/viewport"
	"github.com/haierkeys/flipbook-share-service/pkg/workerpool"
	"github.com/haierkeys/flipbook-share-service/pkg/writequeue"

	"github.com/creasty/defaults"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// DefaultUploadMaxSize 上传大小上限兜底值（字节）
const DefaultUploadMaxSize = 50 * 1024 * 1024

// AppConfig 应用配置根节点，对应配置文件的顶层键
type AppConfig struct {
	File     string          `yaml:"-"` // 配置文件绝对路径，运行时填充
	Server   ServerConfig    `yaml:"server"`
	Database DatabaseConfig  `yaml:"database"`
	Log      LogConfig       `yaml:"log"`
	App      AppSettings     `yaml:"app"`
	Share    ShareConfig     `yaml:"share"`
	Storage  storage.Config  `yaml:"storage"`
	Viewer   viewport.Config `yaml:"viewer"`
	Ngrok    NgrokConfig     `yaml:"ngrok"`
	Tracer   TracerConfig    `yaml:"tracer"`
}

// ServerConfig HTTP 服务配置
type ServerConfig struct {
	// RunMode 运行模式，debug 或 release
	RunMode string `yaml:"run-mode" default:"release"`
	// HttpPort 对外 HTTP 监听地址
	HttpPort string `yaml:"http-port" default:":9000"`
	// ReadTimeout 请求读超时（秒）
	ReadTimeout int `yaml:"read-timeout" default:"60"`
	// WriteTimeout 响应写超时（秒）
	WriteTimeout int `yaml:"write-timeout" default:"60"`
	// PrivateHttpListen 内部调试服务监听地址（pprof、metrics）
	PrivateHttpListen string `yaml:"private-http-listen" default:":9001"`
}

// DatabaseConfig 链接登记库配置
type DatabaseConfig struct {
	// Type 数据库类型，支持 sqlite、mysql、postgres
	Type string `yaml:"type" default:"sqlite"`
	// Path sqlite 数据库文件位置
	Path string `yaml:"path" default:"storage/database/db.sqlite3"`
	// UserName 连接用户名
	UserName string `yaml:"username"`
	// Password 连接密码
	Password string `yaml:"password"`
	// Host 数据库地址，mysql 形如 127.0.0.1:3306
	Host string `yaml:"host"`
	// Name 库名
	Name string `yaml:"name"`
	// TablePrefix 表名前缀
	TablePrefix string `yaml:"table-prefix"`
	// AutoMigrate 启动时自动建表
	AutoMigrate bool `yaml:"auto-migrate" default:"true"`
	// Charset mysql 字符集
	Charset string `yaml:"charset"`
	// ParseTime mysql 是否解析时间列
	ParseTime bool `yaml:"parse-time"`
	// MaxIdleConns 连接池最大空闲连接
	MaxIdleConns int `yaml:"max-idle-conns" default:"10"`
	// MaxOpenConns 连接池最大连接数
	MaxOpenConns int `yaml:"max-open-conns" default:"100"`
	// ConnMaxLifetime 单个连接最长存活时间，格式如 30m、1h
	ConnMaxLifetime string `yaml:"conn-max-lifetime" default:"30m"`
	// ConnMaxIdleTime 空闲连接回收时间，格式如 10m、1h
	ConnMaxIdleTime string `yaml:"conn-max-idle-time" default:"10m"`
}

// LogConfig 日志输出配置
type LogConfig struct {
	// Level 最低输出级别，取值见 zapcore.ParseLevel
	Level string `yaml:"level" default:"warn"`
	// File 日志落盘位置
	File string `yaml:"file" default:"storage/logs/log.log"`
	// Production true 输出 JSON，false 输出控制台格式
	Production bool `yaml:"production" default:"true"`
}

// AppSettings 业务参数
type AppSettings struct {
	// DefaultContextTimeout 单个请求的处理超时（秒）
	DefaultContextTimeout int `yaml:"default-context-timeout" default:"60"`
	// UploadMaxSize 上传大小上限，支持格式：50MB、512KB
	UploadMaxSize string `yaml:"upload-max-size" default:"50MB"`
	// OrphanSweepInterval 本地存储孤儿文件巡检间隔，支持格式：1h（小时)、30m（分钟）
	OrphanSweepInterval string `yaml:"orphan-sweep-interval" default:"1h"`
	// OrphanRetention 未登记文件保留时间，超过后才会被巡检清理
	OrphanRetention string `yaml:"orphan-retention" default:"24h"`

	// 后台任务池参数
	WorkerPoolMaxWorkers int `yaml:"worker-pool-max-workers" default:"100"`
	WorkerPoolQueueSize  int `yaml:"worker-pool-queue-size" default:"1000"`

	// sqlite 写队列参数
	WriteQueueCapacity int    `yaml:"write-queue-capacity" default:"100"`
	WriteQueueTimeout  string `yaml:"write-queue-timeout" default:"30s"`
	WriteQueueIdleTime string `yaml:"write-queue-idle-time" default:"10m"`
}

// ShareConfig 分享链接配置
type ShareConfig struct {
	// BaseURL 分享链接基础地址，生成的链接以标识符作为查询参数附加在该地址上
	BaseURL string `yaml:"base-url" default:"http://localhost:9000"`
	// IdentifierName 携带标识符的查询参数名
	IdentifierName string `yaml:"identifier-name" default:"identifier"`
}

// NgrokConfig ngrok 隧道配置
// 启用后隧道地址会替换分享链接基础地址
type NgrokConfig struct {
	// Enabled 是否启用隧道
	Enabled bool `yaml:"enabled" default:"false"`
	// AuthToken ngrok 认证令牌
	AuthToken string `yaml:"auth-token"`
	// Domain 固定域名，留空时由 ngrok 分配
	Domain string `yaml:"domain"`
}

// TracerConfig 请求链路标识配置
type TracerConfig struct {
	// Enabled 是否注入 Trace ID
	Enabled bool `yaml:"enabled" default:"true"`
	// Header 读取与回写 Trace ID 的请求头
	Header string `yaml:"header" default:"X-Trace-ID"`
}

// LoadConfig 读取并解析 YAML 配置
// 返回配置实例与配置文件的绝对路径
func LoadConfig(f string) (*AppConfig, string, error) {
	path, err := filepath.Abs(f)
	if err != nil {
		return nil, "", err
	}
	path = filepath.Clean(path)

	c := &AppConfig{File: path}

	// 先铺一层默认值，文件里出现的键随后覆盖
	if err := defaults.Set(c); err != nil {
		return nil, path, errors.Wrap(err, "apply config defaults failed")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, path, errors.Wrap(err, "read config failed")
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, path, errors.Wrap(err, "unmarshal config failed")
	}

	// 文件中显式置空的键会被清成零值，再补一遍默认值
	// defaults.Set 只填充零值字段，已有值不受影响
	if err := defaults.Set(c); err != nil {
		return nil, path, errors.Wrap(err, "apply config defaults failed")
	}

	return c, path, nil
}

// GetDatabaseConfig 转换为 DAO 层的数据库配置
func (c *AppConfig) GetDatabaseConfig() dao.DatabaseConfig {
	return dao.DatabaseConfig{
		Type:            c.Database.Type,
		Path:            c.Database.Path,
		UserName:        c.Database.UserName,
		Password:        c.Database.Password,
		Host:            c.Database.Host,
		Name:            c.Database.Name,
		TablePrefix:     c.Database.TablePrefix,
		AutoMigrate:     c.Database.AutoMigrate,
		Charset:         c.Database.Charset,
		ParseTime:       c.Database.ParseTime,
		MaxIdleConns:    c.Database.MaxIdleConns,
		MaxOpenConns:    c.Database.MaxOpenConns,
		ConnMaxLifetime: c.Database.ConnMaxLifetime,
		ConnMaxIdleTime: c.Database.ConnMaxIdleTime,
		RunMode:         c.Server.RunMode,
	}
}

// GetWorkerPoolConfig 获取后台任务池配置，零值沿用内置默认
func (c *AppConfig) GetWorkerPoolConfig() workerpool.Config {
	cfg := workerpool.DefaultConfig()
	if n := c.App.WorkerPoolMaxWorkers; n > 0 {
		cfg.MaxWorkers = n
	}
	if n := c.App.WorkerPoolQueueSize; n > 0 {
		cfg.QueueSize = n
	}
	return cfg
}

// GetWriteQueueConfig 获取写队列配置，非法时长沿用内置默认
func (c *AppConfig) GetWriteQueueConfig() writequeue.Config {
	cfg := writequeue.DefaultConfig()
	if n := c.App.WriteQueueCapacity; n > 0 {
		cfg.QueueCapacity = n
	}
	overrideDuration(&cfg.WriteTimeout, c.App.WriteQueueTimeout)
	overrideDuration(&cfg.IdleTimeout, c.App.WriteQueueIdleTime)
	return cfg
}

// GetUploadMaxSize 获取上传大小上限（字节）
func (c *AppConfig) GetUploadMaxSize() int64 {
	return util.ParseSize(c.App.UploadMaxSize, DefaultUploadMaxSize)
}

// GetOrphanSweepInterval 获取孤儿文件巡检间隔
func (c *AppConfig) GetOrphanSweepInterval() time.Duration {
	return durationOr(c.App.OrphanSweepInterval, time.Hour)
}

// GetOrphanRetention 获取未登记文件保留时间
func (c *AppConfig) GetOrphanRetention() time.Duration {
	return durationOr(c.App.OrphanRetention, 24*time.Hour)
}

// overrideDuration 解析时长并覆盖目标值，空串或解析失败时保持原值
func overrideDuration(dst *time.Duration, s string) {
	if s == "" {
		return
	}
	if d, err := util.ParseDuration(s); err == nil {
		*dst = d
	}
}

// durationOr 解析时长，非法或非正值时返回兜底值
func durationOr(s string, fallback time.Duration) time.Duration {
	if d, err := util.ParseDuration(s); err == nil && d > 0 {
		return d
	}
	return fallback
}
