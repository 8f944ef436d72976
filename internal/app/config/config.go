package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config 应用配置
type Config struct {
	App           AppConfig           `mapstructure:"app"`
	Server        ServerConfig        `mapstructure:"server"`
	Shopify       ShopifyConfig       `mapstructure:"shopify"`
	SMTP          SMTPConfig          `mapstructure:"smtp"`
	Notify        NotifyConfig        `mapstructure:"notify"`
	Qualification QualificationConfig `mapstructure:"qualification"`
	Suppliers     []SupplierConfig    `mapstructure:"suppliers"`
	Redis         RedisConfig         `mapstructure:"redis"`
	Processor     ProcessorConfig     `mapstructure:"processor"`
}

type AppConfig struct {
	Name     string `mapstructure:"name"`
	Env      string `mapstructure:"env"`
	LogLevel string `mapstructure:"log_level"`
}

type ServerConfig struct {
	Port            string        `mapstructure:"port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// ShopifyConfig 店铺 Admin API 与 webhook 配置
type ShopifyConfig struct {
	StoreURL          string        `mapstructure:"store_url"`
	AccessToken       string        `mapstructure:"access_token"`
	WebhookSecret     string        `mapstructure:"webhook_secret"`
	APIVersion        string        `mapstructure:"api_version"`
	GraphQLAPIVersion string        `mapstructure:"graphql_api_version"`
	Timeout           time.Duration `mapstructure:"timeout"`
	RateLimit         float64       `mapstructure:"rate_limit"` // 每秒请求数
	RateBurst         int           `mapstructure:"rate_burst"`
}

// SMTPConfig 发信配置
type SMTPConfig struct {
	Host     string        `mapstructure:"host"`
	Port     int           `mapstructure:"port"`
	Username string        `mapstructure:"username"`
	Password string        `mapstructure:"password"`
	From     string        `mapstructure:"from"`
	FromName string        `mapstructure:"from_name"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

// NotifyConfig 收件人与订单标记
type NotifyConfig struct {
	InternalRecipients   []string `mapstructure:"internal_recipients"`
	OperationsRecipients []string `mapstructure:"operations_recipients"`
	OrderTag             string   `mapstructure:"order_tag"`
	TestEndpointEnabled  bool     `mapstructure:"test_endpoint_enabled"`
}

// QualificationConfig 自动下单判定规则
type QualificationConfig struct {
	TargetCountry   string  `mapstructure:"target_country"`
	TargetSupplier  string  `mapstructure:"target_supplier"`
	TargetWarehouse string  `mapstructure:"target_warehouse"`
	LineRule        string  `mapstructure:"line_rule"` // CEL 表达式
	RiskThreshold   float64 `mapstructure:"risk_threshold"`
	WarningValue    string  `mapstructure:"warning_value"`
}

// SupplierConfig 供应商路由表条目
type SupplierConfig struct {
	Name          string `mapstructure:"name"`
	AccountNumber string `mapstructure:"account_number"`
	Email         string `mapstructure:"email"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Channel  string `mapstructure:"channel"`
}

// ProcessorConfig 应答后任务处理器配置
type ProcessorConfig struct {
	Threads     int           `mapstructure:"threads"`
	BufferSize  int           `mapstructure:"buffer_size"`
	TaskTimeout time.Duration `mapstructure:"task_timeout"` // 0 表示不设上限
}

// DefaultLineRule 单个商品行的判定规则
const DefaultLineRule = `supplier_found && warehouse_found && supplier == target_supplier && warehouse == target_warehouse`

// DefaultSuppliers 默认供应商路由表
var DefaultSuppliers = []SupplierConfig{
	{Name: "Best Buy", AccountNumber: "62317", Email: "orders@bestbuymedical.ca"},
	{Name: "Drive DeVilbiss Healthcare", AccountNumber: "134943", Email: "customerservice@drivemedical.com"},
	{Name: "Mobb Health Care", AccountNumber: "BEH001", Email: "info@mobbhhc.com"},
	{Name: "Medline Canada", AccountNumber: "3121775", Email: "canadacs@medline.com"},
	{Name: "Handicare", AccountNumber: "CA00004039", Email: "CustomerService.Canada@handicare.com"},
	{Name: "Sam Medical", AccountNumber: "", Email: "mmiri@sammed.ca"},
}

// envBindings 兼容旧部署使用的环境变量名
var envBindings = map[string]string{
	"shopify.webhook_secret": "SHOPIFY_WEBHOOK_SECRET",
	"shopify.store_url":      "SHOPIFY_STORE_URL",
	"shopify.access_token":   "SHOPIFY_ADMIN_API_KEY",
	"smtp.username":          "EMAIL",
	"smtp.password":          "PASSWORD",
	"smtp.from":              "EMAIL",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "jarvis")
	v.SetDefault("app.env", "production")
	v.SetDefault("app.log_level", "info")

	v.SetDefault("server.port", "8080")
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("shopify.api_version", "2024-01")
	v.SetDefault("shopify.graphql_api_version", "2024-10")
	v.SetDefault("shopify.timeout", 10*time.Second)
	v.SetDefault("shopify.rate_limit", 2.0)
	v.SetDefault("shopify.rate_burst", 4)

	v.SetDefault("smtp.host", "smtp.gmail.com")
	v.SetDefault("smtp.port", 587)
	v.SetDefault("smtp.from_name", "BeHope")
	v.SetDefault("smtp.timeout", 30*time.Second)

	v.SetDefault("notify.internal_recipients", []string{"abdullah@behope.ca", "haroon@behope.ca", "hader@behope.ca"})
	v.SetDefault("notify.operations_recipients", []string{"abdullah@behope.ca", "haroon@behope.ca", "hader@behope.ca"})
	v.SetDefault("notify.order_tag", "JARVIS - Ordered")
	v.SetDefault("notify.test_endpoint_enabled", false)

	v.SetDefault("qualification.target_country", "Canada")
	v.SetDefault("qualification.target_supplier", "Best Buy")
	v.SetDefault("qualification.target_warehouse", "A - Dropship (Abbey Lane)")
	v.SetDefault("qualification.line_rule", DefaultLineRule)
	v.SetDefault("qualification.risk_threshold", 0.5)
	v.SetDefault("qualification.warning_value", "WARNING")

	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.channel", "order_notification_outcome")

	v.SetDefault("processor.threads", 4)
	v.SetDefault("processor.buffer_size", 64)
	v.SetDefault("processor.task_timeout", time.Duration(0))
}

// Load 从配置文件加载配置，文件不存在时仅使用默认值与环境变量
func Load(configPath string) (*Config, error) {
	// .env 只是开发便利，缺失不算错误
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, env := range envBindings {
		if err := v.BindEnv(key, strings.ToUpper(strings.ReplaceAll(key, ".", "_")), env); err != nil {
			return nil, fmt.Errorf("bind env %s failed: %w", env, err)
		}
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("read config failed: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config failed: %w", err)
	}

	if len(cfg.Suppliers) == 0 {
		cfg.Suppliers = append([]SupplierConfig(nil), DefaultSuppliers...)
	}

	return &cfg, nil
}

// Validate 验证配置完整性
func (c *Config) Validate() error {
	if c.Shopify.WebhookSecret == "" {
		return fmt.Errorf("shopify webhook_secret is required")
	}
	if c.Shopify.StoreURL == "" {
		return fmt.Errorf("shopify store_url is required")
	}
	if c.Shopify.AccessToken == "" {
		return fmt.Errorf("shopify access_token is required")
	}
	if c.SMTP.Host == "" || c.SMTP.Port <= 0 {
		return fmt.Errorf("smtp host and port are required")
	}
	if c.SMTP.From == "" {
		return fmt.Errorf("smtp from is required")
	}
	if len(c.Notify.InternalRecipients) == 0 {
		return fmt.Errorf("notify internal_recipients cannot be empty")
	}
	if c.Qualification.RiskThreshold < 0 || c.Qualification.RiskThreshold > 1 {
		return fmt.Errorf("qualification risk_threshold must be within [0,1]")
	}
	for i, s := range c.Suppliers {
		if s.Name == "" {
			return fmt.Errorf("suppliers[%d].name is required", i)
		}
	}
	if c.Processor.Threads <= 0 {
		return fmt.Errorf("processor threads must be positive")
	}
	return nil
}

// GetServerPort 获取服务端口
func (c *Config) GetServerPort() string {
	if c.Server.Port != "" {
		return c.Server.Port
	}
	return "8080"
}
