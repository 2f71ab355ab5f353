package config

import "time"

// AppConfig holds application-level settings.
type AppConfig struct {
	Environment string `mapstructure:"environment"`
	LogLevel    string `mapstructure:"log_level"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Port        int      `mapstructure:"port"`
	CORSOrigins []string `mapstructure:"cors_origins"`
}

// RedisConfig selects the shared cache backend. Leave Addr empty to use the
// in-process cache.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// ProviderConfig configures one keyed upstream. A missing API key means the
// provider is simply not used; it is not an error.
type ProviderConfig struct {
	APIKey     string `mapstructure:"api_key"`
	BaseURL    string `mapstructure:"base_url"`
	DailyLimit int    `mapstructure:"daily_limit"`
}

// ProvidersConfig groups the upstream news sources.
type ProvidersConfig struct {
	NewsAPI  ProviderConfig `mapstructure:"newsapi"`
	Currents ProviderConfig `mapstructure:"currents"`
	NewsData ProviderConfig `mapstructure:"newsdata"`
	GNews    ProviderConfig `mapstructure:"gnews"`
	RSSFeeds []string       `mapstructure:"rss_feeds"`
}

// AggregateConfig controls strategy selection and cache timing.
type AggregateConfig struct {
	Mode           string        `mapstructure:"mode"` // merge or race
	CacheTTL       time.Duration `mapstructure:"cache_ttl"`
	AdapterTimeout time.Duration `mapstructure:"adapter_timeout"`
	RaceTimeout    time.Duration `mapstructure:"race_timeout"`
	WarmKey        bool          `mapstructure:"warm_key"` // keep the default listing warm
}

// ScrapeConfig controls the article content extraction endpoint.
type ScrapeConfig struct {
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

// Config is the top-level configuration structure.
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Server    ServerConfig    `mapstructure:"server"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Providers ProvidersConfig `mapstructure:"providers"`
	Aggregate AggregateConfig `mapstructure:"aggregate"`
	Scrape    ScrapeConfig    `mapstructure:"scrape"`
}

// FillDefaults applies default values if not provided. Daily limits match
// the providers' free tiers.
func (c *Config) FillDefaults() {
	if c.App.Environment == "" {
		c.App.Environment = "development"
	}
	if c.App.LogLevel == "" {
		c.App.LogLevel = "info"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 3001
	}
	if len(c.Server.CORSOrigins) == 0 {
		c.Server.CORSOrigins = []string{"http://localhost:5173", "http://localhost:3001"}
	}
	if c.Providers.NewsAPI.DailyLimit == 0 {
		c.Providers.NewsAPI.DailyLimit = 100
	}
	if c.Providers.Currents.DailyLimit == 0 {
		c.Providers.Currents.DailyLimit = 600
	}
	if c.Providers.NewsData.DailyLimit == 0 {
		c.Providers.NewsData.DailyLimit = 200
	}
	if c.Providers.GNews.DailyLimit == 0 {
		c.Providers.GNews.DailyLimit = 100
	}
	if c.Aggregate.Mode == "" {
		c.Aggregate.Mode = "merge"
	}
	if c.Aggregate.CacheTTL == 0 {
		c.Aggregate.CacheTTL = time.Hour
	}
	if c.Aggregate.AdapterTimeout == 0 {
		c.Aggregate.AdapterTimeout = 4 * time.Second
	}
	if c.Aggregate.RaceTimeout == 0 {
		c.Aggregate.RaceTimeout = 6 * time.Second
	}
	if c.Scrape.CacheTTL == 0 {
		c.Scrape.CacheTTL = 24 * time.Hour
	}
}

// DailyLimits returns the quota ceilings for every keyed provider.
func (c *Config) DailyLimits() map[string]int {
	return map[string]int{
		"newsapi":  c.Providers.NewsAPI.DailyLimit,
		"currents": c.Providers.Currents.DailyLimit,
		"newsdata": c.Providers.NewsData.DailyLimit,
		"gnews":    c.Providers.GNews.DailyLimit,
	}
}
