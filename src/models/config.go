package models

// MConfig Structure
type MConfig struct {
	Name      string           `yaml:"name" validate:"required"`
	Host      string           `yaml:"host" validate:"required"`
	Port      int              `yaml:"port" validate:"min=1025,max=65535"`
	LogLevel  string           `yaml:"log_level" validate:"oneof=DEBUG INFO WARNING ERROR"`
	GrpcHost  string           `yaml:"grpc_host"`
	GrpcPort  int              `yaml:"grpc_port" validate:"omitempty,min=1025,max=65535"`
	Network   MNetworkConfig   `yaml:"network"`
	Providers MProvidersConfig `yaml:"providers"`
	Narrative MNarrativeConfig `yaml:"narrative"`
}

type MNetworkConfig struct {
	Proxies        []string `yaml:"proxies"`
	RequestTimeout int      `yaml:"timeout" validate:"min=1"`
	UserAgent      string   `yaml:"user_agent"`
}

type MProvidersConfig struct {
	Risk   MProviderConfig `yaml:"risk"`
	Market MProviderConfig `yaml:"market"`
}

type MProviderConfig struct {
	BaseURL           string  `yaml:"base_url" validate:"required,url"`
	Chain             string  `yaml:"chain"`
	RequestsPerSecond float64 `yaml:"requests_per_second" validate:"gte=0"`
	Burst             int     `yaml:"burst" validate:"gte=0"`
}

type MNarrativeConfig struct {
	Enabled     bool    `yaml:"enabled"`
	APIKey      string  `yaml:"-"`
	BaseURL     string  `yaml:"base_url" validate:"omitempty,url"`
	Model       string  `yaml:"model"`
	Temperature float32 `yaml:"temperature" validate:"gte=0,lte=2"`
	MaxTokens   int     `yaml:"max_tokens" validate:"gte=0"`
}
