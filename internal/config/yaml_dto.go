// internal/config/yaml_dto.go

package config

// yamlConfig 為設定檔的原始格式；金額與時間皆以字串讀入，再由 mapper 轉型。
type yamlConfig struct {
	Server   yamlServer    `yaml:"server"`
	Log      yamlLog       `yaml:"log"`
	Accounts []yamlAccount `yaml:"accounts"`
}

type yamlServer struct {
	Addr            string `yaml:"addr"`
	ShutdownTimeout string `yaml:"shutdownTimeout"`
}

type yamlLog struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type yamlAccount struct {
	Holder         string `yaml:"holder"`
	Type           string `yaml:"type"`
	InitialDeposit string `yaml:"initialDeposit"`
	OverdraftLimit string `yaml:"overdraftLimit"`
}
