package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App       App      `mapstructure:",squash"`
	Server    Server   `mapstructure:",squash"`
	Data      Data     `mapstructure:",squash"`
	Auth      Auth     `mapstructure:",squash"`
	Cache     Cache    `mapstructure:",squash"`
	Insights  Insights `mapstructure:",squash"`
	SecretKey string   `mapstructure:"secret_key"`
	Users     []User   `mapstructure:"-"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Server struct {
	Host           string   `mapstructure:"host"`
	Port           string   `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// Data aponta para o diretório com os quatro arquivos CSV de entrada
type Data struct {
	Dir          string `mapstructure:"data_dir"`
	FacebookFile string `mapstructure:"data_facebook_file"`
	GoogleFile   string `mapstructure:"data_google_file"`
	TikTokFile   string `mapstructure:"data_tiktok_file"`
	BusinessFile string `mapstructure:"data_business_file"`
}

type Auth struct {
	// Usuários provisionados via env: "email:bcrypt_hash" separados por vírgula
	ProvisionedUsers string `mapstructure:"auth_users"`
}

type Cache struct {
	Enabled bool `mapstructure:"cache_enabled"`
}

// Insights controla os limiares do gerador de insights
type Insights struct {
	// Variação percentual de receita abaixo da qual a tendência é "estável"
	FlatTrendThreshold float64 `mapstructure:"insights_flat_trend_threshold"`
	TopCampaignsLimit  int     `mapstructure:"insights_top_campaigns_limit"`
}

// User é um usuário provisionado do painel
type User struct {
	Email        string
	PasswordHash string
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("DATA_DIR", "data")
	viper.SetDefault("DATA_FACEBOOK_FILE", "Facebook.csv")
	viper.SetDefault("DATA_GOOGLE_FILE", "Google.csv")
	viper.SetDefault("DATA_TIKTOK_FILE", "TikTok.csv")
	viper.SetDefault("DATA_BUSINESS_FILE", "Business.csv")

	viper.SetDefault("SECRET_KEY", "your_secret_key")
	viper.SetDefault("AUTH_USERS", "")

	viper.SetDefault("CACHE_ENABLED", true)

	// Defaults do gerador de insights
	viper.SetDefault("INSIGHTS_FLAT_TREND_THRESHOLD", 1.0) // ±1% conta como estável
	viper.SetDefault("INSIGHTS_TOP_CAMPAIGNS_LIMIT", 5)

	viper.SetDefault("ALLOWED_ORIGINS", "http://localhost:3000")

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	// Configurar valores padrão
	SetDefaults()

	// Configurar o Viper
	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv() // Isso permite que o Viper leia variáveis de ambiente

	// Tentar ler o arquivo .env com o Viper (opcional, já que usamos godotenv)
	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	users, err := parseProvisionedUsers(config.Auth.ProvisionedUsers)
	if err != nil {
		return nil, err
	}
	config.Users = users

	return config, nil
}

// parseProvisionedUsers interpreta a lista "email:hash,email:hash" do env
func parseProvisionedUsers(raw string) ([]User, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}

	var users []User
	for _, entry := range strings.Split(raw, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		parts := strings.SplitN(entry, ":", 2)
		if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
			return nil, fmt.Errorf("usuário provisionado inválido: %q", entry)
		}

		users = append(users, User{
			Email:        strings.ToLower(strings.TrimSpace(parts[0])),
			PasswordHash: parts[1],
		})
	}

	return users, nil
}

// ChannelFiles retorna o caminho completo de cada arquivo de canal
func (d Data) ChannelFiles() map[string]string {
	return map[string]string{
		"Facebook": filepath.Join(d.Dir, d.FacebookFile),
		"Google":   filepath.Join(d.Dir, d.GoogleFile),
		"TikTok":   filepath.Join(d.Dir, d.TikTokFile),
	}
}

// BusinessPath retorna o caminho completo do arquivo de negócio
func (d Data) BusinessPath() string {
	return filepath.Join(d.Dir, d.BusinessFile)
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	// Obter diretório atual
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	// Tentar várias localizações possíveis para o arquivo .env
	locations := []string{
		filepath.Join(cwd, ".env"),               // Diretório atual
		filepath.Join(filepath.Dir(cwd), ".env"), // Diretório pai
		filepath.Join(cwd, "../.env"),            // Diretório acima
		filepath.Join(cwd, "../../.env"),         // Dois diretórios acima
	}

	for _, location := range locations {
		logrus.Info("Tentando carregar .env de:", location)
		err := godotenv.Load(location)
		if err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
