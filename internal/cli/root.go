// Package cli implementa o templatectl, ferramenta de linha de comando para
// validar manifestos, simular recomendações e abastecer Redis e playground.
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Settings é a configuração compartilhada pelos subcomandos
type Settings struct {
	Redis struct {
		Addr     string `mapstructure:"addr"`
		Password string `mapstructure:"password"`
		DB       int    `mapstructure:"db"`
	} `mapstructure:"redis"`
	Manifest struct {
		RedisKey string `mapstructure:"redis_key"`
	} `mapstructure:"manifest"`
	Datasets struct {
		DBPath string `mapstructure:"db_path"`
	} `mapstructure:"datasets"`
}

type app struct {
	cfgFile  string
	v        *viper.Viper
	settings Settings
}

// NewRootCmd monta a árvore de comandos
func NewRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:           "templatectl",
		Short:         "Ferramentas do recomendador de templates",
		Long:          "Valida manifestos, simula recomendações e publica manifesto e datasets.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.initConfig()
		},
	}

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "arquivo de configuração (default: ./templatectl.yaml)")
	root.PersistentFlags().String("redis-addr", "", "endereço do Redis")
	root.PersistentFlags().String("datasets-db", "", "banco SQLite dos datasets")
	_ = a.v.BindPFlag("redis.addr", root.PersistentFlags().Lookup("redis-addr"))
	_ = a.v.BindPFlag("datasets.db_path", root.PersistentFlags().Lookup("datasets-db"))

	root.AddCommand(
		newValidateCmd(a),
		newAnalyzeCmd(a),
		newRecommendCmd(a),
		newPushCmd(a),
		newSeedCmd(a),
	)
	return root
}

func (a *app) initConfig() error {
	v := a.v
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.db", 0)
	v.SetDefault("manifest.redis_key", "templates:manifest")
	v.SetDefault("datasets.db_path", "data/datasets.db")

	// mesmas variáveis de ambiente da API
	_ = v.BindEnv("redis.addr", "REDIS_ADDR")
	_ = v.BindEnv("redis.password", "REDIS_PASSWORD")
	_ = v.BindEnv("redis.db", "REDIS_DB")
	_ = v.BindEnv("manifest.redis_key", "MANIFEST_REDIS_KEY")
	_ = v.BindEnv("datasets.db_path", "DATASETS_DB_PATH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if a.cfgFile != "" {
		v.SetConfigFile(a.cfgFile)
	} else {
		v.SetConfigName("templatectl")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/templatectl")
	}

	if err := v.ReadInConfig(); err != nil {
		var nf viper.ConfigFileNotFoundError
		if !errors.As(err, &nf) {
			return fmt.Errorf("erro ao ler configuração: %w", err)
		}
	}

	if err := v.Unmarshal(&a.settings); err != nil {
		return fmt.Errorf("erro ao interpretar configuração: %w", err)
	}
	return nil
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
