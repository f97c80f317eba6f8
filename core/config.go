package core

import (
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	Config struct {
		Debug    bool
		TestMode bool
		Env      string // DEV (local; default), TEST, QA, PROD
		AppName  string
		Address  string
		Build    string

		Database struct {
			Path string
		}

		Rollbar struct {
			Token string
		}

		Report ReportConfig
	}

	// ReportConfig carries the grading and risk policy thresholds applied by the
	// ingestion pipeline. They are plain configuration so the pipeline can be
	// exercised with varied policies in tests.
	ReportConfig struct {
		PassingGrade        float64
		MinAttendance       float64
		DefaultTotalClasses float64
		HighRiskThreshold   float64
		MediumRiskThreshold float64
	}
)

func NewConfig() *Config {
	conf := viper.New()

	// defaults
	conf.SetTypeByDefaultValue(true)
	conf.SetDefault("debug", true)
	conf.SetDefault("appName", "DashboardSchool")
	conf.SetDefault("address", ":8000")
	conf.SetDefault("build", "dev")
	conf.SetDefault("databasePath", "university_data.db")
	conf.SetDefault("rollbarToken", "")
	conf.SetDefault("passingGrade", 6.0)
	conf.SetDefault("minAttendance", 75.0)
	conf.SetDefault("defaultTotalClasses", 200.0)
	conf.SetDefault("highRiskThreshold", 0.7)
	conf.SetDefault("mediumRiskThreshold", 0.4)

	env := os.Getenv("ENV")
	if env == "" {
		env = "DEV"
	}
	conf.SetEnvPrefix(env)

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join("config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	conf.AutomaticEnv()

	c := &Config{
		Debug:    conf.GetBool("debug"),
		TestMode: env == "TEST",
		Env:      env,
		AppName:  conf.GetString("appName"),
		Address:  conf.GetString("address"),
		Build:    conf.GetString("build"),
		Report: ReportConfig{
			PassingGrade:        conf.GetFloat64("passingGrade"),
			MinAttendance:       conf.GetFloat64("minAttendance"),
			DefaultTotalClasses: conf.GetFloat64("defaultTotalClasses"),
			HighRiskThreshold:   conf.GetFloat64("highRiskThreshold"),
			MediumRiskThreshold: conf.GetFloat64("mediumRiskThreshold"),
		},
	}
	c.Database.Path = conf.GetString("databasePath")
	c.Rollbar.Token = conf.GetString("rollbarToken")
	return c
}
