package core

import (
	"fmt"
	"log"
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	Config struct {
		AppName      string
		Env          string // DEV (local; default), TEST, QA, PROD
		Build        string
		Debug        bool
		TestMode     bool
		RollbarToken string
		ExportDir    string
		Server       ServerConfig
		Database     DatabaseConfig
		Client       ClientConfig
		Dashboard    DashboardConfig
	}

	ServerConfig struct {
		Host            string
		Address         string
		DebugHost       string
		ReadTimeout     time.Duration
		WriteTimeout    time.Duration
		ShutdownTimeout time.Duration
		DisableReqLogs  bool
	}

	DatabaseConfig struct {
		Engine     string // inmem | postgres
		Host       string
		Port       string
		Name       string
		User       string
		Password   string
		DisableTLS bool
		Seed       bool
	}

	// ClientConfig configures the HTTP client used to talk to the records API.
	ClientConfig struct {
		BaseURL         string
		Timeout         time.Duration
		BulkConcurrency int
	}

	DashboardConfig struct {
		StudentPageSize   int
		CoursePageSize    int
		RosterPageSize    int
		TopStudents       int
		TopCourses        int
		ReportLeaderboard int
		RecentGrades      int
	}
)

const (
	EngineInMem    = "inmem"
	EnginePostgres = "postgres"
)

func (db DatabaseConfig) Address() string {
	return net.JoinHostPort(db.Host, db.Port)
}

func NewConfig() *Config {
	conf := viper.New()

	// defaults
	conf.SetTypeByDefaultValue(true)
	conf.SetDefault("app_name", "Academia")
	conf.SetDefault("build", "dev")
	conf.SetDefault("debug", true)
	conf.SetDefault("test_mode", false)
	conf.SetDefault("rollbar_token", "")
	conf.SetDefault("export_dir", ".")

	conf.SetDefault("server.host", "localhost")
	conf.SetDefault("server.address", ":4000")
	conf.SetDefault("server.debug_host", "localhost:4010")
	conf.SetDefault("server.read_timeout", 5*time.Second)
	conf.SetDefault("server.write_timeout", 10*time.Second)
	conf.SetDefault("server.shutdown_timeout", 5*time.Second)
	conf.SetDefault("server.disable_req_logs", false)

	conf.SetDefault("database.engine", EngineInMem)
	conf.SetDefault("database.host", "localhost")
	conf.SetDefault("database.port", "5432")
	conf.SetDefault("database.name", "academia")
	conf.SetDefault("database.user", "postgres")
	conf.SetDefault("database.password", "postgres")
	conf.SetDefault("database.disable_tls", true)
	conf.SetDefault("database.seed", true)

	conf.SetDefault("client.base_url", "http://localhost:4000")
	conf.SetDefault("client.timeout", 10*time.Second)
	conf.SetDefault("client.bulk_concurrency", 4)

	conf.SetDefault("dashboard.student_page_size", 6)
	conf.SetDefault("dashboard.course_page_size", 6)
	conf.SetDefault("dashboard.roster_page_size", 8)
	conf.SetDefault("dashboard.top_students", 5)
	conf.SetDefault("dashboard.top_courses", 5)
	conf.SetDefault("dashboard.report_leaderboard", 8)
	conf.SetDefault("dashboard.recent_grades", 6)

	env := strings.ToUpper(os.Getenv("ENV"))
	if env == "" {
		env = "DEV"
	}
	if env == "TEST" {
		conf.SetDefault("test_mode", true)
	}

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join("config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}

	// e.g. DEV_SERVER_ADDRESS=:8000
	conf.SetEnvPrefix(env)
	conf.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	conf.AutomaticEnv()

	return &Config{
		AppName:      conf.GetString("app_name"),
		Env:          env,
		Build:        conf.GetString("build"),
		Debug:        conf.GetBool("debug"),
		TestMode:     conf.GetBool("test_mode"),
		RollbarToken: conf.GetString("rollbar_token"),
		ExportDir:    conf.GetString("export_dir"),
		Server: ServerConfig{
			Host:            conf.GetString("server.host"),
			Address:         conf.GetString("server.address"),
			DebugHost:       conf.GetString("server.debug_host"),
			ReadTimeout:     conf.GetDuration("server.read_timeout"),
			WriteTimeout:    conf.GetDuration("server.write_timeout"),
			ShutdownTimeout: conf.GetDuration("server.shutdown_timeout"),
			DisableReqLogs:  conf.GetBool("server.disable_req_logs"),
		},
		Database: DatabaseConfig{
			Engine:     conf.GetString("database.engine"),
			Host:       conf.GetString("database.host"),
			Port:       conf.GetString("database.port"),
			Name:       conf.GetString("database.name"),
			User:       conf.GetString("database.user"),
			Password:   conf.GetString("database.password"),
			DisableTLS: conf.GetBool("database.disable_tls"),
			Seed:       conf.GetBool("database.seed"),
		},
		Client: ClientConfig{
			BaseURL:         strings.TrimRight(conf.GetString("client.base_url"), "/"),
			Timeout:         conf.GetDuration("client.timeout"),
			BulkConcurrency: conf.GetInt("client.bulk_concurrency"),
		},
		Dashboard: DashboardConfig{
			StudentPageSize:   conf.GetInt("dashboard.student_page_size"),
			CoursePageSize:    conf.GetInt("dashboard.course_page_size"),
			RosterPageSize:    conf.GetInt("dashboard.roster_page_size"),
			TopStudents:       conf.GetInt("dashboard.top_students"),
			TopCourses:        conf.GetInt("dashboard.top_courses"),
			ReportLeaderboard: conf.GetInt("dashboard.report_leaderboard"),
			RecentGrades:      conf.GetInt("dashboard.recent_grades"),
		},
	}
}

func (c *Config) String() string {
	return fmt.Sprintf("%s (%s, build %s, db %s)", c.AppName, c.Env, c.Build, c.Database.Engine)
}
