package testutil

import (
	"io"
	"log"
	"testing"

	echoapi "github.com/trezcool/academia/apps/api/echo"
	"github.com/trezcool/academia/core"
	logsvc "github.com/trezcool/academia/services/logger"
	"github.com/trezcool/academia/storage/seed"
)

// NewLogger returns a disabled logger writing nowhere.
func NewLogger(conf *core.Config) *logsvc.RollbarLogger {
	logger := logsvc.NewRollbarLogger(log.New(io.Discard, "", 0), conf)
	logger.Enable(false)
	return logger
}

// NewConfig returns the test configuration.
func NewConfig() *core.Config {
	conf := core.NewConfig()
	conf.Debug = false
	conf.TestMode = true
	conf.Server.DisableReqLogs = true
	return conf
}

// NewAPIServer returns an API server on a fresh in-memory store, loaded with fixture if not nil.
func NewAPIServer(t *testing.T, fixture *seed.Fixture) (*echoapi.Server, *Services) {
	t.Helper()
	conf := NewConfig()
	svcs := NewServices(t, fixture)
	_, translator := NewValidator()
	server := echoapi.NewServer(echoapi.ServerDeps{
		Conf:       conf,
		Logger:     NewLogger(conf),
		Validate:   svcs.Validate,
		Translator: translator,
		StudentSvc: svcs.Student,
		CourseSvc:  svcs.Course,
		FacultySvc: svcs.Faculty,
		GradeSvc:   svcs.Grade,
		Store:      svcs.DB,
	})
	return server, svcs
}
