// Package container wires core edubridge services using go.uber.org/dig.
package container

import (
	"context"
	"log/slog"
	"time"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"go.uber.org/dig"

	"github.com/edubridge/edubridge/internal/config"
	"github.com/edubridge/edubridge/internal/edupage"
	"github.com/edubridge/edubridge/internal/keepalive"
	"github.com/edubridge/edubridge/internal/result"
	"github.com/edubridge/edubridge/internal/schema"
	"github.com/edubridge/edubridge/internal/server"
	"github.com/edubridge/edubridge/internal/session"
	"github.com/edubridge/edubridge/internal/tools"
)

// loginTimeout bounds one school's startup login so an unreachable
// school cannot stall the whole server coming up.
const loginTimeout = 45 * time.Second

// Container holds the resolved core service singletons.
// Callers use the typed getter methods; they never need to import dig directly.
type Container struct {
	sessions  *session.Registry
	toolReg   *tools.Registry
	keepAlive *keepalive.Service
	mcp       *mcpserver.MCPServer
}

func (c *Container) Sessions() *session.Registry     { return c.sessions }
func (c *Container) Tools() *tools.Registry          { return c.toolReg }
func (c *Container) KeepAlive() *keepalive.Service   { return c.keepAlive }
func (c *Container) MCPServer() *mcpserver.MCPServer { return c.mcp }

// versionKey is a named string type so dig can distinguish it from plain
// strings when injecting the build version into the MCP server.
type versionKey string

// New builds and wires all core services from cfg.
func New(cfg *config.Config, version string) (*Container, error) {
	d := dig.New()

	if err := d.Provide(func() *config.Config { return cfg }); err != nil {
		return nil, err
	}
	if err := d.Provide(func() versionKey { return versionKey(version) }); err != nil {
		return nil, err
	}
	if err := d.Provide(newClassifier); err != nil {
		return nil, err
	}
	if err := d.Provide(newSessionRegistry); err != nil {
		return nil, err
	}
	if err := d.Provide(newToolRegistry); err != nil {
		return nil, err
	}
	if err := d.Provide(newKeepAlive); err != nil {
		return nil, err
	}
	if err := d.Provide(newMCPServer); err != nil {
		return nil, err
	}

	var built *Container
	err := d.Invoke(func(
		sessions *session.Registry,
		toolReg *tools.Registry,
		keepAlive *keepalive.Service,
		mcp *mcpserver.MCPServer,
	) {
		built = &Container{
			sessions:  sessions,
			toolReg:   toolReg,
			keepAlive: keepAlive,
			mcp:       mcp,
		}
	})
	return built, err
}

func newClassifier(cfg *config.Config) *result.Classifier {
	return result.NewClassifier(result.DefaultHints().Merge(cfg.Hints))
}

// newSessionRegistry logs in to every configured school. One school
// failing is logged and skipped: the others must still come up, and the
// login tool can bring up the failed one later.
func newSessionRegistry(cfg *config.Config) *session.Registry {
	reg := session.NewRegistry()
	for _, school := range cfg.Schools {
		ctx, cancel := context.WithTimeout(context.Background(), loginTimeout)
		sess, err := edupage.Login(ctx, school.Subdomain, school.Username, school.Password)
		cancel()
		if err != nil {
			slog.Warn("startup login failed", "school", school.Subdomain, "err", err)
			continue
		}
		if err := reg.Register(school.Subdomain, sess); err != nil {
			slog.Warn("duplicate school in config", "school", school.Subdomain)
			continue
		}
		slog.Info("logged in", "school", school.Subdomain)
	}
	return reg
}

func newToolRegistry(cfg *config.Config, sessions *session.Registry, classify *result.Classifier) *tools.Registry {
	return tools.NewRegistry(tools.Options{
		Sessions:     sessions,
		Classify:     classify,
		DefaultLimit: cfg.Timeline.Limit,
		Login: func(ctx context.Context, subdomain, username, password string) (schema.Session, error) {
			return edupage.Login(ctx, subdomain, username, password)
		},
	})
}

func newKeepAlive(cfg *config.Config, sessions *session.Registry) *keepalive.Service {
	return keepalive.New(sessions, time.Duration(cfg.KeepAliveMinutes)*time.Minute)
}

func newMCPServer(toolReg *tools.Registry, version versionKey) *mcpserver.MCPServer {
	return server.New(toolReg, string(version))
}
