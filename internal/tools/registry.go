// Package tools implements the MCP tool surface: one Tool per operation a
// client can call, all running against the shared session registry.
package tools

import (
	"context"

	"github.com/edubridge/edubridge/internal/result"
	"github.com/edubridge/edubridge/internal/schema"
	"github.com/edubridge/edubridge/internal/session"
)

// LoginFunc authenticates against one school and returns a live session.
// Injected so the tool layer never depends on the backend client directly.
type LoginFunc func(ctx context.Context, subdomain, username, password string) (schema.Session, error)

// Options configures the tool set.
type Options struct {
	Sessions *session.Registry
	Classify *result.Classifier
	Login    LoginFunc
	// DefaultLimit is the timeline page size used when a call passes none.
	DefaultLimit int
}

// Registry holds the named tools in registration order, so the MCP tool
// listing is deterministic.
type Registry struct {
	order []string
	tools map[string]schema.Tool
}

// Get returns the tool with the given name, or nil.
func (r *Registry) Get(name string) schema.Tool {
	return r.tools[name]
}

// All returns every tool in registration order.
func (r *Registry) All() []schema.Tool {
	out := make([]schema.Tool, len(r.order))
	for i, name := range r.order {
		out[i] = r.tools[name]
	}
	return out
}

// Len returns the number of registered tools.
func (r *Registry) Len() int { return len(r.order) }

// RegistryBuilder accumulates tools during the construction phase.
// Call Build() to produce an immutable Registry ready for use.
type RegistryBuilder struct {
	order []string
	tools map[string]schema.Tool
}

// NewRegistryBuilder returns a fresh RegistryBuilder.
func NewRegistryBuilder() *RegistryBuilder {
	return &RegistryBuilder{tools: make(map[string]schema.Tool)}
}

// WithTool adds a tool and returns the builder, enabling chaining.
// Re-adding a name replaces the tool but keeps its original position.
func (b *RegistryBuilder) WithTool(tool schema.Tool) *RegistryBuilder {
	if _, exists := b.tools[tool.Name()]; !exists {
		b.order = append(b.order, tool.Name())
	}
	b.tools[tool.Name()] = tool
	return b
}

// Build produces an immutable Registry from the accumulated tools.
func (b *RegistryBuilder) Build() *Registry {
	tools := make(map[string]schema.Tool, len(b.tools))
	for k, v := range b.tools {
		tools[k] = v
	}
	order := make([]string, len(b.order))
	copy(order, b.order)
	return &Registry{order: order, tools: tools}
}

// NewRegistry assembles the full tool surface.
func NewRegistry(opts Options) *Registry {
	base := &base{
		sessions: opts.Sessions,
		classify: opts.Classify,
		limit:    opts.DefaultLimit,
	}
	if base.limit <= 0 {
		base.limit = 50
	}

	return NewRegistryBuilder().
		WithTool(&LoginTool{base: base, login: opts.Login}).
		WithTool(&ListSchoolsTool{base: base}).
		WithTool(&MyChildrenTool{base: base}).
		WithTool(&StudentsTool{base: base}).
		WithTool(&AllStudentsTool{base: base}).
		WithTool(&TeachersTool{base: base}).
		WithTool(&ClassesTool{base: base}).
		WithTool(&ClassroomsTool{base: base}).
		WithTool(&SubjectsTool{base: base}).
		WithTool(&PeriodsTool{base: base}).
		WithTool(&TimetableTool{base: base}).
		WithTool(&NextWeekTimetableTool{base: base}).
		WithTool(&TimetableChangesTool{base: base}).
		WithTool(&GradesTool{base: base}).
		WithTool(&HomeworkTool{base: base}).
		WithTool(&AssignmentsTool{base: base}).
		WithTool(&TimelineTool{base: base}).
		WithTool(&NotificationsTool{base: base}).
		WithTool(&NotificationHistoryTool{base: base}).
		WithTool(&AbsencesTool{base: base}).
		WithTool(&UpcomingEventsTool{base: base}).
		WithTool(&NewsTool{base: base}).
		WithTool(&MealsTool{base: base}).
		WithTool(&SendMessageTool{base: base}).
		WithTool(&StudentSummaryTool{base: base}).
		Build()
}

// base carries the dependencies every tool shares.
type base struct {
	sessions *session.Registry
	classify *result.Classifier
	limit    int
}
