package provisioning

import (
	"fmt"
	"log"
	"sort"
	"strings"
	"time"
)

// Logger is the minimal logging interface phases depend on.
type Logger interface {
	Printf(format string, v ...interface{})
}

// Observer defines the interface for structured observability during
// provisioning.
type Observer interface {
	Logger

	// Event emits a structured event
	Event(event Event)

	// WithFields returns a new Observer with additional context fields
	WithFields(fields map[string]string) Observer
}

// Event represents a structured provisioning event.
type Event struct {
	Type      EventType
	Phase     string
	Message   string
	Resource  string // Resource name/ID if applicable
	Timestamp time.Time
	Fields    map[string]string
}

// EventType represents the type of provisioning event.
type EventType string

const (
	// EventPhaseStarted indicates a provisioning phase has started.
	EventPhaseStarted EventType = "phase.started"
	// EventPhaseCompleted indicates a provisioning phase completed successfully.
	EventPhaseCompleted EventType = "phase.completed"
	// EventPhaseFailed indicates a provisioning phase failed.
	EventPhaseFailed EventType = "phase.failed"

	// EventAccountCreating indicates an account-creation request was issued.
	EventAccountCreating EventType = "account.creating"
	// EventAccountCreated indicates the provider confirmed the new account.
	EventAccountCreated EventType = "account.created"
	// EventAccountExists indicates the resolver found an existing account.
	EventAccountExists EventType = "account.exists"
	// EventAccountPolling indicates a creation-status poll.
	EventAccountPolling EventType = "account.polling"

	// EventIdentityCreated indicates an identity step completed.
	EventIdentityCreated EventType = "identity.created"
	// EventIdentityExists indicates an identity already existed and was reused.
	EventIdentityExists EventType = "identity.exists"

	// EventRenderWritten indicates a template set was rendered.
	EventRenderWritten EventType = "render.written"

	// EventValidationWarning indicates a non-fatal preflight finding.
	EventValidationWarning EventType = "validation.warning"
)

// ConsoleObserver implements Observer using the standard log package.
type ConsoleObserver struct {
	contextFields map[string]string
}

// NewConsoleObserver creates a new console-based observer.
func NewConsoleObserver() *ConsoleObserver {
	return &ConsoleObserver{
		contextFields: make(map[string]string),
	}
}

// Printf implements the Logger interface.
func (o *ConsoleObserver) Printf(format string, v ...interface{}) {
	log.Printf(format, v...)
}

// Event implements the Observer interface.
func (o *ConsoleObserver) Event(event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	if event.Fields == nil {
		event.Fields = make(map[string]string)
	}
	for k, v := range o.contextFields {
		if _, exists := event.Fields[k]; !exists {
			event.Fields[k] = v
		}
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("[%s]", event.Type))
	if event.Phase != "" {
		sb.WriteString(fmt.Sprintf(" phase=%s", event.Phase))
	}
	if event.Resource != "" {
		sb.WriteString(fmt.Sprintf(" resource=%s", event.Resource))
	}
	if event.Message != "" {
		sb.WriteString(" " + event.Message)
	}

	keys := make([]string, 0, len(event.Fields))
	for k := range event.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		sb.WriteString(fmt.Sprintf(" %s=%s", k, event.Fields[k]))
	}

	log.Print(sb.String())
}

// WithFields implements the Observer interface.
func (o *ConsoleObserver) WithFields(fields map[string]string) Observer {
	merged := make(map[string]string, len(o.contextFields)+len(fields))
	for k, v := range o.contextFields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	return &ConsoleObserver{contextFields: merged}
}

// NopObserver discards everything; used in tests.
type NopObserver struct{}

func (NopObserver) Printf(string, ...interface{}) {}

func (NopObserver) Event(Event) {}

func (n NopObserver) WithFields(map[string]string) Observer { return n }
