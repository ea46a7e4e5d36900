// Package rx holds traits that expose widget events as RxJava 2 observables
// backed by RxBinding and RxRelay.
package rx

import (
	"github.com/toyz/artist/internal/plugin"
	"github.com/toyz/artist/internal/poet"
)

// Config customizes the streams the rx traits generate. Implementations are
// registered at plugin.RxConfigPoint; the first one registered wins.
type Config interface {
	// SignalEventType is the element type of notification-only streams
	// such as clicks. ProcessSignalEvent must map the stream to it.
	SignalEventType() poet.TypeName
	// ProcessSignalEvent post-processes a notification-only stream.
	ProcessSignalEvent(stream poet.CodeBlock) poet.CodeBlock
	// ProcessStream post-processes every returned stream.
	ProcessStream(stream poet.CodeBlock, eventType poet.TypeName) poet.CodeBlock
	// ProcessTap post-processes click streams, e.g. to log taps.
	ProcessTap(stream poet.CodeBlock) poet.CodeBlock
}

// DefaultConfig leaves streams untouched and signals with Object. Embed it
// to override only some of the hooks.
type DefaultConfig struct{}

func (DefaultConfig) SignalEventType() poet.TypeName { return poet.Object }

func (DefaultConfig) ProcessSignalEvent(stream poet.CodeBlock) poet.CodeBlock { return stream }

func (DefaultConfig) ProcessStream(stream poet.CodeBlock, _ poet.TypeName) poet.CodeBlock {
	return stream
}

func (DefaultConfig) ProcessTap(stream poet.CodeBlock) poet.CodeBlock { return stream }

// ResolveConfig returns the Config registered in r, or DefaultConfig.
func ResolveConfig(r *plugin.Registry) (Config, error) {
	return plugin.First[Config](r, plugin.RxConfigPoint, DefaultConfig{})
}

func orDefault(cfg Config) Config {
	if cfg == nil {
		return DefaultConfig{}
	}
	return cfg
}
