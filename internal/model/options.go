package model

import "go.uber.org/zap"

// Options configures the behaviour of the Builder. Options are constructed by
// the public adapter in pkg/model and passed into New.
type Options struct {
	// Sanitizer turns display names into identifiers.
	Sanitizer func(string) string
	// InterfaceNamer derives a composition interface name from its class name.
	InterfaceNamer func(string) string
	// TypeTable adds or overrides primitive name mappings. Keys are matched
	// case-insensitively.
	TypeTable map[string]string
	Logger    *zap.Logger
}

func defaultOptions() Options {
	return Options{
		Sanitizer:      SafeName,
		InterfaceNamer: DefaultInterfaceName,
	}
}
