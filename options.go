package jsonpatch

import "github.com/go-logr/logr"

type config struct {
	log                     logr.Logger
	endOfArray              bool
	allowMoveIntoDescendant bool
}

func defaultConfig() config {
	return config{log: logr.Discard()}
}

// Option configures a Patcher.
type Option interface {
	apply(*config)
}

type optionFunc func(*config)

func (f optionFunc) apply(c *config) { f(c) }

// WithLogger sets the logger used to report applied (V(1)) and failed
// operations.
func WithLogger(log logr.Logger) Option {
	return optionFunc(func(c *config) {
		c.log = log.WithName("jsonpatch")
	})
}

// WithEndOfArray makes "add" accept the "-" reference token as the index
// after the last array element, appending the value.
func WithEndOfArray() Option {
	return optionFunc(func(c *config) {
		c.endOfArray = true
	})
}

// WithMoveIntoDescendant disables the check that rejects moving a value
// into one of its own children. The move then runs as a plain remove
// followed by an add.
func WithMoveIntoDescendant() Option {
	return optionFunc(func(c *config) {
		c.allowMoveIntoDescendant = true
	})
}
