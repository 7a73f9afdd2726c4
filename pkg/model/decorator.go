package model

// Decorator adjusts a generated model after the schema-derived structure has
// been built and before it is rendered.
type Decorator interface {
	Decorate(*GeneratedModel) error
}

// DecoratorFunc adapts a function into a Decorator.
type DecoratorFunc func(*GeneratedModel) error

// Decorate calls the underlying function.
func (fn DecoratorFunc) Decorate(model *GeneratedModel) error {
	return fn(model)
}
