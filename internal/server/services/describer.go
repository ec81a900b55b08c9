package services

import "context"

// Describer produces a description for an uploaded file that came without one.
type Describer interface {
	Describe(ctx context.Context, name string) (string, error)
}

// FallbackDescriber derives the description from the file name alone.
type FallbackDescriber struct{}

func (FallbackDescriber) Describe(ctx context.Context, name string) (string, error) {
	return "A file named " + name, nil
}
