package testutil

import (
	"github.com/brianvoe/gofakeit/v7"
)

// NameGenerator produces deterministic contestant names for tests
type NameGenerator struct {
	faker *gofakeit.Faker
	seen  map[string]bool
}

// NewNameGenerator creates a generator seeded for reproducible output
func NewNameGenerator(seed uint64) *NameGenerator {
	return &NameGenerator{
		faker: gofakeit.New(seed),
		seen:  make(map[string]bool),
	}
}

// Names returns count distinct first names
func (g *NameGenerator) Names(count int) []string {
	names := make([]string, 0, count)
	for len(names) < count {
		name := g.faker.FirstName()
		if g.seen[name] {
			// Faker pools are finite; disambiguate rather than loop forever
			name = name + " " + g.faker.LastName()
			if g.seen[name] {
				continue
			}
		}
		g.seen[name] = true
		names = append(names, name)
	}
	return names
}
