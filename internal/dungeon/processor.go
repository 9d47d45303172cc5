package dungeon

import "fmt"

// Processor is one stage of the generation pipeline. It mutates the dungeon in place.
type Processor interface {
	Process(d *Dungeon, cfg Configuration, rng Random)
}

// ProcessorFunc adapts a plain function to a Processor
type ProcessorFunc func(d *Dungeon, cfg Configuration, rng Random)

// Process calls f(d, cfg, rng)
func (f ProcessorFunc) Process(d *Dungeon, cfg Configuration, rng Random) {
	f(d, cfg, rng)
}

// Generator runs the fixed stage sequence with optional caller-supplied stages.
// Pre-processors run on the logical maze before refinement; post-processors run on the
// finished tile grid after wall resolution.
type Generator struct {
	config         Configuration
	rng            Random
	preProcessors  []Processor
	postProcessors []Processor
}

// NewGenerator creates a generator for the given configuration and random source
func NewGenerator(config Configuration, rng Random) *Generator {
	return &Generator{
		config: config,
		rng:    rng,
	}
}

// AddPreProcessor appends stages to run on the logical maze, before refinement
func (g *Generator) AddPreProcessor(p ...Processor) {
	g.preProcessors = append(g.preProcessors, p...)
}

// AddPostProcessor appends stages to run after wall resolution
func (g *Generator) AddPostProcessor(p ...Processor) {
	g.postProcessors = append(g.postProcessors, p...)
}

// Generate builds one complete dungeon
func (g *Generator) Generate() (*Dungeon, error) {
	if err := g.config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	maze := New(g.config.Width, g.config.Height)
	g.run(maze, mazeProcessor{}, sparsenessProcessor{}, deadEndProcessor{})
	g.run(maze, g.preProcessors...)

	d := refine(maze)

	g.run(d, roomProcessor{}, doorProcessor{}, wallProcessor{})
	g.run(d, g.postProcessors...)

	return d, nil
}

func (g *Generator) run(d *Dungeon, stages ...Processor) {
	for _, stage := range stages {
		stage.Process(d, g.config, g.rng)
	}
}

// Generate builds a dungeon from a configuration and a seed using the default Randomizer
func Generate(config Configuration, seed int64) (*Dungeon, error) {
	return NewGenerator(config, NewRandomizer(seed)).Generate()
}
