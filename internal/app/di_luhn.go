package app

import (
	"fmt"

	luhnHTTP "github.com/allisson/luhnify/internal/luhn/http"
	luhnService "github.com/allisson/luhnify/internal/luhn/service"
	luhnUseCase "github.com/allisson/luhnify/internal/luhn/usecase"
)

// RandomSource returns the random source used by the generator, seeded from
// GENERATOR_SEED when it is non-zero.
func (c *Container) RandomSource() luhnService.RandomSource {
	c.randomSourceInit.Do(func() {
		c.randomSource = luhnService.RandomSourceFromSeed(uint64(c.config.GeneratorSeed))
	})
	return c.randomSource
}

// PatternGenerator returns the template-driven number generator.
func (c *Container) PatternGenerator() luhnService.PatternGenerator {
	c.patternGeneratorInit.Do(func() {
		c.patternGenerator = luhnService.NewPatternGenerator(c.RandomSource())
	})
	return c.patternGenerator
}

// GeneratorUseCase returns the generator use case wrapped with business metrics.
func (c *Container) GeneratorUseCase() (luhnUseCase.GeneratorUseCase, error) {
	var err error
	c.generatorUseCaseInit.Do(func() {
		c.generatorUseCase, err = c.initGeneratorUseCase()
		if err != nil {
			c.setInitError("generatorUseCase", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("generatorUseCase"); storedErr != nil {
		return nil, storedErr
	}
	return c.generatorUseCase, nil
}

// GeneratorHandler returns the HTTP handler for the generator endpoints.
func (c *Container) GeneratorHandler() (*luhnHTTP.GeneratorHandler, error) {
	var err error
	c.generatorHandlerInit.Do(func() {
		c.generatorHandler, err = c.initGeneratorHandler()
		if err != nil {
			c.setInitError("generatorHandler", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr := c.initError("generatorHandler"); storedErr != nil {
		return nil, storedErr
	}
	return c.generatorHandler, nil
}

func (c *Container) initGeneratorUseCase() (luhnUseCase.GeneratorUseCase, error) {
	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for generator use case: %w", err)
	}

	useCase := luhnUseCase.NewGeneratorUseCase(c.PatternGenerator(), c.Logger())

	return luhnUseCase.NewGeneratorUseCaseWithMetrics(useCase, businessMetrics), nil
}

func (c *Container) initGeneratorHandler() (*luhnHTTP.GeneratorHandler, error) {
	useCase, err := c.GeneratorUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get generator use case for handler: %w", err)
	}

	return luhnHTTP.NewGeneratorHandler(useCase, c.Logger()), nil
}
