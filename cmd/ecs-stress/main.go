package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"runtime"
	"time"

	"go.uber.org/zap"

	"github.com/plus3/weft/ecs"
)

func main() {
	duration := flag.Duration("duration", 10*time.Second, "The total duration the test should run for.")
	scenarioPath := flag.String("scenario", "", "Optional TOML scenario file overriding the built-in defaults.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	flag.Parse()

	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		os.Exit(1)
	}
	defer logger.Sync()

	scenario, err := loadScenario(*scenarioPath)
	if err != nil {
		logger.Fatal("loading scenario", zap.Error(err))
	}

	logger.Info("starting stress run",
		zap.Duration("duration", *duration),
		zap.Int("entities", scenario.Entities),
		zap.Int("systems", scenario.Systems),
		zap.Int("components", scenario.Components),
		zap.Int("churn_per_frame", scenario.ChurnPerFrame),
	)

	rng := rand.New(rand.NewSource(scenario.Seed))
	pool := componentPool(scenario.Components)

	// 1. Build the world with the generated system set.
	world := ecs.NewWorld(ecs.WithSystems(buildSystems(scenario, pool, rng)...))

	// 2. Populate the initial entity set.
	live := make([]ecs.Entity, 0, scenario.Entities)
	for i := 0; i < scenario.Entities; i++ {
		live = append(live, spawnRandom(world, pool, rng))
	}
	logger.Info("population complete")

	// 3. Run the frame loop with per-frame population churn.
	report := &Report{
		Duration:       *duration,
		Entities:       scenario.Entities,
		Components:     scenario.Components,
		Systems:        scenario.Systems,
		ChurnPerFrame:  scenario.ChurnPerFrame,
		GCPauseMetrics: *gcPauseMetrics,
		UpdateTime: Stats{
			Samples: make([]time.Duration, 0),
		},
	}

	runtime.ReadMemStats(&report.MemStatsStart)

	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	startTime := time.Now()
	var totalUpdates int64
	lastFrameTime := time.Now()

Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
			deltaTime := time.Since(lastFrameTime)
			lastFrameTime = time.Now()

			updateStart := time.Now()
			world.Update(float64(deltaTime) / float64(time.Second))
			updateDuration := time.Since(updateStart)

			report.UpdateTime.Samples = append(report.UpdateTime.Samples, updateDuration)
			totalUpdates++

			live = churn(world, live, scenario, pool, rng)
		}
	}

	report.TotalTime = time.Since(startTime)
	report.TotalUpdates = totalUpdates
	report.UpdateTime.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)

	worldStats := world.Stats()
	report.FinalEntities = worldStats.EntityCount
	report.SystemExecutions = worldStats.TotalExecutions

	logger.Info("stress run finished", zap.Int64("updates", totalUpdates))

	fmt.Println("\n--- Stress Test Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		logger.Fatal("generating report", zap.Error(err))
	}
	fmt.Println("--- End of Report ---")
}

// componentPool names the synthetic components c0..cN-1.
func componentPool(n int) []ecs.Component {
	pool := make([]ecs.Component, n)
	for i := range pool {
		pool[i] = ecs.Component(fmt.Sprintf("c%d", i))
	}
	return pool
}

// buildSystems generates systems with random aspects over the component
// pool. Each one reads the first required component of every matched entity,
// a representative minimal workload.
func buildSystems(scenario Scenario, pool []ecs.Component, rng *rand.Rand) []ecs.System {
	systems := make([]ecs.System, 0, scenario.Systems)
	for i := 0; i < scenario.Systems; i++ {
		required := make([]ecs.Component, 0, 3)
		for _, name := range pickDistinct(pool, rng.Intn(3)+1, rng) {
			required = append(required, name)
		}

		filter := ecs.Requires(required...)
		if rng.Intn(4) == 0 {
			filter = filter.Without(pool[rng.Intn(len(pool))])
		}

		first := required[0]
		systems = append(systems, &ecs.SystemFunc{
			Filter: filter,
			UpdateFn: func(frame *ecs.Frame, e ecs.Entity) {
				frame.World.Component(e, first)
			},
		})
	}
	return systems
}

func pickDistinct(pool []ecs.Component, n int, rng *rand.Rand) []ecs.Component {
	if n > len(pool) {
		n = len(pool)
	}
	seen := make(map[ecs.Component]struct{}, n)
	picked := make([]ecs.Component, 0, n)
	for len(picked) < n {
		name := pool[rng.Intn(len(pool))]
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		picked = append(picked, name)
	}
	return picked
}

// spawnRandom creates an entity carrying 1 to 5 random components.
func spawnRandom(world *ecs.World, pool []ecs.Component, rng *rand.Rand) ecs.Entity {
	e := world.NewEntity()
	n := rng.Intn(5) + 1
	for i := 0; i < n; i++ {
		world.SetComponent(e, pool[rng.Intn(len(pool))], rng.Intn(1000))
	}
	return e
}

// churn removes and replaces a slice of the population each frame and
// resubmits a fraction of survivors with a mutated component set, exercising
// both transition paths of the synchronization protocol.
func churn(world *ecs.World, live []ecs.Entity, scenario Scenario, pool []ecs.Component, rng *rand.Rand) []ecs.Entity {
	for i := 0; i < scenario.ChurnPerFrame && len(live) > 0; i++ {
		idx := rng.Intn(len(live))
		world.RemoveEntity(live[idx])
		live[idx] = live[len(live)-1]
		live = live[:len(live)-1]
	}

	for i := 0; i < scenario.ChurnPerFrame; i++ {
		live = append(live, spawnRandom(world, pool, rng))
	}

	if scenario.ResubmitRate > 0 && len(live) > 0 {
		n := int(float64(len(live)) * scenario.ResubmitRate)
		for i := 0; i < n; i++ {
			e := live[rng.Intn(len(live))]
			world.SetComponent(e, pool[rng.Intn(len(pool))], rng.Intn(1000))
			world.AddEntity(e)
		}
	}

	return live
}
