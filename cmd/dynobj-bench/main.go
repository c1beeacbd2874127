package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"dynobj/pkg/dynobj"
)

// config mirrors the handful of knobs worth tuning between runs without
// recompiling: iteration count, and whether to fan the counter-increment
// workload out across goroutines each hammering their own object.
type config struct {
	Iterations int `yaml:"iterations"`
	Stress     bool `yaml:"stress"`
	Workers    int  `yaml:"workers"`
}

func defaultConfig() config {
	return config{Iterations: 1_000_000, Stress: false, Workers: 8}
}

func loadConfig(path string) (config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

func main() {
	configPath := flag.String("config", "", "Optional YAML file overriding the default bench settings")
	iterFlag := flag.Int("n", 0, "Override the iteration count from the config")
	stressFlag := flag.Bool("stress", false, "Run one counter per goroutine instead of a single serial counter")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(70)
	}
	if *iterFlag > 0 {
		cfg.Iterations = *iterFlag
	}
	if *stressFlag {
		cfg.Stress = true
	}

	if cfg.Stress {
		runStress(cfg)
		return
	}
	runSerial(cfg)
}

// runSerial reproduces the counter/inc micro-benchmark: a single object with
// an inc() method that reads, increments, and writes back its own counter
// property, called N times in a tight loop.
func runSerial(cfg config) {
	factory := dynobj.NewFactory()
	idCounter := factory.Intern("counter")
	idInc := factory.Intern("inc")

	obj := factory.CreateObject()
	obj.Set(factory, idCounter, dynobj.NewValue(0))
	obj.Set(factory, idInc, dynobj.NewMethod(func(self *dynobj.Object, args dynobj.Args) (dynobj.Value, error) {
		val, err := dynobj.GetAs[int](self, idCounter)
		if err != nil {
			val = 0
		}
		val++
		self.Set(factory, idCounter, dynobj.NewValue(val))
		return dynobj.NewValue(val), nil
	}))

	start := time.Now()
	for i := 0; i < cfg.Iterations; i++ {
		if _, err := dynobj.CallAs[int](obj, idInc, nil); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(70)
		}
	}
	elapsed := time.Since(start)

	final, err := dynobj.GetAs[int](obj, idCounter)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(70)
	}

	report(cfg.Iterations, final, elapsed)
}

// runStress fans the same workload out across cfg.Workers goroutines, each
// against its own object from a shared factory, exercising the factory guard
// and shape DAG under real contention rather than a single call stack.
func runStress(cfg config) {
	factory := dynobj.NewFactory()
	idCounter := factory.Intern("counter")
	idInc := factory.Intern("inc")

	perWorker := cfg.Iterations / cfg.Workers

	start := time.Now()
	var g errgroup.Group
	for w := 0; w < cfg.Workers; w++ {
		g.Go(func() error {
			obj := factory.CreateObject()
			obj.Set(factory, idCounter, dynobj.NewValue(0))
			obj.Set(factory, idInc, dynobj.NewMethod(func(self *dynobj.Object, args dynobj.Args) (dynobj.Value, error) {
				val, err := dynobj.GetAs[int](self, idCounter)
				if err != nil {
					val = 0
				}
				val++
				self.Set(factory, idCounter, dynobj.NewValue(val))
				return dynobj.NewValue(val), nil
			}))
			for i := 0; i < perWorker; i++ {
				if _, err := dynobj.CallAs[int](obj, idInc, nil); err != nil {
					return err
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(70)
	}
	elapsed := time.Since(start)

	report(perWorker*cfg.Workers, perWorker, elapsed)
}

func report(totalCalls, finalCounter int, elapsed time.Duration) {
	fmt.Printf("final counter = %d\n", finalCounter)
	fmt.Printf("did %s calls in %s\n", humanize.Comma(int64(totalCalls)), elapsed)
	millionPerSec := float64(totalCalls) / elapsed.Seconds() / 1_000_000
	fmt.Printf("%.3f million calls/sec approx\n", millionPerSec)
}
