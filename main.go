package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"cpu-scheduler/api"
	"cpu-scheduler/config"
	"cpu-scheduler/internal/render"
	"cpu-scheduler/internal/requests"
	"cpu-scheduler/internal/schedulers"
)

type options struct {
	configPath  string
	inputPath   string
	algorithm   string
	timeQuantum int
	// timeQuantumSet is true when -quantum was given, even as 0.
	timeQuantumSet bool
}

func parseFlags(args []string) (options, error) {
	var o options
	fs := flag.NewFlagSet("cpu-scheduler", flag.ContinueOnError)
	fs.StringVar(&o.configPath, "config", "./", "directory holding config.yaml")
	fs.StringVar(&o.inputPath, "input", "", "file of arrival/burst pairs; prints the schedule instead of serving")
	fs.StringVar(&o.algorithm, "algorithm", "", "fcfs, sjf, rr, srtn or all (default from config)")
	fs.IntVar(&o.timeQuantum, "quantum", 0, "round robin time quantum (default from config)")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "quantum" {
			o.timeQuantumSet = true
		}
	})
	return o, nil
}

// withDefaults fills what the command line left unset from cfg. An explicit
// -quantum is kept as given so that Run can reject a non-positive one.
func (o options) withDefaults(cfg *config.SchedulerConfig) options {
	if !o.timeQuantumSet {
		o.timeQuantum = cfg.RoundRobinTimeQuantum
	}
	if o.algorithm == "" {
		o.algorithm = string(cfg.DefaultAlgorithm)
	}
	return o
}

func main() {
	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		os.Exit(2)
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		log.Fatalln(err)
	}

	if opts.inputPath != "" {
		opts = opts.withDefaults(cfg)
		if err := simulateFile(os.Stdout, opts.inputPath, opts.algorithm, opts.timeQuantum); err != nil {
			log.Fatalln(err)
		}
		return
	}

	app := fiber.New()
	app.Use(recover.New(), logger.New())

	v1 := app.Group("/api").Group("/v1")
	api.Register(v1, api.NewSchedulerHandlerImpl(cfg))

	log.Fatalln(app.Listen(fmt.Sprintf(":%d", cfg.Port)))
}

func simulateFile(w io.Writer, path, algorithm string, timeQuantum int) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%v: error opening scheduling file", err)
	}
	defer f.Close()

	jobs, err := requests.ParseInput(f)
	if err != nil {
		return err
	}
	set, err := requests.NewProcessSet(jobs)
	if err != nil {
		return err
	}

	var scheduled []schedulers.Schedule
	if strings.EqualFold(algorithm, "all") {
		if scheduled, err = schedulers.RunAll(set, timeQuantum); err != nil {
			return err
		}
	} else {
		a, err := schedulers.ParseAlgorithm(algorithm)
		if err != nil {
			return err
		}
		schedule, err := schedulers.Run(a, set, timeQuantum)
		if err != nil {
			return err
		}
		scheduled = append(scheduled, schedule)
	}

	for _, schedule := range scheduled {
		render.Schedule(w, schedule.Algorithm.Title(), schedulers.GenerateResponse(schedule))
	}
	return nil
}
