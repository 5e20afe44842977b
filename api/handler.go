package api

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/kr/pretty"

	"cpu-scheduler/config"
	"cpu-scheduler/internal/core"
	"cpu-scheduler/internal/requests"
	"cpu-scheduler/internal/responses"
	"cpu-scheduler/internal/schedulers"
)

var errInvalidRequestFormat = errors.New("invalid request format")

type SchedulerHandler interface {
	FirstComeFirstServe(ctx *fiber.Ctx) error
	RoundRobin(ctx *fiber.Ctx) error
	ShortestJobFirst(ctx *fiber.Ctx) error
	ShortestRemainingTimeNext(ctx *fiber.Ctx) error
	Schedule(ctx *fiber.Ctx) error
	AllAlgorithms(ctx *fiber.Ctx) error
}

type SchedulerHandlerImpl struct {
	config *config.SchedulerConfig
}

func NewSchedulerHandlerImpl(config *config.SchedulerConfig) *SchedulerHandlerImpl {
	return &SchedulerHandlerImpl{config: config}
}

// Register mounts every handler on router.
func Register(router fiber.Router, handler SchedulerHandler) {
	router.Post("/fcfs", handler.FirstComeFirstServe)
	router.Post("/sjf", handler.ShortestJobFirst)
	router.Post("/rr", handler.RoundRobin)
	router.Post("/srtn", handler.ShortestRemainingTimeNext)
	router.Post("/schedule", handler.Schedule)
	router.Post("/all", handler.AllAlgorithms)
}

func (s *SchedulerHandlerImpl) FirstComeFirstServe(ctx *fiber.Ctx) error {
	return s.run(ctx, schedulers.FirstComeFirstServe)
}

func (s *SchedulerHandlerImpl) RoundRobin(ctx *fiber.Ctx) error {
	return s.run(ctx, schedulers.RoundRobin)
}

func (s *SchedulerHandlerImpl) ShortestJobFirst(ctx *fiber.Ctx) error {
	return s.run(ctx, schedulers.ShortestJobFirst)
}

func (s *SchedulerHandlerImpl) ShortestRemainingTimeNext(ctx *fiber.Ctx) error {
	return s.run(ctx, schedulers.ShortestRemainingTimeNext)
}

// Schedule runs the algorithm named in the request body, or the configured
// default when the body names none.
func (s *SchedulerHandlerImpl) Schedule(ctx *fiber.Ctx) error {
	request, set, err := s.parse(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}
	algorithm := s.config.DefaultAlgorithm
	if request.Algorithm != "" {
		if algorithm, err = schedulers.ParseAlgorithm(request.Algorithm); err != nil {
			return badRequest(ctx, err)
		}
	}
	return s.respond(ctx, algorithm, set, s.timeQuantum(request))
}

func (s *SchedulerHandlerImpl) AllAlgorithms(ctx *fiber.Ctx) error {
	request, set, err := s.parse(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}
	schedules, err := schedulers.RunAll(set, s.timeQuantum(request))
	if err != nil {
		return failure(ctx, err)
	}

	response := make([]responses.ScheduleResponse, 0, len(schedules))
	for _, schedule := range schedules {
		response = append(response, schedulers.GenerateResponse(schedule))
	}
	s.debug(response)
	return ctx.JSON(response)
}

func (s *SchedulerHandlerImpl) run(ctx *fiber.Ctx, algorithm schedulers.Algorithm) error {
	request, set, err := s.parse(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}
	return s.respond(ctx, algorithm, set, s.timeQuantum(request))
}

func (s *SchedulerHandlerImpl) respond(ctx *fiber.Ctx, algorithm schedulers.Algorithm, set core.ProcessSet, timeQuantum int) error {
	schedule, err := schedulers.Run(algorithm, set, timeQuantum)
	if err != nil {
		return failure(ctx, err)
	}
	response := schedulers.GenerateResponse(schedule)
	s.debug(response)
	return ctx.JSON(response)
}

func (s *SchedulerHandlerImpl) parse(ctx *fiber.Ctx) (*requests.ScheduleRequests, core.ProcessSet, error) {
	request := new(requests.ScheduleRequests)
	if err := ctx.BodyParser(request); err != nil {
		return nil, core.ProcessSet{}, errInvalidRequestFormat
	}
	set, err := request.ProcessSet()
	if err != nil {
		return nil, core.ProcessSet{}, err
	}
	return request, set, nil
}

// timeQuantum prefers the request's value, even a non-positive one, so that
// Run can reject it.
func (s *SchedulerHandlerImpl) timeQuantum(request *requests.ScheduleRequests) int {
	if request.TimeQuantum != nil {
		return *request.TimeQuantum
	}
	return s.config.RoundRobinTimeQuantum
}

func (s *SchedulerHandlerImpl) debug(response interface{}) {
	if s.config.Debug {
		log.Printf("response is: %s", pretty.Sprint(response))
	}
}

func badRequest(ctx *fiber.Ctx, err error) error {
	return ctx.Status(fiber.StatusBadRequest).JSON(responses.ErrorResponse{Error: err.Error()})
}

// failure maps validation errors to 400 and anything else, such as an
// inconsistent trace, to 500.
func failure(ctx *fiber.Ctx, err error) error {
	if errors.Is(err, schedulers.ErrInvalidTimeQuantum) || errors.Is(err, schedulers.ErrUnknownAlgorithm) {
		return badRequest(ctx, err)
	}
	log.Println("scheduling failed:", err)
	return ctx.Status(fiber.StatusInternalServerError).JSON(responses.ErrorResponse{Error: "can not process request"})
}
