// Package server exposes a running match over websockets: clients steer
// paddles and receive state and event frames.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
	"github.com/zeusync/volley/internal/core/controller"
	"github.com/zeusync/volley/internal/core/events/bus"
	"github.com/zeusync/volley/internal/core/game"
	"github.com/zeusync/volley/internal/core/observability/log"
	"golang.org/x/sync/errgroup"
)

// Server owns the simulation loop. The world is only touched from the loop
// goroutine; connections talk to it through the command channel.
type Server struct {
	cfg      Config
	world    *game.World
	opponent *controller.Heuristic
	bus      bus.EventBus
	hub      *hub
	metrics  *busMetrics
	logger   log.Log

	commands chan command
	done     chan struct{}
}

// collisionTopic carries collision events. They are broadcast but never
// replayed to late clients.
const collisionTopic = "collisions"

type command struct {
	msg   ClientMessage
	reply chan error
}

// New wires a server around world. opponent may be nil.
func New(cfg Config, world *game.World, opponent *controller.Heuristic, events bus.EventBus, logger log.Log) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.NewNop()
	}
	logger = logger.With(log.String("component", "server"))

	s := &Server{
		cfg:      cfg,
		world:    world,
		opponent: opponent,
		bus:      events,
		hub:      newHub(cfg.History, logger),
		metrics:  &busMetrics{logger: logger},
		logger:   logger,
		commands: make(chan command),
		done:     make(chan struct{}),
	}

	return s, nil
}

// Handler serves /ws and /healthz.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/healthz", s.handleHealth)
	return mux
}

// Run serves HTTP on the configured address and runs the simulation until
// ctx is cancelled or either of them fails.
func (s *Server) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	httpServer := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g.Go(func() error {
		return s.runSimulation(ctx)
	})

	g.Go(func() error {
		s.logger.Info("Server listening", log.String("addr", s.cfg.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		s.logger.Info("Stopping server")
		s.hub.closeAll()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	if s.cfg.StatsAddr != "" {
		viewer.SetConfiguration(viewer.WithAddr(s.cfg.StatsAddr))
		mgr := statsview.New()
		go mgr.Start()
		g.Go(func() error {
			<-ctx.Done()
			mgr.Stop()
			return nil
		})
		s.logger.Info("Stats viewer started", log.String("addr", s.cfg.StatsAddr))
	}

	return g.Wait()
}

// runSimulation steps the world in real time, applies client commands
// between steps and broadcasts snapshots.
func (s *Server) runSimulation(ctx context.Context) (err error) {
	defer close(s.done)
	defer s.recoverPanic(&err)

	unsubscribe, err := s.subscribe()
	if err != nil {
		return err
	}
	defer unsubscribe()

	fixed := s.world.Config().FixedStep()
	steps := time.NewTicker(time.Duration(fixed * float64(time.Second)))
	defer steps.Stop()
	broadcast := time.NewTicker(s.cfg.BroadcastInterval)
	defer broadcast.Stop()

	s.logger.Info("Simulation started",
		log.Int("tick_rate", s.world.Config().TickRate),
		log.String("match_id", s.world.MatchID().String()))
	defer func() {
		s.logger.Info("Simulation stopped", log.Uint64("tick", s.world.Tick()))
	}()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return nil
		case cmd := <-s.commands:
			cmd.reply <- s.apply(cmd.msg)
		case now := <-steps.C:
			s.advance(now.Sub(last).Seconds(), fixed)
			last = now
		case <-broadcast.C:
			s.hub.broadcast(stateFrame(s.world.Snapshot()))
		}
	}
}

// advance runs the steps that are due, letting the opponent steer before
// each one, then publishes the events they produced.
func (s *Server) advance(delta, fixed float64) {
	due := s.world.Advance(delta)
	for range due {
		if s.opponent != nil {
			if err := s.opponent.Update(fixed); err != nil {
				s.logger.Warn("Opponent update failed", log.Error(err))
			}
		}
		s.world.Step()
	}

	if err := s.publish(s.world.DrainEvents()); err != nil {
		s.logger.Debug("Event delivery failed", log.Error(err))
	}
}

// publish hands drained events to the bus in order. Collisions go to their
// own topic; runs of other events are published as one batch.
func (s *Server) publish(drained []game.Event) error {
	var (
		all   error
		batch []bus.Event
	)
	flush := func() {
		if len(batch) > 0 {
			all = errors.Join(all, s.bus.PublishBatch(batch...))
			batch = batch[:0]
		}
	}
	for _, e := range drained {
		if e.Type() == game.CollisionEventType {
			flush()
			all = errors.Join(all, s.bus.PublishToTopic(collisionTopic, e))
			continue
		}
		batch = append(batch, e)
	}
	flush()
	return all
}

// subscribe registers the loop's bus consumers and the metrics observer for
// as long as the loop runs.
func (s *Server) subscribe() (func(), error) {
	if err := s.bus.CreateTopic(collisionTopic); err != nil {
		return nil, err
	}

	var subs []bus.Subscription
	unsubscribe := func() {
		for _, sub := range subs {
			_ = s.bus.Unsubscribe(sub)
		}
		s.bus.RemoveObserver(s.metrics)
	}

	for _, r := range []struct {
		topic, eventType string
		handler          bus.EventHandler
	}{
		{topic: "", eventType: bus.AnyType, handler: s.forwardEvent},
		{topic: "", eventType: game.ScoreEventType, handler: s.logScore},
		{topic: collisionTopic, eventType: game.CollisionEventType, handler: s.forwardCollision},
	} {
		sub, err := s.bus.SubscribeTopic(r.topic, r.eventType, r.handler)
		if err != nil {
			unsubscribe()
			return nil, err
		}
		s.logger.Debug("Subscribed to events",
			log.String("subscription_id", sub.ID()),
			log.String("event_type", sub.EventType()))
		subs = append(subs, sub)
	}

	s.bus.AddObserver(s.metrics)
	return unsubscribe, nil
}

// apply executes a client command on the loop goroutine.
func (s *Server) apply(msg ClientMessage) error {
	switch msg.Type {
	case MessagePaddle:
		id, err := s.world.PaddleID(msg.Paddle)
		if err != nil {
			return err
		}
		if s.opponent != nil && s.opponent.Paddle() == id {
			return fmt.Errorf("%w: %s is driven by the server", ErrInvalidMessage, msg.Paddle)
		}
		v, ok := msg.velocity()
		if !ok {
			return fmt.Errorf("%w: velocity needs 3 components", ErrInvalidMessage)
		}
		return s.world.SetPaddleVelocity(id, v)

	case MessageReset:
		s.world.ResetGame()
		return nil

	case MessagePause:
		if msg.Paused == nil {
			return fmt.Errorf("%w: pause needs paused", ErrInvalidMessage)
		}
		s.world.SetPaused(*msg.Paused)
		return nil

	case MessageTimeScale:
		if msg.Scale == nil {
			return fmt.Errorf("%w: time_scale needs scale", ErrInvalidMessage)
		}
		return s.world.SetTimeScale(*msg.Scale)

	default:
		return fmt.Errorf("%w: unknown type %q", ErrInvalidMessage, msg.Type)
	}
}

// submit passes msg to the simulation loop and waits for its result.
func (s *Server) submit(ctx context.Context, msg ClientMessage) error {
	reply := make(chan error, 1)
	select {
	case s.commands <- command{msg: msg, reply: reply}:
	case <-s.done:
		return ErrServerNotRunning
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case err := <-reply:
		return err
	case <-s.done:
		return ErrServerNotRunning
	case <-ctx.Done():
		return ctx.Err()
	}
}

// forwardEvent broadcasts score and state events and keeps them for late
// clients.
func (s *Server) forwardEvent(e bus.Event) error {
	f, ok := s.frameOf(e)
	if !ok {
		return nil
	}
	s.hub.remember(f)
	s.hub.broadcast(f)
	return nil
}

func (s *Server) forwardCollision(e bus.Event) error {
	if f, ok := s.frameOf(e); ok {
		s.hub.broadcast(f)
	}
	return nil
}

func (s *Server) frameOf(e bus.Event) (Frame, bool) {
	ge, ok := e.(game.Event)
	if !ok {
		return Frame{}, false
	}
	return eventFrame(ge)
}

func (s *Server) logScore(e bus.Event) error {
	if ev, ok := e.(game.ScoreEvent); ok {
		s.logger.Info("Point scored",
			log.String("side", ev.Side.String()),
			log.Int("player1", ev.Score.Player1),
			log.Int("player2", ev.Score.Player2),
			log.Uint64("tick", ev.Step))
	}
	return nil
}

func (s *Server) recoverPanic(err *error) {
	r := recover()
	if r == nil {
		return
	}

	s.logger.Error("Simulation panicked", log.Any("panic", r))

	hub := sentry.CurrentHub().Clone()
	hub.ConfigureScope(func(scope *sentry.Scope) {
		scope.SetTag("component", "simulation")
		scope.SetTag("match_id", s.world.MatchID().String())
	})
	hub.Recover(r)
	hub.Flush(2 * time.Second)

	*err = fmt.Errorf("%w: %v", ErrSimulationPanic, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	m := s.bus.GetMetrics()
	_, _ = fmt.Fprintf(w, "ok clients=%d topics=%d published=%d errors=%d\n",
		s.hub.count(), len(s.bus.GetTopics()), m.Published, m.Errors)
}
