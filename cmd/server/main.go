package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"dinercraft/internal/persistence/indexdb"
	"dinercraft/internal/persistence/shiftlog"
	"dinercraft/internal/sim/dining"
	"dinercraft/internal/sim/menu"
	"dinercraft/internal/sim/tuning"
	"dinercraft/internal/transport/ws"
)

func main() {
	var (
		addr         = flag.String("addr", ":8080", "http listen address")
		restaurantID = flag.String("restaurant", "diner_1", "restaurant id")
		seed         = flag.Int64("seed", 1337, "simulation seed")
		configDir    = flag.String("configs", "./configs", "config directory")
		dataDir      = flag.String("data", "./data", "runtime data directory")
		tuningPath   = flag.String("tuning", "", "path to tuning.yaml (default: <configs>/tuning.yaml)")
		menuPath     = flag.String("menu", "", "path to menu.yaml (default: <configs>/menu.yaml)")
		disableDB    = flag.Bool("disable_db", false, "disable the sqlite tick/shift index")
		noArrivals   = flag.Bool("no_arrivals", false, "disable the built-in walk-in spawner")
	)
	flag.Parse()

	logger := log.New(os.Stdout, "[server] ", log.LstdFlags|log.Lmicroseconds)

	tp := strings.TrimSpace(*tuningPath)
	if tp == "" {
		tp = filepath.Join(*configDir, "tuning.yaml")
	}
	tune, err := tuning.Load(tp)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Printf("tuning not found (%s); using defaults", tp)
			tune = tuning.Defaults()
		} else {
			logger.Fatalf("load tuning: %v", err)
		}
	}

	mp := strings.TrimSpace(*menuPath)
	if mp == "" {
		mp = filepath.Join(*configDir, "menu.yaml")
	}
	var m *menu.Menu
	if _, err := os.Stat(mp); err == nil {
		m, err = menu.Load(mp)
		if err != nil {
			logger.Fatalf("load menu: %v", err)
		}
	} else {
		logger.Printf("menu not found (%s); using built-in menu", mp)
		m = menu.Default()
	}

	restaurantDir := filepath.Join(*dataDir, "restaurants", *restaurantID)
	_ = os.MkdirAll(restaurantDir, 0o755)

	r := dining.New(dining.ConfigFromTuning(*restaurantID, *seed, tune), m)

	var idx *indexdb.SQLiteIndex
	if !*disableDB {
		idx, err = indexdb.OpenSQLite(filepath.Join(restaurantDir, "index.db"))
		if err != nil {
			logger.Fatalf("open index db: %v", err)
		}
		defer idx.Close()
	}

	tickLog := shiftlog.NewTickLogger(restaurantDir)
	shiftLog := shiftlog.NewShiftLogger(restaurantDir)
	defer tickLog.Close()
	defer shiftLog.Close()
	r.SetTickLogger(multiTickLogger{a: tickLog, b: idx})
	r.SetShiftSink(multiShiftSink{a: shiftLog, b: idx})

	ctx, cancel := signalContext()
	defer cancel()

	go func() {
		if err := r.Run(ctx); err != nil && err != context.Canceled {
			logger.Printf("restaurant stopped: %v", err)
		}
	}()

	if !*noArrivals {
		go runSpawner(ctx, r, tune, *seed, logger)
	}

	wsServer := ws.NewServer(r, logger)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(rw http.ResponseWriter, req *http.Request) {
		rw.WriteHeader(200)
		_, _ = rw.Write([]byte("ok"))
	})
	mux.HandleFunc("/v1/observe", wsServer.Handler())
	mux.HandleFunc("/v1/metrics", ws.MetricsHandler(r))
	mux.HandleFunc("/metrics", func(rw http.ResponseWriter, req *http.Request) {
		rw.Header().Set("Content-Type", "text/plain; version=0.0.4")

		mtr := r.Metrics()

		// Minimal Prometheus exposition format.
		fmt.Fprintf(rw, "# HELP dinercraft_tick Current simulation tick.\n")
		fmt.Fprintf(rw, "# TYPE dinercraft_tick gauge\n")
		fmt.Fprintf(rw, "dinercraft_tick{restaurant=%q} %d\n", *restaurantID, mtr.Tick)

		fmt.Fprintf(rw, "# HELP dinercraft_customers Customers currently on the floor.\n")
		fmt.Fprintf(rw, "# TYPE dinercraft_customers gauge\n")
		fmt.Fprintf(rw, "dinercraft_customers{restaurant=%q} %d\n", *restaurantID, mtr.Customers)

		fmt.Fprintf(rw, "# HELP dinercraft_food_items Food items alive in the kitchen and on the floor.\n")
		fmt.Fprintf(rw, "# TYPE dinercraft_food_items gauge\n")
		fmt.Fprintf(rw, "dinercraft_food_items{restaurant=%q} %d\n", *restaurantID, mtr.FoodItems)

		fmt.Fprintf(rw, "# HELP dinercraft_observers Connected observer sessions.\n")
		fmt.Fprintf(rw, "# TYPE dinercraft_observers gauge\n")
		fmt.Fprintf(rw, "dinercraft_observers{restaurant=%q} %d\n", *restaurantID, mtr.Observers)

		fmt.Fprintf(rw, "# HELP dinercraft_queue_depth Channel backlog depth.\n")
		fmt.Fprintf(rw, "# TYPE dinercraft_queue_depth gauge\n")
		fmt.Fprintf(rw, "dinercraft_queue_depth{restaurant=%q,queue=%q} %d\n", *restaurantID, "arrive", mtr.Queues.Arrive)

		fmt.Fprintf(rw, "# HELP dinercraft_step_ms Last tick step duration in milliseconds.\n")
		fmt.Fprintf(rw, "# TYPE dinercraft_step_ms gauge\n")
		fmt.Fprintf(rw, "dinercraft_step_ms{restaurant=%q} %.3f\n", *restaurantID, mtr.StepMS)

		fmt.Fprintf(rw, "# HELP dinercraft_shift_stat Counters for the shift in progress.\n")
		fmt.Fprintf(rw, "# TYPE dinercraft_shift_stat gauge\n")
		s := mtr.ShiftSoFar
		for _, kv := range []struct {
			name string
			v    int
		}{
			{"arrived", s.Arrived},
			{"served", s.Served},
			{"lost", s.Lost},
			{"turned_away", s.TurnedAway},
			{"orders_taken", s.OrdersTaken},
			{"orders_delivered", s.OrdersDelivered},
			{"wrong_deliveries", s.WrongDeliveries},
			{"food_burnt", s.FoodBurnt},
			{"food_discarded", s.FoodDiscarded},
		} {
			fmt.Fprintf(rw, "dinercraft_shift_stat{restaurant=%q,stat=%q} %d\n", *restaurantID, kv.name, kv.v)
		}
	})

	// Local-only admin endpoints (do not affect simulation determinism).
	mux.HandleFunc("/admin/v1/state", func(rw http.ResponseWriter, req *http.Request) {
		if !isLoopbackRemote(req.RemoteAddr) {
			http.Error(rw, "forbidden", http.StatusForbidden)
			return
		}
		rw.Header().Set("Content-Type", "application/json")
		resp := struct {
			RestaurantID string                   `json:"restaurant_id"`
			Tick         uint64                   `json:"tick"`
			Metrics      dining.RestaurantMetrics `json:"metrics"`
		}{
			RestaurantID: *restaurantID,
			Tick:         r.CurrentTick(),
			Metrics:      r.Metrics(),
		}
		_ = json.NewEncoder(rw).Encode(resp)
	})
	var lister ws.ShiftLister
	if idx != nil {
		lister = idx
	}
	shiftsHandler := ws.ShiftsHandler(r, lister)
	mux.HandleFunc("/admin/v1/shifts", func(rw http.ResponseWriter, req *http.Request) {
		if !isLoopbackRemote(req.RemoteAddr) {
			http.Error(rw, "forbidden", http.StatusForbidden)
			return
		}
		shiftsHandler(rw, req)
	})

	srv := &http.Server{Addr: *addr, Handler: mux}
	go func() {
		<-ctx.Done()
		shutCtx, shutCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutCancel()
		_ = srv.Shutdown(shutCtx)
	}()

	logger.Printf("listening on %s (restaurant=%s seed=%d tick=%dHz)", *addr, *restaurantID, *seed, r.TickRateHz())
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("http: %v", err)
	}
}

// runSpawner feeds walk-ins at the tuned average rate with jittered gaps so
// shifts do not all look alike under the same wall clock.
func runSpawner(ctx context.Context, r *dining.Restaurant, tune tuning.Tuning, seed int64, logger *log.Logger) {
	every := time.Duration(tune.ArrivalEverySeconds) * time.Second
	if every <= 0 {
		every = 20 * time.Second
	}
	rng := rand.New(rand.NewSource(seed ^ 0x5eed))
	n := 0
	for {
		jitter := time.Duration(rng.Int63n(int64(every)))
		select {
		case <-ctx.Done():
			return
		case <-time.After(every/2 + jitter):
		}
		n++
		resp := make(chan dining.ArrivalResponse, 1)
		r.Arrive(dining.ArrivalRequest{Name: fmt.Sprintf("walkin-%d", n), Resp: resp})
		select {
		case <-ctx.Done():
			return
		case a := <-resp:
			if a.TurnedAway {
				logger.Printf("walk-in %d turned away (full house)", n)
			}
		}
	}
}

type multiTickLogger struct {
	a *shiftlog.TickLogger
	b *indexdb.SQLiteIndex
}

func (m multiTickLogger) WriteTick(e dining.TickLogEntry) error {
	var err error
	if m.a != nil {
		err = m.a.WriteTick(e)
	}
	if m.b != nil {
		_ = m.b.WriteTick(e)
	}
	return err
}

type multiShiftSink struct {
	a *shiftlog.ShiftLogger
	b *indexdb.SQLiteIndex
}

func (m multiShiftSink) WriteShift(s dining.ShiftSummary) error {
	var err error
	if m.a != nil {
		err = m.a.WriteShift(s)
	}
	if m.b != nil {
		_ = m.b.WriteShift(s)
	}
	return err
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func isLoopbackRemote(remoteAddr string) bool {
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		return false
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}
