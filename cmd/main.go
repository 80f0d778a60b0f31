package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sharugesh2303/chef/internal/adapter/gateway"
	"github.com/sharugesh2303/chef/internal/adapter/logger"
	"github.com/sharugesh2303/chef/internal/adapter/memory"
	"github.com/sharugesh2303/chef/internal/adapter/postgres"
	"github.com/sharugesh2303/chef/internal/adapter/rabbitmq"
	"github.com/sharugesh2303/chef/internal/adapter/session"
	"github.com/sharugesh2303/chef/internal/app/dashboard"
	"github.com/sharugesh2303/chef/internal/app/login"
	"github.com/sharugesh2303/chef/internal/app/orders"
	"github.com/sharugesh2303/chef/internal/app/queue"
	"github.com/sharugesh2303/chef/internal/app/staff"
	"github.com/sharugesh2303/chef/internal/config"
	"github.com/sharugesh2303/chef/internal/domain"
	"github.com/sharugesh2303/chef/internal/interfaces"

	httpAdapter "github.com/sharugesh2303/chef/internal/adapter/http"
)

func main() {
	mode := flag.String("mode", "dashboard", "Run mode: dashboard or server")
	configPath := flag.String("config", "config.yaml", "Path to config file")
	port := flag.Int("port", 0, "HTTP port override (server mode)")
	debug := flag.Bool("debug", false, "Enable debug logging")
	demo := flag.Bool("demo", false, "Seed demo orders (server mode, in-memory storage)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}

	switch *mode {
	case "dashboard":
		runDashboard(cfg, *debug)
	case "server":
		runServer(cfg, *debug, *demo)
	default:
		log.Fatalf("Invalid mode: %s", *mode)
	}
}

func runDashboard(cfg *config.Config, debug bool) {
	// Log lines go to stderr so stdout stays clean for the UI.
	lgr := logger.NewWithWriter("chef-dashboard", os.Stderr, debug)

	dir, err := session.DefaultDir()
	if err != nil {
		log.Fatalf("Failed to resolve session directory: %v", err)
	}
	sessions := session.NewFileStore(dir)
	gw := gateway.NewClient(cfg.Dashboard.APIURL, sessions, lgr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	lgr.Info("dashboard_started", "Chef dashboard started", map[string]interface{}{
		"api_url":       cfg.Dashboard.APIURL,
		"poll_interval": cfg.Dashboard.PollInterval().String(),
	})

	stdin := bufio.NewReader(os.Stdin)

	for {
		if _, ok := sessions.Token(); !ok {
			flow := login.NewFlow(gw, sessions, lgr, stdin, os.Stdout)
			if err := flow.Run(ctx); err != nil {
				return
			}
		}

		// Each session gets a fresh synchronizer; an expired one is
		// terminal and never reused across re-logins.
		syncer := queue.NewService(gw, sessions, lgr, cfg.Dashboard.PollInterval(), nil)
		dash := dashboard.New(syncer, sessions, lgr, stdin, os.Stdout)

		err := dash.Run(ctx)
		if errors.Is(err, domain.ErrSessionExpired) {
			continue
		}
		if err != nil {
			lgr.Error("dashboard_failed", "Dashboard exited with error", nil, err)
			os.Exit(1)
		}
		return
	}
}

func runServer(cfg *config.Config, debug, demo bool) {
	lgr := logger.NewWithWriter("canteen-server", os.Stdout, debug)
	ctx := context.Background()

	var (
		orderRepo interfaces.OrderRepository
		staffRepo interfaces.StaffRepository
	)

	if cfg.Database.Enabled() {
		db, err := postgres.Connect(ctx, cfg.Database)
		if err != nil {
			log.Fatalf("Failed to connect to PostgreSQL: %v", err)
		}
		defer db.Close()

		lgr.Info("db_connected", "Connected to PostgreSQL database", map[string]interface{}{
			"host": cfg.Database.Host,
			"db":   cfg.Database.Database,
		})

		orderRepo = postgres.NewOrderRepository(db)
		staffRepo = postgres.NewStaffRepository(db)
	} else {
		lgr.Info("memory_storage", "No database configured, using in-memory storage", nil)

		memOrders := memory.NewOrderRepository()
		memStaff := memory.NewStaffRepository()
		if err := seedStaff(ctx, memStaff, cfg, lgr); err != nil {
			log.Fatalf("Failed to seed staff accounts: %v", err)
		}
		if demo {
			if err := seedDemoOrders(ctx, memOrders); err != nil {
				log.Fatalf("Failed to seed demo orders: %v", err)
			}
			lgr.Info("demo_seeded", "Demo orders created", nil)
		}
		orderRepo = memOrders
		staffRepo = memStaff
	}

	var publisher interfaces.MessagePublisher
	if cfg.RabbitMQ.Enabled() {
		mqConn, err := rabbitmq.Connect(cfg.RabbitMQ)
		if err != nil {
			log.Fatalf("Failed to connect to RabbitMQ: %v", err)
		}
		defer mqConn.Close()

		lgr.Info("rabbitmq_connected", "Connected to RabbitMQ", map[string]interface{}{
			"host": cfg.RabbitMQ.Host,
		})
		publisher = rabbitmq.NewPublisher(mqConn)
	}

	authService := staff.NewService(staffRepo, memory.NewTokenStore(), lgr)
	orderService := orders.NewService(orderRepo, publisher, lgr)
	handler := httpAdapter.NewRouter(authService, orderService, lgr, cfg.Server.BasePath)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	lgr.Info("service_started", fmt.Sprintf("Canteen server started on port %d", cfg.Server.Port), map[string]interface{}{
		"port":      cfg.Server.Port,
		"base_path": cfg.Server.BasePath,
	})

	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt, syscall.SIGTERM)
		<-sigint

		lgr.Info("shutdown_initiated", "Shutting down canteen server", nil)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			lgr.Error("shutdown_error", "Error during shutdown", nil, err)
		}
	}()

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		lgr.Error("server_error", "Server error", nil, err)
	}
}

func seedStaff(ctx context.Context, repo interfaces.StaffRepository, cfg *config.Config, lgr logger.Logger) error {
	if len(cfg.Staff) == 0 {
		member, err := domain.NewStaff("Head Chef", "chef@jjcanteen.local", "letmecook")
		if err != nil {
			return err
		}
		if err := repo.Create(ctx, member); err != nil {
			return err
		}
		lgr.Info("default_staff_created", "No staff configured, demo account created", map[string]interface{}{
			"email":    member.Email,
			"password": "letmecook",
		})
		return nil
	}

	for _, sc := range cfg.Staff {
		var member *domain.Staff
		if sc.PasswordHash != "" {
			member = &domain.Staff{
				Name:         sc.Name,
				Email:        sc.Email,
				PasswordHash: sc.PasswordHash,
				CreatedAt:    time.Now(),
			}
		} else {
			var err error
			member, err = domain.NewStaff(sc.Name, sc.Email, sc.Password)
			if err != nil {
				return fmt.Errorf("staff %q: %w", sc.Email, err)
			}
		}
		if err := repo.Create(ctx, member); err != nil {
			return err
		}
	}
	return nil
}

func seedDemoOrders(ctx context.Context, repo *memory.OrderRepository) error {
	demo := []struct {
		student string
		status  domain.Status
		age     time.Duration
		items   []domain.OrderItem
	}{
		{"Ravi Kumar", domain.StatusPaid, 12 * time.Minute, []domain.OrderItem{
			{Name: "Masala Dosa", Quantity: 2, Price: decimal.NewFromInt(60)},
			{Name: "Filter Coffee", Quantity: 1, Price: decimal.NewFromInt(25)},
		}},
		{"Priya Sharma", domain.StatusPaid, 5 * time.Minute, []domain.OrderItem{
			{Name: "Veg Fried Rice", Quantity: 1, Price: decimal.NewFromInt(80)},
		}},
		{"Arun M", domain.StatusPending, 2 * time.Minute, []domain.OrderItem{
			{Name: "Samosa", Quantity: 3, Price: decimal.NewFromInt(15)},
		}},
	}

	for _, d := range demo {
		bill, err := repo.GenerateBillNumber(ctx)
		if err != nil {
			return err
		}
		order := &domain.Order{
			BillNumber:  bill,
			StudentName: d.student,
			Status:      d.status,
			OrderDate:   time.Now().Add(-d.age),
			Items:       d.items,
		}
		order.CalculateTotal()
		if err := repo.Create(ctx, order); err != nil {
			return err
		}
	}
	return nil
}
