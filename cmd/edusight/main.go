package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/fatih/color"
	"go.uber.org/zap"

	"github.com/noah-isme/edusight/internal/api"
	"github.com/noah-isme/edusight/internal/dto"
	"github.com/noah-isme/edusight/internal/session"
	"github.com/noah-isme/edusight/pkg/config"
	"github.com/noah-isme/edusight/pkg/logger"
	"github.com/noah-isme/edusight/pkg/metrics"
)

type app struct {
	cfg     *config.Config
	logger  *zap.Logger
	client  *api.Client
	session *session.Store
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	a, err := newApp()
	if err != nil {
		log.Fatalf("failed to start: %v", err)
	}
	defer a.logger.Sync() //nolint:errcheck

	cmd := os.Args[1]
	args := os.Args[2:]

	var runErr error
	switch cmd {
	case "login":
		runErr = a.cmdLogin(args)
	case "login-code":
		runErr = a.cmdLoginCode(args)
	case "logout":
		runErr = a.cmdLogout()
	case "whoami":
		runErr = a.cmdWhoami()
	case "codes":
		runErr = a.cmdCodes(args)
	case "syllabus":
		runErr = a.cmdSyllabus(args)
	case "sheets":
		runErr = a.cmdSheets(args)
	case "dashboard":
		runErr = a.cmdDashboard()
	case "performance":
		runErr = a.cmdPerformance()
	case "export":
		runErr = a.cmdExport(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		printUsage()
		os.Exit(1)
	}

	if runErr != nil {
		color.Red("Error: %v", runErr)
		os.Exit(1)
	}
}

func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	client := api.New(api.Config{
		BaseURL: cfg.API.BaseURL,
		Timeout: cfg.API.Timeout,
		Logger:  logr,
		Metrics: metrics.NewRecorder(),
	})

	store := session.Open(session.Options{
		Path:   cfg.Session.Path,
		Secret: cfg.Session.Secret,
		Client: client,
		Logger: logr,
	})

	return &app{cfg: cfg, logger: logr, client: client, session: store}, nil
}

// requireRole gates commands on the logged-in role.
func (a *app) requireRole(role dto.Role) (*dto.User, error) {
	user := a.session.Current()
	if user == nil {
		return nil, errors.New("not logged in; run `edusight login` first")
	}
	if user.Role != role {
		return nil, fmt.Errorf("this command requires a %s account", role)
	}
	return user, nil
}

func printUsage() {
	cyan := color.New(color.FgCyan)
	yellow := color.New(color.FgYellow)

	cyan.Println("edusight - topic understanding analytics client")
	fmt.Println()
	fmt.Println("Usage: edusight <command> [args]")
	fmt.Println()
	yellow.Println("Session:")
	fmt.Println("  login <email> <password>       Sign in with credentials")
	fmt.Println("  login-code <code> <studentID>  Sign in with a teacher's access code")
	fmt.Println("  logout                         Clear the local session")
	fmt.Println("  whoami                         Show the current session")
	fmt.Println()
	yellow.Println("Teacher:")
	fmt.Println("  codes generate                 Issue a new access code (1h validity)")
	fmt.Println("  codes list                     List unexpired access codes")
	fmt.Println("  syllabus upload <file.pdf>     Upload a syllabus for topic extraction")
	fmt.Println("  syllabus show                  Show the extracted topics")
	fmt.Println("  dashboard                      Class overview and topic comparison")
	fmt.Println()
	yellow.Println("Student:")
	fmt.Println("  sheets upload <code> <file.pdf>  Upload an answer sheet")
	fmt.Println("  sheets list                      List uploaded answer sheets")
	fmt.Println("  performance                      Show topic understanding scores")
	fmt.Println("  export performance [csv|pdf]     Save a performance report")
	fmt.Println()
	yellow.Println("Environment:")
	fmt.Println("  API_BASE_URL    Backend address (default http://localhost:8000)")
	fmt.Println("  SESSION_FILE    Session location (default ~/.edusight/session)")
}
