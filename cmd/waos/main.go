package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"

	"github.com/weareopensource/waos-go/internal/app"
	"github.com/weareopensource/waos-go/internal/infrastructure/config"
	"github.com/weareopensource/waos-go/internal/screens/page"
	"github.com/weareopensource/waos-go/internal/screens/signin"
	"github.com/weareopensource/waos-go/internal/screens/tasks"
)

func main() {
	// Parse flags
	pageFile := flag.String("page", "", "Render a local markdown file")
	pageURL := flag.String("url", "", "Fetch and render a page (name or absolute URL)")
	style := flag.String("style", "", "Page style: air or classic")
	noLinks := flag.Bool("no-links", false, "Strip links from rendered pages")
	email := flag.String("email", "", "Sign in with this email")
	password := flag.String("password", "", "Sign in with this password")
	listTasks := flag.Bool("tasks", false, "List tasks")
	apiURL := flag.String("api", "", "API base URL")
	prefsPath := flag.String("prefs", "", "Preferences database path")
	dev := flag.Bool("dev", false, "Development logging")
	timeout := flag.Duration("timeout", 30*time.Second, "Time to wait for a screen to settle")
	flag.Parse()

	cfg := config.LoadOrDefault()
	if *apiURL != "" {
		cfg.API.URL = *apiURL
	}
	if *prefsPath != "" {
		cfg.Preferences.Path = *prefsPath
	}
	if *style != "" {
		cfg.Pages.Style = *style
	}
	if *dev {
		cfg.Logging.Development = true
		cfg.Logging.Level = "debug"
	}

	p, err := app.New(cfg)
	if err != nil {
		log.Fatalf("Failed to start: %v", err)
	}

	// Dispose screens on shutdown signal
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, *timeout)
	defer cancel()

	err = run(ctx, p, options{
		pageFile: *pageFile,
		pageURL:  *pageURL,
		links:    !*noLinks,
		email:    *email,
		password: *password,
		tasks:    *listTasks,
	})
	if cerr := p.Close(); cerr != nil {
		log.Printf("Error during shutdown: %v", cerr)
	}
	if err != nil {
		log.Fatal(err)
	}
}

type options struct {
	pageFile string
	pageURL  string
	links    bool
	email    string
	password string
	tasks    bool
}

func run(ctx context.Context, p *app.Provider, opts options) error {
	switch {
	case opts.pageFile != "":
		data, err := os.ReadFile(opts.pageFile)
		if err != nil {
			return fmt.Errorf("failed to read page: %w", err)
		}
		html, err := p.Renderer.Render(string(data), p.PageOptions(opts.links))
		if err != nil {
			return err
		}
		fmt.Print(html)
		return nil

	case opts.pageURL != "":
		r := p.Page(opts.pageURL, opts.links)
		r.Dispatch(page.Get{})
		if err := r.Settle(ctx); err != nil {
			return err
		}
		state := r.CurrentState()
		if len(state.Errors) > 0 {
			return printState(state)
		}
		fmt.Print(state.HTML)
		return nil

	case opts.email != "":
		r := p.SignIn()
		r.Dispatch(signin.UpdateEmail{Email: opts.email})
		r.Dispatch(signin.ValidateEmail{})
		r.Dispatch(signin.UpdatePassword{Password: opts.password})
		r.Dispatch(signin.SignIn{})
		if err := r.Settle(ctx); err != nil {
			return err
		}
		state := r.CurrentState()
		state.User.Password = ""
		return printState(state)

	case opts.tasks:
		r := p.Tasks()
		r.Dispatch(tasks.Refresh{})
		if err := r.Settle(ctx); err != nil {
			return err
		}
		return printState(r.CurrentState())

	default:
		flag.Usage()
		return nil
	}
}

func printState(state any) error {
	out, err := sonic.ConfigStd.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode state: %w", err)
	}
	fmt.Println(string(out))
	return nil
}
