// cmd/blog/main.go
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/itikhon0v/itikhon0v.github.io/internal/builder"
	"github.com/itikhon0v/itikhon0v.github.io/internal/config"
	"github.com/itikhon0v/itikhon0v.github.io/internal/scaffold"
	"github.com/itikhon0v/itikhon0v.github.io/internal/server"
)

type appConfig struct {
	configPath   string
	debug        bool
	port         int
	sanitize     bool
	rewriteLinks bool
}

func main() {
	start := time.Now()

	appCfg := appConfig{}
	flag.StringVar(&appCfg.configPath, "config", config.DefaultPath, "Path to the YAML config file.")
	flag.BoolVar(&appCfg.debug, "debug", false, "Log every file written.")
	flag.IntVar(&appCfg.port, "port", 1313, "Port for the local development server.")
	flag.BoolVar(&appCfg.sanitize, "sanitize", false, "Sanitize rendered post HTML with a UGC policy.")
	flag.BoolVar(&appCfg.rewriteLinks, "rewrite-links", false, "Rewrite relative links to .md files into .html links.")
	flag.Usage = printHelp
	flag.Parse()

	if err := run(appCfg, start); err != nil {
		fmt.Fprintf(os.Stderr, "❌ Operation failed: %v\n", err)
		os.Exit(1)
	}
}

func run(appCfg appConfig, start time.Time) error {
	args := flag.Args()
	command := "build"
	if len(args) > 0 {
		command = args[0]
	}

	switch command {
	case "build":
		cfg, err := config.Load(appCfg.configPath)
		if err != nil {
			return err
		}
		return runBuild(cfg, appCfg, start)

	case "check":
		cfg, err := config.Load(appCfg.configPath)
		if err != nil {
			return err
		}
		return runCheck(cfg, appCfg)

	case "serve":
		cfg, err := config.Load(appCfg.configPath)
		if err != nil {
			return err
		}
		return server.Run(server.Options{
			Port:  appCfg.port,
			Root:  filepath.Dir(cfg.Paths.IndexOutput),
			Watch: []string{cfg.Paths.InputDir, cfg.Paths.PostTemplate, cfg.Paths.IndexTemplate, cfg.Path()},
			Rebuild: func() error {
				// Pick up config edits; the served root stays as it was at startup.
				fresh, err := config.Load(appCfg.configPath)
				if err != nil {
					return err
				}
				return runBuild(fresh, appCfg, time.Now())
			},
		})

	case "new":
		if len(args) < 3 {
			flag.Usage()
			return nil
		}
		switch args[1] {
		case "site":
			return scaffold.CreateNewSite(args[2], time.Now())
		case "post":
			cfg, err := config.Load(appCfg.configPath)
			if err != nil {
				return err
			}
			_, err = scaffold.CreateNewPost(cfg, strings.Join(args[2:], " "), time.Now())
			return err
		}
		flag.Usage()

	default:
		flag.Usage()
	}
	return nil
}

func runBuild(cfg *config.Config, appCfg appConfig, start time.Time) error {
	fmt.Println("--- Building blog ---")
	res, err := newBuilder(cfg, appCfg).Build(start)
	if err != nil {
		return fmt.Errorf("build failed: %w", err)
	}
	fmt.Printf("✅ Success! Generated %d posts in %s.\n", res.Posts, time.Since(start).Round(time.Millisecond))
	return nil
}

func runCheck(cfg *config.Config, appCfg appConfig) error {
	report, err := newBuilder(cfg, appCfg).Check()
	if err != nil {
		return fmt.Errorf("check failed: %w", err)
	}
	fmt.Printf("📄 %d posts parse cleanly.\n", len(report.Posts))
	for _, name := range report.UnfilledPost {
		fmt.Printf("⚠️  %s: {{ %s }} is never filled\n", cfg.Paths.PostTemplate, name)
	}
	for _, name := range report.UnfilledIndex {
		fmt.Printf("⚠️  %s: {{ %s }} is never filled\n", cfg.Paths.IndexTemplate, name)
	}
	return nil
}

func newBuilder(cfg *config.Config, appCfg appConfig) *builder.Builder {
	opts := builder.BuildOptions{
		Sanitize:     appCfg.sanitize,
		RewriteLinks: appCfg.rewriteLinks,
	}
	if appCfg.debug {
		opts.Logger = log.New(os.Stdout, "", 0)
	}
	return builder.New(cfg, opts)
}

func printHelp() {
	fmt.Println("blog - build a static blog from Markdown posts")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  blog [flags] [command] [arguments]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  build              Render posts, index and RSS feed (default)")
	fmt.Println("  check              Parse posts and templates without writing")
	fmt.Println("  serve              Run a local dev server with auto-rebuild")
	fmt.Println("  new site <dir>     Create a new site scaffold")
	fmt.Println("  new post <title>   Create a new post in the input directory")
	fmt.Println()
	fmt.Println("Flags:")
	flag.PrintDefaults()
}
