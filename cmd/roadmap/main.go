package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/arturoeanton/roadmapai/internal/adapter/ai"
	"github.com/arturoeanton/roadmapai/internal/adapter/auth"
	"github.com/arturoeanton/roadmapai/internal/adapter/catalog"
	"github.com/arturoeanton/roadmapai/internal/adapter/store"
	"github.com/arturoeanton/roadmapai/internal/logger"
	"github.com/arturoeanton/roadmapai/internal/port"
	"github.com/arturoeanton/roadmapai/internal/service"
	"github.com/arturoeanton/roadmapai/pkg/config"
)

// localClient is the profile every slot of this CLI is stored under.
const localClient = "local"

// cliApp is the per-invocation wiring shared by every command.
type cliApp struct {
	storeDir string
	verbose  bool

	log       *logger.Logger
	slots     port.SlotStore
	catalog   *catalog.Catalog
	session   *service.Session
	progress  *service.ProgressService
	roadmap   *service.RoadmapService
	assistant *service.AssistantService
}

func newRootCmd(app *cliApp) *cobra.Command {
	root := &cobra.Command{
		Use:   "roadmap",
		Short: "RoadmapAI - track your web development learning roadmap",
		Long: `RoadmapAI tracks which roadmap nodes you have completed, awards badges
at milestones and answers questions through the learning assistant.

Progress and the sign-in credential are kept in a local directory
(STORE_PATH or --store-dir).`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.open(cmd.Context())
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return app.close()
		},
	}

	root.SilenceUsage = true
	root.PersistentFlags().StringVar(&app.storeDir, "store-dir", "", "directory for local state (default STORE_PATH)")
	root.PersistentFlags().BoolVarP(&app.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		newWhoamiCmd(app),
		newLoginCmd(app),
		newSignupCmd(app),
		newLogoutCmd(app),
		newProgressCmd(app),
		newCompleteCmd(app),
		newIncompleteCmd(app),
		newResetCmd(app),
		newNodesCmd(app),
		newAskCmd(app),
	)
	return root
}

// open wires the services and runs the session rehydration gate, so every
// command sees the final authentication state.
func (a *cliApp) open(ctx context.Context) error {
	cfg := config.Load()
	if a.storeDir == "" {
		a.storeDir = cfg.StorePath
	}

	if a.log == nil {
		mode := "prod"
		if a.verbose {
			mode = "dev"
		}
		log, err := logger.New(mode, cfg.LogRedaction)
		if err != nil {
			return err
		}
		a.log = log
	}

	slots, err := store.NewFileStore(a.storeDir)
	if err != nil {
		return fmt.Errorf("open local store: %w", err)
	}
	a.slots = slots

	issuer, err := auth.NewJWTIssuer(auth.JWTConfig{
		Secret:    cfg.JWTSecret,
		Issuer:    cfg.JWTIssuer,
		ExpiresIn: cfg.TokenTTL(),
	})
	if err != nil {
		return err
	}

	generator, err := ai.FromConfig(ctx, cfg)
	if err != nil {
		return err
	}

	a.catalog = catalog.WebDevelopment()
	authService := service.NewAuthService(store.NewIdentityList(store.SeedUsers()...), issuer, a.log)
	a.session = service.NewSession(authService, service.NewCredentialVault(slots, localClient, a.log), a.log)
	a.progress = service.NewProgressService(slots, a.catalog, a.log)
	a.roadmap = service.NewRoadmapService(a.catalog, a.progress)
	a.assistant = service.NewAssistantService(generator, a.catalog, a.log).WithTimeout(cfg.AITimeout)

	a.session.Start(ctx)
	return nil
}

func (a *cliApp) close() error {
	if a.log != nil {
		a.log.Sync()
	}
	if a.slots != nil {
		return a.slots.Close()
	}
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(&cliApp{}).ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
