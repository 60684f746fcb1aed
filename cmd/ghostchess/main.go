package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/kapu/ghostchess/internal/archive"
	"github.com/kapu/ghostchess/internal/board"
	appcfg "github.com/kapu/ghostchess/internal/config"
	"github.com/kapu/ghostchess/internal/domain"
	"github.com/kapu/ghostchess/internal/engine"
	"github.com/kapu/ghostchess/internal/feed"
	"github.com/kapu/ghostchess/internal/game"
	"github.com/kapu/ghostchess/internal/ghost"
	"github.com/kapu/ghostchess/internal/msgcat"
	"github.com/kapu/ghostchess/internal/notify"
	"github.com/kapu/ghostchess/internal/obslog"
	"github.com/kapu/ghostchess/internal/session"
	"github.com/kapu/ghostchess/internal/store"
	"github.com/kapu/ghostchess/pkg/coredto"
)

const version = "0.1.0"

var (
	errText    = color.New(color.FgRed).SprintFunc()
	infoText   = color.New(color.FgCyan).SprintFunc()
	eventText  = color.New(color.FgYellow).SprintFunc()
	promptText = color.New(color.FgGreen).SprintFunc()
)

func main() {
	cfg, err := appcfg.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}
	if err := obslog.InitFromEnv(); err != nil {
		log.Fatalf("logger init error: %v", err)
	}
	logger := obslog.L()
	defer func() { _ = logger.Sync() }()

	catalog, err := msgcat.New(cfg.MessageDir)
	if err != nil {
		log.Fatalf("message catalog error: %v", err)
	}

	preset, err := engine.GetPreset(cfg.EnginePreset)
	if err != nil {
		log.Fatalf("engine preset error: %v", err)
	}
	depth := preset.Depth
	if cfg.SearchDepth > 0 {
		depth = cfg.SearchDepth
	}

	eng := engine.NewMinimax(logger)
	if err := eng.Initialize(); err != nil {
		log.Fatalf("engine init error: %v", err)
	}
	defer func() { _ = eng.Shutdown() }()

	hub := feed.NewHub(logger)
	defer hub.Close()

	var webhook *notify.Webhook
	if cfg.WebhookURL != "" {
		webhook = notify.NewWebhook(cfg.WebhookURL, logger)
		webhook.Start()
		defer webhook.Close()
	}

	sessionStore := buildStore(cfg, logger)
	repo := buildArchive(cfg, logger)

	sink := func(ev coredto.Event) {
		hub.Publish(ev)
		if webhook != nil {
			webhook.Publish(ev)
		}
		printEvent(catalog, ev)
	}

	sessCfg := session.Config{
		Mode:        session.Mode(cfg.GameMode),
		PlayerColor: parseColor(cfg.PlayerColor),
		Depth:       depth,
		Ghost: ghost.Config{
			SearchDepth: cfg.GhostSearchDepth,
			ThinkDepth:  cfg.GhostThinkDepth,
			LineLength:  cfg.GhostLineLength,
			StepDelay:   800 * time.Millisecond,
		},
	}
	sess, err := session.New(sessCfg, eng, sink, logger)
	if err != nil {
		log.Fatalf("session error: %v", err)
	}

	feedSrv := feed.NewServer(cfg.FeedAddr, hub, sess.State, logger)
	go func() {
		if err := feedSrv.ListenAndServe(); err != nil {
			logger.Error("feed server stopped", zap.Error(err))
		}
	}()
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = feedSrv.Shutdown(ctx)
	}()

	startedAt := time.Now().UTC()
	fmt.Println(infoText(render(catalog, "cli.welcome", map[string]string{"Version": version})))
	fmt.Println(infoText("session " + sess.ID()))

	repl(cfg, sess, sessionStore, repo, catalog, startedAt, logger)
}

func repl(cfg *appcfg.AppConfig, sess *session.Session, sessionStore store.SessionStore, repo archive.Repository, catalog *msgcat.Catalog, startedAt time.Time, logger *zap.Logger) {
	ctx := context.Background()
	scanner := bufio.NewScanner(os.Stdin)
	archived := false

	for {
		persist(ctx, sessionStore, sess, logger)
		if sess.Status() != game.InProgress {
			fmt.Println(eventText(render(catalog, "cli.game_over", map[string]string{"Status": sess.Status().String()})))
			if !archived {
				archiveGame(ctx, repo, sess, startedAt, logger)
				archived = true
			}
		} else if sess.IsPlayerTurn() {
			fmt.Println(promptText(render(catalog, "cli.your_turn", map[string]string{"Turn": sess.State().Turn})))
		}

		fmt.Print(promptText("> "))
		if !scanner.Scan() {
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		parts := strings.Fields(line)
		cmd := strings.ToLower(parts[0])
		args := parts[1:]

		switch cmd {
		case "quit", "exit":
			return
		case "help":
			printHelp()
		case "fen":
			fmt.Println(sess.FEN())
		case "moves":
			fmt.Println(strings.Join(sess.State().MovesUCI, " "))
		case "history":
			printHistory(ctx, repo, cfg.HistoryLimit)
		case "undo":
			if _, err := sess.Undo(); err != nil {
				fmt.Println(errText(err.Error()))
				continue
			}
			// In engine games take back the engine reply as well so the
			// player is back on move.
			if sess.Mode() == session.HumanVsEngine && !sess.IsPlayerTurn() {
				_, _ = sess.Undo()
			}
			archived = false
		case "preview":
			showThinking := len(args) > 0 && strings.EqualFold(args[0], "think")
			if err := sess.RequestGhostPreview(ctx, showThinking); err != nil {
				fmt.Println(errText(err.Error()))
				continue
			}
			fmt.Println(infoText(render(catalog, "cli.preview_hint", nil)))
			printGhost(sess)
		case "step":
			runGhostOp(sess.GhostStepForward)
			printGhost(sess)
		case "back":
			runGhostOp(sess.GhostStepBack)
			printGhost(sess)
		case "reset":
			runGhostOp(sess.GhostReset)
			printGhost(sess)
		case "pause":
			sess.GhostPause()
		case "resume":
			sess.GhostResume()
		case "mode":
			if len(args) > 0 && strings.EqualFold(args[0], "step") {
				sess.SetGhostMode(ghost.StepThrough)
			} else {
				sess.SetGhostMode(ghost.AutoPlay)
			}
		case "accept":
			accepted := sess.AcceptGhost()
			for _, m := range accepted {
				fmt.Println(infoText("considered: " + m.String()))
			}
		case "dismiss":
			sess.DismissGhost()
		case "engine":
			engineMove(ctx, sess, catalog)
		default:
			playMove(ctx, sess, catalog, cmd)
		}
	}
}

func playMove(ctx context.Context, sess *session.Session, catalog *msgcat.Catalog, raw string) {
	m, err := board.ParseMove(raw)
	if err != nil {
		fmt.Println(errText(render(catalog, "cli.unknown_command", map[string]string{"Command": raw})))
		return
	}
	if err := sess.MakePlayerMove(m); err != nil {
		fmt.Println(errText(err.Error()))
		return
	}
	if sess.Mode() == session.HumanVsEngine && sess.Status() == game.InProgress {
		engineMove(ctx, sess, catalog)
	}
}

func engineMove(ctx context.Context, sess *session.Session, catalog *msgcat.Catalog) {
	fmt.Println(infoText(render(catalog, "cli.engine_thinking", nil)))
	if _, err := sess.MakeEngineMove(ctx); err != nil {
		if !errors.Is(err, game.ErrGameOver) {
			fmt.Println(errText(err.Error()))
		}
	}
}

func runGhostOp(op func() error) {
	if err := op(); err != nil {
		fmt.Println(errText(err.Error()))
	}
}

func printGhost(sess *session.Session) {
	g := sess.Ghost()
	if g.Status == "idle" {
		return
	}
	fmt.Printf("%s step %d/%d  %s\n", infoText("["+g.Status+"]"), g.CurrentStep+1, len(g.Line), g.FEN)
	if g.Analysis != nil && g.Analysis.Commentary != "" {
		fmt.Println(infoText(g.Analysis.Commentary))
	}
	if g.Thought != nil {
		fmt.Println(infoText(g.Thought.Description))
		for _, threat := range g.Thought.Threats {
			fmt.Println(eventText("threat: " + threat))
		}
		for _, note := range g.Thought.StrategicNotes {
			fmt.Println(infoText("note: " + note))
		}
	}
}

func printEvent(catalog *msgcat.Catalog, ev coredto.Event) {
	data := map[string]string{
		"Mover":    ev.Mover,
		"Move":     ev.Move,
		"Captured": ev.CapturedPiece,
		"Promoted": ev.PromotedTo,
	}
	out, err := catalog.Render("event."+string(ev.Type), data)
	if err != nil {
		return
	}
	fmt.Println(eventText(out))
}

func printHistory(ctx context.Context, repo archive.Repository, limit int) {
	games, err := repo.GetRecentGames(ctx, limit)
	if err != nil {
		fmt.Println(errText(err.Error()))
		return
	}
	if len(games) == 0 {
		fmt.Println(infoText("no archived games"))
		return
	}
	for _, g := range games {
		fmt.Printf("%s %s by %s, %d moves, %s\n",
			g.EndedAt.Format("2006-01-02 15:04"), g.Result, g.ResultMethod, len(g.MovesUCI), g.SessionID)
	}
}

func printHelp() {
	fmt.Println(strings.Join([]string{
		"commands:",
		"  <move>          play a move in long algebraic form, e.g. e2e4 or a7a8q",
		"  engine          ask the engine to move (engine games)",
		"  undo            take back the last move",
		"  preview [think] arm a ghost preview of the predicted continuation",
		"  step / back     walk the preview forward and backward",
		"  reset           rewind the preview to its origin",
		"  pause / resume  control auto-play",
		"  mode auto|step  switch the preview stepping mode",
		"  accept          finish the preview, keeping the considered moves on screen",
		"  dismiss         discard the preview",
		"  fen / moves     print the position and move list",
		"  history         list archived games",
		"  quit            exit",
	}, "\n"))
}

func persist(ctx context.Context, sessionStore store.SessionStore, sess *session.Session, logger *zap.Logger) {
	if err := sessionStore.Save(ctx, sess.State()); err != nil {
		logger.Warn("persist session state", zap.Error(err))
	}
}

func archiveGame(ctx context.Context, repo archive.Repository, sess *session.Session, startedAt time.Time, logger *zap.Logger) {
	st := sess.State()
	endedAt := time.Now().UTC()
	record := &domain.GameRecord{
		SessionID:    st.SessionID,
		Mode:         st.Mode,
		PlayerSide:   st.PlayerSide,
		Depth:        st.Depth,
		Result:       st.Status,
		ResultMethod: resultMethod(st.FEN),
		MovesUCI:     st.MovesUCI,
		FinalFEN:     st.FEN,
		StartedAt:    startedAt,
		EndedAt:      endedAt,
		Duration:     endedAt.Sub(startedAt),
	}
	_, err := repo.InsertGame(ctx, record)
	if err != nil && !errors.Is(err, archive.ErrDuplicateGame) {
		logger.Warn("archive game", zap.Error(err))
	}
}

func resultMethod(fen string) string {
	b, err := board.FromFEN(fen)
	if err != nil {
		return "unknown"
	}
	switch {
	case board.IsCheckmate(b):
		return "checkmate"
	case board.IsStalemate(b):
		return "stalemate"
	case board.IsInsufficientMaterial(b):
		return "insufficient_material"
	case b.HalfMoveClock() >= 100:
		return "fifty_move"
	default:
		return "unknown"
	}
}

func parseColor(s string) board.Color {
	if strings.EqualFold(s, "black") {
		return board.Black
	}
	return board.White
}

func render(catalog *msgcat.Catalog, key string, data map[string]string) string {
	out, err := catalog.Render(key, data)
	if err != nil {
		return key
	}
	return out
}

func buildStore(cfg *appcfg.AppConfig, logger *zap.Logger) store.SessionStore {
	if cfg.RedisURL == "" {
		return store.NewMemoryStore()
	}
	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		logger.Warn("invalid REDIS_URL, using memory store", zap.Error(err))
		return store.NewMemoryStore()
	}
	return store.NewRedisStore(redis.NewClient(opts), time.Duration(cfg.SessionTTLSec)*time.Second)
}

func buildArchive(cfg *appcfg.AppConfig, logger *zap.Logger) archive.Repository {
	if cfg.DatabaseURL == "" {
		return archive.NewMemoryRepository()
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	db, err := archive.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Warn("database unavailable, using memory archive", zap.Error(err))
		return archive.NewMemoryRepository()
	}
	return archive.NewRepository(db)
}
