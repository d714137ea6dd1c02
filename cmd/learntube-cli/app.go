package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"learntube/internal/adapters/demostream"
	"learntube/internal/adapters/hls"
	"learntube/internal/adapters/youtube"
	"learntube/internal/adapters/ytdlp"
	"learntube/internal/config"
	"learntube/internal/core/domain"
	"learntube/internal/core/ports"
	"learntube/internal/logger"
	"learntube/internal/service"
	"learntube/internal/ui"
)

var (
	errFailed    = errors.New("request failed")
	errMissingID = errors.New("-id is required")
)

type app struct {
	cfg     *config.Config
	logger  zerolog.Logger
	catalog *youtube.Client
	out     io.Writer
	json    bool
}

func run(ctx context.Context, args []string, out io.Writer) error {
	global := flag.NewFlagSet("learntube-cli", flag.ContinueOnError)
	global.Usage = func() { fmt.Fprint(global.Output(), usage) }
	configPath := global.String("config", "", "path to a YAML config file")
	asJSON := global.Bool("json", false, "print JSON instead of styled text")
	if err := global.Parse(args); err != nil {
		return err
	}
	if global.NArg() == 0 {
		global.Usage()
		return errors.New("missing command")
	}

	loaded := config.LoadDotEnv()
	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log, err := logger.New(cfg.Log.Level, cfg.Log.Format, os.Stderr)
	if err != nil {
		return err
	}
	if len(loaded) > 0 {
		log.Debug().Strs("files", loaded).Msg("env files loaded")
	}
	if cfg.YouTube.APIKey == "" {
		log.Warn().Msg("YOUTUBE_API_KEY is not set, requests will be rejected")
	}

	a := &app{
		cfg:    cfg,
		logger: log,
		catalog: youtube.NewClient(youtube.Config{
			APIKey:             cfg.YouTube.APIKey,
			BaseURL:            cfg.YouTube.BaseURL,
			RegionCode:         cfg.YouTube.RegionCode,
			RelevanceLanguage:  cfg.YouTube.RelevanceLanguage,
			CategoryMaxResults: cfg.YouTube.CategoryMaxResults,
			SearchMaxResults:   cfg.YouTube.SearchMaxResults,
			Timeout:            cfg.YouTube.Timeout,
		}, log),
		out:  out,
		json: *asJSON,
	}

	cmd, rest := global.Arg(0), global.Args()[1:]
	switch cmd {
	case "home":
		return a.home(ctx, rest)
	case "search":
		return a.search(ctx, rest)
	case "details":
		return a.details(ctx, rest)
	case "play":
		return a.play(ctx, rest)
	default:
		global.Usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}

type feedView struct {
	Category domain.Category      `json:"category"`
	Phase    string               `json:"phase"`
	Message  string               `json:"message,omitempty"`
	Videos   []domain.VideoRecord `json:"videos,omitempty"`
	ShowMore string               `json:"showMoreQuery"`
}

func (a *app) home(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("home", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	home := service.NewHome(a.catalog, a.logger)
	if err := home.LoadAll(ctx); err != nil {
		return err
	}

	views := make([]feedView, 0, len(home.Feeds()))
	failed := 0
	for _, feed := range home.Feeds() {
		st := feed.State()
		if st.Phase == service.PhaseFailed {
			failed++
		}
		views = append(views, feedView{
			Category: feed.Category(),
			Phase:    st.Phase.String(),
			Message:  st.Message,
			Videos:   st.Data,
			ShowMore: feed.ShowMoreQuery(),
		})
		if !a.json {
			fmt.Fprintln(a.out, ui.RenderCategory(feed.Category(), st))
			fmt.Fprintln(a.out)
		}
	}
	if a.json {
		if err := a.writeJSON(views); err != nil {
			return err
		}
	}
	if failed == len(views) {
		return errFailed
	}
	return nil
}

type searchView struct {
	Query   string                `json:"query"`
	Sort    domain.SortPreference `json:"sort"`
	Phase   string                `json:"phase"`
	Message string                `json:"message,omitempty"`
	Videos  []domain.VideoRecord  `json:"videos"`
}

func (a *app) search(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("search", flag.ContinueOnError)
	query := fs.String("q", "", "search query")
	sortFlag := fs.String("sort", string(domain.SortDateLatest), "date_latest, date_oldest or popular")
	if err := fs.Parse(args); err != nil {
		return err
	}
	pref, ok := domain.ParseSortPreference(*sortFlag)
	if !ok {
		return fmt.Errorf("unknown sort %q", *sortFlag)
	}

	session := service.NewSearchSession(a.catalog, a.logger)
	session.OpenSort()
	if err := session.SelectSort(pref); err != nil {
		return err
	}
	session.ConfirmSort(ctx)
	st := session.Submit(ctx, *query)

	if a.json {
		videos := st.Data
		if videos == nil {
			videos = []domain.VideoRecord{}
		}
		if err := a.writeJSON(searchView{
			Query:   session.Query(),
			Sort:    session.Sort(),
			Phase:   st.Phase.String(),
			Message: st.Message,
			Videos:  videos,
		}); err != nil {
			return err
		}
	} else {
		fmt.Fprintln(a.out, ui.RenderSearch(session.Query(), session.Sort(), st))
	}
	if st.Phase == service.PhaseFailed {
		return errFailed
	}
	return nil
}

type detailsView struct {
	Phase    string              `json:"phase"`
	Message  string              `json:"message,omitempty"`
	Video    *domain.VideoDetail `json:"video,omitempty"`
	WatchURL string              `json:"watchUrl"`
	EmbedURL string              `json:"embedUrl"`
}

func (a *app) details(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("details", flag.ContinueOnError)
	id := fs.String("id", "", "video id")
	if err := fs.Parse(args); err != nil {
		return err
	}

	videoID := strings.TrimSpace(*id)
	if videoID == "" {
		return errMissingID
	}

	st := service.NewDetailsLoader(a.catalog, a.logger).Load(ctx, videoID)
	watch, embed := youtube.VideoURL(videoID), youtube.EmbedURL(videoID)

	if a.json {
		view := detailsView{Phase: st.Phase.String(), Message: st.Message, WatchURL: watch, EmbedURL: embed}
		if st.Phase == service.PhaseReady {
			view.Video = &st.Data
		}
		if err := a.writeJSON(view); err != nil {
			return err
		}
	} else {
		fmt.Fprintln(a.out, ui.RenderDetails(st, watch, embed))
	}
	if st.Phase == service.PhaseFailed {
		return errFailed
	}
	return nil
}

func (a *app) play(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("play", flag.ContinueOnError)
	id := fs.String("id", "", "video id")
	seek := fs.Duration("seek", 0, "relative seek, e.g. 10s or -10s")
	mute := fs.Bool("mute", false, "toggle mute")
	pause := fs.Bool("pause", false, "toggle pause")
	fullscreen := fs.Bool("fullscreen", false, "present fullscreen")
	if err := fs.Parse(args); err != nil {
		return err
	}

	videoID := strings.TrimSpace(*id)
	if videoID == "" {
		return errMissingID
	}

	player := hls.NewPlayer(&http.Client{Timeout: a.cfg.YouTube.Timeout})
	ctrl := service.NewPlaybackController(a.resolver(), player, a.logger)

	if _, err := ctrl.Open(ctx, videoID); err != nil {
		return err
	}
	if *seek != 0 {
		if err := ctrl.Seek(ctx, *seek); err != nil {
			return err
		}
	}
	if *mute {
		if err := ctrl.ToggleMute(ctx); err != nil {
			return err
		}
	}
	if *pause {
		if err := ctrl.TogglePause(ctx); err != nil {
			return err
		}
	}
	if *fullscreen {
		if err := ctrl.Fullscreen(ctx); err != nil {
			return err
		}
	}

	status, err := ctrl.Status(ctx)
	if err != nil {
		return err
	}
	if a.json {
		return a.writeJSON(struct {
			domain.PlaybackStatus
			PositionSeconds float64 `json:"positionSeconds"`
			DurationSeconds float64 `json:"durationSeconds"`
		}{status, status.Position.Seconds(), status.Duration.Seconds()})
	}
	fmt.Fprintln(a.out, ui.RenderPlayback(status))
	return nil
}

func (a *app) resolver() ports.StreamResolver {
	if a.cfg.Playback.Resolver == config.ResolverYtDlp {
		return ytdlp.NewResolver(a.cfg.Playback.YtDlpPath, youtube.VideoURL)
	}
	return demostream.NewResolver(a.cfg.Playback.StreamURL)
}

func (a *app) writeJSON(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
