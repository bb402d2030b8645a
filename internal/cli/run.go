package cli

import (
	"context"
	"fmt"
	"image"
	"io/fs"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/sync/errgroup"

	"github.com/phanxgames/surprise"
	"github.com/phanxgames/surprise/config"
	"github.com/phanxgames/surprise/content"
	"github.com/phanxgames/surprise/ecs"
	"github.com/phanxgames/surprise/media"
	"github.com/phanxgames/surprise/media/beepaudio"
	"github.com/phanxgames/surprise/media/ebitenaudio"
	"github.com/phanxgames/surprise/quiz"
	"github.com/phanxgames/surprise/stage"
)

const (
	fontSize        = 18
	imageDecodeJobs = 4
)

// runOptions are the flags shared by the root and run commands.
type runOptions struct {
	script      string
	screenshots string
}

func addRunFlags(cmd *cobra.Command, opts *runOptions) {
	cmd.Flags().StringVar(&opts.script, "script", "", "replay pointer input from a YAML or JSON script")
	cmd.Flags().StringVar(&opts.screenshots, "screenshots", "screenshots", "directory for script screenshots")
}

func newRunCmd(configPath *string) *cobra.Command {
	var opts runOptions
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Open the surprise window",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), *configPath, opts)
		},
	}
	addRunFlags(cmd, &opts)
	return cmd
}

// loadScript reads the replay script at path. An empty path means none.
func loadScript(path string) (*surprise.Script, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return surprise.ParseScript(data)
}

// assets holds what is prepared before the window opens.
type assets struct {
	font   *surprise.Font
	images map[string]image.Image
}

// preload decodes the font and every payload image concurrently.
func preload(ctx context.Context, fsys fs.FS, tbl *content.Table) (assets, error) {
	var a assets
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		f, err := surprise.LoadFont(goregular.TTF, fontSize)
		if err != nil {
			return fmt.Errorf("load font: %w", err)
		}
		a.font = f
		return nil
	})
	g.Go(func() error {
		imgs, err := stage.DecodeImages(ctx, fsys, tbl.Images(), imageDecodeJobs)
		if err != nil {
			return err
		}
		a.images = imgs
		return nil
	})
	return a, g.Wait()
}

// audioBackend is an opener that may need shutting down.
type audioBackend struct {
	media.Opener
	close func()
}

func openAudio(cfg config.Config, fsys fs.FS) (*audioBackend, error) {
	switch cfg.Audio.Backend {
	case config.BackendEbiten:
		return &audioBackend{Opener: ebitenaudio.New(fsys, cfg.Audio.SampleRate, cfg.Audio.Volume), close: func() {}}, nil
	case config.BackendBeep:
		op := beepaudio.New(fsys, cfg.Audio.SampleRate, cfg.Audio.Volume)
		if err := op.Init(); err != nil {
			return nil, err
		}
		return &audioBackend{Opener: op, close: op.Close}, nil
	}
	return nil, nil
}

// newPlaylist builds the music playlist. With Existing set the first track
// is started here and handed over for adoption, the way a page that was
// already playing music would.
func newPlaylist(cfg config.Config, op media.Opener, tracks []string) (*media.Playlist, error) {
	var opts []media.PlaylistOption
	if cfg.Audio.Existing {
		s, err := op.Open(tracks[0], true)
		if err != nil {
			log.Printf("surprise: music: %v", err)
		} else {
			if err := s.Play(); err != nil {
				log.Printf("surprise: music: autoplay %q: %v", tracks[0], err)
			}
			opts = append(opts, media.WithExisting(s))
		}
	}
	opts = append(opts, media.OnSongChange(func(i int) {
		log.Printf("surprise: music: track %d/%d", i+1, len(tracks))
	}))
	return media.NewPlaylist(op, tracks, opts...)
}

func run(ctx context.Context, configPath string, opts runOptions) error {
	cfg, tbl, err := load(configPath)
	if err != nil {
		return err
	}
	script, err := loadScript(opts.script)
	if err != nil {
		return err
	}
	fsys := os.DirFS(cfg.Assets)

	pre, err := preload(ctx, fsys, tbl)
	if err != nil {
		return err
	}

	backend, err := openAudio(cfg, fsys)
	if err != nil {
		return err
	}
	var opener media.Opener
	if backend != nil {
		defer backend.close()
		opener = backend.Opener
	}

	var music *media.Playlist
	if tracks := playlist(cfg, tbl); opener != nil && len(tracks) > 0 {
		music, err = newPlaylist(cfg, opener, tracks)
		if err != nil {
			return err
		}
		defer func() {
			if err := music.Close(); err != nil {
				log.Printf("surprise: music: close: %v", err)
			}
		}()
	}

	scene := surprise.NewScene()
	scene.SetDebugMode(cfg.Debug)
	if script != nil {
		scene.SetScript(script)
		scene.ScreenshotDir = opts.screenshots
	}

	world := donburi.NewWorld()
	store := ecs.NewDonburiStore(world)
	scene.SetEntityStore(store)
	objects := tbl.Objects()
	ecs.DiscoveryEventType.Subscribe(world, func(w donburi.World, d stage.Discovery) {
		log.Printf("surprise: found %s #%d (%d/%d)", d.Kind, d.Index, ecs.DiscoveredCount(w), len(objects))
	})
	scene.SetUpdateFunc(func() error {
		events.ProcessAllEvents(world)
		return nil
	})

	title := tbl.Title
	if title == "" {
		title = cfg.Window.Title
	}
	st := stage.New(scene, stage.Options{
		Title:    title,
		Viewport: surprise.Rect{Width: float64(cfg.Window.Width), Height: float64(cfg.Window.Height)},
		Eye:      vec3(cfg.Camera.Eye),
		LookAt:   vec3(cfg.Camera.LookAt),
		FOV:      cfg.Camera.FOV,
		Objects:  objects,
		Font:     pre.font,
		Playlist: music,
		Opener:   opener,
		Images:   stage.NewImageSet(pre.images),
		Fallbacks: quiz.Fallbacks{
			Correct:   cfg.Quiz.Correct,
			Incorrect: cfg.Quiz.Incorrect,
		},
		Tracker: store,
	})
	defer st.Teardown()

	return surprise.Run(scene, surprise.RunConfig{
		Title:     cfg.Window.Title,
		Width:     cfg.Window.Width,
		Height:    cfg.Window.Height,
		Resizable: cfg.Window.Resizable,
		TPS:       cfg.Window.TPS,
		ShowFPS:   cfg.Window.ShowFPS,
	})
}

func vec3(v [3]float64) surprise.Vec3 {
	return surprise.Vec3{X: v[0], Y: v[1], Z: v[2]}
}
