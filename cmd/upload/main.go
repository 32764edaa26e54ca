package main

import (
	"context"
	"flag"
	"fmt"
	"folio/internal/uploader"
	"folio/shared/logger"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	defaultBaseURL = "http://localhost:8080"
	defaultTimeout = 60 * time.Second
)

func main() {
	var (
		baseURL  = flag.String("url", envOr("FOLIO_URL", defaultBaseURL), "API base URL")
		token    = flag.String("token", os.Getenv("FOLIO_TOKEN"), "access token sent as a bearer credential")
		apiKey   = flag.String("api-key", os.Getenv("FOLIO_API_KEY"), "API key, used instead of a token")
		albumID  = flag.String("album", "", "album to attach the images to")
		featured = flag.Bool("featured", false, "show the images in the homepage rotation")
		inactive = flag.Bool("inactive", false, "upload the images hidden from the public site")
		timeout  = flag.Duration("timeout", defaultTimeout, "request timeout")
		verbose  = flag.Bool("v", false, "verbose logging")
	)

	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] FILE...\n", os.Args[0])
		flag.PrintDefaults()
	}

	flag.Parse()

	logger.InitLogger()

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	if *token == "" && *apiKey == "" {
		log.Fatal().Msg("a token or an API key is required")
	}

	up := uploader.New(*baseURL,
		uploader.WithHTTPClient(&http.Client{Timeout: *timeout}),
		uploader.WithToken(*token),
		uploader.WithAPIKey(*apiKey),
		uploader.WithProgress(printProgress),
	)

	up.SetAlbum(*albumID)
	up.SetFeatured(*featured)
	up.SetActive(!*inactive)

	files := make([]uploader.File, 0, flag.NArg())

	for _, path := range flag.Args() {
		file, err := uploader.FileFromPath(path)
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("skipping file")

			continue
		}

		files = append(files, file)
	}

	rejections, err := up.Add(files...)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to queue files")
	}

	for _, rejection := range rejections {
		log.Warn().Str("file", rejection.Name).Msg(rejection.Reason)
	}

	if pending := len(up.Pending()); pending < len(files)-len(rejections) {
		log.Warn().Int("queued", pending).Msg("batch limit reached, remaining files were not queued")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	res, err := up.Upload(ctx)

	fmt.Fprintln(os.Stderr)

	if err != nil {
		log.Fatal().Err(err).Msg("upload failed")
	}

	log.Info().Msg(res.Message)

	for _, image := range res.Uploaded {
		fmt.Printf("ok\t%s\t%s\n", image.ID, image.Title)
	}

	for _, failed := range res.Failed {
		fmt.Printf("failed\t%s\t%s\n", failed.Name, failed.Error)
	}

	if len(res.Failed) > 0 {
		os.Exit(1)
	}
}

func printProgress(sent, total int64) {
	if total <= 0 {
		return
	}

	fmt.Fprintf(os.Stderr, "\ruploading %3d%% (%d/%d bytes)", sent*100/total, sent, total)
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return fallback
}
