// Package ytgrab provides a client library for a remote media
// downloader service.
//
// It drives the service's full download lifecycle: metadata lookup,
// job submission, bounded status polling, and artifact retrieval.
//
// Overview
//
// ytgrab provides high-level convenience functions for the most common
// operations:
//
//   - FetchInfo: Resolve a video URL into descriptive metadata
//   - Download: Submit a download job and block until its terminal outcome
//   - UploadCookies: Ship a cookies.txt blob to the service
//
// Quick Start
//
// Fetch metadata for a video:
//
//	ctx := context.Background()
//	info, err := ytgrab.FetchInfo(ctx, "http://localhost:5000", videoURL)
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Printf("Title: %s\nViews: %d\n", info.Title, info.ViewCount)
//
// Download the audio track:
//
//	result, err := ytgrab.Download(ctx, "http://localhost:5000", videoURL, youtube.FormatAudio, "")
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(result.DownloadURL)
//
// An empty quality picks the format's default (720p for video,
// 256kbps for audio).
//
// Configuration
//
// ytgrab loads settings from multiple sources:
//
//   1. Environment variables (highest priority)
//   2. Config file (~/.config/ytgrab/config.yaml)
//   3. Default values (lowest priority)
//
// Environment variables:
//
//   - YTGRAB_BASE_URL: Root URL of the downloader service
//   - YTGRAB_REQUEST_TIMEOUT: Per-request HTTP timeout
//   - YTGRAB_POLL_INTERVAL: Delay between job status polls
//   - YTGRAB_POLL_MAX_ATTEMPTS: Upper bound on status polls per job
//   - YTGRAB_OUTPUT_DIR: Where saved artifacts land
//   - YTGRAB_LOG_LEVEL: Log verbosity (debug, info, warn, error)
//
// Error Handling
//
// All operations return errors that implement standard Go error
// handling. Extracting wrapped error details:
//
//	var verr *ytgrab.ValidationError
//	if errors.As(err, &verr) {
//		fmt.Println("bad input:", verr.Message)
//	}
//
//	var terr *ytgrab.TimeoutError
//	if errors.As(err, &terr) {
//		fmt.Printf("gave up after %d status checks\n", terr.Attempts)
//	}
//
// Advanced Usage
//
// For more control, use the sub-packages directly:
//
//   - youtube: Source URL validation and the quality catalog
//   - api: Typed client for the service's request/response contract
//   - session: The download session controller and its event stream
//   - cookies: Upload and status of the auxiliary cookies blob
//   - config: Configuration management
//
// Example driving the session controller with custom events:
//
//	client := api.NewClient(nil)
//	ctrl := session.NewController(client, myEvents, session.DefaultConfig())
//	_, err := ctrl.Submit(ctx, videoURL, youtube.FormatVideo, "1080p")
//
package ytgrab
