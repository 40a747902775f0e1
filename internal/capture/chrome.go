package capture

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"
	"github.com/disintegration/imaging"
	"github.com/tartampluch/go-yeardots/internal/config"
	"github.com/tartampluch/go-yeardots/internal/scene"
)

// ChromeCapturer screenshots the scene as rendered by a headless browser.
// A fresh browser is started for every capture.
type ChromeCapturer struct {
	// Options are passed to the exec allocator on top of the defaults.
	Options []chromedp.ExecAllocatorOption
}

// NewChromeCapturer returns a capturer with headless, GPU-less defaults.
func NewChromeCapturer() *ChromeCapturer {
	return &ChromeCapturer{
		Options: []chromedp.ExecAllocatorOption{
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("hide-scrollbars", true),
		},
	}
}

// Capture loads the scene document, waits for fonts and screenshots the
// #capture element at scale 1.
func (c *ChromeCapturer) Capture(ctx context.Context, root *scene.Node, width, height int) ([]byte, error) {
	if root == nil {
		return nil, errors.New(config.ErrNilScene)
	}
	if err := validate(width, height); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, config.BrowserTimeout)
	defer cancel()

	opts := append(chromedp.DefaultExecAllocatorOptions[:], c.Options...)
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	slog.Info(config.MsgBrowserStart,
		config.LogKeyComponent, config.CompCapture,
		config.LogKeyWidth, width,
		config.LogKeyHeight, height,
	)

	doc := RenderHTML(root, true)
	var (
		fontsReady bool
		shot       []byte
	)
	err := chromedp.Run(browserCtx,
		chromedp.EmulateViewport(int64(width), int64(height), chromedp.EmulateScale(config.BrowserDeviceScale)),
		chromedp.Navigate(config.BrowserBlankURL),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, doc).Do(ctx)
		}),
		chromedp.WaitReady("#"+config.CaptureElementID, chromedp.ByQuery),
		chromedp.Evaluate(config.BrowserFontsReady, &fontsReady, awaitPromise),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			shot, err = page.CaptureScreenshot().
				WithFormat(page.CaptureScreenshotFormatPng).
				WithCaptureBeyondViewport(true).
				WithClip(&page.Viewport{
					X:      float64(root.Rect.Min.X),
					Y:      float64(root.Rect.Min.Y),
					Width:  float64(width),
					Height: float64(height),
					Scale:  1,
				}).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrBrowserRun, err)
	}

	return fitToSize(shot, width, height)
}

func awaitPromise(p *runtime.EvaluateParams) *runtime.EvaluateParams {
	return p.WithAwaitPromise(true)
}

// fitToSize resizes a screenshot whose dimensions drifted from the target,
// e.g. on a HiDPI host.
func fitToSize(data []byte, width, height int) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrBitmapDecode, err)
	}
	if img.Bounds().Dx() == width && img.Bounds().Dy() == height {
		return data, nil
	}

	slog.Warn(config.MsgBrowserResize,
		config.LogKeyComponent, config.CompCapture,
		config.LogKeyWidth, img.Bounds().Dx(),
		config.LogKeyHeight, img.Bounds().Dy(),
	)
	resized := imaging.Resize(img, width, height, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, resized, imaging.PNG); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrBitmapEncode, err)
	}
	return buf.Bytes(), nil
}
