package web

import (
	"bytes"
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"golang.org/x/sync/errgroup"

	"github.com/san-kum/flakesim/internal/anim"
	"github.com/san-kum/flakesim/internal/config"
	"github.com/san-kum/flakesim/internal/export"
)

const (
	// DefaultTickRate is the host frame callback rate of every session.
	DefaultTickRate    = time.Second / 60
	// DefaultMaxSegments bounds the strokes a session may render per frame.
	DefaultMaxSegments = 10000
	qrPath             = "/qr.png"
	qrSize             = 256
)

type Server struct {
	// Options are shared by every session; SurfaceWidth and SurfaceHeight
	// size the SVG viewBox.
	Options        anim.Options
	TickRate       time.Duration
	OriginPatterns []string
	Logger         *log.Logger
	// MaxSegments caps flake.Count of every session's parameters. Zero or
	// less disables the cap.
	MaxSegments    int

	// checkFrame runs before each frame is sent; an error halts the session.
	checkFrame func(anim.RenderState) error
}

func New(opts anim.Options, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{Options: opts, TickRate: DefaultTickRate, Logger: logger, MaxSegments: DefaultMaxSegments}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebsocket)
	mux.HandleFunc(qrPath, s.handleQR)
	mux.HandleFunc("/", s.handlePage)
	return mux
}

// ListenAndServe blocks until ctx is done. Open sessions end with ctx.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.Logger.Printf("listening on http://%s", addr)
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	data := newPageData(r.URL.Query(), s.Options.SurfaceWidth, s.Options.SurfaceHeight)
	if err := page.Execute(w, data); err != nil {
		s.Logger.Printf("render page: %v", err)
	}
}

// handleQR encodes the share link of the query parameters.
func (s *Server) handleQR(w http.ResponseWriter, r *http.Request) {
	p := config.FromQuery(r.URL.Query())
	var buf bytes.Buffer
	if err := export.WriteQRPNG(&buf, shareURL(r, p), qrSize); err != nil {
		s.Logger.Printf("encode qr: %v", err)
		http.Error(w, "qr encoding failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-cache")
	_, _ = buf.WriteTo(w)
}

func shareURL(r *http.Request, p config.Params) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + r.Host + "/?" + p.Encode()
}

func (s *Server) handleWebsocket(w http.ResponseWriter, r *http.Request) {
	c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: s.OriginPatterns,
	})
	if err != nil {
		s.Logger.Println(err)
		return
	}
	defer c.CloseNow()

	err = s.serveSession(r.Context(), c, config.FromQuery(r.URL.Query()))
	switch {
	case errors.Is(err, anim.ErrHalted):
		s.Logger.Printf("session %s: %v", r.RemoteAddr, err)
	case err == nil, errors.Is(err, context.Canceled):
		c.Close(websocket.StatusNormalClosure, "")
	case websocket.CloseStatus(err) == websocket.StatusNormalClosure,
		websocket.CloseStatus(err) == websocket.StatusGoingAway:
	default:
		s.Logger.Printf("session %s: %v", r.RemoteAddr, err)
		c.Close(websocket.StatusInternalError, "animation stopped")
	}
}

// serveSession runs one controller against c until either side stops. The
// controller lives on the Run goroutine; the reader only forwards submissions.
// A halted controller closes c itself so the reader unblocks.
func (s *Server) serveSession(ctx context.Context, c *websocket.Conn, params config.Params) error {
	g, gctx := errgroup.WithContext(ctx)

	svg := export.NewSVG(s.Options.SurfaceWidth, s.Options.SurfaceHeight)
	loc := anim.LocationFunc(func(query string) error {
		return wsjson.Write(gctx, c, Message{Type: TypeLocation, Query: query})
	})
	ctrl, err := anim.New(svg, loc, s.limit(params), s.Options, s.Logger)
	if err != nil {
		return err
	}
	ctrl.OnFrame(func(st anim.RenderState) error {
		if s.checkFrame != nil {
			if err := s.checkFrame(st); err != nil {
				return err
			}
		}
		return wsjson.Write(gctx, c, Message{
			Type:  TypeFrame,
			SVG:   svg.Element(),
			Frame: st.Frames,
			Angle: st.Params.BaseAngle,
		})
	})

	submits := make(chan config.Form)
	g.Go(func() error {
		for {
			var m Message
			if err := wsjson.Read(ctx, c, &m); err != nil {
				return err
			}
			if m.Type != TypeSubmit {
				continue
			}
			select {
			case submits <- s.limitForm(formValues(m.Form)):
			case <-gctx.Done():
				return gctx.Err()
			}
		}
	})

	var haltErr error
	g.Go(func() error {
		err := anim.RunTicker(gctx, ctrl, s.TickRate, submits)
		if errors.Is(err, anim.ErrHalted) {
			haltErr = err
			_ = wsjson.Write(gctx, c, Message{Type: TypeError, Error: err.Error()})
			c.Close(websocket.StatusInternalError, "animation stopped")
		}
		return err
	})

	err = g.Wait()
	if haltErr != nil {
		return haltErr
	}
	return err
}
