package io

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	WEBSOCKET_PATH = "/int6502" // Path of the frame stream.
	WEBSOCKET_ADDR = "127.0.0.1:6502"
)

// WebSocket serves the framebuffer to browsers.
//
// Each frame is sent as a single binary message of framebuffer bytes.
// The first byte of every message received from a client is written
// to the keypress cell.
type WebSocket struct {
	Verbose  bool               // If set, logs client connections.
	Addr     string             // Listen address, WEBSOCKET_ADDR if empty.
	Interval time.Duration      // Frame interval, FRAME_INTERVAL if zero.
	Upgrader websocket.Upgrader // Connection upgrader.
}

var _ Display = (*WebSocket)(nil)

type wsSession struct {
	*WebSocket
	ctx         context.Context
	keypress    *byte
	framebuffer []byte
	clients     sync.WaitGroup
}

// Handler returns the HTTP handler for the viewer page and the frame stream.
// Streams end with a final frame and a close message when ctx is done.
func (ws *WebSocket) Handler(ctx context.Context, keypress *byte, framebuffer []byte) http.Handler {
	return ws.session(ctx, keypress, framebuffer).mux()
}

func (ws *WebSocket) session(ctx context.Context, keypress *byte, framebuffer []byte) *wsSession {
	return &wsSession{
		WebSocket:   ws,
		ctx:         ctx,
		keypress:    keypress,
		framebuffer: framebuffer,
	}
}

func (ws *WebSocket) interval() time.Duration {
	if ws.Interval <= 0 {
		return FRAME_INTERVAL
	}
	return ws.Interval
}

func (sess *wsSession) mux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/", sess.servePage)
	mux.HandleFunc(WEBSOCKET_PATH, sess.serveStream)
	return mux
}

func (sess *wsSession) servePage(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	colors := make([]string, len(Palette))
	for n, c := range Palette {
		colors[n] = fmt.Sprintf("%q", c.Hex())
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, viewerPage, strings.Join(colors, ","), WEBSOCKET_PATH)
}

func (sess *wsSession) serveStream(w http.ResponseWriter, r *http.Request) {
	sess.clients.Add(1)
	defer sess.clients.Done()

	conn, err := sess.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		if sess.Verbose {
			log.Printf("websocket upgrade error: %v", err)
		}
		return
	}
	defer conn.Close()

	if sess.Verbose {
		log.Printf("websocket: client %v connected", conn.RemoteAddr())
	}

	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			_, msg, err := conn.ReadMessage()
			if err != nil {
				return
			}
			if len(msg) > 0 {
				*sess.keypress = msg[0]
			}
		}
	}()

	ticker := time.NewTicker(sess.interval())
	defer ticker.Stop()

	frame := make([]byte, len(sess.framebuffer))
stream:
	for {
		copy(frame, sess.framebuffer)
		err = conn.WriteMessage(websocket.BinaryMessage, frame)
		if err != nil {
			break
		}

		select {
		case <-sess.ctx.Done():
			copy(frame, sess.framebuffer)
			_ = conn.WriteMessage(websocket.BinaryMessage, frame)
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, "halted"),
				time.Now().Add(time.Second))
			return
		case <-closed:
			break stream
		case <-ticker.C:
		}
	}

	if sess.Verbose {
		log.Printf("websocket: client %v disconnected: %v", conn.RemoteAddr(), err)
	}
}

// Render serves the framebuffer until ctx is done.
func (ws *WebSocket) Render(ctx context.Context, keypress *byte, framebuffer []byte) (err error) {
	err = checkFramebuffer(framebuffer)
	if err != nil {
		return
	}

	addr := ws.Addr
	if len(addr) == 0 {
		addr = WEBSOCKET_ADDR
	}

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return
	}

	sess := ws.session(ctx, keypress, framebuffer)
	server := &http.Server{Handler: sess.mux()}

	log.Printf("websocket: serving display at http://%v/", listener.Addr())

	served := make(chan error, 1)
	go func() {
		served <- server.Serve(listener)
	}()

	select {
	case err = <-served:
		return
	case <-ctx.Done():
	}

	shutdown, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	err = server.Shutdown(shutdown)
	sess.clients.Wait()

	if serr := <-served; !errors.Is(serr, http.ErrServerClosed) && err == nil {
		err = serr
	}

	return
}

const viewerPage = `<!DOCTYPE html>
<html>
<head><title>int6502</title></head>
<body style="background:#202020">
<canvas id="screen" width="512" height="512"></canvas>
<script>
const palette = [%s];
const canvas = document.getElementById("screen");
const gfx = canvas.getContext("2d");
const keys = {ArrowUp: "w", ArrowLeft: "a", ArrowDown: "s", ArrowRight: "d"};
const sock = new WebSocket("ws://" + location.host + "%s");
sock.binaryType = "arraybuffer";
sock.onmessage = (ev) => {
  const fb = new Uint8Array(ev.data);
  for (let i = 0; i < fb.length; i++) {
    gfx.fillStyle = palette[fb[i] & 0x0f];
    gfx.fillRect((i %% 32) * 16, Math.floor(i / 32) * 16, 16, 16);
  }
};
document.onkeydown = (ev) => {
  let key = keys[ev.key] || ev.key;
  if (key.length != 1) return;
  let code = key.charCodeAt(0);
  if (code < 0x20 || code > 0x7f) return;
  sock.send(new Uint8Array([code]));
};
</script>
</body>
</html>
`
