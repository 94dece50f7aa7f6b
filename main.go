package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"time"

	"Sketchpad/internal/net"
	"Sketchpad/internal/sketch"
	"Sketchpad/internal/state"
	"Sketchpad/internal/ui"
)

const (
	CustomURLScheme = "sketchpad://"
	DefaultPort     = 8888
)

func main() {
	capacity := flag.Int("capacity", state.DefaultCapacity, "number of strokes kept undoable")
	mirror := flag.Bool("mirror", false, "mirror strokes to watchers on the local network")
	port := flag.Int("port", DefaultPort, "mirror port")
	debug := flag.Bool("debug", false, "log pad and renderer internals")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] [%shost:port]\n", os.Args[0], CustomURLScheme)
		flag.PrintDefaults()
	}
	flag.Parse()

	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	if *debug {
		sketch.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	if args := flag.Args(); len(args) > 0 && strings.HasPrefix(args[0], CustomURLScheme) {
		runWatcher(args[0])
		return
	}
	runPad(*capacity, *mirror, *port)
}

func runPad(capacity int, mirror bool, port int) {
	log.Println("Starting sketchpad")
	pad := sketch.NewPad(capacity, nil)

	var shareLink string
	if mirror {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		hub := net.NewHub()
		pad.Journal().Subscribe(hub.Broadcast)
		go func() {
			if err := hub.ListenAndServe(ctx, port); err != nil {
				log.Printf("[MIRROR] server stopped: %v", err)
			}
		}()

		server, err := net.Advertise(port)
		if err != nil {
			log.Printf("[MIRROR] not advertising: %v", err)
		} else {
			defer server.Shutdown()
		}
		shareLink = fmt.Sprintf("%s%s:%d", CustomURLScheme, net.GetOutgoingIP(), port)
		log.Printf("[MIRROR] watch with: %s %s", os.Args[0], shareLink)
	}

	ui.RunApp(pad, shareLink)
}

// runWatcher prints the changes made on a mirrored pad. An empty address
// ("sketchpad://") looks one up with mDNS.
func runWatcher(link string) {
	log.Println("Starting as WATCHER")
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	address := strings.TrimSuffix(strings.TrimPrefix(link, CustomURLScheme), "/")
	if address == "" {
		found, err := net.Browse(ctx, 3*time.Second)
		if err != nil {
			log.Fatalf("[WATCHER] %v", err)
		}
		address = found
	}

	url := "ws://" + address + net.MirrorPath
	log.Printf("[WATCHER] connecting to %s", url)
	err := net.Watch(ctx, url, func(c state.Change) {
		if c.Stroke != nil {
			log.Printf("[WATCHER] #%d %s %s", c.Seq, c.Kind, c.Stroke)
		} else {
			log.Printf("[WATCHER] #%d %s", c.Seq, c.Kind)
		}
	})
	if err != nil {
		log.Fatalf("[WATCHER] disconnected: %v", err)
	}
}
