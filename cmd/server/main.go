package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	zerologlog "github.com/rs/zerolog/log"
	"github.com/tshephomotlhale/Family-Feud-Web/internal/buzzer"
	"github.com/tshephomotlhale/Family-Feud-Web/internal/config"
	"github.com/tshephomotlhale/Family-Feud-Web/internal/room"
	"github.com/tshephomotlhale/Family-Feud-Web/internal/store"
	"github.com/tshephomotlhale/Family-Feud-Web/internal/ws"
	staticserver "github.com/tshephomotlhale/Family-Feud-Web/static"
)

const version = "v1.0.0"

func main() {
	var (
		showHelp    = flag.Bool("help", false, "Show help message")
		showVersion = flag.Bool("version", false, "Show version information")
		portFlag    = flag.String("port", "", "Port to listen on (overrides PORT env var)")
	)
	flag.BoolVar(showHelp, "h", false, "Show help message (shorthand)")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	flag.Parse()

	if *showHelp {
		fmt.Printf(`Family Feud - Real-time trivia game server

Usage: %s [options]

Options:
  -h, --help      Show this help message
  -v, --version   Show version information
  --port PORT     Port to listen on (default: 8080 or PORT env var)

Environment Variables:
  PORT                Port to listen on (default: 8080)
  LOG_LEVEL           Log level (default: info)
  ROOM_CODE_LENGTH    Length of generated room join codes (default: 5)

Examples:
  %s                  Start server with default settings
  %s --port 3000      Start server on port 3000

Visit http://localhost:8080 after starting the server.
`, os.Args[0], os.Args[0], os.Args[0])
		return
	}

	if *showVersion {
		fmt.Printf("Family Feud %s\n", version)
		return
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	port := *portFlag
	if port == "" {
		port = cfg.Port
	}

	// zerolog setup (human-friendly console)
	zerolog.TimeFieldFormat = time.RFC3339
	cw := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	zerologlog.Logger = zerologlog.Output(cw)
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	// Gin setup with custom logger (skip /socket.io noise)
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(func(c *gin.Context) {
		start := time.Now()
		c.Next()
		path := c.Request.URL.Path
		if strings.HasPrefix(path, "/socket.io") {
			return
		}
		status := c.Writer.Status()
		dur := time.Since(start)
		zerologlog.Info().Str("path", path).Int("status", status).Dur("dur", dur).Msg("http")
	})

	// Healthcheck
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true, "time": time.Now().UTC()})
	})

	// Document store + socket server
	st := store.NewMemory(cfg.CodeLen)
	resolver := buzzer.NewResolver(st, clockwork.NewRealClock())
	sock := ws.New(st, resolver)
	io := sock.Mount(r)
	defer io.Close()

	// Minimal REST surface backing the join and create pages.
	r.GET("/api/rooms/:id", func(c *gin.Context) {
		rm, err := st.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "room_not_found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"roomId": c.Param("id"), "name": rm.Name, "status": rm.Status})
	})
	type createReq struct {
		Name      string          `json:"name"`
		Questions []room.Question `json:"questions"`
	}
	r.POST("/api/rooms", func(c *gin.Context) {
		var req createReq
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_room"})
			return
		}
		if len(strings.TrimSpace(req.Name)) < 3 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name_too_short"})
			return
		}
		questions := req.Questions
		if len(questions) == 0 {
			questions = room.DefaultQuestions()
		}
		id, err := st.Create(c.Request.Context(), room.New(strings.TrimSpace(req.Name), questions))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "create_failed"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"roomId": id})
	})

	// Serve frontend (if embedded build is present) for all other routes
	r.NoRoute(func(c *gin.Context) {
		staticserver.Handler().ServeHTTP(c.Writer, c.Request)
	})

	log.Printf("listening on :%s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}
