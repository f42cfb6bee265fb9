package ws

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	socketio "github.com/googollee/go-socket.io"
	"github.com/rs/zerolog/log"
	"github.com/tshephomotlhale/Family-Feud-Web/internal/buzzer"
	"github.com/tshephomotlhale/Family-Feud-Web/internal/live"
	"github.com/tshephomotlhale/Family-Feud-Web/internal/room"
	"github.com/tshephomotlhale/Family-Feud-Web/internal/store"
)

// ConnCtx is the per-connection state: which room the client watches, the
// role it declared, and its synchronization adapter.
type ConnCtx struct {
	RoomID  string
	Role    string // "control" | "display" | "buzzer" | "lobby" | "fastmoney"
	Adapter *live.Adapter
}

type Server struct {
	st       store.Store
	resolver *buzzer.Resolver
}

func New(st store.Store, resolver *buzzer.Resolver) *Server {
	return &Server{st: st, resolver: resolver}
}

// Mount attaches the Socket.IO server with all role handlers to the given
// Gin engine.
func (srv *Server) Mount(r *gin.Engine) *socketio.Server {
	io := socketio.NewServer(nil)

	io.OnConnect("/", func(s socketio.Conn) error {
		s.SetContext(&ConnCtx{})
		log.Info().Str("sid", s.ID()).Msg("socket connected")
		return nil
	})

	// room:create
	io.OnEvent("/", "room:create", func(s socketio.Conn, payload struct {
		Name      string          `json:"name"`
		Questions []room.Question `json:"questions"`
	}) map[string]any {
		questions := payload.Questions
		if len(questions) == 0 {
			questions = room.DefaultQuestions()
		}
		id, err := srv.st.Create(context.Background(), room.New(payload.Name, questions))
		if err != nil {
			return srv.err(s, "create_failed", err.Error())
		}
		log.Info().Str("sid", s.ID()).Str("roomId", id).Msg("room:create")
		return map[string]any{"roomId": id}
	})

	// room:join subscribes this connection to a room. The adapter pushes a
	// full snapshot on every change plus the cues that fired on the
	// transition; a removed room is terminal.
	io.OnEvent("/", "room:join", func(s socketio.Conn, payload struct {
		RoomID string `json:"roomId"`
		Role   string `json:"role"`
	}) map[string]any {
		ctx := s.Context().(*ConnCtx)
		if ctx.Adapter != nil {
			ctx.Adapter.Close()
			ctx.Adapter = nil
		}
		if _, err := srv.st.Get(context.Background(), payload.RoomID); err != nil {
			return srv.err(s, "room_not_found", "Room not found")
		}
		adapter := live.Subscribe(srv.st, payload.RoomID,
			func(rm room.Room, cues []live.Cue) {
				s.Emit("room:state", statePayload(rm))
				for _, cue := range cues {
					switch cue.Kind {
					case live.CueStrike:
						s.Emit("cue:strike", map[string]any{})
					case live.CueReveal:
						s.Emit("cue:reveal", map[string]any{"index": cue.AnswerIndex})
					}
				}
			},
			func() {
				s.Emit("room:gone", map[string]any{"roomId": payload.RoomID})
			},
		)
		ctx.RoomID = payload.RoomID
		ctx.Role = payload.Role
		ctx.Adapter = adapter
		s.Join(payload.RoomID)
		log.Info().Str("sid", s.ID()).Str("roomId", payload.RoomID).Str("role", payload.Role).Msg("room:join")
		return map[string]any{"ok": true}
	})

	// lobby:addTeam
	io.OnEvent("/", "lobby:addTeam", func(s socketio.Conn, payload struct {
		Name string `json:"name"`
	}) map[string]any {
		return srv.apply(s, "lobby:addTeam", func(cur room.Room) (room.Patch, error) {
			return room.AddTeam(cur, payload.Name)
		})
	})

	// lobby:start
	io.OnEvent("/", "lobby:start", func(s socketio.Conn) map[string]any {
		return srv.apply(s, "lobby:start", room.Start)
	})

	// control:next / control:prev use blind writes: the navigation index is
	// host-authoritative and races on it are tolerated.
	io.OnEvent("/", "control:next", func(s socketio.Conn) map[string]any {
		return srv.dispatch(s, "control:next", func(cur room.Room) (room.Patch, error) {
			return room.Advance(cur, +1)
		})
	})

	io.OnEvent("/", "control:prev", func(s socketio.Conn) map[string]any {
		return srv.dispatch(s, "control:prev", func(cur room.Room) (room.Patch, error) {
			return room.Advance(cur, -1)
		})
	})

	// control:reveal
	io.OnEvent("/", "control:reveal", func(s socketio.Conn, payload struct {
		Index int `json:"index"`
	}) map[string]any {
		return srv.apply(s, "control:reveal", func(cur room.Room) (room.Patch, error) {
			return room.Reveal(cur, payload.Index)
		})
	})

	// control:score
	io.OnEvent("/", "control:score", func(s socketio.Conn, payload struct {
		TeamID string `json:"teamId"`
		Delta  int    `json:"delta"`
	}) map[string]any {
		return srv.apply(s, "control:score", func(cur room.Room) (room.Patch, error) {
			return room.AdjustScore(cur, payload.TeamID, payload.Delta)
		})
	})

	// control:strike
	io.OnEvent("/", "control:strike", func(s socketio.Conn) map[string]any {
		return srv.apply(s, "control:strike", room.AddStrike)
	})

	// control:resetStrikes
	io.OnEvent("/", "control:resetStrikes", func(s socketio.Conn) map[string]any {
		return srv.dispatch(s, "control:resetStrikes", room.ResetStrikes)
	})

	// control:clearBuzzer rearms the buzzer for the next face-off.
	io.OnEvent("/", "control:clearBuzzer", func(s socketio.Conn) map[string]any {
		return srv.dispatch(s, "control:clearBuzzer", room.ClearBuzzer)
	})

	// buzzer:buzz races against every other buzzer client; the resolver
	// records exactly one winner per question.
	io.OnEvent("/", "buzzer:buzz", func(s socketio.Conn, payload struct {
		Player string `json:"player"`
	}) map[string]any {
		ctx := s.Context().(*ConnCtx)
		if ctx.Adapter == nil {
			return srv.err(s, "not_joined", "Join a room first")
		}
		ev, err := srv.resolver.Buzz(context.Background(), ctx.RoomID, payload.Player)
		if errors.Is(err, buzzer.ErrAlreadyBuzzed) {
			return srv.err(s, "too_late", err.Error())
		}
		if err != nil {
			return srv.fail(s, "buzzer:buzz", err)
		}
		log.Info().Str("roomId", ctx.RoomID).Str("player", ev.Player).Msg("buzzer:buzz")
		return map[string]any{"first": ev}
	})

	// fastmoney:submit
	io.OnEvent("/", "fastmoney:submit", func(s socketio.Conn, payload struct {
		Answers []string `json:"answers"`
	}) map[string]any {
		ctx := s.Context().(*ConnCtx)
		if ctx.Adapter == nil {
			return srv.err(s, "not_joined", "Join a room first")
		}
		total := 0
		err := ctx.Adapter.Apply(context.Background(), func(cur room.Room) (room.Patch, error) {
			p, t, err := room.TallyFastMoney(cur, payload.Answers)
			total = t
			return p, err
		})
		if err != nil {
			return srv.fail(s, "fastmoney:submit", err)
		}
		log.Info().Str("roomId", ctx.RoomID).Int("total", total).Msg("fastmoney:submit")
		return map[string]any{"total": total}
	})

	io.OnError("/", func(s socketio.Conn, e error) {
		log.Error().Str("sid", s.ID()).Err(e).Msg("socket error")
	})
	io.OnDisconnect("/", func(s socketio.Conn, reason string) {
		if ctx, ok := s.Context().(*ConnCtx); ok && ctx.Adapter != nil {
			ctx.Adapter.Close()
		}
		log.Info().Str("sid", s.ID()).Str("reason", reason).Msg("socket disconnected")
	})

	go io.Serve()

	r.GET("/socket.io/*any", gin.WrapH(io))
	r.POST("/socket.io/*any", gin.WrapH(io))

	// Basic CORS preflight for Socket.IO POST
	r.OPTIONS("/socket.io/*any", func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")
		c.Status(http.StatusNoContent)
	})

	return io
}

// dispatch runs a reducer against the latest observed snapshot and writes
// the result blindly (last-write-wins).
func (srv *Server) dispatch(s socketio.Conn, event string, fn func(room.Room) (room.Patch, error)) map[string]any {
	ctx := s.Context().(*ConnCtx)
	if ctx.Adapter == nil {
		return srv.err(s, "not_joined", "Join a room first")
	}
	if err := ctx.Adapter.Dispatch(context.Background(), fn); err != nil {
		return srv.fail(s, event, err)
	}
	log.Info().Str("roomId", ctx.RoomID).Msg(event)
	return map[string]any{"ok": true}
}

// apply runs a reducer at the store's serialization point, for fields whose
// next value depends on their previous one.
func (srv *Server) apply(s socketio.Conn, event string, fn func(room.Room) (room.Patch, error)) map[string]any {
	ctx := s.Context().(*ConnCtx)
	if ctx.Adapter == nil {
		return srv.err(s, "not_joined", "Join a room first")
	}
	if err := ctx.Adapter.Apply(context.Background(), fn); err != nil {
		return srv.fail(s, event, err)
	}
	log.Info().Str("roomId", ctx.RoomID).Msg(event)
	return map[string]any{"ok": true}
}

func (srv *Server) fail(s socketio.Conn, event string, err error) map[string]any {
	if errors.Is(err, store.ErrNotFound) {
		return srv.err(s, "room_not_found", "Room not found")
	}
	log.Warn().Str("event", event).Err(err).Msg("action rejected")
	return srv.err(s, "bad_request", err.Error())
}

func (srv *Server) err(s socketio.Conn, code, message string) map[string]any {
	s.Emit("error", map[string]any{"code": code, "message": message})
	return map[string]any{"error": message}
}

func statePayload(rm room.Room) map[string]any {
	var question any
	if cur := rm.Current(); cur != nil {
		question = cur
	}
	return map[string]any{
		"name":            rm.Name,
		"status":          rm.Status,
		"questions":       rm.Questions,
		"currentQuestion": rm.CurrentQuestion,
		"question":        question,
		"teams":           rm.Teams,
		"strikes":         rm.Strikes,
		"buzzer":          rm.Buzzer,
		"score":           rm.Score,
	}
}
