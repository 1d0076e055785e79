package realtime

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	socketio "github.com/googollee/go-socket.io"
	"github.com/googollee/go-socket.io/engineio"
	"github.com/googollee/go-socket.io/engineio/transport"
	"github.com/googollee/go-socket.io/engineio/transport/polling"
	"github.com/googollee/go-socket.io/engineio/transport/websocket"
	"github.com/shenikar/tourist_safety_system/internal/models"
	"github.com/sirupsen/logrus"
)

const (
	namespace = "/"

	joinAdminEvent   = "join-admin"
	joinTouristEvent = "join-tourist"
)

var (
	errUnauthorized = errors.New("unauthorized")
	errForbidden    = errors.New("forbidden")
)

// roomEmitter - часть socketio.Server, нужная для рассылки
type roomEmitter interface {
	BroadcastToRoom(namespace, room, event string, args ...interface{}) bool
}

// SocketServer - Socket.IO сервер для панели администратора и веб-клиента туриста
type SocketServer struct {
	server  *socketio.Server
	emitter roomEmitter
	tokens  TokenParser
	logger  *logrus.Logger
}

func NewSocketServer(tokens TokenParser, logger *logrus.Logger, checkOrigin func(r *http.Request) bool) *SocketServer {
	server := socketio.NewServer(&engineio.Options{
		Transports: []transport.Transport{
			&polling.Transport{CheckOrigin: checkOrigin},
			&websocket.Transport{CheckOrigin: checkOrigin},
		},
	})

	s := &SocketServer{
		server:  server,
		emitter: server,
		tokens:  tokens,
		logger:  logger,
	}

	server.OnConnect(namespace, func(conn socketio.Conn) error {
		conn.SetContext("")
		s.logger.WithField("sid", conn.ID()).Debug("Socket.IO client connected")
		return nil
	})

	// Ответ обработчика уходит клиенту как ack: "joined" или текст ошибки
	server.OnEvent(namespace, joinAdminEvent, func(conn socketio.Conn, token string) string {
		return s.join(conn, token, true)
	})
	server.OnEvent(namespace, joinTouristEvent, func(conn socketio.Conn, token string) string {
		return s.join(conn, token, false)
	})

	server.OnError(namespace, func(conn socketio.Conn, err error) {
		log := s.logger.WithError(err)
		if conn != nil {
			log = log.WithField("sid", conn.ID())
		}
		log.Warn("Socket.IO error")
	})

	server.OnDisconnect(namespace, func(conn socketio.Conn, reason string) {
		s.logger.WithField("sid", conn.ID()).WithField("reason", reason).Debug("Socket.IO client disconnected")
	})

	return s
}

func (s *SocketServer) join(conn socketio.Conn, token string, admin bool) string {
	room, err := s.authorizeJoin(token, admin)
	if err != nil {
		s.logger.WithField("sid", conn.ID()).WithError(err).Warn("Socket.IO join rejected")
		conn.Emit("error", err.Error())
		return err.Error()
	}
	conn.Join(room)
	conn.SetContext(room)
	s.logger.WithField("sid", conn.ID()).WithField("room", room).Info("Socket.IO client joined room")
	return "joined"
}

// authorizeJoin проверяет токен и определяет комнату клиента
func (s *SocketServer) authorizeJoin(token string, admin bool) (string, error) {
	if token == "" {
		return "", errUnauthorized
	}
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return "", errUnauthorized
	}
	if admin {
		if !models.IsAdminRole(claims.Role) {
			return "", errForbidden
		}
		return AdminRoom, nil
	}
	if claims.Role != models.RoleTourist {
		return "", errForbidden
	}
	id, err := claims.UserID()
	if err != nil {
		return "", errUnauthorized
	}
	return TouristRoom(id), nil
}

// Serve обрабатывает engine.io сессии; блокируется до Close
func (s *SocketServer) Serve() error {
	return s.server.Serve()
}

func (s *SocketServer) Close() error {
	return s.server.Close()
}

func (s *SocketServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.server.ServeHTTP(w, r)
}

func (s *SocketServer) BroadcastToAdmins(event string, payload any) {
	s.emitter.BroadcastToRoom(namespace, AdminRoom, event, payload)
}

func (s *SocketServer) SendToTourist(touristID uuid.UUID, event string, payload any) {
	s.emitter.BroadcastToRoom(namespace, TouristRoom(touristID), event, payload)
}
