// Package websocket 医生候诊队列的实时推送
package websocket

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/mediverse/backend/internal/infrastructure/config"
	"github.com/mediverse/backend/internal/infrastructure/log"
	"github.com/mediverse/backend/internal/infrastructure/metrics"
)

const (
	pingInterval = 30 * time.Second
	pongTimeout  = 60 * time.Second
	writeTimeout = 10 * time.Second
	sendBuffer   = 64
	readLimit    = 4 * 1024
)

// Hub WebSocket 连接管理中心，按医生分组
type Hub struct {
	// 按医生 ID 分组的连接
	doctors map[string]map[*Connection]bool
	// 注册连接
	register chan *Connection
	// 注销连接
	unregister chan *Connection
	// 广播消息
	broadcast chan *Message
	done      chan struct{}
	stopOnce  sync.Once
	mu        sync.RWMutex

	upgrader websocket.Upgrader
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

// Connection 单个医生端连接
type Connection struct {
	DoctorID string
	Send     chan []byte
	conn     *websocket.Conn
}

// Message 发往某位医生所有连接的消息
type Message struct {
	DoctorID string
	Data     []byte
}

// NewHub 创建 Hub
func NewHub(cfg *config.WebSocketConfig, m *metrics.Metrics) *Hub {
	return &Hub{
		doctors:    make(map[string]map[*Connection]bool),
		register:   make(chan *Connection),
		unregister: make(chan *Connection),
		broadcast:  make(chan *Message),
		done:       make(chan struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  cfg.ReadBufferSize,
			WriteBufferSize: cfg.WriteBufferSize,
			CheckOrigin: func(r *http.Request) bool {
				return true // 跨域由 HTTP 层 CORS 配置负责
			},
		},
		metrics: m,
		logger:  log.NewModuleLogger("websocket", "hub"),
	}
}

// Run 运行 Hub（需要在 goroutine 中运行），Stop 后返回
func (h *Hub) Run() {
	for {
		select {
		case <-h.done:
			h.closeAll()
			return

		case conn := <-h.register:
			h.mu.Lock()
			if h.doctors[conn.DoctorID] == nil {
				h.doctors[conn.DoctorID] = make(map[*Connection]bool)
			}
			h.doctors[conn.DoctorID][conn] = true
			h.mu.Unlock()
			h.metrics.WebSocketConnected()

		case conn := <-h.unregister:
			h.mu.Lock()
			h.remove(conn)
			h.mu.Unlock()

		case msg := <-h.broadcast:
			h.mu.Lock()
			for conn := range h.doctors[msg.DoctorID] {
				select {
				case conn.Send <- msg.Data:
				default:
					h.logger.Warn("send buffer full, dropping connection",
						"doctor_id", conn.DoctorID,
					)
					h.remove(conn)
				}
			}
			h.mu.Unlock()
		}
	}
}

// remove 调用方持有写锁
func (h *Hub) remove(conn *Connection) {
	group, ok := h.doctors[conn.DoctorID]
	if !ok {
		return
	}
	if _, ok := group[conn]; !ok {
		return
	}
	delete(group, conn)
	close(conn.Send)
	if len(group) == 0 {
		delete(h.doctors, conn.DoctorID)
	}
	h.metrics.WebSocketDisconnected()
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, group := range h.doctors {
		for conn := range group {
			h.remove(conn)
		}
	}
}

// Start 启动 Hub（启动后台 goroutine）
func (h *Hub) Start() {
	go h.Run()
}

// Stop 停止 Hub 并关闭所有连接
func (h *Hub) Stop() {
	h.stopOnce.Do(func() { close(h.done) })
}

// Register 注册连接
func (h *Hub) Register(conn *Connection) {
	select {
	case h.register <- conn:
	case <-h.done:
	}
}

// Unregister 注销连接
func (h *Hub) Unregister(conn *Connection) {
	select {
	case h.unregister <- conn:
	case <-h.done:
	}
}

// BroadcastToDoctor 向指定医生的所有连接推送
func (h *Hub) BroadcastToDoctor(doctorID string, data interface{}) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}
	select {
	case h.broadcast <- &Message{DoctorID: doctorID, Data: jsonData}:
	case <-h.done:
	}
	return nil
}

// ConnectionCount 医生当前的连接数
func (h *Hub) ConnectionCount(doctorID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.doctors[doctorID])
}

// ServeDoctor 升级 HTTP 连接并注册到医生分组
func (h *Hub) ServeDoctor(w http.ResponseWriter, r *http.Request, doctorID string) {
	ws, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("failed to upgrade connection",
			"doctor_id", doctorID,
			"error", err,
		)
		return
	}

	conn := &Connection{
		DoctorID: doctorID,
		Send:     make(chan []byte, sendBuffer),
		conn:     ws,
	}
	h.Register(conn)
	h.logger.Info("doctor connected",
		"doctor_id", doctorID,
	)

	go h.writePump(conn)
	go h.readPump(conn)
}

// readPump 只处理控制帧，客户端消息被丢弃
func (h *Hub) readPump(conn *Connection) {
	defer func() {
		h.Unregister(conn)
		_ = conn.conn.Close()
		h.logger.Info("doctor disconnected",
			"doctor_id", conn.DoctorID,
		)
	}()

	conn.conn.SetReadLimit(readLimit)
	_ = conn.conn.SetReadDeadline(time.Now().Add(pongTimeout))
	conn.conn.SetPongHandler(func(string) error {
		return conn.conn.SetReadDeadline(time.Now().Add(pongTimeout))
	})

	for {
		if _, _, err := conn.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.logger.Warn("connection read error",
					"doctor_id", conn.DoctorID,
					"error", err,
				)
			}
			return
		}
		_ = conn.conn.SetReadDeadline(time.Now().Add(pongTimeout))
	}
}

// writePump Send 关闭后发送关闭帧并退出
func (h *Hub) writePump(conn *Connection) {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		_ = conn.conn.Close()
	}()

	for {
		select {
		case message, ok := <-conn.Send:
			_ = conn.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if !ok {
				_ = conn.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := conn.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				h.logger.Warn("failed to write message",
					"doctor_id", conn.DoctorID,
					"error", err,
				)
				return
			}
		case <-ticker.C:
			_ = conn.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := conn.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
