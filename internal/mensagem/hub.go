package mensagem

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/PrimeHabitacao/api-financiamento/internal/auth"
	"github.com/PrimeHabitacao/api-financiamento/internal/processo"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type cliente struct {
	hub        *Hub
	conn       *websocket.Conn
	envio      chan []byte
	processoID string
}

// Hub distribui mensagens novas para as sessões conectadas de cada
// processo (equipe e cliente acompanhando o mesmo chat).
type Hub struct {
	clientes   map[string]map[*cliente]bool // processoID -> conexões
	transmitir chan transmissao
	registrar  chan *cliente
	remover    chan *cliente
	mu         sync.Mutex

	processos processo.Repository // regra de acesso do handshake
}

type transmissao struct {
	processoID string
	payload    []byte
}

func NewHub(processos processo.Repository) *Hub {
	return &Hub{
		clientes:   make(map[string]map[*cliente]bool),
		transmitir: make(chan transmissao),
		registrar:  make(chan *cliente),
		remover:    make(chan *cliente),
		processos:  processos,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case c := <-h.registrar:
			h.mu.Lock()
			if h.clientes[c.processoID] == nil {
				h.clientes[c.processoID] = make(map[*cliente]bool)
			}
			h.clientes[c.processoID][c] = true
			h.mu.Unlock()
			slog.Info("sessão de chat conectada", "processo", c.processoID)

		case c := <-h.remover:
			h.mu.Lock()
			if conjunto, ok := h.clientes[c.processoID]; ok {
				if _, ok := conjunto[c]; ok {
					delete(conjunto, c)
					close(c.envio)
				}
			}
			h.mu.Unlock()

		case t := <-h.transmitir:
			h.mu.Lock()
			for c := range h.clientes[t.processoID] {
				select {
				case c.envio <- t.payload:
				default:
					delete(h.clientes[t.processoID], c)
					close(c.envio)
				}
			}
			h.mu.Unlock()
		}
	}
}

// Difundir publica a mensagem para as sessões do processo.
func (h *Hub) Difundir(m Mensagem) {
	payload, err := json.Marshal(m)
	if err != nil {
		return
	}
	h.transmitir <- transmissao{processoID: m.ProcessoID, payload: payload}
}

// ServeWS abre a conexão websocket de acompanhamento do chat.
// O token vem na query string porque browsers não mandam header
// Authorization no handshake. Cliente que não é dono do processo não
// assina o canal; equipe assina qualquer um.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	claims, err := auth.ValidarToken(token)
	if err != nil {
		http.Error(w, "Token inválido", http.StatusUnauthorized)
		return
	}
	processoID := r.URL.Query().Get("processo")
	if processoID == "" {
		http.Error(w, "Processo não informado", http.StatusBadRequest)
		return
	}
	if !claims.Papel.Equipe() {
		p, err := h.processos.BuscarPorID(processoID)
		if err != nil {
			http.Error(w, "Processo não encontrado", http.StatusNotFound)
			return
		}
		if !processo.Dono(p, claims.UserID, claims.Email) {
			http.Error(w, "Acesso negado", http.StatusForbidden)
			return
		}
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("falha no upgrade do websocket", "erro", err)
		return
	}

	c := &cliente{hub: h, conn: conn, envio: make(chan []byte, 16), processoID: processoID}
	h.registrar <- c

	go c.escrever()
	go c.ler()
}

func (c *cliente) ler() {
	defer func() {
		c.hub.remover <- c
		c.conn.Close()
	}()
	for {
		// O envio de mensagens acontece pela rota REST; a conexão só
		// recebe. O loop de leitura existe para detectar desconexão.
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *cliente) escrever() {
	defer c.conn.Close()
	for payload := range c.envio {
		if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			return
		}
	}
	c.conn.WriteMessage(websocket.CloseMessage, []byte{})
}
