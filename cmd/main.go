package main

import (
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/PrimeHabitacao/api-financiamento/internal/auth"
	"github.com/PrimeHabitacao/api-financiamento/internal/config"
	"github.com/PrimeHabitacao/api-financiamento/internal/coordenador"
	"github.com/PrimeHabitacao/api-financiamento/internal/documento"
	"github.com/PrimeHabitacao/api-financiamento/internal/mensagem"
	"github.com/PrimeHabitacao/api-financiamento/internal/notificacao"
	"github.com/PrimeHabitacao/api-financiamento/internal/processo"
	"github.com/PrimeHabitacao/api-financiamento/internal/usuario"
)

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg, err := config.Carregar()
	if err != nil {
		log.Fatal("Erro na configuração: ", err)
	}

	// Repositórios: Postgres em produção, memória para desenvolvimento
	// e demonstrações sem banco.
	var (
		processoRepo processo.Repository
		mensagemRepo mensagem.Repository
		usuarioRepo  usuario.Repository
	)
	if cfg.StorageDriver == config.DriverPostgres {
		db, err := gorm.Open(postgres.Open(cfg.DSN), &gorm.Config{})
		if err != nil {
			log.Fatal("Erro ao conectar no banco: ", err)
		}
		if err := db.AutoMigrate(
			&processo.Processo{},
			&mensagem.Mensagem{},
			&usuario.Usuario{},
			&usuario.AtendenteAutorizado{},
		); err != nil {
			log.Fatal("Erro no AutoMigrate: ", err)
		}
		processoRepo = processo.NewRepository(db)
		mensagemRepo = mensagem.NewRepository(db)
		usuarioRepo = usuario.NewRepository(db)
	} else {
		slog.Info("persistência em memória: os dados não sobrevivem a um restart")
		processoRepo = processo.NewRepositoryMemoria()
		mensagemRepo = mensagem.NewRepositoryMemoria()
		usuarioRepo = usuario.NewRepositoryMemoria()
	}

	// Chat em tempo real
	hub := mensagem.NewHub(processoRepo)
	go hub.Run()
	mensagemServico := mensagem.NewServico(mensagemRepo, hub, processoRepo)

	// Notificações
	emailRemetente := &notificacao.EmailWebhook{URL: cfg.EmailWebhookURL}
	smsRemetente := &notificacao.SMSWebhook{URL: cfg.SMSWebhookURL}
	notificador := &notificacao.Notificador{
		Email: emailRemetente,
		SMS:   smsRemetente,
		Chat:  mensagemServico,
	}

	coord := coordenador.New(processoRepo, notificador)

	// Handlers
	contas := &usuario.Contas{Repo: usuarioRepo}
	usuarioHandler := usuario.NewHandler(usuarioRepo)
	processoHandler := processo.NewHandler(processoRepo, contas, emailRemetente)
	documentoHandler := documento.NewHandler(processoRepo, coord, notificador)
	notificacaoHandler := notificacao.NewHandler(processoRepo, notificador)
	mensagemHandler := mensagem.NewHandler(mensagemServico, usuarioRepo)

	// Router
	r := mux.NewRouter()

	// Rotas públicas
	r.HandleFunc("/registrar", usuarioHandler.Registrar).Methods("POST")
	r.HandleFunc("/login", usuarioHandler.Login).Methods("POST")
	r.HandleFunc("/ws", hub.ServeWS).Methods("GET")

	// Rotas autenticadas
	api := r.NewRoute().Subrouter()
	api.Use(auth.MiddlewareAutenticacao)
	api.HandleFunc("/me", usuarioHandler.Me).Methods("GET")
	api.HandleFunc("/processos", processoHandler.Listar).Methods("GET")
	api.HandleFunc("/processos/{id}", processoHandler.BuscarPorID).Methods("GET")
	api.HandleFunc("/processos/{id}/documentos/{docId}/envio", documentoHandler.RegistrarEnvio).Methods("PATCH")
	api.HandleFunc("/processos/{id}/mensagens", mensagemHandler.Listar).Methods("GET")
	api.HandleFunc("/processos/{id}/mensagens", mensagemHandler.Enviar).Methods("POST")

	// Rotas da equipe (admin e atendentes)
	equipe := api.NewRoute().Subrouter()
	equipe.Use(auth.RequireEquipe)
	equipe.HandleFunc("/processos", processoHandler.Criar).Methods("POST")
	equipe.HandleFunc("/processos/{id}/status", processoHandler.AtualizarStatus).Methods("PATCH")
	equipe.HandleFunc("/processos/{id}/campos", processoHandler.AtualizarCampos).Methods("PUT")
	equipe.HandleFunc("/processos/{id}/documentos", documentoHandler.Adicionar).Methods("POST")
	equipe.HandleFunc("/processos/{id}/documentos/{docId}/aprovacao", documentoHandler.Aprovar).Methods("PATCH")
	equipe.HandleFunc("/processos/{id}/documentos/{docId}/rejeicao", documentoHandler.Rejeitar).Methods("PATCH")
	equipe.HandleFunc("/processos/{id}/notificacoes", notificacaoHandler.Enviar).Methods("POST")
	equipe.HandleFunc("/metricas", processoHandler.Metricas).Methods("GET")

	// Rotas do admin
	admin := api.NewRoute().Subrouter()
	admin.Use(auth.RequireAdmin)
	admin.HandleFunc("/atendentes/convites", usuarioHandler.ConvidarAtendente).Methods("POST")

	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	slog.Info("servidor iniciado", "porta", cfg.Porta)
	log.Fatal(http.ListenAndServe(":"+cfg.Porta, c.Handler(r)))
}
