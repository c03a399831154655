package main

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vfg2006/crm-api/infrastructure/database/postgres"
	"github.com/vfg2006/crm-api/infrastructure/idempotency"
	"github.com/vfg2006/crm-api/infrastructure/integrator/n8n"
	"github.com/vfg2006/crm-api/infrastructure/integrator/n8n/n8nclient"
	"github.com/vfg2006/crm-api/infrastructure/migration"
	"github.com/vfg2006/crm-api/infrastructure/repository"
	"github.com/vfg2006/crm-api/internal/api"
	"github.com/vfg2006/crm-api/internal/api/handler"
	"github.com/vfg2006/crm-api/internal/config"
	"github.com/vfg2006/crm-api/internal/scheduler"
	"github.com/vfg2006/crm-api/internal/usecases/authenticating"
	"github.com/vfg2006/crm-api/internal/usecases/board"
	"github.com/vfg2006/crm-api/internal/usecases/dealing"
	"github.com/vfg2006/crm-api/internal/usecases/ingesting"
)

func main() {
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	runMigrations(cfg.Database)

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	pipelineRepo := repository.NewPipelineRepository(pgConn)
	dealRepo := repository.NewDealRepository(pgConn)
	contactRepo := repository.NewContactRepository(pgConn)
	companyRepo := repository.NewCompanyRepository(pgConn)
	activityRepo := repository.NewActivityRepository(pgConn)
	webhookLogRepo := repository.NewWebhookLogRepository(pgConn)

	store := idempotency.NewStore(ctx, cfg)
	defer store.Close()

	authenticator := authenticating.NewService(cfg)
	dealService := dealing.NewService(dealRepo, contactRepo, activityRepo, webhookLogRepo, cfg)
	boardService := board.NewService(pipelineRepo, dealRepo, contactRepo, companyRepo, activityRepo, cfg)
	ingestService := ingesting.NewService(contactRepo, dealRepo, pipelineRepo, activityRepo, webhookLogRepo, store, cfg)

	n8nIntegrator := n8n.New(n8nclient.NewClient(cfg))
	outboundDispatchService := scheduler.NewOutboundDispatchService(webhookLogRepo, n8nIntegrator, cfg)

	if err := outboundDispatchService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de envio ao n8n")
	} else if cfg.Outbound.Enabled {
		logrus.Info("Agendador de envio ao n8n iniciado com sucesso")
	}

	httpHandler := api.NewHandler(
		cfg,
		dealService,
		boardService,
		ingestService,
		authenticator,
		handler.CronJobServices{OutboundDispatchService: outboundDispatchService},
	)

	server := api.New(cfg, httpHandler)
	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

func configureLogger() {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// runMigrations aplica as migrações embutidas antes de abrir o pool de conexões
func runMigrations(dbConfig config.Database) {
	m, err := migration.New(dbConfig.DSN)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao preparar migrações")
	}
	defer m.Close()

	if err := migration.Up(m); err != nil {
		logrus.WithError(err).Fatal("Erro ao aplicar migrações")
	}

	status, err := migration.CurrentStatus(m)
	if err != nil {
		logrus.WithError(err).Warn("Não foi possível ler a versão das migrações")
		return
	}
	logrus.WithField("version", status.Version).Info("Migrações aplicadas")
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
