package inbox

import (
	"fmt"

	"github.com/spf13/cobra"

	"helpdesk/internal/application/inbound"
	appnotification "helpdesk/internal/application/notification"
	"helpdesk/internal/infrastructure/config"
	"helpdesk/internal/infrastructure/database"
	"helpdesk/internal/infrastructure/email"
	"helpdesk/internal/infrastructure/identity"
	"helpdesk/internal/infrastructure/llm"
	"helpdesk/internal/infrastructure/mailbox"
	"helpdesk/internal/infrastructure/repository"
	"helpdesk/internal/shared/db"
	"helpdesk/internal/shared/logger"
)

var (
	env   string
	hours int
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inbox",
		Short: "Inbox ingestion tools",
		Long:  `Run the email-to-ticket ingestion pipeline from the command line.`,
	}

	cmd.PersistentFlags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")

	cmd.AddCommand(
		newRunCommand(),
		newReprocessCommand(),
		newMissingCommand(),
	)

	return cmd
}

func newRunCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Process the inbox once",
		RunE: func(cmd *cobra.Command, args []string) error {
			stack, err := initStack()
			if err != nil {
				return err
			}
			defer stack.close()

			result, err := stack.processInbox.Execute(cmd.Context())
			if err != nil {
				return fmt.Errorf("inbox processing failed: %w", err)
			}
			fmt.Printf("processed: %d\ntickets created: %d\ncomments added: %d\nskipped: %d\nfailed: %d\n",
				result.Processed, result.TicketsCreated, result.CommentsAdded, result.Skipped, result.Failed)
			for _, e := range result.Errors {
				fmt.Printf("  error: %s\n", e)
			}
			return nil
		},
	}
}

func newReprocessCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "reprocess <message-id>",
		Short: "Reprocess a single message",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			stack, err := initStack()
			if err != nil {
				return err
			}
			defer stack.close()

			outcome, err := stack.reprocess.Execute(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("reprocess failed: %w", err)
			}
			fmt.Printf("action: %s\n", outcome.Action)
			if outcome.TicketID != 0 {
				fmt.Printf("ticket: %d\n", outcome.TicketID)
			}
			if outcome.Detail != "" {
				fmt.Printf("detail: %s\n", outcome.Detail)
			}
			return nil
		},
	}
}

func newMissingCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "missing",
		Short: "List reserved messages that never produced a ticket",
		RunE: func(cmd *cobra.Command, args []string) error {
			stack, err := initStack()
			if err != nil {
				return err
			}
			defer stack.close()

			missing, err := stack.missing.Execute(cmd.Context(), hours)
			if err != nil {
				return fmt.Errorf("failed to list missing tickets: %w", err)
			}
			if len(missing) == 0 {
				fmt.Println("no missing tickets")
				return nil
			}
			for _, m := range missing {
				fmt.Printf("%s  conversation=%s  reserved=%s\n", m.MessageID, m.ConversationID, m.ProcessedAt.Format("2006-01-02 15:04:05"))
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&hours, "hours", 24, "Lookback window in hours")
	return cmd
}

type stack struct {
	processInbox *inbound.ProcessInboxUseCase
	reprocess    *inbound.ReprocessMessageUseCase
	missing      *inbound.MissingTicketsUseCase
	dispatcher   *email.Dispatcher
}

func (s *stack) close() {
	s.dispatcher.Stop()
	database.Close()
}

func initStack() (*stack, error) {
	cfg, err := config.Load(env)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := logger.Init(&cfg.Logger, false); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	if err := database.Init(&cfg.Database); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	log := logger.NewLogger()

	ticketRepo := repository.NewTicketRepository(database.Get())
	commentRepo := repository.NewCommentRepository(database.Get())
	assignmentRepo := repository.NewAssignmentRepository(database.Get())
	categoryRepo := repository.NewCategoryRepository(database.Get())
	notificationRepo := repository.NewNotificationRepository(database.Get())
	recordRepo := repository.NewProcessedMessageRepository(database.Get())
	mailLogRepo := repository.NewMailLogRepository(database.Get())

	txManager := db.NewTransactionManager(database.Get())

	identityClient := identity.NewClient(&cfg.Identity)
	mailboxClient := mailbox.NewClient(&cfg.Mailbox)
	llmClient := llm.NewClient(&cfg.LLM, log)

	dispatcher := email.NewDispatcher(email.NewService(&cfg.Email), mailLogRepo, &cfg.Email, log)
	dispatcher.Start()

	notifier := appnotification.NewNotifier(notificationRepo, &directoryAdapter{client: identityClient}, &mailerAdapter{dispatcher: dispatcher, log: log}, log)

	refiner := inbound.NewRefiner(llmClient, &cfg.LLM, log)
	pipeline := inbound.NewPipeline(
		recordRepo,
		ticketRepo,
		commentRepo,
		assignmentRepo,
		categoryRepo,
		&identityGatewayAdapter{client: identityClient},
		refiner,
		notifier,
		txManager,
		&cfg.Ingest,
		log,
	)

	return &stack{
		processInbox: inbound.NewProcessInboxUseCase(mailboxClient, pipeline, &cfg.Ingest, log),
		reprocess:    inbound.NewReprocessMessageUseCase(mailboxClient, recordRepo, pipeline, log),
		missing:      inbound.NewMissingTicketsUseCase(recordRepo),
		dispatcher:   dispatcher,
	}, nil
}
