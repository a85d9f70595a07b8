package deps

import (
	"context"
	"database/sql"
	"fmt"
	"pwreset/internal/config"
	dl "pwreset/internal/core/domain/logging"
	"pwreset/internal/core/domain/mail"
	duow "pwreset/internal/core/domain/unit_of_work"
	"pwreset/internal/core/domain/user"
	"pwreset/internal/db/sqlite"
	uow "pwreset/internal/db/unit_of_work"
	dbuser "pwreset/internal/db/user"
	"pwreset/internal/implementations/email"
	"pwreset/internal/implementations/logging"
	passwordhasher "pwreset/internal/implementations/password_hasher"
	passwordresetter "pwreset/internal/implementations/password_resetter"
	resetlinksender "pwreset/internal/implementations/reset_link_sender"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/retry"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/getsentry/sentry-go"
	"github.com/jackc/pgx/v4/pgxpool"
)

type Deps struct {
	Config    *config.Config
	AwsConfig aws.Config
	Logger    dl.Logger

	DB     *pgxpool.Pool
	SQLite *sql.DB

	Now func() time.Time

	UnitOfWork     duow.UnitOfWork
	UserRepository user.UserRepository

	Mailer mail.Transport

	PasswordHasher           user.PasswordHasher
	PasswordResetter         user.PasswordResetter
	PasswordResetTokenSender user.PasswordResetTokenSender
}

func InitDeps() (*Deps, func()) {
	deps := &Deps{}

	deps.initConfig()

	closeLogger := deps.initLogger()
	closeStorage := deps.initStorage()

	deps.Now = func() time.Time { return time.Now().UTC() }
	deps.PasswordHasher = deps.initPasswordHasher()
	deps.PasswordResetter = passwordresetter.NewRandom(user.PasswordResetTTL, deps.Now)

	deps.Mailer = deps.initMailer()
	deps.PasswordResetTokenSender = resetlinksender.New(deps.Mailer, deps.Config.ResetLinkBaseURL())

	flushSentry := deps.initSentry()

	return deps, func() {
		closeFuncs := []func(){
			closeStorage,
			closeLogger,
			flushSentry,
		}

		var wg sync.WaitGroup
		wg.Add(len(closeFuncs))
		for _, closeFunc := range closeFuncs {
			closeFunc := closeFunc
			go func() {
				closeFunc()
				wg.Done()
			}()
		}

		wg.Wait()
	}
}

func (deps *Deps) initConfig() {
	config, err := config.Load()
	if err != nil {
		panic(err)
	}
	deps.Config = config
}

func (deps *Deps) initLogger() func() {
	logger := logging.NewZapLogger(deps.Config.IsProduction())
	deps.Logger = logger
	return func() { logger.Sync() }
}

func (deps *Deps) initStorage() func() {
	switch deps.Config.Storage {
	case config.StoragePostgres:
		return deps.initPgxPool()
	default:
		return deps.initSQLite()
	}
}

func (deps *Deps) initPgxPool() func() {
	db, err := pgxpool.Connect(context.Background(), deps.Config.PostgresqlURL)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not connect to DB.", dl.Entry("err", err))
		panic(err)
	}
	deps.DB = db
	deps.UnitOfWork = uow.NewPgxUnitOfWork(db)
	deps.UserRepository = dbuser.NewPgxRepository(db)
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down DB connection.")
		db.Close()
		deps.Logger.Info(context.Background(), "DB connection shut down.")
	}
}

func (deps *Deps) initSQLite() func() {
	db, err := sqlite.Open(context.Background(), deps.Config.SqlitePath)
	if err != nil {
		deps.Logger.Error(
			context.Background(),
			"Could not open SQLite database.",
			dl.Entry("path", deps.Config.SqlitePath),
			dl.Entry("err", err),
		)
		panic(err)
	}
	deps.SQLite = db
	deps.UnitOfWork = sqlite.NewUnitOfWork(db)
	deps.UserRepository = sqlite.NewUserRepository(db)
	return func() {
		deps.Logger.Info(context.Background(), "Closing SQLite database.")
		db.Close()
		deps.Logger.Info(context.Background(), "SQLite database closed.")
	}
}

func (deps *Deps) initPasswordHasher() user.PasswordHasher {
	hasher, err := passwordhasher.NewProductionBcrypt(deps.Config.Secret, deps.Config.BcryptHasherCost)
	if err != nil {
		panic(err)
	}
	return hasher
}

func (deps *Deps) initMailer() mail.Transport {
	switch deps.Config.Mailer {
	case config.MailerSMTP:
		mailer, err := email.NewSMTPMailer(email.SMTPConfig{
			Host:     deps.Config.SMTPHost,
			Port:     deps.Config.SMTPPort,
			User:     deps.Config.SMTPUser,
			Password: deps.Config.SMTPPassword,
			From:     deps.Config.EmailFrom,
		})
		if err != nil {
			panic(err)
		}
		return mailer
	case config.MailerLog:
		deps.Logger.Warning(context.Background(), "Emails are logged instead of being delivered.")
		return email.NewLogMailer(deps.Logger)
	default:
		deps.initAwsConfig()
		return email.NewSESMailer(deps.AwsConfig, deps.Config.EmailFrom)
	}
}

func (deps *Deps) initAwsConfig() {
	cfg, err := awsConfig.LoadDefaultConfig(
		context.Background(),
		awsConfig.WithRegion(deps.Config.AwsRegion),
		awsConfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(
				deps.Config.AwsAccessKey,
				deps.Config.AwsSecretKey,
				"",
			),
		),
		awsConfig.WithRetryer(func() aws.Retryer {
			return retry.AddWithMaxAttempts(
				retry.AddWithMaxBackoffDelay(retry.NewStandard(), time.Second*5),
				3,
			)
		}),
	)
	if err != nil {
		panic(err)
	}
	deps.AwsConfig = cfg
}

func (deps *Deps) initSentry() func() {
	if deps.Config.SentryDsn != nil {
		err := sentry.Init(sentry.ClientOptions{
			Dsn:              deps.Config.SentryDsn.String(),
			Environment:      deps.Config.Environment,
			TracesSampleRate: 0.01,
		})
		if err != nil {
			panic(fmt.Sprintf("could not init Sentry: %v\n", err))
		}
		deps.Logger.Info(context.Background(), "Sentry has been successfully initialized.")
		return func() {
			ok := sentry.Flush(5 * time.Second)
			deps.Logger.Info(context.Background(), "Sentry events flushed.", dl.Entry("ok", ok))
		}
	}

	deps.Logger.Info(context.Background(), "Sentry is disabled.")
	return func() {}
}
