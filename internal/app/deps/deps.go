package deps

import (
	"context"
	"sync"
	"time"

	"accountd/internal/config"
	dl "accountd/internal/core/domain/logging"
	drl "accountd/internal/core/domain/rate_limiter"
	"accountd/internal/core/domain/user"
	"accountd/internal/db"
	dbuser "accountd/internal/db/user"
	"accountd/internal/implementations/email"
	"accountd/internal/implementations/logging"
	passwordhasher "accountd/internal/implementations/password_hasher"
	passwordresettoken "accountd/internal/implementations/password_reset_token"
	ratelimiter "accountd/internal/implementations/rate_limiter"
	"accountd/internal/implementations/session"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/retry"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/go-redis/redis/v9"
	"github.com/jackc/pgx/v4/pgxpool"
)

type Deps struct {
	Config    *config.Config
	AwsConfig aws.Config
	Logger    dl.Logger

	DB    *pgxpool.Pool
	Redis *redis.Client

	Now func() time.Time

	UserRepository user.UserRepository

	RateLimiter drl.RateLimiter

	EmailSender *email.EmailSender

	PasswordHasher              user.PasswordHasher
	PasswordResetTokenGenerator user.PasswordResetTokenGenerator
	PasswordResetTokenHasher    user.PasswordResetTokenHasher
	PasswordResetTokenSender    user.PasswordResetTokenSender
	SessionTokenIssuer          user.SessionTokenIssuer
}

func InitDeps() (*Deps, func()) {
	deps := &Deps{}

	deps.initConfig()
	deps.initAwsConfig()

	closeLogger := deps.initLogger()
	deps.applyMigrations()
	closePgxPool := deps.initPgxPool()
	closeRedisClient := deps.initRedisClient()

	deps.Now = func() time.Time { return time.Now().UTC() }

	deps.UserRepository = dbuser.NewPgxRepository(deps.DB)
	deps.RateLimiter = ratelimiter.NewRedis(deps.Redis, deps.Logger, deps.Now)

	deps.EmailSender = email.NewEmailSender(
		deps.AwsConfig,
		deps.Config.AwsEmailSender,
		deps.Config.ClientBaseURL,
	)

	deps.PasswordHasher = passwordhasher.NewBcrypt(deps.Config.Secret, deps.Config.BcryptHasherCost)
	deps.PasswordResetTokenGenerator = passwordresettoken.NewGenerator()
	deps.PasswordResetTokenHasher = passwordresettoken.NewSHA256Hasher()
	deps.PasswordResetTokenSender = deps.EmailSender
	deps.SessionTokenIssuer = session.NewJWTIssuer(
		deps.Config.Secret,
		deps.Config.SessionTokenValidDuration,
		deps.Now,
	)

	return deps, func() {
		closeFuncs := []func(){
			closeRedisClient,
			closePgxPool,
			closeLogger,
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

func (deps *Deps) initLogger() func() {
	logger := logging.NewZapLogger()
	deps.Logger = logger
	return func() { logger.Sync() }
}

func (deps *Deps) applyMigrations() {
	if err := db.ApplyMigrations(deps.Config.PostgresqlURL); err != nil {
		deps.Logger.Error(context.Background(), "Could not apply DB migrations.", dl.Entry("err", err))
		panic(err)
	}
}

func (deps *Deps) initPgxPool() func() {
	db, err := pgxpool.Connect(context.Background(), deps.Config.PostgresqlURL)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not connect to DB.", dl.Entry("err", err))
		panic(err)
	}
	deps.DB = db
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down DB connection.")
		db.Close()
		deps.Logger.Info(context.Background(), "DB connection shut down.")
	}
}

func (deps *Deps) initRedisClient() func() {
	redisOpt, err := redis.ParseURL(deps.Config.RedisURL)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not connect to Redis.", dl.Entry("err", err))
		panic(err)
	}
	redisClient := redis.NewClient(redisOpt)
	deps.Redis = redisClient
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down Redis client.")
		redisClient.Close()
		deps.Logger.Info(context.Background(), "Redis client shut down.")
	}
}
