package main

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/skifte/skifte-server/config"
	"github.com/skifte/skifte-server/controllers"
	"github.com/skifte/skifte-server/http-go"
	"github.com/skifte/skifte-server/ingest"
	"github.com/skifte/skifte-server/providers/ai"
	"github.com/skifte/skifte-server/providers/email"
	"github.com/skifte/skifte-server/providers/payment"
	"github.com/skifte/skifte-server/providers/vision"
	"github.com/skifte/skifte-server/repos"
	"github.com/skifte/skifte-server/utils-go"
	"go.uber.org/fx"
)

func main() {

	opts := []fx.Option{}
	opts = append(opts, provideOptions()...)
	opts = append(opts, fx.Invoke(run))

	app := fx.New(opts...)

	app.Run()
}

func provideOptions() []fx.Option {
	return []fx.Option{
		fx.Invoke(utils.ConfigureLogger),
		fx.Provide(config.Parse),
		fx.Invoke(func(config *config.Config) {
			utils.InitSharedConstants(*config.JwtParsedPublicKey)
		}),
		fx.Provide(config.ProvideStore),
		fx.Provide(config.ProvideSmtp),
		fx.Provide(http.CreateServer),
		fx.Provide(utils.GetDefaultRouter),
		fx.Provide(repos.NewEstateRepo),
		fx.Provide(repos.NewRoleRepo),
		fx.Provide(repos.NewCommentRepo),
		fx.Provide(repos.NewTransactionRepo),
		fx.Provide(repos.NewCancellationRepo),
		fx.Provide(func(config *config.Config) *ai.Client {
			return ai.NewClient(config.OpenAiApiKey)
		}),
		fx.Provide(func(client *ai.Client) ingest.Analyzer {
			return client
		}),
		fx.Provide(func(config *config.Config) ingest.OCR {
			return vision.NewClient(config.VisionApiKey)
		}),
		fx.Provide(func(config *config.Config) *payment.Gateway {
			return payment.NewGateway(config.StripeSecretKey, config.StripeWebhookSecret)
		}),
		fx.Provide(email.NewMailer),
		fx.Provide(ingest.NewPipeline),
		fx.Invoke(controllers.RegisterEstatesController),
		fx.Invoke(controllers.RegisterCollaborationController),
		fx.Invoke(controllers.RegisterTransactionsController),
		fx.Invoke(controllers.RegisterPaymentsController),
	}
}

func run(app *fiber.App, config *config.Config, lc fx.Lifecycle) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			errChan := make(chan error)

			go func() {
				errChan <- app.Listen(config.Port)
			}()

			select {
			case err := <-errChan:
				return err
			case <-time.After(100 * time.Millisecond):
				return nil
			}
		},
		OnStop: func(ctx context.Context) error {
			return app.Shutdown()
		},
	})
}
