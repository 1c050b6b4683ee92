package authcore

import (
	"errors"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/shortenurl/authcore/store"
	"github.com/shortenurl/authcore/token"
)

// Builder assembles a [Manager]. Construction is allocation-only; no I/O
// happens until the first Manager method call.
type Builder struct {
	config Config
	redis  redis.UniversalClient
	mailer Mailer
	logger zerolog.Logger
	built  bool
}

// New returns a Builder seeded with the default configuration and a
// no-op logger.
func New() *Builder {
	return &Builder{
		config: defaultConfig(),
		logger: zerolog.Nop(),
	}
}

// WithConfig replaces the default configuration.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cfg
	return b
}

// WithRedis sets the shared session-store client. Required.
func (b *Builder) WithRedis(client redis.UniversalClient) *Builder {
	b.redis = client
	return b
}

// WithMailer sets the outbound mail collaborator. Optional: without one,
// SendVerificationCode returns the code for the caller to deliver.
func (b *Builder) WithMailer(mailer Mailer) *Builder {
	b.mailer = mailer
	return b
}

// WithLogger sets the structured logger. Optional; defaults to no-op.
func (b *Builder) WithLogger(logger zerolog.Logger) *Builder {
	b.logger = logger
	return b
}

// Build validates the configuration and returns the Manager. A Builder
// is single-use.
func (b *Builder) Build() (*Manager, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}
	if b.redis == nil {
		return nil, errors.New("redis client required")
	}
	if err := b.config.Validate(); err != nil {
		return nil, err
	}

	codec, err := token.NewCodec(b.config.Token.SigningKey, b.config.Token.Issuer)
	if err != nil {
		return nil, err
	}

	b.built = true

	return &Manager{
		config: b.config,
		codec:  codec,
		store:  store.New(b.redis, b.config.Store.OpTimeout, b.logger),
		mailer: b.mailer,
		log:    b.logger,
	}, nil
}
